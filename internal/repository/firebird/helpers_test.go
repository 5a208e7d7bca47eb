package firebird

import (
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateBR(t *testing.T) {
	d, err := parseDateBR(" 05/03/1988 ")
	require.NoError(t, err)
	assert.Equal(t, time.Date(1988, 3, 5, 0, 0, 0, 0, time.UTC), d)

	_, err = parseDateBR("1988-03-05")
	assert.Error(t, err)

	_, err = parseDateBR("31/02/2020")
	assert.Error(t, err)
}

func TestFitColumn(t *testing.T) {
	maxLen := map[string]int{"UF": 2}
	assert.Equal(t, "SC", fitColumn(maxLen, "UF", " SCX "))
	assert.Equal(t, "SC", fitColumn(maxLen, "UF", "SC"))
	assert.Equal(t, "qualquer coisa", fitColumn(maxLen, "OUTRA", "qualquer coisa"))
}

func TestFitColumn_RuneBoundary(t *testing.T) {
	maxLen := map[string]int{"NOME": 4}

	got := fitColumn(maxLen, "NOME", "JOSÉLIA")

	assert.Equal(t, "JOSÉ", got)
	assert.True(t, utf8.ValidString(got))
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "?", placeholders(1))
	assert.Equal(t, "?, ?, ?", placeholders(3))
}

func TestCloneUpper(t *testing.T) {
	got := cloneUpper(map[string]string{" nome ": "MARIA", "CPF": "123"})
	assert.Equal(t, map[string]string{"NOME": "MARIA", "CPF": "123"}, got)
}

func TestFmtMoneyBR(t *testing.T) {
	assert.Equal(t, "R$ 0,00", fmtMoneyBR(0))
	assert.Equal(t, "R$ 12,50", fmtMoneyBR(12.5))
	assert.Equal(t, "R$ 1.234,56", fmtMoneyBR(1234.56))
	assert.Equal(t, "R$ 1.234.567,89", fmtMoneyBR(1234567.89))
	assert.Equal(t, "R$ -1.234,56", fmtMoneyBR(-1234.56))
}

func TestFmtDates(t *testing.T) {
	ts := time.Date(2025, 6, 1, 14, 30, 0, 0, time.UTC)
	assert.Equal(t, "01/06/2025", fmtDateBR(ts))
	assert.Equal(t, "01/06/2025 14:30", fmtDateTimeBR(ts))
}
