package fiscal

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const sampleKey = "42250612345678000195570010000012341000012349"

func TestFindKey(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"bare digits", "chave: " + sampleKey, sampleKey},
		{
			"spaced groups",
			"4225 0612 3456 7800 0195 5700 1000 0012 3410 0001 2349",
			sampleKey,
		},
		{
			"dotted",
			strings.Join([]string{sampleKey[:11], sampleKey[11:22], sampleKey[22:33], sampleKey[33:]}, "."),
			sampleKey,
		},
		{"too short", sampleKey[:43], ""},
		{"no digits", "nenhuma chave aqui", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FindKey(tt.text))
		})
	}
}

func TestFindKey_LongerDigitRun(t *testing.T) {
	// A longer digit run yields its first 44 digits.
	assert.Equal(t, sampleKey, FindKey(sampleKey+"9"))
}

func TestNormalizeKey(t *testing.T) {
	assert.Equal(t, sampleKey, NormalizeKey(sampleKey))
	assert.Equal(t, sampleKey, NormalizeKey("  "+sampleKey[:10]+"-"+sampleKey[10:]+"  "))
	assert.Equal(t, "", NormalizeKey(sampleKey[:43]))
	assert.Equal(t, "", NormalizeKey(""))
}

func TestInferEmissionDate(t *testing.T) {
	fallback := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	got := InferEmissionDate(sampleKey, fallback)
	assert.Equal(t, time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC), got)

	// month 00 and 13 are invalid
	badMonth := sampleKey[:4] + "00" + sampleKey[6:]
	assert.Equal(t, fallback, InferEmissionDate(badMonth, fallback))
	badMonth = sampleKey[:4] + "13" + sampleKey[6:]
	assert.Equal(t, fallback, InferEmissionDate(badMonth, fallback))

	assert.Equal(t, fallback, InferEmissionDate("123", fallback))
	assert.Equal(t, fallback, InferEmissionDate("", fallback))
}
