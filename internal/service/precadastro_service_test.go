package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"cargodocs/internal/domain"
	"cargodocs/mocks"
)

func TestNormalizePessoa(t *testing.T) {
	got := normalizePessoa(map[string]string{
		" nome ":    " MARIA DA SILVA ",
		"cpf":       "123.456.789-01",
		"DOB":       "05/03/1988",
		"FIL_PAI":   "-",
		"CIDADENAS": "",
	})

	assert.Equal(t, "MARIA DA SILVA", got["NOME"])
	assert.Equal(t, "12345678901", got["CPF"])
	assert.Equal(t, "05/03/1988", got["DATANASC"])
	_, hasDOB := got["DOB"]
	assert.False(t, hasDOB)
	_, hasPai := got["FIL_PAI"]
	assert.False(t, hasPai)
}

func TestNormalizePessoa_KeepsExplicitDatanasc(t *testing.T) {
	got := normalizePessoa(map[string]string{
		"DOB":      "05/03/1988",
		"DATANASC": "01/01/1990",
	})
	assert.Equal(t, "01/01/1990", got["DATANASC"])
}

func TestPrecadastroSave_MissingFields(t *testing.T) {
	registry := new(mocks.MockTenantRegistry)
	svc := NewPrecadastroService(registry, stubOpener())

	err := svc.Save(context.Background(), PrecadastroInput{
		BusinessNumber: "5549999990000",
		Dados:          map[string]string{"NOME": "MARIA", "CPF": "12345678901"},
	})

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Msg, "DATANASC")
	assert.Contains(t, vErr.Msg, "RG")
	registry.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything)
}

func TestPrecadastroSave_ResolveErrorPropagates(t *testing.T) {
	registry := new(mocks.MockTenantRegistry)
	registry.On("Resolve", mock.Anything, "5549999990000").Return(nil, domain.ErrTenantNotFound).Once()

	svc := NewPrecadastroService(registry, stubOpener())

	err := svc.Save(context.Background(), PrecadastroInput{
		BusinessNumber: "5549999990000",
		Dados: map[string]string{
			"NOME": "MARIA", "CPF": "12345678901",
			"DATANASC": "05/03/1988", "RG": "4567890",
		},
	})

	assert.ErrorIs(t, err, domain.ErrTenantNotFound)
	registry.AssertExpectations(t)
}
