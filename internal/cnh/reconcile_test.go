package cnh

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cargodocs/internal/card"
)

func baseCard() string {
	return SectionIdentificacao + "\n" +
		LabelNome + ": MARIA DA SILVA\n" +
		LabelNascimento + ": 01/01/1990\n\n" +
		SectionDocumento + "\n" +
		LabelRegistro + ": -\n" +
		LabelCPF + ": 12345678901\n" +
		LabelCNHRegistro + ": -\n\n" +
		SectionEmissao + "\n" +
		LabelValidade + ": 10/08/2030"
}

func TestReconcile_OverwritesDOBAndRG(t *testing.T) {
	v := AllAbsent()
	v.DOB = "05/03/1988"
	v.RG = "4567890"

	got := Reconcile(baseCard(), v)
	assert.Contains(t, got, LabelNascimento+": 05/03/1988")
	assert.Contains(t, got, LabelRegistro+": 4567890")
}

func TestReconcile_SkipsInvalidDOBAndRG(t *testing.T) {
	v := AllAbsent()
	v.RG = "12345" // too short

	got := Reconcile(baseCard(), v)
	assert.Contains(t, got, LabelNascimento+": 01/01/1990")
	assert.Contains(t, got, LabelRegistro+": -")
}

func TestReconcile_CNHNumberPrefers11Digits(t *testing.T) {
	v := AllAbsent()
	v.Reg11 = "98765432109"
	v.Reg10 = "1234567890"
	v.CPF = "12345678901"

	got := Reconcile(baseCard(), v)
	assert.Contains(t, got, LabelCNHRegistro+": 98765432109")
}

func TestReconcile_CNHNumberRejectsCPFLookalike(t *testing.T) {
	v := AllAbsent()
	v.Reg11 = "12345678901" // same as CPF on the card
	v.Reg10 = "1234567890"

	got := Reconcile(baseCard(), v)
	assert.Contains(t, got, LabelCNHRegistro+": 1234567890")
}

func TestReconcile_CNHNumberAbsentWhenNoCandidate(t *testing.T) {
	v := AllAbsent()
	v.Reg11 = "12345678901" // equals CPF, rejected

	got := Reconcile(baseCard(), v)
	assert.Contains(t, got, LabelCNHRegistro+": "+card.Absent)
}

func TestPostprocess_FormatsCPF(t *testing.T) {
	got := Postprocess(baseCard())
	assert.Contains(t, got, LabelCPF+": 123.456.789-01")
}

func TestPostprocess_Categories(t *testing.T) {
	text := baseCard() + "\n\n" + SectionCategorias + "\nE, A1, B"
	got := Postprocess(text)
	assert.Contains(t, got, SectionCategorias+": A1, B, E (todas com validade até 10/08/2030)")
}

func TestPostprocess_Codigo(t *testing.T) {
	text := baseCard() + "\n" + LabelCodigo + ": 98765432100 sc123456789"
	got := Postprocess(text)
	assert.Contains(t, got, " / SC123456789")
}
