package cnh

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardText_FillsAbsentLeaves(t *testing.T) {
	var r Record
	text := r.CardText()

	assert.Contains(t, text, LabelNome+": -")
	assert.Contains(t, text, LabelCPF+": -")
	assert.Contains(t, text, "Nacionalidade: "+DefaultNationality)
	assert.Contains(t, text, SectionCategorias+"\n-")
}

func TestCardText_FromModelJSON(t *testing.T) {
	var r Record
	require.NoError(t, json.Unmarshal([]byte(`{
		"identificacao": {"nome": "MARIA DA SILVA", "data_nascimento": "05/03/1988", "nacionalidade": "-"},
		"documento": {"cpf": "12345678901", "categoria": "AB"},
		"emissao": {"validade": "10/08/2030"},
		"categorias_adicionais": ["E", " ", "D"]
	}`), &r))

	text := r.CardText()
	assert.Contains(t, text, LabelNome+": MARIA DA SILVA")
	assert.Contains(t, text, LabelNascimento+": 05/03/1988")
	assert.Contains(t, text, "Categoria Habilitação: AB")
	assert.Contains(t, text, LabelValidade+": 10/08/2030")
	// sentinel nationality defaults
	assert.Contains(t, text, "Nacionalidade: BRASILEIRO")
	// blank entries dropped
	assert.Contains(t, text, SectionCategorias+"\nE, D")
}
