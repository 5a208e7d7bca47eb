// Package cnh holds the driver's-license (CNH) field schema, the card
// template shown to the operator, and the second-pass verification and
// reconciliation rules that fix the digit fields a single vision pass
// commonly confuses.
package cnh

import (
	"fmt"
	"strings"

	"cargodocs/internal/card"
)

// Card labels and section anchors. Downstream code finds and replaces lines
// by these labels, so they are fixed here and nowhere else.
const (
	SectionIdentificacao = "📇 Identificação"
	SectionDocumento     = "🆔 Documento"
	SectionEmissao       = "📅 Validade e emissão"
	SectionCategorias    = "🚗 Categorias adicionais na tabela inferior"
	SectionOrgao         = "🏛 Órgão emissor"

	LabelNome        = "Nome"
	LabelNascimento  = "Data de nascimento"
	LabelRegistro    = "Registro"
	LabelCPF         = "CPF"
	LabelCNHRegistro = "Número de registro CNH"
	LabelValidade    = "Validade"
	LabelCodigo      = "Código"
)

// DefaultNationality substitutes an absent nationality field.
const DefaultNationality = "BRASILEIRO"

// Record is the structured extraction result for a driver's license,
// mirroring the strict JSON schema requested from the model.
type Record struct {
	Identificacao struct {
		Nome            string `json:"nome"`
		DataNascimento  string `json:"data_nascimento"`
		LocalNascimento string `json:"local_nascimento"`
		Nacionalidade   string `json:"nacionalidade"`
		Pai             string `json:"pai"`
		Mae             string `json:"mae"`
	} `json:"identificacao"`
	Documento struct {
		RegistroRG          string `json:"registro_rg"`
		CPF                 string `json:"cpf"`
		Categoria           string `json:"categoria"`
		NumeroRegistroCNH   string `json:"numero_registro_cnh"`
		PrimeiraHabilitacao string `json:"primeira_habilitacao"`
	} `json:"documento"`
	Emissao struct {
		DataEmissao string `json:"data_emissao"`
		Validade    string `json:"validade"`
	} `json:"emissao"`
	CategoriasAdicionais []string `json:"categorias_adicionais"`
	OrgaoEmissor         struct {
		UF           string `json:"uf"`
		LocalEmissao string `json:"local_emissao"`
		Codigo       string `json:"codigo"`
	} `json:"orgao_emissor"`
}

func orDash(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return card.Absent
	}
	return s
}

// CardText renders the record into the fixed card template, substituting
// "-" for missing leaves and defaulting nationality.
func (r *Record) CardText() string {
	nac := strings.TrimSpace(r.Identificacao.Nacionalidade)
	if nac == "" || nac == card.Absent {
		nac = DefaultNationality
	}

	var cats []string
	for _, c := range r.CategoriasAdicionais {
		if s := strings.TrimSpace(c); s != "" {
			cats = append(cats, s)
		}
	}
	catsStr := card.Absent
	if len(cats) > 0 {
		catsStr = strings.Join(cats, ", ")
	}

	return fmt.Sprintf(
		SectionIdentificacao+"\n"+
			LabelNome+": %s\n"+
			LabelNascimento+": %s\n"+
			"Local de nascimento: %s\n"+
			"Nacionalidade: %s\n"+
			"Filiação:\n"+
			"Pai: %s\n"+
			"Mãe: %s\n\n"+
			SectionDocumento+"\n"+
			LabelRegistro+": %s\n"+
			LabelCPF+": %s\n"+
			"Categoria Habilitação: %s\n"+
			LabelCNHRegistro+": %s\n"+
			"Data da 1ª habilitação: %s\n\n"+
			SectionEmissao+"\n"+
			"Data de emissão: %s\n"+
			LabelValidade+": %s\n\n"+
			SectionCategorias+"\n"+
			"%s\n\n"+
			SectionOrgao+"\n"+
			"UF: %s\n"+
			"Local de emissão: %s\n"+
			LabelCodigo+": %s",
		orDash(r.Identificacao.Nome),
		orDash(r.Identificacao.DataNascimento),
		orDash(r.Identificacao.LocalNascimento),
		nac,
		orDash(r.Identificacao.Pai),
		orDash(r.Identificacao.Mae),
		orDash(r.Documento.RegistroRG),
		orDash(r.Documento.CPF),
		orDash(r.Documento.Categoria),
		orDash(r.Documento.NumeroRegistroCNH),
		orDash(r.Documento.PrimeiraHabilitacao),
		orDash(r.Emissao.DataEmissao),
		orDash(r.Emissao.Validade),
		catsStr,
		orDash(r.OrgaoEmissor.UF),
		orDash(r.OrgaoEmissor.LocalEmissao),
		orDash(r.OrgaoEmissor.Codigo),
	)
}
