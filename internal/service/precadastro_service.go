package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"cargodocs/internal/card"
	"cargodocs/internal/domain"
	"cargodocs/internal/port"
	repo "cargodocs/internal/repository/firebird"
)

// precadastroRequired are the fields the operator must have filled before a
// driver pre-registration is accepted.
var precadastroRequired = []string{"CPF", "DATANASC", "RG", "NOME"}

// PrecadastroInput is the DTO for driver pre-registration requests.
type PrecadastroInput struct {
	BusinessNumber string
	Dados          map[string]string
	Link           string
}

// PrecadastroService stores reviewed driver data in the tenant database.
type PrecadastroService interface {
	Save(ctx context.Context, input PrecadastroInput) error
}

type precadastroService struct {
	registry port.TenantRegistry
	open     Opener
}

// NewPrecadastroService wires the driver pre-registration flow.
func NewPrecadastroService(registry port.TenantRegistry, open Opener) PrecadastroService {
	return &precadastroService{registry: registry, open: open}
}

func (s *precadastroService) Save(ctx context.Context, input PrecadastroInput) error {
	dados := normalizePessoa(input.Dados)
	if input.Link != "" {
		dados["LINK"] = input.Link
	}

	var missing []string
	for _, c := range precadastroRequired {
		if dados[c] == "" {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return domain.NewValidationError("dados",
			fmt.Sprintf("Campos obrigatórios ausentes: %s", strings.Join(missing, ", ")))
	}

	creds, err := s.registry.Resolve(ctx, input.BusinessNumber)
	if err != nil {
		return err
	}
	db, err := s.open(creds)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	log.Printf("service.Precadastro: saving CPF %s", card.FormatCPF(dados["CPF"]))
	return repo.NewPessoaRepo(db).Insert(ctx, dados)
}

// normalizePessoa cleans the payload the bot assembled from the card: keys
// upper-cased, sentinel and empty values dropped, CPF reduced to digits, and
// a DOB field folded into DATANASC.
func normalizePessoa(dados map[string]string) map[string]string {
	norm := make(map[string]string, len(dados))
	for k, v := range dados {
		k = strings.ToUpper(strings.TrimSpace(k))
		v = strings.TrimSpace(v)
		if v == "" || v == card.Absent {
			continue
		}
		norm[k] = v
	}

	if cpf := norm["CPF"]; cpf != "" {
		norm["CPF"] = card.Digits(cpf)
	}

	if dob := norm["DOB"]; dob != "" {
		delete(norm, "DOB")
		if norm["DATANASC"] == "" {
			norm["DATANASC"] = dob
		}
	}
	return norm
}
