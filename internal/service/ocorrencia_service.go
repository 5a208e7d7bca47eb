package service

import (
	"context"
	"strings"

	"cargodocs/internal/domain"
	"cargodocs/internal/port"
	repo "cargodocs/internal/repository/firebird"
)

// OcorrenciaService appends delivery occurrences in the tenant database.
type OcorrenciaService interface {
	Save(ctx context.Context, businessNumber string, oco domain.Ocorrencia) error
}

type ocorrenciaService struct {
	registry port.TenantRegistry
	open     Opener
}

// NewOcorrenciaService wires the occurrence flow.
func NewOcorrenciaService(registry port.TenantRegistry, open Opener) OcorrenciaService {
	return &ocorrenciaService{registry: registry, open: open}
}

func (s *ocorrenciaService) Save(ctx context.Context, businessNumber string, oco domain.Ocorrencia) error {
	if oco.Nomovtra <= 0 {
		return domain.NewValidationError("nomovtra", "número da entrega inválido")
	}
	if strings.TrimSpace(oco.Texto) == "" {
		return domain.NewValidationError("texto", "descrição da ocorrência é obrigatória")
	}

	creds, err := s.registry.Resolve(ctx, businessNumber)
	if err != nil {
		return err
	}
	db, err := s.open(creds)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	return repo.NewOcorrenciaRepo(db).Save(ctx, oco)
}
