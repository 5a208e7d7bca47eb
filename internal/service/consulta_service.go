package service

import (
	"context"

	"github.com/jmoiron/sqlx"

	"cargodocs/internal/domain"
	"cargodocs/internal/firebird"
	"cargodocs/internal/port"
	repo "cargodocs/internal/repository/firebird"
)

// ConsultaService answers driver lookups for freight manifests and
// deliveries. The legacy reporting tables require SQL dialect 1.
type ConsultaService interface {
	CTEByKey(ctx context.Context, businessNumber, chave, cpf string) (*domain.CTEInfo, error)
	EntregaByNumero(ctx context.Context, businessNumber string, numero int, documento string) (*domain.EntregaInfo, error)
}

type consultaService struct {
	registry port.TenantRegistry
	open     Opener
}

// NewConsultaService wires the lookup flows.
func NewConsultaService(registry port.TenantRegistry, open Opener) ConsultaService {
	return &consultaService{registry: registry, open: open}
}

func (s *consultaService) CTEByKey(ctx context.Context, businessNumber, chave, cpf string) (*domain.CTEInfo, error) {
	db, err := s.openDialect1(ctx, businessNumber)
	if err != nil {
		return nil, err
	}
	defer func() { _ = db.Close() }()
	return repo.NewConsultaRepo(db).CTEByKey(ctx, chave, cpf)
}

func (s *consultaService) EntregaByNumero(ctx context.Context, businessNumber string, numero int, documento string) (*domain.EntregaInfo, error) {
	db, err := s.openDialect1(ctx, businessNumber)
	if err != nil {
		return nil, err
	}
	defer func() { _ = db.Close() }()
	return repo.NewConsultaRepo(db).EntregaByNumero(ctx, numero, documento)
}

func (s *consultaService) openDialect1(ctx context.Context, businessNumber string) (*sqlx.DB, error) {
	creds, err := s.registry.Resolve(ctx, businessNumber)
	if err != nil {
		return nil, err
	}
	return s.open(creds, firebird.WithDialect(1))
}
