package service

import (
	"context"
	"log"

	"cargodocs/internal/port"
	repo "cargodocs/internal/repository/firebird"
)

// VeiculoInput is the DTO for vehicle pre-registration requests.
type VeiculoInput struct {
	BusinessNumber string
	Dados          map[string]string
	Link           string
}

// VeiculoService stores reviewed vehicle data in the tenant database.
type VeiculoService interface {
	Save(ctx context.Context, input VeiculoInput) error
}

type veiculoService struct {
	registry port.TenantRegistry
	open     Opener
}

// NewVeiculoService wires the vehicle pre-registration flow.
func NewVeiculoService(registry port.TenantRegistry, open Opener) VeiculoService {
	return &veiculoService{registry: registry, open: open}
}

func (s *veiculoService) Save(ctx context.Context, input VeiculoInput) error {
	dados := make(map[string]string, len(input.Dados)+1)
	for k, v := range input.Dados {
		dados[k] = v
	}
	if input.Link != "" {
		dados["LINK"] = input.Link
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

	log.Printf("service.Veiculo: saving placa %s", dados["PLACA"])
	return repo.NewVeiculoRepo(db).Insert(ctx, dados)
}
