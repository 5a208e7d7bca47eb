package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"cargodocs/internal/domain"
	"cargodocs/internal/service"
)

// MockIntakeService is a mock implementation of service.IntakeService.
type MockIntakeService struct {
	mock.Mock
}

func (m *MockIntakeService) Process(ctx context.Context, input service.IntakeInput) (*service.IntakeResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.IntakeResult), args.Error(1)
}

// MockConfirmService is a mock implementation of service.ConfirmService.
type MockConfirmService struct {
	mock.Mock
}

func (m *MockConfirmService) Confirm(ctx context.Context, input service.ConfirmInput) (*service.ConfirmResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ConfirmResult), args.Error(1)
}

// MockPrecadastroService is a mock implementation of service.PrecadastroService.
type MockPrecadastroService struct {
	mock.Mock
}

func (m *MockPrecadastroService) Save(ctx context.Context, input service.PrecadastroInput) error {
	args := m.Called(ctx, input)
	return args.Error(0)
}

// MockVeiculoService is a mock implementation of service.VeiculoService.
type MockVeiculoService struct {
	mock.Mock
}

func (m *MockVeiculoService) Save(ctx context.Context, input service.VeiculoInput) error {
	args := m.Called(ctx, input)
	return args.Error(0)
}

// MockOcorrenciaService is a mock implementation of service.OcorrenciaService.
type MockOcorrenciaService struct {
	mock.Mock
}

func (m *MockOcorrenciaService) Save(ctx context.Context, businessNumber string, oco domain.Ocorrencia) error {
	args := m.Called(ctx, businessNumber, oco)
	return args.Error(0)
}

// MockConsultaService is a mock implementation of service.ConsultaService.
type MockConsultaService struct {
	mock.Mock
}

func (m *MockConsultaService) CTEByKey(ctx context.Context, businessNumber, chave, cpf string) (*domain.CTEInfo, error) {
	args := m.Called(ctx, businessNumber, chave, cpf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CTEInfo), args.Error(1)
}

func (m *MockConsultaService) EntregaByNumero(ctx context.Context, businessNumber string, numero int, documento string) (*domain.EntregaInfo, error) {
	args := m.Called(ctx, businessNumber, numero, documento)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EntregaInfo), args.Error(1)
}
