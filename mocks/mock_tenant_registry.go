package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"cargodocs/internal/domain"
)

// MockTenantRegistry is a mock implementation of port.TenantRegistry.
type MockTenantRegistry struct {
	mock.Mock
}

func (m *MockTenantRegistry) Resolve(ctx context.Context, businessNumber string) (*domain.TenantCredentials, error) {
	args := m.Called(ctx, businessNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TenantCredentials), args.Error(1)
}
