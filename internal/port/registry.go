package port

import (
	"context"

	"cargodocs/internal/domain"
)

// TenantRegistry resolves a WhatsApp business number to the tenant's
// database credentials. Resolution is fresh per request, never cached.
type TenantRegistry interface {
	Resolve(ctx context.Context, businessNumber string) (*domain.TenantCredentials, error)
}
