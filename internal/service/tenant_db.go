package service

import (
	"github.com/jmoiron/sqlx"

	"cargodocs/internal/domain"
	"cargodocs/internal/firebird"
)

// Opener opens a tenant database from resolved credentials. Injected so
// tests can substitute a recorded connection.
type Opener func(creds *domain.TenantCredentials, opts ...firebird.Option) (*sqlx.DB, error)
