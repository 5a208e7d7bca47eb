// Package firebird opens connections to per-tenant Firebird databases with
// charset fallback: legacy bases only speak WIN1252, newer ones UTF8, and
// the registry does not record which is which.
package firebird

import (
	"fmt"
	"log"
	"net/url"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/nakagami/firebirdsql"

	"cargodocs/internal/domain"
)

// Charsets tried in order when the credentials carry none.
const (
	DefaultCharset  = "WIN1252"
	FallbackCharset = "UTF8"
)

type openConfig struct {
	dialect  int // 0 = driver default
	charsets [2]string
}

// Option adjusts how a tenant connection is opened.
type Option func(*openConfig)

// WithDialect pins the SQL dialect. Legacy reporting tables were created
// under dialect 1 and misbehave under 3.
func WithDialect(d int) Option {
	return func(c *openConfig) { c.dialect = d }
}

// WithCharsets overrides the charset fallback order.
func WithCharsets(primary, fallback string) Option {
	return func(c *openConfig) { c.charsets = [2]string{primary, fallback} }
}

// Open connects to the tenant database described by creds. When the
// credentials name a charset only that charset is tried; otherwise the
// default and fallback charsets are each tried exactly once and the second
// failure is returned.
func Open(creds *domain.TenantCredentials, opts ...Option) (*sqlx.DB, error) {
	cfg := openConfig{charsets: [2]string{DefaultCharset, FallbackCharset}}
	for _, opt := range opts {
		opt(&cfg)
	}

	var missing []string
	if creds.Host == "" {
		missing = append(missing, "host")
	}
	if creds.Port == 0 {
		missing = append(missing, "port")
	}
	if creds.Database == "" {
		missing = append(missing, "database")
	}
	if creds.User == "" {
		missing = append(missing, "user")
	}
	if creds.Password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return nil, domain.NewValidationError("credenciais", "campos de conexão ausentes: "+strings.Join(missing, ", "))
	}

	if creds.Charset != "" {
		db, err := connect(creds, creds.Charset, cfg.dialect)
		if err != nil {
			return nil, fmt.Errorf("connecting with charset %s: %w", creds.Charset, err)
		}
		return db, nil
	}

	var lastErr error
	for _, cs := range cfg.charsets {
		db, err := connect(creds, cs, cfg.dialect)
		if err == nil {
			return db, nil
		}
		log.Printf("firebird: connect %s:%d/%s charset=%s failed: %v", creds.Host, creds.Port, creds.Database, cs, err)
		lastErr = err
	}
	return nil, fmt.Errorf("connecting with charsets %s, %s: %w", cfg.charsets[0], cfg.charsets[1], lastErr)
}

// dial is a seam for tests; production always goes through sqlx.
var dial = sqlx.Connect

func connect(creds *domain.TenantCredentials, charset string, dialect int) (*sqlx.DB, error) {
	return dial("firebirdsql", buildDSN(creds, charset, dialect))
}

func buildDSN(creds *domain.TenantCredentials, charset string, dialect int) string {
	dsn := fmt.Sprintf("%s:%s@%s:%d/%s?charset=%s",
		url.QueryEscape(creds.User),
		url.QueryEscape(creds.Password),
		creds.Host,
		creds.Port,
		creds.Database,
		url.QueryEscape(charset),
	)
	if dialect != 0 {
		dsn += fmt.Sprintf("&sql_dialect=%d", dialect)
	}
	return dsn
}
