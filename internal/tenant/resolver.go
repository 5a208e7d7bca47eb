// Package tenant resolves WhatsApp business numbers to tenant database
// credentials through the master registry service.
package tenant

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"cargodocs/internal/config"
	"cargodocs/internal/domain"
	"cargodocs/internal/port"
)

var reWhatsappPrefix = regexp.MustCompile(`(?i)^whatsapp:`)

// Resolver implements port.TenantRegistry over the registry's HTTP API.
// Lookups are always fresh; a tenant's credentials may be rotated at any
// time, so nothing is cached.
type Resolver struct {
	baseURL        string
	client         *http.Client
	defaultCharset string
}

var _ port.TenantRegistry = (*Resolver)(nil)

// NewResolver builds a resolver from the registry section of the config.
// defaultCharset is stamped onto every credential set returned.
func NewResolver(cfg config.RegistryConfig, defaultCharset string) *Resolver {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	return &Resolver{
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		client:         &http.Client{Timeout: timeout},
		defaultCharset: defaultCharset,
	}
}

// registryRecord mirrors the registry's response. DB_PORT arrives either as
// a number or a quoted string depending on the master schema, so it is kept
// raw and coerced afterwards.
type registryRecord struct {
	DBHost     string          `json:"DB_HOST"`
	DBPort     json.RawMessage `json:"DB_PORT"`
	DBPath     string          `json:"DB_PATH"`
	DBUser     string          `json:"DB_USER"`
	DBPassword string          `json:"DB_PASSWORD"`
}

// Resolve looks up the tenant owning businessNumber. The number may carry a
// "whatsapp:" prefix, which is stripped before the lookup.
func (r *Resolver) Resolve(ctx context.Context, businessNumber string) (*domain.TenantCredentials, error) {
	n := strings.TrimSpace(reWhatsappPrefix.ReplaceAllString(strings.TrimSpace(businessNumber), ""))
	if n == "" {
		return nil, fmt.Errorf("%w: empty business number", domain.ErrTenantNotFound)
	}

	lookupURL := r.baseURL + "/internal/master/cliente?toBiz=" + url.QueryEscape(n)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, lookupURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating registry request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling tenant registry: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.ErrTenantNotFound
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("tenant registry error (status %d): %s", resp.StatusCode, string(body))
	}

	var rec registryRecord
	if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
		return nil, fmt.Errorf("decoding registry response: %w", err)
	}

	portStr := strings.Trim(strings.TrimSpace(string(rec.DBPort)), `"`)
	if portStr == "null" {
		portStr = ""
	}

	var missing []string
	if rec.DBHost == "" {
		missing = append(missing, "DB_HOST")
	}
	if portStr == "" {
		missing = append(missing, "DB_PORT")
	}
	if rec.DBPath == "" {
		missing = append(missing, "DB_PATH")
	}
	if rec.DBUser == "" {
		missing = append(missing, "DB_USER")
	}
	if rec.DBPassword == "" {
		missing = append(missing, "DB_PASSWORD")
	}
	if len(missing) > 0 {
		return nil, &domain.TenantConfigError{Missing: missing}
	}

	portNum, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("tenant registry returned a non-numeric DB_PORT %q", portStr)
	}

	return &domain.TenantCredentials{
		Host:     rec.DBHost,
		Port:     portNum,
		Database: rec.DBPath,
		User:     rec.DBUser,
		Password: rec.DBPassword,
		Charset:  r.defaultCharset,
	}, nil
}
