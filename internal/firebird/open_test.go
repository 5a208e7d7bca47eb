package firebird

import (
	"errors"
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cargodocs/internal/domain"
)

// stubDial swaps the dial seam for the duration of the test and records
// every DSN attempted.
func stubDial(t *testing.T, fn func(dsn string) (*sqlx.DB, error)) *[]string {
	t.Helper()
	orig := dial
	t.Cleanup(func() { dial = orig })

	var dsns []string
	dial = func(driver, dsn string) (*sqlx.DB, error) {
		assert.Equal(t, "firebirdsql", driver)
		dsns = append(dsns, dsn)
		return fn(dsn)
	}
	return &dsns
}

func creds() *domain.TenantCredentials {
	return &domain.TenantCredentials{
		Host:     "10.0.0.5",
		Port:     3050,
		Database: "/dados/empresa.fdb",
		User:     "SYSDBA",
		Password: "masterkey",
	}
}

func TestBuildDSN(t *testing.T) {
	dsn := buildDSN(creds(), "WIN1252", 0)
	assert.Equal(t, "SYSDBA:masterkey@10.0.0.5:3050//dados/empresa.fdb?charset=WIN1252", dsn)
}

func TestBuildDSN_DialectAndEscaping(t *testing.T) {
	c := creds()
	c.Password = "m@ster key"

	dsn := buildDSN(c, "UTF8", 1)
	assert.Equal(t, "SYSDBA:m%40ster+key@10.0.0.5:3050//dados/empresa.fdb?charset=UTF8&sql_dialect=1", dsn)
}

func TestOpen_FallsBackToSecondCharset(t *testing.T) {
	want := &sqlx.DB{}
	dsns := stubDial(t, func(dsn string) (*sqlx.DB, error) {
		if strings.Contains(dsn, "charset=WIN1252") {
			return nil, errors.New("malformed string")
		}
		return want, nil
	})

	db, err := Open(creds())

	require.NoError(t, err)
	assert.Same(t, want, db)
	require.Len(t, *dsns, 2)
	assert.Contains(t, (*dsns)[0], "charset=WIN1252")
	assert.Contains(t, (*dsns)[1], "charset=UTF8")
}

func TestOpen_BothCharsetsFail(t *testing.T) {
	dsns := stubDial(t, func(dsn string) (*sqlx.DB, error) {
		return nil, errors.New("connection refused")
	})

	_, err := Open(creds())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "WIN1252, UTF8")
	assert.Contains(t, err.Error(), "connection refused")
	assert.Len(t, *dsns, 2)
}

func TestOpen_ExplicitCharsetTriedOnce(t *testing.T) {
	dsns := stubDial(t, func(dsn string) (*sqlx.DB, error) {
		return nil, errors.New("malformed string")
	})

	c := creds()
	c.Charset = "ISO8859_1"
	_, err := Open(c)

	require.Error(t, err)
	require.Len(t, *dsns, 1)
	assert.Contains(t, (*dsns)[0], "charset=ISO8859_1")
}

func TestOpen_WithCharsetsOverridesOrder(t *testing.T) {
	dsns := stubDial(t, func(dsn string) (*sqlx.DB, error) {
		return nil, errors.New("connection refused")
	})

	_, err := Open(creds(), WithCharsets("UTF8", "WIN1251"))

	require.Error(t, err)
	require.Len(t, *dsns, 2)
	assert.Contains(t, (*dsns)[0], "charset=UTF8")
	assert.Contains(t, (*dsns)[1], "charset=WIN1251")
}

func TestOpen_MissingCredentials(t *testing.T) {
	c := creds()
	c.Host = ""
	c.Password = ""

	_, err := Open(c)

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Msg, "host")
	assert.Contains(t, vErr.Msg, "password")
}
