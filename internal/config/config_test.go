package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8000", cfg.Server.Port)
	assert.Equal(t, "gpt-4o-mini", cfg.Extractor.PrimaryModel)
	assert.Equal(t, "gpt-4o", cfg.Extractor.FallbackModel)
	assert.Equal(t, 120*time.Second, cfg.Extractor.Timeout)
	assert.Equal(t, "WIN1252", cfg.Firebird.DefaultCharset)
	assert.Equal(t, "UTF8", cfg.Firebird.FallbackCharset)
	assert.Equal(t, int64(25), cfg.Upload.MaxFileSizeMB)
	assert.Equal(t, 5, cfg.S3.MaxAttempts)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CARGODOCS_SERVER_PORT", ":9090")
	t.Setenv("CARGODOCS_EXTRACTOR_API_KEY", "sk-test")
	t.Setenv("CARGODOCS_REGISTRY_BASE_URL", "http://master.internal:8081")
	t.Setenv("CARGODOCS_S3_BUCKET", "meu-bucket")
	t.Setenv("CARGODOCS_UPLOAD_MAX_FILE_SIZE_MB", "10")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Port)
	assert.Equal(t, "sk-test", cfg.Extractor.APIKey)
	assert.Equal(t, "http://master.internal:8081", cfg.Registry.BaseURL)
	assert.Equal(t, "meu-bucket", cfg.S3.Bucket)
	assert.Equal(t, int64(10), cfg.Upload.MaxFileSizeMB)
}

func TestLoad_PaaSPortFallback(t *testing.T) {
	t.Setenv("PORT", "7070")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Server.Port)
}

func TestLoad_ExplicitPortBeatsPaaS(t *testing.T) {
	t.Setenv("PORT", "7070")
	t.Setenv("CARGODOCS_SERVER_PORT", ":9090")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Port)
}
