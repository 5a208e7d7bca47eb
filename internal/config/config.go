package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Registry  RegistryConfig
	Extractor ExtractorConfig
	Firebird  FirebirdConfig
	Upload    UploadConfig
	S3        S3Config
	Log       LogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// RegistryConfig holds master tenant-registry lookup settings.
type RegistryConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// ExtractorConfig holds LLM extraction settings.
type ExtractorConfig struct {
	APIKey        string        `mapstructure:"api_key"`
	PrimaryModel  string        `mapstructure:"primary_model"`
	FallbackModel string        `mapstructure:"fallback_model"`
	Timeout       time.Duration `mapstructure:"timeout"`
}

// FirebirdConfig holds tenant database connection defaults.
type FirebirdConfig struct {
	DefaultCharset  string `mapstructure:"default_charset"`
	FallbackCharset string `mapstructure:"fallback_charset"`
}

// UploadConfig holds temp-file settings for inbound documents.
type UploadConfig struct {
	Dir           string `mapstructure:"dir"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
}

// S3Config holds archive storage settings.
type S3Config struct {
	Region      string `mapstructure:"region"`
	Bucket      string `mapstructure:"bucket"`
	Endpoint    string `mapstructure:"endpoint"`
	AccessKey   string `mapstructure:"access_key"`
	SecretKey   string `mapstructure:"secret_key"`
	Prefix      string `mapstructure:"prefix"`
	MaxAttempts int    `mapstructure:"max_attempts"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the CARGODOCS_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("CARGODOCS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8000")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "120s")
	v.SetDefault("server.environment", "development")

	// Registry defaults
	v.SetDefault("registry.base_url", "http://127.0.0.1:8081")
	v.SetDefault("registry.timeout", "5s")

	// Extractor defaults
	v.SetDefault("extractor.api_key", "")
	v.SetDefault("extractor.primary_model", "gpt-4o-mini")
	v.SetDefault("extractor.fallback_model", "gpt-4o")
	v.SetDefault("extractor.timeout", "120s")

	// Firebird defaults: legacy bases run WIN1252, newer ones UTF8
	v.SetDefault("firebird.default_charset", "WIN1252")
	v.SetDefault("firebird.fallback_charset", "UTF8")

	// Upload defaults
	v.SetDefault("upload.dir", "/var/lib/cargodocs/uploads")
	v.SetDefault("upload.max_file_size_mb", 25)

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "cargodocs-archive")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.prefix", "documentos")
	v.SetDefault("s3.max_attempts", 5)

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":               "CARGODOCS_SERVER_PORT",
		"server.read_timeout":       "CARGODOCS_SERVER_READ_TIMEOUT",
		"server.write_timeout":      "CARGODOCS_SERVER_WRITE_TIMEOUT",
		"server.environment":        "CARGODOCS_SERVER_ENVIRONMENT",
		"registry.base_url":         "CARGODOCS_REGISTRY_BASE_URL",
		"registry.timeout":          "CARGODOCS_REGISTRY_TIMEOUT",
		"extractor.api_key":         "CARGODOCS_EXTRACTOR_API_KEY",
		"extractor.primary_model":   "CARGODOCS_EXTRACTOR_PRIMARY_MODEL",
		"extractor.fallback_model":  "CARGODOCS_EXTRACTOR_FALLBACK_MODEL",
		"extractor.timeout":         "CARGODOCS_EXTRACTOR_TIMEOUT",
		"firebird.default_charset":  "CARGODOCS_FIREBIRD_DEFAULT_CHARSET",
		"firebird.fallback_charset": "CARGODOCS_FIREBIRD_FALLBACK_CHARSET",
		"upload.dir":                "CARGODOCS_UPLOAD_DIR",
		"upload.max_file_size_mb":   "CARGODOCS_UPLOAD_MAX_FILE_SIZE_MB",
		"s3.region":                 "CARGODOCS_S3_REGION",
		"s3.bucket":                 "CARGODOCS_S3_BUCKET",
		"s3.endpoint":               "CARGODOCS_S3_ENDPOINT",
		"s3.access_key":             "CARGODOCS_S3_ACCESS_KEY",
		"s3.secret_key":             "CARGODOCS_S3_SECRET_KEY",
		"s3.prefix":                 "CARGODOCS_S3_PREFIX",
		"s3.max_attempts":           "CARGODOCS_S3_MAX_ATTEMPTS",
		"log.level":                 "CARGODOCS_LOG_LEVEL",
		"log.format":                "CARGODOCS_LOG_FORMAT",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// PaaS platforms set a PORT env var. Use it unless the port was set explicitly.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("CARGODOCS_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.Registry = RegistryConfig{
		BaseURL: v.GetString("registry.base_url"),
		Timeout: v.GetDuration("registry.timeout"),
	}
	cfg.Extractor = ExtractorConfig{
		APIKey:        v.GetString("extractor.api_key"),
		PrimaryModel:  v.GetString("extractor.primary_model"),
		FallbackModel: v.GetString("extractor.fallback_model"),
		Timeout:       v.GetDuration("extractor.timeout"),
	}
	cfg.Firebird = FirebirdConfig{
		DefaultCharset:  v.GetString("firebird.default_charset"),
		FallbackCharset: v.GetString("firebird.fallback_charset"),
	}
	cfg.Upload = UploadConfig{
		Dir:           v.GetString("upload.dir"),
		MaxFileSizeMB: v.GetInt64("upload.max_file_size_mb"),
	}
	cfg.S3 = S3Config{
		Region:      v.GetString("s3.region"),
		Bucket:      v.GetString("s3.bucket"),
		Endpoint:    v.GetString("s3.endpoint"),
		AccessKey:   v.GetString("s3.access_key"),
		SecretKey:   v.GetString("s3.secret_key"),
		Prefix:      v.GetString("s3.prefix"),
		MaxAttempts: v.GetInt("s3.max_attempts"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	return cfg, nil
}
