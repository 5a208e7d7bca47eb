package main

import (
	"fmt"
	"log"
	"os"

	"github.com/jmoiron/sqlx"

	"cargodocs/internal/config"
	"cargodocs/internal/domain"
	"cargodocs/internal/extractor"
	"cargodocs/internal/extractor/openai"
	"cargodocs/internal/firebird"
	"cargodocs/internal/handler"
	"cargodocs/internal/pdftext"
	"cargodocs/internal/router"
	"cargodocs/internal/service"
	s3storage "cargodocs/internal/storage/s3"
	"cargodocs/internal/tenant"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := os.MkdirAll(cfg.Upload.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create upload dir: %w", err)
	}

	// Initialize extraction
	chatClient, err := openai.NewClient(cfg.Extractor.APIKey, cfg.Extractor.Timeout)
	if err != nil {
		return fmt.Errorf("failed to initialize chat client: %w", err)
	}
	engine := extractor.NewEngine(chatClient, cfg.Extractor.PrimaryModel, cfg.Extractor.FallbackModel)

	// Initialize tenant registry
	registry := tenant.NewResolver(cfg.Registry, cfg.Firebird.DefaultCharset)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Tenant connections follow the configured charset order; callers may
	// still pin a dialect per query.
	openTenant := func(creds *domain.TenantCredentials, opts ...firebird.Option) (*sqlx.DB, error) {
		opts = append([]firebird.Option{
			firebird.WithCharsets(cfg.Firebird.DefaultCharset, cfg.Firebird.FallbackCharset),
		}, opts...)
		return firebird.Open(creds, opts...)
	}

	// Initialize services
	intakeSvc := service.NewIntakeService(engine, pdftext.NewExtractor(), &cfg.Upload)
	confirmSvc := service.NewConfirmService(registry, openTenant, s3Client, &cfg.Upload, &cfg.S3)
	precadastroSvc := service.NewPrecadastroService(registry, openTenant)
	veiculoSvc := service.NewVeiculoService(registry, openTenant)
	ocorrenciaSvc := service.NewOcorrenciaService(registry, openTenant)
	consultaSvc := service.NewConsultaService(registry, openTenant)

	// Initialize handlers
	intakeH := handler.NewIntakeHandler(intakeSvc)
	confirmH := handler.NewConfirmHandler(confirmSvc)
	precadastroH := handler.NewPrecadastroHandler(precadastroSvc)
	veiculoH := handler.NewVeiculoHandler(veiculoSvc)
	ocorrenciaH := handler.NewOcorrenciaHandler(ocorrenciaSvc)
	consultaH := handler.NewConsultaHandler(consultaSvc)
	healthH := handler.NewHealthHandler(&cfg.Upload)

	// Setup router
	r := router.Setup(intakeH, confirmH, precadastroH, veiculoH, ocorrenciaH, consultaH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
