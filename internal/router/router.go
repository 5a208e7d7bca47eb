package router

import (
	"github.com/gin-gonic/gin"

	"cargodocs/internal/handler"
	"cargodocs/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	intakeH *handler.IntakeHandler,
	confirmH *handler.ConfirmHandler,
	precadastroH *handler.PrecadastroHandler,
	veiculoH *handler.VeiculoHandler,
	ocorrenciaH *handler.OcorrenciaHandler,
	consultaH *handler.ConsultaHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	// Extraction works on the file alone, no tenant header needed
	r.POST("/upload", intakeH.Upload)

	// Tenant-scoped routes resolve the company from the business number
	tenant := r.Group("")
	tenant.Use(middleware.RequireBusinessNumber())

	tenant.POST("/confirmar", confirmH.Confirm)
	tenant.POST("/precadastro", precadastroH.Save)
	tenant.POST("/cadastroveiculo", veiculoH.Save)
	tenant.POST("/ocorrencia", ocorrenciaH.Save)
	tenant.GET("/cte/:chave", consultaH.CTEByKey)
	tenant.GET("/entregas/:numero", consultaH.EntregaByNumero)

	return r
}
