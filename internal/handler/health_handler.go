package handler

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"cargodocs/internal/config"
)

// HealthHandler handles health check endpoints. Tenant databases are
// opened per request, so readiness only verifies local prerequisites.
type HealthHandler struct {
	uploadCfg *config.UploadConfig
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(uploadCfg *config.UploadConfig) *HealthHandler {
	return &HealthHandler{uploadCfg: uploadCfg}
}

// Liveness handles GET /healthz
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles GET /readyz
func (h *HealthHandler) Readiness(c *gin.Context) {
	info, err := os.Stat(h.uploadCfg.Dir)
	if err != nil || !info.IsDir() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": "upload directory not available"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
