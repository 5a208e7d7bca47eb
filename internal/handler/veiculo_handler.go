package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cargodocs/internal/middleware"
	"cargodocs/internal/service"
)

// VeiculoHandler stores reviewed vehicle pre-registrations.
type VeiculoHandler struct {
	veiculo service.VeiculoService
}

// NewVeiculoHandler creates a new VeiculoHandler.
func NewVeiculoHandler(veiculo service.VeiculoService) *VeiculoHandler {
	return &VeiculoHandler{veiculo: veiculo}
}

type veiculoRequest struct {
	Dados map[string]string `json:"dados" binding:"required"`
	Link  string            `json:"link"`
}

// Save handles POST /cadastroveiculo.
func (h *VeiculoHandler) Save(c *gin.Context) {
	businessNumber, err := middleware.GetBusinessNumber(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_WHATSAPP_NUMBER", "header x-whatsapp-number é obrigatório")
		return
	}

	var req veiculoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "corpo inválido: "+err.Error())
		return
	}

	if err := h.veiculo.Save(c.Request.Context(), service.VeiculoInput{
		BusinessNumber: businessNumber,
		Dados:          req.Dados,
		Link:           req.Link,
	}); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"status": "salvo"})
}
