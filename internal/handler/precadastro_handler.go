package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cargodocs/internal/middleware"
	"cargodocs/internal/service"
)

// PrecadastroHandler stores reviewed driver pre-registrations.
type PrecadastroHandler struct {
	precadastro service.PrecadastroService
}

// NewPrecadastroHandler creates a new PrecadastroHandler.
func NewPrecadastroHandler(precadastro service.PrecadastroService) *PrecadastroHandler {
	return &PrecadastroHandler{precadastro: precadastro}
}

type precadastroRequest struct {
	Dados map[string]string `json:"dados" binding:"required"`
	Link  string            `json:"link"`
}

// Save handles POST /precadastro.
func (h *PrecadastroHandler) Save(c *gin.Context) {
	businessNumber, err := middleware.GetBusinessNumber(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_WHATSAPP_NUMBER", "header x-whatsapp-number é obrigatório")
		return
	}

	var req precadastroRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "corpo inválido: "+err.Error())
		return
	}

	if err := h.precadastro.Save(c.Request.Context(), service.PrecadastroInput{
		BusinessNumber: businessNumber,
		Dados:          req.Dados,
		Link:           req.Link,
	}); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"status": "salvo"})
}
