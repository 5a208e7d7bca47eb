package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cargodocs/internal/domain"
	"cargodocs/internal/middleware"
	"cargodocs/internal/service"
)

// OcorrenciaHandler records delivery occurrences.
type OcorrenciaHandler struct {
	ocorrencia service.OcorrenciaService
}

// NewOcorrenciaHandler creates a new OcorrenciaHandler.
func NewOcorrenciaHandler(ocorrencia service.OcorrenciaService) *OcorrenciaHandler {
	return &OcorrenciaHandler{ocorrencia: ocorrencia}
}

type ocorrenciaRequest struct {
	Nomovtra int    `json:"nomovtra" binding:"required"`
	Texto    string `json:"texto" binding:"required"`
	Usuario  string `json:"usuario" binding:"required"`
}

// Save handles POST /ocorrencia.
func (h *OcorrenciaHandler) Save(c *gin.Context) {
	businessNumber, err := middleware.GetBusinessNumber(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_WHATSAPP_NUMBER", "header x-whatsapp-number é obrigatório")
		return
	}

	var req ocorrenciaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "corpo inválido: "+err.Error())
		return
	}

	if err := h.ocorrencia.Save(c.Request.Context(), businessNumber, domain.Ocorrencia{
		Nomovtra: req.Nomovtra,
		Texto:    req.Texto,
		Usuario:  req.Usuario,
	}); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"status": "ok"})
}
