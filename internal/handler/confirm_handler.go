package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cargodocs/internal/middleware"
	"cargodocs/internal/service"
)

// ConfirmHandler finishes or cancels a pending document intake.
type ConfirmHandler struct {
	confirm service.ConfirmService
}

// NewConfirmHandler creates a new ConfirmHandler.
func NewConfirmHandler(confirm service.ConfirmService) *ConfirmHandler {
	return &ConfirmHandler{confirm: confirm}
}

type confirmRequest struct {
	ChaveAcesso string            `json:"chave_acesso" binding:"required"`
	Confirma    bool              `json:"confirma"`
	Dados       map[string]string `json:"dados"`
	TempPath    string            `json:"temp_path"`
}

// Confirm handles POST /confirmar.
func (h *ConfirmHandler) Confirm(c *gin.Context) {
	businessNumber, err := middleware.GetBusinessNumber(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_WHATSAPP_NUMBER", "header x-whatsapp-number é obrigatório")
		return
	}

	var req confirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "corpo inválido: "+err.Error())
		return
	}

	res, err := h.confirm.Confirm(c.Request.Context(), service.ConfirmInput{
		BusinessNumber: businessNumber,
		ChaveAcesso:    req.ChaveAcesso,
		Confirma:       req.Confirma,
		Dados:          req.Dados,
		TempPath:       req.TempPath,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"status": res.Status, "mensagem": res.Mensagem})
}
