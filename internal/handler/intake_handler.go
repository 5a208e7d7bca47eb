package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cargodocs/internal/domain"
	"cargodocs/internal/service"
)

// IntakeHandler handles document upload and extraction.
type IntakeHandler struct {
	intake service.IntakeService
}

// NewIntakeHandler creates a new IntakeHandler.
func NewIntakeHandler(intake service.IntakeService) *IntakeHandler {
	return &IntakeHandler{intake: intake}
}

// intakeResponse is what the bot needs to drive the confirmation dialog.
type intakeResponse struct {
	Status   string                  `json:"status"`
	Dados    domain.ExtractionResult `json:"dados"`
	TempPath string                  `json:"temp_path"`
	Chave    string                  `json:"chave,omitempty"`
	Datanasc string                  `json:"datanasc,omitempty"`
}

// Upload handles POST /upload.
func (h *IntakeHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "campo 'file' é obrigatório")
		return
	}
	defer func() { _ = file.Close() }()

	tipo := domain.ParseDocumentType(c.PostForm("tipo"))

	res, err := h.intake.Process(c.Request.Context(), service.IntakeInput{
		File:   file,
		Header: header,
		Tipo:   tipo,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, intakeResponse{
		Status:   "processado",
		Dados:    res.Dados,
		TempPath: res.TempPath,
		Chave:    res.Chave,
		Datanasc: res.Datanasc,
	})
}
