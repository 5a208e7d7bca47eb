package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"cargodocs/internal/domain"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		return http.StatusBadRequest, "VALIDATION", vErr.Error()
	}
	var tcErr *domain.TenantConfigError
	if errors.As(err, &tcErr) {
		return http.StatusInternalServerError, "TENANT_CONFIG", tcErr.Error()
	}

	switch {
	case errors.Is(err, domain.ErrTenantNotFound):
		return http.StatusNotFound, "TENANT_NOT_FOUND", "cliente não encontrado para o WhatsApp informado"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "registro não encontrado"
	case errors.Is(err, domain.ErrNotAuthorized):
		return http.StatusForbidden, "NOT_AUTHORIZED", "motorista não autorizado para este registro"
	case errors.Is(err, domain.ErrDuplicateCPF):
		return http.StatusConflict, "DUPLICATE_CPF", "CPF já cadastrado"
	case errors.Is(err, domain.ErrMissingInput):
		return http.StatusBadRequest, "MISSING_INPUT", "nenhum conteúdo para processar"
	case errors.Is(err, domain.ErrInvalidImageMIME):
		return http.StatusBadRequest, "INVALID_IMAGE", "tipo de imagem inválido"
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return http.StatusUnsupportedMediaType, "UNSUPPORTED_FILE_TYPE", "tipo de arquivo não suportado"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "arquivo excede o tamanho máximo permitido"
	case errors.Is(err, domain.ErrTempFileNotFound):
		return http.StatusNotFound, "TEMP_FILE_NOT_FOUND", "arquivo temporário não encontrado"
	case errors.Is(err, domain.ErrTempPathIsDir):
		return http.StatusBadRequest, "TEMP_PATH_IS_DIR", "caminho recebido é uma pasta, não um arquivo"
	case errors.Is(err, domain.ErrExtractionFailed):
		return http.StatusBadGateway, "EXTRACTION_FAILED", "falha ao extrair dados do documento"
	case errors.Is(err, domain.ErrArchiveFailed):
		return http.StatusInternalServerError, "ARCHIVE_FAILED", "falha ao arquivar o documento"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "erro interno ao processar a solicitação"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] internal error: %v", requestID, err)
	}
	RespondError(c, status, code, msg)
}
