package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"cargodocs/internal/middleware"
	"cargodocs/internal/service"
)

// ConsultaHandler answers driver lookups against the tenant database.
type ConsultaHandler struct {
	consulta service.ConsultaService
}

// NewConsultaHandler creates a new ConsultaHandler.
func NewConsultaHandler(consulta service.ConsultaService) *ConsultaHandler {
	return &ConsultaHandler{consulta: consulta}
}

// CTEByKey handles GET /cte/:chave.
func (h *ConsultaHandler) CTEByKey(c *gin.Context) {
	businessNumber, err := middleware.GetBusinessNumber(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_WHATSAPP_NUMBER", "header x-whatsapp-number é obrigatório")
		return
	}

	cpf := c.Query("cpf")
	if cpf == "" {
		RespondError(c, http.StatusBadRequest, "MISSING_CPF", "parâmetro 'cpf' é obrigatório")
		return
	}

	info, err := h.consulta.CTEByKey(c.Request.Context(), businessNumber, c.Param("chave"), cpf)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"cte": info})
}

// EntregaByNumero handles GET /entregas/:numero.
func (h *ConsultaHandler) EntregaByNumero(c *gin.Context) {
	businessNumber, err := middleware.GetBusinessNumber(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_WHATSAPP_NUMBER", "header x-whatsapp-number é obrigatório")
		return
	}

	documento := c.Query("cpf")
	if documento == "" {
		RespondError(c, http.StatusBadRequest, "MISSING_CPF", "parâmetro 'cpf' é obrigatório")
		return
	}

	numero, err := strconv.Atoi(c.Param("numero"))
	if err != nil || numero <= 0 {
		RespondError(c, http.StatusBadRequest, "INVALID_NUMERO", "número da entrega inválido")
		return
	}

	info, err := h.consulta.EntregaByNumero(c.Request.Context(), businessNumber, numero, documento)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"entrega": info})
}
