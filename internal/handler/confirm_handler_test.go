package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"cargodocs/internal/domain"
	"cargodocs/internal/middleware"
	"cargodocs/internal/service"
)

func confirmRouter(svc service.ConfirmService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/confirmar", middleware.RequireBusinessNumber(), NewConfirmHandler(svc).Confirm)
	return r
}

func postJSON(r http.Handler, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	b, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestConfirm_Success(t *testing.T) {
	svc := new(MockConfirmService)
	svc.On("Confirm", mock.Anything, mock.MatchedBy(func(in service.ConfirmInput) bool {
		return in.BusinessNumber == "5549999990000" && in.Confirma
	})).Return(&service.ConfirmResult{Status: "salvo", Mensagem: "Documento confirmado, salvo no banco e arquivado."}, nil).Once()

	w := postJSON(confirmRouter(svc), "/confirmar", gin.H{
		"chave_acesso": "42250612345678000195570010000012341000012349",
		"confirma":     true,
		"temp_path":    "doc.jpg",
	}, map[string]string{middleware.BusinessNumberHeader: "5549999990000"})

	require.Equal(t, http.StatusOK, w.Code)

	var resp APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "salvo", data["status"])
	svc.AssertExpectations(t)
}

func TestConfirm_MissingHeader(t *testing.T) {
	svc := new(MockConfirmService)

	w := postJSON(confirmRouter(svc), "/confirmar", gin.H{
		"chave_acesso": "42250612345678000195570010000012341000012349",
	}, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "MISSING_WHATSAPP_NUMBER")
	svc.AssertNotCalled(t, "Confirm", mock.Anything, mock.Anything)
}

func TestConfirm_MissingKey(t *testing.T) {
	svc := new(MockConfirmService)

	w := postJSON(confirmRouter(svc), "/confirmar", gin.H{"confirma": true},
		map[string]string{middleware.BusinessNumberHeader: "5549999990000"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_BODY")
}

func TestConfirm_TenantNotFound(t *testing.T) {
	svc := new(MockConfirmService)
	svc.On("Confirm", mock.Anything, mock.Anything).Return(nil, domain.ErrTenantNotFound).Once()

	w := postJSON(confirmRouter(svc), "/confirmar", gin.H{
		"chave_acesso": "42250612345678000195570010000012341000012349",
		"confirma":     true,
	}, map[string]string{middleware.BusinessNumberHeader: "5549999990000"})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "TENANT_NOT_FOUND")
}
