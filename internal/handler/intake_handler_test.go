package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"cargodocs/internal/domain"
	"cargodocs/internal/service"
)

func intakeRouter(svc service.IntakeService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/upload", NewIntakeHandler(svc).Upload)
	return r
}

func multipartUpload(t *testing.T, filename, contentType, tipo string, contents []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	hdr.Set("Content-Type", contentType)
	part, err := w.CreatePart(hdr)
	require.NoError(t, err)
	_, err = part.Write(contents)
	require.NoError(t, err)

	if tipo != "" {
		require.NoError(t, w.WriteField("tipo", tipo))
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestUpload_Success(t *testing.T) {
	svc := new(MockIntakeService)
	svc.On("Process", mock.Anything, mock.MatchedBy(func(in service.IntakeInput) bool {
		return in.Tipo == domain.DocTypeCTE && in.Header.Filename == "cte.jpg"
	})).Return(&service.IntakeResult{
		Dados:    domain.ExtractionResult{Kind: "text", Text: "📦 CT-e\nChave: 123"},
		TempPath: "/var/uploads/abc.jpg",
		Chave:    "42250612345678000195570010000012341000012349",
	}, nil).Once()

	body, ctype := multipartUpload(t, "cte.jpg", "image/jpeg", "cte", []byte("img"))
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", ctype)
	w := httptest.NewRecorder()
	intakeRouter(svc).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "processado", data["status"])
	assert.Equal(t, "42250612345678000195570010000012341000012349", data["chave"])
	assert.Equal(t, "/var/uploads/abc.jpg", data["temp_path"])
	svc.AssertExpectations(t)
}

func TestUpload_MissingFile(t *testing.T) {
	svc := new(MockIntakeService)

	req := httptest.NewRequest(http.MethodPost, "/upload", bytes.NewReader(nil))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
	w := httptest.NewRecorder()
	intakeRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "MISSING_FILE")
	svc.AssertNotCalled(t, "Process", mock.Anything, mock.Anything)
}

func TestUpload_FileTooLarge(t *testing.T) {
	svc := new(MockIntakeService)
	svc.On("Process", mock.Anything, mock.Anything).Return(nil, domain.ErrFileTooLarge).Once()

	body, ctype := multipartUpload(t, "big.jpg", "image/jpeg", "", []byte("img"))
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", ctype)
	w := httptest.NewRecorder()
	intakeRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Contains(t, w.Body.String(), "FILE_TOO_LARGE")
}

func TestUpload_DefaultsTipoToPessoa(t *testing.T) {
	svc := new(MockIntakeService)
	svc.On("Process", mock.Anything, mock.MatchedBy(func(in service.IntakeInput) bool {
		return in.Tipo == domain.DocTypePessoa
	})).Return(&service.IntakeResult{
		Dados: domain.ExtractionResult{Kind: "text", Text: "Nome: MARIA"},
	}, nil).Once()

	body, ctype := multipartUpload(t, "cnh.jpg", "image/jpeg", "", []byte("img"))
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", ctype)
	w := httptest.NewRecorder()
	intakeRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}
