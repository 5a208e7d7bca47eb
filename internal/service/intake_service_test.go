package service

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/textproto"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"cargodocs/internal/config"
	"cargodocs/internal/domain"
	"cargodocs/internal/extractor"
	"cargodocs/internal/port"
	"cargodocs/mocks"
)

type memFile struct {
	*bytes.Reader
}

func (memFile) Close() error { return nil }

func uploadInput(name, contentType string, contents []byte, tipo domain.DocumentType) IntakeInput {
	hdr := &multipart.FileHeader{
		Filename: name,
		Header:   textproto.MIMEHeader{"Content-Type": []string{contentType}},
		Size:     int64(len(contents)),
	}
	return IntakeInput{
		File:   memFile{bytes.NewReader(contents)},
		Header: hdr,
		Tipo:   tipo,
	}
}

func TestProcess_FileTooLarge(t *testing.T) {
	cfg := &config.UploadConfig{Dir: t.TempDir(), MaxFileSizeMB: 1}
	svc := NewIntakeService(extractor.NewEngine(new(mocks.MockChatModel), "p", "f"), nil, cfg)

	input := uploadInput("a.jpg", "image/jpeg", []byte("x"), domain.DocTypePessoa)
	input.Header.Size = 2 * 1024 * 1024

	_, err := svc.Process(context.Background(), input)
	assert.ErrorIs(t, err, domain.ErrFileTooLarge)
}

func TestProcess_UnsupportedType(t *testing.T) {
	cfg := &config.UploadConfig{Dir: t.TempDir(), MaxFileSizeMB: 25}
	svc := NewIntakeService(extractor.NewEngine(new(mocks.MockChatModel), "p", "f"), nil, cfg)

	_, err := svc.Process(context.Background(), uploadInput("a.zip", "application/zip", []byte("x"), domain.DocTypePessoa))
	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
}

func TestProcess_CTEImage(t *testing.T) {
	const key = "42250612345678000195570010000012341000012349"

	client := new(mocks.MockChatModel)
	client.On("Complete", mock.Anything, mock.MatchedBy(func(req port.ChatRequest) bool {
		return req.Prompt == extractor.PromptCTEPreview
	})).Return("📦 CT-e\nEmitente: ACME TRANSPORTES", nil).Once()
	client.On("Complete", mock.Anything, mock.MatchedBy(func(req port.ChatRequest) bool {
		return req.Prompt == extractor.PromptCTEKey
	})).Return(key, nil).Once()

	dir := t.TempDir()
	cfg := &config.UploadConfig{Dir: dir, MaxFileSizeMB: 25}
	svc := NewIntakeService(extractor.NewEngine(client, "p", "f"), nil, cfg)

	res, err := svc.Process(context.Background(), uploadInput("cte.jpg", "image/jpeg", []byte("img"), domain.DocTypeCTE))
	require.NoError(t, err)

	assert.Equal(t, key, res.Chave)
	assert.Contains(t, res.Dados.Text, "Chave: "+key)
	assert.Contains(t, res.Dados.Text, "ACME TRANSPORTES")

	// the upload stays on disk for the confirmation step
	_, statErr := os.Stat(res.TempPath)
	assert.NoError(t, statErr)
	client.AssertExpectations(t)
}

func TestProcess_CTEImage_KeyFromPreviewText(t *testing.T) {
	const key = "42250612345678000195570010000012341000012349"

	client := new(mocks.MockChatModel)
	client.On("Complete", mock.Anything, mock.MatchedBy(func(req port.ChatRequest) bool {
		return req.Prompt == extractor.PromptCTEPreview
	})).Return("📦 CT-e\nChave de acesso: "+key, nil).Once()
	client.On("Complete", mock.Anything, mock.MatchedBy(func(req port.ChatRequest) bool {
		return req.Prompt == extractor.PromptCTEKey
	})).Return("NAO_ENCONTRADO", nil).Once()

	cfg := &config.UploadConfig{Dir: t.TempDir(), MaxFileSizeMB: 25}
	svc := NewIntakeService(extractor.NewEngine(client, "p", "f"), nil, cfg)

	res, err := svc.Process(context.Background(), uploadInput("cte.png", "image/png", []byte("img"), domain.DocTypeCTE))
	require.NoError(t, err)
	assert.Equal(t, key, res.Chave)
}

type fakePDF struct {
	text string
	err  error
}

func (f fakePDF) ExtractFile(ctx context.Context, path string) (string, error) {
	return f.text, f.err
}

func TestProcess_CTEPDF(t *testing.T) {
	const key = "42250612345678000195570010000012341000012349"

	client := new(mocks.MockChatModel)
	client.On("Complete", mock.Anything, mock.MatchedBy(func(req port.ChatRequest) bool {
		return req.Prompt == extractor.PromptCTEPreview && req.Text != ""
	})).Return("📦 CT-e\nEmitente: ACME", nil).Once()
	client.On("Complete", mock.Anything, mock.MatchedBy(func(req port.ChatRequest) bool {
		return req.Prompt == extractor.PromptCTEKey
	})).Return(key, nil).Once()

	cfg := &config.UploadConfig{Dir: t.TempDir(), MaxFileSizeMB: 25}
	svc := NewIntakeService(extractor.NewEngine(client, "p", "f"), fakePDF{text: "DACTE chave " + key}, cfg)

	res, err := svc.Process(context.Background(), uploadInput("cte.pdf", "application/pdf", []byte("%PDF"), domain.DocTypeCTE))
	require.NoError(t, err)
	assert.Equal(t, key, res.Chave)
}

func TestProcess_ErrorRemovesTempFile(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.UploadConfig{Dir: dir, MaxFileSizeMB: 25}
	svc := NewIntakeService(extractor.NewEngine(new(mocks.MockChatModel), "p", "f"), fakePDF{err: os.ErrNotExist}, cfg)

	_, err := svc.Process(context.Background(), uploadInput("doc.pdf", "application/pdf", []byte("%PDF"), domain.DocTypePessoa))
	require.Error(t, err)

	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}
