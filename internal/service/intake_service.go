package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"cargodocs/internal/card"
	"cargodocs/internal/cnh"
	"cargodocs/internal/config"
	"cargodocs/internal/domain"
	"cargodocs/internal/extractor"
	"cargodocs/internal/fiscal"
)

// cteKeyLabel is the labeled line of the manifest preview that carries the
// access key.
const cteKeyLabel = "Chave"

// IntakeInput is the DTO for document upload requests.
type IntakeInput struct {
	File   multipart.File
	Header *multipart.FileHeader
	Tipo   domain.DocumentType
}

// IntakeResult is what the bot shows the driver for confirmation.
type IntakeResult struct {
	Dados    domain.ExtractionResult
	TempPath string
	Chave    string // 44-digit manifest key, cte only
	Datanasc string // DD/MM/YYYY from the verification pass, pessoa only
}

// IntakeService turns an uploaded file into a reviewable card.
type IntakeService interface {
	Process(ctx context.Context, input IntakeInput) (*IntakeResult, error)
}

// PDFTextExtractor pulls the text layer from a stored PDF.
type PDFTextExtractor interface {
	ExtractFile(ctx context.Context, path string) (string, error)
}

type intakeService struct {
	engine *extractor.Engine
	pdf    PDFTextExtractor
	cfg    *config.UploadConfig
}

// NewIntakeService creates the intake pipeline.
func NewIntakeService(engine *extractor.Engine, pdf PDFTextExtractor, cfg *config.UploadConfig) IntakeService {
	return &intakeService{engine: engine, pdf: pdf, cfg: cfg}
}

func (s *intakeService) Process(ctx context.Context, input IntakeInput) (*IntakeResult, error) {
	if maxBytes := s.cfg.MaxFileSizeMB * 1024 * 1024; maxBytes > 0 && input.Header.Size > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	ctype := strings.ToLower(strings.TrimSpace(input.Header.Header.Get("Content-Type")))
	isImage := domain.AllowedImageTypes[ctype] || strings.HasPrefix(ctype, "image/")
	isPDF := ctype == "application/pdf"
	if !isImage && !isPDF {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFileType, ctype)
	}

	tempPath, contents, err := s.saveTemp(input)
	if err != nil {
		return nil, err
	}

	log.Printf("service.Intake: file %s (%s) tipo=%s -> %s",
		input.Header.Filename, ctype, input.Tipo, filepath.Base(tempPath))

	var res *IntakeResult
	if isImage {
		if ctype == "" {
			ctype = "image/jpeg"
		}
		res, err = s.processImage(ctx, contents, ctype, input.Tipo)
	} else {
		res, err = s.processPDF(ctx, tempPath, input.Tipo)
	}
	if err != nil {
		_ = os.Remove(tempPath)
		return nil, err
	}

	res.TempPath = tempPath
	return res, nil
}

func (s *intakeService) processImage(ctx context.Context, contents []byte, mime string, tipo domain.DocumentType) (*IntakeResult, error) {
	switch tipo {
	case domain.DocTypeVeiculo:
		text, err := s.engine.Extract(ctx, extractor.Request{
			ImageBytes: contents,
			ImageMIME:  mime,
			Prompt:     extractor.PromptVeiculo,
		})
		if err != nil {
			return nil, err
		}
		return textResult(text), nil

	case domain.DocTypeCTE:
		text, err := s.engine.Extract(ctx, extractor.Request{
			ImageBytes: contents,
			ImageMIME:  mime,
			Prompt:     extractor.PromptCTEPreview,
		})
		if err != nil {
			return nil, err
		}
		chave, keyErr := s.engine.ExtractKey(ctx, extractor.Request{ImageBytes: contents, ImageMIME: mime})
		if keyErr != nil {
			log.Printf("service.Intake: dedicated key pass failed: %v", keyErr)
		}
		if chave == "" {
			chave = fiscal.FindKey(text)
		}
		if chave != "" {
			text = card.ReplaceLine(text, cteKeyLabel, chave, cnh.SectionDocumento)
		}
		res := textResult(text)
		res.Chave = chave
		return res, nil

	default: // pessoa
		text, err := s.engine.Extract(ctx, extractor.Request{
			ImageBytes:    contents,
			ImageMIME:     mime,
			Prompt:        extractor.PromptCNH,
			UseStructured: true,
			ExpectJSON:    true,
		})
		if err != nil {
			return nil, err
		}

		ver := s.engine.Verify(ctx, contents, mime)
		text = cnh.Postprocess(cnh.Reconcile(text, ver))

		res := textResult(text)
		if d := strings.TrimSpace(ver.DOB); d != card.Absent {
			res.Datanasc = d
		}
		return res, nil
	}
}

func (s *intakeService) processPDF(ctx context.Context, tempPath string, tipo domain.DocumentType) (*IntakeResult, error) {
	rawText, err := s.pdf.ExtractFile(ctx, tempPath)
	if err != nil {
		return nil, fmt.Errorf("extracting pdf text: %w", err)
	}

	switch tipo {
	case domain.DocTypeVeiculo:
		text, err := s.engine.Extract(ctx, extractor.Request{
			Text:   rawText,
			Prompt: extractor.PromptVeiculo,
		})
		if err != nil {
			return nil, err
		}
		return textResult(text), nil

	case domain.DocTypeCTE:
		text, err := s.engine.Extract(ctx, extractor.Request{
			Text:   rawText,
			Prompt: extractor.PromptCTEPreview,
		})
		if err != nil {
			return nil, err
		}
		chave, keyErr := s.engine.ExtractKey(ctx, extractor.Request{Text: rawText})
		if keyErr != nil {
			log.Printf("service.Intake: dedicated key pass failed: %v", keyErr)
		}
		if chave == "" {
			chave = fiscal.FindKey(rawText)
		}
		if chave != "" {
			text = card.ReplaceLine(text, cteKeyLabel, chave, cnh.SectionDocumento)
		}
		res := textResult(text)
		res.Chave = chave
		return res, nil

	default: // pessoa, no verification pass without an image
		text, err := s.engine.Extract(ctx, extractor.Request{
			Text:          rawText,
			Prompt:        extractor.PromptCNH,
			UseStructured: true,
			ExpectJSON:    true,
		})
		if err != nil {
			return nil, err
		}
		return textResult(cnh.Postprocess(text)), nil
	}
}

// saveTemp stores the upload under a fresh UUID name and returns its path
// together with the full contents.
func (s *intakeService) saveTemp(input IntakeInput) (string, []byte, error) {
	if err := os.MkdirAll(s.cfg.Dir, 0o755); err != nil {
		return "", nil, fmt.Errorf("creating upload dir: %w", err)
	}

	contents, err := io.ReadAll(input.File)
	if err != nil {
		return "", nil, fmt.Errorf("reading upload: %w", err)
	}

	ext := filepath.Ext(input.Header.Filename)
	tempPath := filepath.Join(s.cfg.Dir, uuid.New().String()+ext)
	if err := os.WriteFile(tempPath, contents, 0o644); err != nil {
		return "", nil, fmt.Errorf("writing temp file: %w", err)
	}
	return tempPath, contents, nil
}

func textResult(text string) *IntakeResult {
	return &IntakeResult{Dados: domain.ExtractionResult{Kind: "text", Text: text}}
}
