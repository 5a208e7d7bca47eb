package service

import (
	"context"
	"fmt"
	"log"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cargodocs/internal/config"
	"cargodocs/internal/domain"
	"cargodocs/internal/fiscal"
	"cargodocs/internal/port"
	repo "cargodocs/internal/repository/firebird"
)

// Confirmation statuses returned to the bot.
const (
	ConfirmPending  = "pendente"
	ConfirmSavedKey = "salvo_chave"
	ConfirmSaved    = "salvo"
)

// ConfirmInput is the DTO for document confirmation requests.
type ConfirmInput struct {
	BusinessNumber string
	ChaveAcesso    string
	Confirma       bool
	Dados          map[string]string
	TempPath       string
}

// ConfirmResult carries the outcome the bot relays to the driver.
type ConfirmResult struct {
	Status   string
	Mensagem string
}

// ConfirmService finishes (or cancels) a pending document intake.
type ConfirmService interface {
	Confirm(ctx context.Context, input ConfirmInput) (*ConfirmResult, error)
}

type confirmService struct {
	registry  port.TenantRegistry
	open      Opener
	storage   port.ObjectStorage
	uploadCfg *config.UploadConfig
	s3Cfg     *config.S3Config
}

// NewConfirmService wires the confirmation flow.
func NewConfirmService(registry port.TenantRegistry, open Opener, storage port.ObjectStorage, uploadCfg *config.UploadConfig, s3Cfg *config.S3Config) ConfirmService {
	return &confirmService{
		registry:  registry,
		open:      open,
		storage:   storage,
		uploadCfg: uploadCfg,
		s3Cfg:     s3Cfg,
	}
}

func (s *confirmService) Confirm(ctx context.Context, input ConfirmInput) (*ConfirmResult, error) {
	path := s.resolvePath(input.TempPath)

	if !input.Confirma {
		if path != "" {
			if st, err := os.Stat(path); err == nil && !st.IsDir() {
				if err := os.Remove(path); err != nil {
					log.Printf("service.Confirm: removing %s: %v", path, err)
				}
			}
		}
		return &ConfirmResult{Status: ConfirmPending, Mensagem: "Envie nova foto ou digite manualmente."}, nil
	}

	creds, err := s.registry.Resolve(ctx, input.BusinessNumber)
	if err != nil {
		return nil, err
	}
	db, err := s.open(creds)
	if err != nil {
		return nil, err
	}
	defer func() { _ = db.Close() }()

	rec := repo.DocumentRecord{
		ChaveAcesso:  input.ChaveAcesso,
		DataEmissao:  emissionDate(input.ChaveAcesso, input.Dados),
		MotoristaID:  1,
		CNPJEmitente: firstOf(input.Dados, "CNPJ_EMITENTE", "cnpj_emitente"),
	}

	// Key-only confirmation: nothing to archive.
	if path == "" {
		if err := repo.NewDocumentRepo(db).Upsert(ctx, rec); err != nil {
			return nil, err
		}
		return &ConfirmResult{Status: ConfirmSavedKey, Mensagem: "Chave confirmada e salva sem arquivo."}, nil
	}

	st, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrTempFileNotFound, path)
	}
	if st.IsDir() {
		return nil, fmt.Errorf("%w: %s", domain.ErrTempPathIsDir, path)
	}

	rec.CaminhoArquivo = path
	if err := repo.NewDocumentRepo(db).Upsert(ctx, rec); err != nil {
		return nil, err
	}

	if err := s.archive(ctx, input.ChaveAcesso, path); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrArchiveFailed, err)
	}

	return &ConfirmResult{Status: ConfirmSaved, Mensagem: "Documento confirmado, salvo no banco e arquivado."}, nil
}

// archive ships the confirmed file to the object store under the document key.
func (s *confirmService) archive(ctx context.Context, chave, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := strings.TrimSuffix(s.s3Cfg.Prefix, "/") + "/" + fiscal.NormalizeKey(chave) + "/" + filepath.Base(path)
	out, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.s3Cfg.Bucket,
		Key:         key,
		ContentType: contentType,
		Body:        f,
	})
	if err != nil {
		return err
	}
	log.Printf("service.Confirm: archived %s -> %s", filepath.Base(path), out.Location)
	return nil
}

// resolvePath normalizes a temp path from the bot: empty and "." mean no
// file, relative paths live under the upload dir.
func (s *confirmService) resolvePath(tp string) string {
	tp = strings.TrimSpace(tp)
	if tp == "" || tp == "." {
		return ""
	}
	if !filepath.IsAbs(tp) {
		return filepath.Join(s.uploadCfg.Dir, tp)
	}
	return filepath.Clean(tp)
}

// emissionDate takes the date from the payload when present and parseable,
// otherwise derives it from the key, otherwise today.
func emissionDate(chave string, dados map[string]string) time.Time {
	for _, k := range []string{"data_emissao", "DATA_EMISSAO"} {
		if v, ok := dados[k]; ok && v != "" {
			if d, err := parseDateFlex(v); err == nil {
				return d
			}
		}
	}
	return fiscal.InferEmissionDate(chave, time.Now())
}

// parseDateFlex accepts the date spellings seen from the bot: ISO date,
// Brazilian date, and ISO timestamps with and without zone.
func parseDateFlex(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range []string{
		"2006-01-02",
		"02/01/2006",
		"2006-01-02T15:04:05",
		"2006-01-02T15:04:05.999999999",
		time.RFC3339,
	} {
		if d, err := time.Parse(layout, value); err == nil {
			return d, nil
		}
	}
	if len(value) >= 10 {
		if d, err := time.Parse("2006-01-02", value[:10]); err == nil {
			return d, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", value)
}

func firstOf(m map[string]string, keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(m[k]); v != "" {
			return v
		}
	}
	return ""
}
