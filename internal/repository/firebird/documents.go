// Package firebird holds the tenant-database repositories. Connections are
// opened per request from registry credentials, so every repository is
// constructed around an already-open *sqlx.DB instead of holding one for the
// process lifetime.
package firebird

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"cargodocs/internal/card"
	"cargodocs/internal/domain"
	"cargodocs/internal/fiscal"
)

// NOT NULL columns that the bot may legitimately not know yet.
const (
	cnpjPlaceholder    = "00000000000000"
	caminhoPlaceholder = "SEM_ARQUIVO"
)

// Document statuses written to DOCUMENTOS.STATUS_PROCESSAMENTO.
const (
	StatusSavedKey  = "salvo_chave"
	StatusConfirmed = "confirmado"
)

// DocumentRecord is one row of the DOCUMENTOS table.
type DocumentRecord struct {
	ChaveAcesso    string
	DataEmissao    time.Time
	MotoristaID    int
	CNPJEmitente   string // optional, 14 digits when present
	CaminhoArquivo string // optional archive path
	Status         string // derived from CaminhoArquivo when empty
}

// DocumentRepo persists fiscal documents keyed by their 44-digit access key.
type DocumentRepo struct {
	db *sqlx.DB
}

// NewDocumentRepo wraps an open tenant connection.
func NewDocumentRepo(db *sqlx.DB) *DocumentRepo {
	return &DocumentRepo{db: db}
}

// Upsert inserts the record and, when the key already exists (Firebird
// error -803 / unique violation), updates the existing row. On update the
// optional columns only overwrite when a new value is present.
func (r *DocumentRepo) Upsert(ctx context.Context, rec DocumentRecord) error {
	chave := fiscal.NormalizeKey(rec.ChaveAcesso)
	if chave == "" {
		return domain.NewValidationError("chave_acesso", fmt.Sprintf("deve conter exatamente %d dígitos", fiscal.KeyLength))
	}

	if rec.DataEmissao.IsZero() {
		rec.DataEmissao = fiscal.InferEmissionDate(chave, time.Now())
	}

	cnpj := card.Digits(rec.CNPJEmitente)
	if len(cnpj) != 14 {
		cnpj = ""
	}
	caminho := strings.TrimSpace(rec.CaminhoArquivo)
	if caminho == "." {
		caminho = ""
	}

	status := rec.Status
	if status == "" {
		status = StatusSavedKey
		if caminho != "" {
			status = StatusConfirmed
		}
	}

	cnpjFinal := cnpj
	if cnpjFinal == "" {
		cnpjFinal = cnpjPlaceholder
	}
	caminhoFinal := caminho
	if caminhoFinal == "" {
		caminhoFinal = caminhoPlaceholder
	}

	_, err := r.db.ExecContext(ctx, `INSERT INTO DOCUMENTOS (
		MOTORISTA_ID, CHAVE_ACESSO, DATA_EMISSAO, CNPJ_EMITENTE, CAMINHO_ARQUIVO, STATUS_PROCESSAMENTO
	) VALUES (?, ?, ?, ?, ?, ?)`,
		rec.MotoristaID, chave, rec.DataEmissao, cnpjFinal, caminhoFinal, status)
	if err == nil {
		return nil
	}
	if !isUniqueViolation(err) {
		return fmt.Errorf("documentRepo.Upsert insert: %w", err)
	}

	log.Printf("firebird.DocumentRepo: key %s exists, updating", chave)

	// Optional columns keep their stored value when the new one is absent.
	_, err = r.db.ExecContext(ctx, `UPDATE DOCUMENTOS
	   SET MOTORISTA_ID = ?,
	       DATA_EMISSAO = ?,
	       CNPJ_EMITENTE = COALESCE(?, CNPJ_EMITENTE),
	       CAMINHO_ARQUIVO = COALESCE(?, CAMINHO_ARQUIVO),
	       STATUS_PROCESSAMENTO = ?
	 WHERE CHAVE_ACESSO = ?`,
		rec.MotoristaID, rec.DataEmissao, nullable(cnpj), nullable(caminho), status, chave)
	if err != nil {
		return fmt.Errorf("documentRepo.Upsert update: %w", err)
	}
	return nil
}

// isUniqueViolation matches Firebird's -803 unique-constraint error.
func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "-803") || strings.Contains(strings.ToUpper(msg), "UNIQUE")
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
