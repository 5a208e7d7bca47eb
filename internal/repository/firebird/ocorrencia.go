package firebird

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"cargodocs/internal/domain"
)

// OcorrenciaRepo appends free-text occurrences to deliveries in
// TABMOVTRA_OCO.
type OcorrenciaRepo struct {
	db *sqlx.DB
}

// NewOcorrenciaRepo wraps an open tenant connection.
func NewOcorrenciaRepo(db *sqlx.DB) *OcorrenciaRepo {
	return &OcorrenciaRepo{db: db}
}

// Save records one occurrence against an existing delivery, allocating the
// next NOITEM within the delivery. The delivery must exist.
func (r *OcorrenciaRepo) Save(ctx context.Context, oco domain.Ocorrencia) error {
	var one int
	err := r.db.GetContext(ctx, &one, "SELECT 1 FROM TABMOVTRA WHERE NOMOVTRA = ?", oco.Nomovtra)
	if err != nil {
		if isNoRows(err) {
			return fmt.Errorf("%w: entrega NOMOVTRA=%d", domain.ErrNotFound, oco.Nomovtra)
		}
		return fmt.Errorf("ocorrenciaRepo.Save lookup: %w", err)
	}

	var noitem int
	err = r.db.GetContext(ctx, &noitem,
		"SELECT COALESCE(MAX(NOITEM), 0) + 1 FROM TABMOVTRA_OCO WHERE NOMOVTRA = ?", oco.Nomovtra)
	if err != nil {
		return fmt.Errorf("ocorrenciaRepo.Save next item: %w", err)
	}

	now := time.Now()
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO TABMOVTRA_OCO (NOMOVTRA, NOITEM, DATA, HORA, OBS, USUARIO)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		oco.Nomovtra, noitem, now, now.Format("15:04"), oco.Texto, oco.Usuario)
	if err != nil {
		return fmt.Errorf("ocorrenciaRepo.Save insert: %w", err)
	}
	return nil
}
