package firebird

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"cargodocs/internal/card"
	"cargodocs/internal/domain"
	"cargodocs/internal/fiscal"
)

// ConsultaRepo answers driver queries against the legacy reporting tables.
// These tables were created under SQL dialect 1, so the connection handed in
// must be opened with that dialect pinned.
type ConsultaRepo struct {
	db *sqlx.DB
}

// NewConsultaRepo wraps an open tenant connection.
func NewConsultaRepo(db *sqlx.DB) *ConsultaRepo {
	return &ConsultaRepo{db: db}
}

// CTEByKey returns the freight-manifest summary for an access key, but only
// when the asking document matches the CPF of the driver bound to it.
func (r *ConsultaRepo) CTEByKey(ctx context.Context, chave, cpf string) (*domain.CTEInfo, error) {
	if fiscal.NormalizeKey(chave) == "" {
		return nil, domain.NewValidationError("chave", fmt.Sprintf("deve conter %d dígitos numéricos", fiscal.KeyLength))
	}

	var row struct {
		Status       sql.NullString  `db:"STATUSCTE"`
		DataEmi      sql.NullTime    `db:"DATAEMI"`
		TotalPeso    sql.NullFloat64 `db:"TOTALPESO"`
		Nomovtra     sql.NullInt64   `db:"NOMOVTRA"`
		Motivo       sql.NullString  `db:"MOTIVO"`
		MotoristaCPF sql.NullString  `db:"MOTORISTA_CPF"`
	}
	err := r.db.GetContext(ctx, &row, `SELECT FIRST 1
	       t.STATUSCTE,
	       t.DATAEMI,
	       t.TOTALPESO,
	       t.NOMOVTRA,
	       t.MOTIVO,
	       mot.CGCCLI AS MOTORISTA_CPF
	  FROM TABCTRC t
	  JOIN TABCLI mot ON mot.NOCLI = t.NOMOT
	 WHERE t.CHAVECTE = ?`, chave)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("%w: CT-e %s", domain.ErrNotFound, chave)
		}
		return nil, fmt.Errorf("consultaRepo.CTEByKey: %w", err)
	}

	asked := card.Digits(cpf)
	stored := card.Digits(row.MotoristaCPF.String)
	if stored == "" || asked != stored {
		return nil, domain.ErrNotAuthorized
	}

	info := &domain.CTEInfo{}
	if row.Status.Valid {
		info.Status = &row.Status.String
	}
	if row.DataEmi.Valid {
		s := fmtDateBR(row.DataEmi.Time)
		info.DataEmi = &s
	}
	if row.TotalPeso.Valid {
		info.TotalPeso = &row.TotalPeso.Float64
	}
	if row.Nomovtra.Valid {
		n := int(row.Nomovtra.Int64)
		info.Nomovtra = &n
	}
	if row.Motivo.Valid {
		info.Motivo = &row.Motivo.String
	}
	return info, nil
}

// EntregaByNumero returns the delivery summary for a movement number when
// the asking document belongs to the driver on the record. An 11-digit
// document matches a stored CPF exactly; a 14-digit one matches a stored
// CNPJ exactly; and a CPF is also accepted against a stored CNPJ whose last
// 11 digits embed it.
func (r *ConsultaRepo) EntregaByNumero(ctx context.Context, numero int, documento string) (*domain.EntregaInfo, error) {
	var row struct {
		Numero        sql.NullInt64   `db:"NUMERO"`
		Data          sql.NullTime    `db:"M_DATA"`
		DataHora      sql.NullTime    `db:"M_DATA_HORA"`
		ClienteNome   sql.NullString  `db:"CLIENTE_NOME"`
		ClienteCNPJ   sql.NullString  `db:"CLIENTE_CNPJ"`
		MotoristaNome sql.NullString  `db:"MOTORISTA_NOME"`
		MotoristaDoc  sql.NullString  `db:"MOTORISTA_DOC"`
		Placa         sql.NullString  `db:"PLACA"`
		ValorTotal    sql.NullFloat64 `db:"VALOR_TOTAL"`
	}
	err := r.db.GetContext(ctx, &row, `SELECT FIRST 1
	       m.NOMOVTRA   AS NUMERO,
	       m.DATA       AS M_DATA,
	       m.DATA_HORA  AS M_DATA_HORA,
	       c.NOMCLI     AS CLIENTE_NOME,
	       c.CGCCLI     AS CLIENTE_CNPJ,
	       mot.NOMCLI   AS MOTORISTA_NOME,
	       mot.CGCCLI   AS MOTORISTA_DOC,
	       m.PLACACAR   AS PLACA,
	       (SELECT SUM(nf.VLRTOTAL)
	          FROM TABMOVTRA_NF nf
	         WHERE nf.NOMOVTRA = m.NOMOVTRA) AS VALOR_TOTAL
	  FROM TABMOVTRA m
	  LEFT JOIN TABCLI c   ON c.NOCLI  = m.NOCLI
	  LEFT JOIN TABCLI mot ON mot.NOCLI = m.NOMOT
	 WHERE m.NOMOVTRA = ?`, numero)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("%w: entrega %d", domain.ErrNotFound, numero)
		}
		return nil, fmt.Errorf("consultaRepo.EntregaByNumero: %w", err)
	}

	if !driverAuthorized(card.Digits(documento), card.Digits(row.MotoristaDoc.String)) {
		return nil, domain.ErrNotAuthorized
	}

	info := &domain.EntregaInfo{}
	if row.Numero.Valid {
		n := int(row.Numero.Int64)
		info.Numero = &n
	}
	if row.Data.Valid {
		s := fmtDateBR(row.Data.Time)
		info.DataPrevista = &s
	}
	if row.Data.Valid && row.DataHora.Valid {
		d, t := row.Data.Time, row.DataHora.Time
		combined := time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.Local)
		s := fmtDateTimeBR(combined)
		info.DataEntrega = &s
	}
	if row.ClienteNome.Valid && row.ClienteNome.String != "" {
		info.ClienteNome = &row.ClienteNome.String
	}
	if row.ClienteCNPJ.Valid && row.ClienteCNPJ.String != "" {
		info.ClienteCNPJ = &row.ClienteCNPJ.String
	}
	if row.MotoristaNome.Valid && row.MotoristaNome.String != "" {
		info.MotoristaNome = &row.MotoristaNome.String
	}
	if row.Placa.Valid && row.Placa.String != "" {
		info.Placa = &row.Placa.String
	}
	if row.ValorTotal.Valid {
		s := fmtMoneyBR(row.ValorTotal.Float64)
		info.ValorTotal = &s
	}
	return info, nil
}

func driverAuthorized(asked, stored string) bool {
	if asked == "" || stored == "" {
		return false
	}
	switch {
	case len(asked) == 11 && len(stored) == 11:
		return asked == stored
	case len(asked) == 14 && len(stored) == 14:
		return asked == stored
	case len(asked) == 11 && len(stored) == 14:
		// Some tenants store the driver's CPF embedded in a CNPJ column.
		return asked == stored[len(stored)-11:]
	}
	return false
}
