package firebird

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"cargodocs/internal/card"
	"cargodocs/internal/domain"
)

// pessoaMaxLen caps every VARCHAR column of TABPRECAD_PESSOA. Values are
// truncated to fit rather than rejected; the operator reviews the row later.
var pessoaMaxLen = map[string]int{
	"NOME":          150,
	"CIDADENASC":    50,
	"UFEMISSOR":     10,
	"ORGAOEMISSOR":  20,
	"RG":            20,
	"CPF":           20,
	"CNH_REGISTRO":  20,
	"CNH_CAT":       10,
	"NACIONALIDADE": 20,
	"FIL_PAI":       50,
	"FIL_MAE":       50,
	"CNH_PROTOCOLO": 20,
	"UFEXPEDICAO":   10,
	"CNH_SEGURO":    50,
	"LINK":          500,
	"TELEFONE":      32,
}

// pessoaDateColumns hold DD/MM/YYYY dates in the inbound payload.
var pessoaDateColumns = []string{"DATANASC", "CNH_DATAEMISSAO", "CNH_DATA1CNH", "CNH_DATAVCTO"}

// pessoaColumnOrder fixes the column order of the dynamic INSERT so queries
// are reproducible in logs.
var pessoaColumnOrder = []string{
	"NOME", "CNH_DATAEMISSAO", "CNH_DATA1CNH", "CNH_DATAVCTO", "DATANASC",
	"CIDADENASC", "UFEMISSOR", "ORGAOEMISSOR", "RG", "CPF",
	"CNH_REGISTRO", "CNH_CAT", "NACIONALIDADE", "FIL_PAI", "FIL_MAE",
	"CNH_PROTOCOLO", "UFEXPEDICAO", "CNH_SEGURO", "LINK", "TELEFONE",
}

var reOrgProtocolo = regexp.MustCompile(`(?i)\b([A-Z]{2})(\d+)\b`)

// PessoaRepo writes driver pre-registrations into TABPRECAD_PESSOA.
type PessoaRepo struct {
	db *sqlx.DB
}

// NewPessoaRepo wraps an open tenant connection.
func NewPessoaRepo(db *sqlx.DB) *PessoaRepo {
	return &PessoaRepo{db: db}
}

// Insert validates and stores one pre-registration. The payload is a flat
// column/value map; unknown keys are ignored, empty values are skipped, and
// DATAREG is always stamped with today.
func (r *PessoaRepo) Insert(ctx context.Context, dados map[string]string) error {
	dados = splitOrgUFProtocolo(cloneUpper(dados))

	for _, col := range []string{"CPF", "NOME", "DATANASC"} {
		if strings.TrimSpace(dados[col]) == "" {
			return domain.NewValidationError(col, "campo obrigatório ausente")
		}
	}
	for _, col := range pessoaDateColumns {
		if v := strings.TrimSpace(dados[col]); v != "" {
			if _, err := parseDateBR(v); err != nil {
				return domain.NewValidationError(col, fmt.Sprintf("data inválida: %s", v))
			}
		}
	}
	if len(card.Digits(dados["CPF"])) != 11 {
		return domain.NewValidationError("CPF", fmt.Sprintf("CPF inválido: %s", dados["CPF"]))
	}

	exists, err := r.cpfExists(ctx, dados["CPF"])
	if err != nil {
		return fmt.Errorf("pessoaRepo.Insert duplicate check: %w", err)
	}
	if exists {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateCPF, dados["CPF"])
	}

	columns := []string{"DATAREG"}
	values := []interface{}{time.Now()}
	dateCols := make(map[string]bool, len(pessoaDateColumns))
	for _, c := range pessoaDateColumns {
		dateCols[c] = true
	}

	for _, col := range pessoaColumnOrder {
		v := strings.TrimSpace(dados[col])
		if v == "" {
			continue
		}
		switch {
		case dateCols[col]:
			d, _ := parseDateBR(v)
			columns = append(columns, col)
			values = append(values, d)
		case col == "TELEFONE":
			columns = append(columns, col)
			values = append(values, fitColumn(pessoaMaxLen, col, card.Digits(v)))
		default:
			columns = append(columns, col)
			values = append(values, fitColumn(pessoaMaxLen, col, v))
		}
	}

	query := fmt.Sprintf("INSERT INTO TABPRECAD_PESSOA (%s) VALUES (%s)",
		strings.Join(columns, ", "), placeholders(len(columns)))
	if _, err := r.db.ExecContext(ctx, query, values...); err != nil {
		return fmt.Errorf("pessoaRepo.Insert: %w", err)
	}
	return nil
}

// cpfExists checks the CPF against registered clients and pending
// pre-registrations, in the raw, digit-only and masked spellings.
func (r *PessoaRepo) cpfExists(ctx context.Context, cpf string) (bool, error) {
	raw := strings.TrimSpace(cpf)
	digits := card.Digits(raw)
	masked := raw
	if len(digits) == 11 {
		masked = card.FormatCPF(digits)
	}

	var one int
	err := r.db.GetContext(ctx, &one,
		"SELECT FIRST 1 1 FROM TABCLI WHERE CGCCLI = ? OR CGCCLI = ? OR CGCCLI = ?",
		raw, digits, masked)
	if err == nil {
		return true, nil
	}
	if !isNoRows(err) {
		return false, err
	}

	err = r.db.GetContext(ctx, &one,
		"SELECT FIRST 1 1 FROM TABPRECAD_PESSOA WHERE CPF = ? OR CPF = ? OR CPF = ?",
		raw, digits, masked)
	if err == nil {
		return true, nil
	}
	if !isNoRows(err) {
		return false, err
	}
	return false, nil
}

// splitOrgUFProtocolo breaks an ORGAOEMISSOR of the form
// "NNNNNNNNNNN / SC999999999" into registry number, issuing state and
// protocol, rewriting the column to "DETRAN/UF".
func splitOrgUFProtocolo(dados map[string]string) map[string]string {
	org := strings.TrimSpace(dados["ORGAOEMISSOR"])
	if !strings.Contains(org, "/") {
		return dados
	}
	parts := strings.SplitN(org, "/", 2)
	left, right := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])

	if reg := card.Digits(left); len(reg) >= 5 && dados["CNH_REGISTRO"] == "" {
		dados["CNH_REGISTRO"] = reg
	}
	if m := reOrgProtocolo.FindStringSubmatch(right); m != nil {
		uf := strings.ToUpper(m[1])
		if dados["UFEXPEDICAO"] == "" {
			dados["UFEXPEDICAO"] = uf
		}
		if dados["CNH_PROTOCOLO"] == "" {
			dados["CNH_PROTOCOLO"] = strings.ToUpper(m[0])
		}
		dados["ORGAOEMISSOR"] = "DETRAN/" + uf
	}
	return dados
}
