package firebird

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
)

// veiculoMaxLen caps the VARCHAR columns of TABPRECAD_VEICULO.
var veiculoMaxLen = map[string]int{
	"PLACA":         10,
	"RENAVAN":       30,
	"CATEGORIA":     100,
	"CAPACIDADE":    50,
	"POTENCIA":      50,
	"PESOBRUTO":     50,
	"MOTOR":         50,
	"CMT":           50,
	"LOTACAO":       50,
	"CARROCERIA":    50,
	"NOME":          150,
	"CPFCNPJ":       20,
	"LOCALIDADE":    50,
	"CODIGOCLA":     50,
	"CAT":           50,
	"MARCA_MODELO":  50,
	"ESPECIE_TIPO":  50,
	"PLACAANTERIOR": 10,
	"CHASSI":        50,
	"COR":           50,
	"COMBUSTIVEL":   50,
	"OBS":           500,
	"LINK":          500,
}

var veiculoIntColumns = map[string]bool{
	"ANOEXERCICIO":  true,
	"ANOMODELO":     true,
	"ANOFABRICACAO": true,
	"EIXOS":         true,
}

var veiculoDateColumns = map[string]bool{
	"DATA_LANC": true,
	"DATAALT":   true,
}

// veiculoAliases maps the labels the extraction card uses onto the real
// column names of the legacy table.
var veiculoAliases = map[string]string{
	"LOCAL": "LOCALIDADE",
	"DATA":  "DATA_LANC",
}

// veiculoColumnOrder fixes the column order of the dynamic INSERT.
var veiculoColumnOrder = []string{
	"PLACA", "RENAVAN", "ANOEXERCICIO", "ANOMODELO", "ANOFABRICACAO",
	"CATEGORIA", "CAPACIDADE", "POTENCIA", "PESOBRUTO", "MOTOR",
	"CMT", "EIXOS", "LOTACAO", "CARROCERIA", "NOME",
	"CPFCNPJ", "LOCALIDADE", "DATA_LANC", "DATAALT", "CODIGOCLA",
	"CAT", "MARCA_MODELO", "ESPECIE_TIPO", "PLACAANTERIOR", "CHASSI",
	"COR", "COMBUSTIVEL", "OBS", "LINK",
}

// VeiculoRepo writes vehicle pre-registrations into TABPRECAD_VEICULO.
type VeiculoRepo struct {
	db *sqlx.DB
}

// NewVeiculoRepo wraps an open tenant connection.
func NewVeiculoRepo(db *sqlx.DB) *VeiculoRepo {
	return &VeiculoRepo{db: db}
}

// Insert stores one vehicle pre-registration. Input keys are upper-cased and
// run through the alias table; unknown columns and empty values are dropped,
// unparseable integers and dates are skipped rather than rejected, and
// DATAREG is always stamped with today.
func (r *VeiculoRepo) Insert(ctx context.Context, dados map[string]string) error {
	norm := make(map[string]string, len(dados))
	for k, v := range cloneUpper(dados) {
		if real, ok := veiculoAliases[k]; ok {
			k = real
		}
		if _, ok := veiculoMaxLen[k]; ok || veiculoIntColumns[k] || veiculoDateColumns[k] {
			norm[k] = v
		}
	}

	columns := []string{"DATAREG"}
	values := []interface{}{time.Now()}

	for _, col := range veiculoColumnOrder {
		v := strings.TrimSpace(norm[col])
		if v == "" {
			continue
		}
		switch {
		case veiculoDateColumns[col]:
			d, err := parseDateBR(v)
			if err != nil {
				continue
			}
			columns = append(columns, col)
			values = append(values, d)
		case veiculoIntColumns[col]:
			n, err := strconv.Atoi(v)
			if err != nil {
				continue
			}
			columns = append(columns, col)
			values = append(values, n)
		default:
			columns = append(columns, col)
			values = append(values, fitColumn(veiculoMaxLen, col, v))
		}
	}

	query := fmt.Sprintf("INSERT INTO TABPRECAD_VEICULO (%s) VALUES (%s)",
		strings.Join(columns, ", "), placeholders(len(columns)))
	if _, err := r.db.ExecContext(ctx, query, values...); err != nil {
		return fmt.Errorf("veiculoRepo.Insert: %w", err)
	}
	return nil
}
