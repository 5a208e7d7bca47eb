package firebird

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// parseDateBR parses the DD/MM/YYYY dates used across the tenant payloads.
func parseDateBR(value string) (time.Time, error) {
	return time.Parse("02/01/2006", strings.TrimSpace(value))
}

// fitColumn truncates a string to the column's VARCHAR size, counting runes
// so accented names are never cut mid-character. Columns not in the map pass
// through untouched.
func fitColumn(maxLen map[string]int, col, v string) string {
	v = strings.TrimSpace(v)
	if n, ok := maxLen[col]; ok {
		if r := []rune(v); len(r) > n {
			return string(r[:n])
		}
	}
	return v
}

// placeholders renders "?, ?, ..." for a dynamic INSERT.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// cloneUpper copies a payload map with upper-cased, trimmed keys.
func cloneUpper(dados map[string]string) map[string]string {
	out := make(map[string]string, len(dados))
	for k, v := range dados {
		out[strings.ToUpper(strings.TrimSpace(k))] = v
	}
	return out
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// fmtDateBR renders DD/MM/YYYY.
func fmtDateBR(t time.Time) string {
	return t.Format("02/01/2006")
}

// fmtDateTimeBR renders DD/MM/YYYY HH:MM.
func fmtDateTimeBR(t time.Time) string {
	return t.Format("02/01/2006 15:04")
}

// fmtMoneyBR renders a value as Brazilian currency: R$ 1.234.567,89.
func fmtMoneyBR(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	intPart, decPart := s, "00"
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, decPart = s[:i], s[i+1:]
	}
	neg := strings.HasPrefix(intPart, "-")
	intPart = strings.TrimPrefix(intPart, "-")

	var groups []string
	for len(intPart) > 3 {
		groups = append([]string{intPart[len(intPart)-3:]}, groups...)
		intPart = intPart[:len(intPart)-3]
	}
	groups = append([]string{intPart}, groups...)

	out := strings.Join(groups, ".") + "," + decPart
	if neg {
		out = "-" + out
	}
	return "R$ " + out
}
