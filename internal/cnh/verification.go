package cnh

import (
	"regexp"
	"strings"

	"cargodocs/internal/card"
)

// Verification is the result of the second, narrowly-scoped extraction pass.
// Each field is either validated content or the absent sentinel; the pass is
// advisory and never fails a request.
type Verification struct {
	DOB   string // DD/MM/YYYY
	RG    string // digits, length 6-10
	Reg11 string // 11-digit CNH registry number (never the CPF)
	Reg10 string // 10-digit vertical/footer number
	CPF   string // 11 digits
}

// AllAbsent is the degraded verification used when the second pass fails.
func AllAbsent() Verification {
	return Verification{
		DOB:   card.Absent,
		RG:    card.Absent,
		Reg11: card.Absent,
		Reg10: card.Absent,
		CPF:   card.Absent,
	}
}

var (
	reVerifyLine = regexp.MustCompile(`(?i)^(DOB|RG|CNH_REG_11|CNH_REG_10|CPF):\s*(.*)$`)
	reDateFull   = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)
)

// ParseVerification reads the five labeled lines the verification prompt
// demands, validating each field against its own format. Anything that does
// not match is left at the sentinel.
func ParseVerification(out string) Verification {
	res := AllAbsent()
	for _, line := range strings.Split(out, "\n") {
		m := reVerifyLine.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		val := strings.TrimSpace(m[2])
		switch strings.ToUpper(m[1]) {
		case "DOB":
			if reDateFull.MatchString(val) {
				res.DOB = val
			}
		case "RG":
			if d := card.Digits(val); len(d) >= 6 && len(d) <= 10 {
				res.RG = d
			}
		case "CNH_REG_11":
			if d := card.Digits(val); len(d) == 11 {
				res.Reg11 = d
			}
		case "CNH_REG_10":
			if d := card.Digits(val); len(d) == 10 {
				res.Reg10 = d
			}
		case "CPF":
			if d := card.Digits(val); len(d) == 11 {
				res.CPF = d
			}
		}
	}
	return res
}
