// Package fiscal handles the 44-digit access key that identifies Brazilian
// fiscal documents (CT-e/NF-e) and the dates that can be derived from it.
package fiscal

import (
	"regexp"
	"time"

	"cargodocs/internal/card"
)

// KeyLength is the exact digit count of a valid access key.
const KeyLength = 44

// A key printed on a document often carries cosmetic separators: any two
// adjacent digits may be split by at most one of '.', '-', '/' or space.
var reKeyRun = regexp.MustCompile(`(?:\d[.\-/ ]?){44}`)

// FindKey scans noisy OCR/LLM text for a 44-digit access key, tolerating
// single separator characters between digits. Returns the bare digit string,
// or "" when no valid key is present; absence is an expected outcome, not
// an error.
func FindKey(text string) string {
	if text == "" {
		return ""
	}
	m := reKeyRun.FindString(text)
	if m == "" {
		return ""
	}
	digits := card.Digits(m)
	if len(digits) != KeyLength {
		return ""
	}
	return digits
}

// NormalizeKey strips non-digits and returns the key only when exactly 44
// digits remain.
func NormalizeKey(raw string) string {
	digits := card.Digits(raw)
	if len(digits) != KeyLength {
		return ""
	}
	return digits
}

// InferEmissionDate derives the emission date embedded in the key: digits
// [2:6] are YYMM (two-digit year mapped into the 2000s, month 1-12), giving
// the first day of the emission month. An invalid key or month yields the
// fallback.
func InferEmissionDate(key string, fallback time.Time) time.Time {
	digits := card.Digits(key)
	if len(digits) != KeyLength {
		return fallback
	}
	yy := int(digits[2]-'0')*10 + int(digits[3]-'0')
	mm := int(digits[4]-'0')*10 + int(digits[5]-'0')
	if mm < 1 || mm > 12 {
		return fallback
	}
	return time.Date(2000+yy, time.Month(mm), 1, 0, 0, 0, 0, time.UTC)
}
