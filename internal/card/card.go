// Package card implements the labeled-line "card" format used to present
// extracted document fields. A card is semi-structured text: label/value
// lines grouped under section headers, with "-" as the absent-value
// sentinel. All pattern matching on card text lives here so call sites
// never re-derive the regexes.
package card

import (
	"fmt"
	"regexp"
	"strings"
)

// Absent is the sentinel value for an unknown or unreadable field.
const Absent = "-"

var (
	reCodeFence  = regexp.MustCompile("(?s)^\\s*```[a-zA-Z0-9]*\\s*(.*?)\\s*```\\s*$")
	reBlankRuns  = regexp.MustCompile(`\n{3,}`)
	reLineValues = regexp.MustCompile(`(?m)^.+?:\s*(.+)$`)
	reDigits11   = regexp.MustCompile(`\b\d{11}\b`)
	reDigits10   = regexp.MustCompile(`\b\d{10}\b`)
	reCPFMasked  = regexp.MustCompile(`\b\d{3}\.\d{3}\.\d{3}-\d{2}\b`)
	reDateBR     = regexp.MustCompile(`\b\d{2}/\d{2}/\d{4}\b`)
	reNonDigit   = regexp.MustCompile(`\D`)
)

// Digits strips everything but ASCII digits from s.
func Digits(s string) string {
	return reNonDigit.ReplaceAllString(s, "")
}

// ExtractLine returns the value of the first "Label: value" line, matched
// case-insensitively at line start. Empty string when the label is absent.
func ExtractLine(text, label string) string {
	re := regexp.MustCompile(`(?mi)^` + regexp.QuoteMeta(label) + `:\s*(.+)$`)
	m := re.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// ReplaceLine sets the value of a "Label: value" line in place. When the
// label does not exist yet, the new line is spliced immediately after the
// anchor section header if found, else appended at the end.
func ReplaceLine(text, label, value, anchor string) string {
	find := regexp.MustCompile(`(?mi)^` + regexp.QuoteMeta(label) + `:\s*`)
	if find.MatchString(text) {
		repl := regexp.MustCompile(`(?mi)^` + regexp.QuoteMeta(label) + `:\s*.*$`)
		return repl.ReplaceAllString(text, label+": "+value)
	}
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines)+1)
	inserted := false
	for _, line := range lines {
		out = append(out, line)
		if !inserted && strings.TrimSpace(line) == anchor {
			out = append(out, label+": "+value)
			inserted = true
		}
	}
	if inserted {
		return strings.Join(out, "\n")
	}
	return text + "\n" + label + ": " + value
}

// Sanitize strips a surrounding code fence, normalizes line endings
// (including literal "\n" sequences), collapses runs of blank lines and
// trims the result.
func Sanitize(text string) string {
	if text == "" {
		return text
	}
	if m := reCodeFence.FindStringSubmatch(text); m != nil {
		text = m[1]
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, `\n`, "\n")
	text = reBlankRuns.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// IsEmpty reports whether a card looks like a failed extraction: a card is
// non-empty only when at least three labeled values are not the sentinel AND
// the text carries either a document-looking number (11 digits, 10 digits,
// or masked CPF) or a DD/MM/YYYY date. A structurally well-formed response
// with every field "-" must count as empty so the caller falls through to
// the next extraction stage.
func IsEmpty(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return true
	}
	nonDash := 0
	for _, m := range reLineValues.FindAllStringSubmatch(text, -1) {
		v := strings.TrimSpace(m[1])
		if v != "" && v != Absent {
			nonDash++
		}
	}
	hasDocNum := reDigits11.MatchString(text) || reDigits10.MatchString(text) || reCPFMasked.MatchString(text)
	hasDate := reDateBR.MatchString(text)
	return !(nonDash >= 3 && (hasDocNum || hasDate))
}

// FormatCPF renders an 11-digit CPF as ###.###.###-##. Anything that does
// not hold exactly 11 digits formats to the absent sentinel.
func FormatCPF(raw string) string {
	d := Digits(raw)
	if len(d) != 11 {
		return Absent
	}
	return fmt.Sprintf("%s.%s.%s-%s", d[0:3], d[3:6], d[6:9], d[9:11])
}
