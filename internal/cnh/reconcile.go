package cnh

import (
	"regexp"
	"strings"

	"cargodocs/internal/card"
)

// Category codes in print priority order; matches anywhere in the card
// are reported back in this order, deduplicated.
var categoryOrder = []string{"ACC", "A1", "A", "B1", "B", "C1", "C", "D1", "D", "E", "BE", "C1E", "CE", "D1E", "DE"}

var (
	reCategory  = regexp.MustCompile(`(?i)\b(ACC|A1|A|B1|B|C1|C|D1|D|E|BE|C1E|CE|D1E|DE)\b`)
	reNum11     = regexp.MustCompile(`\b(\d{11})\b`)
	reAuthority = regexp.MustCompile(`(?i)\b(SC\d{8,10})\b`)
	reBlankRun  = regexp.MustCompile(`\n{3,}`)
)

// Reconcile merges the verification pass into the base card, in fixed order:
// birth date, then RG, then the CNH registry number. The CNH rule rejects an
// 11-digit candidate equal to the CPF: the two numbers are visually similar
// on the document and that equality is a known OCR confusion.
func Reconcile(cardText string, ver Verification) string {
	if reDateFull.MatchString(ver.DOB) {
		cardText = card.ReplaceLine(cardText, LabelNascimento, ver.DOB, SectionDocumento)
	}
	if rg := card.Digits(ver.RG); len(rg) >= 7 && len(rg) <= 8 {
		cardText = card.ReplaceLine(cardText, LabelRegistro, rg, SectionDocumento)
	}
	return reconcileCNHNumber(cardText, ver)
}

func reconcileCNHNumber(cardText string, ver Verification) string {
	cpfDigits := card.Digits(ver.CPF)
	if len(cpfDigits) != 11 {
		cpfDigits = card.Digits(card.ExtractLine(cardText, LabelCPF))
	}

	cand11 := card.Digits(ver.Reg11)
	cand10 := card.Digits(ver.Reg10)

	chosen := card.Absent
	switch {
	case len(cand11) == 11 && cand11 != cpfDigits:
		chosen = cand11
	case len(cand10) == 10:
		chosen = cand10
	}
	return card.ReplaceLine(cardText, LabelCNHRegistro, chosen, SectionDocumento)
}

// Postprocess applies the cosmetic normalizations: CPF punctuation,
// category-code list ordering with validity suffix, and the authority code
// line. Each step leaves the card untouched when it finds nothing.
func Postprocess(cardText string) string {
	t := strings.TrimSpace(cardText)
	t = fixCPF(t)
	t = normalizeCategories(t)
	t = normalizeCodigo(t)
	return reBlankRun.ReplaceAllString(t, "\n\n")
}

func fixCPF(cardText string) string {
	raw := card.ExtractLine(cardText, LabelCPF)
	if raw == "" {
		return cardText
	}
	return card.ReplaceLine(cardText, LabelCPF, card.FormatCPF(raw), SectionDocumento)
}

func normalizeCategories(cardText string) string {
	found := map[string]bool{}
	for _, m := range reCategory.FindAllStringSubmatch(cardText, -1) {
		found[strings.ToUpper(m[1])] = true
	}
	if len(found) == 0 {
		return cardText
	}
	var cats []string
	for _, c := range categoryOrder {
		if found[c] {
			cats = append(cats, c)
		}
	}
	if len(cats) == 0 {
		return cardText
	}
	line := strings.Join(cats, ", ")
	if validade := card.ExtractLine(cardText, LabelValidade); validade != "" {
		line += " (todas com validade até " + validade + ")"
	}
	return card.ReplaceLine(cardText, SectionCategorias, line, SectionDocumento)
}

func normalizeCodigo(cardText string) string {
	num11 := reNum11.FindString(cardText)
	auth := reAuthority.FindString(cardText)
	if num11 == "" && auth == "" {
		return cardText
	}
	var parts []string
	if num11 != "" {
		parts = append(parts, num11)
	}
	if auth != "" {
		parts = append(parts, strings.ToUpper(auth))
	}
	return card.ReplaceLine(cardText, LabelCodigo, strings.Join(parts, " / "), SectionDocumento)
}
