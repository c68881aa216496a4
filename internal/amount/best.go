package amount

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/contractlens/contractlens/internal/contracts"
)

// summaryPatterns are tried in order, from the labelled form the feeds use to any
// number followed by a euro marker.
//
//nolint:gochecknoglobals // Compiled once, read-only.
var summaryPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)importe(?:\s+total)?(?:\s*\([^)]*\))?\s*:\s*([0-9][0-9.,]*)\s*(?:EUR|€)`),
	regexp.MustCompile(`(?i)(?:importe|presupuesto|valor\s+estimado|precio)[^:;\n]*:\s*([0-9][0-9.,]*)\s*(?:EUR|€|euros)`),
	regexp.MustCompile(`(?i)[\p{L} ]+:\s*([0-9][0-9.,]*)\s*(?:EUR|€|euros)`),
	regexp.MustCompile(`(?i)([0-9][0-9.,]*)\s*(?:EUR|€|euros)`),
}

// Best returns the amount to display for c and whether one was found.
//
// Structured fields win in priority order: total, tax-exclusive, estimated; the
// first that is set and non-zero is returned. Otherwise the summary is searched.
func Best(c contracts.Contract) (float64, bool) {
	for _, v := range []*float64{c.TotalAmount, c.TaxExclusiveAmount, c.EstimatedAmount} {
		if v != nil && *v != 0 {
			return *v, true
		}
	}
	return FromSummary(c.Summary)
}

// BestPtr is Best returning nil for "no amount".
func BestPtr(c contracts.Contract) *float64 {
	if v, ok := Best(c); ok {
		return &v
	}
	return nil
}

// FromSummary extracts the first positive amount found in text.
func FromSummary(text string) (float64, bool) {
	text = PlainText(text)
	if strings.TrimSpace(text) == "" {
		return 0, false
	}

	for _, re := range summaryPatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			if v, ok := ParseSpanish(m[1]); ok && v > 0 {
				return v, true
			}
		}
	}
	return 0, false
}

// ParseSpanish parses a number written with Spanish separators: "." groups
// thousands and "," marks decimals ("4.824,00" → 4824).
//
// A string without a comma whose only dot is followed by one or two digits
// ("4824.00") is read as a decimal point, which is how some feeds print amounts.
func ParseSpanish(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, ".,")
	if s == "" {
		return 0, false
	}

	if !strings.Contains(s, ",") && strings.Count(s, ".") == 1 {
		if i := strings.LastIndex(s, "."); len(s)-i-1 <= 2 {
			v, err := strconv.ParseFloat(s, 64)
			return v, err == nil
		}
	}

	s = strings.ReplaceAll(s, ".", "")
	s = strings.Replace(s, ",", ".", 1)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
