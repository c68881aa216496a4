package export

import (
	"io"
	"strconv"
	"strings"

	"github.com/contractlens/contractlens/internal/amount"
	"github.com/contractlens/contractlens/internal/contracts"
	"github.com/contractlens/contractlens/internal/labels"
)

// CSVFileName is the fixed download name of a CSV export.
const CSVFileName = "contratos.csv"

// DateLayout is the es-ES short date (d/m/yyyy).
const DateLayout = "2/1/2006"

// Header is the CSV header row.
func Header() []string {
	return []string{"Título", "Organismo", "Fecha", "Importe", "Estado", "Origen"}
}

// Row renders one record in Header order. Missing values are empty strings; the
// amount is the best available one as a plain decimal.
func Row(c contracts.Contract) []string {
	importe := ""
	if v, ok := amount.Best(c); ok {
		importe = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return []string{
		c.Title,
		c.ContractingPartyName,
		FormatDate(c.UpdatedAt),
		importe,
		label(labels.Status, c.Status),
		label(labels.Source, c.Source),
	}
}

// FormatDate renders ts in DateLayout, or "" when missing.
func FormatDate(ts *contracts.Timestamp) string {
	if ts == nil || ts.IsZero() {
		return ""
	}
	return ts.Format(DateLayout)
}

// label resolves code, leaving a missing code empty rather than "Estado ".
func label(category labels.Category, code string) string {
	if code == "" {
		return ""
	}
	return labels.Resolve(category, code)
}

// CSV renders records with every field double-quoted, rows joined by "\n" and no
// trailing newline. No records yields the header alone.
func CSV(records []contracts.Contract) string {
	var b strings.Builder
	writeLine(&b, Header())
	for _, c := range records {
		b.WriteByte('\n')
		writeLine(&b, Row(c))
	}
	return b.String()
}

// WriteCSV writes CSV(records) to w.
func WriteCSV(w io.Writer, records []contracts.Contract) error {
	_, err := io.WriteString(w, CSV(records))
	return err
}

func writeLine(b *strings.Builder, fields []string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(f, `"`, `""`))
		b.WriteByte('"')
	}
}
