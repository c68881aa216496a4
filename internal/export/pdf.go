package export

import (
	"fmt"
	"io"
	"time"

	"github.com/phpdave11/gofpdf"

	"github.com/contractlens/contractlens/internal/amount"
	"github.com/contractlens/contractlens/internal/contracts"
	"github.com/contractlens/contractlens/internal/labels"
)

// PDFFileName is the default name of a PDF export.
const PDFFileName = "contratos.pdf"

// PDFOptions describes the document around the table.
type PDFOptions struct {
	Title       string
	Subtitle    string
	GeneratedAt time.Time
}

type pdfColumn struct {
	header string
	width  float64
	align  string
}

// Landscape A4 leaves 277mm between the default margins.
var pdfColumns = []pdfColumn{ //nolint:gochecknoglobals // Fixed layout table.
	{"Título", 95, "L"},
	{"Organismo", 62, "L"},
	{"Fecha", 22, "C"},
	{"Importe", 34, "R"},
	{"Estado", 34, "L"},
	{"Origen", 30, "L"},
}

const (
	pdfRowHeight   = 6.0
	pdfFontSize    = 8.0
	pdfMaxTitle    = 70
	pdfMaxParty    = 45
	pdfHeaderGray  = 230
	pdfFooterSpace = -12.0
)

// WritePDF renders records as a paginated table.
func WritePDF(w io.Writer, records []contracts.Contract, opts PDFOptions) error {
	if opts.Title == "" {
		opts.Title = "Contratos"
	}
	if opts.GeneratedAt.IsZero() {
		opts.GeneratedAt = time.Now()
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(opts.Title, true)
	pdf.SetCreator("contractlens", false)
	pdf.SetCreationDate(opts.GeneratedAt)
	pdf.SetFooterFunc(func() {
		pdf.SetY(pdfFooterSpace)
		pdf.SetFont("Helvetica", "I", pdfFontSize)
		pdf.CellFormat(0, pdfRowHeight, tr(fmt.Sprintf("Página %d", pdf.PageNo())), "", 0, "C", false, 0, "")
	})

	header := func() {
		pdf.SetFont("Helvetica", "B", pdfFontSize)
		pdf.SetFillColor(pdfHeaderGray, pdfHeaderGray, pdfHeaderGray)
		for _, col := range pdfColumns {
			pdf.CellFormat(col.width, pdfRowHeight, tr(col.header), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", pdfFontSize)
	}
	pdf.SetHeaderFuncMode(func() {
		if pdf.PageNo() > 1 {
			header()
		}
	}, true)

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr(opts.Title), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	sub := opts.Subtitle
	if sub != "" {
		sub += " · "
	}
	sub += fmt.Sprintf("%d registros · %s", len(records), opts.GeneratedAt.Format(DateLayout+" 15:04"))
	pdf.CellFormat(0, 7, tr(sub), "", 1, "L", false, 0, "")
	pdf.Ln(2)
	header()

	for _, c := range records {
		cells := pdfCells(c)
		for i, col := range pdfColumns {
			pdf.CellFormat(col.width, pdfRowHeight, tr(cells[i]), "1", 0, col.align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("rendering pdf: %w", err)
	}
	return nil
}

func pdfCells(c contracts.Contract) []string {
	return []string{
		Truncate(c.Title, pdfMaxTitle),
		Truncate(c.ContractingPartyName, pdfMaxParty),
		FormatDate(c.UpdatedAt),
		amount.Display(amount.Best(c)),
		label(labels.Status, c.Status),
		label(labels.Source, c.Source),
	}
}

// Truncate shortens s to at most n runes, ending in an ellipsis when cut.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
