package export

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/contractlens/contractlens/internal/contracts"
)

// Format is an export document type.
type Format string

// Export formats.
const (
	FormatCSV Format = "csv"
	FormatPDF Format = "pdf"
)

// ErrUnknownFormat is returned by ParseFormat.
var ErrUnknownFormat = errors.New("unknown export format")

// ParseFormat accepts "csv" or "pdf", case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatPDF:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q (want csv or pdf)", ErrUnknownFormat, s)
	}
}

// FileName returns the default file name for f.
func (f Format) FileName() string {
	if f == FormatPDF {
		return PDFFileName
	}
	return CSVFileName
}

// Write renders records in format f.
func Write(w io.Writer, f Format, records []contracts.Contract, opts PDFOptions) error {
	switch f {
	case FormatCSV:
		return WriteCSV(w, records)
	case FormatPDF:
		return WritePDF(w, records, opts)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
	}
}
