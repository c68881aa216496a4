package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contractlens/contractlens/internal/contracts"
)

const wantHeader = `"Título","Organismo","Fecha","Importe","Estado","Origen"`

func sample() []contracts.Contract {
	return []contracts.Contract{
		{
			Title:                `Obras del "Parque Norte"`,
			ContractingPartyName: "Ayuntamiento de Madrid",
			UpdatedAt:            contracts.At(time.Date(2024, time.March, 5, 9, 30, 0, 0, time.UTC)),
			TotalAmount:          contracts.Float(1250000.5),
			Status:               "ADJ",
			Source:               "perfiles",
		},
		{
			Title:   "Suministro de material sanitario",
			Summary: "Importe: 35.000,00 EUR",
			Status:  "ZZZ",
		},
	}
}

func TestCSVEmptyIsHeaderOnly(t *testing.T) {
	assert.Equal(t, wantHeader, CSV(nil))
	assert.Equal(t, wantHeader, CSV([]contracts.Contract{}))
}

func TestCSV(t *testing.T) {
	got := CSV(sample())
	lines := strings.Split(got, "\n")
	require.Len(t, lines, 3)
	assert.False(t, strings.HasSuffix(got, "\n"), "no trailing newline")

	assert.Equal(t, wantHeader, lines[0])
	assert.Equal(t,
		`"Obras del ""Parque Norte""","Ayuntamiento de Madrid","5/3/2024","1250000.5","Adjudicado","Perfiles de Contratante"`,
		lines[1])
	assert.Equal(t,
		`"Suministro de material sanitario","","","35000","Estado ZZZ",""`,
		lines[2])
}

func TestRowDateFormat(t *testing.T) {
	c := contracts.Contract{UpdatedAt: contracts.At(time.Date(2023, time.November, 20, 0, 0, 0, 0, time.UTC))}
	assert.Equal(t, "20/11/2023", Row(c)[2])

	c.UpdatedAt = &contracts.Timestamp{}
	assert.Empty(t, Row(c)[2])
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sample()))
	assert.Equal(t, CSV(sample()), buf.String())
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" PDF ")
	require.NoError(t, err)
	assert.Equal(t, FormatPDF, f)
	assert.Equal(t, "contratos.pdf", f.FileName())

	f, err = ParseFormat("csv")
	require.NoError(t, err)
	assert.Equal(t, "contratos.csv", f.FileName())

	_, err = ParseFormat("xlsx")
	require.ErrorIs(t, err, ErrUnknownFormat)
}

func TestWritePDF(t *testing.T) {
	var records []contracts.Contract
	for range 60 {
		records = append(records, sample()...)
	}

	var buf bytes.Buffer
	err := Write(&buf, FormatPDF, records, PDFOptions{
		Title:       "Contratos públicos",
		GeneratedAt: time.Date(2024, time.April, 1, 12, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Greater(t, bytes.Count(buf.Bytes(), []byte("/Type /Page\n")), 1, "long tables span pages")
}

func TestWritePDFEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, nil, PDFOptions{}))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "corto", Truncate("corto", 10))
	assert.Equal(t, "adjudicac…", Truncate("adjudicación", 10))
}
