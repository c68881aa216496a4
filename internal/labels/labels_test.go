package labels

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		category Category
		code     string
		want     string
	}{
		{Type, "1", "Obras"},
		{Type, "01", "Obras"},
		{Type, "3", "Suministros"},
		{Type, "08", "Patrimonial"},
		{Type, "77", "Tipo 77"},
		{Type, "", "Tipo "},
		{Type, "00", "Tipo 00"},
		{Status, "ADJ", "Adjudicado"},
		{Status, "adj", "Estado adj"},
		{Status, "EV", "Estado EV"},
		{Source, "perfiles", "Perfiles de Contratante"},
		{Source, "unknown", "Origen Desconocido"},
		{Source, "otros", "Origen otros"},
		{Category("cpv"), "123", "123"},
	}
	for _, tt := range tests {
		t.Run(string(tt.category)+"/"+tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.category, tt.code))
		})
	}
}

func TestResolvePaddingIsSymmetric(t *testing.T) {
	for _, code := range Codes(Type) {
		assert.Equal(t, Resolve(Type, code), Resolve(Type, "0"+code), code)
	}
}

func TestResolveNeverEmptyForKnownCategories(t *testing.T) {
	for _, c := range Categories() {
		for _, code := range []string{"", "x", "1", "999", "ñ"} {
			assert.NotEmpty(t, Resolve(c, code))
		}
	}
}

func TestAlternateKey(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"1", "01", true},
		{"01", "1", true},
		{"001", "1", true},
		{"10", "", false},
		{"0", "00", true},
		{"00", "0", true},
		{"PUB", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := alternateKey(tt.in)
		assert.Equal(t, tt.wantOK, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestSummarize(t *testing.T) {
	got := Summarize(Type, map[string]int64{"1": 4, "01": 6, "2": 3, "99": 1})
	assert.Equal(t, []Count{
		{Label: "Obras", Count: 10},
		{Label: "Servicios", Count: 3},
		{Label: "Tipo 99", Count: 1},
	}, got)
}

func TestAnomalies(t *testing.T) {
	got := Anomalies(Status, map[string]int64{"PUB": 10, "EV": 2, "XX": 5})
	assert.Equal(t, []Count{
		{Label: "Estado XX", Count: 5},
		{Label: "Estado EV", Count: 2},
	}, got)

	assert.Empty(t, Anomalies(Source, map[string]int64{"perfiles": 1}))
}

func TestCountFor(t *testing.T) {
	counts := map[string]int64{"01": 7, "ADJ": 2}
	assert.Equal(t, int64(7), CountFor(counts, "1"))
	assert.Equal(t, int64(7), CountFor(counts, "01"))
	assert.Equal(t, int64(2), CountFor(counts, "ADJ"))
	assert.Equal(t, int64(0), CountFor(counts, "3"))
}
