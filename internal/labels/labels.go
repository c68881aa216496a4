// Package labels resolves the coded enumerations attached to contract records
// (contract type, status and source) to their Spanish display labels.
//
// There is a single canonical table per category. Unknown codes resolve to a
// deterministic fallback built from the category prefix and the raw code.
package labels

import (
	"sort"
	"strconv"
	"strings"
)

// Category names an enumeration.
type Category string

// Categories.
const (
	Type   Category = "type"
	Status Category = "status"
	Source Category = "source"
)

// table is one immutable code → label mapping with its fallback prefix.
type table struct {
	prefix string
	labels map[string]string
}

//nolint:gochecknoglobals // Canonical read-only lookup tables shared by all views.
var tables = map[Category]table{
	Type: {
		prefix: "Tipo",
		labels: map[string]string{
			"1": "Obras",
			"2": "Servicios",
			"3": "Suministros",
			"4": "Concesión de obras",
			"5": "Concesión de servicios",
			"6": "Administrativo especial",
			"7": "Privado",
			"8": "Patrimonial",
		},
	},
	Status: {
		prefix: "Estado",
		labels: map[string]string{
			"PUB": "Publicado",
			"ADJ": "Adjudicado",
			"RES": "Resuelto",
			"CAN": "Cancelado",
			"DES": "Desierto",
		},
	},
	Source: {
		prefix: "Origen",
		labels: map[string]string{
			"perfiles":  "Perfiles de Contratante",
			"agregadas": "Plataformas Agregadas",
			"unknown":   "Origen Desconocido",
		},
	},
}

// Categories returns every known category.
func Categories() []Category {
	return []Category{Type, Status, Source}
}

// Resolve returns the display label for code in category.
//
// A miss on the exact code retries with the alternate padding of a numeric code
// ("1" ↔ "01"), since upstream data is inconsistently padded. A final miss yields
// "<Prefix> <code>", e.g. "Tipo 77". An unknown category falls back to the code itself.
func Resolve(category Category, code string) string {
	if label, ok := Lookup(category, code); ok {
		return label
	}
	t, ok := tables[category]
	if !ok {
		return code
	}
	return t.prefix + " " + code
}

// Lookup returns the mapped label for code and whether one exists.
func Lookup(category Category, code string) (string, bool) {
	t, ok := tables[category]
	if !ok {
		return "", false
	}
	if label, found := t.labels[code]; found {
		return label, true
	}
	if alt, hasAlt := alternateKey(code); hasAlt {
		if label, found := t.labels[alt]; found {
			return label, true
		}
	}
	return "", false
}

// IsKnown reports whether code has a mapped label.
func IsKnown(category Category, code string) bool {
	_, ok := Lookup(category, code)
	return ok
}

// Codes returns the canonical codes of category in sorted order.
func Codes(category Category) []string {
	t := tables[category]
	codes := make([]string, 0, len(t.labels))
	for code := range t.labels {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// alternateKey returns the other padding of a numeric code: "1" → "01", "01" → "1".
func alternateKey(code string) (string, bool) {
	if code == "" {
		return "", false
	}
	if _, err := strconv.Atoi(code); err != nil {
		return "", false
	}
	if len(code) == 1 {
		return "0" + code, true
	}
	trimmed := strings.TrimLeft(code, "0")
	if trimmed == "" {
		trimmed = "0"
	}
	if trimmed == code {
		return "", false
	}
	return trimmed, true
}
