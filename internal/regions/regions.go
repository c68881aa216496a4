// Package regions maps the autonomous-community names used by the contracts API to
// their canonical names and assigns each region a shading tier by contract volume.
package regions

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/contractlens/contractlens/internal/contracts"
)

// aliases maps API region names to canonical names. Names not listed are already canonical.
//
//nolint:gochecknoglobals // Canonical read-only alias table.
var aliases = map[string]string{
	"Andalucía":                  "Andalucía",
	"Aragón":                     "Aragón",
	"Principado de Asturias":     "Principado de Asturias",
	"Asturias":                   "Principado de Asturias",
	"Illes Balears":              "Illes Balears",
	"Islas Baleares":             "Illes Balears",
	"Canarias":                   "Canarias",
	"Cantabria":                  "Cantabria",
	"Castilla-La Mancha":         "Castilla-La Mancha",
	"Castilla y León":            "Castilla y León",
	"Catalunya":                  "Cataluña",
	"Cataluña":                   "Cataluña",
	"Extremadura":                "Extremadura",
	"Galicia":                    "Galicia",
	"Comunidad de Madrid":        "Comunidad de Madrid",
	"Madrid":                     "Comunidad de Madrid",
	"Región de Murcia":           "Región de Murcia",
	"Murcia":                     "Región de Murcia",
	"Comunidad Foral de Navarra": "Comunidad Foral de Navarra",
	"Navarra":                    "Comunidad Foral de Navarra",
	"País Vasco":                 "País Vasco",
	"Euskadi":                    "País Vasco",
	"La Rioja":                   "La Rioja",
	"Comunitat Valenciana":       "Comunitat Valenciana",
	"Comunidad Valenciana":       "Comunitat Valenciana",
	"Ceuta":                      "Ciudad Autónoma de Ceuta",
	"Melilla":                    "Ciudad Autónoma de Melilla",
}

// folded indexes aliases by their folded spelling; built once from aliases.
//
//nolint:gochecknoglobals // Derived read-only index.
var folded = func() map[string]string {
	m := make(map[string]string, len(aliases))
	for alias, canonical := range aliases {
		m[fold(alias)] = canonical
		m[fold(canonical)] = canonical
	}
	return m
}()

// fold lowercases s and strips diacritics and surrounding space, so "CATALUÑA",
// "cataluna" and "Cataluña" compare equal.
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, strings.TrimSpace(s))
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

// Canonical returns the canonical name of an API region name. Unknown names are
// returned trimmed but otherwise unchanged.
func Canonical(name string) string {
	if canonical, ok := folded[fold(name)]; ok {
		return canonical
	}
	return strings.TrimSpace(name)
}

// Known reports whether name maps to a canonical region.
func Known(name string) bool {
	_, ok := folded[fold(name)]
	return ok
}

// Region is a region's statistics under its canonical name with its tier.
type Region struct {
	Name          string  `json:"name"`
	SourceName    string  `json:"sourceName"`
	ContractCount int64   `json:"contractCount"`
	TotalAmount   float64 `json:"totalAmount"`
	AverageAmount float64 `json:"averageAmount"`
	Tier          Tier    `json:"tier"`
}

// Index canonicalizes stats, merging entries that map to the same region. Merged
// entries sum counts and totals and recompute the average. The result is sorted by
// contract count, descending.
func Index(stats []contracts.RegionStats) []Region {
	byName := make(map[string]*Region, len(stats))
	var order []string
	for _, s := range stats {
		name := Canonical(s.Name)
		r, ok := byName[name]
		if !ok {
			r = &Region{Name: name, SourceName: s.Name}
			byName[name] = r
			order = append(order, name)
		}
		r.ContractCount += s.ContractCount
		r.TotalAmount += s.TotalAmount
	}

	out := make([]Region, 0, len(order))
	for _, name := range order {
		r := byName[name]
		if r.ContractCount > 0 {
			r.AverageAmount = r.TotalAmount / float64(r.ContractCount)
		}
		r.Tier = TierFor(r.ContractCount)
		out = append(out, *r)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ContractCount > out[j].ContractCount })
	return out
}
