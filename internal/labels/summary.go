package labels

import "sort"

// Count is a labelled counter, the unit of every per-category breakdown.
type Count struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// Summarize merges raw code counts by resolved label, so differently padded codes
// of one type collapse into one entry. Entries are ordered by count, then label.
func Summarize(category Category, counts map[string]int64) []Count {
	merged := make(map[string]int64, len(counts))
	for code, n := range counts {
		merged[Resolve(category, code)] += n
	}

	out := make([]Count, 0, len(merged))
	for label, n := range merged {
		out = append(out, Count{Label: label, Count: n})
	}
	sortCounts(out)
	return out
}

// Anomalies returns the counts whose codes have no mapped label, labelled with the
// fallback ("Tipo 99", "Estado XYZ").
func Anomalies(category Category, counts map[string]int64) []Count {
	var out []Count
	for code, n := range counts {
		if IsKnown(category, code) {
			continue
		}
		out = append(out, Count{Label: Resolve(category, code), Count: n})
	}
	sortCounts(out)
	return out
}

// CountFor returns the count for code, trying the alternate padding when the
// exact code is absent.
func CountFor(counts map[string]int64, code string) int64 {
	if n, ok := counts[code]; ok {
		return n
	}
	if alt, ok := alternateKey(code); ok {
		return counts[alt]
	}
	return 0
}

func sortCounts(c []Count) {
	sort.Slice(c, func(i, j int) bool {
		if c[i].Count != c[j].Count {
			return c[i].Count > c[j].Count
		}
		return c[i].Label < c[j].Label
	})
}
