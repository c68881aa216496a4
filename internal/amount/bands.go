package amount

// Band classifies a contract by value, following the procurement thresholds
// used by the statistics service.
type Band string

// Value bands.
const (
	BandMicro  Band = "micro"
	BandSmall  Band = "small"
	BandMedium Band = "medium"
	BandLarge  Band = "large"
)

// Band upper bounds in euros (exclusive).
const (
	microLimit  = 40_000
	smallLimit  = 144_000
	mediumLimit = 750_000
)

// Classify returns the value band of v.
func Classify(v float64) Band {
	switch {
	case v < microLimit:
		return BandMicro
	case v < smallLimit:
		return BandSmall
	case v < mediumLimit:
		return BandMedium
	default:
		return BandLarge
	}
}

// Label returns the Spanish label of the band.
func (b Band) Label() string {
	switch b {
	case BandMicro:
		return "Micro (< 40.000 €)"
	case BandSmall:
		return "Pequeño (40.000 - 144.000 €)"
	case BandMedium:
		return "Mediano (144.000 - 750.000 €)"
	case BandLarge:
		return "Grande (> 750.000 €)"
	default:
		return string(b)
	}
}

// DistributionKeys maps the statistics payload keys to bands, in ascending order.
func DistributionKeys() []struct {
	Key  string
	Band Band
} {
	return []struct {
		Key  string
		Band Band
	}{
		{"microContracts", BandMicro},
		{"smallContracts", BandSmall},
		{"mediumContracts", BandMedium},
		{"largeContracts", BandLarge},
	}
}
