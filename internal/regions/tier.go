package regions

// Tier is a shading step for a region, 0 (no contracts) to 8 (busiest).
type Tier int

// tierFloors are the exclusive lower bounds of tiers 1..8.
//
//nolint:gochecknoglobals // Fixed threshold table.
var tierFloors = []int64{0, 50, 100, 500, 1000, 2000, 5000, 10000}

// tierColors are the fill colours for tiers 0..8.
//
//nolint:gochecknoglobals // Fixed palette.
var tierColors = []string{
	"#e0e0e0", "#ffeda0", "#fed976", "#feb24c", "#fd8d3c",
	"#fc4e2a", "#e31a1c", "#bd0026", "#800026",
}

// TierFor returns the tier for a contract count.
func TierFor(count int64) Tier {
	tier := Tier(0)
	for i, floor := range tierFloors {
		if count > floor {
			tier = Tier(i + 1)
		}
	}
	return tier
}

// Color returns the hex fill colour of the tier.
func (t Tier) Color() string {
	if t < 0 || int(t) >= len(tierColors) {
		return tierColors[0]
	}
	return tierColors[t]
}
