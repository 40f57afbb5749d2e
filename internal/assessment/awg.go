package assessment

// AWGBand maps a (temperature, humidity) region to a daily water yield.
// Bands are half-open on both axes: [TempMinC, TempMaxC) x [RHMinPct, RHMaxPct).
type AWGBand struct {
	TempMinC      float64
	TempMaxC      float64
	RHMinPct      float64
	RHMaxPct      float64
	GallonsPerDay float64
}

// AWGYieldTable is an ordered set of non-overlapping bands. The table is
// injectable so deployments (and tests) can substitute their own model.
type AWGYieldTable []AWGBand

// DefaultAWGYieldTable returns the stock condensation model for a small
// residential atmospheric water generator. Yields below 10°C or 30% RH are
// negligible for this class of unit and deliberately have no band.
func DefaultAWGYieldTable() AWGYieldTable {
	return AWGYieldTable{
		{TempMinC: 10, TempMaxC: 20, RHMinPct: 30, RHMaxPct: 50, GallonsPerDay: 0.4},
		{TempMinC: 10, TempMaxC: 20, RHMinPct: 50, RHMaxPct: 70, GallonsPerDay: 0.9},
		{TempMinC: 10, TempMaxC: 20, RHMinPct: 70, RHMaxPct: 100, GallonsPerDay: 1.5},
		{TempMinC: 20, TempMaxC: 30, RHMinPct: 30, RHMaxPct: 50, GallonsPerDay: 1.2},
		{TempMinC: 20, TempMaxC: 30, RHMinPct: 50, RHMaxPct: 70, GallonsPerDay: 2.5},
		{TempMinC: 20, TempMaxC: 30, RHMinPct: 70, RHMaxPct: 100, GallonsPerDay: 3.8},
		{TempMinC: 30, TempMaxC: 45, RHMinPct: 30, RHMaxPct: 50, GallonsPerDay: 1.8},
		{TempMinC: 30, TempMaxC: 45, RHMinPct: 50, RHMaxPct: 70, GallonsPerDay: 3.4},
		{TempMinC: 30, TempMaxC: 45, RHMinPct: 70, RHMaxPct: 100, GallonsPerDay: 5.0},
	}
}

// DailyYield looks up the band containing the given conditions. It is total:
// nil inputs or conditions outside every band return 0.0 with inRange=false,
// never an error.
func (t AWGYieldTable) DailyYield(tempC, rhPct *float64) (gallons float64, inRange bool) {
	if tempC == nil || rhPct == nil {
		return 0.0, false
	}
	for _, b := range t {
		if *tempC >= b.TempMinC && *tempC < b.TempMaxC &&
			*rhPct >= b.RHMinPct && *rhPct < b.RHMaxPct {
			return b.GallonsPerDay, true
		}
	}
	return 0.0, false
}
