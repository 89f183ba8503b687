// Package grade turns slope-annotated route points into colored segments
// and aggregate climbing statistics.
package grade

import "github.com/samirrijal/routegrade/internal/core/domain"

// bandRule matches a signed slope percentage to a band.
type bandRule struct {
	match func(slope float64) bool
	band  domain.Band
}

// bandTable is evaluated top to bottom; the first matching rule wins.
var bandTable = []bandRule{
	{func(s float64) bool { return s > 8 }, domain.BandSteepUp},
	{func(s float64) bool { return s > 4 }, domain.BandModerateUp},
	{func(s float64) bool { return s > 1 }, domain.BandGentleUp},
	{func(s float64) bool { return s < -8 }, domain.BandSteepDown},
	{func(s float64) bool { return s < -4 }, domain.BandModerateDown},
	{func(s float64) bool { return s < -1 }, domain.BandGentleDown},
}

// Classify returns the band for a signed slope percentage.
// Slopes in [-1, 1] are flat.
func Classify(slope float64) domain.Band {
	for _, r := range bandTable {
		if r.match(slope) {
			return r.band
		}
	}
	return domain.BandFlat
}
