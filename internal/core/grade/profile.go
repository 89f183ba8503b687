package grade

import (
	"math"

	"github.com/samirrijal/routegrade/internal/core/domain"
)

// ComputeProfile builds one segment per consecutive pair of points and
// aggregates ascent, descent and maximum grade over them.
//
// The slope of a segment is the slope carried by its end point. Missing or
// non-finite slopes count as 0. Fewer than two points yield no segments and
// zero stats.
func ComputeProfile(points []domain.ElevationPoint) domain.Profile {
	profile := domain.Profile{
		Segments: []domain.Segment{},
		Stats:    domain.RouteStats{Difficulty: domain.DifficultyEasy},
	}
	if len(points) < 2 {
		return profile
	}

	profile.Segments = make([]domain.Segment, 0, len(points)-1)
	stats := &profile.Stats

	for i := 1; i < len(points); i++ {
		from, to := points[i-1], points[i]
		slope := sanitize(to.SlopeOrZero())

		if slope > 0 {
			stats.TotalAscentPct += slope
		} else {
			stats.TotalDescentPct += math.Abs(slope)
		}
		stats.MaxAbsGradePct = math.Max(stats.MaxAbsGradePct, math.Abs(slope))

		profile.Segments = append(profile.Segments, domain.Segment{
			From:  from.GeoPoint,
			To:    to.GeoPoint,
			Slope: slope,
			Band:  Classify(slope),
		})
	}

	stats.Difficulty = DifficultyFor(stats.TotalAscentPct)
	return profile
}

func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
