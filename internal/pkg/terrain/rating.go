package terrain

import "github.com/samirrijal/routegrade/internal/core/domain"

// Rating labels used by the elevation endpoint. They differ from the
// percentage-based route difficulty and are kept as plain strings.
const (
	RatingEasy     = "Easy"
	RatingModerate = "Moderate"
	RatingHard     = "Hard"
	RatingVeryHard = "Very Hard"
)

// Rate grades a route by its climbed meters and steepest uphill chunk.
func Rate(totalAscentM, maxUphillPct float64) string {
	switch {
	case totalAscentM < 50 && maxUphillPct < 4:
		return RatingEasy
	case totalAscentM < 150 && maxUphillPct < 7:
		return RatingModerate
	case totalAscentM < 300 && maxUphillPct < 10:
		return RatingHard
	default:
		return RatingVeryHard
	}
}

// MaxUphill returns the largest positive slope among the points, or 0.
func MaxUphill(points []domain.AnnotatedPoint) float64 {
	var m float64
	for _, p := range points {
		if p.SlopePct > m {
			m = p.SlopePct
		}
	}
	return m
}
