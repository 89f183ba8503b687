package terrain

import (
	"math"
	"sort"

	"github.com/samirrijal/routegrade/internal/core/domain"
	"github.com/samirrijal/routegrade/internal/pkg/geospatial"
)

// Options tunes slope computation.
type Options struct {
	// MinSegmentM drops steps shorter than this from the cumulative distance.
	MinSegmentM float64
	// ChunkM is the horizontal length over which one slope is measured.
	ChunkM float64
}

// DefaultOptions are the values the elevation endpoint uses.
var DefaultOptions = Options{MinSegmentM: 20, ChunkM: 50}

// Result is the outcome of Annotate.
type Result struct {
	Points        []domain.AnnotatedPoint
	TotalAscentM  float64
	TotalDescentM float64
	MaxSlopePct   float64
	AvgSlopePct   float64
}

// Annotate assigns a slope to every point by walking the path in chunks of
// roughly opts.ChunkM meters and measuring the smoothed elevation change over
// each chunk. Ascent and descent are accumulated from the raw elevations at
// chunk ends. Points not covered by a usable chunk keep a slope of 0.
func Annotate(path []domain.GeoPoint, raw []*float64, smoothed []float64, opts Options) Result {
	n := len(path)
	if n == 0 {
		return Result{Points: []domain.AnnotatedPoint{}}
	}
	if opts.ChunkM <= 0 {
		opts.ChunkM = DefaultOptions.ChunkM
	}

	lats := make([]float64, n)
	lons := make([]float64, n)
	for i, p := range path {
		lats[i], lons[i] = p.Lat, p.Lon
	}

	cum := make([]float64, n)
	for i, d := range geospatial.SegmentDistances(lats, lons) {
		if d < opts.MinSegmentM {
			d = 0
		}
		if i > 0 {
			cum[i] = cum[i-1] + d
		}
	}

	res := Result{Points: make([]domain.AnnotatedPoint, n)}
	for i, p := range path {
		res.Points[i] = domain.AnnotatedPoint{Lat: p.Lat, Lon: p.Lon, ElevM: at(raw, i)}
	}

	smoothedAt := func(i int) float64 {
		if i < len(smoothed) {
			return smoothed[i]
		}
		return math.NaN()
	}

	// stationary cumulative distance must not loop forever
	maxIter := max(1, int(math.Ceil(cum[n-1]/opts.ChunkM))+5)

	start := 0
	for iter := 0; start < n-1 && iter < maxIter; iter++ {
		end := sort.SearchFloat64s(cum, cum[start]+opts.ChunkM)
		if end <= start {
			end = start + 1
		}
		if end >= n {
			end = n - 1
		}

		s, e := start, end
		for s < e && math.IsNaN(smoothedAt(s)) {
			s++
		}
		for e > s && math.IsNaN(smoothedAt(e)) {
			e--
		}

		horiz := cum[e] - cum[s]
		if s >= e || horiz <= 0 {
			start = end
			continue
		}

		slope := (smoothedAt(e) - smoothedAt(s)) / horiz * 100
		for k := s; k <= e; k++ {
			res.Points[k].SlopePct = slope
		}

		if rs, re := at(raw, s), at(raw, e); rs != nil && re != nil {
			if *re > *rs {
				res.TotalAscentM += *re - *rs
			} else {
				res.TotalDescentM += *rs - *re
			}
		}

		start = end
	}

	var sum float64
	for _, p := range res.Points {
		abs := math.Abs(p.SlopePct)
		res.MaxSlopePct = math.Max(res.MaxSlopePct, abs)
		sum += abs
	}
	res.AvgSlopePct = sum / float64(n)

	return res
}

func at(vals []*float64, i int) *float64 {
	if i >= len(vals) || vals[i] == nil || math.IsNaN(*vals[i]) {
		return nil
	}
	return vals[i]
}
