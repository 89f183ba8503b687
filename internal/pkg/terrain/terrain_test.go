package terrain_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samirrijal/routegrade/internal/core/domain"
	"github.com/samirrijal/routegrade/internal/pkg/geospatial"
	"github.com/samirrijal/routegrade/internal/pkg/terrain"
)

func f(v float64) *float64 { return &v }

// equatorPath returns n points spaced step degrees of longitude apart.
func equatorPath(n int, step float64) []domain.GeoPoint {
	path := make([]domain.GeoPoint, n)
	for i := range path {
		path[i] = domain.GeoPoint{Lat: 0, Lon: float64(i) * step}
	}
	return path
}

func TestSmooth(t *testing.T) {
	out := terrain.Smooth([]*float64{f(1), f(2), f(3), nil, f(5)}, 1)
	require.Len(t, out, 5)
	assert.InDelta(t, 1.5, out[0], 1e-9)
	assert.InDelta(t, 2.0, out[1], 1e-9)
	assert.InDelta(t, 2.5, out[2], 1e-9)
	assert.InDelta(t, 4.0, out[3], 1e-9)
	assert.InDelta(t, 5.0, out[4], 1e-9)
}

func TestSmooth_AllMissingStaysNaN(t *testing.T) {
	out := terrain.Smooth([]*float64{nil, nil, nil}, 3)
	for _, v := range out {
		assert.True(t, math.IsNaN(v))
	}
	assert.Empty(t, terrain.Smooth(nil, 3))
}

func TestAnnotate_SteadyClimb(t *testing.T) {
	path := equatorPath(5, 0.0005)
	step := geospatial.Haversine(0, 0, 0, 0.0005)
	require.Greater(t, step, terrain.DefaultOptions.ChunkM)

	raw := make([]*float64, len(path))
	for i := range raw {
		raw[i] = f(float64(i) * step * 0.1)
	}

	res := terrain.Annotate(path, raw, terrain.Smooth(raw, 0), terrain.DefaultOptions)
	require.Len(t, res.Points, 5)
	for _, p := range res.Points {
		assert.InDelta(t, 10.0, p.SlopePct, 1e-6)
		require.NotNil(t, p.ElevM)
	}
	assert.InDelta(t, 4*step*0.1, res.TotalAscentM, 1e-6)
	assert.Equal(t, 0.0, res.TotalDescentM)
	assert.InDelta(t, 10.0, res.MaxSlopePct, 1e-6)
	assert.InDelta(t, 10.0, res.AvgSlopePct, 1e-6)

	assert.Equal(t, terrain.RatingVeryHard, terrain.Rate(res.TotalAscentM, terrain.MaxUphill(res.Points)))
}

func TestAnnotate_Descent(t *testing.T) {
	path := equatorPath(3, 0.0005)
	raw := []*float64{f(100), f(95), f(90)}

	res := terrain.Annotate(path, raw, terrain.Smooth(raw, 0), terrain.DefaultOptions)
	assert.InDelta(t, 10.0, res.TotalDescentM, 1e-9)
	assert.Equal(t, 0.0, res.TotalAscentM)
	for _, p := range res.Points {
		assert.Less(t, p.SlopePct, 0.0)
	}
	assert.Equal(t, 0.0, terrain.MaxUphill(res.Points))
}

func TestAnnotate_MissingElevations(t *testing.T) {
	path := equatorPath(4, 0.0005)
	raw := []*float64{nil, nil, nil, nil}

	res := terrain.Annotate(path, raw, terrain.Smooth(raw, 3), terrain.DefaultOptions)
	require.Len(t, res.Points, 4)
	for _, p := range res.Points {
		assert.Nil(t, p.ElevM)
		assert.Equal(t, 0.0, p.SlopePct)
	}
	assert.Equal(t, 0.0, res.TotalAscentM)
	assert.Equal(t, 0.0, res.MaxSlopePct)
}

func TestAnnotate_ShortStepsAreIgnored(t *testing.T) {
	// ~5.5 m apart, below the minimum segment length
	path := equatorPath(20, 0.00005)
	raw := make([]*float64, len(path))
	for i := range raw {
		raw[i] = f(float64(i))
	}

	res := terrain.Annotate(path, raw, terrain.Smooth(raw, 3), terrain.DefaultOptions)
	for _, p := range res.Points {
		assert.Equal(t, 0.0, p.SlopePct)
	}
	assert.Equal(t, 0.0, res.TotalAscentM)
}

func TestAnnotate_Empty(t *testing.T) {
	res := terrain.Annotate(nil, nil, nil, terrain.DefaultOptions)
	assert.NotNil(t, res.Points)
	assert.Empty(t, res.Points)
}

func TestRate(t *testing.T) {
	cases := []struct {
		ascent, uphill float64
		want           string
	}{
		{49, 3.9, terrain.RatingEasy},
		{50, 3, terrain.RatingModerate},
		{10, 4, terrain.RatingModerate},
		{149, 6.9, terrain.RatingModerate},
		{150, 1, terrain.RatingHard},
		{299, 9.9, terrain.RatingHard},
		{300, 0, terrain.RatingVeryHard},
		{0, 10, terrain.RatingVeryHard},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, terrain.Rate(tc.ascent, tc.uphill), "ascent=%v uphill=%v", tc.ascent, tc.uphill)
	}
}
