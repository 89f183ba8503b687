package grade_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samirrijal/routegrade/internal/core/domain"
	"github.com/samirrijal/routegrade/internal/core/grade"
)

func pt(lat, lon float64, slope *float64) domain.ElevationPoint {
	return domain.ElevationPoint{GeoPoint: domain.GeoPoint{Lat: lat, Lon: lon}, Slope: slope}
}

func f(v float64) *float64 { return &v }

func TestClassify(t *testing.T) {
	cases := []struct {
		slope float64
		want  domain.Band
	}{
		{12, domain.BandSteepUp},
		{8.01, domain.BandSteepUp},
		{8.0, domain.BandModerateUp},
		{4.01, domain.BandModerateUp},
		{4.0, domain.BandGentleUp},
		{1.01, domain.BandGentleUp},
		{1.0, domain.BandFlat},
		{0, domain.BandFlat},
		{-1.0, domain.BandFlat},
		{-1.01, domain.BandGentleDown},
		{-4.0, domain.BandGentleDown},
		{-4.01, domain.BandModerateDown},
		{-8.0, domain.BandModerateDown},
		{-8.01, domain.BandSteepDown},
		{-20, domain.BandSteepDown},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, grade.Classify(tc.slope), "slope %v", tc.slope)
	}
}

func TestBandColors(t *testing.T) {
	assert.Equal(t, "#d73027", domain.BandSteepUp.Color())
	assert.Equal(t, "#fc8d59", domain.BandModerateUp.Color())
	assert.Equal(t, "#fee08b", domain.BandGentleUp.Color())
	assert.Equal(t, "#4CAF50", domain.BandFlat.Color())
	assert.Equal(t, "#abd9e9", domain.BandGentleDown.Color())
	assert.Equal(t, "#74add1", domain.BandModerateDown.Color())
	assert.Equal(t, "#4575b4", domain.BandSteepDown.Color())
	assert.Equal(t, "#4CAF50", domain.Band("bogus").Color())
}

func TestDifficultyFor(t *testing.T) {
	cases := []struct {
		ascent float64
		want   domain.Difficulty
	}{
		{0, domain.DifficultyEasy},
		{20.0, domain.DifficultyEasy},
		{20.01, domain.DifficultyModerate},
		{40.0, domain.DifficultyModerate},
		{40.01, domain.DifficultyHard},
		{60.0, domain.DifficultyHard},
		{60.01, domain.DifficultyBrutal},
		{500, domain.DifficultyBrutal},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, grade.DifficultyFor(tc.ascent), "ascent %v", tc.ascent)
	}
}

func TestComputeProfile_Degenerate(t *testing.T) {
	for name, points := range map[string][]domain.ElevationPoint{
		"nil":    nil,
		"empty":  {},
		"single": {pt(1, 2, f(9))},
	} {
		t.Run(name, func(t *testing.T) {
			p := grade.ComputeProfile(points)
			assert.Empty(t, p.Segments)
			assert.NotNil(t, p.Segments)
			assert.Equal(t, domain.RouteStats{Difficulty: domain.DifficultyEasy}, p.Stats)
		})
	}
}

func TestComputeProfile_Scenario(t *testing.T) {
	points := []domain.ElevationPoint{
		pt(0, 0, f(0)),
		pt(0, 1, f(5)),
		pt(0, 2, f(-9)),
	}

	p := grade.ComputeProfile(points)
	require.Len(t, p.Segments, 2)

	assert.Equal(t, domain.GeoPoint{Lat: 0, Lon: 0}, p.Segments[0].From)
	assert.Equal(t, domain.GeoPoint{Lat: 0, Lon: 1}, p.Segments[0].To)
	assert.Equal(t, 5.0, p.Segments[0].Slope)
	assert.Equal(t, domain.BandModerateUp, p.Segments[0].Band)

	assert.Equal(t, domain.GeoPoint{Lat: 0, Lon: 2}, p.Segments[1].To)
	assert.Equal(t, -9.0, p.Segments[1].Slope)
	assert.Equal(t, domain.BandSteepDown, p.Segments[1].Band)
	assert.Equal(t, "#4575b4", p.Segments[1].Color())

	assert.Equal(t, 5.0, p.Stats.TotalAscentPct)
	assert.Equal(t, 9.0, p.Stats.TotalDescentPct)
	assert.Equal(t, 9.0, p.Stats.MaxAbsGradePct)
	assert.Equal(t, domain.DifficultyEasy, p.Stats.Difficulty)
}

func TestComputeProfile_SegmentCount(t *testing.T) {
	for n := 2; n < 40; n += 7 {
		points := make([]domain.ElevationPoint, n)
		for i := range points {
			points[i] = pt(float64(i), 0, f(float64(i%5)-2))
		}
		assert.Len(t, grade.ComputeProfile(points).Segments, n-1)
	}
}

func TestComputeProfile_MissingSlopeDefaultsToZero(t *testing.T) {
	points := []domain.ElevationPoint{
		pt(0, 0, f(30)),
		pt(0, 1, nil),
		pt(0, 2, f(math.NaN())),
		pt(0, 3, f(math.Inf(1))),
	}

	p := grade.ComputeProfile(points)
	require.Len(t, p.Segments, 3)
	for _, s := range p.Segments {
		assert.Equal(t, 0.0, s.Slope)
		assert.Equal(t, domain.BandFlat, s.Band)
	}
	assert.Equal(t, domain.RouteStats{Difficulty: domain.DifficultyEasy}, p.Stats)
}

func TestComputeProfile_FlatSegmentsStillFeedMax(t *testing.T) {
	p := grade.ComputeProfile([]domain.ElevationPoint{
		pt(0, 0, nil),
		pt(0, 1, f(0)),
		pt(0, 2, f(-0.5)),
	})

	assert.Equal(t, 0.0, p.Stats.TotalAscentPct)
	assert.InDelta(t, 0.5, p.Stats.TotalDescentPct, 1e-9)
	assert.InDelta(t, 0.5, p.Stats.MaxAbsGradePct, 1e-9)
}

func TestComputeProfile_DifficultyFromAscentOnly(t *testing.T) {
	points := []domain.ElevationPoint{pt(0, 0, nil)}
	for i := 1; i <= 7; i++ {
		points = append(points, pt(0, float64(i), f(9)))
	}
	points = append(points, pt(0, 8, f(-70)))

	p := grade.ComputeProfile(points)
	assert.InDelta(t, 63.0, p.Stats.TotalAscentPct, 1e-9)
	assert.InDelta(t, 70.0, p.Stats.TotalDescentPct, 1e-9)
	assert.Equal(t, 70.0, p.Stats.MaxAbsGradePct)
	assert.Equal(t, domain.DifficultyBrutal, p.Stats.Difficulty)
}
