package geospatial_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samirrijal/routegrade/internal/core/domain"
	"github.com/samirrijal/routegrade/internal/pkg/geospatial"
)

func TestHaversine(t *testing.T) {
	// one degree of latitude is roughly 111.2 km
	d := geospatial.Haversine(0, 0, 1, 0)
	assert.InDelta(t, 111195, d, 10)
	assert.Equal(t, 0.0, geospatial.Haversine(43.26, -2.93, 43.26, -2.93))
}

func TestSegmentDistances(t *testing.T) {
	d := geospatial.SegmentDistances([]float64{0, 0, 0}, []float64{0, 0.001, 0.002})
	require.Len(t, d, 3)
	assert.Equal(t, 0.0, d[0])
	assert.InDelta(t, 111.2, d[1], 0.5)
	assert.InDelta(t, d[1], d[2], 1e-6)

	assert.Empty(t, geospatial.SegmentDistances(nil, nil))
}

func TestRoundCoord(t *testing.T) {
	assert.Equal(t, 12.93457, geospatial.RoundCoord(12.934567, 5))
	assert.Equal(t, -2.9, geospatial.RoundCoord(-2.94, 1))
}

func TestPolylineRoundTrip(t *testing.T) {
	// reference example from the polyline algorithm documentation
	const encoded = "_p~iF~ps|U_ulLnnqC_mqNvxq`@"
	points, err := geospatial.DecodePolyline(encoded)
	require.NoError(t, err)
	require.Len(t, points, 3)
	assert.InDelta(t, 38.5, points[0].Lat, 1e-6)
	assert.InDelta(t, -120.2, points[0].Lon, 1e-6)
	assert.InDelta(t, 43.252, points[2].Lat, 1e-6)
	assert.InDelta(t, -126.453, points[2].Lon, 1e-6)

	assert.Equal(t, encoded, geospatial.EncodePolyline(points))
}

func TestDecodePolyline_Invalid(t *testing.T) {
	for _, in := range []string{"", "_p~iF~ps|U_"} {
		_, err := geospatial.DecodePolyline(in)
		assert.True(t, errors.Is(err, domain.ErrInvalidPolyline), "input %q: %v", in, err)
	}
}

func TestSegmentsFeatureCollection(t *testing.T) {
	a := domain.GeoPoint{Lat: 43.26, Lon: -2.93}
	b := domain.GeoPoint{Lat: 43.27, Lon: -2.94}
	fc := geospatial.SegmentsFeatureCollection(a, b, []domain.Segment{
		{From: a, To: b, Slope: 9, Band: domain.BandSteepUp},
	})

	require.Len(t, fc.Features, 3)

	line := fc.Features[0]
	assert.Equal(t, "LineString", line.Geometry.GeoJSONType())
	assert.Equal(t, "#d73027", line.Properties["stroke"])
	assert.Equal(t, "steep-up", line.Properties["band"])

	// GeoJSON order is lon, lat
	data, err := fc.MarshalJSON()
	require.NoError(t, err)
	assert.Contains(t, string(data), "[-2.93,43.26]")

	assert.Equal(t, "start", fc.Features[1].Properties["marker"])
	assert.Equal(t, "end", fc.Features[2].Properties["marker"])
}
