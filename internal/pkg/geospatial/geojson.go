package geospatial

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/samirrijal/routegrade/internal/core/domain"
)

func orbPoint(p domain.GeoPoint) orb.Point {
	return orb.Point{p.Lon, p.Lat}
}

// SegmentsFeatureCollection renders graded segments as GeoJSON line
// features styled with simplestyle properties, plus start and end markers.
func SegmentsFeatureCollection(start, end domain.GeoPoint, segments []domain.Segment) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	for _, s := range segments {
		f := geojson.NewFeature(orb.LineString{orbPoint(s.From), orbPoint(s.To)})
		f.Properties["slope_pct"] = s.Slope
		f.Properties["band"] = string(s.Band)
		f.Properties["stroke"] = s.Color()
		f.Properties["stroke-width"] = 6
		fc.Append(f)
	}

	for _, m := range []struct {
		name string
		at   domain.GeoPoint
	}{{"start", start}, {"end", end}} {
		f := geojson.NewFeature(orbPoint(m.at))
		f.Properties["marker"] = m.name
		fc.Append(f)
	}

	return fc
}
