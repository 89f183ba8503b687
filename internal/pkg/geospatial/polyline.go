package geospatial

import (
	"fmt"

	"github.com/twpayne/go-polyline"

	"github.com/samirrijal/routegrade/internal/core/domain"
)

// DecodePolyline decodes a precision-5 encoded polyline into points.
func DecodePolyline(encoded string) ([]domain.GeoPoint, error) {
	if encoded == "" {
		return nil, fmt.Errorf("%w: empty", domain.ErrInvalidPolyline)
	}

	coords, rest, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidPolyline, err)
	}
	if len(rest) > 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", domain.ErrInvalidPolyline, len(rest))
	}
	if len(coords) == 0 {
		return nil, fmt.Errorf("%w: no coordinates", domain.ErrInvalidPolyline)
	}

	points := make([]domain.GeoPoint, len(coords))
	for i, c := range coords {
		points[i] = domain.GeoPoint{Lat: c[0], Lon: c[1]}
	}
	return points, nil
}

// EncodePolyline encodes points as a precision-5 polyline.
func EncodePolyline(points []domain.GeoPoint) string {
	coords := make([][]float64, 0, len(points))
	for _, p := range points {
		coords = append(coords, []float64{p.Lat, p.Lon})
	}
	return string(polyline.EncodeCoords(coords))
}
