package domain

import "fmt"

// GeoPoint represents a geographic coordinate (WGS 84).
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Valid reports whether the point lies inside the WGS 84 coordinate range.
func (p GeoPoint) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lon >= -180 && p.Lon <= 180
}

func (p GeoPoint) String() string {
	return fmt.Sprintf("%.6f,%.6f", p.Lat, p.Lon)
}

// ElevationPoint is a path vertex annotated by the elevation service.
// A nil Slope means the upstream did not provide one.
type ElevationPoint struct {
	GeoPoint
	Slope     *float64 `json:"slope_pct"`
	Elevation *float64 `json:"elev_m,omitempty"`
}

// SlopeOrZero returns the slope percentage, or 0 when it is absent.
func (p ElevationPoint) SlopeOrZero() float64 {
	if p.Slope == nil {
		return 0
	}
	return *p.Slope
}
