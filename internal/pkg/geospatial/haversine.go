package geospatial

import "math"

const earthRadiusKm = 6371.0

// Haversine calculates the great-circle distance in meters between two points.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	// clamp rounding noise on near-antipodal or identical points
	a = math.Min(1, math.Max(0, a))

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c * 1000 // meters
}

// SegmentDistances returns the distance in meters from each point to its
// predecessor. The first entry is always 0.
func SegmentDistances(lats, lons []float64) []float64 {
	out := make([]float64, len(lats))
	for i := 1; i < len(lats); i++ {
		out[i] = Haversine(lats[i-1], lons[i-1], lats[i], lons[i])
	}
	return out
}

// RoundCoord rounds a coordinate to the given number of decimal places.
func RoundCoord(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
