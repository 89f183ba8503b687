package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samirrijal/routegrade/internal/core/domain"
)

// parsePoint reads "lat,lon" with optional spaces.
func parsePoint(s string) (domain.GeoPoint, error) {
	latStr, lonStr, ok := strings.Cut(s, ",")
	if !ok {
		return domain.GeoPoint{}, fmt.Errorf("%w: want lat,lon, got %q", domain.ErrInvalidInput, s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return domain.GeoPoint{}, fmt.Errorf("%w: bad latitude %q", domain.ErrInvalidInput, latStr)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
	if err != nil {
		return domain.GeoPoint{}, fmt.Errorf("%w: bad longitude %q", domain.ErrInvalidInput, lonStr)
	}
	p := domain.GeoPoint{Lat: lat, Lon: lon}
	if !p.Valid() {
		return domain.GeoPoint{}, fmt.Errorf("%w: %s is out of range", domain.ErrInvalidInput, p)
	}
	return p, nil
}
