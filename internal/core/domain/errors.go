package domain

import "errors"

var (
	// ErrRouteUnavailable means the routing upstream failed or returned no route.
	ErrRouteUnavailable = errors.New("route unavailable")
	// ErrElevationUnavailable means the elevation upstream failed or sent a malformed response.
	ErrElevationUnavailable = errors.New("elevation unavailable")
	// ErrInvalidInput is returned for malformed request input such as out-of-range coordinates.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidPolyline means an encoded polyline could not be decoded or was empty.
	ErrInvalidPolyline = errors.New("invalid polyline")
	// ErrStaleResult is returned when a plan lands after the selection it belongs to was reset.
	ErrStaleResult = errors.New("stale result discarded")
)
