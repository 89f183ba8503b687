package openelevation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/samirrijal/routegrade/internal/core/domain"
)

// Client implements ports.ElevationLookup against an Open-Elevation
// compatible lookup endpoint.
type Client struct {
	httpClient *http.Client
	url        string
}

func NewClient(url string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		url:        url,
	}
}

type location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type lookupRequest struct {
	Locations []location `json:"locations"`
}

type lookupResponse struct {
	Results []struct {
		Elevation *float64 `json:"elevation"`
	} `json:"results"`
}

// Lookup returns one elevation per input point, in order. Points the
// service did not answer for come back as nil.
func (c *Client) Lookup(ctx context.Context, points []domain.GeoPoint) ([]*float64, error) {
	out := make([]*float64, len(points))
	if len(points) == 0 {
		return out, nil
	}

	body := lookupRequest{Locations: make([]location, len(points))}
	for i, p := range points {
		body.Locations[i] = location{Latitude: p.Lat, Longitude: p.Lon}
	}
	buf, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal lookup request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(buf))
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", domain.ErrElevationUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrElevationUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: lookup returned HTTP %d", domain.ErrElevationUnavailable, resp.StatusCode)
	}

	var lr lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", domain.ErrElevationUnavailable, err)
	}

	for i := range out {
		if i >= len(lr.Results) {
			break
		}
		out[i] = lr.Results[i].Elevation
	}
	return out, nil
}
