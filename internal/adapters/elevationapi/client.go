package elevationapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/samirrijal/routegrade/internal/core/domain"
)

// Client implements ports.ElevationProvider by calling a remote elevation
// annotator (GET <base>?poly=<polyline>).
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a client for the annotator at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
	}
}

type pointDTO struct {
	Lat      float64  `json:"lat"`
	Lon      float64  `json:"lon"`
	SlopePct *float64 `json:"slope_pct"`
	ElevM    *float64 `json:"elev_m"`
}

type profileResponse struct {
	Points *[]pointDTO `json:"points"`
}

// FetchElevationProfile returns the annotated points for geometry.
func (c *Client) FetchElevationProfile(ctx context.Context, geometry string) ([]domain.ElevationPoint, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: base url: %v", domain.ErrElevationUnavailable, err)
	}
	q := u.Query()
	q.Set("poly", geometry)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", domain.ErrElevationUnavailable, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrElevationUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: HTTP %d: %s", domain.ErrElevationUnavailable, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var pr profileResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", domain.ErrElevationUnavailable, err)
	}
	if pr.Points == nil {
		return nil, fmt.Errorf("%w: response has no points", domain.ErrElevationUnavailable)
	}

	points := make([]domain.ElevationPoint, len(*pr.Points))
	for i, p := range *pr.Points {
		points[i] = domain.ElevationPoint{
			GeoPoint:  domain.GeoPoint{Lat: p.Lat, Lon: p.Lon},
			Slope:     p.SlopePct,
			Elevation: p.ElevM,
		}
	}
	return points, nil
}
