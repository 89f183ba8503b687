package osrm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/samirrijal/routegrade/internal/core/domain"
)

// Client implements ports.RouteProvider against an OSRM HTTP API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	profile    string
}

// NewClient creates an OSRM client for the cycling profile.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		profile:    "cycling",
	}
}

type routeResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Routes  []struct {
		Geometry string  `json:"geometry"`
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
	} `json:"routes"`
}

// FetchRoute returns the full-detail polyline geometry of the first route
// between start and end.
func (c *Client) FetchRoute(ctx context.Context, start, end domain.GeoPoint) (string, error) {
	url := fmt.Sprintf("%s/route/v1/%s/%s;%s?overview=full&geometries=polyline",
		c.baseURL, c.profile, lonLat(start), lonLat(end))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("%w: build request: %v", domain.ErrRouteUnavailable, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrRouteUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("%w: HTTP %d: %s", domain.ErrRouteUnavailable, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var rr routeResponse
	if err := json.NewDecoder(resp.Body).Decode(&rr); err != nil {
		return "", fmt.Errorf("%w: decode: %v", domain.ErrRouteUnavailable, err)
	}
	if len(rr.Routes) == 0 {
		return "", fmt.Errorf("%w: no routes found (code=%q)", domain.ErrRouteUnavailable, rr.Code)
	}
	if rr.Routes[0].Geometry == "" {
		return "", fmt.Errorf("%w: empty geometry", domain.ErrRouteUnavailable)
	}

	return rr.Routes[0].Geometry, nil
}

// lonLat formats a point the way OSRM expects it in the path: "lon,lat".
func lonLat(p domain.GeoPoint) string {
	return strconv.FormatFloat(p.Lon, 'f', -1, 64) + "," + strconv.FormatFloat(p.Lat, 'f', -1, 64)
}
