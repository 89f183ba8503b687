package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/samirrijal/routegrade/internal/core/domain"
	"github.com/samirrijal/routegrade/internal/pkg/geospatial"
)

// RouteResponse is the JSON shape of a planned route.
type RouteResponse struct {
	Start      domain.GeoPoint         `json:"start"`
	End        domain.GeoPoint         `json:"end"`
	Geometry   string                  `json:"geometry"`
	Segments   []domain.Segment        `json:"segments"`
	Stats      domain.RouteStats       `json:"stats"`
	Points     []domain.ElevationPoint `json:"points,omitempty"`
	ComputedAt time.Time               `json:"computed_at"`
}

// ProfileRequest is the body of POST /v1/profile.
type ProfileRequest struct {
	Points []domain.ElevationPoint `json:"points"`
}

// queryPoint reads a required coordinate pair from the query string.
func queryPoint(c *fiber.Ctx, latKey, lonKey string) (domain.GeoPoint, bool) {
	lat, err1 := strconv.ParseFloat(c.Query(latKey), 64)
	lon, err2 := strconv.ParseFloat(c.Query(lonKey), 64)
	p := domain.GeoPoint{Lat: lat, Lon: lon}
	return p, err1 == nil && err2 == nil && p.Valid()
}

// RouteHandler plans a graded cycling route between two points.
//
//	GET /v1/route?from_lat=..&from_lon=..&to_lat=..&to_lon=..[&raw=true][&format=geojson]
func RouteHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start, ok := queryPoint(c, "from_lat", "from_lon")
		if !ok {
			return errBadRequest(c, "from_lat and from_lon must be valid coordinates")
		}
		end, ok := queryPoint(c, "to_lat", "to_lon")
		if !ok {
			return errBadRequest(c, "to_lat and to_lon must be valid coordinates")
		}

		format := c.Query("format", "json")
		if format != "json" && format != "geojson" {
			return errBadRequest(c, "format must be json or geojson")
		}

		plan, err := deps.Routes.Plan(c.UserContext(), start, end)
		if err != nil {
			return errFromDomain(c, err)
		}

		if format == "geojson" {
			return c.JSON(geospatial.SegmentsFeatureCollection(plan.Start, plan.End, plan.Profile.Segments),
				"application/geo+json")
		}

		resp := RouteResponse{
			Start:      plan.Start,
			End:        plan.End,
			Geometry:   plan.Geometry,
			Segments:   plan.Profile.Segments,
			Stats:      plan.Profile.Stats,
			ComputedAt: plan.ComputedAt,
		}
		if c.QueryBool("raw", false) {
			resp.Points = plan.Points
		}
		return c.JSON(resp)
	}
}

// ProfileHandler aggregates caller-supplied annotated points.
//
//	POST /v1/profile {"points":[{"lat":..,"lon":..,"slope_pct":..}]}
func ProfileHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req ProfileRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		return c.JSON(deps.Routes.Profile(c.UserContext(), req.Points))
	}
}

// ElevationHandler annotates an encoded polyline with elevations and slopes.
//
//	GET /v1/elevation?poly=..
func ElevationHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		poly := c.Query("poly")
		if poly == "" {
			return errBadRequest(c, "poly query parameter is required")
		}
		if deps.Elevation == nil {
			return errUnavailable(c, errElevationDisabled.Error())
		}

		summary, err := deps.Elevation.Annotate(c.UserContext(), poly)
		if err != nil {
			return errFromDomain(c, err)
		}
		return c.JSON(summary)
	}
}
