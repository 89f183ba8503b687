package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
)

// DeprecatedRoute marks an endpoint as deprecated with a sunset date.
type DeprecatedRoute struct {
	Path        string    // exact request path
	SunsetDate  time.Time // date the endpoint will be removed
	Alternative string    // successor endpoint (optional)
}

// legacyRoutes lists paths kept for clients of the standalone elevation backend.
var legacyRoutes = []DeprecatedRoute{
	{
		Path:        "/route-elevation",
		SunsetDate:  time.Date(2027, time.June, 30, 0, 0, 0, 0, time.UTC),
		Alternative: "/v1/elevation",
	},
}

// DeprecationMiddleware adds Deprecation, Sunset and Link headers (RFC 8594,
// RFC 8288) to deprecated endpoints.
func DeprecationMiddleware(deprecated []DeprecatedRoute) fiber.Handler {
	byPath := make(map[string]DeprecatedRoute, len(deprecated))
	for _, d := range deprecated {
		byPath[d.Path] = d
	}

	return func(c *fiber.Ctx) error {
		d, ok := byPath[c.Path()]
		if !ok {
			return c.Next()
		}

		c.Set("Deprecation", "true")
		c.Set("Sunset", d.SunsetDate.UTC().Format(time.RFC1123))
		if d.Alternative != "" {
			c.Set(fiber.HeaderLink, fmt.Sprintf(`<%s>; rel="successor-version"`, d.Alternative))
		}

		days := time.Until(d.SunsetDate).Hours() / 24
		c.Set(fiber.HeaderWarning, fmt.Sprintf(`299 - "Deprecated API, will sunset in %.0f days"`, days))

		return c.Next()
	}
}
