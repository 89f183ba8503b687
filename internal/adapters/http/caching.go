package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// cacheRule maps a path (or prefix, when it ends in "/") to a Cache-Control value.
type cacheRule struct {
	path  string
	value string
}

// First match wins.
var cacheRules = []cacheRule{
	{"/v1/health", "no-cache"},
	{"/v1/ready", "no-cache"},
	{"/metrics", "no-cache"},
	{"/v1/route", "public, max-age=600"},      // plan cache lifetime
	{"/v1/elevation", "public, max-age=86400"}, // terrain does not change
	{"/route-elevation", "public, max-age=86400"},
	{"/docs", "public, max-age=3600"},
	{"/docs/", "public, max-age=3600"},
}

func cacheControlFor(path string) string {
	for _, r := range cacheRules {
		if path == r.path || (strings.HasSuffix(r.path, "/") && strings.HasPrefix(path, r.path)) {
			return r.value
		}
	}
	return ""
}

// CachingMiddleware sets Cache-Control on GET responses. Errors are never
// cached and a header set by the handler is left alone.
func CachingMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		if c.Method() != fiber.MethodGet {
			return err
		}

		switch {
		case c.Response().StatusCode() >= fiber.StatusBadRequest:
			c.Set(fiber.HeaderCacheControl, "no-store")
		case c.GetRespHeader(fiber.HeaderCacheControl) != "":
		default:
			if v := cacheControlFor(c.Path()); v != "" {
				c.Set(fiber.HeaderCacheControl, v)
			}
		}
		return err
	}
}
