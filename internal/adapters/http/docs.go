package http

import (
	"github.com/gofiber/fiber/v2"
)

const openAPIPath = "/docs/openapi.yaml"

// swaggerUIHTML loads Swagger UI from a CDN and points it at openAPIPath.
const swaggerUIHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>routegrade API</title>
  <link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5/swagger-ui.css">
</head>
<body style="margin:0">
  <div id="swagger-ui"></div>
  <script src="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    SwaggerUIBundle({url: '` + openAPIPath + `', dom_id: '#swagger-ui', deepLinking: true});
  </script>
</body>
</html>`

// SetupDocs serves Swagger UI at /docs and document at /docs/openapi.yaml.
// An empty document disables both routes.
func SetupDocs(app *fiber.App, document []byte) {
	if len(document) == 0 {
		return
	}

	app.Get("/docs", func(c *fiber.Ctx) error {
		c.Type("html", "utf-8")
		return c.SendString(swaggerUIHTML)
	})

	app.Get(openAPIPath, func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, "application/yaml")
		return c.Send(document)
	})
}
