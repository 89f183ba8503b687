package http_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/samirrijal/routegrade/api"
)

func loadOpenAPI(t *testing.T) *openapi3.T {
	t.Helper()
	loader := &openapi3.Loader{IsExternalRefsAllowed: false}
	doc, err := loader.LoadFromData(api.OpenAPI)
	if err != nil {
		t.Fatalf("failed to parse OpenAPI document: %v", err)
	}
	return doc
}

// TestOpenAPIDocument validates the document and checks it covers every route.
func TestOpenAPIDocument(t *testing.T) {
	doc := loadOpenAPI(t)

	if err := doc.Validate(context.Background()); err != nil {
		t.Fatalf("OpenAPI validation failed: %v", err)
	}

	expectedPaths := []string{
		"/v1/health",
		"/v1/ready",
		"/v1/route",
		"/v1/profile",
		"/v1/elevation",
		"/route-elevation",
		"/graphql",
	}
	for _, path := range expectedPaths {
		if item := doc.Paths.Find(path); item == nil {
			t.Errorf("expected path %s not found", path)
		}
	}

	if op := doc.Paths.Find("/route-elevation").Get; op == nil || !op.Deprecated {
		t.Error("legacy elevation path must be marked deprecated")
	}

	expectedSchemas := []string{
		"GeoPoint",
		"ElevationPoint",
		"Band",
		"Segment",
		"RouteStats",
		"Profile",
		"RouteResponse",
		"ElevationSummary",
		"APIError",
	}
	for _, schema := range expectedSchemas {
		if doc.Components.Schemas[schema] == nil {
			t.Errorf("expected schema %s not found", schema)
		}
	}

	t.Logf("OpenAPI document valid: %d paths, %d schemas", len(doc.Paths.Map()), len(doc.Components.Schemas))
}

// TestOpenAPIInfo verifies document metadata.
func TestOpenAPIInfo(t *testing.T) {
	doc := loadOpenAPI(t)

	if doc.Info.Title != "routegrade API" {
		t.Errorf("expected title 'routegrade API', got %q", doc.Info.Title)
	}
	if doc.Info.Version != "1.0.0" {
		t.Errorf("expected version 1.0.0, got %q", doc.Info.Version)
	}
	if doc.Info.Description == "" {
		t.Error("expected non-empty description")
	}
	if len(doc.Servers) == 0 {
		t.Fatal("expected at least one server")
	}
}

func TestDocsRoutes(t *testing.T) {
	app := setupApp(makeDeps())

	resp, _ := app.Test(httptest.NewRequest("GET", "/docs/openapi.yaml", nil), -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if body := readBody(t, resp.Body); len(body) != len(api.OpenAPI) {
		t.Errorf("expected the embedded document, got %d bytes", len(body))
	}

	resp, _ = app.Test(httptest.NewRequest("GET", "/docs", nil), -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}
