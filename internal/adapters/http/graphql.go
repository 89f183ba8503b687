package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/samirrijal/routegrade/internal/core/domain"
	"github.com/samirrijal/routegrade/internal/core/grade"
)

// buildSchema creates the GraphQL schema wired to our services.
func buildSchema(deps *Dependencies) (graphql.Schema, error) {
	geoPointType := graphql.NewObject(graphql.ObjectConfig{
		Name: "GeoPoint",
		Fields: graphql.Fields{
			"lat": &graphql.Field{Type: graphql.Float},
			"lon": &graphql.Field{Type: graphql.Float},
		},
	})

	segmentType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Segment",
		Fields: graphql.Fields{
			"from":      &graphql.Field{Type: geoPointType},
			"to":        &graphql.Field{Type: geoPointType},
			"slope_pct": &graphql.Field{Type: graphql.Float},
			"band": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return string(p.Source.(domain.Segment).Band), nil
				},
			},
			"color": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(domain.Segment).Color(), nil
				},
			},
		},
	})

	statsType := graphql.NewObject(graphql.ObjectConfig{
		Name: "RouteStats",
		Fields: graphql.Fields{
			"total_ascent_pct":  &graphql.Field{Type: graphql.Float},
			"total_descent_pct": &graphql.Field{Type: graphql.Float},
			"max_abs_grade_pct": &graphql.Field{Type: graphql.Float},
			"difficulty": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return string(p.Source.(domain.RouteStats).Difficulty), nil
				},
			},
		},
	})

	routeType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Route",
		Fields: graphql.Fields{
			"start":       &graphql.Field{Type: geoPointType},
			"end":         &graphql.Field{Type: geoPointType},
			"geometry":    &graphql.Field{Type: graphql.String},
			"segments":    &graphql.Field{Type: graphql.NewList(segmentType)},
			"stats":       &graphql.Field{Type: statsType},
			"computed_at": &graphql.Field{Type: graphql.String},
		},
	})

	bandType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Band",
		Fields: graphql.Fields{
			"band":  &graphql.Field{Type: graphql.String},
			"color": &graphql.Field{Type: graphql.String},
		},
	})

	annotatedPointType := graphql.NewObject(graphql.ObjectConfig{
		Name: "AnnotatedPoint",
		Fields: graphql.Fields{
			"lat":       &graphql.Field{Type: graphql.Float},
			"lon":       &graphql.Field{Type: graphql.Float},
			"elev_m":    &graphql.Field{Type: graphql.Float},
			"slope_pct": &graphql.Field{Type: graphql.Float},
		},
	})

	elevationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "ElevationSummary",
		Fields: graphql.Fields{
			"total_ascent_m":  &graphql.Field{Type: graphql.Float},
			"total_descent_m": &graphql.Field{Type: graphql.Float},
			"max_slope_pct":   &graphql.Field{Type: graphql.Float},
			"avg_slope_pct":   &graphql.Field{Type: graphql.Float},
			"difficulty":      &graphql.Field{Type: graphql.String},
			"points":          &graphql.Field{Type: graphql.NewList(annotatedPointType)},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"route": &graphql.Field{
				Type:        routeType,
				Description: "Plan a graded cycling route between two points",
				Args: graphql.FieldConfigArgument{
					"fromLat": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"fromLon": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"toLat":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"toLon":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					start := domain.GeoPoint{Lat: p.Args["fromLat"].(float64), Lon: p.Args["fromLon"].(float64)}
					end := domain.GeoPoint{Lat: p.Args["toLat"].(float64), Lon: p.Args["toLon"].(float64)}

					plan, err := deps.Routes.Plan(p.Context, start, end)
					if err != nil {
						return nil, err
					}
					return map[string]interface{}{
						"start":       plan.Start,
						"end":         plan.End,
						"geometry":    plan.Geometry,
						"segments":    plan.Profile.Segments,
						"stats":       plan.Profile.Stats,
						"computed_at": plan.ComputedAt.Format(time.RFC3339),
					}, nil
				},
			},
			"classify": &graphql.Field{
				Type:        bandType,
				Description: "Grade band and display color for a slope percentage",
				Args: graphql.FieldConfigArgument{
					"slope": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					band := grade.Classify(p.Args["slope"].(float64))
					return map[string]interface{}{
						"band":  string(band),
						"color": band.Color(),
					}, nil
				},
			},
			"elevation": &graphql.Field{
				Type:        elevationType,
				Description: "Annotate an encoded polyline with elevations and slopes",
				Args: graphql.FieldConfigArgument{
					"poly": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if deps.Elevation == nil {
						return nil, errElevationDisabled
					}
					return deps.Elevation.Annotate(p.Context, p.Args["poly"].(string))
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: queryType,
	})
}

// GraphQLHandler serves the GraphQL endpoint.
func GraphQLHandler(deps *Dependencies) fiber.Handler {
	schema, err := buildSchema(deps)
	if err != nil {
		// programming error in the schema definition
		panic("graphql schema build: " + err.Error())
	}

	type gqlRequest struct {
		Query         string                 `json:"query"`
		OperationName string                 `json:"operationName"`
		Variables     map[string]interface{} `json:"variables"`
	}

	return func(c *fiber.Ctx) error {
		var req gqlRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        c.UserContext(),
		})

		return c.JSON(result)
	}
}
