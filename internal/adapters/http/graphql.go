package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"
)

// buildSchema creates the read-only GraphQL schema wired to our services.
// Mutations stay on the REST surface where auth and rate limiting live.
func buildSchema(deps *Dependencies) (graphql.Schema, error) {
	geoPointType := graphql.NewObject(graphql.ObjectConfig{
		Name: "GeoPoint",
		Fields: graphql.Fields{
			"lat": &graphql.Field{Type: graphql.Float},
			"lng": &graphql.Field{Type: graphql.Float},
		},
	})

	categoryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Category",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.String},
			"name":        &graphql.Field{Type: graphql.String},
			"description": &graphql.Field{Type: graphql.String},
			"color":       &graphql.Field{Type: graphql.String},
		},
	})

	pointType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Point",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.String},
			"name":        &graphql.Field{Type: graphql.String},
			"description": &graphql.Field{Type: graphql.String},
			"location":    &graphql.Field{Type: geoPointType},
			"category_id": &graphql.Field{Type: graphql.String},
			"category":    &graphql.Field{Type: categoryType},
			"distance":    &graphql.Field{Type: graphql.Float},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"point": &graphql.Field{
				Type:        pointType,
				Description: "Get a point by ID",
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Points.GetByID(p.Context, p.Args["id"].(string))
				},
			},
			"points": &graphql.Field{
				Type:        graphql.NewList(pointType),
				Description: "List points, optionally by category",
				Args: graphql.FieldConfigArgument{
					"category_id": &graphql.ArgumentConfig{Type: graphql.String},
					"page":        &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 1},
					"limit":       &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 20},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					var categoryID *string
					if v, ok := p.Args["category_id"].(string); ok && v != "" {
						categoryID = &v
					}
					points, _, err := deps.Points.List(p.Context,
						categoryID, p.Args["page"].(int), p.Args["limit"].(int))
					return points, err
				},
			},
			"pointsNearby": &graphql.Field{
				Type:        graphql.NewList(pointType),
				Description: "Find points near a location",
				Args: graphql.FieldConfigArgument{
					"lat":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"lng":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"radius": &graphql.ArgumentConfig{Type: graphql.Float, DefaultValue: 1000.0},
					"limit":  &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 20},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Points.FindNearby(p.Context,
						p.Args["lat"].(float64), p.Args["lng"].(float64),
						p.Args["radius"].(float64), p.Args["limit"].(int))
				},
			},
			"category": &graphql.Field{
				Type:        categoryType,
				Description: "Get a category by ID",
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Categories.GetByID(p.Context, p.Args["id"].(string))
				},
			},
			"categories": &graphql.Field{
				Type:        graphql.NewList(categoryType),
				Description: "List categories",
				Args: graphql.FieldConfigArgument{
					"page":  &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 1},
					"limit": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 20},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					categories, _, err := deps.Categories.List(p.Context,
						p.Args["page"].(int), p.Args["limit"].(int))
					return categories, err
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
		// This would be a programming error in the schema definition
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
			return c.Status(400).JSON(fiber.Map{"error": "invalid request body"})
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        c.Context(),
		})

		return c.JSON(result)
	}
}
