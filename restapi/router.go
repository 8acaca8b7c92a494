// Package restapi provides the main router and initialization for REST API endpoints.
package restapi

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/jdkaudit/jdkaudit-backend/analyzer"
	"github.com/jdkaudit/jdkaudit-backend/database"
	"github.com/jdkaudit/jdkaudit-backend/restapi/modules/analysis"
)

// SetupRoutes configures all REST API routes and the GraphQL endpoint.
func SetupRoutes(app *fiber.App, db database.DBConnection, svc *analyzer.Service, schema graphql.Schema) {

	// API Group /api/v1
	api := app.Group("/api/v1")

	// GraphQL Route - Mounted within the api group to inherit path prefixes
	api.Post("/graphql", GraphQLHandler(schema))

	// Analysis Routes
	api.Post("/analyze", analysis.PostAnalyze(db, svc))
	api.Get("/analyses", analysis.GetAnalyses(db))
	api.Get("/runtimes", analysis.GetRuntimeSummary(db))
	api.Get("/lifecycle", analysis.GetLifecycle(svc))

	log.Println("API routes initialized successfully")
}
