// package main provides the entry point for the jdkaudit-backend microservice,
// which parses Java runtime version strings, evaluates license policy and
// classifies lifecycle risk, serving the results over REST and GraphQL.
package main

import (
	"context"
	"log"
	"os"

	"github.com/jdkaudit/jdkaudit-backend/analyzer"
	"github.com/jdkaudit/jdkaudit-backend/config"
	"github.com/jdkaudit/jdkaudit-backend/database"
	"github.com/jdkaudit/jdkaudit-backend/internal/api"
	"github.com/jdkaudit/jdkaudit-backend/internal/kafka"
)

func main() {
	// Load the policy bundle. An empty POLICY_FILE means the built-in
	// defaults, a bad file or a non-exhaustive rule chain is fatal.
	policyFile := database.GetEnvDefault("POLICY_FILE", "")
	bundle, err := config.Load(policyFile)
	if err != nil {
		log.Fatalf("Failed to load policy bundle: %v", err)
	}

	svc, err := analyzer.NewService(bundle)
	if err != nil {
		log.Fatalf("Failed to initialize analyzer: %v", err)
	}

	// Initialize database connection
	db := database.InitializeDatabase()

	// Create Fiber app with REST and GraphQL routes
	app := api.NewFiberApp(db, svc)

	// Optional event-driven ingestion of runtime observations
	if os.Getenv("KAFKA_BROKERS") != "" {
		if err := kafka.RunEventProcessor(context.Background(), db, svc); err != nil {
			log.Printf("WARNING: Kafka event processor not started: %v", err)
		}
	}

	// Get port from environment or default to 3000
	port := database.GetEnvDefault("MS_PORT", "3000")

	// Start server
	log.Printf("Starting server on port %s", port)
	log.Printf("GraphQL endpoint available at /api/v1/graphql")
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
