// Package graphql assembles the root GraphQL schema from the query modules.
package graphql

import (
	"github.com/graphql-go/graphql"

	"github.com/jdkaudit/jdkaudit-backend/analyzer"
	"github.com/jdkaudit/jdkaudit-backend/database"
	"github.com/jdkaudit/jdkaudit-backend/graphql/modules/analysis"
)

var db database.DBConnection
var svc *analyzer.Service

// InitDB stores the database connection for the resolvers.
func InitDB(dbconn database.DBConnection) {
	db = dbconn
}

// InitService stores the analyzer service for the resolvers.
func InitService(service *analyzer.Service) {
	svc = service
}

// CreateSchema builds the root query schema. InitDB and InitService must
// run first.
func CreateSchema() (graphql.Schema, error) {
	fields := graphql.Fields{}

	for name, field := range analysis.GetQueryFields(db, svc) {
		fields[name] = field
	}

	rootQuery := graphql.NewObject(graphql.ObjectConfig{
		Name:   "Query",
		Fields: fields,
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: rootQuery,
	})
}
