// Package analysis defines the GraphQL queries for runtime analysis.
package analysis

import (
	"time"

	"github.com/graphql-go/graphql"

	"github.com/jdkaudit/jdkaudit-backend/analyzer"
	"github.com/jdkaudit/jdkaudit-backend/database"
)

// GetQueryFields returns the analysis queries to be mounted in the root schema.
func GetQueryFields(db database.DBConnection, svc *analyzer.Service) graphql.Fields {
	return graphql.Fields{
		"analyses": &graphql.Field{
			Type: graphql.NewList(AnalysisType),
			Args: graphql.FieldConfigArgument{
				"vendor":  &graphql.ArgumentConfig{Type: graphql.String},
				"risk":    &graphql.ArgumentConfig{Type: graphql.String},
				"license": &graphql.ArgumentConfig{Type: graphql.String},
				"limit":   &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 100},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				filter := database.AnalysisFilter{}
				if vendor, ok := p.Args["vendor"].(string); ok {
					filter.Vendor = vendor
				}
				if risk, ok := p.Args["risk"].(string); ok {
					filter.RiskCategory = risk
				}
				if license, ok := p.Args["license"].(string); ok {
					filter.LicenseFlag = license
				}
				if limit, ok := p.Args["limit"].(int); ok {
					filter.Limit = limit
				}
				return ResolveAnalyses(db, filter)
			},
		},
		"lifecycleRecords": &graphql.Field{
			Type: graphql.NewList(LifecycleRecordType),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return svc.LifecycleRecords(), nil
			},
		},
		"analyze": &graphql.Field{
			Type: AnalyzeResultType,
			Args: graphql.FieldConfigArgument{
				"raw":        &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				"asOf":       &graphql.ArgumentConfig{Type: graphql.DateTime},
				"vendorHint": &graphql.ArgumentConfig{Type: graphql.String},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				raw := p.Args["raw"].(string)

				asOf := time.Now().UTC()
				if t, ok := p.Args["asOf"].(time.Time); ok {
					asOf = t.UTC()
				}

				vendorHint := ""
				if hint, ok := p.Args["vendorHint"].(string); ok {
					vendorHint = hint
				}

				return ResolveAnalyze(svc, raw, asOf, vendorHint)
			},
		},
	}
}
