// Package analysis defines the GraphQL types for runtime analysis results.
package analysis

import (
	"github.com/graphql-go/graphql"

	"github.com/jdkaudit/jdkaudit-backend/model"
)

// VendorInfoType represents the identified runtime vendor and its evidence.
var VendorInfoType = graphql.NewObject(graphql.ObjectConfig{
	Name: "VendorInfo",
	Fields: graphql.Fields{
		"id":       &graphql.Field{Type: graphql.String},
		"evidence": &graphql.Field{Type: graphql.String},
		"display_name": &graphql.Field{
			Type: graphql.String,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if info, ok := p.Source.(model.VendorInfo); ok {
					return info.ID.DisplayName(), nil
				}
				return nil, nil
			},
		},
	},
})

// VersionIdentityType represents the canonical parsed runtime version.
var VersionIdentityType = graphql.NewObject(graphql.ObjectConfig{
	Name: "VersionIdentity",
	Fields: graphql.Fields{
		"major":      &graphql.Field{Type: graphql.Int},
		"minor":      &graphql.Field{Type: graphql.Int},
		"security":   &graphql.Field{Type: graphql.Int},
		"build":      &graphql.Field{Type: graphql.String},
		"raw":        &graphql.Field{Type: graphql.String},
		"format_era": &graphql.Field{Type: graphql.String},
		"vendor":     &graphql.Field{Type: VendorInfoType},
	},
})

// LicenseDecisionType represents the license rule outcome.
var LicenseDecisionType = graphql.NewObject(graphql.ObjectConfig{
	Name: "LicenseDecision",
	Fields: graphql.Fields{
		"flag":        &graphql.Field{Type: graphql.String},
		"explanation": &graphql.Field{Type: graphql.String},
		"policy_ref":  &graphql.Field{Type: graphql.String},
		"rule_name":   &graphql.Field{Type: graphql.String},
	},
})

// LifecycleRecordType represents one row of the lifecycle reference table.
var LifecycleRecordType = graphql.NewObject(graphql.ObjectConfig{
	Name: "LifecycleRecord",
	Fields: graphql.Fields{
		"vendor":                 &graphql.Field{Type: graphql.String},
		"major":                  &graphql.Field{Type: graphql.Int},
		"lts":                    &graphql.Field{Type: graphql.Boolean},
		"eol_date":               &graphql.Field{Type: graphql.DateTime},
		"security_support_until": &graphql.Field{Type: graphql.DateTime},
	},
})

// RiskAssessmentType represents the operational risk classification.
var RiskAssessmentType = graphql.NewObject(graphql.ObjectConfig{
	Name: "RiskAssessment",
	Fields: graphql.Fields{
		"category":           &graphql.Field{Type: graphql.String},
		"record":             &graphql.Field{Type: LifecycleRecordType},
		"reduced_confidence": &graphql.Field{Type: graphql.Boolean},
	},
})

// AnalysisType represents a stored analysis verdict.
var AnalysisType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Analysis",
	Fields: graphql.Fields{
		"key": &graphql.Field{
			Type: graphql.String,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				switch verdict := p.Source.(type) {
				case model.Verdict:
					return verdict.Key, nil
				case *model.Verdict:
					return verdict.Key, nil
				}
				return nil, nil
			},
		},
		"objtype":          &graphql.Field{Type: graphql.String},
		"version_identity": &graphql.Field{Type: VersionIdentityType},
		"license":          &graphql.Field{Type: LicenseDecisionType},
		"risk":             &graphql.Field{Type: RiskAssessmentType},
		"parse_confidence": &graphql.Field{Type: graphql.String},
		"runtime_purl":     &graphql.Field{Type: graphql.String},
		"analyzed_at":      &graphql.Field{Type: graphql.DateTime},
	},
})

// ParseFailureType represents a typed parse rejection.
var ParseFailureType = graphql.NewObject(graphql.ObjectConfig{
	Name: "ParseFailure",
	Fields: graphql.Fields{
		"reason": &graphql.Field{Type: graphql.String},
		"input":  &graphql.Field{Type: graphql.String},
		"detail": &graphql.Field{Type: graphql.String},
	},
})

// AnalyzeResultType wraps a transient analysis so callers get either a
// verdict or a typed failure, never both.
var AnalyzeResultType = graphql.NewObject(graphql.ObjectConfig{
	Name: "AnalyzeResult",
	Fields: graphql.Fields{
		"verdict": &graphql.Field{Type: AnalysisType},
		"failure": &graphql.Field{Type: ParseFailureType},
	},
})
