package analysis

import (
	"context"
	"errors"
	"time"

	"github.com/jdkaudit/jdkaudit-backend/analyzer"
	"github.com/jdkaudit/jdkaudit-backend/database"
	"github.com/jdkaudit/jdkaudit-backend/model"
)

// AnalyzeResult carries either a verdict or a typed parse failure.
type AnalyzeResult struct {
	Verdict *model.Verdict      `json:"verdict,omitempty"`
	Failure *model.ParseFailure `json:"failure,omitempty"`
}

// ResolveAnalyses queries stored verdicts with optional filters.
func ResolveAnalyses(db database.DBConnection, filter database.AnalysisFilter) ([]model.Verdict, error) {
	ctx := context.Background()

	results, err := database.FindAnalyses(ctx, db, filter)
	if err != nil {
		return nil, err
	}
	if results == nil {
		results = []model.Verdict{}
	}
	return results, nil
}

// ResolveAnalyze runs a transient analysis without persisting the verdict.
// Parse failures come back as data, not as GraphQL errors.
func ResolveAnalyze(svc *analyzer.Service, raw string, asOf time.Time, vendorHint string) (*AnalyzeResult, error) {
	verdict, err := svc.Analyze(raw, asOf, vendorHint)
	if err != nil {
		var failure *model.ParseFailure
		if errors.As(err, &failure) {
			return &AnalyzeResult{Failure: failure}, nil
		}
		return nil, err
	}
	return &AnalyzeResult{Verdict: verdict}, nil
}
