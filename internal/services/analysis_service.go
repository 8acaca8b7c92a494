// Package services provides internal service implementations for the jdkaudit backend.
package services

import (
	"context"
	"time"

	"github.com/jdkaudit/jdkaudit-backend/analyzer"
	"github.com/jdkaudit/jdkaudit-backend/database"
	"github.com/jdkaudit/jdkaudit-backend/model"
)

// AnalysisServiceWrapper implements analysis.AnalysisService
type AnalysisServiceWrapper struct {
	DB  database.DBConnection
	Svc *analyzer.Service
}

// RecordAnalysis runs the full analysis pipeline on an observed runtime
// string and persists the verdict. Kafka-driven ingestion goes through
// the same parse, license, and risk evaluation as the REST API.
func (w *AnalysisServiceWrapper) RecordAnalysis(ctx context.Context, raw, vendorHint string) (*model.Verdict, error) {
	verdict, err := w.Svc.Analyze(raw, time.Now().UTC(), vendorHint)
	if err != nil {
		return nil, err
	}

	key, err := database.SaveAnalysis(ctx, w.DB, verdict)
	if err != nil {
		return nil, err
	}
	verdict.Key = key

	return verdict, nil
}
