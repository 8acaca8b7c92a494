// Package analysis handles Kafka event processing for runtime
// observation events.
package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/jdkaudit/jdkaudit-backend/model"
)

// AnalysisService defines the interface for recording an analysis of an
// observed runtime.
type AnalysisService interface {
	RecordAnalysis(ctx context.Context, raw, vendorHint string) (*model.Verdict, error)
}

// HandleRuntimeObservedWithService processes runtime observation events from Kafka.
// A parse rejection is an expected outcome of untrusted agent input and is
// logged rather than retried.
func HandleRuntimeObservedWithService(ctx context.Context, msg []byte, service AnalysisService) error {
	var event RuntimeObservedEvent
	if err := json.Unmarshal(msg, &event); err != nil {
		return fmt.Errorf("failed to unmarshal RuntimeObservedEvent: %w", err)
	}

	if event.Host == "" || event.Raw == "" {
		return fmt.Errorf("invalid event: missing required fields")
	}

	log.Printf("Processing runtime observation from %s", event.Host)

	verdict, err := service.RecordAnalysis(ctx, event.Raw, event.VendorHint)
	if err != nil {
		var failure *model.ParseFailure
		if errors.As(err, &failure) {
			log.Printf("Rejected runtime string from %s (%s): %q", event.Host, failure.Reason, failure.Input)
			return nil
		}
		return fmt.Errorf("internal service error: %w", err)
	}

	log.Printf("Recorded analysis for %s: %s / %s", event.Host, verdict.License.Flag, verdict.Risk.Category)
	return nil
}
