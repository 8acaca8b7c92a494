// Package analysis defines types for Kafka event processing of runtime
// observation events.
package analysis

import (
	"time"
)

// RuntimeObservedEvent represents a runtime observation published to
// Kafka by an inventory agent. Raw carries the version string exactly
// as captured on the host.
type RuntimeObservedEvent struct {
	EventType     string    `json:"event_type"`
	EventID       string    `json:"event_id"`
	EventTime     time.Time `json:"event_time"`
	SchemaVersion string    `json:"schema_version"`

	Host       string `json:"host"`
	Raw        string `json:"raw"`
	VendorHint string `json:"vendor_hint,omitempty"`
}
