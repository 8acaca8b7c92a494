// Package analysis handles Kafka event production for runtime
// observation events.
package analysis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// AnalysisProducer handles sending runtime observation events to Kafka
type AnalysisProducer struct {
	Writer *kafka.Writer
}

// NewAnalysisProducer initializes a new Kafka writer for runtime events
func NewAnalysisProducer(brokers []string, topic string) *AnalysisProducer {
	return &AnalysisProducer{
		Writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

// runtimeObservedMessage builds the keyed Kafka message for one
// observation. The key is the reporting host so observations from the
// same machine stay ordered within a partition.
func runtimeObservedMessage(host, raw, vendorHint string) (kafka.Message, error) {
	event := RuntimeObservedEvent{
		EventType:     "runtime.observed",
		EventID:       uuid.New().String(),
		EventTime:     time.Now().UTC(),
		SchemaVersion: "v1",
		Host:          host,
		Raw:           raw,
		VendorHint:    vendorHint,
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, err
	}

	return kafka.Message{
		Key:   []byte(host),
		Value: payload,
	}, nil
}

// PublishRuntimeObserved sends the event to the Kafka topic
func (p *AnalysisProducer) PublishRuntimeObserved(ctx context.Context, host, raw, vendorHint string) error {
	msg, err := runtimeObservedMessage(host, raw, vendorHint)
	if err != nil {
		return err
	}
	return p.Writer.WriteMessages(ctx, msg)
}

// Close cleans up the Kafka writer
func (p *AnalysisProducer) Close() error {
	return p.Writer.Close()
}
