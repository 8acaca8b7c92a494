package analysis

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAnalysisProducerConfig(t *testing.T) {
	p := NewAnalysisProducer([]string{"broker-1:9092", "broker-2:9092"}, "runtime-events")

	assert.Equal(t, "runtime-events", p.Writer.Topic)
	assert.Equal(t, "broker-1:9092,broker-2:9092", p.Writer.Addr.String())
	assert.IsType(t, &kafka.LeastBytes{}, p.Writer.Balancer)
}

func TestRuntimeObservedMessage(t *testing.T) {
	msg, err := runtimeObservedMessage("build-agent-7", `openjdk version "21.0.4"`, "temurin")
	require.NoError(t, err)

	assert.Equal(t, []byte("build-agent-7"), msg.Key)

	var event RuntimeObservedEvent
	require.NoError(t, json.Unmarshal(msg.Value, &event))
	assert.Equal(t, "runtime.observed", event.EventType)
	assert.Equal(t, "v1", event.SchemaVersion)
	assert.Equal(t, "build-agent-7", event.Host)
	assert.Equal(t, `openjdk version "21.0.4"`, event.Raw)
	assert.Equal(t, "temurin", event.VendorHint)
	assert.WithinDuration(t, time.Now().UTC(), event.EventTime, 5*time.Second)

	_, err = uuid.Parse(event.EventID)
	assert.NoError(t, err)
}

func TestRuntimeObservedMessageUniqueEventIDs(t *testing.T) {
	first, err := runtimeObservedMessage("host-a", "17.0.2", "")
	require.NoError(t, err)
	second, err := runtimeObservedMessage("host-a", "17.0.2", "")
	require.NoError(t, err)

	var a, b RuntimeObservedEvent
	require.NoError(t, json.Unmarshal(first.Value, &a))
	require.NoError(t, json.Unmarshal(second.Value, &b))
	assert.NotEqual(t, a.EventID, b.EventID)
}
