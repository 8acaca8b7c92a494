package kafka

import (
	"context"
	"crypto/tls"
	"log"
	"os"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"

	"github.com/jdkaudit/jdkaudit-backend/analyzer"
	"github.com/jdkaudit/jdkaudit-backend/database"
	eventanalysis "github.com/jdkaudit/jdkaudit-backend/events/modules/analysis"
	"github.com/jdkaudit/jdkaudit-backend/internal/services"
)

// RunEventProcessor consumes runtime observation events and feeds them
// through the analysis pipeline.
func RunEventProcessor(ctx context.Context, db database.DBConnection, svc *analyzer.Service) error {
	brokersEnv := os.Getenv("KAFKA_BROKERS")
	var brokers []string
	if brokersEnv != "" {
		brokers = strings.Split(brokersEnv, ",")
	} else {
		brokers = []string{"localhost:9092"}
	}

	// SASL/PLAIN credentials are optional, local brokers run without them
	username := os.Getenv("KAFKA_API_KEY")
	password := os.Getenv("KAFKA_API_SECRET")

	var dialer *kafka.Dialer

	if username != "" && password != "" {
		mechanism := plain.Mechanism{
			Username: username,
			Password: password,
		}

		dialer = &kafka.Dialer{
			Timeout:       10 * time.Second,
			DualStack:     true,
			SASLMechanism: mechanism,
			TLS:           &tls.Config{}, // managed brokers require TLS
		}
	} else {
		dialer = &kafka.Dialer{
			Timeout:   10 * time.Second,
			DualStack: true,
		}
	}

	topic := "runtime-events"
	var conn *kafka.Conn
	var err error

	// Retry logic: 3 tries
	for i := 1; i <= 3; i++ {
		log.Printf("Kafka connection attempt %d/3...", i)
		conn, err = dialer.DialContext(ctx, "tcp", brokers[0])
		if err == nil {
			conn.Close()
			break
		}
		if i < 3 {
			time.Sleep(2 * time.Second)
		}
	}

	if err != nil {
		return err
	}

	readerConfig := kafka.ReaderConfig{
		Brokers:  brokers,
		GroupID:  "jdkaudit-backend-worker",
		Topic:    topic,
		MaxBytes: 10e6,
		Dialer:   dialer,
	}

	reader := kafka.NewReader(readerConfig)

	go func() {
		defer reader.Close()
		service := &services.AnalysisServiceWrapper{DB: db, Svc: svc}

		log.Println("Kafka Event Processor started. Listening for runtime events...")

		for {
			select {
			case <-ctx.Done():
				return
			default:
				msg, err := reader.ReadMessage(ctx)
				if err != nil {
					if ctx.Err() != nil {
						return
					}
					log.Printf("Kafka read error, retrying: %v", err)
					time.Sleep(2 * time.Second)
					continue
				}
				_ = eventanalysis.HandleRuntimeObservedWithService(ctx, msg.Value, service)
			}
		}
	}()

	return nil
}
