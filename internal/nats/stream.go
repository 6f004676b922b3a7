package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/wanderwise-ai/trip-planner/internal/model"
)

const (
	// StreamName is the name of the trip progress stream.
	StreamName = "TRIPS"

	// SubjectPrefix is the prefix for all trip subjects.
	SubjectPrefix = "trip"
)

// StreamManager handles JetStream stream operations.
type StreamManager struct {
	client *Client
}

// NewStreamManager creates a new stream manager.
func NewStreamManager(client *Client) *StreamManager {
	return &StreamManager{client: client}
}

// EnsureStream ensures the trip stream exists with proper configuration.
// Progress events are short-lived by design: trips are not persisted beyond
// what the loading view needs.
func (m *StreamManager) EnsureStream(ctx context.Context) error {
	js := m.client.JetStream()

	// Check if stream exists
	_, err := js.Stream(ctx, StreamName)
	if err == nil {
		return nil // Stream already exists
	}

	// Create stream
	_, err = js.CreateStream(ctx, jetstream.StreamConfig{
		Name:        StreamName,
		Subjects:    []string{fmt.Sprintf("%s.>", SubjectPrefix)},
		Retention:   jetstream.LimitsPolicy,
		MaxAge:      7 * 24 * time.Hour,
		MaxBytes:    1024 * 1024 * 1024, // 1GB
		Storage:     jetstream.FileStorage,
		Replicas:    1,
		Compression: jetstream.S2Compression,
		Description: "Trip pipeline progress events",
	})
	if err != nil {
		return fmt.Errorf("failed to create stream: %w", err)
	}

	return nil
}

// EventSubject returns the subject for a trip progress event.
func EventSubject(tripID string, stage model.Stage) string {
	return fmt.Sprintf("%s.%s.%s", SubjectPrefix, tripID, stage)
}

// TripFilter returns the filter subject for all events of a trip.
func TripFilter(tripID string) string {
	return fmt.Sprintf("%s.%s.>", SubjectPrefix, tripID)
}

// PublishTripEvent publishes a progress event to JetStream.
func (m *StreamManager) PublishTripEvent(ctx context.Context, event *model.TripEvent) (uint64, error) {
	subject := EventSubject(event.TripID, event.Stage)

	data, err := json.Marshal(event)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal trip event: %w", err)
	}

	ack, err := m.client.JetStream().Publish(ctx, subject, data)
	if err != nil {
		return 0, fmt.Errorf("failed to publish trip event: %w", err)
	}

	return ack.Sequence, nil
}

// GetTripEvents retrieves progress events for a trip starting after a
// sequence number.
func (m *StreamManager) GetTripEvents(ctx context.Context, tripID string, afterSequence uint64, limit int) ([]model.TripEvent, uint64, bool, error) {
	js := m.client.JetStream()

	consumerConfig := jetstream.ConsumerConfig{
		FilterSubject: TripFilter(tripID),
		AckPolicy:     jetstream.AckNonePolicy,
		DeliverPolicy: jetstream.DeliverAllPolicy,
	}

	if afterSequence > 0 {
		consumerConfig.DeliverPolicy = jetstream.DeliverByStartSequencePolicy
		consumerConfig.OptStartSeq = afterSequence + 1
	}

	consumer, err := js.CreateConsumer(ctx, StreamName, consumerConfig)
	if err != nil {
		return nil, 0, false, fmt.Errorf("failed to create consumer: %w", err)
	}

	var events []model.TripEvent
	var lastSequence uint64

	batch, err := consumer.Fetch(limit, jetstream.FetchMaxWait(2*time.Second))
	if err != nil {
		return nil, 0, false, fmt.Errorf("failed to fetch events: %w", err)
	}

	for msg := range batch.Messages() {
		var event model.TripEvent
		if err := json.Unmarshal(msg.Data(), &event); err != nil {
			continue
		}

		meta, err := msg.Metadata()
		if err == nil {
			event.Sequence = meta.Sequence.Stream
			lastSequence = meta.Sequence.Stream
		}

		events = append(events, event)
	}

	if batch.Error() != nil && batch.Error() != context.DeadlineExceeded {
		return nil, 0, false, fmt.Errorf("batch error: %w", batch.Error())
	}

	hasMore := len(events) == limit

	return events, lastSequence, hasMore, nil
}
