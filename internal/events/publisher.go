// Package events publishes post and comment changes to Kafka.
package events

//go:generate mockgen -source=publisher.go -destination=publisher_mock.go -package=events

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/blog-store/internal/logger"
	"github.com/sbilibin2017/blog-store/internal/models"
	"github.com/segmentio/kafka-go"
)

// KafkaWriter is the subset of *kafka.Writer used for publishing.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// Publisher sends content events. A Publisher without a writer drops events.
type Publisher struct {
	writer KafkaWriter
}

// NewPublisher creates a Publisher. writer may be nil.
func NewPublisher(writer KafkaWriter) *Publisher {
	return &Publisher{writer: writer}
}

// NewKafkaWriter builds a writer for a comma separated broker list.
// It returns nil when brokers is empty.
func NewKafkaWriter(brokers, topic string) *kafka.Writer {
	if strings.TrimSpace(brokers) == "" {
		return nil
	}
	return &kafka.Writer{
		Addr:                   kafka.TCP(strings.Split(brokers, ",")...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}
}

// NewKafkaPublisher creates a Publisher writing to topic on brokers.
// With no brokers configured the Publisher drops every event.
func NewKafkaPublisher(brokers, topic string) *Publisher {
	if w := NewKafkaWriter(brokers, topic); w != nil {
		return NewPublisher(w)
	}
	return NewPublisher(nil)
}

// Publish sends the event. Failures are logged and never returned: a lost
// event must not fail the change it describes.
func (p *Publisher) Publish(ctx context.Context, eventType string, entityID, postID, ownerID int64) {
	if p == nil || p.writer == nil {
		logger.Log.Debugw("Kafka writer not configured, skipping event", "type", eventType, "entity_id", entityID)
		return
	}

	event := models.ContentEvent{
		EventID:    uuid.New().String(),
		Type:       eventType,
		EntityID:   entityID,
		PostID:     postID,
		OwnerID:    ownerID,
		OccurredAt: time.Now().UTC(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("Failed to marshal event for Kafka", "type", eventType, "entity_id", entityID, "error", err)
		return
	}

	msg := kafka.Message{
		// Events of one post land on one partition and keep their order.
		Key:   []byte(strconv.FormatInt(postID, 10)),
		Value: data,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("Failed to publish event to Kafka", "event_id", event.EventID, "type", eventType, "error", err)
		return
	}

	logger.Log.Infow("Event published to Kafka", "event_id", event.EventID, "type", eventType, "entity_id", entityID)
}

// Close releases the writer.
func (p *Publisher) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
