// Package events wires the storefront to Kafka: checkout events go out,
// exchange-rate updates come in.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/config"
	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/models"
)

// EventType identifies a checkout event.
type EventType string

const (
	EventTypeCheckoutCompleted EventType = "checkout.completed"
	EventTypePaymentIntent     EventType = "checkout.payment_intent_created"
)

// CheckoutEvent is the envelope published for checkout activity.
type CheckoutEvent struct {
	ID        string          `json:"id"`
	Type      EventType       `json:"type"`
	SessionID string          `json:"session_id"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// Publisher publishes checkout events.
type Publisher interface {
	PublishCheckoutCompleted(ctx context.Context, sessionID string, confirmation *models.OrderConfirmation) error
	PublishPaymentIntentCreated(ctx context.Context, sessionID string, intent *models.PaymentIntentResponse) error
	Close() error
}

// KafkaPublisher publishes checkout events to Kafka.
type KafkaPublisher struct {
	writer *kafka.Writer
	logger *zap.Logger
}

// NewKafkaPublisher creates a Kafka-based checkout event publisher.
func NewKafkaPublisher(cfg config.KafkaConfig, logger *zap.Logger) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.CheckoutTopic,
		Balancer:     &kafka.LeastBytes{},
		WriteTimeout: 10 * time.Second,
		RequiredAcks: kafka.RequireOne,
	}

	return &KafkaPublisher{writer: writer, logger: logger}
}

// PublishCheckoutCompleted publishes a completed checkout.
func (p *KafkaPublisher) PublishCheckoutCompleted(ctx context.Context, sessionID string, confirmation *models.OrderConfirmation) error {
	data, err := json.Marshal(confirmation)
	if err != nil {
		return err
	}
	return p.publish(ctx, EventTypeCheckoutCompleted, sessionID, data)
}

// PublishPaymentIntentCreated publishes a created payment intent.
func (p *KafkaPublisher) PublishPaymentIntentCreated(ctx context.Context, sessionID string, intent *models.PaymentIntentResponse) error {
	data, err := json.Marshal(intent)
	if err != nil {
		return err
	}
	return p.publish(ctx, EventTypePaymentIntent, sessionID, data)
}

func (p *KafkaPublisher) publish(ctx context.Context, eventType EventType, sessionID string, data []byte) error {
	event := CheckoutEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		SessionID: sessionID,
		Data:      data,
		Timestamp: time.Now(),
	}

	eventData, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(sessionID),
		Value: eventData,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
			{Key: "event_id", Value: []byte(event.ID)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("failed to publish event",
			zap.String("event_id", event.ID),
			zap.String("event_type", string(event.Type)),
			zap.String("session_id", sessionID),
			zap.Error(err))
		return err
	}

	p.logger.Info("event published",
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)),
		zap.String("session_id", sessionID))
	return nil
}

// Close closes the Kafka writer.
func (p *KafkaPublisher) Close() error {
	p.logger.Info("closing Kafka publisher")
	return p.writer.Close()
}

// NoopPublisher discards events; used in tests and when Kafka is absent.
type NoopPublisher struct{}

func (NoopPublisher) PublishCheckoutCompleted(context.Context, string, *models.OrderConfirmation) error {
	return nil
}

func (NoopPublisher) PublishPaymentIntentCreated(context.Context, string, *models.PaymentIntentResponse) error {
	return nil
}

func (NoopPublisher) Close() error { return nil }
