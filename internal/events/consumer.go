package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/config"
	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/currency"
	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/metrics"
	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/models"
)

// RateUpdateEvent is the envelope the treasury pipeline publishes when
// exchange rates move.
type RateUpdateEvent struct {
	ID        string                `json:"id"`
	Rates     []models.ExchangeRate `json:"rates"`
	Timestamp time.Time             `json:"timestamp"`
}

// KafkaRateConsumer applies rate-update batches from Kafka to the
// converter. Updates are replace-by-key upserts, so a partial batch is
// safe to apply as-is.
type KafkaRateConsumer struct {
	reader    *kafka.Reader
	converter *currency.Converter
	logger    *zap.Logger
	stopCh    chan struct{}
}

// NewKafkaRateConsumer creates a Kafka-based rate update consumer.
func NewKafkaRateConsumer(cfg config.KafkaConfig, converter *currency.Converter, logger *zap.Logger) *KafkaRateConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Brokers,
		Topic:    cfg.RatesTopic,
		GroupID:  cfg.ConsumerGroup,
		MinBytes: 1,
		MaxBytes: 10e6,
		MaxWait:  time.Second,
	})

	return &KafkaRateConsumer{
		reader:    reader,
		converter: converter,
		logger:    logger,
		stopCh:    make(chan struct{}),
	}
}

// Start begins consuming rate updates.
func (c *KafkaRateConsumer) Start(ctx context.Context) error {
	c.logger.Info("starting rate update consumer")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c.stopCh:
			c.logger.Info("rate update consumer stopped")
			return nil
		default:
			msg, err := c.reader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				c.logger.Error("failed to read message", zap.Error(err))
				continue
			}

			c.handleMessage(msg)
		}
	}
}

// Stop stops the consumer.
func (c *KafkaRateConsumer) Stop() {
	close(c.stopCh)
	c.reader.Close()
}

func (c *KafkaRateConsumer) handleMessage(msg kafka.Message) {
	var event RateUpdateEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		c.logger.Error("failed to unmarshal rate update", zap.Error(err))
		return
	}

	if len(event.Rates) == 0 {
		c.logger.Debug("ignoring empty rate update", zap.String("event_id", event.ID))
		return
	}

	c.converter.RefreshRates(event.Rates)
	metrics.RateRefreshes.WithLabelValues("kafka").Inc()
	c.logger.Info("rate update applied",
		zap.String("event_id", event.ID),
		zap.Int("count", len(event.Rates)))
}
