package cart

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/config"
	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/metrics"
	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/models"
)

const (
	cartKeyPrefix     = "cart:"
	currencyKeyPrefix = "currency:"
)

// Store persists cart lines and the currency preference per session.
type Store interface {
	LoadItems(ctx context.Context, sessionID string) ([]models.CartItem, error)
	SaveItems(ctx context.Context, sessionID string, items []models.CartItem) error
	LoadCurrency(ctx context.Context, sessionID string) (models.Currency, error)
	SaveCurrency(ctx context.Context, sessionID string, currency models.Currency) error
}

// RedisStore implements Store using Redis. Keys are not expired: the cart
// survives until the customer clears it.
type RedisStore struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisStore creates a Redis-backed cart store.
func NewRedisStore(cfg config.RedisConfig, logger *zap.Logger) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	return &RedisStore{client: client, logger: logger}
}

// LoadItems reads the persisted cart for a session. A missing key means an
// empty cart; an unreadable payload is discarded and also treated as an
// empty cart, never an error.
func (s *RedisStore) LoadItems(ctx context.Context, sessionID string) ([]models.CartItem, error) {
	data, err := s.client.Get(ctx, cartKeyPrefix+sessionID).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		s.logger.Error("cart load failed",
			zap.String("session_id", sessionID), zap.Error(err))
		return nil, err
	}

	return s.decodeItems(sessionID, data), nil
}

// decodeItems parses a persisted cart payload. An unreadable payload is
// discarded and counted; the customer gets an empty cart, not an error.
func (s *RedisStore) decodeItems(sessionID string, data []byte) []models.CartItem {
	var items []models.CartItem
	if err := json.Unmarshal(data, &items); err != nil {
		s.logger.Warn("discarding corrupt persisted cart",
			zap.String("session_id", sessionID), zap.Error(err))
		metrics.CartRecoveries.Inc()
		return nil
	}
	return items
}

// SaveItems writes the full line array for a session.
func (s *RedisStore) SaveItems(ctx context.Context, sessionID string, items []models.CartItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}

	if err := s.client.Set(ctx, cartKeyPrefix+sessionID, data, 0).Err(); err != nil {
		s.logger.Error("cart save failed",
			zap.String("session_id", sessionID), zap.Error(err))
		return err
	}
	return nil
}

// LoadCurrency reads the persisted display currency preference. Missing or
// unrecognized values fall back to USD.
func (s *RedisStore) LoadCurrency(ctx context.Context, sessionID string) (models.Currency, error) {
	value, err := s.client.Get(ctx, currencyKeyPrefix+sessionID).Result()
	if err == redis.Nil {
		return models.CurrencyUSD, nil
	}
	if err != nil {
		return models.CurrencyUSD, err
	}

	currency := models.Currency(value)
	if !currency.IsValid() {
		s.logger.Warn("unrecognized stored currency, falling back to USD",
			zap.String("session_id", sessionID), zap.String("value", value))
		return models.CurrencyUSD, nil
	}
	return currency, nil
}

// SaveCurrency persists the display currency preference.
func (s *RedisStore) SaveCurrency(ctx context.Context, sessionID string, currency models.Currency) error {
	return s.client.Set(ctx, currencyKeyPrefix+sessionID, string(currency), 0).Err()
}

// Ping verifies connectivity for readiness checks.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
