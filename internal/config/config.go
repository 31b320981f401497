package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server              ServerConfig
	Database            DatabaseConfig
	Redis               RedisConfig
	Kafka               KafkaConfig
	ShippingProvider    ServiceConfig
	PaymentGateway      ServiceConfig
	RatesProvider       ServiceConfig
	NotificationService ServiceConfig
	Checkout            CheckoutConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
}

func (d DatabaseConfig) ConnectionString() string {
	return "host=" + d.Host +
		" port=" + strconv.Itoa(d.Port) +
		" user=" + d.User +
		" password=" + d.Password +
		" dbname=" + d.Name +
		" sslmode=" + d.SSLMode
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type KafkaConfig struct {
	Brokers       []string
	CheckoutTopic string
	RatesTopic    string
	ConsumerGroup string
}

type ServiceConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

type CheckoutConfig struct {
	RateRefreshInterval time.Duration
}

func Load() *Config {
	// Optional local overrides; ignored when no .env file exists.
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Port:         getEnvInt("SERVER_PORT", 8084),
			ReadTimeout:  time.Duration(getEnvInt("SERVER_READ_TIMEOUT", 30)) * time.Second,
			WriteTimeout: time.Duration(getEnvInt("SERVER_WRITE_TIMEOUT", 30)) * time.Second,
		},
		Database: DatabaseConfig{
			Host:         getEnvString("DB_HOST", "localhost"),
			Port:         getEnvInt("DB_PORT", 5432),
			User:         getEnvString("DB_USER", "acme"),
			Password:     getEnvString("DB_PASSWORD", "acme"),
			Name:         getEnvString("DB_NAME", "acme_storefront"),
			SSLMode:      getEnvString("DB_SSLMODE", "disable"),
			MaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 5),
			MaxLifetime:  time.Duration(getEnvInt("DB_CONN_MAX_LIFETIME", 300)) * time.Second,
		},
		Redis: RedisConfig{
			Host:     getEnvString("REDIS_HOST", "localhost"),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: getEnvString("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Kafka: KafkaConfig{
			Brokers:       strings.Split(getEnvString("KAFKA_BROKERS", "localhost:9092"), ","),
			CheckoutTopic: getEnvString("KAFKA_CHECKOUT_TOPIC", "storefront.checkout"),
			RatesTopic:    getEnvString("KAFKA_RATES_TOPIC", "storefront.rates"),
			ConsumerGroup: getEnvString("KAFKA_CONSUMER_GROUP", "storefront-service"),
		},
		ShippingProvider: ServiceConfig{
			BaseURL: getEnvString("SHIPPING_PROVIDER_URL", "http://localhost:8091"),
			APIKey:  getEnvString("SHIPPING_PROVIDER_API_KEY", ""),
			Timeout: time.Duration(getEnvInt("SHIPPING_PROVIDER_TIMEOUT", 30)) * time.Second,
		},
		PaymentGateway: ServiceConfig{
			BaseURL: getEnvString("PAYMENT_GATEWAY_URL", "http://localhost:8092"),
			APIKey:  getEnvString("PAYMENT_GATEWAY_API_KEY", ""),
			Timeout: time.Duration(getEnvInt("PAYMENT_GATEWAY_TIMEOUT", 30)) * time.Second,
		},
		RatesProvider: ServiceConfig{
			BaseURL: getEnvString("RATES_PROVIDER_URL", "http://localhost:8093"),
			APIKey:  getEnvString("RATES_PROVIDER_API_KEY", ""),
			Timeout: time.Duration(getEnvInt("RATES_PROVIDER_TIMEOUT", 10)) * time.Second,
		},
		NotificationService: ServiceConfig{
			BaseURL: getEnvString("NOTIFICATION_SERVICE_URL", "http://localhost:8094"),
			APIKey:  getEnvString("NOTIFICATION_SERVICE_API_KEY", ""),
			Timeout: time.Duration(getEnvInt("NOTIFICATION_SERVICE_TIMEOUT", 30)) * time.Second,
		},
		Checkout: CheckoutConfig{
			RateRefreshInterval: time.Duration(getEnvInt("RATE_REFRESH_INTERVAL", 300)) * time.Second,
		},
	}
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
