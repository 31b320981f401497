package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/cart"
	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/checkout"
	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/clients"
	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/config"
	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/currency"
	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/events"
	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/handlers"
	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/repository"
	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/server"
	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/service"
	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/tariff"

	_ "github.com/lib/pq"
)

func main() {
	cfg := config.Load()

	logger := newLogger()
	defer logger.Sync()

	logger.Info("starting storefront-service", zap.Int("port", cfg.Server.Port))

	db, err := initDatabase(cfg)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	productRepo := repository.NewPostgresProductRepository(db, logger)

	store := cart.NewRedisStore(cfg.Redis, logger)

	converter := currency.NewConverter(logger)
	estimator := tariff.NewEstimator(logger)

	sessions := checkout.NewManager(store, logger)
	assembler := checkout.NewAssembler(converter)

	shippingClient := clients.NewHTTPShippingClient(cfg.ShippingProvider, logger)
	paymentClient := clients.NewHTTPPaymentClient(cfg.PaymentGateway, logger)
	ratesClient := clients.NewHTTPRatesClient(cfg.RatesProvider, logger)
	notificationClient := clients.NewHTTPNotificationClient(cfg.NotificationService, logger)

	eventPublisher := events.NewKafkaPublisher(cfg.Kafka, logger)
	defer eventPublisher.Close()

	checkoutService := service.NewCheckoutService(
		sessions,
		assembler,
		estimator,
		shippingClient,
		paymentClient,
		notificationClient,
		eventPublisher,
		logger,
	)

	h := handlers.NewHandlers(checkoutService, converter, estimator, productRepo, cfg, logger)

	srv := server.New(h, cfg)

	go func() {
		logger.Info("server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed to start", zap.Error(err))
		}
	}()

	refresher := currency.NewRefresher(converter, ratesClient, cfg.Checkout.RateRefreshInterval, logger)
	go refresher.Start(context.Background())

	rateConsumer := events.NewKafkaRateConsumer(cfg.Kafka, converter, logger)
	go func() {
		if err := rateConsumer.Start(context.Background()); err != nil {
			logger.Error("rate consumer failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	rateConsumer.Stop()
	refresher.Stop()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exited")
}

func newLogger() *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.DisableStacktrace = true
	if os.Getenv("LOG_LEVEL") == "debug" {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	logger, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	return logger
}

func initDatabase(cfg *config.Config) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.Database.ConnectionString())
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.MaxLifetime)

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return db, nil
}
