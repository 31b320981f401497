package server

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/config"
	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/handlers"
	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/metrics"
)

// Server wraps the gin engine and the HTTP server lifecycle.
type Server struct {
	config     *config.Config
	router     *gin.Engine
	handlers   *handlers.Handlers
	httpServer *http.Server
}

// New creates the HTTP server with all routes registered.
func New(h *handlers.Handlers, cfg *config.Config) *Server {
	router := gin.New()
	router.Use(gin.Recovery(), requestMetrics())

	s := &Server{
		config:   cfg,
		router:   router,
		handlers: h,
	}

	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handlers.Health)
	s.router.GET("/ready", s.handlers.Ready)
	s.router.GET("/live", s.handlers.Live)
	s.router.GET("/version", s.handlers.Version)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := s.router.Group("/api/v1")
	{
		v1.GET("/products", s.handlers.ListProducts)
		v1.GET("/products/:id", s.handlers.GetProduct)

		v1.GET("/cart", s.handlers.GetCart)
		v1.POST("/cart/items", s.handlers.AddCartItem)
		v1.PATCH("/cart/items/:id", s.handlers.UpdateCartItem)
		v1.DELETE("/cart/items/:id", s.handlers.RemoveCartItem)
		v1.DELETE("/cart", s.handlers.ClearCart)

		v1.GET("/currencies", s.handlers.ListCurrencies)
		v1.PUT("/currency", s.handlers.SetCurrency)
		v1.GET("/exchange-rates", s.handlers.GetExchangeRates)

		v1.POST("/shipping-rates", s.handlers.GetShippingRates)
		v1.GET("/shipping-rates/options", s.handlers.GetShippingOptions)

		v1.POST("/tariff/estimate", s.handlers.EstimateTariff)
		v1.GET("/tariff", s.handlers.GetTariffInfo)

		v1.GET("/checkout/totals", s.handlers.GetCheckoutTotals)
		v1.PUT("/checkout/shipping-rate", s.handlers.SelectShippingRate)
		v1.POST("/checkout/tariff", s.handlers.EstimateTariff)
		v1.POST("/checkout/payment-intent", s.handlers.CreatePaymentIntent)
		v1.POST("/checkout/confirmation", s.handlers.CompleteCheckout)
	}
}

// requestMetrics counts handled requests by method, route and status.
func requestMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.RequestsTotal.WithLabelValues(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
	}
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
