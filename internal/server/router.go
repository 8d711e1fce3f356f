package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Lixing-Zhang/storefront-gateway/internal/anthropic"
	"github.com/Lixing-Zhang/storefront-gateway/internal/config"
	"github.com/Lixing-Zhang/storefront-gateway/internal/handlers"
	"github.com/Lixing-Zhang/storefront-gateway/internal/middleware"
	"github.com/Lixing-Zhang/storefront-gateway/internal/repository"
	"github.com/Lixing-Zhang/storefront-gateway/internal/service"
)

// Options tune the router for the hosting environment
type Options struct {
	// RequestTimeout bounds each request; zero leaves it to the platform.
	RequestTimeout time.Duration
	// HTTPClient overrides the client used for upstream calls.
	HTTPClient *http.Client
}

// NewRouter wires configuration into handlers and returns the HTTP handler
func NewRouter(cfg *config.Config, log *slog.Logger, opts Options) http.Handler {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Upstream.Timeout}
	}

	chatClient := anthropic.NewClient(httpClient, cfg.Anthropic.BaseURL, cfg.Anthropic.APIKey, cfg.Anthropic.Version)
	chatService := service.NewChatService(chatClient, service.ChatDefaults{
		Model:       cfg.Anthropic.DefaultModel,
		MaxTokens:   cfg.Anthropic.DefaultMaxTokens,
		Temperature: cfg.Anthropic.DefaultTemperature,
	})

	var orderRepo repository.OrderRepository
	if cfg.ShopifyConfigured() {
		orderRepo = repository.NewShopifyOrderRepository(
			httpClient,
			repository.StoreBaseURL(cfg.Shopify.StoreDomain),
			cfg.Shopify.AdminAPIToken,
			cfg.Shopify.APIVersion,
		)
	}
	orderService := service.NewOrderService(orderRepo, cfg.Shopify.OrderNamePrefix, log)

	healthHandler := handlers.NewHealthHandler(map[string]bool{
		"anthropic": chatClient.HasAPIKey(),
		"shopify":   cfg.ShopifyConfigured(),
	}, log)
	chatHandler := handlers.NewChatHandler(chatService, log)
	orderHandler := handlers.NewOrderHandler(orderService, cfg.Shopify, cfg.Debug, log)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	if opts.RequestTimeout > 0 {
		r.Use(chimiddleware.Timeout(opts.RequestTimeout))
	}

	r.With(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet},
		MaxAge:         300,
	})).Get("/health", healthHandler.ServeHTTP)

	gate := middleware.NewOriginGate(cfg.CORS.AllowedOrigins)
	r.Route("/api", func(r chi.Router) {
		r.Use(gate.Handler)

		r.Post("/claude", chatHandler.Chat)
		r.Post("/track-order", orderHandler.TrackOrder)
	})

	return r
}
