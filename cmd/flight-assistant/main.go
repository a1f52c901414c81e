package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpapi "github.com/i474232898/flight-assistant/internal/api/http"
	"github.com/i474232898/flight-assistant/internal/config"
	"github.com/i474232898/flight-assistant/internal/flights"
	"github.com/i474232898/flight-assistant/internal/llm"
	"github.com/i474232898/flight-assistant/internal/scheduler"
	"github.com/i474232898/flight-assistant/internal/store"
	"github.com/i474232898/flight-assistant/pkg/logger"
	"github.com/i474232898/flight-assistant/pkg/metrics"
)

func main() {
	log := logger.NewLogger()
	log.Info("starting flight-assistant")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load config", "error", err)
	}

	m := metrics.New("flight_assistant", prometheus.DefaultRegisterer)

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// Schedule cache with LRU eviction and TTL expiry.
	cache := store.NewScheduleCache(cfg.CacheCapacity, cfg.CacheTTL)

	// Upstream schedule client with backoff + circuit breaker.
	fetcher := flights.NewClient(httpClient, cfg.FlightAPIBaseURL, cfg.FlightAPIKey, log)

	// Core service orchestrating fetches, normalization, and the cache.
	service := flights.NewService(cache, fetcher, log, m)

	// Completions client gets a more generous timeout than the schedule
	// provider; model latency dominates.
	llmClient := llm.NewClient(&http.Client{Timeout: 60 * time.Second},
		cfg.OpenRouterBaseURL, cfg.OpenRouterAPIKey, cfg.LLMModel, log, m)

	// Optional background cache warmer.
	warmer := scheduler.New(cfg.Airports, cfg.WarmInterval, service, log)
	if err := warmer.Start(); err != nil {
		log.Fatal("failed to start cache warmer", "error", err)
	}
	defer warmer.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "flight-assistant",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          90 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(fiberlogger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "flight-assistant",
		})
	})

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// API routes and the static front page.
	httpapi.RegisterRoutes(app, service, llmClient, cfg.Airports)
	app.Static("/", "./static")

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Error("fiber server stopped", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error("error during shutdown", "error", err)
	}
}
