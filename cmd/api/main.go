// Package main is the entry point for the trip planner API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wanderwise-ai/trip-planner/internal/arcade"
	"github.com/wanderwise-ai/trip-planner/internal/config"
	"github.com/wanderwise-ai/trip-planner/internal/gazetteer"
	"github.com/wanderwise-ai/trip-planner/internal/handler"
	"github.com/wanderwise-ai/trip-planner/internal/middleware"
	natsclient "github.com/wanderwise-ai/trip-planner/internal/nats"
	"github.com/wanderwise-ai/trip-planner/internal/planner"
	"github.com/wanderwise-ai/trip-planner/internal/service"
	"github.com/wanderwise-ai/trip-planner/pkg/logger"
	"github.com/wanderwise-ai/trip-planner/pkg/tracing"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	logger.SetGlobal(log)

	// Missing credentials halt the process before any trip is accepted.
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	log.Info("starting trip planner API server")

	// Initialize tracing if enabled
	ctx := context.Background()
	if cfg.TracingEnabled {
		tp, err := tracing.InitTracer(ctx, "trip-planner", cfg.TracingEndpoint)
		if err != nil {
			log.Warn("failed to initialize tracing", "error", err)
		} else {
			defer tracing.Shutdown(ctx, tp)
		}
	}

	// Connect to NATS
	natsClient, err := natsclient.Connect(ctx, natsclient.Config{
		URL:      cfg.NATSURL,
		CAFile:   cfg.NATSCAFile,
		CertFile: cfg.NATSCertFile,
		KeyFile:  cfg.NATSKeyFile,
		Token:    cfg.NATSToken,
	}, log)
	if err != nil {
		log.Error("failed to connect to NATS", "error", err)
		os.Exit(1)
	}
	defer natsClient.Close()

	// Ensure JetStream stream exists
	streamManager := natsclient.NewStreamManager(natsClient)
	if err := streamManager.EnsureStream(ctx); err != nil {
		log.Error("failed to ensure stream", "error", err)
		os.Exit(1)
	}

	// Load the gazetteer
	var gz *gazetteer.Gazetteer
	if cfg.CityValidationEnabled {
		gz, err = gazetteer.Load(cfg.CitiesFile)
		if err != nil {
			log.Error("failed to load gazetteer", "error", err, "path", cfg.CitiesFile)
			os.Exit(1)
		}
		log.Info("gazetteer loaded", "cities", gz.Size())
	}

	// Initialize planner client
	provider := planner.Provider(cfg.DefaultPlanner)
	apiKey := cfg.AnthropicAPIKey
	if provider == planner.ProviderOpenAI || apiKey == "" {
		provider = planner.ProviderOpenAI
		apiKey = cfg.OpenAIAPIKey
	}
	plannerClient, err := planner.NewClient(provider, apiKey, cfg.PlannerModel, log)
	if err != nil {
		log.Error("failed to create planner client", "error", err)
		os.Exit(1)
	}
	log.Info("planner client initialized", "provider", plannerClient.Name())

	// Initialize Arcade client and authorization gate
	arcadeClient, err := arcade.NewClient(arcade.Config{
		APIKey:       cfg.ArcadeAPIKey,
		BaseURL:      cfg.ArcadeBaseURL,
		PollInterval: cfg.ArcadePollInterval,
		AuthTimeout:  cfg.ArcadeAuthTimeout,
	}, log)
	if err != nil {
		log.Error("failed to create Arcade client", "error", err)
		os.Exit(1)
	}
	gate := arcade.NewGate(arcadeClient, log)

	// Initialize services
	tripSvc := service.NewTripService(streamManager, plannerClient, gate, cfg.FlightSearchEnabled, log)

	// Initialize handlers
	healthHandler := handler.NewHealthHandler(natsClient)
	tripHandler := handler.NewTripHandler(tripSvc, gz, cfg.PlanTimeout, log)
	streamHandler := handler.NewStreamHandler(streamManager, log)

	// Create router
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging(log))
	r.Use(middleware.SecurityHeaders)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposedHeaders:   []string{"X-Correlation-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health endpoints (no auth required)
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)

	// Metrics endpoint
	r.Handle("/metrics", promhttp.Handler())

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.JWTSecret != "" {
			r.Use(middleware.Auth(cfg.JWTSecret))
		}
		r.Use(middleware.RateLimit(cfg.RateLimitRequests, cfg.RateLimitWindow))

		r.Route("/trips", func(r chi.Router) {
			r.Post("/", tripHandler.Create)
			r.Get("/{id}/events", streamHandler.Events)
		})
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      r,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info("server listening", "port", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}
