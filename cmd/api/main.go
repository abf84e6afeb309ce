package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/clinicdesk/backend/internal/adapters/cache"
	"github.com/clinicdesk/backend/internal/adapters/events"
	"github.com/clinicdesk/backend/internal/adapters/sheetstore"
	"github.com/clinicdesk/backend/internal/api/handlers"
	"github.com/clinicdesk/backend/internal/api/routes"
	"github.com/clinicdesk/backend/internal/application/services"
	"github.com/clinicdesk/backend/internal/domain/providers"
	"github.com/clinicdesk/backend/internal/domain/repositories"
	redisclient "github.com/clinicdesk/backend/internal/infrastructure/clients/redis"
	"github.com/clinicdesk/backend/internal/infrastructure/clients/sheets"
	"github.com/clinicdesk/backend/internal/infrastructure/observability"
	"github.com/clinicdesk/backend/pkg/config"
)

func main() {
	// Load .env for local development; the file is optional.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Environment)

	// Missing credentials are a configuration fault: fail at startup with a
	// message naming the setting rather than on the first data request.
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			log.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Warn().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			log.Info().Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	// Initialize the Google Sheets client
	sheetsClient, err := sheets.NewClient(ctx, &cfg.Sheets)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize sheets client")
	}
	log.Info().Str("sheet", cfg.Sheets.SheetName).Msg("sheets client initialized")

	// Initialize Redis; the application works without caching when it is down.
	redisClient, err := redisclient.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("failed to initialize Redis client, continuing without cache")
		redisClient = nil
	} else {
		defer redisClient.Close()
		log.Info().Msg("Redis client initialized")
	}

	var cacheProvider providers.CacheProvider
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
	}

	var eventBus providers.EventBus
	if redisClient != nil {
		eventBus = events.NewRedisEventBus(redisClient)
		log.Info().Msg("event bus initialized")
	}

	// Build the appointment store, wrapped with caching when Redis is up
	baseAdapter := sheetstore.NewAppointmentAdapter(sheetsClient)
	baseAdapter.SetMetrics(metrics)

	var appointmentRepo repositories.AppointmentRepository = baseAdapter
	if cacheProvider != nil {
		cached := sheetstore.NewCachedAppointmentAdapter(baseAdapter, cacheProvider)
		cached.SetMetrics(metrics)
		appointmentRepo = cached
		log.Info().Msg("appointment store wrapped with caching layer")
	} else {
		log.Warn().Msg("appointment store running without cache")
	}

	var cacheInvalidation *services.CacheInvalidationService
	if cacheProvider != nil && eventBus != nil {
		cacheInvalidation = services.NewCacheInvalidationService(cacheProvider, eventBus)
		if err := cacheInvalidation.Start(); err != nil {
			log.Warn().Err(err).Msg("failed to start cache invalidation service")
		}
	}

	// Initialize services
	appointmentService := services.NewAppointmentService(appointmentRepo)
	if eventBus != nil {
		appointmentService.SetEventBus(eventBus)
	}
	authService := services.NewAuthService(cfg.Auth)

	// Initialize handlers and routes
	appointmentHandler := handlers.NewAppointmentHandler(appointmentService)
	authHandler := handlers.NewAuthHandler(authService)

	router := routes.NewRouter(appointmentHandler, authHandler, authService, metrics)
	handler := router.SetupRoutes()

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", serverAddr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("error during server shutdown")
	}

	if eventBus != nil {
		if err := eventBus.Close(); err != nil {
			log.Warn().Err(err).Msg("error closing event bus")
		}
	}

	if cacheInvalidation != nil {
		cacheInvalidation.Stop()
	}

	log.Info().Msg("server stopped")
}
