package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/recalibr/recalibr/backend/internal/adapters/cache"
	"github.com/recalibr/recalibr/backend/internal/adapters/providers/vin"
	"github.com/recalibr/recalibr/backend/internal/adapters/refdata"
	"github.com/recalibr/recalibr/backend/internal/api/handlers"
	"github.com/recalibr/recalibr/backend/internal/api/routes"
	"github.com/recalibr/recalibr/backend/internal/application/services"
	"github.com/recalibr/recalibr/backend/internal/domain/providers"
	"github.com/recalibr/recalibr/backend/internal/infrastructure/clients/redis"
	"github.com/recalibr/recalibr/backend/internal/infrastructure/observability"
	"github.com/recalibr/recalibr/backend/pkg/config"
	"github.com/recalibr/recalibr/backend/pkg/utils"
)

func main() {
	// Load .env if present; environment variables win either way.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, os.Getenv("APP_ENV"))

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Printf("Warning: Failed to set up OpenTelemetry: %v", err)
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Printf("Error shutting down OpenTelemetry: %v", err)
				}
			}()
			log.Println("OpenTelemetry initialized successfully")
		}
	}

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatalf("Failed to initialize metrics: %v", err)
	}

	// Load the reference tables. These are the engine's entire state;
	// without them there is nothing to serve.
	refProvider, err := refdata.NewFileProvider(refdata.Paths{
		Triggers:          cfg.RefData.TriggersPath,
		SystemAliases:     cfg.RefData.SystemAliasesPath,
		IntroductionYears: cfg.RefData.IntroductionYearsPath,
		CalibrationTypes:  cfg.RefData.CalibrationTypesPath,
	})
	if err != nil {
		log.Fatalf("Failed to load reference data: %v", err)
	}
	log.Println("Reference data loaded successfully")

	// Initialize Redis client
	var cacheProvider providers.CacheProvider
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Printf("Warning: Failed to initialize Redis client: %v", err)
		// Continue without Redis - the application can work without caching
	} else {
		defer redisClient.Close()
		if cfg.Cache.Enabled {
			cacheProvider = cache.NewRedisAdapter(redisClient)
		}
		log.Println("Redis client initialized successfully")
	}

	// Initialize services
	normalizer := utils.NewSystemNormalizer(refProvider.AliasSets())
	typeService := services.NewCalibrationTypeService(refProvider)
	scrubService := services.NewScrubService(
		services.NewEstimateParserService(),
		services.NewEquipmentService(refProvider, normalizer),
		services.NewTriggerService(refProvider, normalizer, typeService),
		services.NewReconciliationService(normalizer, typeService),
		normalizer,
		vin.NewDecoder(),
	)

	// Initialize handlers
	scrubHandler := handlers.NewScrubHandler(scrubService, cacheProvider, cfg.Cache.TTLSeconds, metrics)
	referenceHandler := handlers.NewReferenceHandler(refProvider)

	// Set up router
	router := routes.NewRouter(scrubHandler, referenceHandler, metrics)
	handler := router.SetupRoutes()

	// Create HTTP server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", serverAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}

	log.Println("Server stopped")
}
