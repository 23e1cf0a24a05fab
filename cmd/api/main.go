package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/2270330995/VRP-Carpool/internal/adapters/fleetrouting"
	"github.com/2270330995/VRP-Carpool/internal/adapters/http"
	natsadapter "github.com/2270330995/VRP-Carpool/internal/adapters/nats"
	"github.com/2270330995/VRP-Carpool/internal/adapters/places"
	"github.com/2270330995/VRP-Carpool/internal/adapters/postgres"
	"github.com/2270330995/VRP-Carpool/internal/adapters/valkey"
	"github.com/2270330995/VRP-Carpool/internal/core/ports"
	"github.com/2270330995/VRP-Carpool/internal/core/usecases"
	"github.com/2270330995/VRP-Carpool/internal/pkg/config"
	"github.com/2270330995/VRP-Carpool/internal/pkg/logging"
	"github.com/2270330995/VRP-Carpool/internal/pkg/telemetry"
)

func main() {
	cfg, err := config.Load("carpool-api")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// Structured logging
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logging.Setup(logLevel, "json")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telemetry
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.TempoAddr)
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			defer shutdown(context.Background())
		}
	}

	// Database
	db, err := postgres.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Cache
	cache, err := valkey.New(cfg.Valkey.Addr)
	if err != nil {
		slog.Warn("valkey unavailable", "error", err)
	} else {
		defer cache.Close()
	}

	// NATS
	events, err := natsadapter.NewPublisher(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats unavailable", "error", err)
	} else {
		defer events.Close()
	}

	// Outbound adapters
	solver := fleetrouting.New(cfg.Solver)
	placeDir := places.New(cfg.Places)

	// Repos
	driverRepo := postgres.NewDriverRepo(db)
	passengerRepo := postgres.NewPassengerRepo(db)
	destinationRepo := postgres.NewDestinationRepo(db)
	runRepo := postgres.NewRunRepo(db)

	// Optional ports stay nil interfaces when their adapter is down.
	var eventsPort ports.EventPublisher
	if events != nil {
		eventsPort = events
	}
	var cachePort ports.CacheService
	if cache != nil {
		cachePort = cache
	}

	// Use cases
	optimizeSvc := usecases.NewOptimizeService(solver, eventsPort)
	driverSvc := usecases.NewDriverService(driverRepo)
	passengerSvc := usecases.NewPassengerService(passengerRepo)
	destinationSvc := usecases.NewDestinationService(destinationRepo)
	runSvc := usecases.NewRunService(driverRepo, passengerRepo, runRepo, eventsPort)
	placeSvc := usecases.NewPlaceService(placeDir, cachePort)

	deps := &http.Dependencies{
		Optimize:     optimizeSvc,
		Drivers:      driverSvc,
		Passengers:   passengerSvc,
		Destinations: destinationSvc,
		Runs:         runSvc,
		Places:       placeSvc,
		Events:       events,
		DB:           db,
		Cache:        cache,
	}

	// Fiber
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    1024 * 1024, // 1 MB max request body
		AppName:      "Carpool API",
	})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:3000, http://localhost:5173",
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: false,
		MaxAge:           3600,
	}))

	http.SetupRoutes(app, deps)

	// Graceful shutdown
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("API server starting", "addr", addr)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received, draining connections...", "signal", sig.String())

	// Give in-flight requests up to 10s to complete
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	slog.Info("server stopped")
}
