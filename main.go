package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"stockroom/internal/app"
	"stockroom/internal/config"
	"stockroom/internal/database"
	"stockroom/internal/logger"
	"stockroom/internal/models"
	"stockroom/internal/services"
	"stockroom/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logg, err := logger.New(cfg.LogMode)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logg.Sync()

	// --- Database: opened once, schema ensured before any traffic ---
	db, err := database.Open(cfg.Database)
	if err != nil {
		logg.Fatal("failed to open database", "driver", cfg.Database.Driver, "error", err)
	}
	if err := database.EnsureSchema(db); err != nil {
		logg.Fatal("failed to ensure schema", "error", err)
	}

	// --- Optional RabbitMQ event stream ---
	var events services.EventPublisher
	if cfg.RabbitMQ.Enabled {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQ.URL}, logg)
		if err != nil {
			logg.Fatal("failed to initialize RabbitMQ client", "error", err)
		}
		defer mqClient.Close()
		events = mqClient

		auditLog := logg.With("component", "audit")
		err = mqClient.ConsumeInventoryEvents(func(event models.InventoryEvent) error {
			auditLog.Info("inventory event",
				"id", event.ID,
				"type", event.Type,
				"entity_id", event.EntityID,
				"actor", event.Actor,
				"occurred_at", event.OccurredAt,
			)
			return nil
		})
		if err != nil {
			logg.Error("failed to start RabbitMQ consumer", "error", err)
		}
	} else {
		logg.Info("RabbitMQ disabled, inventory events will not be published")
	}

	fiberApp, _, err := app.New(app.Deps{Config: cfg, DB: db, Log: logg, Events: events})
	if err != nil {
		logg.Fatal("failed to build app", "error", err)
	}

	// --- Start HTTP Server ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logg.Info("starting server", "port", cfg.AppPort, "driver", cfg.Database.Driver)
		if err := fiberApp.Listen(cfg.AppPort); err != nil {
			logg.Fatal("server failed to start", "error", err)
		}
	}()

	<-quit
	logg.Info("shutting down server")
	if err := fiberApp.Shutdown(); err != nil {
		logg.Error("error during Fiber shutdown", "error", err)
	}
	logg.Info("server gracefully stopped")
}
