package main

import (
	"context"
	"log/slog"
	"maps"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/app"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/cache"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/config"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/database"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/events"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/logger"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/telemetry"
	invsvcs "github.com/mayesha-3/Ammo-Inventory-Management-System/services/inventory/application/services"
	ordersvcs "github.com/mayesha-3/Ammo-Inventory-Management-System/services/order/application/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	otelShutdown, _, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(context.Background()) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	eventBus, err := events.NewEventBus(cfg, log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer redisClient.Close() //nolint:errcheck
	log.Info("redis connected")

	subs := &subscribers{
		cache:             cache.NewInventoryCache(redisClient),
		log:               log,
		lowStockThreshold: cfg.LowStockThreshold,
	}
	if err := registerSubscribers(ctx, eventBus, subs); err != nil {
		log.Error("failed to register subscribers", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer pool.Close() //nolint:errcheck

	// Reports only read, so the worker's services run without an outbox.
	a := &app.Application{Config: cfg, Db: pool, Logger: log, Redis: redisClient}
	inv := invsvcs.New(a)
	orders := ordersvcs.New(a, inv.Inventory)

	scheduler, err := startScheduler(cfg.ReportSchedule, &reporter{
		stock:      inv.Inventory,
		orders:     orders.Ledger,
		log:        log,
		staleAfter: cfg.StalePendingAfter,
		now:        time.Now,
	}, log)
	if err != nil {
		log.Error("failed to start report scheduler", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	if scheduler != nil {
		log.Info("report scheduler started", "schedule", cfg.ReportSchedule)
	}

	<-ctx.Done()

	log.Info("shutting down worker...")
	if scheduler != nil {
		<-scheduler.Stop().Done()
	}
	// EventBus.Close() (via defer) waits up to 30s for in-flight handlers.
}

// registerSubscribers subscribes every route of subs on bus.
func registerSubscribers(ctx context.Context, bus *events.EventBus, subs *subscribers) error {
	routes := subs.routes()
	topics := slices.Sorted(maps.Keys(routes))

	for _, topic := range topics {
		errCh, err := bus.Subscribe(ctx, topic, routes[topic])
		if err != nil {
			return err
		}

		// Drain subscriber errors in background so the channel never blocks.
		go func() {
			for err := range errCh {
				subs.log.ErrorContext(ctx, "subscriber error", "topic", topic, "error", err)
			}
		}()
	}

	subs.log.Info("event subscribers registered", "topics", topics)
	return nil
}
