package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"

	_ "github.com/mayesha-3/Ammo-Inventory-Management-System/docs/swagger"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/app"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/auth"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/cache"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/config"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/database"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/errhttp"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/events"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/httpx"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/logger"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/telemetry"
	invApi "github.com/mayesha-3/Ammo-Inventory-Management-System/services/inventory/application/api"
	invSvcs "github.com/mayesha-3/Ammo-Inventory-Management-System/services/inventory/application/services"
	orderApi "github.com/mayesha-3/Ammo-Inventory-Management-System/services/order/application/api"
	orderSvcs "github.com/mayesha-3/Ammo-Inventory-Management-System/services/order/application/services"
)

// @title					Ammo Inventory API
// @version				1.0
// @description			Ammunition inventory and order approval service.
// @description			Orders are approved by moderators or admins; approval decrements stock atomically.
// @license.name			MIT
// @license.url			https://opensource.org/licenses/MIT
// @host					localhost:8080
// @BasePath				/api
// @schemes				http https
// @securityDefinitions.apikey	SessionCookie
// @in							cookie
// @name						ammo_session
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

	// Telemetry: OTel tracing + metrics
	ctx := context.Background()
	otelShutdown, metricsHandler, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(ctx) //nolint:errcheck

	// Crash reporting is optional: log and continue on failure.
	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic // intentional: startup failure, deferred flushes are best-effort
	}
	defer pool.Close() //nolint:errcheck
	log.Info("database pool connected")

	eventBus, err := events.NewEventBusWithForwarder(cfg, log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck

	if err := eventBus.StartForwarder(ctx); err != nil {
		log.Error("failed to start event forwarder", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1) //nolint:gocritic // intentional: startup failure
	}
	defer redisClient.Close() //nolint:errcheck
	log.Info("redis connected")

	sessionStore := auth.NewSessionStore(redisClient.Client(), auth.SessionOptions{
		AuthKey:       []byte(cfg.SessionAuthKey),
		EncryptionKey: []byte(cfg.SessionEncryptionKey),
		Secure:        cfg.Environment == config.EnvProduction,
		TTL:           cfg.SessionTTL,
	})
	log.Info("session store initialized", "backend", "redis")

	approvalMetrics, err := telemetry.NewApprovalMetrics(otel.GetMeterProvider())
	if err != nil {
		log.Error("failed to create approval metrics", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	appConfig := &app.Application{
		Config:       cfg,
		Db:           pool,
		Logger:       log,
		EventBus:     eventBus,
		Redis:        redisClient,
		Metrics:      approvalMetrics,
		SessionStore: sessionStore,
	}

	errhttp.SetProduction(cfg.Environment == config.EnvProduction)

	serverCfg := httpx.ServerConfig{
		IsDevelopment:      cfg.Environment == config.EnvDevelopment,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		RequestTimeout:     cfg.RequestTimeout,
		MaxBodyBytes:       cfg.MaxBodyBytes,
	}
	if serverCfg.RateLimitPerMinute == 0 {
		serverCfg.RateLimitPerMinute = -1
	}

	r := httpx.NewRouter(
		serverCfg,
		logger.Middleware(log),
		logger.Recovery(log),
		telemetry.SentryMiddleware(),
		otelhttp.NewMiddleware(cfg.ServiceName),
	)

	r.Get("/health", httpx.HealthHandler(cfg.ServiceName, 2*time.Second,
		httpx.HealthCheck{Name: "database", Checker: pool},
		httpx.HealthCheck{Name: "redis", Checker: redisClient},
		httpx.HealthCheck{Name: "event_bus", Checker: eventBus},
	))
	r.Get("/health/live", httpx.LiveHandler(cfg.ServiceName))
	r.Get("/metrics", metricsHandler.ServeHTTP)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	r.Route("/api", func(r chi.Router) {
		if cfg.Environment == config.EnvDevelopment {
			r.Post("/dev/session", auth.DevSessionHandler(sessionStore, log))
			r.Delete("/dev/session", auth.DevSessionClearHandler(sessionStore))
		}
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(sessionStore, log))
			registerRoutes(r, appConfig)
		})
	})

	srv := httpx.NewServer(cfg.HTTPAddr, r, serverCfg)

	go func() {
		log.Info("server listening", "addr", srv.Addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

// registerRoutes mounts all service routes under the authenticated /api group.
// Orders reach stock through the inventory service of the same process.
func registerRoutes(r chi.Router, a *app.Application) {
	inv := invSvcs.New(a)
	invApi.InventoryRoutes(r, inv)
	orderApi.OrderRoutes(r, orderSvcs.New(a, inv.Inventory))
}
