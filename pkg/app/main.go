package app

import (
	"github.com/gorilla/sessions"

	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/cache"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/config"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/database"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/events"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/logger"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/telemetry"
)

// Application holds shared infrastructure dependencies for all services.
// Pass it to each bounded context's services.New during server initialization.
//
// Logging: app.Logger is backed by a trace-aware handler. Use slog's context methods
// and trace_id, span_id, request_id and any logger.ContextWith attributes are injected:
//
//	app.Logger.InfoContext(ctx, "order approved", "order_id", id)
//	app.Logger.ErrorContext(ctx, "failed to save", "error", err)
//
// Use app.Logger.Info/Error (no context) only for startup and shutdown messages.
type Application struct {
	Config       *config.Config
	Db           *database.Database
	Logger       logger.Logger
	EventBus     *events.EventBus   // nil when running without the outbox
	Redis        *cache.RedisClient // nil disables the inventory cache
	Metrics      *telemetry.ApprovalMetrics
	SessionStore sessions.Store // Redis-backed session store; nil in worker process
}

// Outbox returns the event bus as an events.Outbox, or nil when there is none.
func (a *Application) Outbox() events.Outbox {
	if a.EventBus == nil {
		return nil
	}
	return a.EventBus
}
