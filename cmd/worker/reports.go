package main

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/logger"
	invmodels "github.com/mayesha-3/Ammo-Inventory-Management-System/services/inventory/domain/models"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/services/order/domain/models"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/services/order/domain/repositories"
)

const reportTimeout = 30 * time.Second

type lowStockLister interface {
	LowStock(ctx context.Context) ([]*invmodels.Item, error)
}

type orderLister interface {
	ListAll(ctx context.Context, opts repositories.ListOpts) ([]*models.Order, int, error)
}

// reporter logs a periodic summary of low stock and orders waiting too long
// for a decision.
type reporter struct {
	stock      lowStockLister
	orders     orderLister
	log        logger.Logger
	staleAfter time.Duration
	now        func() time.Time
}

func (r *reporter) run(ctx context.Context) error {
	low, err := r.stock.LowStock(ctx)
	if err != nil {
		return fmt.Errorf("low stock: %w", err)
	}
	calibers := make([]string, 0, len(low))
	for _, item := range low {
		calibers = append(calibers, fmt.Sprintf("%s=%d", item.Caliber, item.Quantity))
	}

	pending := models.StatusPending
	orders, total, err := r.orders.ListAll(ctx, repositories.ListOpts{Status: &pending})
	if err != nil {
		return fmt.Errorf("pending orders: %w", err)
	}
	cutoff := r.now().Add(-r.staleAfter)
	stale := 0
	for _, o := range orders {
		if o.CreatedAt.Before(cutoff) {
			stale++
		}
	}

	r.log.InfoContext(ctx, "stock report",
		"low_stock_items", len(low),
		"low_stock", calibers,
		"pending_orders", total,
		"stale_pending_orders", stale,
	)
	if stale > 0 {
		r.log.WarnContext(ctx, "orders awaiting decision", "count", stale, "older_than", r.staleAfter.String())
	}
	return nil
}

// Run satisfies cron.Job.
func (r *reporter) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), reportTimeout)
	defer cancel()
	if err := r.run(ctx); err != nil {
		r.log.ErrorContext(ctx, "stock report failed", "error", err)
	}
}

// cronLogger adapts logger.Logger to cron.Logger.
type cronLogger struct {
	log logger.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}

// startScheduler registers job under spec and starts the scheduler. An empty
// spec returns nil and schedules nothing.
func startScheduler(spec string, job cron.Job, log logger.Logger) (*cron.Cron, error) {
	if spec == "" {
		return nil, nil
	}
	cl := cronLogger{log: log}
	c := cron.New(
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)
	if _, err := c.AddJob(spec, job); err != nil {
		return nil, fmt.Errorf("schedule %q: %w", spec, err)
	}
	c.Start()
	return c, nil
}
