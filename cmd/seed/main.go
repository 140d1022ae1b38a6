// Command seed loads sample inventory and orders into a development database.
// It does nothing when inventory already exists.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/app"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/config"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/database"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/events"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/logger"
	invsvcs "github.com/mayesha-3/Ammo-Inventory-Management-System/services/inventory/application/services"
	invrepos "github.com/mayesha-3/Ammo-Inventory-Management-System/services/inventory/domain/repositories"
	ordersvcs "github.com/mayesha-3/Ammo-Inventory-Management-System/services/order/application/services"
)

var stock = []struct {
	caliber  string
	quantity int
}{
	{"9mm", 5000},
	{".45 ACP", 3000},
	{"5.56 NATO", 10000},
	{".22 LR", 15000},
	{"12 Gauge", 2000},
	{".308 Winchester", 1500},
	{".40 S&W", 2500},
	{"10mm Auto", 800},
}

// Fixed so a dev session can be opened for the seeded orders' owner.
var demoUser = uuid.MustParse("00000000-0000-4000-8000-000000000001")

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if cfg.Environment == config.EnvProduction {
		slog.Error("refusing to seed a production database")
		os.Exit(1)
	}
	log := logger.New(cfg)
	ctx := context.Background()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close() //nolint:errcheck

	eventBus, err := events.NewEventBus(cfg, log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck

	a := &app.Application{Config: cfg, Db: pool, Logger: log, EventBus: eventBus}
	if err := seed(ctx, a); err != nil {
		log.Error("seed failed", "error", err)
		os.Exit(1) //nolint:gocritic
	}
}

func seed(ctx context.Context, a *app.Application) error {
	inv := invsvcs.New(a).Inventory
	orders := ordersvcs.New(a, inv)

	_, total, err := inv.List(ctx, invrepos.QueryOpts{Limit: 1})
	if err != nil {
		return err
	}
	if total > 0 {
		a.Logger.Info("inventory already present, skipping seed", "items", total)
		return nil
	}

	for _, s := range stock {
		item, err := inv.Create(ctx, s.caliber, s.quantity)
		if err != nil {
			return err
		}
		a.Logger.Info("seeded item", "caliber", item.Caliber.String(), "quantity", item.Quantity, "item_id", item.ID)
	}

	approved, err := orders.Ledger.Place(ctx, demoUser, "9mm", 500)
	if err != nil {
		return err
	}
	if _, err := orders.Approval.Approve(ctx, ordersvcs.ApproveCommand{OrderID: approved.ID, IssuedQuantity: 500}); err != nil {
		return err
	}

	rejected, err := orders.Ledger.Place(ctx, demoUser, "12 Gauge", 5000)
	if err != nil {
		return err
	}
	if _, err := orders.Ledger.Reject(ctx, rejected.ID); err != nil {
		return err
	}

	if _, err := orders.Ledger.Place(ctx, demoUser, ".45 ACP", 200); err != nil {
		return err
	}

	a.Logger.Info("seed complete", "items", len(stock), "orders", 3, "user_id", demoUser)
	return nil
}
