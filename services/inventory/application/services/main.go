package services

import (
	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/app"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/cache"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/services/inventory/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Inventory *InventoryService
}

// New wires all inventory application services with infrastructure from the Application container.
func New(a *app.Application) *Services {
	repo := postgres.NewItemRepository(a.Db, a.Outbox())

	var itemCache ItemCache
	if a.Redis != nil {
		itemCache = cache.NewInventoryCache(a.Redis)
	}

	return &Services{
		Inventory: NewInventoryService(a.Db, repo, itemCache, a.Logger, a.Config.LowStockThreshold),
	}
}
