package services

import (
	"context"

	"github.com/google/uuid"

	invmodels "github.com/mayesha-3/Ammo-Inventory-Management-System/services/inventory/domain/models"
)

// Stock is the slice of the inventory store the order ledger depends on.
// *inventory/application/services.InventoryService implements it. Every call
// joins the transaction bound to ctx.
type Stock interface {
	Get(ctx context.Context, id uuid.UUID) (*invmodels.Item, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*invmodels.Item, error)
	FindByCaliber(ctx context.Context, caliber string) ([]*invmodels.Item, error)
	Decrement(ctx context.Context, id uuid.UUID, amount int) (*invmodels.Item, error)
	Evict(ctx context.Context, id uuid.UUID)
}
