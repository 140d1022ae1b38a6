package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/mayesha-3/Ammo-Inventory-Management-System/services/inventory/domain/models"
)

// QueryOpts contains pagination parameters for list queries.
// A zero Limit means no limit.
type QueryOpts struct {
	Limit  int // Maximum number of records to return
	Offset int // Number of records to skip
}

// ItemRepository is the persistence interface for the inventory Item aggregate.
// The domain layer owns this interface; infrastructure implements it.
//
// Every mutating method publishes an inventory.stock_changed event in the same
// transaction as the write. Methods join the transaction bound to ctx, if any.
type ItemRepository interface {
	Save(ctx context.Context, item *models.Item) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Item, error)

	// GetForUpdate loads the item and locks its row until the surrounding
	// transaction ends. Outside a transaction it behaves like GetByID.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*models.Item, error)

	// List returns items in insertion order plus the total count (ignoring pagination).
	List(ctx context.Context, opts QueryOpts) ([]*models.Item, int, error)

	// FindByCaliber returns all items whose caliber matches case-insensitively.
	FindByCaliber(ctx context.Context, caliber models.Caliber) ([]*models.Item, error)

	// Update persists caliber and quantity changes to an existing item.
	Update(ctx context.Context, item *models.Item) error

	// Delete removes an item. Returns ErrItemNotFound when absent.
	Delete(ctx context.Context, id uuid.UUID) error

	// Decrement atomically subtracts amount from the item's quantity and returns
	// the updated item. Returns ErrInsufficientStock, leaving the row untouched,
	// when amount exceeds the quantity on hand.
	Decrement(ctx context.Context, id uuid.UUID, amount int) (*models.Item, error)
}
