package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/database"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/events"
	invdomain "github.com/mayesha-3/Ammo-Inventory-Management-System/services/inventory/domain"
	domainevents "github.com/mayesha-3/Ammo-Inventory-Management-System/services/inventory/domain/events"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/services/inventory/domain/models"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/services/inventory/domain/repositories"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/services/inventory/infrastructure/persistence/postgres/db"
)

// ItemRepository implements repositories.ItemRepository against PostgreSQL.
type ItemRepository struct {
	db     *database.Database
	outbox events.Outbox
}

var _ repositories.ItemRepository = (*ItemRepository)(nil)

// NewItemRepository returns an ItemRepository backed by the given connection pool.
// outbox receives a StockChangedEvent for every write, inside the write's transaction.
func NewItemRepository(database *database.Database, outbox events.Outbox) *ItemRepository {
	return &ItemRepository{db: database, outbox: outbox}
}

// Save persists a new item and publishes a StockChangedEvent within the same transaction.
func (r *ItemRepository) Save(ctx context.Context, item *models.Item) error {
	return r.db.WithinTx(ctx, func(ctx context.Context) error {
		q := db.New(r.db.Conn(ctx))
		if err := q.InsertInventoryItem(ctx, db.InsertInventoryItemParams{
			ID:        item.ID,
			Caliber:   item.Caliber.String(),
			Quantity:  int32(item.Quantity),
			CreatedAt: item.CreatedAt,
			UpdatedAt: item.UpdatedAt,
		}); err != nil {
			return mapWriteError("insert inventory item", err)
		}
		return r.publish(ctx, item, item.Quantity, domainevents.ReasonCreated)
	})
}

// GetByID retrieves an item by ID. Returns ErrItemNotFound if not found.
func (r *ItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	row, err := db.New(r.db.Conn(ctx)).GetInventoryItem(ctx, id)
	if err != nil {
		return nil, mapReadError("query inventory item", err)
	}
	return rowToItem(row), nil
}

// GetForUpdate retrieves an item with SELECT ... FOR UPDATE.
func (r *ItemRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	row, err := db.New(r.db.Conn(ctx)).GetInventoryItemForUpdate(ctx, id)
	if err != nil {
		return nil, mapReadError("lock inventory item", database.MapError(err))
	}
	return rowToItem(row), nil
}

// List retrieves items in insertion order and the total count.
func (r *ItemRepository) List(ctx context.Context, opts repositories.QueryOpts) ([]*models.Item, int, error) {
	q := db.New(r.db.Conn(ctx))

	limit := int32(math.MaxInt32)
	if opts.Limit > 0 {
		limit = int32(opts.Limit)
	}
	rows, err := q.ListInventoryItems(ctx, db.ListInventoryItemsParams{
		Limit:  limit,
		Offset: int32(opts.Offset),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("query inventory items: %w", err)
	}

	total, err := q.CountInventoryItems(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("count inventory items: %w", err)
	}

	return rowsToItems(rows), int(total), nil
}

// FindByCaliber retrieves items whose caliber matches case-insensitively.
func (r *ItemRepository) FindByCaliber(ctx context.Context, caliber models.Caliber) ([]*models.Item, error) {
	rows, err := db.New(r.db.Conn(ctx)).FindInventoryItemsByCaliber(ctx, caliber.String())
	if err != nil {
		return nil, fmt.Errorf("query inventory items by caliber: %w", err)
	}
	return rowsToItems(rows), nil
}

// Update persists caliber and quantity of an existing item.
func (r *ItemRepository) Update(ctx context.Context, item *models.Item) error {
	return r.db.WithinTx(ctx, func(ctx context.Context) error {
		q := db.New(r.db.Conn(ctx))
		before, err := q.GetInventoryItemForUpdate(ctx, item.ID)
		if err != nil {
			return mapReadError("lock inventory item", err)
		}
		if _, err := q.UpdateInventoryItem(ctx, db.UpdateInventoryItemParams{
			ID:        item.ID,
			Caliber:   item.Caliber.String(),
			Quantity:  int32(item.Quantity),
			UpdatedAt: item.UpdatedAt,
		}); err != nil {
			return mapWriteError("update inventory item", err)
		}
		return r.publish(ctx, item, item.Quantity-int(before.Quantity), domainevents.ReasonUpdated)
	})
}

// Delete removes an item. Orders and issuances referencing it keep their
// history; their inventory_item_id is set to NULL by the foreign key.
func (r *ItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithinTx(ctx, func(ctx context.Context) error {
		row, err := db.New(r.db.Conn(ctx)).DeleteInventoryItem(ctx, id)
		if err != nil {
			return mapReadError("delete inventory item", err)
		}
		item := rowToItem(row)
		return r.publish(ctx, item, -item.Quantity, domainevents.ReasonDeleted)
	})
}

// Decrement subtracts amount with a guarded UPDATE so concurrent callers can
// never drive the quantity negative.
func (r *ItemRepository) Decrement(ctx context.Context, id uuid.UUID, amount int) (*models.Item, error) {
	if amount < 1 {
		return nil, fmt.Errorf("%w: amount must be at least 1, got %d", invdomain.ErrInvalidQuantity, amount)
	}

	var updated *models.Item
	err := r.db.WithinTx(ctx, func(ctx context.Context) error {
		q := db.New(r.db.Conn(ctx))
		row, err := q.DecrementInventoryItem(ctx, db.DecrementInventoryItemParams{
			ID:       id,
			Quantity: int32(amount),
		})
		if errors.Is(err, sql.ErrNoRows) {
			// Either the item is gone or the guard rejected the decrement.
			current, getErr := q.GetInventoryItem(ctx, id)
			if getErr != nil {
				return mapReadError("query inventory item", getErr)
			}
			return fmt.Errorf("%w: requested %d, available %d", invdomain.ErrInsufficientStock, amount, current.Quantity)
		}
		if err != nil {
			if database.PgCode(err) == database.CodeCheckViolation {
				return fmt.Errorf("%w: %w", invdomain.ErrInsufficientStock, err)
			}
			return fmt.Errorf("decrement inventory item: %w", database.MapError(err))
		}
		updated = rowToItem(row)
		return r.publish(ctx, updated, -amount, domainevents.ReasonIssued)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *ItemRepository) publish(ctx context.Context, item *models.Item, delta int, reason string) error {
	if r.outbox == nil {
		return nil
	}
	if err := r.outbox.PublishEvent(ctx, domainevents.TopicStockChanged, domainevents.NewStockChanged(item, delta, reason)); err != nil {
		return fmt.Errorf("publish stock changed: %w", err)
	}
	return nil
}

func mapReadError(op string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return invdomain.ErrItemNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

func mapWriteError(op string, err error) error {
	if database.PgCode(err) == database.CodeCheckViolation {
		return fmt.Errorf("%w: %w", invdomain.ErrInvalidQuantity, err)
	}
	return fmt.Errorf("%s: %w", op, database.MapError(err))
}

// rowToItem maps a db.InventoryItem to a domain models.Item.
func rowToItem(row db.InventoryItem) *models.Item {
	return &models.Item{
		ID:        row.ID,
		Caliber:   models.Caliber(row.Caliber),
		Quantity:  int(row.Quantity),
		CreatedAt: row.CreatedAt.UTC(),
		UpdatedAt: row.UpdatedAt.UTC(),
	}
}

func rowsToItems(rows []db.InventoryItem) []*models.Item {
	items := make([]*models.Item, len(rows))
	for i, row := range rows {
		items[i] = rowToItem(row)
	}
	return items
}
