// Package memory provides in-process implementations of the inventory
// repositories. They back service tests and local runs without PostgreSQL.
package memory

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/database/memdb"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/events"
	invdomain "github.com/mayesha-3/Ammo-Inventory-Management-System/services/inventory/domain"
	domainevents "github.com/mayesha-3/Ammo-Inventory-Management-System/services/inventory/domain/events"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/services/inventory/domain/models"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/services/inventory/domain/repositories"
	domainsvcs "github.com/mayesha-3/Ammo-Inventory-Management-System/services/inventory/domain/services"
)

// ItemRepository implements repositories.ItemRepository in memory.
// All access goes through the shared memdb.DB lock.
type ItemRepository struct {
	db     *memdb.DB
	outbox events.Outbox
	rows   map[uuid.UUID]models.Item
	order  []uuid.UUID // insertion order
}

var _ repositories.ItemRepository = (*ItemRepository)(nil)

// NewItemRepository returns an empty repository registered with db.
func NewItemRepository(db *memdb.DB, outbox events.Outbox) *ItemRepository {
	r := &ItemRepository{
		db:     db,
		outbox: outbox,
		rows:   make(map[uuid.UUID]models.Item),
	}
	db.Register(r)
	return r
}

// Snapshot implements memdb.Table.
func (r *ItemRepository) Snapshot() func() {
	rows := make(map[uuid.UUID]models.Item, len(r.rows))
	for k, v := range r.rows {
		rows[k] = v
	}
	order := slices.Clone(r.order)
	return func() {
		r.rows = rows
		r.order = order
	}
}

func (r *ItemRepository) Save(ctx context.Context, item *models.Item) error {
	return r.db.WithinTx(ctx, func(ctx context.Context) error {
		if _, ok := r.rows[item.ID]; ok {
			return fmt.Errorf("insert inventory item: duplicate id %s", item.ID)
		}
		if item.Quantity < 0 {
			return fmt.Errorf("%w: quantity must not be negative", invdomain.ErrInvalidQuantity)
		}
		r.rows[item.ID] = *item
		r.order = append(r.order, item.ID)
		return r.publish(ctx, item, item.Quantity, domainevents.ReasonCreated)
	})
}

func (r *ItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	var out *models.Item
	err := r.db.Do(ctx, func() error {
		row, ok := r.rows[id]
		if !ok {
			return invdomain.ErrItemNotFound
		}
		out = &row
		return nil
	})
	return out, err
}

// GetForUpdate is GetByID; the memdb lock already serializes transactions.
func (r *ItemRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	return r.GetByID(ctx, id)
}

func (r *ItemRepository) List(ctx context.Context, opts repositories.QueryOpts) ([]*models.Item, int, error) {
	var (
		out   []*models.Item
		total int
	)
	err := r.db.Do(ctx, func() error {
		total = len(r.order)
		start := min(opts.Offset, total)
		end := total
		if opts.Limit > 0 {
			end = min(start+opts.Limit, total)
		}
		out = make([]*models.Item, 0, end-start)
		for _, id := range r.order[start:end] {
			row := r.rows[id]
			out = append(out, &row)
		}
		return nil
	})
	return out, total, err
}

func (r *ItemRepository) FindByCaliber(ctx context.Context, caliber models.Caliber) ([]*models.Item, error) {
	var out []*models.Item
	err := r.db.Do(ctx, func() error {
		for _, id := range r.order {
			row := r.rows[id]
			if row.Caliber.Matches(caliber) {
				out = append(out, &row)
			}
		}
		return nil
	})
	return out, err
}

func (r *ItemRepository) Update(ctx context.Context, item *models.Item) error {
	return r.db.WithinTx(ctx, func(ctx context.Context) error {
		before, ok := r.rows[item.ID]
		if !ok {
			return invdomain.ErrItemNotFound
		}
		if item.Quantity < 0 {
			return fmt.Errorf("%w: quantity must not be negative", invdomain.ErrInvalidQuantity)
		}
		r.rows[item.ID] = *item
		return r.publish(ctx, item, item.Quantity-before.Quantity, domainevents.ReasonUpdated)
	})
}

func (r *ItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithinTx(ctx, func(ctx context.Context) error {
		row, ok := r.rows[id]
		if !ok {
			return invdomain.ErrItemNotFound
		}
		delete(r.rows, id)
		r.order = slices.DeleteFunc(r.order, func(v uuid.UUID) bool { return v == id })
		return r.publish(ctx, &row, -row.Quantity, domainevents.ReasonDeleted)
	})
}

func (r *ItemRepository) Decrement(ctx context.Context, id uuid.UUID, amount int) (*models.Item, error) {
	var out *models.Item
	err := r.db.WithinTx(ctx, func(ctx context.Context) error {
		row, ok := r.rows[id]
		if !ok {
			return invdomain.ErrItemNotFound
		}
		if err := domainsvcs.ValidateDecrement(&row, amount); err != nil {
			return err
		}
		row.Quantity -= amount
		row.UpdatedAt = time.Now().UTC()
		r.rows[id] = row
		out = &row
		return r.publish(ctx, &row, -amount, domainevents.ReasonIssued)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ItemRepository) publish(ctx context.Context, item *models.Item, delta int, reason string) error {
	if r.outbox == nil {
		return nil
	}
	return r.outbox.PublishEvent(ctx, domainevents.TopicStockChanged, domainevents.NewStockChanged(item, delta, reason))
}
