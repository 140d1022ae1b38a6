// Package memory provides in-process implementations of the order
// repositories. They back service tests and local runs without PostgreSQL.
package memory

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/google/uuid"

	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/database/memdb"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/events"
	orderdomain "github.com/mayesha-3/Ammo-Inventory-Management-System/services/order/domain"
	domainevents "github.com/mayesha-3/Ammo-Inventory-Management-System/services/order/domain/events"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/services/order/domain/models"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/services/order/domain/repositories"
)

// OrderRepository implements repositories.OrderRepository in memory.
type OrderRepository struct {
	db     *memdb.DB
	outbox events.Outbox
	rows   map[uuid.UUID]models.Order
	order  []uuid.UUID // insertion order; listings walk it backwards
}

var _ repositories.OrderRepository = (*OrderRepository)(nil)

// NewOrderRepository returns an empty repository registered with db.
func NewOrderRepository(db *memdb.DB, outbox events.Outbox) *OrderRepository {
	r := &OrderRepository{
		db:     db,
		outbox: outbox,
		rows:   make(map[uuid.UUID]models.Order),
	}
	db.Register(r)
	return r
}

// Snapshot implements memdb.Table.
func (r *OrderRepository) Snapshot() func() {
	rows := maps.Clone(r.rows)
	order := slices.Clone(r.order)
	return func() {
		r.rows = rows
		r.order = order
	}
}

func (r *OrderRepository) Save(ctx context.Context, o *models.Order) error {
	return r.db.WithinTx(ctx, func(ctx context.Context) error {
		if _, ok := r.rows[o.ID]; ok {
			return fmt.Errorf("insert order: duplicate id %s", o.ID)
		}
		r.rows[o.ID] = clone(o)
		r.order = append(r.order, o.ID)
		return r.publish(ctx, o)
	})
}

func (r *OrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var out *models.Order
	err := r.db.Do(ctx, func() error {
		row, ok := r.rows[id]
		if !ok {
			return orderdomain.ErrOrderNotFound
		}
		c := clone(&row)
		out = &c
		return nil
	})
	return out, err
}

// GetForUpdate is GetByID; the memdb lock already serializes transactions.
func (r *OrderRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return r.GetByID(ctx, id)
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID uuid.UUID, opts repositories.ListOpts) ([]*models.Order, int, error) {
	return r.list(ctx, opts, func(o *models.Order) bool { return o.UserID == userID })
}

func (r *OrderRepository) List(ctx context.Context, opts repositories.ListOpts) ([]*models.Order, int, error) {
	return r.list(ctx, opts, func(*models.Order) bool { return true })
}

func (r *OrderRepository) list(ctx context.Context, opts repositories.ListOpts, keep func(*models.Order) bool) ([]*models.Order, int, error) {
	var (
		out   []*models.Order
		total int
	)
	err := r.db.Do(ctx, func() error {
		matched := make([]*models.Order, 0)
		for _, id := range slices.Backward(r.order) {
			row := clone(ptr(r.rows[id]))
			if opts.Status != nil && row.Status != *opts.Status {
				continue
			}
			if keep(&row) {
				matched = append(matched, &row)
			}
		}
		total = len(matched)
		start := min(opts.Offset, total)
		end := total
		if opts.Limit > 0 {
			end = min(start+opts.Limit, total)
		}
		out = matched[start:end]
		return nil
	})
	return out, total, err
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, o *models.Order, from models.Status) error {
	return r.db.WithinTx(ctx, func(ctx context.Context) error {
		row, ok := r.rows[o.ID]
		if !ok {
			return orderdomain.ErrOrderNotFound
		}
		if row.Status != from {
			return fmt.Errorf("%w: order is %s, expected %s", orderdomain.ErrInvalidTransition, row.Status, from)
		}
		r.rows[o.ID] = clone(o)
		return r.publish(ctx, o)
	})
}

func (r *OrderRepository) publish(ctx context.Context, o *models.Order) error {
	if r.outbox == nil {
		return nil
	}
	return r.outbox.PublishEvent(ctx, domainevents.TopicFor(o.Status), domainevents.NewOrderEvent(o))
}

// clone copies o including the values behind its pointer fields, so callers
// never share state with stored rows.
func clone(o *models.Order) models.Order {
	c := *o
	if o.InventoryItemID != nil {
		c.InventoryItemID = ptr(*o.InventoryItemID)
	}
	if o.IssuedQuantity != nil {
		c.IssuedQuantity = ptr(*o.IssuedQuantity)
	}
	if o.DecidedAt != nil {
		c.DecidedAt = ptr(*o.DecidedAt)
	}
	return c
}

func ptr[T any](v T) *T { return &v }
