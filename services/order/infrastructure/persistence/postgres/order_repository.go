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
	invmodels "github.com/mayesha-3/Ammo-Inventory-Management-System/services/inventory/domain/models"
	orderdomain "github.com/mayesha-3/Ammo-Inventory-Management-System/services/order/domain"
	domainevents "github.com/mayesha-3/Ammo-Inventory-Management-System/services/order/domain/events"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/services/order/domain/models"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/services/order/domain/repositories"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/services/order/infrastructure/persistence/postgres/db"
)

// OrderRepository implements repositories.OrderRepository against PostgreSQL.
type OrderRepository struct {
	db     *database.Database
	outbox events.Outbox
}

var _ repositories.OrderRepository = (*OrderRepository)(nil)

// NewOrderRepository returns an OrderRepository backed by the given connection pool.
// outbox receives an OrderEvent for every write, inside the write's transaction.
func NewOrderRepository(database *database.Database, outbox events.Outbox) *OrderRepository {
	return &OrderRepository{db: database, outbox: outbox}
}

// Save persists a new order and publishes order.placed within the same transaction.
func (r *OrderRepository) Save(ctx context.Context, o *models.Order) error {
	return r.db.WithinTx(ctx, func(ctx context.Context) error {
		if err := db.New(r.db.Conn(ctx)).InsertOrder(ctx, db.InsertOrderParams{
			ID:                o.ID,
			UserID:            o.UserID,
			Caliber:           o.Caliber.String(),
			RequestedQuantity: int32(o.RequestedQuantity),
			Status:            o.Status.String(),
			InventoryItemID:   nullUUID(o.InventoryItemID),
			CreatedAt:         o.CreatedAt,
			UpdatedAt:         o.UpdatedAt,
		}); err != nil {
			return mapWriteError("insert order", err)
		}
		return r.publish(ctx, o)
	})
}

// GetByID retrieves an order by ID. Returns ErrOrderNotFound if not found.
func (r *OrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	row, err := db.New(r.db.Conn(ctx)).GetOrder(ctx, id)
	if err != nil {
		return nil, mapReadError("query order", err)
	}
	return rowToOrder(row), nil
}

// GetForUpdate retrieves an order with SELECT ... FOR UPDATE.
func (r *OrderRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	row, err := db.New(r.db.Conn(ctx)).GetOrderForUpdate(ctx, id)
	if err != nil {
		return nil, mapReadError("lock order", database.MapError(err))
	}
	return rowToOrder(row), nil
}

// ListByUser retrieves the user's orders newest first and their total count.
func (r *OrderRepository) ListByUser(ctx context.Context, userID uuid.UUID, opts repositories.ListOpts) ([]*models.Order, int, error) {
	q := db.New(r.db.Conn(ctx))
	limit, offset := bounds(opts)

	rows, err := q.ListOrdersByUser(ctx, db.ListOrdersByUserParams{UserID: userID, Limit: limit, Offset: offset})
	if err != nil {
		return nil, 0, fmt.Errorf("query orders by user: %w", err)
	}
	total, err := q.CountOrdersByUser(ctx, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("count orders by user: %w", err)
	}
	return rowsToOrders(rows), int(total), nil
}

// List retrieves every order newest first, optionally filtered by status.
func (r *OrderRepository) List(ctx context.Context, opts repositories.ListOpts) ([]*models.Order, int, error) {
	q := db.New(r.db.Conn(ctx))
	limit, offset := bounds(opts)

	var status sql.NullString
	if opts.Status != nil {
		status = sql.NullString{String: opts.Status.String(), Valid: true}
	}

	rows, err := q.ListOrders(ctx, db.ListOrdersParams{Status: status, Limit: limit, Offset: offset})
	if err != nil {
		return nil, 0, fmt.Errorf("query orders: %w", err)
	}
	total, err := q.CountOrders(ctx, status)
	if err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}
	return rowsToOrders(rows), int(total), nil
}

// UpdateStatus writes the decision fields and publishes the topic for the new
// status. The WHERE clause re-checks from so a stale writer cannot overwrite a decision.
func (r *OrderRepository) UpdateStatus(ctx context.Context, o *models.Order, from models.Status) error {
	return r.db.WithinTx(ctx, func(ctx context.Context) error {
		q := db.New(r.db.Conn(ctx))
		n, err := q.UpdateOrderStatus(ctx, db.UpdateOrderStatusParams{
			ID:              o.ID,
			Status:          o.Status.String(),
			InventoryItemID: nullUUID(o.InventoryItemID),
			IssuedQuantity:  nullInt32(o.IssuedQuantity),
			DecidedAt:       nullTime(o.DecidedAt),
			UpdatedAt:       o.UpdatedAt,
			FromStatus:      from.String(),
		})
		if err != nil {
			return mapWriteError("update order status", err)
		}
		if n == 0 {
			current, err := q.GetOrder(ctx, o.ID)
			if err != nil {
				return mapReadError("query order", err)
			}
			return fmt.Errorf("%w: order is %s, expected %s", orderdomain.ErrInvalidTransition, current.Status, from)
		}
		return r.publish(ctx, o)
	})
}

func (r *OrderRepository) publish(ctx context.Context, o *models.Order) error {
	if r.outbox == nil {
		return nil
	}
	topic := domainevents.TopicFor(o.Status)
	if err := r.outbox.PublishEvent(ctx, topic, domainevents.NewOrderEvent(o)); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}

func bounds(opts repositories.ListOpts) (limit, offset int32) {
	limit = int32(math.MaxInt32)
	if opts.Limit > 0 {
		limit = int32(opts.Limit)
	}
	return limit, int32(opts.Offset)
}

func mapReadError(op string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return orderdomain.ErrOrderNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

// mapWriteError maps constraint failures to their domain errors. A foreign key
// violation means the referenced inventory item was deleted before commit.
func mapWriteError(op string, err error) error {
	switch database.PgCode(err) {
	case database.CodeCheckViolation:
		return fmt.Errorf("%w: %w", orderdomain.ErrInvalidQuantity, err)
	case database.CodeForeignKeyViolation:
		return fmt.Errorf("%w: %w", invdomain.ErrItemNotFound, err)
	}
	return fmt.Errorf("%s: %w", op, database.MapError(err))
}

// rowToOrder maps a db.AmmoOrder to a domain models.Order.
func rowToOrder(row db.AmmoOrder) *models.Order {
	o := &models.Order{
		ID:                row.ID,
		UserID:            row.UserID,
		Caliber:           invmodels.Caliber(row.Caliber),
		RequestedQuantity: int(row.RequestedQuantity),
		Status:            models.Status(row.Status),
		CreatedAt:         row.CreatedAt.UTC(),
		UpdatedAt:         row.UpdatedAt.UTC(),
	}
	if row.InventoryItemID.Valid {
		id := row.InventoryItemID.UUID
		o.InventoryItemID = &id
	}
	if row.IssuedQuantity.Valid {
		n := int(row.IssuedQuantity.Int32)
		o.IssuedQuantity = &n
	}
	if row.DecidedAt.Valid {
		t := row.DecidedAt.Time.UTC()
		o.DecidedAt = &t
	}
	return o
}

func rowsToOrders(rows []db.AmmoOrder) []*models.Order {
	out := make([]*models.Order, len(rows))
	for i, row := range rows {
		out[i] = rowToOrder(row)
	}
	return out
}
