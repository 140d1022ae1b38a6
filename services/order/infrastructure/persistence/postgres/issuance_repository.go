package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/database"
	invmodels "github.com/mayesha-3/Ammo-Inventory-Management-System/services/inventory/domain/models"
	orderdomain "github.com/mayesha-3/Ammo-Inventory-Management-System/services/order/domain"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/services/order/domain/models"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/services/order/domain/repositories"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/services/order/infrastructure/persistence/postgres/db"
)

// IssuanceRepository implements repositories.IssuanceRepository against PostgreSQL.
type IssuanceRepository struct {
	db *database.Database
}

var _ repositories.IssuanceRepository = (*IssuanceRepository)(nil)

// NewIssuanceRepository returns an IssuanceRepository backed by the given connection pool.
func NewIssuanceRepository(database *database.Database) *IssuanceRepository {
	return &IssuanceRepository{db: database}
}

// Save persists an issuance. The unique order_id constraint rejects a second
// issuance for the same order.
func (r *IssuanceRepository) Save(ctx context.Context, iss *models.Issuance) error {
	err := db.New(r.db.Conn(ctx)).InsertIssuance(ctx, db.InsertIssuanceParams{
		ID:              iss.ID,
		OrderID:         iss.OrderID,
		UserID:          iss.UserID,
		InventoryItemID: nullUUID(iss.InventoryItemID),
		Caliber:         iss.Caliber.String(),
		Quantity:        int32(iss.Quantity),
		IssuedAt:        iss.IssuedAt,
	})
	if err != nil {
		return mapWriteError("insert issuance", err)
	}
	return nil
}

// GetByOrderID retrieves the issuance of an order. Returns ErrIssuanceNotFound if none.
func (r *IssuanceRepository) GetByOrderID(ctx context.Context, orderID uuid.UUID) (*models.Issuance, error) {
	row, err := db.New(r.db.Conn(ctx)).GetIssuanceByOrder(ctx, orderID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, orderdomain.ErrIssuanceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query issuance: %w", err)
	}
	return rowToIssuance(row), nil
}

// ListByUser retrieves the user's issuances newest first and their total count.
func (r *IssuanceRepository) ListByUser(ctx context.Context, userID uuid.UUID, opts repositories.ListOpts) ([]*models.Issuance, int, error) {
	q := db.New(r.db.Conn(ctx))
	limit, offset := bounds(opts)

	rows, err := q.ListIssuancesByUser(ctx, db.ListIssuancesByUserParams{UserID: userID, Limit: limit, Offset: offset})
	if err != nil {
		return nil, 0, fmt.Errorf("query issuances: %w", err)
	}
	total, err := q.CountIssuancesByUser(ctx, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("count issuances: %w", err)
	}

	out := make([]*models.Issuance, len(rows))
	for i, row := range rows {
		out[i] = rowToIssuance(row)
	}
	return out, int(total), nil
}

func rowToIssuance(row db.Issuance) *models.Issuance {
	iss := &models.Issuance{
		ID:       row.ID,
		OrderID:  row.OrderID,
		UserID:   row.UserID,
		Caliber:  invmodels.Caliber(row.Caliber),
		Quantity: int(row.Quantity),
		IssuedAt: row.IssuedAt.UTC(),
	}
	if row.InventoryItemID.Valid {
		id := row.InventoryItemID.UUID
		iss.InventoryItemID = &id
	}
	return iss
}

func nullUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}

func nullInt32(n *int) sql.NullInt32 {
	if n == nil {
		return sql.NullInt32{}
	}
	return sql.NullInt32{Int32: int32(*n), Valid: true}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
