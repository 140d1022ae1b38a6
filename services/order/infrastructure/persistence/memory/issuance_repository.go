package memory

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/google/uuid"

	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/database/memdb"
	orderdomain "github.com/mayesha-3/Ammo-Inventory-Management-System/services/order/domain"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/services/order/domain/models"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/services/order/domain/repositories"
)

// IssuanceRepository implements repositories.IssuanceRepository in memory.
type IssuanceRepository struct {
	db      *memdb.DB
	rows    map[uuid.UUID]models.Issuance // by order id
	ordered []uuid.UUID
}

var _ repositories.IssuanceRepository = (*IssuanceRepository)(nil)

// NewIssuanceRepository returns an empty repository registered with db.
func NewIssuanceRepository(db *memdb.DB) *IssuanceRepository {
	r := &IssuanceRepository{db: db, rows: make(map[uuid.UUID]models.Issuance)}
	db.Register(r)
	return r
}

// Snapshot implements memdb.Table.
func (r *IssuanceRepository) Snapshot() func() {
	rows := maps.Clone(r.rows)
	ordered := slices.Clone(r.ordered)
	return func() {
		r.rows = rows
		r.ordered = ordered
	}
}

func (r *IssuanceRepository) Save(ctx context.Context, iss *models.Issuance) error {
	return r.db.WithinTx(ctx, func(ctx context.Context) error {
		if _, ok := r.rows[iss.OrderID]; ok {
			return fmt.Errorf("insert issuance: order %s already issued", iss.OrderID)
		}
		if iss.Quantity < 1 {
			return fmt.Errorf("%w: issuance quantity must be positive", orderdomain.ErrInvalidQuantity)
		}
		r.rows[iss.OrderID] = *iss
		r.ordered = append(r.ordered, iss.OrderID)
		return nil
	})
}

func (r *IssuanceRepository) GetByOrderID(ctx context.Context, orderID uuid.UUID) (*models.Issuance, error) {
	var out *models.Issuance
	err := r.db.Do(ctx, func() error {
		row, ok := r.rows[orderID]
		if !ok {
			return orderdomain.ErrIssuanceNotFound
		}
		out = &row
		return nil
	})
	return out, err
}

func (r *IssuanceRepository) ListByUser(ctx context.Context, userID uuid.UUID, opts repositories.ListOpts) ([]*models.Issuance, int, error) {
	var (
		out   []*models.Issuance
		total int
	)
	err := r.db.Do(ctx, func() error {
		matched := make([]*models.Issuance, 0)
		for _, id := range slices.Backward(r.ordered) {
			row := r.rows[id]
			if row.UserID == userID {
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

// Count returns the number of stored issuances.
func (r *IssuanceRepository) Count(ctx context.Context) int {
	var n int
	_ = r.db.Do(ctx, func() error {
		n = len(r.rows)
		return nil
	})
	return n
}
