package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/mayesha-3/Ammo-Inventory-Management-System/services/order/domain/models"
)

// ListOpts controls paging and filtering of order listings.
// Limit 0 returns every match.
type ListOpts struct {
	Limit  int
	Offset int
	Status *models.Status
}

// OrderRepository defines the persistence contract for orders.
// Writes publish the matching order event through the transactional outbox.
type OrderRepository interface {
	Save(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	// GetForUpdate loads the order and locks it for the transaction bound to ctx.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*models.Order, error)
	// ListByUser returns the user's orders newest first plus the total count.
	ListByUser(ctx context.Context, userID uuid.UUID, opts ListOpts) ([]*models.Order, int, error)
	// List returns every order newest first plus the total count.
	List(ctx context.Context, opts ListOpts) ([]*models.Order, int, error)
	// UpdateStatus persists the decision fields of order. It fails with
	// ErrInvalidTransition when the stored status is no longer from.
	UpdateStatus(ctx context.Context, order *models.Order, from models.Status) error
}

// IssuanceRepository defines the persistence contract for issuances.
type IssuanceRepository interface {
	Save(ctx context.Context, issuance *models.Issuance) error
	GetByOrderID(ctx context.Context, orderID uuid.UUID) (*models.Issuance, error)
	// ListByUser returns the user's issuances newest first plus the total count.
	ListByUser(ctx context.Context, userID uuid.UUID, opts ListOpts) ([]*models.Issuance, int, error)
}
