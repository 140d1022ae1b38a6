package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	invmodels "github.com/mayesha-3/Ammo-Inventory-Management-System/services/inventory/domain/models"
)

// Order is a user's request for rounds of one caliber. Only the approval
// workflow changes its status; orders are never deleted.
type Order struct {
	ID                uuid.UUID
	UserID            uuid.UUID
	Caliber           invmodels.Caliber
	RequestedQuantity int
	Status            Status
	InventoryItemID   *uuid.UUID // stock item ordered from, then the item issued from
	IssuedQuantity    *int       // set on approval
	CreatedAt         time.Time
	UpdatedAt         time.Time
	DecidedAt         *time.Time // set on approval or rejection
}

// NewOrder constructs a pending order. itemID is set when the user ordered
// from a specific inventory item.
func NewOrder(userID uuid.UUID, caliber invmodels.Caliber, quantity int, itemID *uuid.UUID) (*Order, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("requested quantity must be at least 1, got %d", quantity)
	}
	if quantity > invmodels.MaxQuantity {
		return nil, fmt.Errorf("requested quantity must be at most %d, got %d", invmodels.MaxQuantity, quantity)
	}
	now := time.Now().UTC()
	return &Order{
		ID:                uuid.New(),
		UserID:            userID,
		Caliber:           caliber,
		RequestedQuantity: quantity,
		Status:            StatusPending,
		InventoryItemID:   itemID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}, nil
}

// Approve records that issued rounds were taken from itemID.
func (o *Order) Approve(itemID uuid.UUID, issued int) error {
	if err := o.transition(StatusApproved); err != nil {
		return err
	}
	o.InventoryItemID = &itemID
	o.IssuedQuantity = &issued
	decided := o.UpdatedAt
	o.DecidedAt = &decided
	return nil
}

// Reject closes a pending order without issuing anything.
func (o *Order) Reject() error {
	if err := o.transition(StatusRejected); err != nil {
		return err
	}
	decided := o.UpdatedAt
	o.DecidedAt = &decided
	return nil
}

// Complete marks an approved order as handed over.
func (o *Order) Complete() error {
	return o.transition(StatusCompleted)
}

// OwnedBy reports whether userID placed the order.
func (o *Order) OwnedBy(userID uuid.UUID) bool {
	return o.UserID == userID
}

func (o *Order) transition(next Status) error {
	if !o.Status.CanTransition(next) {
		return fmt.Errorf("cannot move order from %s to %s", o.Status, next)
	}
	o.Status = next
	o.UpdatedAt = time.Now().UTC()
	return nil
}
