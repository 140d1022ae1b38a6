package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	invmodels "github.com/mayesha-3/Ammo-Inventory-Management-System/services/inventory/domain/models"
)

// Issuance records rounds handed out for an approved order. There is at most
// one per order.
type Issuance struct {
	ID              uuid.UUID
	OrderID         uuid.UUID
	UserID          uuid.UUID
	InventoryItemID *uuid.UUID // nil once the item is deleted
	Caliber         invmodels.Caliber
	Quantity        int
	IssuedAt        time.Time
}

// NewIssuance builds the issuance for an approved order.
func NewIssuance(o *Order) (*Issuance, error) {
	if o.Status != StatusApproved || o.IssuedQuantity == nil || o.InventoryItemID == nil {
		return nil, fmt.Errorf("order %s is not approved", o.ID)
	}
	itemID := *o.InventoryItemID
	return &Issuance{
		ID:              uuid.New(),
		OrderID:         o.ID,
		UserID:          o.UserID,
		InventoryItemID: &itemID,
		Caliber:         o.Caliber,
		Quantity:        *o.IssuedQuantity,
		IssuedAt:        *o.DecidedAt,
	}, nil
}
