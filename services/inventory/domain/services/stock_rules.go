// Package services contains stateless domain services for the inventory bounded context.
// Domain services enforce business rules that operate purely on domain types
// and have zero external dependencies beyond stdlib and the domain layer.
package services

import (
	"fmt"

	"github.com/google/uuid"

	invdomain "github.com/mayesha-3/Ammo-Inventory-Management-System/services/inventory/domain"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/services/inventory/domain/models"
)

// ValidateItemForCreation performs checks on a fully-constructed Item before it
// is persisted for the first time.
func ValidateItemForCreation(item *models.Item) error {
	if item == nil {
		return fmt.Errorf("item cannot be nil")
	}
	if item.ID == uuid.Nil {
		return fmt.Errorf("id must be set")
	}
	if _, err := models.NewCaliber(item.Caliber.String()); err != nil {
		return fmt.Errorf("%w: %w", invdomain.ErrInvalidCaliber, err)
	}
	if item.Quantity < 1 || item.Quantity > models.MaxQuantity {
		return fmt.Errorf("%w: initial quantity must be between 1 and %d", invdomain.ErrInvalidQuantity, models.MaxQuantity)
	}
	return nil
}

// ValidateDecrement checks that amount rounds can be taken from item.
// Returns ErrInvalidQuantity for a non-positive amount and ErrInsufficientStock
// when amount exceeds the quantity on hand.
func ValidateDecrement(item *models.Item, amount int) error {
	if amount < 1 {
		return fmt.Errorf("%w: amount must be at least 1, got %d", invdomain.ErrInvalidQuantity, amount)
	}
	if !item.CanIssue(amount) {
		return fmt.Errorf("%w: requested %d, available %d", invdomain.ErrInsufficientStock, amount, item.Quantity)
	}
	return nil
}
