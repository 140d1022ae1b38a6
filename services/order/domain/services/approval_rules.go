// Package services contains stateless domain services for the order bounded context.
package services

import (
	"fmt"

	invmodels "github.com/mayesha-3/Ammo-Inventory-Management-System/services/inventory/domain/models"
	orderdomain "github.com/mayesha-3/Ammo-Inventory-Management-System/services/order/domain"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/services/order/domain/models"
)

// ValidateApproval checks that issued rounds of item may fulfil order.
// Stock levels are not checked here; the guarded decrement owns that rule.
func ValidateApproval(order *models.Order, item *invmodels.Item, issued int) error {
	if order.Status != models.StatusPending {
		return fmt.Errorf("%w: order is %s", orderdomain.ErrInvalidTransition, order.Status)
	}
	if issued < 1 {
		return fmt.Errorf("%w: issued quantity must be at least 1, got %d", orderdomain.ErrInvalidQuantity, issued)
	}
	if issued > invmodels.MaxQuantity {
		return fmt.Errorf("%w: issued quantity must be at most %d, got %d", orderdomain.ErrInvalidQuantity, invmodels.MaxQuantity, issued)
	}
	if issued > order.RequestedQuantity {
		return fmt.Errorf("%w: issued %d, requested %d", orderdomain.ErrIssuedExceedsRequested, issued, order.RequestedQuantity)
	}
	if !item.Caliber.Matches(order.Caliber) {
		return fmt.Errorf("%w: order %q, item %q", orderdomain.ErrCaliberMismatch, order.Caliber, item.Caliber)
	}
	return nil
}

// PickByCaliber chooses the single item among candidates whose caliber matches
// the order. Zero matches is ErrNoMatchingItem; several is ErrAmbiguousCaliber.
func PickByCaliber(order *models.Order, candidates []*invmodels.Item) (*invmodels.Item, error) {
	var match *invmodels.Item
	for _, item := range candidates {
		if !item.Caliber.Matches(order.Caliber) {
			continue
		}
		if match != nil {
			return nil, fmt.Errorf("%w: %q", orderdomain.ErrAmbiguousCaliber, order.Caliber)
		}
		match = item
	}
	if match == nil {
		return nil, fmt.Errorf("%w: %q", orderdomain.ErrNoMatchingItem, order.Caliber)
	}
	return match, nil
}
