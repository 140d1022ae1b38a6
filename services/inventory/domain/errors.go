package domain

import "github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/errkind"

// Sentinel errors for the inventory domain. Use errors.Is() to check these,
// either against the sentinel itself or against its errkind.
var (
	// ErrItemNotFound indicates the requested inventory item does not exist.
	ErrItemNotFound = errkind.New(errkind.ErrNotFound, "inventory item not found")

	// ErrInvalidCaliber indicates the caliber violates domain constraints.
	ErrInvalidCaliber = errkind.New(errkind.ErrValidation, "invalid caliber")

	// ErrInvalidQuantity indicates a quantity or amount is out of range.
	ErrInvalidQuantity = errkind.New(errkind.ErrValidation, "invalid quantity")

	// ErrEmptyUpdate indicates an update that changes no field.
	ErrEmptyUpdate = errkind.New(errkind.ErrValidation, "update must set caliber or quantity")

	// ErrInsufficientStock indicates a decrement larger than the quantity on hand.
	ErrInsufficientStock = errkind.New(errkind.ErrInsufficientStock, "insufficient stock")
)
