package domain

import "github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/errkind"

// Sentinel errors for the order domain. Use errors.Is() to check these,
// either against the sentinel itself or against its errkind.
var (
	// ErrOrderNotFound indicates the requested order does not exist.
	ErrOrderNotFound = errkind.New(errkind.ErrNotFound, "order not found")

	// ErrIssuanceNotFound indicates no issuance exists for the order.
	ErrIssuanceNotFound = errkind.New(errkind.ErrNotFound, "issuance not found")

	// ErrInvalidQuantity indicates a requested or issued quantity out of range.
	ErrInvalidQuantity = errkind.New(errkind.ErrValidation, "invalid quantity")

	// ErrInvalidCaliber indicates the order caliber violates domain constraints.
	ErrInvalidCaliber = errkind.New(errkind.ErrValidation, "invalid caliber")

	// ErrInvalidStatus indicates an unknown status filter or value.
	ErrInvalidStatus = errkind.New(errkind.ErrValidation, "invalid order status")

	// ErrInvalidTransition indicates a status change the state machine forbids.
	ErrInvalidTransition = errkind.New(errkind.ErrInvalidTransition, "invalid order status transition")

	// ErrIssuedExceedsRequested indicates an approval issuing more than was ordered.
	ErrIssuedExceedsRequested = errkind.New(errkind.ErrValidation, "issued quantity exceeds requested quantity")

	// ErrCaliberMismatch indicates the chosen item holds a different caliber than the order.
	ErrCaliberMismatch = errkind.New(errkind.ErrValidation, "inventory item caliber does not match order")

	// ErrNoMatchingItem indicates no inventory item carries the order's caliber.
	ErrNoMatchingItem = errkind.New(errkind.ErrNotFound, "no inventory item matches the order caliber")

	// ErrAmbiguousCaliber indicates several items carry the order's caliber and none was chosen.
	ErrAmbiguousCaliber = errkind.New(errkind.ErrValidation, "several inventory items match the order caliber; choose one")

	// ErrNotOrderOwner indicates a user reading an order placed by someone else.
	ErrNotOrderOwner = errkind.New(errkind.ErrForbidden, "order belongs to another user")
)
