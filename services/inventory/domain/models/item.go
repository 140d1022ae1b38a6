package models

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// MaxQuantity is the largest round count a stored quantity can hold.
const MaxQuantity = math.MaxInt32

// Item is the stock-keeping aggregate: one bin of rounds of a single caliber.
// Quantity is never negative.
type Item struct {
	ID        uuid.UUID
	Caliber   Caliber
	Quantity  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ItemPatch carries a partial update. Nil fields are left unchanged.
type ItemPatch struct {
	Caliber  *string
	Quantity *int
}

// IsEmpty reports whether the patch changes nothing.
func (p ItemPatch) IsEmpty() bool {
	return p.Caliber == nil && p.Quantity == nil
}

// NewItem constructs a valid Item with generated ID and current timestamps.
// A new item must hold at least one round.
func NewItem(caliber Caliber, quantity int) (*Item, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("initial quantity must be at least 1, got %d", quantity)
	}
	if quantity > MaxQuantity {
		return nil, fmt.Errorf("initial quantity must be at most %d, got %d", MaxQuantity, quantity)
	}
	now := time.Now().UTC()
	return &Item{
		ID:        uuid.New(),
		Caliber:   caliber,
		Quantity:  quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Apply validates p and applies it in place. On error the item is unchanged.
func (i *Item) Apply(p ItemPatch) error {
	caliber := i.Caliber
	quantity := i.Quantity
	if p.Caliber != nil {
		c, err := NewCaliber(*p.Caliber)
		if err != nil {
			return err
		}
		caliber = c
	}
	if p.Quantity != nil {
		if *p.Quantity < 0 {
			return fmt.Errorf("quantity must not be negative, got %d", *p.Quantity)
		}
		if *p.Quantity > MaxQuantity {
			return fmt.Errorf("quantity must be at most %d, got %d", MaxQuantity, *p.Quantity)
		}
		quantity = *p.Quantity
	}
	i.Caliber = caliber
	i.Quantity = quantity
	i.UpdatedAt = time.Now().UTC()
	return nil
}

// CanIssue reports whether amount rounds can be taken from the item.
func (i *Item) CanIssue(amount int) bool {
	return amount >= 1 && amount <= i.Quantity
}

// IsLow reports whether the item is at or below the low-stock threshold.
func (i *Item) IsLow(threshold int) bool {
	return i.Quantity <= threshold
}
