package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/mayesha-3/Ammo-Inventory-Management-System/services/inventory/domain/models"
)

// TopicStockChanged is the Watermill topic published whenever an item's stock changes.
const TopicStockChanged = "inventory.stock_changed"

// Reasons carried by StockChangedEvent.
const (
	ReasonCreated = "created"
	ReasonUpdated = "updated"
	ReasonDeleted = "deleted"
	ReasonIssued  = "issued"
)

// StockChangedEvent is published after an item is created, updated, deleted or
// issued from. Consumers subscribe via EventBus.Subscribe(ctx, events.TopicStockChanged).
type StockChangedEvent struct {
	EventID    uuid.UUID `json:"event_id"` // Unique publish-time identifier for deduplication
	Version    int       `json:"version"`  // Schema version; increment on breaking changes
	ItemID     uuid.UUID `json:"item_id"`
	Caliber    string    `json:"caliber"`
	Quantity   int       `json:"quantity"` // quantity after the change; 0 when deleted
	Delta      int       `json:"delta"`    // signed change in quantity
	Reason     string    `json:"reason"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewStockChanged builds an event describing item after a change of delta rounds.
func NewStockChanged(item *models.Item, delta int, reason string) StockChangedEvent {
	qty := item.Quantity
	if reason == ReasonDeleted {
		qty = 0
	}
	return StockChangedEvent{
		EventID:    uuid.New(),
		Version:    1,
		ItemID:     item.ID,
		Caliber:    item.Caliber.String(),
		Quantity:   qty,
		Delta:      delta,
		Reason:     reason,
		OccurredAt: time.Now().UTC(),
	}
}
