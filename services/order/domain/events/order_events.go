package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/mayesha-3/Ammo-Inventory-Management-System/services/order/domain/models"
)

// Watermill topics published by the order ledger, one per status.
const (
	TopicOrderPlaced    = "order.placed"
	TopicOrderApproved  = "order.approved"
	TopicOrderRejected  = "order.rejected"
	TopicOrderCompleted = "order.completed"
)

// TopicFor returns the topic announcing an order entering status.
func TopicFor(status models.Status) string {
	switch status {
	case models.StatusApproved:
		return TopicOrderApproved
	case models.StatusRejected:
		return TopicOrderRejected
	case models.StatusCompleted:
		return TopicOrderCompleted
	default:
		return TopicOrderPlaced
	}
}

// OrderEvent is the payload of every order topic.
type OrderEvent struct {
	EventID           uuid.UUID  `json:"event_id"`
	Version           int        `json:"version"`
	OrderID           uuid.UUID  `json:"order_id"`
	UserID            uuid.UUID  `json:"user_id"`
	Caliber           string     `json:"caliber"`
	Status            string     `json:"status"`
	RequestedQuantity int        `json:"requested_quantity"`
	InventoryItemID   *uuid.UUID `json:"inventory_item_id,omitempty"`
	IssuedQuantity    *int       `json:"issued_quantity,omitempty"`
	OccurredAt        time.Time  `json:"occurred_at"`
}

// NewOrderEvent snapshots order for publishing.
func NewOrderEvent(order *models.Order) OrderEvent {
	return OrderEvent{
		EventID:           uuid.New(),
		Version:           1,
		OrderID:           order.ID,
		UserID:            order.UserID,
		Caliber:           order.Caliber.String(),
		Status:            order.Status.String(),
		RequestedQuantity: order.RequestedQuantity,
		InventoryItemID:   order.InventoryItemID,
		IssuedQuantity:    order.IssuedQuantity,
		OccurredAt:        time.Now().UTC(),
	}
}
