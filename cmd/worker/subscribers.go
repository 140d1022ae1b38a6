package main

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/events"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/logger"
	invevents "github.com/mayesha-3/Ammo-Inventory-Management-System/services/inventory/domain/events"
	orderevents "github.com/mayesha-3/Ammo-Inventory-Management-System/services/order/domain/events"
)

// itemEvicter drops cached inventory items. *cache.InventoryCache implements it.
type itemEvicter interface {
	Delete(ctx context.Context, id uuid.UUID) error
}

// subscribers holds the worker's event handlers.
// Handlers must be idempotent: EventBus retries them on failure.
type subscribers struct {
	cache             itemEvicter // nil when Redis is not configured
	log               logger.Logger
	lowStockThreshold int
}

// routes maps each subscribed topic to its handler.
func (s *subscribers) routes() map[string]events.Handler {
	return map[string]events.Handler{
		invevents.TopicStockChanged:     s.handleStockChanged,
		orderevents.TopicOrderPlaced:    s.handleOrderEvent,
		orderevents.TopicOrderApproved:  s.handleOrderEvent,
		orderevents.TopicOrderRejected:  s.handleOrderEvent,
		orderevents.TopicOrderCompleted: s.handleOrderEvent,
	}
}

// handleStockChanged evicts the cached item so the next read hits the database,
// and warns when the item drops to the low-stock threshold.
func (s *subscribers) handleStockChanged(ctx context.Context, msg *message.Message) error {
	evt, err := events.Decode[invevents.StockChangedEvent](msg)
	if err != nil {
		return err
	}

	if s.cache != nil {
		// A failed eviction is retried by the bus; the entry TTL bounds staleness otherwise.
		if err := s.cache.Delete(ctx, evt.ItemID); err != nil {
			return err
		}
	}

	if evt.Reason != invevents.ReasonDeleted && evt.Delta < 0 && evt.Quantity <= s.lowStockThreshold {
		s.log.WarnContext(ctx, "inventory low",
			"item_id", evt.ItemID,
			"caliber", evt.Caliber,
			"quantity", evt.Quantity,
			"threshold", s.lowStockThreshold,
		)
	}

	s.log.DebugContext(ctx, "stock changed",
		"item_id", evt.ItemID, "reason", evt.Reason, "delta", evt.Delta, "quantity", evt.Quantity)
	return nil
}

// handleOrderEvent logs order lifecycle changes.
func (s *subscribers) handleOrderEvent(ctx context.Context, msg *message.Message) error {
	evt, err := events.Decode[orderevents.OrderEvent](msg)
	if err != nil {
		return err
	}

	args := []any{"order_id", evt.OrderID, "user_id", evt.UserID, "caliber", evt.Caliber, "status", evt.Status}
	if evt.IssuedQuantity != nil {
		args = append(args, "issued_quantity", *evt.IssuedQuantity)
	}
	s.log.InfoContext(ctx, "order "+evt.Status, args...)
	return nil
}
