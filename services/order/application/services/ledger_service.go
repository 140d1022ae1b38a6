package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/database"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/logger"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/telemetry"
	invmodels "github.com/mayesha-3/Ammo-Inventory-Management-System/services/inventory/domain/models"
	orderdomain "github.com/mayesha-3/Ammo-Inventory-Management-System/services/order/domain"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/services/order/domain/models"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/services/order/domain/repositories"
)

// LedgerService places, lists and closes orders. Approval, the only transition
// with an inventory effect, lives in ApprovalService.
type LedgerService struct {
	tx        database.TxRunner
	orders    repositories.OrderRepository
	issuances repositories.IssuanceRepository
	stock     Stock
	log       logger.Logger
	metrics   *telemetry.ApprovalMetrics // optional
}

// NewLedgerService returns a LedgerService. metrics may be nil.
func NewLedgerService(
	tx database.TxRunner,
	orders repositories.OrderRepository,
	issuances repositories.IssuanceRepository,
	stock Stock,
	log logger.Logger,
	metrics *telemetry.ApprovalMetrics,
) *LedgerService {
	return &LedgerService{tx: tx, orders: orders, issuances: issuances, stock: stock, log: log, metrics: metrics}
}

// Place records a pending order for quantity rounds of caliber.
func (s *LedgerService) Place(ctx context.Context, userID uuid.UUID, caliber string, quantity int) (*models.Order, error) {
	c, err := invmodels.NewCaliber(caliber)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", orderdomain.ErrInvalidCaliber, err)
	}
	return s.place(ctx, userID, c, quantity, nil)
}

// PlaceFromStock records a pending order against a specific inventory item.
// The order takes the item's caliber and remembers the item for approval.
// The item is read under a row lock, not from cache, so a concurrent delete
// cannot land between the read and the insert.
func (s *LedgerService) PlaceFromStock(ctx context.Context, userID, itemID uuid.UUID, quantity int) (*models.Order, error) {
	if quantity < 1 || quantity > invmodels.MaxQuantity {
		return nil, fmt.Errorf("%w: requested quantity must be between 1 and %d, got %d",
			orderdomain.ErrInvalidQuantity, invmodels.MaxQuantity, quantity)
	}
	var order *models.Order
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		item, err := s.stock.GetForUpdate(ctx, itemID)
		if err != nil {
			return err
		}
		order, err = s.place(ctx, userID, item.Caliber, quantity, &item.ID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("place order from stock: %w", err)
	}
	return order, nil
}

func (s *LedgerService) place(ctx context.Context, userID uuid.UUID, caliber invmodels.Caliber, quantity int, itemID *uuid.UUID) (*models.Order, error) {
	order, err := models.NewOrder(userID, caliber, quantity, itemID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", orderdomain.ErrInvalidQuantity, err)
	}
	if err := s.orders.Save(ctx, order); err != nil {
		return nil, fmt.Errorf("save order: %w", err)
	}

	s.log.InfoContext(ctx, "order placed",
		"order_id", order.ID,
		"user_id", userID,
		"caliber", order.Caliber.String(),
		"requested_quantity", quantity,
	)
	return order, nil
}

// Get returns the order with the given id.
func (s *LedgerService) Get(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	return order, nil
}

// ListForUser returns the user's orders newest first plus the total count.
func (s *LedgerService) ListForUser(ctx context.Context, userID uuid.UUID, opts repositories.ListOpts) ([]*models.Order, int, error) {
	orders, total, err := s.orders.ListByUser(ctx, userID, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders for user: %w", err)
	}
	return orders, total, nil
}

// ListAll returns every order newest first, optionally filtered by status.
func (s *LedgerService) ListAll(ctx context.Context, opts repositories.ListOpts) ([]*models.Order, int, error) {
	orders, total, err := s.orders.List(ctx, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	return orders, total, nil
}

// ListIssuancesForUser returns the rounds issued to the user, newest first.
func (s *LedgerService) ListIssuancesForUser(ctx context.Context, userID uuid.UUID, opts repositories.ListOpts) ([]*models.Issuance, int, error) {
	issuances, total, err := s.issuances.ListByUser(ctx, userID, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list issuances for user: %w", err)
	}
	return issuances, total, nil
}

// Reject closes a pending order. It has no inventory effect.
func (s *LedgerService) Reject(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return s.setStatus(ctx, id, models.StatusRejected, (*models.Order).Reject)
}

// Complete marks an approved order as handed over. It has no inventory effect.
func (s *LedgerService) Complete(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return s.setStatus(ctx, id, models.StatusCompleted, (*models.Order).Complete)
}

func (s *LedgerService) setStatus(ctx context.Context, id uuid.UUID, to models.Status, apply func(*models.Order) error) (*models.Order, error) {
	var order *models.Order
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		o, err := s.orders.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		from := o.Status
		if err := apply(o); err != nil {
			return fmt.Errorf("%w: %w", orderdomain.ErrInvalidTransition, err)
		}
		if err := s.orders.UpdateStatus(ctx, o, from); err != nil {
			return err
		}
		order = o
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s order: %w", verb(to), err)
	}

	s.metrics.Decision(ctx, to.String())
	s.log.InfoContext(ctx, "order status changed", "order_id", id, "status", to.String())
	return order, nil
}

func verb(to models.Status) string {
	switch to {
	case models.StatusRejected:
		return "reject"
	case models.StatusCompleted:
		return "complete"
	default:
		return "update"
	}
}
