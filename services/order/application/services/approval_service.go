package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/database"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/errkind"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/logger"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/telemetry"
	invmodels "github.com/mayesha-3/Ammo-Inventory-Management-System/services/inventory/domain/models"
	orderdomain "github.com/mayesha-3/Ammo-Inventory-Management-System/services/order/domain"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/services/order/domain/models"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/services/order/domain/repositories"
	domainsvcs "github.com/mayesha-3/Ammo-Inventory-Management-System/services/order/domain/services"
)

// maxApprovalAttempts is the first try plus one retry on ErrConflict.
const maxApprovalAttempts = 2

// ApproveCommand asks for IssuedQuantity rounds to be issued against an order.
// ItemID is optional; see ApprovalService.Approve for how the item is chosen.
type ApproveCommand struct {
	OrderID        uuid.UUID
	ItemID         *uuid.UUID
	IssuedQuantity int
}

// Approval is the committed result of a successful approval.
type Approval struct {
	Order    *models.Order
	Item     *invmodels.Item // after the decrement
	Issuance *models.Issuance
}

// ApprovalService couples the pending→approved transition with the inventory
// decrement and the issuance record in a single transaction.
type ApprovalService struct {
	tx          database.TxRunner
	orders      repositories.OrderRepository
	issuances   repositories.IssuanceRepository
	stock       Stock
	lockTimeout time.Duration
	log         logger.Logger
	metrics     *telemetry.ApprovalMetrics // optional
}

// NewApprovalService returns an ApprovalService. lockTimeout bounds row-lock
// waits inside each attempt; zero leaves the server default. metrics may be nil.
func NewApprovalService(
	tx database.TxRunner,
	orders repositories.OrderRepository,
	issuances repositories.IssuanceRepository,
	stock Stock,
	lockTimeout time.Duration,
	log logger.Logger,
	metrics *telemetry.ApprovalMetrics,
) *ApprovalService {
	return &ApprovalService{
		tx:          tx,
		orders:      orders,
		issuances:   issuances,
		stock:       stock,
		lockTimeout: lockTimeout,
		log:         log,
		metrics:     metrics,
	}
}

// Approve issues cmd.IssuedQuantity rounds for a pending order.
//
// The item is cmd.ItemID when given, else the item the order was placed
// against, else the single item whose caliber matches the order. Any failure
// rolls back the order, the stock and the issuance together. A transient
// ErrConflict is retried once before it is returned.
func (s *ApprovalService) Approve(ctx context.Context, cmd ApproveCommand) (*Approval, error) {
	start := time.Now()

	var (
		res *Approval
		err error
	)
	for attempt := 1; attempt <= maxApprovalAttempts; attempt++ {
		res, err = s.approveOnce(ctx, cmd)
		if err == nil || !errkind.IsRetryable(err) || attempt == maxApprovalAttempts {
			break
		}
		s.metrics.Retry(ctx)
		s.log.WarnContext(ctx, "order approval conflicted, retrying",
			"order_id", cmd.OrderID, "attempt", attempt, "error", err)
	}
	s.metrics.ObserveDuration(ctx, time.Since(start))

	if err != nil {
		s.metrics.Failure(ctx, errkind.Label(err))
		s.log.WarnContext(ctx, "order approval failed",
			"order_id", cmd.OrderID,
			"issued_quantity", cmd.IssuedQuantity,
			"reason", errkind.Label(err),
			"error", err,
		)
		return nil, fmt.Errorf("approve order: %w", err)
	}

	// The committed quantity supersedes anything cached before the transaction.
	s.stock.Evict(ctx, res.Item.ID)

	s.metrics.Decision(ctx, models.StatusApproved.String())
	s.metrics.Issued(ctx, res.Item.Caliber.String(), res.Issuance.Quantity)
	s.log.InfoContext(ctx, "order approved",
		"order_id", res.Order.ID,
		"item_id", res.Item.ID,
		"issued_quantity", res.Issuance.Quantity,
		"remaining_quantity", res.Item.Quantity,
	)
	return res, nil
}

func (s *ApprovalService) approveOnce(ctx context.Context, cmd ApproveCommand) (*Approval, error) {
	var res *Approval
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := database.SetLockTimeout(ctx, s.lockTimeout); err != nil {
			return err
		}

		order, err := s.orders.GetForUpdate(ctx, cmd.OrderID)
		if err != nil {
			return err
		}
		if order.Status != models.StatusPending {
			return fmt.Errorf("%w: order is %s", orderdomain.ErrInvalidTransition, order.Status)
		}

		item, err := s.resolveItem(ctx, order, cmd.ItemID)
		if err != nil {
			return err
		}

		if err := domainsvcs.ValidateApproval(order, item, cmd.IssuedQuantity); err != nil {
			return err
		}

		updated, err := s.stock.Decrement(ctx, item.ID, cmd.IssuedQuantity)
		if err != nil {
			return err
		}

		if err := order.Approve(item.ID, cmd.IssuedQuantity); err != nil {
			return fmt.Errorf("%w: %w", orderdomain.ErrInvalidTransition, err)
		}
		if err := s.orders.UpdateStatus(ctx, order, models.StatusPending); err != nil {
			return err
		}

		issuance, err := models.NewIssuance(order)
		if err != nil {
			return err
		}
		if err := s.issuances.Save(ctx, issuance); err != nil {
			return err
		}

		res = &Approval{Order: order, Item: updated, Issuance: issuance}
		return nil
	})
	return res, err
}

// resolveItem locks the inventory item an approval draws from.
func (s *ApprovalService) resolveItem(ctx context.Context, order *models.Order, explicit *uuid.UUID) (*invmodels.Item, error) {
	switch {
	case explicit != nil:
		return s.stock.GetForUpdate(ctx, *explicit)
	case order.InventoryItemID != nil:
		item, err := s.stock.GetForUpdate(ctx, *order.InventoryItemID)
		if errors.Is(err, errkind.ErrNotFound) {
			return nil, fmt.Errorf("%w: ordered item %s no longer exists", orderdomain.ErrNoMatchingItem, *order.InventoryItemID)
		}
		return item, err
	}

	candidates, err := s.stock.FindByCaliber(ctx, order.Caliber.String())
	if err != nil {
		return nil, err
	}
	item, err := domainsvcs.PickByCaliber(order, candidates)
	if err != nil {
		return nil, err
	}
	return s.stock.GetForUpdate(ctx, item.ID)
}
