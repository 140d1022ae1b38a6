package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	pkgcache "github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/cache"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/database"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/logger"
	invdomain "github.com/mayesha-3/Ammo-Inventory-Management-System/services/inventory/domain"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/services/inventory/domain/models"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/services/inventory/domain/repositories"
	domainsvcs "github.com/mayesha-3/Ammo-Inventory-Management-System/services/inventory/domain/services"
)

// ItemCache is the read-through cache used by InventoryService.
// *pkgcache.InventoryCache implements it; a miss satisfies pkgcache.IsMiss.
type ItemCache interface {
	Get(ctx context.Context, id uuid.UUID) (*pkgcache.CachedItem, error)
	Set(ctx context.Context, item *pkgcache.CachedItem) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// InventoryService orchestrates the inventory store. Event publishing is handled
// by the repository layer (outbox pattern). Single-item reads are served from
// the cache when available.
type InventoryService struct {
	tx       database.TxRunner
	repo     repositories.ItemRepository
	cache    ItemCache // optional
	log      logger.Logger
	lowStock int
}

// NewInventoryService returns an InventoryService. cache may be nil.
func NewInventoryService(tx database.TxRunner, repo repositories.ItemRepository, cache ItemCache, log logger.Logger, lowStockThreshold int) *InventoryService {
	return &InventoryService{tx: tx, repo: repo, cache: cache, log: log, lowStock: lowStockThreshold}
}

// Create validates and persists a new item holding quantity rounds.
func (s *InventoryService) Create(ctx context.Context, caliber string, quantity int) (*models.Item, error) {
	c, err := models.NewCaliber(caliber)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", invdomain.ErrInvalidCaliber, err)
	}

	item, err := models.NewItem(c, quantity)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", invdomain.ErrInvalidQuantity, err)
	}

	if err := domainsvcs.ValidateItemForCreation(item); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, item); err != nil {
		return nil, fmt.Errorf("save inventory item: %w", err)
	}

	s.log.InfoContext(ctx, "inventory item created",
		"item_id", item.ID, "caliber", item.Caliber.String(), "quantity", item.Quantity)
	return item, nil
}

// Get retrieves an item using a read-through cache pattern:
//  1. Check Redis cache first.
//  2. On cache miss (or cache error), query Postgres.
//  3. Asynchronously warm the cache with the Postgres result.
func (s *InventoryService) Get(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, id); err == nil {
			return &models.Item{
				ID:        cached.ID,
				Caliber:   models.Caliber(cached.Caliber),
				Quantity:  cached.Quantity,
				CreatedAt: cached.CreatedAt,
				UpdatedAt: cached.UpdatedAt,
			}, nil
		} else if !pkgcache.IsMiss(err) {
			s.log.WarnContext(ctx, "inventory cache read failed", "item_id", id, "error", err)
		}
	}

	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get inventory item: %w", err)
	}

	if s.cache != nil {
		cached := toCached(item)
		go func() {
			if err := s.cache.Set(context.WithoutCancel(ctx), cached); err != nil {
				s.log.WarnContext(ctx, "inventory cache write failed", "item_id", cached.ID, "error", err)
			}
		}()
	}

	return item, nil
}

// GetForUpdate loads an item bypassing the cache and locks it for the
// transaction bound to ctx.
func (s *InventoryService) GetForUpdate(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	item, err := s.repo.GetForUpdate(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("lock inventory item: %w", err)
	}
	return item, nil
}

// List returns a page of items in insertion order plus the total count.
func (s *InventoryService) List(ctx context.Context, opts repositories.QueryOpts) ([]*models.Item, int, error) {
	items, total, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list inventory items: %w", err)
	}
	return items, total, nil
}

// FindByCaliber returns items whose caliber matches case-insensitively.
func (s *InventoryService) FindByCaliber(ctx context.Context, caliber string) ([]*models.Item, error) {
	c, err := models.NewCaliber(caliber)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", invdomain.ErrInvalidCaliber, err)
	}
	items, err := s.repo.FindByCaliber(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("find inventory items: %w", err)
	}
	return items, nil
}

// LowStock returns every item at or below the configured low-stock threshold.
func (s *InventoryService) LowStock(ctx context.Context) ([]*models.Item, error) {
	items, _, err := s.repo.List(ctx, repositories.QueryOpts{})
	if err != nil {
		return nil, fmt.Errorf("list inventory items: %w", err)
	}
	low := make([]*models.Item, 0, len(items))
	for _, item := range items {
		if item.IsLow(s.lowStock) {
			low = append(low, item)
		}
	}
	return low, nil
}

// Update applies patch to the item with the given id.
// Returns ErrEmptyUpdate when patch sets nothing and ErrItemNotFound when absent.
func (s *InventoryService) Update(ctx context.Context, id uuid.UUID, patch models.ItemPatch) (*models.Item, error) {
	if patch.IsEmpty() {
		return nil, invdomain.ErrEmptyUpdate
	}
	if patch.Caliber != nil {
		if _, err := models.NewCaliber(*patch.Caliber); err != nil {
			return nil, fmt.Errorf("%w: %w", invdomain.ErrInvalidCaliber, err)
		}
	}
	if patch.Quantity != nil && *patch.Quantity < 0 {
		return nil, fmt.Errorf("%w: quantity must not be negative, got %d", invdomain.ErrInvalidQuantity, *patch.Quantity)
	}

	var item *models.Item
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		item, err = s.repo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := item.Apply(patch); err != nil {
			return fmt.Errorf("%w: %w", invdomain.ErrInvalidQuantity, err)
		}
		return s.repo.Update(ctx, item)
	})
	if err != nil {
		return nil, fmt.Errorf("update inventory item: %w", err)
	}

	s.Evict(ctx, id)
	s.log.InfoContext(ctx, "inventory item updated",
		"item_id", id, "caliber", item.Caliber.String(), "quantity", item.Quantity)
	return item, nil
}

// Delete removes the item with the given id. Returns ErrItemNotFound when absent.
func (s *InventoryService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete inventory item: %w", err)
	}
	s.Evict(ctx, id)
	s.log.InfoContext(ctx, "inventory item deleted", "item_id", id)
	return nil
}

// Decrement removes amount rounds from the item. It joins the transaction bound
// to ctx, so a caller's rollback restores the stock. Returns ErrInvalidQuantity
// for amount < 1 and ErrInsufficientStock when amount exceeds the quantity.
func (s *InventoryService) Decrement(ctx context.Context, id uuid.UUID, amount int) (*models.Item, error) {
	if amount < 1 {
		return nil, fmt.Errorf("%w: amount must be at least 1, got %d", invdomain.ErrInvalidQuantity, amount)
	}
	item, err := s.repo.Decrement(ctx, id, amount)
	if err != nil {
		return nil, fmt.Errorf("decrement inventory item: %w", err)
	}
	s.Evict(ctx, id)
	return item, nil
}

// Evict drops the cached copy of an item. Cache failures are logged, not returned.
func (s *InventoryService) Evict(ctx context.Context, id uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(context.WithoutCancel(ctx), id); err != nil {
		s.log.WarnContext(ctx, "inventory cache evict failed", "item_id", id, "error", err)
	}
}

func toCached(item *models.Item) *pkgcache.CachedItem {
	return &pkgcache.CachedItem{
		ID:        item.ID,
		Caliber:   item.Caliber.String(),
		Quantity:  item.Quantity,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
}

// IsLow reports whether item is at or below the configured low-stock threshold.
func (s *InventoryService) IsLow(item *models.Item) bool {
	return item.IsLow(s.lowStock)
}
