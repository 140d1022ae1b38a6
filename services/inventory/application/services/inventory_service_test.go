package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	pkgcache "github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/cache"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/database/memdb"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/errkind"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/events"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/logger"
	invdomain "github.com/mayesha-3/Ammo-Inventory-Management-System/services/inventory/domain"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/services/inventory/domain/models"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/services/inventory/domain/repositories"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/services/inventory/infrastructure/persistence/memory"
)

// stubCache is an in-memory ItemCache safe for the async cache warm-up.
type stubCache struct {
	mu      sync.Mutex
	items   map[uuid.UUID]*pkgcache.CachedItem
	deletes int
	getErr  error
}

func newStubCache() *stubCache {
	return &stubCache{items: make(map[uuid.UUID]*pkgcache.CachedItem)}
}

func (c *stubCache) Get(_ context.Context, id uuid.UUID) (*pkgcache.CachedItem, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, c.getErr
	}
	item, ok := c.items[id]
	if !ok {
		return nil, redis.Nil
	}
	return item, nil
}

func (c *stubCache) Set(_ context.Context, item *pkgcache.CachedItem) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[item.ID] = item
	return nil
}

func (c *stubCache) Delete(_ context.Context, id uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, id)
	c.deletes++
	return nil
}

func (c *stubCache) has(id uuid.UUID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.items[id]
	return ok
}

type fixture struct {
	svc    *InventoryService
	cache  *stubCache
	outbox *events.MemoryOutbox
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	db := memdb.New()
	outbox := events.NewMemoryOutbox()
	db.Register(outbox)
	repo := memory.NewItemRepository(db, outbox)
	cache := newStubCache()
	return fixture{
		svc:    NewInventoryService(db, repo, cache, logger.Discard(), 2000),
		cache:  cache,
		outbox: outbox,
	}
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func TestInventoryService_Create(t *testing.T) {
	tests := []struct {
		name     string
		caliber  string
		quantity int
		wantErr  error
	}{
		{"valid", "9mm", 5000, nil},
		{"trims caliber", "  .45 ACP ", 1, nil},
		{"zero quantity", "9mm", 0, invdomain.ErrInvalidQuantity},
		{"negative quantity", "9mm", -10, invdomain.ErrInvalidQuantity},
		{"blank caliber", "   ", 10, invdomain.ErrInvalidCaliber},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			item, err := f.svc.Create(context.Background(), tt.caliber, tt.quantity)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) || !errors.Is(err, errkind.ErrValidation) {
					t.Fatalf("expected %v (validation), got %v", tt.wantErr, err)
				}
				if len(f.outbox.Topics()) != 0 {
					t.Fatal("failed create must not publish")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if item.Quantity != tt.quantity {
				t.Fatalf("expected quantity %d, got %d", tt.quantity, item.Quantity)
			}
			if len(f.outbox.Topics()) != 1 {
				t.Fatalf("expected one stock event, got %v", f.outbox.Topics())
			}
		})
	}
}

func TestInventoryService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("quantity to zero is allowed", func(t *testing.T) {
		f := newFixture(t)
		item, _ := f.svc.Create(ctx, "9mm", 10)
		got, err := f.svc.Update(ctx, item.ID, models.ItemPatch{Quantity: intPtr(0)})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Quantity != 0 {
			t.Fatalf("expected 0, got %d", got.Quantity)
		}
		if f.cache.deletes == 0 {
			t.Fatal("expected cache eviction after update")
		}
	})

	t.Run("negative quantity is rejected", func(t *testing.T) {
		f := newFixture(t)
		item, _ := f.svc.Create(ctx, "9mm", 10)
		if _, err := f.svc.Update(ctx, item.ID, models.ItemPatch{Quantity: intPtr(-1)}); !errors.Is(err, invdomain.ErrInvalidQuantity) {
			t.Fatalf("expected ErrInvalidQuantity, got %v", err)
		}
		stored, _ := f.svc.GetForUpdate(ctx, item.ID)
		if stored.Quantity != 10 {
			t.Fatalf("expected unchanged quantity, got %d", stored.Quantity)
		}
	})

	t.Run("blank caliber is rejected", func(t *testing.T) {
		f := newFixture(t)
		item, _ := f.svc.Create(ctx, "9mm", 10)
		if _, err := f.svc.Update(ctx, item.ID, models.ItemPatch{Caliber: strPtr("")}); !errors.Is(err, invdomain.ErrInvalidCaliber) {
			t.Fatalf("expected ErrInvalidCaliber, got %v", err)
		}
	})

	t.Run("empty patch is rejected", func(t *testing.T) {
		f := newFixture(t)
		item, _ := f.svc.Create(ctx, "9mm", 10)
		if _, err := f.svc.Update(ctx, item.ID, models.ItemPatch{}); !errors.Is(err, errkind.ErrValidation) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("missing item", func(t *testing.T) {
		f := newFixture(t)
		if _, err := f.svc.Update(ctx, uuid.New(), models.ItemPatch{Quantity: intPtr(1)}); !errors.Is(err, invdomain.ErrItemNotFound) {
			t.Fatalf("expected ErrItemNotFound, got %v", err)
		}
	})
}

func TestInventoryService_Delete(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	item, _ := f.svc.Create(ctx, "9mm", 10)

	if err := f.svc.Delete(ctx, item.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.svc.Delete(ctx, item.ID); !errors.Is(err, errkind.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestInventoryService_Decrement(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	item, _ := f.svc.Create(ctx, "9mm", 100)

	got, err := f.svc.Decrement(ctx, item.ID, 80)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Quantity != 20 {
		t.Fatalf("expected 20, got %d", got.Quantity)
	}

	if _, err := f.svc.Decrement(ctx, item.ID, 21); !errors.Is(err, errkind.ErrInsufficientStock) {
		t.Fatalf("expected insufficient stock, got %v", err)
	}
	if _, err := f.svc.Decrement(ctx, item.ID, 0); !errors.Is(err, invdomain.ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
	if _, err := f.svc.Decrement(ctx, uuid.New(), 1); !errors.Is(err, invdomain.ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestInventoryService_Get_ReadThrough(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	item, _ := f.svc.Create(ctx, "9mm", 100)

	got, err := f.svc.Get(ctx, item.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != item.ID {
		t.Fatalf("expected %v, got %v", item.ID, got.ID)
	}

	// Wait for the async warm-up
	for i := 0; i < 100 && !f.cache.has(item.ID); i++ {
		time.Sleep(time.Millisecond)
	}
	if !f.cache.has(item.ID) {
		t.Fatal("expected cache to be warmed after miss")
	}

	if _, err := f.svc.Decrement(ctx, item.ID, 30); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.cache.has(item.ID) {
		t.Fatal("expected decrement to evict cached item")
	}
}

func TestInventoryService_Get_CacheErrorFallsBack(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	item, _ := f.svc.Create(ctx, "9mm", 100)
	f.cache.mu.Lock()
	f.cache.getErr = errors.New("connection refused")
	f.cache.mu.Unlock()

	got, err := f.svc.Get(ctx, item.ID)
	if err != nil {
		t.Fatalf("expected fallback to repository, got %v", err)
	}
	if got.Quantity != 100 {
		t.Fatalf("expected 100, got %d", got.Quantity)
	}

	if _, err := f.svc.Get(ctx, uuid.New()); !errors.Is(err, invdomain.ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestInventoryService_ListFindLowStock(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, _ = f.svc.Create(ctx, "9mm", 5000)
	_, _ = f.svc.Create(ctx, "10mm Auto", 800)
	_, _ = f.svc.Create(ctx, "12 Gauge", 2000)

	items, total, err := f.svc.List(ctx, repositories.QueryOpts{Limit: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 3 || len(items) != 2 {
		t.Fatalf("expected page of 2 of 3, got %d of %d", len(items), total)
	}

	found, err := f.svc.FindByCaliber(ctx, "9MM")
	if err != nil || len(found) != 1 {
		t.Fatalf("expected one 9mm item, got %d (%v)", len(found), err)
	}

	low, err := f.svc.LowStock(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(low) != 2 {
		t.Fatalf("expected 2 low-stock items (threshold inclusive), got %d", len(low))
	}
}
