package services

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/database/memdb"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/errkind"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/events"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/logger"
	invsvcs "github.com/mayesha-3/Ammo-Inventory-Management-System/services/inventory/application/services"
	invmodels "github.com/mayesha-3/Ammo-Inventory-Management-System/services/inventory/domain/models"
	invmemory "github.com/mayesha-3/Ammo-Inventory-Management-System/services/inventory/infrastructure/persistence/memory"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/services/order/domain/models"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/services/order/infrastructure/persistence/memory"
)

type fixture struct {
	inventory *invsvcs.InventoryService
	issuances *memory.IssuanceRepository
	outbox    *events.MemoryOutbox
	ledger    *LedgerService
	approval  *ApprovalService
}

func newFixture(t *testing.T) *fixture {
	return newFixtureWithStock(t, nil)
}

// newFixtureWithStock builds the services over memory repositories. wrap, when
// non-nil, decorates the inventory service handed to the order services.
func newFixtureWithStock(t *testing.T, wrap func(Stock) Stock) *fixture {
	t.Helper()
	db := memdb.New()
	outbox := events.NewMemoryOutbox()
	db.Register(outbox)

	log := logger.Discard()
	inventory := invsvcs.NewInventoryService(db, invmemory.NewItemRepository(db, outbox), nil, log, 2000)
	orders := memory.NewOrderRepository(db, outbox)
	issuances := memory.NewIssuanceRepository(db)

	var stock Stock = inventory
	if wrap != nil {
		stock = wrap(stock)
	}

	return &fixture{
		inventory: inventory,
		issuances: issuances,
		outbox:    outbox,
		ledger:    NewLedgerService(db, orders, issuances, stock, log, nil),
		approval:  NewApprovalService(db, orders, issuances, stock, 0, log, nil),
	}
}

func (f *fixture) item(t *testing.T, caliber string, qty int) *invmodels.Item {
	t.Helper()
	item, err := f.inventory.Create(context.Background(), caliber, qty)
	if err != nil {
		t.Fatalf("create item: %v", err)
	}
	return item
}

func (f *fixture) order(t *testing.T, caliber string, qty int) *models.Order {
	t.Helper()
	o, err := f.ledger.Place(context.Background(), uuid.New(), caliber, qty)
	if err != nil {
		t.Fatalf("place order: %v", err)
	}
	return o
}

func (f *fixture) quantity(t *testing.T, id uuid.UUID) int {
	t.Helper()
	item, err := f.inventory.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("get item: %v", err)
	}
	return item.Quantity
}

func (f *fixture) status(t *testing.T, id uuid.UUID) models.Status {
	t.Helper()
	o, err := f.ledger.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	return o.Status
}

// conflictingStock fails the first n decrements with errkind.ErrConflict,
// the way a lock timeout surfaces from PostgreSQL.
type conflictingStock struct {
	Stock
	mu       sync.Mutex
	failures int
	calls    int
}

func (s *conflictingStock) Decrement(ctx context.Context, id uuid.UUID, amount int) (*invmodels.Item, error) {
	s.mu.Lock()
	s.calls++
	fail := s.calls <= s.failures
	s.mu.Unlock()
	if fail {
		return nil, errkind.New(errkind.ErrConflict, "canceling statement due to lock timeout")
	}
	return s.Stock.Decrement(ctx, id, amount)
}

// staleStock answers Get from a snapshot taken earlier, the way a cache entry
// warmed before a delete would.
type staleStock struct {
	Stock
	mu       sync.Mutex
	snapshot map[uuid.UUID]*invmodels.Item
}

func (s *staleStock) remember(item *invmodels.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snapshot == nil {
		s.snapshot = make(map[uuid.UUID]*invmodels.Item)
	}
	cp := *item
	s.snapshot[item.ID] = &cp
}

func (s *staleStock) Get(ctx context.Context, id uuid.UUID) (*invmodels.Item, error) {
	s.mu.Lock()
	item, ok := s.snapshot[id]
	s.mu.Unlock()
	if ok {
		cp := *item
		return &cp, nil
	}
	return s.Stock.Get(ctx, id)
}

func ptr[T any](v T) *T { return &v }
