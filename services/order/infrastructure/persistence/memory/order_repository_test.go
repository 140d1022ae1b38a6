package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/database/memdb"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/events"
	orderdomain "github.com/mayesha-3/Ammo-Inventory-Management-System/services/order/domain"
	domainevents "github.com/mayesha-3/Ammo-Inventory-Management-System/services/order/domain/events"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/services/order/domain/models"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/services/order/domain/repositories"
)

func setup(t *testing.T) (*memdb.DB, *OrderRepository, *IssuanceRepository, *events.MemoryOutbox) {
	t.Helper()
	db := memdb.New()
	outbox := events.NewMemoryOutbox()
	db.Register(outbox)
	return db, NewOrderRepository(db, outbox), NewIssuanceRepository(db), outbox
}

func mustOrder(t *testing.T, userID uuid.UUID, qty int) *models.Order {
	t.Helper()
	o, err := models.NewOrder(userID, "9mm", qty, nil)
	if err != nil {
		t.Fatal(err)
	}
	return o
}

func TestOrderRepository_SavePublishesPlaced(t *testing.T) {
	_, repo, _, outbox := setup(t)
	ctx := context.Background()
	o := mustOrder(t, uuid.New(), 10)

	if err := repo.Save(ctx, o); err != nil {
		t.Fatal(err)
	}
	if got := outbox.Topics(); len(got) != 1 || got[0] != domainevents.TopicOrderPlaced {
		t.Fatalf("expected one order.placed event, got %v", got)
	}

	got, err := repo.GetByID(ctx, o.ID)
	if err != nil || got.RequestedQuantity != 10 {
		t.Fatalf("GetByID = %+v, %v", got, err)
	}
	if _, err := repo.GetByID(ctx, uuid.New()); !errors.Is(err, orderdomain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestOrderRepository_ReturnedOrdersAreCopies(t *testing.T) {
	_, repo, _, _ := setup(t)
	ctx := context.Background()
	o := mustOrder(t, uuid.New(), 10)
	if err := repo.Save(ctx, o); err != nil {
		t.Fatal(err)
	}

	got, _ := repo.GetByID(ctx, o.ID)
	if err := got.Approve(uuid.New(), 5); err != nil {
		t.Fatal(err)
	}
	stored, _ := repo.GetByID(ctx, o.ID)
	if stored.Status != models.StatusPending {
		t.Fatal("mutating a returned order must not change the stored row")
	}
}

func TestOrderRepository_UpdateStatusGuardsFromStatus(t *testing.T) {
	_, repo, _, outbox := setup(t)
	ctx := context.Background()
	o := mustOrder(t, uuid.New(), 10)
	if err := repo.Save(ctx, o); err != nil {
		t.Fatal(err)
	}

	if err := o.Reject(); err != nil {
		t.Fatal(err)
	}
	if err := repo.UpdateStatus(ctx, o, models.StatusPending); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	// stale writer still believes the order is pending
	stale := mustOrder(t, o.UserID, 10)
	stale.ID = o.ID
	if err := stale.Approve(uuid.New(), 10); err != nil {
		t.Fatal(err)
	}
	if err := repo.UpdateStatus(ctx, stale, models.StatusPending); !errors.Is(err, orderdomain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}

	topics := outbox.Topics()
	if len(topics) != 2 || topics[1] != domainevents.TopicOrderRejected {
		t.Fatalf("unexpected topics %v", topics)
	}
}

func TestOrderRepository_ListNewestFirstWithFilters(t *testing.T) {
	_, repo, _, _ := setup(t)
	ctx := context.Background()
	alice, bob := uuid.New(), uuid.New()

	var saved []*models.Order
	for i, owner := range []uuid.UUID{alice, bob, alice, alice} {
		o := mustOrder(t, owner, i+1)
		o.CreatedAt = o.CreatedAt.Add(time.Duration(i) * time.Second)
		if err := repo.Save(ctx, o); err != nil {
			t.Fatal(err)
		}
		saved = append(saved, o)
	}
	_ = saved[2].Reject()
	if err := repo.UpdateStatus(ctx, saved[2], models.StatusPending); err != nil {
		t.Fatal(err)
	}

	mine, total, err := repo.ListByUser(ctx, alice, repositories.ListOpts{Limit: 2})
	if err != nil {
		t.Fatal(err)
	}
	if total != 3 || len(mine) != 2 || mine[0].ID != saved[3].ID || mine[1].ID != saved[2].ID {
		t.Fatalf("unexpected page total=%d %v", total, mine)
	}

	pending := models.StatusPending
	all, total, err := repo.List(ctx, repositories.ListOpts{Status: &pending})
	if err != nil {
		t.Fatal(err)
	}
	if total != 3 || all[0].ID != saved[3].ID || all[2].ID != saved[0].ID {
		t.Fatalf("unexpected pending listing total=%d", total)
	}

	_, total, _ = repo.List(ctx, repositories.ListOpts{Offset: 10})
	if total != 4 {
		t.Fatalf("offset past the end must still report total, got %d", total)
	}
}

func TestIssuanceRepository_OnePerOrderAndRollback(t *testing.T) {
	db, orders, issuances, _ := setup(t)
	ctx := context.Background()
	o := mustOrder(t, uuid.New(), 10)
	if err := orders.Save(ctx, o); err != nil {
		t.Fatal(err)
	}
	if err := o.Approve(uuid.New(), 10); err != nil {
		t.Fatal(err)
	}
	iss, err := models.NewIssuance(o)
	if err != nil {
		t.Fatal(err)
	}

	errBoom := errors.New("boom")
	err = db.WithinTx(ctx, func(ctx context.Context) error {
		if err := issuances.Save(ctx, iss); err != nil {
			return err
		}
		return errBoom
	})
	if !errors.Is(err, errBoom) || issuances.Count(ctx) != 0 {
		t.Fatalf("rolled back issuance must not persist (err=%v)", err)
	}

	if err := issuances.Save(ctx, iss); err != nil {
		t.Fatal(err)
	}
	if err := issuances.Save(ctx, iss); err == nil {
		t.Fatal("second issuance for the same order must fail")
	}

	got, err := issuances.GetByOrderID(ctx, o.ID)
	if err != nil || got.Quantity != 10 {
		t.Fatalf("GetByOrderID = %+v, %v", got, err)
	}
	if _, err := issuances.GetByOrderID(ctx, uuid.New()); !errors.Is(err, orderdomain.ErrIssuanceNotFound) {
		t.Fatalf("expected ErrIssuanceNotFound, got %v", err)
	}

	list, total, _ := issuances.ListByUser(ctx, o.UserID, repositories.ListOpts{})
	if total != 1 || len(list) != 1 {
		t.Fatalf("expected one issuance for the user, got %d", total)
	}
}
