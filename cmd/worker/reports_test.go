package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/config"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/logger"
	invmodels "github.com/mayesha-3/Ammo-Inventory-Management-System/services/inventory/domain/models"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/services/order/domain/models"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/services/order/domain/repositories"
)

type stubStock struct {
	items []*invmodels.Item
	err   error
}

func (s stubStock) LowStock(context.Context) ([]*invmodels.Item, error) { return s.items, s.err }

type stubOrders struct {
	orders []*models.Order
	opts   repositories.ListOpts
	err    error
}

func (s *stubOrders) ListAll(_ context.Context, opts repositories.ListOpts) ([]*models.Order, int, error) {
	s.opts = opts
	return s.orders, len(s.orders), s.err
}

func newReporter(stock stubStock, orders *stubOrders) (*reporter, *bytes.Buffer) {
	var buf bytes.Buffer
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	return &reporter{
		stock:      stock,
		orders:     orders,
		log:        logger.NewWithWriter(&config.Config{LogLevel: "debug"}, &buf),
		staleAfter: 24 * time.Hour,
		now:        func() time.Time { return now },
	}, &buf
}

func TestReporter_Run(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	orders := &stubOrders{orders: []*models.Order{
		{Status: models.StatusPending, CreatedAt: now.Add(-48 * time.Hour)},
		{Status: models.StatusPending, CreatedAt: now.Add(-time.Hour)},
	}}
	stock := stubStock{items: []*invmodels.Item{{Caliber: "10mm Auto", Quantity: 800}}}
	r, buf := newReporter(stock, orders)

	if err := r.run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if orders.opts.Status == nil || *orders.opts.Status != models.StatusPending {
		t.Fatalf("expected pending filter, got %+v", orders.opts)
	}
	out := buf.String()
	for _, want := range []string{`"low_stock_items":1`, `10mm Auto=800`, `"pending_orders":2`, `"stale_pending_orders":1`, "orders awaiting decision"} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %s: %s", want, out)
		}
	}
}

func TestReporter_NoStaleOrders(t *testing.T) {
	r, buf := newReporter(stubStock{}, &stubOrders{})
	if err := r.run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if strings.Contains(buf.String(), "orders awaiting decision") {
		t.Fatalf("unexpected stale warning: %s", buf.String())
	}
}

func TestReporter_Errors(t *testing.T) {
	errDB := errors.New("db down")
	tests := []struct {
		name   string
		stock  stubStock
		orders *stubOrders
	}{
		{"low stock", stubStock{err: errDB}, &stubOrders{}},
		{"pending orders", stubStock{}, &stubOrders{err: errDB}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, buf := newReporter(tt.stock, tt.orders)
			if err := r.run(context.Background()); !errors.Is(err, errDB) {
				t.Fatalf("expected db error, got %v", err)
			}
			r.Run()
			if !strings.Contains(buf.String(), "stock report failed") {
				t.Fatalf("Run must log the failure: %s", buf.String())
			}
		})
	}
}

func TestStartScheduler(t *testing.T) {
	log := logger.Discard()
	r, _ := newReporter(stubStock{}, &stubOrders{})

	c, err := startScheduler("", r, log)
	if err != nil || c != nil {
		t.Fatalf("empty spec must disable the scheduler, got %v %v", c, err)
	}

	if _, err := startScheduler("every now and then", r, log); err == nil {
		t.Fatal("expected invalid spec error")
	}

	c, err = startScheduler("@every 1h", r, log)
	if err != nil {
		t.Fatalf("startScheduler: %v", err)
	}
	if n := len(c.Entries()); n != 1 {
		t.Fatalf("expected 1 entry, got %d", n)
	}
	<-c.Stop().Done()
}
