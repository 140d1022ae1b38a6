package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/auth"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/database/memdb"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/errhttp"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/events"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/logger"
	invsvcs "github.com/mayesha-3/Ammo-Inventory-Management-System/services/inventory/application/services"
	invmemory "github.com/mayesha-3/Ammo-Inventory-Management-System/services/inventory/infrastructure/persistence/memory"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/services/order/application/api"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/services/order/application/handlers"
	appsvcs "github.com/mayesha-3/Ammo-Inventory-Management-System/services/order/application/services"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/services/order/infrastructure/persistence/memory"
)

var (
	alice = auth.Identity{UserID: uuid.New(), Role: auth.RoleUser}
	bob   = auth.Identity{UserID: uuid.New(), Role: auth.RoleUser}
	mod   = auth.Identity{UserID: uuid.New(), Role: auth.RoleModerator}
)

// overInt32 is one past the largest quantity the integer columns can store.
const overInt32 = int64(math.MaxInt32) + 1

type identityKey struct{}

type testServer struct {
	h         http.Handler
	inventory *invsvcs.InventoryService
}

// newServer mounts OrderRoutes behind a middleware that takes the caller from
// the request context set by do.
func newServer(t *testing.T) *testServer {
	t.Helper()
	db := memdb.New()
	outbox := events.NewMemoryOutbox()
	db.Register(outbox)
	log := logger.Discard()

	inventory := invsvcs.NewInventoryService(db, invmemory.NewItemRepository(db, outbox), nil, log, 2000)
	orders := memory.NewOrderRepository(db, outbox)
	issuances := memory.NewIssuanceRepository(db)
	svcs := &appsvcs.Services{
		Ledger:   appsvcs.NewLedgerService(db, orders, issuances, inventory, log, nil),
		Approval: appsvcs.NewApprovalService(db, orders, issuances, inventory, 0, log, nil),
	}

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			id := req.Context().Value(identityKey{}).(auth.Identity)
			next.ServeHTTP(w, req.WithContext(auth.WithIdentity(req.Context(), id)))
		})
	})
	api.OrderRoutes(r, svcs)
	return &testServer{h: r, inventory: inventory}
}

func (s *testServer) do(t *testing.T, as auth.Identity, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req = req.WithContext(context.WithValue(req.Context(), identityKey{}, as))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v (body %q)", err, rec.Body.String())
	}
	return v
}

func expect(t *testing.T, rec *httptest.ResponseRecorder, code int) {
	t.Helper()
	if rec.Code != code {
		t.Fatalf("expected %d, got %d: %s", code, rec.Code, rec.Body.String())
	}
}

func (s *testServer) place(t *testing.T, as auth.Identity, caliber string, qty int) handlers.OrderResponse {
	t.Helper()
	rec := s.do(t, as, http.MethodPost, "/orders", map[string]any{"caliber": caliber, "quantity": qty})
	expect(t, rec, http.StatusCreated)
	return decode[handlers.OrderResponse](t, rec)
}

func TestOrderRoutes_RoleEnforcement(t *testing.T) {
	id := uuid.NewString()
	tests := []struct {
		name   string
		method string
		path   string
		body   any
	}{
		{"list all", http.MethodGet, "/orders", nil},
		{"approve", http.MethodPost, "/orders/" + id + "/approve", map[string]any{"issued_quantity": 1}},
		{"reject", http.MethodPost, "/orders/" + id + "/reject", nil},
		{"complete", http.MethodPost, "/orders/" + id + "/complete", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newServer(t)
			rec := s.do(t, alice, tt.method, tt.path, tt.body)
			expect(t, rec, http.StatusForbidden)
			if got := decode[errhttp.ErrorResponse](t, rec); got.Code != errhttp.CodeForbidden {
				t.Fatalf("expected code %q, got %q", errhttp.CodeForbidden, got.Code)
			}
		})
	}
}

func TestOrderRoutes_ApproveFlow(t *testing.T) {
	s := newServer(t)
	item, err := s.inventory.Create(context.Background(), "9mm", 500)
	if err != nil {
		t.Fatal(err)
	}

	order := s.place(t, alice, "9mm", 500)
	if order.Status != "pending" || order.UserID != alice.UserID {
		t.Fatalf("unexpected order: %+v", order)
	}

	rec := s.do(t, mod, http.MethodPost, "/orders/"+order.ID.String()+"/approve", map[string]any{"issued_quantity": 500})
	expect(t, rec, http.StatusOK)
	approval := decode[handlers.ApprovalResponse](t, rec)
	if approval.Order.Status != "approved" || approval.RemainingQuantity != 0 {
		t.Fatalf("unexpected approval: %+v", approval)
	}
	if approval.Issuance.InventoryItemID == nil || *approval.Issuance.InventoryItemID != item.ID {
		t.Fatalf("issuance must reference the decremented item, got %+v", approval.Issuance)
	}

	// A second approval is an invalid transition and leaves stock untouched.
	rec = s.do(t, mod, http.MethodPost, "/orders/"+order.ID.String()+"/approve", map[string]any{"issued_quantity": 1})
	expect(t, rec, http.StatusConflict)
	if got := decode[errhttp.ErrorResponse](t, rec); got.Code != errhttp.CodeInvalidTransition {
		t.Fatalf("expected invalid_transition, got %q", got.Code)
	}

	rec = s.do(t, mod, http.MethodPost, "/orders/"+order.ID.String()+"/complete", nil)
	expect(t, rec, http.StatusOK)
	if got := decode[handlers.OrderResponse](t, rec); got.Status != "completed" {
		t.Fatalf("expected completed, got %q", got.Status)
	}

	rec = s.do(t, alice, http.MethodGet, "/issuances/me", nil)
	expect(t, rec, http.StatusOK)
	if page := decode[handlers.IssuanceListResponse](t, rec); page.Total != 1 || page.Data[0].Quantity != 500 {
		t.Fatalf("unexpected issuances: %+v", page)
	}
}

func TestOrderRoutes_InsufficientStock(t *testing.T) {
	s := newServer(t)
	if _, err := s.inventory.Create(context.Background(), "9mm", 100); err != nil {
		t.Fatal(err)
	}
	order := s.place(t, alice, "9mm", 500)

	rec := s.do(t, mod, http.MethodPost, "/orders/"+order.ID.String()+"/approve", map[string]any{"issued_quantity": 500})
	expect(t, rec, http.StatusConflict)
	if got := decode[errhttp.ErrorResponse](t, rec); got.Code != errhttp.CodeInsufficientStock {
		t.Fatalf("expected insufficient_stock, got %q", got.Code)
	}

	rec = s.do(t, alice, http.MethodGet, "/orders/"+order.ID.String(), nil)
	expect(t, rec, http.StatusOK)
	if got := decode[handlers.OrderResponse](t, rec); got.Status != "pending" {
		t.Fatalf("failed approval must leave the order pending, got %q", got.Status)
	}
}

func TestOrderRoutes_PlaceFromStock(t *testing.T) {
	s := newServer(t)
	item, err := s.inventory.Create(context.Background(), ".45 ACP", 3000)
	if err != nil {
		t.Fatal(err)
	}

	rec := s.do(t, alice, http.MethodPost, "/orders/stock", map[string]any{"inventory_item_id": item.ID, "quantity": 200})
	expect(t, rec, http.StatusCreated)
	order := decode[handlers.OrderResponse](t, rec)
	if order.Caliber != ".45 ACP" || order.InventoryItemID == nil || *order.InventoryItemID != item.ID {
		t.Fatalf("unexpected order: %+v", order)
	}

	rec = s.do(t, alice, http.MethodPost, "/orders/stock", map[string]any{"inventory_item_id": uuid.New(), "quantity": 1})
	expect(t, rec, http.StatusNotFound)
}

func TestOrderRoutes_Visibility(t *testing.T) {
	s := newServer(t)
	aliceOrder := s.place(t, alice, "9mm", 10)
	s.place(t, bob, "12 Gauge", 20)

	rec := s.do(t, alice, http.MethodGet, "/orders/me", nil)
	expect(t, rec, http.StatusOK)
	if page := decode[handlers.OrderListResponse](t, rec); page.Total != 1 || page.Data[0].ID != aliceOrder.ID {
		t.Fatalf("alice must see only her order, got %+v", page)
	}

	rec = s.do(t, bob, http.MethodGet, "/orders/"+aliceOrder.ID.String(), nil)
	expect(t, rec, http.StatusForbidden)

	rec = s.do(t, mod, http.MethodGet, "/orders/"+aliceOrder.ID.String(), nil)
	expect(t, rec, http.StatusOK)

	rec = s.do(t, mod, http.MethodGet, "/orders", nil)
	expect(t, rec, http.StatusOK)
	if page := decode[handlers.OrderListResponse](t, rec); page.Total != 2 {
		t.Fatalf("staff must see every order, got %+v", page)
	}
}

func TestOrderRoutes_StatusFilter(t *testing.T) {
	s := newServer(t)
	rejected := s.place(t, alice, "9mm", 10)
	s.place(t, alice, "9mm", 20)

	expect(t, s.do(t, mod, http.MethodPost, "/orders/"+rejected.ID.String()+"/reject", nil), http.StatusOK)

	rec := s.do(t, mod, http.MethodGet, "/orders?status=rejected", nil)
	expect(t, rec, http.StatusOK)
	page := decode[handlers.OrderListResponse](t, rec)
	if page.Total != 1 || page.Data[0].ID != rejected.ID {
		t.Fatalf("expected only the rejected order, got %+v", page)
	}

	expect(t, s.do(t, mod, http.MethodGet, "/orders?status=lost", nil), http.StatusUnprocessableEntity)
}

func TestOrderRoutes_BadRequests(t *testing.T) {
	tests := []struct {
		name   string
		as     auth.Identity
		method string
		path   string
		body   any
		want   int
	}{
		{"zero quantity", alice, http.MethodPost, "/orders", map[string]any{"caliber": "9mm", "quantity": 0}, http.StatusUnprocessableEntity},
		{"quantity above int32", alice, http.MethodPost, "/orders", map[string]any{"caliber": "9mm", "quantity": overInt32}, http.StatusUnprocessableEntity},
		{"stock quantity above int32", alice, http.MethodPost, "/orders/stock", map[string]any{"inventory_item_id": uuid.New(), "quantity": overInt32}, http.StatusUnprocessableEntity},
		{"missing caliber", alice, http.MethodPost, "/orders", map[string]any{"quantity": 5}, http.StatusUnprocessableEntity},
		{"bad order id", alice, http.MethodGet, "/orders/not-a-uuid", nil, http.StatusUnprocessableEntity},
		{"unknown order", alice, http.MethodGet, "/orders/" + uuid.NewString(), nil, http.StatusNotFound},
		{"approve unknown order", mod, http.MethodPost, "/orders/" + uuid.NewString() + "/approve", map[string]any{"issued_quantity": 1}, http.StatusNotFound},
		{"approve zero", mod, http.MethodPost, "/orders/" + uuid.NewString() + "/approve", map[string]any{"issued_quantity": 0}, http.StatusUnprocessableEntity},
		{"approve above int32", mod, http.MethodPost, "/orders/" + uuid.NewString() + "/approve", map[string]any{"issued_quantity": overInt32}, http.StatusUnprocessableEntity},
		{"bad page", alice, http.MethodGet, "/orders/me?page=0", nil, http.StatusUnprocessableEntity},
		{"page past offset range", alice, http.MethodGet, "/orders/me?page=2147483648&limit=100", nil, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newServer(t)
			expect(t, s.do(t, tt.as, tt.method, tt.path, tt.body), tt.want)
		})
	}
}
