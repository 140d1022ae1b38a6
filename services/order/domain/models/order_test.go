package models

import (
	"testing"

	"github.com/google/uuid"

	invmodels "github.com/mayesha-3/Ammo-Inventory-Management-System/services/inventory/domain/models"
)

func newPending(t *testing.T, qty int) *Order {
	t.Helper()
	o, err := NewOrder(uuid.New(), "9mm", qty, nil)
	if err != nil {
		t.Fatalf("NewOrder: %v", err)
	}
	return o
}

func TestNewOrder(t *testing.T) {
	o := newPending(t, 500)
	if o.Status != StatusPending || o.RequestedQuantity != 500 {
		t.Fatalf("unexpected order: %+v", o)
	}
	if o.IssuedQuantity != nil || o.DecidedAt != nil || o.InventoryItemID != nil {
		t.Fatal("new order must not carry decision fields")
	}

	for _, qty := range []int{0, -1, invmodels.MaxQuantity + 1} {
		if _, err := NewOrder(uuid.New(), "9mm", qty, nil); err == nil {
			t.Errorf("expected error for quantity %d", qty)
		}
	}
}

func TestOrder_Approve(t *testing.T) {
	o := newPending(t, 500)
	itemID := uuid.New()
	if err := o.Approve(itemID, 400); err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if o.Status != StatusApproved || *o.IssuedQuantity != 400 || *o.InventoryItemID != itemID || o.DecidedAt == nil {
		t.Fatalf("unexpected approved order: %+v", o)
	}

	if err := o.Approve(itemID, 1); err == nil {
		t.Fatal("second approval must fail")
	}
	if *o.IssuedQuantity != 400 {
		t.Fatal("failed approval must not change the order")
	}
}

func TestOrder_Lifecycle(t *testing.T) {
	tests := []struct {
		name    string
		steps   []func(*Order) error
		want    Status
		wantErr bool
	}{
		{"reject pending", []func(*Order) error{(*Order).Reject}, StatusRejected, false},
		{"complete pending", []func(*Order) error{(*Order).Complete}, StatusPending, true},
		{"approve then complete", []func(*Order) error{approve, (*Order).Complete}, StatusCompleted, false},
		{"reject then approve", []func(*Order) error{(*Order).Reject, approve}, StatusRejected, true},
		{"complete twice", []func(*Order) error{approve, (*Order).Complete, (*Order).Complete}, StatusCompleted, true},
		{"reject approved", []func(*Order) error{approve, (*Order).Reject}, StatusApproved, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := newPending(t, 10)
			var err error
			for _, step := range tt.steps {
				if err = step(o); err != nil {
					break
				}
			}
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if o.Status != tt.want {
				t.Fatalf("status = %s, want %s", o.Status, tt.want)
			}
		})
	}
}

func approve(o *Order) error { return o.Approve(uuid.New(), 1) }

func TestNewIssuance(t *testing.T) {
	o := newPending(t, 50)
	if _, err := NewIssuance(o); err == nil {
		t.Fatal("pending order must not produce an issuance")
	}

	itemID := uuid.New()
	if err := o.Approve(itemID, 30); err != nil {
		t.Fatal(err)
	}
	iss, err := NewIssuance(o)
	if err != nil {
		t.Fatalf("NewIssuance: %v", err)
	}
	if iss.OrderID != o.ID || iss.UserID != o.UserID || iss.Quantity != 30 || *iss.InventoryItemID != itemID || iss.Caliber != "9mm" {
		t.Fatalf("unexpected issuance: %+v", iss)
	}
}

func TestOrder_CompleteKeepsDecisionTime(t *testing.T) {
	o := newPending(t, 10)
	if err := o.Approve(uuid.New(), 10); err != nil {
		t.Fatal(err)
	}
	decided := *o.DecidedAt
	if err := o.Complete(); err != nil {
		t.Fatal(err)
	}
	if !o.DecidedAt.Equal(decided) {
		t.Fatalf("DecidedAt moved from %v to %v", decided, *o.DecidedAt)
	}
}
