package events_test

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"

	"github.com/mayesha-3/Ammo-Inventory-Management-System/services/inventory/domain/events"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/services/inventory/domain/models"
)

func TestNewStockChanged(t *testing.T) {
	item := &models.Item{ID: uuid.New(), Caliber: "9mm", Quantity: 20}

	evt := events.NewStockChanged(item, -80, events.ReasonIssued)
	if evt.EventID == uuid.Nil || evt.Version != 1 {
		t.Fatalf("expected identity fields to be set: %+v", evt)
	}
	if evt.ItemID != item.ID || evt.Quantity != 20 || evt.Delta != -80 || evt.Caliber != "9mm" {
		t.Fatalf("unexpected event: %+v", evt)
	}

	deleted := events.NewStockChanged(item, -20, events.ReasonDeleted)
	if deleted.Quantity != 0 {
		t.Fatalf("deleted event must report zero quantity, got %d", deleted.Quantity)
	}
}

func TestStockChangedEvent_JSONFieldNames(t *testing.T) {
	evt := events.NewStockChanged(&models.Item{ID: uuid.New(), Caliber: ".22 LR", Quantity: 1}, 1, events.ReasonCreated)

	data, err := json.Marshal(evt)
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal to map failed: %v", err)
	}

	for _, field := range []string{"event_id", "version", "item_id", "caliber", "quantity", "delta", "reason", "occurred_at"} {
		if _, ok := raw[field]; !ok {
			t.Errorf("expected JSON field %q not found in: %s", field, data)
		}
	}
}

func TestTopicStockChanged_Value(t *testing.T) {
	if events.TopicStockChanged != "inventory.stock_changed" {
		t.Errorf("expected %q, got %q", "inventory.stock_changed", events.TopicStockChanged)
	}
}
