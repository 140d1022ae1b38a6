package handlers

import (
	"time"

	"github.com/google/uuid"

	appsvcs "github.com/mayesha-3/Ammo-Inventory-Management-System/services/inventory/application/services"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/services/inventory/domain/models"
)

// InventoryItemResponse is the JSON representation of an inventory item.
type InventoryItemResponse struct {
	ID        uuid.UUID `json:"id"         example:"123e4567-e89b-12d3-a456-426614174000"`
	Caliber   string    `json:"caliber"    example:"9mm"`
	Quantity  int       `json:"quantity"   example:"5000"`
	LowStock  bool      `json:"low_stock"  example:"false"`
	CreatedAt time.Time `json:"created_at" example:"2024-01-15T10:30:00Z"`
	UpdatedAt time.Time `json:"updated_at" example:"2024-01-15T10:30:00Z"`
} // @name InventoryItemResponse

// InventoryListResponse is a page of inventory items.
type InventoryListResponse struct {
	Data  []InventoryItemResponse `json:"data"`
	Page  int                     `json:"page"  example:"1"`
	Limit int                     `json:"limit" example:"20"`
	Total int                     `json:"total" example:"8"`
} // @name InventoryListResponse

func toResponse(svc *appsvcs.InventoryService, item *models.Item) InventoryItemResponse {
	return InventoryItemResponse{
		ID:        item.ID,
		Caliber:   item.Caliber.String(),
		Quantity:  item.Quantity,
		LowStock:  svc.IsLow(item),
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
}

func toResponses(svc *appsvcs.InventoryService, items []*models.Item) []InventoryItemResponse {
	out := make([]InventoryItemResponse, len(items))
	for i, item := range items {
		out[i] = toResponse(svc, item)
	}
	return out
}
