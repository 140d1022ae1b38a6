package handlers

import (
	"time"

	"github.com/google/uuid"

	"github.com/mayesha-3/Ammo-Inventory-Management-System/services/order/domain/models"
)

// OrderResponse is the JSON representation of an order.
type OrderResponse struct {
	ID                uuid.UUID  `json:"id"                          example:"123e4567-e89b-12d3-a456-426614174000"`
	UserID            uuid.UUID  `json:"user_id"                     example:"7c9e6679-7425-40de-944b-e07fc1f90ae7"`
	Caliber           string     `json:"caliber"                     example:"9mm"`
	RequestedQuantity int        `json:"requested_quantity"          example:"500"`
	Status            string     `json:"status"                      example:"pending" enums:"pending,approved,rejected,completed"`
	InventoryItemID   *uuid.UUID `json:"inventory_item_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174001"`
	IssuedQuantity    *int       `json:"issued_quantity,omitempty"   example:"500"`
	CreatedAt         time.Time  `json:"created_at"                  example:"2024-01-15T10:30:00Z"`
	UpdatedAt         time.Time  `json:"updated_at"                  example:"2024-01-15T10:30:00Z"`
	DecidedAt         *time.Time `json:"decided_at,omitempty"        example:"2024-01-15T11:00:00Z"`
} // @name OrderResponse

// OrderListResponse is a page of orders.
type OrderListResponse struct {
	Data  []OrderResponse `json:"data"`
	Page  int             `json:"page"  example:"1"`
	Limit int             `json:"limit" example:"20"`
	Total int             `json:"total" example:"3"`
} // @name OrderListResponse

// IssuanceResponse is the JSON representation of an issuance.
type IssuanceResponse struct {
	ID              uuid.UUID  `json:"id"`
	OrderID         uuid.UUID  `json:"order_id"`
	InventoryItemID *uuid.UUID `json:"inventory_item_id,omitempty"`
	Caliber         string     `json:"caliber"   example:"9mm"`
	Quantity        int        `json:"quantity"  example:"500"`
	IssuedAt        time.Time  `json:"issued_at" example:"2024-01-15T11:00:00Z"`
} // @name IssuanceResponse

// IssuanceListResponse is a page of issuances.
type IssuanceListResponse struct {
	Data  []IssuanceResponse `json:"data"`
	Page  int                `json:"page"  example:"1"`
	Limit int                `json:"limit" example:"20"`
	Total int                `json:"total" example:"1"`
} // @name IssuanceListResponse

// ApprovalResponse is returned by a successful approval.
type ApprovalResponse struct {
	Order             OrderResponse    `json:"order"`
	Issuance          IssuanceResponse `json:"issuance"`
	RemainingQuantity int              `json:"remaining_quantity" example:"0"`
} // @name ApprovalResponse

func toOrderResponse(o *models.Order) OrderResponse {
	return OrderResponse{
		ID:                o.ID,
		UserID:            o.UserID,
		Caliber:           o.Caliber.String(),
		RequestedQuantity: o.RequestedQuantity,
		Status:            o.Status.String(),
		InventoryItemID:   o.InventoryItemID,
		IssuedQuantity:    o.IssuedQuantity,
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
		DecidedAt:         o.DecidedAt,
	}
}

func toOrderResponses(orders []*models.Order) []OrderResponse {
	out := make([]OrderResponse, len(orders))
	for i, o := range orders {
		out[i] = toOrderResponse(o)
	}
	return out
}

func toIssuanceResponse(iss *models.Issuance) IssuanceResponse {
	return IssuanceResponse{
		ID:              iss.ID,
		OrderID:         iss.OrderID,
		InventoryItemID: iss.InventoryItemID,
		Caliber:         iss.Caliber.String(),
		Quantity:        iss.Quantity,
		IssuedAt:        iss.IssuedAt,
	}
}
