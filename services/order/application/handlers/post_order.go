package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/auth"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/errhttp"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/httpx"
	pkgvalidator "github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/validator"
	appsvcs "github.com/mayesha-3/Ammo-Inventory-Management-System/services/order/application/services"
)

// PlaceOrderRequest is the request body for POST /orders.
type PlaceOrderRequest struct {
	Caliber  string `json:"caliber"  validate:"required,caliber" example:"9mm"`
	Quantity int    `json:"quantity" validate:"gte=1,lte=2147483647" example:"500"`
} // @name PlaceOrderRequest

// PlaceStockOrderRequest is the request body for POST /orders/stock.
type PlaceStockOrderRequest struct {
	InventoryItemID uuid.UUID `json:"inventory_item_id" validate:"required" example:"123e4567-e89b-12d3-a456-426614174000"`
	Quantity        int       `json:"quantity"          validate:"gte=1,lte=2147483647" example:"500"`
} // @name PlaceStockOrderRequest

// PostOrderHandler handles POST /orders and POST /orders/stock requests.
type PostOrderHandler struct {
	svc *appsvcs.Services
}

// NewPostOrderHandler returns a PostOrderHandler backed by the given services.
func NewPostOrderHandler(svc *appsvcs.Services) *PostOrderHandler {
	return &PostOrderHandler{svc: svc}
}

// Execute places a pending order for the signed-in user.
//
//	@Summary	Place order
//	@Tags		orders
//	@Security		SessionCookie
//	@Accept		json
//	@Produce	json
//	@Param		request	body		PlaceOrderRequest	true	"Order"
//	@Success	201		{object}	OrderResponse
//	@Failure	400		{object}	errhttp.ErrorResponse
//	@Failure	401		{object}	errhttp.ErrorResponse
//	@Failure	422		{object}	errhttp.ErrorResponse
//	@Router		/orders [post]
func (h *PostOrderHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := auth.IdentityFromCtx(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	req, ok := pkgvalidator.ValidateRequest[PlaceOrderRequest](w, r)
	if !ok {
		return
	}

	order, err := h.svc.Ledger.Place(r.Context(), id.UserID, req.Caliber, req.Quantity)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, toOrderResponse(order))
}

// ExecuteFromStock places a pending order against a specific inventory item.
//
//	@Summary		Place order from stock
//	@Description	Orders from one inventory item. The order takes the item's caliber.
//	@Tags			orders
//	@Security			SessionCookie
//	@Accept			json
//	@Produce		json
//	@Param			request	body		PlaceStockOrderRequest	true	"Order"
//	@Success		201		{object}	OrderResponse
//	@Failure		400		{object}	errhttp.ErrorResponse
//	@Failure		401		{object}	errhttp.ErrorResponse
//	@Failure		404		{object}	errhttp.ErrorResponse
//	@Failure		422		{object}	errhttp.ErrorResponse
//	@Router			/orders/stock [post]
func (h *PostOrderHandler) ExecuteFromStock(w http.ResponseWriter, r *http.Request) {
	id, err := auth.IdentityFromCtx(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	req, ok := pkgvalidator.ValidateRequest[PlaceStockOrderRequest](w, r)
	if !ok {
		return
	}

	order, err := h.svc.Ledger.PlaceFromStock(r.Context(), id.UserID, req.InventoryItemID, req.Quantity)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, toOrderResponse(order))
}
