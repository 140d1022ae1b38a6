package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/errhttp"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/httpx"
	pkgvalidator "github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/validator"
	appsvcs "github.com/mayesha-3/Ammo-Inventory-Management-System/services/order/application/services"
)

// ApproveOrderRequest is the request body for POST /orders/{id}/approve.
// Without inventory_item_id the order's own item is used, else the single
// item whose caliber matches the order.
type ApproveOrderRequest struct {
	InventoryItemID *uuid.UUID `json:"inventory_item_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	IssuedQuantity  int        `json:"issued_quantity"             validate:"gte=1,lte=2147483647" example:"500"`
} // @name ApproveOrderRequest

// DecideOrderHandler handles the staff-only order transitions.
type DecideOrderHandler struct {
	svc *appsvcs.Services
}

// NewDecideOrderHandler returns a DecideOrderHandler backed by the given services.
func NewDecideOrderHandler(svc *appsvcs.Services) *DecideOrderHandler {
	return &DecideOrderHandler{svc: svc}
}

// Approve issues rounds for a pending order and decrements the stock in one
// transaction.
//
//	@Summary	Approve order
//	@Tags		orders
//	@Security		SessionCookie
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string				true	"Order ID"
//	@Param		request	body		ApproveOrderRequest	true	"Issue"
//	@Success	200		{object}	ApprovalResponse
//	@Failure	400		{object}	errhttp.ErrorResponse
//	@Failure	401		{object}	errhttp.ErrorResponse
//	@Failure	403		{object}	errhttp.ErrorResponse
//	@Failure	404		{object}	errhttp.ErrorResponse
//	@Failure	409		{object}	errhttp.ErrorResponse	"invalid_transition, insufficient_stock or conflict"
//	@Failure	422		{object}	errhttp.ErrorResponse
//	@Router		/orders/{id}/approve [post]
func (h *DecideOrderHandler) Approve(w http.ResponseWriter, r *http.Request) {
	orderID, err := httpx.URLParamUUID(r, "id")
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	req, ok := pkgvalidator.ValidateRequest[ApproveOrderRequest](w, r)
	if !ok {
		return
	}

	res, err := h.svc.Approval.Approve(r.Context(), appsvcs.ApproveCommand{
		OrderID:        orderID,
		ItemID:         req.InventoryItemID,
		IssuedQuantity: req.IssuedQuantity,
	})
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, ApprovalResponse{
		Order:             toOrderResponse(res.Order),
		Issuance:          toIssuanceResponse(res.Issuance),
		RemainingQuantity: res.Item.Quantity,
	})
}

// Reject closes a pending order.
//
//	@Summary	Reject order
//	@Tags		orders
//	@Security		SessionCookie
//	@Produce	json
//	@Param		id	path		string	true	"Order ID"
//	@Success	200	{object}	OrderResponse
//	@Failure	401	{object}	errhttp.ErrorResponse
//	@Failure	403	{object}	errhttp.ErrorResponse
//	@Failure	404	{object}	errhttp.ErrorResponse
//	@Failure	409	{object}	errhttp.ErrorResponse
//	@Router		/orders/{id}/reject [post]
func (h *DecideOrderHandler) Reject(w http.ResponseWriter, r *http.Request) {
	orderID, err := httpx.URLParamUUID(r, "id")
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	order, err := h.svc.Ledger.Reject(r.Context(), orderID)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toOrderResponse(order))
}

// Complete marks an approved order as handed over.
//
//	@Summary	Complete order
//	@Tags		orders
//	@Security		SessionCookie
//	@Produce	json
//	@Param		id	path		string	true	"Order ID"
//	@Success	200	{object}	OrderResponse
//	@Failure	401	{object}	errhttp.ErrorResponse
//	@Failure	403	{object}	errhttp.ErrorResponse
//	@Failure	404	{object}	errhttp.ErrorResponse
//	@Failure	409	{object}	errhttp.ErrorResponse
//	@Router		/orders/{id}/complete [post]
func (h *DecideOrderHandler) Complete(w http.ResponseWriter, r *http.Request) {
	orderID, err := httpx.URLParamUUID(r, "id")
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	order, err := h.svc.Ledger.Complete(r.Context(), orderID)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toOrderResponse(order))
}
