package handlers

import (
	"fmt"
	"net/http"

	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/errhttp"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/errkind"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/httpx"
	appsvcs "github.com/mayesha-3/Ammo-Inventory-Management-System/services/inventory/application/services"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/services/inventory/domain/repositories"
)

// ListInventoryHandler handles GET /inventory requests.
type ListInventoryHandler struct {
	svc *appsvcs.Services
}

// NewListInventoryHandler returns a ListInventoryHandler backed by the given services.
func NewListInventoryHandler(svc *appsvcs.Services) *ListInventoryHandler {
	return &ListInventoryHandler{svc: svc}
}

// Execute lists inventory items in insertion order. With ?caliber= it returns
// every item of that caliber instead of a page.
//
//	@Summary		List inventory
//	@Tags			inventory
//	@Security			SessionCookie
//	@Produce		json
//	@Param			page	query		int		false	"Page number (1-based)"
//	@Param			limit	query		int		false	"Page size (max 100)"
//	@Param			caliber	query		string	false	"Filter by caliber, case-insensitive"
//	@Success		200		{object}	InventoryListResponse
//	@Failure		401		{object}	errhttp.ErrorResponse
//	@Failure		422		{object}	errhttp.ErrorResponse
//	@Router			/inventory [get]
func (h *ListInventoryHandler) Execute(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if caliber := r.URL.Query().Get("caliber"); caliber != "" {
		items, err := h.svc.Inventory.FindByCaliber(ctx, caliber)
		if err != nil {
			errhttp.WriteError(w, err)
			return
		}
		p := httpx.Pagination{Page: 1, Limit: len(items)}
		httpx.JSON(w, http.StatusOK, httpx.NewPage(toResponses(h.svc.Inventory, items), p, len(items)))
		return
	}

	p, err := httpx.ParsePagination(r)
	if err != nil {
		errhttp.WriteError(w, fmt.Errorf("%w: %w", errkind.ErrValidation, err))
		return
	}

	items, total, err := h.svc.Inventory.List(ctx, repositories.QueryOpts{Limit: p.Limit, Offset: p.Offset()})
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, httpx.NewPage(toResponses(h.svc.Inventory, items), p, total))
}

// GetInventoryHandler handles GET /inventory/{id} requests.
type GetInventoryHandler struct {
	svc *appsvcs.Services
}

// NewGetInventoryHandler returns a GetInventoryHandler backed by the given services.
func NewGetInventoryHandler(svc *appsvcs.Services) *GetInventoryHandler {
	return &GetInventoryHandler{svc: svc}
}

// Execute returns one inventory item.
//
//	@Summary	Get inventory item
//	@Tags		inventory
//	@Security		SessionCookie
//	@Produce	json
//	@Param		id	path		string	true	"Inventory item ID"
//	@Success	200	{object}	InventoryItemResponse
//	@Failure	401	{object}	errhttp.ErrorResponse
//	@Failure	404	{object}	errhttp.ErrorResponse
//	@Failure	422	{object}	errhttp.ErrorResponse
//	@Router		/inventory/{id} [get]
func (h *GetInventoryHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.URLParamUUID(r, "id")
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	item, err := h.svc.Inventory.Get(r.Context(), id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toResponse(h.svc.Inventory, item))
}

// LowStockHandler handles GET /inventory/low-stock requests.
type LowStockHandler struct {
	svc *appsvcs.Services
}

// NewLowStockHandler returns a LowStockHandler backed by the given services.
func NewLowStockHandler(svc *appsvcs.Services) *LowStockHandler {
	return &LowStockHandler{svc: svc}
}

// Execute lists items at or below the low-stock threshold.
//
//	@Summary	List low-stock items
//	@Tags		inventory
//	@Security		SessionCookie
//	@Produce	json
//	@Success	200	{array}		InventoryItemResponse
//	@Failure	401	{object}	errhttp.ErrorResponse
//	@Failure	403	{object}	errhttp.ErrorResponse
//	@Router		/inventory/low-stock [get]
func (h *LowStockHandler) Execute(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.Inventory.LowStock(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toResponses(h.svc.Inventory, items))
}
