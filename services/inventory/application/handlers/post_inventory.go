package handlers

import (
	"net/http"

	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/errhttp"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/httpx"
	pkgvalidator "github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/validator"
	appsvcs "github.com/mayesha-3/Ammo-Inventory-Management-System/services/inventory/application/services"
)

// CreateInventoryItemRequest is the request body for POST /inventory.
type CreateInventoryItemRequest struct {
	Caliber  string `json:"caliber"  validate:"required,caliber" example:"9mm"`
	Quantity int    `json:"quantity" validate:"gte=1,lte=2147483647" example:"5000"`
} // @name CreateInventoryItemRequest

// PostInventoryHandler handles POST /inventory requests.
type PostInventoryHandler struct {
	svc *appsvcs.Services
}

// NewPostInventoryHandler returns a PostInventoryHandler backed by the given services.
func NewPostInventoryHandler(svc *appsvcs.Services) *PostInventoryHandler {
	return &PostInventoryHandler{svc: svc}
}

// Execute creates a new inventory item.
//
//	@Summary		Create inventory item
//	@Description	Adds a stock bin of one caliber. Requires admin or moderator.
//	@Tags			inventory
//	@Security			SessionCookie
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateInventoryItemRequest	true	"Inventory item"
//	@Success		201		{object}	InventoryItemResponse
//	@Failure		400		{object}	errhttp.ErrorResponse
//	@Failure		401		{object}	errhttp.ErrorResponse
//	@Failure		403		{object}	errhttp.ErrorResponse
//	@Failure		422		{object}	errhttp.ErrorResponse
//	@Router			/inventory [post]
func (h *PostInventoryHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CreateInventoryItemRequest](w, r)
	if !ok {
		return
	}

	item, err := h.svc.Inventory.Create(r.Context(), req.Caliber, req.Quantity)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, toResponse(h.svc.Inventory, item))
}
