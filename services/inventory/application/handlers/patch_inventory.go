package handlers

import (
	"net/http"

	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/errhttp"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/httpx"
	pkgvalidator "github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/validator"
	appsvcs "github.com/mayesha-3/Ammo-Inventory-Management-System/services/inventory/application/services"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/services/inventory/domain/models"
)

// UpdateInventoryItemRequest is the request body for PATCH /inventory/{id}.
// Omitted fields are left unchanged; at least one must be present.
type UpdateInventoryItemRequest struct {
	Caliber  *string `json:"caliber,omitempty"  validate:"omitnil,caliber" example:".45 ACP"`
	Quantity *int    `json:"quantity,omitempty" validate:"omitnil,gte=0,lte=2147483647" example:"3000"`
} // @name UpdateInventoryItemRequest

// PatchInventoryHandler handles PATCH /inventory/{id} requests.
type PatchInventoryHandler struct {
	svc *appsvcs.Services
}

// NewPatchInventoryHandler returns a PatchInventoryHandler backed by the given services.
func NewPatchInventoryHandler(svc *appsvcs.Services) *PatchInventoryHandler {
	return &PatchInventoryHandler{svc: svc}
}

// Execute partially updates an inventory item.
//
//	@Summary		Update inventory item
//	@Description	Sets caliber and/or quantity. Quantity may be zero but never negative.
//	@Tags			inventory
//	@Security			SessionCookie
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Inventory item ID"
//	@Param			request	body		UpdateInventoryItemRequest	true	"Fields to change"
//	@Success		200		{object}	InventoryItemResponse
//	@Failure		400		{object}	errhttp.ErrorResponse
//	@Failure		401		{object}	errhttp.ErrorResponse
//	@Failure		403		{object}	errhttp.ErrorResponse
//	@Failure		404		{object}	errhttp.ErrorResponse
//	@Failure		422		{object}	errhttp.ErrorResponse
//	@Router			/inventory/{id} [patch]
func (h *PatchInventoryHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.URLParamUUID(r, "id")
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	req, ok := pkgvalidator.ValidateRequest[UpdateInventoryItemRequest](w, r)
	if !ok {
		return
	}

	item, err := h.svc.Inventory.Update(r.Context(), id, models.ItemPatch{
		Caliber:  req.Caliber,
		Quantity: req.Quantity,
	})
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toResponse(h.svc.Inventory, item))
}
