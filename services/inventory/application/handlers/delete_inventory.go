package handlers

import (
	"net/http"

	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/errhttp"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/httpx"
	appsvcs "github.com/mayesha-3/Ammo-Inventory-Management-System/services/inventory/application/services"
)

// DeleteInventoryHandler handles DELETE /inventory/{id} requests.
type DeleteInventoryHandler struct {
	svc *appsvcs.Services
}

// NewDeleteInventoryHandler returns a DeleteInventoryHandler backed by the given services.
func NewDeleteInventoryHandler(svc *appsvcs.Services) *DeleteInventoryHandler {
	return &DeleteInventoryHandler{svc: svc}
}

// Execute removes an inventory item. Orders that referenced it keep their history.
//
//	@Summary	Delete inventory item
//	@Tags		inventory
//	@Security		SessionCookie
//	@Param		id	path	string	true	"Inventory item ID"
//	@Success	204
//	@Failure	401	{object}	errhttp.ErrorResponse
//	@Failure	403	{object}	errhttp.ErrorResponse
//	@Failure	404	{object}	errhttp.ErrorResponse
//	@Router		/inventory/{id} [delete]
func (h *DeleteInventoryHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.URLParamUUID(r, "id")
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	if err := h.svc.Inventory.Delete(r.Context(), id); err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.NoContent(w)
}
