package handlers

import (
	"fmt"
	"net/http"

	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/auth"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/errhttp"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/errkind"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/httpx"
	appsvcs "github.com/mayesha-3/Ammo-Inventory-Management-System/services/order/application/services"
	orderdomain "github.com/mayesha-3/Ammo-Inventory-Management-System/services/order/domain"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/services/order/domain/models"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/services/order/domain/repositories"
)

// GetOrdersHandler handles the order read endpoints.
type GetOrdersHandler struct {
	svc *appsvcs.Services
}

// NewGetOrdersHandler returns a GetOrdersHandler backed by the given services.
func NewGetOrdersHandler(svc *appsvcs.Services) *GetOrdersHandler {
	return &GetOrdersHandler{svc: svc}
}

// Mine lists the signed-in user's orders, newest first.
//
//	@Summary	List my orders
//	@Tags		orders
//	@Security		SessionCookie
//	@Produce	json
//	@Param		page	query		int	false	"Page number (1-based)"
//	@Param		limit	query		int	false	"Page size (max 100)"
//	@Success	200		{object}	OrderListResponse
//	@Failure	401		{object}	errhttp.ErrorResponse
//	@Failure	422		{object}	errhttp.ErrorResponse
//	@Router		/orders/me [get]
func (h *GetOrdersHandler) Mine(w http.ResponseWriter, r *http.Request) {
	id, err := auth.IdentityFromCtx(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	p, err := parsePagination(r)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	orders, total, err := h.svc.Ledger.ListForUser(r.Context(), id.UserID, listOpts(p))
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, httpx.NewPage(toOrderResponses(orders), p, total))
}

// All lists every order, newest first. Requires admin or moderator.
//
//	@Summary	List all orders
//	@Tags		orders
//	@Security		SessionCookie
//	@Produce	json
//	@Param		status	query		string	false	"Filter by status"	Enums(pending, approved, rejected, completed)
//	@Param		page	query		int		false	"Page number (1-based)"
//	@Param		limit	query		int		false	"Page size (max 100)"
//	@Success	200		{object}	OrderListResponse
//	@Failure	401		{object}	errhttp.ErrorResponse
//	@Failure	403		{object}	errhttp.ErrorResponse
//	@Failure	422		{object}	errhttp.ErrorResponse
//	@Router		/orders [get]
func (h *GetOrdersHandler) All(w http.ResponseWriter, r *http.Request) {
	p, err := parsePagination(r)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	opts := listOpts(p)

	if raw := r.URL.Query().Get("status"); raw != "" {
		status, err := models.ParseStatus(raw)
		if err != nil {
			errhttp.WriteError(w, fmt.Errorf("%w: %w", orderdomain.ErrInvalidStatus, err))
			return
		}
		opts.Status = &status
	}

	orders, total, err := h.svc.Ledger.ListAll(r.Context(), opts)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, httpx.NewPage(toOrderResponses(orders), p, total))
}

// One returns a single order. Users may only read their own orders.
//
//	@Summary	Get order
//	@Tags		orders
//	@Security		SessionCookie
//	@Produce	json
//	@Param		id	path		string	true	"Order ID"
//	@Success	200	{object}	OrderResponse
//	@Failure	401	{object}	errhttp.ErrorResponse
//	@Failure	403	{object}	errhttp.ErrorResponse
//	@Failure	404	{object}	errhttp.ErrorResponse
//	@Failure	422	{object}	errhttp.ErrorResponse
//	@Router		/orders/{id} [get]
func (h *GetOrdersHandler) One(w http.ResponseWriter, r *http.Request) {
	identity, err := auth.IdentityFromCtx(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	orderID, err := httpx.URLParamUUID(r, "id")
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	order, err := h.svc.Ledger.Get(r.Context(), orderID)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	if !order.OwnedBy(identity.UserID) && !identity.HasRole(auth.StaffRoles...) {
		errhttp.WriteError(w, orderdomain.ErrNotOrderOwner)
		return
	}

	httpx.JSON(w, http.StatusOK, toOrderResponse(order))
}

// MyIssuances lists rounds issued to the signed-in user, newest first.
//
//	@Summary	List my issuances
//	@Tags		issuances
//	@Security		SessionCookie
//	@Produce	json
//	@Param		page	query		int	false	"Page number (1-based)"
//	@Param		limit	query		int	false	"Page size (max 100)"
//	@Success	200		{object}	IssuanceListResponse
//	@Failure	401		{object}	errhttp.ErrorResponse
//	@Failure	422		{object}	errhttp.ErrorResponse
//	@Router		/issuances/me [get]
func (h *GetOrdersHandler) MyIssuances(w http.ResponseWriter, r *http.Request) {
	id, err := auth.IdentityFromCtx(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	p, err := parsePagination(r)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	issuances, total, err := h.svc.Ledger.ListIssuancesForUser(r.Context(), id.UserID, listOpts(p))
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	data := make([]IssuanceResponse, len(issuances))
	for i, iss := range issuances {
		data[i] = toIssuanceResponse(iss)
	}
	httpx.JSON(w, http.StatusOK, httpx.NewPage(data, p, total))
}

func parsePagination(r *http.Request) (httpx.Pagination, error) {
	p, err := httpx.ParsePagination(r)
	if err != nil {
		return p, fmt.Errorf("%w: %w", errkind.ErrValidation, err)
	}
	return p, nil
}

func listOpts(p httpx.Pagination) repositories.ListOpts {
	return repositories.ListOpts{Limit: p.Limit, Offset: p.Offset()}
}
