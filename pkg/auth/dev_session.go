package auth

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/errhttp"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/errkind"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/httpx"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/logger"
	pkgvalidator "github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/validator"
)

// DevSessionRequest is the request body for POST /dev/session.
type DevSessionRequest struct {
	UserID uuid.UUID `json:"user_id" validate:"required"                        example:"7c9e6679-7425-40de-944b-e07fc1f90ae7"`
	Role   string    `json:"role"    validate:"required,oneof=user moderator admin" example:"admin"`
} // @name DevSessionRequest

// IdentityResponse echoes the identity bound to a session.
type IdentityResponse struct {
	UserID uuid.UUID `json:"user_id"`
	Role   string    `json:"role" example:"admin"`
} // @name IdentityResponse

// DevSessionHandler issues a session for any identity without checking
// credentials. Mount it in development only.
//
//	@Summary		Issue development session
//	@Description	Development only. Signs in as the given user and role.
//	@Tags			dev
//	@Accept			json
//	@Produce		json
//	@Param			request	body		DevSessionRequest	true	"Identity"
//	@Success		200		{object}	IdentityResponse
//	@Failure		400		{object}	errhttp.ErrorResponse
//	@Failure		422		{object}	errhttp.ErrorResponse
//	@Router			/dev/session [post]
func DevSessionHandler(store sessions.Store, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := pkgvalidator.ValidateRequest[DevSessionRequest](w, r)
		if !ok {
			return
		}
		role, err := ParseRole(req.Role)
		if err != nil {
			errhttp.WriteError(w, fmt.Errorf("%w: %w", errkind.ErrValidation, err))
			return
		}

		id := Identity{UserID: req.UserID, Role: role}
		if err := SaveIdentity(store, w, r, id); err != nil {
			log.ErrorContext(r.Context(), "issue dev session", "error", err)
			errhttp.WriteError(w, err)
			return
		}

		log.WarnContext(r.Context(), "development session issued", "user_id", id.UserID, "role", id.Role)
		httpx.JSON(w, http.StatusOK, IdentityResponse{UserID: id.UserID, Role: string(id.Role)})
	}
}

// DevSessionClearHandler expires the caller's session.
//
//	@Summary	End development session
//	@Tags		dev
//	@Success	204
//	@Router		/dev/session [delete]
func DevSessionClearHandler(store sessions.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := ClearIdentity(store, w, r); err != nil {
			errhttp.WriteError(w, err)
			return
		}
		httpx.NoContent(w)
	}
}
