package auth

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/errhttp"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/logger"
)

const (
	sessionName      = "ammo_session"
	sessionUserIDKey = "user_id"
	sessionRoleKey   = "role"
)

// RequireAuth is a chi middleware that enforces authentication via session cookies.
// It reads the session cookie, extracts the user ID and role, and injects the
// Identity into the request context. Returns 401 Unauthorized if the session is
// missing, invalid, or lacks a valid identity.
//
// After this middleware, handlers can safely call auth.IdentityFromCtx(r.Context()).
// user_id and role are also bound to the request's log context.
func RequireAuth(store sessions.Store, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := store.Get(r, sessionName)
			if err != nil {
				log.WarnContext(r.Context(), "invalid session cookie", "error", err)
				errhttp.WriteError(w, ErrNoIdentity)
				return
			}

			userIDStr, ok := session.Values[sessionUserIDKey].(string)
			if !ok || userIDStr == "" {
				log.WarnContext(r.Context(), "session missing user_id")
				errhttp.WriteError(w, ErrNoIdentity)
				return
			}

			userID, err := uuid.Parse(userIDStr)
			if err != nil {
				log.WarnContext(r.Context(), "invalid user_id in session", "user_id", userIDStr, "error", err)
				errhttp.WriteError(w, ErrNoIdentity)
				return
			}

			roleStr, _ := session.Values[sessionRoleKey].(string)
			role, err := ParseRole(roleStr)
			if err != nil {
				log.WarnContext(r.Context(), "invalid role in session", "user_id", userIDStr, "error", err)
				errhttp.WriteError(w, ErrNoIdentity)
				return
			}

			ctx := WithIdentity(r.Context(), Identity{UserID: userID, Role: role})
			ctx = logger.ContextWith(ctx,
				slog.String("user_id", userID.String()),
				slog.String("role", string(role)),
			)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole is a chi middleware that admits only identities holding one of
// roles. It must run after RequireAuth. Returns 403 Forbidden otherwise.
func RequireRole(roles ...Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := IdentityFromCtx(r.Context())
			if err != nil {
				errhttp.WriteError(w, err)
				return
			}
			if !id.HasRole(roles...) {
				errhttp.WriteError(w, ErrRoleNotPermitted)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
