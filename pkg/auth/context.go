package auth

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/errkind"
)

// Role is the capability level of an authenticated user.
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// Staff roles may decide orders and manage inventory.
var StaffRoles = []Role{RoleAdmin, RoleModerator}

// ParseRole validates s as a known role.
func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleUser, RoleModerator, RoleAdmin:
		return r, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// Identity is the authenticated actor attached to a request.
type Identity struct {
	UserID uuid.UUID
	Role   Role
}

// HasRole reports whether the identity holds one of roles.
func (i Identity) HasRole(roles ...Role) bool {
	return slices.Contains(roles, i.Role)
}

// contextKey is an unexported type to prevent key collisions in context.
type contextKey string

const identityKey contextKey = "identity"

var (
	// ErrNoIdentity is returned when no Identity exists in the request context.
	ErrNoIdentity = errkind.New(errkind.ErrUnauthenticated, "authentication required")

	// ErrRoleNotPermitted is returned when the identity's role lacks a capability.
	ErrRoleNotPermitted = errkind.New(errkind.ErrForbidden, "role not permitted")
)

// IdentityFromCtx extracts the authenticated identity from the request context.
// Returns ErrNoIdentity if none is set (unauthenticated request).
func IdentityFromCtx(ctx context.Context) (Identity, error) {
	id, ok := ctx.Value(identityKey).(Identity)
	if !ok || id.UserID == uuid.Nil {
		return Identity{}, ErrNoIdentity
	}
	return id, nil
}

// WithIdentity returns a new context with the given identity attached.
// Used by authentication middleware after validating the session.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}
