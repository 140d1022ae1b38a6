package httpx

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/errkind"
)

// ErrInvalidID indicates a malformed UUID path parameter.
var ErrInvalidID = errkind.New(errkind.ErrValidation, "invalid id")

// URLParamUUID parses the chi URL parameter name as a UUID.
func URLParamUUID(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s %q", ErrInvalidID, name, raw)
	}
	return id, nil
}
