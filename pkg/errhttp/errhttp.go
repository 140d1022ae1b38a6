// Package errhttp maps error kinds to HTTP status codes.
// Domain sentinels built with errkind.New map through their kind, so new
// sentinels need no change here.
package errhttp

import (
	"errors"
	"net/http"
	"sync/atomic"

	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/errkind"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/httpx"
)

// Machine-readable codes returned in the "code" field.
const (
	CodeBadRequest        = "bad_request"
	CodePayloadTooLarge   = "payload_too_large"
	CodeValidation        = "validation_error"
	CodeNotFound          = "not_found"
	CodeInvalidTransition = "invalid_transition"
	CodeInsufficientStock = "insufficient_stock"
	CodeConflict          = "conflict"
	CodeForbidden         = "forbidden"
	CodeUnauthenticated   = "unauthenticated"
	CodeInternal          = "internal_error"
)

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"insufficient stock: requested 600, available 500"`
	Code  string `json:"code"  example:"insufficient_stock"`
} // @name ErrorResponse

var production atomic.Bool

// SetProduction hides 5xx error text from clients when v is true.
func SetProduction(v bool) {
	production.Store(v)
}

// WriteError maps err to an HTTP status code and writes a JSON error response.
// Uses errors.Is() so wrapped sentinel errors are matched correctly.
// Defaults to 500 Internal Server Error for unrecognized errors.
func WriteError(w http.ResponseWriter, err error) {
	status, code := Classify(err)
	httpx.JSON(w, status, ErrorResponse{
		Error: httpx.SafeError(err, status, production.Load()),
		Code:  code,
	})
}

// Classify returns the HTTP status and code for err.
func Classify(err error) (int, string) {
	switch {
	case errors.Is(err, errkind.ErrValidation):
		return http.StatusUnprocessableEntity, CodeValidation // 422
	case errors.Is(err, errkind.ErrNotFound):
		return http.StatusNotFound, CodeNotFound // 404
	case errors.Is(err, errkind.ErrInvalidTransition):
		return http.StatusConflict, CodeInvalidTransition // 409
	case errors.Is(err, errkind.ErrInsufficientStock):
		return http.StatusConflict, CodeInsufficientStock // 409
	case errors.Is(err, errkind.ErrConflict):
		return http.StatusConflict, CodeConflict // 409, retryable
	case errors.Is(err, errkind.ErrForbidden):
		return http.StatusForbidden, CodeForbidden // 403
	case errors.Is(err, errkind.ErrUnauthenticated):
		return http.StatusUnauthorized, CodeUnauthenticated // 401
	default:
		return http.StatusInternalServerError, CodeInternal // 500
	}
}
