package errhttp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/errkind"
)

var (
	errThingMissing = errkind.New(errkind.ErrNotFound, "thing not found")
	errBadInput     = errkind.New(errkind.ErrValidation, "bad input")
	errLowStock     = errkind.New(errkind.ErrInsufficientStock, "insufficient stock")
)

func TestWriteError_StatusCodes(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", errThingMissing, http.StatusNotFound, CodeNotFound},
		{"wrapped not found", fmt.Errorf("get thing: %w", errThingMissing), http.StatusNotFound, CodeNotFound},
		{"validation", fmt.Errorf("%w: too long", errBadInput), http.StatusUnprocessableEntity, CodeValidation},
		{"invalid transition", errkind.ErrInvalidTransition, http.StatusConflict, CodeInvalidTransition},
		{"insufficient stock", errLowStock, http.StatusConflict, CodeInsufficientStock},
		{"conflict", fmt.Errorf("tx: %w", errkind.ErrConflict), http.StatusConflict, CodeConflict},
		{"forbidden", errkind.ErrForbidden, http.StatusForbidden, CodeForbidden},
		{"unauthenticated", errkind.ErrUnauthenticated, http.StatusUnauthorized, CodeUnauthenticated},
		{"unknown error", errors.New("something unexpected"), http.StatusInternalServerError, CodeInternal},
		{"generic wrapped error", fmt.Errorf("context: %w", errors.New("db down")), http.StatusInternalServerError, CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteError(w, tt.err)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			var body ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("response body is not valid JSON: %v", err)
			}
			if body.Code != tt.wantCode {
				t.Fatalf("expected code %q, got %q", tt.wantCode, body.Code)
			}
		})
	}
}

func TestWriteError_JSONBody(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, fmt.Errorf("approve: %w", errLowStock))

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response body is not valid JSON: %v", err)
	}
	if body["error"] != "approve: insufficient stock" {
		t.Fatalf("unexpected error message: %q", body["error"])
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Fatalf("unexpected Content-Type: %q", ct)
	}
}

func TestWriteError_HidesInternalErrorsInProduction(t *testing.T) {
	SetProduction(true)
	defer SetProduction(false)

	w := httptest.NewRecorder()
	WriteError(w, errors.New("pq: password authentication failed"))

	var body ErrorResponse
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if body.Error != http.StatusText(http.StatusInternalServerError) {
		t.Fatalf("expected generic message, got %q", body.Error)
	}

	w = httptest.NewRecorder()
	WriteError(w, errThingMissing)
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if body.Error != "thing not found" {
		t.Fatalf("4xx messages must stay visible, got %q", body.Error)
	}
}
