package httpx_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/errkind"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/httpx"
)

func withParam(name, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(name, value)
	r := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestURLParamUUID(t *testing.T) {
	want := uuid.New()
	got, err := httpx.URLParamUUID(withParam("id", want.String()), "id")
	if err != nil || got != want {
		t.Fatalf("expected %v, got %v (%v)", want, got, err)
	}

	_, err = httpx.URLParamUUID(withParam("id", "42"), "id")
	if !errors.Is(err, errkind.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
