package httpx_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/httpx"
)

type stubChecker struct{ err error }

func (s *stubChecker) Ping(_ context.Context) error { return s.err }

type slowChecker struct{}

func (slowChecker) Ping(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}

func hit(t *testing.T, h http.Handler) (int, httpx.HealthResponse) {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", http.NoBody))
	var resp httpx.HealthResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return rr.Code, resp
}

func TestHealthHandler(t *testing.T) {
	down := errors.New("conn refused")
	tests := []struct {
		name       string
		db, redis  error
		bus        error
		wantCode   int
		wantStatus string
		wantChecks map[string]string
	}{
		{"all healthy", nil, nil, nil, http.StatusOK, "ok",
			map[string]string{"database": "ok", "redis": "ok", "event_bus": "ok"}},
		{"database down", down, nil, nil, http.StatusServiceUnavailable, "degraded",
			map[string]string{"database": "unreachable", "redis": "ok", "event_bus": "ok"}},
		{"redis down", nil, down, nil, http.StatusServiceUnavailable, "degraded",
			map[string]string{"database": "ok", "redis": "unreachable", "event_bus": "ok"}},
		{"all down", down, down, down, http.StatusServiceUnavailable, "degraded",
			map[string]string{"database": "unreachable", "redis": "unreachable", "event_bus": "unreachable"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := httpx.HealthHandler("ammo-inventory", time.Second,
				httpx.HealthCheck{Name: "database", Checker: &stubChecker{err: tt.db}},
				httpx.HealthCheck{Name: "redis", Checker: &stubChecker{err: tt.redis}},
				httpx.HealthCheck{Name: "event_bus", Checker: &stubChecker{err: tt.bus}},
			)
			code, resp := hit(t, h)
			if code != tt.wantCode || resp.Status != tt.wantStatus {
				t.Fatalf("got %d %q, want %d %q", code, resp.Status, tt.wantCode, tt.wantStatus)
			}
			for name, want := range tt.wantChecks {
				if resp.Checks[name] != want {
					t.Errorf("%s: got %q, want %q", name, resp.Checks[name], want)
				}
			}
			if resp.Service != "ammo-inventory" {
				t.Errorf("service: got %q", resp.Service)
			}
		})
	}
}

func TestHealthHandler_TimeoutMarksUnreachable(t *testing.T) {
	h := httpx.HealthHandler("ammo-inventory", 20*time.Millisecond,
		httpx.HealthCheck{Name: "database", Checker: slowChecker{}},
	)
	code, resp := hit(t, h)
	if code != http.StatusServiceUnavailable || resp.Checks["database"] != "unreachable" {
		t.Fatalf("expected slow dependency to be unreachable, got %d %+v", code, resp)
	}
}

func TestHealthHandler_SkipsNilChecker(t *testing.T) {
	h := httpx.HealthHandler("worker", time.Second, httpx.HealthCheck{Name: "redis"})
	code, resp := hit(t, h)
	if code != http.StatusOK || len(resp.Checks) != 0 {
		t.Fatalf("expected ok with no checks, got %d %+v", code, resp)
	}
}

func TestLiveHandler(t *testing.T) {
	code, resp := hit(t, httpx.LiveHandler("ammo-inventory"))
	if code != http.StatusOK || resp.Status != "ok" {
		t.Fatalf("got %d %+v", code, resp)
	}
}
