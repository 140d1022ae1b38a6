package httpx

import (
	"context"
	"net/http"
	"sync"
	"time"
)

// HealthChecker is satisfied by any dependency that can be pinged
// (*database.Database, *cache.RedisClient, *events.EventBus).
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// HealthCheck names one dependency checked by HealthHandler.
type HealthCheck struct {
	Name    string
	Checker HealthChecker
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  string            `json:"status"  example:"ok"`
	Service string            `json:"service" example:"ammo-inventory"`
	Checks  map[string]string `json:"checks"`
} // @name HealthResponse

const (
	healthOK          = "ok"
	healthDegraded    = "degraded"
	healthUnreachable = "unreachable"
)

// HealthHandler runs every check concurrently, each bounded by timeout, and
// answers 503 when any of them fails. A nil Checker is skipped.
func HealthHandler(service string, timeout time.Duration, checks ...HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		resp := HealthResponse{Status: healthOK, Service: service, Checks: make(map[string]string, len(checks))}

		var (
			mu sync.Mutex
			wg sync.WaitGroup
		)
		for _, c := range checks {
			if c.Checker == nil {
				continue
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				state := healthOK
				if err := c.Checker.Ping(ctx); err != nil {
					state = healthUnreachable
				}
				mu.Lock()
				resp.Checks[c.Name] = state
				if state != healthOK {
					resp.Status = healthDegraded
				}
				mu.Unlock()
			}()
		}
		wg.Wait()

		status := http.StatusOK
		if resp.Status != healthOK {
			status = http.StatusServiceUnavailable
		}
		JSON(w, status, resp)
	}
}

// LiveHandler reports that the process is serving, without touching dependencies.
func LiveHandler(service string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		JSON(w, http.StatusOK, HealthResponse{Status: healthOK, Service: service, Checks: map[string]string{}})
	}
}
