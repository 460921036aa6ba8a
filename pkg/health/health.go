// Package health serves liveness and readiness probes. Readiness
// distinguishes critical dependencies (the catalog cannot serve without them)
// from non-critical ones (degraded but still serving), so losing the cache or
// the event broker does not pull an instance out of rotation.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"
)

// checkTimeout bounds each readiness pass so a hung dependency cannot stall
// the probe endpoint.
const checkTimeout = 5 * time.Second

// Check probes one dependency. A nil return means the dependency is usable.
type Check func(ctx context.Context) error

// Status is the aggregate or per-dependency health state.
type Status string

const (
	StatusUp       Status = "up"
	StatusDegraded Status = "degraded"
	StatusDown     Status = "down"
)

// CheckResult reports one dependency in the readiness response.
type CheckResult struct {
	Status   Status `json:"status"`
	Critical bool   `json:"critical"`
	Error    string `json:"error,omitempty"`
}

// Response is the probe response body.
type Response struct {
	Status    Status                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Checks    map[string]CheckResult `json:"checks,omitempty"`
}

type registeredCheck struct {
	check    Check
	critical bool
}

// Handler serves the liveness and readiness endpoints. Checks are registered
// during wiring, before the server starts; registration is still locked so a
// late Register cannot race a probe.
type Handler struct {
	mu     sync.RWMutex
	checks map[string]registeredCheck
}

// NewHandler creates an empty health handler.
func NewHandler() *Handler {
	return &Handler{checks: make(map[string]registeredCheck)}
}

// Register adds a dependency check. Unqualified registration is critical:
// most dependencies should keep an instance out of rotation when down.
func (h *Handler) Register(name string, check Check) {
	h.RegisterCritical(name, check)
}

// RegisterCritical adds a check whose failure makes the instance not ready.
func (h *Handler) RegisterCritical(name string, check Check) {
	h.add(name, check, true)
}

// RegisterNonCritical adds a check whose failure only degrades the instance.
func (h *Handler) RegisterNonCritical(name string, check Check) {
	h.add(name, check, false)
}

func (h *Handler) add(name string, check Check, critical bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checks[name] = registeredCheck{check: check, critical: critical}
}

// LivenessHandler reports whether the process is running. It never consults
// dependencies; a live-but-not-ready instance must not be restarted.
func (h *Handler) LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeResponse(w, http.StatusOK, Response{
			Status:    StatusUp,
			Timestamp: time.Now().UTC(),
		})
	}
}

// ReadinessHandler runs every registered check. A failed critical check
// yields 503 and status "down"; failures limited to non-critical checks
// yield 200 with status "degraded".
func (h *Handler) ReadinessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
		defer cancel()

		h.mu.RLock()
		checks := make(map[string]registeredCheck, len(h.checks))
		for name, rc := range h.checks {
			checks[name] = rc
		}
		h.mu.RUnlock()

		results := make(map[string]CheckResult, len(checks))
		overall := StatusUp
		for name, rc := range checks {
			result := CheckResult{Status: StatusUp, Critical: rc.critical}
			if err := rc.check(ctx); err != nil {
				result.Status = StatusDown
				result.Error = err.Error()
				if rc.critical {
					overall = StatusDown
				} else if overall == StatusUp {
					overall = StatusDegraded
				}
			}
			results[name] = result
		}

		code := http.StatusOK
		if overall == StatusDown {
			code = http.StatusServiceUnavailable
		}
		writeResponse(w, code, Response{
			Status:    overall,
			Timestamp: time.Now().UTC(),
			Checks:    results,
		})
	}
}

func writeResponse(w http.ResponseWriter, code int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(resp)
}
