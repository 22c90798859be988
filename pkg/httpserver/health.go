package httpserver

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"maps"
	"slices"

	"github.com/dmitrymomot/rulekit/pkg/logger"
)

// Check probes one dependency.
type Check func(context.Context) error

// HealthReport is the body written by Health.
type HealthReport struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Health answers 200 {"status":"ok"} when every check passes and 503 with the
// failing checks otherwise. Without checks it is a plain liveness probe.
func Health(log *slog.Logger, checks map[string]Check) http.HandlerFunc {
	if log == nil {
		log = logger.Nop()
	}
	names := slices.Sorted(maps.Keys(checks))

	return func(w http.ResponseWriter, r *http.Request) {
		report := HealthReport{Status: "ok"}
		status := http.StatusOK

		for _, name := range names {
			if report.Checks == nil {
				report.Checks = make(map[string]string, len(names))
			}
			if err := checks[name](r.Context()); err != nil {
				log.ErrorContext(r.Context(), "readiness check failed", slog.String("check", name), logger.Error(err))
				report.Checks[name] = err.Error()
				report.Status = "unavailable"
				status = http.StatusServiceUnavailable
				continue
			}
			report.Checks[name] = "ok"
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(report)
	}
}
