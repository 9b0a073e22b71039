// Package httptransport assembles the HTTP surface: middleware chain, the
// bot-facing infraction API, the authenticated jam signup routes, and the
// operational endpoints.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"warden/internal/platform/metrics"
	"warden/internal/platform/middleware"
	"warden/internal/transport/http/shared"
)

// Registrar is anything that attaches routes to the router. Both domain
// handlers implement it.
type Registrar interface {
	Register(r chi.Router)
}

// Dependencies carries everything the router needs. Health is optional; when
// nil the health endpoint only reports that the process is up.
type Dependencies struct {
	Logger         *slog.Logger
	Metrics        *metrics.Metrics
	Infractions    Registrar
	Jams           Registrar
	TokenValidator middleware.TokenValidator
	Health         func(ctx context.Context) error
}

const requestTimeout = 30 * time.Second

// NewRouter wires all endpoints behind the shared middleware chain. The
// infraction API trusts its network boundary (it is only reachable by the
// bot); the jam routes authenticate end users.
func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.Latency(deps.Metrics))
	r.Use(middleware.Timeout(requestTimeout))

	deps.Infractions.Register(r)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(deps.TokenValidator, deps.Logger))
		deps.Jams.Register(r)
	})

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", handleHealth(deps.Health))
	return r
}

func handleHealth(check func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			if err := check(r.Context()); err != nil {
				shared.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
					"status": "unhealthy",
					"error":  err.Error(),
				})
				return
			}
		}
		shared.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
