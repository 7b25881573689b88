package app

import (
	"net/http"

	"github.com/Black-And-White-Club/chainchaser/app/shared/attr"
	"github.com/Black-And-White-Club/chainchaser/app/shared/httpx"
	"github.com/Black-And-White-Club/chainchaser/app/shared/observability"
	"github.com/Black-And-White-Club/chainchaser/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/uptrace/bun"
	"golang.org/x/time/rate"
)

// newRouter builds the root router with the cross-cutting middleware and the
// operational endpoints. Modules mount their routes on it.
func newRouter(cfg *config.Config, obs observability.Observability, db *bun.DB) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(httpx.CorrelationMiddleware)
	r.Use(httpx.AccessLogMiddleware(obs.Logger, obs.Domain))
	r.Use(httpx.CORSMiddleware(cfg.HTTP.AllowedOrigins))
	if cfg.HTTP.RequestsPerSecond > 0 {
		limiter := httpx.NewIPRateLimiter(rate.Limit(cfg.HTTP.RequestsPerSecond), cfg.HTTP.Burst)
		r.Use(httpx.RateLimitMiddleware(limiter))
	}

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if db != nil {
			if err := db.PingContext(req.Context()); err != nil {
				obs.Logger.WarnContext(req.Context(), "Health check failed", attr.Error(err))
				httpx.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	if obs.Registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(obs.Registry, promhttp.HandlerOpts{}))
	}

	return r
}
