package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/csrf"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"booking-wizard/internal/config"
	gweb "booking-wizard/internal/grpcweb"
	"booking-wizard/internal/logging"
	"booking-wizard/internal/metrics"
	"booking-wizard/internal/middleware"
	"booking-wizard/internal/web"
)

const grpcWebPrefix = "/scheduling.v1.SchedulingService/"

func newRouter(cfg *config.Config, logger *logging.Logger, m *metrics.WizardMetrics, reg *prometheus.Registry,
	rl *middleware.RateLimiter, pages *web.Server, bridge *gweb.Bridge) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(logger, m))
	r.Use(chimw.Recoverer)

	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	// the bridge forwards to the grpc interceptors, which do their own rate limiting
	r.With(middleware.CORS(cfg.CORSAllowedOrigins)).Handle(grpcWebPrefix+"*", bridge.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimitHTTP(rl))
		if cfg.CSRFKey != "" {
			r.Use(csrfProtect(cfg))
		}
		pages.Routes(r)
	})
	return r
}

func csrfProtect(cfg *config.Config) func(http.Handler) http.Handler {
	protect := csrf.Protect([]byte(cfg.CSRFKey), csrf.Secure(cfg.SecureCookies), csrf.Path("/"))
	if cfg.SecureCookies {
		return protect
	}
	// without TLS the referer check has nothing to compare against
	return func(next http.Handler) http.Handler {
		h := protect(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h.ServeHTTP(w, csrf.PlaintextHTTPRequest(r))
		})
	}
}
