// Package httpapi assembles the portal's HTTP surface: public endpoints,
// session-authenticated applicant endpoints and token-gated admin endpoints.
package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"passportal/internal/platform/metrics"
	"passportal/internal/platform/middleware"
	"passportal/pkg/platform/httputil"
)

// requestTimeout bounds every API request.
const requestTimeout = 30 * time.Second

// Registrar mounts a group of routes.
type Registrar interface {
	Register(r chi.Router)
}

// AdminRegistrar mounts back-office routes.
type AdminRegistrar interface {
	RegisterAdmin(r chi.Router)
}

// Deps carries everything the router needs.
type Deps struct {
	Logger         *slog.Logger
	Metrics        *metrics.Metrics
	JWTValidator   middleware.JWTValidator
	AdminTokenHash string

	Public    []Registrar      // login, tracking, registry lookups, uploads
	Session   []Registrar      // wizard, applications, notifications
	Admin     []AdminRegistrar // back-office workflow
	Healthers map[string]func() error
}

// NewRouter wires the middleware chain and all endpoint groups.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(middleware.ClientMetadata)
	r.Use(middleware.Device)
	r.Use(middleware.Tracing)
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.Latency(deps.Metrics))
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.ContentTypeJSON)

	r.Get("/healthz", healthHandler(deps.Healthers))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		for _, reg := range deps.Public {
			reg.Register(r)
		}
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(deps.JWTValidator, deps.Logger))
		for _, reg := range deps.Session {
			reg.Register(r)
		}
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdminToken(deps.AdminTokenHash, deps.Logger))
		for _, reg := range deps.Admin {
			reg.RegisterAdmin(r)
		}
	})

	return r
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func healthHandler(healthers map[string]func() error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := healthResponse{Status: "ok"}
		status := http.StatusOK
		if len(healthers) > 0 {
			resp.Checks = make(map[string]string, len(healthers))
			for name, check := range healthers {
				if err := check(); err != nil {
					resp.Checks[name] = err.Error()
					resp.Status = "degraded"
					status = http.StatusServiceUnavailable
					continue
				}
				resp.Checks[name] = "ok"
			}
		}
		httputil.WriteJSON(w, status, resp)
	}
}
