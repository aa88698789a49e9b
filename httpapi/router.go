package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"rentflow/application"
	"rentflow/auth"
	"rentflow/catalog"
)

// Handler is the thin HTTP layer. It delegates to domain services and keeps
// transport concerns (decoding, status codes, auth context) out of them.
type Handler struct {
	auth    *auth.Service
	apps    *application.Service
	catalog *catalog.Catalog
	logger  *zap.Logger
	metrics *Metrics
}

// NewHandler wires the HTTP layer dependencies.
func NewHandler(authSvc *auth.Service, appSvc *application.Service, cat *catalog.Catalog, logger *zap.Logger, metrics *Metrics) *Handler {
	return &Handler{
		auth:    authSvc,
		apps:    appSvc,
		catalog: cat,
		logger:  logger,
		metrics: metrics,
	}
}

// NewRouter mounts all endpoints.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(h.metrics.Middleware)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", h.handleRegister)
		r.Post("/auth/login", h.handleLogin)

		r.Get("/properties", h.handleListProperties)
		r.Get("/properties/cities", h.handleListCities)

		r.Group(func(r chi.Router) {
			r.Use(h.requireAuth)

			r.Post("/applications", h.handleSubmitApplication)
			r.Get("/applications/mine", h.handleMyApplications)

			r.Group(func(r chi.Router) {
				r.Use(h.requireOwner)

				r.Get("/admin/dashboard", h.handleDashboard)
				r.Patch("/admin/applications/{id}/status", h.handleUpdateStatus)
			})
		})
	})

	return r
}
