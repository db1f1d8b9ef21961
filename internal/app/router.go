package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/quayside-pos/quayside-pos/internal/audit"
	"github.com/quayside-pos/quayside-pos/internal/invites"
	"github.com/quayside-pos/quayside-pos/internal/observability"
	"github.com/quayside-pos/quayside-pos/internal/platform/httpx"
	"github.com/quayside-pos/quayside-pos/internal/profiles"
	"github.com/quayside-pos/quayside-pos/internal/shared"
	"github.com/quayside-pos/quayside-pos/internal/tenants"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger          *slog.Logger
	Config          *Config
	AuthMiddleware  func(http.Handler) http.Handler
	TenantsHandler  *tenants.Handler
	InvitesHandler  *invites.Handler
	ProfilesHandler *profiles.Handler
	AuditHandler    *audit.Handler
	Metrics         *observability.Metrics
}

// NewRouter constructs the chi.Router with Quayside defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httpx.Fail(w, http.StatusMethodNotAllowed, shared.CodeMethodNotAllowed, "use POST", nil)
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(params.AuthMiddleware)
		params.TenantsHandler.MountRoutes(r)
		params.InvitesHandler.MountRoutes(r)
		params.ProfilesHandler.MountRoutes(r)
		params.AuditHandler.MountRoutes(r)
	})

	return r
}
