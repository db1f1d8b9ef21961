package tenants

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/quayside-pos/quayside-pos/internal/platform/httpx"
	"github.com/quayside-pos/quayside-pos/internal/shared"
)

// Handler wires the tenant provisioning endpoint.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		validator: validator.New(),
	}
}

// MountRoutes registers tenant routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/onboarding/tenants", h.Provision)
}

// Provision creates a tenant for the calling principal.
func (h *Handler) Provision(w http.ResponseWriter, r *http.Request) {
	principal := shared.PrincipalFromContext(r.Context())
	if principal == nil {
		httpx.Fail(w, http.StatusUnauthorized, shared.CodeUnauthenticated, "invalid or expired token", nil)
		return
	}

	var req ProvisionTenantRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, shared.CodeValidationFailed, "malformed JSON body", nil)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		details := map[string]any{}
		if fieldErrs, ok := err.(validator.ValidationErrors); ok {
			for _, fieldErr := range fieldErrs {
				details[fieldErr.Field()] = fieldErr.Tag()
			}
		}
		httpx.Fail(w, http.StatusBadRequest, shared.CodeValidationFailed, "invalid request", details)
		return
	}

	result, err := h.service.Provision(r.Context(), principal, req)
	if err != nil {
		h.logger.Error("provision tenant failed",
			slog.String("slug", req.Slug),
			slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	h.logger.Info("tenant provisioned",
		slog.String("tenant_id", result.Tenant.ID.String()),
		slog.String("slug", result.Tenant.Slug))
	httpx.OK(w, result)
}
