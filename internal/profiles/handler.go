package profiles

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/quayside-pos/quayside-pos/internal/platform/httpx"
	"github.com/quayside-pos/quayside-pos/internal/shared"
)

// Handler wires the profile bootstrap endpoint.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers profile routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/onboarding/profile", h.Ensure)
}

// Ensure upserts the caller's profile and returns its onboarding state.
func (h *Handler) Ensure(w http.ResponseWriter, r *http.Request) {
	principal := shared.PrincipalFromContext(r.Context())
	if principal == nil {
		httpx.Fail(w, http.StatusUnauthorized, shared.CodeUnauthenticated, "invalid or expired token", nil)
		return
	}

	var req EnsureProfileRequest
	_ = httpx.DecodeJSON(r, &req) // empty body is fine; the name is optional

	profile, pending, err := h.service.Ensure(r.Context(), principal, req.FullName)
	if err != nil {
		h.logger.Error("ensure profile failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, EnsureProfileResponse{
		Profile:           toResponse(profile),
		OnboardingPending: pending,
	})
}
