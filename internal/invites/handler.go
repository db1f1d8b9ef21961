package invites

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/quayside-pos/quayside-pos/internal/platform/httpx"
	"github.com/quayside-pos/quayside-pos/internal/shared"
)

// Handler wires the invitation endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers invitation routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/invites", h.Create)
	r.Post("/invites/accept", h.Accept)
}

// Create issues a new invitation for the caller's tenant.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	principal := shared.PrincipalFromContext(r.Context())
	if principal == nil {
		httpx.Fail(w, http.StatusUnauthorized, shared.CodeUnauthenticated, "invalid or expired token", nil)
		return
	}

	var req CreateInvitationRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, shared.CodeValidationFailed, "malformed JSON body", nil)
		return
	}

	inv, err := h.service.Create(r.Context(), principal, req)
	if err != nil {
		h.logger.Error("create invitation failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	h.logger.Info("invitation created",
		slog.String("invitation_id", inv.ID.String()),
		slog.String("tenant_id", inv.TenantID.String()),
		slog.String("role", inv.Role))
	httpx.OK(w, CreateInvitationResponse{Invitation: *inv})
}

// Accept consumes an invitation token for the calling principal.
func (h *Handler) Accept(w http.ResponseWriter, r *http.Request) {
	principal := shared.PrincipalFromContext(r.Context())
	if principal == nil {
		httpx.Fail(w, http.StatusUnauthorized, shared.CodeUnauthenticated, "invalid or expired token", nil)
		return
	}

	var req AcceptInvitationRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, shared.CodeValidationFailed, "malformed JSON body", nil)
		return
	}

	result, err := h.service.Accept(r.Context(), principal, req)
	if err != nil {
		h.logger.Error("accept invitation failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	h.logger.Info("invitation accepted",
		slog.String("tenant_id", result.TenantID.String()),
		slog.String("role", result.Role))
	httpx.OK(w, result)
}
