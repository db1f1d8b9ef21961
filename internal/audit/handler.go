package audit

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/quayside-pos/quayside-pos/internal/platform/httpx"
	"github.com/quayside-pos/quayside-pos/internal/profiles"
	"github.com/quayside-pos/quayside-pos/internal/shared"
)

// Handler serves the read-only audit timeline for monitoring.
type Handler struct {
	logger   *slog.Logger
	recorder *Recorder
	profiles *profiles.Service
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, recorder *Recorder, profileSvc *profiles.Service) *Handler {
	return &Handler{logger: logger, recorder: recorder, profiles: profileSvc}
}

// MountRoutes registers audit routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/audit/timeline", h.Timeline)
}

type timelineRequest struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

type timelineEvent struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	OriginID  *string        `json:"origin_id,omitempty"`
	Payload   map[string]any `json:"payload,omitempty"`
	CreatedBy string         `json:"created_by"`
	CreatedAt string         `json:"created_at"`
}

type timelineResponse struct {
	Events  []timelineEvent `json:"events"`
	Page    int             `json:"page"`
	HasNext bool            `json:"has_next"`
}

// Timeline returns the caller tenant's audit events, owner/manager only.
func (h *Handler) Timeline(w http.ResponseWriter, r *http.Request) {
	principal := shared.PrincipalFromContext(r.Context())
	if principal == nil {
		httpx.Fail(w, http.StatusUnauthorized, shared.CodeUnauthenticated, "invalid or expired token", nil)
		return
	}

	profile, err := h.profiles.Get(r.Context(), principal)
	if err != nil {
		if errors.Is(err, profiles.ErrNotFound) {
			httpx.Fail(w, http.StatusForbidden, shared.CodeOnboardingPending, "principal has no tenant", nil)
			return
		}
		h.logger.Error("load caller profile", slog.Any("error", err))
		httpx.RespondError(w, shared.ErrStore("read_profile", err))
		return
	}
	if profile.OnboardingPending() {
		httpx.Fail(w, http.StatusForbidden, shared.CodeOnboardingPending, "principal has no tenant", nil)
		return
	}
	if !profile.IsManagerial() {
		httpx.Fail(w, http.StatusForbidden, shared.CodeForbidden, "only owner or manager may read the audit timeline", nil)
		return
	}

	var req timelineRequest
	_ = httpx.DecodeJSON(r, &req)

	result, err := h.recorder.Timeline(r.Context(), *profile.TenantID, TimelineFilters{Page: req.Page, PageSize: req.PageSize})
	if err != nil {
		h.logger.Error("audit timeline failed", slog.Any("error", err))
		httpx.RespondError(w, shared.ErrStore("timeline", err))
		return
	}

	events := make([]timelineEvent, 0, len(result.Rows))
	for _, e := range result.Rows {
		ev := timelineEvent{
			ID:        e.ID.String(),
			Type:      e.Type,
			Payload:   e.Payload,
			CreatedBy: e.CreatedBy.String(),
			CreatedAt: e.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
		if e.OriginID != nil {
			origin := e.OriginID.String()
			ev.OriginID = &origin
		}
		events = append(events, ev)
	}
	httpx.OK(w, timelineResponse{Events: events, Page: result.Paging.Page, HasNext: result.Paging.HasNext})
}
