package invites

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/quayside-pos/quayside-pos/internal/audit"
	"github.com/quayside-pos/quayside-pos/internal/permissions"
	"github.com/quayside-pos/quayside-pos/internal/profiles"
	"github.com/quayside-pos/quayside-pos/internal/shared"
)

const (
	minTokenLength = 20
	acceptLockTTL  = 10 * time.Second
)

// ProfileReader looks up the caller's profile.
type ProfileReader interface {
	Get(ctx context.Context, id uuid.UUID) (*profiles.Profile, error)
}

// Locker is the fast-path guard in front of the acceptance CAS.
type Locker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Unlock(ctx context.Context, key string)
}

// Mailer queues the invitation email for background delivery.
type Mailer interface {
	EnqueueInviteEmail(ctx context.Context, email, token string, expiresAt time.Time) error
}

// ValidityBounds clamp the requested invitation lifetime in days.
type ValidityBounds struct {
	Default int
	Min     int
	Max     int
}

// DefaultValidityBounds match the product rule: 7 days, clamped to [1, 30].
var DefaultValidityBounds = ValidityBounds{Default: 7, Min: 1, Max: 30}

// Metrics groups the counters the service increments.
type Metrics struct {
	Created  prometheus.Counter
	Accepted prometheus.Counter
}

// Service orchestrates the invitation lifecycle.
type Service struct {
	repo     Repository
	callers  ProfileReader
	locker   Locker
	recorder *audit.Recorder
	mailer   Mailer
	logger   *slog.Logger
	bounds   ValidityBounds
	metrics  Metrics
}

// NewService constructs a Service. Locker, recorder, mailer and metrics may be
// nil or zero-valued.
func NewService(repo Repository, callers ProfileReader, locker Locker, recorder *audit.Recorder, mailer Mailer, logger *slog.Logger, bounds ValidityBounds, metrics Metrics) *Service {
	if bounds.Default == 0 {
		bounds = DefaultValidityBounds
	}
	return &Service{
		repo:     repo,
		callers:  callers,
		locker:   locker,
		recorder: recorder,
		mailer:   mailer,
		logger:   logger,
		bounds:   bounds,
		metrics:  metrics,
	}
}

// Create issues a new invitation scoped to the caller's tenant. Only active
// owners and managers may invite.
func (s *Service) Create(ctx context.Context, principal *shared.Principal, req CreateInvitationRequest) (*Invitation, error) {
	if principal == nil {
		return nil, shared.NewAPIError(shared.CodeUnauthenticated, "no principal")
	}

	caller, err := s.callers.Get(ctx, principal.ID)
	if err != nil {
		if errors.Is(err, profiles.ErrNotFound) {
			return nil, shared.NewAPIError(shared.CodeOnboardingPending, "principal has no tenant")
		}
		return nil, shared.ErrStore("read_caller_profile", err)
	}
	if caller.OnboardingPending() {
		return nil, shared.NewAPIError(shared.CodeOnboardingPending, "principal has no tenant")
	}
	if !caller.Active {
		return nil, shared.NewAPIError(shared.CodeInactivePrincipal, "principal is inactive")
	}
	if !caller.IsManagerial() {
		return nil, shared.NewAPIError(shared.CodeForbidden, "only owner or manager may invite")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if len(email) < 6 || !strings.Contains(email, "@") {
		return nil, shared.ErrValidation("invalid email")
	}
	role := strings.ToLower(strings.TrimSpace(req.Role))
	if role == "" {
		role = permissions.RoleEmployee
	}
	if !permissions.IsValidRole(role) {
		return nil, shared.ErrValidation("unknown role").WithDetails(map[string]any{"role": role})
	}
	days := s.clampValidityDays(req.ValidityDays)

	token, err := NewToken()
	if err != nil {
		return nil, shared.NewAPIError(shared.CodeUnexpected, "could not generate token")
	}

	inv, err := s.repo.Insert(ctx, Invitation{
		TenantID:  *caller.TenantID,
		Email:     email,
		Role:      role,
		Token:     token,
		ExpiresAt: time.Now().UTC().Add(time.Duration(days) * 24 * time.Hour),
		CreatedBy: principal.ID,
	})
	if err != nil {
		return nil, shared.ErrStore("create_invitation", err)
	}

	s.recorder.Record(ctx, audit.Event{
		TenantID:   inv.TenantID,
		Type:       audit.TypeInviteCreated,
		OriginType: "invitation",
		OriginID:   &inv.ID,
		Payload:    map[string]any{"email": email, "role": role, "expires_at": inv.ExpiresAt},
		CreatedBy:  principal.ID,
	})
	if s.metrics.Created != nil {
		s.metrics.Created.Inc()
	}
	if s.mailer != nil {
		if err := s.mailer.EnqueueInviteEmail(ctx, email, token, inv.ExpiresAt); err != nil {
			s.logger.Warn("invite email not queued",
				slog.String("invitation_id", inv.ID.String()),
				slog.Any("error", err))
		}
	}

	return &inv, nil
}

// Accept consumes an invitation token, binding the principal to the
// invitation's tenant and role. The conditional update on accepted_at makes
// the Pending→Accepted transition happen at most once even under races.
func (s *Service) Accept(ctx context.Context, principal *shared.Principal, req AcceptInvitationRequest) (*AcceptInvitationResponse, error) {
	if principal == nil {
		return nil, shared.NewAPIError(shared.CodeUnauthenticated, "no principal")
	}

	token := strings.TrimSpace(req.Token)
	if len(token) < minTokenLength {
		return nil, shared.ErrValidation("invalid token")
	}

	inv, err := s.repo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, shared.NewAPIError(shared.CodeInviteNotFound, "invitation not found")
		}
		return nil, shared.ErrStore("read_invitation", err)
	}
	if inv.Accepted() {
		return nil, alreadyUsed()
	}
	if inv.Expired(time.Now()) {
		return nil, shared.NewAPIError(shared.CodeInviteExpired, "this invitation has expired")
	}
	if principal.Email != "" && !strings.EqualFold(principal.Email, inv.Email) {
		return nil, shared.NewAPIError(shared.CodeEmailMismatch, "this invitation is for another email").
			WithDetails(map[string]any{
				"invitation_email": inv.Email,
				"principal_email":  strings.ToLower(principal.Email),
			})
	}

	if s.locker != nil {
		key := shared.InviteAcceptLockKey(inv.ID.String())
		ok, lockErr := s.locker.TryLock(ctx, key, acceptLockTTL)
		if lockErr != nil {
			// Lock is advisory; the row-level CAS below still decides.
			s.logger.Warn("invite accept lock unavailable", slog.Any("error", lockErr))
		} else if !ok {
			return nil, alreadyUsed()
		} else {
			defer s.locker.Unlock(ctx, key)
		}
	}

	var email *string
	if principal.Email != "" {
		value := strings.ToLower(principal.Email)
		email = &value
	}
	err = s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		if err := tx.UpsertMemberProfile(ctx, principal.ID, inv.TenantID, email, inv.Role); err != nil {
			return shared.ErrStore("bind_profile", err)
		}
		won, err := tx.MarkAccepted(ctx, inv.ID, time.Now().UTC())
		if err != nil {
			return shared.ErrStore("finalize_invitation", err)
		}
		if !won {
			return alreadyUsed()
		}
		if inv.Role == permissions.RoleWaiter {
			exists, err := tx.HasPersonTipPool(ctx, inv.TenantID, principal.ID)
			if err != nil {
				return shared.ErrStore("check_tip_pool", err)
			}
			if !exists {
				name := "Waiter"
				if email != nil {
					name = *email
				}
				if err := tx.InsertPersonTipPool(ctx, inv.TenantID, principal.ID, name); err != nil {
					return shared.ErrStore("create_tip_pool", err)
				}
			}
		}
		return nil
	})
	if err != nil {
		if apiErr := shared.AsAPIError(err); apiErr != nil {
			return nil, apiErr
		}
		return nil, shared.ErrStore("accept_invitation", err)
	}

	s.recorder.Record(ctx, audit.Event{
		TenantID:   inv.TenantID,
		Type:       audit.TypeInviteAccepted,
		OriginType: "invitation",
		OriginID:   &inv.ID,
		Payload:    map[string]any{"role": inv.Role, "email": principal.Email},
		CreatedBy:  principal.ID,
	})
	if s.metrics.Accepted != nil {
		s.metrics.Accepted.Inc()
	}

	return &AcceptInvitationResponse{TenantID: inv.TenantID, Role: inv.Role}, nil
}

func (s *Service) clampValidityDays(requested *int) int {
	days := s.bounds.Default
	if requested != nil {
		days = *requested
	}
	if days < s.bounds.Min {
		days = s.bounds.Min
	}
	if days > s.bounds.Max {
		days = s.bounds.Max
	}
	return days
}

func alreadyUsed() *shared.APIError {
	return shared.NewAPIError(shared.CodeInviteAlreadyUsed, "this invitation was already used")
}
