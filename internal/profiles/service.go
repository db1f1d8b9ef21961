package profiles

import (
	"context"
	"strings"

	"github.com/quayside-pos/quayside-pos/internal/shared"
)

// Service wraps profile bootstrap rules.
type Service struct {
	repo Repository
}

// NewService constructs a Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Ensure upserts the caller's profile shell and reports onboarding state.
// A name shorter than 3 characters after trimming is treated as absent, not as
// an error, so a bare ensure call still succeeds.
func (s *Service) Ensure(ctx context.Context, principal *shared.Principal, fullName string) (*Profile, bool, error) {
	if principal == nil {
		return nil, false, shared.NewAPIError(shared.CodeUnauthenticated, "no principal")
	}

	var namePtr *string
	if trimmed := strings.TrimSpace(fullName); len(trimmed) >= 3 {
		namePtr = &trimmed
	}
	var emailPtr *string
	if principal.Email != "" {
		email := principal.Email
		emailPtr = &email
	}

	if err := s.repo.EnsureShell(ctx, principal.ID, emailPtr, namePtr); err != nil {
		return nil, false, shared.ErrStore("ensure_profile", err)
	}
	profile, err := s.repo.Get(ctx, principal.ID)
	if err != nil {
		return nil, false, shared.ErrStore("read_profile", err)
	}
	return profile, profile.OnboardingPending(), nil
}

// Get returns the caller's profile, or ErrNotFound.
func (s *Service) Get(ctx context.Context, principal *shared.Principal) (*Profile, error) {
	return s.repo.Get(ctx, principal.ID)
}
