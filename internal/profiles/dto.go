package profiles

import "github.com/google/uuid"

// EnsureProfileRequest optionally carries the principal's display name.
type EnsureProfileRequest struct {
	FullName string `json:"full_name"`
}

// ProfileResponse is the wire shape of a profile.
type ProfileResponse struct {
	ID       uuid.UUID  `json:"id"`
	TenantID *uuid.UUID `json:"tenant_id"`
	Email    *string    `json:"email"`
	FullName *string    `json:"full_name"`
	Role     *string    `json:"role"`
	Active   bool       `json:"active"`
}

// EnsureProfileResponse pairs the profile with its onboarding state.
type EnsureProfileResponse struct {
	Profile           ProfileResponse `json:"profile"`
	OnboardingPending bool            `json:"onboarding_pending"`
}

func toResponse(p *Profile) ProfileResponse {
	return ProfileResponse{
		ID:       p.ID,
		TenantID: p.TenantID,
		Email:    p.Email,
		FullName: p.FullName,
		Role:     p.Role,
		Active:   p.Active,
	}
}
