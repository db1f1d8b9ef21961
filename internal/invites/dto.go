package invites

import "github.com/google/uuid"

// CreateInvitationRequest issues an invitation scoped to the caller's tenant.
// ValidityDays is clamped to the configured range and defaults when absent.
type CreateInvitationRequest struct {
	Email        string `json:"email"`
	Role         string `json:"role"`
	ValidityDays *int   `json:"validity_days"`
}

// CreateInvitationResponse returns the invitation including its token. The
// token is transmitted exactly once, here.
type CreateInvitationResponse struct {
	Invitation Invitation `json:"invitation"`
}

// AcceptInvitationRequest consumes an invitation token.
type AcceptInvitationRequest struct {
	Token string `json:"token"`
}

// AcceptInvitationResponse reports the binding the principal received.
type AcceptInvitationResponse struct {
	TenantID uuid.UUID `json:"tenant_id"`
	Role     string    `json:"role"`
}
