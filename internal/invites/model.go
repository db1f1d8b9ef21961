// Package invites manages the invitation token lifecycle: issuance,
// single-use acceptance, and derived expiry.
package invites

import (
	"time"

	"github.com/google/uuid"
)

// Invitation grants the right to join a tenant with a specific role. The
// token is single-use and time-limited; AcceptedAt is set exactly once.
type Invitation struct {
	ID         uuid.UUID  `json:"id"`
	TenantID   uuid.UUID  `json:"tenant_id"`
	Email      string     `json:"email"`
	Role       string     `json:"role"`
	Token      string     `json:"token"`
	ExpiresAt  time.Time  `json:"expires_at"`
	AcceptedAt *time.Time `json:"accepted_at,omitempty"`
	CreatedBy  uuid.UUID  `json:"created_by"`
	CreatedAt  time.Time  `json:"created_at"`
}

// Accepted reports whether the invitation reached its terminal accepted state.
func (i *Invitation) Accepted() bool {
	return i.AcceptedAt != nil
}

// Expired reports whether the invitation is past its expiry at the given
// instant. Expiry is derived, never stored.
func (i *Invitation) Expired(now time.Time) bool {
	return !now.Before(i.ExpiresAt)
}
