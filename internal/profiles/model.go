// Package profiles manages the record binding a principal to a tenant and role.
package profiles

import (
	"time"

	"github.com/google/uuid"

	"github.com/quayside-pos/quayside-pos/internal/permissions"
)

// Profile binds an identity-provider principal to a tenant and role. TenantID
// stays nil until onboarding completes, and once set is never reassigned here.
type Profile struct {
	ID        uuid.UUID
	TenantID  *uuid.UUID
	Email     *string
	FullName  *string
	Role      *string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OnboardingPending reports whether the profile still lacks a tenant.
func (p *Profile) OnboardingPending() bool {
	return p == nil || p.TenantID == nil
}

// IsManagerial reports whether the profile holds an invitation-capable role.
func (p *Profile) IsManagerial() bool {
	if p == nil || p.Role == nil {
		return false
	}
	return *p.Role == permissions.RoleOwner || *p.Role == permissions.RoleManager
}
