// Package tenants provisions new organizations and their default resources.
package tenants

import (
	"time"

	"github.com/google/uuid"
)

// StatusTrial is the status every freshly provisioned tenant starts in.
const StatusTrial = "trial"

// Cash register categories created for every tenant.
const (
	RegisterCategoryBar     = "bar"
	RegisterCategoryCarWash = "car-wash"
)

// Tip pool kinds.
const (
	TipPoolKindShared = "pool"
	TipPoolKindPerson = "person"
)

// Tenant is one isolated organization. The slug is globally unique and
// immutable once assigned.
type Tenant struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// CashRegister belongs to exactly one tenant.
type CashRegister struct {
	ID       uuid.UUID `json:"id"`
	TenantID uuid.UUID `json:"tenant_id"`
	Name     string    `json:"name"`
	Category string    `json:"category"`
}

// TipPool accumulates gratuities, shared ("pool") or per person.
type TipPool struct {
	ID        uuid.UUID  `json:"id"`
	TenantID  uuid.UUID  `json:"tenant_id"`
	Kind      string     `json:"kind"`
	Name      string     `json:"name"`
	ProfileID *uuid.UUID `json:"profile_id,omitempty"`
	Active    bool       `json:"active"`
}

func defaultCashRegisters(tenantID uuid.UUID) []CashRegister {
	return []CashRegister{
		{TenantID: tenantID, Name: "Bar Register", Category: RegisterCategoryBar},
		{TenantID: tenantID, Name: "Car Wash Register", Category: RegisterCategoryCarWash},
	}
}
