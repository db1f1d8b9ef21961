package tenants

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/quayside-pos/quayside-pos/internal/permissions"
)

// ErrSlugTaken indicates the tenants.slug uniqueness constraint fired. The
// pre-check in the service is only the friendly fast path; this is the final
// arbiter under concurrent provisioning of the same slug.
var ErrSlugTaken = errors.New("tenants: slug already taken")

// Repository provides tenant persistence.
type Repository interface {
	// SlugExists reports whether a tenant with the slug already exists.
	SlugExists(ctx context.Context, slug string) (bool, error)
	// WithTx runs fn inside one transaction; a failure in any step rolls back
	// every prior write so a tenant is either fully usable or absent.
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
}

// TxRepository exposes the ordered provisioning writes.
type TxRepository interface {
	InsertTenant(ctx context.Context, t Tenant) (Tenant, error)
	InsertConfig(ctx context.Context, tenantID uuid.UUID) error
	InsertCashRegisters(ctx context.Context, registers []CashRegister) ([]CashRegister, error)
	UpsertOwnerProfile(ctx context.Context, principalID, tenantID uuid.UUID, email *string, fullName string) error
	InsertTipPool(ctx context.Context, pool TipPool) (TipPool, error)
	InsertGrants(ctx context.Context, tenantID uuid.UUID, grants []permissions.Grant) error
}
