package tenants

import (
	"context"
	"errors"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/quayside-pos/quayside-pos/internal/audit"
	"github.com/quayside-pos/quayside-pos/internal/permissions"
	"github.com/quayside-pos/quayside-pos/internal/shared"
)

// Service orchestrates tenant provisioning.
type Service struct {
	repo        Repository
	recorder    *audit.Recorder
	provisioned prometheus.Counter
}

// NewService constructs a Service. The recorder and counter may be nil.
func NewService(repo Repository, recorder *audit.Recorder, provisioned prometheus.Counter) *Service {
	return &Service{repo: repo, recorder: recorder, provisioned: provisioned}
}

// Provision creates the tenant and every resource it needs to be operable:
// default configuration, the default cash registers, the owner's profile
// binding, the shared tip pool, and the seeded permission grants. All writes
// run in one transaction, so a failure anywhere leaves no partial tenant.
func (s *Service) Provision(ctx context.Context, principal *shared.Principal, req ProvisionTenantRequest) (*ProvisionTenantResponse, error) {
	if principal == nil {
		return nil, shared.NewAPIError(shared.CodeUnauthenticated, "no principal")
	}

	name := strings.TrimSpace(req.TenantName)
	if len(name) < 2 {
		return nil, shared.ErrValidation("tenant_name must be at least 2 characters")
	}
	ownerName := strings.TrimSpace(req.OwnerFullName)
	if len(ownerName) < 3 {
		return nil, shared.ErrValidation("owner_full_name must be at least 3 characters")
	}
	slug := NormalizeSlug(req.Slug)
	if !ValidSlug(slug) {
		return nil, shared.ErrValidation("slug must be lowercase, URL-safe and at least 2 characters").
			WithDetails(map[string]any{"slug": slug})
	}

	// Friendly fast path; the unique index decides under concurrency.
	taken, err := s.repo.SlugExists(ctx, slug)
	if err != nil {
		return nil, shared.ErrStore("check_slug", err)
	}
	if taken {
		return nil, slugUnavailable(slug)
	}

	var (
		tenant    Tenant
		registers []CashRegister
		pool      TipPool
	)
	err = s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		tenant, err = tx.InsertTenant(ctx, Tenant{Name: name, Slug: slug, Status: StatusTrial})
		if err != nil {
			if errors.Is(err, ErrSlugTaken) {
				return slugUnavailable(slug)
			}
			return shared.ErrStore("create_tenant", err)
		}
		if err := tx.InsertConfig(ctx, tenant.ID); err != nil {
			return shared.ErrStore("create_config", err)
		}
		registers, err = tx.InsertCashRegisters(ctx, defaultCashRegisters(tenant.ID))
		if err != nil {
			return shared.ErrStore("create_cash_registers", err)
		}
		var email *string
		if principal.Email != "" {
			value := principal.Email
			email = &value
		}
		if err := tx.UpsertOwnerProfile(ctx, principal.ID, tenant.ID, email, ownerName); err != nil {
			return shared.ErrStore("bind_owner_profile", err)
		}
		pool, err = tx.InsertTipPool(ctx, TipPool{
			TenantID: tenant.ID,
			Kind:     TipPoolKindShared,
			Name:     "Shift Pool",
			Active:   true,
		})
		if err != nil {
			return shared.ErrStore("create_tip_pool", err)
		}
		if err := tx.InsertGrants(ctx, tenant.ID, permissions.Grants()); err != nil {
			return shared.ErrStore("seed_permissions", err)
		}
		return nil
	})
	if err != nil {
		if apiErr := shared.AsAPIError(err); apiErr != nil {
			return nil, apiErr
		}
		return nil, shared.ErrStore("provision_tenant", err)
	}

	s.recorder.Record(ctx, audit.Event{
		TenantID:   tenant.ID,
		Type:       audit.TypeConfigChanged,
		OriginType: "onboarding",
		Payload:    map[string]any{"action": "provision_tenant", "slug": slug},
		CreatedBy:  principal.ID,
	})
	if s.provisioned != nil {
		s.provisioned.Inc()
	}

	return &ProvisionTenantResponse{Tenant: tenant, CashRegisters: registers, TipPool: pool}, nil
}

func slugUnavailable(slug string) *shared.APIError {
	return shared.NewAPIError(shared.CodeSlugUnavailable, "this slug is already in use").
		WithDetails(map[string]any{"slug": slug})
}
