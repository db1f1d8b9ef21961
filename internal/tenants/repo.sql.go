package tenants

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quayside-pos/quayside-pos/internal/permissions"
	"github.com/quayside-pos/quayside-pos/internal/platform/db"
)

const uniqueViolation = "23505"

// PgRepository provides PostgreSQL backed persistence.
type PgRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

// SlugExists reports whether a tenant with the slug already exists.
func (r *PgRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM tenants WHERE slug = $1)`, slug).Scan(&exists)
	return exists, err
}

// WithTx runs fn inside one RepeatableRead transaction.
func (r *PgRepository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &pgTxRepository{tx: tx})
	})
}

type pgTxRepository struct {
	tx pgx.Tx
}

func (r *pgTxRepository) InsertTenant(ctx context.Context, t Tenant) (Tenant, error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	err := r.tx.QueryRow(ctx, `
		INSERT INTO tenants (id, name, slug, status, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, name, slug, status, created_at`,
		t.ID, t.Name, t.Slug, t.Status).
		Scan(&t.ID, &t.Name, &t.Slug, &t.Status, &t.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return Tenant{}, ErrSlugTaken
		}
		return Tenant{}, err
	}
	return t, nil
}

func (r *pgTxRepository) InsertConfig(ctx context.Context, tenantID uuid.UUID) error {
	_, err := r.tx.Exec(ctx, `INSERT INTO tenant_configs (tenant_id, created_at) VALUES ($1, NOW())`, tenantID)
	return err
}

func (r *pgTxRepository) InsertCashRegisters(ctx context.Context, registers []CashRegister) ([]CashRegister, error) {
	out := make([]CashRegister, 0, len(registers))
	for _, reg := range registers {
		if reg.ID == uuid.Nil {
			reg.ID = uuid.New()
		}
		err := r.tx.QueryRow(ctx, `
			INSERT INTO cash_registers (id, tenant_id, name, category)
			VALUES ($1, $2, $3, $4)
			RETURNING id, tenant_id, name, category`,
			reg.ID, reg.TenantID, reg.Name, reg.Category).
			Scan(&reg.ID, &reg.TenantID, &reg.Name, &reg.Category)
		if err != nil {
			return nil, err
		}
		out = append(out, reg)
	}
	return out, nil
}

func (r *pgTxRepository) UpsertOwnerProfile(ctx context.Context, principalID, tenantID uuid.UUID, email *string, fullName string) error {
	_, err := r.tx.Exec(ctx, `
		INSERT INTO profiles (id, tenant_id, email, full_name, role, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, TRUE, NOW(), NOW())
		ON CONFLICT (id) DO UPDATE SET
			tenant_id  = EXCLUDED.tenant_id,
			email      = EXCLUDED.email,
			full_name  = EXCLUDED.full_name,
			role       = EXCLUDED.role,
			active     = TRUE,
			updated_at = NOW()`,
		principalID, tenantID, email, fullName, permissions.RoleOwner)
	return err
}

func (r *pgTxRepository) InsertTipPool(ctx context.Context, pool TipPool) (TipPool, error) {
	if pool.ID == uuid.Nil {
		pool.ID = uuid.New()
	}
	err := r.tx.QueryRow(ctx, `
		INSERT INTO tip_pools (id, tenant_id, kind, name, profile_id, active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, tenant_id, kind, name, profile_id, active`,
		pool.ID, pool.TenantID, pool.Kind, pool.Name, pool.ProfileID, pool.Active).
		Scan(&pool.ID, &pool.TenantID, &pool.Kind, &pool.Name, &pool.ProfileID, &pool.Active)
	if err != nil {
		return TipPool{}, err
	}
	return pool, nil
}

func (r *pgTxRepository) InsertGrants(ctx context.Context, tenantID uuid.UUID, grants []permissions.Grant) error {
	batch := &pgx.Batch{}
	for _, grant := range grants {
		batch.Queue(`
			INSERT INTO permission_grants (tenant_id, role, permission_key, allowed)
			VALUES ($1, $2, $3, TRUE)`,
			tenantID, grant.Role, grant.Key)
	}
	results := r.tx.SendBatch(ctx, batch)
	defer results.Close()
	for range grants {
		if _, err := results.Exec(); err != nil {
			return err
		}
	}
	return results.Close()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
