package invites

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quayside-pos/quayside-pos/internal/platform/db"
	"github.com/quayside-pos/quayside-pos/internal/tenants"
)

// PgRepository provides PostgreSQL backed persistence.
type PgRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

// Insert stores a new invitation.
func (r *PgRepository) Insert(ctx context.Context, inv Invitation) (Invitation, error) {
	if inv.ID == uuid.Nil {
		inv.ID = uuid.New()
	}
	err := r.pool.QueryRow(ctx, `
		INSERT INTO invitations (id, tenant_id, email, role, token, expires_at, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING id, tenant_id, email, role, token, expires_at, accepted_at, created_by, created_at`,
		inv.ID, inv.TenantID, inv.Email, inv.Role, inv.Token, inv.ExpiresAt, inv.CreatedBy).
		Scan(&inv.ID, &inv.TenantID, &inv.Email, &inv.Role, &inv.Token, &inv.ExpiresAt, &inv.AcceptedAt, &inv.CreatedBy, &inv.CreatedAt)
	if err != nil {
		return Invitation{}, err
	}
	return inv, nil
}

// GetByToken returns the invitation by exact token match.
func (r *PgRepository) GetByToken(ctx context.Context, token string) (*Invitation, error) {
	var inv Invitation
	err := r.pool.QueryRow(ctx, `
		SELECT id, tenant_id, email, role, token, expires_at, accepted_at, created_by, created_at
		FROM invitations
		WHERE token = $1`, token).
		Scan(&inv.ID, &inv.TenantID, &inv.Email, &inv.Role, &inv.Token, &inv.ExpiresAt, &inv.AcceptedAt, &inv.CreatedBy, &inv.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &inv, nil
}

// CountExpiredInvitations counts invitations whose expiry fell inside the
// window without ever being accepted. Used by the monitoring sweep.
func (r *PgRepository) CountExpiredInvitations(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM invitations
		WHERE accepted_at IS NULL AND expires_at >= $1 AND expires_at < $2`,
		from, to).Scan(&count)
	return count, err
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

func (r *pgTxRepository) UpsertMemberProfile(ctx context.Context, principalID, tenantID uuid.UUID, email *string, role string) error {
	_, err := r.tx.Exec(ctx, `
		INSERT INTO profiles (id, tenant_id, email, role, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, TRUE, NOW(), NOW())
		ON CONFLICT (id) DO UPDATE SET
			tenant_id  = EXCLUDED.tenant_id,
			email      = EXCLUDED.email,
			role       = EXCLUDED.role,
			active     = TRUE,
			updated_at = NOW()`,
		principalID, tenantID, email, role)
	return err
}

// MarkAccepted is the compare-and-swap on the acceptance timestamp.
func (r *pgTxRepository) MarkAccepted(ctx context.Context, inviteID uuid.UUID, at time.Time) (bool, error) {
	tag, err := r.tx.Exec(ctx, `
		UPDATE invitations
		SET accepted_at = $2
		WHERE id = $1 AND accepted_at IS NULL`,
		inviteID, at)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *pgTxRepository) HasPersonTipPool(ctx context.Context, tenantID, profileID uuid.UUID) (bool, error) {
	var exists bool
	err := r.tx.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM tip_pools
			WHERE tenant_id = $1 AND profile_id = $2 AND kind = $3
		)`, tenantID, profileID, tenants.TipPoolKindPerson).Scan(&exists)
	return exists, err
}

func (r *pgTxRepository) InsertPersonTipPool(ctx context.Context, tenantID, profileID uuid.UUID, name string) error {
	_, err := r.tx.Exec(ctx, `
		INSERT INTO tip_pools (id, tenant_id, kind, name, profile_id, active)
		VALUES ($1, $2, $3, $4, $5, TRUE)`,
		uuid.New(), tenantID, tenants.TipPoolKindPerson, name, profileID)
	return err
}
