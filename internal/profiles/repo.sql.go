package profiles

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgRepository provides PostgreSQL backed persistence.
type PgRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

// Get returns the profile by principal id.
func (r *PgRepository) Get(ctx context.Context, id uuid.UUID) (*Profile, error) {
	var p Profile
	err := r.pool.QueryRow(ctx, `
		SELECT id, tenant_id, email, full_name, role, active, created_at, updated_at
		FROM profiles
		WHERE id = $1`, id).
		Scan(&p.ID, &p.TenantID, &p.Email, &p.FullName, &p.Role, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// EnsureShell upserts the identity columns, leaving tenant and role untouched.
func (r *PgRepository) EnsureShell(ctx context.Context, id uuid.UUID, email *string, fullName *string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO profiles (id, email, full_name, active, created_at, updated_at)
		VALUES ($1, $2, $3, TRUE, NOW(), NOW())
		ON CONFLICT (id) DO UPDATE SET
			email      = EXCLUDED.email,
			full_name  = COALESCE(EXCLUDED.full_name, profiles.full_name),
			active     = TRUE,
			updated_at = NOW()`,
		id, email, fullName)
	return err
}
