package invites

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound indicates no invitation matches the token.
var ErrNotFound = errors.New("invites: not found")

// Repository provides invitation persistence.
type Repository interface {
	// Insert stores a new invitation and returns it with generated fields.
	Insert(ctx context.Context, inv Invitation) (Invitation, error)
	// GetByToken returns the invitation by exact token match, or ErrNotFound.
	GetByToken(ctx context.Context, token string) (*Invitation, error)
	// WithTx runs the acceptance writes inside one transaction.
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
}

// TxRepository exposes the ordered acceptance writes.
type TxRepository interface {
	UpsertMemberProfile(ctx context.Context, principalID, tenantID uuid.UUID, email *string, role string) error
	// MarkAccepted sets the acceptance timestamp only if it is still unset and
	// reports whether this call won the transition. This conditional update is
	// the concurrency-control primitive making acceptance single-use.
	MarkAccepted(ctx context.Context, inviteID uuid.UUID, at time.Time) (bool, error)
	HasPersonTipPool(ctx context.Context, tenantID, profileID uuid.UUID) (bool, error)
	InsertPersonTipPool(ctx context.Context, tenantID, profileID uuid.UUID, name string) error
}
