package profiles

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound indicates the profile does not exist.
var ErrNotFound = errors.New("profiles: not found")

// Repository provides profile persistence.
type Repository interface {
	// Get returns the profile by principal id, or ErrNotFound.
	Get(ctx context.Context, id uuid.UUID) (*Profile, error)
	// EnsureShell upserts the identity columns of a profile without touching
	// tenant or role. A nil fullName leaves any stored name in place.
	EnsureShell(ctx context.Context, id uuid.UUID, email *string, fullName *string) error
}
