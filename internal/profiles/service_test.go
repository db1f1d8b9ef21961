package profiles

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quayside-pos/quayside-pos/internal/shared"
)

type stubProfileRepo struct {
	profile *Profile
	getErr  error

	ensuredID    *uuid.UUID
	ensuredEmail *string
	ensuredName  *string
	ensureErr    error
}

func (r *stubProfileRepo) Get(context.Context, uuid.UUID) (*Profile, error) {
	return r.profile, r.getErr
}

func (r *stubProfileRepo) EnsureShell(_ context.Context, id uuid.UUID, email *string, fullName *string) error {
	if r.ensureErr != nil {
		return r.ensureErr
	}
	r.ensuredID = &id
	r.ensuredEmail = email
	r.ensuredName = fullName
	return nil
}

func TestEnsureUpsertsShell(t *testing.T) {
	principalID := uuid.New()
	repo := &stubProfileRepo{profile: &Profile{ID: principalID, Active: true}}
	svc := NewService(repo)
	principal := &shared.Principal{ID: principalID, Email: "alex@riverside.test"}

	profile, pending, err := svc.Ensure(context.Background(), principal, "Alex Doe")
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.True(t, pending)

	require.NotNil(t, repo.ensuredID)
	assert.Equal(t, principalID, *repo.ensuredID)
	require.NotNil(t, repo.ensuredEmail)
	assert.Equal(t, "alex@riverside.test", *repo.ensuredEmail)
	require.NotNil(t, repo.ensuredName)
	assert.Equal(t, "Alex Doe", *repo.ensuredName)
}

func TestEnsureTreatsShortNameAsAbsent(t *testing.T) {
	principalID := uuid.New()
	repo := &stubProfileRepo{profile: &Profile{ID: principalID}}
	svc := NewService(repo)

	_, _, err := svc.Ensure(context.Background(), &shared.Principal{ID: principalID}, "  Al ")
	require.NoError(t, err)
	assert.Nil(t, repo.ensuredName)
	assert.Nil(t, repo.ensuredEmail)
}

func TestEnsureReportsOnboardingDone(t *testing.T) {
	principalID := uuid.New()
	tenantID := uuid.New()
	repo := &stubProfileRepo{profile: &Profile{ID: principalID, TenantID: &tenantID, Active: true}}
	svc := NewService(repo)

	_, pending, err := svc.Ensure(context.Background(), &shared.Principal{ID: principalID}, "")
	require.NoError(t, err)
	assert.False(t, pending)
}

func TestEnsureRequiresPrincipal(t *testing.T) {
	svc := NewService(&stubProfileRepo{})
	_, _, err := svc.Ensure(context.Background(), nil, "Alex Doe")
	apiErr := shared.AsAPIError(err)
	require.NotNil(t, apiErr)
	assert.Equal(t, shared.CodeUnauthenticated, apiErr.Code)
}

func TestEnsureWrapsStoreFailure(t *testing.T) {
	repo := &stubProfileRepo{ensureErr: errors.New("connection reset")}
	svc := NewService(repo)

	_, _, err := svc.Ensure(context.Background(), &shared.Principal{ID: uuid.New()}, "")
	apiErr := shared.AsAPIError(err)
	require.NotNil(t, apiErr)
	assert.Equal(t, shared.CodeStoreFailure, apiErr.Code)
	assert.Equal(t, "ensure_profile", apiErr.Details["step"])
}

func TestProfilePredicates(t *testing.T) {
	var nilProfile *Profile
	assert.True(t, nilProfile.OnboardingPending())
	assert.False(t, nilProfile.IsManagerial())

	owner := "owner"
	waiter := "waiter"
	tenantID := uuid.New()
	assert.True(t, (&Profile{TenantID: &tenantID, Role: &owner}).IsManagerial())
	assert.False(t, (&Profile{TenantID: &tenantID, Role: &waiter}).IsManagerial())
	assert.False(t, (&Profile{TenantID: &tenantID}).OnboardingPending())
	assert.True(t, (&Profile{}).OnboardingPending())
}
