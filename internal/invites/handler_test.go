package invites

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quayside-pos/quayside-pos/internal/permissions"
	"github.com/quayside-pos/quayside-pos/internal/platform/httpx"
	"github.com/quayside-pos/quayside-pos/internal/profiles"
	"github.com/quayside-pos/quayside-pos/internal/shared"
)

func newInviteRouter(repo *stubInviteRepo, callers ProfileReader) chi.Router {
	handler := NewHandler(testLogger(), newTestService(repo, callers, nil, nil))
	r := chi.NewRouter()
	handler.MountRoutes(r)
	return r
}

func doInvitePost(t *testing.T, router chi.Router, path string, principal *shared.Principal, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	if principal != nil {
		req = req.WithContext(shared.ContextWithPrincipal(context.Background(), principal))
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCreateEndpointSuccess(t *testing.T) {
	repo := &stubInviteRepo{}
	router := newInviteRouter(repo, managerCaller())

	rec := doInvitePost(t, router, "/invites", managerPrincipal(),
		`{"email":"waiter@example.com","role":"waiter","validity_days":3}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Success bool                     `json:"success"`
		Data    CreateInvitationResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.True(t, envelope.Success)
	assert.Equal(t, "waiter@example.com", envelope.Data.Invitation.Email)
	assert.Equal(t, permissions.RoleWaiter, envelope.Data.Invitation.Role)
	assert.Len(t, envelope.Data.Invitation.Token, 64)
}

func TestCreateEndpointRequiresPrincipal(t *testing.T) {
	router := newInviteRouter(&stubInviteRepo{}, managerCaller())
	rec := doInvitePost(t, router, "/invites", nil, `{"email":"waiter@example.com"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateEndpointForbiddenForEmployee(t *testing.T) {
	employee := permissions.RoleEmployee
	tenantID := uuid.New()
	callers := &stubProfileReader{profile: &profiles.Profile{
		ID:       uuid.New(),
		TenantID: &tenantID,
		Role:     &employee,
		Active:   true,
	}}

	router := newInviteRouter(&stubInviteRepo{}, callers)
	rec := doInvitePost(t, router, "/invites", managerPrincipal(), `{"email":"waiter@example.com"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	var envelope httpx.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
	assert.Equal(t, shared.CodeForbidden, envelope.Error.Code)
}

func TestAcceptEndpointSuccess(t *testing.T) {
	inv := pendingInvitation("new.hire@example.com", permissions.RoleEmployee)
	repo := &stubInviteRepo{
		byToken:         map[string]*Invitation{inv.Token: inv},
		markAcceptedWon: true,
	}
	router := newInviteRouter(repo, managerCaller())
	principal := &shared.Principal{ID: uuid.New(), Email: "new.hire@example.com"}

	rec := doInvitePost(t, router, "/invites/accept", principal, `{"token":"`+inv.Token+`"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Success bool                     `json:"success"`
		Data    AcceptInvitationResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.True(t, envelope.Success)
	assert.Equal(t, inv.TenantID, envelope.Data.TenantID)
	assert.Equal(t, permissions.RoleEmployee, envelope.Data.Role)
}

func TestAcceptEndpointStatusMapping(t *testing.T) {
	used := pendingInvitation("new.hire@example.com", permissions.RoleEmployee)
	acceptedAt := time.Now().UTC().Add(-time.Hour)
	used.AcceptedAt = &acceptedAt

	expired := pendingInvitation("new.hire@example.com", permissions.RoleEmployee)
	expired.Token = "tok-ffffffffffffffffffffffffffffffff"
	expired.ExpiresAt = time.Now().UTC().Add(-time.Minute)

	repo := &stubInviteRepo{
		byToken: map[string]*Invitation{
			used.Token:    used,
			expired.Token: expired,
		},
	}
	router := newInviteRouter(repo, managerCaller())
	principal := &shared.Principal{ID: uuid.New(), Email: "new.hire@example.com"}

	cases := map[string]struct {
		token      string
		wantStatus int
	}{
		"unknown token": {"tok-00000000000000000000000000000000", http.StatusNotFound},
		"already used":  {used.Token, http.StatusConflict},
		"expired":       {expired.Token, http.StatusGone},
		"short token":   {"nope", http.StatusBadRequest},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			rec := doInvitePost(t, router, "/invites/accept", principal, `{"token":"`+tc.token+`"}`)
			assert.Equal(t, tc.wantStatus, rec.Code)
		})
	}
}

func TestAcceptEndpointRejectsMalformedBody(t *testing.T) {
	router := newInviteRouter(&stubInviteRepo{}, managerCaller())
	rec := doInvitePost(t, router, "/invites/accept", managerPrincipal(), `{"token":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
