package app

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quayside-pos/quayside-pos/internal/audit"
	"github.com/quayside-pos/quayside-pos/internal/auth"
	"github.com/quayside-pos/quayside-pos/internal/invites"
	"github.com/quayside-pos/quayside-pos/internal/platform/httpx"
	"github.com/quayside-pos/quayside-pos/internal/profiles"
	"github.com/quayside-pos/quayside-pos/internal/shared"
	"github.com/quayside-pos/quayside-pos/internal/tenants"
)

type allowAllVerifier struct{}

func (allowAllVerifier) Verify(string) (*shared.Principal, error) {
	return &shared.Principal{ID: uuid.New(), Email: "alex@riverside.test"}, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &Config{AppEnv: "test"}
	return NewRouter(RouterParams{
		Logger:          logger,
		Config:          cfg,
		AuthMiddleware:  auth.Middleware(allowAllVerifier{}, logger),
		TenantsHandler:  tenants.NewHandler(logger, nil),
		InvitesHandler:  invites.NewHandler(logger, nil),
		ProfilesHandler: profiles.NewHandler(logger, nil),
		AuditHandler:    audit.NewHandler(logger, nil, nil),
	})
}

func TestRouterHealthz(t *testing.T) {
	router := newTestRouter(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRouterRejectsUnauthenticatedAPIRequests(t *testing.T) {
	router := newTestRouter(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/invites", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var envelope httpx.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.False(t, envelope.Success)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, shared.CodeUnauthenticated, envelope.Error.Code)
}

func TestRouterMethodNotAllowedEnvelope(t *testing.T) {
	router := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/invites", nil)
	req.Header.Set("Authorization", "Bearer anything")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	var envelope httpx.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.False(t, envelope.Success)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, shared.CodeMethodNotAllowed, envelope.Error.Code)
}

func TestRouterSetsSecurityHeaders(t *testing.T) {
	router := newTestRouter(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
}
