package auth

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quayside-pos/quayside-pos/internal/platform/httpx"
	"github.com/quayside-pos/quayside-pos/internal/shared"
)

type stubVerifier struct {
	principal *shared.Principal
	err       error
}

func (v *stubVerifier) Verify(string) (*shared.Principal, error) {
	return v.principal, v.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func runMiddleware(t *testing.T, verifier Verifier, authHeader string) (*httptest.ResponseRecorder, *shared.Principal) {
	t.Helper()
	var seen *shared.Principal
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = shared.PrincipalFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/invites", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	Middleware(verifier, testLogger())(next).ServeHTTP(rec, req)
	return rec, seen
}

func TestMiddlewareRequiresBearerHeader(t *testing.T) {
	for name, header := range map[string]string{
		"missing": "",
		"basic":   "Basic Zm9vOmJhcg==",
		"bare":    "sometoken",
	} {
		t.Run(name, func(t *testing.T) {
			rec, seen := runMiddleware(t, &stubVerifier{}, header)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Nil(t, seen)

			var envelope httpx.Envelope
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
			assert.False(t, envelope.Success)
			require.NotNil(t, envelope.Error)
			assert.Equal(t, shared.CodeUnauthenticated, envelope.Error.Code)
		})
	}
}

func TestMiddlewareRejectsInvalidToken(t *testing.T) {
	rec, seen := runMiddleware(t, &stubVerifier{err: errors.New("expired")}, "Bearer bad-token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, seen)
}

func TestMiddlewareStoresPrincipal(t *testing.T) {
	principal := &shared.Principal{ID: uuid.New(), Email: "alex@riverside.test"}
	rec, seen := runMiddleware(t, &stubVerifier{principal: principal}, "Bearer good-token")
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, principal.ID, seen.ID)
	assert.Equal(t, principal.Email, seen.Email)
}
