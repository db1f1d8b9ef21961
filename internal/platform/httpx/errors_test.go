package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quayside-pos/quayside-pos/internal/shared"
)

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var envelope Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope
}

func TestRespondErrorStatusMapping(t *testing.T) {
	cases := map[string]struct {
		code       string
		wantStatus int
	}{
		"unauthenticated":    {shared.CodeUnauthenticated, http.StatusUnauthorized},
		"validation":         {shared.CodeValidationFailed, http.StatusBadRequest},
		"forbidden":          {shared.CodeForbidden, http.StatusForbidden},
		"onboarding pending": {shared.CodeOnboardingPending, http.StatusForbidden},
		"inactive":           {shared.CodeInactivePrincipal, http.StatusForbidden},
		"email mismatch":     {shared.CodeEmailMismatch, http.StatusForbidden},
		"slug unavailable":   {shared.CodeSlugUnavailable, http.StatusConflict},
		"invite not found":   {shared.CodeInviteNotFound, http.StatusNotFound},
		"invite used":        {shared.CodeInviteAlreadyUsed, http.StatusConflict},
		"invite expired":     {shared.CodeInviteExpired, http.StatusGone},
		"method":             {shared.CodeMethodNotAllowed, http.StatusMethodNotAllowed},
		"store":              {shared.CodeStoreFailure, http.StatusInternalServerError},
		"unexpected":         {shared.CodeUnexpected, http.StatusInternalServerError},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			RespondError(rec, shared.NewAPIError(tc.code, "boom"))

			assert.Equal(t, tc.wantStatus, rec.Code)
			envelope := decodeEnvelope(t, rec)
			assert.False(t, envelope.Success)
			require.NotNil(t, envelope.Error)
			assert.Equal(t, tc.code, envelope.Error.Code)
		})
	}
}

func TestRespondErrorHidesUnknownErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondError(rec, errors.New("pq: relation tenants does not exist"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	envelope := decodeEnvelope(t, rec)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, shared.CodeUnexpected, envelope.Error.Code)
	assert.NotContains(t, envelope.Error.Message, "relation")
}

func TestRespondErrorIncludesDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondError(rec, shared.NewAPIError(shared.CodeSlugUnavailable, "taken").
		WithDetails(map[string]any{"slug": "riverside"}))

	envelope := decodeEnvelope(t, rec)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "riverside", envelope.Error.Details["slug"])
}

func TestOKEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	OK(rec, map[string]string{"hello": "world"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	envelope := decodeEnvelope(t, rec)
	assert.True(t, envelope.Success)
	assert.Nil(t, envelope.Error)
}
