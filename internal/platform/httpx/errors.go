package httpx

import (
	"net/http"

	"github.com/quayside-pos/quayside-pos/internal/shared"
)

// statusByCode maps the error taxonomy onto HTTP status codes.
var statusByCode = map[string]int{
	shared.CodeUnauthenticated:   http.StatusUnauthorized,
	shared.CodeValidationFailed:  http.StatusBadRequest,
	shared.CodeForbidden:         http.StatusForbidden,
	shared.CodeOnboardingPending: http.StatusForbidden,
	shared.CodeInactivePrincipal: http.StatusForbidden,
	shared.CodeEmailMismatch:     http.StatusForbidden,
	shared.CodeSlugUnavailable:   http.StatusConflict,
	shared.CodeInviteNotFound:    http.StatusNotFound,
	shared.CodeInviteAlreadyUsed: http.StatusConflict,
	shared.CodeInviteExpired:     http.StatusGone,
	shared.CodeMethodNotAllowed:  http.StatusMethodNotAllowed,
	shared.CodeStoreFailure:      http.StatusInternalServerError,
	shared.CodeUnexpected:        http.StatusInternalServerError,
}

// RespondError maps a domain error onto the failure envelope. Unknown errors
// become UNEXPECTED_FAILURE with no internal detail leaked to the caller.
func RespondError(w http.ResponseWriter, err error) {
	apiErr := shared.AsAPIError(err)
	if apiErr == nil {
		Fail(w, http.StatusInternalServerError, shared.CodeUnexpected, "unexpected server error", nil)
		return
	}
	status, ok := statusByCode[apiErr.Code]
	if !ok {
		status = http.StatusInternalServerError
	}
	Fail(w, status, apiErr.Code, apiErr.Message, apiErr.Details)
}
