// Package httpx provides the JSON response envelope shared by every endpoint.
package httpx

import (
	"encoding/json"
	"net/http"
)

// ErrorBody is the error half of the envelope.
type ErrorBody struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// Envelope is the uniform response wrapper: {"success":true,"data":...} on
// success, {"success":false,"error":{...}} on failure.
type Envelope struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorBody `json:"error,omitempty"`
}

// JSON sends a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// OK sends a successful envelope with status 200.
func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, Envelope{Success: true, Data: data})
}

// Fail sends a failure envelope with the given status.
func Fail(w http.ResponseWriter, status int, code, message string, details map[string]any) {
	JSON(w, status, Envelope{Success: false, Error: &ErrorBody{
		Code:    code,
		Message: message,
		Details: details,
	}})
}

// DecodeJSON decodes the request body into target. An empty body is not an
// error; validation of required fields happens downstream.
func DecodeJSON(r *http.Request, target any) error {
	return json.NewDecoder(r.Body).Decode(target)
}
