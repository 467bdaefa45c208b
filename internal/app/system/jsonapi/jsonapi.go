// Package jsonapi writes the uniform response envelope every API
// handler uses. Successes carry a payload (or a bare status document);
// failures carry a machine-readable error kind plus the matching HTTP
// status code.
package jsonapi

import (
	"encoding/json"
	"net/http"
)

// Error kinds returned in the failure envelope.
const (
	ErrNotAuthenticated = "not_authenticated"
	ErrNotAuthorized    = "not_authorized"
	ErrNotFound         = "not_found"
	ErrValidation       = "validation"
	ErrInternal         = "internal"
)

var statusCodes = map[string]int{
	ErrNotAuthenticated: http.StatusUnauthorized,
	ErrNotAuthorized:    http.StatusForbidden,
	ErrNotFound:         http.StatusNotFound,
	ErrValidation:       http.StatusBadRequest,
	ErrInternal:         http.StatusInternalServerError,
}

// Write sends v as a 200 JSON response.
func Write(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// Success sends the plain success envelope, merging in any extra
// fields.
func Success(w http.ResponseWriter, extra map[string]any) {
	body := map[string]any{"status": "success"}
	for k, v := range extra {
		body[k] = v
	}
	Write(w, body)
}

// Error sends the failure envelope for the given kind. Unknown kinds
// are reported as internal.
func Error(w http.ResponseWriter, kind string) {
	code, ok := statusCodes[kind]
	if !ok {
		kind = ErrInternal
		code = http.StatusInternalServerError
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status": "error",
		"error":  kind,
	})
}

// Decode reads the request body into dst. On malformed input it writes
// the validation envelope and returns false.
func Decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		Error(w, ErrValidation)
		return false
	}
	return true
}
