// ABOUTME: Standardized JSON error responses for the flyout REST surface.
// ABOUTME: Keeps error payloads consistent so the client widget can parse them.

package rest

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the error envelope every flyout endpoint returns.
type ErrorResponse struct {
	Code    string `json:"code"`            // Machine-readable error code (e.g., "not_found")
	Message string `json:"message"`         // Human-readable error message
	Status  int    `json:"status"`          // HTTP status code
	Field   string `json:"field,omitempty"` // Optional: parameter that caused the error
}

// Error codes shared across the flyout endpoints.
const (
	ErrInvalidRequest = "invalid_request"
	ErrMissingField   = "missing_field"
	ErrNotFound       = "not_found"
	ErrForbidden      = "forbidden"
	ErrCallbackFailed = "callback_failed"
	ErrNotImplemented = "not_implemented"
)

// WriteError writes the standard error envelope.
func WriteError(w http.ResponseWriter, status int, code, message string) {
	writeErrorResponse(w, ErrorResponse{Code: code, Message: message, Status: status})
}

// WriteErrorWithField writes the envelope with the offending parameter named.
func WriteErrorWithField(w http.ResponseWriter, status int, code, message, field string) {
	writeErrorResponse(w, ErrorResponse{Code: code, Message: message, Status: status, Field: field})
}

func writeErrorResponse(w http.ResponseWriter, resp ErrorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.Status)
	json.NewEncoder(w).Encode(resp)
}
