package web

// errors.go maps service errors to HTTP responses.
//
// Caller mistakes (no file, empty file, missing body, invalid record, a record
// too long for the bulk bind) are answered with 400. Anything else, including
// malformed CSV and every store failure, is answered with 500. In both cases
// the body carries the underlying message so the caller sees what the store
// or parser reported.

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/JonMunkholm/SupplierImport/internal/core"
	"github.com/JonMunkholm/SupplierImport/internal/logging"
)

// ErrorResponse is the JSON body of every error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// statusFor picks the response status for a service error.
func statusFor(err error) int {
	if core.IsClientError(err) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// respondError logs err with request context and writes it as JSON.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error, status int) {
	code := core.ErrorCode(err)

	logger := logging.FromContext(r.Context())
	level := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	logger.Log(r.Context(), level, "request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"error", err.Error(),
		"code", code,
	)

	writeErrorResponse(w, status, ErrorResponse{Error: err.Error(), Code: code})
}

// writeError writes a JSON error response without a code.
func writeError(w http.ResponseWriter, status int, message string) {
	writeErrorResponse(w, status, ErrorResponse{Error: message})
}

func writeErrorResponse(w http.ResponseWriter, status int, body ErrorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("json encode error", "error", err)
	}
}

// writeJSON encodes v as a 200 JSON response.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode error", "error", err)
	}
}
