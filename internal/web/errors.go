package web

// errors.go centralizes error responses for the API. Technical errors are
// logged server-side with the request ID; clients get a sanitized JSON body.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/JonMunkholm/stow/internal/archive"
	"github.com/JonMunkholm/stow/internal/store"
	"github.com/go-chi/chi/v5/middleware"
)

// ErrorResponse is the JSON structure for API error responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// respondError logs err with request context and writes a JSON error with a
// status derived from the error's kind.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status, message := classify(err)

	slog.Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"error", err.Error(),
		"request_id", middleware.GetReqID(r.Context()),
	)

	writeError(w, status, message)
}

// classify maps known error kinds to a status code and a client-safe message.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, archive.ErrCorrupt):
		return http.StatusBadRequest, "archive is not a valid zip file"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message, Message: message})
}

// writeJSON encodes v as JSON with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode failed", "error", err)
	}
}
