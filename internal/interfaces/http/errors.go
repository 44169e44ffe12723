package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"ecoleta/internal/domain"
)

type ErrorResponse struct {
	Message string `json:"message"`
	Reason  string `json:"reason"`
}

// writeError classifies err against the domain sentinels and writes the
// matching status and body. Server-side failures are logged with their cause
// and answered with a generic message.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, reason, message := http.StatusInternalServerError, "internal_error", "Internal server error."

	var tooLarge *http.MaxBytesError
	switch {
	case errors.Is(err, domain.ErrInvalidQuery):
		status, reason, message = http.StatusBadRequest, "invalid_query", err.Error()
	case errors.Is(err, domain.ErrNotFound):
		status, reason, message = http.StatusBadRequest, "not_found", "Point not found."
	case errors.Is(err, domain.ErrMissingImage):
		status, reason, message = http.StatusBadRequest, "missing_image", err.Error()
	case errors.As(err, &tooLarge):
		status, reason, message = http.StatusRequestEntityTooLarge, "payload_too_large", "Upload exceeds the size limit."
	case errors.Is(err, domain.ErrTransactionFailed):
		status, reason, message = http.StatusInternalServerError, "transaction_failed", "Failed to register the collection point."
	case errors.Is(err, domain.ErrStorageUnavailable):
		status, reason, message = http.StatusServiceUnavailable, "storage_unavailable", "Storage is unavailable."
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		status, reason, message = http.StatusBadGateway, "upstream_unavailable", "Locality service is unavailable."
	}

	if status >= http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "reason", reason, "error", err)
	}

	writeJSON(w, status, ErrorResponse{Message: message, Reason: reason})
}

func writeMethodNotAllowed(w http.ResponseWriter, allowed string) {
	w.Header().Set("Allow", allowed)
	writeJSON(w, http.StatusMethodNotAllowed, ErrorResponse{Message: "Method not allowed", Reason: "method_not_allowed"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
