package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// ErrorResponse is the standardized error body: a stable machine-readable
// code and a human-readable message.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WriteError writes a standardized JSON error response to the HTTP
// response writer.
func WriteError(w http.ResponseWriter, statusCode int, code, message string, log *slog.Logger) {
	response := ErrorResponse{
		Code:    code,
		Message: message,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		// Status code is already on the wire; only log.
		if log != nil {
			log.Error("failed to encode error response", "error", err)
		}
	}
}
