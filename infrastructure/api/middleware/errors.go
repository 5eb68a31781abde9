package middleware

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/dialcoach/dialcoach/application/service"
	"github.com/dialcoach/dialcoach/domain/call"
	"github.com/dialcoach/dialcoach/infrastructure/api/jsonapi"
	"github.com/dialcoach/dialcoach/internal/database"
)

// WriteError writes a JSON:API formatted error response. The status is
// derived from the error chain: validation errors answer 400, missing
// entities 404, and processing failures keep the original service's flat
// "Processing failed" detail on a 500.
func WriteError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	status := http.StatusInternalServerError
	title := "Internal Server Error"
	detail := err.Error()

	switch {
	case errors.Is(err, call.ErrValidation):
		status = http.StatusBadRequest
		title = "Validation Error"
	case errors.Is(err, database.ErrNotFound):
		status = http.StatusNotFound
		title = "Not Found"
	case errors.Is(err, service.ErrProcessingFailed):
		status = http.StatusInternalServerError
		title = "Processing Failed"
		detail = "Processing failed"
	case errors.Is(err, service.ErrNoTranscriber), errors.Is(err, service.ErrNoTextGenerator):
		status = http.StatusServiceUnavailable
		title = "Provider Unavailable"
	}

	correlationID := GetCorrelationID(r.Context())

	if logger != nil {
		logger.Error("request error",
			"correlation_id", correlationID,
			"status", status,
			"error", err.Error(),
			"path", r.URL.Path,
		)
	}

	resp := jsonapi.NewErrorResponse(jsonapi.Error{
		ID:     correlationID,
		Status: strconv.Itoa(status),
		Title:  title,
		Detail: detail,
	})

	w.Header().Set("Content-Type", "application/vnd.api+json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// WriteJSON writes a JSON response.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
