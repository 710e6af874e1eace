package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"fitflow-box/internal/model"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// validate checks request payload struct tags. Shared across handlers;
// validator.Validate is safe for concurrent use.
var validate = validator.New()

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes an error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string, logger zerolog.Logger) {
	logger.Error().Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, ErrorResponse{Error: message})
}

// writeDomainError maps a service error to an HTTP response. Domain errors
// carry their own kind (validation/not-found/conflict) and code; anything
// else is an infrastructure failure reported as a generic 500.
func writeDomainError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if !errors.As(err, &domainErr) {
		writeError(w, http.StatusInternalServerError, "internal server error", logger)
		return
	}

	status := http.StatusInternalServerError
	switch domainErr.Kind {
	case model.KindValidation:
		status = http.StatusBadRequest
	case model.KindNotFound:
		status = http.StatusNotFound
	case model.KindConflict:
		status = http.StatusConflict
	}

	logger.Warn().
		Str("code", domainErr.Code).
		Int("status", status).
		Msg(domainErr.Message)
	writeJSON(w, status, ErrorResponse{Error: domainErr.Message, Code: domainErr.Code})
}

// decodeAndValidate decodes a JSON body into dst and runs struct-tag
// validation. Returns false after writing the error response itself.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}, logger zerolog.Logger) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", logger)
		return false
	}
	if err := validate.Struct(dst); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), logger)
		return false
	}
	return true
}
