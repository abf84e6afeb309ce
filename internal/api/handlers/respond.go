package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	apperrors "github.com/clinicdesk/backend/pkg/errors"
)

// Helper functions
func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"message": message,
	})
}

// respondWithAppError maps the error taxonomy onto HTTP statuses. Validation
// and conflict errors carry their specific message to the client; connectivity
// and configuration failures log full detail for operators and return a
// generic message so credentials and endpoints never leak into responses.
func respondWithAppError(w http.ResponseWriter, err error) {
	switch apperrors.TypeOf(err) {
	case apperrors.ErrorTypeValidation:
		respondWithError(w, http.StatusBadRequest, appMessage(err))
	case apperrors.ErrorTypeUnauthorized:
		respondWithError(w, http.StatusUnauthorized, appMessage(err))
	case apperrors.ErrorTypeNotFound:
		respondWithError(w, http.StatusNotFound, appMessage(err))
	case apperrors.ErrorTypeConflict:
		respondWithError(w, http.StatusConflict, appMessage(err))
	case apperrors.ErrorTypeConfiguration, apperrors.ErrorTypeExternal:
		log.Error().Err(err).Msg("backing store failure")
		respondWithError(w, http.StatusInternalServerError, "something went wrong, please try again")
	default:
		log.Error().Err(err).Msg("unexpected failure")
		respondWithError(w, http.StatusInternalServerError, "something went wrong, please try again")
	}
}

// appMessage extracts the human-readable message from an AppError chain,
// falling back to the raw error text.
func appMessage(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
