package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/booknest/booknest-be/internal/apperror"
	"github.com/rs/zerolog/log"
)

// writeJSON writes v as the JSON response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeMessage writes the standard {message} error/confirmation body.
func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// writeError maps a service error onto an HTTP status and a {message}
// body. Internal details are logged server-side, never sent to the client.
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		switch appErr.Kind {
		case apperror.Internal:
			log.Error().Err(err).Msg("Request failed")
			writeMessage(w, appErr.StatusCode(), "Server error")
		case apperror.Upstream:
			log.Error().Err(err).Msg("Upstream request failed")
			writeMessage(w, appErr.StatusCode(), appErr.Message)
		default:
			writeMessage(w, appErr.StatusCode(), appErr.Message)
		}
		return
	}

	log.Error().Err(err).Msg("Unhandled error")
	writeMessage(w, http.StatusInternalServerError, "Server error")
}
