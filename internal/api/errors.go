package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"example.com/exercisetracker/internal/domain"
)

// writeError is the tail of every handler chain: it classifies the error and
// responds with a status code and a single-line plain-text message. Internal
// details never reach the client beyond the error text itself.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := ""

	var validationErr *domain.ValidationError
	var statusErr *domain.StatusError
	switch {
	case errors.As(err, &validationErr):
		status = http.StatusBadRequest
		message = validationErr.Error()
	case errors.As(err, &statusErr):
		status = statusErr.Status
		message = statusErr.Message
	default:
		if err != nil {
			message = err.Error()
		}
	}
	if message == "" {
		message = "Internal Server Error"
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(message))
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
