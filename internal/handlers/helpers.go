package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"receitas-backend/internal/services"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

// statusForError maps the typed service errors onto HTTP status codes: 400
// for bad input, 404 for a missing thumbnail, 500 for every pipeline-stage
// failure. The error message itself travels to the client unchanged.
func statusForError(err error) int {
	var inputErr *services.InputError
	var notFound *services.NotFoundError

	switch {
	case errors.As(err, &inputErr):
		return http.StatusBadRequest
	case errors.As(err, &notFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
