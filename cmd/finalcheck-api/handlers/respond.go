// Package handlers provides HTTP handlers for the FinalCheck API.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Treedy2020/FinalCheck/internal/domain"
	"github.com/Treedy2020/FinalCheck/internal/observability"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Error: message})
}

// respondDomainError maps error kinds onto HTTP statuses. Anything
// unrecognized is treated as an internal error with the detail kept out of
// the response.
func respondDomainError(logger *observability.Logger, w http.ResponseWriter, err error) {
	switch {
	case domain.IsKind(err, domain.KindDocument):
		respondError(w, http.StatusBadRequest, err.Error())
	case domain.IsKind(err, domain.KindPageLimit):
		respondError(w, http.StatusRequestEntityTooLarge, err.Error())
	case domain.IsKind(err, domain.KindUnknownStandard):
		respondError(w, http.StatusBadRequest, err.Error())
	case domain.IsKind(err, domain.KindConfig):
		respondError(w, http.StatusServiceUnavailable, err.Error())
	default:
		logger.Error().Err(err).Msg("Request failed")
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}
