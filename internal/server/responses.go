package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/carsa-legal/cobros/internal/ledger"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func mapError(err error) int {
	switch {
	case errors.Is(err, ledger.ErrInvalidCredentials),
		errors.Is(err, ledger.ErrSessionNotFound):
		return http.StatusUnauthorized
	case errors.Is(err, ledger.ErrEmptyQuery):
		return http.StatusBadRequest
	case errors.Is(err, ledger.ErrNoMatch),
		errors.Is(err, ledger.ErrClientNotFound):
		return http.StatusNotFound
	case errors.Is(err, ledger.ErrNoAttorneyFilter):
		return http.StatusForbidden
	case errors.Is(err, ledger.ErrSourceNotFound),
		errors.Is(err, ledger.ErrMalformedSource):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
