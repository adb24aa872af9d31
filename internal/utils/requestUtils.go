package utils

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

// RespondWithJSON writes the payload with the given status code.
func RespondWithJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("Error encoding JSON response")
	}
}

// SendJSONError writes an {"error": ...} body with the given status code.
func SendJSONError(w http.ResponseWriter, message string, statusCode int) {
	RespondWithJSON(w, statusCode, map[string]string{"error": message})
}

// GetUintFromVars parses a numeric path parameter from mux.Vars.
func GetUintFromVars(r *http.Request, paramName string) (uint, error) {
	idStr := mux.Vars(r)[paramName]
	if idStr == "" {
		return 0, errors.New("missing ID parameter")
	}
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		return 0, errors.New("invalid ID format")
	}
	return uint(id), nil
}
