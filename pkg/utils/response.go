package utils

import (
	"encoding/json"
	"net/http"

	"school-backend/internal/apperr"
)

func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// Error writes err as a JSON error response, taking the status from the
// service error when it carries one.
func Error(w http.ResponseWriter, err error) {
	JSON(w, apperr.StatusOf(err), map[string]string{"error": err.Error()})
}

func ErrorMessage(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}
