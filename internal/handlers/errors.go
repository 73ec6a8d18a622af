package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"typepet/internal/models"
)

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func respondWithError(w http.ResponseWriter, status int, userMsg, logMsg string, err error) {
	if err != nil {
		if logMsg == "" {
			logMsg = userMsg
		}
		log.Printf("%s: %v", logMsg, err)
	}

	respondJSON(w, status, map[string]string{"error": userMsg})
}

// respondServiceError translates expected service failures into client errors
// and everything else into a 500
func respondServiceError(w http.ResponseWriter, logMsg string, err error) {
	var validationErr models.ValidationError
	if errors.As(err, &validationErr) {
		respondWithError(w, http.StatusBadRequest, validationErr.Error(), logMsg, err)
		return
	}
	respondWithError(w, http.StatusInternalServerError, "Something went wrong", logMsg, err)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "Failed to decode request", err)
		return false
	}
	return true
}
