package common

import (
	"encoding/json"
	"net/http"
)

// WriteJSON writes v as a JSON response body with the given status
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError maps a taxonomy error to its HTTP status and writes a
// {"detail": "..."} body, the shape the frontend already consumes.
func WriteError(w http.ResponseWriter, err error) {
	WriteJSON(w, StatusForError(err), map[string]string{"detail": err.Error()})
}

// WriteMessage writes the common {"message": "..."} success body
func WriteMessage(w http.ResponseWriter, message string) {
	WriteJSON(w, http.StatusOK, map[string]string{"message": message})
}
