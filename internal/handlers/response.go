package handlers

import (
	"encoding/json"
	"net/http"

	"isafari/internal/models"
)

// envelope is the body of every API response.
type envelope struct {
	Success bool                `json:"success"`
	Message string              `json:"message,omitempty"`
	Data    interface{}         `json:"data,omitempty"`
	Errors  []models.FieldError `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func respond(w http.ResponseWriter, status int, message string, data interface{}) {
	writeJSON(w, status, envelope{Success: true, Message: message, Data: data})
}

func respondError(w http.ResponseWriter, status int, message string, fields ...models.FieldError) {
	writeJSON(w, status, envelope{Success: false, Message: message, Errors: fields})
}

// Fail writes an error envelope for code outside the handlers, such as
// middleware and the router's not-found handler.
func Fail(w http.ResponseWriter, status int, message string) {
	respondError(w, status, message)
}
