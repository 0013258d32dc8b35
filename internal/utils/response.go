package utils

import (
	"encoding/json"
	"log"
	"net/http"
)

// ErrorPayload is the body of every failed request.
type ErrorPayload struct {
	Detail string `json:"detail"`
	Errors any    `json:"errors,omitempty"`
}

// JSONResponse sends payload as JSON with the given status
func JSONResponse(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// ErrorResponse sends {"detail": detail} with the given status
func ErrorResponse(w http.ResponseWriter, status int, detail string) {
	JSONResponse(w, status, ErrorPayload{Detail: detail})
}

// NoContent sends an empty 204 response
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
