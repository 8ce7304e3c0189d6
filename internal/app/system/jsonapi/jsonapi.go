// Package jsonapi holds the small request/response helpers shared by the
// JSON handlers. Encode failures after the status line is written can only
// be logged, so writers swallow them; Decode enforces a body size cap.
package jsonapi

import (
	"encoding/json"
	"errors"
	"net/http"
)

// MaxBodyBytes caps request bodies. Registration payloads top out around a
// few KB even with four members, so 1 MB is generous.
const MaxBodyBytes = 1 << 20

// errorResponse is the wire shape for every failure.
type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// Decode reads a JSON request body into v.
func Decode(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return errors.New("invalid JSON body")
	}
	return nil
}

// Write sends v as JSON with the given status.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error sends a JSON error body with the given status.
func Error(w http.ResponseWriter, status int, msg string) {
	Write(w, status, errorResponse{Error: msg})
}

// FieldError sends a 400 with the offending field named, so the UI can
// highlight it.
func FieldError(w http.ResponseWriter, field, msg string) {
	Write(w, http.StatusBadRequest, errorResponse{Error: msg, Field: field})
}
