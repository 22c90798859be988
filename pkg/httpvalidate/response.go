package httpvalidate

import (
	"encoding/json"
	"net/http"

	"github.com/dmitrymomot/rulekit/pkg/engine"
)

// ErrorBody is the JSON document answered for rejected requests.
type ErrorBody struct {
	Status  string            `json:"status"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// WriteJSON writes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

// WriteValidationError answers 400 with the message of every failed field.
func WriteValidationError(w http.ResponseWriter, results engine.Results) error {
	return WriteJSON(w, http.StatusBadRequest, ErrorBody{
		Status:  "error",
		Message: "Validation error",
		Errors:  results.Errors(),
	})
}

// WriteError answers err with the status StatusOf picks. Server errors hide
// their details.
func WriteError(w http.ResponseWriter, err error) error {
	status := StatusOf(err)
	msg := err.Error()
	if status >= http.StatusInternalServerError {
		msg = http.StatusText(status)
	}
	return WriteJSON(w, status, ErrorBody{Status: "error", Message: msg})
}
