// Package httpx provides the JSON response envelope used by every endpoint.
package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/odyssey-erp/odyssey-admin/internal/shared"
)

// ErrorBody is the user-facing failure description.
type ErrorBody struct {
	Msg         string `json:"msg"`
	Description string `json:"description"`
}

type successEnvelope struct {
	Code int `json:"code"`
	Data any `json:"data"`
}

type errorEnvelope struct {
	Code  int       `json:"code"`
	Error ErrorBody `json:"error"`
}

// JSON sends a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// Success sends {code, data}.
func Success(w http.ResponseWriter, status int, data any) {
	JSON(w, status, successEnvelope{Code: status, Data: data})
}

// Failure sends {code, error:{msg, description}}.
func Failure(w http.ResponseWriter, status int, body ErrorBody) {
	JSON(w, status, errorEnvelope{Code: status, Error: body})
}

// DecodeJSON decodes JSON request body into the target struct.
// An empty or malformed body is a validation error.
func DecodeJSON(r *http.Request, target any) error {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		if errors.Is(err, io.EOF) {
			return shared.ValidationError(shared.MsgFieldRequired, "body")
		}
		return shared.ValidationError(shared.MsgFieldType, "body", "json")
	}
	return nil
}
