package httpx

import (
	"encoding/json"
	"net/http"
)

// ErrorBody is the wire error envelope. Error is either a message string or a
// list of field-level validation errors.
type ErrorBody struct {
	Error any `json:"error"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, v any) {
	WriteJSON(w, status, ErrorBody{Error: v})
}
