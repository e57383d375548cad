package utils

import (
	"encoding/json"
	"net/http"
)

// Envelope mirrors the storefront's JSON contract: successful responses
// carry data plus a message, failures carry an error string, and
// business-rule soft failures add warning fields on a 200.
type Envelope struct {
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
	Warning string      `json:"warning,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func WriteData(w http.ResponseWriter, status int, data interface{}, message string) {
	WriteJSON(w, status, Envelope{Data: data, Message: message})
}

func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, Envelope{Error: message})
}
