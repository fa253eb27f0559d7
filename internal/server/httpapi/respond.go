package httpapi

import (
	"encoding/json"
	"net/http"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error string `json:"error"`
}

const (
	msgUnauthorized = "unauthorized"
	msgBadRequest   = "invalid request"
	msgConflict     = "already exists"
	msgUnavailable  = "service unavailable"
	msgInternal     = "internal error"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

// unauthorized is the single response used for every authentication failure.
func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="walletkeeper"`)
	writeError(w, http.StatusUnauthorized, msgUnauthorized)
}
