package handler

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

const (
	internalServerError = "Internal server error"
	notFoundMessage     = "Endpoint not found. Use /generate, /health, /metrics or /docs"
	methodNotAllowed    = "Method not allowed"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func writeText(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	w.Write([]byte(msg))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
