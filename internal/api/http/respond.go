package http

import (
	"encoding/json"
	"net/http"

	"rentflow-backend/internal/domain"
	"rentflow-backend/internal/logger"
)

type errorBody struct {
	Code    domain.ResponseCode `json:"code"`
	Message string              `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, code domain.ResponseCode, message string) {
	writeJSON(w, status, errorBody{Code: code, Message: message})
}
