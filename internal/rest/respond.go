// Package rest is the HTTP surface. Handlers translate between the JSON
// wire contract and the domain services; no business rules live here.
package rest

import (
	"encoding/json"
	"net/http"

	"storefront-be/internal/validate"
)

const serverErrorMessage = "Something went very wrong!"

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondSuccess(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, map[string]any{
		"status": "success",
		"data":   data,
	})
}

// respondAuth carries the token at the top level next to the user payload.
func respondAuth(w http.ResponseWriter, status int, token string, data any) {
	writeJSON(w, status, map[string]any{
		"status": "success",
		"token":  token,
		"data":   data,
	})
}

func respondFail(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{
		"status":  "fail",
		"message": message,
	})
}

// respondViolations reports every collected field violation at once.
func respondViolations(w http.ResponseWriter, verr *validate.ValidationError) {
	writeJSON(w, http.StatusBadRequest, map[string]any{
		"status": "fail",
		"errors": verr.Violations,
	})
}

func respondServerError(w http.ResponseWriter) {
	writeJSON(w, http.StatusInternalServerError, map[string]any{
		"status":  "error",
		"message": serverErrorMessage,
	})
}
