package errors

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   int    `json:"error"`
	Message string `json:"message"`
}

// RespondError writes the mapped error body for a status code.
func RespondError(w http.ResponseWriter, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{
		Success: false,
		Error:   status,
		Message: MessageFor(status),
	})
}

// RespondBadRequest writes the 400 error body.
func RespondBadRequest(w http.ResponseWriter) {
	RespondError(w, http.StatusBadRequest)
}

// RespondNotFound writes the 404 error body.
func RespondNotFound(w http.ResponseWriter) {
	RespondError(w, http.StatusNotFound)
}

// RespondMethodNotAllowed writes the 405 error body.
func RespondMethodNotAllowed(w http.ResponseWriter) {
	RespondError(w, http.StatusMethodNotAllowed)
}

// RespondUnprocessable writes the 422 error body.
func RespondUnprocessable(w http.ResponseWriter) {
	RespondError(w, http.StatusUnprocessableEntity)
}

// RespondInternal writes the 500 error body.
func RespondInternal(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError)
}
