// Package httputil provides HTTP middleware and response helpers.
package httputil

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// JSON writes a JSON response.
func JSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode response", "error", err)
		}
	}
}

// Text writes a plain text response.
func Text(w http.ResponseWriter, statusCode int, text string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(statusCode)
	if _, err := w.Write([]byte(text)); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}

// Message writes a JSON response containing only a message field.
func Message(w http.ResponseWriter, statusCode int, message string) {
	JSON(w, statusCode, map[string]string{"message": message})
}

// Error writes a JSON error response. The body always carries a message
// field; stack traces and wrapped causes stay server-side.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"message": message})
}

// ValidationError writes a 400 response for a failed request validation.
// If err is validator.ValidationErrors, the body includes per-field details.
func ValidationError(w http.ResponseWriter, err error) {
	var details interface{}
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		fieldErrors := make([]map[string]string, 0, len(validationErrors))
		for _, e := range validationErrors {
			fieldErrors = append(fieldErrors, map[string]string{
				"field":   e.Field(),
				"message": e.Tag(),
			})
		}
		details = fieldErrors
	} else {
		details = err.Error()
	}

	JSON(w, http.StatusBadRequest, map[string]interface{}{
		"message": "validation error",
		"details": details,
	})
}
