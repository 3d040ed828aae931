package app_error

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type AppError struct {
	Code    int    `json:"-"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func (e AppError) Error() string {
	return e.Message
}

func (e AppError) JSON(w http.ResponseWriter) error {
	return json.NewEncoder(w).Encode(e)
}

func NewAppError(code int, msg, field string) *AppError {
	return &AppError{
		Code:    code,
		Message: msg,
		Field:   field,
	}
}

// Validation rejects malformed input at the boundary, before anything
// reaches the store.
func Validation(msg, field string) *AppError {
	return NewAppError(http.StatusBadRequest, msg, field)
}

// NotFound covers unknown rooms and participants.
func NotFound(msg string) *AppError {
	return NewAppError(http.StatusNotFound, msg, "")
}

// Unauthorized covers host-only actions invoked by a non-host.
func Unauthorized(msg string) *AppError {
	return NewAppError(http.StatusForbidden, msg, "")
}

// Internal wraps unexpected failures; the caller sees a generic message,
// the detail goes to the log.
func Internal(msg string) *AppError {
	return NewAppError(http.StatusInternalServerError, msg, "")
}
