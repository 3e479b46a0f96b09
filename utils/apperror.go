package utils

import (
	"errors"
	"net/http"
)

// AppError carries a status classification alongside the message so domain
// errors raised deep in the service layer reach the HTTP boundary
// unchanged. Anything that is not an AppError is treated as a 500 with its
// message preserved.
type AppError struct {
	Status  int
	Message string
}

func (e *AppError) Error() string { return e.Message }

func NewAppError(message string, status int) *AppError {
	return &AppError{Status: status, Message: message}
}

func NotFound(message string) *AppError {
	return &AppError{Status: http.StatusNotFound, Message: message}
}

func Conflict(message string) *AppError {
	return &AppError{Status: http.StatusConflict, Message: message}
}

func Validation(message string) *AppError {
	return &AppError{Status: http.StatusBadRequest, Message: message}
}

func Unauthorized(message string) *AppError {
	return &AppError{Status: http.StatusUnauthorized, Message: message}
}

func Upstream(message string) *AppError {
	return &AppError{Status: http.StatusBadGateway, Message: message}
}

// StatusOf resolves the HTTP status for any error.
func StatusOf(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	return http.StatusInternalServerError
}
