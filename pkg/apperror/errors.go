// Package apperror defines the typed errors shared by usecases and the HTTP
// layer. Every error carries the HTTP status the delivery layer should map it
// to, so handlers never guess status codes from error text.
package apperror

import (
	"errors"
	"net/http"
)

// Sentinel token errors. The session usecase and auth middleware distinguish
// a malformed/badly-signed token from an expired one via errors.Is.
var (
	ErrInvalidToken = New(http.StatusUnauthorized, "invalid token")
	ErrExpiredToken = New(http.StatusUnauthorized, "token expired")
)

type Error struct {
	Status  int      `json:"-"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

func (e *Error) Error() string {
	return e.Message
}

func New(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

func Validation(message string) *Error {
	return New(http.StatusBadRequest, message)
}

func Conflict(message string) *Error {
	return New(http.StatusConflict, message)
}

func Unauthorized(message string) *Error {
	return New(http.StatusUnauthorized, message)
}

func NotFound(message string) *Error {
	return New(http.StatusNotFound, message)
}

func UploadFailed(message string) *Error {
	return New(http.StatusBadRequest, message)
}

func Internal(message string) *Error {
	return New(http.StatusInternalServerError, message)
}

// Status returns the HTTP status for err, defaulting unknown errors to 500 so
// internals never leak through the response envelope.
func Status(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return http.StatusInternalServerError
}

// PublicMessage returns the message safe to show a client. Unrecognized
// errors collapse to a generic string.
func PublicMessage(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return "Internal Server Error"
}
