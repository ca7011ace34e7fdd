// Package errs holds the error kinds the repositories return and the HTTP
// layer maps onto response statuses.
package errs

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// FieldError describes a single invalid input field.
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// ValidationError is returned for malformed or contradictory input.
type ValidationError struct {
	Message string
	Fields  []FieldError
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NotFoundError is returned when the requested key does not exist.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// DuplicateError is returned when a create collides with an existing unique key.
type DuplicateError struct {
	Message string
}

func (e *DuplicateError) Error() string {
	return e.Message
}

// UnauthorizedError is returned for bad credentials or missing permissions.
type UnauthorizedError struct {
	Message string
}

func (e *UnauthorizedError) Error() string {
	return e.Message
}

func Validation(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...interface{}) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

func Duplicate(format string, args ...interface{}) *DuplicateError {
	return &DuplicateError{Message: fmt.Sprintf(format, args...)}
}

func Unauthorized(format string, args ...interface{}) *UnauthorizedError {
	return &UnauthorizedError{Message: fmt.Sprintf(format, args...)}
}

func IsValidation(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}

func IsNotFound(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}

func IsDuplicate(err error) bool {
	var e *DuplicateError
	return errors.As(err, &e)
}

func IsUnauthorized(err error) bool {
	var e *UnauthorizedError
	return errors.As(err, &e)
}

// Status returns the HTTP status for err. Unclassified errors are 500.
func Status(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case IsValidation(err):
		return http.StatusBadRequest
	case IsUnauthorized(err):
		return http.StatusUnauthorized
	case IsNotFound(err):
		return http.StatusNotFound
	case IsDuplicate(err):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
