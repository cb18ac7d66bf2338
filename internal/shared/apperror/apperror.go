// Package apperror defines the error taxonomy surfaced by the HTTP layer
// and the classification used by the central error reporter.
package apperror

import (
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/jackc/pgx/v5/pgconn"
)

// UnauthorizedMessage is the fixed body returned for every auth failure
const UnauthorizedMessage = "No tienes autorización para realizar esta operación"

// pgUniqueViolation is the SQLSTATE for unique_violation
const pgUniqueViolation = "23505"

// ValidationError is a schema constraint violation on a request payload
type ValidationError struct {
	Errors validation.Errors
}

func (e *ValidationError) Error() string {
	return e.Errors.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Errors
}

// NewValidationError wraps the result of validation.ValidateStruct.
// nil stays nil; internal validation failures are returned unchanged.
func NewValidationError(err error) error {
	if err == nil {
		return nil
	}
	var errs validation.Errors
	if errors.As(err, &errs) {
		return &ValidationError{Errors: errs}
	}
	return err
}

// InvalidBody reports a request body that could not be decoded
func InvalidBody(err error) error {
	return &ValidationError{Errors: validation.Errors{"body": err}}
}

// DuplicateKeyError is a unique constraint violation reported by the store
type DuplicateKeyError struct {
	Message string
	Err     error
}

func (e *DuplicateKeyError) Error() string {
	return e.Message
}

func (e *DuplicateKeyError) Unwrap() error {
	return e.Err
}

// FromStore converts driver errors into taxonomy errors where one applies
func FromStore(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return &DuplicateKeyError{
			Message: "duplicate key value violates unique constraint \"" + pgErr.ConstraintName + "\"",
			Err:     err,
		}
	}
	return err
}

// AuthError is a missing, malformed, expired or otherwise rejected token
type AuthError struct {
	Reason string
	Err    error
}

func (e *AuthError) Error() string {
	if e.Reason == "" {
		return "unauthorized"
	}
	return "unauthorized: " + e.Reason
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// Body is a JSON error body with a single message
type Body struct {
	Error string `json:"error"`
}

// ValidationBody mirrors the shape clients received from the schema validator
type ValidationBody struct {
	Name    string            `json:"name"`
	Message string            `json:"message"`
	Errors  validation.Errors `json:"errors"`
}

// Classify maps an error to the HTTP status and body the client receives
func Classify(err error) (int, interface{}) {
	var validationErr *ValidationError
	var duplicateErr *DuplicateKeyError
	var authErr *AuthError

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, ValidationBody{
			Name:    "ValidationError",
			Message: validationErr.Error(),
			Errors:  validationErr.Errors,
		}
	case errors.As(err, &duplicateErr):
		return http.StatusBadRequest, Body{Error: duplicateErr.Message}
	case errors.As(err, &authErr):
		return http.StatusUnauthorized, Body{Error: UnauthorizedMessage}
	default:
		return http.StatusInternalServerError, Body{Error: err.Error()}
	}
}
