package usecase

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation matches every *ValidationError via errors.Is.
	ErrValidation = errors.New("validation failed")

	// ErrUserNotFound is returned when a user cannot be found by email or ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailAlreadyExists is returned when attempting to create a user with an email that already exists.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrInvalidCredentials is returned by Login for an unknown email, a wrong or blank password,
	// or an inactive account. Callers cannot tell the cases apart.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrTokenNotFound is returned when a token key does not resolve to any token.
	ErrTokenNotFound = errors.New("token not found")

	// ErrUnauthenticated is returned when a bearer token is missing, unknown,
	// or belongs to a user that can no longer authenticate.
	ErrUnauthenticated = errors.New("authentication credentials were not provided or are invalid")
)

// ValidationError reports malformed or missing input for a single field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Is lets errors.Is(err, ErrValidation) match any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func newValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
