package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("resource not found")
	ErrAlreadyExists = errors.New("resource already exists")

	ErrInvalidRequest = errors.New("invalid request body")
	ErrInvalidInput   = errors.New("invalid input")
	ErrInvalidToken   = errors.New("invalid or expired token")

	// ErrUpstream marks failures of the completion API. The analysis
	// pipeline converts it to a fallback record instead of surfacing it.
	ErrUpstream = errors.New("upstream completion failure")
)

type ReviewAlreadyExistsError struct{ ReviewID string }

func (e *ReviewAlreadyExistsError) Error() string {
	return fmt.Sprintf("review '%s' already exists", e.ReviewID)
}
func (e *ReviewAlreadyExistsError) Is(target error) bool { return target == ErrAlreadyExists }

type UnknownUserTypeError struct{ UserType string }

func (e *UnknownUserTypeError) Error() string {
	return fmt.Sprintf("unknown demo user type '%s'", e.UserType)
}
func (e *UnknownUserTypeError) Is(target error) bool { return target == ErrInvalidInput }
