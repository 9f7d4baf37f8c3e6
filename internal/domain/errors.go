package domain

import "errors"

var (
	// ErrNotFound indicates resource not found
	ErrNotFound = errors.New("resource not found")
	// ErrValidation indicates a payload failed validation
	ErrValidation = errors.New("validation failed")
	// ErrInvalidCredentials indicates a failed login
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUnauthorized indicates unauthorized access
	ErrUnauthorized = errors.New("unauthorized")
	// ErrUnsupportedFormat indicates an export format that cannot be produced
	ErrUnsupportedFormat = errors.New("unsupported format")
)
