package service

import (
	"errors"
	"fmt"

	"mydocs/internal/auth"
	"mydocs/internal/filestore"
)

var (
	ErrMissingFile     = errors.New("file is required")
	ErrNotFound        = errors.New("document not found")
	ErrUnauthorized    = errors.New("document belongs to another user")
	ErrPersistence     = errors.New("persistence failed")
	ErrTypeNotFound    = errors.New("type not found")
	ErrValidation      = errors.New("validation failed")
	ErrInvalidEncoding = filestore.ErrInvalidEncoding
	ErrStorageWrite    = filestore.ErrStorageWrite
	ErrUnauthenticated = auth.ErrUnauthenticated
)

// ValidationError describes the first invalid input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// Unwrap makes every ValidationError match ErrValidation.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
