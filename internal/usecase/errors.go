package usecase

import (
	"errors"
	"fmt"
)

var (
	ErrValidation          = errors.New("validation failed")
	ErrUnauthorized        = errors.New("authentication required")
	ErrForbidden           = errors.New("not allowed")
	ErrNotFound            = errors.New("not found")
	ErrUnresolvedRecipient = errors.New("admin identity is not known yet")
	ErrStore               = errors.New("store failure")
)

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func storeError(err error) error {
	return fmt.Errorf("%w: %w", ErrStore, err)
}

func notFoundError(err error) error {
	return fmt.Errorf("%w: %w", ErrNotFound, err)
}
