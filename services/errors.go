package services

import (
	"errors"
	"fmt"
)

// ErrValidation marks errors that are reported to the user as a warning
// instead of failing the request.
var ErrValidation = errors.New("validation failed")

var (
	ErrNoItems         = fmt.Errorf("%w: document has no items", ErrValidation)
	ErrMissingRate     = fmt.Errorf("%w: exchange rate is required", ErrValidation)
	ErrUnknownCurrency = fmt.Errorf("%w: unknown currency", ErrValidation)
	ErrMissingTitle    = fmt.Errorf("%w: document title is required", ErrValidation)
	ErrUnknownField    = fmt.Errorf("%w: unknown field", ErrValidation)
	ErrRowNotFound     = errors.New("row not found")
)

// IsValidation reports whether err should be surfaced as a user warning.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// ErrDocumentNotFound is returned when a document ID does not resolve.
var ErrDocumentNotFound = errors.New("document not found")
