package mdspan

import (
	"errors"

	"github.com/alnah/go-mdspan/internal/entity"
)

// Sentinel errors for library operations.
var (
	// ErrMalformedEntity reports a numeric character reference that does
	// not denote a Unicode scalar value. Use errors.As with *EntityError
	// for the offending reference and its offset.
	ErrMalformedEntity = entity.ErrMalformedEntity

	// Option validation errors.
	ErrInvalidBaseURL   = errors.New("invalid base URL")
	ErrEmptyPlaceholder = errors.New("table placeholder cannot be empty")
)

// EntityError locates a malformed character reference in the input.
type EntityError = entity.Error
