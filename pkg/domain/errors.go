package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is the umbrella for any id that does not exist in the current snapshot.
var ErrNotFound = errors.New("not found")

var (
	ErrSegmentNotFound  = fmt.Errorf("segment %w", ErrNotFound)
	ErrCategoryNotFound = fmt.Errorf("category %w", ErrNotFound)
	ErrItemNotFound     = fmt.Errorf("item %w", ErrNotFound)
)

// ErrInvalidPricing is returned when a pricing string is neither empty nor a decimal number.
var ErrInvalidPricing = errors.New("invalid pricing value")

// ErrNotLoaded is returned when an edit is attempted before any input was loaded.
var ErrNotLoaded = errors.New("no snapshot loaded")

// ValidationError represents a single field validation failure at the edit-entry boundary.
type ValidationError struct {
	Field  string // Field name
	Reason string // Human-readable reason for failure
	Value  string // The value that failed validation
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("field %q: %s (got %q)", e.Field, e.Reason, e.Value)
}

// Is allows errors.Is(err, ErrInvalidPricing) on validation failures.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidPricing
}

// ErrAssociationNotFound is returned by repositories when an update or delete targets an
// association id that is not persisted.
var ErrAssociationNotFound = errors.New("association not found")
