package serialization

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrChecksumMismatch  = errors.New("checksum mismatch: file may be corrupted")
	ErrOffsetOverlap     = errors.New("array offsets overlap")
	ErrOutOfBounds       = errors.New("array extends beyond data section")
	ErrTooManyArrays     = errors.New("too many arrays in file")
	ErrInvalidArrayName  = errors.New("invalid array name")
	ErrHeaderTooLarge    = errors.New("header exceeds maximum size")
	ErrInvalidMagic      = errors.New("invalid magic bytes")
	ErrUnsupportedDType  = errors.New("unsupported dtype")
	ErrSizeMismatch      = errors.New("data size does not match shape and dtype")
	ErrArrayNotFound     = errors.New("array not found")
	ErrTooManyDimensions = errors.New("too many dimensions")
)

// ValidationError provides detailed information about validation failures.
// It unwraps to the matching sentinel error, so errors.Is(err, ErrOffsetOverlap)
// works on it.
type ValidationError struct {
	Type    string // Type of error (e.g., "offset_overlap", "out_of_bounds")
	Array   string // Primary array name involved
	Array2  string // Secondary array name (for overlap errors)
	Details string // Additional details
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Array2 != "" {
		return fmt.Sprintf("%s: arrays %q and %q: %s", e.Type, e.Array, e.Array2, e.Details)
	}
	if e.Array != "" {
		return fmt.Sprintf("%s: array %q: %s", e.Type, e.Array, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Details)
}

// Unwrap returns the sentinel error for e.Type.
func (e *ValidationError) Unwrap() error {
	switch e.Type {
	case "offset_overlap":
		return ErrOffsetOverlap
	case "out_of_bounds", "negative_offset":
		return ErrOutOfBounds
	case "too_many_arrays":
		return ErrTooManyArrays
	case "invalid_name", "name_too_long":
		return ErrInvalidArrayName
	case "size_mismatch":
		return ErrSizeMismatch
	}
	return nil
}
