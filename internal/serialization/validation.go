package serialization

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// Validation limits for security and resource protection.
const (
	MaxHeaderSize   = 100 * 1024 * 1024 // 100MB - maximum header size
	MaxArrayCount   = 100_000           // Maximum number of arrays in a file
	MaxArrayNameLen = 4096              // Maximum array name length
	MaxDimensions   = 32                // Maximum rank accepted from a file
)

// ValidationLevel controls the strictness of validation.
type ValidationLevel int

const (
	// ValidationStrict runs every check, including the data section layout (default).
	ValidationStrict ValidationLevel = iota
	// ValidationNormal checks names, counts and each entry on its own, but not
	// how the entries share the data section.
	ValidationNormal
	// ValidationNone skips validation (dangerous! Use only with trusted input).
	ValidationNone
)

// ValidateHeader checks a parsed header against a data section of dataSize
// bytes at the given level.
func ValidateHeader(h *Header, dataSize int64, level ValidationLevel) error {
	if level == ValidationNone {
		return nil
	}
	if len(h.Arrays) > MaxArrayCount {
		return &ValidationError{
			Type:    "too_many_arrays",
			Details: fmt.Sprintf("got %d, max %d", len(h.Arrays), MaxArrayCount),
		}
	}

	for _, name := range h.Names() {
		if err := ValidateArrayName(name); err != nil {
			return err
		}
		if err := ValidateArrayInfo(name, h.Arrays[name]); err != nil {
			return err
		}
	}

	if level == ValidationStrict {
		return ValidateLayout(h.Regions(), dataSize)
	}
	return nil
}

// ValidateArrayInfo checks one header entry on its own: the dtype is known, the
// rank is at most MaxDimensions, the offsets form a forward range, and that
// range holds exactly shape × itemsize bytes.
func ValidateArrayInfo(name string, info ArrayInfo) error {
	dtype, err := safeTensorsToDtype(info.DType)
	if err != nil {
		return fmt.Errorf("array %q: %w", name, err)
	}
	if rank := len(info.Shape); rank > MaxDimensions {
		return fmt.Errorf("array %q: %w: %d > %d", name, ErrTooManyDimensions, rank, MaxDimensions)
	}

	start, end := info.DataOffsets[0], info.DataOffsets[1]
	if start < 0 || end < start {
		return &ValidationError{
			Type:    "negative_offset",
			Array:   name,
			Details: fmt.Sprintf("data offsets [%d, %d] do not form a forward range", start, end),
		}
	}

	if err := checkSize(int(end-start), info.Shape, dtype.Size()); err != nil {
		return &ValidationError{Type: "size_mismatch", Array: name, Details: err.Error()}
	}
	return nil
}

// ValidateLayout checks that every region lies inside a data section of
// dataSize bytes and that no two regions share a byte. Empty regions never
// overlap anything.
func ValidateLayout(regions []Region, dataSize int64) error {
	if len(regions) > MaxArrayCount {
		return &ValidationError{
			Type:    "too_many_arrays",
			Details: fmt.Sprintf("got %d, max %d", len(regions), MaxArrayCount),
		}
	}

	sorted := slices.Clone(regions)
	slices.SortFunc(sorted, func(a, b Region) int {
		return cmp.Or(cmp.Compare(a.Offset, b.Offset), strings.Compare(a.Name, b.Name))
	})

	// prev is the region that currently reaches furthest into the data.
	var prev *Region
	for i := range sorted {
		r := &sorted[i]
		if r.Offset < 0 || r.Size < 0 {
			return &ValidationError{
				Type:    "negative_offset",
				Array:   r.Name,
				Details: fmt.Sprintf("offset=%d, size=%d", r.Offset, r.Size),
			}
		}
		if r.Size > dataSize-r.Offset {
			return &ValidationError{
				Type:    "out_of_bounds",
				Array:   r.Name,
				Details: fmt.Sprintf("bytes [%d, %d) past the %d-byte data section", r.Offset, r.End(), dataSize),
			}
		}
		if r.Size == 0 {
			continue
		}
		if prev != nil && r.Offset < prev.End() {
			return &ValidationError{
				Type:    "offset_overlap",
				Array:   prev.Name,
				Array2:  r.Name,
				Details: fmt.Sprintf("bytes [%d, %d) and [%d, %d)", prev.Offset, prev.End(), r.Offset, r.End()),
			}
		}
		if prev == nil || r.End() > prev.End() {
			prev = r
		}
	}
	return nil
}

// ValidateArrayName rejects names that are empty, too long, reserved, or could
// be mistaken for a file path.
func ValidateArrayName(name string) error {
	invalid := func(details string) error {
		return &ValidationError{Type: "invalid_name", Array: name, Details: details}
	}
	switch {
	case name == "":
		return invalid("empty name")
	case name == metadataKey:
		return invalid("reserved for metadata")
	case len(name) > MaxArrayNameLen:
		return &ValidationError{
			Type:    "name_too_long",
			Array:   name,
			Details: fmt.Sprintf("length %d > max %d", len(name), MaxArrayNameLen),
		}
	case strings.Contains(name, ".."):
		return invalid("contains '..'")
	case strings.ContainsAny(name, `/\`):
		return invalid("contains a path separator")
	case strings.ContainsRune(name, 0):
		return invalid("contains a NUL byte")
	}
	return nil
}
