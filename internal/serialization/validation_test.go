package serialization

import (
	"errors"
	"math"
	"strings"
	"testing"
)

// TestValidateLayout_NoOverlap verifies that valid regions pass validation.
func TestValidateLayout_NoOverlap(t *testing.T) {
	regions := []Region{
		{Name: "a", Offset: 0, Size: 100},
		{Name: "b", Offset: 100, Size: 200},
		{Name: "empty", Offset: 150, Size: 0},
		{Name: "c", Offset: 300, Size: 150},
		{Name: "tail", Offset: 500, Size: 0},
	}
	if err := ValidateLayout(regions, 500); err != nil {
		t.Errorf("Expected no error for valid regions, got: %v", err)
	}
}

// TestValidateLayout_Errors detects overlapping, negative and out-of-bounds regions.
func TestValidateLayout_Errors(t *testing.T) {
	tests := []struct {
		name     string
		regions  []Region
		dataSize int64
		wantType string
		wantErr  error
	}{
		{
			name: "overlap",
			regions: []Region{
				{Name: "a", Offset: 0, Size: 100},
				{Name: "b", Offset: 50, Size: 100},
			},
			dataSize: 200,
			wantType: "offset_overlap",
			wantErr:  ErrOffsetOverlap,
		},
		{
			name: "overlap out of order",
			regions: []Region{
				{Name: "b", Offset: 90, Size: 20},
				{Name: "a", Offset: 0, Size: 100},
			},
			dataSize: 200,
			wantType: "offset_overlap",
			wantErr:  ErrOffsetOverlap,
		},
		{
			name: "nested inside a longer region",
			regions: []Region{
				{Name: "a", Offset: 0, Size: 100},
				{Name: "b", Offset: 100, Size: 10},
				{Name: "c", Offset: 40, Size: 8},
			},
			dataSize: 200,
			wantType: "offset_overlap",
			wantErr:  ErrOffsetOverlap,
		},
		{
			name:     "offset overflow",
			regions:  []Region{{Name: "a", Offset: math.MaxInt64 - 4, Size: 8}},
			dataSize: 100,
			wantType: "out_of_bounds",
			wantErr:  ErrOutOfBounds,
		},
		{
			name:     "beyond data",
			regions:  []Region{{Name: "a", Offset: 0, Size: 101}},
			dataSize: 100,
			wantType: "out_of_bounds",
			wantErr:  ErrOutOfBounds,
		},
		{
			name:     "negative offset",
			regions:  []Region{{Name: "a", Offset: -8, Size: 8}},
			dataSize: 100,
			wantType: "negative_offset",
			wantErr:  ErrOutOfBounds,
		},
		{
			name:     "negative size",
			regions:  []Region{{Name: "a", Offset: 8, Size: -8}},
			dataSize: 100,
			wantType: "negative_offset",
			wantErr:  ErrOutOfBounds,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLayout(tt.regions, tt.dataSize)
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("Expected ValidationError, got: %v", err)
			}
			if ve.Type != tt.wantType {
				t.Errorf("Expected type %s, got %s", tt.wantType, ve.Type)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v to wrap %v", err, tt.wantErr)
			}
		})
	}
}

// TestValidateArrayInfo checks each entry against its dtype and shape.
func TestValidateArrayInfo(t *testing.T) {
	valid := []ArrayInfo{
		{DType: DTypeF64, Shape: []int{2, 3}, DataOffsets: [2]int64{16, 64}},
		{DType: DTypeBool, Shape: []int{}, DataOffsets: [2]int64{3, 4}},
		{DType: DTypeI32, Shape: []int{0, 4}, DataOffsets: [2]int64{8, 8}},
	}
	for _, info := range valid {
		if err := ValidateArrayInfo("x", info); err != nil {
			t.Errorf("Expected %+v to be valid, got: %v", info, err)
		}
	}

	tests := []struct {
		name    string
		info    ArrayInfo
		wantErr error
	}{
		{"unknown dtype", ArrayInfo{DType: "BF16", Shape: []int{1}, DataOffsets: [2]int64{0, 2}}, ErrUnsupportedDType},
		{"rank", ArrayInfo{DType: DTypeU8, Shape: make([]int, MaxDimensions+1), DataOffsets: [2]int64{0, 0}}, ErrTooManyDimensions},
		{"reversed offsets", ArrayInfo{DType: DTypeU8, Shape: []int{1}, DataOffsets: [2]int64{4, 3}}, ErrOutOfBounds},
		{"negative start", ArrayInfo{DType: DTypeU8, Shape: []int{1}, DataOffsets: [2]int64{-1, 0}}, ErrOutOfBounds},
		{"short", ArrayInfo{DType: DTypeF32, Shape: []int{3}, DataOffsets: [2]int64{0, 8}}, ErrSizeMismatch},
		{"not a multiple of itemsize", ArrayInfo{DType: DTypeI64, Shape: []int{1}, DataOffsets: [2]int64{0, 7}}, ErrSizeMismatch},
		{"bytes for empty shape", ArrayInfo{DType: DTypeU8, Shape: []int{0}, DataOffsets: [2]int64{0, 1}}, ErrSizeMismatch},
		{"overflowing dims", ArrayInfo{DType: DTypeU8, Shape: []int{1 << 32, 1 << 32}, DataOffsets: [2]int64{0, 1}}, ErrSizeMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateArrayInfo("x", tt.info); !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got: %v", tt.wantErr, err)
			}
		})
	}
}

// TestValidateArrayName rejects path-like and malformed names.
func TestValidateArrayName(t *testing.T) {
	valid := []string{"x", "layer.0.weight", "heights_cm", "Ünïcode"}
	for _, name := range valid {
		if err := ValidateArrayName(name); err != nil {
			t.Errorf("Expected %q to be valid, got: %v", name, err)
		}
	}

	invalid := []string{
		"",
		"../etc/passwd",
		"a/b",
		`a\b`,
		"nul\x00byte",
		"__metadata__",
		strings.Repeat("x", MaxArrayNameLen+1),
	}
	for _, name := range invalid {
		if err := ValidateArrayName(name); !errors.Is(err, ErrInvalidArrayName) {
			t.Errorf("Expected ErrInvalidArrayName for %q, got: %v", name, err)
		}
	}
}

// TestValidateHeader_Levels checks which checks each level runs.
func TestValidateHeader_Levels(t *testing.T) {
	overlapping := &Header{Arrays: map[string]ArrayInfo{
		"a": {DType: DTypeU8, Shape: []int{8}, DataOffsets: [2]int64{0, 8}},
		"b": {DType: DTypeU8, Shape: []int{8}, DataOffsets: [2]int64{4, 12}},
	}}
	if err := ValidateHeader(overlapping, 12, ValidationStrict); !errors.Is(err, ErrOffsetOverlap) {
		t.Errorf("Strict: expected ErrOffsetOverlap, got: %v", err)
	}
	if err := ValidateHeader(overlapping, 12, ValidationNormal); err != nil {
		t.Errorf("Normal: expected offsets to be skipped, got: %v", err)
	}

	short := &Header{Arrays: map[string]ArrayInfo{"a": {DType: DTypeI32, Shape: []int{3}, DataOffsets: [2]int64{0, 8}}}}
	if err := ValidateHeader(short, 8, ValidationNormal); !errors.Is(err, ErrSizeMismatch) {
		t.Errorf("Normal: expected ErrSizeMismatch, got: %v", err)
	}

	badName := &Header{Arrays: map[string]ArrayInfo{"../x": {DType: DTypeU8}}}
	if err := ValidateHeader(badName, 0, ValidationNormal); !errors.Is(err, ErrInvalidArrayName) {
		t.Errorf("Normal: expected ErrInvalidArrayName, got: %v", err)
	}
	if err := ValidateHeader(badName, 0, ValidationNone); err != nil {
		t.Errorf("None: expected no validation, got: %v", err)
	}

	deep := &Header{Arrays: map[string]ArrayInfo{"x": {DType: DTypeU8, Shape: make([]int, MaxDimensions+1)}}}
	if err := ValidateHeader(deep, 0, ValidationNormal); !errors.Is(err, ErrTooManyDimensions) {
		t.Errorf("Expected ErrTooManyDimensions, got: %v", err)
	}
}
