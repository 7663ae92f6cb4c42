package ndarray

import "fmt"

// Shape represents the dimensions of an array.
type Shape []int

// NumElements returns the total number of elements in the array.
// A 0-d shape describes a scalar with one element.
func (s Shape) NumElements() int {
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Validate checks that every dimension is non-negative.
func (s Shape) Validate() error {
	for i, dim := range s {
		if dim < 0 {
			return ShapeErrorf("shape", "invalid dimension at index %d: %d (must be >= 0)", i, dim)
		}
	}
	return nil
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}

// String formats the shape as a tuple, e.g. (3, 4).
func (s Shape) String() string {
	switch len(s) {
	case 0:
		return "()"
	case 1:
		return fmt.Sprintf("(%d,)", s[0])
	}
	out := "("
	for i, d := range s {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprint(d)
	}
	return out + ")"
}

// ComputeStrides calculates row-major strides (in elements) for the shape.
// Strides define memory layout: stride[i] = product of all dimensions after i.
func (s Shape) ComputeStrides() []int {
	strides := make([]int, len(s))
	if len(s) == 0 {
		return strides
	}

	strides[len(s)-1] = 1
	for i := len(s) - 2; i >= 0; i-- {
		strides[i] = strides[i+1] * max(s[i+1], 1)
	}
	return strides
}

// BroadcastShapes implements NumPy-style broadcasting rules for two shapes.
//
// Rules:
// 1. Compare shapes element-wise from right to left
// 2. Dimensions are compatible if:
//   - They are equal, OR
//   - One of them is 1
//
// 3. Missing dimensions are treated as 1
//
// Returns the broadcasted shape, a flag indicating if broadcasting is needed, and an error if incompatible.
//
// Examples:
//
//	(3, 1) + (3, 5) → (3, 5), true, nil
//	(1, 5) + (3, 5) → (3, 5), true, nil
//	(3, 5) + (3, 5) → (3, 5), false, nil
//	(3, 4) + (3, 5) → nil, false, *BroadcastError
func BroadcastShapes(a, b Shape) (Shape, bool, error) {
	out, err := BroadcastAll(a, b)
	if err != nil {
		return nil, false, err
	}
	return out, !a.Equal(b), nil
}

// BroadcastAll broadcasts any number of shapes together.
func BroadcastAll(shapes ...Shape) (Shape, error) {
	maxLen := 0
	for _, s := range shapes {
		maxLen = max(maxLen, len(s))
	}
	result := make(Shape, maxLen)

	for i := 0; i < maxLen; i++ {
		dim := 1
		for _, s := range shapes {
			idx := len(s) - 1 - i
			if idx < 0 {
				continue
			}
			d := s[idx]
			switch {
			case d == dim, d == 1:
			case dim == 1:
				dim = d
			default:
				return nil, &BroadcastError{Shapes: cloneShapes(shapes), Axis: maxLen - 1 - i}
			}
		}
		result[maxLen-1-i] = dim
	}
	return result, nil
}

// BroadcastStrides returns strides that address an array of shape inShape (with the
// given strides) as if it had shape outShape. Padded and size-1 axes get stride 0.
// outShape must be a valid broadcast target of inShape.
func BroadcastStrides(inShape Shape, inStrides []int, outShape Shape) []int {
	strides := make([]int, len(outShape))
	lead := len(outShape) - len(inShape)
	for i := range outShape {
		j := i - lead
		if j < 0 || inShape[j] == 1 {
			continue
		}
		strides[i] = inStrides[j]
	}
	return strides
}

// NormalizeAxis maps a possibly negative axis into [0, ndim).
func NormalizeAxis(op string, axis, ndim int) (int, error) {
	if axis < 0 {
		axis += ndim
	}
	if axis < 0 || axis >= ndim {
		return 0, IndexErrorf(op, "axis %d is out of bounds for array of dimension %d", axis, ndim)
	}
	return axis, nil
}

// Unravel converts a row-major flat index into coordinates (written into coords).
func (s Shape) Unravel(flat int, coords []int) {
	for d := len(s) - 1; d >= 0; d-- {
		if s[d] == 0 {
			coords[d] = 0
			continue
		}
		coords[d] = flat % s[d]
		flat /= s[d]
	}
}

func cloneShapes(shapes []Shape) []Shape {
	out := make([]Shape, len(shapes))
	for i, s := range shapes {
		out[i] = s.Clone()
	}
	return out
}
