package ndarray

import (
	"fmt"
	"math"
	"reflect"
)

// FromSlice creates an array of the given shape from row-major data.
// The data is copied.
//
// Example:
//
//	x, err := ndarray.FromSlice([]int64{0, 1, 2, 3, 4, 5}, ndarray.Shape{2, 3}, backend)
func FromSlice[T DType](data []T, shape Shape, b Backend) (*Array, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if len(data) != shape.NumElements() {
		return nil, ShapeErrorf("from_slice", "cannot place %d elements into shape %v", len(data), shape)
	}
	raw := MustRaw(shape, inferDataType[T]())
	copy(Storage[T](raw), data)
	return New(raw, b), nil
}

// FromNested creates an array from nested Go slices or arrays, e.g. [][]int
// or []any{[]float64{1, 2}, []int{3, 4}}.
//
// The shape is inferred from nesting depth and lengths; ragged input returns a
// *ShapeError. The dtype follows the Go element kinds (int, int8, int16 and
// the unsigned kinds above uint8 map to int64), promoted across mixed leaves.
func FromNested(v any, b Backend) (*Array, error) {
	const op = "from_nested"
	root := unwrap(reflect.ValueOf(v))
	if !root.IsValid() {
		return nil, &DtypeError{Op: op, Details: "nil input"}
	}

	var shape Shape
	dtype, typed := Float64, false
	for cur := root; isSequence(cur); {
		shape = append(shape, cur.Len())
		if cur.Len() == 0 {
			dtype, typed = elemDataType(cur.Type())
			break
		}
		cur = unwrap(cur.Index(0))
	}
	if shape == nil {
		shape = Shape{}
	}

	leaves := make([]scalar, 0, shape.NumElements())
	var walk func(val reflect.Value, depth int) error
	walk = func(val reflect.Value, depth int) error {
		val = unwrap(val)
		if depth == len(shape) {
			if isSequence(val) {
				return ShapeErrorf(op, "inhomogeneous shape: sequence found at depth %d, expected scalars", depth)
			}
			s, dt, err := leafScalar(op, val)
			if err != nil {
				return err
			}
			if !typed {
				dtype, typed = dt, true
			} else {
				dtype = PromoteTypes(dtype, dt)
			}
			leaves = append(leaves, s)
			return nil
		}
		if !isSequence(val) {
			return ShapeErrorf(op, "inhomogeneous shape: scalar found at depth %d, expected length %d", depth, shape[depth])
		}
		if val.Len() != shape[depth] {
			return ShapeErrorf(op, "inhomogeneous shape: length %d at depth %d, expected %d", val.Len(), depth, shape[depth])
		}
		for i := 0; i < val.Len(); i++ {
			if err := walk(val.Index(i), depth+1); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(root, 0); err != nil {
		return nil, err
	}

	raw := MustRaw(shape, dtype)
	acc := NewAccessor(raw)
	for i, s := range leaves {
		s.store(acc, i)
	}
	return New(raw, b), nil
}

// Scalar creates a 0-d array holding v with v's natural dtype.
func Scalar(v any, b Backend) (*Array, error) {
	return FromNested(v, b)
}

func unwrap(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Interface || v.Kind() == reflect.Pointer) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

func isSequence(v reflect.Value) bool {
	return v.IsValid() && (v.Kind() == reflect.Slice || v.Kind() == reflect.Array)
}

// elemDataType derives the dtype of an empty sequence from its static element type.
func elemDataType(t reflect.Type) (DataType, bool) {
	for t.Kind() == reflect.Slice || t.Kind() == reflect.Array {
		t = t.Elem()
	}
	dt, ok := kindDataType(t.Kind())
	if !ok {
		return Float64, false
	}
	return dt, true
}

func kindDataType(k reflect.Kind) (DataType, bool) {
	switch k {
	case reflect.Bool:
		return Bool, true
	case reflect.Uint8:
		return Uint8, true
	case reflect.Int32:
		return Int32, true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int64,
		reflect.Uint, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Int64, true
	case reflect.Float32:
		return Float32, true
	case reflect.Float64:
		return Float64, true
	}
	return 0, false
}

func leafScalar(op string, v reflect.Value) (scalar, DataType, error) {
	if !v.IsValid() {
		return scalar{}, 0, &DtypeError{Op: op, Details: "nil element"}
	}
	dt, ok := kindDataType(v.Kind())
	if !ok {
		return scalar{}, 0, &DtypeError{Op: op, Details: fmt.Sprintf("unsupported element type %s", v.Type())}
	}
	switch {
	case dt == Bool:
		return scalar{kind: Bool, b: v.Bool()}, dt, nil
	case dt.IsFloat():
		return scalar{kind: Float64, f: v.Float()}, dt, nil
	case v.CanInt():
		return scalar{kind: Int64, i: v.Int()}, dt, nil
	default:
		return scalar{kind: Int64, i: int64(v.Uint())}, dt, nil //nolint:gosec // G115: wraps like the storage cast does
	}
}

// Zeros creates an array filled with zeros.
//
// Example:
//
//	z, _ := ndarray.Zeros(ndarray.Shape{3, 4}, ndarray.Float64, backend)
func Zeros(shape Shape, dtype DataType, b Backend) (*Array, error) {
	raw, err := NewRaw(shape, dtype)
	if err != nil {
		return nil, err
	}
	return New(raw, b), nil
}

// Empty creates an array without meaningful contents.
// Storage is always zeroed in Go, so Empty is Zeros.
func Empty(shape Shape, dtype DataType, b Backend) (*Array, error) {
	return Zeros(shape, dtype, b)
}

// Ones creates an array filled with ones.
func Ones(shape Shape, dtype DataType, b Backend) (*Array, error) {
	return Full(shape, dtype, 1, b)
}

// Full creates an array filled with value, cast to dtype.
//
// Example:
//
//	f, _ := ndarray.Full(ndarray.Shape{3, 5}, ndarray.Float64, 3.14, backend)
func Full(shape Shape, dtype DataType, value any, b Backend) (*Array, error) {
	s, err := parseScalar("full", value)
	if err != nil {
		return nil, err
	}
	raw, err := NewRaw(shape, dtype)
	if err != nil {
		return nil, err
	}
	acc := NewAccessor(raw)
	for i := 0; i < raw.NumElements(); i++ {
		s.store(acc, i)
	}
	return New(raw, b), nil
}

// ZerosLike creates a zero array with a's shape and dtype.
func ZerosLike(a *Array) *Array {
	return New(MustRaw(a.Shape(), a.DType()), a.backend)
}

// OnesLike creates an array of ones with a's shape and dtype.
func OnesLike(a *Array) *Array {
	out, _ := Full(a.Shape(), a.DType(), 1, a.backend) //nolint:errcheck // shape and dtype come from a valid array
	return out
}

// FullLike creates an array with a's shape and dtype filled with value.
func FullLike(a *Array, value any) (*Array, error) {
	return Full(a.Shape(), a.DType(), value, a.backend)
}

// FromFunc creates an array whose element at coords is fn(coords), cast to dtype.
// fn is called in row-major order and must not retain coords.
//
// Example:
//
//	// 5x5 multiplication table
//	m, _ := ndarray.FromFunc(ndarray.Shape{5, 5}, ndarray.Int64, func(c []int) float64 {
//		return float64((c[0] + 1) * (c[1] + 1))
//	}, backend)
func FromFunc(shape Shape, dtype DataType, fn func(coords []int) float64, b Backend) (*Array, error) {
	raw, err := NewRaw(shape, dtype)
	if err != nil {
		return nil, err
	}
	acc := NewAccessor(raw)
	coords := make([]int, len(shape))
	for i := 0; i < raw.NumElements(); i++ {
		shape.Unravel(i, coords)
		acc.SetFloat(i, fn(coords))
	}
	return New(raw, b), nil
}

// Arange creates a 1-D int64 array with values in [start, stop) spaced by step.
//
// Example:
//
//	x, _ := ndarray.Arange(0, 10, 1, backend) // [0 1 2 3 4 5 6 7 8 9]
func Arange(start, stop, step int, b Backend) (*Array, error) {
	if step == 0 {
		return nil, ValueErrorf("arange", "step cannot be zero")
	}
	n := 0
	if step > 0 && stop > start {
		n = (stop - start + step - 1) / step
	} else if step < 0 && start > stop {
		n = (start - stop - step - 1) / -step
	}
	raw := MustRaw(Shape{n}, Int64)
	data := raw.AsInt64()
	for i := range data {
		data[i] = int64(start + i*step)
	}
	return New(raw, b), nil
}

// ArangeFloat creates a 1-D float64 array with values in [start, stop) spaced by step.
func ArangeFloat(start, stop, step float64, b Backend) (*Array, error) {
	if step == 0 || math.IsNaN(step) {
		return nil, ValueErrorf("arange", "step must be nonzero, got %v", step)
	}
	n := int(math.Max(math.Ceil((stop-start)/step), 0))
	raw := MustRaw(Shape{n}, Float64)
	data := raw.AsFloat64()
	for i := range data {
		data[i] = start + float64(i)*step
	}
	return New(raw, b), nil
}

// Linspace creates num evenly spaced float64 values over [start, stop].
func Linspace(start, stop float64, num int, b Backend) (*Array, error) {
	if num < 0 {
		return nil, ValueErrorf("linspace", "number of samples must be non-negative, got %d", num)
	}
	raw := MustRaw(Shape{num}, Float64)
	data := raw.AsFloat64()
	if num == 1 {
		data[0] = start
	}
	if num > 1 {
		step := (stop - start) / float64(num-1)
		for i := range data {
			data[i] = start + float64(i)*step
		}
		data[num-1] = stop
	}
	return New(raw, b), nil
}

// Eye creates an n x n identity matrix.
func Eye(n int, dtype DataType, b Backend) (*Array, error) {
	a, err := Zeros(Shape{n, n}, dtype, b)
	if err != nil {
		return nil, err
	}
	acc := NewAccessor(a.raw)
	for i := 0; i < n; i++ {
		acc.SetInt(i*n+i, 1)
	}
	return a, nil
}
