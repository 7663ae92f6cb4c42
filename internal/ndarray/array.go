package ndarray

import (
	"fmt"
	"math"
	"reflect"

	"github.com/born-ml/ndarray/internal/config"
)

// Array is a dense N-dimensional array backed by a RawArray and a compute backend.
//
// The shape and dtype of an Array never change; its contents are mutable through
// Set and At. Arrays returned by basic indexing, Reshape of contiguous data,
// Transpose and BroadcastTo are views sharing storage with their source.
//
// Example:
//
//	b := cpu.New()
//	x, _ := ndarray.FromNested([][]int{{5, 0, 3, 3}, {7, 9, 3, 5}, {2, 4, 7, 6}}, b)
//	mask, _ := x.Less(6)
//	n, _ := mask.CountNonzero() // 8
type Array struct {
	raw     *RawArray
	backend Backend
}

// New creates an Array from a RawArray and backend.
func New(raw *RawArray, b Backend) *Array {
	return &Array{raw: raw, backend: b}
}

func (*Array) isIndex() {}

// Shape returns the array's shape.
func (a *Array) Shape() Shape {
	return a.raw.Shape()
}

// NDim returns the number of dimensions.
func (a *Array) NDim() int {
	return a.raw.NDim()
}

// Size returns the total number of elements.
func (a *Array) Size() int {
	return a.raw.NumElements()
}

// DType returns the element type.
func (a *Array) DType() DataType {
	return a.raw.DType()
}

// Strides returns the element strides of the underlying mapping.
func (a *Array) Strides() []int {
	return a.raw.Strides()
}

// Raw returns the underlying RawArray.
// Used by backend implementations for low-level operations.
func (a *Array) Raw() *RawArray {
	return a.raw
}

// Backend returns the computation backend.
func (a *Array) Backend() Backend {
	return a.backend
}

// IsContiguous reports whether the elements are laid out row-major without gaps.
func (a *Array) IsContiguous() bool {
	return a.raw.IsContiguous()
}

// SharesMemory reports whether a and other view the same storage.
func (a *Array) SharesMemory(other *Array) bool {
	return a.raw.SharesStorage(other.raw)
}

// Copy returns a contiguous deep copy.
func (a *Array) Copy() *Array {
	return New(a.raw.Copy(), a.backend)
}

// String renders the array with the process-wide print options.
func (a *Array) String() string {
	return Format(a, config.Current().Print)
}

// Float64 returns the single element of a size-1 array as float64.
func (a *Array) Float64() (float64, error) {
	i, err := a.single("float64")
	if err != nil {
		return 0, err
	}
	return NewAccessor(a.raw).Float(i), nil
}

// Int64 returns the single element of a size-1 array as int64 (floats truncate).
func (a *Array) Int64() (int64, error) {
	i, err := a.single("int64")
	if err != nil {
		return 0, err
	}
	return NewAccessor(a.raw).Int(i), nil
}

// Bool returns the truth value of the single element of a size-1 array.
func (a *Array) Bool() (bool, error) {
	i, err := a.single("bool")
	if err != nil {
		return false, err
	}
	return NewAccessor(a.raw).Bool(i), nil
}

func (a *Array) single(op string) (int, error) {
	if a.Size() != 1 {
		return 0, ShapeErrorf(op, "only size-1 arrays can be converted to scalars, got shape %v", a.Shape())
	}
	return a.raw.StorageIndex(0), nil
}

// Item returns the element at the given coordinates as float64.
// Negative coordinates count from the end.
func (a *Array) Item(coords ...int) (float64, error) {
	if len(coords) != a.NDim() {
		return 0, IndexErrorf("item", "expected %d indices, got %d", a.NDim(), len(coords))
	}
	resolved := make([]int, len(coords))
	for d, c := range coords {
		k, err := normalizeIndex(c, a.Shape()[d], d)
		if err != nil {
			return 0, err
		}
		resolved[d] = k
	}
	return NewAccessor(a.raw).Float(a.raw.StorageIndexOf(resolved)), nil
}

// ToFloat64s returns the elements in row-major order converted to float64.
func (a *Array) ToFloat64s() []float64 {
	acc := NewAccessor(a.raw)
	out := make([]float64, a.Size())
	for i := range out {
		out[i] = acc.Float(a.raw.StorageIndex(i))
	}
	return out
}

// ToInt64s returns the elements in row-major order converted to int64.
func (a *Array) ToInt64s() []int64 {
	acc := NewAccessor(a.raw)
	out := make([]int64, a.Size())
	for i := range out {
		out[i] = acc.Int(a.raw.StorageIndex(i))
	}
	return out
}

// ToBools returns the truth value of every element in row-major order.
func (a *Array) ToBools() []bool {
	acc := NewAccessor(a.raw)
	out := make([]bool, a.Size())
	for i := range out {
		out[i] = acc.Bool(a.raw.StorageIndex(i))
	}
	return out
}

// ToSlice copies the elements in row-major order into a new []T.
// T must match the array's dtype exactly.
func ToSlice[T DType](a *Array) ([]T, error) {
	if want := inferDataType[T](); want != a.DType() {
		return nil, &DtypeError{Op: "to_slice", DTypes: []DataType{a.DType(), want}, Details: "element type mismatch"}
	}
	out := make([]T, a.Size())
	copyInto(out, Storage[T](a.raw), a.raw)
	return out, nil
}

// operand converts the right-hand side of an operation into a RawArray.
// Nested Go slices and arrays go through FromNested. Go scalars are weak: they
// adopt a's dtype where the kinds allow it.
func (a *Array) operand(op string, v any) (*RawArray, error) {
	switch x := v.(type) {
	case *Array:
		if x == nil {
			return nil, &DtypeError{Op: op, Details: "nil array operand"}
		}
		return x.raw, nil
	case *RawArray:
		return x, nil
	}
	if isSequence(unwrap(reflect.ValueOf(v))) {
		arr, err := FromNested(v, a.backend)
		if err != nil {
			return nil, err
		}
		return arr.raw, nil
	}
	return weakScalar(op, v, a.DType())
}

// weakScalar builds a 0-d array from a Go scalar, choosing the dtype by the weak
// scalar rule relative to like.
func weakScalar(op string, v any, like DataType) (*RawArray, error) {
	s, err := parseScalar(op, v)
	if err != nil {
		return nil, err
	}
	var dt DataType
	switch s.kind {
	case Bool:
		dt = Bool
	case Int64:
		dt = like
		if like == Bool {
			dt = Int64
		}
		if dt.IsInteger() && !fitsInteger(s.i, dt) {
			return nil, ValueErrorf(op, "integer scalar %d out of bounds for %s", s.i, dt)
		}
	default:
		dt = Float64
		if like.IsFloat() {
			dt = like
		}
	}
	raw := MustRaw(Shape{}, dt)
	s.store(NewAccessor(raw), 0)
	return raw, nil
}

// fitsInteger reports whether v is representable in the integer dtype dt.
func fitsInteger(v int64, dt DataType) bool {
	switch dt {
	case Uint8:
		return v >= 0 && v <= math.MaxUint8
	case Int32:
		return v >= math.MinInt32 && v <= math.MaxInt32
	}
	return true
}

// scalar is a Go value classified into a computation domain.
type scalar struct {
	kind DataType // Bool, Int64 or Float64
	f    float64
	i    int64
	b    bool
}

func (s scalar) store(acc Accessor, i int) {
	switch s.kind {
	case Bool:
		acc.SetBool(i, s.b)
	case Int64:
		acc.SetInt(i, s.i)
	default:
		acc.SetFloat(i, s.f)
	}
}

func parseScalar(op string, v any) (scalar, error) {
	switch x := v.(type) {
	case bool:
		return scalar{kind: Bool, b: x}, nil
	case int:
		return scalar{kind: Int64, i: int64(x)}, nil
	case int8:
		return scalar{kind: Int64, i: int64(x)}, nil
	case int16:
		return scalar{kind: Int64, i: int64(x)}, nil
	case int32:
		return scalar{kind: Int64, i: int64(x)}, nil
	case int64:
		return scalar{kind: Int64, i: x}, nil
	case uint:
		return scalar{kind: Int64, i: int64(x)}, nil //nolint:gosec // G115: wraps like the storage cast does
	case uint8:
		return scalar{kind: Int64, i: int64(x)}, nil
	case uint16:
		return scalar{kind: Int64, i: int64(x)}, nil
	case uint32:
		return scalar{kind: Int64, i: int64(x)}, nil
	case uint64:
		return scalar{kind: Int64, i: int64(x)}, nil //nolint:gosec // G115: wraps like the storage cast does
	case float32:
		return scalar{kind: Float64, f: float64(x)}, nil
	case float64:
		return scalar{kind: Float64, f: x}, nil
	}
	return scalar{}, &DtypeError{Op: op, Details: fmt.Sprintf("unsupported operand type %T", v)}
}
