// Package ndarray provides the core array types and operations for the ndarray module.
package ndarray

// DType is a constraint for supported element types.
// It uses Go generics to ensure compile-time type safety at the edges of the API
// (FromSlice, ToSlice); inside the package dtype is runtime information.
type DType interface {
	~float32 | ~float64 | ~int32 | ~int64 | ~uint8 | ~bool
}

// Number is the numeric subset of DType.
type Number interface {
	~float32 | ~float64 | ~int32 | ~int64 | ~uint8
}

// DataType represents runtime type information for arrays.
type DataType int

// Supported data types, in promotion order.
const (
	Bool DataType = iota
	Uint8
	Int32
	Int64
	Float32
	Float64
)

// Size returns the byte size of the data type.
func (dt DataType) Size() int {
	switch dt {
	case Float32, Int32:
		return 4
	case Float64, Int64:
		return 8
	case Uint8, Bool:
		return 1
	default:
		panic("unknown data type")
	}
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Uint8:
		return "uint8"
	case Bool:
		return "bool"
	default:
		return "unknown"
	}
}

// IsFloat reports whether dt is a floating-point type.
func (dt DataType) IsFloat() bool {
	return dt == Float32 || dt == Float64
}

// IsInteger reports whether dt is an integer type (bool excluded).
func (dt DataType) IsInteger() bool {
	return dt == Uint8 || dt == Int32 || dt == Int64
}

// Valid reports whether dt is one of the supported data types.
func (dt DataType) Valid() bool {
	return dt >= Bool && dt <= Float64
}

// PromoteTypes returns the common type of two dtypes.
//
// Rule: the higher of the two in the order bool < uint8 < int32 < int64 < float32 < float64,
// except that float32 combined with int32 or int64 gives float64.
func PromoteTypes(a, b DataType) DataType {
	if a > b {
		a, b = b, a
	}
	if b == Float32 && (a == Int32 || a == Int64) {
		return Float64
	}
	return b
}

// inferDataType infers DataType from a generic type T.
func inferDataType[T DType]() DataType {
	var dummy T
	switch any(dummy).(type) {
	case float32:
		return Float32
	case float64:
		return Float64
	case int32:
		return Int32
	case int64:
		return Int64
	case uint8:
		return Uint8
	case bool:
		return Bool
	default:
		panic("unsupported type")
	}
}
