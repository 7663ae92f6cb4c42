package ndarray

// BinaryOp identifies an elementwise binary operation (a NumPy-style ufunc).
type BinaryOp int

// Binary operations.
const (
	Add BinaryOp = iota
	Subtract
	Multiply
	Divide
	FloorDivide
	Mod
	Power
	Minimum
	Maximum
	LogicalAnd
	LogicalOr
	LogicalXor
)

var binaryNames = [...]string{
	Add: "add", Subtract: "subtract", Multiply: "multiply", Divide: "divide",
	FloorDivide: "floor_divide", Mod: "mod", Power: "power", Minimum: "minimum",
	Maximum: "maximum", LogicalAnd: "logical_and", LogicalOr: "logical_or",
	LogicalXor: "logical_xor",
}

// String returns the ufunc name.
func (op BinaryOp) String() string {
	if op < 0 || int(op) >= len(binaryNames) {
		return "unknown"
	}
	return binaryNames[op]
}

// IsLogical reports whether op combines bool operands.
func (op BinaryOp) IsLogical() bool {
	return op == LogicalAnd || op == LogicalOr || op == LogicalXor
}

// UnaryOp identifies an elementwise unary operation.
type UnaryOp int

// Unary operations.
const (
	Negative UnaryOp = iota
	Absolute
	Square
	Sqrt
	Sin
	Cos
	Tan
	Exp
	Exp2
	Log
	Log2
	Log10
	Floor
	Ceil
	LogicalNot
)

var unaryNames = [...]string{
	Negative: "negative", Absolute: "absolute", Square: "square", Sqrt: "sqrt",
	Sin: "sin", Cos: "cos", Tan: "tan", Exp: "exp", Exp2: "exp2", Log: "log",
	Log2: "log2", Log10: "log10", Floor: "floor", Ceil: "ceil", LogicalNot: "logical_not",
}

// String returns the ufunc name.
func (op UnaryOp) String() string {
	if op < 0 || int(op) >= len(unaryNames) {
		return "unknown"
	}
	return unaryNames[op]
}

// IsTranscendental reports whether op always computes in floating point.
func (op UnaryOp) IsTranscendental() bool {
	switch op {
	case Sqrt, Sin, Cos, Tan, Exp, Exp2, Log, Log2, Log10:
		return true
	}
	return false
}

// CompareOp identifies an elementwise comparison.
type CompareOp int

// Comparison operations.
const (
	Less CompareOp = iota
	LessEqual
	Greater
	GreaterEqual
	Equal
	NotEqual
)

var compareNames = [...]string{
	Less: "less", LessEqual: "less_equal", Greater: "greater",
	GreaterEqual: "greater_equal", Equal: "equal", NotEqual: "not_equal",
}

// String returns the ufunc name.
func (op CompareOp) String() string {
	if op < 0 || int(op) >= len(compareNames) {
		return "unknown"
	}
	return compareNames[op]
}

// ReduceOp identifies an aggregation.
type ReduceOp int

// Aggregations.
const (
	ReduceSum ReduceOp = iota
	ReduceProd
	ReduceMin
	ReduceMax
	ReduceMean
	ReduceVar
	ReduceStd
	ReduceMedian
	ReducePercentile
	ReduceAll
	ReduceAny
	ReduceCountNonzero
	ReduceArgMin
	ReduceArgMax
)

var reduceNames = [...]string{
	ReduceSum: "sum", ReduceProd: "prod", ReduceMin: "min", ReduceMax: "max",
	ReduceMean: "mean", ReduceVar: "var", ReduceStd: "std", ReduceMedian: "median",
	ReducePercentile: "percentile", ReduceAll: "all", ReduceAny: "any",
	ReduceCountNonzero: "count_nonzero", ReduceArgMin: "argmin", ReduceArgMax: "argmax",
}

// String returns the aggregation name.
func (op ReduceOp) String() string {
	if op < 0 || int(op) >= len(reduceNames) {
		return "unknown"
	}
	return reduceNames[op]
}

// ReduceOptions parameterizes an aggregation.
type ReduceOptions struct {
	Axis     int  // axis to collapse (negative counts from the end); ignored when AllAxes
	AllAxes  bool // collapse every axis into a 0-d result
	KeepDims bool // keep collapsed axes with size 1
	DDof     int  // delta degrees of freedom for var/std
	Q        float64
}

// Backend defines the interface that compute backends implement.
// Backends handle the actual computation; Array validates arguments and
// wraps results.
//
// Implementations:
//   - CPU: pure Go (internal/backend/cpu)
type Backend interface {
	// Elementwise operations with broadcasting.
	Binary(op BinaryOp, a, b *RawArray) (*RawArray, error)
	Unary(op UnaryOp, x *RawArray) (*RawArray, error)
	Compare(op CompareOp, a, b *RawArray) (*RawArray, error)

	// Type conversion (always returns fresh contiguous storage).
	Cast(x *RawArray, dtype DataType) *RawArray

	// Aggregations.
	Reduce(op ReduceOp, x *RawArray, opts ReduceOptions) (*RawArray, error)
	Fold(op BinaryOp, x *RawArray, axis int, keepDims bool) (*RawArray, error)
	Accumulate(op BinaryOp, x *RawArray, axis int) (*RawArray, error)

	// Indexing: gather into a copy, scatter, and unbuffered in-place apply.
	Take(x *RawArray, plan *IndexPlan) *RawArray
	Put(x *RawArray, plan *IndexPlan, values *RawArray) error
	PutWith(op BinaryOp, x *RawArray, plan *IndexPlan, values *RawArray) error

	// Selection and search.
	Where(cond, x, y *RawArray) (*RawArray, error)
	Concatenate(xs []*RawArray, axis int) (*RawArray, error)
	SearchSorted(sorted, values *RawArray, right bool) (*RawArray, error)

	// Metadata
	Name() string
}

// ResultType returns the dtype produced by op on operands of dtypes a and b.
//
// The promotion rule is PromoteTypes, with two adjustments: arithmetic on two
// bools computes in int64, and true division of non-float operands gives float64.
// Logical ops require bool operands.
func ResultType(op BinaryOp, a, b DataType) (DataType, error) {
	switch op {
	case LogicalAnd, LogicalOr, LogicalXor:
		if a != Bool || b != Bool {
			return 0, &DtypeError{Op: op.String(), DTypes: []DataType{a, b}, Details: "operands must be bool"}
		}
		return Bool, nil
	case Divide:
		t := PromoteTypes(a, b)
		if !t.IsFloat() {
			return Float64, nil
		}
		return t, nil
	case Minimum, Maximum:
		return PromoteTypes(a, b), nil
	default:
		t := PromoteTypes(a, b)
		if t == Bool {
			return Int64, nil
		}
		return t, nil
	}
}

// UnaryResultType returns the dtype produced by op on an operand of dtype x.
func UnaryResultType(op UnaryOp, x DataType) (DataType, error) {
	switch {
	case op == LogicalNot:
		return Bool, nil
	case op.IsTranscendental():
		if x == Float32 {
			return Float32, nil
		}
		return Float64, nil
	case op == Floor || op == Ceil:
		return x, nil
	case x == Bool && (op == Negative || op == Absolute):
		return 0, &DtypeError{Op: op.String(), DTypes: []DataType{x}, Details: "not supported for bool"}
	case x == Bool:
		return Int64, nil
	}
	return x, nil
}
