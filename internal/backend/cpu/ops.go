package cpu

import (
	"math"

	"github.com/born-ml/ndarray/internal/ndarray"
)

// domain is the representation a kernel computes in. Accessors convert
// between the domain and each operand's dtype.
type domain int

const (
	boolDomain domain = iota
	intDomain
	floatDomain
)

func domainOf(dt ndarray.DataType) domain {
	switch {
	case dt == ndarray.Bool:
		return boolDomain
	case dt.IsFloat():
		return floatDomain
	default:
		return intDomain
	}
}

// binaryDomain picks the computation domain of op producing dtype rt.
func binaryDomain(op ndarray.BinaryOp, rt ndarray.DataType) domain {
	switch {
	case op.IsLogical():
		return boolDomain
	case rt == ndarray.Bool:
		// minimum/maximum of two bools
		return intDomain
	}
	return domainOf(rt)
}

// Binary computes op(a, b) elementwise with NumPy-style broadcasting.
//
// Integer floor division and modulo by zero, and integer powers with negative
// exponents, are detected before the output is produced.
func (cpu *CPUBackend) Binary(op ndarray.BinaryOp, a, b *ndarray.RawArray) (*ndarray.RawArray, error) {
	rt, err := ndarray.ResultType(op, a.DType(), b.DType())
	if err != nil {
		return nil, err
	}
	shape, err := broadcastShapes(op.String(), a.Shape(), b.Shape())
	if err != nil {
		return nil, err
	}
	out := ndarray.MustRaw(shape, rt)
	if out.NumElements() == 0 {
		return out, nil
	}

	ac, bc, oc := ndarray.NewAccessor(a), ndarray.NewAccessor(b), ndarray.NewAccessor(out)
	views := []view{broadcastView(a, shape), broadcastView(b, shape), selfView(out)}

	switch binaryDomain(op, rt) {
	case boolDomain:
		f := boolBinary(op)
		cpu.forEach(shape, views, func(idx []int) {
			oc.SetBool(idx[2], f(ac.Bool(idx[0]), bc.Bool(idx[1])))
		})
	case intDomain:
		if err := checkIntOperand(op, b); err != nil {
			return nil, err
		}
		f := intBinary(op)
		cpu.forEach(shape, views, func(idx []int) {
			oc.SetInt(idx[2], f(ac.Int(idx[0]), bc.Int(idx[1])))
		})
	default:
		f := floatBinary(op)
		cpu.forEach(shape, views, func(idx []int) {
			oc.SetFloat(idx[2], f(ac.Float(idx[0]), bc.Float(idx[1])))
		})
	}
	return out, nil
}

// checkIntOperand rejects right-hand operands that have no integer result:
// zero divisors for floor division and modulo, negative exponents for power.
func checkIntOperand(op ndarray.BinaryOp, b *ndarray.RawArray) error {
	if op != ndarray.FloorDivide && op != ndarray.Mod && op != ndarray.Power {
		return nil
	}
	bc := ndarray.NewAccessor(b)
	for i := 0; i < b.NumElements(); i++ {
		if err := checkIntValue(op, bc.Int(b.StorageIndex(i))); err != nil {
			return err
		}
	}
	return nil
}

func checkIntValue(op ndarray.BinaryOp, v int64) error {
	switch {
	case (op == ndarray.FloorDivide || op == ndarray.Mod) && v == 0:
		return &ndarray.DivisionByZeroError{Op: op.String()}
	case op == ndarray.Power && v < 0:
		return ndarray.ValueErrorf(op.String(), "integers to negative integer powers are not allowed")
	}
	return nil
}

func boolBinary(op ndarray.BinaryOp) func(a, b bool) bool {
	switch op {
	case ndarray.LogicalAnd:
		return func(a, b bool) bool { return a && b }
	case ndarray.LogicalOr:
		return func(a, b bool) bool { return a || b }
	case ndarray.LogicalXor:
		return func(a, b bool) bool { return a != b }
	}
	panic("bool kernel requested for " + op.String())
}

func intBinary(op ndarray.BinaryOp) func(a, b int64) int64 {
	switch op {
	case ndarray.Add:
		return func(a, b int64) int64 { return a + b }
	case ndarray.Subtract:
		return func(a, b int64) int64 { return a - b }
	case ndarray.Multiply:
		return func(a, b int64) int64 { return a * b }
	case ndarray.FloorDivide:
		return floorDivInt
	case ndarray.Mod:
		return modInt
	case ndarray.Power:
		return powInt
	case ndarray.Minimum:
		return func(a, b int64) int64 { return min(a, b) }
	case ndarray.Maximum:
		return func(a, b int64) int64 { return max(a, b) }
	}
	panic("int kernel requested for " + op.String())
}

func floatBinary(op ndarray.BinaryOp) func(a, b float64) float64 {
	switch op {
	case ndarray.Add:
		return func(a, b float64) float64 { return a + b }
	case ndarray.Subtract:
		return func(a, b float64) float64 { return a - b }
	case ndarray.Multiply:
		return func(a, b float64) float64 { return a * b }
	case ndarray.Divide:
		return func(a, b float64) float64 { return a / b }
	case ndarray.FloorDivide:
		return func(a, b float64) float64 { return math.Floor(a / b) }
	case ndarray.Mod:
		return modFloat
	case ndarray.Power:
		return math.Pow
	case ndarray.Minimum:
		return math.Min // NaN propagates
	case ndarray.Maximum:
		return math.Max
	}
	panic("float kernel requested for " + op.String())
}

// floorDivInt rounds the quotient toward negative infinity. b must be nonzero.
func floorDivInt(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// modInt returns a remainder with the sign of b. b must be nonzero.
func modInt(a, b int64) int64 {
	r := a % b
	if r != 0 && (r < 0) != (b < 0) {
		r += b
	}
	return r
}

// powInt computes a**b by squaring. b must be non-negative; overflow wraps.
func powInt(a, b int64) int64 {
	result := int64(1)
	for b > 0 {
		if b&1 == 1 {
			result *= a
		}
		a *= a
		b >>= 1
	}
	return result
}

func modFloat(a, b float64) float64 {
	r := math.Mod(a, b)
	if r != 0 && (r < 0) != (b < 0) {
		r += b
	}
	return r
}
