package cpu

import (
	"math"

	"github.com/born-ml/ndarray/internal/ndarray"
)

// Unary computes op(x) elementwise.
// Domain errors follow IEEE-754: sqrt(-1) and log(-1) are NaN, log(0) is -Inf.
func (cpu *CPUBackend) Unary(op ndarray.UnaryOp, x *ndarray.RawArray) (*ndarray.RawArray, error) {
	rt, err := ndarray.UnaryResultType(op, x.DType())
	if err != nil {
		return nil, err
	}
	out := ndarray.MustRaw(x.Shape(), rt)
	if out.NumElements() == 0 {
		return out, nil
	}

	xc, oc := ndarray.NewAccessor(x), ndarray.NewAccessor(out)
	views := []view{selfView(x), selfView(out)}

	switch {
	case op == ndarray.LogicalNot:
		cpu.forEach(x.Shape(), views, func(idx []int) {
			oc.SetBool(idx[1], !xc.Bool(idx[0]))
		})
	case rt.IsFloat():
		f := floatUnary(op)
		cpu.forEach(x.Shape(), views, func(idx []int) {
			oc.SetFloat(idx[1], f(xc.Float(idx[0])))
		})
	default:
		f := intUnary(op)
		cpu.forEach(x.Shape(), views, func(idx []int) {
			oc.SetInt(idx[1], f(xc.Int(idx[0])))
		})
	}
	return out, nil
}

func floatUnary(op ndarray.UnaryOp) func(float64) float64 {
	switch op {
	case ndarray.Negative:
		return func(v float64) float64 { return -v }
	case ndarray.Absolute:
		return math.Abs
	case ndarray.Square:
		return func(v float64) float64 { return v * v }
	case ndarray.Sqrt:
		return math.Sqrt
	case ndarray.Sin:
		return math.Sin
	case ndarray.Cos:
		return math.Cos
	case ndarray.Tan:
		return math.Tan
	case ndarray.Exp:
		return math.Exp
	case ndarray.Exp2:
		return math.Exp2
	case ndarray.Log:
		return math.Log
	case ndarray.Log2:
		return math.Log2
	case ndarray.Log10:
		return math.Log10
	case ndarray.Floor:
		return math.Floor
	case ndarray.Ceil:
		return math.Ceil
	}
	panic("float kernel requested for " + op.String())
}

// intUnary covers the ops that keep integers integral. Floor and Ceil are the
// identity on integers.
func intUnary(op ndarray.UnaryOp) func(int64) int64 {
	switch op {
	case ndarray.Negative:
		return func(v int64) int64 { return -v }
	case ndarray.Absolute:
		return func(v int64) int64 {
			if v < 0 {
				return -v
			}
			return v
		}
	case ndarray.Square:
		return func(v int64) int64 { return v * v }
	case ndarray.Floor, ndarray.Ceil:
		return func(v int64) int64 { return v }
	}
	panic("int kernel requested for " + op.String())
}
