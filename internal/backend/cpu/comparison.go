package cpu

import (
	"github.com/born-ml/ndarray/internal/ndarray"
)

// Compare computes op(a, b) elementwise with broadcasting and returns a bool array.
// Operands are compared in their common type; NaN compares unequal to everything.
func (cpu *CPUBackend) Compare(op ndarray.CompareOp, a, b *ndarray.RawArray) (*ndarray.RawArray, error) {
	shape, err := broadcastShapes(op.String(), a.Shape(), b.Shape())
	if err != nil {
		return nil, err
	}
	out := ndarray.MustRaw(shape, ndarray.Bool)
	if out.NumElements() == 0 {
		return out, nil
	}

	ac, bc, oc := ndarray.NewAccessor(a), ndarray.NewAccessor(b), ndarray.NewAccessor(out)
	views := []view{broadcastView(a, shape), broadcastView(b, shape), selfView(out)}

	if ndarray.PromoteTypes(a.DType(), b.DType()).IsFloat() {
		f := compareFunc[float64](op)
		cpu.forEach(shape, views, func(idx []int) {
			oc.SetBool(idx[2], f(ac.Float(idx[0]), bc.Float(idx[1])))
		})
		return out, nil
	}
	f := compareFunc[int64](op)
	cpu.forEach(shape, views, func(idx []int) {
		oc.SetBool(idx[2], f(ac.Int(idx[0]), bc.Int(idx[1])))
	})
	return out, nil
}

func compareFunc[T int64 | float64](op ndarray.CompareOp) func(a, b T) bool {
	switch op {
	case ndarray.Less:
		return func(a, b T) bool { return a < b }
	case ndarray.LessEqual:
		return func(a, b T) bool { return a <= b }
	case ndarray.Greater:
		return func(a, b T) bool { return a > b }
	case ndarray.GreaterEqual:
		return func(a, b T) bool { return a >= b }
	case ndarray.Equal:
		return func(a, b T) bool { return a == b }
	case ndarray.NotEqual:
		return func(a, b T) bool { return a != b }
	}
	panic("unknown comparison " + op.String())
}
