package cpu

import (
	"github.com/born-ml/ndarray/internal/ndarray"
)

// foldIdentity returns the starting value of an empty fold, if op has one.
func foldIdentity(op ndarray.BinaryOp) (float64, bool) {
	switch op {
	case ndarray.Add:
		return 0, true
	case ndarray.Multiply:
		return 1, true
	}
	return 0, false
}

// Fold applies op left-to-right along axis: ((x0 op x1) op x2) ...
// Empty lanes take op's identity; ops without one return a *ValueError.
func (cpu *CPUBackend) Fold(op ndarray.BinaryOp, x *ndarray.RawArray, axis int, keepDims bool) (*ndarray.RawArray, error) {
	name := op.String() + ".reduce"
	axis, err := ndarray.NormalizeAxis(name, axis, x.NDim())
	if err != nil {
		return nil, err
	}
	rt, err := ndarray.ResultType(op, x.DType(), x.DType())
	if err != nil {
		return nil, err
	}
	ls := laneSet(x, axis, false, keepDims)
	out := ndarray.MustRaw(ls.shape, rt)
	if ls.length == 0 && len(ls.base) > 0 {
		identity, ok := foldIdentity(op)
		if !ok {
			return nil, ndarray.ValueErrorf(name, "zero-size array to reduction operation %s which has no identity", op)
		}
		oc := ndarray.NewAccessor(out)
		for l := range ls.base {
			oc.SetFloat(l, identity)
		}
		return out, nil
	}

	err = cpu.scan(op, rt, ls, func(l, j int) int {
		if j == ls.length-1 {
			return l
		}
		return -1
	}, out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Accumulate returns the running fold of op along axis, with x's shape.
func (cpu *CPUBackend) Accumulate(op ndarray.BinaryOp, x *ndarray.RawArray, axis int) (*ndarray.RawArray, error) {
	name := op.String() + ".accumulate"
	axis, err := ndarray.NormalizeAxis(name, axis, x.NDim())
	if err != nil {
		return nil, err
	}
	rt, err := ndarray.ResultType(op, x.DType(), x.DType())
	if err != nil {
		return nil, err
	}
	out := ndarray.MustRaw(x.Shape(), rt)
	ls := laneSet(x, axis, false, false)
	dst := laneSet(out, axis, false, false)

	err = cpu.scan(op, rt, ls, func(l, j int) int {
		return dst.at(l, j)
	}, out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// scan runs op along every lane, storing the running value at position j of
// lane l into out[target(l, j)] whenever target returns a non-negative index.
func (cpu *CPUBackend) scan(op ndarray.BinaryOp, rt ndarray.DataType, ls lanes, target func(l, j int) int, out *ndarray.RawArray) error {
	xc, oc := ndarray.NewAccessor(ls.src), ndarray.NewAccessor(out)

	switch binaryDomain(op, rt) {
	case boolDomain:
		f := boolBinary(op)
		for l := range ls.base {
			acc := false
			for j := 0; j < ls.length; j++ {
				v := xc.Bool(ls.at(l, j))
				if j == 0 {
					acc = v
				} else {
					acc = f(acc, v)
				}
				if t := target(l, j); t >= 0 {
					oc.SetBool(t, acc)
				}
			}
		}
	case intDomain:
		f := intBinary(op)
		for l := range ls.base {
			var acc int64
			for j := 0; j < ls.length; j++ {
				v := xc.Int(ls.at(l, j))
				if j == 0 {
					acc = v
				} else {
					if err := checkIntValue(op, v); err != nil {
						return err
					}
					acc = f(acc, v)
				}
				if t := target(l, j); t >= 0 {
					oc.SetInt(t, acc)
				}
			}
		}
	default:
		f := floatBinary(op)
		for l := range ls.base {
			var acc float64
			for j := 0; j < ls.length; j++ {
				v := xc.Float(ls.at(l, j))
				if j == 0 {
					acc = v
				} else {
					acc = f(acc, v)
				}
				if t := target(l, j); t >= 0 {
					oc.SetFloat(t, acc)
				}
			}
		}
	}
	return nil
}
