package cpu

import (
	"github.com/born-ml/ndarray/internal/ndarray"
)

// Where selects x where cond is nonzero and y elsewhere. All three broadcast
// together; the result has the common type of x and y.
func (cpu *CPUBackend) Where(cond, x, y *ndarray.RawArray) (*ndarray.RawArray, error) {
	shape, err := broadcastShapes("where", cond.Shape(), x.Shape(), y.Shape())
	if err != nil {
		return nil, err
	}
	rt := ndarray.PromoteTypes(x.DType(), y.DType())
	out := ndarray.MustRaw(shape, rt)
	if out.NumElements() == 0 {
		return out, nil
	}

	cc, xc, yc, oc := ndarray.NewAccessor(cond), ndarray.NewAccessor(x), ndarray.NewAccessor(y), ndarray.NewAccessor(out)
	views := []view{broadcastView(cond, shape), broadcastView(x, shape), broadcastView(y, shape), selfView(out)}

	switch domainOf(rt) {
	case floatDomain:
		cpu.forEach(shape, views, func(idx []int) {
			if cc.Bool(idx[0]) {
				oc.SetFloat(idx[3], xc.Float(idx[1]))
			} else {
				oc.SetFloat(idx[3], yc.Float(idx[2]))
			}
		})
	case boolDomain:
		cpu.forEach(shape, views, func(idx []int) {
			if cc.Bool(idx[0]) {
				oc.SetBool(idx[3], xc.Bool(idx[1]))
			} else {
				oc.SetBool(idx[3], yc.Bool(idx[2]))
			}
		})
	default:
		cpu.forEach(shape, views, func(idx []int) {
			if cc.Bool(idx[0]) {
				oc.SetInt(idx[3], xc.Int(idx[1]))
			} else {
				oc.SetInt(idx[3], yc.Int(idx[2]))
			}
		})
	}
	return out, nil
}

// Concatenate joins arrays along an existing axis. All inputs must have the
// same rank and agree on every other axis; the result has their common type.
func (cpu *CPUBackend) Concatenate(xs []*ndarray.RawArray, axis int) (*ndarray.RawArray, error) {
	const op = "concatenate"
	if len(xs) == 0 {
		return nil, ndarray.ValueErrorf(op, "need at least one array to concatenate")
	}
	first := xs[0]
	if first.NDim() == 0 {
		return nil, ndarray.ValueErrorf(op, "zero-dimensional arrays cannot be concatenated")
	}
	axis, err := ndarray.NormalizeAxis(op, axis, first.NDim())
	if err != nil {
		return nil, err
	}

	shape := first.Shape().Clone()
	shape[axis] = 0
	dtype := first.DType()
	for i, x := range xs {
		if x.NDim() != first.NDim() {
			return nil, ndarray.ShapeErrorf(op,
				"all the input arrays must have same number of dimensions, array 0 has %d dimension(s) and array %d has %d",
				first.NDim(), i, x.NDim())
		}
		for d, n := range x.Shape() {
			if d != axis && n != shape[d] {
				return nil, ndarray.ShapeErrorf(op,
					"input array dimensions must match except along axis %d: array %d has size %d at axis %d, expected %d",
					axis, i, n, d, shape[d])
			}
		}
		shape[axis] += x.Shape()[axis]
		dtype = ndarray.PromoteTypes(dtype, x.DType())
	}

	out := ndarray.MustRaw(shape, dtype)
	strides := out.Strides()
	pos := 0
	for _, x := range xs {
		part := out.View(x.Shape(), strides, pos*strides[axis])
		cpu.assign(part, x)
		pos += x.Shape()[axis]
	}
	return out, nil
}
