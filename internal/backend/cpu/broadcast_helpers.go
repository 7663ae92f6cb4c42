package cpu

import (
	"errors"

	"github.com/born-ml/ndarray/internal/ndarray"
)

// view addresses an operand as if it had the iteration shape: storage index =
// offset + Σ coord[d]*strides[d]. Broadcast axes have stride 0.
type view struct {
	offset  int
	strides []int
}

// broadcastView maps r onto the (broadcast-compatible) shape out.
func broadcastView(r *ndarray.RawArray, out ndarray.Shape) view {
	return view{
		offset:  r.Offset(),
		strides: ndarray.BroadcastStrides(r.Shape(), r.Strides(), out),
	}
}

// selfView maps r onto its own shape.
func selfView(r *ndarray.RawArray) view {
	return view{offset: r.Offset(), strides: r.Strides()}
}

// walk visits the row-major positions [start, end) of shape, keeping one
// running storage index per view instead of recomputing it from coordinates.
func walk(shape ndarray.Shape, views []view, start, end int, fn func(idx []int)) {
	if start >= end {
		return
	}
	ndim := len(shape)
	coords := make([]int, ndim)
	shape.Unravel(start, coords)

	idx := make([]int, len(views))
	for j, v := range views {
		idx[j] = v.offset
		for d, c := range coords {
			idx[j] += c * v.strides[d]
		}
	}

	for k := start; k < end; k++ {
		fn(idx)
		for d := ndim - 1; d >= 0; d-- {
			coords[d]++
			for j, v := range views {
				idx[j] += v.strides[d]
			}
			if coords[d] < shape[d] {
				break
			}
			for j, v := range views {
				idx[j] -= v.strides[d] * shape[d]
			}
			coords[d] = 0
		}
	}
}

// broadcastShapes wraps ndarray.BroadcastAll, naming the failing operation.
func broadcastShapes(op string, shapes ...ndarray.Shape) (ndarray.Shape, error) {
	out, err := ndarray.BroadcastAll(shapes...)
	if err != nil {
		var be *ndarray.BroadcastError
		if errors.As(err, &be) {
			be.Op = op
		}
		return nil, err
	}
	return out, nil
}

// fitValues checks that values can be broadcast onto a selection of shape
// target and returns the view that does so. Leading size-1 axes of values are
// dropped first, so a (1, 3) value fits a (3,) selection.
func fitValues(op string, values *ndarray.RawArray, target ndarray.Shape) (view, error) {
	shape, strides := values.Shape(), values.Strides()
	for len(shape) > len(target) && shape[0] == 1 {
		shape, strides = shape[1:], strides[1:]
	}
	out, err := broadcastShapes(op, shape, target)
	if err == nil && !out.Equal(target) {
		err = &ndarray.BroadcastError{Op: op, Shapes: []ndarray.Shape{values.Shape().Clone(), target.Clone()}, Axis: -1}
	}
	if err != nil {
		return view{}, err
	}
	return view{offset: values.Offset(), strides: ndarray.BroadcastStrides(shape, strides, target)}, nil
}
