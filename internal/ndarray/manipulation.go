package ndarray

import (
	"errors"
	"fmt"
)

// Reshape returns an array with the same elements and a new shape.
// One dimension may be -1 and is inferred. The result is a view when a is
// contiguous, otherwise a copy.
//
// Example:
//
//	x, _ := ndarray.Arange(0, 12, 1, backend)
//	m, _ := x.Reshape(3, -1) // shape (3, 4)
func (a *Array) Reshape(shape ...int) (*Array, error) {
	const op = "reshape"
	target := Shape(shape).Clone()
	infer := -1
	known := 1
	for i, d := range target {
		switch {
		case d == -1 && infer >= 0:
			return nil, ValueErrorf(op, "can only specify one unknown dimension")
		case d == -1:
			infer = i
		case d < 0:
			return nil, ShapeErrorf(op, "invalid dimension %d", d)
		default:
			known *= d
		}
	}
	size := a.Size()
	if infer >= 0 {
		if known == 0 || size%known != 0 {
			return nil, ShapeErrorf(op, "cannot reshape array of size %d into shape %v", size, Shape(shape))
		}
		target[infer] = size / known
	}
	if target.NumElements() != size {
		return nil, ShapeErrorf(op, "cannot reshape array of size %d into shape %v", size, Shape(shape))
	}

	src := a.raw.Contiguous()
	return New(src.View(target, target.ComputeStrides(), src.Offset()), a.backend), nil
}

// Transpose permutes the axes (reverses them when none are given). The result
// is a view.
func (a *Array) Transpose(axes ...int) (*Array, error) {
	const op = "transpose"
	n := a.NDim()
	if len(axes) == 0 {
		axes = make([]int, n)
		for i := range axes {
			axes[i] = n - 1 - i
		}
	}
	if len(axes) != n {
		return nil, ValueErrorf(op, "axes don't match array: got %d axes for %d dimensions", len(axes), n)
	}
	seen := make([]bool, n)
	shape := make(Shape, n)
	strides := make([]int, n)
	for i, ax := range axes {
		k, err := NormalizeAxis(op, ax, n)
		if err != nil {
			return nil, err
		}
		if seen[k] {
			return nil, ValueErrorf(op, "repeated axis %d in transpose", ax)
		}
		seen[k] = true
		shape[i] = a.Shape()[k]
		strides[i] = a.Strides()[k]
	}
	return New(a.raw.View(shape, strides, a.raw.Offset()), a.backend), nil
}

// T returns the transpose with reversed axes.
func (a *Array) T() *Array {
	t, _ := a.Transpose() //nolint:errcheck // reversing all axes is always valid
	return t
}

// Flatten returns a 1-D copy.
func (a *Array) Flatten() *Array {
	c := a.raw.Copy()
	return New(c.View(Shape{c.NumElements()}, []int{1}, 0), a.backend)
}

// Ravel returns a 1-D view when a is contiguous, otherwise a 1-D copy.
func (a *Array) Ravel() *Array {
	src := a.raw.Contiguous()
	return New(src.View(Shape{src.NumElements()}, []int{1}, src.Offset()), a.backend)
}

// Squeeze removes size-1 axes: the given ones, or all of them.
func (a *Array) Squeeze(axes ...int) (*Array, error) {
	const op = "squeeze"
	drop := make([]bool, a.NDim())
	if len(axes) == 0 {
		for i, d := range a.Shape() {
			drop[i] = d == 1
		}
	}
	for _, ax := range axes {
		k, err := NormalizeAxis(op, ax, a.NDim())
		if err != nil {
			return nil, err
		}
		if a.Shape()[k] != 1 {
			return nil, ValueErrorf(op, "cannot select an axis to squeeze out which has size not equal to one (axis %d)", k)
		}
		drop[k] = true
	}
	var shape Shape
	var strides []int
	for i, d := range a.Shape() {
		if drop[i] {
			continue
		}
		shape = append(shape, d)
		strides = append(strides, a.Strides()[i])
	}
	if shape == nil {
		shape, strides = Shape{}, []int{}
	}
	return New(a.raw.View(shape, strides, a.raw.Offset()), a.backend), nil
}

// ExpandDims inserts a size-1 axis at position axis of the result.
func (a *Array) ExpandDims(axis int) (*Array, error) {
	k, err := NormalizeAxis("expand_dims", axis, a.NDim()+1)
	if err != nil {
		return nil, err
	}
	shape := make(Shape, 0, a.NDim()+1)
	strides := make([]int, 0, a.NDim()+1)
	shape = append(shape, a.Shape()[:k]...)
	strides = append(strides, a.Strides()[:k]...)
	shape = append(shape, 1)
	strides = append(strides, 0)
	shape = append(shape, a.Shape()[k:]...)
	strides = append(strides, a.Strides()[k:]...)
	return New(a.raw.View(shape, strides, a.raw.Offset()), a.backend), nil
}

// BroadcastTo returns a read-only-by-convention view of a with the given shape.
// Stretched axes have stride 0, so writing through the view writes the same
// element several times.
func (a *Array) BroadcastTo(shape Shape) (*Array, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	out, err := BroadcastAll(a.Shape(), shape)
	if err == nil && !out.Equal(shape) {
		err = &BroadcastError{Shapes: []Shape{a.Shape().Clone(), shape.Clone()}, Axis: -1}
	}
	if err != nil {
		var be *BroadcastError
		if errors.As(err, &be) {
			be.Op = "broadcast_to"
		}
		return nil, err
	}
	strides := BroadcastStrides(a.Shape(), a.Strides(), shape)
	return New(a.raw.View(shape, strides, a.raw.Offset()), a.backend), nil
}

// AsType returns a copy converted to dtype (float→int truncates toward zero,
// nonzero→true).
func (a *Array) AsType(dtype DataType) (*Array, error) {
	if !dtype.Valid() {
		return nil, &DtypeError{Op: "astype", DTypes: []DataType{dtype}, Details: "unknown dtype"}
	}
	return New(a.backend.Cast(a.raw, dtype), a.backend), nil
}

// Nonzero returns, per axis, an int64 array with the coordinates of the
// nonzero elements in row-major order.
func (a *Array) Nonzero() []*Array {
	coords := NonzeroCoords(a.raw)
	out := make([]*Array, len(coords))
	for d, c := range coords {
		raw := MustRaw(Shape{len(c)}, Int64)
		data := raw.AsInt64()
		for i, v := range c {
			data[i] = int64(v)
		}
		out[d] = New(raw, a.backend)
	}
	return out
}

// Side selects which insertion point SearchSorted reports for equal values.
type Side int

// Search sides.
const (
	SideLeft  Side = iota // first position i with a[i] >= v
	SideRight             // first position i with a[i] > v
)

// SearchSorted finds, for every element of values, the index at which it would
// be inserted into the sorted 1-D array a to keep it sorted.
func (a *Array) SearchSorted(values any, side Side) (*Array, error) {
	if a.NDim() != 1 {
		return nil, ValueErrorf("searchsorted", "sorted array must be 1-D, got %d dimensions", a.NDim())
	}
	v, err := a.operand("searchsorted", values)
	if err != nil {
		return nil, err
	}
	out, err := a.backend.SearchSorted(a.raw, v, side == SideRight)
	if err != nil {
		return nil, err
	}
	return New(out, a.backend), nil
}

// Concatenate joins arrays along an existing axis. Dtypes are promoted.
func Concatenate(arrays []*Array, axis int) (*Array, error) {
	if len(arrays) == 0 {
		return nil, ValueErrorf("concatenate", "need at least one array to concatenate")
	}
	raws := make([]*RawArray, len(arrays))
	for i, x := range arrays {
		raws[i] = x.raw
	}
	out, err := arrays[0].backend.Concatenate(raws, axis)
	if err != nil {
		return nil, err
	}
	return New(out, arrays[0].backend), nil
}

// Where picks x where cond is true and y elsewhere, broadcasting all three.
// x and y may be arrays or Go scalars.
//
// Example:
//
//	clipped, _ := ndarray.Where(mask, x, 0)
func Where(cond *Array, x, y any) (*Array, error) {
	const op = "where"
	xr, yr, err := whereOperands(op, x, y)
	if err != nil {
		return nil, err
	}
	out, err := cond.backend.Where(cond.raw, xr, yr)
	if err != nil {
		return nil, err
	}
	return New(out, cond.backend), nil
}

func whereOperands(op string, x, y any) (*RawArray, *RawArray, error) {
	xa, xok := x.(*Array)
	ya, yok := y.(*Array)
	switch {
	case xok && yok:
		return xa.raw, ya.raw, nil
	case xok:
		yr, err := xa.operand(op, y)
		return xa.raw, yr, err
	case yok:
		xr, err := ya.operand(op, x)
		return xr, ya.raw, err
	}
	xs, err := parseScalar(op, x)
	if err != nil {
		return nil, nil, err
	}
	xr, err := weakScalar(op, x, xs.kind)
	if err != nil {
		return nil, nil, err
	}
	yr, err := weakScalar(op, y, xs.kind)
	if err != nil {
		return nil, nil, err
	}
	return xr, yr, nil
}

// Histogram counts the elements of a falling into the bins delimited by the
// increasing 1-D edges: bin i is [edges[i], edges[i+1]), the last bin also
// includes its right edge. Values outside the edges are ignored.
//
// The counting step is SearchSorted followed by Add.At, which accumulates
// repeated bin indices.
func Histogram(a, edges *Array) (*Array, error) {
	const op = "histogram"
	if edges.NDim() != 1 || edges.Size() < 2 {
		return nil, ValueErrorf(op, "edges must be 1-D with at least 2 entries, got shape %v", edges.Shape())
	}
	nbins := edges.Size() - 1
	counts := New(MustRaw(Shape{nbins}, Int64), a.backend)

	flat := a.Ravel()
	pos, err := edges.SearchSorted(flat, SideRight)
	if err != nil {
		return nil, err
	}
	bins, err := pos.Sub(1)
	if err != nil {
		return nil, err
	}
	last, err := edges.Item(nbins)
	if err != nil {
		return nil, err
	}
	onLast, err := flat.Equal(last)
	if err != nil {
		return nil, err
	}
	bins, err = Where(onLast, nbins-1, bins)
	if err != nil {
		return nil, err
	}

	lo, err := bins.GreaterEqual(0)
	if err != nil {
		return nil, err
	}
	hi, err := bins.Less(nbins)
	if err != nil {
		return nil, err
	}
	inside, err := lo.And(hi)
	if err != nil {
		return nil, err
	}
	valid, err := bins.Get(inside)
	if err != nil {
		return nil, err
	}
	if err := Add.At(counts, valid, 1); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return counts, nil
}
