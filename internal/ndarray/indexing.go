package ndarray

// Get selects elements of a.
//
// Integers, slices, NewAxis and Ellipsis produce a view sharing a's storage.
// Any integer or boolean index array produces a copy.
//
// Example:
//
//	x, _ := ndarray.Arange(0, 10, 1, backend)
//	rev, _ := x.Get(ndarray.S(ndarray.None, ndarray.None, -1)) // x[::-1], a view
//	picked, _ := x.Get(ndarray.Ints(3, 7, 4))                  // x[[3, 7, 4]], a copy
func (a *Array) Get(idx ...Index) (*Array, error) {
	plan, err := ResolveIndex(a.raw, idx)
	if err != nil {
		return nil, err
	}
	if plan.IsView() {
		return New(a.raw.View(plan.Shape, plan.Strides, plan.Offset), a.backend), nil
	}
	return New(a.backend.Take(a.raw, plan), a.backend), nil
}

// Set writes value into the selected elements of a, in place.
//
// value (an *Array or a Go scalar) is broadcast to the selection's shape and
// cast to a's dtype. The index and the value are validated before anything is
// written. When a position is selected more than once, writes happen in
// row-major order of the selection and the last one wins; use BinaryOp.At to
// accumulate instead.
//
// Example:
//
//	_ = x.Set(99, ndarray.Ints(2, 1, 8, 4))
func (a *Array) Set(value any, idx ...Index) error {
	plan, err := ResolveIndex(a.raw, idx)
	if err != nil {
		return err
	}
	v, err := a.operand("setitem", value)
	if err != nil {
		return err
	}
	return a.backend.Put(a.raw, plan, v)
}

// Fill sets every element of a to value.
func (a *Array) Fill(value any) error {
	return a.Set(value, Ellipsis)
}
