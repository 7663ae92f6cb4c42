package ndarray

// ReduceOption configures an aggregation.
type ReduceOption func(*ReduceOptions)

// Axis collapses only axis k (negative counts from the end).
func Axis(k int) ReduceOption {
	return func(o *ReduceOptions) {
		o.Axis = k
		o.AllAxes = false
	}
}

// Flat collapses every axis into a 0-d result. This is the default for the
// aggregation methods.
func Flat() ReduceOption {
	return func(o *ReduceOptions) {
		o.AllAxes = true
	}
}

// KeepDims keeps collapsed axes with size 1 so the result broadcasts against the input.
func KeepDims() ReduceOption {
	return func(o *ReduceOptions) {
		o.KeepDims = true
	}
}

// DDof sets the delta degrees of freedom of Var and Std (divisor N - ddof).
func DDof(n int) ReduceOption {
	return func(o *ReduceOptions) {
		o.DDof = n
	}
}

func (a *Array) aggregate(op ReduceOp, q float64, opts []ReduceOption) (*Array, error) {
	o := ReduceOptions{AllAxes: true, Q: q}
	for _, opt := range opts {
		opt(&o)
	}
	if !o.AllAxes {
		axis, err := NormalizeAxis(op.String(), o.Axis, a.NDim())
		if err != nil {
			return nil, err
		}
		o.Axis = axis
	}
	out, err := a.backend.Reduce(op, a.raw, o)
	if err != nil {
		return nil, err
	}
	return New(out, a.backend), nil
}

// Sum adds the elements (int64 for bool and integer input).
//
// Example:
//
//	total, _ := x.Sum()             // 0-d
//	cols, _ := x.Sum(ndarray.Axis(0)) // one value per column
func (a *Array) Sum(opts ...ReduceOption) (*Array, error) { return a.aggregate(ReduceSum, 0, opts) }

// Prod multiplies the elements.
func (a *Array) Prod(opts ...ReduceOption) (*Array, error) { return a.aggregate(ReduceProd, 0, opts) }

// Min returns the smallest element. Empty input returns a *ValueError.
func (a *Array) Min(opts ...ReduceOption) (*Array, error) { return a.aggregate(ReduceMin, 0, opts) }

// Max returns the largest element. Empty input returns a *ValueError.
func (a *Array) Max(opts ...ReduceOption) (*Array, error) { return a.aggregate(ReduceMax, 0, opts) }

// Mean returns the arithmetic mean.
func (a *Array) Mean(opts ...ReduceOption) (*Array, error) { return a.aggregate(ReduceMean, 0, opts) }

// Var returns the variance (see DDof).
func (a *Array) Var(opts ...ReduceOption) (*Array, error) { return a.aggregate(ReduceVar, 0, opts) }

// Std returns the standard deviation (see DDof).
func (a *Array) Std(opts ...ReduceOption) (*Array, error) { return a.aggregate(ReduceStd, 0, opts) }

// Median returns the 50th percentile.
func (a *Array) Median(opts ...ReduceOption) (*Array, error) {
	return a.aggregate(ReduceMedian, 50, opts)
}

// Percentile returns the q-th percentile, interpolating linearly between the
// closest ranks. q must lie in [0, 100].
func (a *Array) Percentile(q float64, opts ...ReduceOption) (*Array, error) {
	if !(q >= 0 && q <= 100) {
		return nil, ValueErrorf("percentile", "percentile must be in the range [0, 100], got %v", q)
	}
	return a.aggregate(ReducePercentile, q, opts)
}

// All reports whether every element is nonzero.
func (a *Array) All(opts ...ReduceOption) (*Array, error) { return a.aggregate(ReduceAll, 0, opts) }

// Any reports whether any element is nonzero.
func (a *Array) Any(opts ...ReduceOption) (*Array, error) { return a.aggregate(ReduceAny, 0, opts) }

// CountNonzero counts the nonzero (true) elements.
//
// Example:
//
//	mask, _ := x.Less(6)
//	n, _ := mask.CountNonzero()
func (a *Array) CountNonzero(opts ...ReduceOption) (*Array, error) {
	return a.aggregate(ReduceCountNonzero, 0, opts)
}

// ArgMin returns the position of the first minimum (row-major flat position
// when collapsing every axis).
func (a *Array) ArgMin(opts ...ReduceOption) (*Array, error) {
	return a.aggregate(ReduceArgMin, 0, opts)
}

// ArgMax returns the position of the first maximum.
func (a *Array) ArgMax(opts ...ReduceOption) (*Array, error) {
	return a.aggregate(ReduceArgMax, 0, opts)
}

// Reduce folds op left-to-right along an axis (axis 0 unless Axis is given;
// Flat folds every element). Add and Multiply start from 0 and 1 on empty
// input; other ops require at least one element.
//
// Example:
//
//	x, _ := ndarray.Arange(1, 6, 1, backend)
//	p, _ := ndarray.Multiply.Reduce(x) // 120
func (op BinaryOp) Reduce(a *Array, opts ...ReduceOption) (*Array, error) {
	o := ReduceOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	src := a.raw
	axis := o.Axis
	if o.AllAxes {
		src = a.Ravel().raw
		axis = 0
	}
	if src.NDim() == 0 {
		return nil, ValueErrorf(op.String()+".reduce", "cannot reduce a 0-d array")
	}
	axis, err := NormalizeAxis(op.String()+".reduce", axis, src.NDim())
	if err != nil {
		return nil, err
	}
	out, err := a.backend.Fold(op, src, axis, o.KeepDims && !o.AllAxes)
	if err != nil {
		return nil, err
	}
	if o.AllAxes && o.KeepDims {
		ones := make(Shape, a.NDim())
		for i := range ones {
			ones[i] = 1
		}
		return New(out.View(ones, make([]int, len(ones)), out.Offset()), a.backend), nil
	}
	return New(out, a.backend), nil
}

// Accumulate returns the running fold of op along axis, with a's shape.
//
// Example:
//
//	x, _ := ndarray.Arange(1, 6, 1, backend)
//	c, _ := ndarray.Add.Accumulate(x, 0) // [1 3 6 10 15]
func (op BinaryOp) Accumulate(a *Array, axis int) (*Array, error) {
	if a.NDim() == 0 {
		return nil, ValueErrorf(op.String()+".accumulate", "cannot accumulate a 0-d array")
	}
	axis, err := NormalizeAxis(op.String()+".accumulate", axis, a.NDim())
	if err != nil {
		return nil, err
	}
	out, err := a.backend.Accumulate(op, a.raw, axis)
	if err != nil {
		return nil, err
	}
	return New(out, a.backend), nil
}

// At applies a[idx] = op(a[idx], values) in place, one selected element at a
// time in row-major order of the selection. Unlike Set, repeated positions are
// applied once per occurrence, so duplicates accumulate.
//
// Example:
//
//	counts, _ := ndarray.Zeros(ndarray.Shape{5}, ndarray.Int64, backend)
//	_ = ndarray.Add.At(counts, ndarray.Ints(0, 0, 1, 3, 3, 3), 1) // [2 1 0 3 0]
func (op BinaryOp) At(a *Array, idx Index, values any) error {
	plan, err := ResolveIndex(a.raw, []Index{idx})
	if err != nil {
		return err
	}
	v, err := a.operand(op.String()+".at", values)
	if err != nil {
		return err
	}
	return a.backend.PutWith(op, a.raw, plan, v)
}

// Reduce is op.Reduce(a, Axis(axis)).
func Reduce(op BinaryOp, a *Array, axis int) (*Array, error) {
	return op.Reduce(a, Axis(axis))
}

// Accumulate is op.Accumulate(a, axis).
func Accumulate(op BinaryOp, a *Array, axis int) (*Array, error) {
	return op.Accumulate(a, axis)
}

// At is op.At(a, idx, values).
func At(op BinaryOp, a *Array, idx Index, values any) error {
	return op.At(a, idx, values)
}
