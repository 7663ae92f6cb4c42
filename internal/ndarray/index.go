package ndarray

import (
	"errors"
	"math"
)

// None marks an omitted slice bound: S(None, None, -1) is "::-1".
const None = math.MinInt

// Index is one entry of an indexing expression passed to Get, Set or At.
//
// Implementations:
//   - I(k): a single integer (removes the axis)
//   - S(start, stop, step): a Python-style slice (view)
//   - *Array, Ints(...), Bools(...): integer (fancy) or boolean (mask) index arrays (copy)
//   - NewAxis, Ellipsis
//   - Tuple(...): a group of indices, used where a single Index value is expected
type Index interface {
	isIndex()
}

type intIndex int

func (intIndex) isIndex() {}

// I returns an integer index. Negative values count from the end of the axis.
func I(k int) Index {
	return intIndex(k)
}

// Slice is a start:stop:step index. Use None for omitted bounds.
// A zero Step is invalid.
type Slice struct {
	Start, Stop, Step int
}

func (Slice) isIndex() {}

// S returns the slice start:stop:step.
//
// Example:
//
//	x.Get(S(None, None, -1)) // x[::-1]
//	x.Get(S(5, None, -2))    // x[5::-2]
func S(start, stop, step int) Slice {
	return Slice{Start: start, Stop: stop, Step: step}
}

// All returns the full slice ":".
func All() Slice {
	return Slice{Start: None, Stop: None, Step: 1}
}

// Span returns start:stop with step 1.
func Span(start, stop int) Slice {
	return Slice{Start: start, Stop: stop, Step: 1}
}

type newAxis struct{}

func (newAxis) isIndex() {}

type ellipsis struct{}

func (ellipsis) isIndex() {}

var (
	// NewAxis inserts a new axis of size 1.
	NewAxis Index = newAxis{}
	// Ellipsis expands to as many full slices as needed.
	Ellipsis Index = ellipsis{}
)

type arrayIndex struct {
	raw *RawArray
}

func (arrayIndex) isIndex() {}

// Ints returns a 1-D integer index array.
func Ints(values ...int) Index {
	raw := MustRaw(Shape{len(values)}, Int64)
	data := raw.AsInt64()
	for i, v := range values {
		data[i] = int64(v)
	}
	return arrayIndex{raw: raw}
}

// Bools returns a 1-D boolean mask.
func Bools(values ...bool) Index {
	raw := MustRaw(Shape{len(values)}, Bool)
	copy(raw.AsBool(), values)
	return arrayIndex{raw: raw}
}

// RawIndex wraps a raw integer or boolean array as an index.
func RawIndex(raw *RawArray) Index {
	return arrayIndex{raw: raw}
}

type tuple []Index

func (tuple) isIndex() {}

// Tuple groups several indices into one Index value.
func Tuple(idx ...Index) Index {
	return tuple(idx)
}

// IndexPlan maps every element of an indexing result to a storage position of
// the indexed array.
//
// Basic dims (slices, new axes) are addressed with Strides; the advanced block
// (fancy and boolean indices broadcast together) occupies result dims
// [AdvPos, AdvPos+len(AdvShape)) and is addressed through AdvOffsets.
type IndexPlan struct {
	Shape   Shape
	Offset  int
	Strides []int

	AdvShape   Shape
	AdvPos     int
	AdvOffsets []int
	advanced   bool
}

// IsView reports whether the selection is expressible as a strided view.
func (p *IndexPlan) IsView() bool {
	return !p.advanced
}

// StorageIndices returns, in row-major order of the result, the storage index
// each result element reads from (or writes to).
func (p *IndexPlan) StorageIndices() []int {
	n := p.Shape.NumElements()
	out := make([]int, n)
	if n == 0 {
		return out
	}
	coords := make([]int, len(p.Shape))
	advStrides := p.AdvShape.ComputeStrides()
	for k := 0; k < n; k++ {
		p.Shape.Unravel(k, coords)
		idx := p.Offset
		for d, c := range coords {
			idx += c * p.Strides[d]
		}
		if p.advanced {
			flat := 0
			for j := range p.AdvShape {
				flat += coords[p.AdvPos+j] * advStrides[j]
			}
			idx += p.AdvOffsets[flat]
		}
		out[k] = idx
	}
	return out
}

// advEntry is one fancy index after normalization.
type advEntry struct {
	shape  Shape
	values []int // normalized, row-major over shape
	stride int   // source stride of the indexed axis
}

// ResolveIndex computes the plan for indexing r with idx.
//
// When any integer or boolean array is present, integer scalars are treated as
// 0-d fancy indices and all fancy indices broadcast together. The broadcast
// block is placed where the first fancy index was if the fancy indices are
// adjacent in idx, otherwise at the front of the result.
//
//nolint:gocyclo,cyclop // Single pass over the index kinds keeps the placement rule in one place
func ResolveIndex(r *RawArray, idx []Index) (*IndexPlan, error) {
	const op = "index"
	entries := flattenIndex(idx)

	consumed := 0
	ellipses := 0
	hasAdvanced := false
	for _, e := range entries {
		switch v := e.(type) {
		case intIndex, Slice:
			consumed++
		case ellipsis:
			ellipses++
		case arrayIndex:
			hasAdvanced = true
			switch {
			case v.raw.DType() == Bool:
				if v.raw.NDim() == 0 {
					return nil, IndexErrorf(op, "0-d boolean index is not supported")
				}
				consumed += v.raw.NDim()
			case v.raw.DType().IsInteger():
				consumed++
			default:
				return nil, IndexErrorf(op, "arrays used as indices must be of integer or boolean type, got %s", v.raw.DType())
			}
		case newAxis:
		case nil:
			return nil, IndexErrorf(op, "nil index")
		}
	}
	if ellipses > 1 {
		return nil, IndexErrorf(op, "an index can only have a single ellipsis")
	}
	ndim := r.NDim()
	if consumed > ndim {
		return nil, IndexErrorf(op, "too many indices for array: array is %d-dimensional, but %d were indexed", ndim, consumed)
	}

	// Expand the ellipsis (or pad the end) with full slices.
	fill := ndim - consumed
	expanded := make([]Index, 0, len(entries)+fill)
	for _, e := range entries {
		if _, ok := e.(ellipsis); ok {
			for i := 0; i < fill; i++ {
				expanded = append(expanded, All())
			}
			fill = 0
			continue
		}
		expanded = append(expanded, e)
	}
	for i := 0; i < fill; i++ {
		expanded = append(expanded, All())
	}

	shape, strides := r.Shape(), r.Strides()
	plan := &IndexPlan{Offset: r.Offset()}
	var (
		outShape   Shape
		outStrides []int
		adv        []advEntry
		firstAdv   = -1
		lastAdv    = -1
		advEntries = 0
		advBefore  = 0
		axis       = 0
	)
	markAdvanced := func(pos int) {
		if firstAdv < 0 {
			firstAdv = pos
			advBefore = len(outShape)
		}
		lastAdv = pos
		advEntries++
	}

	for pos, e := range expanded {
		switch v := e.(type) {
		case newAxis:
			outShape = append(outShape, 1)
			outStrides = append(outStrides, 0)
		case Slice:
			start, count, step, err := v.resolve(shape[axis])
			if err != nil {
				return nil, err
			}
			plan.Offset += start * strides[axis]
			outShape = append(outShape, count)
			outStrides = append(outStrides, step*strides[axis])
			axis++
		case intIndex:
			k, err := normalizeIndex(int(v), shape[axis], axis)
			if err != nil {
				return nil, err
			}
			if hasAdvanced {
				markAdvanced(pos)
				adv = append(adv, advEntry{shape: Shape{}, values: []int{k}, stride: strides[axis]})
			} else {
				plan.Offset += k * strides[axis]
			}
			axis++
		case arrayIndex:
			markAdvanced(pos)
			if v.raw.DType() == Bool {
				masked, err := maskEntries(v.raw, shape, strides, axis)
				if err != nil {
					return nil, err
				}
				adv = append(adv, masked...)
				axis += v.raw.NDim()
				continue
			}
			entry, err := fancyEntry(v.raw, shape[axis], strides[axis], axis)
			if err != nil {
				return nil, err
			}
			adv = append(adv, entry)
			axis++
		}
	}

	if len(adv) == 0 {
		plan.Shape = outShape
		plan.Strides = outStrides
		if plan.Shape == nil {
			plan.Shape = Shape{}
			plan.Strides = []int{}
		}
		return plan, nil
	}

	shapes := make([]Shape, len(adv))
	for i, a := range adv {
		shapes[i] = a.shape
	}
	block, err := BroadcastAll(shapes...)
	if err != nil {
		var be *BroadcastError
		if errors.As(err, &be) {
			be.Op = "index"
		}
		return nil, err
	}

	plan.advanced = true
	plan.AdvShape = block
	plan.AdvPos = 0
	if lastAdv-firstAdv+1 == advEntries {
		plan.AdvPos = advBefore
	}
	plan.AdvOffsets = advancedOffsets(adv, block)

	plan.Shape = make(Shape, 0, len(outShape)+len(block))
	plan.Strides = make([]int, 0, len(outShape)+len(block))
	plan.Shape = append(plan.Shape, outShape[:plan.AdvPos]...)
	plan.Strides = append(plan.Strides, outStrides[:plan.AdvPos]...)
	plan.Shape = append(plan.Shape, block...)
	plan.Strides = append(plan.Strides, make([]int, len(block))...)
	plan.Shape = append(plan.Shape, outShape[plan.AdvPos:]...)
	plan.Strides = append(plan.Strides, outStrides[plan.AdvPos:]...)
	return plan, nil
}

func flattenIndex(idx []Index) []Index {
	out := make([]Index, 0, len(idx))
	for _, e := range idx {
		switch v := e.(type) {
		case tuple:
			out = append(out, flattenIndex(v)...)
		case *Array:
			if v == nil {
				out = append(out, nil)
				continue
			}
			out = append(out, arrayIndex{raw: v.raw})
		default:
			out = append(out, e)
		}
	}
	return out
}

// resolve applies Python slice semantics to an axis of length n and returns the
// first position, the number of selected elements and the step.
func (s Slice) resolve(n int) (start, count, step int, err error) {
	step = s.Step
	if step == 0 {
		return 0, 0, 0, ValueErrorf("index", "slice step cannot be zero")
	}
	start, stop := s.Start, s.Stop

	if step > 0 {
		start = clampBound(start, n, 0, 0, n)
		stop = clampBound(stop, n, n, 0, n)
		if stop > start {
			count = (stop - start + step - 1) / step
		}
	} else {
		// -1 is "before index 0" here, not "last element".
		start = clampBound(start, n, n-1, -1, n-1)
		stop = clampBound(stop, n, -1, -1, n-1)
		if start > stop {
			count = (start - stop - step - 1) / -step
		}
	}
	if count == 0 {
		start = 0
	}
	return start, count, step, nil
}

// clampBound resolves one slice bound: None takes def, negatives count from the
// end, and the result is clipped to [lo, hi].
func clampBound(v, n, def, lo, hi int) int {
	if v == None {
		return def
	}
	if v < 0 {
		v += n
	}
	return min(max(v, lo), hi)
}

func normalizeIndex(k, n, axis int) (int, error) {
	if k < -n || k >= n {
		return 0, IndexErrorf("index", "index %d is out of bounds for axis %d with size %d", k, axis, n)
	}
	if k < 0 {
		k += n
	}
	return k, nil
}

func fancyEntry(raw *RawArray, n, stride, axis int) (advEntry, error) {
	acc := NewAccessor(raw)
	count := raw.NumElements()
	values := make([]int, count)
	for i := 0; i < count; i++ {
		k, err := normalizeIndex(int(acc.Int(raw.StorageIndex(i))), n, axis)
		if err != nil {
			return advEntry{}, err
		}
		values[i] = k
	}
	return advEntry{shape: raw.Shape().Clone(), values: values, stride: stride}, nil
}

// maskEntries converts a boolean mask over axes [axis, axis+mask.ndim) into one
// 1-D fancy index per masked axis (the mask's nonzero coordinates).
func maskEntries(mask *RawArray, shape Shape, strides []int, axis int) ([]advEntry, error) {
	m := mask.NDim()
	for j := 0; j < m; j++ {
		if mask.Shape()[j] != shape[axis+j] {
			return nil, IndexErrorf("index",
				"boolean index did not match indexed array along axis %d; size of axis is %d but size of corresponding boolean axis is %d",
				axis+j, shape[axis+j], mask.Shape()[j])
		}
	}

	coordsList := NonzeroCoords(mask)
	count := 0
	if m > 0 {
		count = len(coordsList[0])
	}
	entries := make([]advEntry, m)
	for j := 0; j < m; j++ {
		entries[j] = advEntry{shape: Shape{count}, values: coordsList[j], stride: strides[axis+j]}
	}
	return entries, nil
}

// NonzeroCoords returns, per axis, the coordinates of the nonzero elements of r in
// row-major order.
func NonzeroCoords(r *RawArray) [][]int {
	m := r.NDim()
	acc := NewAccessor(r)
	out := make([][]int, m)
	n := r.NumElements()
	coords := make([]int, m)
	for i := 0; i < n; i++ {
		if !acc.Bool(r.StorageIndex(i)) {
			continue
		}
		r.Shape().Unravel(i, coords)
		for j := 0; j < m; j++ {
			out[j] = append(out[j], coords[j])
		}
	}
	for j := range out {
		if out[j] == nil {
			out[j] = []int{}
		}
	}
	return out
}

func advancedOffsets(adv []advEntry, block Shape) []int {
	n := block.NumElements()
	offsets := make([]int, n)
	coords := make([]int, len(block))
	bstrides := make([][]int, len(adv))
	for i, a := range adv {
		bstrides[i] = BroadcastStrides(a.shape, a.shape.ComputeStrides(), block)
	}
	for k := 0; k < n; k++ {
		block.Unravel(k, coords)
		off := 0
		for i, a := range adv {
			flat := 0
			for d, c := range coords {
				flat += c * bstrides[i][d]
			}
			off += a.values[flat] * a.stride
		}
		offsets[k] = off
	}
	return offsets
}
