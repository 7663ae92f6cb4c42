package cpu

import (
	"math"
	"slices"

	"github.com/born-ml/ndarray/internal/ndarray"
)

// lanes describes the 1-D runs an aggregation collapses: lane l holds the
// elements of src at storage indices base[l] + j*step for j in [0, length).
type lanes struct {
	src    *ndarray.RawArray
	base   []int
	length int
	step   int
	shape  ndarray.Shape // result shape, one element per lane
}

// laneSet splits x into lanes along axis, or into one lane over every element
// when all is set. Lanes are listed in row-major order of the result.
func laneSet(x *ndarray.RawArray, axis int, all, keepDims bool) lanes {
	if all {
		src := x.Contiguous()
		shape := ndarray.Shape{}
		if keepDims {
			shape = make(ndarray.Shape, x.NDim())
			for i := range shape {
				shape[i] = 1
			}
		}
		return lanes{src: src, base: []int{src.Offset()}, length: src.NumElements(), step: 1, shape: shape}
	}

	xs, st := x.Shape(), x.Strides()
	rest := make(ndarray.Shape, 0, len(xs)-1)
	restStrides := make([]int, 0, len(xs)-1)
	for d := range xs {
		if d != axis {
			rest = append(rest, xs[d])
			restStrides = append(restStrides, st[d])
		}
	}
	base := make([]int, 0, rest.NumElements())
	walk(rest, []view{{offset: x.Offset(), strides: restStrides}}, 0, rest.NumElements(), func(idx []int) {
		base = append(base, idx[0])
	})

	shape := rest
	if keepDims {
		shape = xs.Clone()
		shape[axis] = 1
	}
	return lanes{src: x, base: base, length: xs[axis], step: st[axis], shape: shape}
}

// at returns the storage index of element j of lane l.
func (ls lanes) at(l, j int) int {
	return ls.base[l] + j*ls.step
}

// reduceResultType returns the dtype an aggregation produces for input dtype dt.
func reduceResultType(op ndarray.ReduceOp, dt ndarray.DataType) ndarray.DataType {
	switch op {
	case ndarray.ReduceSum, ndarray.ReduceProd:
		if dt.IsFloat() {
			return dt
		}
		return ndarray.Int64
	case ndarray.ReduceMin, ndarray.ReduceMax:
		return dt
	case ndarray.ReduceMean, ndarray.ReduceVar, ndarray.ReduceStd, ndarray.ReduceMedian, ndarray.ReducePercentile:
		if dt == ndarray.Float32 {
			return ndarray.Float32
		}
		return ndarray.Float64
	case ndarray.ReduceAll, ndarray.ReduceAny:
		return ndarray.Bool
	default:
		return ndarray.Int64
	}
}

// Reduce aggregates x over one axis or over every element.
//
// Empty lanes: Sum gives 0, Prod 1, Mean/Var/Std/Median/Percentile NaN,
// All true, Any false; Min, Max, ArgMin and ArgMax return a *ValueError.
// NaN propagates through Min, Max and the order statistics; ArgMin and ArgMax
// report the first NaN.
//
//nolint:gocyclo,cyclop // One switch arm per aggregation
func (cpu *CPUBackend) Reduce(op ndarray.ReduceOp, x *ndarray.RawArray, opts ndarray.ReduceOptions) (*ndarray.RawArray, error) {
	name := op.String()
	if !opts.AllAxes {
		axis, err := ndarray.NormalizeAxis(name, opts.Axis, x.NDim())
		if err != nil {
			return nil, err
		}
		opts.Axis = axis
	}
	ls := laneSet(x, opts.Axis, opts.AllAxes, opts.KeepDims)
	out := ndarray.MustRaw(ls.shape, reduceResultType(op, x.DType()))
	xc, oc := ndarray.NewAccessor(ls.src), ndarray.NewAccessor(out)
	isFloat := x.DType().IsFloat()
	n := ls.length

	switch op {
	case ndarray.ReduceMin, ndarray.ReduceMax, ndarray.ReduceArgMin, ndarray.ReduceArgMax:
		if n == 0 && len(ls.base) > 0 {
			return nil, ndarray.ValueErrorf(name, "zero-size array to reduction operation %s which has no identity", name)
		}
	}

	for l := range ls.base {
		switch op {
		case ndarray.ReduceSum, ndarray.ReduceProd:
			if isFloat {
				acc := 0.0
				if op == ndarray.ReduceProd {
					acc = 1
				}
				for j := 0; j < n; j++ {
					if op == ndarray.ReduceSum {
						acc += xc.Float(ls.at(l, j))
					} else {
						acc *= xc.Float(ls.at(l, j))
					}
				}
				oc.SetFloat(l, acc)
				continue
			}
			acc := int64(0)
			if op == ndarray.ReduceProd {
				acc = 1
			}
			for j := 0; j < n; j++ {
				if op == ndarray.ReduceSum {
					acc += xc.Int(ls.at(l, j))
				} else {
					acc *= xc.Int(ls.at(l, j))
				}
			}
			oc.SetInt(l, acc)

		case ndarray.ReduceMin, ndarray.ReduceMax:
			pick := ndarray.Minimum
			if op == ndarray.ReduceMax {
				pick = ndarray.Maximum
			}
			if isFloat {
				f := floatBinary(pick)
				acc := xc.Float(ls.at(l, 0))
				for j := 1; j < n; j++ {
					acc = f(acc, xc.Float(ls.at(l, j)))
				}
				oc.SetFloat(l, acc)
				continue
			}
			f := intBinary(pick)
			acc := xc.Int(ls.at(l, 0))
			for j := 1; j < n; j++ {
				acc = f(acc, xc.Int(ls.at(l, j)))
			}
			oc.SetInt(l, acc)

		case ndarray.ReduceArgMin, ndarray.ReduceArgMax:
			oc.SetInt(l, int64(argExtreme(xc, ls, l, op == ndarray.ReduceArgMax, isFloat)))

		case ndarray.ReduceMean:
			oc.SetFloat(l, laneMean(xc, ls, l))

		case ndarray.ReduceVar, ndarray.ReduceStd:
			v := laneVar(xc, ls, l, opts.DDof)
			if op == ndarray.ReduceStd {
				v = math.Sqrt(v)
			}
			oc.SetFloat(l, v)

		case ndarray.ReduceMedian, ndarray.ReducePercentile:
			q := opts.Q
			if op == ndarray.ReduceMedian {
				q = 50
			}
			if !(q >= 0 && q <= 100) {
				return nil, ndarray.ValueErrorf(name, "percentile must be in the range [0, 100], got %v", q)
			}
			oc.SetFloat(l, lanePercentile(xc, ls, l, q))

		case ndarray.ReduceAll:
			all := true
			for j := 0; j < n && all; j++ {
				all = xc.Bool(ls.at(l, j))
			}
			oc.SetBool(l, all)

		case ndarray.ReduceAny:
			found := false
			for j := 0; j < n && !found; j++ {
				found = xc.Bool(ls.at(l, j))
			}
			oc.SetBool(l, found)

		case ndarray.ReduceCountNonzero:
			count := int64(0)
			for j := 0; j < n; j++ {
				if xc.Bool(ls.at(l, j)) {
					count++
				}
			}
			oc.SetInt(l, count)

		default:
			return nil, ndarray.ValueErrorf(name, "unsupported aggregation")
		}
	}
	return out, nil
}

func laneMean(xc ndarray.Accessor, ls lanes, l int) float64 {
	if ls.length == 0 {
		return math.NaN()
	}
	sum := 0.0
	for j := 0; j < ls.length; j++ {
		sum += xc.Float(ls.at(l, j))
	}
	return sum / float64(ls.length)
}

// laneVar computes Σ(x - mean)² / (n - ddof) in two passes.
func laneVar(xc ndarray.Accessor, ls lanes, l, ddof int) float64 {
	dof := ls.length - ddof
	if dof <= 0 {
		return math.NaN()
	}
	mean := laneMean(xc, ls, l)
	ss := 0.0
	for j := 0; j < ls.length; j++ {
		d := xc.Float(ls.at(l, j)) - mean
		ss += d * d
	}
	return ss / float64(dof)
}

// lanePercentile interpolates linearly between the two closest ranks.
func lanePercentile(xc ndarray.Accessor, ls lanes, l int, q float64) float64 {
	if ls.length == 0 {
		return math.NaN()
	}
	values := make([]float64, ls.length)
	for j := range values {
		v := xc.Float(ls.at(l, j))
		if math.IsNaN(v) {
			return math.NaN()
		}
		values[j] = v
	}
	slices.Sort(values)

	pos := q / 100 * float64(len(values)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	frac := pos - float64(lo)
	return values[lo] + (values[hi]-values[lo])*frac
}

// argExtreme returns the lane position of the first minimum (or maximum).
// In float lanes the first NaN wins.
func argExtreme(xc ndarray.Accessor, ls lanes, l int, wantMax, isFloat bool) int {
	best := 0
	if isFloat {
		bv := xc.Float(ls.at(l, 0))
		if math.IsNaN(bv) {
			return 0
		}
		for j := 1; j < ls.length; j++ {
			v := xc.Float(ls.at(l, j))
			if math.IsNaN(v) {
				return j
			}
			if (wantMax && v > bv) || (!wantMax && v < bv) {
				best, bv = j, v
			}
		}
		return best
	}
	bv := xc.Int(ls.at(l, 0))
	for j := 1; j < ls.length; j++ {
		v := xc.Int(ls.at(l, j))
		if (wantMax && v > bv) || (!wantMax && v < bv) {
			best, bv = j, v
		}
	}
	return best
}
