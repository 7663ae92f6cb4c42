package cpu

import (
	"math"
	"sort"

	"github.com/born-ml/ndarray/internal/ndarray"
)

// SearchSorted returns, for every element of values, the insertion index into
// the ascending 1-D array sorted: the first position whose element is >= the
// value (or > the value when right is set). NaN sorts after every number.
func (cpu *CPUBackend) SearchSorted(sorted, values *ndarray.RawArray, right bool) (*ndarray.RawArray, error) {
	if sorted.NDim() != 1 {
		return nil, ndarray.ValueErrorf("searchsorted", "sorted array must be 1-D, got %d dimensions", sorted.NDim())
	}
	out := ndarray.MustRaw(values.Shape(), ndarray.Int64)
	if out.NumElements() == 0 {
		return out, nil
	}

	n := sorted.NumElements()
	sc, vc, oc := ndarray.NewAccessor(sorted), ndarray.NewAccessor(values), ndarray.NewAccessor(out)
	views := []view{selfView(values), selfView(out)}

	if ndarray.PromoteTypes(sorted.DType(), values.DType()).IsFloat() {
		cpu.forEach(values.Shape(), views, func(idx []int) {
			v := vc.Float(idx[0])
			pos := sort.Search(n, func(i int) bool {
				e := sc.Float(sorted.StorageIndex(i))
				if right {
					return lessNaN(v, e)
				}
				return !lessNaN(e, v)
			})
			oc.SetInt(idx[1], int64(pos))
		})
		return out, nil
	}
	cpu.forEach(values.Shape(), views, func(idx []int) {
		v := vc.Int(idx[0])
		pos := sort.Search(n, func(i int) bool {
			e := sc.Int(sorted.StorageIndex(i))
			if right {
				return v < e
			}
			return e >= v
		})
		oc.SetInt(idx[1], int64(pos))
	})
	return out, nil
}

// lessNaN orders floats with NaN after +Inf.
func lessNaN(a, b float64) bool {
	return a < b || (math.IsNaN(b) && !math.IsNaN(a))
}
