package cpu

import (
	"github.com/born-ml/ndarray/internal/ndarray"
)

// Take gathers the elements selected by plan into a new contiguous array.
func (cpu *CPUBackend) Take(x *ndarray.RawArray, plan *ndarray.IndexPlan) *ndarray.RawArray {
	out := ndarray.MustRaw(plan.Shape, x.DType())
	indices := plan.StorageIndices()
	switch x.DType() {
	case ndarray.Bool:
		gather(ndarray.Storage[bool](out), ndarray.Storage[bool](x), indices)
	case ndarray.Uint8:
		gather(ndarray.Storage[uint8](out), ndarray.Storage[uint8](x), indices)
	case ndarray.Int32:
		gather(ndarray.Storage[int32](out), ndarray.Storage[int32](x), indices)
	case ndarray.Int64:
		gather(ndarray.Storage[int64](out), ndarray.Storage[int64](x), indices)
	case ndarray.Float32:
		gather(ndarray.Storage[float32](out), ndarray.Storage[float32](x), indices)
	case ndarray.Float64:
		gather(ndarray.Storage[float64](out), ndarray.Storage[float64](x), indices)
	}
	return out
}

func gather[T ndarray.DType](dst, src []T, indices []int) {
	for k, i := range indices {
		dst[k] = src[i]
	}
}

// Put writes values (broadcast to the selection and cast to x's dtype) into
// the positions selected by plan. Writes happen in row-major order of the
// selection, so for repeated positions the last write wins. Nothing is
// written if values do not fit the selection.
func (cpu *CPUBackend) Put(x *ndarray.RawArray, plan *ndarray.IndexPlan, values *ndarray.RawArray) error {
	// Cast always allocates, so values overlapping x are read before any write.
	src := cpu.Cast(values, x.DType())
	vv, err := fitValues("setitem", src, plan.Shape)
	if err != nil {
		return err
	}

	indices := plan.StorageIndices()
	switch x.DType() {
	case ndarray.Bool:
		scatter(ndarray.Storage[bool](x), ndarray.Storage[bool](src), indices, plan.Shape, vv)
	case ndarray.Uint8:
		scatter(ndarray.Storage[uint8](x), ndarray.Storage[uint8](src), indices, plan.Shape, vv)
	case ndarray.Int32:
		scatter(ndarray.Storage[int32](x), ndarray.Storage[int32](src), indices, plan.Shape, vv)
	case ndarray.Int64:
		scatter(ndarray.Storage[int64](x), ndarray.Storage[int64](src), indices, plan.Shape, vv)
	case ndarray.Float32:
		scatter(ndarray.Storage[float32](x), ndarray.Storage[float32](src), indices, plan.Shape, vv)
	case ndarray.Float64:
		scatter(ndarray.Storage[float64](x), ndarray.Storage[float64](src), indices, plan.Shape, vv)
	}
	return nil
}

func scatter[T ndarray.DType](dst, src []T, indices []int, shape ndarray.Shape, vv view) {
	k := 0
	walk(shape, []view{vv}, 0, len(indices), func(idx []int) {
		dst[indices[k]] = src[idx[0]]
		k++
	})
}

// PutWith performs x[i] = op(x[i], v) for every selected position i, one
// position at a time in row-major order of the selection. Repeated positions
// see the results of earlier updates, so duplicates accumulate. Results are
// cast back to x's dtype.
//
// Integer zero divisors and negative exponents are rejected before x is touched.
func (cpu *CPUBackend) PutWith(op ndarray.BinaryOp, x *ndarray.RawArray, plan *ndarray.IndexPlan, values *ndarray.RawArray) error {
	name := op.String() + ".at"
	rt, err := ndarray.ResultType(op, x.DType(), values.DType())
	if err != nil {
		return err
	}
	if values.SharesStorage(x) {
		values = values.Copy()
	}
	vv, err := fitValues(name, values, plan.Shape)
	if err != nil {
		return err
	}
	indices := plan.StorageIndices()
	if len(indices) == 0 {
		return nil
	}

	xc, vc := ndarray.NewAccessor(x), ndarray.NewAccessor(values)
	k := 0
	switch binaryDomain(op, rt) {
	case boolDomain:
		f := boolBinary(op)
		walk(plan.Shape, []view{vv}, 0, len(indices), func(idx []int) {
			i := indices[k]
			xc.SetBool(i, f(xc.Bool(i), vc.Bool(idx[0])))
			k++
		})
	case intDomain:
		if err := checkIntOperand(op, values); err != nil {
			return err
		}
		f := intBinary(op)
		walk(plan.Shape, []view{vv}, 0, len(indices), func(idx []int) {
			i := indices[k]
			xc.SetInt(i, f(xc.Int(i), vc.Int(idx[0])))
			k++
		})
	default:
		f := floatBinary(op)
		walk(plan.Shape, []view{vv}, 0, len(indices), func(idx []int) {
			i := indices[k]
			xc.SetFloat(i, f(xc.Float(i), vc.Float(idx[0])))
			k++
		})
	}
	return nil
}
