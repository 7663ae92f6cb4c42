package cpu

import (
	"github.com/born-ml/ndarray/internal/ndarray"
)

// Cast converts x to dtype, returning fresh contiguous storage.
//
// Conversion rules:
//   - float → int: truncation toward zero
//   - any → bool: nonzero is true
//   - bool → number: 0 or 1
func (cpu *CPUBackend) Cast(x *ndarray.RawArray, dtype ndarray.DataType) *ndarray.RawArray {
	out := ndarray.MustRaw(x.Shape(), dtype)
	cpu.assign(out, x)
	return out
}

// assign copies src into dst (same shape), converting between dtypes.
func (cpu *CPUBackend) assign(dst, src *ndarray.RawArray) {
	if dst.NumElements() == 0 {
		return
	}
	sc, dc := ndarray.NewAccessor(src), ndarray.NewAccessor(dst)
	views := []view{selfView(src), selfView(dst)}

	switch domainOf(dst.DType()) {
	case floatDomain:
		cpu.forEach(dst.Shape(), views, func(idx []int) {
			dc.SetFloat(idx[1], sc.Float(idx[0]))
		})
	case boolDomain:
		cpu.forEach(dst.Shape(), views, func(idx []int) {
			dc.SetBool(idx[1], sc.Bool(idx[0]))
		})
	default:
		cpu.forEach(dst.Shape(), views, func(idx []int) {
			dc.SetInt(idx[1], sc.Int(idx[0]))
		})
	}
}
