package ndarray

// Accessor reads and writes single storage positions of a RawArray in one of
// three computation domains (float64, int64, bool), converting to and from the
// array's dtype. Kernels compute in a domain and never switch on dtype per element.
//
// Conversions: float→int truncates toward zero, any→bool is "nonzero",
// bool→number is 0 or 1.
type Accessor struct {
	DType DataType

	Float func(i int) float64
	Int   func(i int) int64
	Bool  func(i int) bool

	SetFloat func(i int, v float64)
	SetInt   func(i int, v int64)
	SetBool  func(i int, v bool)
}

// NewAccessor builds an Accessor over r's storage. Indices are storage indices
// (see RawArray.StorageIndex).
func NewAccessor(r *RawArray) Accessor {
	switch r.dtype {
	case Bool:
		return boolAccessor(Storage[bool](r))
	case Uint8:
		return numberAccessor(Uint8, Storage[uint8](r))
	case Int32:
		return numberAccessor(Int32, Storage[int32](r))
	case Int64:
		return numberAccessor(Int64, Storage[int64](r))
	case Float32:
		return numberAccessor(Float32, Storage[float32](r))
	default:
		return numberAccessor(Float64, Storage[float64](r))
	}
}

func numberAccessor[T Number](dt DataType, data []T) Accessor {
	return Accessor{
		DType:    dt,
		Float:    func(i int) float64 { return float64(data[i]) },
		Int:      func(i int) int64 { return int64(data[i]) },
		Bool:     func(i int) bool { return data[i] != 0 },
		SetFloat: func(i int, v float64) { data[i] = T(v) },
		SetInt:   func(i int, v int64) { data[i] = T(v) },
		SetBool: func(i int, v bool) {
			if v {
				data[i] = 1
			} else {
				data[i] = 0
			}
		},
	}
}

func boolAccessor(data []bool) Accessor {
	return Accessor{
		DType: Bool,
		Float: func(i int) float64 {
			if data[i] {
				return 1
			}
			return 0
		},
		Int: func(i int) int64 {
			if data[i] {
				return 1
			}
			return 0
		},
		Bool:     func(i int) bool { return data[i] },
		SetFloat: func(i int, v float64) { data[i] = v != 0 },
		SetInt:   func(i int, v int64) { data[i] = v != 0 },
		SetBool:  func(i int, v bool) { data[i] = v },
	}
}
