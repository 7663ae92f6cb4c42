package ndarray

import "fmt"

// storage is the flat typed backing buffer shared by an array and its views.
// data holds one of []bool, []uint8, []int32, []int64, []float32, []float64.
type storage struct {
	data any
}

func newStorage(dtype DataType, n int) *storage {
	var data any
	switch dtype {
	case Bool:
		data = make([]bool, n)
	case Uint8:
		data = make([]uint8, n)
	case Int32:
		data = make([]int32, n)
	case Int64:
		data = make([]int64, n)
	case Float32:
		data = make([]float32, n)
	case Float64:
		data = make([]float64, n)
	default:
		panic(fmt.Sprintf("unsupported dtype %d", dtype))
	}
	return &storage{data: data}
}

// RawArray is the low-level array representation: a typed buffer addressed
// through shape, strides and offset. Several RawArrays may share one buffer
// (views); writes through any of them are visible to all.
type RawArray struct {
	buffer *storage
	shape  Shape
	stride []int    // in elements; may be zero (broadcast) or negative (reversed)
	dtype  DataType // runtime type information
	offset int      // storage index of the element at all-zero coordinates
}

// NewRaw creates a new zero-filled, row-major RawArray with the given shape and type.
func NewRaw(shape Shape, dtype DataType) (*RawArray, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if !dtype.Valid() {
		return nil, &DtypeError{Op: "new", DTypes: []DataType{dtype}, Details: "unknown dtype"}
	}

	return &RawArray{
		buffer: newStorage(dtype, shape.NumElements()),
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
		dtype:  dtype,
	}, nil
}

// MustRaw is NewRaw for shapes already known to be valid (kernel outputs).
func MustRaw(shape Shape, dtype DataType) *RawArray {
	r, err := NewRaw(shape, dtype)
	if err != nil {
		panic(err)
	}
	return r
}

// Shape returns the array's shape.
func (r *RawArray) Shape() Shape {
	return r.shape
}

// Strides returns the array's strides in elements.
func (r *RawArray) Strides() []int {
	return r.stride
}

// Offset returns the storage index of the first logical element.
func (r *RawArray) Offset() int {
	return r.offset
}

// DType returns the array's data type.
func (r *RawArray) DType() DataType {
	return r.dtype
}

// NumElements returns the total number of elements.
func (r *RawArray) NumElements() int {
	return r.shape.NumElements()
}

// NDim returns the number of dimensions.
func (r *RawArray) NDim() int {
	return len(r.shape)
}

// IsContiguous reports whether the logical elements occupy consecutive
// storage positions in row-major order.
func (r *RawArray) IsContiguous() bool {
	if r.NumElements() == 0 {
		return true
	}
	expected := 1
	for i := len(r.shape) - 1; i >= 0; i-- {
		if r.shape[i] == 1 {
			continue
		}
		if r.stride[i] != expected {
			return false
		}
		expected *= r.shape[i]
	}
	return true
}

// View returns a RawArray sharing this array's storage under a different mapping.
// The caller guarantees that every addressed position lies inside the buffer.
func (r *RawArray) View(shape Shape, strides []int, offset int) *RawArray {
	return &RawArray{
		buffer: r.buffer,
		shape:  shape.Clone(),
		stride: append([]int(nil), strides...),
		dtype:  r.dtype,
		offset: offset,
	}
}

// SharesStorage reports whether two arrays are backed by the same buffer.
func (r *RawArray) SharesStorage(other *RawArray) bool {
	return r.buffer == other.buffer
}

// StorageIndex maps a row-major logical flat index to a storage index.
func (r *RawArray) StorageIndex(flat int) int {
	idx := r.offset
	for d := len(r.shape) - 1; d >= 0; d-- {
		n := r.shape[d]
		idx += (flat % n) * r.stride[d]
		flat /= n
	}
	return idx
}

// StorageIndexOf maps coordinates (assumed in bounds) to a storage index.
func (r *RawArray) StorageIndexOf(coords []int) int {
	idx := r.offset
	for d, c := range coords {
		idx += c * r.stride[d]
	}
	return idx
}

// Storage returns the whole typed backing slice of r.
// Panics if T does not match the array's dtype.
//
// WARNING: direct access to shared memory; logical elements live at
// StorageIndex positions, not necessarily at [0, NumElements()).
func Storage[T DType](r *RawArray) []T {
	data, ok := r.buffer.data.([]T)
	if !ok {
		panic(fmt.Sprintf("array dtype is %s, not %s", r.dtype, inferDataType[T]()))
	}
	return data
}

func contiguousSlice[T DType](r *RawArray) []T {
	if !r.IsContiguous() {
		panic("array is not contiguous")
	}
	n := r.NumElements()
	if n == 0 {
		return nil
	}
	return Storage[T](r)[r.offset : r.offset+n]
}

// AsFloat32 returns the logical elements of a contiguous float32 array (zero-copy).
// Panics if the dtype is not Float32 or the array is not contiguous.
func (r *RawArray) AsFloat32() []float32 { return contiguousSlice[float32](r) }

// AsFloat64 returns the logical elements of a contiguous float64 array (zero-copy).
func (r *RawArray) AsFloat64() []float64 { return contiguousSlice[float64](r) }

// AsInt32 returns the logical elements of a contiguous int32 array (zero-copy).
func (r *RawArray) AsInt32() []int32 { return contiguousSlice[int32](r) }

// AsInt64 returns the logical elements of a contiguous int64 array (zero-copy).
func (r *RawArray) AsInt64() []int64 { return contiguousSlice[int64](r) }

// AsUint8 returns the logical elements of a contiguous uint8 array (zero-copy).
func (r *RawArray) AsUint8() []uint8 { return contiguousSlice[uint8](r) }

// AsBool returns the logical elements of a contiguous bool array (zero-copy).
func (r *RawArray) AsBool() []bool { return contiguousSlice[bool](r) }

// Copy returns a contiguous deep copy of r with fresh storage.
func (r *RawArray) Copy() *RawArray {
	out := MustRaw(r.shape, r.dtype)
	switch r.dtype {
	case Bool:
		copyInto(Storage[bool](out), Storage[bool](r), r)
	case Uint8:
		copyInto(Storage[uint8](out), Storage[uint8](r), r)
	case Int32:
		copyInto(Storage[int32](out), Storage[int32](r), r)
	case Int64:
		copyInto(Storage[int64](out), Storage[int64](r), r)
	case Float32:
		copyInto(Storage[float32](out), Storage[float32](r), r)
	case Float64:
		copyInto(Storage[float64](out), Storage[float64](r), r)
	}
	return out
}

// Contiguous returns r itself when it is already contiguous, otherwise a copy.
func (r *RawArray) Contiguous() *RawArray {
	if r.IsContiguous() {
		return r
	}
	return r.Copy()
}

func copyInto[T DType](dst, src []T, r *RawArray) {
	if len(dst) == 0 {
		return
	}
	if r.IsContiguous() {
		copy(dst, src[r.offset:r.offset+len(dst)])
		return
	}
	for i := range dst {
		dst[i] = src[r.StorageIndex(i)]
	}
}
