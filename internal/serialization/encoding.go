package serialization

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/born-ml/ndarray/internal/ndarray"
)

// encode returns the elements of r in row-major order as raw bytes.
func encode(r *ndarray.RawArray, order binary.ByteOrder) ([]byte, error) {
	src := r.Contiguous()
	n := src.NumElements()
	if n == 0 {
		return []byte{}, nil
	}

	var data any
	switch src.DType() {
	case ndarray.Float32:
		data = src.AsFloat32()
	case ndarray.Float64:
		data = src.AsFloat64()
	case ndarray.Int32:
		data = src.AsInt32()
	case ndarray.Int64:
		data = src.AsInt64()
	case ndarray.Uint8:
		data = src.AsUint8()
	case ndarray.Bool:
		data = src.AsBool()
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedDType, src.DType())
	}

	var buf bytes.Buffer
	buf.Grow(n * src.DType().Size())
	if err := binary.Write(&buf, order, data); err != nil {
		return nil, fmt.Errorf("failed to encode %v data: %w", src.DType(), err)
	}
	return buf.Bytes(), nil
}

// decode builds a new array of shape and dtype from raw bytes.
func decode(data []byte, shape ndarray.Shape, dtype ndarray.DataType, order binary.ByteOrder) (*ndarray.RawArray, error) {
	if err := checkSize(len(data), shape, dtype.Size()); err != nil {
		return nil, err
	}
	raw, err := ndarray.NewRaw(shape, dtype)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return raw, nil
	}

	var dst any
	switch dtype {
	case ndarray.Float32:
		dst = ndarray.Storage[float32](raw)
	case ndarray.Float64:
		dst = ndarray.Storage[float64](raw)
	case ndarray.Int32:
		dst = ndarray.Storage[int32](raw)
	case ndarray.Int64:
		dst = ndarray.Storage[int64](raw)
	case ndarray.Uint8:
		dst = ndarray.Storage[uint8](raw)
	case ndarray.Bool:
		dst = ndarray.Storage[bool](raw)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedDType, dtype)
	}
	if err := binary.Read(bytes.NewReader(data), order, dst); err != nil {
		return nil, fmt.Errorf("failed to decode %v data: %w", dtype, err)
	}
	return raw, nil
}

// checkSize verifies that n bytes hold exactly the elements of shape. It never
// forms the full element count, so hostile dimensions cannot overflow it.
func checkSize(n int, shape ndarray.Shape, elemSize int) error {
	if err := shape.Validate(); err != nil {
		return err
	}
	for _, d := range shape {
		if d == 0 {
			if n != 0 {
				return fmt.Errorf("%w: %d bytes for empty shape %v", ErrSizeMismatch, n, shape)
			}
			return nil
		}
	}
	remaining := n
	if remaining%elemSize != 0 {
		return fmt.Errorf("%w: %d bytes is not a multiple of %d", ErrSizeMismatch, n, elemSize)
	}
	remaining /= elemSize
	for _, d := range shape {
		if remaining%d != 0 {
			return fmt.Errorf("%w: %d bytes for shape %v", ErrSizeMismatch, n, shape)
		}
		remaining /= d
	}
	if remaining != 1 {
		return fmt.Errorf("%w: %d bytes for shape %v", ErrSizeMismatch, n, shape)
	}
	return nil
}

// dimToUint32 narrows a dimension for formats that store 32-bit sizes.
func dimToUint32(d int) (uint32, error) {
	if d < 0 || uint64(d) > math.MaxUint32 {
		return 0, fmt.Errorf("dimension %d does not fit in 32 bits", d)
	}
	return uint32(d), nil
}
