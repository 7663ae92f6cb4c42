package serialization

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/born-ml/ndarray/internal/ndarray"
)

// IDX element type codes.
const (
	IDXUint8   byte = 0x08
	IDXInt8    byte = 0x09
	IDXInt16   byte = 0x0B
	IDXInt32   byte = 0x0C
	IDXFloat32 byte = 0x0D
	IDXFloat64 byte = 0x0E
)

// WriteIDX writes a single uint8, int32, float32 or float64 array in IDX format.
func WriteIDX(w io.Writer, r *ndarray.RawArray) error {
	var code byte
	switch r.DType() {
	case ndarray.Uint8:
		code = IDXUint8
	case ndarray.Int32:
		code = IDXInt32
	case ndarray.Float32:
		code = IDXFloat32
	case ndarray.Float64:
		code = IDXFloat64
	default:
		return fmt.Errorf("%w: IDX cannot store %v", ErrUnsupportedDType, r.DType())
	}
	if r.NDim() > MaxDimensions {
		return fmt.Errorf("%w: %d > %d", ErrTooManyDimensions, r.NDim(), MaxDimensions)
	}

	header := []byte{0, 0, code, byte(r.NDim())}
	for _, d := range r.Shape() {
		size, err := dimToUint32(d)
		if err != nil {
			return err
		}
		header = binary.BigEndian.AppendUint32(header, size)
	}
	data, err := encode(r, binary.BigEndian)
	if err != nil {
		return err
	}
	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write IDX header: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write IDX data: %w", err)
	}
	return nil
}

// ReadIDX reads a single array in IDX format. int8 and int16 data is widened
// to int32.
func ReadIDX(r io.Reader) (*ndarray.RawArray, error) {
	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return nil, fmt.Errorf("failed to read IDX magic: %w", err)
	}
	if magic[0] != 0 || magic[1] != 0 {
		return nil, fmt.Errorf("%w: %x", ErrInvalidMagic, magic)
	}
	ndim := int(magic[3])
	if ndim > MaxDimensions {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyDimensions, ndim, MaxDimensions)
	}

	dims := make([]uint32, ndim)
	if err := binary.Read(r, binary.BigEndian, dims); err != nil {
		return nil, fmt.Errorf("failed to read IDX dimensions: %w", err)
	}
	shape := make(ndarray.Shape, ndim)
	for i, d := range dims {
		shape[i] = int(d)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read IDX data: %w", err)
	}

	switch magic[2] {
	case IDXUint8:
		return decode(data, shape, ndarray.Uint8, binary.BigEndian)
	case IDXInt32:
		return decode(data, shape, ndarray.Int32, binary.BigEndian)
	case IDXFloat32:
		return decode(data, shape, ndarray.Float32, binary.BigEndian)
	case IDXFloat64:
		return decode(data, shape, ndarray.Float64, binary.BigEndian)
	case IDXInt8:
		return widen[int8](data, shape, 1)
	case IDXInt16:
		return widen[int16](data, shape, 2)
	default:
		return nil, fmt.Errorf("%w: IDX type code 0x%02x", ErrUnsupportedDType, magic[2])
	}
}

// widen decodes narrow big-endian integers into an int32 array.
func widen[T int8 | int16](data []byte, shape ndarray.Shape, size int) (*ndarray.RawArray, error) {
	if err := checkSize(len(data), shape, size); err != nil {
		return nil, err
	}
	values := make([]T, len(data)/size)
	if err := binary.Read(bytes.NewReader(data), binary.BigEndian, values); err != nil {
		return nil, fmt.Errorf("failed to decode IDX data: %w", err)
	}
	raw, err := ndarray.NewRaw(shape, ndarray.Int32)
	if err != nil {
		return nil, err
	}
	out := ndarray.Storage[int32](raw)
	for i, v := range values {
		out[i] = int32(v)
	}
	return raw, nil
}

// WriteIDXFile writes a single array to an IDX file at path.
func WriteIDXFile(path string, r *ndarray.RawArray) error {
	return writeFile(path, func(w io.Writer) error {
		return WriteIDX(w, r)
	})
}

// ReadIDXFile reads a single array from an IDX file.
func ReadIDXFile(path string) (*ndarray.RawArray, error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for loading
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() {
		_ = file.Close() // Best effort close, read-only
	}()
	return ReadIDX(file)
}
