package serialization

import (
	"bytes"
	"encoding/binary"
	"errors"
	"path/filepath"
	"testing"

	"github.com/born-ml/ndarray/internal/ndarray"
)

func testArrays(t *testing.T) map[string]*ndarray.RawArray {
	t.Helper()

	f32 := ndarray.MustRaw(ndarray.Shape{2, 3}, ndarray.Float32)
	copy(f32.AsFloat32(), []float32{1, 2, 3, 4, 5, 6})

	f64 := ndarray.MustRaw(ndarray.Shape{3}, ndarray.Float64)
	copy(f64.AsFloat64(), []float64{0.5, -1.25, 1e300})

	i32 := ndarray.MustRaw(ndarray.Shape{2}, ndarray.Int32)
	copy(i32.AsInt32(), []int32{-7, 1 << 30})

	i64 := ndarray.MustRaw(ndarray.Shape{}, ndarray.Int64)
	i64.AsInt64()[0] = -1 << 40

	u8 := ndarray.MustRaw(ndarray.Shape{2, 2}, ndarray.Uint8)
	copy(u8.AsUint8(), []uint8{0, 1, 254, 255})

	b := ndarray.MustRaw(ndarray.Shape{3}, ndarray.Bool)
	copy(b.AsBool(), []bool{true, false, true})

	return map[string]*ndarray.RawArray{
		"weights": f32,
		"heights": f64,
		"ids":     i32,
		"count":   i64,
		"pixels":  u8,
		"mask":    b,
		"empty":   ndarray.MustRaw(ndarray.Shape{0, 4}, ndarray.Float64),
	}
}

// elements reads r in row-major order as float64.
func elements(r *ndarray.RawArray) []float64 {
	acc := ndarray.NewAccessor(r)
	out := make([]float64, r.NumElements())
	for i := range out {
		out[i] = acc.Float(r.StorageIndex(i))
	}
	return out
}

func assertSameArray(t *testing.T, name string, want, got *ndarray.RawArray) {
	t.Helper()
	if got.DType() != want.DType() {
		t.Errorf("%s: expected dtype %v, got %v", name, want.DType(), got.DType())
	}
	if !got.Shape().Equal(want.Shape()) {
		t.Errorf("%s: expected shape %v, got %v", name, want.Shape(), got.Shape())
	}
	w, g := elements(want), elements(got)
	if len(w) != len(g) {
		t.Fatalf("%s: expected %d elements, got %d", name, len(w), len(g))
	}
	for i := range w {
		if w[i] != g[i] {
			t.Errorf("%s[%d]: expected %v, got %v", name, i, w[i], g[i])
		}
	}
}

// craft assembles a SafeTensors stream from a literal header and data.
func craft(header string, data []byte) []byte {
	var buf bytes.Buffer
	_ = binary.Write(&buf, binary.LittleEndian, uint64(len(header)))
	buf.WriteString(header)
	buf.Write(data)
	return buf.Bytes()
}

// TestSafeTensorsRoundTrip tests write → read → verify for every dtype.
func TestSafeTensorsRoundTrip(t *testing.T) {
	arrays := testArrays(t)
	metadata := map[string]string{"source": "walkthrough"}

	var buf bytes.Buffer
	if err := WriteSafeTensors(&buf, arrays, metadata); err != nil {
		t.Fatalf("WriteSafeTensors failed: %v", err)
	}

	archive, err := ReadSafeTensors(bytes.NewReader(buf.Bytes()), ReaderOptions{})
	if err != nil {
		t.Fatalf("ReadSafeTensors failed: %v", err)
	}
	if len(archive.Arrays) != len(arrays) {
		t.Fatalf("Expected %d arrays, got %d", len(arrays), len(archive.Arrays))
	}
	for name, want := range arrays {
		got, err := archive.Get(name)
		if err != nil {
			t.Fatalf("Get(%s) failed: %v", name, err)
		}
		assertSameArray(t, name, want, got)
	}

	if archive.Metadata()["source"] != "walkthrough" {
		t.Errorf("Expected metadata to survive, got %v", archive.Metadata())
	}
	if _, ok := archive.Metadata()[ChecksumKey]; !ok {
		t.Error("Expected checksum in metadata")
	}
	if _, ok := metadata[ChecksumKey]; ok {
		t.Error("Caller's metadata map must not be modified")
	}
}

// TestSafeTensorsLayout checks the byte layout other readers rely on.
func TestSafeTensorsLayout(t *testing.T) {
	a := ndarray.MustRaw(ndarray.Shape{2}, ndarray.Int32)
	copy(a.AsInt32(), []int32{1, 2})
	b := ndarray.MustRaw(ndarray.Shape{1}, ndarray.Uint8)
	b.AsUint8()[0] = 9

	var buf bytes.Buffer
	if err := WriteSafeTensors(&buf, map[string]*ndarray.RawArray{"b": b, "a": a}, nil); err != nil {
		t.Fatalf("WriteSafeTensors failed: %v", err)
	}
	raw := buf.Bytes()

	headerSize := binary.LittleEndian.Uint64(raw[:8])
	if headerSize%8 != 0 {
		t.Errorf("Expected header size padded to 8 bytes, got %d", headerSize)
	}
	data := raw[8+headerSize:]
	expected := []byte{1, 0, 0, 0, 2, 0, 0, 0, 9} // "a" then "b", little-endian
	if !bytes.Equal(data, expected) {
		t.Errorf("Expected data %v, got %v", expected, data)
	}

	archive, err := ReadSafeTensors(bytes.NewReader(raw), ReaderOptions{})
	if err != nil {
		t.Fatalf("ReadSafeTensors failed: %v", err)
	}
	if names := archive.Names(); len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("Expected names [a b], got %v", names)
	}
	if info := archive.Header.Arrays["b"]; info.DataOffsets != [2]int64{8, 9} || info.DType != DTypeU8 {
		t.Errorf("Unexpected header entry for b: %+v", info)
	}
}

// TestSafeTensorsViews writes non-contiguous views in logical order.
func TestSafeTensorsViews(t *testing.T) {
	base := ndarray.MustRaw(ndarray.Shape{2, 3}, ndarray.Int64)
	copy(base.AsInt64(), []int64{0, 1, 2, 3, 4, 5})
	transposed := base.View(ndarray.Shape{3, 2}, []int{1, 3}, 0)
	reversed := base.View(ndarray.Shape{3}, []int{-1}, 5)

	var buf bytes.Buffer
	err := WriteSafeTensors(&buf, map[string]*ndarray.RawArray{"t": transposed, "r": reversed}, nil)
	if err != nil {
		t.Fatalf("WriteSafeTensors failed: %v", err)
	}
	archive, err := ReadSafeTensors(&buf, ReaderOptions{})
	if err != nil {
		t.Fatalf("ReadSafeTensors failed: %v", err)
	}
	assertSameArray(t, "t", transposed, archive.Arrays["t"])
	assertSameArray(t, "r", reversed, archive.Arrays["r"])
}

// TestSafeTensorsFile tests the file helpers.
func TestSafeTensorsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arrays.safetensors")
	arrays := testArrays(t)

	if err := WriteSafeTensorsFile(path, arrays, nil); err != nil {
		t.Fatalf("WriteSafeTensorsFile failed: %v", err)
	}
	archive, err := ReadSafeTensorsFile(path, ReaderOptions{})
	if err != nil {
		t.Fatalf("ReadSafeTensorsFile failed: %v", err)
	}
	assertSameArray(t, "weights", arrays["weights"], archive.Arrays["weights"])

	if _, err := ReadSafeTensorsFile(filepath.Join(t.TempDir(), "missing"), ReaderOptions{}); err == nil {
		t.Error("Expected error for missing file")
	}
}

// TestSafeTensorsChecksum detects corrupted data.
func TestSafeTensorsChecksum(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSafeTensors(&buf, testArrays(t), nil); err != nil {
		t.Fatalf("WriteSafeTensors failed: %v", err)
	}
	corrupted := buf.Bytes()
	corrupted[len(corrupted)-1] ^= 0x01

	_, err := ReadSafeTensors(bytes.NewReader(corrupted), ReaderOptions{})
	if !errors.Is(err, ErrChecksumMismatch) {
		t.Errorf("Expected ErrChecksumMismatch, got: %v", err)
	}

	if _, err := ReadSafeTensors(bytes.NewReader(corrupted), ReaderOptions{SkipChecksumValidation: true}); err != nil {
		t.Errorf("Expected skip to succeed, got: %v", err)
	}
}

// TestSafeTensorsMalformed reads hand-built files that must be rejected.
func TestSafeTensorsMalformed(t *testing.T) {
	tests := []struct {
		name    string
		input   []byte
		opts    ReaderOptions
		wantErr error
	}{
		{
			name: "overlap",
			input: craft(`{"a":{"dtype":"U8","shape":[4],"data_offsets":[0,4]},`+
				`"b":{"dtype":"U8","shape":[4],"data_offsets":[2,6]}}`, make([]byte, 6)),
			wantErr: ErrOffsetOverlap,
		},
		{
			name:    "out of bounds",
			input:   craft(`{"a":{"dtype":"F64","shape":[2],"data_offsets":[0,16]}}`, make([]byte, 8)),
			wantErr: ErrOutOfBounds,
		},
		{
			name:    "out of bounds without validation",
			input:   craft(`{"a":{"dtype":"F64","shape":[2],"data_offsets":[0,16]}}`, make([]byte, 8)),
			opts:    ReaderOptions{ValidationLevel: ValidationNone},
			wantErr: ErrOutOfBounds,
		},
		{
			name:    "size mismatch",
			input:   craft(`{"a":{"dtype":"I32","shape":[3],"data_offsets":[0,8]}}`, make([]byte, 8)),
			wantErr: ErrSizeMismatch,
		},
		{
			name:    "unsupported dtype",
			input:   craft(`{"a":{"dtype":"F16","shape":[2],"data_offsets":[0,4]}}`, make([]byte, 4)),
			wantErr: ErrUnsupportedDType,
		},
		{
			name:    "path name",
			input:   craft(`{"../a":{"dtype":"U8","shape":[1],"data_offsets":[0,1]}}`, make([]byte, 1)),
			wantErr: ErrInvalidArrayName,
		},
		{
			name:    "huge dimensions",
			input:   craft(`{"a":{"dtype":"U8","shape":[4294967296,4294967296],"data_offsets":[0,1]}}`, make([]byte, 1)),
			wantErr: ErrSizeMismatch,
		},
		{
			name:    "checksum",
			input:   craft(`{"__metadata__":{"checksum_sha256":"00"},"a":{"dtype":"U8","shape":[1],"data_offsets":[0,1]}}`, []byte{1}),
			wantErr: ErrChecksumMismatch,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadSafeTensors(bytes.NewReader(tt.input), tt.opts)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got: %v", tt.wantErr, err)
			}
		})
	}
}

// TestSafeTensorsHeaderTooLarge rejects oversized headers before allocating.
func TestSafeTensorsHeaderTooLarge(t *testing.T) {
	var buf bytes.Buffer
	_ = binary.Write(&buf, binary.LittleEndian, uint64(MaxHeaderSize+1))

	_, err := ReadSafeTensors(&buf, ReaderOptions{})
	if !errors.Is(err, ErrHeaderTooLarge) {
		t.Errorf("Expected ErrHeaderTooLarge, got: %v", err)
	}
}

// TestSafeTensorsWriteRejectsBadName validates names before writing anything.
func TestSafeTensorsWriteRejectsBadName(t *testing.T) {
	var buf bytes.Buffer
	err := WriteSafeTensors(&buf, map[string]*ndarray.RawArray{"a/b": ndarray.MustRaw(ndarray.Shape{1}, ndarray.Uint8)}, nil)
	if !errors.Is(err, ErrInvalidArrayName) {
		t.Errorf("Expected ErrInvalidArrayName, got: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("Expected nothing written, got %d bytes", buf.Len())
	}
}

// TestArchiveGetMissing reports unknown names.
func TestArchiveGetMissing(t *testing.T) {
	archive := &Archive{Arrays: map[string]*ndarray.RawArray{}}
	if _, err := archive.Get("nope"); !errors.Is(err, ErrArrayNotFound) {
		t.Errorf("Expected ErrArrayNotFound, got: %v", err)
	}
}
