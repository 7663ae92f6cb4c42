package serialization

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/born-ml/ndarray/internal/ndarray"
)

// ReaderOptions configures how archives are read.
type ReaderOptions struct {
	SkipChecksumValidation bool            // Skip checksum validation (faster but less safe)
	ValidationLevel        ValidationLevel // Validation strictness level
}

// Archive is the content of a SafeTensors file.
type Archive struct {
	Header Header
	Arrays map[string]*ndarray.RawArray
}

// Names returns the array names in file order.
func (a *Archive) Names() []string {
	return a.Header.Names()
}

// Metadata returns the metadata map from the header.
func (a *Archive) Metadata() map[string]string {
	return a.Header.Metadata
}

// Get returns the named array.
func (a *Archive) Get(name string) (*ndarray.RawArray, error) {
	raw, ok := a.Arrays[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrArrayNotFound, name)
	}
	return raw, nil
}

// ReadSafeTensors reads every array of a SafeTensors stream.
//
// The header is validated according to opts.ValidationLevel and, when the
// metadata carries ChecksumKey, the data section is verified against it.
func ReadSafeTensors(r io.Reader, opts ReaderOptions) (*Archive, error) {
	var headerSize uint64
	if err := binary.Read(r, binary.LittleEndian, &headerSize); err != nil {
		return nil, fmt.Errorf("failed to read header size: %w", err)
	}
	if headerSize > MaxHeaderSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrHeaderTooLarge, headerSize)
	}

	headerBytes := make([]byte, headerSize)
	if _, err := io.ReadFull(r, headerBytes); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	var header Header
	if err := json.Unmarshal(headerBytes, &header); err != nil {
		return nil, fmt.Errorf("failed to parse header JSON: %w", err)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read array data: %w", err)
	}
	if err := ValidateHeader(&header, int64(len(data)), opts.ValidationLevel); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if stored, ok := header.Metadata[ChecksumKey]; ok && !opts.SkipChecksumValidation {
		if err := ValidateChecksum(data, stored); err != nil {
			return nil, err
		}
	}

	archive := &Archive{
		Header: header,
		Arrays: make(map[string]*ndarray.RawArray, len(header.Arrays)),
	}
	for _, name := range header.Names() {
		raw, err := decodeArray(name, header.Arrays[name], data)
		if err != nil {
			return nil, err
		}
		archive.Arrays[name] = raw
	}
	return archive, nil
}

// ReadSafeTensorsFile reads a SafeTensors file.
func ReadSafeTensorsFile(path string, opts ReaderOptions) (*Archive, error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for loading
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() {
		_ = file.Close() // Best effort close, read-only
	}()
	return ReadSafeTensors(file, opts)
}

func decodeArray(name string, info ArrayInfo, data []byte) (*ndarray.RawArray, error) {
	start, end := info.DataOffsets[0], info.DataOffsets[1]
	if start < 0 || end < start || end > int64(len(data)) {
		return nil, &ValidationError{
			Type:    "out_of_bounds",
			Array:   name,
			Details: fmt.Sprintf("data offsets [%d, %d] outside data section of %d bytes", start, end, len(data)),
		}
	}
	dtype, err := safeTensorsToDtype(info.DType)
	if err != nil {
		return nil, fmt.Errorf("array %s: %w", name, err)
	}
	raw, err := decode(data[start:end], ndarray.Shape(info.Shape), dtype, binary.LittleEndian)
	if err != nil {
		return nil, fmt.Errorf("array %s: %w", name, err)
	}
	return raw, nil
}
