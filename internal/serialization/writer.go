package serialization

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"
	"sort"

	"github.com/born-ml/ndarray/internal/ndarray"
)

// headerAlignment pads the JSON header so array data starts 8-byte aligned.
const headerAlignment = 8

// WriteSafeTensors writes named arrays to w in SafeTensors format.
//
// Arrays are written in alphabetical order by name. Views are written in
// row-major order of their logical elements. The SHA-256 of the data section
// is added to the metadata under ChecksumKey.
func WriteSafeTensors(w io.Writer, arrays map[string]*ndarray.RawArray, metadata map[string]string) error {
	names := make([]string, 0, len(arrays))
	for name := range arrays {
		if err := ValidateArrayName(name); err != nil {
			return err
		}
		names = append(names, name)
	}
	sort.Strings(names)

	header := Header{
		Metadata: make(map[string]string, len(metadata)+1),
		Arrays:   make(map[string]ArrayInfo, len(arrays)),
	}
	maps.Copy(header.Metadata, metadata)

	var data bytes.Buffer
	for _, name := range names {
		raw := arrays[name]
		dtype, err := dtypeToSafeTensors(raw.DType())
		if err != nil {
			return fmt.Errorf("array %s: %w", name, err)
		}
		encoded, err := encode(raw, binary.LittleEndian)
		if err != nil {
			return fmt.Errorf("array %s: %w", name, err)
		}
		start := int64(data.Len())
		data.Write(encoded)
		header.Arrays[name] = ArrayInfo{
			DType:       dtype,
			Shape:       append([]int{}, raw.Shape()...),
			DataOffsets: [2]int64{start, int64(data.Len())},
		}
	}

	sum := ComputeChecksum(data.Bytes())
	header.Metadata[ChecksumKey] = hex.EncodeToString(sum[:])

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return fmt.Errorf("failed to marshal header: %w", err)
	}
	if pad := (headerAlignment - len(headerJSON)%headerAlignment) % headerAlignment; pad > 0 {
		headerJSON = append(headerJSON, bytes.Repeat([]byte{' '}, pad)...)
	}

	if err := binary.Write(w, binary.LittleEndian, uint64(len(headerJSON))); err != nil {
		return fmt.Errorf("failed to write header size: %w", err)
	}
	if _, err := w.Write(headerJSON); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if _, err := w.Write(data.Bytes()); err != nil {
		return fmt.Errorf("failed to write array data: %w", err)
	}
	return nil
}

// WriteSafeTensorsFile writes named arrays to a SafeTensors file at path.
func WriteSafeTensorsFile(path string, arrays map[string]*ndarray.RawArray, metadata map[string]string) error {
	return writeFile(path, func(w io.Writer) error {
		return WriteSafeTensors(w, arrays, metadata)
	})
}

// writeFile creates path and runs write on it, reporting the close error too.
func writeFile(path string, write func(io.Writer) error) (err error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for saving
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close file: %w", cerr)
		}
	}()
	return write(file)
}
