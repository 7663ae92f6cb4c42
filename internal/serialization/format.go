package serialization

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/born-ml/ndarray/internal/ndarray"
)

// metadataKey names the free-form string map in a SafeTensors header.
const metadataKey = "__metadata__"

// SafeTensors dtype names.
const (
	DTypeF32  = "F32"
	DTypeF64  = "F64"
	DTypeI32  = "I32"
	DTypeI64  = "I64"
	DTypeU8   = "U8"
	DTypeBool = "BOOL"
)

// ArrayInfo describes an array in a SafeTensors header.
type ArrayInfo struct {
	DType       string   `json:"dtype"`
	Shape       []int    `json:"shape"`
	DataOffsets [2]int64 `json:"data_offsets"` // [start, end) within the data section
}

// Header is the JSON header of a SafeTensors file.
type Header struct {
	Metadata map[string]string
	Arrays   map[string]ArrayInfo
}

// MarshalJSON writes the arrays and the metadata as one flat JSON object.
func (h Header) MarshalJSON() ([]byte, error) {
	flat := make(map[string]any, len(h.Arrays)+1)
	if len(h.Metadata) > 0 {
		flat[metadataKey] = h.Metadata
	}
	for name, info := range h.Arrays {
		flat[name] = info
	}
	return json.Marshal(flat)
}

// UnmarshalJSON implements custom JSON unmarshaling for Header.
func (h *Header) UnmarshalJSON(data []byte) error {
	var rawMap map[string]json.RawMessage
	if err := json.Unmarshal(data, &rawMap); err != nil {
		return err
	}

	if metadataRaw, ok := rawMap[metadataKey]; ok {
		if err := json.Unmarshal(metadataRaw, &h.Metadata); err != nil {
			return fmt.Errorf("failed to unmarshal metadata: %w", err)
		}
	}

	h.Arrays = make(map[string]ArrayInfo, len(rawMap))
	for key, value := range rawMap {
		if key == metadataKey {
			continue
		}
		var info ArrayInfo
		if err := json.Unmarshal(value, &info); err != nil {
			return fmt.Errorf("failed to unmarshal array %s: %w", key, err)
		}
		h.Arrays[key] = info
	}
	return nil
}

// Names returns the array names in data order (ascending start offset, then name).
func (h Header) Names() []string {
	names := make([]string, 0, len(h.Arrays))
	for name := range h.Arrays {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := h.Arrays[names[i]].DataOffsets[0], h.Arrays[names[j]].DataOffsets[0]
		if a != b {
			return a < b
		}
		return names[i] < names[j]
	})
	return names
}

// Regions lists each array's byte range for offset validation.
func (h Header) Regions() []Region {
	regions := make([]Region, 0, len(h.Arrays))
	for _, name := range h.Names() {
		off := h.Arrays[name].DataOffsets
		regions = append(regions, Region{Name: name, Offset: off[0], Size: off[1] - off[0]})
	}
	return regions
}

// Region is a named byte range of the data section.
type Region struct {
	Name   string
	Offset int64
	Size   int64
}

// End returns the offset one past the region's last byte.
func (r Region) End() int64 {
	return r.Offset + r.Size
}

// dtypeToSafeTensors converts an ndarray dtype to its SafeTensors name.
func dtypeToSafeTensors(dt ndarray.DataType) (string, error) {
	switch dt {
	case ndarray.Float32:
		return DTypeF32, nil
	case ndarray.Float64:
		return DTypeF64, nil
	case ndarray.Int32:
		return DTypeI32, nil
	case ndarray.Int64:
		return DTypeI64, nil
	case ndarray.Uint8:
		return DTypeU8, nil
	case ndarray.Bool:
		return DTypeBool, nil
	default:
		return "", fmt.Errorf("%w: %v", ErrUnsupportedDType, dt)
	}
}

// safeTensorsToDtype converts a SafeTensors dtype name to an ndarray dtype.
func safeTensorsToDtype(s string) (ndarray.DataType, error) {
	switch s {
	case DTypeF32:
		return ndarray.Float32, nil
	case DTypeF64:
		return ndarray.Float64, nil
	case DTypeI32:
		return ndarray.Int32, nil
	case DTypeI64:
		return ndarray.Int64, nil
	case DTypeU8:
		return ndarray.Uint8, nil
	case DTypeBool:
		return ndarray.Bool, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedDType, s)
	}
}
