// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package array

import (
	"io"

	"github.com/born-ml/ndarray/internal/config"
	"github.com/born-ml/ndarray/internal/serialization"
)

// PrintOptions controls how arrays are rendered as text.
type PrintOptions = config.PrintOptions

// DefaultPrintOptions returns the built-in print options.
func DefaultPrintOptions() PrintOptions {
	return config.Default().Print
}

// Write stores named arrays in SafeTensors format. The SHA-256 of the data is
// added to the metadata and verified by Read.
//
// Example:
//
//	err := array.Write(f, map[string]*array.Array{"x": x}, nil)
func Write(w io.Writer, arrays map[string]*Array, metadata map[string]string) error {
	return serialization.WriteSafeTensors(w, raws(arrays), metadata)
}

// Read loads every array of a SafeTensors stream onto backend b.
func Read(r io.Reader, b Backend) (map[string]*Array, map[string]string, error) {
	archive, err := serialization.ReadSafeTensors(r, serialization.ReaderOptions{})
	if err != nil {
		return nil, nil, err
	}
	return wrap(archive, b), archive.Metadata(), nil
}

// Save writes named arrays to a SafeTensors file.
//
// Example:
//
//	backend := cpu.New()
//	x, _ := array.Arange(0, 10, 1, backend)
//	err := array.Save("arrays.safetensors", map[string]*array.Array{"x": x}, nil)
func Save(path string, arrays map[string]*Array, metadata map[string]string) error {
	return serialization.WriteSafeTensorsFile(path, raws(arrays), metadata)
}

// Load reads every array of a SafeTensors file onto backend b.
//
// Example:
//
//	arrays, metadata, err := array.Load("arrays.safetensors", cpu.New())
func Load(path string, b Backend) (map[string]*Array, map[string]string, error) {
	archive, err := serialization.ReadSafeTensorsFile(path, serialization.ReaderOptions{})
	if err != nil {
		return nil, nil, err
	}
	return wrap(archive, b), archive.Metadata(), nil
}

// SaveIDX writes a single uint8, int32, float32 or float64 array to an IDX file.
func SaveIDX(path string, a *Array) error {
	return serialization.WriteIDXFile(path, a.Raw())
}

// LoadIDX reads a single array from an IDX file (e.g. MNIST images).
func LoadIDX(path string, b Backend) (*Array, error) {
	raw, err := serialization.ReadIDXFile(path)
	if err != nil {
		return nil, err
	}
	return New(raw, b), nil
}

func raws(arrays map[string]*Array) map[string]*RawArray {
	out := make(map[string]*RawArray, len(arrays))
	for name, a := range arrays {
		out[name] = a.Raw()
	}
	return out
}

func wrap(archive *serialization.Archive, b Backend) map[string]*Array {
	out := make(map[string]*Array, len(archive.Arrays))
	for name, raw := range archive.Arrays {
		out[name] = New(raw, b)
	}
	return out
}
