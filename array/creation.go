// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package array

import (
	"github.com/born-ml/ndarray/internal/ndarray"
)

// FromNested creates an array from nested Go slices; ragged input returns a
// *ShapeError.
//
// Example:
//
//	backend := cpu.New()
//	x, err := array.FromNested([][]float64{{1, 2}, {3, 4}}, backend)
func FromNested(v any, b Backend) (*Array, error) {
	return ndarray.FromNested(v, b)
}

// FromSlice creates an array of the given shape from row-major data.
//
// Example:
//
//	backend := cpu.New()
//	x, err := array.FromSlice([]int64{0, 1, 2, 3, 4, 5}, array.Shape{2, 3}, backend)
func FromSlice[T DType](data []T, shape Shape, b Backend) (*Array, error) {
	return ndarray.FromSlice(data, shape, b)
}

// Scalar creates a 0-d array.
func Scalar(v any, b Backend) (*Array, error) {
	return ndarray.Scalar(v, b)
}

// Zeros creates an array filled with zeros.
//
// Example:
//
//	backend := cpu.New()
//	counts, _ := array.Zeros(array.Shape{5}, array.Int64, backend)
func Zeros(shape Shape, dtype DataType, b Backend) (*Array, error) {
	return ndarray.Zeros(shape, dtype, b)
}

// Ones creates an array filled with ones.
func Ones(shape Shape, dtype DataType, b Backend) (*Array, error) {
	return ndarray.Ones(shape, dtype, b)
}

// Full creates an array filled with value.
func Full(shape Shape, dtype DataType, value any, b Backend) (*Array, error) {
	return ndarray.Full(shape, dtype, value, b)
}

// Empty creates an array whose contents are unspecified.
func Empty(shape Shape, dtype DataType, b Backend) (*Array, error) {
	return ndarray.Empty(shape, dtype, b)
}

// ZerosLike creates zeros with the shape and dtype of a.
func ZerosLike(a *Array) *Array {
	return ndarray.ZerosLike(a)
}

// OnesLike creates ones with the shape and dtype of a.
func OnesLike(a *Array) *Array {
	return ndarray.OnesLike(a)
}

// FullLike creates an array with the shape and dtype of a filled with value.
func FullLike(a *Array, value any) (*Array, error) {
	return ndarray.FullLike(a, value)
}

// FromFunc creates an array by calling fn with the coordinates of every element.
func FromFunc(shape Shape, dtype DataType, fn func(coords []int) float64, b Backend) (*Array, error) {
	return ndarray.FromFunc(shape, dtype, fn, b)
}

// Arange creates the int64 range [start, stop) with the given step.
//
// Example:
//
//	backend := cpu.New()
//	x, _ := array.Arange(0, 10, 1, backend) // [0 1 2 3 4 5 6 7 8 9]
func Arange(start, stop, step int, b Backend) (*Array, error) {
	return ndarray.Arange(start, stop, step, b)
}

// ArangeFloat creates the float64 range [start, stop) with the given step.
func ArangeFloat(start, stop, step float64, b Backend) (*Array, error) {
	return ndarray.ArangeFloat(start, stop, step, b)
}

// Linspace creates num evenly spaced float64 values from start to stop inclusive.
func Linspace(start, stop float64, num int, b Backend) (*Array, error) {
	return ndarray.Linspace(start, stop, num, b)
}

// Eye creates an n×n identity matrix.
func Eye(n int, dtype DataType, b Backend) (*Array, error) {
	return ndarray.Eye(n, dtype, b)
}

// New wraps a raw array.
//
// This is a low-level function. Most users should use creation functions like
// Zeros, FromNested, or FromSlice instead.
func New(raw *RawArray, b Backend) *Array {
	return ndarray.New(raw, b)
}

// Manipulation functions

// Concatenate joins arrays along an existing axis.
func Concatenate(arrays []*Array, axis int) (*Array, error) {
	return ndarray.Concatenate(arrays, axis)
}

// Where picks x where cond is true and y elsewhere.
//
// Example:
//
//	clipped, _ := array.Where(mask, x, 0)
func Where(cond *Array, x, y any) (*Array, error) {
	return ndarray.Where(cond, x, y)
}

// Histogram counts the elements of a in the bins delimited by edges.
func Histogram(a, edges *Array) (*Array, error) {
	return ndarray.Histogram(a, edges)
}

// Format renders a with the given print options.
func Format(a *Array, opts PrintOptions) string {
	return ndarray.Format(a, opts)
}
