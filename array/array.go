// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package array

import (
	"github.com/born-ml/ndarray/internal/ndarray"
)

// Type aliases for public API

// Array is a dense N-dimensional array bound to a compute backend.
//
// Example:
//
//	backend := cpu.New()
//	x, _ := array.Arange(0, 10, 1, backend)
//	y, _ := x.Get(array.S(5, array.None, -2)) // [5 3 1], a view
type Array = ndarray.Array

// RawArray is the low-level strided storage behind an Array.
// Most users should use Array instead.
type RawArray = ndarray.RawArray

// Backend is the interface implemented by compute backends.
type Backend = ndarray.Backend

// DType is a constraint for Go element types.
// Supported types: float32, float64, int32, int64, uint8, bool.
type DType = ndarray.DType

// DataType identifies the element type of an array.
type DataType = ndarray.DataType

// Data type constants.
const (
	Float32 DataType = ndarray.Float32
	Float64 DataType = ndarray.Float64
	Int32   DataType = ndarray.Int32
	Int64   DataType = ndarray.Int64
	Uint8   DataType = ndarray.Uint8
	Bool    DataType = ndarray.Bool
)

// Shape represents the dimensions of an array.
// Example: Shape{2, 3, 4} is a 3-D array with dimensions 2×3×4.
type Shape = ndarray.Shape

// Indexing

// Index is one component of an indexing expression.
type Index = ndarray.Index

// Slice is a start:stop:step index.
type Slice = ndarray.Slice

// None marks an omitted slice bound: S(None, None, -1) is "::-1".
const None = ndarray.None

var (
	// NewAxis inserts a new axis of size 1.
	NewAxis = ndarray.NewAxis
	// Ellipsis expands to as many full slices as needed.
	Ellipsis = ndarray.Ellipsis
)

// I returns an integer index. Negative values count from the end of the axis.
func I(k int) Index { return ndarray.I(k) }

// S returns the slice start:stop:step.
func S(start, stop, step int) Slice { return ndarray.S(start, stop, step) }

// All returns the full slice ":".
func All() Slice { return ndarray.All() }

// Span returns start:stop with step 1.
func Span(start, stop int) Slice { return ndarray.Span(start, stop) }

// Ints returns a 1-D integer (fancy) index.
func Ints(values ...int) Index { return ndarray.Ints(values...) }

// Bools returns a 1-D boolean mask.
func Bools(values ...bool) Index { return ndarray.Bools(values...) }

// Tuple groups several indices into one Index value.
func Tuple(idx ...Index) Index { return ndarray.Tuple(idx...) }

// Ufuncs

// BinaryOp is an elementwise binary ufunc with Reduce, Accumulate and At.
type BinaryOp = ndarray.BinaryOp

// Binary ufuncs.
const (
	Add         BinaryOp = ndarray.Add
	Subtract    BinaryOp = ndarray.Subtract
	Multiply    BinaryOp = ndarray.Multiply
	Divide      BinaryOp = ndarray.Divide
	FloorDivide BinaryOp = ndarray.FloorDivide
	Mod         BinaryOp = ndarray.Mod
	Power       BinaryOp = ndarray.Power
	Minimum     BinaryOp = ndarray.Minimum
	Maximum     BinaryOp = ndarray.Maximum
	LogicalAnd  BinaryOp = ndarray.LogicalAnd
	LogicalOr   BinaryOp = ndarray.LogicalOr
	LogicalXor  BinaryOp = ndarray.LogicalXor
)

// UnaryOp is an elementwise unary ufunc, applied with Array.ApplyUnary.
type UnaryOp = ndarray.UnaryOp

// CompareOp is an elementwise comparison, applied with Array.Compare.
type CompareOp = ndarray.CompareOp

// Aggregations

// ReduceOption configures an aggregation.
type ReduceOption = ndarray.ReduceOption

// Axis collapses only axis k (negative counts from the end).
func Axis(k int) ReduceOption { return ndarray.Axis(k) }

// Flat collapses every axis.
func Flat() ReduceOption { return ndarray.Flat() }

// KeepDims keeps collapsed axes with size 1.
func KeepDims() ReduceOption { return ndarray.KeepDims() }

// DDof sets the delta degrees of freedom of Var and Std.
func DDof(n int) ReduceOption { return ndarray.DDof(n) }

// Side selects the insertion point reported by SearchSorted.
type Side = ndarray.Side

// Search sides.
const (
	SideLeft  Side = ndarray.SideLeft
	SideRight Side = ndarray.SideRight
)

// Errors

// ShapeError reports a non-rectangular input or an invalid reshape.
type ShapeError = ndarray.ShapeError

// BroadcastError reports operand shapes that cannot be broadcast together.
type BroadcastError = ndarray.BroadcastError

// IndexError reports an out-of-range index or an index of the wrong rank.
type IndexError = ndarray.IndexError

// DtypeError reports element types an operation cannot combine.
type DtypeError = ndarray.DtypeError

// DivisionByZeroError reports integer division by zero.
type DivisionByZeroError = ndarray.DivisionByZeroError

// ValueError reports an invalid argument value.
type ValueError = ndarray.ValueError
