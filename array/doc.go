// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package array provides the public API of the ndarray module: dense
// N-dimensional arrays with NumPy-style indexing, broadcasting, ufuncs and
// aggregations.
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/ndarray/array"
//	    "github.com/born-ml/ndarray/backend/cpu"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    x, _ := array.FromNested([][]int{{5, 0, 3, 3}, {7, 9, 3, 5}, {2, 4, 7, 6}}, backend)
//	    lt6, _ := x.Less(6)
//	    n, _ := lt6.CountNonzero()            // 8
//	    rows, _ := x.Less(8)
//	    ok, _ := rows.All(array.Axis(1))      // [ True False  True]
//	    rev, _ := x.Get(array.All(), array.S(array.None, array.None, -1))
//	}
//
// # Views and Copies
//
// Integers, slices, NewAxis and Ellipsis select a view that shares storage
// with the indexed array. Integer and boolean index arrays select a copy.
// Set writes through any index form into the original storage; repeated
// positions are written in row-major order of the selection, last write wins.
// BinaryOp.At applies every occurrence instead.
//
// # Errors
//
// Operations return typed errors (*ShapeError, *BroadcastError, *IndexError,
// *DtypeError, *DivisionByZeroError, *ValueError), matched with errors.As.
// Whole-array operations validate before writing anything.
//
// # Thread Safety
//
// Arrays are not safe for concurrent mutation. Any number of goroutines may
// read an array and its views while none writes to them.
package array
