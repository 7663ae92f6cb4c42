// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides a pure Go CPU backend for array operations.
//
// # Overview
//
// This package implements a CPU backend with:
//   - Pure Go implementation (no CGO)
//   - Strided kernels: slices, transposes and broadcasts are never copied
//   - float32, float64, int32, int64, uint8 and bool elements
//   - NumPy-compatible broadcasting and type promotion
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
//	    x, _ := array.Zeros(array.Shape{2, 3}, array.Float64, backend)
//	    y, _ := array.Ones(array.Shape{2, 3}, array.Float64, backend)
//	    z, _ := x.Add(y)
//	}
//
// # Performance
//
// Elementwise kernels run on one goroutine by default. WithWorkers splits
// large arrays into chunks processed concurrently; results are identical to
// the sequential path. Reductions, scatters and ufunc At always run
// sequentially.
//
// # Thread Safety
//
// The backend holds no mutable state and is safe for concurrent use. Arrays
// themselves are not safe for concurrent mutation.
package cpu
