// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	"github.com/born-ml/ndarray/array"
	internalcpu "github.com/born-ml/ndarray/internal/backend/cpu"
	"github.com/born-ml/ndarray/internal/parallel"
)

// Backend represents the CPU backend implementation.
//
// The CPU backend provides pure Go implementations of every array operation,
// addressing views through their strides without copying.
type Backend = internalcpu.CPUBackend

// Compile-time check that Backend implements array.Backend.
var _ array.Backend = (*Backend)(nil)

// Option configures a Backend.
type Option = internalcpu.Option

// New creates a new CPU backend.
//
// Example:
//
//	import (
//	    "github.com/born-ml/ndarray/array"
//	    "github.com/born-ml/ndarray/backend/cpu"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    x, _ := array.Zeros(array.Shape{2, 3}, array.Float64, backend)
//	}
func New(opts ...Option) *Backend {
	return internalcpu.New(opts...)
}

// WithWorkers lets elementwise kernels over at least minChunk elements per
// goroutine fan out across workers goroutines (0 means one per CPU).
//
// Example:
//
//	backend := cpu.New(cpu.WithWorkers(0, 4096))
func WithWorkers(workers, minChunk int) Option {
	cfg := parallel.DefaultConfig()
	if workers > 0 {
		cfg.NumWorkers = workers
	}
	if minChunk > 0 {
		cfg.MinChunkSize = minChunk
	}
	cfg.Enabled = cfg.NumWorkers > 1
	return internalcpu.WithParallel(cfg)
}
