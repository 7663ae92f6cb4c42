// Package cpu implements the ndarray compute backend in pure Go.
//
// Kernels address operands through strides, so views (negative strides,
// broadcast zero strides, offsets) are processed without copying. Elementwise
// kernels can fan out across goroutines; reductions, scatters and ufunc.at run
// sequentially because their results depend on visiting order.
package cpu

import (
	"github.com/born-ml/ndarray/internal/ndarray"
	"github.com/born-ml/ndarray/internal/parallel"
)

// CPUBackend implements ndarray.Backend on the CPU.
type CPUBackend struct {
	parallel parallel.Config
}

// Option configures a CPUBackend.
type Option func(*CPUBackend)

// WithParallel sets the goroutine fan-out used by elementwise kernels.
func WithParallel(cfg parallel.Config) Option {
	return func(cpu *CPUBackend) {
		cpu.parallel = cfg
	}
}

// New creates a new CPU backend. Kernels run sequentially unless WithParallel
// is given.
func New(opts ...Option) *CPUBackend {
	cpu := &CPUBackend{
		parallel: parallel.Sequential(),
	}
	for _, opt := range opts {
		opt(cpu)
	}
	return cpu
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Parallel returns the parallel execution settings.
func (cpu *CPUBackend) Parallel() parallel.Config {
	return cpu.parallel
}

// forEach visits every position of shape in row-major order, handing fn the
// storage index of each operand view. Spans of positions may run concurrently.
func (cpu *CPUBackend) forEach(shape ndarray.Shape, views []view, fn func(idx []int)) {
	parallel.Range(shape.NumElements(), func(start, end int) {
		walk(shape, views, start, end, fn)
	}, cpu.parallel)
}

var _ ndarray.Backend = (*CPUBackend)(nil)
