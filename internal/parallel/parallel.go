// Package parallel splits index ranges across goroutines for the CPU kernels.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Number of worker goroutines to use.
	MinChunkSize int  // Minimum items per goroutine to avoid overhead.
}

// DefaultConfig returns parallel settings sized to the machine.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 4096,
	}
}

// Sequential returns a configuration that never spawns goroutines.
func Sequential() Config {
	return Config{MinChunkSize: 1}
}

// chunkSize returns the per-goroutine span for n items, or n when the work
// should run on the calling goroutine.
func (c Config) chunkSize(n int) int {
	if !c.Enabled || c.NumWorkers < 2 || n < 2*max(c.MinChunkSize, 1) {
		return n
	}
	return max((n+c.NumWorkers-1)/c.NumWorkers, c.MinChunkSize)
}

// Range calls f on disjoint half-open spans [start, end) covering [0, n).
// Spans run concurrently when the configuration allows it; f must only write
// positions inside its own span.
func Range(n int, f func(start, end int), cfg Config) {
	if n <= 0 {
		return
	}
	chunk := cfg.chunkSize(n)
	if chunk >= n {
		f(0, n)
		return
	}

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			f(s, e)
		}(start, end)
	}
	wg.Wait()
}

// For executes f(i) for i in [0, n) with optional parallelism.
// Falls back to sequential execution if parallelism is disabled or n is too small.
func For(n int, f func(i int), cfg Config) {
	Range(n, func(start, end int) {
		for i := start; i < end; i++ {
			f(i)
		}
	}, cfg)
}

// Chunks reports how many spans Range would use for n items.
func Chunks(n int, cfg Config) int {
	if n <= 0 {
		return 0
	}
	chunk := cfg.chunkSize(n)
	return (n + chunk - 1) / chunk
}
