// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package random provides seeded random array generation.
//
// A Generator draws from a PCG source, so a given seed always produces the
// same arrays. Generators are not safe for concurrent use.
//
// Example:
//
//	backend := cpu.New()
//	rng := random.New(42, backend)
//	x, _ := rng.RandInt(0, 100, array.Shape{10})
//	points, _ := rng.MultivariateNormal(mean, cov, 100) // shape (100, 2)
package random

import (
	"github.com/born-ml/ndarray/array"
	"github.com/born-ml/ndarray/internal/random"
)

// Generator produces arrays of random values.
//
// Distributions:
//   - Random, Uniform: uniform floats
//   - Normal, Randn, MultivariateNormal: Gaussian floats
//   - RandInt, Choice, Permutation: integers
type Generator = random.Generator

// New creates a generator seeded with seed whose arrays live on backend b.
func New(seed uint64, b array.Backend) *Generator {
	return random.New(seed, b)
}
