// Package random fills arrays with pseudo-random samples.
//
// A Generator wraps a seeded PCG source, so the same seed always produces the
// same arrays. Generators are not safe for concurrent use.
package random

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/ndarray/internal/ndarray"
)

// pcgStream is the second PCG word; the seed only picks the first.
const pcgStream = 0x9e3779b97f4a7c15

// Generator draws samples into new arrays on a backend.
type Generator struct {
	rng     *rand.Rand
	backend ndarray.Backend
}

// New creates a generator seeded with seed.
func New(seed uint64, b ndarray.Backend) *Generator {
	return &Generator{
		rng:     rand.New(rand.NewPCG(seed, pcgStream)), //nolint:gosec // G404: reproducible sampling, not cryptography
		backend: b,
	}
}

// fill allocates an array of shape and sets element k (row-major) to next().
func fill[T ndarray.DType](g *Generator, shape ndarray.Shape, dtype ndarray.DataType, next func() T) (*ndarray.Array, error) {
	raw, err := ndarray.NewRaw(shape, dtype)
	if err != nil {
		return nil, err
	}
	data := ndarray.Storage[T](raw)
	for i := range data {
		data[i] = next()
	}
	return ndarray.New(raw, g.backend), nil
}

// Random returns float64 samples from the half-open interval [0, 1).
func (g *Generator) Random(shape ndarray.Shape) (*ndarray.Array, error) {
	return fill(g, shape, ndarray.Float64, g.rng.Float64)
}

// Uniform returns float64 samples from [low, high).
func (g *Generator) Uniform(low, high float64, shape ndarray.Shape) (*ndarray.Array, error) {
	if !(high >= low) {
		return nil, ndarray.ValueErrorf("uniform", "high must be >= low, got low=%v high=%v", low, high)
	}
	span := high - low
	return fill(g, shape, ndarray.Float64, func() float64 {
		return low + span*g.rng.Float64()
	})
}

// Normal returns samples from the normal distribution N(mean, std²).
func (g *Generator) Normal(mean, std float64, shape ndarray.Shape) (*ndarray.Array, error) {
	if !(std >= 0) {
		return nil, ndarray.ValueErrorf("normal", "scale must be non-negative, got %v", std)
	}
	return fill(g, shape, ndarray.Float64, func() float64 {
		return mean + std*g.rng.NormFloat64()
	})
}

// Randn returns standard normal samples.
//
// Example:
//
//	g := random.New(42, cpu.New())
//	x, _ := g.Randn(3, 4)
func (g *Generator) Randn(shape ...int) (*ndarray.Array, error) {
	return g.Normal(0, 1, ndarray.Shape(shape))
}

// RandInt returns int64 samples from [low, high).
func (g *Generator) RandInt(low, high int64, shape ndarray.Shape) (*ndarray.Array, error) {
	if high <= low {
		return nil, ndarray.ValueErrorf("randint", "low >= high (%d >= %d)", low, high)
	}
	span := uint64(high - low)
	return fill(g, shape, ndarray.Int64, func() int64 {
		return low + int64(g.rng.Uint64N(span))
	})
}

// Choice draws size indices from [0, n) as int64, with or without replacement.
func (g *Generator) Choice(n, size int, replace bool) (*ndarray.Array, error) {
	const op = "choice"
	switch {
	case n < 0 || size < 0:
		return nil, ndarray.ValueErrorf(op, "population and sample size must be non-negative, got n=%d size=%d", n, size)
	case n == 0 && size > 0:
		return nil, ndarray.ValueErrorf(op, "cannot take a non-empty sample from an empty population")
	case !replace && size > n:
		return nil, ndarray.ValueErrorf(op, "cannot take a larger sample (%d) than population (%d) when replace is false", size, n)
	}
	if replace {
		return fill(g, ndarray.Shape{size}, ndarray.Int64, func() int64 {
			return int64(g.rng.IntN(n))
		})
	}
	perm := g.rng.Perm(n)[:size]
	k := 0
	return fill(g, ndarray.Shape{size}, ndarray.Int64, func() int64 {
		k++
		return int64(perm[k-1])
	})
}

// Permutation returns the integers 0..n-1 in random order.
func (g *Generator) Permutation(n int) (*ndarray.Array, error) {
	return g.Choice(n, n, false)
}

// Shuffle permutes a in place along its first axis.
func (g *Generator) Shuffle(a *ndarray.Array) error {
	if a.NDim() == 0 {
		return ndarray.ValueErrorf("shuffle", "cannot shuffle a 0-d array")
	}
	perm, err := g.Permutation(a.Shape()[0])
	if err != nil {
		return err
	}
	shuffled, err := a.Get(perm)
	if err != nil {
		return err
	}
	return a.Set(shuffled, ndarray.Ellipsis)
}

// MultivariateNormal draws n samples from N(mean, cov) and returns them as an
// (n, d) float64 array. mean must be 1-D of length d and cov a symmetric
// positive-definite (d, d) matrix.
//
// Samples are mean + L·z where cov = L·Lᵀ is the Cholesky factorization and
// z is standard normal.
func (g *Generator) MultivariateNormal(mean, cov *ndarray.Array, n int) (*ndarray.Array, error) {
	const op = "multivariate_normal"
	if mean.NDim() != 1 {
		return nil, ndarray.ValueErrorf(op, "mean must be 1-D, got shape %v", mean.Shape())
	}
	d := mean.Size()
	if !cov.Shape().Equal(ndarray.Shape{d, d}) {
		return nil, ndarray.ValueErrorf(op, "cov must have shape (%d, %d), got %v", d, d, cov.Shape())
	}
	if n < 0 {
		return nil, ndarray.ValueErrorf(op, "sample count must be non-negative, got %d", n)
	}

	if d == 0 {
		return nil, ndarray.ValueErrorf(op, "mean must not be empty")
	}

	c := cov.ToFloat64s()
	for i := 0; i < d; i++ {
		for j := i + 1; j < d; j++ {
			if c[i*d+j] != c[j*d+i] {
				return nil, ndarray.ValueErrorf(op, "covariance is not symmetric at (%d, %d)", i, j)
			}
		}
	}
	var chol mat.Cholesky
	if ok := chol.Factorize(mat.NewSymDense(d, c)); !ok {
		return nil, ndarray.ValueErrorf(op, "covariance is not positive-definite")
	}
	var l mat.TriDense
	chol.LTo(&l)

	out, err := ndarray.NewRaw(ndarray.Shape{n, d}, ndarray.Float64)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return ndarray.New(out, g.backend), nil
	}

	z := mat.NewDense(d, n, nil)
	for i := 0; i < d; i++ {
		for j := 0; j < n; j++ {
			z.Set(i, j, g.rng.NormFloat64())
		}
	}
	var x mat.Dense
	x.Mul(&l, z)

	mu := mean.ToFloat64s()
	data := out.AsFloat64()
	for s := 0; s < n; s++ {
		for i := 0; i < d; i++ {
			data[s*d+i] = mu[i] + x.At(i, s)
		}
	}
	return ndarray.New(out, g.backend), nil
}
