package ndarray_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/born-ml/ndarray/internal/backend/cpu"
	"github.com/born-ml/ndarray/internal/ndarray"
)

var backend = cpu.New()

func nested(t *testing.T, v any) *ndarray.Array {
	t.Helper()
	a, err := ndarray.FromNested(v, backend)
	require.NoError(t, err)
	return a
}

func arange(t *testing.T, stop int) *ndarray.Array {
	t.Helper()
	a, err := ndarray.Arange(0, stop, 1, backend)
	require.NoError(t, err)
	return a
}

func get(t *testing.T, a *ndarray.Array, idx ...ndarray.Index) *ndarray.Array {
	t.Helper()
	out, err := a.Get(idx...)
	require.NoError(t, err)
	return out
}

// must unwraps an (*Array, error) pair: must(t)(x.Reshape(3, 4)).
func must(t *testing.T) func(*ndarray.Array, error) *ndarray.Array {
	return func(a *ndarray.Array, err error) *ndarray.Array {
		t.Helper()
		require.NoError(t, err)
		return a
	}
}
