package cpu_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/ndarray/array"
	"github.com/born-ml/ndarray/backend/cpu"
)

func TestNew(t *testing.T) {
	backend := cpu.New()
	assert.Equal(t, "CPU", backend.Name())
	assert.False(t, backend.Parallel().Enabled)
}

func TestWithWorkers(t *testing.T) {
	backend := cpu.New(cpu.WithWorkers(4, 8))
	cfg := backend.Parallel()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 4, cfg.NumWorkers)
	assert.Equal(t, 8, cfg.MinChunkSize)

	assert.False(t, cpu.New(cpu.WithWorkers(1, 8)).Parallel().Enabled)

	x, err := array.Arange(0, 1000, 1, backend)
	require.NoError(t, err)
	y, err := x.Mul(2)
	require.NoError(t, err)
	sum, err := y.Sum()
	require.NoError(t, err)
	total, err := sum.Int64()
	require.NoError(t, err)
	assert.Equal(t, int64(999*1000), total)
}
