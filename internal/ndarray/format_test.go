package ndarray_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/born-ml/ndarray/internal/config"
	"github.com/born-ml/ndarray/internal/ndarray"
)

func TestFormat(t *testing.T) {
	opts := config.Default().Print

	tests := []struct {
		name string
		a    *ndarray.Array
		want string
	}{
		{"scalar", nested(t, 42), "42"},
		{"float scalar", nested(t, 2.5), "2.5"},
		{"ints", nested(t, []int{1, 22, 3}), "[ 1 22  3]"},
		{"matrix", nested(t, [][]int{{5, 0, 3, 3}, {7, 9, 3, 5}}), "[[5 0 3 3]\n [7 9 3 5]]"},
		{"floats", nested(t, []float64{1.5, 2, 3.25}), "[1.5  2.   3.25]"},
		{"whole floats", nested(t, []float64{0, 1, 2}), "[0. 1. 2.]"},
		{"negative floats", nested(t, []float64{-1.5, 2}), "[-1.5  2. ]"},
		{"bools", nested(t, []bool{true, false}), "[ True False]"},
		{"empty", nested(t, []int{}), "[]"},
		{"3d", must(t)(arange(t, 8).Reshape(2, 2, 2)), "[[[0 1]\n  [2 3]]\n\n [[4 5]\n  [6 7]]]"},
		{"special floats", nested(t, []float64{math.Inf(1), 1}), "[inf  1.]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ndarray.Format(tt.a, opts))
		})
	}
}

func TestFormat_Precision(t *testing.T) {
	opts := config.Default().Print
	opts.Precision = 3
	x := nested(t, []float64{1.0 / 3, 2.0 / 3})
	assert.Equal(t, "[0.333 0.667]", ndarray.Format(x, opts))
}

func TestFormat_Summarized(t *testing.T) {
	x := arange(t, 2000)
	assert.Equal(t, "[   0    1    2 ... 1997 1998 1999]", ndarray.Format(x, config.Default().Print))

	m := must(t)(x.Reshape(100, 20))
	opts := config.Default().Print
	opts.EdgeItems = 1
	assert.Equal(t, "[[   0 ...   19]\n ...\n [1980 ... 1999]]", ndarray.Format(m, opts))
}

func TestFormat_Wraps(t *testing.T) {
	opts := config.Default().Print
	opts.LineWidth = 10
	assert.Equal(t, "[0 1 2 3\n 4 5]", ndarray.Format(arange(t, 6), opts))
}

func TestString_UsesProcessConfig(t *testing.T) {
	t.Cleanup(config.Reset)

	cfg := config.Default()
	cfg.Print.Precision = 1
	assert.NoError(t, config.Init(cfg))
	assert.Equal(t, "[0.3 0.7]", nested(t, []float64{1.0 / 3, 2.0 / 3}).String())
}
