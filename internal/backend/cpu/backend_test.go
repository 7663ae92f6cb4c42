package cpu

import (
	"errors"
	"math"
	"testing"

	"github.com/born-ml/ndarray/internal/ndarray"
	"github.com/born-ml/ndarray/internal/parallel"
)

// Helper to create test backend.
func newTestBackend() *CPUBackend {
	return New()
}

func float64Raw(shape ndarray.Shape, values ...float64) *ndarray.RawArray {
	r := ndarray.MustRaw(shape, ndarray.Float64)
	copy(r.AsFloat64(), values)
	return r
}

func int64Raw(shape ndarray.Shape, values ...int64) *ndarray.RawArray {
	r := ndarray.MustRaw(shape, ndarray.Int64)
	copy(r.AsInt64(), values)
	return r
}

func boolRaw(shape ndarray.Shape, values ...bool) *ndarray.RawArray {
	r := ndarray.MustRaw(shape, ndarray.Bool)
	copy(r.AsBool(), values)
	return r
}

// floats reads r in row-major order, honoring its strides.
func floats(r *ndarray.RawArray) []float64 {
	acc := ndarray.NewAccessor(r)
	out := make([]float64, r.NumElements())
	for i := range out {
		out[i] = acc.Float(r.StorageIndex(i))
	}
	return out
}

func ints(r *ndarray.RawArray) []int64 {
	acc := ndarray.NewAccessor(r)
	out := make([]int64, r.NumElements())
	for i := range out {
		out[i] = acc.Int(r.StorageIndex(i))
	}
	return out
}

func bools(r *ndarray.RawArray) []bool {
	acc := ndarray.NewAccessor(r)
	out := make([]bool, r.NumElements())
	for i := range out {
		out[i] = acc.Bool(r.StorageIndex(i))
	}
	return out
}

// Helper to check float64 slices are equal within epsilon (NaN equals NaN).
func floatsEqual(a, b []float64) bool {
	const epsilon = 1e-9
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.IsNaN(a[i]) || math.IsNaN(b[i]) {
			if math.IsNaN(a[i]) != math.IsNaN(b[i]) {
				return false
			}
			continue
		}
		if a[i] == b[i] {
			continue
		}
		if math.Abs(a[i]-b[i]) > epsilon {
			return false
		}
	}
	return true
}

func intsEqual(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func boolsEqual(a, b []bool) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// TestCPUBackend_New tests backend creation.
func TestCPUBackend_New(t *testing.T) {
	backend := New()
	if backend == nil {
		t.Fatal("New() returned nil")
	}
	if backend.Name() != "CPU" {
		t.Errorf("Expected name 'CPU', got '%s'", backend.Name())
	}
	if backend.Parallel().Enabled {
		t.Error("Expected sequential execution by default")
	}

	cfg := parallel.Config{Enabled: true, NumWorkers: 3, MinChunkSize: 64}
	if got := New(WithParallel(cfg)).Parallel(); got != cfg {
		t.Errorf("Expected parallel config %+v, got %+v", cfg, got)
	}
}

// TestCPUBackend_Binary tests element-wise arithmetic.
func TestCPUBackend_Binary(t *testing.T) {
	backend := newTestBackend()

	t.Run("SameShape", func(t *testing.T) {
		a := float64Raw(ndarray.Shape{2, 3}, 1, 2, 3, 4, 5, 6)
		b := float64Raw(ndarray.Shape{2, 3}, 10, 11, 12, 13, 14, 15)

		result, err := backend.Binary(ndarray.Add, a, b)
		if err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		expected := []float64{11, 13, 15, 17, 19, 21}
		if !floatsEqual(floats(result), expected) {
			t.Errorf("Expected %v, got %v", expected, floats(result))
		}
	})

	t.Run("BroadcastRow", func(t *testing.T) {
		a := int64Raw(ndarray.Shape{2, 3}, 1, 2, 3, 4, 5, 6)
		b := int64Raw(ndarray.Shape{3}, 10, 20, 30)

		result, err := backend.Binary(ndarray.Subtract, a, b)
		if err != nil {
			t.Fatalf("Subtract failed: %v", err)
		}
		if !result.Shape().Equal(ndarray.Shape{2, 3}) {
			t.Errorf("Expected shape [2, 3], got %v", result.Shape())
		}
		expected := []int64{-9, -18, -27, -6, -15, -24}
		if !intsEqual(ints(result), expected) {
			t.Errorf("Expected %v, got %v", expected, ints(result))
		}
	})

	t.Run("BroadcastOuter", func(t *testing.T) {
		col := int64Raw(ndarray.Shape{3, 1}, 1, 2, 3)
		row := int64Raw(ndarray.Shape{1, 2}, 10, 100)

		result, err := backend.Binary(ndarray.Multiply, col, row)
		if err != nil {
			t.Fatalf("Multiply failed: %v", err)
		}
		expected := []int64{10, 100, 20, 200, 30, 300}
		if !intsEqual(ints(result), expected) {
			t.Errorf("Expected %v, got %v", expected, ints(result))
		}
	})

	t.Run("MixedDtypes", func(t *testing.T) {
		a := int64Raw(ndarray.Shape{2}, 1, 2)
		b := ndarray.MustRaw(ndarray.Shape{2}, ndarray.Float32)
		copy(b.AsFloat32(), []float32{0.5, 0.25})

		result, err := backend.Binary(ndarray.Add, a, b)
		if err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		if result.DType() != ndarray.Float64 {
			t.Errorf("Expected float64, got %v", result.DType())
		}
		if !floatsEqual(floats(result), []float64{1.5, 2.25}) {
			t.Errorf("Expected [1.5 2.25], got %v", floats(result))
		}
	})

	t.Run("BoolArithmetic", func(t *testing.T) {
		a := boolRaw(ndarray.Shape{3}, true, true, false)

		result, err := backend.Binary(ndarray.Add, a, a)
		if err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		if result.DType() != ndarray.Int64 {
			t.Errorf("Expected int64, got %v", result.DType())
		}
		if !intsEqual(ints(result), []int64{2, 2, 0}) {
			t.Errorf("Expected [2 2 0], got %v", ints(result))
		}
	})

	t.Run("TrueDivision", func(t *testing.T) {
		a := int64Raw(ndarray.Shape{3}, 1, -1, 0)
		b := int64Raw(ndarray.Shape{}, 0)

		result, err := backend.Binary(ndarray.Divide, a, b)
		if err != nil {
			t.Fatalf("Divide failed: %v", err)
		}
		got := floats(result)
		if !math.IsInf(got[0], 1) || !math.IsInf(got[1], -1) || !math.IsNaN(got[2]) {
			t.Errorf("Expected [+Inf -Inf NaN], got %v", got)
		}
	})

	t.Run("FloorDivMod", func(t *testing.T) {
		a := int64Raw(ndarray.Shape{4}, 7, -7, 7, -7)
		b := int64Raw(ndarray.Shape{4}, 2, 2, -2, -2)

		q, err := backend.Binary(ndarray.FloorDivide, a, b)
		if err != nil {
			t.Fatalf("FloorDivide failed: %v", err)
		}
		if !intsEqual(ints(q), []int64{3, -4, -4, 3}) {
			t.Errorf("Expected [3 -4 -4 3], got %v", ints(q))
		}
		m, err := backend.Binary(ndarray.Mod, a, b)
		if err != nil {
			t.Fatalf("Mod failed: %v", err)
		}
		if !intsEqual(ints(m), []int64{1, 1, -1, -1}) {
			t.Errorf("Expected [1 1 -1 -1], got %v", ints(m))
		}
	})

	t.Run("IntegerDivisionByZero", func(t *testing.T) {
		a := int64Raw(ndarray.Shape{2}, 1, 2)
		b := int64Raw(ndarray.Shape{2}, 1, 0)

		_, err := backend.Binary(ndarray.FloorDivide, a, b)
		var dz *ndarray.DivisionByZeroError
		if !errors.As(err, &dz) {
			t.Errorf("Expected DivisionByZeroError, got %v", err)
		}
	})

	t.Run("NegativeIntegerPower", func(t *testing.T) {
		a := int64Raw(ndarray.Shape{2}, 2, 3)
		b := int64Raw(ndarray.Shape{}, -1)

		_, err := backend.Binary(ndarray.Power, a, b)
		var ve *ndarray.ValueError
		if !errors.As(err, &ve) {
			t.Errorf("Expected ValueError, got %v", err)
		}

		p, err := backend.Binary(ndarray.Power, a, int64Raw(ndarray.Shape{}, 3))
		if err != nil {
			t.Fatalf("Power failed: %v", err)
		}
		if !intsEqual(ints(p), []int64{8, 27}) {
			t.Errorf("Expected [8 27], got %v", ints(p))
		}
	})

	t.Run("LogicalRequiresBool", func(t *testing.T) {
		a := int64Raw(ndarray.Shape{2}, 1, 0)
		_, err := backend.Binary(ndarray.LogicalAnd, a, a)
		var de *ndarray.DtypeError
		if !errors.As(err, &de) {
			t.Errorf("Expected DtypeError, got %v", err)
		}
	})

	t.Run("IncompatibleShapes", func(t *testing.T) {
		a := float64Raw(ndarray.Shape{2, 3})
		b := float64Raw(ndarray.Shape{2})

		_, err := backend.Binary(ndarray.Add, a, b)
		var be *ndarray.BroadcastError
		if !errors.As(err, &be) {
			t.Fatalf("Expected BroadcastError, got %v", err)
		}
		if be.Op != "add" {
			t.Errorf("Expected op 'add', got '%s'", be.Op)
		}
	})

	t.Run("Empty", func(t *testing.T) {
		a := float64Raw(ndarray.Shape{0, 3})
		b := float64Raw(ndarray.Shape{3}, 1, 2, 3)

		result, err := backend.Binary(ndarray.Add, a, b)
		if err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		if !result.Shape().Equal(ndarray.Shape{0, 3}) {
			t.Errorf("Expected shape [0, 3], got %v", result.Shape())
		}
	})
}

// TestCPUBackend_StridedOperands tests kernels on views with negative and zero strides.
func TestCPUBackend_StridedOperands(t *testing.T) {
	backend := newTestBackend()
	x := int64Raw(ndarray.Shape{5}, 0, 1, 2, 3, 4)
	rev := x.View(ndarray.Shape{5}, []int{-1}, 4)

	result, err := backend.Binary(ndarray.Add, x, rev)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if !intsEqual(ints(result), []int64{4, 4, 4, 4, 4}) {
		t.Errorf("Expected [4 4 4 4 4], got %v", ints(result))
	}

	// every other element, starting at the end
	odd := x.View(ndarray.Shape{2}, []int{-2}, 3)
	sq, err := backend.Unary(ndarray.Square, odd)
	if err != nil {
		t.Fatalf("Square failed: %v", err)
	}
	if !intsEqual(ints(sq), []int64{9, 1}) {
		t.Errorf("Expected [9 1], got %v", ints(sq))
	}

	stretched := x.View(ndarray.Shape{2, 5}, []int{0, 1}, 0)
	sum, err := backend.Binary(ndarray.Multiply, stretched, int64Raw(ndarray.Shape{2, 1}, 1, -1))
	if err != nil {
		t.Fatalf("Multiply failed: %v", err)
	}
	expected := []int64{0, 1, 2, 3, 4, 0, -1, -2, -3, -4}
	if !intsEqual(ints(sum), expected) {
		t.Errorf("Expected %v, got %v", expected, ints(sum))
	}
}

// TestCPUBackend_ParallelMatchesSequential checks that goroutine fan-out does
// not change any elementwise result, including on transposed views.
func TestCPUBackend_ParallelMatchesSequential(t *testing.T) {
	seq := New()
	par := New(WithParallel(parallel.Config{Enabled: true, NumWorkers: 4, MinChunkSize: 16}))

	values := make([]float64, 40*25)
	for i := range values {
		values[i] = float64(i%17) - 8.5
	}
	x := float64Raw(ndarray.Shape{40, 25}, values...)
	xt := x.View(ndarray.Shape{25, 40}, []int{1, 25}, 0)
	col := float64Raw(ndarray.Shape{25, 1}, values[:25]...)

	type kernel func(b *CPUBackend) (*ndarray.RawArray, error)
	kernels := map[string]kernel{
		"add": func(b *CPUBackend) (*ndarray.RawArray, error) { return b.Binary(ndarray.Add, xt, col) },
		"mod": func(b *CPUBackend) (*ndarray.RawArray, error) { return b.Binary(ndarray.Mod, xt, col) },
		"exp": func(b *CPUBackend) (*ndarray.RawArray, error) { return b.Unary(ndarray.Exp, xt) },
		"less": func(b *CPUBackend) (*ndarray.RawArray, error) {
			return b.Compare(ndarray.Less, xt, col)
		},
		"cast": func(b *CPUBackend) (*ndarray.RawArray, error) { return b.Cast(xt, ndarray.Int32), nil },
	}
	for name, k := range kernels {
		t.Run(name, func(t *testing.T) {
			want, err := k(seq)
			if err != nil {
				t.Fatalf("sequential: %v", err)
			}
			got, err := k(par)
			if err != nil {
				t.Fatalf("parallel: %v", err)
			}
			if !floatsEqual(floats(got), floats(want)) {
				t.Errorf("parallel result differs from sequential")
			}
		})
	}
}

func BenchmarkBinary_Add(b *testing.B) {
	backend := New(WithParallel(parallel.DefaultConfig()))
	x := float64Raw(ndarray.Shape{512, 512})
	y := float64Raw(ndarray.Shape{512})
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := backend.Binary(ndarray.Add, x, y); err != nil {
			b.Fatal(err)
		}
	}
}
