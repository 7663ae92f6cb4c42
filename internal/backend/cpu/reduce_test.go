package cpu

import (
	"errors"
	"math"
	"testing"

	"github.com/born-ml/ndarray/internal/ndarray"
)

func TestReduce_Sum(t *testing.T) {
	backend := New()
	// [[1 2 3]
	//  [4 5 6]]
	x := float64Raw(ndarray.Shape{2, 3}, 1, 2, 3, 4, 5, 6)

	t.Run("AllAxes", func(t *testing.T) {
		result, err := backend.Reduce(ndarray.ReduceSum, x, ndarray.ReduceOptions{AllAxes: true})
		if err != nil {
			t.Fatalf("Sum failed: %v", err)
		}
		if len(result.Shape()) != 0 {
			t.Errorf("Expected shape [], got %v", result.Shape())
		}
		if result.AsFloat64()[0] != 21 {
			t.Errorf("Expected 21, got %v", result.AsFloat64()[0])
		}
	})

	t.Run("Axis0", func(t *testing.T) {
		result, err := backend.Reduce(ndarray.ReduceSum, x, ndarray.ReduceOptions{Axis: 0})
		if err != nil {
			t.Fatalf("Sum failed: %v", err)
		}
		if !result.Shape().Equal(ndarray.Shape{3}) {
			t.Errorf("Expected shape [3], got %v", result.Shape())
		}
		if !floatsEqual(floats(result), []float64{5, 7, 9}) {
			t.Errorf("Expected [5 7 9], got %v", floats(result))
		}
	})

	t.Run("LastAxisKeepDims", func(t *testing.T) {
		result, err := backend.Reduce(ndarray.ReduceSum, x, ndarray.ReduceOptions{Axis: -1, KeepDims: true})
		if err != nil {
			t.Fatalf("Sum failed: %v", err)
		}
		if !result.Shape().Equal(ndarray.Shape{2, 1}) {
			t.Errorf("Expected shape [2, 1], got %v", result.Shape())
		}
		if !floatsEqual(floats(result), []float64{6, 15}) {
			t.Errorf("Expected [6 15], got %v", floats(result))
		}
	})

	t.Run("AllAxesKeepDims", func(t *testing.T) {
		result, err := backend.Reduce(ndarray.ReduceSum, x, ndarray.ReduceOptions{AllAxes: true, KeepDims: true})
		if err != nil {
			t.Fatalf("Sum failed: %v", err)
		}
		if !result.Shape().Equal(ndarray.Shape{1, 1}) {
			t.Errorf("Expected shape [1, 1], got %v", result.Shape())
		}
	})

	t.Run("TransposedView", func(t *testing.T) {
		xt := x.View(ndarray.Shape{3, 2}, []int{1, 3}, 0)
		result, err := backend.Reduce(ndarray.ReduceSum, xt, ndarray.ReduceOptions{Axis: 1})
		if err != nil {
			t.Fatalf("Sum failed: %v", err)
		}
		if !floatsEqual(floats(result), []float64{5, 7, 9}) {
			t.Errorf("Expected [5 7 9], got %v", floats(result))
		}
	})

	t.Run("BoolCountsAsInt64", func(t *testing.T) {
		b := boolRaw(ndarray.Shape{4}, true, false, true, true)
		result, err := backend.Reduce(ndarray.ReduceSum, b, ndarray.ReduceOptions{AllAxes: true})
		if err != nil {
			t.Fatalf("Sum failed: %v", err)
		}
		if result.DType() != ndarray.Int64 || result.AsInt64()[0] != 3 {
			t.Errorf("Expected int64 3, got %v %v", result.DType(), ints(result))
		}
	})

	t.Run("Empty", func(t *testing.T) {
		e := float64Raw(ndarray.Shape{0})
		sum, err := backend.Reduce(ndarray.ReduceSum, e, ndarray.ReduceOptions{AllAxes: true})
		if err != nil {
			t.Fatalf("Sum failed: %v", err)
		}
		prod, err := backend.Reduce(ndarray.ReduceProd, e, ndarray.ReduceOptions{AllAxes: true})
		if err != nil {
			t.Fatalf("Prod failed: %v", err)
		}
		if sum.AsFloat64()[0] != 0 || prod.AsFloat64()[0] != 1 {
			t.Errorf("Expected sum 0 and prod 1, got %v and %v", sum.AsFloat64()[0], prod.AsFloat64()[0])
		}
	})
}

func TestReduce_Statistics(t *testing.T) {
	backend := New()
	x := float64Raw(ndarray.Shape{4}, 2, 4, 4, 6)

	tests := []struct {
		name string
		op   ndarray.ReduceOp
		opts ndarray.ReduceOptions
		want float64
	}{
		{"mean", ndarray.ReduceMean, ndarray.ReduceOptions{AllAxes: true}, 4},
		{"var", ndarray.ReduceVar, ndarray.ReduceOptions{AllAxes: true}, 2},
		{"var ddof", ndarray.ReduceVar, ndarray.ReduceOptions{AllAxes: true, DDof: 1}, 8.0 / 3},
		{"std", ndarray.ReduceStd, ndarray.ReduceOptions{AllAxes: true}, math.Sqrt2},
		{"median", ndarray.ReduceMedian, ndarray.ReduceOptions{AllAxes: true}, 4},
		{"p10", ndarray.ReducePercentile, ndarray.ReduceOptions{AllAxes: true, Q: 10}, 2.6},
		{"p100", ndarray.ReducePercentile, ndarray.ReduceOptions{AllAxes: true, Q: 100}, 6},
		{"min", ndarray.ReduceMin, ndarray.ReduceOptions{AllAxes: true}, 2},
		{"max", ndarray.ReduceMax, ndarray.ReduceOptions{AllAxes: true}, 6},
		{"prod", ndarray.ReduceProd, ndarray.ReduceOptions{AllAxes: true}, 192},
		{"argmax", ndarray.ReduceArgMax, ndarray.ReduceOptions{AllAxes: true}, 3},
		{"argmin", ndarray.ReduceArgMin, ndarray.ReduceOptions{AllAxes: true}, 0},
		{"count", ndarray.ReduceCountNonzero, ndarray.ReduceOptions{AllAxes: true}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := backend.Reduce(tt.op, x, tt.opts)
			if err != nil {
				t.Fatalf("%s failed: %v", tt.op, err)
			}
			if got := floats(result); !floatsEqual(got, []float64{tt.want}) {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestReduce_VarTooFewDegrees(t *testing.T) {
	backend := New()
	x := float64Raw(ndarray.Shape{1}, 3)
	result, err := backend.Reduce(ndarray.ReduceVar, x, ndarray.ReduceOptions{AllAxes: true, DDof: 1})
	if err != nil {
		t.Fatalf("Var failed: %v", err)
	}
	if !math.IsNaN(result.AsFloat64()[0]) {
		t.Errorf("Expected NaN, got %v", result.AsFloat64()[0])
	}
}

func TestReduce_NaN(t *testing.T) {
	backend := New()
	x := float64Raw(ndarray.Shape{4}, 1, math.NaN(), -5, math.NaN())

	for _, op := range []ndarray.ReduceOp{ndarray.ReduceMin, ndarray.ReduceMax, ndarray.ReduceMedian, ndarray.ReduceSum} {
		result, err := backend.Reduce(op, x, ndarray.ReduceOptions{AllAxes: true})
		if err != nil {
			t.Fatalf("%s failed: %v", op, err)
		}
		if !math.IsNaN(result.AsFloat64()[0]) {
			t.Errorf("%s: expected NaN, got %v", op, result.AsFloat64()[0])
		}
	}

	arg, err := backend.Reduce(ndarray.ReduceArgMin, x, ndarray.ReduceOptions{AllAxes: true})
	if err != nil {
		t.Fatalf("ArgMin failed: %v", err)
	}
	if arg.AsInt64()[0] != 1 {
		t.Errorf("Expected first NaN at 1, got %d", arg.AsInt64()[0])
	}
}

func TestReduce_EmptyWithoutIdentity(t *testing.T) {
	backend := New()
	x := float64Raw(ndarray.Shape{2, 0})

	for _, op := range []ndarray.ReduceOp{ndarray.ReduceMin, ndarray.ReduceMax, ndarray.ReduceArgMin, ndarray.ReduceArgMax} {
		_, err := backend.Reduce(op, x, ndarray.ReduceOptions{Axis: 1})
		var ve *ndarray.ValueError
		if !errors.As(err, &ve) {
			t.Errorf("%s: expected ValueError, got %v", op, err)
		}
	}

	// Collapsing the non-empty axis leaves zero lanes, which is fine.
	result, err := backend.Reduce(ndarray.ReduceMax, x, ndarray.ReduceOptions{Axis: 0})
	if err != nil {
		t.Fatalf("Max failed: %v", err)
	}
	if !result.Shape().Equal(ndarray.Shape{0}) {
		t.Errorf("Expected shape [0], got %v", result.Shape())
	}

	mean, err := backend.Reduce(ndarray.ReduceMean, x, ndarray.ReduceOptions{Axis: 1})
	if err != nil {
		t.Fatalf("Mean failed: %v", err)
	}
	if got := floats(mean); !math.IsNaN(got[0]) || !math.IsNaN(got[1]) {
		t.Errorf("Expected [NaN NaN], got %v", got)
	}
}

func TestReduce_AllAny(t *testing.T) {
	backend := New()
	x := int64Raw(ndarray.Shape{2, 3}, 1, 0, 2, 3, 4, 5)

	all, err := backend.Reduce(ndarray.ReduceAll, x, ndarray.ReduceOptions{Axis: 1})
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if !boolsEqual(bools(all), []bool{false, true}) {
		t.Errorf("Expected [false true], got %v", bools(all))
	}

	anyZero, err := backend.Reduce(ndarray.ReduceAny, float64Raw(ndarray.Shape{0}), ndarray.ReduceOptions{AllAxes: true})
	if err != nil {
		t.Fatalf("Any failed: %v", err)
	}
	allEmpty, err := backend.Reduce(ndarray.ReduceAll, float64Raw(ndarray.Shape{0}), ndarray.ReduceOptions{AllAxes: true})
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if anyZero.AsBool()[0] || !allEmpty.AsBool()[0] {
		t.Errorf("Expected any([])=false and all([])=true")
	}
}

func TestReduce_AxisOutOfBounds(t *testing.T) {
	backend := New()
	_, err := backend.Reduce(ndarray.ReduceSum, float64Raw(ndarray.Shape{2}), ndarray.ReduceOptions{Axis: 1})
	var ie *ndarray.IndexError
	if !errors.As(err, &ie) {
		t.Errorf("Expected IndexError, got %v", err)
	}
}

func TestFold(t *testing.T) {
	backend := New()
	x := int64Raw(ndarray.Shape{2, 3}, 1, 2, 3, 4, 5, 6)

	sum, err := backend.Fold(ndarray.Add, x, 0, false)
	if err != nil {
		t.Fatalf("add.reduce failed: %v", err)
	}
	if !intsEqual(ints(sum), []int64{5, 7, 9}) {
		t.Errorf("Expected [5 7 9], got %v", ints(sum))
	}

	sub, err := backend.Fold(ndarray.Subtract, x, 1, true)
	if err != nil {
		t.Fatalf("subtract.reduce failed: %v", err)
	}
	if !sub.Shape().Equal(ndarray.Shape{2, 1}) || !intsEqual(ints(sub), []int64{-4, -7}) {
		t.Errorf("Expected [[-4] [-7]], got %v %v", sub.Shape(), ints(sub))
	}

	empty := int64Raw(ndarray.Shape{0})
	prod, err := backend.Fold(ndarray.Multiply, empty, 0, false)
	if err != nil {
		t.Fatalf("multiply.reduce failed: %v", err)
	}
	if prod.AsInt64()[0] != 1 {
		t.Errorf("Expected identity 1, got %v", prod.AsInt64()[0])
	}

	_, err = backend.Fold(ndarray.Maximum, empty, 0, false)
	var ve *ndarray.ValueError
	if !errors.As(err, &ve) {
		t.Errorf("Expected ValueError, got %v", err)
	}

	_, err = backend.Fold(ndarray.FloorDivide, int64Raw(ndarray.Shape{2}, 4, 0), 0, false)
	var dz *ndarray.DivisionByZeroError
	if !errors.As(err, &dz) {
		t.Errorf("Expected DivisionByZeroError, got %v", err)
	}
}

func TestAccumulate(t *testing.T) {
	backend := New()
	x := int64Raw(ndarray.Shape{2, 3}, 1, 2, 3, 4, 5, 6)

	rows, err := backend.Accumulate(ndarray.Add, x, 1)
	if err != nil {
		t.Fatalf("add.accumulate failed: %v", err)
	}
	if !intsEqual(ints(rows), []int64{1, 3, 6, 4, 9, 15}) {
		t.Errorf("Expected [1 3 6 4 9 15], got %v", ints(rows))
	}

	cols, err := backend.Accumulate(ndarray.Multiply, x, 0)
	if err != nil {
		t.Fatalf("multiply.accumulate failed: %v", err)
	}
	if !intsEqual(ints(cols), []int64{1, 2, 3, 4, 10, 18}) {
		t.Errorf("Expected [1 2 3 4 10 18], got %v", ints(cols))
	}

	running, err := backend.Accumulate(ndarray.Maximum, float64Raw(ndarray.Shape{4}, 1, 3, 2, 5), 0)
	if err != nil {
		t.Fatalf("maximum.accumulate failed: %v", err)
	}
	if !floatsEqual(floats(running), []float64{1, 3, 3, 5}) {
		t.Errorf("Expected [1 3 3 5], got %v", floats(running))
	}
}
