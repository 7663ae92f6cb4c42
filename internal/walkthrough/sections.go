package walkthrough

import (
	"math"

	"github.com/born-ml/ndarray/internal/ndarray"
)

// presidentHeights are the heights (cm) of the first 42 US presidents.
var presidentHeights = []int64{
	189, 170, 189, 163, 183, 171, 185, 168, 173, 183, 173, 173, 175, 178,
	183, 193, 178, 173, 174, 183, 183, 168, 170, 178, 182, 180, 183, 178,
	182, 188, 175, 179, 183, 193, 182, 183, 177, 185, 188, 188, 182, 185,
}

func (s *session) attrs(name string, a *ndarray.Array) {
	if a == nil {
		return
	}
	s.printf("%s ndim: %d\n", name, a.NDim())
	s.printf("%s shape: %v\n", name, a.Shape())
	s.printf("%s size: %d\n", name, a.Size())
	s.printf("%s dtype: %v\n", name, a.DType())
}

// reshaped returns arange(start, stop).reshape(shape).
func reshaped(s *session, start, stop int, shape ...int) (*ndarray.Array, error) {
	a, err := ndarray.Arange(start, stop, 1, s.b)
	if err != nil {
		return nil, err
	}
	return a.Reshape(shape...)
}

func attributes(s *session) {
	x1 := s.show("x1", func() (*ndarray.Array, error) { return s.rng.RandInt(0, 10, ndarray.Shape{6}) })
	x2 := s.show("x2", func() (*ndarray.Array, error) { return s.rng.RandInt(0, 10, ndarray.Shape{3, 4}) })
	x3 := s.eval(func() (*ndarray.Array, error) { return s.rng.RandInt(0, 10, ndarray.Shape{3, 4, 5}) })
	s.attrs("x3", x3)

	s.show("x1[0]", func() (*ndarray.Array, error) { return x1.Get(ndarray.I(0)) })
	s.show("x1[-1]", func() (*ndarray.Array, error) { return x1.Get(ndarray.I(-1)) })
	s.show("x2[2, -1]", func() (*ndarray.Array, error) { return x2.Get(ndarray.I(2), ndarray.I(-1)) })

	x := s.arange(0, 10)
	s.value("x", x)
	slices1D := []struct {
		label string
		idx   ndarray.Slice
	}{
		{"x[:5]", ndarray.Span(ndarray.None, 5)},
		{"x[5:]", ndarray.Span(5, ndarray.None)},
		{"x[4:7]", ndarray.Span(4, 7)},
		{"x[::2]", ndarray.S(ndarray.None, ndarray.None, 2)},
		{"x[1::2]", ndarray.S(1, ndarray.None, 2)},
		{"x[::-1]", ndarray.S(ndarray.None, ndarray.None, -1)},
		{"x[5::-2]", ndarray.S(5, ndarray.None, -2)},
	}
	for _, c := range slices1D {
		s.show(c.label, func() (*ndarray.Array, error) { return x.Get(c.idx) })
	}

	s.show("x2[:2, :3]", func() (*ndarray.Array, error) {
		return x2.Get(ndarray.Span(ndarray.None, 2), ndarray.Span(ndarray.None, 3))
	})
	s.show("x2[:3, ::2]", func() (*ndarray.Array, error) {
		return x2.Get(ndarray.Span(ndarray.None, 3), ndarray.S(ndarray.None, ndarray.None, 2))
	})
	s.show("x2[::-1, ::-1]", func() (*ndarray.Array, error) {
		return x2.Get(ndarray.S(ndarray.None, ndarray.None, -1), ndarray.S(ndarray.None, ndarray.None, -1))
	})
	s.show("x2[:, 0]", func() (*ndarray.Array, error) { return x2.Get(ndarray.All(), ndarray.I(0)) })
	s.show("x2[0]", func() (*ndarray.Array, error) { return x2.Get(ndarray.I(0)) })

	// Slices are views: writing through one changes x2.
	sub := s.show("x2_sub = x2[:2, :2]", func() (*ndarray.Array, error) {
		return x2.Get(ndarray.Span(ndarray.None, 2), ndarray.Span(ndarray.None, 2))
	})
	s.check(func() error { return sub.Set(99, ndarray.I(0), ndarray.I(0)) })
	s.value("x2 after x2_sub[0, 0] = 99", x2)

	subCopy := s.eval(func() (*ndarray.Array, error) {
		v, err := x2.Get(ndarray.Span(ndarray.None, 2), ndarray.Span(ndarray.None, 2))
		if err != nil {
			return nil, err
		}
		return v.Copy(), nil
	})
	s.check(func() error { return subCopy.Set(42, ndarray.I(0), ndarray.I(0)) })
	s.value("x2 after x2_sub_copy[0, 0] = 42", x2)

	s.show("grid = arange(1, 10).reshape(3, 3)", func() (*ndarray.Array, error) {
		return reshaped(s, 1, 10, 3, 3)
	})
	v := s.nested([]int{1, 2, 3})
	s.show("x[newaxis, :]", func() (*ndarray.Array, error) { return v.Get(ndarray.NewAxis, ndarray.All()) })
	s.show("x[:, newaxis]", func() (*ndarray.Array, error) { return v.Get(ndarray.All(), ndarray.NewAxis) })

	y := s.nested([]int{3, 2, 1})
	s.show("concatenate([x, y])", func() (*ndarray.Array, error) {
		return ndarray.Concatenate([]*ndarray.Array{v, y}, 0)
	})
}

func ufuncs(s *session) {
	x := s.show("x", func() (*ndarray.Array, error) { return ndarray.Arange(0, 4, 1, s.b) })
	s.show("x + 5", func() (*ndarray.Array, error) { return x.Add(5) })
	s.show("x - 5", func() (*ndarray.Array, error) { return x.Sub(5) })
	s.show("x * 2", func() (*ndarray.Array, error) { return x.Mul(2) })
	s.show("x / 2", func() (*ndarray.Array, error) { return x.Div(2) })
	s.show("x // 2", func() (*ndarray.Array, error) { return x.FloorDiv(2) })
	s.show("-x", func() (*ndarray.Array, error) { return x.Neg() })
	s.show("x ** 2", func() (*ndarray.Array, error) { return x.Pow(2) })
	s.show("x % 2", func() (*ndarray.Array, error) { return x.Mod(2) })
	s.show("-(0.5*x + 1) ** 2", func() (*ndarray.Array, error) {
		y, err := x.Mul(0.5)
		if err != nil {
			return nil, err
		}
		if y, err = y.Add(1); err != nil {
			return nil, err
		}
		if y, err = y.Pow(2); err != nil {
			return nil, err
		}
		return y.Neg()
	})

	n := s.nested([]int{-2, -1, 0, 1, 2})
	s.show("abs([-2 -1 0 1 2])", func() (*ndarray.Array, error) { return n.Abs() })

	theta := s.show("theta", func() (*ndarray.Array, error) { return ndarray.Linspace(0, math.Pi, 3, s.b) })
	s.show("sin(theta)", func() (*ndarray.Array, error) { return theta.Sin() })
	s.show("cos(theta)", func() (*ndarray.Array, error) { return theta.Cos() })
	s.show("tan(theta)", func() (*ndarray.Array, error) { return theta.Tan() })

	e := s.nested([]int{1, 2, 3})
	s.show("e^x", func() (*ndarray.Array, error) { return e.Exp() })
	s.show("2^x", func() (*ndarray.Array, error) { return e.Exp2() })
	s.show("3^x", func() (*ndarray.Array, error) {
		three, err := ndarray.FullLike(e, 3)
		if err != nil {
			return nil, err
		}
		return three.Pow(e)
	})

	l := s.nested([]int{1, 2, 4, 10})
	s.show("ln(x)", func() (*ndarray.Array, error) { return l.Log() })
	s.show("log2(x)", func() (*ndarray.Array, error) { return l.Log2() })
	s.show("log10(x)", func() (*ndarray.Array, error) { return l.Log10() })

	r := s.arange(1, 6)
	s.show("add.reduce(x)", func() (*ndarray.Array, error) { return ndarray.Add.Reduce(r) })
	s.show("multiply.reduce(x)", func() (*ndarray.Array, error) { return ndarray.Multiply.Reduce(r) })
	s.show("add.accumulate(x)", func() (*ndarray.Array, error) { return ndarray.Add.Accumulate(r, 0) })
	s.show("multiply.accumulate(x)", func() (*ndarray.Array, error) { return ndarray.Multiply.Accumulate(r, 0) })
}

func aggregates(s *session) {
	l := s.eval(func() (*ndarray.Array, error) { return s.rng.Random(ndarray.Shape{100}) })
	s.show("sum(L)", func() (*ndarray.Array, error) { return l.Sum() })

	big := s.eval(func() (*ndarray.Array, error) { return s.rng.Random(ndarray.Shape{1_000_000}) })
	s.show("min(big_array)", func() (*ndarray.Array, error) { return big.Min() })
	s.show("max(big_array)", func() (*ndarray.Array, error) { return big.Max() })

	m := s.show("M", func() (*ndarray.Array, error) { return s.rng.Random(ndarray.Shape{3, 4}) })
	s.show("M.sum()", func() (*ndarray.Array, error) { return m.Sum() })
	s.show("M.min(axis=0)", func() (*ndarray.Array, error) { return m.Min(ndarray.Axis(0)) })
	s.show("M.max(axis=1)", func() (*ndarray.Array, error) { return m.Max(ndarray.Axis(1)) })

	h := s.show("heights", func() (*ndarray.Array, error) {
		return ndarray.FromSlice(presidentHeights, ndarray.Shape{len(presidentHeights)}, s.b)
	})
	s.show("mean height", func() (*ndarray.Array, error) { return h.Mean() })
	s.show("standard deviation", func() (*ndarray.Array, error) { return h.Std() })
	s.show("minimum height", func() (*ndarray.Array, error) { return h.Min() })
	s.show("maximum height", func() (*ndarray.Array, error) { return h.Max() })
	s.show("25th percentile", func() (*ndarray.Array, error) { return h.Percentile(25) })
	s.show("median", func() (*ndarray.Array, error) { return h.Median() })
	s.show("75th percentile", func() (*ndarray.Array, error) { return h.Percentile(75) })
}

func masks(s *session) {
	x := s.show("x", func() (*ndarray.Array, error) { return ndarray.FromNested([]int{1, 2, 3, 4, 5}, s.b) })
	s.show("x < 3", func() (*ndarray.Array, error) { return x.Less(3) })
	s.show("x > 3", func() (*ndarray.Array, error) { return x.Greater(3) })
	s.show("x <= 3", func() (*ndarray.Array, error) { return x.LessEqual(3) })
	s.show("x >= 3", func() (*ndarray.Array, error) { return x.GreaterEqual(3) })
	s.show("x != 3", func() (*ndarray.Array, error) { return x.NotEqual(3) })
	s.show("x == 3", func() (*ndarray.Array, error) { return x.Equal(3) })
	s.show("(2 * x) == (x ** 2)", func() (*ndarray.Array, error) {
		double, err := x.Mul(2)
		if err != nil {
			return nil, err
		}
		square, err := x.Pow(2)
		if err != nil {
			return nil, err
		}
		return double.Equal(square)
	})

	g := s.show("x", func() (*ndarray.Array, error) {
		return ndarray.FromNested([][]int{{5, 0, 3, 3}, {7, 9, 3, 5}, {2, 4, 7, 6}}, s.b)
	})
	lt6 := s.eval(func() (*ndarray.Array, error) { return g.Less(6) })
	s.show("count_nonzero(x < 6)", func() (*ndarray.Array, error) { return lt6.CountNonzero() })
	s.show("sum(x < 6)", func() (*ndarray.Array, error) { return lt6.Sum() })
	s.show("sum(x < 6, axis=1)", func() (*ndarray.Array, error) { return lt6.Sum(ndarray.Axis(1)) })

	checks := []struct {
		label string
		cmp   func(*ndarray.Array) (*ndarray.Array, error)
		agg   func(*ndarray.Array, ...ndarray.ReduceOption) (*ndarray.Array, error)
		opts  []ndarray.ReduceOption
	}{
		{"any(x > 8)", func(a *ndarray.Array) (*ndarray.Array, error) { return a.Greater(8) }, (*ndarray.Array).Any, nil},
		{"any(x < 0)", func(a *ndarray.Array) (*ndarray.Array, error) { return a.Less(0) }, (*ndarray.Array).Any, nil},
		{"all(x < 10)", func(a *ndarray.Array) (*ndarray.Array, error) { return a.Less(10) }, (*ndarray.Array).All, nil},
		{"all(x == 6)", func(a *ndarray.Array) (*ndarray.Array, error) { return a.Equal(6) }, (*ndarray.Array).All, nil},
		{
			"all(x < 8, axis=1)", func(a *ndarray.Array) (*ndarray.Array, error) { return a.Less(8) },
			(*ndarray.Array).All, []ndarray.ReduceOption{ndarray.Axis(1)},
		},
	}
	for _, c := range checks {
		s.show(c.label, func() (*ndarray.Array, error) {
			m, err := c.cmp(g)
			if err != nil {
				return nil, err
			}
			return c.agg(m, c.opts...)
		})
	}

	s.show("(x > 2) & (x < 6)", func() (*ndarray.Array, error) {
		gt, err := g.Greater(2)
		if err != nil {
			return nil, err
		}
		return gt.And(lt6)
	})
	s.show("x[x < 5]", func() (*ndarray.Array, error) {
		mask, err := g.Less(5)
		if err != nil {
			return nil, err
		}
		return g.Get(mask)
	})
}

func fancy(s *session) {
	x := s.show("x", func() (*ndarray.Array, error) { return s.rng.RandInt(0, 100, ndarray.Shape{10}) })
	s.show("x[[3, 7, 4]]", func() (*ndarray.Array, error) { return x.Get(ndarray.Ints(3, 7, 4)) })
	ind := s.nested([][]int{{3, 7}, {4, 5}})
	s.show("x[[[3, 7], [4, 5]]]", func() (*ndarray.Array, error) { return x.Get(ind) })

	grid := s.show("X", func() (*ndarray.Array, error) { return reshaped(s, 0, 12, 3, 4) })
	row := s.nested([]int{0, 1, 2})
	col := s.nested([]int{2, 1, 3})
	rowCol := s.eval(func() (*ndarray.Array, error) { return row.Get(ndarray.All(), ndarray.NewAxis) })
	s.show("X[row, col]", func() (*ndarray.Array, error) { return grid.Get(row, col) })
	s.show("X[row[:, newaxis], col]", func() (*ndarray.Array, error) { return grid.Get(rowCol, col) })
	s.show("X[2, [2, 0, 1]]", func() (*ndarray.Array, error) { return grid.Get(ndarray.I(2), ndarray.Ints(2, 0, 1)) })
	s.show("X[1:, [2, 0, 1]]", func() (*ndarray.Array, error) {
		return grid.Get(ndarray.Span(1, ndarray.None), ndarray.Ints(2, 0, 1))
	})
	s.show("X[row[:, newaxis], [True, False, True, False]]", func() (*ndarray.Array, error) {
		return grid.Get(rowCol, ndarray.Bools(true, false, true, false))
	})

	// Selecting random points.
	mean := s.nested([]float64{0, 0})
	cov := s.nested([][]float64{{1, 2}, {2, 5}})
	points := s.eval(func() (*ndarray.Array, error) { return s.rng.MultivariateNormal(mean, cov, 100) })
	if points != nil {
		s.printf("points shape: %v\n", points.Shape())
	}
	indices := s.show("indices", func() (*ndarray.Array, error) { return s.rng.Choice(100, 20, false) })
	selection := s.eval(func() (*ndarray.Array, error) { return points.Get(indices) })
	if selection != nil {
		s.printf("selection shape: %v\n", selection.Shape())
	}

	// Modifying values.
	y := s.arange(0, 10)
	i := ndarray.Ints(2, 1, 8, 4)
	s.check(func() error { return y.Set(99, i) })
	s.value("x after x[[2, 1, 8, 4]] = 99", y)
	s.check(func() error {
		v, err := y.Get(i)
		if err != nil {
			return err
		}
		if v, err = v.Sub(10); err != nil {
			return err
		}
		return y.Set(v, i)
	})
	s.value("x after x[[2, 1, 8, 4]] -= 10", y)

	z := s.eval(func() (*ndarray.Array, error) { return ndarray.Zeros(ndarray.Shape{10}, ndarray.Float64, s.b) })
	four6 := s.nested([]float64{4, 6})
	s.check(func() error { return z.Set(four6, ndarray.Ints(0, 0)) })
	s.value("x after x[[0, 0]] = [4, 6]", z)

	rep := ndarray.Ints(2, 3, 3, 4, 4, 4)
	s.check(func() error {
		v, err := z.Get(rep)
		if err != nil {
			return err
		}
		if v, err = v.Add(1); err != nil {
			return err
		}
		return z.Set(v, rep)
	})
	s.value("x after x[[2, 3, 3, 4, 4, 4]] += 1", z)

	acc := s.eval(func() (*ndarray.Array, error) { return ndarray.Zeros(ndarray.Shape{10}, ndarray.Float64, s.b) })
	s.check(func() error { return ndarray.Add.At(acc, rep, 1) })
	s.value("add.at(x, [2, 3, 3, 4, 4, 4], 1)", acc)

	counts := s.eval(func() (*ndarray.Array, error) { return ndarray.Zeros(ndarray.Shape{5}, ndarray.Int64, s.b) })
	s.check(func() error { return ndarray.Add.At(counts, ndarray.Ints(0, 0, 1, 3, 3, 3), 1) })
	s.value("add.at(counts, [0, 0, 1, 3, 3, 3], 1)", counts)
}

func binning(s *session) {
	x := s.eval(func() (*ndarray.Array, error) { return s.rng.Randn(100) })
	bins := s.show("bins", func() (*ndarray.Array, error) { return ndarray.Linspace(-5, 5, 20, s.b) })

	counts := s.eval(func() (*ndarray.Array, error) { return ndarray.ZerosLike(bins), nil })
	s.check(func() error {
		i, err := bins.SearchSorted(x, ndarray.SideLeft)
		if err != nil {
			return err
		}
		return ndarray.Add.At(counts, i, 1)
	})
	s.value("counts", counts)
	s.show("histogram(x, bins)", func() (*ndarray.Array, error) { return ndarray.Histogram(x, bins) })
}
