package ndarray

import (
	"math"
	"strconv"
	"strings"

	"github.com/born-ml/ndarray/internal/config"
)

// Format renders a in the familiar bracketed layout:
//
//	[[5 0 3 3]
//	 [7 9 3 5]]
//
// Floats print with at most opts.Precision fractional digits, trailing zeros
// trimmed and decimal points aligned. Arrays larger than opts.Threshold show
// only opts.EdgeItems entries at each end of every long axis.
func Format(a *Array, opts config.PrintOptions) string {
	f := newFormatter(a, opts)
	if a.NDim() == 0 {
		return f.cell(0)
	}
	if a.Size() == 0 {
		return "[]"
	}
	var sb strings.Builder
	f.write(&sb, 0, make([]int, a.NDim()))
	return sb.String()
}

type formatter struct {
	a         *Array
	acc       Accessor
	opts      config.PrintOptions
	summarize bool

	cells   map[int]string // storage index -> rendered element
	width   int
	fracLen int
}

func newFormatter(a *Array, opts config.PrintOptions) *formatter {
	f := &formatter{
		a:         a,
		acc:       NewAccessor(a.raw),
		opts:      opts,
		summarize: a.Size() > opts.Threshold,
		cells:     make(map[int]string),
	}
	f.collect(0, make([]int, a.NDim()))
	for _, s := range f.cells {
		if a.DType().IsFloat() {
			if i := strings.IndexByte(s, '.'); i >= 0 {
				f.fracLen = max(f.fracLen, len(s)-i-1)
			}
		}
	}
	for k, s := range f.cells {
		s = f.padFrac(s)
		f.cells[k] = s
		f.width = max(f.width, len(s))
	}
	return f
}

// collect renders every element that will be shown.
func (f *formatter) collect(depth int, coords []int) {
	if depth == f.a.NDim() {
		idx := f.a.raw.StorageIndexOf(coords)
		f.cells[idx] = f.render(idx)
		return
	}
	for _, i := range f.visible(depth) {
		if i < 0 {
			continue
		}
		coords[depth] = i
		f.collect(depth+1, coords)
	}
}

// visible lists the positions shown along an axis; -1 marks the ellipsis.
func (f *formatter) visible(depth int) []int {
	n := f.a.Shape()[depth]
	edge := f.opts.EdgeItems
	if !f.summarize || n <= 2*edge {
		out := make([]int, n)
		for i := range out {
			out[i] = i
		}
		return out
	}
	out := make([]int, 0, 2*edge+1)
	for i := 0; i < edge; i++ {
		out = append(out, i)
	}
	out = append(out, -1)
	for i := n - edge; i < n; i++ {
		out = append(out, i)
	}
	return out
}

func (f *formatter) render(idx int) string {
	switch dt := f.a.DType(); {
	case dt == Bool:
		if f.acc.Bool(idx) {
			return "True"
		}
		return "False"
	case dt.IsFloat():
		return formatFloat(f.acc.Float(idx), f.opts.Precision)
	default:
		return strconv.FormatInt(f.acc.Int(idx), 10)
	}
}

func formatFloat(v float64, precision int) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	s := strconv.FormatFloat(v, 'f', precision, 64)
	if strings.IndexByte(s, '.') < 0 {
		return s + "."
	}
	return strings.TrimRight(s, "0")
}

// padFrac right-pads floats so their decimal points line up.
func (f *formatter) padFrac(s string) string {
	i := strings.IndexByte(s, '.')
	if i < 0 {
		// ints, nan and inf
		return s
	}
	return s + strings.Repeat(" ", f.fracLen-(len(s)-i-1))
}

func (f *formatter) cell(idx int) string {
	if f.a.NDim() == 0 {
		return strings.TrimRight(f.cells[f.a.raw.Offset()], " ")
	}
	s := f.cells[idx]
	return strings.Repeat(" ", f.width-len(s)) + s
}

func (f *formatter) write(sb *strings.Builder, depth int, coords []int) {
	ndim := f.a.NDim()
	sb.WriteByte('[')
	positions := f.visible(depth)

	if depth == ndim-1 {
		lineLen := depth + 1
		for j, i := range positions {
			var s string
			if i < 0 {
				s = "..."
			} else {
				coords[depth] = i
				s = f.cell(f.a.raw.StorageIndexOf(coords))
			}
			if j > 0 {
				if lineLen+1+len(s)+1 > f.opts.LineWidth {
					sb.WriteString("\n")
					sb.WriteString(strings.Repeat(" ", depth+1))
					lineLen = depth + 1
				} else {
					sb.WriteByte(' ')
					lineLen++
				}
			}
			sb.WriteString(s)
			lineLen += len(s)
		}
		sb.WriteByte(']')
		return
	}

	sep := strings.Repeat("\n", ndim-depth-1) + strings.Repeat(" ", depth+1)
	for j, i := range positions {
		if j > 0 {
			sb.WriteString(sep)
		}
		if i < 0 {
			sb.WriteString("...")
			continue
		}
		coords[depth] = i
		f.write(sb, depth+1, coords)
	}
	sb.WriteByte(']')
}
