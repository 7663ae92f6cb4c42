// Package walkthrough runs the tutorial sections of the ndarray module: array
// attributes and slicing, ufuncs, aggregates, comparisons and masks, fancy
// indexing, and binning. Each section prints labelled results to an io.Writer.
//
// Example:
//
//	err := walkthrough.Run(os.Stdout, walkthrough.Options{Seed: 42}, "masks")
package walkthrough

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/born-ml/ndarray/internal/backend/cpu"
	"github.com/born-ml/ndarray/internal/config"
	"github.com/born-ml/ndarray/internal/ndarray"
	"github.com/born-ml/ndarray/internal/random"
)

// Options configures a walkthrough run.
type Options struct {
	Backend ndarray.Backend     // nil means cpu.New()
	Seed    uint64              // seed of every section's random generator
	Print   config.PrintOptions // zero value means config.Default().Print
}

// Section is one named tutorial section.
type Section struct {
	Name  string
	Title string
	run   func(*session)
}

var sections = []Section{
	{Name: "attributes", Title: "Array attributes, indexing and slicing", run: attributes},
	{Name: "ufuncs", Title: "Universal functions", run: ufuncs},
	{Name: "aggregates", Title: "Aggregations", run: aggregates},
	{Name: "masks", Title: "Comparisons, masks and boolean logic", run: masks},
	{Name: "fancy", Title: "Fancy indexing", run: fancy},
	{Name: "binning", Title: "Binning data", run: binning},
}

// Sections lists the available sections in run order.
func Sections() []Section {
	return slices.Clone(sections)
}

// Run executes the named sections in the given order, or every section when
// names is empty. Unknown names fail before anything is written.
func Run(w io.Writer, opts Options, names ...string) error {
	selected, err := lookup(names)
	if err != nil {
		return err
	}
	if opts.Backend == nil {
		opts.Backend = cpu.New()
	}
	if opts.Print == (config.PrintOptions{}) {
		opts.Print = config.Default().Print
	}

	for i, sec := range selected {
		s := &session{
			w:     w,
			b:     opts.Backend,
			rng:   random.New(opts.Seed, opts.Backend),
			print: opts.Print,
		}
		if i > 0 {
			s.printf("\n")
		}
		s.printf("== %s ==\n", sec.Title)
		sec.run(s)
		if s.err != nil {
			return fmt.Errorf("section %s: %w", sec.Name, s.err)
		}
	}
	return nil
}

func lookup(names []string) ([]Section, error) {
	if len(names) == 0 {
		return sections, nil
	}
	out := make([]Section, 0, len(names))
	for _, name := range names {
		i := slices.IndexFunc(sections, func(s Section) bool { return s.Name == name })
		if i < 0 {
			known := make([]string, len(sections))
			for j, s := range sections {
				known[j] = s.Name
			}
			return nil, fmt.Errorf("unknown section %q (available: %s)", name, strings.Join(known, ", "))
		}
		out = append(out, sections[i])
	}
	return out, nil
}

// session carries the first error of a section; once set, every later step
// is skipped, so steps may use earlier results without nil checks.
type session struct {
	w     io.Writer
	b     ndarray.Backend
	rng   *random.Generator
	print config.PrintOptions
	err   error
}

func (s *session) printf(format string, args ...any) {
	if s.err != nil {
		return
	}
	if _, err := fmt.Fprintf(s.w, format, args...); err != nil {
		s.err = err
	}
}

// eval computes an array without printing it.
func (s *session) eval(f func() (*ndarray.Array, error)) *ndarray.Array {
	if s.err != nil {
		return nil
	}
	a, err := f()
	if err != nil {
		s.err = err
		return nil
	}
	return a
}

// show computes an array and prints it as "label = value". Continuation lines
// are indented to line up under the first one.
func (s *session) show(label string, f func() (*ndarray.Array, error)) *ndarray.Array {
	a := s.eval(f)
	if a != nil {
		s.value(label, a)
	}
	return a
}

func (s *session) value(label string, a *ndarray.Array) {
	if s.err != nil || a == nil {
		return
	}
	text := ndarray.Format(a, s.print)
	text = strings.ReplaceAll(text, "\n", "\n"+strings.Repeat(" ", len(label)+3))
	s.printf("%s = %s\n", label, text)
}

// check runs a step that mutates arrays in place.
func (s *session) check(f func() error) {
	if s.err != nil {
		return
	}
	s.err = f()
}

func (s *session) nested(v any) *ndarray.Array {
	return s.eval(func() (*ndarray.Array, error) { return ndarray.FromNested(v, s.b) })
}

func (s *session) arange(start, stop int) *ndarray.Array {
	return s.eval(func() (*ndarray.Array, error) { return ndarray.Arange(start, stop, 1, s.b) })
}
