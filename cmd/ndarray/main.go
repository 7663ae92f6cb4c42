// Package main provides the ndarray command-line tool.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/born-ml/ndarray/internal/backend/cpu"
	"github.com/born-ml/ndarray/internal/config"
	"github.com/born-ml/ndarray/internal/ndarray"
	"github.com/born-ml/ndarray/internal/random"
	"github.com/born-ml/ndarray/internal/serialization"
	"github.com/born-ml/ndarray/internal/walkthrough"
)

const version = "v0.1.0"

// ExitError carries the process exit code for a failed command.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	if err := run(os.Stdout, os.Args[1:]); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

const usage = `ndarray - dense N-dimensional arrays for Go

Usage:
  ndarray [options] <command> [arguments]

Commands:
  version              Show version
  sections             List the walkthrough sections
  demo [section...]    Run walkthrough sections (all by default)
  save-demo <file>     Write sample arrays (.safetensors, or .idx for one array)
  inspect <file>       Print the arrays stored in a .safetensors or IDX file

Configuration is read from NDARRAY_* environment variables
(NDARRAY_SEED, NDARRAY_PRINT_PRECISION, NDARRAY_PARALLEL_ENABLED, ...).

Options:
`

// run executes one command; it is main without the process exit.
func run(out io.Writer, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return &ExitError{Code: 2, Message: err.Error()}
	}

	flags := flag.NewFlagSet("ndarray", flag.ContinueOnError)
	flags.SetOutput(out)
	flags.Usage = func() {
		fmt.Fprint(out, usage)
		flags.PrintDefaults()
	}
	seed := flags.Uint64("seed", cfg.Seed, "Seed of the random generator.")
	logLevel := flags.String("log-level", "warn", "Logging level: 'debug', 'info', 'warn' or 'error'.")
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return &ExitError{Code: 2, Message: err.Error()}
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		return &ExitError{Code: 2, Message: fmt.Sprintf("invalid log level %q", *logLevel)}
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg.Seed = *seed
	if err := config.Init(cfg); err != nil {
		return &ExitError{Code: 2, Message: err.Error()}
	}
	defer config.Reset()

	backend := cpu.New(cpu.WithParallel(cfg.Parallel.ParallelConfig()))
	logger.Debug("configuration loaded",
		"seed", cfg.Seed,
		"parallel", cfg.Parallel.Enabled,
		"precision", cfg.Print.Precision)

	if flags.NArg() == 0 {
		flags.Usage()
		return nil
	}
	cmd, rest := flags.Arg(0), flags.Args()[1:]
	switch cmd {
	case "version":
		fmt.Fprintf(out, "ndarray %s (backend: %s)\n", version, backend.Name())
		return nil
	case "sections":
		for _, s := range walkthrough.Sections() {
			fmt.Fprintf(out, "%-12s %s\n", s.Name, s.Title)
		}
		return nil
	case "demo":
		logger.Info("running walkthrough", "sections", rest)
		return walkthrough.Run(out, walkthrough.Options{Backend: backend, Seed: cfg.Seed, Print: cfg.Print}, rest...)
	case "save-demo":
		if len(rest) != 1 {
			return &ExitError{Code: 2, Message: "usage: ndarray save-demo <file>"}
		}
		return saveDemo(out, logger, rest[0], random.New(cfg.Seed, backend))
	case "inspect":
		if len(rest) != 1 {
			return &ExitError{Code: 2, Message: "usage: ndarray inspect <file>"}
		}
		return inspect(out, logger, rest[0], backend, cfg.Print)
	default:
		return &ExitError{Code: 2, Message: fmt.Sprintf("unknown command %q (run 'ndarray -h' for usage)", cmd)}
	}
}

func isIDX(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".idx" || strings.HasSuffix(ext, "-ubyte")
}

// demoArrays builds the sample arrays written by save-demo.
func demoArrays(rng *random.Generator) (map[string]*ndarray.Array, error) {
	x, err := rng.RandInt(0, 10, ndarray.Shape{3, 4})
	if err != nil {
		return nil, err
	}
	samples, err := rng.Randn(100)
	if err != nil {
		return nil, err
	}
	edges, err := ndarray.Linspace(-5, 5, 21, samples.Backend())
	if err != nil {
		return nil, err
	}
	counts, err := ndarray.Histogram(samples, edges)
	if err != nil {
		return nil, err
	}
	mask, err := x.Less(6)
	if err != nil {
		return nil, err
	}
	return map[string]*ndarray.Array{
		"x":       x,
		"samples": samples,
		"counts":  counts,
		"mask":    mask,
	}, nil
}

func saveDemo(out io.Writer, logger *slog.Logger, path string, rng *random.Generator) error {
	arrays, err := demoArrays(rng)
	if err != nil {
		return err
	}
	if isIDX(path) {
		if err := serialization.WriteIDXFile(path, arrays["samples"].Raw()); err != nil {
			return err
		}
		fmt.Fprintf(out, "wrote samples to %s\n", path)
		return nil
	}

	raws := make(map[string]*ndarray.RawArray, len(arrays))
	for name, a := range arrays {
		raws[name] = a.Raw()
	}
	metadata := map[string]string{"created_by": "ndarray " + version}
	if err := serialization.WriteSafeTensorsFile(path, raws, metadata); err != nil {
		return err
	}
	logger.Info("saved demo arrays", "path", path, "count", len(raws))
	fmt.Fprintf(out, "wrote %d arrays to %s\n", len(raws), path)
	return nil
}

func inspect(out io.Writer, logger *slog.Logger, path string, b ndarray.Backend, opts config.PrintOptions) error {
	if isIDX(path) {
		raw, err := serialization.ReadIDXFile(path)
		if err != nil {
			return err
		}
		printArray(out, filepath.Base(path), ndarray.New(raw, b), opts)
		return nil
	}

	archive, err := serialization.ReadSafeTensorsFile(path, serialization.ReaderOptions{})
	if err != nil {
		return err
	}
	logger.Debug("read archive", "path", path, "arrays", len(archive.Arrays))
	metadata := archive.Metadata()
	for _, key := range slices.Sorted(maps.Keys(metadata)) {
		fmt.Fprintf(out, "# %s: %s\n", key, metadata[key])
	}
	for _, name := range archive.Names() {
		printArray(out, name, ndarray.New(archive.Arrays[name], b), opts)
	}
	return nil
}

func printArray(out io.Writer, name string, a *ndarray.Array, opts config.PrintOptions) {
	fmt.Fprintf(out, "%s: dtype=%v shape=%v\n%s\n", name, a.DType(), a.Shape(), ndarray.Format(a, opts))
}
