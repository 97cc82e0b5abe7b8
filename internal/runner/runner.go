// Package runner orchestrates the read -> format -> report pipeline.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/donaldgifford/pipefmt/internal/config"
	"github.com/donaldgifford/pipefmt/internal/diag"
	"github.com/donaldgifford/pipefmt/internal/document"
	"github.com/donaldgifford/pipefmt/internal/formatter"
	"github.com/donaldgifford/pipefmt/internal/rules"
)

// Exit codes.
const (
	ExitOK         = 0
	ExitFormatDiff = 1
	ExitError      = 2
)

// stdinName labels diagnostics and diffs for standard input.
const stdinName = "<stdin>"

// Options configures the runner behavior.
type Options struct {
	Files      []string
	Check      bool
	Diff       bool
	Write      bool
	ConfigPath string
	Quiet      bool
	Verbose    bool
	// Format and Color override the report section of the config when set.
	Format string
	Color  string
	// Jobs limits how many files are formatted at once. Zero means
	// GOMAXPROCS.
	Jobs   int
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// fileResult is the outcome of formatting one input.
type fileResult struct {
	Path   string
	Input  string
	Output string // as stored on disk, with a trailing newline.
	Report *diag.Report
	Err    error
}

func (r *fileResult) changed() bool {
	return r.Err == nil && r.Input != r.Output
}

// Run executes the format pipeline and returns an exit code.
func Run(ctx context.Context, opts *Options) int {
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		writeErr(opts.Stderr, "pipefmt: %v\n", err)
		return ExitError
	}

	if err := applyOptions(cfg, opts); err != nil {
		writeErr(opts.Stderr, "pipefmt: %v\n", err)
		return ExitError
	}

	results, err := formatAll(ctx, opts, cfg)
	if err != nil {
		writeErr(opts.Stderr, "pipefmt: %v\n", err)
		return ExitError
	}

	rep := newReporter(opts, cfg)
	exitCode := ExitOK
	for _, res := range results {
		exitCode = max(exitCode, rep.handle(res))
	}

	if err := rep.flush(); err != nil {
		writeErr(opts.Stderr, "pipefmt: writing report: %v\n", err)
		return ExitError
	}
	return exitCode
}

// applyOptions merges flag overrides into cfg and rejects flag
// combinations that cannot work together.
func applyOptions(cfg *config.Config, opts *Options) error {
	if opts.Format != "" {
		cfg.Report.Format = opts.Format
	}
	if opts.Color != "" {
		cfg.Report.Color = opts.Color
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	if opts.Diff && cfg.Report.Format == config.FormatJSON {
		return errors.New("--diff cannot be combined with --format json")
	}
	if opts.Write && len(opts.Files) == 0 {
		return errors.New("cannot use --write with standard input")
	}
	return nil
}

// formatAll formats stdin, or every file in parallel. Results keep the
// argument order. Read failures are recorded per file; only cancellation
// aborts the run.
func formatAll(ctx context.Context, opts *Options, cfg *config.Config) ([]*fileResult, error) {
	if len(opts.Files) == 0 {
		src, err := io.ReadAll(opts.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return []*fileResult{formatSource(stdinName, string(src), cfg)}, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Each goroutine owns its index; no locking needed.
	results := make([]*fileResult, len(opts.Files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(opts.Files)))

	for i, path := range opts.Files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = formatPath(path, cfg)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func formatPath(path string, cfg *config.Config) *fileResult {
	src, err := os.ReadFile(path)
	if err != nil {
		return &fileResult{Path: path, Report: &diag.Report{}, Err: err}
	}
	return formatSource(path, string(src), cfg)
}

func formatSource(path, input string, cfg *config.Config) *fileResult {
	res := formatter.Run(document.Parse(input), &cfg.Formatter, rules.LineRules(), rules.PostRules())
	return &fileResult{
		Path:   path,
		Input:  input,
		Output: formatter.Render(res.Formatted),
		Report: res.Report,
	}
}

// writeOut writes to stdout.
func writeOut(w io.Writer, s string) {
	fmt.Fprint(w, s)
}

// writeErr formats and writes to stderr.
func writeErr(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format, args...)
}
