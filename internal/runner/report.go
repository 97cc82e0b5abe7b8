package runner

import (
	"encoding/json"
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/donaldgifford/pipefmt/internal/config"
	"github.com/donaldgifford/pipefmt/internal/diag"
	"github.com/donaldgifford/pipefmt/pkg/diff"
)

// fileReport is one entry of the JSON report.
type fileReport struct {
	Path      string   `json:"path"`
	Changed   bool     `json:"changed"`
	Formatted string   `json:"formatted"`
	Errors    []string `json:"errors"`
	Warnings  []string `json:"warnings"`
	Fixes     []string `json:"fixes"`
	Error     string   `json:"error,omitempty"`
}

// reporter renders results in argument order and decides the exit code
// for each one.
type reporter struct {
	opts      *Options
	cfg       *config.Config
	palette   palette
	diffColor bool
	entries   []fileReport
}

func newReporter(opts *Options, cfg *config.Config) *reporter {
	return &reporter{
		opts:      opts,
		cfg:       cfg,
		palette:   newPalette(useColor(cfg.Report.Color, opts.Stderr)),
		diffColor: useColor(cfg.Report.Color, opts.Stdout),
	}
}

func (r *reporter) jsonMode() bool {
	return r.cfg.Report.Format == config.FormatJSON
}

// handle reports a single result and returns its exit code.
func (r *reporter) handle(res *fileResult) int {
	opts := r.opts

	if opts.Verbose {
		writeErr(opts.Stderr, "%s\n", res.Path)
	}

	if r.jsonMode() {
		r.entries = append(r.entries, newFileReport(res))
	}

	if res.Err != nil {
		writeErr(opts.Stderr, "pipefmt: %v\n", res.Err)
		return ExitError
	}

	if !r.jsonMode() && !opts.Quiet {
		r.printDiagnostics(res)
	}

	switch {
	case opts.Check:
		if res.changed() || res.Report.HasErrors() {
			if !opts.Quiet && !r.jsonMode() {
				writeErr(opts.Stderr, "%s\n", res.Path)
			}
			return ExitFormatDiff
		}
		return ExitOK

	case opts.Diff:
		d := diff.Unified(res.Path, res.Input, res.Output)
		if d != "" {
			writeOut(opts.Stdout, diff.Colorize(d, r.diffColor))
			return ExitFormatDiff
		}
		return ExitOK

	case opts.Write:
		if !res.changed() {
			return ExitOK
		}
		if err := writeFile(res.Path, res.Output); err != nil {
			writeErr(opts.Stderr, "pipefmt: writing %s: %v\n", res.Path, err)
			return ExitError
		}
		return ExitOK
	}

	if !r.jsonMode() {
		writeOut(opts.Stdout, res.Output)
	}
	return ExitOK
}

func (r *reporter) printDiagnostics(res *fileResult) {
	for _, d := range res.Report.Items() {
		if d.Kind == diag.KindFix && !r.cfg.Report.ShowFixes {
			continue
		}
		writeErr(r.opts.Stderr, "%s: %s\n", res.Path, r.palette.sprint(d))
	}
}

// flush writes the JSON report, if any.
func (r *reporter) flush() error {
	if !r.jsonMode() {
		return nil
	}
	entries := r.entries
	if entries == nil {
		entries = []fileReport{}
	}
	enc := json.NewEncoder(r.opts.Stdout)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}

func newFileReport(res *fileResult) fileReport {
	fr := fileReport{
		Path:     res.Path,
		Changed:  res.changed(),
		Errors:   res.Report.Strings(diag.KindError),
		Warnings: res.Report.Strings(diag.KindWarning),
		Fixes:    res.Report.Strings(diag.KindFix),
	}
	if res.Err != nil {
		fr.Error = res.Err.Error()
		return fr
	}
	fr.Formatted = res.Output
	return fr
}

// palette colours diagnostics by kind.
type palette struct {
	fixColor, warnColor, errColor *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		fixColor:  mk(color.FgGreen),
		warnColor: mk(color.FgYellow),
		errColor:  mk(color.FgRed, color.Bold),
	}
}

func (p palette) sprint(d diag.Diagnostic) string {
	switch d.Kind {
	case diag.KindError:
		return p.errColor.Sprint(d.String())
	case diag.KindWarning:
		return p.warnColor.Sprint(d.String())
	default:
		return p.fixColor.Sprint(d.String())
	}
}

// useColor resolves a colour mode for w. "auto" colours only terminals
// and honours NO_COLOR.
func useColor(mode string, w io.Writer) bool {
	switch mode {
	case config.ColorOn:
		return true
	case config.ColorOff:
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && isTerminal(f)
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
