package formatter

import (
	"github.com/donaldgifford/pipefmt/internal/config"
	"github.com/donaldgifford/pipefmt/internal/diag"
)

// Phase selects where in the per-line pipeline a LineRule runs.
type Phase int

const (
	// PhaseNormalize rules run on the trimmed source line, before
	// closing braces glued to text are split off.
	PhaseNormalize Phase = iota
	// PhaseRepair rules run after the split, just before the line is
	// indented and emitted.
	PhaseRepair
)

// LineRule transforms a single line. Rules are applied in registered order
// within their phase.
type LineRule interface {
	// Name returns the config key for this rule (e.g., "quote_values").
	Name() string

	// Phase reports when the rule runs.
	Phase() Phase

	// FormatLine receives the current text of source line num and returns
	// the new text, recording any change in rep.
	FormatLine(num int, text string, cfg *config.FormatterConfig, rep *diag.Report) string
}

// PostRule transforms the fully assembled output lines. Rules are applied
// in registered order.
type PostRule interface {
	// Name returns the config key for this rule.
	Name() string

	// Format receives the output lines and returns the new lines. Rules
	// must not mutate the input slice.
	Format(lines []string, cfg *config.FormatterConfig, rep *diag.Report) []string
}
