package format

import (
	"regexp"
	"strings"

	"github.com/donaldgifford/pipefmt/internal/config"
	"github.com/donaldgifford/pipefmt/internal/diag"
	"github.com/donaldgifford/pipefmt/internal/formatter"
)

// openQuoteRe matches a value whose opening quote is never closed.
var openQuoteRe = regexp.MustCompile(`=>\s*"[^"]*$`)

// CloseQuotes appends the missing closing quote to `key => "value` lines.
type CloseQuotes struct{}

// Name returns the config key for this rule.
func (*CloseQuotes) Name() string {
	return "close_quotes"
}

// Phase runs the rule after closing braces are split from text.
func (*CloseQuotes) Phase() formatter.Phase {
	return formatter.PhaseRepair
}

// FormatLine closes an unterminated quoted value at end of line.
func (*CloseQuotes) FormatLine(num int, text string, cfg *config.FormatterConfig, rep *diag.Report) string {
	if !cfg.CloseQuotes || !strings.Contains(text, "=>") || !strings.Contains(text, `"`) {
		return text
	}
	if !openQuoteRe.MatchString(text) {
		return text
	}

	rep.Fixf(num, "Added missing closing quote")
	return text + `"`
}
