// Package format contains individual formatting rule implementations.
package format

import (
	"regexp"
	"strings"

	"github.com/donaldgifford/pipefmt/internal/config"
	"github.com/donaldgifford/pipefmt/internal/diag"
	"github.com/donaldgifford/pipefmt/internal/document"
	"github.com/donaldgifford/pipefmt/internal/formatter"
)

var (
	spaceBeforeBraceRe = regexp.MustCompile(`\s+\{`)
	arrowRe            = regexp.MustCompile(`\s*=>\s*`)
	multiSpaceRe       = regexp.MustCompile(`  +`)
)

// NormalizeWhitespace fixes brace spacing, pads "=>" with single spaces and
// collapses runs of interior spaces.
type NormalizeWhitespace struct{}

// Name returns the config key for this rule.
func (*NormalizeWhitespace) Name() string {
	return "normalize_whitespace"
}

// Phase runs the rule before closing braces are split from text.
func (*NormalizeWhitespace) Phase() formatter.Phase {
	return formatter.PhaseNormalize
}

// FormatLine normalizes the whitespace of a trimmed line. The steps run in
// order, each on the output of the previous one.
func (*NormalizeWhitespace) FormatLine(num int, text string, cfg *config.FormatterConfig, rep *diag.Report) string {
	if !cfg.NormalizeWhitespace {
		return text
	}

	cleaned := text
	if !strings.Contains(cleaned, document.FieldRefPrefix) {
		cleaned = spaceBeforeBraceRe.ReplaceAllString(cleaned, " {")
		cleaned = document.SpaceOpenBraces(cleaned)
	}
	if strings.Contains(cleaned, "=>") {
		cleaned = arrowRe.ReplaceAllString(cleaned, " => ")
	}
	cleaned = multiSpaceRe.ReplaceAllString(cleaned, " ")

	if cleaned != text && text != "" {
		rep.Fixf(num, "Cleaned whitespace - was: '%s' now: '%s'", text, cleaned)
	}
	return cleaned
}
