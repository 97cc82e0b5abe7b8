package format

import (
	"strings"
	"unicode"

	"github.com/donaldgifford/pipefmt/internal/config"
	"github.com/donaldgifford/pipefmt/internal/diag"
	"github.com/donaldgifford/pipefmt/internal/document"
	"github.com/donaldgifford/pipefmt/internal/formatter"
)

// QuoteValues wraps unquoted multi-token option values in double quotes
// ("add_field => test value" becomes "add_field => \"test value\"").
type QuoteValues struct{}

// Name returns the config key for this rule.
func (*QuoteValues) Name() string {
	return "quote_values"
}

// Phase runs the rule after closing braces are split from text.
func (*QuoteValues) Phase() formatter.Phase {
	return formatter.PhaseRepair
}

// FormatLine quotes the value of a "key => value" line when needsQuotes
// says so. The line is rebuilt as "key => \"value\"".
func (*QuoteValues) FormatLine(num int, text string, cfg *config.FormatterConfig, rep *diag.Report) string {
	if !cfg.QuoteValues {
		return text
	}

	key, value, found := strings.Cut(text, "=>")
	if !found {
		return text
	}
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)

	if !needsQuotes(value) {
		return text
	}

	quoted := `"` + value + `"`
	rep.Fixf(num, "Added quotes around value - was: '%s' now: '%s'", value, quoted)
	return key + " => " + quoted
}

// needsQuotes reports whether value looks like a bare multi-token literal.
// Anything that may be structural (lists, numbers, booleans, blocks,
// field references) or is already quoted is left alone.
func needsQuotes(value string) bool {
	switch {
	case strings.ContainsAny(value, `"'`):
		return false
	case strings.HasPrefix(value, "[") && strings.HasSuffix(value, "]"):
		return false
	case isDigits(value):
		return false
	case value == "true" || value == "false":
		return false
	case strings.HasPrefix(value, "{"), strings.HasSuffix(value, "{"), strings.HasSuffix(value, "}"):
		return false
	case strings.Contains(value, document.FieldRefPrefix):
		return false
	}
	return strings.ContainsAny(value, " -.")
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
