// Package pipelinefmt formats and lints Logstash pipeline configuration
// files.
//
// Format re-indents the configuration by brace depth, repairs common syntax
// mistakes (unquoted values, unterminated quotes, closing braces glued to
// the next block, missing or extra closing braces), wraps overlong lines and
// removes redundant blank lines. It returns the formatted text together with
// the structural errors found and the fixes applied, in detection order.
//
// Both functions are pure and safe for concurrent use.
package pipelinefmt

import (
	"os"

	"github.com/donaldgifford/pipefmt/internal/config"
	"github.com/donaldgifford/pipefmt/internal/document"
	"github.com/donaldgifford/pipefmt/internal/formatter"
	"github.com/donaldgifford/pipefmt/internal/rules"
)

// Format formats text with the default settings. Malformed text never
// fails: problems are reported in errs, repairs in fixes.
func Format(text string) (formatted string, errs, fixes []string) {
	cfg := config.DefaultConfig()
	res := formatter.Run(document.Parse(text), &cfg.Formatter, rules.LineRules(), rules.PostRules())
	return res.Formatted, res.Errors(), res.Fixes()
}

// FormatFile reads path and formats its content. A read failure is
// reported as the only entry of errs, with no formatted text.
func FormatFile(path string) (formatted string, errs, fixes []string) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", []string{err.Error()}, []string{}
	}
	return Format(string(data))
}
