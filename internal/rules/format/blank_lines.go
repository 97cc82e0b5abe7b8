package format

import (
	"strings"
	"unicode"

	"github.com/donaldgifford/pipefmt/internal/config"
	"github.com/donaldgifford/pipefmt/internal/diag"
	"github.com/donaldgifford/pipefmt/internal/formatter"
)

// sectionKeywords open the top-level pipeline sections. A single blank
// line is kept between a closed section and the next one.
var sectionKeywords = []string{"input", "filter", "output"}

// BlankLines strips trailing whitespace and removes every blank line except
// a single separator between top-level sections. Trailing blank lines are
// always removed.
type BlankLines struct{}

// Name returns the config key for this rule.
func (*BlankLines) Name() string {
	return "collapse_blank_lines"
}

// Format cleans lines and records a single fix when anything changed.
func (*BlankLines) Format(lines []string, cfg *config.FormatterConfig, rep *diag.Report) []string {
	trimmed := make([]string, len(lines))
	for i, line := range lines {
		trimmed[i] = strings.TrimRightFunc(line, unicode.IsSpace)
	}

	result := make([]string, 0, len(trimmed))
	for i, line := range trimmed {
		if line != "" || !cfg.CollapseBlankLines {
			result = append(result, line)
			continue
		}
		if !separatesSections(trimmed, i) {
			continue
		}
		// Collapse a run of separators to one.
		if len(result) > 0 && result[len(result)-1] != "" {
			result = append(result, line)
		}
	}

	for len(result) > 0 && result[len(result)-1] == "" {
		result = result[:len(result)-1]
	}

	if formatter.Write(result) != formatter.Write(lines) {
		rep.Fixf(0, "Removed extra whitespace and empty lines")
	}
	return result
}

// separatesSections reports whether the blank line at i sits between the
// close of a top-level block and the start of the next section. Blank
// lines right after an opening brace or right before a closing brace
// never qualify. Neighbours are the nearest non-blank lines on either
// side, so every blank line of a run is judged alike and a run between
// two sections collapses to a single separator.
func separatesSections(lines []string, i int) bool {
	prev := ""
	for j := i - 1; j >= 0; j-- {
		if lines[j] != "" {
			prev = lines[j]
			break
		}
	}
	next := ""
	for j := i + 1; j < len(lines); j++ {
		if lines[j] != "" {
			next = strings.TrimSpace(lines[j])
			break
		}
	}

	switch {
	case strings.HasPrefix(next, "}"):
		return false
	case strings.HasSuffix(prev, "{"):
		return false
	case !strings.HasPrefix(prev, "}"):
		return false
	}
	for _, kw := range sectionKeywords {
		if strings.HasPrefix(next, kw) {
			return true
		}
	}
	return false
}
