package format

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/donaldgifford/pipefmt/internal/config"
	"github.com/donaldgifford/pipefmt/internal/diag"
)

// continuationIndent is added to the indent of the piece a continuation
// line was split from.
const continuationIndent = "    "

// WrapLines splits lines longer than cfg.MaxLineLength characters without
// breaking quoted strings where an unquoted space is available.
type WrapLines struct{}

// Name returns the config key for this rule.
func (*WrapLines) Name() string {
	return "max_line_length"
}

// Format wraps every overlong line. A MaxLineLength of 0 disables wrapping.
func (*WrapLines) Format(lines []string, cfg *config.FormatterConfig, rep *diag.Report) []string {
	if cfg.MaxLineLength <= 0 {
		return lines
	}

	result := make([]string, 0, len(lines))
	for _, line := range lines {
		if utf8.RuneCountInString(line) <= cfg.MaxLineLength {
			result = append(result, line)
			continue
		}

		wrapped := wrapLine(line, cfg.MaxLineLength)
		result = append(result, wrapped...)
		if len(wrapped) > 1 {
			rep.Fixf(0, "Wrapped long line into %d lines", len(wrapped))
		}
	}
	return result
}

// wrapLine breaks line into pieces of at most limit characters. Each
// continuation is indented one continuationIndent deeper than the piece
// before it. A remainder whose indent alone reaches the limit is emitted
// as is.
func wrapLine(line string, limit int) []string {
	var out []string
	for {
		r := []rune(line)
		if len(r) <= limit {
			return append(out, line)
		}

		indent := leadingSpace(r)
		if indent >= limit {
			return append(out, line)
		}

		split := limit
		if last := lastUnquotedSpace(r, limit); last > indent {
			split = last
		}

		out = append(out, string(r[:split]))
		rest := strings.TrimLeftFunc(string(r[split:]), unicode.IsSpace)
		if rest == "" {
			return out
		}
		line = string(r[:indent]) + continuationIndent + rest
	}
}

// lastUnquotedSpace returns the index of the last space at or before limit
// that is outside a double-quoted string, or -1.
func lastUnquotedSpace(r []rune, limit int) int {
	inQuote := false
	last := -1
	for i := 0; i < len(r) && i <= limit; i++ {
		if r[i] == '"' && (i == 0 || r[i-1] != '\\') {
			inQuote = !inQuote
		}
		if r[i] == ' ' && !inQuote {
			last = i
		}
	}
	return last
}

func leadingSpace(r []rune) int {
	n := 0
	for n < len(r) && unicode.IsSpace(r[n]) {
		n++
	}
	return n
}
