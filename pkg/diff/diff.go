// Package diff renders unified diffs between the original and the
// formatted text of a pipeline file.
package diff

import (
	"strings"

	"github.com/fatih/color"
	"github.com/pmezard/go-difflib/difflib"
)

// contextLines is the number of unchanged lines shown around each hunk.
const contextLines = 3

// Diff colours ignore the global color.NoColor setting: callers decide
// whether to colorize at all.
var (
	headerColor = forced(color.Bold)
	hunkColor   = forced(color.FgCyan)
	addColor    = forced(color.FgGreen)
	delColor    = forced(color.FgRed)
)

func forced(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	c.EnableColor()
	return c
}

// Unified generates a unified diff between oldText and newText.
// Returns an empty string if the inputs are identical.
func Unified(filename, oldText, newText string) string {
	if oldText == newText {
		return ""
	}

	d, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        splitLines(oldText),
		B:        splitLines(newText),
		FromFile: "a/" + filename,
		ToFile:   "b/" + filename,
		Context:  contextLines,
	})
	if err != nil {
		// Only a failing writer can make difflib error, and strings.Builder
		// never fails.
		return ""
	}
	return d
}

// Colorize highlights a unified diff for terminal output. When enabled is
// false the diff is returned unchanged.
func Colorize(d string, enabled bool) string {
	if !enabled || d == "" {
		return d
	}

	var b strings.Builder
	for _, line := range splitLines(d) {
		text := strings.TrimSuffix(line, "\n")
		switch {
		case strings.HasPrefix(text, "+++"), strings.HasPrefix(text, "---"):
			text = headerColor.Sprint(text)
		case strings.HasPrefix(text, "@@"):
			text = hunkColor.Sprint(text)
		case strings.HasPrefix(text, "+"):
			text = addColor.Sprint(text)
		case strings.HasPrefix(text, "-"):
			text = delColor.Sprint(text)
		}
		b.WriteString(text)
		b.WriteByte('\n')
	}
	return b.String()
}

// splitLines splits text into newline-terminated lines. An empty string
// produces zero lines and a missing final newline is added.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	// SplitAfter leaves an empty trailing element when s ends with \n.
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	} else {
		lines[len(lines)-1] += "\n"
	}
	return lines
}
