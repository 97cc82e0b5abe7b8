// Package formatter provides the formatting engine, writer, and rule
// interfaces.
package formatter

import "strings"

// Write joins output lines into the formatted document. The result has no
// trailing newline.
func Write(lines []string) string {
	return strings.Join(lines, "\n")
}

// Render returns formatted text as it should be stored in a file: with a
// single trailing newline, or empty when there is no content.
func Render(formatted string) string {
	if formatted == "" {
		return ""
	}
	return formatted + "\n"
}

