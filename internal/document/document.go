// Package document splits pipeline configuration text into numbered source
// lines and provides the lexical helpers shared by the formatter and rules.
package document

import (
	"regexp"
	"strings"
)

// FieldRefPrefix opens a field reference such as %{host}. Lines containing
// it are exempt from brace-spacing fixes.
const FieldRefPrefix = "%{"

// Line is a single source line.
type Line struct {
	Number int    // 1-indexed source line number.
	Text   string // Raw text without the line terminator.
}

// Document is the immutable, line-oriented view of the input text.
type Document struct {
	Lines []Line
}

// wordBraceRe matches a word character immediately followed by '{'.
var wordBraceRe = regexp.MustCompile(`([\p{L}\p{N}_])\{`)

// Parse splits src into lines. "\n", "\r\n" and a lone "\r" all terminate a
// line; a trailing terminator does not produce an extra empty line.
func Parse(src string) *Document {
	lines := splitLines(src)
	doc := &Document{Lines: make([]Line, len(lines))}
	for i, text := range lines {
		doc.Lines[i] = Line{Number: i + 1, Text: text}
	}
	return doc
}

// Len returns the number of source lines.
func (d *Document) Len() int {
	return len(d.Lines)
}

func splitLines(src string) []string {
	if src == "" {
		return nil
	}
	src = strings.ReplaceAll(src, "\r\n", "\n")
	src = strings.ReplaceAll(src, "\r", "\n")
	lines := strings.Split(src, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// CountQuotes returns the number of double quotes in s that are not
// preceded by a backslash.
func CountQuotes(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '"' && (i == 0 || s[i-1] != '\\') {
			n++
		}
	}
	return n
}

// LeadingBraces returns the number of consecutive '}' at the start of s.
func LeadingBraces(s string) int {
	n := 0
	for n < len(s) && s[n] == '}' {
		n++
	}
	return n
}

// SpaceOpenBraces inserts a space between a word character and a directly
// following '{' ("input{" becomes "input {"). Text containing a field
// reference is returned unchanged.
func SpaceOpenBraces(s string) string {
	if strings.Contains(s, FieldRefPrefix) {
		return s
	}
	return wordBraceRe.ReplaceAllString(s, "$1 {")
}
