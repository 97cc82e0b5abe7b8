package diff

import (
	"strings"
	"testing"
)

func TestUnifiedIdentical(t *testing.T) {
	result := Unified("pipeline.conf", "input {\n}\n", "input {\n}\n")
	if result != "" {
		t.Errorf("expected empty diff for identical inputs, got:\n%s", result)
	}
}

func TestUnifiedEmptyInputs(t *testing.T) {
	tests := []struct {
		name         string
		old, updated string
		wantDiff     bool
	}{
		{"both empty", "", "", false},
		{"old empty", "", "input {\n", true},
		{"new empty", "input {\n", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Unified("pipeline.conf", tt.old, tt.updated)
			hasDiff := result != ""
			if hasDiff != tt.wantDiff {
				t.Errorf("wantDiff=%v, got diff=%q", tt.wantDiff, result)
			}
		})
	}
}

func TestUnifiedHeaders(t *testing.T) {
	result := Unified("pipeline.conf", "a\nb\n", "a\nb\nc\n")

	if !strings.HasPrefix(result, "--- a/pipeline.conf\n+++ b/pipeline.conf\n") {
		t.Errorf("missing file headers, got:\n%s", result)
	}
	if !strings.Contains(result, "\n@@ ") {
		t.Errorf("missing @@ hunk header, got:\n%s", result)
	}
	if !strings.Contains(result, "+c\n") {
		t.Errorf("missing addition line, got:\n%s", result)
	}
}

func TestUnifiedModification(t *testing.T) {
	old := "input{\nstdin{\n}\n}\n"
	updated := "input {\n    stdin {\n    }\n}\n"

	result := Unified("pipeline.conf", old, updated)

	for _, want := range []string{"-input{\n", "-stdin{\n", "+input {\n", "+    stdin {\n", " }\n"} {
		if !strings.Contains(result, want) {
			t.Errorf("missing %q, got:\n%s", want, result)
		}
	}
}

func TestUnifiedDeletion(t *testing.T) {
	result := Unified("pipeline.conf", "filter {\n\n}\n", "filter {\n}\n")

	if !strings.Contains(result, "-\n") {
		t.Errorf("missing deleted blank line, got:\n%s", result)
	}
}

func TestUnifiedMissingFinalNewline(t *testing.T) {
	result := Unified("pipeline.conf", "input {\n}", "input {\n}\n")

	// Both texts have the same lines once terminated.
	if result != "" {
		t.Errorf("expected no diff, got:\n%s", result)
	}
}

func TestUnifiedContextLines(t *testing.T) {
	lines := make([]string, 0, 20)
	for i := range 20 {
		lines = append(lines, "line"+string(rune('A'+i))+"\n")
	}
	old := strings.Join(lines, "")

	newLines := make([]string, len(lines))
	copy(newLines, lines)
	newLines[10] = "CHANGED\n"
	updated := strings.Join(newLines, "")

	result := Unified("pipeline.conf", old, updated)

	if !strings.Contains(result, " line"+string(rune('A'+7))) {
		t.Errorf("expected context line 7 before change, got:\n%s", result)
	}
	if !strings.Contains(result, " line"+string(rune('A'+13))) {
		t.Errorf("expected context line 13 after change, got:\n%s", result)
	}
	if strings.Contains(result, " line"+string(rune('A'+6))+"\n") {
		t.Errorf("too much context, got:\n%s", result)
	}
}

func TestColorize(t *testing.T) {
	d := Unified("pipeline.conf", "a\nb\n", "a\nc\n")

	if got := Colorize(d, false); got != d {
		t.Errorf("disabled colorize changed the diff:\n%s", got)
	}

	colored := Colorize(d, true)
	if !strings.Contains(colored, "\x1b[") {
		t.Errorf("expected ANSI escapes, got %q", colored)
	}
	if strings.Count(colored, "\n") != strings.Count(d, "\n") {
		t.Errorf("line count changed: %q", colored)
	}
	if Colorize("", true) != "" {
		t.Error("empty diff must stay empty")
	}
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"one line with newline", "hello\n", []string{"hello\n"}},
		{"one line no newline", "hello", []string{"hello\n"}},
		{"two lines", "a\nb\n", []string{"a\n", "b\n"}},
		{"trailing blank", "a\n\n", []string{"a\n", "\n"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitLines(tt.input)
			if strings.Join(got, "|") != strings.Join(tt.want, "|") || len(got) != len(tt.want) {
				t.Errorf("splitLines(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
