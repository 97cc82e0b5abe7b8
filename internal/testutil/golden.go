// Package testutil provides shared test helpers for golden file testing.
package testutil

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/donaldgifford/pipefmt/pkg/diff"
)

// Update is a flag that, when set, regenerates golden files from current output.
// Usage: go test ./... -update
var Update = flag.Bool("update", false, "update golden files")

// Golden file names inside each case directory.
const (
	InputFile       = "input.conf"
	ExpectedFile    = "expected.conf"
	DiagnosticsFile = "diagnostics.txt"
)

// FormatFunc formats pipeline configuration source. It returns the file
// content to store and the rendered diagnostics in report order.
type FormatFunc func(input string) (output string, diagnostics []string)

// RunGolden runs a single golden file test in the given directory.
// It reads input.conf, applies formatFn, and compares the output against
// expected.conf and the diagnostics against diagnostics.txt, one per line.
func RunGolden(t *testing.T, dir string, formatFn FormatFunc) {
	t.Helper()

	inputPath := filepath.Join(dir, InputFile)
	inputBytes, err := os.ReadFile(inputPath)
	if err != nil {
		t.Fatalf("failed to read %s: %v", inputPath, err)
	}

	output, diagnostics := formatFn(string(inputBytes))

	compareGolden(t, dir, ExpectedFile, output)
	compareGolden(t, dir, DiagnosticsFile, joinLines(diagnostics))
}

// compareGolden checks actual against dir/name, or rewrites the file when
// -update is set.
func compareGolden(t *testing.T, dir, name, actual string) {
	t.Helper()

	path := filepath.Join(dir, name)
	if *Update {
		if err := os.WriteFile(path, []byte(actual), 0o644); err != nil {
			t.Fatalf("failed to update golden file %s: %v", path, err)
		}
		t.Logf("updated golden file: %s", path)
		return
	}

	expectedBytes, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}

	expected := string(expectedBytes)
	if actual != expected {
		t.Errorf("%s mismatch for %s:\n%s", name, dir, diff.Unified(name, expected, actual))
	}
}

// joinLines renders lines newline-terminated; no lines render as an empty
// file.
func joinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

// RunGoldenDir walks all subdirectories under testdataDir and runs
// RunGolden for each as a subtest.
func RunGoldenDir(t *testing.T, testdataDir string, formatFn FormatFunc) {
	t.Helper()

	entries, err := os.ReadDir(testdataDir)
	if err != nil {
		t.Fatalf("failed to read testdata dir %s: %v", testdataDir, err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		t.Run(entry.Name(), func(t *testing.T) {
			dir := filepath.Join(testdataDir, entry.Name())
			RunGolden(t, dir, formatFn)
		})
	}
}
