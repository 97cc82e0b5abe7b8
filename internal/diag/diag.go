// Package diag defines the diagnostics produced while formatting a pipeline:
// structural errors, advisory warnings, and the fixes that were applied.
package diag

import "fmt"

// Kind classifies a diagnostic.
type Kind uint8

const (
	// KindFix records a mutation the formatter applied.
	KindFix Kind = iota
	// KindWarning is advisory and never indicates a broken pipeline.
	KindWarning
	// KindError is a structural problem, possibly repaired heuristically.
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindFix:
		return "fix"
	case KindWarning:
		return "warning"
	case KindError:
		return "error"
	}
	return "unknown"
}

// Diagnostic is a single message tied to an optional source line.
type Diagnostic struct {
	Kind    Kind
	Line    int // 1-indexed; 0 when the message is not tied to a line.
	Message string
}

// String renders the diagnostic in its user-facing form.
func (d Diagnostic) String() string {
	msg := d.Message
	if d.Kind == KindWarning {
		msg = "Warning: " + msg
	}
	if d.Line > 0 {
		return fmt.Sprintf("Line %d: %s", d.Line, msg)
	}
	return msg
}

// Report is an append-only, ordered collection of diagnostics.
// The zero value is ready to use.
type Report struct {
	items []Diagnostic
}

// Add appends d.
func (r *Report) Add(d Diagnostic) {
	r.items = append(r.items, d)
}

// Errorf records a structural error at line.
func (r *Report) Errorf(line int, format string, args ...any) {
	r.Add(Diagnostic{Kind: KindError, Line: line, Message: fmt.Sprintf(format, args...)})
}

// Warnf records an advisory warning that is not tied to a line.
func (r *Report) Warnf(format string, args ...any) {
	r.Add(Diagnostic{Kind: KindWarning, Message: fmt.Sprintf(format, args...)})
}

// Fixf records an applied fix at line. Pass 0 for fixes whose message
// carries its own location.
func (r *Report) Fixf(line int, format string, args ...any) {
	r.Add(Diagnostic{Kind: KindFix, Line: line, Message: fmt.Sprintf(format, args...)})
}

// Items returns the diagnostics in emission order. The slice must not be
// modified.
func (r *Report) Items() []Diagnostic {
	return r.items
}

// Len returns the number of diagnostics.
func (r *Report) Len() int {
	return len(r.items)
}

// HasErrors reports whether any structural error was recorded. Warnings do
// not count.
func (r *Report) HasErrors() bool {
	for _, d := range r.items {
		if d.Kind == KindError {
			return true
		}
	}
	return false
}

// Errors returns errors and warnings, rendered, in emission order.
func (r *Report) Errors() []string {
	return r.render(func(k Kind) bool { return k != KindFix })
}

// Fixes returns the applied fixes, rendered, in emission order.
func (r *Report) Fixes() []string {
	return r.render(func(k Kind) bool { return k == KindFix })
}

// Strings returns all diagnostics of kind k, rendered.
func (r *Report) Strings(k Kind) []string {
	return r.render(func(kind Kind) bool { return kind == k })
}

func (r *Report) render(keep func(Kind) bool) []string {
	out := []string{}
	for _, d := range r.items {
		if keep(d.Kind) {
			out = append(out, d.String())
		}
	}
	return out
}
