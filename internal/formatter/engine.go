package formatter

import (
	"regexp"
	"strings"

	"github.com/donaldgifford/pipefmt/internal/config"
	"github.com/donaldgifford/pipefmt/internal/diag"
	"github.com/donaldgifford/pipefmt/internal/document"
)

// braceTextRe matches closing braces glued to the start of a new block,
// e.g. "}tcp {" or "}} else {".
var braceTextRe = regexp.MustCompile(`^(\}+)\s*([\p{L}\p{N}_]+.*\{.*)$`)

// Result is the outcome of formatting a single document.
type Result struct {
	Formatted string
	Report    *diag.Report
}

// Errors returns structural errors and warnings in detection order.
func (r *Result) Errors() []string {
	return r.Report.Errors()
}

// Fixes returns the applied fixes in detection order.
func (r *Result) Fixes() []string {
	return r.Report.Fixes()
}

// Run formats doc. Each source line passes through the PhaseNormalize
// rules, the brace-text splitter, the PhaseRepair rules and the
// brace/indent tracker; the resulting output lines are then piped through
// postRules in order.
//
// Run holds no state between calls and is safe for concurrent use as long
// as the rules are.
func Run(doc *document.Document, cfg *config.FormatterConfig, lineRules []LineRule, postRules []PostRule) *Result {
	s := newScanner(cfg, lineRules, doc.Len())
	for _, line := range doc.Lines {
		s.scanLine(line)
	}
	s.finish()

	lines := s.out
	for _, rule := range postRules {
		lines = rule.Format(lines, cfg, s.rep)
	}

	return &Result{Formatted: Write(lines), Report: s.rep}
}

// scanner carries the per-call formatting state. The current indent level
// is len(stack).
type scanner struct {
	cfg       *config.FormatterConfig
	normalize []LineRule
	repair    []LineRule
	rep       *diag.Report
	out       []string

	stack      []int // source line numbers of unmatched '{'.
	quoteOpen  bool
	quoteStart int
}

// newScanner sizes the output for n source lines; splits and brace repairs
// may still grow it.
func newScanner(cfg *config.FormatterConfig, rules []LineRule, n int) *scanner {
	s := &scanner{cfg: cfg, rep: &diag.Report{}, out: make([]string, 0, n)}
	for _, r := range rules {
		switch r.Phase() {
		case PhaseNormalize:
			s.normalize = append(s.normalize, r)
		case PhaseRepair:
			s.repair = append(s.repair, r)
		}
	}
	return s
}

func (s *scanner) scanLine(line document.Line) {
	num := line.Number
	text := s.apply(s.normalize, num, strings.TrimSpace(line.Text))

	if s.cfg.SplitBraceText {
		if m := braceTextRe.FindStringSubmatch(text); m != nil {
			s.rep.Fixf(num, "Split closing brace and text into separate lines")
			s.emit(num, m[1])
			text = document.SpaceOpenBraces(m[2])
		}
	}

	text = s.apply(s.repair, num, text)
	s.trackQuotes(num, text)
	s.emit(num, text)
}

func (s *scanner) apply(rules []LineRule, num int, text string) string {
	for _, r := range rules {
		text = r.FormatLine(num, text, s.cfg, s.rep)
	}
	return text
}

// emit indents text for the current depth and appends it to the output,
// then updates the brace stack. Leading '}' dedent the line itself.
func (s *scanner) emit(num int, text string) {
	leader := document.LeadingBraces(text)
	depth := max(len(s.stack)-leader, 0)
	s.out = append(s.out, strings.Repeat(" ", depth*s.cfg.IndentWidth)+text)

	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '{':
			s.stack = append(s.stack, num)
		case '}':
			s.pop(num)
		}
	}
}

func (s *scanner) pop(num int) {
	if len(s.stack) == 0 {
		s.rep.Errorf(num, "Extra closing brace '}' found.")
		return
	}
	s.stack = s.stack[:len(s.stack)-1]
}

// trackQuotes flips the cross-line quote state whenever a line carries an
// odd number of unescaped double quotes.
func (s *scanner) trackQuotes(num int, text string) {
	if document.CountQuotes(text)%2 == 0 {
		return
	}
	if !s.quoteOpen {
		s.quoteOpen = true
		s.quoteStart = num
		return
	}
	s.quoteOpen = false
	s.quoteStart = 0
}

func (s *scanner) finish() {
	if s.quoteOpen {
		s.rep.Errorf(s.quoteStart, "Multi-line quote block missing closing quote")
	}

	if len(s.stack) == 0 {
		return
	}
	for _, open := range s.stack {
		s.rep.Errorf(open, "Missing closing brace '}' - attempting auto-fix.")
	}
	if !s.cfg.RepairBraces {
		return
	}
	for range s.stack {
		s.closeBlock()
	}
}

// closeBlock appends one '}' to the last output line that has content and
// does not already end a brace, or adds a new line when there is none.
func (s *scanner) closeBlock() {
	for i := len(s.out) - 1; i >= 0; i-- {
		content := strings.TrimSpace(s.out[i])
		if content == "" || strings.HasSuffix(content, "{") || strings.HasSuffix(content, "}") {
			continue
		}
		s.out[i] += "}"
		s.rep.Fixf(0, "Added missing closing brace to line %d", i+1)
		return
	}
	s.out = append(s.out, "}")
	s.rep.Fixf(0, "Added missing closing brace as new line")
}
