package format

import (
	"regexp"

	"github.com/donaldgifford/pipefmt/internal/config"
	"github.com/donaldgifford/pipefmt/internal/diag"
	"github.com/donaldgifford/pipefmt/internal/formatter"
)

const (
	essentialHint = "Pipeline may be missing essential configuration as per " +
		"https://logstash-kafka.readthedocs.io/en/stable/configuration/"
	filterHint = "Consider adding filters for processing events as per " +
		"https://www.elastic.co/docs/reference/logstash/config-examples"
)

// blockHints completes the warning for well-known sections.
var blockHints = map[string]string{
	"input":  essentialHint,
	"output": essentialHint,
	"filter": filterHint,
}

// RequiredBlocks warns about top-level sections missing from the final
// text. It never modifies lines.
type RequiredBlocks struct{}

// Name returns the config key for this rule.
func (*RequiredBlocks) Name() string {
	return "required_blocks"
}

// Format checks for each configured block in order.
func (*RequiredBlocks) Format(lines []string, cfg *config.FormatterConfig, rep *diag.Report) []string {
	text := formatter.Write(lines)
	for _, name := range cfg.RequiredBlocks {
		re := regexp.MustCompile(`(?m)^\s*` + regexp.QuoteMeta(name) + `\s*\{`)
		if re.MatchString(text) {
			continue
		}
		if hint, ok := blockHints[name]; ok {
			rep.Warnf("No %s block found. %s", name, hint)
		} else {
			rep.Warnf("No %s block found.", name)
		}
	}
	return lines
}
