package rules

import (
	"github.com/donaldgifford/pipefmt/internal/rules/format"
)

func init() {
	// Per-line rules. Normalization runs before closing braces are split
	// from text; the quote repairs run after.
	RegisterLineRule(&format.NormalizeWhitespace{})
	RegisterLineRule(&format.QuoteValues{})
	RegisterLineRule(&format.CloseQuotes{})

	// Post-passes over the assembled output. Validation must see the
	// final text, so it runs last.
	RegisterPostRule(&format.WrapLines{})
	RegisterPostRule(&format.BlankLines{})
	RegisterPostRule(&format.RequiredBlocks{})
}
