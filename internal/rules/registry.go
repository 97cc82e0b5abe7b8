// Package rules manages registration of formatting rules.
package rules

import (
	"github.com/donaldgifford/pipefmt/internal/formatter"
)

var (
	lineRules []formatter.LineRule
	postRules []formatter.PostRule
)

// RegisterLineRule adds a per-line rule to the registry.
// Rules are applied in the order they are registered within their phase.
func RegisterLineRule(r formatter.LineRule) {
	lineRules = append(lineRules, r)
}

// RegisterPostRule adds a whole-document rule to the registry.
// Rules are applied in the order they are registered.
func RegisterPostRule(r formatter.PostRule) {
	postRules = append(postRules, r)
}

// LineRules returns all registered per-line rules in execution order.
func LineRules() []formatter.LineRule {
	return lineRules
}

// PostRules returns all registered whole-document rules in execution order.
func PostRules() []formatter.PostRule {
	return postRules
}
