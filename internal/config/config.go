// Package config defines the configuration types and defaults for pipefmt.
package config

import (
	"errors"
	"fmt"
)

// Color modes.
const (
	ColorAuto = "auto"
	ColorOn   = "on"
	ColorOff  = "off"
)

// Report output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config is the top-level configuration.
type Config struct {
	Formatter FormatterConfig `yaml:"formatter" toml:"formatter"`
	Report    ReportConfig    `yaml:"report" toml:"report"`
}

// FormatterConfig holds all formatter settings. Every rule can be switched
// off individually; all are on by default.
type FormatterConfig struct {
	IndentWidth         int      `yaml:"indent_width" toml:"indent_width"`
	MaxLineLength       int      `yaml:"max_line_length" toml:"max_line_length"`
	NormalizeWhitespace bool     `yaml:"normalize_whitespace" toml:"normalize_whitespace"`
	SplitBraceText      bool     `yaml:"split_brace_text" toml:"split_brace_text"`
	QuoteValues         bool     `yaml:"quote_values" toml:"quote_values"`
	CloseQuotes         bool     `yaml:"close_quotes" toml:"close_quotes"`
	RepairBraces        bool     `yaml:"repair_braces" toml:"repair_braces"`
	CollapseBlankLines  bool     `yaml:"collapse_blank_lines" toml:"collapse_blank_lines"`
	RequiredBlocks      []string `yaml:"required_blocks" toml:"required_blocks"`
}

// ReportConfig controls how diagnostics are presented by the CLI.
type ReportConfig struct {
	Color     string `yaml:"color" toml:"color"`
	Format    string `yaml:"format" toml:"format"`
	ShowFixes bool   `yaml:"show_fixes" toml:"show_fixes"`
}

// DefaultConfig returns a Config with all default values.
func DefaultConfig() *Config {
	return &Config{
		Formatter: FormatterConfig{
			IndentWidth:         4,
			MaxLineLength:       100,
			NormalizeWhitespace: true,
			SplitBraceText:      true,
			QuoteValues:         true,
			CloseQuotes:         true,
			RepairBraces:        true,
			CollapseBlankLines:  true,
			RequiredBlocks:      []string{"input", "output", "filter"},
		},
		Report: ReportConfig{
			Color:     ColorAuto,
			Format:    FormatText,
			ShowFixes: true,
		},
	}
}

// Validate checks the configuration for values the formatter cannot use.
func (c *Config) Validate() error {
	var errs []error

	if c.Formatter.IndentWidth < 1 {
		errs = append(errs, fmt.Errorf("formatter.indent_width must be at least 1, got %d", c.Formatter.IndentWidth))
	}
	if c.Formatter.MaxLineLength < 0 {
		errs = append(errs, fmt.Errorf("formatter.max_line_length must not be negative, got %d", c.Formatter.MaxLineLength))
	}
	for i, name := range c.Formatter.RequiredBlocks {
		if name == "" {
			errs = append(errs, fmt.Errorf("formatter.required_blocks[%d] is empty", i))
		}
	}

	switch c.Report.Color {
	case ColorAuto, ColorOn, ColorOff:
	default:
		errs = append(errs, fmt.Errorf("report.color must be auto, on or off, got %q", c.Report.Color))
	}
	switch c.Report.Format {
	case FormatText, FormatJSON:
	default:
		errs = append(errs, fmt.Errorf("report.format must be text or json, got %q", c.Report.Format))
	}

	return errors.Join(errs...)
}
