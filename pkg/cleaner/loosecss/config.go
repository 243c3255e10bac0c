// Package loosecss removes CSS rules that were left directly in the document
// body instead of inside a <style> block.
//
// Detection is textual. The cleaner looks at the span between the opening
// <body> tag and the first known element, and drops it when it looks like a
// run of selectors. No DOM is built and the CSS is never parsed.
package loosecss

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultPatterns are the selector and at-rule prefixes that mark a line as
// loose CSS. Each entry is a regular expression alternative.
var DefaultPatterns = []string{
	`body\.theme-light`,
	`\.custom-scrollbar`,
	`#modal`,
	`@media`,
	`html\s*\{`,
	`body\s*\{`,
	`\.nav-tab`,
	`\.card`,
	`\.topbar`,
}

// DefaultMarkers are the tag openings treated as the first real content
// after <body>. Anything else is scanned over as part of the candidate span.
var DefaultMarkers = []string{
	"<!--",
	"<div",
	"<script",
	"<nav",
	"<header",
	"<main",
	"<section",
}

// Config defines what the cleaner considers loose CSS and where the span ends.
type Config struct {
	// Patterns are regular expression alternatives matched at line starts
	// (after optional whitespace) inside the candidate span.
	Patterns []string `json:"patterns" yaml:"patterns"`

	// Markers are literal substrings; the earliest one after the body tag
	// closes the candidate span.
	Markers []string `json:"markers" yaml:"markers"`
}

// DefaultConfig returns the pattern and marker lists of the original cleanup.
func DefaultConfig() *Config {
	return &Config{
		Patterns: append([]string(nil), DefaultPatterns...),
		Markers:  append([]string(nil), DefaultMarkers...),
	}
}

// compileDetector joins the alternatives into one multi-line pattern.
func compileDetector(patterns []string) (*regexp.Regexp, error) {
	if len(patterns) == 0 {
		return nil, fmt.Errorf("no detector patterns configured")
	}
	expr := `(?m)^\s*(` + strings.Join(patterns, "|") + `)`
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("compiling detector pattern: %w", err)
	}
	return re, nil
}
