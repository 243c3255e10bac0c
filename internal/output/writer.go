// Package output writes machine-readable run reports.
package output

import (
	"fmt"
	"io"
	"strings"
)

// Format represents output format types.
type Format string

const (
	FormatJSON  Format = "json"
	FormatJSONL Format = "jsonl"
	FormatYAML  Format = "yaml"
)

// Streaming reports whether the format emits one record per Write instead of
// a single document on Close.
func (f Format) Streaming() bool {
	return f == FormatJSONL
}

// ParseFormat maps a flag value to a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatJSONL, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", s)
	}
}

// Writer serializes report records.
type Writer interface {
	// Write adds one record. Document formats buffer it until Close.
	Write(data any) error

	// Close emits any buffered document and flushes the destination.
	Close() error
}

// NewWriter creates a writer for the specified format.
func NewWriter(w io.Writer, format Format) (Writer, error) {
	switch format {
	case FormatJSON:
		return NewJSONWriter(w, "  "), nil
	case FormatJSONL:
		return NewJSONLWriter(w), nil
	case FormatYAML:
		return NewYAMLWriter(w), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// document buffers records and renders one item bare, several as a list.
type document struct {
	items []any
}

func (d *document) Write(data any) error {
	d.items = append(d.items, data)
	return nil
}

func (d *document) payload() any {
	if len(d.items) == 1 {
		return d.items[0]
	}
	return d.items
}
