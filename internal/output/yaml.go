package output

import (
	"bufio"
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLWriter writes a single YAML document on Close.
type YAMLWriter struct {
	document
	w *bufio.Writer
}

// NewYAMLWriter creates a YAML writer.
func NewYAMLWriter(w io.Writer) *YAMLWriter {
	return &YAMLWriter{w: bufio.NewWriter(w)}
}

// Close encodes the buffered records and flushes.
func (w *YAMLWriter) Close() error {
	enc := yaml.NewEncoder(w.w)
	enc.SetIndent(2)
	if err := enc.Encode(w.payload()); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	return w.w.Flush()
}
