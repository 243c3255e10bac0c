package output

import (
	"bufio"
	"encoding/json"
	"io"
)

// JSONWriter writes a single indented JSON document on Close.
type JSONWriter struct {
	document
	w      *bufio.Writer
	indent string
}

// NewJSONWriter creates a JSON writer. An empty indent produces compact output.
func NewJSONWriter(w io.Writer, indent string) *JSONWriter {
	return &JSONWriter{w: bufio.NewWriter(w), indent: indent}
}

// Close encodes the buffered records and flushes.
func (w *JSONWriter) Close() error {
	enc := json.NewEncoder(w.w)
	if w.indent != "" {
		enc.SetIndent("", w.indent)
	}
	if err := enc.Encode(w.payload()); err != nil {
		return err
	}
	return w.w.Flush()
}

// JSONLWriter writes newline-delimited JSON (JSONL).
type JSONLWriter struct {
	w   *bufio.Writer
	enc *json.Encoder
}

// NewJSONLWriter creates a JSONL writer.
func NewJSONLWriter(w io.Writer) *JSONLWriter {
	bw := bufio.NewWriter(w)
	return &JSONLWriter{w: bw, enc: json.NewEncoder(bw)}
}

// Write emits one record as a JSON line.
func (w *JSONLWriter) Write(data any) error {
	if err := w.enc.Encode(data); err != nil {
		return err
	}
	return w.w.Flush()
}

// Close flushes the writer.
func (w *JSONLWriter) Close() error {
	return w.w.Flush()
}
