package loosecss

import (
	"strings"
	"testing"

	"github.com/jmylchreest/loosecss/pkg/cleaner"
)

// Compile-time check that Cleaner satisfies the shared interface.
var _ cleaner.Cleaner = (*Cleaner)(nil)

func newDefault(t *testing.T) *Cleaner {
	t.Helper()
	c, err := New(nil)
	if err != nil {
		t.Fatalf("New(nil) error = %v", err)
	}
	return c
}

func TestStrip_RemovesLooseCSS(t *testing.T) {
	c := newDefault(t)

	before := "<!DOCTYPE html>\n<html><head><title>x</title></head>\n<body class=\"x\">"
	span := "body.theme-light { color: red; }\n"
	after := "<div>content</div>\n</body></html>\n"
	input := before + span + after

	result := c.Strip(input)

	if !result.Changed {
		t.Fatalf("expected Changed, got reason %q", result.Reason)
	}
	if want := before + "\n" + after; result.Content != want {
		t.Errorf("Content = %q, want %q", result.Content, want)
	}
	if result.BodyTagEnd != len(before) {
		t.Errorf("BodyTagEnd = %d, want %d", result.BodyTagEnd, len(before))
	}
	if result.FirstElement != len(before)+len(span) {
		t.Errorf("FirstElement = %d, want %d", result.FirstElement, len(before)+len(span))
	}
	if result.BytesRemoved != len(span)-1 {
		t.Errorf("BytesRemoved = %d, want %d", result.BytesRemoved, len(span)-1)
	}
}

func TestStrip_NoOps(t *testing.T) {
	c := newDefault(t)

	tests := []struct {
		name   string
		input  string
		reason Reason
	}{
		{
			name:   "no_body_tag",
			input:  "<html><head></head><div>body.theme-light {}</div></html>",
			reason: ReasonNoBody,
		},
		{
			name:   "uppercase_body_is_not_recognized",
			input:  "<BODY>\nbody { margin: 0 }\n<div></div>",
			reason: ReasonNoBody,
		},
		{
			name:   "whitespace_only_span",
			input:  "<body>\n   \n\t<div>x</div>",
			reason: ReasonNoLetters,
		},
		{
			name:   "digits_and_braces_only",
			input:  "<body>\n{ 0; }\n<div>x</div>",
			reason: ReasonNoLetters,
		},
		{
			name:   "prose_without_selectors",
			input:  "<body>\nTODO remember to move styles\n<div>x</div>",
			reason: ReasonNoCSSMatch,
		},
		{
			name:   "selector_not_at_line_start",
			input:  "<body>\nsee .card for details\n<div>x</div>",
			reason: ReasonNoCSSMatch,
		},
		{
			name:   "no_marker_after_body",
			input:  "<body>\nbody.theme-light { color: red; }\n<p>text</p></body>",
			reason: ReasonNoElement,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := c.Strip(tt.input)
			if result.Changed {
				t.Fatal("expected no change")
			}
			if result.Content != tt.input {
				t.Errorf("Content modified: %q", result.Content)
			}
			if result.Reason != tt.reason {
				t.Errorf("Reason = %q, want %q", result.Reason, tt.reason)
			}
		})
	}
}

func TestStrip_EachDefaultPattern(t *testing.T) {
	c := newDefault(t)

	lines := []string{
		"body.theme-light .x { color: #000; }",
		".custom-scrollbar::-webkit-scrollbar { width: 6px; }",
		"#modal-root { display: none; }",
		"@media (max-width: 600px) { .a { b: c } }",
		"html { font-size: 14px; }",
		"html{ font-size: 14px; }",
		"body { margin: 0; }",
		".nav-tab.active { color: blue; }",
		".card { padding: 1rem; }",
		".topbar { height: 60px; }",
	}

	for _, line := range lines {
		t.Run(line, func(t *testing.T) {
			input := "<body>\n    " + line + "\n<main></main>"
			result := c.Strip(input)
			if !result.Changed {
				t.Fatalf("expected %q to be stripped, reason %q", line, result.Reason)
			}
			if result.Content != "<body>\n<main></main>" {
				t.Errorf("Content = %q", result.Content)
			}
		})
	}
}

func TestStrip_MatchOnLaterLine(t *testing.T) {
	c := newDefault(t)

	input := "<body>\n  color: red;\n}\n.card { margin: 0 }\n<section>s</section>"
	result := c.Strip(input)
	if !result.Changed {
		t.Fatalf("expected change, reason %q", result.Reason)
	}
	if result.Content != "<body>\n<section>s</section>" {
		t.Errorf("Content = %q", result.Content)
	}
}

func TestStrip_EarliestMarkerWins(t *testing.T) {
	c := newDefault(t)

	// <script> appears before <div> even though <div> is listed first.
	input := "<body>\n.topbar { x: y }\n<script>1</script><div></div>"
	result := c.Strip(input)
	if !result.Changed {
		t.Fatal("expected change")
	}
	if !strings.HasPrefix(result.Content[result.BodyTagEnd:], "\n<script>") {
		t.Errorf("Content = %q", result.Content)
	}
}

func TestStrip_UnknownElementIsPartOfSpan(t *testing.T) {
	c := newDefault(t)

	input := "<body>\n.card { a: b }\n<p>lost paragraph</p>\n<div></div>"
	result := c.Strip(input)
	if !result.Changed {
		t.Fatal("expected change")
	}
	if strings.Contains(result.Content, "lost paragraph") {
		t.Errorf("expected unlisted element to be removed with the span, got %q", result.Content)
	}
}

func TestStrip_QuotedGreaterThanEndsTagEarly(t *testing.T) {
	c := newDefault(t)

	input := `<body data-x="a>b">` + "\n<div></div>"
	result := c.Strip(input)
	if result.BodyTagEnd != strings.Index(input, ">")+1 {
		t.Errorf("BodyTagEnd = %d, want first '>' + 1", result.BodyTagEnd)
	}
	// Span is `b">` plus a newline: it has a letter but no selector.
	if result.Reason != ReasonNoCSSMatch {
		t.Errorf("Reason = %q, want %q", result.Reason, ReasonNoCSSMatch)
	}
}

func TestStrip_UnclosedBodyTagFallsBackToStart(t *testing.T) {
	c := newDefault(t)

	input := "<body"
	result := c.Strip(input)
	if result.BodyTagEnd != 0 {
		t.Errorf("BodyTagEnd = %d, want 0", result.BodyTagEnd)
	}
	if result.Reason != ReasonNoElement {
		t.Errorf("Reason = %q, want %q", result.Reason, ReasonNoElement)
	}
}

func TestStrip_Idempotent(t *testing.T) {
	c := newDefault(t)

	input := "<html><body class=\"dark\">\nbody.theme-light { color: red; }\n.card { x: y }\n<!-- app -->\n<div></div></body></html>"
	first := c.Strip(input)
	if !first.Changed {
		t.Fatal("first pass should change content")
	}

	second := c.Strip(first.Content)
	if second.Changed {
		t.Fatal("second pass should be a no-op")
	}
	if second.Content != first.Content {
		t.Error("second pass modified content")
	}
	if second.Reason != ReasonNoLetters {
		t.Errorf("Reason = %q, want %q", second.Reason, ReasonNoLetters)
	}
}

func TestClean_ReturnsStrippedContent(t *testing.T) {
	c := newDefault(t)

	got, err := c.Clean("<body>.card{}\n<div></div>")
	if err != nil {
		t.Fatalf("Clean() error = %v", err)
	}
	if got != "<body>\n<div></div>" {
		t.Errorf("Clean() = %q", got)
	}

	unchanged := "<p>no body</p>"
	got, err = c.Clean(unchanged)
	if err != nil {
		t.Fatalf("Clean() error = %v", err)
	}
	if got != unchanged {
		t.Errorf("Clean() = %q, want input unchanged", got)
	}
}

func TestCleaner_Name(t *testing.T) {
	if got := newDefault(t).Name(); got != "loosecss" {
		t.Errorf("Name() = %q, want %q", got, "loosecss")
	}
}

func TestLooksLikeCSS(t *testing.T) {
	c := newDefault(t)

	tests := []struct {
		text string
		want bool
	}{
		{"@media print { }", true},
		{"\n\n   .nav-tab { }", true},
		{"html   {", true},
		{"htmlx {", false},
		{"a .card", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := c.LooksLikeCSS(tt.text); got != tt.want {
			t.Errorf("LooksLikeCSS(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}
