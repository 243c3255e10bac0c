package loosecss

import (
	"fmt"
	"regexp"
	"strings"
)

const bodyMarker = "<body"

// Reason explains why Strip left a document alone.
type Reason string

const (
	ReasonNone       Reason = ""
	ReasonNoBody     Reason = "no_body"
	ReasonNoElement  Reason = "no_element"
	ReasonNoLetters  Reason = "no_letters"
	ReasonNoCSSMatch Reason = "no_css_match"
)

// Result is the outcome of a single Strip call.
type Result struct {
	Content string `json:"-"`
	Changed bool   `json:"changed"`
	Reason  Reason `json:"reason,omitempty"`

	// Offsets into the original content. FirstElement equals the input
	// length when no marker was found.
	BodyTagEnd   int `json:"body_tag_end"`
	FirstElement int `json:"first_element"`

	// BytesRemoved accounts for the single newline that replaces the span.
	BytesRemoved int `json:"bytes_removed"`
}

// Cleaner strips loose CSS from HTML text.
// It implements the cleaner.Cleaner interface.
type Cleaner struct {
	detector *regexp.Regexp
	markers  []string
}

// New creates a Cleaner from the given configuration.
// If config is nil, DefaultConfig() is used.
func New(config *Config) (*Cleaner, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if len(config.Markers) == 0 {
		return nil, fmt.Errorf("no element markers configured")
	}
	detector, err := compileDetector(config.Patterns)
	if err != nil {
		return nil, err
	}
	return &Cleaner{
		detector: detector,
		markers:  append([]string(nil), config.Markers...),
	}, nil
}

// MustNew is like New but panics if the configuration does not compile.
func MustNew(config *Config) *Cleaner {
	c, err := New(config)
	if err != nil {
		panic(err)
	}
	return c
}

// Name returns the cleaner name for logging.
func (c *Cleaner) Name() string {
	return "loosecss"
}

// Clean returns html with the loose CSS span removed, or html itself when
// there is nothing to remove. It never fails.
func (c *Cleaner) Clean(html string) (string, error) {
	return c.Strip(html).Content, nil
}

// Strip locates the candidate span after the opening body tag and removes
// it if it looks like CSS.
func (c *Cleaner) Strip(content string) *Result {
	result := &Result{Content: content, FirstElement: len(content)}

	bodyStart := strings.Index(content, bodyMarker)
	if bodyStart == -1 {
		result.Reason = ReasonNoBody
		return result
	}

	// A '>' inside a quoted attribute ends the tag early. Without any '>'
	// the tag end falls back to offset 0.
	bodyTagEnd := 0
	if i := strings.IndexByte(content[bodyStart:], '>'); i != -1 {
		bodyTagEnd = bodyStart + i + 1
	}
	result.BodyTagEnd = bodyTagEnd

	firstElement := c.firstElement(content, bodyTagEnd)
	result.FirstElement = firstElement
	if firstElement >= len(content) {
		result.Reason = ReasonNoElement
		return result
	}

	span := content[bodyTagEnd:firstElement]
	if !hasASCIILetter(span) {
		result.Reason = ReasonNoLetters
		return result
	}
	if !c.LooksLikeCSS(span) {
		result.Reason = ReasonNoCSSMatch
		return result
	}

	result.Content = content[:bodyTagEnd] + "\n" + content[firstElement:]
	result.Changed = true
	result.BytesRemoved = len(span) - 1
	return result
}

// LooksLikeCSS reports whether any line of text starts with a known selector.
func (c *Cleaner) LooksLikeCSS(text string) bool {
	return c.detector.MatchString(text)
}

// firstElement returns the earliest marker position at or after from,
// or len(content) if none occurs.
func (c *Cleaner) firstElement(content string, from int) int {
	first := len(content)
	tail := content[from:]
	for _, marker := range c.markers {
		if i := strings.Index(tail, marker); i != -1 && from+i < first {
			first = from + i
		}
	}
	return first
}

func hasASCIILetter(s string) bool {
	for i := 0; i < len(s); i++ {
		b := s[i]
		if ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z') {
			return true
		}
	}
	return false
}
