// Package markup parses the inline color tags used in MBE string cells.
//
// A tag has the form {fc(RRGGBB)text}. Parse splits a string into spans so a
// spreadsheet can render the tagged text in color while the literal tag
// characters stay in the surrounding plain spans. Concatenating the span
// texts always yields the original string.
package markup

import (
	"regexp"
	"strings"
)

var colorTag = regexp.MustCompile(`(?s)\{fc\(([a-fA-F0-9]{6})\)(.*?)\}`)

// Span is a run of text with an optional RRGGBB color.
type Span struct {
	Text  string
	Color string
}

// HasColor reports whether the span carries a color.
func (s Span) HasColor() bool {
	return s.Color != ""
}

// HasTags reports whether s contains at least one color tag.
func HasTags(s string) bool {
	return colorTag.MatchString(s)
}

// Parse splits s into plain and colored spans. A string without tags is
// returned as a single plain span. Empty colored text produces no span.
func Parse(s string) []Span {
	matches := colorTag.FindAllStringSubmatchIndex(s, -1)
	if len(matches) == 0 {
		return []Span{{Text: s}}
	}

	spans := make([]Span, 0, 2*len(matches)+1)
	last := 0
	for _, m := range matches {
		colorStart, colorEnd := m[2], m[3]
		innerStart, innerEnd := m[4], m[5]

		if innerStart > last {
			spans = append(spans, Span{Text: s[last:innerStart]})
		}
		if innerEnd > innerStart {
			spans = append(spans, Span{
				Text:  s[innerStart:innerEnd],
				Color: s[colorStart:colorEnd],
			})
		}
		last = innerEnd
	}
	if last < len(s) {
		spans = append(spans, Span{Text: s[last:]})
	}
	return spans
}

// Plain concatenates span texts, restoring the tagged source string.
func Plain(spans []Span) string {
	var b strings.Builder
	for _, sp := range spans {
		b.WriteString(sp.Text)
	}
	return b.String()
}

// Colored reports whether any span carries a color.
func Colored(spans []Span) bool {
	for _, sp := range spans {
		if sp.HasColor() {
			return true
		}
	}
	return false
}
