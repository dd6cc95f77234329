package docmodel

import (
	"html"
	"regexp"
)

// Selector is a queryable node of a parsed document: an element, the document
// root, or a plain text value such as a text node or attribute value.
// Results are returned in document order and must be deterministic for a
// given parsed tree.
type Selector interface {
	// XPath selects nodes matching expr, relative to this node.
	XPath(expr string) (SelectorList, error)

	// CSS selects nodes matching selector, including this node itself.
	// Implementations support the ::text and ::attr(name) pseudo-elements.
	CSS(selector string) (SelectorList, error)

	// Re applies re to the serialized node and returns the matches.
	// See ExtractRegex for the match semantics.
	Re(re *regexp.Regexp) []string

	// Get serializes the node: markup for elements, the value for text.
	Get() string
}

// Parser turns raw document text into a selection root.
type Parser interface {
	Parse(text string) (Selector, error)
}

// SelectorList is an ordered selection result.
type SelectorList []Selector

// First returns the first selected node.
func (l SelectorList) First() (Selector, bool) {
	if len(l) == 0 {
		return nil, false
	}
	return l[0], true
}

// Get returns the serialized first node.
func (l SelectorList) Get() (string, bool) {
	if len(l) == 0 {
		return "", false
	}
	return l[0].Get(), true
}

// GetAll returns every node serialized, in document order.
func (l SelectorList) GetAll() []string {
	out := make([]string, 0, len(l))
	for _, s := range l {
		out = append(out, s.Get())
	}
	return out
}

// Re applies re to every node and concatenates the matches.
func (l SelectorList) Re(re *regexp.Regexp) []string {
	var out []string
	for _, s := range l {
		out = append(out, s.Re(re)...)
	}
	return out
}

// Text is a Selector over a plain string value. Text nodes, attribute values
// and regex matches are represented as Text.
type Text string

// Ensure Text implements Selector at compile time.
var _ Selector = Text("")

// XPath selects nothing from a text value.
func (t Text) XPath(expr string) (SelectorList, error) {
	return SelectorList{}, nil
}

// CSS selects nothing from a text value.
func (t Text) CSS(selector string) (SelectorList, error) {
	return SelectorList{}, nil
}

// Re applies re to the text.
func (t Text) Re(re *regexp.Regexp) []string {
	return ExtractRegex(re, string(t))
}

// Get returns the text.
func (t Text) Get() string {
	return string(t)
}

// ExtractRegex returns the matches of re in text. If re has a group named
// "extract", only its first match is returned. Otherwise every match
// contributes its capture groups, or the whole match when re has none.
// HTML entities in the results are unescaped.
func ExtractRegex(re *regexp.Regexp, text string) []string {
	var out []string
	if idx := re.SubexpIndex("extract"); idx > 0 {
		m := re.FindStringSubmatchIndex(text)
		if m != nil && m[2*idx] >= 0 {
			out = append(out, text[m[2*idx]:m[2*idx+1]])
		}
	} else {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			if len(m) == 1 {
				out = append(out, m[0])
				continue
			}
			out = append(out, m[1:]...)
		}
	}

	for i, s := range out {
		out[i] = html.UnescapeString(s)
	}
	return out
}
