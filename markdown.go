package docmodel

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown.
	Convert(html string) (string, error)
}

// MarkdownClean returns a clean function converting the first selected node
// to Markdown. An empty selection yields nil.
func MarkdownClean(c Converter) CleanFunc {
	return func(_ *Fragment, sel SelectorList) (any, error) {
		html, ok := sel.Get()
		if !ok {
			return nil, nil
		}
		return c.Convert(html)
	}
}

// MarkdownAllClean returns a clean function converting every selected node
// to Markdown. Blank nodes are dropped.
func MarkdownAllClean(c Converter) CleanFunc {
	return func(_ *Fragment, sel SelectorList) (any, error) {
		out := make([]string, 0, len(sel))
		for _, html := range sel.GetAll() {
			if strings.TrimSpace(html) == "" {
				continue
			}
			md, err := c.Convert(html)
			if err != nil {
				return nil, err
			}
			out = append(out, md)
		}
		return out, nil
	}
}

// OutlineClean returns a clean function converting the first selected node
// to Markdown and yielding its headings as records with level, title and
// anchor keys. An empty selection yields nil.
func OutlineClean(c Converter) CleanFunc {
	return func(_ *Fragment, sel SelectorList) (any, error) {
		html, ok := sel.Get()
		if !ok {
			return nil, nil
		}
		md, err := c.Convert(html)
		if err != nil {
			return nil, err
		}
		headings := Headings(md)
		out := make([]Record, len(headings))
		for i, h := range headings {
			out[i] = Record{
				{Key: "level", Value: h.Level},
				{Key: "title", Value: h.Title},
				{Key: "anchor", Value: h.Anchor},
			}
		}
		return out, nil
	}
}

// Heading is an ATX heading of a Markdown document.
type Heading struct {
	Level  int
	Title  string
	Anchor string
}

var (
	headingRe   = regexp.MustCompile(`(?m)^(#{1,6})\s+(.+)$`)
	codeBlockRe = regexp.MustCompile("(?s)```.*?```")
)

// Headings returns the H1-H6 headings of markdown in document order, ignoring
// fenced code blocks. Repeated anchors get numeric suffixes.
func Headings(markdown string) []Heading {
	matches := headingRe.FindAllStringSubmatch(codeBlockRe.ReplaceAllString(markdown, ""), -1)
	if len(matches) == 0 {
		return nil
	}

	headings := make([]Heading, 0, len(matches))
	seen := make(map[string]int)
	for _, m := range matches {
		title := strings.TrimSpace(m[2])
		anchor := anchorFor(title)
		if n := seen[anchor]; n > 0 {
			seen[anchor]++
			anchor += "-" + strconv.Itoa(n)
		} else {
			seen[anchor] = 1
		}
		headings = append(headings, Heading{Level: len(m[1]), Title: title, Anchor: anchor})
	}
	return headings
}

// anchorFor lowercases title, joins words with hyphens and drops other
// characters.
func anchorFor(title string) string {
	var sb strings.Builder
	hyphen := false
	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			sb.WriteRune(r)
			hyphen = false
		case (unicode.IsSpace(r) || r == '-') && !hyphen && sb.Len() > 0:
			sb.WriteRune('-')
			hyphen = true
		}
	}
	return strings.TrimSuffix(sb.String(), "-")
}
