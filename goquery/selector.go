// Package goquery implements docmodel.Parser and docmodel.Selector for HTML
// using goquery. CSS selectors are matched with cascadia, which goquery is
// built on, and XPath expressions with antchfx/xpath.
package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docmodel"
	"golang.org/x/net/html"
)

// Ensure Parser implements docmodel.Parser at compile time.
var _ docmodel.Parser = (*Parser)(nil)

// Parser parses HTML documents.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse parses text as HTML and returns the document root.
func (p *Parser) Parse(text string) (docmodel.Selector, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return nil, docmodel.Errorf(docmodel.EINVALID, "failed to parse HTML: %v", err)
	}
	return NewSelector(doc.Nodes[0]), nil
}

// Ensure Selector implements docmodel.Selector at compile time.
var _ docmodel.Selector = (*Selector)(nil)

// Selector is a node of a parsed HTML tree.
type Selector struct {
	node *html.Node
}

// NewSelector wraps an HTML node.
func NewSelector(n *html.Node) *Selector {
	return &Selector{node: n}
}

// Node returns the wrapped HTML node.
func (s *Selector) Node() *html.Node {
	return s.node
}

// XPath selects nodes matching expr. Relative paths start at this node and
// absolute paths at the document root, also within a sub-fragment. Attribute
// and text results are returned as docmodel.Text.
func (s *Selector) XPath(expr string) (docmodel.SelectorList, error) {
	return selectXPath(s.node, expr)
}

// CSS selects nodes matching selector, starting with this node itself.
// The ::text and ::attr(name) pseudo-elements select text children and
// attribute values.
func (s *Selector) CSS(selector string) (docmodel.SelectorList, error) {
	return selectCSS(s.node, selector)
}

// Re applies re to the serialized node.
func (s *Selector) Re(re *regexp.Regexp) []string {
	return docmodel.ExtractRegex(re, s.Get())
}

// Get renders the node as HTML. Void elements have no closing slash.
func (s *Selector) Get() string {
	var b strings.Builder
	if err := render(&b, s.node); err != nil {
		return ""
	}
	return b.String()
}

// Text returns the combined text of the node and its descendants.
func (s *Selector) Text() string {
	return goquery.NewDocumentFromNode(s.node).Text()
}
