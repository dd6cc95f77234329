// Package etree implements docmodel.Parser and docmodel.Selector for XML
// documents using beevik/etree. XPath support is the etree path subset,
// extended with trailing text() and @attr steps. CSS is not supported.
package etree

import (
	"regexp"
	"strings"
	"sync"

	"github.com/beevik/etree"
	"github.com/fwojciec/docmodel"
)

// Ensure Parser implements docmodel.Parser at compile time.
var _ docmodel.Parser = (*Parser)(nil)

// Parser parses XML documents.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse parses text as XML and returns the document.
func (p *Parser) Parse(text string) (docmodel.Selector, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(text); err != nil {
		return nil, docmodel.Errorf(docmodel.EINVALID, "failed to parse XML: %v", err)
	}
	return &Selector{elem: &doc.Element, doc: doc}, nil
}

// Ensure Selector implements docmodel.Selector at compile time.
var _ docmodel.Selector = (*Selector)(nil)

// Selector is an element, or the document, of a parsed XML tree.
type Selector struct {
	elem *etree.Element
	doc  *etree.Document
}

// NewSelector wraps an XML element.
func NewSelector(e *etree.Element) *Selector {
	return &Selector{elem: e}
}

// Element returns the wrapped element.
func (s *Selector) Element() *etree.Element {
	return s.elem
}

// valueStepRe splits a trailing text() or @attr step off a path.
var valueStepRe = regexp.MustCompile(`^(?:(.*)/)?(text\(\)|@([\w:.-]+))$`)

// pathQuery is a compiled etree path with an optional value step.
type pathQuery struct {
	path etree.Path
	text bool
	attr string
}

var pathCache sync.Map

func compilePath(expr string) (*pathQuery, error) {
	if v, ok := pathCache.Load(expr); ok {
		return v.(*pathQuery), nil
	}

	q := &pathQuery{}
	base := expr
	if m := valueStepRe.FindStringSubmatch(expr); m != nil {
		base = m[1]
		if m[2] == "text()" {
			q.text = true
		} else {
			q.attr = m[3]
		}
		if base == "" {
			base = "."
		} else if base == "/" || strings.HasSuffix(base, "/") {
			base += "*"
		}
	}

	path, err := etree.CompilePath(base)
	if err != nil {
		return nil, docmodel.Errorf(docmodel.EINVALID, "invalid xpath %q: %v", expr, err)
	}
	q.path = path
	pathCache.Store(expr, q)
	return q, nil
}

// XPath selects elements matching the etree path expr. A trailing text()
// step selects non-blank text children; a trailing @name step selects
// attribute values.
func (s *Selector) XPath(expr string) (docmodel.SelectorList, error) {
	q, err := compilePath(expr)
	if err != nil {
		return nil, err
	}

	out := docmodel.SelectorList{}
	for _, e := range s.elem.FindElementsPath(q.path) {
		switch {
		case q.text:
			for _, tok := range e.Child {
				if cd, ok := tok.(*etree.CharData); ok && !cd.IsWhitespace() {
					out = append(out, docmodel.Text(cd.Data))
				}
			}
		case q.attr != "":
			if a := e.SelectAttr(q.attr); a != nil {
				out = append(out, docmodel.Text(a.Value))
			}
		default:
			out = append(out, NewSelector(e))
		}
	}
	return out, nil
}

// CSS is not supported for XML documents.
func (s *Selector) CSS(selector string) (docmodel.SelectorList, error) {
	return nil, docmodel.Errorf(docmodel.ENOTIMPLEMENTED, "css selectors are not supported for XML documents")
}

// Re applies re to the serialized element.
func (s *Selector) Re(re *regexp.Regexp) []string {
	return docmodel.ExtractRegex(re, s.Get())
}

// Get serializes the element, or the whole document, as XML.
func (s *Selector) Get() string {
	doc := s.doc
	if doc == nil {
		doc = etree.NewDocument()
		doc.SetRoot(s.elem.Copy())
	}
	out, err := doc.WriteToString()
	if err != nil {
		return ""
	}
	return out
}
