package mock

import (
	"regexp"

	"github.com/fwojciec/docmodel"
)

var _ docmodel.Selector = (*Selector)(nil)

// Selector is a mock implementation of docmodel.Selector.
type Selector struct {
	XPathFn func(expr string) (docmodel.SelectorList, error)
	CSSFn   func(selector string) (docmodel.SelectorList, error)
	ReFn    func(re *regexp.Regexp) []string
	GetFn   func() string
}

func (s *Selector) XPath(expr string) (docmodel.SelectorList, error) {
	return s.XPathFn(expr)
}

func (s *Selector) CSS(selector string) (docmodel.SelectorList, error) {
	return s.CSSFn(selector)
}

func (s *Selector) Re(re *regexp.Regexp) []string {
	return s.ReFn(re)
}

func (s *Selector) Get() string {
	return s.GetFn()
}

var _ docmodel.Parser = (*Parser)(nil)

// Parser is a mock implementation of docmodel.Parser.
type Parser struct {
	ParseFn func(text string) (docmodel.Selector, error)
}

func (p *Parser) Parse(text string) (docmodel.Selector, error) {
	return p.ParseFn(text)
}
