package goquery

import (
	"regexp"
	"strings"
	"sync"

	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/docmodel"
	"golang.org/x/net/html"
)

// pseudoElementRe matches a trailing ::text or ::attr(name) pseudo-element.
var pseudoElementRe = regexp.MustCompile(`^(.*?)::(text|attr\(\s*([^)\s]+)\s*\))\s*$`)

// cssQuery is a compiled CSS selector with an optional pseudo-element.
type cssQuery struct {
	sel  cascadia.Selector
	text bool
	attr string
}

// cssCache holds compiled queries keyed by source text.
var cssCache sync.Map

func compileCSS(selector string) (*cssQuery, error) {
	if v, ok := cssCache.Load(selector); ok {
		return v.(*cssQuery), nil
	}

	q := &cssQuery{}
	base := selector
	if m := pseudoElementRe.FindStringSubmatch(selector); m != nil {
		base = m[1]
		if m[2] == "text" {
			q.text = true
		} else {
			q.attr = m[3]
		}
	}
	if strings.TrimSpace(base) == "" {
		base = "*"
	}

	sel, err := cascadia.Compile(base)
	if err != nil {
		return nil, docmodel.Errorf(docmodel.EINVALID, "invalid css selector %q: %v", selector, err)
	}
	q.sel = sel
	cssCache.Store(selector, q)
	return q, nil
}

func selectCSS(n *html.Node, selector string) (docmodel.SelectorList, error) {
	q, err := compileCSS(selector)
	if err != nil {
		return nil, err
	}

	out := docmodel.SelectorList{}
	for _, m := range q.sel.MatchAll(n) {
		switch {
		case q.text:
			for c := m.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.TextNode {
					out = append(out, docmodel.Text(c.Data))
				}
			}
		case q.attr != "":
			for _, a := range m.Attr {
				if a.Key == q.attr {
					out = append(out, docmodel.Text(a.Val))
					break
				}
			}
		default:
			out = append(out, NewSelector(m))
		}
	}
	return out, nil
}
