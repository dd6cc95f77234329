package goquery

import (
	"strconv"
	"sync"

	"github.com/antchfx/htmlquery"
	"github.com/antchfx/xpath"
	"github.com/fwojciec/docmodel"
	"golang.org/x/net/html"
)

// xpathCache holds compiled expressions keyed by source text.
var xpathCache sync.Map

func compileXPath(expr string) (*xpath.Expr, error) {
	if v, ok := xpathCache.Load(expr); ok {
		return v.(*xpath.Expr), nil
	}
	e, err := xpath.Compile(expr)
	if err != nil {
		return nil, docmodel.Errorf(docmodel.EINVALID, "invalid xpath %q: %v", expr, err)
	}
	xpathCache.Store(expr, e)
	return e, nil
}

// navigatorAt returns a navigator rooted at the document containing n and
// positioned on n.
func navigatorAt(n *html.Node) *htmlquery.NodeNavigator {
	var path []*html.Node
	root := n
	for ; root.Parent != nil; root = root.Parent {
		path = append(path, root)
	}

	nav := htmlquery.CreateXPathNavigator(root)
	for i := len(path) - 1; i >= 0; i-- {
		if !nav.MoveToChild() {
			return htmlquery.CreateXPathNavigator(n)
		}
		for nav.Current() != path[i] {
			if !nav.MoveToNext() {
				return htmlquery.CreateXPathNavigator(n)
			}
		}
	}
	return nav
}

func selectXPath(n *html.Node, expr string) (docmodel.SelectorList, error) {
	e, err := compileXPath(expr)
	if err != nil {
		return nil, err
	}

	out := docmodel.SelectorList{}
	switch v := e.Evaluate(navigatorAt(n)).(type) {
	case *xpath.NodeIterator:
		for v.MoveNext() {
			nav, ok := v.Current().(*htmlquery.NodeNavigator)
			if !ok {
				continue
			}
			switch nav.NodeType() {
			case xpath.AttributeNode, xpath.TextNode, xpath.CommentNode:
				out = append(out, docmodel.Text(nav.Value()))
			default:
				out = append(out, NewSelector(nav.Current()))
			}
		}
	case string:
		out = append(out, docmodel.Text(v))
	case float64:
		out = append(out, docmodel.Text(strconv.FormatFloat(v, 'f', -1, 64)))
	case bool:
		// Boolean results follow the XPath 1.0 number conversion.
		if v {
			out = append(out, docmodel.Text("1"))
		} else {
			out = append(out, docmodel.Text("0"))
		}
	}
	return out, nil
}
