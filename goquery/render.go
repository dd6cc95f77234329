package goquery

import (
	"strings"

	"golang.org/x/net/html"
)

// voidElements never have an end tag.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "keygen": true, "link": true,
	"meta": true, "param": true, "source": true, "track": true, "wbr": true,
}

// verbatimElements are rendered whole by html.Render: their content is raw
// text or depends on the leading-newline rule.
var verbatimElements = map[string]bool{
	"iframe": true, "listing": true, "noembed": true, "noframes": true,
	"noscript": true, "plaintext": true, "pre": true, "script": true,
	"style": true, "textarea": true, "xmp": true,
}

// render serializes n like html.Render, except that void elements are
// written as <br> instead of <br/>.
func render(b *strings.Builder, n *html.Node) error {
	switch {
	case n.Type == html.DocumentNode:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if err := render(b, c); err != nil {
				return err
			}
		}
		return nil
	case n.Type != html.ElementNode || n.Namespace != "" || verbatimElements[n.Data]:
		return html.Render(b, n)
	case voidElements[n.Data]:
		tag, err := startTag(n)
		if err != nil {
			return err
		}
		b.WriteString(strings.TrimSuffix(tag, "/>") + ">")
		return nil
	case n.FirstChild == nil:
		return html.Render(b, n)
	}

	tag, err := startTag(n)
	if err != nil {
		return err
	}
	end := "</" + n.Data + ">"
	b.WriteString(strings.TrimSuffix(tag, end))
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := render(b, c); err != nil {
			return err
		}
	}
	b.WriteString(end)
	return nil
}

// startTag renders n without its children.
func startTag(n *html.Node) (string, error) {
	var b strings.Builder
	err := html.Render(&b, &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
		Attr:      n.Attr,
	})
	return b.String(), err
}
