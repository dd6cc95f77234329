package trafilatura

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/fwojciec/docmodel"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements docmodel.ArticleExtractor at compile time.
var _ docmodel.ArticleExtractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractArticle processes raw HTML and returns the main content.
func (e *Extractor) ExtractArticle(rawHTML string, pageURL *url.URL) (*docmodel.Article, error) {
	if rawHTML == "" {
		return nil, docmodel.Errorf(docmodel.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
		OriginalURL:    pageURL,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, err
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
	}

	return &docmodel.Article{
		Title:       result.Metadata.Title,
		Byline:      result.Metadata.Author,
		SiteName:    result.Metadata.Sitename,
		ContentHTML: contentHTML,
		Text:        strings.TrimSpace(result.ContentText),
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
