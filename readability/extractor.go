package readability

import (
	"net/url"
	"strings"

	"github.com/fwojciec/docmodel"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements docmodel.ArticleExtractor at compile time.
var _ docmodel.ArticleExtractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
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

	article, err := readability.FromReader(strings.NewReader(rawHTML), pageURL)
	if err != nil {
		return nil, err
	}

	return &docmodel.Article{
		Title:       article.Title,
		Byline:      article.Byline,
		SiteName:    article.SiteName,
		ContentHTML: article.Content,
		Text:        strings.TrimSpace(article.TextContent),
	}, nil
}
