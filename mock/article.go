package mock

import (
	"net/url"

	"github.com/fwojciec/docmodel"
)

var _ docmodel.ArticleExtractor = (*ArticleExtractor)(nil)

// ArticleExtractor is a mock implementation of docmodel.ArticleExtractor.
type ArticleExtractor struct {
	ExtractArticleFn func(html string, pageURL *url.URL) (*docmodel.Article, error)
}

func (e *ArticleExtractor) ExtractArticle(html string, pageURL *url.URL) (*docmodel.Article, error) {
	return e.ExtractArticleFn(html, pageURL)
}
