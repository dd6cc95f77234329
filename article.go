package docmodel

import (
	"net/url"
	"strings"
)

// Article is the main content of a page with boilerplate removed.
type Article struct {
	Title       string
	Byline      string
	SiteName    string
	ContentHTML string
	Text        string
}

// ArticleExtractor finds the main content of an HTML page.
type ArticleExtractor interface {
	// ExtractArticle processes raw HTML. pageURL, when known, is used to
	// resolve relative links and may be nil.
	ExtractArticle(html string, pageURL *url.URL) (*Article, error)
}

// ArticleClean returns a clean function for Noop fields that runs ext over
// the fragment markup and yields a Record with title, byline, site, text and
// html keys. A page without main content is skipped.
func ArticleClean(ext ArticleExtractor) CleanFunc {
	return func(f *Fragment, sel SelectorList) (any, error) {
		html, ok := sel.Get()
		if !ok {
			return nil, ErrSkip
		}

		var pageURL *url.URL
		if m := f.Metadata(); m != nil {
			pageURL = m.URL
		}

		a, err := ext.ExtractArticle(html, pageURL)
		if err != nil {
			return nil, err
		}
		if a == nil || strings.TrimSpace(a.Text) == "" && strings.TrimSpace(a.ContentHTML) == "" {
			return nil, ErrSkip
		}

		return Record{
			{Key: "title", Value: a.Title},
			{Key: "byline", Value: a.Byline},
			{Key: "site", Value: a.SiteName},
			{Key: "text", Value: a.Text},
			{Key: "html", Value: a.ContentHTML},
		}, nil
	}
}
