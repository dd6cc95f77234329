package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fwojciec/docmodel"
	"github.com/fwojciec/docmodel/htmltomarkdown"
	"github.com/fwojciec/docmodel/trafilatura"
)

var markdown = htmltomarkdown.NewConverter()

// Example schemas for HTML pages.
var (
	ExampleMoreLink = docmodel.MustSchema("ExampleMoreLink",
		docmodel.CSS("title", "a::text"),
		docmodel.CSS("url", "a::attr(href)"),
	)

	ExamplePage = docmodel.MustSchema("ExamplePage",
		docmodel.XPath("title", "//head/title/text()"),
		docmodel.CSS("link_for_more", "div p a::attr(href)"),
		docmodel.Re("charset", `charset=([a-z1-9-]+)`),
	)

	ExampleMoreNavigation = docmodel.MustSchema("ExampleMoreNavigation",
		docmodel.CSS("items", ".navigation a", docmodel.Many(), docmodel.WithModel(ExampleMoreLink)),
	)

	StartPage = docmodel.MustSchema("StartPage",
		docmodel.XPath("title", "//head/title/text()"),
		docmodel.CSS("catalogue_pages", "div p a::attr(href)", docmodel.Many()),
	)

	CataloguePage = docmodel.MustSchema("CataloguePage",
		docmodel.CSS("items", ".navigation a", docmodel.Many(), docmodel.WithModel(ExampleMoreLink)),
	)

	ArticlePage = docmodel.MustSchema("ArticlePage",
		docmodel.Meta("url", docmodel.MetaURL),
		docmodel.XPath("title", "//head/title/text()"),
		docmodel.Noop("article", docmodel.WithClean(docmodel.ArticleClean(trafilatura.NewExtractor()))),
	)

	MarkdownPage = docmodel.MustSchema("MarkdownPage",
		docmodel.Meta("url", docmodel.MetaURL),
		docmodel.XPath("title", "//head/title/text()"),
		docmodel.CSS("outline", "body", docmodel.WithClean(docmodel.OutlineClean(markdown))),
		docmodel.CSS("body", "body", docmodel.WithClean(docmodel.MarkdownClean(markdown))),
	)
)

// Example schemas for XML documents.
var (
	Book = docmodel.MustSchema("Book",
		docmodel.XPath("id", "@id"),
		docmodel.XPath("name", "name/text()"),
		docmodel.XPath("price", "price/text()"),
	)

	BookCatalogue = docmodel.MustSchema("BookCatalogue",
		docmodel.Meta("source", docmodel.MetaSource),
		docmodel.XPath("books", "//book", docmodel.Many(), docmodel.WithModel(Book)),
	)
)

// builtinSchemas maps CLI schema names to schemas.
var builtinSchemas = map[string]*docmodel.Schema{}

func init() {
	for _, s := range []*docmodel.Schema{
		ExamplePage, ExampleMoreLink, ExampleMoreNavigation, StartPage, CataloguePage,
		ArticlePage, MarkdownPage, Book, BookCatalogue,
	} {
		builtinSchemas[s.Name()] = s
	}
}

// lookupSchema returns the built-in schema with the given name.
func lookupSchema(name string) (*docmodel.Schema, error) {
	s, ok := builtinSchemas[name]
	if !ok {
		return nil, docmodel.Errorf(docmodel.ENOTFOUND, "unknown schema %q", name)
	}
	return s, nil
}

// Run executes the schemas command.
func (c *SchemasCmd) Run(deps *Dependencies) error {
	names := make([]string, 0, len(builtinSchemas))
	for name := range builtinSchemas {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Fprintf(deps.Stdout, "%-22s %s\n", name, strings.Join(builtinSchemas[name].Keys(), ", "))
	}
	return nil
}
