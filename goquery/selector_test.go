package goquery_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/fwojciec/docmodel"
	"github.com/fwojciec/docmodel/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Parser implements docmodel.Parser at compile time.
var _ docmodel.Parser = (*goquery.Parser)(nil)

const examplePage = `<html>
 <head>
  <base href='http://example.com/' />
  <title>Example website</title>
 </head>
 <body>
  <div id='images'>
   <a href='image1.html'>Name: My image 1 <br /><img src='image1_thumb.jpg' /></a>
   <a href='image2.html'>Name: My image 2 <br /><img src='image2_thumb.jpg' /></a>
   <a href='image3.html'>Name: My image 3 <br /><img src='image3_thumb.jpg' /></a>
  </div>
 </body>
</html>`

var myLink = docmodel.MustSchema("MyLink",
	docmodel.CSS("a", "a::attr(href)"),
	docmodel.XPath("image", ".//img/@src"),
)

func parse(t *testing.T, text string) docmodel.Selector {
	t.Helper()
	root, err := goquery.NewParser().Parse(text)
	require.NoError(t, err)
	return root
}

func TestFragment_SubFragmentRootedAtAnchor(t *testing.T) {
	t.Parallel()

	root := parse(t, `<html><head><title>Example website</title></head><body><div id="images"><a href="image1.html">Name: My image 1<br><img src="image1_thumb.jpg"></a></div></body></html>`)
	anchors, err := root.CSS("a")
	require.NoError(t, err)
	require.Len(t, anchors, 1)

	schema := docmodel.MustSchema("MyLink",
		docmodel.CSS("a", "a::attr(href)"),
		docmodel.CSS("image", "img::attr(src)"),
	)
	frag, err := docmodel.NewFragment(schema, anchors[0])
	require.NoError(t, err)

	res, err := frag.Extract()

	require.NoError(t, err)
	assert.Equal(t, docmodel.Record{
		{Key: "a", Value: "image1.html"},
		{Key: "image", Value: "image1_thumb.jpg"},
	}, res.Record)
}

func TestFragment_RootTitle(t *testing.T) {
	t.Parallel()

	frag, err := docmodel.ParseFragment(goquery.NewParser(), nil, examplePage,
		docmodel.WithFields(docmodel.XPath("title", "/html/head/title/text()")),
	)
	require.NoError(t, err)

	res, err := frag.Extract()

	require.NoError(t, err)
	assert.Equal(t, docmodel.Record{{Key: "title", Value: "Example website"}}, res.Record)
}

func TestFragment_ParsedSubModelText(t *testing.T) {
	t.Parallel()

	frag, err := docmodel.ParseFragment(goquery.NewParser(), myLink,
		`<a href='image1.html'>Name: My image 1 <br /><img src='image1_thumb.jpg' /></a>`)
	require.NoError(t, err)

	res, err := frag.Extract()

	require.NoError(t, err)
	assert.Equal(t, docmodel.Record{
		{Key: "a", Value: "image1.html"},
		{Key: "image", Value: "image1_thumb.jpg"},
	}, res.Record)
}

func TestFragment_ComposedPage(t *testing.T) {
	t.Parallel()

	thePage := docmodel.MustSchema("ThePage",
		docmodel.XPath("title", "/html/head/title/text()"),
		docmodel.XPath("mylinks", "//a", docmodel.Many(), docmodel.WithModel(myLink)),
		docmodel.XPath("mylink", "//a", docmodel.WithModel(myLink)),
		docmodel.XPath("links", "//a/img", docmodel.Many()),
	)

	frag, err := docmodel.ParseFragment(goquery.NewParser(), thePage, examplePage)
	require.NoError(t, err)

	res, err := frag.Extract()

	require.NoError(t, err)
	link := func(n string) docmodel.Record {
		return docmodel.Record{
			{Key: "a", Value: "image" + n + ".html"},
			{Key: "image", Value: "image" + n + "_thumb.jpg"},
		}
	}
	assert.Equal(t, docmodel.Record{
		{Key: "title", Value: "Example website"},
		{Key: "mylinks", Value: []docmodel.Record{link("1"), link("2"), link("3")}},
		{Key: "mylink", Value: link("1")},
		{Key: "links", Value: []string{
			`<img src="image1_thumb.jpg">`,
			`<img src="image2_thumb.jpg">`,
			`<img src="image3_thumb.jpg">`,
		}},
	}, res.Record)

	got, err := docmodel.ParseFragment(goquery.NewParser(), thePage, examplePage)
	require.NoError(t, err)
	ctxRes, err := got.ExtractContext(context.Background())
	require.NoError(t, err)
	assert.Equal(t, res, ctxRes)
}

func TestFragment_AbsoluteXPathInSubModel(t *testing.T) {
	t.Parallel()

	pageInfo := docmodel.MustSchema("PageInfo",
		docmodel.XPath("page_title", "/html/head/title/text()"),
		docmodel.XPath("all_anchors", "//a/@href", docmodel.Many()),
		docmodel.XPath("own_image", ".//img/@src"),
	)
	schema := docmodel.MustSchema("Page",
		docmodel.XPath("first", "//a", docmodel.WithModel(pageInfo)),
	)
	frag, err := docmodel.ParseFragment(goquery.NewParser(), schema, examplePage)
	require.NoError(t, err)

	res, err := frag.Extract()

	require.NoError(t, err)
	assert.Equal(t, docmodel.Record{
		{Key: "first", Value: docmodel.Record{
			{Key: "page_title", Value: "Example website"},
			{Key: "all_anchors", Value: []string{"image1.html", "image2.html", "image3.html"}},
			{Key: "own_image", Value: "image1_thumb.jpg"},
		}},
	}, res.Record)
}

func TestFragment_CSSManyModel(t *testing.T) {
	t.Parallel()

	schema := docmodel.MustSchema("Page",
		docmodel.CSS("mylinks", "a", docmodel.Many(), docmodel.WithModel(myLink)),
	)
	frag, err := docmodel.ParseFragment(goquery.NewParser(), schema, examplePage)
	require.NoError(t, err)

	res, err := frag.Extract()

	require.NoError(t, err)
	links, _ := res.Record.Get("mylinks")
	require.Len(t, links, 3)
	for i, want := range []string{"image1.html", "image2.html", "image3.html"} {
		href, _ := links.([]docmodel.Record)[i].Get("a")
		assert.Equal(t, want, href)
	}
}

func TestFragment_RegexWithoutMatch(t *testing.T) {
	t.Parallel()

	frag, err := docmodel.ParseFragment(goquery.NewParser(), nil, examplePage, docmodel.WithFields(
		docmodel.Re("charset", "charset=([a-z1-9-]+)"),
		docmodel.Re("charsets", "charset=([a-z1-9-]+)", docmodel.Many()),
	))
	require.NoError(t, err)

	res, err := frag.Extract()

	require.NoError(t, err)
	assert.Equal(t, docmodel.Record{
		{Key: "charset", Value: nil},
		{Key: "charsets", Value: []string{}},
	}, res.Record)
}

func TestFragment_RegexMatch(t *testing.T) {
	t.Parallel()

	frag, err := docmodel.ParseFragment(goquery.NewParser(), nil,
		`<html><head><meta http-equiv="content-type" content="text/html; charset=utf-8"></head></html>`,
		docmodel.WithFields(docmodel.Re("charset", "charset=([a-z1-9-]+)")),
	)
	require.NoError(t, err)

	v, err := frag.Get("charset")

	require.NoError(t, err)
	assert.Equal(t, "utf-8", v)
}

func TestSelector_CSS(t *testing.T) {
	t.Parallel()

	root := parse(t, examplePage)

	t.Run("text pseudo-element", func(t *testing.T) {
		t.Parallel()

		sel, err := root.CSS("title::text")

		require.NoError(t, err)
		assert.Equal(t, []string{"Example website"}, sel.GetAll())
	})

	t.Run("attr pseudo-element skips nodes without the attribute", func(t *testing.T) {
		t.Parallel()

		sel, err := root.CSS("#images *::attr(src)")

		require.NoError(t, err)
		assert.Equal(t, []string{"image1_thumb.jpg", "image2_thumb.jpg", "image3_thumb.jpg"}, sel.GetAll())
	})

	t.Run("matches the node itself", func(t *testing.T) {
		t.Parallel()

		anchors, err := root.CSS("a")
		require.NoError(t, err)

		self, err := anchors[1].CSS("a")

		require.NoError(t, err)
		require.Len(t, self, 1)
		assert.Contains(t, self[0].Get(), `href="image2.html"`)
	})

	t.Run("invalid selector", func(t *testing.T) {
		t.Parallel()

		_, err := root.CSS("a[")

		assert.Equal(t, docmodel.EINVALID, docmodel.ErrorCode(err))
	})
}

func TestSelector_XPath(t *testing.T) {
	t.Parallel()

	root := parse(t, examplePage)

	t.Run("attribute values", func(t *testing.T) {
		t.Parallel()

		sel, err := root.XPath("//a/@href")

		require.NoError(t, err)
		assert.Equal(t, []string{"image1.html", "image2.html", "image3.html"}, sel.GetAll())
	})

	t.Run("scalar results", func(t *testing.T) {
		t.Parallel()

		count, err := root.XPath("count(//a)")
		require.NoError(t, err)
		assert.Equal(t, []string{"3"}, count.GetAll())

		title, err := root.XPath("string(//title)")
		require.NoError(t, err)
		assert.Equal(t, []string{"Example website"}, title.GetAll())
	})

	t.Run("relative to a sub-node", func(t *testing.T) {
		t.Parallel()

		anchors, err := root.XPath("//a")
		require.NoError(t, err)
		require.Len(t, anchors, 3)

		src, err := anchors[2].XPath(".//img/@src")

		require.NoError(t, err)
		assert.Equal(t, []string{"image3_thumb.jpg"}, src.GetAll())
	})

	t.Run("no match is empty, not nil", func(t *testing.T) {
		t.Parallel()

		sel, err := root.XPath("//table")

		require.NoError(t, err)
		assert.NotNil(t, sel)
		assert.Empty(t, sel)
	})

	t.Run("invalid expression", func(t *testing.T) {
		t.Parallel()

		_, err := root.XPath("//a[")

		assert.Equal(t, docmodel.EINVALID, docmodel.ErrorCode(err))
	})
}

func TestSelector_Get(t *testing.T) {
	t.Parallel()

	root := parse(t, `<html><body><p class="x">Line<br>two <img src="a.png" alt="A"></p><script>if (a < b) {}</script></body></html>`)

	t.Run("void elements have no closing slash", func(t *testing.T) {
		t.Parallel()

		sel, err := root.CSS("p")
		require.NoError(t, err)

		assert.Equal(t, `<p class="x">Line<br>two <img src="a.png" alt="A"></p>`, sel.GetAll()[0])
	})

	t.Run("raw text elements are unchanged", func(t *testing.T) {
		t.Parallel()

		sel, err := root.CSS("script")
		require.NoError(t, err)

		assert.Equal(t, `<script>if (a < b) {}</script>`, sel.GetAll()[0])
	})
}

func TestSelector_Re(t *testing.T) {
	t.Parallel()

	root := parse(t, examplePage)
	anchors, err := root.CSS("a")
	require.NoError(t, err)

	assert.Equal(t, []string{"1", "2", "3"}, anchors.Re(regexp.MustCompile(`My image (\d)`)))
}

func TestSelector_Text(t *testing.T) {
	t.Parallel()

	root := parse(t, `<p>Hello <b>world</b></p>`)
	sel, err := root.CSS("p")
	require.NoError(t, err)

	assert.Equal(t, "Hello world", sel[0].(*goquery.Selector).Text())
}

func TestValidateSchema(t *testing.T) {
	t.Parallel()

	t.Run("accepts valid rules", func(t *testing.T) {
		t.Parallel()

		schema := docmodel.MustSchema("Page",
			docmodel.XPath("links", "//a", docmodel.Many(), docmodel.WithModel(myLink)),
			docmodel.Re("charset", "charset=(.+)"),
		)

		assert.NoError(t, goquery.ValidateSchema(schema))
	})

	t.Run("rejects malformed nested rule", func(t *testing.T) {
		t.Parallel()

		broken := docmodel.MustSchema("Broken", docmodel.CSS("a", "a[href"))
		schema := docmodel.MustSchema("Page",
			docmodel.XPath("links", "//a", docmodel.Many(), docmodel.WithModel(broken)),
		)

		err := goquery.ValidateSchema(schema)

		assert.Equal(t, docmodel.EINVALID, docmodel.ErrorCode(err))
	})
}
