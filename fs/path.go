// Package fs provides file-based input loading and record storage.
package fs

import (
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/fwojciec/docmodel"
)

// URLToPath converts a page URL to a relative output name without extension.
// Example: https://example.com/docs/api/users → docs/api/users
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", docmodel.Errorf(docmodel.EINVALID, "invalid URL %q: %v", rawURL, err)
	}

	p := u.Path

	// Handle root or trailing slash → index
	if p == "" || p == "/" {
		return "index", nil
	}

	p = strings.TrimPrefix(p, "/")

	if strings.HasSuffix(p, "/") {
		return p + "index", nil
	}

	return strings.TrimSuffix(p, path.Ext(p)), nil
}

// SourceToPath converts a local source path to a relative output name
// without extension. Paths outside the working tree keep their base name.
func SourceToPath(source string) string {
	p := filepath.Clean(source)
	if !filepath.IsLocal(p) {
		p = filepath.Base(p)
	}
	return filepath.ToSlash(strings.TrimSuffix(p, filepath.Ext(p)))
}

// OutputPath picks the output name for an input: its http(s) URL path when
// known, else its source path.
func OutputPath(in *docmodel.Input) (string, error) {
	if in == nil || in.Metadata == nil {
		return "", docmodel.Errorf(docmodel.EINVALID, "input metadata required")
	}
	m := in.Metadata
	if m.URL != nil && (m.URL.Scheme == "http" || m.URL.Scheme == "https") {
		return URLToPath(m.URL.String())
	}
	if m.Source == "" {
		return "", docmodel.Errorf(docmodel.EINVALID, "input has neither URL nor source")
	}
	return SourceToPath(m.Source), nil
}
