package docmodel

import "net/url"

// Metadata attribute names readable by Meta fields.
const (
	MetaURL    = "url"
	MetaDomain = "domain"
	MetaSource = "source"
)

// Metadata describes the provenance of a document, other than its parsed tree.
// A single Metadata value is shared read-only by a fragment and every
// sub-fragment composed from it.
type Metadata struct {
	URL    *url.URL
	Domain *url.URL
	Source string
}

// NewMetadata parses rawURL and derives the origin domain (scheme and host).
// An empty rawURL yields metadata with nil URL and Domain.
func NewMetadata(rawURL, source string) (*Metadata, error) {
	m := &Metadata{Source: source}
	if rawURL == "" {
		return m, nil
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, Errorf(EINVALID, "invalid document URL: %v", err)
	}
	m.URL = u
	m.Domain = &url.URL{Scheme: u.Scheme, Host: u.Host}
	return m, nil
}

// Attr returns the named attribute. URLs are returned in string form.
// Attributes of a nil Metadata, and unset URLs, are nil.
func (m *Metadata) Attr(name string) any {
	if m == nil {
		return nil
	}
	switch name {
	case MetaURL:
		return urlString(m.URL)
	case MetaDomain:
		return urlString(m.Domain)
	case MetaSource:
		return m.Source
	}
	return nil
}

func isMetadataAttr(name string) bool {
	return name == MetaURL || name == MetaDomain || name == MetaSource
}

func urlString(u *url.URL) any {
	if u == nil {
		return nil
	}
	return u.String()
}
