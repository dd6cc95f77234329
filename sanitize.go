package docmodel

// Sanitizer strips unsafe markup from HTML.
type Sanitizer interface {
	Sanitize(html string) string
}

// SanitizeClean returns a clean function sanitizing the selected nodes. A
// many field yields every sanitized node; otherwise the first, or nil.
func SanitizeClean(s Sanitizer, many bool) CleanFunc {
	return func(_ *Fragment, sel SelectorList) (any, error) {
		if many {
			all := sel.GetAll()
			for i, html := range all {
				all[i] = s.Sanitize(html)
			}
			return all, nil
		}
		html, ok := sel.Get()
		if !ok {
			return nil, nil
		}
		return s.Sanitize(html), nil
	}
}
