// Package bluemonday implements docmodel.Sanitizer using bluemonday policies.
package bluemonday

import (
	"github.com/fwojciec/docmodel"
	"github.com/microcosm-cc/bluemonday"
)

// Ensure Sanitizer implements docmodel.Sanitizer at compile time.
var _ docmodel.Sanitizer = (*Sanitizer)(nil)

// Sanitizer applies a bluemonday policy.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer creates a Sanitizer allowing user-generated-content markup:
// formatting, links and images, without scripts, styles or event handlers.
func NewSanitizer() *Sanitizer {
	return &Sanitizer{policy: bluemonday.UGCPolicy()}
}

// NewStrictSanitizer creates a Sanitizer that strips all markup and keeps
// only text.
func NewStrictSanitizer() *Sanitizer {
	return &Sanitizer{policy: bluemonday.StrictPolicy()}
}

// Sanitize returns html with disallowed elements and attributes removed.
func (s *Sanitizer) Sanitize(html string) string {
	return s.policy.Sanitize(html)
}
