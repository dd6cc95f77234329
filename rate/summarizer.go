// Package rate limits calls to remote services using token buckets from
// golang.org/x/time/rate.
package rate

import (
	"context"

	"github.com/fwojciec/docmodel"
	"golang.org/x/time/rate"
)

// Ensure Summarizer implements docmodel.Summarizer at compile time.
var _ docmodel.Summarizer = (*Summarizer)(nil)

// Summarizer wraps a Summarizer so that calls shared by concurrent
// extractions do not exceed a request rate.
type Summarizer struct {
	next    docmodel.Summarizer
	limiter *rate.Limiter
}

// NewSummarizer allows rps calls per second with a burst of 1.
// A non-positive rps disables the limit.
func NewSummarizer(next docmodel.Summarizer, rps float64) *Summarizer {
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}
	return &Summarizer{next: next, limiter: rate.NewLimiter(limit, 1)}
}

// Summarize waits for the limiter, then delegates. It returns the context
// error if ctx ends first.
func (s *Summarizer) Summarize(ctx context.Context, text, instruction string) (string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return "", err
	}
	return s.next.Summarize(ctx, text, instruction)
}
