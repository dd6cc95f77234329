package mock

import (
	"context"

	"github.com/fwojciec/docmodel"
)

var (
	_ docmodel.Summarizer   = (*Summarizer)(nil)
	_ docmodel.TokenCounter = (*TokenCounter)(nil)
)

// Summarizer is a mock implementation of docmodel.Summarizer.
type Summarizer struct {
	SummarizeFn func(ctx context.Context, text, instruction string) (string, error)
}

func (s *Summarizer) Summarize(ctx context.Context, text, instruction string) (string, error) {
	return s.SummarizeFn(ctx, text, instruction)
}

// TokenCounter is a mock implementation of docmodel.TokenCounter.
type TokenCounter struct {
	CountTokensFn func(ctx context.Context, text string) (int, error)
}

func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	return tc.CountTokensFn(ctx, text)
}
