package docmodel

import (
	"context"
	"strings"
)

// Summarizer condenses text, typically by calling a language model.
type Summarizer interface {
	// Summarize returns a summary of text following instruction. An empty
	// instruction uses the implementation default.
	Summarize(ctx context.Context, text, instruction string) (string, error)
}

// TokenCounter counts tokens in text for a specific model.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}

// SummaryClean returns a context clean function that summarizes the
// selected values joined by newlines. An empty selection yields nil without
// calling s.
func SummaryClean(s Summarizer, instruction string) CleanContextFunc {
	return func(ctx context.Context, _ *Fragment, sel SelectorList) (any, error) {
		text := joinSelection(sel)
		if text == "" {
			return nil, nil
		}
		return s.Summarize(ctx, text, instruction)
	}
}

// TokenCountClean returns a context clean function that counts the tokens
// of the selected values joined by newlines.
func TokenCountClean(tc TokenCounter) CleanContextFunc {
	return func(ctx context.Context, _ *Fragment, sel SelectorList) (any, error) {
		return tc.CountTokens(ctx, joinSelection(sel))
	}
}

func joinSelection(sel SelectorList) string {
	var parts []string
	for _, v := range sel.GetAll() {
		if v = strings.TrimSpace(v); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, "\n")
}
