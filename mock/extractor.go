package mock

import (
	"context"

	"github.com/fwojciec/docmodel"
)

var _ docmodel.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of docmodel.Extractor.
type Extractor struct {
	ExtractFn func(ctx context.Context, in *docmodel.Input) (docmodel.Result, error)
}

func (e *Extractor) Extract(ctx context.Context, in *docmodel.Input) (docmodel.Result, error) {
	return e.ExtractFn(ctx, in)
}
