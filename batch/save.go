package batch

import (
	"context"
	"fmt"

	"github.com/fwojciec/docmodel"
)

// NameFunc derives the store name of an input's record.
type NameFunc func(in *docmodel.Input) (string, error)

// Save writes every output to store under the name derived from its input,
// then commits. The store is aborted on the first error.
func (r *Result) Save(ctx context.Context, store docmodel.RecordStore, name NameFunc) error {
	for _, o := range r.Outputs {
		n, err := name(o.Input)
		if err == nil {
			err = store.Save(ctx, n, o.Record)
		}
		if err != nil {
			_ = store.Abort()
			return fmt.Errorf("save %s: %w", Source(o.Input), err)
		}
	}

	if err := store.Commit(); err != nil {
		_ = store.Abort()
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
