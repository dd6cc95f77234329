package mock

import (
	"context"

	"github.com/fwojciec/docmodel"
)

var _ docmodel.RecordStore = (*RecordStore)(nil)

// RecordStore is a mock implementation of docmodel.RecordStore.
type RecordStore struct {
	SaveFn   func(ctx context.Context, name string, rec docmodel.Record) error
	CommitFn func() error
	AbortFn  func() error
}

func (s *RecordStore) Save(ctx context.Context, name string, rec docmodel.Record) error {
	return s.SaveFn(ctx, name, rec)
}

func (s *RecordStore) Commit() error {
	return s.CommitFn()
}

func (s *RecordStore) Abort() error {
	return s.AbortFn()
}
