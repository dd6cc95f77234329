package docmodel

import "context"

// RecordStore persists extracted records with all-or-nothing semantics.
type RecordStore interface {
	// Save stores rec under a relative name. Nothing is visible until Commit.
	Save(ctx context.Context, name string, rec Record) error
	Commit() error
	Abort() error
}
