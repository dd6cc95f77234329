package mock

import "github.com/fwojciec/docmodel"

var _ docmodel.RecordSet = (*RecordSet)(nil)

// RecordSet is a mock implementation of docmodel.RecordSet.
type RecordSet struct {
	SeenFn func(fp uint64) bool
}

func (s *RecordSet) Seen(fp uint64) bool {
	return s.SeenFn(fp)
}
