// Package bloom provides record deduplication using Bloom filters.
package bloom

import (
	"encoding/binary"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/fwojciec/docmodel"
)

var _ docmodel.RecordSet = (*Filter)(nil)

// Filter wraps a Bloom filter for record fingerprint deduplication.
// It is not safe for concurrent use.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected records
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Seen adds fp and reports whether it might have been added before.
// False positives are possible; false negatives are not.
func (f *Filter) Seen(fp uint64) bool {
	return f.f.TestAndAdd(key(fp))
}

// Contains reports whether fp might have been added, without adding it.
func (f *Filter) Contains(fp uint64) bool {
	return f.f.Test(key(fp))
}

// EstimatedCount returns the approximate number of fingerprints in the filter.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}

func key(fp uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, fp)
	return b
}
