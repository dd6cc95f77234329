package docmodel

// RecordSet remembers fingerprints of records already produced.
type RecordSet interface {
	// Seen adds fp to the set and reports whether it was already present.
	Seen(fp uint64) bool
}
