package interval

import "slices"

// Spanner is implemented by records that occupy a genomic interval.
// The boolean is false when the record has missing coordinates.
type Spanner interface {
	Span() (Interval, bool)
}

// Record is an interval read from an untrusted source. It keeps the row
// even when its coordinates could not be read, so a Store can count it.
type Record struct {
	Interval
	// Missing is true when start or end were absent or unreadable.
	Missing bool
}

// Span returns the interval and false if coordinates are missing.
func (r Record) Span() (Interval, bool) {
	return r.Interval, !r.Missing
}

// Store is an immutable collection of records located on one chromosome.
type Store[T Spanner] struct {
	chrom    string
	items    []T
	spans    []Interval
	excluded int
	maxEnd   int
}

// NewStore keeps the records that lie on chrom and have valid
// coordinates. Records with missing or malformed coordinates are
// excluded and counted instead of failing the whole load.
func NewStore[T Spanner](chrom string, recs []T) *Store[T] {
	res := &Store[T]{chrom: chrom}
	for _, r := range recs {
		span, ok := r.Span()
		if !ok || span.Chrom != chrom || span.Check() != nil {
			res.excluded++
			continue
		}
		res.items = append(res.items, r)
		res.spans = append(res.spans, span)
		res.maxEnd = max(res.maxEnd, span.End)
	}
	return res
}

// Chrom returns the chromosome shared by all intervals of the store.
func (s *Store[T]) Chrom() string {
	return s.chrom
}

// Len returns the number of kept records.
func (s *Store[T]) Len() int {
	return len(s.items)
}

// Excluded returns how many records were dropped during construction.
func (s *Store[T]) Excluded() int {
	return s.excluded
}

// MaxEnd returns the largest end coordinate, or 0 for an empty store.
func (s *Store[T]) MaxEnd() int {
	return s.maxEnd
}

// Records returns a copy of the kept records in input order.
func (s *Store[T]) Records() []T {
	return slices.Clone(s.items)
}

// Intervals returns a copy of the kept intervals in input order.
func (s *Store[T]) Intervals() []Interval {
	return slices.Clone(s.spans)
}

// Require returns InvalidIntervalError if the store is empty.
func (s *Store[T]) Require() error {
	if len(s.items) == 0 {
		return &InvalidIntervalError{
			Reason: "no valid intervals on chromosome '" + s.chrom + "'",
		}
	}
	return nil
}
