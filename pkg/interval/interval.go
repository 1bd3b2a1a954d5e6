// Package interval provides genomic intervals and immutable stores of
// intervals that share one chromosome.
//
// Coordinates are 1-based and closed: an interval [Start, End] covers both
// Start and End. This is a pure package, it does no I/O.
package interval

import "fmt"

// Interval is a closed genomic interval with an optional label.
type Interval struct {
	// Chrom is the chromosome (sequence) name. It is never empty.
	Chrom string

	// Start is the first covered position, Start >= 1.
	Start int

	// End is the last covered position, End >= Start.
	End int

	// Label is an optional tag, for example a TE family or a window side.
	// Empty string means no label.
	Label string
}

// New creates an Interval, checking that the chromosome is not empty and
// that 1 <= start <= end.
func New(chrom string, start, end int, label string) (Interval, error) {
	res := Interval{Chrom: chrom, Start: start, End: end, Label: label}
	if err := res.Check(); err != nil {
		return Interval{}, err
	}
	return res, nil
}

// Check returns InvalidIntervalError if the interval breaks its invariants.
func (i Interval) Check() error {
	switch {
	case i.Chrom == "":
		return &InvalidIntervalError{Interval: i, Reason: "empty chromosome"}
	case i.Start < 1:
		return &InvalidIntervalError{Interval: i, Reason: "start is less than 1"}
	case i.End < i.Start:
		return &InvalidIntervalError{Interval: i, Reason: "end is less than start"}
	}
	return nil
}

// Len returns the number of positions covered by the interval.
func (i Interval) Len() int {
	return i.End - i.Start + 1
}

// Span makes Interval a Spanner, so plain intervals can go into a Store.
func (i Interval) Span() (Interval, bool) {
	return i, true
}

// String returns the interval in chrom:start-end form.
func (i Interval) String() string {
	return fmt.Sprintf("%s:%d-%d", i.Chrom, i.Start, i.End)
}

// Overlaps reports whether two intervals share at least one position.
// Intervals on different chromosomes never overlap.
func Overlaps(a, b Interval) bool {
	return a.Chrom == b.Chrom && a.Start <= b.End && b.Start <= a.End
}

// InvalidIntervalError describes an interval or a store that cannot be
// used.
type InvalidIntervalError struct {
	Interval Interval
	Reason   string
}

func (e *InvalidIntervalError) Error() string {
	if e.Interval == (Interval{}) {
		return "invalid interval: " + e.Reason
	}
	return fmt.Sprintf("invalid interval %s:%d-%d: %s",
		e.Interval.Chrom, e.Interval.Start, e.Interval.End, e.Reason)
}
