// Package overlap counts overlaps between windows and labeled intervals.
//
// A Counter indexes labeled intervals in an interval tree once and then
// answers any number of window sets. The count of a label is the number of
// (interval, window) pairs that overlap, so an interval that spans two
// windows adds 2 to its label.
package overlap

import (
	"fmt"
	"slices"

	biointerval "github.com/biogo/store/interval"
	"github.com/gnames/tebreak/pkg/interval"
)

// node is a labeled interval stored in the tree. Ranges are half-open,
// a closed [Start, End] becomes [Start, End+1).
type node struct {
	start, end int
	label      int
	uid        uintptr
}

func (n node) Overlap(b biointerval.IntRange) bool {
	return n.end > b.Start && n.start < b.End
}

func (n node) ID() uintptr { return n.uid }

func (n node) Range() biointerval.IntRange {
	return biointerval.IntRange{Start: n.start, End: n.end}
}

// query is a window converted to a half-open range.
type query struct {
	start, end int
}

func (q query) Overlap(b biointerval.IntRange) bool {
	return q.end > b.Start && q.start < b.End
}

// Counter holds read-only interval trees, one per chromosome. It is safe
// for concurrent use after construction.
type Counter struct {
	trees  map[string]*biointerval.IntTree
	labels []string
	index  map[string]int
	size   int
}

// NewCounter indexes labeled intervals. Labels are kept in sorted order,
// which is the order of the slices returned by Tally.
func NewCounter(ivs []interval.Interval) (*Counter, error) {
	res := &Counter{
		trees: make(map[string]*biointerval.IntTree),
		index: make(map[string]int),
	}

	for _, iv := range ivs {
		if _, ok := res.index[iv.Label]; !ok {
			res.index[iv.Label] = 0
			res.labels = append(res.labels, iv.Label)
		}
	}
	slices.Sort(res.labels)
	for i, l := range res.labels {
		res.index[l] = i
	}

	for i, iv := range ivs {
		if err := iv.Check(); err != nil {
			return nil, err
		}
		tree, ok := res.trees[iv.Chrom]
		if !ok {
			tree = &biointerval.IntTree{}
			res.trees[iv.Chrom] = tree
		}
		n := node{
			start: iv.Start,
			end:   iv.End + 1,
			label: res.index[iv.Label],
			uid:   uintptr(i),
		}
		if err := tree.Insert(n, true); err != nil {
			return nil, fmt.Errorf("cannot index interval %s: %w", iv, err)
		}
	}
	for _, tree := range res.trees {
		tree.AdjustRanges()
	}
	res.size = len(ivs)
	return res, nil
}

// Labels returns the sorted labels known to the counter.
func (c *Counter) Labels() []string {
	return slices.Clone(c.labels)
}

// Len returns the number of indexed intervals.
func (c *Counter) Len() int {
	return c.size
}

// Tally counts overlap pairs per label. The result is indexed in the order
// of Labels.
func (c *Counter) Tally(windows []interval.Interval) []int {
	res := make([]int, len(c.labels))
	for _, w := range windows {
		tree, ok := c.trees[w.Chrom]
		if !ok || w.End < w.Start {
			continue
		}
		tree.DoMatching(func(iv biointerval.IntInterface) bool {
			res[iv.(node).label]++
			return false
		}, query{start: w.Start, end: w.End + 1})
	}
	return res
}

// Count counts overlap pairs per label. Every known label is present in
// the result, labels without overlaps have zero count.
func (c *Counter) Count(windows []interval.Interval) map[string]int {
	tally := c.Tally(windows)
	res := make(map[string]int, len(tally))
	for i, l := range c.labels {
		res[l] = tally[i]
	}
	return res
}

// CountPairs is a brute-force count of overlapping pairs between windows
// and labeled intervals. It has the same semantics as Counter.Count, but
// only the labels of ivs that have overlaps appear in the result.
func CountPairs(windows, ivs []interval.Interval) map[string]int {
	res := make(map[string]int)
	for _, w := range windows {
		for _, iv := range ivs {
			if interval.Overlaps(w, iv) {
				res[iv.Label]++
			}
		}
	}
	return res
}
