// Package window derives fixed-width windows flanking synteny blocks.
package window

import (
	"fmt"

	"github.com/gnames/tebreak/pkg/interval"
)

// Labels of the two windows built for each block.
const (
	Upstream   = "up"
	Downstream = "down"
)

// Build returns two windows per block, in block order: the upstream window
// [start-size, start-1] followed by the downstream window
// [end+1, end+size].
//
// Upstream windows are clipped at position 1. A block that starts at 1 has
// no upstream sequence and gets the empty window [1, 0], which overlaps
// nothing. The result always holds exactly 2*len(blocks) windows.
// Downstream windows are not clipped at the chromosome end.
func Build(blocks []interval.Interval, size int) ([]interval.Interval, error) {
	if size < 1 {
		return nil, fmt.Errorf("window size must be positive, got %d", size)
	}

	res := make([]interval.Interval, 0, 2*len(blocks))
	for _, b := range blocks {
		if err := b.Check(); err != nil {
			return nil, err
		}
		up := interval.Interval{
			Chrom: b.Chrom,
			Start: max(1, b.Start-size),
			End:   b.Start - 1,
			Label: Upstream,
		}
		down := interval.Interval{
			Chrom: b.Chrom,
			Start: b.End + 1,
			End:   b.End + size,
			Label: Downstream,
		}
		res = append(res, up, down)
	}
	return res, nil
}
