package window_test

import (
	"testing"

	"github.com/gnames/tebreak/pkg/interval"
	"github.com/gnames/tebreak/pkg/overlap"
	"github.com/gnames/tebreak/pkg/window"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func blocks(coords ...[2]int) []interval.Interval {
	res := make([]interval.Interval, len(coords))
	for i, c := range coords {
		res[i] = interval.Interval{Chrom: "chr1", Start: c[0], End: c[1]}
	}
	return res
}

func TestBuildThreeBlocks(t *testing.T) {
	bs := blocks([2]int{1000, 2000}, [2]int{5000, 6000}, [2]int{9000, 9500})
	res, err := window.Build(bs, 500)
	require.NoError(t, err)

	want := [][2]int{
		{500, 999}, {2001, 2500},
		{4500, 4999}, {6001, 6500},
		{8500, 8999}, {9501, 10000},
	}
	require.Len(t, res, len(want))
	for i, w := range want {
		assert.Equal(t, w[0], res[i].Start, "start %d", i)
		assert.Equal(t, w[1], res[i].End, "end %d", i)
		assert.Equal(t, "chr1", res[i].Chrom)
	}
	assert.Equal(t, window.Upstream, res[0].Label)
	assert.Equal(t, window.Downstream, res[1].Label)
}

func TestBuildCount(t *testing.T) {
	for n := range 20 {
		bs := make([]interval.Interval, n)
		for i := range bs {
			bs[i] = interval.Interval{
				Chrom: "chr1", Start: 1 + i*37, End: 50 + i*1000,
			}
		}
		res, err := window.Build(bs, 100)
		require.NoError(t, err)
		assert.Len(t, res, 2*n)
	}
}

func TestBuildClipping(t *testing.T) {
	tests := []struct {
		msg        string
		start, end int
		upStart    int
		upEnd      int
	}{
		{"clipped to one", 200, 300, 1, 199},
		{"block at two", 2, 300, 1, 1},
	}

	for _, v := range tests {
		res, err := window.Build(blocks([2]int{v.start, v.end}), 500)
		require.NoError(t, err, v.msg)
		require.Len(t, res, 2, v.msg)
		assert.Equal(t, v.upStart, res[0].Start, v.msg)
		assert.Equal(t, v.upEnd, res[0].End, v.msg)
		assert.NoError(t, res[0].Check(), v.msg)
		assert.Equal(t, v.end+500, res[1].End, v.msg)
	}
}

func TestBuildErrors(t *testing.T) {
	_, err := window.Build(blocks([2]int{10, 20}), 0)
	assert.Error(t, err)

	_, err = window.Build(blocks([2]int{30, 20}), 10)
	assert.Error(t, err)

	res, err := window.Build(nil, 10)
	assert.NoError(t, err)
	assert.Empty(t, res)
}

func TestBuildBlockAtOne(t *testing.T) {
	res, err := window.Build(blocks([2]int{1, 300}, [2]int{1000, 2000}), 500)
	require.NoError(t, err)
	require.Len(t, res, 4)

	up := res[0]
	assert.Equal(t, 1, up.Start)
	assert.Equal(t, 0, up.End)
	assert.Equal(t, 0, up.Len())
	assert.Error(t, up.Check())

	// the empty window does not reach into the block
	te := interval.Interval{Chrom: "chr1", Start: 1, End: 10, Label: "Gypsy"}
	assert.False(t, interval.Overlaps(up, te))
	assert.Empty(t, overlap.CountPairs(res[:1], []interval.Interval{te}))

	c, err := overlap.NewCounter([]interval.Interval{te})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Gypsy": 0}, c.Count(res[:1]))
	assert.Equal(t, map[string]int{"Gypsy": 0}, c.Count(res))
}
