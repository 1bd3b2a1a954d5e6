package analysis_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/tebreak/pkg/analysis"
	"github.com/gnames/tebreak/pkg/config"
	"github.com/gnames/tebreak/pkg/errcode"
	"github.com/gnames/tebreak/pkg/interval"
	"github.com/gnames/tebreak/pkg/te"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(jobs int) *config.Config {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptAnalysisTargetGenome("dmel"),
		config.OptAnalysisTargetChromosome("2L"),
		config.OptAnalysisWindowSize(1000),
		config.OptAnalysisIterations(300),
		config.OptAnalysisAvgCountThreshold(1),
		config.OptInputSyntenyPath("synteny.tsv"),
		config.OptInputTEPath("te.tsv"),
		config.OptJobsNumber(jobs),
	})
	return cfg
}

func blocks() []interval.Record {
	res := []interval.Record{
		{Interval: interval.Interval{Chrom: "2L", Start: 1, End: 5000}},
		{Interval: interval.Interval{Chrom: "2L", Start: 20_000, End: 30_000}},
		{Interval: interval.Interval{Chrom: "2L", Start: 60_000, End: 61_000}},
		// excluded
		{Interval: interval.Interval{Chrom: "3R", Start: 100, End: 200}},
		{Interval: interval.Interval{Chrom: "2L"}, Missing: true},
	}
	return res
}

func annotations() []te.Annotation {
	var res []te.Annotation
	for i := range 400 {
		start := 1 + i*250
		a := te.Annotation{
			Seqid:       "2L",
			Start:       start,
			End:         start + 120,
			Family:      "Gypsy",
			Superfamily: "LTR/Gypsy",
		}
		switch {
		case i%4 == 0:
			a.Family = "Copia"
			a.Superfamily = "LTR/Copia"
		case i%7 == 0:
			a.Family = "Helitron"
			a.Superfamily = "RC/Helitron"
		case i%11 == 0:
			a.Superfamily = "LTR"
		}
		res = append(res, a)
	}
	res = append(res,
		te.Annotation{Seqid: "2L", Start: 19_500, End: 19_600,
			Family: te.UnknownFamily},
		te.Annotation{Seqid: "X", Start: 10, End: 50, Family: "Copia"},
		te.Annotation{Seqid: "2L", Missing: true, Family: "Copia"},
	)
	return res
}

func TestPlan(t *testing.T) {
	p, err := analysis.NewPlan(testConfig(2), blocks(), annotations())
	require.NoError(t, err)

	ws := p.Windows()
	require.Len(t, ws, 6)
	assert.Equal(t, 1, ws[0].Start)
	assert.Equal(t, 1, ws[0].End)
	assert.Equal(t, 5001, ws[1].Start)
	assert.Equal(t, 6000, ws[1].End)
	assert.Equal(t, 19_000, ws[2].Start)
	assert.Equal(t, 19_999, ws[2].End)

	// largest end among blocks and annotations
	assert.Equal(t, 1+399*250+120, p.ChromLength())
	assert.Equal(t,
		[]string{"Copia", "Gypsy", "Helitron", te.UnknownFamily},
		p.Families(),
	)

	cfg := testConfig(2)
	cfg.Update([]config.Option{config.OptAnalysisChromLength(500_000)})
	p2, err := analysis.NewPlan(cfg, blocks(), annotations())
	require.NoError(t, err)
	assert.Equal(t, 500_000, p2.ChromLength())
	assert.NotEqual(t, p.MatrixKey(), p2.MatrixKey())
}

func TestMatrixKey(t *testing.T) {
	p1, err := analysis.NewPlan(testConfig(1), blocks(), annotations())
	require.NoError(t, err)
	p2, err := analysis.NewPlan(testConfig(8), blocks(), annotations())
	require.NoError(t, err)

	// number of workers does not change the matrix
	assert.Equal(t, p1.MatrixKey(), p2.MatrixKey())
	assert.Equal(t, p1.RunID(), p2.RunID())

	cfg := testConfig(1)
	cfg.Update([]config.Option{config.OptAnalysisRandomSeed(43)})
	p3, err := analysis.NewPlan(cfg, blocks(), annotations())
	require.NoError(t, err)
	assert.NotEqual(t, p1.MatrixKey(), p3.MatrixKey())

	// evaluation parameters change the run, not the matrix
	cfg = testConfig(1)
	cfg.Update([]config.Option{config.OptAnalysisPAdjustMethod("holm")})
	p4, err := analysis.NewPlan(cfg, blocks(), annotations())
	require.NoError(t, err)
	assert.Equal(t, p1.MatrixKey(), p4.MatrixKey())
	assert.NotEqual(t, p1.RunID(), p4.RunID())
}

func TestRunReproducible(t *testing.T) {
	ctx := context.Background()
	r1, err := analysis.Run(ctx, testConfig(1), blocks(), annotations(),
		analysis.Options{})
	require.NoError(t, err)
	r2, err := analysis.Run(ctx, testConfig(1), blocks(), annotations(),
		analysis.Options{})
	require.NoError(t, err)
	r8, err := analysis.Run(ctx, testConfig(8), blocks(), annotations(),
		analysis.Options{})
	require.NoError(t, err)

	assert.Equal(t, r1.Rows, r2.Rows)
	assert.Equal(t, r1.Rows, r8.Rows)
	assert.Equal(t, r1.Matrix.Data(), r8.Matrix.Data())
	assert.Equal(t, r1.Summary, r8.Summary)
}

func TestRunSummary(t *testing.T) {
	res, err := analysis.Run(context.Background(), testConfig(4), blocks(),
		annotations(), analysis.Options{})
	require.NoError(t, err)

	s := res.Summary
	assert.Equal(t, "dmel", s.Genome)
	assert.Equal(t, "2L", s.Chromosome)
	assert.Equal(t, 3, s.Blocks)
	assert.Equal(t, 2, s.BlocksExcluded)
	assert.Equal(t, 401, s.Annotations)
	assert.Equal(t, 2, s.AnnotationsExcluded)
	assert.Equal(t, 6, s.Windows)
	assert.Equal(t, 4, s.Families)
	assert.Equal(t, 300, s.Iterations)
	assert.Equal(t, "poisson", s.LengthModel)
	assert.Equal(t, "BH", s.PAdjustMethod)
	assert.False(t, s.MatrixFromCache)
	assert.NotEmpty(t, s.RunID)

	require.Len(t, res.Rows, 4)
	var tested int
	for _, r := range res.Rows {
		if r.Tested() {
			tested++
			assert.GreaterOrEqual(t, *r.FDR, *r.PValue)
			assert.GreaterOrEqual(t, r.Expected, 1.0)
		} else {
			assert.Nil(t, r.FDR)
		}
		if r.Family == "Gypsy" {
			assert.Equal(t, "LTR/Gypsy;LTR", r.Superfamily)
		}
		if r.Family == te.UnknownFamily {
			assert.Equal(t, "", r.Superfamily)
		}
	}
	assert.Equal(t, tested, s.Tested)
}

func TestRunCachedMatrix(t *testing.T) {
	ctx := context.Background()
	p, err := analysis.NewPlan(testConfig(4), blocks(), annotations())
	require.NoError(t, err)

	r1, err := p.Run(ctx, analysis.Options{})
	require.NoError(t, err)

	var calls int
	r2, err := p.Run(ctx, analysis.Options{
		Matrix:   r1.Matrix,
		Progress: func() { calls++ },
	})
	require.NoError(t, err)
	assert.Equal(t, 0, calls)
	assert.True(t, r2.Summary.MatrixFromCache)
	assert.Equal(t, r1.Rows, r2.Rows)

	// a matrix that does not fit is ignored
	cfg := testConfig(1)
	cfg.Update([]config.Option{config.OptAnalysisIterations(10)})
	small, err := analysis.Run(ctx, cfg, blocks(), annotations(),
		analysis.Options{})
	require.NoError(t, err)

	r3, err := p.Run(ctx, analysis.Options{Matrix: small.Matrix})
	require.NoError(t, err)
	assert.False(t, r3.Summary.MatrixFromCache)
	assert.Equal(t, r1.Rows, r3.Rows)
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		msg    string
		blocks []interval.Record
		anns   []te.Annotation
		code   gn.ErrorCode
	}{
		{
			msg:    "no blocks",
			blocks: nil,
			anns:   annotations(),
			code:   errcode.InputEmptySyntenyError,
		},
		{
			msg:    "blocks on other chromosome",
			blocks: blocks()[3:4],
			anns:   annotations(),
			code:   errcode.InputEmptySyntenyError,
		},
		{
			msg:    "no annotations",
			blocks: blocks(),
			anns:   annotations()[401:],
			code:   errcode.InputEmptyTEError,
		},
	}

	for _, v := range tests {
		_, err := analysis.Run(context.Background(), testConfig(1),
			v.blocks, v.anns, analysis.Options{})
		require.Error(t, err, v.msg)
		var gnErr *gn.Error
		require.True(t, errors.As(err, &gnErr), v.msg)
		assert.Equal(t, v.code, gnErr.Code, v.msg)
		if v.code == errcode.InputEmptySyntenyError {
			assert.Equal(t, []any{"dmel", "2L"}, gnErr.Vars, v.msg)
		}
	}
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := analysis.Run(ctx, testConfig(2), blocks(), annotations(),
		analysis.Options{})
	require.Error(t, err)
	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr))
	assert.Equal(t, errcode.AnalysisCanceledError, gnErr.Code)
	assert.ErrorIs(t, gnErr.Err, context.Canceled)
}

func ExampleRun() {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptAnalysisTargetGenome("g1"),
		config.OptAnalysisTargetChromosome("c1"),
		config.OptAnalysisIterations(10),
		config.OptAnalysisWindowSize(100),
		config.OptAnalysisLengthModel("fixed"),
	})
	blocks := []interval.Record{
		{Interval: interval.Interval{Chrom: "c1", Start: 1000, End: 2000}},
	}
	anns := []te.Annotation{
		{Seqid: "c1", Start: 950, End: 960, Family: "L1"},
		{Seqid: "c1", Start: 5000, End: 5100, Family: "L1"},
	}
	res, err := analysis.Run(context.Background(), cfg, blocks, anns,
		analysis.Options{})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(len(res.Windows), res.ChromLength, res.Rows[0].Observed)
	// Output: 2 5100 1
}
