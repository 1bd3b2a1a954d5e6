// Package analysis runs the breakpoint enrichment test from already loaded
// inputs: it derives windows around synteny blocks, counts overlaps with TE
// annotations, builds the null distribution and evaluates every family.
//
// The package does no I/O. Loading tables, caching null matrices and
// writing results belong to callers.
package analysis

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/gnames/gnuuid"
	"github.com/gnames/tebreak/pkg/config"
	"github.com/gnames/tebreak/pkg/enrich"
	"github.com/gnames/tebreak/pkg/interval"
	"github.com/gnames/tebreak/pkg/nullmodel"
	"github.com/gnames/tebreak/pkg/overlap"
	"github.com/gnames/tebreak/pkg/te"
	"github.com/gnames/tebreak/pkg/window"
	"github.com/google/uuid"
)

// Plan holds everything derived from inputs before the permutation loop.
// It is created by NewPlan and can run once or several times.
type Plan struct {
	cfg      config.AnalysisConfig
	jobs     int
	method   enrich.Method
	blocks   *interval.Store[interval.Record]
	tes      *interval.Store[te.Annotation]
	windows  []interval.Interval
	chromLen int
	counter  *overlap.Counter
	fams     te.FamilyMap
	lengths  nullmodel.LengthModel
}

// NewPlan validates preconditions and prepares windows, the overlap
// counter and the length model. Blocks are expected to be already
// selected by target genome, records on other chromosomes are excluded.
func NewPlan(
	cfg *config.Config,
	blocks []interval.Record,
	anns []te.Annotation,
) (*Plan, error) {
	acfg := cfg.Analysis
	chrom := acfg.TargetChromosome

	method, err := enrich.ParseMethod(acfg.PAdjustMethod)
	if err != nil {
		return nil, EvaluateError(err)
	}

	res := Plan{
		cfg:    acfg,
		jobs:   cfg.JobsNumber,
		method: method,
		blocks: interval.NewStore(chrom, blocks),
		tes:    interval.NewStore(chrom, anns),
	}

	if err = res.blocks.Require(); err != nil {
		return nil, EmptySyntenyError(acfg.TargetGenome, chrom, err)
	}
	if err = res.tes.Require(); err != nil {
		return nil, EmptyTEError(chrom, err)
	}

	res.chromLen = acfg.ChromLength
	if res.chromLen == 0 {
		res.chromLen = max(res.blocks.MaxEnd(), res.tes.MaxEnd())
	}
	if res.chromLen < 1 {
		return nil, ChromLengthError(chrom, res.chromLen)
	}

	res.windows, err = window.Build(res.blocks.Intervals(), acfg.WindowSize)
	if err != nil {
		return nil, WindowsError(err)
	}

	res.counter, err = overlap.NewCounter(res.tes.Intervals())
	if err != nil {
		return nil, WindowsError(err)
	}

	res.lengths, err = nullmodel.NewLengthModel(acfg.LengthModel, acfg.WindowSize)
	if err != nil {
		return nil, SamplerError(err)
	}

	res.fams = te.NewFamilyMap(res.tes.Records())
	return &res, nil
}

// Windows returns observed breakpoint windows, upstream and downstream
// for every block in block order.
func (p *Plan) Windows() []interval.Interval {
	return slices.Clone(p.windows)
}

// ChromLength returns the length that bounds random windows.
func (p *Plan) ChromLength() int {
	return p.chromLen
}

// Families returns all TE families of the target chromosome, sorted.
func (p *Plan) Families() []string {
	return p.counter.Labels()
}

// Sampler returns the null model sampler of the plan.
func (p *Plan) Sampler() *nullmodel.Sampler {
	return &nullmodel.Sampler{
		Chrom:       p.cfg.TargetChromosome,
		ChromLength: p.chromLen,
		WindowCount: len(p.windows),
		Lengths:     p.lengths,
		Counter:     p.counter,
		Seed:        p.cfg.RandomSeed,
		Iterations:  p.cfg.Iterations,
		Jobs:        p.jobs,
	}
}

// MatrixKey identifies the null matrix of the plan. Two plans with the
// same key produce identical matrices.
func (p *Plan) MatrixKey() uuid.UUID {
	var sb strings.Builder
	fmt.Fprintf(&sb, "chrom=%s|seed=%d|iter=%d|windows=%d|model=%s|size=%d|len=%d",
		p.cfg.TargetChromosome, p.cfg.RandomSeed, p.cfg.Iterations,
		len(p.windows), p.lengths.Name(), p.cfg.WindowSize, p.chromLen,
	)
	for _, iv := range p.tes.Intervals() {
		fmt.Fprintf(&sb, "|%d-%d:%s", iv.Start, iv.End, iv.Label)
	}
	return gnuuid.New(sb.String())
}

// RunID identifies a whole run: the null matrix together with the
// parameters used to evaluate it and the observed windows.
func (p *Plan) RunID() uuid.UUID {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s|genome=%s|threshold=%g|method=%s",
		p.MatrixKey(), p.cfg.TargetGenome, p.cfg.AvgCountThreshold, p.method)
	for _, w := range p.windows {
		fmt.Fprintf(&sb, "|%d-%d", w.Start, w.End)
	}
	return gnuuid.New(sb.String())
}

// Options modify a run.
type Options struct {
	// Matrix is a previously computed null matrix. It is used instead of
	// sampling when its families and iterations match the plan.
	Matrix *nullmodel.Matrix

	// Progress is called once per finished iteration, possibly from
	// several goroutines.
	Progress func()
}

// Summary describes inputs and outcome of a run.
type Summary struct {
	RunID               string  `json:"runId"               yaml:"run_id"`
	Genome              string  `json:"genome"              yaml:"genome"`
	Chromosome          string  `json:"chromosome"          yaml:"chromosome"`
	ChromLength         int     `json:"chromLength"         yaml:"chrom_length"`
	Blocks              int     `json:"blocks"              yaml:"blocks"`
	BlocksExcluded      int     `json:"blocksExcluded"      yaml:"blocks_excluded"`
	Annotations         int     `json:"annotations"         yaml:"annotations"`
	AnnotationsExcluded int     `json:"annotationsExcluded" yaml:"annotations_excluded"`
	Windows             int     `json:"windows"             yaml:"windows"`
	Families            int     `json:"families"            yaml:"families"`
	Tested              int     `json:"tested"              yaml:"tested"`
	Iterations          int     `json:"iterations"          yaml:"iterations"`
	Seed                int64   `json:"seed"                yaml:"seed"`
	LengthModel         string  `json:"lengthModel"         yaml:"length_model"`
	WindowSize          int     `json:"windowSize"          yaml:"window_size"`
	Threshold           float64 `json:"threshold"           yaml:"threshold"`
	PAdjustMethod       string  `json:"pAdjustMethod"       yaml:"p_adjust_method"`
	MatrixFromCache     bool    `json:"matrixFromCache"     yaml:"matrix_from_cache"`
}

// Result is the outcome of a run.
type Result struct {
	Rows        []enrich.Row
	Windows     []interval.Interval
	ChromLength int
	Matrix      *nullmodel.Matrix
	Summary     Summary
}

// Run executes the permutation test. Cancellation of ctx is the only
// reason for the null model loop to stop early.
func (p *Plan) Run(ctx context.Context, opts Options) (*Result, error) {
	var err error
	matrix := opts.Matrix
	fromCache := matrix != nil && p.matrixFits(matrix)
	if !fromCache {
		matrix, err = p.Sampler().Run(ctx, opts.Progress)
		if err != nil {
			if ctx.Err() != nil {
				return nil, CanceledError(ctx.Err())
			}
			return nil, SamplerError(err)
		}
	}

	rows, err := enrich.Evaluate(enrich.Input{
		Observed:      p.counter.Count(p.windows),
		Null:          matrix,
		Superfamilies: p.fams,
		Threshold:     p.cfg.AvgCountThreshold,
		Method:        p.method,
	})
	if err != nil {
		return nil, EvaluateError(err)
	}

	var tested int
	for _, r := range rows {
		if r.Tested() {
			tested++
		}
	}

	res := Result{
		Rows:        rows,
		Windows:     p.Windows(),
		ChromLength: p.chromLen,
		Matrix:      matrix,
		Summary: Summary{
			RunID:               p.RunID().String(),
			Genome:              p.cfg.TargetGenome,
			Chromosome:          p.cfg.TargetChromosome,
			ChromLength:         p.chromLen,
			Blocks:              p.blocks.Len(),
			BlocksExcluded:      p.blocks.Excluded(),
			Annotations:         p.tes.Len(),
			AnnotationsExcluded: p.tes.Excluded(),
			Windows:             len(p.windows),
			Families:            len(rows),
			Tested:              tested,
			Iterations:          matrix.Iterations(),
			Seed:                p.cfg.RandomSeed,
			LengthModel:         p.lengths.Name(),
			WindowSize:          p.cfg.WindowSize,
			Threshold:           p.cfg.AvgCountThreshold,
			PAdjustMethod:       string(p.method),
			MatrixFromCache:     fromCache,
		},
	}
	return &res, nil
}

func (p *Plan) matrixFits(m *nullmodel.Matrix) bool {
	return m.Iterations() == p.cfg.Iterations &&
		slices.Equal(m.Families(), p.counter.Labels())
}

// Run is a shortcut for NewPlan followed by Plan.Run.
func Run(
	ctx context.Context,
	cfg *config.Config,
	blocks []interval.Record,
	anns []te.Annotation,
	opts Options,
) (*Result, error) {
	p, err := NewPlan(cfg, blocks, anns)
	if err != nil {
		return nil, err
	}
	return p.Run(ctx, opts)
}
