// Package iorun implements lifecycle.Runner. It connects input loading,
// the analysis, the null model cache and output writing.
package iorun

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/tebreak/internal/iocache"
	"github.com/gnames/tebreak/internal/iodb"
	"github.com/gnames/tebreak/internal/iofs"
	"github.com/gnames/tebreak/internal/ioinput"
	"github.com/gnames/tebreak/internal/iooutput"
	"github.com/gnames/tebreak/pkg/analysis"
	"github.com/gnames/tebreak/pkg/config"
	"github.com/gnames/tebreak/pkg/lifecycle"
	"github.com/gnames/tebreak/pkg/nullmodel"
)

type runner struct {
	cfg *config.Config
}

// New creates a Runner for the given configuration.
func New(cfg *config.Config) lifecycle.Runner {
	return &runner{cfg: cfg}
}

// OutputPath returns the path of the result table.
func (r *runner) OutputPath() string {
	f, err := iooutput.ParseFormat(r.cfg.Output.Format)
	if err != nil {
		f = gnfmt.TSV
	}
	return iooutput.ResultPath(r.cfg.Output.Dir, r.cfg.Analysis.TargetChromosome, f)
}

// Run validates configuration, loads inputs, runs the analysis and writes
// outputs.
func (r *runner) Run(ctx context.Context) (*analysis.Summary, error) {
	startTime := time.Now()
	acfg := r.cfg.Analysis

	if err := r.cfg.Validate(); err != nil {
		return nil, err
	}
	format, err := iooutput.ParseFormat(r.cfg.Output.Format)
	if err != nil {
		return nil, err
	}

	blocks, synStats, err := ioinput.LoadSynteny(
		r.cfg.Input.SyntenyPath, acfg.TargetGenome, acfg.TargetChromosome,
	)
	if err != nil {
		return nil, err
	}
	if synStats.Missing > 0 {
		gn.Warn("Skipping <em>%s</em> synteny blocks without coordinates",
			humanize.Comma(int64(synStats.Missing)))
	}

	anns, teStats, err := ioinput.LoadTE(r.cfg.Input.TEPath, acfg.TargetChromosome)
	if err != nil {
		return nil, err
	}
	if teStats.Missing > 0 {
		gn.Warn("Skipping <em>%s</em> TE annotations without coordinates",
			humanize.Comma(int64(teStats.Missing)))
	}

	plan, err := analysis.NewPlan(r.cfg, blocks, anns)
	if err != nil {
		return nil, err
	}
	msg := fmt.Sprintf("Testing %s windows against %s TE families on %s",
		humanize.Comma(int64(len(plan.Windows()))),
		humanize.Comma(int64(len(plan.Families()))),
		acfg.TargetChromosome,
	)
	gn.Info(msg)

	cache := r.openCache()
	if cache != nil {
		defer cache.Close()
	}
	key := plan.MatrixKey().String()
	matrix := r.cachedMatrix(cache, key)

	opts := analysis.Options{Matrix: matrix}
	if matrix == nil {
		bar := pb.Full.Start(acfg.Iterations)
		bar.Set("prefix", "Sampling null model: ")
		bar.Set(pb.CleanOnFinish, true)
		opts.Progress = func() { bar.Increment() }
		defer bar.Finish()
	}

	res, err := plan.Run(ctx, opts)
	if err != nil {
		return nil, err
	}

	if cache != nil && !res.Summary.MatrixFromCache {
		if err = cache.Put(key, res.Matrix); err != nil {
			slog.Warn("Null model was not cached", "error", err)
		}
	}

	if err = r.write(ctx, res, format); err != nil {
		return nil, err
	}

	msg = fmt.Sprintf("Tested %d of %d families, results in <em>%s</em>",
		res.Summary.Tested, res.Summary.Families, r.OutputPath())
	gn.Info(msg)
	gn.Info("Completed in %s",
		gnfmt.TimeString(time.Since(startTime).Seconds()))

	slog.Info("Analysis complete",
		"run_id", res.Summary.RunID,
		"chromosome", res.Summary.Chromosome,
		"families", res.Summary.Families,
		"tested", res.Summary.Tested,
		"matrix_from_cache", res.Summary.MatrixFromCache,
	)
	return &res.Summary, nil
}

// openCache returns nil when caching is off or the cache cannot be used.
// A broken cache never stops an analysis.
func (r *runner) openCache() lifecycle.MatrixCache {
	if !r.cfg.Output.WithCache {
		return nil
	}
	cache, err := iocache.New(config.NullModelCacheDir(r.cfg.HomeDir))
	if err == nil {
		err = cache.Open()
	}
	if err != nil {
		slog.Warn("Null model cache is not available", "error", err)
		return nil
	}
	return cache
}

func (r *runner) cachedMatrix(
	cache lifecycle.MatrixCache,
	key string,
) *nullmodel.Matrix {
	if cache == nil {
		return nil
	}
	res, err := cache.Get(key)
	if err != nil {
		slog.Warn("Cannot read cached null model", "key", key, "error", err)
		return nil
	}
	if res != nil {
		gn.Info("Using cached null model")
	}
	return res
}

func (r *runner) write(
	ctx context.Context,
	res *analysis.Result,
	format gnfmt.Format,
) error {
	dir := r.cfg.Output.Dir
	chrom := r.cfg.Analysis.TargetChromosome

	if err := iofs.EnsureOutputDir(dir); err != nil {
		return err
	}

	resultPath := iooutput.ResultPath(dir, chrom, format)
	if err := iooutput.WriteResults(resultPath, res.Rows, format); err != nil {
		return err
	}

	var windowsPath string
	if r.cfg.Output.WithWindows {
		windowsPath = iooutput.WindowsPath(dir, chrom)
		if err := iooutput.WriteWindows(windowsPath, res.Windows); err != nil {
			return err
		}
	}

	m := iooutput.NewManifest(r.cfg, res.Summary, resultPath, windowsPath)
	err := iooutput.WriteManifest(iooutput.ManifestPath(dir, chrom), m)
	if err != nil {
		return err
	}

	if r.cfg.Output.SQLitePath == "" {
		return nil
	}
	op := iodb.NewOperator()
	if err = op.Connect(ctx, r.cfg.Output.SQLitePath); err != nil {
		return err
	}
	defer op.Close()
	return op.SaveRun(ctx, res.Summary, res.Rows)
}
