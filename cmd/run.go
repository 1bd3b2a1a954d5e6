/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>
*/
package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gnames/gn"
	"github.com/gnames/tebreak/internal/iorun"
	"github.com/gnames/tebreak/pkg/config"
	"github.com/spf13/cobra"
)

type runFlags struct {
	genome      string
	chromosome  string
	synteny     string
	te          string
	windowSize  int
	iterations  int
	threshold   float64
	pAdjust     string
	lengthModel string
	seed        int64
	chromLength int
	outDir      string
	format      string
	sqlite      string
	windows     bool
	noCache     bool
	jobs        int
}

// getRunCmd returns the run command.
func getRunCmd() *cobra.Command {
	var f runFlags

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run TE enrichment test at synteny breakpoints",
		Long: `Run the permutation test for one genome and chromosome.

This command:
  1. Reads synteny blocks of the target genome and chromosome
  2. Reads TE annotations of the target chromosome
  3. Builds windows upstream and downstream of every block
  4. Counts TE families overlapping the windows
  5. Samples random windows to build the null distribution
  6. Writes observed and expected counts, p-values and adjusted
     p-values to <out-dir>/te_enrichment_<chromosome>.<ext>

Null distributions are cached in ~/.cache/tebreak/nullmodel, a rerun with
identical inputs and settings reuses them.

Examples:
  tebreak run -g dmel -c 2L -s synteny.tsv -t te.tsv.gz

  # more iterations, CSV output, collect runs in SQLite
  tebreak run -g dmel -c 2L -s synteny.tsv -t te.tsv -n 10000 \
    -f csv --sqlite runs.sqlite`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runRun(cmd, f)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	fl := runCmd.Flags()
	fl.StringVarP(&f.genome, "genome", "g", "", "target genome (required)")
	fl.StringVarP(&f.chromosome, "chromosome", "c", "",
		"target chromosome (required)")
	fl.StringVarP(&f.synteny, "synteny", "s", "",
		"synteny table, TSV or CSV, can be gzipped (required)")
	fl.StringVarP(&f.te, "te", "t", "",
		"TE annotation table, can be gzipped (required)")
	fl.IntVarP(&f.windowSize, "window-size", "w", 0,
		"window size in bp")
	fl.IntVarP(&f.iterations, "iterations", "n", 0,
		"number of random window sets")
	fl.Float64Var(&f.threshold, "threshold", 0,
		"minimal mean null count of a tested family")
	fl.StringVarP(&f.pAdjust, "p-adjust", "p", "",
		"p-value adjustment: BH, BY, bonferroni, holm, hochberg, none")
	fl.StringVarP(&f.lengthModel, "length-model", "l", "",
		"random window lengths: poisson, fixed, uniform")
	fl.Int64Var(&f.seed, "seed", 0, "random seed")
	fl.IntVar(&f.chromLength, "chrom-length", 0,
		"chromosome length (default: largest coordinate of inputs)")
	fl.StringVarP(&f.outDir, "out-dir", "o", "", "output directory")
	fl.StringVarP(&f.format, "format", "f", "",
		"output format: tsv, csv, compact, pretty")
	fl.StringVar(&f.sqlite, "sqlite", "",
		"SQLite database that collects runs")
	fl.BoolVar(&f.windows, "windows", false,
		"write breakpoint windows as BED")
	fl.BoolVar(&f.noCache, "no-cache", false,
		"do not use cached null distributions")
	fl.IntVarP(&f.jobs, "jobs", "j", 0, "number of concurrent workers")

	for _, name := range []string{"genome", "chromosome", "synteny", "te"} {
		_ = runCmd.MarkFlagRequired(name)
	}

	return runCmd
}

func runRun(cmd *cobra.Command, f runFlags) error {
	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	cfg.Update(runOptions(cmd, f))

	r := iorun.New(cfg)
	gn.Info("Analysis of <em>%s</em> chromosome <em>%s</em>",
		cfg.Analysis.TargetGenome, cfg.Analysis.TargetChromosome)
	_, err := r.Run(ctx)
	return err
}

// runOptions converts flags to options. Only flags given on the command
// line override configuration.
func runOptions(cmd *cobra.Command, f runFlags) []config.Option {
	fl := cmd.Flags()
	res := []config.Option{
		config.OptAnalysisTargetGenome(f.genome),
		config.OptAnalysisTargetChromosome(f.chromosome),
		config.OptInputSyntenyPath(f.synteny),
		config.OptInputTEPath(f.te),
	}

	if fl.Changed("window-size") {
		res = append(res, config.OptAnalysisWindowSize(f.windowSize))
	}
	if fl.Changed("iterations") {
		res = append(res, config.OptAnalysisIterations(f.iterations))
	}
	if fl.Changed("threshold") {
		res = append(res, config.OptAnalysisAvgCountThreshold(f.threshold))
	}
	if fl.Changed("p-adjust") {
		res = append(res, config.OptAnalysisPAdjustMethod(f.pAdjust))
	}
	if fl.Changed("length-model") {
		res = append(res, config.OptAnalysisLengthModel(f.lengthModel))
	}
	if fl.Changed("seed") {
		res = append(res, config.OptAnalysisRandomSeed(f.seed))
	}
	if fl.Changed("chrom-length") {
		res = append(res, config.OptAnalysisChromLength(f.chromLength))
	}
	if fl.Changed("out-dir") {
		res = append(res, config.OptOutputDir(f.outDir))
	}
	if fl.Changed("format") {
		res = append(res, config.OptOutputFormat(f.format))
	}
	if fl.Changed("sqlite") {
		res = append(res, config.OptOutputSQLitePath(f.sqlite))
	}
	if fl.Changed("windows") {
		res = append(res, config.OptOutputWithWindows(f.windows))
	}
	if fl.Changed("no-cache") {
		res = append(res, config.OptOutputWithCache(!f.noCache))
	}
	if fl.Changed("jobs") {
		res = append(res, config.OptJobsNumber(f.jobs))
	}
	return res
}
