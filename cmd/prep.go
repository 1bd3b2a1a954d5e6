/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>
*/
package cmd

import (
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/tebreak/internal/ioprep"
	"github.com/spf13/cobra"
)

// getPrepCmd returns the prep command with its subcommands.
func getPrepCmd() *cobra.Command {
	prepCmd := &cobra.Command{
		Use:   "prep",
		Short: "Prepare a TE table from RepeatMasker and GFF files",
		Long: `Prepare the TE annotation table used by 'tebreak run'.

Usual workflow:
  # 1. convert RepeatMasker output, get repeat to class map
  tebreak prep rm genome.fa.out rm.tsv classes.tsv

  # 2. add the class of every repeat as the 10th GFF column
  tebreak prep family genome.fa.out.gff classes.tsv te.tsv`,
	}

	prepCmd.AddCommand(getPrepRMCmd())
	prepCmd.AddCommand(getPrepFamilyCmd())
	return prepCmd
}

func getPrepRMCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <input.out> <table.tsv> <classes.tsv>",
		Short: "Convert RepeatMasker .out file to TSV and class map",
		Long: `Convert a space aligned RepeatMasker .out file.

The three header lines are skipped, every data row is written to the
table with tab separators. The matching repeat and its class/family of
every complete row are written to the class map.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runPrepRM(args[0], args[1], args[2])
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}
}

func runPrepRM(in, table, classes string) error {
	stats, err := ioprep.New().RepeatMasker(in, table, classes)
	if err != nil {
		return err
	}
	gn.Info("Converted <em>%s</em> rows, <em>%s</em> repeats mapped to classes",
		humanize.Comma(int64(stats.Rows)), humanize.Comma(int64(stats.Mapped)))
	if stats.Short > 0 {
		gn.Warn("<em>%s</em> rows have fewer than %d columns",
			humanize.Comma(int64(stats.Short)), ioprep.MapColumns)
	}
	gn.Info("Table: <em>%s</em>, class map: <em>%s</em>", table, classes)
	return nil
}

func getPrepFamilyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "family <input.gff> <classes.tsv> <output.tsv>",
		Short: "Add repeat class to GFF features",
		Long: `Add the repeat class of every GFF feature as the 10th column.

The class is looked up by the 'Motif:' name in the attributes column.
Features without a known motif get UNKNOWN. Comment lines and lines
with fewer than 9 columns are skipped.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runPrepFamily(args[0], args[1], args[2])
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}
}

func runPrepFamily(gff, classes, out string) error {
	stats, err := ioprep.New().Family(gff, classes, out)
	if err != nil {
		return err
	}
	gn.Info("Mapped motifs: <em>%s</em>", humanize.Comma(int64(stats.Mapped)))
	gn.Info("Motifs not found (UNKNOWN): <em>%s</em>",
		humanize.Comma(int64(stats.Unknown)))

	if stats.Unknown > 0 && len(stats.UnknownExamples) > 0 {
		gn.Warn(`Some motifs are missing from the class map.
   GFF motifs: %s
   Map keys:   %s`,
			quoteAll(stats.UnknownExamples), quoteAll(stats.MapExamples))
	}
	gn.Info("TE table: <em>%s</em>", out)
	return nil
}

func quoteAll(ss []string) string {
	res := make([]string, len(ss))
	for i, s := range ss {
		res[i] = "'" + s + "'"
	}
	return strings.Join(res, ", ")
}
