// Package ioprep converts raw repeat annotations into the TE table read by
// the analysis: RepeatMasker .out files become a tab separated table plus a
// repeat to class map, and GFF features get the class as a 10th column.
package ioprep

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/gnames/tebreak/internal/ioinput"
	"github.com/gnames/tebreak/internal/iooutput"
	"github.com/gnames/tebreak/pkg/lifecycle"
	"github.com/gnames/tebreak/pkg/te"
)

const (
	// HeaderLines is the number of header lines of a RepeatMasker .out file.
	HeaderLines = 3

	// MapColumns is the minimal number of fields of a RepeatMasker row that
	// has both the repeat name and its class.
	MapColumns = 11

	// Examples limits the number of motifs reported on mismatch.
	Examples = 5
)

// RepeatMaskerHeader is written as the first row of a converted table.
var RepeatMaskerHeader = []string{
	"SW_score", "perc_div", "perc_del", "perc_ins", "query_sequence",
	"begin", "end", "left", "strand", "matching_repeat",
	"repeat_class_family", "begin_in_repeat", "end_in_repeat",
	"left_in_repeat", "ID", "optional_star",
}

type preparer struct{}

// New returns a lifecycle.Preparer.
func New() lifecycle.Preparer {
	return preparer{}
}

// RepeatMasker skips the header of a .out file, replaces runs of whitespace
// with tabs and writes every row to tablePath. For rows with at least 11
// fields matching_repeat and repeat_class_family go to mapPath.
func (preparer) RepeatMasker(
	inPath, tablePath, mapPath string,
) (*lifecycle.RepeatMaskerStats, error) {
	rc, err := ioinput.Open(inPath)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var stats lifecycle.RepeatMaskerStats
	var classes strings.Builder

	err = iooutput.WriteAtomic(tablePath, func(w io.Writer) error {
		if _, err := fmt.Fprintln(w, strings.Join(RepeatMaskerHeader, "\t")); err != nil {
			return err
		}
		sc := newScanner(rc)
		var lineNum int
		for sc.Scan() {
			lineNum++
			if lineNum <= HeaderLines {
				continue
			}
			fields := strings.Fields(sc.Text())
			if len(fields) == 0 {
				continue
			}
			if _, err := fmt.Fprintln(w, strings.Join(fields, "\t")); err != nil {
				return err
			}
			stats.Rows++

			if len(fields) < MapColumns {
				stats.Short++
				slog.Warn("Row has too few columns for class map",
					"line", lineNum, "columns", len(fields))
				continue
			}
			classes.WriteString(fields[9] + "\t" + fields[10] + "\n")
			stats.Mapped++
		}
		return sc.Err()
	})
	if err != nil {
		return nil, RepeatMaskerError(inPath, err)
	}

	err = iooutput.WriteAtomic(mapPath, func(w io.Writer) error {
		_, err := io.WriteString(w, classes.String())
		return err
	})
	if err != nil {
		return nil, RepeatMaskerError(inPath, err)
	}

	slog.Info("RepeatMasker output converted",
		"input", inPath,
		"table", tablePath,
		"map", mapPath,
		"rows", stats.Rows,
		"mapped", stats.Mapped,
		"short", stats.Short,
	)
	return &stats, nil
}

// Family appends a repeat class to every GFF feature. The class is looked
// up by the `Motif:` name of attributes, features without a match get
// te.UnknownSuperfamily.
func (preparer) Family(
	gffPath, mapPath, outPath string,
) (*lifecycle.FamilyStats, error) {
	classes, keys, err := readClassMap(mapPath)
	if err != nil {
		return nil, err
	}

	rc, err := ioinput.Open(gffPath)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var stats lifecycle.FamilyStats
	unknown := make(map[string]struct{})

	err = iooutput.WriteAtomic(outPath, func(w io.Writer) error {
		sc := newScanner(rc)
		for sc.Scan() {
			line := sc.Text()
			if strings.HasPrefix(line, "#") {
				stats.Skipped++
				continue
			}
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			fields := strings.Split(line, "\t")
			if len(fields) < ioinput.TEColumns-1 {
				stats.Skipped++
				continue
			}

			class := te.UnknownSuperfamily
			motif := te.MotifFromAttributes(fields[8])
			if c, ok := classes[motif]; ok && motif != "" {
				class = c
				stats.Mapped++
			} else {
				stats.Unknown++
				if _, seen := unknown[motif]; motif != "" && !seen {
					unknown[motif] = struct{}{}
					if len(stats.UnknownExamples) < Examples {
						stats.UnknownExamples = append(stats.UnknownExamples, motif)
					}
				}
			}

			if _, err := fmt.Fprintf(w, "%s\t%s\n", line, class); err != nil {
				return err
			}
		}
		return sc.Err()
	})
	if err != nil {
		return nil, GFFError(gffPath, err)
	}

	if stats.Unknown > 0 {
		stats.MapExamples = keys[:min(Examples, len(keys))]
	}

	slog.Info("Repeat classes added",
		"gff", gffPath,
		"map", mapPath,
		"output", outPath,
		"mapped", stats.Mapped,
		"unknown", stats.Unknown,
		"skipped", stats.Skipped,
	)
	return &stats, nil
}

// readClassMap reads a two-column tab separated map. Malformed lines are
// skipped with a warning, a later entry for the same repeat wins. Keys are
// returned in order of first appearance.
func readClassMap(path string) (map[string]string, []string, error) {
	rc, err := ioinput.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer rc.Close()

	res := make(map[string]string)
	var keys []string
	sc := newScanner(rc)
	var lineNum int
	for sc.Scan() {
		lineNum++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) != 2 {
			slog.Warn("Skipping malformed line of class map",
				"path", path, "line", lineNum)
			continue
		}
		if _, ok := res[fields[0]]; !ok {
			keys = append(keys, fields[0])
		}
		res[fields[0]] = fields[1]
	}
	if err = sc.Err(); err != nil {
		return nil, nil, ClassMapError(path, err)
	}
	if len(res) == 0 {
		return nil, nil, EmptyClassMapError(path)
	}

	slog.Info("Repeat class map loaded", "path", path, "repeats", len(res))
	return res, keys, nil
}

func newScanner(r io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	return sc
}
