// Package iooutput writes results of an analysis: the enrichment table,
// the optional BED file of breakpoint windows and the run manifest.
//
// Every file is written to a temporary name in the target directory and
// renamed when complete, so a failed run leaves no partial files.
package iooutput

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gnames/gnfmt"
	"github.com/gnames/tebreak/pkg/enrich"
	"github.com/gnames/tebreak/pkg/interval"
)

// NA marks absent values in tabular output.
const NA = "NA"

// Header lists the columns of the result table.
var Header = []string{
	"family", "superfamily", "observed", "expected", "enrichment",
	"p_value", "fdr",
}

// ParseFormat converts a configuration value to a gnfmt.Format.
func ParseFormat(s string) (gnfmt.Format, error) {
	res, err := gnfmt.NewFormat(s)
	if err != nil || res == gnfmt.FormatNone {
		if err == nil {
			err = fmt.Errorf("empty format")
		}
		return gnfmt.FormatNone, FormatError(s, err)
	}
	return res, nil
}

// Extension returns the file extension of a format.
func Extension(f gnfmt.Format) string {
	switch f {
	case gnfmt.CSV:
		return "csv"
	case gnfmt.CompactJSON, gnfmt.PrettyJSON:
		return "json"
	default:
		return "tsv"
	}
}

// ResultPath returns <dir>/te_enrichment_<chrom>.<ext>.
func ResultPath(dir, chrom string, f gnfmt.Format) string {
	name := fmt.Sprintf("te_enrichment_%s.%s", chrom, Extension(f))
	return filepath.Join(dir, name)
}

// WriteResults writes the result table in the given format.
func WriteResults(path string, rows []enrich.Row, f gnfmt.Format) error {
	return WriteAtomic(path, func(w io.Writer) error {
		switch f {
		case gnfmt.CompactJSON, gnfmt.PrettyJSON:
			return writeJSON(w, rows, f == gnfmt.PrettyJSON)
		case gnfmt.CSV:
			return writeTable(w, rows, ',')
		default:
			return writeTable(w, rows, '\t')
		}
	})
}

func writeJSON(w io.Writer, rows []enrich.Row, pretty bool) error {
	if rows == nil {
		rows = []enrich.Row{}
	}
	enc := gnfmt.GNjson{Pretty: pretty}
	bs, err := enc.Encode(rows)
	if err != nil {
		return err
	}
	if _, err = w.Write(bs); err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n")
	return err
}

func writeTable(w io.Writer, rows []enrich.Row, sep rune) error {
	if _, err := fmt.Fprintln(w, gnfmt.ToCSV(Header, sep)); err != nil {
		return err
	}
	for _, r := range rows {
		if _, err := fmt.Fprintln(w, gnfmt.ToCSV(record(r), sep)); err != nil {
			return err
		}
	}
	return nil
}

func record(r enrich.Row) []string {
	return []string{
		r.Family,
		r.Superfamily,
		strconv.Itoa(r.Observed),
		formatFloat(r.Expected),
		formatFloat(r.Enrichment),
		formatOptional(r.PValue),
		formatOptional(r.FDR),
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func formatOptional(f *float64) string {
	if f == nil {
		return NA
	}
	return formatFloat(*f)
}

// WindowsPath returns the BED path of observed windows.
func WindowsPath(dir, chrom string) string {
	return filepath.Join(dir, fmt.Sprintf("breakpoint_windows_%s.bed", chrom))
}

// WriteWindows writes windows as BED with 0-based starts. The name column
// combines window label and the index of its synteny block.
func WriteWindows(path string, windows []interval.Interval) error {
	return WriteAtomic(path, func(w io.Writer) error {
		for i, win := range windows {
			_, err := fmt.Fprintf(w, "%s\t%d\t%d\t%s_%d\n",
				win.Chrom, win.Start-1, win.End, win.Label, i/2)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteAtomic writes a file through fn under a temporary name in the same
// directory and renames it to path on success.
func WriteAtomic(path string, fn func(io.Writer) error) (err error) {
	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, "."+name+".*.tmp")
	if err != nil {
		return WriteError(path, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	bw := bufio.NewWriter(tmp)
	if err = fn(bw); err != nil {
		return WriteError(path, err)
	}
	if err = bw.Flush(); err != nil {
		return WriteError(path, err)
	}
	if err = tmp.Close(); err != nil {
		return WriteError(path, err)
	}
	if err = os.Chmod(tmp.Name(), 0644); err != nil {
		return WriteError(path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return WriteError(path, err)
	}
	return nil
}
