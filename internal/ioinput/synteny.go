package ioinput

import (
	"bufio"
	"bytes"
	"log/slog"
	"math"
	"slices"

	"github.com/gnames/tebreak/pkg/interval"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Column names of the synteny table used by tebreak. Other columns are
// ignored.
const (
	ColGenome = "genome1"
	ColChrom  = "chr1"
	ColStart  = "startBp1"
	ColEnd    = "endBp1"
)

// SyntenyColumns are the columns a synteny table must have.
var SyntenyColumns = []string{ColGenome, ColChrom, ColStart, ColEnd}

// SyntenyStats describes a loaded synteny table.
type SyntenyStats struct {
	// Rows is the number of data rows in the table.
	Rows int
	// Selected is the number of rows matching genome and chromosome.
	Selected int
	// Missing is the number of selected rows without usable coordinates.
	Missing int
}

// LoadSynteny reads a synteny table and returns blocks of the given genome
// and chromosome in table order. Rows with missing or non-integer
// coordinates are returned with Missing set, so they can be counted and
// excluded downstream.
//
// The table has a header line. Its delimiter is a tab if the header
// contains one, a comma otherwise.
func LoadSynteny(
	path, genome, chrom string,
) ([]interval.Record, *SyntenyStats, error) {
	rc, err := Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer rc.Close()

	br := bufio.NewReaderSize(rc, 64*1024)
	delim := detectDelimiter(br)

	df := dataframe.ReadCSV(br,
		dataframe.WithDelimiter(delim),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.WithTypes(map[string]series.Type{
			ColStart: series.Float,
			ColEnd:   series.Float,
		}),
		dataframe.NaNValues([]string{"NA", "NaN", "na", "nan", ""}),
	)
	if df.Err != nil {
		return nil, nil, SyntenyReadError(path, df.Err)
	}

	var missing []string
	names := df.Names()
	for _, c := range SyntenyColumns {
		if !slices.Contains(names, c) {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, nil, SyntenyColumnsError(path, missing)
	}

	stats := SyntenyStats{Rows: df.Nrow()}

	// Filter arguments are combined with OR, chained calls give AND.
	sel := df.
		Filter(dataframe.F{Colname: ColGenome, Comparator: series.Eq,
			Comparando: genome}).
		Filter(dataframe.F{Colname: ColChrom, Comparator: series.Eq,
			Comparando: chrom})
	if sel.Err != nil {
		return nil, nil, SyntenyReadError(path, sel.Err)
	}

	starts := sel.Col(ColStart)
	ends := sel.Col(ColEnd)
	res := make([]interval.Record, 0, sel.Nrow())
	for i := range sel.Nrow() {
		start, okStart := coordinate(starts.Elem(i))
		end, okEnd := coordinate(ends.Elem(i))
		rec := interval.Record{
			Interval: interval.Interval{Chrom: chrom, Start: start, End: end},
			Missing:  !okStart || !okEnd,
		}
		if rec.Missing {
			stats.Missing++
		}
		res = append(res, rec)
	}
	stats.Selected = len(res)

	slog.Info("Synteny table loaded",
		"path", path,
		"genome", genome,
		"chromosome", chrom,
		"rows", stats.Rows,
		"selected", stats.Selected,
		"missing", stats.Missing,
	)
	return res, &stats, nil
}

func coordinate(e series.Element) (int, bool) {
	if e.IsNA() {
		return 0, false
	}
	f := e.Float()
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

func detectDelimiter(br *bufio.Reader) rune {
	head, _ := br.Peek(br.Size())
	if i := bytes.IndexByte(head, '\n'); i >= 0 {
		head = head[:i]
	}
	if bytes.IndexByte(head, '\t') >= 0 {
		return '\t'
	}
	return ','
}
