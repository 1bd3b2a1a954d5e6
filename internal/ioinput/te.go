package ioinput

import (
	"bufio"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/gnames/tebreak/pkg/te"
)

// TEColumns is the number of columns of a TE table: the nine GFF columns
// followed by the superfamily.
const TEColumns = 10

// TEStats describes a loaded TE table.
type TEStats struct {
	// Lines is the number of data lines, without comments and blank lines.
	Lines int
	// Selected is the number of annotations on the requested chromosome.
	Selected int
	// Missing is the number of selected annotations without usable
	// coordinates.
	Missing int
	// Unknown is the number of selected annotations without a family.
	Unknown int
}

// LoadTE reads a tab-separated TE table and returns annotations located
// on chrom. Lines starting with '#' are comments. A line with only the
// nine GFF columns has an empty superfamily. Annotations with missing or
// unreadable coordinates are returned with Missing set.
func LoadTE(path, chrom string) ([]te.Annotation, *TEStats, error) {
	rc, err := Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer rc.Close()

	var stats TEStats
	var res []te.Annotation

	sc := bufio.NewScanner(rc)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	var lineNum int
	for sc.Scan() {
		lineNum++
		line := strings.TrimRight(sc.Text(), "\r")
		if line == "" || line[0] == '#' {
			continue
		}
		stats.Lines++

		fields := strings.Split(line, "\t")
		if len(fields) < TEColumns-1 {
			err = fmt.Errorf("expected at least %d tab-separated columns, got %d",
				TEColumns-1, len(fields))
			return nil, nil, TEReadError(path, lineNum, err)
		}
		if fields[0] != chrom {
			continue
		}

		ann := parseAnnotation(fields)
		if ann.Missing {
			stats.Missing++
		}
		if ann.Family == te.UnknownFamily {
			stats.Unknown++
		}
		res = append(res, ann)
	}
	if err = sc.Err(); err != nil {
		return nil, nil, TEReadError(path, lineNum, err)
	}
	stats.Selected = len(res)

	slog.Info("TE table loaded",
		"path", path,
		"chromosome", chrom,
		"lines", stats.Lines,
		"selected", stats.Selected,
		"missing", stats.Missing,
		"unknown_family", stats.Unknown,
	)
	return res, &stats, nil
}

func parseAnnotation(fields []string) te.Annotation {
	res := te.Annotation{
		Seqid:      fields[0],
		Source:     fields[1],
		Type:       fields[2],
		Score:      fields[5],
		Phase:      fields[7],
		Attributes: fields[8],
		Family:     te.FamilyFromAttributes(fields[8]),
	}
	if len(fields) >= TEColumns {
		res.Superfamily = strings.TrimSpace(fields[9])
	}
	if s := fields[6]; s == "+" || s == "-" {
		res.Strand = s[0]
	}

	var errStart, errEnd error
	res.Start, errStart = strconv.Atoi(strings.TrimSpace(fields[3]))
	res.End, errEnd = strconv.Atoi(strings.TrimSpace(fields[4]))
	res.Missing = errStart != nil || errEnd != nil
	return res
}
