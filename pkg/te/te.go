// Package te describes transposable element annotations and the mapping of
// TE families to superfamilies.
package te

import (
	"regexp"
	"slices"
	"strings"

	"github.com/gnames/tebreak/pkg/interval"
)

// UnknownFamily is the family label of annotations whose family could not
// be resolved. It is a valid label and takes part in all statistics.
const UnknownFamily = "unknown_family"

// UnknownSuperfamily marks annotations that did not match any entry of a
// RepeatMasker class map.
const UnknownSuperfamily = "UNKNOWN"

// Annotation is one TE occurrence. Its interval label is the family.
type Annotation struct {
	Seqid      string
	Source     string
	Type       string
	Start      int
	End        int
	Score      string
	Strand     byte // '+', '-' or 0 when absent
	Phase      string
	Attributes string

	Family      string
	Superfamily string

	// Missing is true when start or end could not be read.
	Missing bool
}

// Span returns the annotation as an interval labeled by its family.
func (a Annotation) Span() (interval.Interval, bool) {
	res := interval.Interval{
		Chrom: a.Seqid,
		Start: a.Start,
		End:   a.End,
		Label: a.Family,
	}
	return res, !a.Missing
}

var (
	motifRe  = regexp.MustCompile(`Motif:([^"\s]+)`)
	familyRe = regexp.MustCompile(`(?:^|;)\s*(?:family|Name)=([^;]+)`)
)

// FamilyFromAttributes extracts a family name from a GFF attributes field.
// RepeatMasker style `Target "Motif:Gypsy-1_DM" 1 200` is tried first, then
// GFF3 `family=` and `Name=` keys. UnknownFamily is returned when nothing
// matches.
func FamilyFromAttributes(attr string) string {
	if m := motifRe.FindStringSubmatch(attr); m != nil {
		return m[1]
	}
	if m := familyRe.FindStringSubmatch(attr); m != nil {
		if res := strings.TrimSpace(m[1]); res != "" {
			return res
		}
	}
	return UnknownFamily
}

// MotifFromAttributes returns the `Motif:` name of attributes, or an empty
// string. The name runs up to a quote or whitespace and may contain ';'.
func MotifFromAttributes(attr string) string {
	if m := motifRe.FindStringSubmatch(attr); m != nil {
		return m[1]
	}
	return ""
}

// FamilyMap maps a family to its superfamily. A family seen with several
// superfamilies keeps all of them, de-duplicated and joined with ";".
type FamilyMap struct {
	data map[string][]string
}

// NewFamilyMap builds the map from annotations. Order of joined
// superfamilies follows first appearance.
func NewFamilyMap(anns []Annotation) FamilyMap {
	res := FamilyMap{data: make(map[string][]string)}
	for _, a := range anns {
		sfs, ok := res.data[a.Family]
		if !ok {
			res.data[a.Family] = nil
		}
		if a.Superfamily == "" || slices.Contains(sfs, a.Superfamily) {
			continue
		}
		res.data[a.Family] = append(sfs, a.Superfamily)
	}
	return res
}

// Superfamily returns the joined superfamily of a family, or an empty
// string for an unknown family.
func (fm FamilyMap) Superfamily(family string) string {
	return strings.Join(fm.data[family], ";")
}

// Families returns all families of the map in sorted order.
func (fm FamilyMap) Families() []string {
	res := make([]string, 0, len(fm.data))
	for k := range fm.data {
		res = append(res, k)
	}
	slices.Sort(res)
	return res
}

// Len returns the number of families.
func (fm FamilyMap) Len() int {
	return len(fm.data)
}
