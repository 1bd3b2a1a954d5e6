// Package enrich turns observed and null counts of TE families into a
// ranked table of enrichment statistics.
package enrich

import (
	"cmp"
	"fmt"
	"maps"
	"slices"

	"github.com/gnames/tebreak/pkg/nullmodel"
)

// Epsilon keeps enrichment finite when the expected count is 0.
const Epsilon = 1e-9

// Row is the result for one TE family. Nil PValue and FDR mean the family
// was not tested.
type Row struct {
	Family      string   `json:"family"      yaml:"family"`
	Superfamily string   `json:"superfamily" yaml:"superfamily"`
	Observed    int      `json:"observed"    yaml:"observed"`
	Expected    float64  `json:"expected"    yaml:"expected"`
	Enrichment  float64  `json:"enrichment"  yaml:"enrichment"`
	PValue      *float64 `json:"p_value"     yaml:"p_value"`
	FDR         *float64 `json:"fdr"         yaml:"fdr"`
}

// Tested reports whether the family took part in hypothesis testing.
func (r Row) Tested() bool {
	return r.PValue != nil
}

// Superfamilies resolves the superfamily label of a family.
type Superfamilies interface {
	Superfamily(family string) string
}

// Input collects everything the evaluator needs.
type Input struct {
	// Observed holds counts in the breakpoint windows. Missing families
	// count as 0.
	Observed map[string]int

	// Null is the filled null-count matrix.
	Null *nullmodel.Matrix

	// Superfamilies labels families, may be nil.
	Superfamilies Superfamilies

	// Threshold is the minimal expected count for a family to be tested.
	Threshold float64

	// Method is the multiple-testing correction.
	Method Method
}

// Evaluate computes the result table, one row per family present in the
// null matrix or in the observed counts, sorted by (fdr, p_value) with
// untested rows last.
func Evaluate(in Input) ([]Row, error) {
	if in.Null == nil {
		return nil, fmt.Errorf("null matrix is missing")
	}
	if in.Threshold < 0 {
		return nil, fmt.Errorf("count threshold cannot be negative, got %g",
			in.Threshold)
	}
	if in.Method == "" {
		in.Method = BH
	}

	families := in.Null.Families()
	for f := range maps.Keys(in.Observed) {
		if !slices.Contains(families, f) {
			families = append(families, f)
		}
	}
	slices.Sort(families)

	res := make([]Row, len(families))
	var tested []int
	var ps []float64
	for i, f := range families {
		obs := in.Observed[f]
		exp := in.Null.Mean(f)
		row := Row{
			Family:     f,
			Observed:   obs,
			Expected:   exp,
			Enrichment: float64(obs) / (exp + Epsilon),
		}
		if in.Superfamilies != nil {
			row.Superfamily = in.Superfamilies.Superfamily(f)
		}
		if exp >= in.Threshold {
			if dist := in.Null.Row(f); len(dist) > 0 {
				p := TwoSided(obs, dist)
				row.PValue = &p
				tested = append(tested, i)
				ps = append(ps, p)
			}
		}
		res[i] = row
	}

	adj, err := Adjust(in.Method, ps)
	if err != nil {
		return nil, err
	}
	for k, i := range tested {
		q := adj[k]
		res[i].FDR = &q
	}

	Sort(res)
	return res, nil
}

// Sort orders rows ascending by FDR, then p-value, then family name.
// Rows without FDR or p-value go last.
func Sort(rows []Row) {
	slices.SortStableFunc(rows, func(a, b Row) int {
		if c := cmpOptional(a.FDR, b.FDR); c != 0 {
			return c
		}
		if c := cmpOptional(a.PValue, b.PValue); c != 0 {
			return c
		}
		return cmp.Compare(a.Family, b.Family)
	})
}

func cmpOptional(a, b *float64) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	return cmp.Compare(*a, *b)
}
