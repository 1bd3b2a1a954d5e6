package nullmodel

import (
	"fmt"
	"slices"
)

// Matrix holds null-distribution counts for every family (rows) and
// iteration (columns). It is sized once; every column is written by exactly
// one iteration, so columns can be filled concurrently.
type Matrix struct {
	families   []string
	index      map[string]int
	iterations int
	cells      []int32
}

// NewMatrix allocates a zero matrix.
func NewMatrix(families []string, iterations int) *Matrix {
	res := &Matrix{
		families:   slices.Clone(families),
		index:      make(map[string]int, len(families)),
		iterations: iterations,
		cells:      make([]int32, len(families)*iterations),
	}
	for i, f := range families {
		res.index[f] = i
	}
	return res
}

// Families returns row labels in row order.
func (m *Matrix) Families() []string {
	return slices.Clone(m.families)
}

// Iterations returns the number of columns.
func (m *Matrix) Iterations() int {
	return m.iterations
}

// SetColumn writes the counts of one iteration. counts is indexed in row
// order and must have one value per family.
func (m *Matrix) SetColumn(iter int, counts []int) {
	for f, c := range counts {
		m.cells[f*m.iterations+iter] = int32(c)
	}
}

// Row returns the null distribution of a family, or nil for an unknown
// family.
func (m *Matrix) Row(family string) []int32 {
	f, ok := m.index[family]
	if !ok {
		return nil
	}
	return m.cells[f*m.iterations : (f+1)*m.iterations : (f+1)*m.iterations]
}

// Mean returns the average null count of a family. Unknown families and
// empty matrices have mean 0.
func (m *Matrix) Mean(family string) float64 {
	row := m.Row(family)
	if len(row) == 0 {
		return 0
	}
	var sum int64
	for _, v := range row {
		sum += int64(v)
	}
	return float64(sum) / float64(len(row))
}

// Data is a serializable snapshot of a Matrix.
type Data struct {
	Families   []string
	Iterations int
	Cells      []int32
}

// Data returns a copy of the matrix content.
func (m *Matrix) Data() Data {
	return Data{
		Families:   slices.Clone(m.families),
		Iterations: m.iterations,
		Cells:      slices.Clone(m.cells),
	}
}

// FromData restores a Matrix from a snapshot.
func FromData(d Data) (*Matrix, error) {
	if len(d.Cells) != len(d.Families)*d.Iterations {
		return nil, fmt.Errorf(
			"matrix data has %d cells, expected %d families x %d iterations",
			len(d.Cells), len(d.Families), d.Iterations,
		)
	}
	res := NewMatrix(d.Families, d.Iterations)
	copy(res.cells, d.Cells)
	return res, nil
}
