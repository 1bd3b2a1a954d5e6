package nullmodel_test

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync/atomic"
	"testing"

	"github.com/gnames/tebreak/pkg/interval"
	"github.com/gnames/tebreak/pkg/nullmodel"
	"github.com/gnames/tebreak/pkg/overlap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counter(t *testing.T) *overlap.Counter {
	t.Helper()
	var ivs []interval.Interval
	for i := range 500 {
		label := "Gypsy"
		if i%3 == 0 {
			label = "Copia"
		}
		s := 1 + i*200
		ivs = append(ivs, interval.Interval{
			Chrom: "chr1", Start: s, End: s + 150, Label: label,
		})
	}
	res, err := overlap.NewCounter(ivs)
	require.NoError(t, err)
	return res
}

func sampler(t *testing.T, jobs int) *nullmodel.Sampler {
	lm, err := nullmodel.NewLengthModel(nullmodel.PoissonModel, 500)
	require.NoError(t, err)
	return &nullmodel.Sampler{
		Chrom:       "chr1",
		ChromLength: 100_000,
		WindowCount: 6,
		Lengths:     lm,
		Counter:     counter(t),
		Seed:        42,
		Iterations:  200,
		Jobs:        jobs,
	}
}

func TestLengthModels(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 7))
	tests := []struct {
		name string
		tol  float64
	}{
		{nullmodel.PoissonModel, 5},
		{nullmodel.UniformModel, 15},
		{nullmodel.FixedModel, 0},
	}

	for _, v := range tests {
		lm, err := nullmodel.NewLengthModel(v.name, 1000)
		require.NoError(t, err)
		assert.Equal(t, v.name, lm.Name())

		var sum int
		n := 20_000
		for range n {
			l := lm.Length(rng)
			require.GreaterOrEqual(t, l, 1)
			sum += l
		}
		mean := float64(sum) / float64(n)
		assert.InDelta(t, 1000, mean, v.tol, v.name)
	}

	_, err := nullmodel.NewLengthModel("gamma", 10)
	assert.Error(t, err)
	_, err = nullmodel.NewLengthModel(nullmodel.FixedModel, 0)
	assert.Error(t, err)
}

func TestWindowsInsideChromosome(t *testing.T) {
	s := sampler(t, 1)
	for i := range 50 {
		ws := s.Windows(i)
		assert.Len(t, ws, s.WindowCount)
		for _, w := range ws {
			assert.GreaterOrEqual(t, w.Start, 1)
			assert.LessOrEqual(t, w.End, s.ChromLength)
			assert.NoError(t, w.Check())
		}
	}
	assert.Equal(t, s.Windows(3), s.Windows(3))
	assert.NotEqual(t, s.Windows(3), s.Windows(4))
}

func TestRunDeterministicAcrossJobs(t *testing.T) {
	ctx := context.Background()
	m1, err := sampler(t, 1).Run(ctx, nil)
	require.NoError(t, err)

	var calls atomic.Int64
	m8, err := sampler(t, 8).Run(ctx, func() { calls.Add(1) })
	require.NoError(t, err)

	assert.Equal(t, int64(200), calls.Load())
	assert.Equal(t, m1.Data(), m8.Data())
	assert.Equal(t, []string{"Copia", "Gypsy"}, m1.Families())
	assert.Len(t, m1.Row("Gypsy"), 200)
	assert.Greater(t, m1.Mean("Gypsy"), m1.Mean("Copia"))
}

func TestRunDegenerateChromosome(t *testing.T) {
	s := sampler(t, 2)
	s.ChromLength = 10
	s.Lengths = nullmodel.Fixed{Size: 500}
	m, err := s.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 200, m.Iterations())
	for _, f := range m.Families() {
		assert.Equal(t, 0.0, m.Mean(f))
	}
}

func TestRunErrors(t *testing.T) {
	s := sampler(t, 1)
	s.ChromLength = 0
	_, err := s.Run(context.Background(), nil)
	var cle *nullmodel.ChromLengthError
	assert.True(t, errors.As(err, &cle))

	s = sampler(t, 1)
	s.Iterations = 0
	_, err = s.Run(context.Background(), nil)
	assert.Error(t, err)

	s = sampler(t, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.Run(ctx, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMatrixData(t *testing.T) {
	m := nullmodel.NewMatrix([]string{"a", "b"}, 3)
	m.SetColumn(0, []int{1, 4})
	m.SetColumn(2, []int{2, 5})

	assert.Equal(t, []int32{1, 0, 2}, m.Row("a"))
	assert.Equal(t, []int32{4, 0, 5}, m.Row("b"))
	assert.Nil(t, m.Row("c"))
	assert.InDelta(t, 1.0, m.Mean("a"), 1e-12)
	assert.Equal(t, 0.0, m.Mean("c"))

	m2, err := nullmodel.FromData(m.Data())
	require.NoError(t, err)
	assert.Equal(t, m.Row("b"), m2.Row("b"))

	_, err = nullmodel.FromData(nullmodel.Data{Families: []string{"a"}, Iterations: 2})
	assert.Error(t, err)
}
