package iodb_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/tebreak/internal/iodb"
	"github.com/gnames/tebreak/pkg/analysis"
	"github.com/gnames/tebreak/pkg/db"
	"github.com/gnames/tebreak/pkg/enrich"
	"github.com/gnames/tebreak/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ db.Operator = iodb.NewOperator()

func ptr(f float64) *float64 {
	return &f
}

func TestSaveRun(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "runs.sqlite")

	op := iodb.NewOperator()
	require.NoError(t, op.Connect(ctx, path))
	defer op.Close()

	for _, table := range []string{"runs", "results"} {
		ok, err := op.TableExists(ctx, table)
		require.NoError(t, err)
		assert.True(t, ok, table)
	}
	ok, err := op.TableExists(ctx, "taxa")
	require.NoError(t, err)
	assert.False(t, ok)

	s := analysis.Summary{
		RunID: "run-2L", Genome: "dmel", Chromosome: "2L",
		ChromLength: 23000000, Blocks: 12, Windows: 24, Families: 3,
		Tested: 1, Iterations: 1000, Seed: 42, LengthModel: "poisson",
		WindowSize: 10000, Threshold: 10, PAdjustMethod: "BH",
		MatrixFromCache: true,
	}
	rows := []enrich.Row{
		{
			Family: "Gypsy", Superfamily: "LTR/Gypsy", Observed: 0,
			Expected: 15, PValue: ptr(0.002), FDR: ptr(0.002),
		},
		{Family: "Copia", Superfamily: "LTR/Copia", Observed: 4,
			Expected: 2, Enrichment: 2},
	}
	require.NoError(t, op.SaveRun(ctx, s, rows))

	// saving again replaces the run
	s.Tested = 0
	rows[0].PValue, rows[0].FDR = nil, nil
	require.NoError(t, op.SaveRun(ctx, s, rows))

	other := s
	other.RunID, other.Chromosome = "run-2R", "2R"
	require.NoError(t, op.SaveRun(ctx, other, rows[1:]))

	runs, err := op.Runs(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, s, runs[0])
	assert.Equal(t, "2R", runs[1].Chromosome)

	res, err := op.Results(ctx, "run-2L")
	require.NoError(t, err)
	assert.Equal(t, rows, res)

	res, err = op.Results(ctx, "run-2R")
	require.NoError(t, err)
	assert.Equal(t, rows[1:], res)
}

func TestResultsFloats(t *testing.T) {
	ctx := context.Background()
	op := iodb.NewOperator()
	require.NoError(t, op.Connect(ctx, filepath.Join(t.TempDir(), "r.db")))
	defer op.Close()

	rows := []enrich.Row{
		{Family: "Jockey", Expected: 12.5, Enrichment: 0.08,
			PValue: ptr(0.3), FDR: ptr(0.6)},
	}
	require.NoError(t, op.SaveRun(ctx, analysis.Summary{RunID: "r"}, rows))
	res, err := op.Results(ctx, "r")
	require.NoError(t, err)
	require.Len(t, res, 1)
	require.NotNil(t, res[0].PValue)
	assert.InDelta(t, 0.3, *res[0].PValue, 1e-12)
	assert.InDelta(t, 0.6, *res[0].FDR, 1e-12)
}

func TestNotConnected(t *testing.T) {
	ctx := context.Background()
	op := iodb.NewOperator()

	tests := []struct {
		msg  string
		code gn.ErrorCode
		fn   func() error
	}{
		{"save", errcode.StoreInsertError, func() error {
			return op.SaveRun(ctx, analysis.Summary{RunID: "r"}, nil)
		}},
		{"runs", errcode.StoreQueryError, func() error {
			_, err := op.Runs(ctx)
			return err
		}},
		{"results", errcode.StoreQueryError, func() error {
			_, err := op.Results(ctx, "r")
			return err
		}},
	}
	for _, v := range tests {
		err := v.fn()
		require.Error(t, err, v.msg)
		var gnErr *gn.Error
		require.True(t, errors.As(err, &gnErr), v.msg)
		assert.Equal(t, v.code, gnErr.Code, v.msg)
	}
	assert.NoError(t, op.Close())
}

func TestConnectError(t *testing.T) {
	ctx := context.Background()
	op := iodb.NewOperator()
	path := filepath.Join(t.TempDir(), "missing", "r.db")
	err := op.Connect(ctx, path)
	require.Error(t, err)
	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr))
	assert.Contains(t,
		[]gn.ErrorCode{errcode.StoreOpenError, errcode.StoreSchemaError},
		gnErr.Code)
	assert.Equal(t, []any{path}, gnErr.Vars)
}
