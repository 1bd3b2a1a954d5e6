// Package iodb implements db.Operator on SQLite with the pure Go
// modernc.org/sqlite driver.
package iodb

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/gnames/tebreak/pkg/analysis"
	"github.com/gnames/tebreak/pkg/db"
	"github.com/gnames/tebreak/pkg/enrich"
	_ "modernc.org/sqlite"
)

type sqliteOperator struct {
	path string
	db   *sql.DB
}

// NewOperator creates a database operator (without connecting).
func NewOperator() db.Operator {
	return &sqliteOperator{}
}

// Connect opens the SQLite file and creates missing tables.
func (o *sqliteOperator) Connect(ctx context.Context, path string) error {
	sdb, err := sql.Open("sqlite", path)
	if err != nil {
		return OpenError(path, err)
	}
	// one writer avoids SQLITE_BUSY from the pool
	sdb.SetMaxOpenConns(1)

	if err = sdb.PingContext(ctx); err != nil {
		sdb.Close()
		return OpenError(path, err)
	}

	for _, q := range schema {
		if _, err = sdb.ExecContext(ctx, q); err != nil {
			sdb.Close()
			return SchemaError(path, err)
		}
	}

	o.path = path
	o.db = sdb
	slog.Info("Results database opened", "path", path)
	return nil
}

// Close closes the database.
func (o *sqliteOperator) Close() error {
	if o.db == nil {
		return nil
	}
	err := o.db.Close()
	o.db = nil
	return err
}

// TableExists checks if a table exists in the database.
func (o *sqliteOperator) TableExists(
	ctx context.Context,
	tableName string,
) (bool, error) {
	if o.db == nil {
		return false, QueryError(tableName, errNotConnected)
	}

	query := `
		SELECT COUNT(*) > 0 FROM sqlite_master
		WHERE type = 'table' AND name = ?
	`
	var exists bool
	err := o.db.QueryRowContext(ctx, query, tableName).Scan(&exists)
	if err != nil {
		return false, QueryError(tableName, err)
	}
	return exists, nil
}

// SaveRun replaces the run and its rows.
func (o *sqliteOperator) SaveRun(
	ctx context.Context,
	s analysis.Summary,
	rows []enrich.Row,
) (err error) {
	if o.db == nil {
		return InsertError(s.RunID, errNotConnected)
	}

	tx, err := o.db.BeginTx(ctx, nil)
	if err != nil {
		return InsertError(s.RunID, err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx,
		`DELETE FROM results WHERE run_id = ?`, s.RunID); err != nil {
		return InsertError(s.RunID, err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT OR REPLACE INTO runs (
			run_id, genome, chromosome, chrom_length, blocks, blocks_excluded,
			annotations, annotations_excluded, windows, families, tested,
			iterations, seed, length_model, window_size, threshold,
			p_adjust_method, matrix_from_cache, saved_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.RunID, s.Genome, s.Chromosome, s.ChromLength, s.Blocks,
		s.BlocksExcluded, s.Annotations, s.AnnotationsExcluded, s.Windows,
		s.Families, s.Tested, s.Iterations, s.Seed, s.LengthModel,
		s.WindowSize, s.Threshold, s.PAdjustMethod, s.MatrixFromCache,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return InsertError(s.RunID, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO results (
			run_id, position, family, superfamily, observed, expected,
			enrichment, p_value, fdr
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return InsertError(s.RunID, err)
	}
	defer stmt.Close()

	for i, r := range rows {
		_, err = stmt.ExecContext(ctx, s.RunID, i, r.Family, r.Superfamily,
			r.Observed, r.Expected, r.Enrichment, nullable(r.PValue),
			nullable(r.FDR))
		if err != nil {
			return InsertError(s.RunID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return InsertError(s.RunID, err)
	}
	slog.Info("Run saved to results database",
		"path", o.path, "run_id", s.RunID, "rows", len(rows))
	return nil
}

// Runs returns summaries of all stored runs.
func (o *sqliteOperator) Runs(ctx context.Context) ([]analysis.Summary, error) {
	if o.db == nil {
		return nil, QueryError("runs", errNotConnected)
	}

	query := `
		SELECT run_id, genome, chromosome, chrom_length, blocks,
			blocks_excluded, annotations, annotations_excluded, windows,
			families, tested, iterations, seed, length_model, window_size,
			threshold, p_adjust_method, matrix_from_cache
		FROM runs
		ORDER BY genome, chromosome, run_id
	`
	rows, err := o.db.QueryContext(ctx, query)
	if err != nil {
		return nil, QueryError("runs", err)
	}
	defer rows.Close()

	var res []analysis.Summary
	for rows.Next() {
		var s analysis.Summary
		err = rows.Scan(
			&s.RunID, &s.Genome, &s.Chromosome, &s.ChromLength, &s.Blocks,
			&s.BlocksExcluded, &s.Annotations, &s.AnnotationsExcluded,
			&s.Windows, &s.Families, &s.Tested, &s.Iterations, &s.Seed,
			&s.LengthModel, &s.WindowSize, &s.Threshold, &s.PAdjustMethod,
			&s.MatrixFromCache,
		)
		if err != nil {
			return nil, QueryError("runs", err)
		}
		res = append(res, s)
	}
	if err = rows.Err(); err != nil {
		return nil, QueryError("runs", err)
	}
	return res, nil
}

// Results returns result rows of a run.
func (o *sqliteOperator) Results(
	ctx context.Context,
	runID string,
) ([]enrich.Row, error) {
	if o.db == nil {
		return nil, QueryError("results", errNotConnected)
	}

	query := `
		SELECT family, superfamily, observed, expected, enrichment,
			p_value, fdr
		FROM results
		WHERE run_id = ?
		ORDER BY position
	`
	rows, err := o.db.QueryContext(ctx, query, runID)
	if err != nil {
		return nil, QueryError("results", err)
	}
	defer rows.Close()

	var res []enrich.Row
	for rows.Next() {
		var r enrich.Row
		var p, fdr sql.NullFloat64
		err = rows.Scan(&r.Family, &r.Superfamily, &r.Observed, &r.Expected,
			&r.Enrichment, &p, &fdr)
		if err != nil {
			return nil, QueryError("results", err)
		}
		r.PValue = nullFloat(p)
		r.FDR = nullFloat(fdr)
		res = append(res, r)
	}
	if err = rows.Err(); err != nil {
		return nil, QueryError("results", err)
	}
	return res, nil
}

func nullFloat(f sql.NullFloat64) *float64 {
	if !f.Valid {
		return nil
	}
	return &f.Float64
}

func nullable(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}
