package db

import (
	"context"

	"github.com/gnames/tebreak/pkg/analysis"
	"github.com/gnames/tebreak/pkg/enrich"
)

// Operator collects results of many runs in one SQLite database. A run is
// identified by its run id, saving the same run again replaces it.
type Operator interface {
	// Connect opens the database file, creating it and its tables when
	// needed.
	Connect(ctx context.Context, path string) error

	// Close closes the database.
	Close() error

	// TableExists checks if a table exists in the database.
	TableExists(ctx context.Context, tableName string) (bool, error)

	// SaveRun stores run parameters and result rows in one transaction.
	SaveRun(ctx context.Context, s analysis.Summary, rows []enrich.Row) error

	// Runs returns summaries of stored runs ordered by genome and
	// chromosome.
	Runs(ctx context.Context) ([]analysis.Summary, error)

	// Results returns result rows of a run in their stored order.
	Results(ctx context.Context, runID string) ([]enrich.Row, error)
}
