// Package lifecycle declares the contracts of tebreak commands. Their
// implementations live in internal io packages, the CLI only knows these
// interfaces.
package lifecycle

import (
	"context"

	"github.com/gnames/tebreak/pkg/analysis"
)

// Runner performs one enrichment analysis: it loads synteny blocks and TE
// annotations, runs the permutation test and writes results.
// Config is provided during construction.
type Runner interface {
	// Run executes the analysis and returns its summary. Output files are
	// written only after the analysis succeeded.
	Run(ctx context.Context) (*analysis.Summary, error)

	// OutputPath returns the path of the result table.
	OutputPath() string
}
