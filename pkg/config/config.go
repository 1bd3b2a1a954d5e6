// Package config provides configuration management for tebreak.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Option functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is valid except for the required run
// parameters: target genome, target chromosome and input files
// - All mutations go through Option functions
// - Invalid options are rejected with gn.Warn(), config keeps its old value
// - Validate() checks the whole config before a run starts
// - ToOptions() converts persistent fields (those in config.yaml)
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Analysis: window_size, n_iterations, avg_count_threshold,
//     p_adjust_method, length_model, random_seed
//   - Output: format, with_cache
//   - Log: level, format, destination
//   - General: jobs_number
//
// Runtime-only fields (CLI flags only):
//   - Analysis.TargetGenome, TargetChromosome, ChromLength
//   - Input.SyntenyPath, TEPath
//   - Output.Dir, SQLitePath, WithWindows
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use TEBREAK_ prefix with underscores for nesting:
//
//	TEBREAK_ANALYSIS_WINDOW_SIZE=10000
//	TEBREAK_ANALYSIS_N_ITERATIONS=1000
//	TEBREAK_LOG_LEVEL=info
//	TEBREAK_JOBS_NUMBER=8
package config

import (
	"runtime"
)

// Config represents the complete tebreak configuration.
type Config struct {
	// Analysis contains parameters of the permutation test.
	Analysis AnalysisConfig `mapstructure:"analysis" yaml:"analysis"`

	// Input points to the synteny and TE tables.
	Input InputConfig `mapstructure:"input" yaml:"input"`

	// Output determines where and how results are written.
	Output OutputConfig `mapstructure:"output" yaml:"output"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of concurrent permutation workers.
	// Default value is set according to the number of available threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number" validate:"gt=0"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string `yaml:"-"`
}

// AnalysisConfig contains parameters of the permutation test.
type AnalysisConfig struct {
	// WindowSize is the length in bp of the windows flanking each synteny
	// block, and the mean length of random windows.
	WindowSize int `mapstructure:"window_size" yaml:"window_size" validate:"gt=0"`

	// Iterations is the number of random window sets.
	Iterations int `mapstructure:"n_iterations" yaml:"n_iterations" validate:"gt=0"`

	// AvgCountThreshold is the minimal expected count for a family to be
	// tested.
	AvgCountThreshold float64 `mapstructure:"avg_count_threshold" yaml:"avg_count_threshold" validate:"gte=0"`

	// PAdjustMethod is the multiple-testing correction.
	// Valid values: "BH", "BY", "bonferroni", "holm", "hochberg", "none".
	PAdjustMethod string `mapstructure:"p_adjust_method" yaml:"p_adjust_method" validate:"oneof=BH BY bonferroni holm hochberg none"`

	// LengthModel draws the lengths of random windows.
	// Valid values: "poisson", "fixed", "uniform".
	LengthModel string `mapstructure:"length_model" yaml:"length_model" validate:"oneof=poisson fixed uniform"`

	// TargetGenome selects synteny blocks by the genome1 column.
	TargetGenome string `mapstructure:"target_genome" yaml:"target_genome" validate:"required"`

	// TargetChromosome selects synteny blocks by chr1 and TE annotations
	// by seqid.
	TargetChromosome string `mapstructure:"target_chromosome" yaml:"target_chromosome" validate:"required"`

	// RandomSeed makes runs reproducible.
	RandomSeed int64 `mapstructure:"random_seed" yaml:"random_seed"`

	// ChromLength overrides the chromosome length. When 0, the length is
	// the largest end coordinate among synteny blocks and TE annotations.
	ChromLength int `mapstructure:"chrom_length" yaml:"chrom_length" validate:"gte=0"`
}

// InputConfig points to input tables.
type InputConfig struct {
	// SyntenyPath is a tab or comma separated synteny table with
	// genome1, chr1, startBp1, endBp1 columns. Can be gzipped.
	SyntenyPath string `mapstructure:"synteny" yaml:"synteny" validate:"required"`

	// TEPath is a 10-column TE annotation table. Can be gzipped.
	TEPath string `mapstructure:"te" yaml:"te" validate:"required"`
}

// OutputConfig determines where and how results are written.
type OutputConfig struct {
	// Dir is the directory for the result table.
	Dir string `mapstructure:"dir" yaml:"dir" validate:"required"`

	// Format of the result table.
	// Valid values: "tsv", "csv", "compact", "pretty".
	Format string `mapstructure:"format" yaml:"format" validate:"oneof=tsv csv compact pretty"`

	// SQLitePath, if not empty, is an SQLite database where the run and
	// its rows are appended.
	SQLitePath string `mapstructure:"sqlite" yaml:"sqlite"`

	// WithWindows writes observed breakpoint windows as a BED file.
	WithWindows bool `mapstructure:"with_windows" yaml:"with_windows"`

	// WithCache reuses null matrices of identical earlier runs.
	WithCache bool `mapstructure:"with_cache" yaml:"with_cache"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json' or 'text'.
	Format string `mapstructure:"format"      yaml:"format"      validate:"oneof=json text"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"       validate:"oneof=debug info warn error"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination" validate:"oneof=file stderr stdout"`
}

// New creates a Config with default values.
// Target genome, target chromosome and input paths have no defaults and
// must be set before Validate() succeeds.
func New() *Config {
	res := &Config{
		Analysis: AnalysisConfig{
			WindowSize:        10_000,
			Iterations:        1_000,
			AvgCountThreshold: 10,
			PAdjustMethod:     "BH",
			LengthModel:       "poisson",
			RandomSeed:        42,
		},
		Output: OutputConfig{
			Dir:       ".",
			Format:    "tsv",
			WithCache: true,
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(),
	}

	return res
}
