package config

import (
	"strings"

	"github.com/gnames/gn"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptAnalysisWindowSize sets the length of breakpoint windows in bp.
func OptAnalysisWindowSize(i int) Option {
	return func(c *Config) {
		if isValidInt("Window Size", i) {
			c.Analysis.WindowSize = i
		}
	}
}

// OptAnalysisIterations sets the number of random window sets.
func OptAnalysisIterations(i int) Option {
	return func(c *Config) {
		if isValidInt("Number of Iterations", i) {
			c.Analysis.Iterations = i
		}
	}
}

// OptAnalysisAvgCountThreshold sets the minimal expected count of a tested
// family. Zero means every family is tested.
func OptAnalysisAvgCountThreshold(f float64) Option {
	return func(c *Config) {
		if f < 0 {
			gn.Warn("<em>Average Count Threshold</em> cannot be negative, "+
				"ignoring %g", f)
			return
		}
		c.Analysis.AvgCountThreshold = f
	}
}

// OptAnalysisPAdjustMethod sets the multiple-testing correction.
// Valid values: "BH" (alias "fdr"), "BY", "bonferroni", "holm",
// "hochberg", "none". Case-insensitive.
func OptAnalysisPAdjustMethod(s string) Option {
	s = normPAdjust(s)
	return func(c *Config) {
		if isValidEnum("Analysis.PAdjustMethod", s) {
			c.Analysis.PAdjustMethod = s
		}
	}
}

// OptAnalysisLengthModel sets how lengths of random windows are drawn.
// Valid values: "poisson", "fixed", "uniform".
func OptAnalysisLengthModel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Analysis.LengthModel", s) {
			c.Analysis.LengthModel = s
		}
	}
}

// OptAnalysisTargetGenome sets the genome1 value of selected synteny
// blocks.
// Runtime-only field - not in ToOptions().
func OptAnalysisTargetGenome(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Target Genome", s) {
			c.Analysis.TargetGenome = s
		}
	}
}

// OptAnalysisTargetChromosome sets the chromosome under study.
// Runtime-only field - not in ToOptions().
func OptAnalysisTargetChromosome(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Target Chromosome", s) {
			c.Analysis.TargetChromosome = s
		}
	}
}

// OptAnalysisRandomSeed sets the seed of the permutation test. Any value,
// including 0 and negative numbers, is accepted.
func OptAnalysisRandomSeed(i int64) Option {
	return func(c *Config) {
		c.Analysis.RandomSeed = i
	}
}

// OptAnalysisChromLength overrides the chromosome length.
// Runtime-only field - not in ToOptions().
func OptAnalysisChromLength(i int) Option {
	return func(c *Config) {
		if isValidInt("Chromosome Length", i) {
			c.Analysis.ChromLength = i
		}
	}
}

// OptInputSyntenyPath sets the path to the synteny table.
// Runtime-only field - not in ToOptions().
func OptInputSyntenyPath(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Synteny Path", s) {
			c.Input.SyntenyPath = s
		}
	}
}

// OptInputTEPath sets the path to the TE annotation table.
// Runtime-only field - not in ToOptions().
func OptInputTEPath(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("TE Path", s) {
			c.Input.TEPath = s
		}
	}
}

// OptOutputDir sets the directory of the result table.
// Runtime-only field - not in ToOptions().
func OptOutputDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Output Directory", s) {
			c.Output.Dir = s
		}
	}
}

// OptOutputFormat sets the format of the result table.
// Valid values: "tsv", "csv", "compact", "pretty".
func OptOutputFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Output.Format", s) {
			c.Output.Format = s
		}
	}
}

// OptOutputSQLitePath sets an SQLite database that collects runs.
// Runtime-only field - not in ToOptions().
func OptOutputSQLitePath(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("SQLite Path", s) {
			c.Output.SQLitePath = s
		}
	}
}

// OptOutputWithWindows enables the BED file of breakpoint windows.
// Runtime-only field - not in ToOptions().
func OptOutputWithWindows(b bool) Option {
	return func(c *Config) {
		c.Output.WithWindows = b
	}
}

// OptOutputWithCache enables reuse of cached null matrices.
func OptOutputWithCache(b bool) Option {
	return func(c *Config) {
		c.Output.WithCache = b
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptJobsNumber sets the number of concurrent permutation workers.
// Default is runtime.NumCPU().
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptHomeDir sets the home directory for config, cache, and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}

func normPAdjust(s string) string {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "bh", "fdr":
		return "BH"
	case "by":
		return "BY"
	default:
		return strings.ToLower(s)
	}
}
