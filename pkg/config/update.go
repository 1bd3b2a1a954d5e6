package config

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/gnames/gn"
)

// Update applies a slice of Option functions to the Config.
// This is the only way to modify a Config after creation.
// Invalid options are rejected with warnings - config remains in valid state.
func (c *Config) Update(opts []Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// ToOptions converts the Config to a slice of Option functions.
// Only includes persistent fields appropriate for config.yaml.
// Excludes runtime-only fields (targets, inputs, output dir, sqlite,
// windows, HomeDir).
func (c *Config) ToOptions() []Option {
	var res []Option
	var s string
	var i int

	i = c.Analysis.WindowSize
	if i > 0 {
		res = append(res, OptAnalysisWindowSize(i))
	}
	i = c.Analysis.Iterations
	if i > 0 {
		res = append(res, OptAnalysisIterations(i))
	}
	if c.Analysis.AvgCountThreshold >= 0 {
		res = append(res,
			OptAnalysisAvgCountThreshold(c.Analysis.AvgCountThreshold))
	}
	s = c.Analysis.PAdjustMethod
	if s != "" {
		res = append(res, OptAnalysisPAdjustMethod(s))
	}
	s = c.Analysis.LengthModel
	if s != "" {
		res = append(res, OptAnalysisLengthModel(s))
	}
	res = append(res, OptAnalysisRandomSeed(c.Analysis.RandomSeed))

	s = c.Output.Format
	if s != "" {
		res = append(res, OptOutputFormat(s))
	}
	res = append(res, OptOutputWithCache(c.Output.WithCache))

	s = c.Log.Format
	if s != "" {
		res = append(res, OptLogFormat(s))
	}
	s = c.Log.Level
	if s != "" {
		res = append(res, OptLogLevel(s))
	}
	s = c.Log.Destination
	if s != "" {
		res = append(res, OptLogDestination(s))
	}

	i = c.JobsNumber
	if i > 0 {
		res = append(res, OptJobsNumber(i))
	}
	return res
}

func isValidString(name, s string) bool {
	res := s != ""
	if !res {
		gn.Warn("<em>%s</em> cannot be empty, ignoring", name)
	}
	return res
}

func isValidInt(name string, i int) bool {
	res := i > 0
	if !res {
		gn.Warn("<em>%s</em> has to be positive number, ignoring %d", name, i)
	}
	return res
}

func isValidEnum(name, val string) bool {
	s := struct{}{}
	data := map[string]map[string]struct{}{
		"Analysis.PAdjustMethod": {"BH": s, "BY": s, "bonferroni": s,
			"holm": s, "hochberg": s, "none": s},
		"Analysis.LengthModel": {"poisson": s, "fixed": s, "uniform": s},
		"Output.Format": {"tsv": s, "csv": s, "compact": s,
			"pretty": s},
		"Log.Level":       {"debug": s, "info": s, "warn": s, "error": s},
		"Log.Format":      {"json": s, "text": s},
		"Log.Destination": {"file": s, "stderr": s, "stdout": s},
	}
	if _, ok := data[name][val]; ok {
		return true
	}

	vals := slices.Sorted(maps.Keys(data[name]))
	var lines []string
	for _, v := range vals {
		line := fmt.Sprintf("  * %s", v)
		lines = append(lines, line)
	}
	gn.Warn(
		"<em>%s</em> does not support '%s' as a value. "+
			"Valid values are: \n%s\nIgnoring...",
		name, val, strings.Join(lines, "\n"),
	)
	return false
}
