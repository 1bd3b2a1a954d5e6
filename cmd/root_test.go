package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gnames/tebreak/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetRootCmd verifies the root command and its subcommands.
func TestGetRootCmd(t *testing.T) {
	cmd := getRootCmd()
	require.NotNil(t, cmd)
	assert.Equal(t, "tebreak", cmd.Use)
	assert.NotNil(t, cmd.PersistentPreRunE,
		"PersistentPreRunE should be set for bootstrap")
	assert.True(t, cmd.SilenceErrors)
	assert.True(t, cmd.SilenceUsage)

	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"run", "prep", "clean"}, names)
}

// TestGetRootCmdVersion verifies version output with long and short flags.
func TestGetRootCmdVersion(t *testing.T) {
	tests := []struct {
		msg  string
		flag string
	}{
		{"long", "--version"},
		{"short", "-V"},
	}

	for _, v := range tests {
		cmd := getRootCmd()
		cmd.Version = "version: v1.2.3\nbuild:   abc123"

		buf := new(bytes.Buffer)
		cmd.SetOut(buf)
		cmd.SetArgs([]string{v.flag})

		err := cmd.Execute()
		require.NoError(t, err, v.msg)

		output := buf.String()
		assert.Contains(t, output, "v1.2.3", v.msg)
		assert.Contains(t, output, "abc123", v.msg)
		assert.NotContains(t, output, "tebreak version", v.msg)
	}
}

// TestGetRootCmdHelp verifies help text content.
func TestGetRootCmdHelp(t *testing.T) {
	cmd := getRootCmd()

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--help"})

	err := cmd.Execute()
	require.NoError(t, err)

	helpText := buf.String()
	assert.Contains(t, helpText, "tebreak")
	assert.Contains(t, helpText, "synteny")
	assert.Contains(t, helpText, "TEBREAK_")
}

// TestGetRootCmdInvalidCommand verifies error on invalid command.
func TestGetRootCmdInvalidCommand(t *testing.T) {
	cmd := getRootCmd()

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"nonexistent-command"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.True(t,
		strings.Contains(buf.String(), "unknown") ||
			strings.Contains(err.Error(), "unknown"))
}

// TestInitConfigPartial verifies that keys missing from config.yaml keep
// their defaults, while keys that are present, including zero values,
// override them.
func TestInitConfigPartial(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}
	tests := []struct {
		msg       string
		yaml      string
		window    int
		threshold float64
		seed      int64
		withCache bool
		format    string
	}{
		{
			msg:       "only window size",
			yaml:      "analysis:\n  window_size: 5000\n",
			window:    5000,
			threshold: 10,
			seed:      42,
			withCache: true,
			format:    "tsv",
		},
		{
			msg:       "empty file",
			yaml:      "",
			window:    10_000,
			threshold: 10,
			seed:      42,
			withCache: true,
			format:    "tsv",
		},
		{
			msg: "explicit zero values",
			yaml: "analysis:\n  avg_count_threshold: 0\n  random_seed: 0\n" +
				"output:\n  with_cache: false\n  format: csv\n",
			window:    10_000,
			threshold: 0,
			seed:      0,
			withCache: false,
			format:    "csv",
		},
	}

	for _, v := range tests {
		home := t.TempDir()
		path := config.ConfigFilePath(home)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755), v.msg)
		require.NoError(t, os.WriteFile(path, []byte(v.yaml), 0644), v.msg)

		cfgViper, err := initConfig(home)
		require.NoError(t, err, v.msg)

		res := config.New()
		res.Update(cfgViper.ToOptions())
		assert.Equal(t, v.window, res.Analysis.WindowSize, v.msg)
		assert.Equal(t, v.threshold, res.Analysis.AvgCountThreshold, v.msg)
		assert.Equal(t, v.seed, res.Analysis.RandomSeed, v.msg)
		assert.Equal(t, v.withCache, res.Output.WithCache, v.msg)
		assert.Equal(t, v.format, res.Output.Format, v.msg)
		assert.Equal(t, 1_000, res.Analysis.Iterations, v.msg)
		assert.Equal(t, "BH", res.Analysis.PAdjustMethod, v.msg)
		assert.Equal(t, "poisson", res.Analysis.LengthModel, v.msg)
		assert.Equal(t, "info", res.Log.Level, v.msg)
		assert.Equal(t, config.New().JobsNumber, res.JobsNumber, v.msg)
	}
}
