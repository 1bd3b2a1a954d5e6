/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/tebreak/internal/iofs"
	"github.com/gnames/tebreak/internal/iologger"
	tebreak "github.com/gnames/tebreak/pkg"
	"github.com/gnames/tebreak/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir string
	opts    []config.Option
	cfg     *config.Config
)

// getRootCmd returns the base command with all subcommands attached.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s",
			tebreak.Version, tebreak.Build),
		Use:   "tebreak",
		Short: "Tests TE family enrichment at synteny breakpoints",
		Long: `tebreak tests whether transposable element families are enriched or
depleted in windows flanking synteny blocks of one chromosome, compared to
randomly placed windows of the same number and similar lengths.

Commands:
  - run:    run the permutation test for one genome and chromosome
  - prep:   convert RepeatMasker and GFF files to a TE table
  - clean:  remove cached null distributions

Configuration precedence (highest to lowest):
  1. CLI flags (--window-size, --iterations, etc.)
  2. Environment variables (TEBREAK_*)
  3. Config file (~/.config/tebreak/config.yaml)
  4. Built-in defaults

Environment Variables:
  Nested fields use underscores
  (analysis.n_iterations -> TEBREAK_ANALYSIS_N_ITERATIONS).`,
		PersistentPreRunE: bootstrap,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	rootCmd.SetVersionTemplate("{{.Version}}\n")
	rootCmd.Flags().BoolP("version", "V", false, "version for tebreak")

	rootCmd.AddCommand(getRunCmd())
	rootCmd.AddCommand(getPrepCmd())
	rootCmd.AddCommand(getCleanCmd())

	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// defaults until the config file is read
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	logDir := config.LogDir(homeDir)
	if err = iologger.Init(logDir, defaultLog, false); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	if err = iologger.Init(logDir, cfg.Log, true); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir))
	return nil
}

// Execute runs the root command. It is called by main.main().
func Execute() {
	if err := getRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initDefaults(v)
	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ConfigLoadError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ConfigLoadError(cfgPath, err)
	}

	return &res, nil
}

// initDefaults sets persistent fields to values of config.New(), so keys
// absent from config.yaml do not become zero values.
func initDefaults(v *viper.Viper) {
	d := config.New()

	v.SetDefault("analysis.window_size", d.Analysis.WindowSize)
	v.SetDefault("analysis.n_iterations", d.Analysis.Iterations)
	v.SetDefault("analysis.avg_count_threshold", d.Analysis.AvgCountThreshold)
	v.SetDefault("analysis.p_adjust_method", d.Analysis.PAdjustMethod)
	v.SetDefault("analysis.length_model", d.Analysis.LengthModel)
	v.SetDefault("analysis.random_seed", d.Analysis.RandomSeed)

	v.SetDefault("output.format", d.Output.Format)
	v.SetDefault("output.with_cache", d.Output.WithCache)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.destination", d.Log.Destination)

	v.SetDefault("jobs_number", d.JobsNumber)
}

func initEnvVars(v *viper.Viper) {
	// Only fields of config.ToOptions() are bound, the ones that can be
	// stored in config.yaml.
	v.SetEnvPrefix("TEBREAK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Analysis configuration
	v.BindEnv("analysis.window_size", "TEBREAK_ANALYSIS_WINDOW_SIZE")
	v.BindEnv("analysis.n_iterations", "TEBREAK_ANALYSIS_N_ITERATIONS")
	v.BindEnv("analysis.avg_count_threshold",
		"TEBREAK_ANALYSIS_AVG_COUNT_THRESHOLD")
	v.BindEnv("analysis.p_adjust_method", "TEBREAK_ANALYSIS_P_ADJUST_METHOD")
	v.BindEnv("analysis.length_model", "TEBREAK_ANALYSIS_LENGTH_MODEL")
	v.BindEnv("analysis.random_seed", "TEBREAK_ANALYSIS_RANDOM_SEED")

	// Output configuration
	v.BindEnv("output.format", "TEBREAK_OUTPUT_FORMAT")
	v.BindEnv("output.with_cache", "TEBREAK_OUTPUT_WITH_CACHE")

	// Log configuration
	v.BindEnv("log.level", "TEBREAK_LOG_LEVEL")
	v.BindEnv("log.format", "TEBREAK_LOG_FORMAT")
	v.BindEnv("log.destination", "TEBREAK_LOG_DESTINATION")

	// General configuration
	v.BindEnv("jobs_number", "TEBREAK_JOBS_NUMBER")

	v.AutomaticEnv()
}
