// Package iotesting provides shared fixtures for tests that run the whole
// pipeline. This is an internal package for test infrastructure only.
package iotesting

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/tebreak/pkg/config"
)

const (
	// TestGenome is the target genome of fixtures.
	TestGenome = "dmel"

	// TestChromosome is the target chromosome of fixtures.
	TestChromosome = "2L"

	// TestChromLength is the chromosome length used by GetTestConfig.
	TestChromLength = 100_000
)

// SyntenyTSV has three dmel 2L blocks, plus rows that must be filtered
// out by genome or chromosome.
const SyntenyTSV = `genome1	chr1	startBp1	endBp1
dmel	2L	10000	20000
dmel	2L	40000	50000
dmel	2L	70000	80000
dmel	3R	1000	2000
dsim	2L	5000	6000
`

// TETable has two Gypsy elements in breakpoint windows of 1000 bp and two
// Copia elements away from them.
const TETable = `2L	RM	similarity	9500	9600	1	+	.	Target "Motif:Gypsy" 1 100	LTR/Gypsy
2L	RM	similarity	20500	20700	1	+	.	Target "Motif:Gypsy" 1 200	LTR/Gypsy
2L	RM	similarity	60000	60100	1	-	.	Target "Motif:Copia" 1 100	LTR/Copia
2L	RM	similarity	95000	95100	1	-	.	Target "Motif:Copia" 1 100	LTR/Copia
3R	RM	similarity	100	200	1	-	.	Target "Motif:Copia" 1 100	LTR/Copia
`

// WriteFile writes content to dir/name and returns the path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	err := os.WriteFile(path, []byte(content), 0644)
	if err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}

// GetTestConfig returns a configuration for fixture inputs. Home, cache and
// output directories live in a temporary directory, so tests never touch
// ~/.cache/tebreak. Options are applied after the defaults of the fixture.
//
// Usage:
//
//	func TestSomething(t *testing.T) {
//	    cfg := iotesting.GetTestConfig(t, config.OptOutputFormat("csv"))
//	    s, err := iorun.New(cfg).Run(context.Background())
//	}
func GetTestConfig(t *testing.T, opts ...config.Option) *config.Config {
	t.Helper()

	dir := t.TempDir()
	syn := WriteFile(t, dir, "synteny.tsv", SyntenyTSV)
	te := WriteFile(t, dir, "te.tsv", TETable)

	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptHomeDir(dir),
		config.OptAnalysisTargetGenome(TestGenome),
		config.OptAnalysisTargetChromosome(TestChromosome),
		config.OptAnalysisIterations(50),
		config.OptAnalysisWindowSize(1000),
		config.OptAnalysisAvgCountThreshold(0),
		config.OptAnalysisChromLength(TestChromLength),
		config.OptInputSyntenyPath(syn),
		config.OptInputTEPath(te),
		config.OptOutputDir(filepath.Join(dir, "out")),
		config.OptJobsNumber(2),
	})
	cfg.Update(opts)
	return cfg
}
