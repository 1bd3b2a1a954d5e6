package iooutput

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	tebreak "github.com/gnames/tebreak/pkg"
	"github.com/gnames/tebreak/pkg/analysis"
	"github.com/gnames/tebreak/pkg/config"
	"gopkg.in/yaml.v3"
)

// Manifest records how a result table was produced.
type Manifest struct {
	Version  string                `yaml:"version"`
	Created  string                `yaml:"created"`
	Results  string                `yaml:"results"`
	Windows  string                `yaml:"windows,omitempty"`
	Input    config.InputConfig    `yaml:"input"`
	Analysis config.AnalysisConfig `yaml:"analysis"`
	Summary  analysis.Summary      `yaml:"summary"`
}

// ManifestPath returns the manifest path that belongs to a result table.
func ManifestPath(dir, chrom string) string {
	return filepath.Join(dir, fmt.Sprintf("te_enrichment_%s.yaml", chrom))
}

// NewManifest creates a manifest for a finished run.
func NewManifest(
	cfg *config.Config,
	summary analysis.Summary,
	results, windows string,
) Manifest {
	return Manifest{
		Version:  tebreak.Version,
		Created:  time.Now().UTC().Format(time.RFC3339),
		Results:  filepath.Base(results),
		Windows:  baseOrEmpty(windows),
		Input:    cfg.Input,
		Analysis: cfg.Analysis,
		Summary:  summary,
	}
}

// WriteManifest writes the manifest as YAML.
func WriteManifest(path string, m Manifest) error {
	err := WriteAtomic(path, func(w io.Writer) error {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(m); err != nil {
			return err
		}
		return enc.Close()
	})
	if err != nil {
		return ManifestError(path, err)
	}
	return nil
}

// ReadManifest decodes a manifest.
func ReadManifest(r io.Reader) (Manifest, error) {
	var res Manifest
	err := yaml.NewDecoder(r).Decode(&res)
	return res, err
}

func baseOrEmpty(path string) string {
	if path == "" {
		return ""
	}
	return filepath.Base(path)
}
