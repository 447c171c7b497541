package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config carries every path and tuning parameter the pipeline needs. The
// data root is an explicit value threaded through the entry point; nothing
// in the repository resolves a project root at init time.
type Config struct {
	// DataRoot anchors all data paths. Raw recordings live under
	// <DataRoot>/<RawDir>, derived datasets under <DataRoot>/<IntermediateDir>.
	DataRoot        string `toml:"data_root"`
	RawDir          string `toml:"raw_dir"`
	IntermediateDir string `toml:"intermediate_dir"`

	// AudioExtension selects which files the raw scan picks up.
	AudioExtension string `toml:"audio_extension"`

	// CensSampleRate is the target feature frame rate in frames per second.
	CensSampleRate int `toml:"cens_sample_rate"`

	// MatrixProfileWindow is the motif subsequence length in feature frames.
	MatrixProfileWindow int `toml:"matrix_profile_window"`

	// Workers bounds the extraction fan-out.
	Workers int `toml:"workers"`

	// MinDurationSeconds is the shortest recording worth analyzing. Shorter
	// clips get a metadata record with a null motif pair.
	MinDurationSeconds float64 `toml:"min_duration_seconds"`

	LogLevel string `toml:"log_level"`
}

// Load reads a TOML config file over the defaults. An empty path returns
// the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// RawRoot returns the directory scanned for input recordings.
func (c *Config) RawRoot() string {
	return filepath.Join(c.DataRoot, c.RawDir)
}

// IntermediatePath returns the path of a named derived dataset.
func (c *Config) IntermediatePath(name string) string {
	return filepath.Join(c.DataRoot, c.IntermediateDir, name)
}
