// Package config holds the explicit configuration for subword training runs.
// A Config is constructed once (defaults, then an optional YAML file, then
// environment and flag overrides) and passed by value into the pipelines;
// there is no global configuration state.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
	"k8s.io/klog/v2"

	"github.com/subwordlab/subword/corpus"
)

// Environment variables honored by ApplyEnv.
const (
	EnvInputDir  = "SUBWORD_INPUT_DIR"
	EnvOutputDir = "SUBWORD_OUTPUT_DIR"
)

// DefaultNumMerges is the merge budget used when the configuration does not
// set one.
const DefaultNumMerges = 10000

// Config configures a training or preprocessing run.
type Config struct {
	// NumMerges is the BPE merge budget. More merges means a larger subword
	// vocabulary.
	NumMerges int `yaml:"num_merges"`

	// Lowercase folds words to lower case during corpus extraction. It
	// affects word extraction only, never the trainer itself.
	Lowercase bool `yaml:"lowercase"`

	// InputDir is the directory scanned for raw .txt corpus files.
	InputDir string `yaml:"input_dir"`

	// OutputDir is the destination for training artifacts. When empty, the
	// training pipeline skips saving and only logs a warning.
	OutputDir string `yaml:"output_dir"`

	// LoadMode selects the text loading strategy: "line" (default), "chunk"
	// or "mmap".
	LoadMode string `yaml:"load_mode"`

	// CheckpointWordCounts writes the extracted word-frequency table next to
	// the artifacts (JSON and parquet) before training starts.
	CheckpointWordCounts bool `yaml:"checkpoint_word_counts"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		NumMerges: DefaultNumMerges,
		LoadMode:  string(corpus.ModeLine),
	}
}

// LoadFile reads a YAML configuration file over the defaults. Fields absent
// from the file keep their default values.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "failed to read config file %q", path)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "failed to parse config file %q", path)
	}
	klog.Infof("loaded configuration from %s", path)
	return cfg, nil
}

// ApplyEnv overrides directories from the environment, when set.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvInputDir); v != "" {
		klog.Infof("overriding input_dir from %s: %s", EnvInputDir, v)
		c.InputDir = v
	}
	if v := os.Getenv(EnvOutputDir); v != "" {
		klog.Infof("overriding output_dir from %s: %s", EnvOutputDir, v)
		c.OutputDir = v
	}
}

// Validate reports configuration errors before a run starts.
func (c Config) Validate() error {
	if c.NumMerges <= 0 {
		return errors.Errorf("num_merges must be positive, got %d", c.NumMerges)
	}
	switch corpus.LoadMode(c.LoadMode) {
	case "", corpus.ModeLine, corpus.ModeChunk, corpus.ModeMmap:
	default:
		return errors.Wrapf(corpus.ErrUnsupportedMode, "load_mode %q", c.LoadMode)
	}
	if c.InputDir == "" {
		return errors.New("input_dir must be set")
	}
	return nil
}

// EnsureDirs creates the output directory if it is configured and absent.
func (c Config) EnsureDirs() error {
	if c.OutputDir == "" {
		return nil
	}
	if err := os.MkdirAll(c.OutputDir, 0755); err != nil {
		return errors.Wrapf(err, "failed to create output directory %q", c.OutputDir)
	}
	return nil
}
