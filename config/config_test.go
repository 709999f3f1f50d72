package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subwordlab/subword/corpus"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, DefaultNumMerges, cfg.NumMerges)
	assert.Equal(t, "line", cfg.LoadMode)
	assert.False(t, cfg.Lowercase)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
num_merges: 500
lowercase: true
input_dir: /data/raw
output_dir: /data/vocab
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 500, cfg.NumMerges)
	assert.True(t, cfg.Lowercase)
	assert.Equal(t, "/data/raw", cfg.InputDir)
	assert.Equal(t, "/data/vocab", cfg.OutputDir)
	assert.Equal(t, "line", cfg.LoadMode, "unset fields keep defaults")
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadFileMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("num_merges: [not an int\n"), 0644))
	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvInputDir, "/env/in")
	t.Setenv(EnvOutputDir, "/env/out")

	cfg := Default()
	cfg.InputDir = "/file/in"
	cfg.ApplyEnv()
	assert.Equal(t, "/env/in", cfg.InputDir)
	assert.Equal(t, "/env/out", cfg.OutputDir)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.InputDir = "/data/raw"
	assert.NoError(t, cfg.Validate())

	bad := cfg
	bad.NumMerges = 0
	assert.Error(t, bad.Validate())

	bad = cfg
	bad.LoadMode = "telegraph"
	assert.ErrorIs(t, bad.Validate(), corpus.ErrUnsupportedMode)

	bad = cfg
	bad.InputDir = ""
	assert.Error(t, bad.Validate())
}

func TestEnsureDirs(t *testing.T) {
	cfg := Default()
	cfg.OutputDir = filepath.Join(t.TempDir(), "nested", "vocab")
	require.NoError(t, cfg.EnsureDirs())
	info, err := os.Stat(cfg.OutputDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	cfg.OutputDir = ""
	assert.NoError(t, cfg.EnsureDirs(), "empty output dir is skipped")
}
