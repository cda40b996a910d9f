package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	nca "github.com/openpkpd/go-nca"
)

func TestLoadConfig(t *testing.T) {
	raw := `
dataset:
  conc_column: CONC
  missing_token: NA
analysis:
  auc_method: linear
  loq: 0.05
  dose: 320
output:
  dir: out
  plots: true
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	csvOpt := cfg.Dataset.CSVOptions()
	assert.Equal(t, "CONC", csvOpt.ConcColumn)
	assert.Equal(t, "NA", csvOpt.MissingToken)
	assert.Equal(t, "ID", csvOpt.IDColumn)

	opt := cfg.Analysis.Options()
	assert.Equal(t, nca.AUCLinear, opt.Method)
	assert.Equal(t, 0.05, opt.LOQ)
	assert.Equal(t, 320.0, opt.Dose)
	assert.Equal(t, nca.DefaultMaxExtrapolationPct, opt.MaxExtrapolationPct)

	assert.Equal(t, "out", cfg.Output.EffectiveDir())
	assert.True(t, cfg.Output.Plots)
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, nca.AUCLinLog, cfg.Analysis.Options().Method)
	assert.Equal(t, "nca-out", cfg.Output.EffectiveDir())
}

func TestLoadConfigBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(":\n  - not yaml"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}
