package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-community/pkg/edgelist"
	"github.com/dd0wney/cluso-community/pkg/graph"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 1.0, cfg.Louvain.Resolution)
	assert.Equal(t, 1e-9, cfg.Louvain.Tolerance)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, 10, cfg.Metrics.TopN)
}

func TestParse_OverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
input:
  path: data/yeast.txt
  delimiter: comma
  header: true
louvain:
  resolution: 0.8
  max_passes: 5
metrics:
  workers: 4
  betweenness: false
logging:
  level: debug
`))
	require.NoError(t, err)

	assert.Equal(t, "data/yeast.txt", cfg.Input.Path)
	assert.Equal(t, 0.8, cfg.Louvain.Resolution)
	assert.Equal(t, 1e-9, cfg.Louvain.Tolerance, "unset keys keep their defaults")
	assert.Equal(t, 5, cfg.Louvain.MaxPasses)
	assert.True(t, cfg.Metrics.Enabled)

	opts := cfg.EdgeListOptions()
	assert.Equal(t, edgelist.Comma, opts.Delimiter)
	assert.True(t, opts.Header)
	assert.Equal(t, graph.CollapseDuplicates, opts.Build.Duplicates)

	lo := cfg.LouvainOptions(nil, nil)
	assert.Equal(t, 0.8, lo.Resolution)
	assert.Equal(t, 5, lo.MaxPasses)

	co := cfg.CollectOptions(nil, nil)
	assert.Equal(t, 4, co.Workers)
	assert.True(t, co.SkipBetweenness)
}

func TestParse_Empty(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParse_UnknownKey(t *testing.T) {
	_, err := Parse([]byte("louvain:\n  resolutoin: 2\n"))
	assert.Error(t, err)
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := Default()
	cfg.Input.Delimiter = "pipe"
	cfg.Louvain.Resolution = -1
	cfg.Louvain.MaxSweeps = -3
	cfg.Metrics.TopN = 0
	cfg.Logging.Level = "chatty"

	err := cfg.Validate()
	require.Error(t, err)
	for _, field := range []string{"input.delimiter", "louvain.resolution", "louvain.max_sweeps", "metrics.top_n", "logging.level"} {
		assert.Contains(t, err.Error(), field)
	}
}

func TestValidate_MetricsDisabled(t *testing.T) {
	cfg := Default()
	cfg.Metrics.Enabled = false
	cfg.Metrics.TopN = 0

	assert.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output:\n  path: out.json.sz\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "out.json.sz", cfg.Output.Path)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
