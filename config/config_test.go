// Package config_test covers YAML loading, defaults and option mapping.
//
// Focus:
//   - defaults survive partial files
//   - Duration round-trips through YAML
//   - Validate rejects each out-of-range field
//   - KMSTOptions produces options the pipeline accepts
package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/kmst"
	"github.com/katalvlaran/kmst/config"
	"github.com/katalvlaran/kmst/milp/highs"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "kmst.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	return path
}

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := config.DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, kmst.DefaultGap, cfg.Solver.Gap)
	assert.Equal(t, kmst.DefaultTimeLimit, cfg.Solver.TimeLimit.Duration())
	assert.Equal(t, "nearest", cfg.Prune.Policy)
	assert.Equal(t, "auto", cfg.Solver.Backend)
	assert.True(t, cfg.Prune.KeepRootEdges)
}

func TestLoadFromPath_Backend(t *testing.T) {
	cfg, _, err := config.LoadFromPath(writeFile(t, "solver:\n  backend: BB\n"))
	require.NoError(t, err)
	opts, err := cfg.KMSTOptions()
	require.NoError(t, err)
	o := kmst.DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	assert.Equal(t, kmst.BackendBranchAndBound, o.Backend)

	_, _, err = config.LoadFromPath(writeFile(t, "solver:\n  backend: highs\n"))
	if highs.Available {
		assert.NoError(t, err)
	} else {
		assert.ErrorIs(t, err, config.ErrInvalid)
		assert.ErrorIs(t, err, highs.ErrUnavailable)
	}
}

func TestLoadFromPath_PartialKeepsDefaults(t *testing.T) {
	path := writeFile(t, `
solver:
  gap: 0
  time_limit: 90s
prune:
  policy: root-radius
log:
  format: json
store:
  path: runs.db
`)
	cfg, used, err := config.LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, path, used)
	assert.Equal(t, 0.0, cfg.Solver.Gap)
	assert.Equal(t, 90*time.Second, cfg.Solver.TimeLimit.Duration())
	assert.Equal(t, "root-radius", cfg.Prune.Policy)
	assert.Equal(t, 12, cfg.Prune.Neighbors)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "runs.db", cfg.Store.Path)
	assert.Equal(t, "output", cfg.Output.Dir)
}

func TestLoadFromPath_Errors(t *testing.T) {
	_, _, err := config.LoadFromPath(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, _, err = config.LoadFromPath(writeFile(t, "solver: [1, 2"))
	assert.Error(t, err)

	_, _, err = config.LoadFromPath(writeFile(t, "solver:\n  time_limit: soon\n"))
	assert.Error(t, err)

	_, _, err = config.LoadFromPath(writeFile(t, "solver:\n  gap: 1.5\n"))
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestLoad_EnvPath(t *testing.T) {
	path := writeFile(t, "sweep:\n  concurrency: 3\n")
	t.Setenv(config.EnvConfigPath, path)

	cfg, used, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, path, used)
	assert.Equal(t, 3, cfg.Sweep.Concurrency)
}

func TestValidate_Rejects(t *testing.T) {
	cases := map[string]func(c *config.Config){
		"metric":       func(c *config.Config) { c.Metric = "chebyshev" },
		"backend":      func(c *config.Config) { c.Solver.Backend = "cplex" },
		"candidates":   func(c *config.Config) { c.MaxCandidates = -1 },
		"negative gap": func(c *config.Config) { c.Solver.Gap = -0.1 },
		"time limit":   func(c *config.Config) { c.Solver.TimeLimit = 0 },
		"node limit":   func(c *config.Config) { c.Solver.NodeLimit = -5 },
		"policy":       func(c *config.Config) { c.Prune.Policy = "random" },
		"neighbors":    func(c *config.Config) { c.Prune.Neighbors = 0 },
		"attempts":     func(c *config.Config) { c.Prune.MaxAttempts = 0 },
		"concurrency":  func(c *config.Config) { c.Sweep.Concurrency = -1 },
		"log level":    func(c *config.Config) { c.Log.Level = "loud" },
		"log format":   func(c *config.Config) { c.Log.Format = "xml" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), config.ErrInvalid)
		})
	}
}

func TestSave_RoundTrip(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Solver.TimeLimit = config.Duration(45 * time.Second)
	cfg.Prune.Policy = "complete"
	path := filepath.Join(t.TempDir(), "nested", "kmst.yaml")
	require.NoError(t, cfg.Save(path))

	got, _, err := config.LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestKMSTOptions(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Solver.NodeLimit = 50
	cfg.Sweep.Concurrency = 2
	opts, err := cfg.KMSTOptions()
	require.NoError(t, err)

	o := kmst.DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	assert.Equal(t, 50, o.NodeLimit)
	assert.Equal(t, 2, o.Concurrency)
	assert.Equal(t, kmst.DefaultTimeLimit, o.TimeLimit)
	assert.Len(t, o.Prune, 4)

	cfg.Prune.Policy = "bogus"
	_, err = cfg.KMSTOptions()
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestLogConfig_Apply(t *testing.T) {
	l := logrus.New()
	require.NoError(t, config.LogConfig{Level: "debug", Format: "json"}.Apply(l))
	assert.Equal(t, logrus.DebugLevel, l.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, l.Formatter)

	assert.Error(t, config.LogConfig{Level: "nope"}.Apply(l))
}
