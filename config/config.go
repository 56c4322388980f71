// Package config loads the YAML configuration of the kmst tool.
//
// Config file locations (priority order):
//  1. the --config flag
//  2. $KMST_CONFIG
//  3. ./kmst.yaml
//  4. $XDG_CONFIG_HOME/kmst/config.yaml or ~/.config/kmst/config.yaml
//
// Missing keys keep their defaults; command-line flags override the file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/kmst"
	"github.com/katalvlaran/kmst/distance"
	"github.com/katalvlaran/kmst/milp/highs"
	"github.com/katalvlaran/kmst/prune"
)

const (
	// EnvConfigPath names an explicit config file.
	EnvConfigPath = "KMST_CONFIG"
	// ConfigFileName is looked up in the working directory.
	ConfigFileName = "kmst.yaml"
	// ConfigDirName is the directory under the XDG config home.
	ConfigDirName = "kmst"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid value")

// Config is the root of the YAML document.
type Config struct {
	Metric        string        `yaml:"metric"`
	MaxCandidates int           `yaml:"max_candidates"`
	Solver        SolverConfig  `yaml:"solver"`
	Prune         PruneConfig   `yaml:"prune"`
	Sweep         SweepConfig   `yaml:"sweep"`
	Log           LogConfig     `yaml:"log"`
	Output        OutputConfig  `yaml:"output"`
	Store         StoreConfig   `yaml:"store"`
	Metrics       MetricsConfig `yaml:"metrics"`
}

// SolverConfig holds the backend choice and solver limits.
type SolverConfig struct {
	Backend   string   `yaml:"backend"` // auto, highs or bb
	Gap       float64  `yaml:"gap"`
	TimeLimit Duration `yaml:"time_limit"`
	NodeLimit int      `yaml:"node_limit"`
}

// PruneConfig selects and tunes the edge pruner.
type PruneConfig struct {
	Policy        string `yaml:"policy"`
	Neighbors     int    `yaml:"neighbors"`
	KeepRootEdges bool   `yaml:"keep_root_edges"`
	MaxAttempts   int    `yaml:"max_attempts"`
}

// SweepConfig controls k sweeps.
type SweepConfig struct {
	Concurrency int `yaml:"concurrency"`
}

// LogConfig selects the logrus level and formatter.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text | json
}

// OutputConfig controls result files.
type OutputConfig struct {
	Dir string `yaml:"dir"`
}

// StoreConfig locates the run history database; empty disables it.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// MetricsConfig locates the Prometheus textfile; empty disables it.
type MetricsConfig struct {
	Textfile string `yaml:"textfile"`
}

// Duration wraps time.Duration for YAML ("90s", "5m").
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)

	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Duration returns the underlying time.Duration.
func (d Duration) Duration() time.Duration { return time.Duration(d) }

// DefaultConfig mirrors the library defaults.
func DefaultConfig() *Config {
	return &Config{
		Metric:        "euclidean",
		MaxCandidates: distance.DefaultMaxCandidates,
		Solver: SolverConfig{
			Backend:   string(kmst.BackendAuto),
			Gap:       kmst.DefaultGap,
			TimeLimit: Duration(kmst.DefaultTimeLimit),
		},
		Prune: PruneConfig{
			Policy:        prune.PolicyNearest.String(),
			Neighbors:     prune.DefaultNeighbors,
			KeepRootEdges: true,
			MaxAttempts:   prune.DefaultMaxAttempts,
		},
		Log:    LogConfig{Level: "info", Format: "text"},
		Output: OutputConfig{Dir: "output"},
	}
}

// Load reads path, or the first file FindConfigPath finds when path is
// empty, over the defaults. It returns the path actually used ("" when
// running on defaults).
func Load(path string) (*Config, string, error) {
	if path == "" {
		path = FindConfigPath()
	}
	if path == "" {
		return DefaultConfig(), "", nil
	}

	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path.
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, path, err
	}

	return cfg, path, nil
}

// Save writes the config as YAML.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0o644)
}

// applyDefaults fills empty strings that have no meaningful zero value.
func (c *Config) applyDefaults() {
	if c.Metric == "" {
		c.Metric = "euclidean"
	}
	if c.Solver.Backend == "" {
		c.Solver.Backend = string(kmst.BackendAuto)
	}
	if c.Prune.Policy == "" {
		c.Prune.Policy = prune.PolicyNearest.String()
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks every field against the ranges the library accepts.
func (c *Config) Validate() error {
	if _, err := metricByName(c.Metric); err != nil {
		return err
	}
	if c.MaxCandidates < 0 {
		return fmt.Errorf("%w: max_candidates %d", ErrInvalid, c.MaxCandidates)
	}
	switch b := kmst.Backend(strings.ToLower(c.Solver.Backend)); {
	case !b.Valid():
		return fmt.Errorf("%w: solver.backend %q (want auto, highs or bb)", ErrInvalid, c.Solver.Backend)
	case b == kmst.BackendHiGHS && !highs.Available:
		return fmt.Errorf("%w: solver.backend: %w", ErrInvalid, highs.ErrUnavailable)
	}
	if c.Solver.Gap < 0 || c.Solver.Gap >= 1 {
		return fmt.Errorf("%w: solver.gap %g outside [0,1)", ErrInvalid, c.Solver.Gap)
	}
	if c.Solver.TimeLimit <= 0 {
		return fmt.Errorf("%w: solver.time_limit must be positive", ErrInvalid)
	}
	if c.Solver.NodeLimit < 0 {
		return fmt.Errorf("%w: solver.node_limit %d", ErrInvalid, c.Solver.NodeLimit)
	}
	if _, err := prune.ParsePolicy(c.Prune.Policy); err != nil {
		return fmt.Errorf("%w: prune.policy: %w", ErrInvalid, err)
	}
	if c.Prune.Neighbors < 1 || c.Prune.MaxAttempts < 1 {
		return fmt.Errorf("%w: prune.neighbors and prune.max_attempts must be ≥ 1", ErrInvalid)
	}
	if c.Sweep.Concurrency < 0 {
		return fmt.Errorf("%w: sweep.concurrency %d", ErrInvalid, c.Sweep.Concurrency)
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %w", ErrInvalid, err)
	}
	if f := strings.ToLower(c.Log.Format); f != "text" && f != "json" {
		return fmt.Errorf("%w: log.format %q", ErrInvalid, c.Log.Format)
	}

	return nil
}

// KMSTOptions translates the config into library options. Callers append
// their own options (logger, recorder) after these.
func (c *Config) KMSTOptions() ([]kmst.Option, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	metric, _ := metricByName(c.Metric)
	policy, _ := prune.ParsePolicy(c.Prune.Policy)

	opts := []kmst.Option{
		kmst.WithMetric(metric),
		kmst.WithMaxCandidates(c.MaxCandidates),
		kmst.WithBackend(kmst.Backend(strings.ToLower(c.Solver.Backend))),
		kmst.WithGap(c.Solver.Gap),
		kmst.WithTimeLimit(c.Solver.TimeLimit.Duration()),
		kmst.WithNodeLimit(c.Solver.NodeLimit),
		kmst.WithPruning(
			prune.WithPolicy(policy),
			prune.WithNeighbors(c.Prune.Neighbors),
			prune.WithKeepRootEdges(c.Prune.KeepRootEdges),
			prune.WithMaxAttempts(c.Prune.MaxAttempts),
		),
	}
	if c.Sweep.Concurrency > 0 {
		opts = append(opts, kmst.WithConcurrency(c.Sweep.Concurrency))
	}

	return opts, nil
}

// Apply configures l's level and formatter.
func (c LogConfig) Apply(l *logrus.Logger) error {
	level, err := logrus.ParseLevel(c.Level)
	if err != nil {
		return fmt.Errorf("%w: log.level: %w", ErrInvalid, err)
	}
	l.SetLevel(level)
	if strings.EqualFold(c.Format, "json") {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return nil
}

func metricByName(name string) (distance.Metric, error) {
	switch strings.ToLower(name) {
	case "euclidean":
		return distance.Euclidean, nil
	case "manhattan":
		return distance.Manhattan, nil
	default:
		return nil, fmt.Errorf("%w: metric %q", ErrInvalid, name)
	}
}
