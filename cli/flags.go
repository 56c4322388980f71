package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/katalvlaran/kmst/config"
	"github.com/katalvlaran/kmst/core"
	"github.com/katalvlaran/kmst/export"
)

// solverFlags override config values when set on the command line.
type solverFlags struct {
	backend   string
	gap       float64
	timeLimit time.Duration
	nodeLimit int
	policy    string
	neighbors int
	metric    string
}

func (f *solverFlags) bind(fs *pflag.FlagSet) {
	fs.StringVar(&f.backend, "backend", "", "MILP engine: auto, highs, bb (config solver.backend)")
	fs.Float64Var(&f.gap, "gap", 0, "relative optimality gap (config solver.gap)")
	fs.DurationVar(&f.timeLimit, "time-limit", 0, "solver time limit (config solver.time_limit)")
	fs.IntVar(&f.nodeLimit, "node-limit", 0, "branch-and-bound node cap, 0 = none")
	fs.StringVar(&f.policy, "policy", "", "pruning policy: nearest, root-radius, complete")
	fs.IntVar(&f.neighbors, "neighbors", 0, "nearest neighbours kept per node")
	fs.StringVar(&f.metric, "metric", "", "distance metric: euclidean, manhattan")
}

func (f *solverFlags) apply(fs *pflag.FlagSet, cfg *config.Config) error {
	if fs.Changed("backend") {
		cfg.Solver.Backend = f.backend
	}
	if fs.Changed("gap") {
		cfg.Solver.Gap = f.gap
	}
	if fs.Changed("time-limit") {
		cfg.Solver.TimeLimit = config.Duration(f.timeLimit)
	}
	if fs.Changed("node-limit") {
		cfg.Solver.NodeLimit = f.nodeLimit
	}
	if fs.Changed("policy") {
		cfg.Prune.Policy = f.policy
	}
	if fs.Changed("neighbors") {
		cfg.Prune.Neighbors = f.neighbors
	}
	if fs.Changed("metric") {
		cfg.Metric = f.metric
	}

	return cfg.Validate()
}

// inputFlags choose between a GeoJSON file and a generated network.
type inputFlags struct {
	path   string
	demo   bool
	layout string
	n      int
	seed   int64
	radius float64
}

var errNoInput = errors.New("either --input or --demo is required")

func (f *inputFlags) bindNetwork(fs *pflag.FlagSet) {
	fs.StringVar(&f.layout, "layout", DemoLayout, "generated layout: disc, ring, grid, clusters")
	fs.IntVar(&f.n, "nodes", DemoNodes, "generated candidate count")
	fs.Int64Var(&f.seed, "seed", DemoSeed, "random seed of the generated network")
	fs.Float64Var(&f.radius, "radius", DemoRadius, "disc radius of the generated network")
}

func (f *inputFlags) bind(fs *pflag.FlagSet) {
	fs.StringVarP(&f.path, "input", "i", "", "GeoJSON FeatureCollection of Points; the feature with root=true is the root")
	fs.BoolVar(&f.demo, "demo", false, "use a generated network instead of --input")
	f.bindNetwork(fs)
}

func (f *inputFlags) load() (core.Point, []core.Point, error) {
	switch {
	case f.path != "":
		r, err := os.Open(f.path)
		if err != nil {
			return core.Point{}, nil, err
		}
		defer r.Close()

		return export.ReadPoints(r)
	case f.demo:
		return f.generate()
	default:
		return core.Point{}, nil, errNoInput
	}
}

func (f *inputFlags) generate() (core.Point, []core.Point, error) {
	return Network(f.layout, f.seed, f.n, f.radius)
}

func positive(name string, v int) error {
	if v < 1 {
		return fmt.Errorf("--%s must be ≥ 1, got %d", name, v)
	}

	return nil
}
