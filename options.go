package kmst

import (
	"io"
	"runtime"
	"time"

	"github.com/katalvlaran/kmst/distance"
	"github.com/katalvlaran/kmst/milp"
	"github.com/katalvlaran/kmst/milp/highs"
	"github.com/katalvlaran/kmst/prune"
	"github.com/sirupsen/logrus"
)

// Defaults.
const (
	DefaultGap       = 0.01
	DefaultTimeLimit = 300 * time.Second
)

// Backend names the MILP engine used when no Solver is set.
type Backend string

// Backends.
const (
	// BackendAuto picks HiGHS when it is linked, else BackendBranchAndBound.
	BackendAuto Backend = "auto"

	// BackendHiGHS is the HiGHS engine (package milp/highs).
	BackendHiGHS Backend = "highs"

	// BackendBranchAndBound is the built-in dense-simplex branch and bound.
	BackendBranchAndBound Backend = "bb"
)

// Valid reports whether b is a known backend name. Empty means auto.
func (b Backend) Valid() bool {
	switch b {
	case "", BackendAuto, BackendHiGHS, BackendBranchAndBound:
		return true
	default:
		return false
	}
}

// Resolve maps BackendAuto onto the engine this build will use.
func (b Backend) Resolve() Backend {
	if b != BackendAuto && b != "" {
		return b
	}
	if highs.Available {
		return BackendHiGHS
	}

	return BackendBranchAndBound
}

func (b Backend) solver(l logrus.FieldLogger) milp.Solver {
	if b.Resolve() == BackendHiGHS {
		return highs.New(l)
	}

	return milp.NewBranchAndBound(l)
}

// Recorder receives one observation per finished solve. metrics.Metrics
// implements it.
type Recorder interface {
	ObserveSolve(status string, elapsed time.Duration, candidateEdges, solverNodes int)
}

// Options configures Solve and Sweep.
type Options struct {
	Gap           float64
	TimeLimit     time.Duration
	NodeLimit     int
	Backend       Backend
	Solver        milp.Solver
	Metric        distance.Metric
	MaxCandidates int
	Prune         []prune.Option
	Logger        logrus.FieldLogger
	Recorder      Recorder
	Concurrency   int // parallel solves in Sweep
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns gap 1%, 300 s, the auto backend, Euclidean metric,
// default pruning and the standard logrus logger.
func DefaultOptions() Options {
	return Options{
		Gap:           DefaultGap,
		TimeLimit:     DefaultTimeLimit,
		Backend:       BackendAuto,
		MaxCandidates: distance.DefaultMaxCandidates,
		Metric:        distance.Euclidean,
		Logger:        logrus.StandardLogger(),
		Concurrency:   runtime.GOMAXPROCS(0),
	}
}

// WithGap sets the relative optimality gap, 0 ≤ gap < 1.
func WithGap(g float64) Option { return func(o *Options) { o.Gap = g } }

// WithTimeLimit sets the solver time limit; it must be positive.
func WithTimeLimit(d time.Duration) Option { return func(o *Options) { o.TimeLimit = d } }

// WithNodeLimit caps branch-and-bound nodes; 0 means no cap.
func WithNodeLimit(n int) Option { return func(o *Options) { o.NodeLimit = n } }

// WithBackend selects the engine built when no Solver is set.
func WithBackend(b Backend) Option { return func(o *Options) { o.Backend = b } }

// WithSolver replaces the backend engine.
func WithSolver(s milp.Solver) Option { return func(o *Options) { o.Solver = s } }

// WithMetric replaces the Euclidean metric. A metric may return +Inf to
// forbid an edge.
func WithMetric(m distance.Metric) Option {
	return func(o *Options) {
		if m != nil {
			o.Metric = m
		}
	}
}

// WithMaxCandidates changes the candidate cap; 0 disables it.
func WithMaxCandidates(n int) Option { return func(o *Options) { o.MaxCandidates = n } }

// WithPruning appends pruner options.
func WithPruning(opts ...prune.Option) Option {
	return func(o *Options) { o.Prune = append(o.Prune, opts...) }
}

// WithLogger sets the logger; nil silences logging.
func WithLogger(l logrus.FieldLogger) Option { return func(o *Options) { o.Logger = l } }

// WithRecorder registers a per-solve observer.
func WithRecorder(r Recorder) Option { return func(o *Options) { o.Recorder = r } }

// WithConcurrency bounds parallel solves in Sweep; values < 1 mean 1.
func WithConcurrency(n int) Option { return func(o *Options) { o.Concurrency = n } }

func gatherOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		o.Logger = l
	}
	if o.Solver == nil {
		o.Solver = o.Backend.solver(o.Logger)
	}
	if o.Concurrency < 1 {
		o.Concurrency = 1
	}

	return o
}
