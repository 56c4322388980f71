package distance

import (
	"errors"
	"math"

	"github.com/katalvlaran/kmst/core"
)

// DefaultMaxCandidates caps the number of candidate nodes accepted by Build.
const DefaultMaxCandidates = 1500

// Sentinel errors for matrix construction.
var (
	// ErrNoCandidates is returned when no candidate nodes are supplied.
	ErrNoCandidates = errors.New("distance: no candidate nodes")

	// ErrTooFewCandidates is returned when fewer candidates than the
	// configured minimum are supplied.
	ErrTooFewCandidates = errors.New("distance: too few candidate nodes")

	// ErrTooManyCandidates is returned when the candidate count exceeds the cap.
	ErrTooManyCandidates = errors.New("distance: too many candidate nodes")

	// ErrInvalidCoordinate is returned for NaN or infinite coordinates.
	ErrInvalidCoordinate = errors.New("distance: invalid coordinate")

	// ErrBadMetric is returned when the metric yields NaN or a negative value.
	ErrBadMetric = errors.New("distance: metric returned NaN or negative value")
)

// Metric returns the wiring cost between two points. It must be symmetric
// in intent; Build only evaluates it for i<j.
type Metric func(a, b core.Point) float64

// Euclidean is the straight-line distance.
func Euclidean(a, b core.Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// Manhattan is the rectilinear distance, a common proxy for trenching along
// a street grid.
func Manhattan(a, b core.Point) float64 {
	return math.Abs(a.X-b.X) + math.Abs(a.Y-b.Y)
}

// Options configures Build.
type Options struct {
	// Metric computes pairwise costs. Nil means Euclidean.
	Metric Metric

	// MinCandidates is the lowest accepted candidate count (0 disables).
	MinCandidates int

	// MaxCandidates is the highest accepted candidate count (0 disables).
	MaxCandidates int
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns Euclidean, no minimum, DefaultMaxCandidates cap.
func DefaultOptions() Options {
	return Options{
		Metric:        Euclidean,
		MinCandidates: 0,
		MaxCandidates: DefaultMaxCandidates,
	}
}

// WithMetric overrides the distance metric. A nil metric is ignored.
func WithMetric(m Metric) Option {
	return func(o *Options) {
		if m != nil {
			o.Metric = m
		}
	}
}

// WithMinCandidates sets the minimum candidate count (typically k−1).
func WithMinCandidates(c int) Option {
	return func(o *Options) { o.MinCandidates = c }
}

// WithMaxCandidates sets the candidate cap; 0 disables it.
func WithMaxCandidates(c int) Option {
	return func(o *Options) { o.MaxCandidates = c }
}
