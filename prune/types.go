package prune

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/kmst/core"
)

// Defaults.
const (
	DefaultNeighbors   = 12
	DefaultMaxAttempts = 3
)

// Sentinel errors.
var (
	// ErrPruningInfeasible is returned when even the widest attempt leaves
	// the candidate graph disconnected.
	ErrPruningInfeasible = errors.New("prune: candidate graph is disconnected")

	// ErrBadOption is returned for out-of-range options.
	ErrBadOption = errors.New("prune: invalid option")
)

// Policy selects the edge filter.
type Policy uint8

const (
	PolicyNearest Policy = iota
	PolicyRootRadius
	PolicyComplete
)

var policyNames = [...]string{"nearest", "root-radius", "complete"}

// String returns the configuration name of p.
func (p Policy) String() string {
	if int(p) < len(policyNames) {
		return policyNames[p]
	}

	return fmt.Sprintf("Policy(%d)", uint8(p))
}

// ParsePolicy is the inverse of Policy.String.
func ParsePolicy(s string) (Policy, error) {
	for i, name := range policyNames {
		if s == name {
			return Policy(i), nil
		}
	}

	return 0, fmt.Errorf("%w: unknown policy %q", ErrBadOption, s)
}

// Options configures Prune.
type Options struct {
	Policy        Policy
	Neighbors     int  // nearest-neighbour count for the first attempt
	KeepRootEdges bool // always keep finite root edges
	MaxAttempts   int  // total attempts including the first
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns nearest-12, root edges kept, three attempts.
func DefaultOptions() Options {
	return Options{
		Policy:        PolicyNearest,
		Neighbors:     DefaultNeighbors,
		KeepRootEdges: true,
		MaxAttempts:   DefaultMaxAttempts,
	}
}

// WithPolicy selects the edge filter.
func WithPolicy(p Policy) Option { return func(o *Options) { o.Policy = p } }

// WithNeighbors sets the initial nearest-neighbour count.
func WithNeighbors(m int) Option { return func(o *Options) { o.Neighbors = m } }

// WithKeepRootEdges toggles unconditional root edges.
func WithKeepRootEdges(keep bool) Option { return func(o *Options) { o.KeepRootEdges = keep } }

// WithMaxAttempts sets the number of widen-and-retry attempts.
func WithMaxAttempts(n int) Option { return func(o *Options) { o.MaxAttempts = n } }

func (o Options) validate() error {
	if o.Policy > PolicyComplete {
		return fmt.Errorf("%w: policy %d", ErrBadOption, o.Policy)
	}
	if o.Neighbors < 1 {
		return fmt.Errorf("%w: neighbors %d < 1", ErrBadOption, o.Neighbors)
	}
	if o.MaxAttempts < 1 {
		return fmt.Errorf("%w: max attempts %d < 1", ErrBadOption, o.MaxAttempts)
	}

	return nil
}

// Result is the pruned candidate edge set.
type Result struct {
	// Edges are normalised and sorted by (U, V).
	Edges []core.Edge

	// Policy is the filter that produced Edges; PolicyComplete after a
	// final fallback.
	Policy Policy

	// Neighbors is the nearest-neighbour count of the successful attempt
	// (0 unless Policy is PolicyNearest or widening added neighbours).
	Neighbors int

	// Attempts counts the attempts made, 1 when no widening was needed.
	Attempts int
}
