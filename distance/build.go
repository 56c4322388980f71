package distance

import (
	"fmt"
	"math"

	"github.com/katalvlaran/kmst/core"
	"github.com/katalvlaran/kmst/matrix"
)

// Build returns the (n+1)×(n+1) distance matrix for root plus candidates.
//
// Errors:
//   - ErrNoCandidates, ErrTooFewCandidates, ErrTooManyCandidates on counts.
//   - ErrInvalidCoordinate (wrapped with the node index) on NaN/Inf input.
//   - ErrBadMetric (wrapped with the pair) when the metric misbehaves.
//   - matrix errors (wrapped with the pair) from storing an entry.
//
// Complexity: O(n²) metric evaluations / 2, O(n²) memory.
func Build(root core.Point, candidates []core.Point, opts ...Option) (*matrix.Dense, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	// 1) Counts.
	n := len(candidates)
	if n == 0 {
		return nil, ErrNoCandidates
	}
	if o.MinCandidates > 0 && n < o.MinCandidates {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrTooFewCandidates, n, o.MinCandidates)
	}
	if o.MaxCandidates > 0 && n > o.MaxCandidates {
		return nil, fmt.Errorf("%w: have %d, limit %d", ErrTooManyCandidates, n, o.MaxCandidates)
	}

	// 2) Coordinates, root first so that node index == slice index below.
	nodes := make([]core.Point, 0, n+1)
	nodes = append(nodes, root)
	nodes = append(nodes, candidates...)
	for i, p := range nodes {
		if !p.Valid() {
			return nil, fmt.Errorf("%w: node %d %s", ErrInvalidCoordinate, i, p)
		}
	}

	// 3) Upper triangle, mirrored.
	dist, err := matrix.NewSquare(n + 1)
	if err != nil {
		return nil, err
	}
	var (
		i, j int
		d    float64
	)
	for i = 0; i <= n; i++ {
		for j = i + 1; j <= n; j++ {
			d = o.Metric(nodes[i], nodes[j])
			if math.IsNaN(d) || d < 0 {
				return nil, fmt.Errorf("%w: pair (%d,%d) = %g", ErrBadMetric, i, j, d)
			}
			if err = dist.SetSym(i, j, d); err != nil {
				return nil, fmt.Errorf("distance: pair (%d,%d): %w", i, j, err)
			}
		}
	}

	return dist, nil
}
