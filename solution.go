package kmst

import (
	"time"

	"github.com/katalvlaran/kmst/core"
)

// Status tags a solution.
type Status string

const (
	// StatusOptimal means the tree is proven within the requested gap.
	StatusOptimal Status = "optimal"

	// StatusSuboptimal means a time or node limit stopped the search; the
	// tree is the best found, Gap says how far from proven it is.
	StatusSuboptimal Status = "suboptimal"

	// StatusInfeasible accompanies ErrSolverInfeasible; such solutions
	// carry no nodes or edges.
	StatusInfeasible Status = "infeasible"
)

// Solution is the outcome of one solve. It is never modified after Solve
// returns.
type Solution struct {
	RunID   string
	Network string // NetworkID of the root and candidates
	K       int
	N       int // candidate count, root excluded

	// Nodes are the selected node indices in ascending order; Nodes[0] is
	// the root.
	Nodes []int

	// Edges are the tree arcs, parent → child, ordered by (From, To).
	Edges []core.Arc

	Cost   float64
	Status Status
	Gap    float64 // relative gap reported by the solver
	Bound  float64 // best proven lower bound on Cost

	CandidateEdges int // edges left after pruning
	Neighbors      int // nearest-neighbour count of the successful pruning attempt
	PruneAttempts  int
	SolverNodes    int // branch-and-bound nodes, when the solver reports them
	Elapsed        time.Duration
}

// Selected reports whether node i is part of the tree.
func (s *Solution) Selected(i int) bool {
	for _, v := range s.Nodes {
		if v == i {
			return true
		}
	}

	return false
}

// Parents maps every selected non-root node to its parent.
func (s *Solution) Parents() map[int]int {
	p := make(map[int]int, len(s.Edges))
	for _, a := range s.Edges {
		p[a.To] = a.From
	}

	return p
}
