package kmst

import (
	"errors"

	"github.com/katalvlaran/kmst/prune"
)

// Error taxonomy. Every error returned by Solve matches exactly one of these
// with errors.Is and carries k, n, the candidate edge count and the solver
// status where they are known.
var (
	// ErrInput marks caller-fixable input: bad coordinates, k outside
	// [1, n+1], a non-positive time limit, a gap outside [0, 1).
	ErrInput = errors.New("kmst: invalid input")

	// ErrPruningInfeasible marks a candidate graph that stayed disconnected
	// after every widening attempt.
	ErrPruningInfeasible = prune.ErrPruningInfeasible

	// ErrInfeasibleModel marks a model that cannot hold a k-node tree
	// (k out of range, or fewer than k nodes reachable from the root).
	ErrInfeasibleModel = errors.New("kmst: no k-node tree fits the candidate edges")

	// ErrSolverInfeasible marks a solver proof that no k-node tree exists.
	ErrSolverInfeasible = errors.New("kmst: solver reports the model infeasible")

	// ErrSolver marks a failure of the solve capability itself.
	ErrSolver = errors.New("kmst: solver failed")

	// ErrSolutionInconsistent marks solver values that do not describe a
	// rooted tree on exactly k nodes.
	ErrSolutionInconsistent = errors.New("kmst: solver values are not a valid k-node tree")
)
