package kmst

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/kmst/core"
	"github.com/katalvlaran/kmst/distance"
	"github.com/katalvlaran/kmst/milp"
	"github.com/katalvlaran/kmst/milp/highs"
	"github.com/katalvlaran/kmst/prune"
)

// Solve selects k nodes (root included) from root + candidates and returns
// the minimum-length tree joining them, subject to pruning.
//
// Pipeline: validate → distance matrix → prune (widen-and-retry) → Build →
// solver → Extract. k == 1 returns {root} without building a model.
//
// Errors (see errors.go): ErrInput, ErrPruningInfeasible,
// ErrInfeasibleModel, ErrSolverInfeasible (with a StatusInfeasible
// Solution), ErrSolver, ErrSolutionInconsistent. A suboptimal result is not
// an error.
func Solve(ctx context.Context, root core.Point, candidates []core.Point, k int, opts ...Option) (*Solution, error) {
	return solve(ctx, root, candidates, k, gatherOptions(opts))
}

func solve(ctx context.Context, root core.Point, candidates []core.Point, k int, o Options) (sol *Solution, err error) {
	started := time.Now()
	runID := uuid.NewString()
	n := len(candidates)
	log := o.Logger.WithFields(logrus.Fields{"run_id": runID, "k": k, "n": n})

	network := NetworkID(root, candidates)
	edges, solverNodes := 0, 0
	defer func() {
		if sol != nil {
			sol.Network = network
		}
		if o.Recorder != nil {
			o.Recorder.ObserveSolve(outcome(sol, err), time.Since(started), edges, solverNodes)
		}
	}()

	if err = validateInput(root, candidates, k, o); err != nil {
		log.WithError(err).Warn("rejected input")

		return nil, err
	}
	if k == 1 {
		sol = &Solution{
			RunID:   runID,
			K:       1,
			N:       n,
			Nodes:   []int{core.RootIndex},
			Edges:   []core.Arc{},
			Status:  StatusOptimal,
			Elapsed: time.Since(started),
		}
		log.Debug("k=1: root only")

		return sol, nil
	}

	dist, err := distance.Build(root, candidates,
		distance.WithMetric(o.Metric),
		distance.WithMinCandidates(k-1),
		distance.WithMaxCandidates(o.MaxCandidates))
	if err != nil {
		return nil, fmt.Errorf("%w: k=%d n=%d: %w", ErrInput, k, n, err)
	}

	pr, err := prune.Prune(dist, o.Prune...)
	if err != nil {
		if errors.Is(err, prune.ErrBadOption) {
			return nil, fmt.Errorf("%w: %w", ErrInput, err)
		}
		log.WithError(err).Error("pruning failed")

		return nil, fmt.Errorf("k=%d n=%d: %w", k, n, err)
	}
	edges = len(pr.Edges)
	log = log.WithField("edges", edges)
	if pr.Attempts > 1 {
		log.WithFields(logrus.Fields{"attempts": pr.Attempts, "policy": pr.Policy.String()}).
			Warn("pruned graph was disconnected; widened")
	}

	f, err := Build(dist, pr.Edges, k)
	if err != nil {
		return nil, fmt.Errorf("k=%d n=%d edges=%d: %w", k, n, edges, err)
	}
	vars, cons := f.Stats()
	log.WithFields(logrus.Fields{"vars": vars, "constraints": cons}).Debug("model built")

	res, err := o.Solver.Solve(ctx, f.Model, milp.Params{Gap: o.Gap, TimeLimit: o.TimeLimit, NodeLimit: o.NodeLimit})
	solverNodes = res.Nodes
	if err != nil {
		log.WithError(err).Error("solver failed")

		return nil, fmt.Errorf("%w: k=%d n=%d edges=%d status=%s: %w", ErrSolver, k, n, edges, res.Status, err)
	}

	var status Status
	switch res.Status {
	case milp.StatusOptimal:
		status = StatusOptimal
	case milp.StatusFeasible:
		status = StatusSuboptimal
	case milp.StatusInfeasible:
		log.Warn("solver proved infeasibility")
		sol = &Solution{
			RunID:          runID,
			K:              k,
			N:              n,
			Status:         StatusInfeasible,
			CandidateEdges: edges,
			Neighbors:      pr.Neighbors,
			PruneAttempts:  pr.Attempts,
			SolverNodes:    res.Nodes,
			Elapsed:        time.Since(started),
		}

		return sol, fmt.Errorf("%w: k=%d n=%d edges=%d", ErrSolverInfeasible, k, n, edges)
	default:
		return nil, fmt.Errorf("%w: k=%d n=%d edges=%d status=%s", ErrSolver, k, n, edges, res.Status)
	}

	sol, err = f.Extract(res.Values)
	if err != nil {
		log.WithError(err).WithField("values", f.Dump(res.Values)).Error("inconsistent solution")

		return nil, fmt.Errorf("k=%d n=%d edges=%d status=%s: %w", k, n, edges, res.Status, err)
	}
	sol.RunID = runID
	sol.Bound = math.Min(math.Max(lowerBound(res.Bound), f.DegreeBound()), sol.Cost)
	sol.Gap = milp.RelGap(sol.Cost, sol.Bound)
	if status == StatusSuboptimal && sol.Gap <= o.Gap {
		status = StatusOptimal
	}
	sol.Status = status
	sol.CandidateEdges = edges
	sol.Neighbors = pr.Neighbors
	sol.PruneAttempts = pr.Attempts
	sol.SolverNodes = res.Nodes
	sol.Elapsed = time.Since(started)

	log.WithFields(logrus.Fields{
		"status":  sol.Status,
		"cost":    sol.Cost,
		"gap":     sol.Gap,
		"elapsed": sol.Elapsed,
	}).Info("solved")

	return sol, nil
}

// validateInput fails fast on caller-fixable input.
func validateInput(root core.Point, candidates []core.Point, k int, o Options) error {
	n := len(candidates)
	switch {
	case n == 0:
		return fmt.Errorf("%w: no candidate nodes", ErrInput)
	case o.MaxCandidates > 0 && n > o.MaxCandidates:
		return fmt.Errorf("%w: %d candidates exceeds limit %d", ErrInput, n, o.MaxCandidates)
	case k < 1 || k > n+1:
		return fmt.Errorf("%w: k=%d outside [1,%d]", ErrInput, k, n+1)
	case o.TimeLimit <= 0:
		return fmt.Errorf("%w: time limit %s must be positive", ErrInput, o.TimeLimit)
	case math.IsNaN(o.Gap) || o.Gap < 0 || o.Gap >= 1:
		return fmt.Errorf("%w: gap %g outside [0,1)", ErrInput, o.Gap)
	case o.NodeLimit < 0:
		return fmt.Errorf("%w: node limit %d", ErrInput, o.NodeLimit)
	case !o.Backend.Valid():
		return fmt.Errorf("%w: unknown solver backend %q", ErrInput, o.Backend)
	case o.Backend == BackendHiGHS && !highs.Available:
		return fmt.Errorf("%w: %w", ErrInput, highs.ErrUnavailable)
	}
	if !root.Valid() {
		return fmt.Errorf("%w: root %s", ErrInput, root)
	}
	for i, p := range candidates {
		if !p.Valid() {
			return fmt.Errorf("%w: candidate %d %s", ErrInput, i+1, p)
		}
	}

	return nil
}

// outcome labels a finished solve for the Recorder.
func outcome(sol *Solution, err error) string {
	switch {
	case err == nil:
		return string(sol.Status)
	case errors.Is(err, ErrInput):
		return "input_error"
	case errors.Is(err, ErrPruningInfeasible):
		return "pruning_infeasible"
	case errors.Is(err, ErrInfeasibleModel):
		return "model_infeasible"
	case errors.Is(err, ErrSolverInfeasible):
		return string(StatusInfeasible)
	case errors.Is(err, ErrSolutionInconsistent):
		return "inconsistent"
	default:
		return "solver_error"
	}
}
