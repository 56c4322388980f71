package milp

import (
	"container/heap"
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"
)

// absTol is the absolute objective tolerance used for pruning and gap tests.
const absTol = 1e-9

// BranchAndBound is the built-in Solver: best-first LP-based branch and bound.
// The zero value is ready to use.
type BranchAndBound struct {
	// Logger receives debug-level progress (new incumbents, stop reason).
	// Nil disables logging.
	Logger logrus.FieldLogger

	// MaxCells caps the dense tableau of each node LP; 0 means
	// MaxTableauCells.
	MaxCells int
}

// NewBranchAndBound returns a solver that logs to l (may be nil).
func NewBranchAndBound(l logrus.FieldLogger) *BranchAndBound {
	return &BranchAndBound{Logger: l}
}

// bbNode is an open subproblem: tightened bounds plus the parent LP bound.
type bbNode struct {
	lo, hi []float64
	bound  float64
	depth  int
	seq    int
}

// nodeQueue is a min-heap on (bound, −depth, seq).
type nodeQueue []*bbNode

func (q nodeQueue) Len() int { return len(q) }
func (q nodeQueue) Less(i, j int) bool {
	if q[i].bound != q[j].bound {
		return q[i].bound < q[j].bound
	}
	if q[i].depth != q[j].depth {
		return q[i].depth > q[j].depth
	}

	return q[i].seq < q[j].seq
}
func (q nodeQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }
func (q *nodeQueue) Push(x any)   { *q = append(*q, x.(*bbNode)) }
func (q *nodeQueue) Pop() any {
	old := *q
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]

	return it
}

// bbEngine holds the search state of one Solve call.
type bbEngine struct {
	m      *Model
	p      Params
	log    logrus.FieldLogger
	intTol float64
	cells  int

	deadline time.Time
	open     nodeQueue
	seq      int
	nodes    int
	iters    int

	best    []float64
	bestObj float64

	// floor is the smallest bound among subproblems discarded by gap pruning.
	floor float64
}

// Solve runs branch and bound on m.
//
// Errors:
//   - ErrInvalidModel from Validate.
//   - ErrIterationLimit, ErrUnbounded from node LPs.
//   - ErrNoIncumbent (wrapped with the limit, and ctx.Err() on
//     cancellation) when a limit fires before any feasible point exists.
//     A node LP over MaxCells stops the search with LimitSize; without an
//     incumbent the error also wraps ErrModelTooLarge.
//
// An infeasible model is not an error: the Result carries StatusInfeasible.
//
// Complexity: exponential in the number of integer variables in the worst
// case; each node costs one dense simplex solve.
func (s *BranchAndBound) Solve(ctx context.Context, m *Model, p Params) (Result, error) {
	started := time.Now()
	if err := m.Validate(); err != nil {
		return Result{Status: StatusError}, err
	}
	if p.Gap < 0 || math.IsNaN(p.Gap) {
		return Result{Status: StatusError}, fmt.Errorf("%w: gap %g", ErrInvalidModel, p.Gap)
	}

	e := &bbEngine{
		m:       m,
		p:       p,
		log:     s.Logger,
		intTol:  p.IntTol,
		cells:   s.MaxCells,
		bestObj: math.Inf(1),
		floor:   math.Inf(1),
	}
	if e.intTol <= 0 {
		e.intTol = DefaultIntTol
	}
	if p.TimeLimit > 0 {
		e.deadline = started.Add(p.TimeLimit)
	}
	e.seedIncumbent()

	limit, bound, err := e.search(ctx)
	res := Result{
		Nodes:   e.nodes,
		Iters:   e.iters,
		Limit:   limit,
		Elapsed: time.Since(started),
	}
	if err != nil {
		res.Status = StatusError

		return res, err
	}

	if e.best == nil {
		if limit == LimitNone {
			res.Status = StatusInfeasible
			res.Bound = math.Inf(1)
			e.debugf("search exhausted without a feasible point")

			return res, nil
		}
		res.Status = StatusError
		res.Bound = bound
		switch limit {
		case LimitCanceled:
			return res, fmt.Errorf("%w (%s): %w", ErrNoIncumbent, limit, ctx.Err())
		case LimitSize:
			return res, fmt.Errorf("%w (%s limit): %w", ErrNoIncumbent, limit, ErrModelTooLarge)
		}

		return res, fmt.Errorf("%w (%s limit)", ErrNoIncumbent, limit)
	}

	bound = math.Min(bound, math.Min(e.floor, e.bestObj))
	res.Values = e.best
	res.Objective = e.bestObj
	res.Bound = bound
	res.Gap = RelGap(e.bestObj, bound)
	res.Status = StatusOptimal
	if limit != LimitNone && res.Gap > p.Gap {
		res.Status = StatusFeasible
	}
	e.debugf("stop: status=%s limit=%q obj=%g bound=%g gap=%.3g nodes=%d",
		res.Status, limit, res.Objective, res.Bound, res.Gap, res.Nodes)

	return res, nil
}

// seedIncumbent adopts the model's warm start as the first upper bound when
// it is feasible. Integer coordinates are snapped to the nearest integer.
func (e *bbEngine) seedIncumbent() {
	start := e.m.Start()
	if start == nil {
		return
	}
	x := append([]float64(nil), start...)
	for j, v := range e.m.vars {
		if v.Kind != Continuous {
			x[j] = math.Round(x[j])
		}
	}
	if err := e.m.Feasible(x, e.intTol); err != nil {
		e.debugf("warm start rejected: %v", err)

		return
	}
	e.best = x
	e.bestObj = e.m.ObjectiveValue(x)
	e.debugf("warm start accepted: obj=%g", e.bestObj)
}

// search drains the open list. It returns the stop limit and the best
// proven lower bound over the unexplored space.
func (e *bbEngine) search(ctx context.Context) (Limit, float64, error) {
	lo, hi := e.m.bounds(true)
	e.push(lo, hi, math.Inf(-1), 0)

	for {
		if e.open.Len() == 0 {
			return LimitNone, e.bestObj, nil
		}
		top := e.open[0]
		if e.best != nil && RelGap(e.bestObj, top.bound) <= e.p.Gap {
			return LimitNone, top.bound, nil
		}
		if ctx.Err() != nil {
			return LimitCanceled, top.bound, nil
		}
		if !e.deadline.IsZero() && time.Now().After(e.deadline) {
			return LimitTime, top.bound, nil
		}
		if e.p.NodeLimit > 0 && e.nodes >= e.p.NodeLimit {
			return LimitNodes, top.bound, nil
		}

		node := heap.Pop(&e.open).(*bbNode)
		if e.prune(node.bound) {
			continue
		}

		sol, err := solveLP(e.m, node.lo, node.hi, e.deadline, e.cells)
		if err == errDeadline {
			heap.Push(&e.open, node)

			return LimitTime, e.open[0].bound, nil
		}
		if errors.Is(err, ErrModelTooLarge) {
			heap.Push(&e.open, node)
			e.debugf("node %d: %v", e.nodes, err)

			return LimitSize, e.open[0].bound, nil
		}
		if err != nil {
			return LimitNone, node.bound, fmt.Errorf("node %d: %w", e.nodes, err)
		}
		e.nodes++
		e.iters += sol.iters

		switch sol.status {
		case lpInfeasible:
			continue
		case lpUnbounded:
			return LimitNone, math.Inf(-1), ErrUnbounded
		}
		if e.prune(sol.obj) {
			continue
		}

		j := e.branchVar(sol.x)
		if j < 0 {
			e.accept(sol.x)

			continue
		}

		v := sol.x[j]
		down := append([]float64(nil), node.hi...)
		down[j] = math.Floor(v)
		e.push(node.lo, down, sol.obj, node.depth+1)
		up := append([]float64(nil), node.lo...)
		up[j] = math.Ceil(v)
		e.push(up, node.hi, sol.obj, node.depth+1)
	}
}

func (e *bbEngine) push(lo, hi []float64, bound float64, depth int) {
	heap.Push(&e.open, &bbNode{lo: lo, hi: hi, bound: bound, depth: depth, seq: e.seq})
	e.seq++
}

// prune reports whether a subproblem bounded below by b cannot improve the
// incumbent by more than the requested gap, recording b in the floor.
func (e *bbEngine) prune(b float64) bool {
	if e.best == nil {
		return false
	}
	margin := math.Max(absTol*math.Max(1, math.Abs(e.bestObj)), e.p.Gap*math.Abs(e.bestObj))
	if b < e.bestObj-margin {
		return false
	}
	if b < e.floor {
		e.floor = b
	}

	return true
}

// branchVar picks the fractional integer variable with the highest
// priority, then the one closest to ½, then the lowest index; −1 if x is
// integral.
func (e *bbEngine) branchVar(x []float64) int {
	best, bestPrio, bestScore := -1, 0, 0.0
	for j, v := range e.m.vars {
		if v.Kind == Continuous {
			continue
		}
		f := x[j] - math.Floor(x[j])
		if f <= e.intTol || f >= 1-e.intTol {
			continue
		}
		score := math.Min(f, 1-f)
		if best < 0 || v.Priority > bestPrio || (v.Priority == bestPrio && score > bestScore+1e-12) {
			best, bestPrio, bestScore = j, v.Priority, score
		}
	}

	return best
}

// accept records an integral LP optimum as the new incumbent.
func (e *bbEngine) accept(x []float64) {
	for j, v := range e.m.vars {
		if v.Kind != Continuous {
			x[j] = math.Round(x[j])
		}
	}
	obj := e.m.ObjectiveValue(x)
	if obj >= e.bestObj {
		return
	}
	e.best, e.bestObj = x, obj
	e.debugf("incumbent: obj=%g nodes=%d", obj, e.nodes)
}

func (e *bbEngine) debugf(format string, args ...any) {
	if e.log != nil {
		e.log.Debugf("milp: "+format, args...)
	}
}

// RelGap is (ub−lb)/|ub|, 0 when the two agree within absTol and +Inf when
// lb is unknown.
func RelGap(ub, lb float64) float64 {
	if math.IsInf(lb, -1) || math.IsInf(ub, 1) {
		return math.Inf(1)
	}
	diff := ub - lb
	if diff <= absTol*math.Max(1, math.Abs(ub)) {
		return 0
	}

	return diff / math.Max(math.Abs(ub), absTol)
}
