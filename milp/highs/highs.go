//go:build cgo && !purego && (linux || darwin) && (amd64 || arm64)

package highs

import (
	"context"
	"fmt"
	"math"
	"time"

	gohighs "github.com/bartolsthoorn/gohighs/highs"
	"github.com/katalvlaran/kmst/milp"
)

// Available reports whether this build links the HiGHS library.
const Available = true

// primalFeasible is HiGHS's kHighsSolutionStatusFeasible.
const primalFeasible = 2

// Solve translates m, runs HiGHS and maps the outcome onto milp.Result.
//
// Errors:
//   - milp.ErrInvalidModel from Validate or a negative gap.
//   - context errors when ctx is already done.
//   - *gohighs.Error from the library, wrapped.
//   - milp.ErrUnbounded for an unbounded relaxation.
//   - milp.ErrNoIncumbent when a limit fired and neither HiGHS nor the warm
//     start produced a feasible point.
func (s *Solver) Solve(ctx context.Context, m *milp.Model, p milp.Params) (milp.Result, error) {
	started := time.Now()
	if err := m.Validate(); err != nil {
		return milp.Result{Status: milp.StatusError}, err
	}
	if p.Gap < 0 || math.IsNaN(p.Gap) {
		return milp.Result{Status: milp.StatusError}, fmt.Errorf("%w: gap %g", milp.ErrInvalidModel, p.Gap)
	}
	if err := ctx.Err(); err != nil {
		return milp.Result{Status: milp.StatusError, Limit: milp.LimitCanceled}, err
	}

	h, err := gohighs.NewSolver()
	if err != nil {
		return milp.Result{Status: milp.StatusError}, fmt.Errorf("highs: %w", err)
	}
	defer h.Close()

	if err = s.configure(ctx, h, p); err != nil {
		return milp.Result{Status: milp.StatusError}, fmt.Errorf("highs: options: %w", err)
	}
	if err = load(h, m); err != nil {
		return milp.Result{Status: milp.StatusError}, fmt.Errorf("highs: load %q: %w", m.Name(), err)
	}

	sol, err := h.Run()
	res := milp.Result{Elapsed: time.Since(started)}
	if err != nil {
		res.Status = milp.StatusError

		return res, fmt.Errorf("highs: run %q: %w", m.Name(), err)
	}
	if n, e := h.GetInt64Info("mip_node_count"); e == nil && n > 0 {
		res.Nodes = int(n)
	}
	if n, e := h.GetIntInfo("simplex_iteration_count"); e == nil {
		res.Iters = n
	}
	s.debugf("run %q: status=%s obj=%g nodes=%d", m.Name(), sol.Status, sol.Objective, res.Nodes)

	switch sol.Status {
	case gohighs.ModelStatusModelEmpty:
		res.Status = milp.StatusOptimal
		res.Values = []float64{}

		return res, nil
	case gohighs.ModelStatusOptimal:
		res.Status = milp.StatusOptimal
		res.Values = snap(m, sol.ColValues)
		res.Objective = m.ObjectiveValue(res.Values)
		res.Bound = bound(h, m, res.Objective)
		res.Gap = milp.RelGap(res.Objective, res.Bound)

		return res, nil
	case gohighs.ModelStatusInfeasible:
		res.Status = milp.StatusInfeasible
		res.Bound = math.Inf(1)

		return res, nil
	case gohighs.ModelStatusUnboundedOrInfeasible:
		if boxed(m) {
			res.Status = milp.StatusInfeasible
			res.Bound = math.Inf(1)

			return res, nil
		}
		res.Status = milp.StatusError

		return res, milp.ErrUnbounded
	case gohighs.ModelStatusUnbounded:
		res.Status = milp.StatusError

		return res, milp.ErrUnbounded
	case gohighs.ModelStatusTimeLimit, gohighs.ModelStatusIterationLimit,
		gohighs.ModelStatusObjectiveBound, gohighs.ModelStatusObjectiveTarget,
		gohighs.ModelStatusUnknown:
		res.Limit = limitOf(ctx, sol.Status, p)
		if ps, e := h.GetIntInfo("primal_solution_status"); e == nil && ps == primalFeasible {
			res.Values = snap(m, sol.ColValues)
		}
		res.Values = s.better(m, res.Values, p.IntTol)
		if res.Values == nil {
			res.Status = milp.StatusError
			res.Bound = bound(h, m, math.Inf(-1))

			return res, fmt.Errorf("%w (%s limit)", milp.ErrNoIncumbent, res.Limit)
		}
		res.Objective = m.ObjectiveValue(res.Values)
		res.Bound = math.Min(bound(h, m, math.Inf(-1)), res.Objective)
		res.Gap = milp.RelGap(res.Objective, res.Bound)
		res.Status = milp.StatusFeasible
		if res.Gap <= p.Gap {
			res.Status = milp.StatusOptimal
		}

		return res, nil
	default:
		res.Status = milp.StatusError

		return res, fmt.Errorf("highs: %q ended with model status %s", m.Name(), sol.Status)
	}
}

func (s *Solver) configure(ctx context.Context, h *gohighs.Solver, p milp.Params) error {
	if err := h.SetBoolOption("output_flag", s.Output); err != nil {
		return err
	}
	if err := h.SetFloatOption("mip_rel_gap", p.Gap); err != nil {
		return err
	}
	limit := p.TimeLimit
	if dl, ok := ctx.Deadline(); ok {
		if left := time.Until(dl); limit <= 0 || left < limit {
			limit = max(left, time.Millisecond)
		}
	}
	if limit > 0 {
		if err := h.SetFloatOption("time_limit", limit.Seconds()); err != nil {
			return err
		}
	}
	if p.NodeLimit > 0 {
		if err := h.SetIntOption("mip_max_nodes", p.NodeLimit); err != nil {
			return err
		}
	}
	if p.IntTol > 0 {
		if err := h.SetFloatOption("mip_feasibility_tolerance", p.IntTol); err != nil {
			return err
		}
	}
	if s.Threads > 0 {
		if err := h.SetIntOption("threads", s.Threads); err != nil {
			return err
		}
	}

	return nil
}

// load passes columns, integrality and rows in compressed sparse row form.
// Duplicate terms within a constraint are merged.
func load(h *gohighs.Solver, m *milp.Model) error {
	n := m.NumVars()
	cost := make([]float64, n)
	lower := make([]float64, n)
	upper := make([]float64, n)
	kinds := make([]gohighs.VariableType, n)
	for j := range n {
		v := m.Var(j)
		cost[j], lower[j], upper[j] = v.Obj, v.Lower, v.Upper
		switch v.Kind {
		case milp.Binary:
			kinds[j] = gohighs.Integer
			lower[j], upper[j] = math.Max(lower[j], 0), math.Min(upper[j], 1)
		case milp.Integer:
			kinds[j] = gohighs.Integer
		default:
			kinds[j] = gohighs.Continuous
		}
	}
	if err := h.AddVars(lower, upper); err != nil {
		return err
	}
	if err := h.SetColCosts(cost); err != nil {
		return err
	}
	if err := h.SetIntegrality(kinds); err != nil {
		return err
	}

	rows := m.NumConstraints()
	if rows == 0 {
		return nil
	}
	rowLo := make([]float64, rows)
	rowHi := make([]float64, rows)
	starts := make([]int, rows)
	var index []int
	var value []float64
	pos := make(map[int]int)
	for i := range rows {
		c := m.Constraint(i)
		starts[i] = len(index)
		clear(pos)
		for _, t := range c.Terms {
			if k, ok := pos[t.Var]; ok {
				value[k] += t.Coef

				continue
			}
			pos[t.Var] = len(index)
			index = append(index, t.Var)
			value = append(value, t.Coef)
		}
		switch c.Sense {
		case milp.LessEq:
			rowLo[i], rowHi[i] = math.Inf(-1), c.RHS
		case milp.GreaterEq:
			rowLo[i], rowHi[i] = c.RHS, math.Inf(1)
		default:
			rowLo[i], rowHi[i] = c.RHS, c.RHS
		}
	}

	return h.AddRows(rowLo, rowHi, starts, index, value)
}

// bound reads the MIP dual bound, falling back to def for pure LPs or when
// HiGHS reports none. A bound above a finite def is clamped to it.
func bound(h *gohighs.Solver, m *milp.Model, def float64) float64 {
	if !integral(m) {
		return def
	}
	b, err := h.GetFloatInfo("mip_dual_bound")
	if err != nil || math.IsNaN(b) || math.IsInf(b, 0) {
		return def
	}
	if !math.IsInf(def, 0) && b > def {
		return def
	}

	return b
}

func limitOf(ctx context.Context, st gohighs.ModelStatus, p milp.Params) milp.Limit {
	switch {
	case ctx.Err() != nil:
		return milp.LimitCanceled
	case st == gohighs.ModelStatusTimeLimit:
		return milp.LimitTime
	case p.NodeLimit > 0:
		return milp.LimitNodes
	default:
		return milp.LimitTime
	}
}
