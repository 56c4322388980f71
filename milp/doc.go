// Package milp describes mixed-integer linear programs and solves them.
//
// The package has two halves.
//
// Model is a plain, solver-agnostic description of a minimisation MILP:
// variables with bounds, kinds (continuous, binary, integer), objective
// coefficients and branching priorities; linear constraints with ≤, ≥ or =
// senses; and an optional warm start. Model construction never fails; all
// checks happen in Validate so builders stay linear and readable.
//
// Solver is the narrow capability the rest of the module depends on:
//
//	Solve(ctx, model, params) (Result, error)
//
// Any off-the-shelf MILP engine can be adapted to it. BranchAndBound is the
// built-in implementation: best-first LP-based branch and bound over a dense
// two-phase primal simplex.
//
// BranchAndBound, in short:
//  1. Seed the incumbent (UB) from the model's warm start when it is feasible.
//  2. Pop the open node with the smallest LP bound; prune when
//     bound ≥ UB − max(abs tolerance, Gap·|UB|).
//  3. Solve the node's LP relaxation. Integral → new incumbent. Fractional →
//     branch on the fractional integer variable with the highest Priority,
//     then the one closest to ½, then the lowest index.
//  4. Stop when the open list is empty, the relative gap (UB−LB)/|UB| falls
//     to Params.Gap, or a time / node / context limit fires.
//
// The simplex works on a dense tableau, so memory is O(rows·cols). Models
// beyond a few thousand rows should be handed to an external engine through
// the Solver interface (package milp/highs adapts HiGHS). The built-in
// solver never builds a tableau over MaxTableauCells: the search stops with
// LimitSize and returns the warm start as a StatusFeasible incumbent, or
// ErrModelTooLarge when there is none.
//
// Statuses follow the usual engine semantics: StatusOptimal means the search
// proved the incumbent within the requested gap; StatusFeasible means a limit
// fired first and the incumbent is the best found so far; StatusInfeasible
// means the search space holds no feasible point.
package milp
