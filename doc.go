// Package kmst plans minimum-length radial networks: given a root location
// and candidate node locations, it picks exactly k nodes (root included)
// and the tree of k−1 edges of least total length that connects them.
//
// 🚀 What is kmst?
//
//	A k-Minimum Spanning Tree planner built as a short pipeline:
//		• distance/     (n+1)×(n+1) distance matrix, index 0 = root
//		• prune/        sparse, connected candidate edge set (heuristic)
//		• kmst (here)   directed single-commodity flow MILP + extractor
//		• milp/         model type, Solver interface, built-in branch & bound
//		• milp/highs/   HiGHS backend (cgo); the default where it is linked
//		• export/       GeoJSON nodes/edges + summary.txt
//		• builder/      reproducible demo layouts (disc, ring, grid, clusters)
//		• config/, metrics/, store/, cli/: the command-line tool around it
//
// ✨ The model
//
// For every candidate edge {i,j} the formulation has two binary arcs
// x(i→j), x(j→i) and two flows f ∈ [0, k−1]; every node has a binary
// selection y (root fixed to 1). Exactly k−1 candidates and k−1 arcs are
// selected, every selected non-root node has exactly one parent, and the
// root ships k−1 units of flow of which every selected node consumes one.
// Flow can only travel on selected arcs, so every selected node is joined
// to the root: one tree, no subtour cuts needed.
//
// ⚠️ Pruning is a heuristic. An edge removed by the pruner can never be
// chosen, so Solve is optimal for the pruned graph only. Use
// prune.PolicyComplete (via WithPruning) when exactness matters more than
// model size.
//
// Quick example:
//
//	sol, err := kmst.Solve(ctx, core.Point{}, candidates, 8,
//		kmst.WithGap(0.01), kmst.WithTimeLimit(time.Minute))
//	if err != nil { ... }
//	fmt.Println(sol.Status, sol.Cost, sol.Nodes)
//
// Backends: WithBackend picks the engine. BackendAuto (default) runs HiGHS
// when the build links it and the built-in branch and bound otherwise. The
// built-in solver caps its dense tableau; past the cap it returns the Prim
// warm start as a suboptimal tree with Bound from Formulation.DegreeBound.
//
// Statuses: StatusOptimal (proven within the requested gap) and
// StatusSuboptimal (time or node limit hit; best tree found so far) are both
// successful results. Solver infeasibility, solver failures and inconsistent
// solver output are errors; see errors.go for the taxonomy.
package kmst
