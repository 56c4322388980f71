// Package prune reduces the complete graph over root + candidates to a
// sparse candidate edge set before model construction.
//
// The flow model carries four variables per candidate edge, so the edge set
// drives model size. Pruning is a heuristic: an edge dropped here can never
// appear in the solution, so the pipeline's optimum is optimal for the
// pruned graph only. Policies:
//
//   - PolicyNearest (default): the union of every node's m nearest finite
//     neighbours (m = Options.Neighbors).
//   - PolicyRootRadius: keep (i, j) iff it touches the root or
//     d(i,j) ≤ max(d(i,0), d(j,0)); an edge no longer than the farther
//     endpoint's own root connection.
//   - PolicyComplete: every finite pair.
//
// With Options.KeepRootEdges (default) every finite root edge is kept,
// which guarantees a star through the root is always representable.
//
// The pruned graph must be connected. When it is not, Prune widens and
// retries: the nearest-neighbour count doubles on each attempt and the
// final attempt (Options.MaxAttempts) uses every finite pair. A graph that
// is still disconnected yields ErrPruningInfeasible.
//
// Output edges are normalised (U < V) and sorted by (U, V), so results are
// deterministic for a given matrix.
package prune
