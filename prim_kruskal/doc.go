// Package prim_kruskal provides the two classical Minimum Spanning Tree
// algorithms on index graphs: vertices are 0..n-1 and edges are core.Edge
// values. They serve the k-MST pipeline in two roles.
//
//   - Kruskal(n, edges) ([]core.Edge, float64, error)
//
//   - Strategy: sort edges by ascending weight (stable, (U,V) tiebreak), merge
//     components with a disjoint-set (union by rank, path halving).
//
//   - Role: connectivity oracle for the edge pruner (ErrDisconnected means the
//     pruned candidate graph cannot host every k) and the true-MST reference
//     against which k = n+1 solutions are compared.
//
//   - Complexity: O(E log E) time, O(V + E) memory.
//
//   - Prim(n, edges, root, limit) ([]core.Arc, float64, error)
//
//   - Strategy: grow one tree from root with a min-heap of frontier arcs.
//     limit caps the number of vertices in the tree, which turns Prim into
//     the greedy k-tree heuristic used as the MIP warm start.
//
//   - Complexity: O(E log E) time, O(V + E) memory.
//
// Errors:
//
//   - ErrInvalidEdge:  an endpoint outside [0, n) or an edge failing core.Edge.Validate.
//   - ErrRootOutOfRange (Prim only): root outside [0, n).
//   - ErrDisconnected: n == 0, or the requested tree cannot be completed.
//
// Both algorithms are deterministic: equal inputs yield equal outputs,
// including tie-breaks.
package prim_kruskal
