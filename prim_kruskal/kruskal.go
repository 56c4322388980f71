package prim_kruskal

import (
	"sort"

	"github.com/katalvlaran/kmst/core"
)

// Kruskal computes a Minimum Spanning Tree of the undirected index graph with
// n vertices.
//
// Steps:
//  1. Validate edges against n; n == 0 → ErrDisconnected, n == 1 → empty tree.
//  2. Copy and stable-sort edges by weight, ties by (U, V).
//  3. Scan, keeping every edge that joins two components, until n−1 edges.
//  4. Fewer than n−1 edges → ErrDisconnected.
//
// The input slice is not modified. Complexity: O(E log E + α(V)·E).
func Kruskal(n int, edges []core.Edge) ([]core.Edge, float64, error) {
	if err := validateEdges(n, edges); err != nil {
		return nil, 0, err
	}
	if n == 0 {
		return nil, 0, ErrDisconnected
	}
	if n == 1 {
		return []core.Edge{}, 0, nil
	}

	sorted := make([]core.Edge, len(edges))
	copy(sorted, edges)
	core.SortEdges(sorted)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Weight < sorted[j].Weight })

	var (
		ds    = newDisjointSet(n)
		mst   = make([]core.Edge, 0, n-1)
		total float64
	)
	for _, e := range sorted {
		if !ds.union(e.U, e.V) {
			continue // would close a cycle
		}
		mst = append(mst, e)
		total += e.Weight
		if len(mst) == n-1 {
			break
		}
	}
	if len(mst) < n-1 {
		return nil, 0, ErrDisconnected
	}

	return mst, total, nil
}

// Connected reports whether the index graph spans all n vertices.
// Complexity: O(E·α(V)).
func Connected(n int, edges []core.Edge) bool {
	if n <= 1 {
		return n == 1
	}
	ds := newDisjointSet(n)
	merged := 0
	for _, e := range edges {
		if e.U < 0 || e.V < 0 || e.U >= n || e.V >= n {
			continue
		}
		if ds.union(e.U, e.V) {
			merged++
			if merged == n-1 {
				return true
			}
		}
	}

	return false
}
