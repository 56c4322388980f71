package prim_kruskal

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/kmst/core"
)

// ErrInvalidEdge indicates an edge with an endpoint outside [0, n) or a
// weight rejected by core.Edge.Validate.
var ErrInvalidEdge = errors.New("prim_kruskal: invalid edge")

// ErrRootOutOfRange indicates that Prim's root is not a vertex of the graph.
var ErrRootOutOfRange = errors.New("prim_kruskal: root out of range")

// ErrDisconnected indicates that the graph is not connected enough to form
// the requested spanning tree.
var ErrDisconnected = errors.New("prim_kruskal: graph is disconnected")

// validateEdges checks every edge against the vertex count n.
// Complexity: O(E).
func validateEdges(n int, edges []core.Edge) error {
	for i, e := range edges {
		if err := e.Validate(); err != nil {
			return fmt.Errorf("%w: #%d %v: %v", ErrInvalidEdge, i, e.Key(), err)
		}
		if e.U >= n || e.V >= n {
			return fmt.Errorf("%w: #%d %v outside [0,%d)", ErrInvalidEdge, i, e.Key(), n)
		}
	}

	return nil
}

// disjointSet is an index-based union-find with union by rank and path halving.
type disjointSet struct {
	parent []int
	rank   []uint8
}

func newDisjointSet(n int) *disjointSet {
	ds := &disjointSet{parent: make([]int, n), rank: make([]uint8, n)}
	for i := range ds.parent {
		ds.parent[i] = i
	}

	return ds
}

// find returns the representative of u.
func (ds *disjointSet) find(u int) int {
	for ds.parent[u] != u {
		ds.parent[u] = ds.parent[ds.parent[u]]
		u = ds.parent[u]
	}

	return u
}

// union merges the sets of u and v and reports whether they were distinct.
func (ds *disjointSet) union(u, v int) bool {
	ru, rv := ds.find(u), ds.find(v)
	if ru == rv {
		return false
	}
	switch {
	case ds.rank[ru] < ds.rank[rv]:
		ds.parent[ru] = rv
	case ds.rank[ru] > ds.rank[rv]:
		ds.parent[rv] = ru
	default:
		ds.parent[rv] = ru
		ds.rank[ru]++
	}

	return true
}
