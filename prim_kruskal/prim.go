package prim_kruskal

import (
	"container/heap"

	"github.com/katalvlaran/kmst/core"
)

// Prim grows a minimum-weight tree from root over the undirected index graph
// with n vertices, stopping once the tree holds limit vertices (limit ≤ 0 or
// limit > n means n, i.e. a full MST).
//
// The returned arcs are oriented parent → child in the order Prim added them,
// so arcs[i].To is the (i+2)-th vertex reached.
//
// Steps:
//  1. Validate edges and root; build adjacency lists.
//  2. Push root's arcs; repeatedly pop the lightest arc to an unvisited vertex.
//  3. Stop at limit vertices; fewer reachable → ErrDisconnected.
//
// Complexity: O(E log E) time, O(V + E) memory.
func Prim(n int, edges []core.Edge, root int, limit int) ([]core.Arc, float64, error) {
	if err := validateEdges(n, edges); err != nil {
		return nil, 0, err
	}
	if n == 0 {
		return nil, 0, ErrDisconnected
	}
	if root < 0 || root >= n {
		return nil, 0, ErrRootOutOfRange
	}
	if limit <= 0 || limit > n {
		limit = n
	}

	adj := make([][]core.Arc, n)
	for _, e := range edges {
		adj[e.U] = append(adj[e.U], core.Arc{From: e.U, To: e.V, Weight: e.Weight})
		adj[e.V] = append(adj[e.V], core.Arc{From: e.V, To: e.U, Weight: e.Weight})
	}

	var (
		visited = make([]bool, n)
		tree    = make([]core.Arc, 0, limit-1)
		total   float64
		pq      = &arcPQ{}
	)
	visited[root] = true
	for _, a := range adj[root] {
		heap.Push(pq, a)
	}
	for pq.Len() > 0 && len(tree) < limit-1 {
		a := heap.Pop(pq).(core.Arc)
		if visited[a.To] {
			continue
		}
		visited[a.To] = true
		tree = append(tree, a)
		total += a.Weight
		for _, next := range adj[a.To] {
			if !visited[next.To] {
				heap.Push(pq, next)
			}
		}
	}
	if len(tree) < limit-1 {
		return nil, 0, ErrDisconnected
	}

	return tree, total, nil
}

// arcPQ is a min-heap of arcs ordered by weight, then head, then tail index.
type arcPQ []core.Arc

func (pq arcPQ) Len() int { return len(pq) }

func (pq arcPQ) Less(i, j int) bool {
	if pq[i].Weight != pq[j].Weight {
		return pq[i].Weight < pq[j].Weight
	}
	if pq[i].To != pq[j].To {
		return pq[i].To < pq[j].To
	}

	return pq[i].From < pq[j].From
}

func (pq arcPQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *arcPQ) Push(x interface{}) { *pq = append(*pq, x.(core.Arc)) }

func (pq *arcPQ) Pop() interface{} {
	old := *pq
	n := len(old)
	a := old[n-1]
	*pq = old[:n-1]

	return a
}
