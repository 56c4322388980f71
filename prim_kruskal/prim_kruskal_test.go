package prim_kruskal_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/kmst/core"
	"github.com/katalvlaran/kmst/prim_kruskal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildTriangle returns the triangle 0—1 (1), 1—2 (2), 0—2 (3).
// Its MST is {0—1, 1—2} with total weight 3.
func buildTriangle() []core.Edge {
	return []core.Edge{
		core.NewEdge(0, 1, 1),
		core.NewEdge(1, 2, 2),
		core.NewEdge(0, 2, 3),
	}
}

// buildMediumGraph creates a connected graph with n vertices: a chain
// 0—1—…—(n−1) guarantees connectivity, then extra random edges are added.
// The generator is seeded for reproducibility.
func buildMediumGraph(n, edgesCount int) []core.Edge {
	r := rand.New(rand.NewSource(42))
	seen := make(map[[2]int]bool, edgesCount)
	edges := make([]core.Edge, 0, edgesCount)
	for i := 1; i < n; i++ {
		e := core.NewEdge(i-1, i, 1+r.Float64()+float64(r.Intn(10)))
		seen[e.Key()] = true
		edges = append(edges, e)
	}
	for len(edges) < edgesCount {
		u, v := r.Intn(n), r.Intn(n)
		if u == v {
			continue
		}
		e := core.NewEdge(u, v, 1+r.Float64()+float64(r.Intn(100)))
		if seen[e.Key()] {
			continue
		}
		seen[e.Key()] = true
		edges = append(edges, e)
	}

	return edges
}

func TestKruskal_Triangle(t *testing.T) {
	mst, total, err := prim_kruskal.Kruskal(3, buildTriangle())
	require.NoError(t, err)
	assert.Equal(t, 3.0, total)
	assert.Equal(t, []core.Edge{core.NewEdge(0, 1, 1), core.NewEdge(1, 2, 2)}, mst)
}

func TestPrim_Triangle(t *testing.T) {
	arcs, total, err := prim_kruskal.Prim(3, buildTriangle(), 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 3.0, total)
	assert.Equal(t, []core.Arc{{From: 0, To: 1, Weight: 1}, {From: 1, To: 2, Weight: 2}}, arcs)
}

func TestValidation_EmptyOrDisconnected(t *testing.T) {
	_, _, err := prim_kruskal.Kruskal(0, nil)
	assert.ErrorIs(t, err, prim_kruskal.ErrDisconnected)

	_, _, err = prim_kruskal.Prim(0, nil, 0, 0)
	assert.ErrorIs(t, err, prim_kruskal.ErrDisconnected)

	// Two components: {0,1} and {2,3}.
	split := []core.Edge{core.NewEdge(0, 1, 1), core.NewEdge(2, 3, 1)}
	_, _, err = prim_kruskal.Kruskal(4, split)
	assert.ErrorIs(t, err, prim_kruskal.ErrDisconnected)
	_, _, err = prim_kruskal.Prim(4, split, 0, 0)
	assert.ErrorIs(t, err, prim_kruskal.ErrDisconnected)
	assert.False(t, prim_kruskal.Connected(4, split))

	// Truncated Prim only needs the root's component.
	arcs, total, err := prim_kruskal.Prim(4, split, 0, 2)
	require.NoError(t, err)
	assert.Len(t, arcs, 1)
	assert.Equal(t, 1.0, total)
}

func TestValidation_BadInputs(t *testing.T) {
	_, _, err := prim_kruskal.Kruskal(2, []core.Edge{core.NewEdge(0, 2, 1)})
	assert.ErrorIs(t, err, prim_kruskal.ErrInvalidEdge)

	_, _, err = prim_kruskal.Kruskal(2, []core.Edge{core.NewEdge(0, 1, -3)})
	assert.ErrorIs(t, err, prim_kruskal.ErrInvalidEdge)

	_, _, err = prim_kruskal.Prim(3, buildTriangle(), 3, 0)
	assert.ErrorIs(t, err, prim_kruskal.ErrRootOutOfRange)
}

func TestSingleVertex(t *testing.T) {
	mst, total, err := prim_kruskal.Kruskal(1, nil)
	require.NoError(t, err)
	assert.Empty(t, mst)
	assert.Zero(t, total)

	arcs, total, err := prim_kruskal.Prim(1, nil, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, arcs)
	assert.Zero(t, total)
	assert.True(t, prim_kruskal.Connected(1, nil))
}

// TestPrimKruskal_AgreeOnMedium checks both algorithms reach the same total
// on a random connected graph, and that the tree has n−1 edges.
func TestPrimKruskal_AgreeOnMedium(t *testing.T) {
	const n = 200
	edges := buildMediumGraph(n, 900)

	mstK, totalK, err := prim_kruskal.Kruskal(n, edges)
	require.NoError(t, err)
	arcsP, totalP, err := prim_kruskal.Prim(n, edges, 0, 0)
	require.NoError(t, err)

	assert.Len(t, mstK, n-1)
	assert.Len(t, arcsP, n-1)
	assert.InDelta(t, totalK, totalP, 1e-9)
	assert.True(t, prim_kruskal.Connected(n, edges))
}

// TestPrim_LimitIsGreedyPrefix checks that a truncated run is a prefix of the
// full run, so the k-tree heuristic is consistent across k.
func TestPrim_LimitIsGreedyPrefix(t *testing.T) {
	edges := buildMediumGraph(50, 200)
	full, _, err := prim_kruskal.Prim(50, edges, 0, 0)
	require.NoError(t, err)
	for _, k := range []int{1, 2, 10, 50} {
		part, _, err := prim_kruskal.Prim(50, edges, 0, k)
		require.NoError(t, err)
		assert.Equal(t, full[:k-1], part)
	}
}
