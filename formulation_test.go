package kmst_test

import (
	"context"
	"testing"

	"github.com/katalvlaran/kmst"
	"github.com/katalvlaran/kmst/core"
	"github.com/katalvlaran/kmst/distance"
	"github.com/katalvlaran/kmst/milp"
	"github.com/katalvlaran/kmst/prune"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// squareFormulation builds the complete graph on root (0,0) and the unit
// square corners (1,0), (1,1), (0,1).
func squareFormulation(t *testing.T, k int) *kmst.Formulation {
	t.Helper()
	dist, err := distance.Build(core.Point{}, []core.Point{{X: 1}, {X: 1, Y: 1}, {Y: 1}})
	require.NoError(t, err)
	pr, err := prune.Prune(dist, prune.WithPolicy(prune.PolicyComplete))
	require.NoError(t, err)
	f, err := kmst.Build(dist, pr.Edges, k)
	require.NoError(t, err)

	return f
}

// edgeIndex finds the position of edge {u,v} in f.Edges.
func edgeIndex(t *testing.T, f *kmst.Formulation, u, v int) int {
	t.Helper()
	key := core.NewEdge(u, v, 0).Key()
	for e, edge := range f.Edges {
		if edge.Key() == key {
			return e
		}
	}
	t.Fatalf("edge %d-%d not in formulation", u, v)

	return -1
}

// setArc switches on arc u→v.
func setArc(t *testing.T, f *kmst.Formulation, x []float64, u, v int) {
	t.Helper()
	e := edgeIndex(t, f, u, v)
	d := 0
	if f.Edges[e].U != u {
		d = 1
	}
	x[f.ArcVar[e][d]] = 1
}

func TestBuild_Dimensions(t *testing.T) {
	f := squareFormulation(t, 3)
	require.Len(t, f.Edges, 6)

	vars, cons := f.Stats()
	assert.Equal(t, 4+4*6, vars)
	// root_selected, k_nodes, k_edges, 6 one_dir, 12×4 arc rows,
	// root_no_parent, root_flow, 3 in_degree, 3 flow_cons.
	assert.Equal(t, 3+6+48+2+6, cons)
	require.NoError(t, f.Model.Validate())

	// Arcs into the root are fixed shut; root arcs carry the branch priority.
	e := edgeIndex(t, f, 0, 2)
	into := f.Model.Var(f.ArcVar[e][1])
	assert.Equal(t, 0.0, into.Upper)
	assert.Equal(t, kmst.RootPriority, f.Model.Var(f.ArcVar[e][0]).Priority)
	assert.Equal(t, 0, f.Model.Var(f.ArcVar[edgeIndex(t, f, 1, 2)][0]).Priority)
	assert.Equal(t, 2.0, f.Model.Var(f.FlowVar[e][0]).Upper)
}

func TestBuild_WarmStartIsFeasible(t *testing.T) {
	for k := 2; k <= 4; k++ {
		f := squareFormulation(t, k)
		start := f.Model.Start()
		require.NotNil(t, start)
		require.NoError(t, f.Model.Feasible(start, 1e-9), "k=%d", k)

		sol, err := f.Extract(start)
		require.NoError(t, err)
		assert.InDelta(t, float64(k-1), sol.Cost, 1e-9)
	}
}

func TestBuild_Errors(t *testing.T) {
	dist, err := distance.Build(core.Point{}, []core.Point{{X: 1}, {X: 2}})
	require.NoError(t, err)
	edges := []core.Edge{core.NewEdge(0, 1, 1)}

	_, err = kmst.Build(dist, edges, 0)
	assert.ErrorIs(t, err, kmst.ErrInfeasibleModel)
	_, err = kmst.Build(dist, edges, 4)
	assert.ErrorIs(t, err, kmst.ErrInfeasibleModel)
	// Node 2 is unreachable, so no 3-node tree exists.
	_, err = kmst.Build(dist, edges, 3)
	assert.ErrorIs(t, err, kmst.ErrInfeasibleModel)
	_, err = kmst.Build(dist, []core.Edge{{U: 0, V: 5, Weight: 1}}, 2)
	assert.ErrorIs(t, err, kmst.ErrInput)
	_, err = kmst.Build(dist, []core.Edge{{U: 1, V: 1, Weight: 1}}, 2)
	assert.ErrorIs(t, err, kmst.ErrInput)
}

func TestBuild_SolvesWithBuiltInSolver(t *testing.T) {
	f := squareFormulation(t, 4)
	res, err := new(milp.BranchAndBound).Solve(context.Background(), f.Model, milp.Params{})
	require.NoError(t, err)
	require.Equal(t, milp.StatusOptimal, res.Status)

	sol, err := f.Extract(res.Values)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, sol.Cost, 1e-9)
}

func TestExtract_Inconsistent(t *testing.T) {
	f := squareFormulation(t, 3)
	valid := func() []float64 { return append([]float64(nil), f.Model.Start()...) }

	t.Run("length", func(t *testing.T) {
		_, err := f.Extract([]float64{1})
		assert.ErrorIs(t, err, kmst.ErrSolutionInconsistent)
	})
	t.Run("root unselected", func(t *testing.T) {
		x := valid()
		x[f.NodeVar[0]] = 0
		_, err := f.Extract(x)
		assert.ErrorIs(t, err, kmst.ErrSolutionInconsistent)
	})
	t.Run("too many nodes", func(t *testing.T) {
		x := make([]float64, f.Model.NumVars())
		for _, v := range f.NodeVar {
			x[v] = 1
		}
		_, err := f.Extract(x)
		assert.ErrorIs(t, err, kmst.ErrSolutionInconsistent)
	})
	t.Run("both directions", func(t *testing.T) {
		x := make([]float64, f.Model.NumVars())
		x[f.NodeVar[0]], x[f.NodeVar[1]], x[f.NodeVar[2]] = 1, 1, 1
		setArc(t, f, x, 1, 2)
		setArc(t, f, x, 2, 1)
		_, err := f.Extract(x)
		assert.ErrorIs(t, err, kmst.ErrSolutionInconsistent)
	})
	t.Run("arc to unselected node", func(t *testing.T) {
		x := make([]float64, f.Model.NumVars())
		x[f.NodeVar[0]], x[f.NodeVar[1]], x[f.NodeVar[2]] = 1, 1, 1
		setArc(t, f, x, 0, 1)
		setArc(t, f, x, 0, 3)
		_, err := f.Extract(x)
		assert.ErrorIs(t, err, kmst.ErrSolutionInconsistent)
	})
	t.Run("two parents", func(t *testing.T) {
		x := make([]float64, f.Model.NumVars())
		x[f.NodeVar[0]], x[f.NodeVar[1]], x[f.NodeVar[2]] = 1, 1, 1
		setArc(t, f, x, 0, 2)
		setArc(t, f, x, 1, 2)
		_, err := f.Extract(x)
		assert.ErrorIs(t, err, kmst.ErrSolutionInconsistent)
	})
	t.Run("detached cycle", func(t *testing.T) {
		g := squareFormulation(t, 4)
		x := make([]float64, g.Model.NumVars())
		for _, v := range g.NodeVar {
			x[v] = 1
		}
		setArc(t, g, x, 1, 2)
		setArc(t, g, x, 2, 3)
		setArc(t, g, x, 3, 1)
		_, err := g.Extract(x)
		assert.ErrorIs(t, err, kmst.ErrSolutionInconsistent)
		assert.Contains(t, err.Error(), "reaches 1 of 4")
	})
}

func TestSelectedThreshold(t *testing.T) {
	assert.True(t, kmst.Selected(0.51))
	assert.True(t, kmst.Selected(1-1e-9))
	assert.False(t, kmst.Selected(0.5))
	assert.False(t, kmst.Selected(1e-7))
}

func TestDump(t *testing.T) {
	f := squareFormulation(t, 2)
	out := f.Dump(f.Model.Start())
	assert.Contains(t, out, "y_0=1")
	assert.Contains(t, out, "x_0_1=1")
	assert.NotContains(t, out, "y_2=")
}
