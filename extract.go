package kmst

import (
	"fmt"
	"sort"
	"strings"

	"github.com/katalvlaran/kmst/core"
)

// SelectThreshold is the single cut-off for reading binaries: a value above
// it is "selected". Every binary read in this package goes through Selected.
const SelectThreshold = 0.5

// Selected reports whether a binary variable value counts as 1.
func Selected(v float64) bool { return v > SelectThreshold }

// Extract reads the selected nodes and arcs out of solver values and checks
// that they form a tree rooted at the root on exactly K nodes:
//
//   - the root is selected; exactly K nodes and K−1 arcs are selected;
//   - no edge is selected in both orientations;
//   - every arc joins two selected nodes; no node has two parents and the
//     root has none;
//   - a traversal from the root along selected arcs reaches exactly the
//     selected node set.
//
// Any failure wraps ErrSolutionInconsistent. Cost is the sum of selected arc
// weights. Run metadata (status, gap, ...) is left to the caller.
//
// Complexity: O(N + E).
func (f *Formulation) Extract(values []float64) (*Solution, error) {
	if len(values) != f.Model.NumVars() {
		return nil, fmt.Errorf("%w: %d values for %d variables", ErrSolutionInconsistent, len(values), f.Model.NumVars())
	}

	chosen := make([]bool, f.Nodes)
	nodes := make([]int, 0, f.K)
	for i, v := range f.NodeVar {
		if Selected(values[v]) {
			chosen[i] = true
			nodes = append(nodes, i)
		}
	}
	if !chosen[core.RootIndex] {
		return nil, fmt.Errorf("%w: root not selected", ErrSolutionInconsistent)
	}
	if len(nodes) != f.K {
		return nil, fmt.Errorf("%w: %d nodes selected, want %d", ErrSolutionInconsistent, len(nodes), f.K)
	}

	arcs := make([]core.Arc, 0, f.K-1)
	parent := make([]int, f.Nodes)
	for i := range parent {
		parent[i] = -1
	}
	for e, edge := range f.Edges {
		fwd, bwd := Selected(values[f.ArcVar[e][0]]), Selected(values[f.ArcVar[e][1]])
		if fwd && bwd {
			return nil, fmt.Errorf("%w: edge %d-%d selected in both directions", ErrSolutionInconsistent, edge.U, edge.V)
		}
		var a core.Arc
		switch {
		case fwd:
			a = core.Arc{From: edge.U, To: edge.V, Weight: edge.Weight}
		case bwd:
			a = core.Arc{From: edge.V, To: edge.U, Weight: edge.Weight}
		default:
			continue
		}
		if !chosen[a.From] || !chosen[a.To] {
			return nil, fmt.Errorf("%w: arc %d->%d touches an unselected node", ErrSolutionInconsistent, a.From, a.To)
		}
		if a.To == core.RootIndex {
			return nil, fmt.Errorf("%w: root has parent %d", ErrSolutionInconsistent, a.From)
		}
		if parent[a.To] >= 0 {
			return nil, fmt.Errorf("%w: node %d has parents %d and %d", ErrSolutionInconsistent, a.To, parent[a.To], a.From)
		}
		parent[a.To] = a.From
		arcs = append(arcs, a)
	}
	if len(arcs) != f.K-1 {
		return nil, fmt.Errorf("%w: %d edges selected, want %d", ErrSolutionInconsistent, len(arcs), f.K-1)
	}

	if reached := reachable(f.Nodes, arcs); reached != f.K {
		return nil, fmt.Errorf("%w: root reaches %d of %d selected nodes", ErrSolutionInconsistent, reached, f.K)
	}

	sort.Slice(arcs, func(i, j int) bool {
		if arcs[i].From != arcs[j].From {
			return arcs[i].From < arcs[j].From
		}

		return arcs[i].To < arcs[j].To
	})

	return &Solution{
		K:     f.K,
		N:     f.Nodes - 1,
		Nodes: nodes,
		Edges: arcs,
		Cost:  core.TotalWeight(arcs),
	}, nil
}

// reachable counts the nodes visited by a BFS from the root along arcs.
func reachable(n int, arcs []core.Arc) int {
	children := make([][]int, n)
	for _, a := range arcs {
		children[a.From] = append(children[a.From], a.To)
	}
	seen := make([]bool, n)
	seen[core.RootIndex] = true
	queue := []int{core.RootIndex}
	count := 0
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		count++
		for _, c := range children[v] {
			if !seen[c] {
				seen[c] = true
				queue = append(queue, c)
			}
		}
	}

	return count
}

// Dump renders every non-zero variable as name=value, one per line, for
// diagnosing inconsistent solutions.
func (f *Formulation) Dump(values []float64) string {
	var b strings.Builder
	for i := 0; i < f.Model.NumVars() && i < len(values); i++ {
		if values[i] == 0 {
			continue
		}
		fmt.Fprintf(&b, "%s=%g\n", f.Model.Var(i).Name, values[i])
	}

	return b.String()
}
