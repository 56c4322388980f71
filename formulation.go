package kmst

import (
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/kmst/core"
	"github.com/katalvlaran/kmst/matrix"
	"github.com/katalvlaran/kmst/milp"
	"github.com/katalvlaran/kmst/prim_kruskal"
)

// RootPriority is the branching priority of arcs incident to the root.
const RootPriority = 10

// Formulation is the flow MILP for one (edge set, k) pair together with the
// variable index maps needed to read a solution back.
type Formulation struct {
	Model *milp.Model
	K     int
	Nodes int // node count including the root
	Edges []core.Edge

	// NodeVar[i] is y_i.
	NodeVar []int

	// ArcVar[e] holds x(U→V), x(V→U) for Edges[e]; FlowVar likewise.
	ArcVar  [][2]int
	FlowVar [][2]int
}

// Build constructs the directed single-commodity flow model over edges on
// the node set of dist (index 0 = root).
//
// Variables:
//
//	y_i        binary, node i selected; y_0 fixed to 1
//	x_ij, x_ji binary, arc selected in that orientation; arcs into the root fixed to 0
//	f_ij, f_ji continuous in [0, k−1]; flows into the root fixed to 0
//
// Constraints:
//
//	root_selected   y_0 = 1
//	k_nodes         Σ_{i≥1} y_i = k−1
//	k_edges         Σ x = k−1
//	one_dir         x_ij + x_ji ≤ 1
//	flow_cap        f_a ≤ (k−1)·x_a
//	flow_floor      f_a ≥ x_a          (a selected arc carries its head's unit)
//	arc_tail        x_a ≤ y_tail(a)
//	arc_head        x_a ≤ y_head(a)
//	in_degree       Σ_{a into j} x_a = y_j          (j ≥ 1)
//	root_no_parent  Σ_{a into 0} x_a = 0
//	root_flow       Σ_{out of 0} f − Σ_{into 0} f = k−1
//	flow_cons       Σ_{into j} f − Σ_{out of j} f = y_j (j ≥ 1)
//
// Objective: minimise Σ w_e·(x_ij + x_ji). Root arcs get RootPriority.
// A truncated Prim tree from the root seeds the warm start.
//
// Errors:
//   - matrix validation errors for a non-square dist.
//   - ErrInput for an edge with bad endpoints or weight.
//   - ErrInfeasibleModel if k∉[1, N] or fewer than k nodes are reachable
//     from the root over edges.
//
// Complexity: O(N + E) variables and constraints.
func Build(dist matrix.Matrix, edges []core.Edge, k int) (*Formulation, error) {
	n, err := matrix.ValidateSquare(dist)
	if err != nil {
		return nil, fmt.Errorf("kmst: distance matrix: %w", err)
	}
	if k < 1 || k > n {
		return nil, fmt.Errorf("%w: k=%d outside [1,%d]", ErrInfeasibleModel, k, n)
	}
	for i, e := range edges {
		if err = e.Validate(); err != nil {
			return nil, fmt.Errorf("%w: edge %d: %w", ErrInput, i, err)
		}
		if e.U < 0 || e.V >= n || e.U >= e.V {
			return nil, fmt.Errorf("%w: edge %d (%d,%d) not normalised within %d nodes", ErrInput, i, e.U, e.V, n)
		}
	}

	// The truncated Prim tree doubles as the reachability check.
	tree, _, err := prim_kruskal.Prim(n, edges, core.RootIndex, k)
	if err != nil {
		return nil, fmt.Errorf("%w: fewer than %d nodes reachable from the root over %d edges: %w",
			ErrInfeasibleModel, k, len(edges), err)
	}

	f := &Formulation{
		Model:   milp.NewModel(fmt.Sprintf("kmst_k%d", k)),
		K:       k,
		Nodes:   n,
		Edges:   append([]core.Edge(nil), edges...),
		NodeVar: make([]int, n),
		ArcVar:  make([][2]int, len(edges)),
		FlowVar: make([][2]int, len(edges)),
	}
	f.addVariables()
	f.addConstraints()
	if err = f.Model.SetStart(f.warmStart(tree)); err != nil {
		return nil, err
	}

	return f, nil
}

func (f *Formulation) addVariables() {
	m := f.Model
	flowCap := float64(f.K - 1)
	for i := range f.NodeVar {
		f.NodeVar[i] = m.AddBinary(fmt.Sprintf("y_%d", i), 0)
	}
	m.SetBounds(f.NodeVar[core.RootIndex], 1, 1)

	for e, edge := range f.Edges {
		ends := [2][2]int{{edge.U, edge.V}, {edge.V, edge.U}}
		for d, a := range ends {
			x := m.AddBinary(fmt.Sprintf("x_%d_%d", a[0], a[1]), edge.Weight)
			fl := m.AddContinuous(fmt.Sprintf("f_%d_%d", a[0], a[1]), 0, flowCap, 0)
			if a[1] == core.RootIndex {
				m.SetBounds(x, 0, 0)
				m.SetBounds(fl, 0, 0)
			}
			if edge.Touches(core.RootIndex) {
				m.SetPriority(x, RootPriority)
			}
			f.ArcVar[e][d], f.FlowVar[e][d] = x, fl
		}
	}
}

// arc describes one orientation of a candidate edge.
type arc struct {
	tail, head int
	x, f       int
}

func (f *Formulation) arcs() []arc {
	out := make([]arc, 0, 2*len(f.Edges))
	for e, edge := range f.Edges {
		out = append(out,
			arc{tail: edge.U, head: edge.V, x: f.ArcVar[e][0], f: f.FlowVar[e][0]},
			arc{tail: edge.V, head: edge.U, x: f.ArcVar[e][1], f: f.FlowVar[e][1]},
		)
	}

	return out
}

func (f *Formulation) addConstraints() {
	m := f.Model
	km1 := float64(f.K - 1)
	root := core.RootIndex
	arcs := f.arcs()

	m.AddConstraint("root_selected", milp.Equal, 1, milp.Term{Var: f.NodeVar[root], Coef: 1})

	nodes := make([]milp.Term, 0, f.Nodes-1)
	for i := 1; i < f.Nodes; i++ {
		nodes = append(nodes, milp.Term{Var: f.NodeVar[i], Coef: 1})
	}
	m.AddConstraint("k_nodes", milp.Equal, km1, nodes...)

	all := make([]milp.Term, 0, len(arcs))
	for _, a := range arcs {
		all = append(all, milp.Term{Var: a.x, Coef: 1})
	}
	m.AddConstraint("k_edges", milp.Equal, km1, all...)

	for e, edge := range f.Edges {
		m.AddConstraint(fmt.Sprintf("one_dir_%d_%d", edge.U, edge.V), milp.LessEq, 1,
			milp.Term{Var: f.ArcVar[e][0], Coef: 1}, milp.Term{Var: f.ArcVar[e][1], Coef: 1})
	}

	in := make([][]arc, f.Nodes)
	out := make([][]arc, f.Nodes)
	for _, a := range arcs {
		name := fmt.Sprintf("%d_%d", a.tail, a.head)
		m.AddConstraint("flow_cap_"+name, milp.LessEq, 0,
			milp.Term{Var: a.f, Coef: 1}, milp.Term{Var: a.x, Coef: -km1})
		m.AddConstraint("flow_floor_"+name, milp.GreaterEq, 0,
			milp.Term{Var: a.f, Coef: 1}, milp.Term{Var: a.x, Coef: -1})
		m.AddConstraint("arc_tail_"+name, milp.LessEq, 0,
			milp.Term{Var: a.x, Coef: 1}, milp.Term{Var: f.NodeVar[a.tail], Coef: -1})
		m.AddConstraint("arc_head_"+name, milp.LessEq, 0,
			milp.Term{Var: a.x, Coef: 1}, milp.Term{Var: f.NodeVar[a.head], Coef: -1})
		in[a.head] = append(in[a.head], a)
		out[a.tail] = append(out[a.tail], a)
	}

	for j := 0; j < f.Nodes; j++ {
		parents := make([]milp.Term, 0, len(in[j])+1)
		for _, a := range in[j] {
			parents = append(parents, milp.Term{Var: a.x, Coef: 1})
		}
		flow := make([]milp.Term, 0, len(in[j])+len(out[j])+1)
		for _, a := range in[j] {
			flow = append(flow, milp.Term{Var: a.f, Coef: 1})
		}
		for _, a := range out[j] {
			flow = append(flow, milp.Term{Var: a.f, Coef: -1})
		}

		if j == root {
			if len(parents) > 0 {
				m.AddConstraint("root_no_parent", milp.Equal, 0, parents...)
			}
			// Stated as out − in.
			for t := range flow {
				flow[t].Coef = -flow[t].Coef
			}
			m.AddConstraint("root_flow", milp.Equal, km1, flow...)

			continue
		}
		y := milp.Term{Var: f.NodeVar[j], Coef: -1}
		m.AddConstraint(fmt.Sprintf("in_degree_%d", j), milp.Equal, 0, append(parents, y)...)
		m.AddConstraint(fmt.Sprintf("flow_cons_%d", j), milp.Equal, 0, append(flow, y)...)
	}
}

// warmStart converts a rooted tree (arcs parent → child) into a model point:
// each arc carries the size of the subtree below its head.
func (f *Formulation) warmStart(tree []core.Arc) []float64 {
	x := make([]float64, f.Model.NumVars())
	x[f.NodeVar[core.RootIndex]] = 1

	children := make(map[int][]int, len(tree))
	for _, a := range tree {
		x[f.NodeVar[a.To]] = 1
		children[a.From] = append(children[a.From], a.To)
	}
	var size func(v int) int
	size = func(v int) int {
		s := 1
		for _, c := range children[v] {
			s += size(c)
		}

		return s
	}

	index := make(map[[2]int]int, len(f.Edges))
	for e, edge := range f.Edges {
		index[edge.Key()] = e
	}
	for _, a := range tree {
		e := index[core.NewEdge(a.From, a.To, 0).Key()]
		d := 0
		if a.From != f.Edges[e].U {
			d = 1
		}
		x[f.ArcVar[e][d]] = 1
		x[f.FlowVar[e][d]] = float64(size(a.To))
	}

	return x
}

// Stats returns the model dimensions for logging.
func (f *Formulation) Stats() (vars, constraints int) {
	return f.Model.NumVars(), f.Model.NumConstraints()
}

// DegreeBound is a lower bound on any k-node tree over Edges: every
// non-root node of the tree has a distinct parent edge, which weighs at least
// the lightest edge touching that node. It sums the k−1 smallest such minima.
func (f *Formulation) DegreeBound() float64 {
	lightest := make([]float64, f.Nodes)
	for i := range lightest {
		lightest[i] = math.Inf(1)
	}
	for _, e := range f.Edges {
		lightest[e.U] = math.Min(lightest[e.U], e.Weight)
		lightest[e.V] = math.Min(lightest[e.V], e.Weight)
	}
	mins := lightest[core.RootIndex+1:]
	sort.Float64s(mins)

	b := 0.0
	for _, w := range mins[:f.K-1] {
		b += w
	}

	return b
}

// lowerBound returns a trivial bound used when the solver reports none.
func lowerBound(b float64) float64 {
	if math.IsNaN(b) || math.IsInf(b, -1) {
		return 0
	}

	return b
}
