package prune

import (
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/kmst/core"
	"github.com/katalvlaran/kmst/matrix"
	"github.com/katalvlaran/kmst/prim_kruskal"
)

// symTol is the tolerance used to re-validate caller-supplied matrices.
const symTol = 1e-9

// Prune filters the complete graph described by dist (index 0 = root).
//
// Errors:
//   - matrix validation errors (non-square, asymmetric, NaN, negative).
//   - ErrBadOption for invalid options.
//   - ErrPruningInfeasible when the widest attempt is still disconnected.
//
// Complexity: O(N² log N) for the nearest-neighbour ranking, O(N²) otherwise,
// plus O(E·α(N)) per connectivity check.
func Prune(dist matrix.Matrix, opts ...Option) (Result, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.validate(); err != nil {
		return Result{}, err
	}
	n, err := matrix.ValidateDistance(dist, symTol)
	if err != nil {
		return Result{}, fmt.Errorf("prune: %w", err)
	}

	d := make([][]float64, n)
	for i := range d {
		d[i] = make([]float64, n)
		for j := range d[i] {
			d[i][j], _ = dist.At(i, j)
		}
	}

	var ranked [][]int
	m := o.Neighbors
	for attempt := 1; attempt <= o.MaxAttempts; attempt++ {
		s := newEdgeSet(d)
		policy, neighbors := o.Policy, 0
		switch {
		case attempt > 1 && attempt == o.MaxAttempts:
			policy = PolicyComplete
			s.addComplete()
		case o.Policy == PolicyComplete:
			s.addComplete()
		default:
			if o.Policy == PolicyRootRadius {
				s.addRootRadius()
			}
			// Widening a root-radius set mixes in nearest neighbours.
			if o.Policy == PolicyNearest || attempt > 1 {
				if ranked == nil {
					ranked = rankNeighbors(d)
				}
				s.addNearest(ranked, m)
				neighbors = m
			}
		}
		if o.KeepRootEdges {
			s.addRootEdges()
		}

		edges := s.sorted()
		if prim_kruskal.Connected(n, edges) {
			return Result{Edges: edges, Policy: policy, Neighbors: neighbors, Attempts: attempt}, nil
		}
		if policy == PolicyComplete {
			return Result{}, fmt.Errorf("%w: %d nodes after %d attempt(s)", ErrPruningInfeasible, n, attempt)
		}
		m *= 2
	}

	return Result{}, fmt.Errorf("%w: %d nodes after %d attempt(s)", ErrPruningInfeasible, n, o.MaxAttempts)
}

// edgeSet accumulates unique finite edges.
type edgeSet struct {
	d     [][]float64
	seen  map[[2]int]struct{}
	edges []core.Edge
}

func newEdgeSet(d [][]float64) *edgeSet {
	return &edgeSet{d: d, seen: make(map[[2]int]struct{})}
}

func (s *edgeSet) add(i, j int) {
	if i == j || math.IsInf(s.d[i][j], 1) {
		return
	}
	e := core.NewEdge(i, j, s.d[i][j])
	if _, ok := s.seen[e.Key()]; ok {
		return
	}
	s.seen[e.Key()] = struct{}{}
	s.edges = append(s.edges, e)
}

func (s *edgeSet) addComplete() {
	for i := range s.d {
		for j := i + 1; j < len(s.d); j++ {
			s.add(i, j)
		}
	}
}

func (s *edgeSet) addRootEdges() {
	for j := 1; j < len(s.d); j++ {
		s.add(core.RootIndex, j)
	}
}

func (s *edgeSet) addRootRadius() {
	r := core.RootIndex
	for i := range s.d {
		for j := i + 1; j < len(s.d); j++ {
			if i == r || j == r || s.d[i][j] <= math.Max(s.d[i][r], s.d[j][r]) {
				s.add(i, j)
			}
		}
	}
}

func (s *edgeSet) addNearest(ranked [][]int, m int) {
	for i, row := range ranked {
		if m < len(row) {
			row = row[:m]
		}
		for _, j := range row {
			s.add(i, j)
		}
	}
}

func (s *edgeSet) sorted() []core.Edge {
	core.SortEdges(s.edges)

	return s.edges
}

// rankNeighbors lists, for each node, the other nodes with a finite
// distance ordered by (distance, index).
func rankNeighbors(d [][]float64) [][]int {
	ranked := make([][]int, len(d))
	for i, row := range d {
		r := make([]int, 0, len(d)-1)
		for j, w := range row {
			if j != i && !math.IsInf(w, 1) {
				r = append(r, j)
			}
		}
		sort.Slice(r, func(a, b int) bool {
			if row[r[a]] != row[r[b]] {
				return row[r[a]] < row[r[b]]
			}

			return r[a] < r[b]
		})
		ranked[i] = r
	}

	return ranked
}
