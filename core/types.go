package core

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// RootIndex is the node index reserved for the root in every matrix,
// edge list and solution produced by this module.
const RootIndex = 0

// Sentinel errors for core value construction.
var (
	// ErrSelfLoop indicates an edge whose endpoints coincide.
	ErrSelfLoop = errors.New("core: self-loop edge")

	// ErrNegativeIndex indicates an edge endpoint below zero.
	ErrNegativeIndex = errors.New("core: negative node index")

	// ErrBadWeight indicates a NaN or negative edge weight.
	ErrBadWeight = errors.New("core: weight must be finite and non-negative")
)

// Point is a planar coordinate. Units are whatever the caller uses
// (projected metres in practice); the pipeline never reprojects.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Valid reports whether both coordinates are finite.
func (p Point) Valid() bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

// String renders the point as "(x, y)".
func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// Edge is an undirected candidate edge between node indices U < V.
type Edge struct {
	// U is the smaller endpoint index.
	U int

	// V is the larger endpoint index.
	V int

	// Weight is the edge length (distance between the endpoints).
	Weight float64
}

// NewEdge returns the normalized edge {min(i,j), max(i,j), w}.
// It does not validate; use Validate when the inputs are untrusted.
func NewEdge(i, j int, w float64) Edge {
	if i > j {
		i, j = j, i
	}

	return Edge{U: i, V: j, Weight: w}
}

// Key returns the normalized endpoint pair, suitable as a map key.
func (e Edge) Key() [2]int { return [2]int{e.U, e.V} }

// Other returns the endpoint opposite to i, or -1 when i is not an endpoint.
func (e Edge) Other(i int) int {
	switch i {
	case e.U:
		return e.V
	case e.V:
		return e.U
	default:
		return -1
	}
}

// Touches reports whether i is one of the endpoints.
func (e Edge) Touches(i int) bool { return e.U == i || e.V == i }

// Validate checks the structural invariants of a candidate edge:
// distinct non-negative endpoints and a finite non-negative weight.
func (e Edge) Validate() error {
	if e.U < 0 || e.V < 0 {
		return ErrNegativeIndex
	}
	if e.U == e.V {
		return ErrSelfLoop
	}
	if math.IsNaN(e.Weight) || math.IsInf(e.Weight, 0) || e.Weight < 0 {
		return ErrBadWeight
	}

	return nil
}

// Arc is a directed tree edge oriented from parent to child.
type Arc struct {
	From   int
	To     int
	Weight float64
}

// Edge drops the orientation of the arc.
func (a Arc) Edge() Edge { return NewEdge(a.From, a.To, a.Weight) }

// SortEdges orders edges by (U, V) in place. The order is the canonical one
// used for variable numbering, so equal inputs always build equal models.
func SortEdges(edges []Edge) {
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].U != edges[j].U {
			return edges[i].U < edges[j].U
		}

		return edges[i].V < edges[j].V
	})
}

// TotalWeight sums the weights of the given arcs.
func TotalWeight(arcs []Arc) float64 {
	var sum float64
	for _, a := range arcs {
		sum += a.Weight
	}

	return sum
}

// Round1e9 rounds x to nine decimal places. Costs are reported through it so
// that sums accumulated in different orders compare equal.
func Round1e9(x float64) float64 {
	return math.Round(x*1e9) / 1e9
}
