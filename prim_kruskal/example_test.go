package prim_kruskal_test

import (
	"fmt"

	"github.com/katalvlaran/kmst/core"
	"github.com/katalvlaran/kmst/prim_kruskal"
)

// ExampleKruskal builds the MST of a 4-vertex "envelope":
// 0—1 (4), 0—2 (1), 2—1 (2), 1—3 (3), 2—3 (5), 3—0 (4).
// The MST is {0—2, 1—2, 1—3} with total weight 6.
func ExampleKruskal() {
	edges := []core.Edge{
		core.NewEdge(0, 1, 4),
		core.NewEdge(0, 2, 1),
		core.NewEdge(2, 1, 2),
		core.NewEdge(1, 3, 3),
		core.NewEdge(2, 3, 5),
		core.NewEdge(3, 0, 4),
	}
	mst, total, err := prim_kruskal.Kruskal(4, edges)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("Total: %g, Edges:", total)
	for _, e := range mst {
		fmt.Printf(" %d-%d", e.U, e.V)
	}
	fmt.Println()
	// Output: Total: 6, Edges: 0-2 1-2 1-3
}

// ExamplePrim grows a 3-vertex tree from vertex 0 on a pentagon
// 0—1 (1), 1—2 (2), 2—3 (3), 3—4 (5), 0—4 (12).
func ExamplePrim() {
	edges := []core.Edge{
		core.NewEdge(0, 1, 1),
		core.NewEdge(0, 4, 12),
		core.NewEdge(1, 2, 2),
		core.NewEdge(2, 3, 3),
		core.NewEdge(3, 4, 5),
	}
	arcs, total, err := prim_kruskal.Prim(5, edges, 0, 3)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("Total: %g, Arcs:", total)
	for _, a := range arcs {
		fmt.Printf(" %d->%d", a.From, a.To)
	}
	fmt.Println()
	// Output: Total: 3, Arcs: 0->1 1->2
}

func ExampleKruskal_errDisconnected() {
	_, _, err := prim_kruskal.Kruskal(3, []core.Edge{core.NewEdge(0, 1, 1)})
	fmt.Println(err)
	// Output: prim_kruskal: graph is disconnected
}
