// Package core defines the value types shared by every stage of the k-MST
// pipeline: planar points, undirected candidate edges and directed tree arcs.
//
// Node identity is positional. Index 0 (RootIndex) is always the root; the
// candidates supplied by the caller occupy indices 1..n in input order.
// Every type here is an immutable value once built, so slices of them may be
// shared freely between goroutines that only read.
//
// Edges are normalized on construction (U < V) which keeps de-duplication and
// deterministic ordering trivial:
//
//	e := core.NewEdge(3, 1, 2.5) // {U:1, V:3, Weight:2.5}
//	e.Other(1)                   // 3
//
// Arcs carry an orientation (parent → child) and are produced only by the
// solution extractor and the truncated Prim warm start.
package core
