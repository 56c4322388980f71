// Package export serialises solutions for GIS tools and humans.
//
// A result directory holds three files:
//
//	nodes.geojson  every node, properties node_id, root, selected
//	edges.geojson  tree edges as LineStrings, properties node1, node2, weight
//	summary.txt    k, counts, total weight, status, gap, root coordinates
//
// Coordinates are written as given; no reprojection happens here.
package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/katalvlaran/kmst"
	"github.com/katalvlaran/kmst/core"
)

// File names inside a result directory.
const (
	NodesFile   = "nodes.geojson"
	EdgesFile   = "edges.geojson"
	SummaryFile = "summary.txt"
)

var (
	// ErrNilSolution is returned when there is nothing to export.
	ErrNilSolution = errors.New("export: nil solution")

	// ErrNodeIndex means a solution references a node outside the input.
	ErrNodeIndex = errors.New("export: node index out of range")
)

// Write creates dir and writes all three result files.
func Write(dir string, root core.Point, candidates []core.Point, sol *kmst.Solution) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("export: create %s: %w", dir, err)
	}
	if err := WriteGeoJSON(dir, root, candidates, sol); err != nil {
		return err
	}

	f, err := os.Create(filepath.Join(dir, SummaryFile))
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := WriteSummary(f, sol, root); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

// WriteGeoJSON writes nodes.geojson and edges.geojson into an existing dir.
func WriteGeoJSON(dir string, root core.Point, candidates []core.Point, sol *kmst.Solution) error {
	nodes, edges, err := Collections(root, candidates, sol)
	if err != nil {
		return err
	}
	for name, fc := range map[string]*geojson.FeatureCollection{NodesFile: nodes, EdgesFile: edges} {
		data, err := fc.MarshalJSON()
		if err != nil {
			return fmt.Errorf("export: marshal %s: %w", name, err)
		}
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
			return fmt.Errorf("export: %w", err)
		}
	}

	return nil
}

// Collections builds the node and edge feature collections in memory.
func Collections(root core.Point, candidates []core.Point, sol *kmst.Solution) (nodes, edges *geojson.FeatureCollection, err error) {
	if sol == nil {
		return nil, nil, ErrNilSolution
	}
	all := make([]core.Point, 0, len(candidates)+1)
	all = append(all, root)
	all = append(all, candidates...)

	selected := make([]bool, len(all))
	for _, v := range sol.Nodes {
		if v < 0 || v >= len(all) {
			return nil, nil, fmt.Errorf("%w: node %d of %d", ErrNodeIndex, v, len(all))
		}
		selected[v] = true
	}

	nodes = geojson.NewFeatureCollection()
	for i, p := range all {
		f := geojson.NewFeature(orb.Point{p.X, p.Y})
		f.Properties["node_id"] = i
		f.Properties["root"] = i == core.RootIndex
		f.Properties["selected"] = selected[i]
		nodes.Append(f)
	}

	edges = geojson.NewFeatureCollection()
	for _, a := range sol.Edges {
		if a.From < 0 || a.From >= len(all) || a.To < 0 || a.To >= len(all) {
			return nil, nil, fmt.Errorf("%w: arc %d→%d", ErrNodeIndex, a.From, a.To)
		}
		p, q := all[a.From], all[a.To]
		f := geojson.NewFeature(orb.LineString{{p.X, p.Y}, {q.X, q.Y}})
		f.Properties["node1"] = a.From
		f.Properties["node2"] = a.To
		f.Properties["weight"] = a.Weight
		edges.Append(f)
	}

	return nodes, edges, nil
}

// WriteSummary writes the plain-text summary.
func WriteSummary(w io.Writer, sol *kmst.Solution, root core.Point) error {
	if sol == nil {
		return ErrNilSolution
	}
	_, err := fmt.Fprintf(w,
		"run_id: %s\nk: %d\nnodes_selected: %d\nedges_selected: %d\ntotal_weight: %.6f\nstatus: %s\ngap: %.6f\nroot_coords: %s\n",
		sol.RunID, sol.K, len(sol.Nodes), len(sol.Edges), sol.Cost, sol.Status, sol.Gap, root)
	if err != nil {
		return fmt.Errorf("export: write summary: %w", err)
	}

	return nil
}
