package export

import (
	"errors"
	"fmt"
	"io"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/katalvlaran/kmst/core"
)

var (
	// ErrNoRoot means no feature carries root: true.
	ErrNoRoot = errors.New("export: no root feature")

	// ErrManyRoots means more than one feature carries root: true.
	ErrManyRoots = errors.New("export: more than one root feature")

	// ErrNotPoint means a feature geometry is not a Point.
	ErrNotPoint = errors.New("export: feature geometry is not a point")
)

// ReadPoints parses a FeatureCollection of Points. The feature whose
// "root" property is true becomes the root; the others are candidates in
// file order.
func ReadPoints(r io.Reader) (root core.Point, candidates []core.Point, err error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return root, nil, fmt.Errorf("export: read points: %w", err)
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return root, nil, fmt.Errorf("export: parse points: %w", err)
	}

	found := false
	for i, f := range fc.Features {
		p, ok := f.Geometry.(orb.Point)
		if !ok {
			return root, nil, fmt.Errorf("%w: feature %d is %T", ErrNotPoint, i, f.Geometry)
		}
		pt := core.Point{X: p.X(), Y: p.Y()}
		if f.Properties.MustBool("root", false) {
			if found {
				return root, nil, fmt.Errorf("%w: feature %d", ErrManyRoots, i)
			}
			root, found = pt, true

			continue
		}
		candidates = append(candidates, pt)
	}
	if !found {
		return root, nil, ErrNoRoot
	}

	return root, candidates, nil
}

// WritePoints writes root and candidates in the format ReadPoints accepts.
func WritePoints(w io.Writer, root core.Point, candidates []core.Point) error {
	fc := geojson.NewFeatureCollection()
	f := geojson.NewFeature(orb.Point{root.X, root.Y})
	f.Properties["root"] = true
	fc.Append(f)
	for i, p := range candidates {
		f := geojson.NewFeature(orb.Point{p.X, p.Y})
		f.Properties["node_id"] = i + 1
		fc.Append(f)
	}

	data, err := fc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("export: marshal points: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("export: write points: %w", err)
	}

	return nil
}
