// SPDX-License-Identifier: MIT

package builder

import (
	"math"

	"github.com/katalvlaran/kmst/core"
)

// Layout method names used as error prefixes.
const (
	MethodDisc     = "Disc"
	MethodRing     = "Ring"
	MethodGrid     = "Grid"
	MethodClusters = "Clusters"
)

// Layout emits candidates around cfg.center.
type Layout func(cfg builderConfig) ([]core.Point, error)

// Build runs layout and returns (root, candidates). The root is the center.
func Build(layout Layout, opts ...Option) (core.Point, []core.Point, error) {
	cfg := newConfig(opts...)
	pts, err := layout(cfg)
	if err != nil {
		return core.Point{}, nil, err
	}

	return cfg.center, pts, nil
}

// Disc draws n angles uniform in [0, 2π), then n distances uniform in
// [0, radius). Draw order is part of the contract.
//
// Complexity: O(n).
func Disc(n int, radius float64) Layout {
	return func(cfg builderConfig) ([]core.Point, error) {
		if err := checkCountRadius(MethodDisc, n, 0, radius); err != nil {
			return nil, err
		}
		if cfg.rng == nil {
			return nil, builderErrorf(MethodDisc, "n=%d", ErrNeedRandSource, n)
		}
		angles := make([]float64, n)
		for i := range angles {
			angles[i] = cfg.rng.Float64() * 2 * math.Pi
		}
		pts := make([]core.Point, n)
		for i := range pts {
			r := cfg.rng.Float64() * radius
			pts[i] = polar(cfg.center, r, angles[i])
		}

		return pts, nil
	}
}

// Ring places n ≥ 1 points evenly on a circle, the first at angle 0.
func Ring(n int, radius float64) Layout {
	return func(cfg builderConfig) ([]core.Point, error) {
		if err := checkCountRadius(MethodRing, n, 1, radius); err != nil {
			return nil, err
		}
		pts := make([]core.Point, n)
		for i := range pts {
			pts[i] = polar(cfg.center, radius, 2*math.Pi*float64(i)/float64(n))
		}

		return pts, nil
	}
}

// Grid emits a rows×cols lattice with the given spacing, row-major, centered
// on the root. A lattice point that coincides with the center is skipped, so
// odd×odd grids yield rows*cols−1 candidates.
func Grid(rows, cols int, spacing float64) Layout {
	return func(cfg builderConfig) ([]core.Point, error) {
		if rows < 1 || cols < 1 {
			return nil, builderErrorf(MethodGrid, "rows=%d cols=%d", ErrTooFewPoints, rows, cols)
		}
		if err := checkRadius(MethodGrid, spacing); err != nil {
			return nil, err
		}
		x0 := cfg.center.X - spacing*float64(cols-1)/2
		y0 := cfg.center.Y - spacing*float64(rows-1)/2
		pts := make([]core.Point, 0, rows*cols)
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				p := core.Point{X: x0 + spacing*float64(c), Y: y0 + spacing*float64(r)}
				if p == cfg.center {
					continue
				}
				pts = append(pts, p)
			}
		}

		return pts, nil
	}
}

// Clusters draws c cluster centers with Disc(c, radius), then per points for
// each cluster, uniform in the square of half-width spread around it.
// Points are emitted cluster by cluster.
func Clusters(c, per int, radius, spread float64) Layout {
	return func(cfg builderConfig) ([]core.Point, error) {
		if c < 1 || per < 1 {
			return nil, builderErrorf(MethodClusters, "clusters=%d per=%d", ErrTooFewPoints, c, per)
		}
		if err := checkRadius(MethodClusters, spread); err != nil {
			return nil, err
		}
		centers, err := Disc(c, radius)(cfg)
		if err != nil {
			return nil, err
		}
		pts := make([]core.Point, 0, c*per)
		for _, ctr := range centers {
			for i := 0; i < per; i++ {
				dx := (2*cfg.rng.Float64() - 1) * spread
				dy := (2*cfg.rng.Float64() - 1) * spread
				pts = append(pts, core.Point{X: ctr.X + dx, Y: ctr.Y + dy})
			}
		}

		return pts, nil
	}
}

func polar(center core.Point, r, theta float64) core.Point {
	return core.Point{X: center.X + r*math.Cos(theta), Y: center.Y + r*math.Sin(theta)}
}

func checkCountRadius(method string, n, minN int, radius float64) error {
	if n < minN {
		return builderErrorf(method, "n=%d (must be ≥ %d)", ErrTooFewPoints, n, minN)
	}

	return checkRadius(method, radius)
}

func checkRadius(method string, r float64) error {
	if math.IsNaN(r) || math.IsInf(r, 0) || r <= 0 {
		return builderErrorf(method, "value=%g", ErrBadRadius, r)
	}

	return nil
}
