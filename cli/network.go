package cli

import (
	"fmt"
	"math"

	"github.com/katalvlaran/kmst/builder"
	"github.com/katalvlaran/kmst/core"
)

// Generated network defaults.
const (
	DemoSeed   = 42
	DemoNodes  = 100
	DemoRadius = 1000.0
	DemoK      = 20
	DemoLayout = "disc"
)

// Network generates n candidates around a root at the origin with the named
// layout: disc, ring, grid (smallest square holding n points, spacing
// radius/side) or clusters (five clusters, spread radius/20).
func Network(layout string, seed int64, n int, radius float64) (core.Point, []core.Point, error) {
	var l builder.Layout
	switch layout {
	case "disc":
		l = builder.Disc(n, radius)
	case "ring":
		l = builder.Ring(n, radius)
	case "grid":
		side := int(math.Ceil(math.Sqrt(float64(n + 1))))
		l = builder.Grid(side, side, radius/float64(side))
	case "clusters":
		const clusters = 5
		per := (n + clusters - 1) / clusters
		l = builder.Clusters(clusters, per, radius, radius/20)
	default:
		return core.Point{}, nil, fmt.Errorf("unknown layout %q (disc, ring, grid, clusters)", layout)
	}

	root, cands, err := builder.Build(l, builder.WithSeed(seed))
	if err != nil {
		return core.Point{}, nil, err
	}
	if len(cands) > n {
		cands = cands[:n]
	}

	return root, cands, nil
}
