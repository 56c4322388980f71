// SPDX-License-Identifier: MIT

// Package builder_test verifies layout shapes, determinism and validation.
//
// Focus:
//   - equal seeds give equal layouts, different seeds differ
//   - geometric bounds of every layout
//   - sentinel errors for bad parameters
package builder_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/kmst/builder"
	"github.com/katalvlaran/kmst/core"
)

func TestDisc_Deterministic(t *testing.T) {
	_, a, err := builder.Build(builder.Disc(100, 1000), builder.WithSeed(42))
	require.NoError(t, err)
	_, b, err := builder.Build(builder.Disc(100, 1000), builder.WithRand(rand.New(rand.NewSource(42))))
	require.NoError(t, err)
	assert.Equal(t, a, b)

	_, c, err := builder.Build(builder.Disc(100, 1000), builder.WithSeed(7))
	require.NoError(t, err)
	assert.NotEqual(t, a, c)

	for _, p := range a {
		assert.Less(t, math.Hypot(p.X, p.Y), 1000.0)
	}
}

func TestDisc_Center(t *testing.T) {
	center := core.Point{X: 500, Y: -200}
	root, pts, err := builder.Build(builder.Disc(20, 10), builder.WithSeed(1), builder.WithCenter(center))
	require.NoError(t, err)
	assert.Equal(t, center, root)
	for _, p := range pts {
		assert.Less(t, math.Hypot(p.X-center.X, p.Y-center.Y), 10.0)
	}
}

func TestRing(t *testing.T) {
	_, pts, err := builder.Build(builder.Ring(4, 2))
	require.NoError(t, err)
	require.Len(t, pts, 4)
	assert.InDelta(t, 2, pts[0].X, 1e-12)
	assert.InDelta(t, 0, pts[0].Y, 1e-12)
	assert.InDelta(t, 2, pts[1].Y, 1e-12)
	for _, p := range pts {
		assert.InDelta(t, 2, math.Hypot(p.X, p.Y), 1e-12)
	}
}

func TestGrid_SkipsCenter(t *testing.T) {
	_, pts, err := builder.Build(builder.Grid(3, 3, 10))
	require.NoError(t, err)
	assert.Len(t, pts, 8)
	assert.Equal(t, core.Point{X: -10, Y: -10}, pts[0])
	assert.NotContains(t, pts, core.Point{})

	_, pts, err = builder.Build(builder.Grid(2, 2, 10))
	require.NoError(t, err)
	assert.Len(t, pts, 4)
}

func TestClusters(t *testing.T) {
	_, pts, err := builder.Build(builder.Clusters(3, 5, 1000, 20), builder.WithSeed(42))
	require.NoError(t, err)
	require.Len(t, pts, 15)

	_, centers, err := builder.Build(builder.Disc(3, 1000), builder.WithSeed(42))
	require.NoError(t, err)
	for i, p := range pts {
		ctr := centers[i/5]
		assert.LessOrEqual(t, math.Abs(p.X-ctr.X), 20.0)
		assert.LessOrEqual(t, math.Abs(p.Y-ctr.Y), 20.0)
	}
}

func TestErrors(t *testing.T) {
	cases := map[string]struct {
		layout builder.Layout
		opts   []builder.Option
		want   error
	}{
		"disc no rng":      {builder.Disc(3, 1), nil, builder.ErrNeedRandSource},
		"disc negative n":  {builder.Disc(-1, 1), nil, builder.ErrTooFewPoints},
		"disc zero radius": {builder.Disc(3, 0), []builder.Option{builder.WithSeed(1)}, builder.ErrBadRadius},
		"ring empty":       {builder.Ring(0, 1), nil, builder.ErrTooFewPoints},
		"ring inf":         {builder.Ring(3, math.Inf(1)), nil, builder.ErrBadRadius},
		"grid rows":        {builder.Grid(0, 3, 1), nil, builder.ErrTooFewPoints},
		"grid spacing":     {builder.Grid(2, 2, math.NaN()), nil, builder.ErrBadRadius},
		"clusters per":     {builder.Clusters(2, 0, 1, 1), nil, builder.ErrTooFewPoints},
		"clusters no rng":  {builder.Clusters(2, 2, 1, 1), nil, builder.ErrNeedRandSource},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := builder.Build(tc.layout, tc.opts...)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	assert.Panics(t, func() { builder.WithRand(nil) })
}
