package distance_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/kmst/core"
	"github.com/katalvlaran/kmst/distance"
	"github.com/katalvlaran/kmst/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func linePoints() []core.Point {
	return []core.Point{{X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: 2}}
}

func TestBuild_EuclideanSymmetric(t *testing.T) {
	dist, err := distance.Build(core.Point{}, linePoints())
	require.NoError(t, err)
	assert.Equal(t, 6, dist.Rows())

	n, err := matrix.ValidateDistance(dist, 0)
	require.NoError(t, err)
	assert.Equal(t, 6, n)

	d, _ := dist.At(0, 3)
	assert.Equal(t, 3.0, d)
	d, _ = dist.At(1, 4)
	assert.InDelta(t, math.Sqrt2, d, 1e-12)
	d, _ = dist.At(3, 5)
	assert.InDelta(t, math.Sqrt(13), d, 1e-12)
}

func TestBuild_Metric(t *testing.T) {
	dist, err := distance.Build(core.Point{}, linePoints(), distance.WithMetric(distance.Manhattan))
	require.NoError(t, err)
	d, _ := dist.At(1, 4)
	assert.Equal(t, 2.0, d)

	blocked := func(a, b core.Point) float64 {
		if a.X == 3 || b.X == 3 {
			return math.Inf(1)
		}
		return distance.Euclidean(a, b)
	}
	dist, err = distance.Build(core.Point{}, linePoints(), distance.WithMetric(blocked))
	require.NoError(t, err)
	d, _ = dist.At(0, 3)
	assert.True(t, math.IsInf(d, 1))

	// Every stored entry lands on both sides of the diagonal.
	for i := 0; i < dist.Rows(); i++ {
		for j := 0; j < dist.Rows(); j++ {
			a, err := dist.At(i, j)
			require.NoError(t, err)
			b, err := dist.At(j, i)
			require.NoError(t, err)
			assert.Equal(t, a, b, "(%d,%d)", i, j)
		}
	}
}

func TestBuild_Errors(t *testing.T) {
	_, err := distance.Build(core.Point{}, nil)
	assert.ErrorIs(t, err, distance.ErrNoCandidates)

	_, err = distance.Build(core.Point{}, linePoints(), distance.WithMinCandidates(6))
	assert.ErrorIs(t, err, distance.ErrTooFewCandidates)

	_, err = distance.Build(core.Point{}, linePoints(), distance.WithMaxCandidates(4))
	assert.ErrorIs(t, err, distance.ErrTooManyCandidates)

	_, err = distance.Build(core.Point{X: math.NaN()}, linePoints())
	assert.ErrorIs(t, err, distance.ErrInvalidCoordinate)

	bad := append(linePoints(), core.Point{X: math.Inf(1), Y: 0})
	_, err = distance.Build(core.Point{}, bad)
	assert.ErrorIs(t, err, distance.ErrInvalidCoordinate)
	assert.Contains(t, err.Error(), "node 6")

	negative := func(a, b core.Point) float64 { return -1 }
	_, err = distance.Build(core.Point{}, linePoints(), distance.WithMetric(negative))
	assert.ErrorIs(t, err, distance.ErrBadMetric)
}
