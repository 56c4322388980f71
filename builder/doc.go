// SPDX-License-Identifier: MIT

// Package builder generates reproducible candidate layouts for demos,
// benchmarks and tests of the k-MST pipeline.
//
// A Layout is a closure that emits points around a center; Build applies
// functional options (seed, RNG, center) and returns the root (the center)
// together with the generated candidates:
//
//	root, cands, err := builder.Build(builder.Disc(100, 1000), builder.WithSeed(42))
//
// Layouts:
//   - Disc(n, radius):  angle and distance both uniform, as in the classic
//     demo network (points cluster towards the center).
//   - Ring(n, radius):  n points evenly spaced on a circle; no RNG.
//   - Grid(rows, cols, spacing): a lattice centered on the root; no RNG.
//   - Clusters(c, per, radius, spread): c cluster centers on a Disc, each
//     with per points uniform in a square of half-width spread.
//
// Determinism: stochastic layouts draw from the configured *rand.Rand only,
// in a documented order, so equal seeds always give equal layouts.
//
// Errors: parameters are validated before any point is emitted; failures
// wrap ErrTooFewPoints, ErrBadRadius or ErrNeedRandSource.
package builder
