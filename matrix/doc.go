// SPDX-License-Identifier: MIT

// Package matrix provides the dense numeric storage used for distance
// matrices.
//
// The Matrix interface is a uniform, bounds-checked view over a
// two-dimensional array of float64 values. Dense is the only implementation:
// row-major, flat backing slice, O(1) indexed access. A 1501×1501 distance
// matrix (the largest instance the pipeline accepts by default) occupies
// about 18 MB, which is why no sparse layout is offered.
//
// Accessors never panic on user input; At and Set return ErrOutOfRange.
// Row exposes a read view of one row for hot loops (neighbour sorting in the
// pruner) where the per-call bounds check would dominate.
package matrix
