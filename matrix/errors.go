// SPDX-License-Identifier: MIT

package matrix

import "errors"

// Every message is prefixed with "matrix: ..." for consistency. Callers match
// with errors.Is; context is added with fmt.Errorf("ctx: %w", ErrX).
var (
	// ErrBadShape is returned when requested shape is invalid (r<=0 or c<=0).
	ErrBadShape = errors.New("matrix: invalid shape")

	// ErrOutOfRange indicates that an index (row or column) is outside valid bounds.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrNilMatrix indicates that a nil Matrix was passed.
	ErrNilMatrix = errors.New("matrix: nil matrix")

	// ErrNonSquare signals that a square matrix was required but the input wasn't.
	ErrNonSquare = errors.New("matrix: matrix is not square")

	// ErrAsymmetry signals that a matrix expected to be symmetric violated symmetry
	// within the given tolerance.
	ErrAsymmetry = errors.New("matrix: matrix is not symmetric within tolerance")

	// ErrNonZeroDiagonal signals a diagonal entry farther than tolerance from zero.
	ErrNonZeroDiagonal = errors.New("matrix: diagonal not zero within tolerance")

	// ErrNaN signals a NaN entry.
	ErrNaN = errors.New("matrix: NaN encountered")

	// ErrNegative signals a negative entry where distances are expected.
	ErrNegative = errors.New("matrix: negative entry")
)
