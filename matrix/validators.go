// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"
	"math"
)

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateSquare checks that m is non-nil and square. It returns the order.
// Complexity: O(1).
func ValidateSquare(m Matrix) (int, error) {
	if m == nil {
		return 0, validatorErrorf("ValidateSquare", ErrNilMatrix)
	}
	if m.Rows() != m.Cols() || m.Rows() <= 0 {
		return 0, validatorErrorf("ValidateSquare", ErrNonSquare)
	}

	return m.Rows(), nil
}

// ValidateDistance checks the invariants of a distance matrix:
// square, zero diagonal, no NaN, no negative entries, and |a_ij − a_ji| ≤ tol.
// +Inf entries are accepted and mean "no edge".
//
// Complexity: O(n²), upper triangle only for symmetry.
func ValidateDistance(m Matrix, tol float64) (int, error) {
	n, err := ValidateSquare(m)
	if err != nil {
		return 0, err
	}

	var (
		i, j     int
		aij, aji float64
	)
	for i = 0; i < n; i++ {
		if aij, err = m.At(i, i); err != nil {
			return 0, err
		}
		if math.IsNaN(aij) || math.Abs(aij) > tol {
			return 0, validatorErrorf("ValidateDistance", ErrNonZeroDiagonal)
		}
		for j = i + 1; j < n; j++ {
			if aij, err = m.At(i, j); err != nil {
				return 0, err
			}
			if aji, err = m.At(j, i); err != nil {
				return 0, err
			}
			if math.IsNaN(aij) || math.IsNaN(aji) {
				return 0, validatorErrorf("ValidateDistance", ErrNaN)
			}
			if aij < 0 || aji < 0 {
				return 0, validatorErrorf("ValidateDistance", ErrNegative)
			}
			if math.IsInf(aij, 1) != math.IsInf(aji, 1) {
				return 0, validatorErrorf("ValidateDistance", ErrAsymmetry)
			}
			if !math.IsInf(aij, 1) && math.Abs(aij-aji) > tol {
				return 0, validatorErrorf("ValidateDistance", ErrAsymmetry)
			}
		}
	}

	return n, nil
}
