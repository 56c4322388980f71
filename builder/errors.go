// SPDX-License-Identifier: MIT

package builder

import (
	"errors"
	"fmt"
)

var (
	// ErrTooFewPoints indicates a count parameter below its minimum.
	ErrTooFewPoints = errors.New("builder: parameter too small")

	// ErrBadRadius indicates a radius, spacing or spread that is not
	// finite and positive.
	ErrBadRadius = errors.New("builder: radius must be finite and positive")

	// ErrNeedRandSource indicates a stochastic layout built without an RNG.
	ErrNeedRandSource = errors.New("builder: random source required")
)

// builderErrorf attaches the layout name to a sentinel.
func builderErrorf(layout, format string, err error, args ...interface{}) error {
	return fmt.Errorf("%s: %s: %w", layout, fmt.Sprintf(format, args...), err)
}
