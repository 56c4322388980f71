//go:build !cgo || purego || !(linux || darwin) || !(amd64 || arm64)

package highs

import (
	"context"

	"github.com/katalvlaran/kmst/milp"
)

// Available reports whether this build links the HiGHS library.
const Available = false

// Solve always fails with ErrUnavailable.
func (s *Solver) Solve(context.Context, *milp.Model, milp.Params) (milp.Result, error) {
	return milp.Result{Status: milp.StatusError}, ErrUnavailable
}
