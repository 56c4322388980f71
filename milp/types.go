package milp

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Sentinel errors.
var (
	// ErrInvalidModel indicates a malformed model (bad bounds, NaN, bad index).
	ErrInvalidModel = errors.New("milp: invalid model")

	// ErrModelTooLarge indicates the dense tableau would exceed its cell cap.
	ErrModelTooLarge = errors.New("milp: model too large for the dense simplex")

	// ErrIterationLimit indicates the simplex failed to converge.
	ErrIterationLimit = errors.New("milp: simplex iteration limit reached")

	// ErrUnbounded indicates the LP relaxation is unbounded below.
	ErrUnbounded = errors.New("milp: relaxation is unbounded")

	// ErrNoIncumbent indicates a limit fired before any feasible point was found.
	ErrNoIncumbent = errors.New("milp: limit reached without a feasible solution")

	// ErrInfeasiblePoint is returned by Model.Feasible.
	ErrInfeasiblePoint = errors.New("milp: point violates the model")

	// errDeadline is internal: the simplex noticed the time limit.
	errDeadline = errors.New("milp: deadline exceeded")
)

// Status summarises a solve.
type Status uint8

const (
	// StatusError means the solve failed; Values are unset.
	StatusError Status = iota

	// StatusOptimal means the incumbent is proven within the requested gap.
	StatusOptimal

	// StatusFeasible means a limit fired; Values hold the best incumbent.
	StatusFeasible

	// StatusInfeasible means no feasible point exists.
	StatusInfeasible
)

// String returns the lower-case status name.
func (s Status) String() string {
	switch s {
	case StatusError:
		return "error"
	case StatusOptimal:
		return "optimal"
	case StatusFeasible:
		return "feasible"
	case StatusInfeasible:
		return "infeasible"
	default:
		return fmt.Sprintf("Status(%d)", uint8(s))
	}
}

// HasSolution reports whether Values carry a feasible point.
func (s Status) HasSolution() bool { return s == StatusOptimal || s == StatusFeasible }

// Limit names the stop condition that ended a search early.
type Limit string

const (
	LimitNone     Limit = ""
	LimitTime     Limit = "time"
	LimitNodes    Limit = "nodes"
	LimitCanceled Limit = "canceled"
	LimitSize     Limit = "size" // a node LP exceeded the tableau cap
)

// Params control a solve. The zero value means: exact optimality, no time
// limit, no node limit, default integrality tolerance.
type Params struct {
	// Gap is the relative optimality gap (UB−LB)/|UB| at which the search stops.
	Gap float64

	// TimeLimit bounds wall-clock time; 0 means none.
	TimeLimit time.Duration

	// NodeLimit bounds the number of LP nodes; 0 means none.
	NodeLimit int

	// IntTol is the integrality tolerance; 0 means DefaultIntTol.
	IntTol float64
}

// DefaultIntTol is the integrality tolerance used when Params.IntTol is 0.
const DefaultIntTol = 1e-6

// Result is the outcome of Solver.Solve.
type Result struct {
	Status    Status
	Values    []float64 // one per model variable; nil unless Status.HasSolution()
	Objective float64   // objective of Values
	Bound     float64   // best proven lower bound
	Gap       float64   // relative gap between Objective and Bound
	Nodes     int       // LP nodes solved
	Iters     int       // simplex pivots over all nodes
	Limit     Limit     // stop condition, LimitNone when the search completed
	Elapsed   time.Duration
}

// Solver solves a Model. Implementations must not retain the model after
// returning and must honour ctx cancellation.
type Solver interface {
	Solve(ctx context.Context, m *Model, p Params) (Result, error)
}

// SolverFunc adapts a function to the Solver interface.
type SolverFunc func(ctx context.Context, m *Model, p Params) (Result, error)

// Solve calls f(ctx, m, p).
func (f SolverFunc) Solve(ctx context.Context, m *Model, p Params) (Result, error) {
	return f(ctx, m, p)
}
