// Package highs adapts the HiGHS MILP engine to milp.Solver.
//
// The adapter loads a milp.Model column by column, passes the rows in
// compressed sparse row form and runs HiGHS with the requested relative gap,
// time limit and node limit. Model statuses map onto milp statuses:
//
//	Optimal                       → StatusOptimal
//	Infeasible                    → StatusInfeasible
//	UnboundedOrInfeasible (boxed) → StatusInfeasible
//	TimeLimit, IterationLimit     → StatusFeasible, or StatusOptimal when the
//	                                final gap is within Params.Gap
//	anything else                 → StatusError
//
// HiGHS has no warm-start entry point in its C API binding, so the model's
// start is kept as a fallback incumbent: when a limit fires and HiGHS holds
// nothing better, the start is returned as a StatusFeasible result.
//
// HiGHS cannot be interrupted mid-run. A context deadline shortens the time
// limit; cancellation is observed before the run starts.
//
// The engine is linked through cgo on linux and darwin (amd64, arm64). Other
// builds, and builds with the purego tag, compile a stub whose Solve returns
// ErrUnavailable; Available tells the two apart.
package highs
