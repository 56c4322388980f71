package milp

import (
	"fmt"
	"math"
)

// Inf is the upper bound of a variable without one.
var Inf = math.Inf(1)

// VarKind distinguishes continuous from integer-constrained variables.
type VarKind uint8

const (
	// Continuous variables take any value within their bounds.
	Continuous VarKind = iota

	// Binary variables take 0 or 1.
	Binary

	// Integer variables take integral values within their bounds.
	Integer
)

// String returns the lower-case kind name.
func (k VarKind) String() string {
	switch k {
	case Continuous:
		return "continuous"
	case Binary:
		return "binary"
	case Integer:
		return "integer"
	default:
		return fmt.Sprintf("VarKind(%d)", uint8(k))
	}
}

// Sense is the relation of a linear constraint.
type Sense uint8

const (
	// LessEq is Σ coef·x ≤ rhs.
	LessEq Sense = iota

	// GreaterEq is Σ coef·x ≥ rhs.
	GreaterEq

	// Equal is Σ coef·x = rhs.
	Equal
)

// String returns the relation symbol.
func (s Sense) String() string {
	switch s {
	case LessEq:
		return "<="
	case GreaterEq:
		return ">="
	case Equal:
		return "="
	default:
		return fmt.Sprintf("Sense(%d)", uint8(s))
	}
}

// Var is one decision variable.
type Var struct {
	// Name is informational; used in dumps and error messages.
	Name string

	// Kind constrains integrality.
	Kind VarKind

	// Lower must be finite. Upper may be +Inf.
	Lower, Upper float64

	// Obj is the objective coefficient (the model minimises).
	Obj float64

	// Priority orders branching: higher first. Ignored for continuous vars.
	Priority int
}

// Term is coef·x[Var].
type Term struct {
	Var  int
	Coef float64
}

// Constraint is Σ Terms (Sense) RHS.
type Constraint struct {
	Name  string
	Terms []Term
	Sense Sense
	RHS   float64
}

// Model is a minimisation MILP. The zero value is not usable; call NewModel.
type Model struct {
	name  string
	vars  []Var
	cons  []Constraint
	start []float64
}

// NewModel returns an empty model.
func NewModel(name string) *Model {
	return &Model{name: name}
}

// Name returns the model name.
func (m *Model) Name() string { return m.name }

// AddVar appends v and returns its index.
func (m *Model) AddVar(v Var) int {
	m.vars = append(m.vars, v)

	return len(m.vars) - 1
}

// AddBinary appends a {0,1} variable with objective coefficient obj.
func (m *Model) AddBinary(name string, obj float64) int {
	return m.AddVar(Var{Name: name, Kind: Binary, Lower: 0, Upper: 1, Obj: obj})
}

// AddContinuous appends a continuous variable in [lo, hi].
func (m *Model) AddContinuous(name string, lo, hi, obj float64) int {
	return m.AddVar(Var{Name: name, Kind: Continuous, Lower: lo, Upper: hi, Obj: obj})
}

// AddConstraint appends Σ terms (sense) rhs and returns its index.
func (m *Model) AddConstraint(name string, sense Sense, rhs float64, terms ...Term) int {
	m.cons = append(m.cons, Constraint{Name: name, Terms: terms, Sense: sense, RHS: rhs})

	return len(m.cons) - 1
}

// SetBounds replaces the bounds of variable v.
func (m *Model) SetBounds(v int, lo, hi float64) {
	m.vars[v].Lower, m.vars[v].Upper = lo, hi
}

// SetPriority sets the branching priority of variable v.
func (m *Model) SetPriority(v int, p int) { m.vars[v].Priority = p }

// SetStart records a warm start. The slice is copied. A start of the wrong
// length is rejected; feasibility is left to the solver.
func (m *Model) SetStart(x []float64) error {
	if len(x) != len(m.vars) {
		return fmt.Errorf("%w: start has %d values, model has %d vars", ErrInvalidModel, len(x), len(m.vars))
	}
	m.start = append(m.start[:0], x...)

	return nil
}

// Start returns the warm start or nil.
func (m *Model) Start() []float64 { return m.start }

// NumVars returns the number of variables.
func (m *Model) NumVars() int { return len(m.vars) }

// NumConstraints returns the number of constraints.
func (m *Model) NumConstraints() int { return len(m.cons) }

// Var returns variable i.
func (m *Model) Var(i int) Var { return m.vars[i] }

// Constraint returns constraint i.
func (m *Model) Constraint(i int) Constraint { return m.cons[i] }

// Validate checks bounds, kinds, coefficients and variable references.
//
// Errors: ErrInvalidModel wrapped with the offending item.
// Complexity: O(vars + nonzeros).
func (m *Model) Validate() error {
	for i, v := range m.vars {
		switch {
		case math.IsNaN(v.Lower) || math.IsInf(v.Lower, 0):
			return fmt.Errorf("%w: var %d %q has non-finite lower bound", ErrInvalidModel, i, v.Name)
		case math.IsNaN(v.Upper) || math.IsInf(v.Upper, -1):
			return fmt.Errorf("%w: var %d %q has invalid upper bound", ErrInvalidModel, i, v.Name)
		case v.Upper < v.Lower:
			return fmt.Errorf("%w: var %d %q has empty domain [%g,%g]", ErrInvalidModel, i, v.Name, v.Lower, v.Upper)
		case math.IsNaN(v.Obj) || math.IsInf(v.Obj, 0):
			return fmt.Errorf("%w: var %d %q has non-finite objective", ErrInvalidModel, i, v.Name)
		case v.Kind > Integer:
			return fmt.Errorf("%w: var %d %q has unknown kind", ErrInvalidModel, i, v.Name)
		case v.Kind == Binary && (v.Lower < 0 || v.Upper > 1):
			return fmt.Errorf("%w: binary var %d %q bounds outside [0,1]", ErrInvalidModel, i, v.Name)
		}
	}
	for i, c := range m.cons {
		if math.IsNaN(c.RHS) || math.IsInf(c.RHS, 0) {
			return fmt.Errorf("%w: constraint %d %q has non-finite rhs", ErrInvalidModel, i, c.Name)
		}
		if c.Sense > Equal {
			return fmt.Errorf("%w: constraint %d %q has unknown sense", ErrInvalidModel, i, c.Name)
		}
		for _, t := range c.Terms {
			if t.Var < 0 || t.Var >= len(m.vars) {
				return fmt.Errorf("%w: constraint %d %q references var %d", ErrInvalidModel, i, c.Name, t.Var)
			}
			if math.IsNaN(t.Coef) || math.IsInf(t.Coef, 0) {
				return fmt.Errorf("%w: constraint %d %q has non-finite coefficient", ErrInvalidModel, i, c.Name)
			}
		}
	}
	if m.start != nil && len(m.start) != len(m.vars) {
		return fmt.Errorf("%w: start length %d != %d", ErrInvalidModel, len(m.start), len(m.vars))
	}

	return nil
}

// ObjectiveValue returns Σ Obj·x.
func (m *Model) ObjectiveValue(x []float64) float64 {
	var z float64
	for i, v := range m.vars {
		z += v.Obj * x[i]
	}

	return z
}

// Activity returns Σ coef·x for constraint i.
func (m *Model) Activity(i int, x []float64) float64 {
	var s float64
	for _, t := range m.cons[i].Terms {
		s += t.Coef * x[t.Var]
	}

	return s
}

// Feasible reports whether x satisfies every bound, integrality requirement
// and constraint within tol (scaled by 1+|rhs| for constraints).
// It returns nil or ErrInfeasiblePoint wrapped with the first violation.
//
// Complexity: O(vars + nonzeros).
func (m *Model) Feasible(x []float64, tol float64) error {
	if len(x) != len(m.vars) {
		return fmt.Errorf("%w: point has %d values, model has %d vars", ErrInfeasiblePoint, len(x), len(m.vars))
	}
	for i, v := range m.vars {
		xi := x[i]
		if math.IsNaN(xi) || xi < v.Lower-tol || xi > v.Upper+tol {
			return fmt.Errorf("%w: var %q = %g outside [%g,%g]", ErrInfeasiblePoint, v.Name, xi, v.Lower, v.Upper)
		}
		if v.Kind != Continuous && math.Abs(xi-math.Round(xi)) > tol {
			return fmt.Errorf("%w: var %q = %g not integral", ErrInfeasiblePoint, v.Name, xi)
		}
	}
	for i, c := range m.cons {
		lhs := m.Activity(i, x)
		slack := tol * (1 + math.Abs(c.RHS))
		var ok bool
		switch c.Sense {
		case LessEq:
			ok = lhs <= c.RHS+slack
		case GreaterEq:
			ok = lhs >= c.RHS-slack
		default:
			ok = math.Abs(lhs-c.RHS) <= slack
		}
		if !ok {
			return fmt.Errorf("%w: constraint %q: %g %s %g", ErrInfeasiblePoint, c.Name, lhs, c.Sense, c.RHS)
		}
	}

	return nil
}
