package highs

import (
	"errors"
	"math"

	"github.com/katalvlaran/kmst/milp"
	"github.com/sirupsen/logrus"
)

// ErrUnavailable is returned by Solve in builds without the HiGHS library.
var ErrUnavailable = errors.New("highs: solver not linked into this build")

// Solver runs HiGHS. The zero value is ready to use.
type Solver struct {
	// Logger receives debug-level progress. Nil disables logging.
	Logger logrus.FieldLogger

	// Output enables HiGHS's own console log.
	Output bool

	// Threads caps HiGHS worker threads; 0 leaves the library default.
	Threads int
}

var _ milp.Solver = (*Solver)(nil)

// New returns a solver that logs to l (may be nil).
func New(l logrus.FieldLogger) *Solver {
	return &Solver{Logger: l}
}

// better returns whichever of x and the model's warm start is feasible and
// cheaper, or nil when neither is.
func (s *Solver) better(m *milp.Model, x []float64, intTol float64) []float64 {
	if intTol <= 0 {
		intTol = milp.DefaultIntTol
	}
	start := m.Start()
	if start == nil {
		return x
	}
	w := snap(m, start)
	if err := m.Feasible(w, intTol); err != nil {
		s.debugf("warm start rejected: %v", err)

		return x
	}
	if x == nil || m.ObjectiveValue(w) < m.ObjectiveValue(x) {
		s.debugf("warm start kept: obj=%g", m.ObjectiveValue(w))

		return w
	}

	return x
}

// snap copies x with integer coordinates rounded.
func snap(m *milp.Model, x []float64) []float64 {
	out := append([]float64(nil), x...)
	for j := range out {
		if m.Var(j).Kind != milp.Continuous {
			out[j] = math.Round(out[j])
		}
	}

	return out
}

// integral reports whether m has any integer-constrained variable.
func integral(m *milp.Model) bool {
	for j := range m.NumVars() {
		if m.Var(j).Kind != milp.Continuous {
			return true
		}
	}

	return false
}

// boxed reports whether every variable has finite bounds.
func boxed(m *milp.Model) bool {
	for j := range m.NumVars() {
		if v := m.Var(j); math.IsInf(v.Upper, 0) || math.IsInf(v.Lower, 0) {
			return false
		}
	}

	return true
}

func (s *Solver) debugf(format string, args ...any) {
	if s.Logger != nil {
		s.Logger.Debugf("highs: "+format, args...)
	}
}
