package milp_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/kmst/milp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModel_Validate(t *testing.T) {
	cases := []struct {
		name  string
		build func(m *milp.Model)
	}{
		{"empty domain", func(m *milp.Model) { m.AddContinuous("x", 2, 1, 0) }},
		{"infinite lower", func(m *milp.Model) { m.AddContinuous("x", math.Inf(-1), 1, 0) }},
		{"nan objective", func(m *milp.Model) { m.AddContinuous("x", 0, 1, math.NaN()) }},
		{"binary out of range", func(m *milp.Model) {
			m.AddVar(milp.Var{Name: "b", Kind: milp.Binary, Lower: 0, Upper: 2})
		}},
		{"unknown var", func(m *milp.Model) {
			m.AddBinary("x", 0)
			m.AddConstraint("c", milp.LessEq, 1, milp.Term{Var: 3, Coef: 1})
		}},
		{"nan coefficient", func(m *milp.Model) {
			x := m.AddBinary("x", 0)
			m.AddConstraint("c", milp.LessEq, 1, milp.Term{Var: x, Coef: math.NaN()})
		}},
		{"infinite rhs", func(m *milp.Model) {
			x := m.AddBinary("x", 0)
			m.AddConstraint("c", milp.LessEq, math.Inf(1), milp.Term{Var: x, Coef: 1})
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := milp.NewModel(tc.name)
			tc.build(m)
			assert.ErrorIs(t, m.Validate(), milp.ErrInvalidModel)
		})
	}
}

func TestModel_Feasible(t *testing.T) {
	m := knapsack()
	assert.NoError(t, m.Feasible([]float64{1, 1, 0}, 1e-9))
	assert.ErrorIs(t, m.Feasible([]float64{1, 1, 1}, 1e-9), milp.ErrInfeasiblePoint)
	assert.ErrorIs(t, m.Feasible([]float64{0.5, 0, 0}, 1e-9), milp.ErrInfeasiblePoint)
	assert.ErrorIs(t, m.Feasible([]float64{1, 0}, 1e-9), milp.ErrInfeasiblePoint)
	assert.InDelta(t, -9, m.ObjectiveValue([]float64{1, 1, 0}), 1e-12)
}

func TestModel_SetStartLength(t *testing.T) {
	m := knapsack()
	require.ErrorIs(t, m.SetStart([]float64{1}), milp.ErrInvalidModel)
	require.NoError(t, m.SetStart([]float64{0, 0, 0}))
	assert.Equal(t, []float64{0, 0, 0}, m.Start())
}

func TestStrings(t *testing.T) {
	assert.Equal(t, "binary", milp.Binary.String())
	assert.Equal(t, ">=", milp.GreaterEq.String())
	assert.Equal(t, "optimal", milp.StatusOptimal.String())
	assert.True(t, milp.StatusFeasible.HasSolution())
	assert.False(t, milp.StatusInfeasible.HasSolution())
}
