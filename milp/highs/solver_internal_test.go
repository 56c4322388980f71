package highs

import (
	"testing"

	"github.com/katalvlaran/kmst/milp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pair: min a + 2b s.t. a + b ≥ 1, binary.
func pair() *milp.Model {
	m := milp.NewModel("pair")
	a := m.AddBinary("a", 1)
	b := m.AddBinary("b", 2)
	m.AddConstraint("cover", milp.GreaterEq, 1, milp.Term{Var: a, Coef: 1}, milp.Term{Var: b, Coef: 1})

	return m
}

func TestBetter_WarmStartFillsMissingIncumbent(t *testing.T) {
	m := pair()
	require.NoError(t, m.SetStart([]float64{0, 0.9999999}))

	got := New(nil).better(m, nil, 0)
	assert.Equal(t, []float64{0, 1}, got)
}

func TestBetter_KeepsCheaperPoint(t *testing.T) {
	m := pair()
	require.NoError(t, m.SetStart([]float64{0, 1}))

	assert.Equal(t, []float64{1, 0}, New(nil).better(m, []float64{1, 0}, 0))
	assert.Equal(t, []float64{0, 1}, New(nil).better(m, []float64{1, 1}, 0))
}

func TestBetter_RejectsInfeasibleStart(t *testing.T) {
	m := pair()
	require.NoError(t, m.SetStart([]float64{0, 0}))

	assert.Nil(t, New(nil).better(m, nil, 0))
	assert.Equal(t, []float64{1, 1}, New(nil).better(m, []float64{1, 1}, 0))
}

func TestBoxedAndIntegral(t *testing.T) {
	m := pair()
	assert.True(t, boxed(m))
	assert.True(t, integral(m))

	lp := milp.NewModel("lp")
	lp.AddContinuous("x", 0, milp.Inf, 1)
	assert.False(t, boxed(lp))
	assert.False(t, integral(lp))
}
