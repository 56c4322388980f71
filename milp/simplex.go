package milp

import (
	"math"
	"time"
)

// MaxTableauCells caps rows·(cols+1) of the dense tableau.
const MaxTableauCells = 40_000_000

const (
	pivotTol   = 1e-9  // smallest usable pivot magnitude
	costTol    = 1e-9  // reduced-cost optimality tolerance
	feasTol    = 1e-7  // bound/row feasibility tolerance
	phase1Tol  = 1e-6  // residual infeasibility accepted after phase 1
	degenTol   = 1e-12 // step length treated as degenerate
	blandAfter = 50    // consecutive degenerate pivots before Bland's rule
	checkEvery = 32    // iterations between deadline checks
)

type lpStatus uint8

const (
	lpOptimal lpStatus = iota
	lpInfeasible
	lpUnbounded
)

type lpSolution struct {
	status lpStatus
	x      []float64
	obj    float64
	iters  int
}

// row is a constraint in shifted, merged form over tableau columns.
type row struct {
	cols  []int
	coefs []float64
	sense Sense
	rhs   float64
}

type tableau struct {
	a        [][]float64 // rows × (ncols+1); last column is the rhs
	obj      []float64   // reduced costs; obj[ncols] = −z
	basis    []int
	removed  []bool
	ncols    int
	artStart int
	iters    int
}

// solveLP solves min Σ Obj·x over the model's rows with variable bounds
// replaced by lo/hi. Integrality is ignored.
//
// Preprocessing: variables are shifted to x = lo + x′; variables with
// hi−lo ≤ feasTol are substituted out; finite upper bounds become explicit
// rows unless impliedBounds shows the model rows already enforce them; rows
// are flipped to a non-negative rhs. Phase 1 drives artificials to zero;
// artificials that stay basic on all-zero rows mark redundant equalities,
// which are dropped.
func solveLP(m *Model, lo, hi []float64, deadline time.Time, maxCells int) (lpSolution, error) {
	nv := len(m.vars)
	colOf := make([]int, nv)
	varOf := make([]int, 0, nv)
	for j := 0; j < nv; j++ {
		if hi[j] < lo[j]-feasTol {
			return lpSolution{status: lpInfeasible}, nil
		}
		if hi[j]-lo[j] <= feasTol {
			colOf[j] = -1

			continue
		}
		colOf[j] = len(varOf)
		varOf = append(varOf, j)
	}
	nS := len(varOf)

	rows := make([]row, 0, len(m.cons)+nS)
	scratch := make([]float64, nS)
	seen := make([]bool, nS)
	touched := make([]int, 0, 16)

	for _, c := range m.cons {
		rhs := c.RHS
		touched = touched[:0]
		for _, t := range c.Terms {
			rhs -= t.Coef * lo[t.Var]
			col := colOf[t.Var]
			if col < 0 {
				continue
			}
			if !seen[col] {
				seen[col] = true
				touched = append(touched, col)
			}
			scratch[col] += t.Coef
		}
		r := row{sense: c.Sense, rhs: rhs}
		for _, col := range touched {
			if scratch[col] != 0 {
				r.cols = append(r.cols, col)
				r.coefs = append(r.coefs, scratch[col])
			}
			scratch[col] = 0
			seen[col] = false
		}
		if len(r.cols) == 0 {
			if !trivialHolds(c.Sense, rhs) {
				return lpSolution{status: lpInfeasible}, nil
			}

			continue
		}
		rows = append(rows, r)
	}
	ubs := make([]float64, nS)
	for col, j := range varOf {
		ubs[col] = hi[j] - lo[j]
	}
	implied := impliedBounds(rows, ubs)
	for col, ub := range ubs {
		if math.IsInf(ub, 1) || implied[col] {
			continue
		}
		rows = append(rows, row{cols: []int{col}, coefs: []float64{1}, sense: LessEq, rhs: ub})
	}

	nSlack, nArt := 0, 0
	for i := range rows {
		r := &rows[i]
		if r.rhs < 0 {
			for k := range r.coefs {
				r.coefs[k] = -r.coefs[k]
			}
			r.rhs = -r.rhs
			switch r.sense {
			case LessEq:
				r.sense = GreaterEq
			case GreaterEq:
				r.sense = LessEq
			}
		}
		switch r.sense {
		case LessEq:
			nSlack++
		case GreaterEq:
			nSlack++
			nArt++
		default:
			nArt++
		}
	}

	ncols := nS + nSlack + nArt
	if maxCells <= 0 {
		maxCells = MaxTableauCells
	}
	if len(rows)*(ncols+1) > maxCells {
		return lpSolution{}, ErrModelTooLarge
	}

	t := newTableau(len(rows), ncols)
	t.artStart = nS + nSlack
	slack, art := nS, t.artStart
	for i, r := range rows {
		ai := t.a[i]
		for k, col := range r.cols {
			ai[col] = r.coefs[k]
		}
		ai[ncols] = r.rhs
		switch r.sense {
		case LessEq:
			ai[slack] = 1
			t.basis[i] = slack
			slack++
		case GreaterEq:
			ai[slack] = -1
			slack++
			ai[art] = 1
			t.basis[i] = art
			art++
		default:
			ai[art] = 1
			t.basis[i] = art
			art++
		}
	}

	maxIter := 50*(len(rows)+ncols) + 1000

	if nArt > 0 {
		for i := range t.a {
			if t.basis[i] < t.artStart {
				continue
			}
			ai := t.a[i]
			for k := 0; k < t.artStart; k++ {
				t.obj[k] -= ai[k]
			}
			t.obj[ncols] -= ai[ncols]
		}
		if _, err := t.run(true, deadline, maxIter); err != nil {
			return lpSolution{}, err
		}
		if -t.obj[ncols] > phase1Tol {
			return lpSolution{status: lpInfeasible, iters: t.iters}, nil
		}
		t.evictArtificials()
	}

	for k := range t.obj {
		t.obj[k] = 0
	}
	cost := func(col int) float64 {
		if col < nS {
			return m.vars[varOf[col]].Obj
		}

		return 0
	}
	for col := 0; col < nS; col++ {
		t.obj[col] = cost(col)
	}
	for i, b := range t.basis {
		if t.removed[i] {
			continue
		}
		if cb := cost(b); cb != 0 {
			ai := t.a[i]
			for k := range t.obj {
				t.obj[k] -= cb * ai[k]
			}
		}
	}
	st, err := t.run(false, deadline, maxIter)
	if err != nil {
		return lpSolution{}, err
	}
	if st == lpUnbounded {
		return lpSolution{status: lpUnbounded, iters: t.iters}, nil
	}

	shifted := make([]float64, nS)
	for i, b := range t.basis {
		if !t.removed[i] && b < nS {
			shifted[b] = t.a[i][ncols]
		}
	}
	x := make([]float64, nv)
	for j := 0; j < nv; j++ {
		v := lo[j]
		if col := colOf[j]; col >= 0 {
			v += shifted[col]
		}
		x[j] = math.Min(math.Max(v, lo[j]), hi[j])
	}
	var z float64
	for j, v := range m.vars {
		z += v.Obj * x[j]
	}

	return lpSolution{status: lpOptimal, x: x, obj: z, iters: t.iters}, nil
}

// impliedBounds marks shifted columns whose upper bound ub already follows
// from the rows. Pass one uses rows whose terms are all non-negative (in ≤
// orientation): every column is then bounded by rhs/coef. Pass two also
// accepts negative terms on columns marked in pass one, using their bounds
// for the worst case; columns marked in pass two never support others, so
// no bound is justified through a cycle.
func impliedBounds(rows []row, ub []float64) []bool {
	implied := make([]bool, len(ub))
	support := make([]bool, len(ub))
	for pass := 0; pass < 2; pass++ {
		copy(support, implied)
		for _, r := range rows {
			if r.sense != GreaterEq {
				markImplied(r, 1, ub, support, implied)
			}
			if r.sense != LessEq {
				markImplied(r, -1, ub, support, implied)
			}
		}
	}

	return implied
}

func markImplied(r row, sign float64, ub []float64, support, implied []bool) {
	var worst float64
	for k, col := range r.cols {
		if c := sign * r.coefs[k]; c < 0 {
			if !support[col] || math.IsInf(ub[col], 1) {
				return
			}
			worst += c * ub[col]
		}
	}
	room := sign*r.rhs - worst
	if room < 0 {
		return
	}
	for k, col := range r.cols {
		if c := sign * r.coefs[k]; c > 0 && room/c <= ub[col]+feasTol {
			implied[col] = true
		}
	}
}

func trivialHolds(s Sense, rhs float64) bool {
	switch s {
	case LessEq:
		return rhs >= -feasTol
	case GreaterEq:
		return rhs <= feasTol
	default:
		return math.Abs(rhs) <= feasTol
	}
}

func newTableau(nrows, ncols int) *tableau {
	w := ncols + 1
	backing := make([]float64, nrows*w)
	a := make([][]float64, nrows)
	for i := range a {
		a[i] = backing[i*w : (i+1)*w : (i+1)*w]
	}

	return &tableau{
		a:       a,
		obj:     make([]float64, w),
		basis:   make([]int, nrows),
		removed: make([]bool, nrows),
		ncols:   ncols,
	}
}

// run performs primal simplex pivots until optimality or unboundedness.
// Artificial columns may enter only when allowArt is set.
func (t *tableau) run(allowArt bool, deadline time.Time, maxIter int) (lpStatus, error) {
	limit := t.ncols
	if !allowArt {
		limit = t.artStart
	}
	rhs := t.ncols
	degenerate := 0
	for iter := 0; ; iter++ {
		if iter >= maxIter {
			return 0, ErrIterationLimit
		}
		if iter%checkEvery == 0 && !deadline.IsZero() && time.Now().After(deadline) {
			return 0, errDeadline
		}

		enter := -1
		bland := degenerate > blandAfter
		best := -costTol
		for j := 0; j < limit; j++ {
			if d := t.obj[j]; d < best {
				enter = j
				if bland {
					break
				}
				best = d
			}
		}
		if enter < 0 {
			return lpOptimal, nil
		}

		leave := -1
		var ratio float64
		for i, ai := range t.a {
			if t.removed[i] {
				continue
			}
			p := ai[enter]
			if p <= pivotTol {
				continue
			}
			r := ai[rhs] / p
			if leave < 0 || r < ratio-degenTol || (r <= ratio+degenTol && t.basis[i] < t.basis[leave]) {
				leave, ratio = i, r
			}
		}
		if leave < 0 {
			return lpUnbounded, nil
		}
		if ratio <= degenTol {
			degenerate++
		} else {
			degenerate = 0
		}
		t.pivot(leave, enter)
		t.iters++
	}
}

// pivot makes column c basic in row r.
func (t *tableau) pivot(r, c int) {
	pr := t.a[r]
	inv := 1 / pr[c]
	nz := make([]int, 0, len(pr))
	for k := range pr {
		if pr[k] != 0 {
			pr[k] *= inv
			nz = append(nz, k)
		}
	}
	pr[c] = 1
	eliminate := func(dst []float64) {
		f := dst[c]
		if f == 0 {
			return
		}
		for _, k := range nz {
			dst[k] -= f * pr[k]
		}
		dst[c] = 0
	}
	for i, ai := range t.a {
		if i == r {
			continue
		}
		eliminate(ai)
		if v := ai[t.ncols]; v < 0 && v > -feasTol {
			ai[t.ncols] = 0
		}
	}
	eliminate(t.obj)
	t.basis[r] = c
}

// evictArtificials pivots basic artificials (all at zero after a successful
// phase 1) out of the basis; rows with no usable pivot are redundant.
func (t *tableau) evictArtificials() {
	for i, b := range t.basis {
		if b < t.artStart {
			continue
		}
		ai := t.a[i]
		col, mag := -1, pivotTol
		for k := 0; k < t.artStart; k++ {
			if v := math.Abs(ai[k]); v > mag {
				col, mag = k, v
			}
		}
		if col < 0 {
			t.removed[i] = true

			continue
		}
		t.pivot(i, col)
	}
}

// SolveLP solves the continuous relaxation of m (integrality dropped).
// Status is StatusOptimal or StatusInfeasible; an unbounded relaxation
// returns ErrUnbounded.
func SolveLP(m *Model) (Result, error) {
	if err := m.Validate(); err != nil {
		return Result{Status: StatusError}, err
	}
	start := time.Now()
	lo, hi := m.bounds(false)
	sol, err := solveLP(m, lo, hi, time.Time{}, MaxTableauCells)
	if err != nil {
		return Result{Status: StatusError, Elapsed: time.Since(start)}, err
	}
	switch sol.status {
	case lpInfeasible:
		return Result{Status: StatusInfeasible, Nodes: 1, Elapsed: time.Since(start)}, nil
	case lpUnbounded:
		return Result{Status: StatusError, Nodes: 1, Elapsed: time.Since(start)}, ErrUnbounded
	}

	return Result{
		Status:    StatusOptimal,
		Values:    sol.x,
		Objective: sol.obj,
		Bound:     sol.obj,
		Nodes:     1,
		Iters:     sol.iters,
		Elapsed:   time.Since(start),
	}, nil
}

// bounds returns copies of the variable bounds; with integral set, bounds
// of integer and binary variables are rounded inward.
func (m *Model) bounds(integral bool) (lo, hi []float64) {
	lo = make([]float64, len(m.vars))
	hi = make([]float64, len(m.vars))
	for j, v := range m.vars {
		lo[j], hi[j] = v.Lower, v.Upper
		if integral && v.Kind != Continuous {
			lo[j] = math.Ceil(lo[j] - DefaultIntTol)
			if !math.IsInf(hi[j], 1) {
				hi[j] = math.Floor(hi[j] + DefaultIntTol)
			}
		}
	}

	return lo, hi
}
