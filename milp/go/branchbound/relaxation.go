// Copyright 2010-2025 Google LLC
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package branchbound

import (
	"errors"
	"fmt"
	"math"

	"github.com/orlab/milp-formulations/milp/go/model"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// feasibilityTolerance is used to check rows left without free variables.
const feasibilityTolerance = 1e-9

type relaxStatus int

const (
	relaxOptimal relaxStatus = iota
	relaxInfeasible
	relaxUnbounded
	relaxError
)

// relaxation is the outcome of the LP relaxation of one node.
type relaxation struct {
	status relaxStatus
	// x holds one value per model variable.
	x     []float64
	bound float64
	err   error
}

// problem is the solver-side copy of a frozen model.
type problem struct {
	n         int
	cost      []float64
	offset    float64
	rows      []model.Row
	integral  []bool
	lb        []float64
	ub        []float64
	intObject bool
}

func newProblem(m *model.Model) *problem {
	n := m.NumVariables()
	pr := &problem{
		n:        n,
		cost:     make([]float64, n),
		integral: make([]bool, n),
		lb:       make([]float64, n),
		ub:       make([]float64, n),
		rows:     make([]model.Row, m.NumConstraints()),
	}
	for i := 0; i < n; i++ {
		d := m.VarDomain(model.VarIndex(i))
		pr.integral[i] = d.IsIntegral()
		pr.lb[i] = d.Lower()
		pr.ub[i] = d.Upper()
	}
	for i := range pr.rows {
		pr.rows[i] = m.Row(model.ConstrIndex(i))
	}
	terms, offset := m.Objective()
	pr.offset = offset
	pr.intObject = offset == math.Trunc(offset)
	for _, t := range terms {
		pr.cost[t.Var] = t.Coeff
		if !pr.integral[t.Var] || t.Coeff != math.Trunc(t.Coeff) {
			pr.intObject = false
		}
	}
	return pr
}

func (pr *problem) objective(x []float64) float64 {
	obj := pr.offset
	for j, c := range pr.cost {
		obj += c * x[j]
	}
	return obj
}

// lpRow is a row over the shifted free variables `x' = x - lb >= 0`.
type lpRow struct {
	cols   []int
	coeffs []float64
	eq     bool
	rhs    float64
}

// relax solves the LP relaxation of the model restricted to `[lb,ub]`.
//
// The standard form `min c'x s.t. Ax = b, x >= 0` is built over the variables that are
// not fixed by their bounds, shifted by their lower bound. `>=` rows are negated, each
// `<=` row and each finite upper bound gets a slack column. An upper bound implied by a
// row with only positive coefficients gets no row of its own.
func (pr *problem) relax(lb, ub []float64, tol float64) relaxation {
	x := make([]float64, pr.n)
	copy(x, lb)
	free := make([]bool, pr.n)
	for j := 0; j < pr.n; j++ {
		if lb[j] > ub[j] {
			return relaxation{status: relaxInfeasible}
		}
		free[j] = ub[j] > lb[j]
	}

	var rows []lpRow
	inRow := make([]bool, pr.n)
	implied := make([]bool, pr.n)
	for _, r := range pr.rows {
		row := lpRow{rhs: r.RHS, eq: r.Op == model.Equal}
		for _, t := range r.Terms {
			row.rhs -= t.Coeff * lb[t.Var]
			if free[t.Var] {
				row.cols = append(row.cols, int(t.Var))
				row.coeffs = append(row.coeffs, t.Coeff)
			}
		}
		if len(row.cols) == 0 {
			if !r.Op.Holds(0, row.rhs, feasibilityTolerance) {
				return relaxation{status: relaxInfeasible}
			}
			continue
		}
		if r.Op == model.GreaterOrEqual || (row.eq && allNonPositive(row.coeffs)) {
			for i := range row.coeffs {
				row.coeffs[i] = -row.coeffs[i]
			}
			row.rhs = -row.rhs
		}
		if allNonNegative(row.coeffs) {
			for i, j := range row.cols {
				if row.rhs/row.coeffs[i] <= ub[j]-lb[j]+feasibilityTolerance {
					implied[j] = true
				}
			}
		}
		for _, j := range row.cols {
			inRow[j] = true
		}
		rows = append(rows, row)
	}

	// Free variables outside every row sit at the bound their cost prefers.
	col := make([]int, pr.n)
	k := 0
	for j := 0; j < pr.n; j++ {
		col[j] = -1
		if !free[j] {
			continue
		}
		if inRow[j] {
			col[j] = k
			k++
			continue
		}
		if pr.cost[j] < 0 {
			if math.IsInf(ub[j], 1) {
				return relaxation{status: relaxUnbounded}
			}
			x[j] = ub[j]
		}
	}
	if k == 0 {
		return relaxation{status: relaxOptimal, x: x, bound: pr.objective(x)}
	}
	for j := 0; j < pr.n; j++ {
		if col[j] >= 0 && !implied[j] && !math.IsInf(ub[j], 1) {
			rows = append(rows, lpRow{cols: []int{j}, coeffs: []float64{1}, rhs: ub[j] - lb[j]})
		}
	}

	xs, err := pr.simplex(rows, col, k, false, tol)
	// gonum reports a singular phase-one basis without wrapping lp.ErrSingular, so every
	// other failure is retried with split equalities.
	if err != nil && !errors.Is(err, lp.ErrInfeasible) && !errors.Is(err, lp.ErrUnbounded) {
		xs, err = pr.simplex(rows, col, k, true, tol)
	}
	switch {
	case errors.Is(err, lp.ErrInfeasible):
		return relaxation{status: relaxInfeasible}
	case errors.Is(err, lp.ErrUnbounded):
		return relaxation{status: relaxUnbounded}
	case err != nil:
		return relaxation{status: relaxError, err: err}
	}
	for j := 0; j < pr.n; j++ {
		if col[j] >= 0 {
			x[j] = lb[j] + xs[col[j]]
		}
	}
	return relaxation{status: relaxOptimal, x: x, bound: pr.objective(x)}
}

// simplex assembles the standard form and runs gonum's simplex method. Inequality rows get
// a slack column. With `split`, equality rows are written as two inequalities so that the
// slack columns make the matrix full row rank.
func (pr *problem) simplex(rows []lpRow, col []int, k int, split bool, tol float64) (xs []float64, err error) {
	type stdRow struct {
		row   lpRow
		slack float64
	}
	var std []stdRow
	for _, r := range rows {
		switch {
		case !r.eq:
			std = append(std, stdRow{r, 1})
		case split:
			std = append(std, stdRow{r, 1}, stdRow{r, -1})
		default:
			std = append(std, stdRow{r, 0})
		}
	}
	nSlack := 0
	for _, r := range std {
		if r.slack != 0 {
			nSlack++
		}
	}
	m, n := len(std), k+nSlack
	if m > n {
		if split {
			return nil, fmt.Errorf("%d rows for %d columns", m, n)
		}
		return nil, lp.ErrSingular
	}

	a := mat.NewDense(m, n, nil)
	b := make([]float64, m)
	s := k
	for i, r := range std {
		for t, j := range r.row.cols {
			a.Set(i, col[j], r.row.coeffs[t])
		}
		if r.slack != 0 {
			a.Set(i, s, r.slack)
			s++
		}
		b[i] = r.row.rhs
	}
	c := make([]float64, n)
	for j := 0; j < pr.n; j++ {
		if col[j] >= 0 {
			c[col[j]] = pr.cost[j]
		}
	}

	defer func() {
		if r := recover(); r != nil {
			xs, err = nil, fmt.Errorf("simplex: %v", r)
		}
	}()
	_, xs, err = lp.Simplex(c, a, b, tol, nil)
	return xs, err
}

func allNonNegative(vs []float64) bool {
	for _, v := range vs {
		if v < 0 {
			return false
		}
	}
	return true
}

func allNonPositive(vs []float64) bool {
	for _, v := range vs {
		if v > 0 {
			return false
		}
	}
	return true
}
