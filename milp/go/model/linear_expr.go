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

package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// LinearArgument provides an interface for Var and LinearExpr.
type LinearArgument interface {
	addToLinearExpr(e *LinearExpr, c float64)
	evaluate(values []float64) float64
}

// Term is a variable with its coefficient.
type Term struct {
	Var   Var
	Coeff float64
}

// LinearExpr is a container for an affine expression. Adding a variable that is already
// present accumulates its coefficient.
type LinearExpr struct {
	order  []VarIndex
	coeffs map[VarIndex]float64
	offset float64
	cpb    *Builder
	// The first error met while building the expression.
	err error
}

// NewLinearExpr creates a new empty LinearExpr.
func NewLinearExpr() *LinearExpr {
	return &LinearExpr{coeffs: make(map[VarIndex]float64)}
}

// NewConstant creates and returns a LinearExpr containing the constant `c`.
func NewConstant(c float64) *LinearExpr {
	return NewLinearExpr().AddConstant(c)
}

func (l *LinearExpr) setErr(err error) {
	if l.err == nil {
		l.err = err
	}
}

// bind attaches the expression to `cpb`, or records ErrMixedModels if it already holds
// variables of another builder.
func (l *LinearExpr) bind(cpb *Builder) bool {
	if l.cpb == nil {
		l.cpb = cpb
		return true
	}
	if l.cpb != cpb {
		l.setErr(fmt.Errorf("variable of model %q added to expression of model %q: %w", cpb.name, l.cpb.name, ErrMixedModels))
		return false
	}
	return true
}

func (l *LinearExpr) addCoeff(ind VarIndex, c float64) {
	if err := checkFinite("coefficient", c); err != nil {
		l.setErr(err)
		return
	}
	if l.coeffs == nil {
		l.coeffs = make(map[VarIndex]float64)
	}
	if _, ok := l.coeffs[ind]; !ok {
		l.order = append(l.order, ind)
	}
	l.coeffs[ind] += c
}

// Add adds the linear argument term to the LinearExpr and returns itself.
func (l *LinearExpr) Add(la LinearArgument) *LinearExpr {
	return l.AddTerm(la, 1)
}

// AddConstant adds the constant to the LinearExpr and returns itself. A non-finite constant
// records ErrInvalidCoefficient.
func (l *LinearExpr) AddConstant(c float64) *LinearExpr {
	if err := checkFinite("constant", c); err != nil {
		l.setErr(err)
		return l
	}
	l.offset += c
	return l
}

// AddTerm adds the linear argument term with the given coefficient to the LinearExpr and
// returns itself. A non-finite coefficient records ErrInvalidCoefficient.
func (l *LinearExpr) AddTerm(la LinearArgument, coeff float64) *LinearExpr {
	if err := checkFinite("coefficient", coeff); err != nil {
		l.setErr(err)
		return l
	}
	if la == nil {
		return l
	}
	la.addToLinearExpr(l, coeff)
	return l
}

// AddSum adds the sum of the linear arguments to the LinearExpr and returns itself.
func (l *LinearExpr) AddSum(las ...LinearArgument) *LinearExpr {
	for _, la := range las {
		l.Add(la)
	}
	return l
}

// AddWeightedSum adds the linear arguments with the corresponding coefficients to the
// LinearExpr and returns itself.
func (l *LinearExpr) AddWeightedSum(las []LinearArgument, coeffs []float64) *LinearExpr {
	if len(coeffs) != len(las) {
		l.setErr(fmt.Errorf("las and coeffs must be the same length: %v != %v: %w", len(las), len(coeffs), ErrInvalidCoefficient))
		return l
	}
	for i, la := range las {
		l.AddTerm(la, coeffs[i])
	}
	return l
}

func (l *LinearExpr) addToLinearExpr(e *LinearExpr, c float64) {
	if l == nil {
		return
	}
	if l.err != nil {
		e.setErr(l.err)
	}
	if l.cpb != nil && !e.bind(l.cpb) {
		return
	}
	for _, ind := range l.order {
		e.addCoeff(ind, l.coeffs[ind]*c)
	}
	if err := checkFinite("constant", l.offset*c); err != nil {
		e.setErr(err)
		return
	}
	e.offset += l.offset * c
}

func (l *LinearExpr) evaluate(values []float64) float64 {
	if l == nil {
		return 0
	}
	result := l.offset
	for _, ind := range l.order {
		result += l.coeffs[ind] * values[ind]
	}
	return result
}

// Evaluate returns the value of the expression for the value vector `values`, indexed by
// VarIndex.
func (l *LinearExpr) Evaluate(values []float64) float64 {
	return l.evaluate(values)
}

// Err returns the first error met while building the expression.
func (l *LinearExpr) Err() error {
	return l.err
}

// Offset returns the constant term of the expression.
func (l *LinearExpr) Offset() float64 {
	return l.offset
}

// Coefficient returns the accumulated coefficient of `v`, zero if absent.
func (l *LinearExpr) Coefficient(v Var) float64 {
	if l.cpb != v.cpb {
		return 0
	}
	return l.coeffs[v.ind]
}

// Terms returns the non-zero terms of the expression in first-insertion order.
func (l *LinearExpr) Terms() []Term {
	var ts []Term
	for _, ind := range l.order {
		if c := l.coeffs[ind]; c != 0 {
			ts = append(ts, Term{Var: Var{ind: ind, cpb: l.cpb}, Coeff: c})
		}
	}
	return ts
}

// NumTerms returns the number of non-zero terms.
func (l *LinearExpr) NumTerms() int {
	n := 0
	for _, ind := range l.order {
		if l.coeffs[ind] != 0 {
			n++
		}
	}
	return n
}

// clone returns a deep copy, so that a registered expression cannot be modified through
// the caller's pointer.
func (l *LinearExpr) clone() *LinearExpr {
	c := &LinearExpr{
		order:  make([]VarIndex, len(l.order)),
		coeffs: make(map[VarIndex]float64, len(l.coeffs)),
		offset: l.offset,
		cpb:    l.cpb,
		err:    l.err,
	}
	copy(c.order, l.order)
	for k, v := range l.coeffs {
		c.coeffs[k] = v
	}
	return c
}

func (l *LinearExpr) String() string {
	var sb strings.Builder
	for _, t := range l.Terms() {
		c := t.Coeff
		switch {
		case sb.Len() == 0 && c < 0:
			sb.WriteString("-")
		case sb.Len() > 0 && c < 0:
			sb.WriteString(" - ")
		case sb.Len() > 0:
			sb.WriteString(" + ")
		}
		if a := math.Abs(c); a != 1 {
			sb.WriteString(strconv.FormatFloat(a, 'g', -1, 64))
			sb.WriteString(" ")
		}
		sb.WriteString(t.Var.Name())
	}
	switch {
	case sb.Len() == 0:
		sb.WriteString(strconv.FormatFloat(l.offset, 'g', -1, 64))
	case l.offset > 0:
		sb.WriteString(" + " + strconv.FormatFloat(l.offset, 'g', -1, 64))
	case l.offset < 0:
		sb.WriteString(" - " + strconv.FormatFloat(-l.offset, 'g', -1, 64))
	}
	return sb.String()
}
