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
)

// Task is an interval of work with a start and an end expression, ordered by a disjunctive
// pair.
type Task struct {
	Start LinearArgument
	End   LinearArgument
}

// checkBinary records and returns ErrNotBinary unless `v` is a valid binary variable of
// the builder.
func (cp *Builder) checkBinary(v Var, what string) bool {
	if !v.IsValid() {
		cp.setErr(fmt.Errorf("%s: undeclared indicator: %w", what, ErrKeyOutOfDomain))
		return false
	}
	if !cp.checkSameModelAndSetErrorf(v.cpb, "%s: indicator %s", what, v.Name()) {
		return false
	}
	if d := v.Domain(); d.Kind() != Binary {
		cp.setErr(fmt.Errorf("%s: indicator %s has domain %v: %w", what, v.Name(), d, ErrNotBinary))
		return false
	}
	return true
}

func (cp *Builder) checkBigM(m Scalar, what string) bool {
	if v := m.Value(); !(v > 0) || math.IsInf(v, 0) {
		cp.setErr(fmt.Errorf("%s: big-M %s = %v must be positive and finite: %w", what, m.Name(), v, ErrInvalidCoefficient))
		return false
	}
	return true
}

// AddDisjunctivePair adds to the family the two rows ordering `first` and `second`:
//
//	second.Start >= first.End - M*(1 - before)   (named `family[keys...,precedes]`)
//	first.Start  >= second.End - M*before        (named `family[keys...,follows]`)
//
// When `before` is 1 the first row forces `first` to end before `second` starts and the
// second row is relaxed by M, and conversely when `before` is 0. `before` must be a binary
// variable and M a positive finite constant. A big-M smaller than the latest end cuts off
// feasible orderings.
func (f *ConstraintFamily) AddDisjunctivePair(first, second Task, before Var, bigM Scalar, keys ...any) (Constraint, Constraint) {
	cp := f.cpb
	what := "disjunctive pair " + indexedName(f.name, keys...)
	if !cp.checkBinary(before, what) || !cp.checkBigM(bigM, what) {
		return f.invalid(), f.invalid()
	}
	m := bigM.Value()
	// second.Start >= first.End - M + M*before
	rhs1 := NewLinearExpr().Add(first.End).AddConstant(-m).AddTerm(before, m)
	c1 := f.AddGreaterOrEqual(second.Start, rhs1, append(keysCopy(keys), "precedes")...)
	// first.Start >= second.End - M*before
	rhs2 := NewLinearExpr().Add(second.End).AddTerm(before, -m)
	c2 := f.AddGreaterOrEqual(first.Start, rhs2, append(keysCopy(keys), "follows")...)
	return c1, c2
}

// AddBigMLink adds the row `M*indicator >= flow`, which forces `flow` to zero unless the
// binary `indicator` is set. M must be a positive finite constant bounding `flow`.
func (f *ConstraintFamily) AddBigMLink(indicator Var, flow LinearArgument, bigM Scalar, keys ...any) Constraint {
	cp := f.cpb
	what := "big-M link " + indexedName(f.name, keys...)
	if !cp.checkBinary(indicator, what) || !cp.checkBigM(bigM, what) {
		return f.invalid()
	}
	lhs := NewLinearExpr().AddTerm(indicator, bigM.Value())
	return f.AddGreaterOrEqual(lhs, flow, keys...)
}

func keysCopy(keys []any) []any {
	ks := make([]any, len(keys), len(keys)+1)
	copy(ks, keys)
	return ks
}
