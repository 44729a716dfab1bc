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
	"strconv"
)

// Operator is the relational operator of a linear constraint.
type Operator int

const (
	// LessOrEqual is the `<=` operator.
	LessOrEqual Operator = iota
	// Equal is the `=` operator.
	Equal
	// GreaterOrEqual is the `>=` operator.
	GreaterOrEqual
)

func (o Operator) String() string {
	switch o {
	case LessOrEqual:
		return "<="
	case Equal:
		return "="
	case GreaterOrEqual:
		return ">="
	}
	return "Operator(" + strconv.Itoa(int(o)) + ")"
}

// Holds reports whether `lhs o rhs` is satisfied within `tol`.
func (o Operator) Holds(lhs, rhs, tol float64) bool {
	switch o {
	case LessOrEqual:
		return lhs <= rhs+tol
	case Equal:
		return lhs >= rhs-tol && lhs <= rhs+tol
	case GreaterOrEqual:
		return lhs >= rhs-tol
	}
	return false
}

// ConstrIndex is the index of a constraint in the model.
type ConstrIndex int32

// LinearTerm is a variable index with its coefficient, as seen by solver adapters.
type LinearTerm struct {
	Var   VarIndex
	Coeff float64
}

// constraintRecord is the normalised form `Σ terms  op  rhs`.
type constraintRecord struct {
	name   string
	family string
	terms  []LinearTerm
	op     Operator
	rhs    float64
}

// Constraint is a reference to a constraint in the model.
type Constraint struct {
	ind ConstrIndex
	cpb *Builder
}

// IsValid returns false for a constraint that could not be registered.
func (c Constraint) IsValid() bool {
	return c.cpb != nil && c.ind >= 0
}

// Index returns the index of the constraint.
func (c Constraint) Index() ConstrIndex {
	return c.ind
}

// Name returns the name of the constraint.
func (c Constraint) Name() string {
	if !c.IsValid() {
		return ""
	}
	return c.cpb.constraints[c.ind].name
}

// Family returns the name of the constraint family.
func (c Constraint) Family() string {
	if !c.IsValid() {
		return ""
	}
	return c.cpb.constraints[c.ind].family
}

// Operator returns the relational operator of the constraint.
func (c Constraint) Operator() Operator {
	if !c.IsValid() {
		return LessOrEqual
	}
	return c.cpb.constraints[c.ind].op
}

// RHS returns the right-hand side of the normalised constraint, with all constants moved
// to the right.
func (c Constraint) RHS() float64 {
	if !c.IsValid() {
		return 0
	}
	return c.cpb.constraints[c.ind].rhs
}

// Coefficient returns the coefficient of `v` in the normalised left-hand side.
func (c Constraint) Coefficient(v Var) float64 {
	if !c.IsValid() || v.cpb != c.cpb {
		return 0
	}
	for _, t := range c.cpb.constraints[c.ind].terms {
		if t.Var == v.ind {
			return t.Coeff
		}
	}
	return 0
}

// NumTerms returns the number of variables in the constraint.
func (c Constraint) NumTerms() int {
	if !c.IsValid() {
		return 0
	}
	return len(c.cpb.constraints[c.ind].terms)
}

// ConstraintFamily groups constraints registered under one name. Members are named
// `family[k1,k2,...]` after the keys given at registration, or `family[n]` by ordinal when
// no key is given.
type ConstraintFamily struct {
	name    string
	cpb     *Builder
	members []ConstrIndex
}

// NewConstraintFamily registers the constraint family `name`. A repeated name records
// ErrDuplicateFamily on the builder.
func (cp *Builder) NewConstraintFamily(name string) *ConstraintFamily {
	f := &ConstraintFamily{name: name, cpb: cp}
	if err := cp.checkOpen("declare constraint family " + name); err != nil {
		return f
	}
	if _, ok := cp.families[name]; ok {
		cp.setErr(fmt.Errorf("constraint family %q: %w", name, ErrDuplicateFamily))
		return f
	}
	cp.families[name] = f
	cp.familyOrder = append(cp.familyOrder, name)
	return f
}

// Name returns the name of the family.
func (f *ConstraintFamily) Name() string {
	return f.name
}

// Len returns the number of constraints registered in the family.
func (f *ConstraintFamily) Len() int {
	return len(f.members)
}

// Constraints returns the constraints of the family in registration order.
func (f *ConstraintFamily) Constraints() []Constraint {
	cs := make([]Constraint, len(f.members))
	for i, ind := range f.members {
		cs[i] = Constraint{ind: ind, cpb: f.cpb}
	}
	return cs
}

func (f *ConstraintFamily) invalid() Constraint {
	return Constraint{ind: -1, cpb: f.cpb}
}

// AddLinear adds the linear constraint `lhs op rhs`, named after `keys`.
//
// The expressions are copied: modifying them afterwards does not change the constraint.
// A constraint whose variables all cancel is kept without terms; a solver reports it as
// infeasible when its constants violate the operator.
func (f *ConstraintFamily) AddLinear(lhs LinearArgument, op Operator, rhs LinearArgument, keys ...any) Constraint {
	cp := f.cpb
	if err := cp.checkOpen("add constraint to " + f.name); err != nil {
		return f.invalid()
	}
	if op < LessOrEqual || op > GreaterOrEqual {
		cp.setErr(fmt.Errorf("constraint family %q: unknown operator %v: %w", f.name, op, ErrInvalidCoefficient))
		return f.invalid()
	}
	diff := NewLinearExpr().Add(lhs).AddTerm(rhs, -1)
	name := f.memberName(keys)
	if diff.err != nil {
		cp.setErr(fmt.Errorf("constraint %q: %w", name, diff.err))
		return f.invalid()
	}
	if diff.cpb != nil && !cp.checkSameModelAndSetErrorf(diff.cpb, "constraint %q", name) {
		return f.invalid()
	}
	rec := constraintRecord{name: name, family: f.name, op: op, rhs: 0 - diff.offset}
	for _, t := range diff.Terms() {
		rec.terms = append(rec.terms, LinearTerm{Var: t.Var.ind, Coeff: t.Coeff})
	}
	ind := ConstrIndex(len(cp.constraints))
	cp.constraints = append(cp.constraints, rec)
	f.members = append(f.members, ind)
	return Constraint{ind: ind, cpb: cp}
}

func (f *ConstraintFamily) memberName(keys []any) string {
	if len(keys) == 0 {
		return indexedName(f.name, len(f.members))
	}
	return indexedName(f.name, keys...)
}

// AddEquality adds the linear constraint `lhs == rhs`.
func (f *ConstraintFamily) AddEquality(lhs, rhs LinearArgument, keys ...any) Constraint {
	return f.AddLinear(lhs, Equal, rhs, keys...)
}

// AddLessOrEqual adds the linear constraint `lhs <= rhs`.
func (f *ConstraintFamily) AddLessOrEqual(lhs, rhs LinearArgument, keys ...any) Constraint {
	return f.AddLinear(lhs, LessOrEqual, rhs, keys...)
}

// AddGreaterOrEqual adds the linear constraint `lhs >= rhs`.
func (f *ConstraintFamily) AddGreaterOrEqual(lhs, rhs LinearArgument, keys ...any) Constraint {
	return f.AddLinear(lhs, GreaterOrEqual, rhs, keys...)
}
