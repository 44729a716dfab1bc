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

// Model is the frozen snapshot of a Builder: variables, constraints and the objective. A
// Model is immutable and safe for concurrent reads. Solver adapters read it through the
// index-based accessors below.
type Model struct {
	name        string
	cpb         *Builder
	vars        []varRecord
	constraints []constraintRecord
	families    []string
	objective   objectiveRecord
}

// Row is a normalised constraint `Σ Terms  Op  RHS` as seen by solver adapters.
type Row struct {
	Name   string
	Family string
	Terms  []LinearTerm
	Op     Operator
	RHS    float64
}

// Name returns the name of the model.
func (m *Model) Name() string {
	return m.name
}

// NumVariables returns the number of variables.
func (m *Model) NumVariables() int {
	return len(m.vars)
}

// NumConstraints returns the number of constraints.
func (m *Model) NumConstraints() int {
	return len(m.constraints)
}

// VarName returns the name of the variable at index `i`.
func (m *Model) VarName(i VarIndex) string {
	return m.vars[i].name
}

// VarDomain returns the domain of the variable at index `i`.
func (m *Model) VarDomain(i VarIndex) Domain {
	return m.vars[i].domain
}

// VarByName returns the variable named `name`.
func (m *Model) VarByName(name string) (Var, bool) {
	ind, ok := m.cpb.varNames[name]
	if !ok {
		return Var{}, false
	}
	return Var{ind: ind, cpb: m.cpb}, true
}

// Row returns a copy of the constraint at index `i`.
func (m *Model) Row(i ConstrIndex) Row {
	c := m.constraints[i]
	terms := make([]LinearTerm, len(c.terms))
	copy(terms, c.terms)
	return Row{Name: c.name, Family: c.family, Terms: terms, Op: c.op, RHS: c.rhs}
}

// Families returns the constraint family names in registration order.
func (m *Model) Families() []string {
	fs := make([]string, len(m.families))
	copy(fs, m.families)
	return fs
}

// FamilySize returns the number of constraints in family `name`.
func (m *Model) FamilySize(name string) int {
	f, ok := m.cpb.families[name]
	if !ok {
		return 0
	}
	return f.Len()
}

// Objective returns the terms and the constant offset of the minimisation objective.
func (m *Model) Objective() ([]LinearTerm, float64) {
	var terms []LinearTerm
	for _, t := range m.objective.expr.Terms() {
		terms = append(terms, LinearTerm{Var: t.Var.ind, Coeff: t.Coeff})
	}
	return terms, m.objective.expr.offset
}

// ObjectiveParts returns the names of the objective parts in declaration order.
func (m *Model) ObjectiveParts() []string {
	names := make([]string, len(m.objective.parts))
	for i, p := range m.objective.parts {
		names[i] = p.name
	}
	return names
}

// Belongs returns true if `v` was declared on the builder of the model.
func (m *Model) Belongs(v Var) bool {
	return v.IsValid() && v.cpb == m.cpb
}
