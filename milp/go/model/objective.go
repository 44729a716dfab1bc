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

import "fmt"

// ObjectivePart is a named, weighted component of a minimisation objective.
type ObjectivePart struct {
	Name   string
	Weight float64
	Expr   LinearArgument
}

type objectivePart struct {
	name   string
	weight float64
	expr   *LinearExpr
}

type objectiveRecord struct {
	expr  *LinearExpr
	parts []objectivePart
}

// Minimize sets the objective to minimise `obj`. A model has exactly one objective; a
// second call records ErrObjectiveAlreadySet.
func (cp *Builder) Minimize(obj LinearArgument) {
	cp.MinimizeParts(ObjectivePart{Name: "objective", Weight: 1, Expr: obj})
}

// MinimizeParts sets the objective to minimise the weighted sum of `parts`. The value of
// every part is reported by Solution.ObjectivePart.
func (cp *Builder) MinimizeParts(parts ...ObjectivePart) {
	if err := cp.checkOpen("set objective"); err != nil {
		return
	}
	if cp.objective != nil {
		cp.setErr(fmt.Errorf("model %q: %w", cp.name, ErrObjectiveAlreadySet))
		return
	}
	rec := &objectiveRecord{expr: NewLinearExpr()}
	seen := make(map[string]bool, len(parts))
	for _, p := range parts {
		if seen[p.Name] {
			cp.setErr(fmt.Errorf("objective part %q declared twice: %w", p.Name, ErrDuplicateFamily))
			return
		}
		seen[p.Name] = true
		if err := checkFinite("weight of objective part "+p.Name, p.Weight); err != nil {
			cp.setErr(err)
			return
		}
		e := NewLinearExpr().Add(p.Expr)
		if e.err != nil {
			cp.setErr(fmt.Errorf("objective part %q: %w", p.Name, e.err))
			return
		}
		if e.cpb != nil && !cp.checkSameModelAndSetErrorf(e.cpb, "objective part %q", p.Name) {
			return
		}
		rec.parts = append(rec.parts, objectivePart{name: p.Name, weight: p.Weight, expr: e})
		rec.expr.AddTerm(e, p.Weight)
	}
	if rec.expr.err != nil {
		cp.setErr(fmt.Errorf("objective: %w", rec.expr.err))
		return
	}
	rec.expr.cpb = cp
	cp.objective = rec
}
