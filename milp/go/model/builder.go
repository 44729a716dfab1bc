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

// Package model offers a builder API for mixed-integer linear programs.
//
// The `Builder` struct owns a model under construction: index sets, parameter tables,
// decision variables, constraint families and a single minimisation objective. Calling
// `Model()` freezes the builder and returns an immutable `*Model` that a `Solver` adapter
// consumes. The adapter's `Response` is decoded into a `Solution`, the only place where
// variable values can be read.
//
// Declarations that return handles used for indexing (index sets, parameter tables,
// variable families) return their error directly. Registrations that are chained while
// composing expressions (constraints, objective, parameter lookups with `At`) record the
// first error on the builder; `Model()` reports it and refuses to build.
package model

import (
	"fmt"

	log "github.com/golang/glog"
)

type varRecord struct {
	name   string
	family string
	domain Domain
}

// Builder accumulates the elements of a model. A Builder is not safe for concurrent use.
type Builder struct {
	name string

	sets        map[string]bool
	params      map[string]bool
	varFamilies map[string]bool
	varNames    map[string]VarIndex
	vars        []varRecord
	families    map[string]*ConstraintFamily
	familyOrder []string
	constraints []constraintRecord
	objective   *objectiveRecord
	frozen      *Model
	// The first and only the first error is reported in Model.
	err error
}

// NewBuilder creates and returns a new model Builder.
func NewBuilder(name string) *Builder {
	return &Builder{
		name:        name,
		sets:        make(map[string]bool),
		params:      make(map[string]bool),
		varFamilies: make(map[string]bool),
		varNames:    make(map[string]VarIndex),
		families:    make(map[string]*ConstraintFamily),
	}
}

// Name returns the name of the model.
func (cp *Builder) Name() string {
	return cp.name
}

// Err returns the first error recorded on the builder, if any.
func (cp *Builder) Err() error {
	return cp.err
}

// setErr keeps the first error and logs the ones that follow it.
func (cp *Builder) setErr(err error) {
	if err == nil {
		return
	}
	if cp.err == nil {
		cp.err = err
		return
	}
	log.Errorf("model %q: %v", cp.name, err)
}

// checkOpen returns ErrModelFrozen once Model has been called.
func (cp *Builder) checkOpen(what string) error {
	if cp.frozen != nil {
		err := fmt.Errorf("%s on model %q: %w", what, cp.name, ErrModelFrozen)
		cp.setErr(err)
		return err
	}
	return nil
}

// checkSameModelAndSetErrorf returns true if `cp` and `cp2` point to the same Builder.
// If false, an error with the error message `format` is recorded on `cp`.
func (cp *Builder) checkSameModelAndSetErrorf(cp2 *Builder, format string, a ...any) bool {
	if cp == cp2 {
		return true
	}
	args := make([]any, len(a)+1)
	copy(args, a)
	args[len(a)] = ErrMixedModels
	cp.setErr(fmt.Errorf(format+": %w", args...))
	return false
}

func (cp *Builder) declareName(kind string, registry map[string]bool, name string, dup error) error {
	if err := cp.checkOpen("declare " + kind + " " + name); err != nil {
		return err
	}
	if registry[name] {
		err := fmt.Errorf("%s %q: %w", kind, name, dup)
		cp.setErr(err)
		return err
	}
	registry[name] = true
	return nil
}

func (cp *Builder) newVar(family, name string, d Domain) (Var, error) {
	if _, ok := cp.varNames[name]; ok {
		err := fmt.Errorf("variable %q: %w", name, ErrDuplicateVariable)
		cp.setErr(err)
		return Var{}, err
	}
	ind := VarIndex(len(cp.vars))
	cp.vars = append(cp.vars, varRecord{name: name, family: family, domain: d})
	cp.varNames[name] = ind
	return Var{ind: ind, cpb: cp}, nil
}

// NewVar declares a single variable that does not belong to an indexed family.
func (cp *Builder) NewVar(name string, d Domain) (Var, error) {
	if err := cp.declareName("variable family", cp.varFamilies, name, ErrDuplicateVariable); err != nil {
		return Var{}, err
	}
	if err := d.validate(); err != nil {
		err = fmt.Errorf("variable %q: %w", name, err)
		cp.setErr(err)
		return Var{}, err
	}
	return cp.newVar(name, name, d)
}

// NumVariables returns the number of variables declared so far.
func (cp *Builder) NumVariables() int {
	return len(cp.vars)
}

// NumConstraints returns the number of constraints registered so far.
func (cp *Builder) NumConstraints() int {
	return len(cp.constraints)
}

// Model freezes the builder and returns the built model. Later calls return the same
// model. Model returns the first error recorded during building, or ErrObjectiveNotSet
// when no objective was set.
func (cp *Builder) Model() (*Model, error) {
	if cp.frozen != nil {
		return cp.frozen, nil
	}
	if cp.err != nil {
		return nil, cp.err
	}
	if cp.objective == nil {
		return nil, fmt.Errorf("model %q: %w", cp.name, ErrObjectiveNotSet)
	}
	families := make([]string, len(cp.familyOrder))
	copy(families, cp.familyOrder)
	cp.frozen = &Model{
		name:        cp.name,
		cpb:         cp,
		vars:        cp.vars,
		constraints: cp.constraints,
		families:    families,
		objective:   *cp.objective,
	}
	log.V(1).Infof("model %q frozen with %d variables and %d constraints", cp.name, len(cp.vars), len(cp.constraints))
	return cp.frozen, nil
}
