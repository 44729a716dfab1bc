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

// VarIndex is the index of a variable in the model.
type VarIndex int32

// Var is a reference to a decision variable of a Builder. A Var carries no value; values
// are read from a Solution.
type Var struct {
	ind VarIndex
	cpb *Builder
}

// IsValid returns false for the zero Var, returned when a lookup fails.
func (v Var) IsValid() bool {
	return v.cpb != nil
}

// Index returns the index of the variable.
func (v Var) Index() VarIndex {
	return v.ind
}

// Name returns the name of the variable.
func (v Var) Name() string {
	if !v.IsValid() {
		return ""
	}
	return v.cpb.vars[v.ind].name
}

// Family returns the name of the family the variable was declared in.
func (v Var) Family() string {
	if !v.IsValid() {
		return ""
	}
	return v.cpb.vars[v.ind].family
}

// Domain returns the domain of the variable.
func (v Var) Domain() Domain {
	if !v.IsValid() {
		return Domain{}
	}
	return v.cpb.vars[v.ind].domain
}

func (v Var) String() string {
	return v.Name()
}

func (v Var) addToLinearExpr(e *LinearExpr, c float64) {
	if !v.IsValid() {
		e.setErr(fmt.Errorf("undeclared variable: %w", ErrKeyOutOfDomain))
		return
	}
	if !e.bind(v.cpb) {
		return
	}
	e.addCoeff(v.ind, c)
}

func (v Var) evaluate(values []float64) float64 {
	return values[v.ind]
}

func declareFamily(b *Builder, name string, d Domain) error {
	if err := b.declareName("variable family", b.varFamilies, name, ErrDuplicateVariable); err != nil {
		return err
	}
	if err := d.validate(); err != nil {
		err = fmt.Errorf("variable family %q: %w", name, err)
		b.setErr(err)
		return err
	}
	return nil
}

// VarFamily1 is a family of variables indexed by the members of one index set.
type VarFamily1[K comparable] struct {
	name string
	keys []K
	vars map[K]Var
	cpb  *Builder
}

// NewVarFamily1 declares one variable named `name[k]` with domain `d` for every key `k` of
// `set`. It fails with ErrDuplicateVariable if the family name is already declared.
func NewVarFamily1[K comparable](b *Builder, name string, set IndexSet[K], d Domain) (VarFamily1[K], error) {
	if err := declareFamily(b, name, d); err != nil {
		return VarFamily1[K]{}, err
	}
	f := VarFamily1[K]{name: name, keys: set.Keys(), vars: make(map[K]Var, set.Len()), cpb: b}
	for _, k := range f.keys {
		v, err := b.newVar(name, indexedName(name, k), d)
		if err != nil {
			return VarFamily1[K]{}, err
		}
		f.vars[k] = v
	}
	return f, nil
}

// Name returns the name of the family.
func (f VarFamily1[K]) Name() string { return f.name }

// Keys returns the keys of the family in declaration order.
func (f VarFamily1[K]) Keys() []K {
	ks := make([]K, len(f.keys))
	copy(ks, f.keys)
	return ks
}

// Lookup returns the variable for `k`, or ErrKeyOutOfDomain.
func (f VarFamily1[K]) Lookup(k K) (Var, error) {
	v, ok := f.vars[k]
	if !ok {
		return Var{}, fmt.Errorf("%s: %w", indexedName(f.name, k), ErrKeyOutOfDomain)
	}
	return v, nil
}

// At returns the variable for `k`. An unknown key is recorded on the builder and the zero
// Var is returned.
func (f VarFamily1[K]) At(k K) Var {
	v, err := f.Lookup(k)
	if err != nil && f.cpb != nil {
		f.cpb.setErr(err)
	}
	return v
}

// All returns the variables of the family in key order.
func (f VarFamily1[K]) All() []Var {
	vs := make([]Var, len(f.keys))
	for i, k := range f.keys {
		vs[i] = f.vars[k]
	}
	return vs
}

// Sum returns the sum of all variables of the family.
func (f VarFamily1[K]) Sum() *LinearExpr {
	e := NewLinearExpr()
	for _, k := range f.keys {
		e.Add(f.vars[k])
	}
	return e
}

// VarFamily2 is a family of variables indexed by pairs of keys.
type VarFamily2[A, B comparable] struct {
	name string
	keys []Pair[A, B]
	vars map[Pair[A, B]]Var
	cpb  *Builder
}

// NewVarFamily2 declares one variable named `name[a,b]` for every pair of `a × bs`.
func NewVarFamily2[A, B comparable](b *Builder, name string, a IndexSet[A], bs IndexSet[B], d Domain) (VarFamily2[A, B], error) {
	return NewVarFamily2Over(b, name, Pairs(a, bs), d)
}

// NewVarFamily2Over declares one variable for every pair in `pairs`, such as the result of
// DistinctPairs. Repeated pairs fail with ErrDuplicateVariable.
func NewVarFamily2Over[A, B comparable](b *Builder, name string, pairs []Pair[A, B], d Domain) (VarFamily2[A, B], error) {
	if err := declareFamily(b, name, d); err != nil {
		return VarFamily2[A, B]{}, err
	}
	f := VarFamily2[A, B]{name: name, vars: make(map[Pair[A, B]]Var, len(pairs)), cpb: b}
	for _, p := range pairs {
		v, err := b.newVar(name, indexedName(name, p.First, p.Second), d)
		if err != nil {
			return VarFamily2[A, B]{}, err
		}
		f.keys = append(f.keys, p)
		f.vars[p] = v
	}
	return f, nil
}

// NewVarFamily2Func declares one variable for every pair in `pairs` with the domain
// returned by `domain` for that pair. If `domain` records an error on the builder, such as
// a missing parameter, that error is returned.
func NewVarFamily2Func[A, B comparable](b *Builder, name string, pairs []Pair[A, B], domain func(Pair[A, B]) Domain) (VarFamily2[A, B], error) {
	if err := b.declareName("variable family", b.varFamilies, name, ErrDuplicateVariable); err != nil {
		return VarFamily2[A, B]{}, err
	}
	f := VarFamily2[A, B]{name: name, vars: make(map[Pair[A, B]]Var, len(pairs)), cpb: b}
	for _, p := range pairs {
		vname := indexedName(name, p.First, p.Second)
		before := b.Err()
		d := domain(p)
		// A parameter read by `domain` may have failed on the builder.
		if err := b.Err(); err != nil && before == nil {
			return VarFamily2[A, B]{}, err
		}
		if err := d.validate(); err != nil {
			err = fmt.Errorf("variable %q: %w", vname, err)
			b.setErr(err)
			return VarFamily2[A, B]{}, err
		}
		v, err := b.newVar(name, vname, d)
		if err != nil {
			return VarFamily2[A, B]{}, err
		}
		f.keys = append(f.keys, p)
		f.vars[p] = v
	}
	return f, nil
}

// Name returns the name of the family.
func (f VarFamily2[A, B]) Name() string { return f.name }

// Keys returns the pairs of the family in declaration order.
func (f VarFamily2[A, B]) Keys() []Pair[A, B] {
	ks := make([]Pair[A, B], len(f.keys))
	copy(ks, f.keys)
	return ks
}

// Lookup returns the variable for `(a,b)`, or ErrKeyOutOfDomain.
func (f VarFamily2[A, B]) Lookup(a A, b B) (Var, error) {
	v, ok := f.vars[Pair[A, B]{a, b}]
	if !ok {
		return Var{}, fmt.Errorf("%s: %w", indexedName(f.name, a, b), ErrKeyOutOfDomain)
	}
	return v, nil
}

// At returns the variable for `(a,b)`. An unknown pair is recorded on the builder and the
// zero Var is returned.
func (f VarFamily2[A, B]) At(a A, b B) Var {
	v, err := f.Lookup(a, b)
	if err != nil && f.cpb != nil {
		f.cpb.setErr(err)
	}
	return v
}

// All returns the variables of the family in key order.
func (f VarFamily2[A, B]) All() []Var {
	vs := make([]Var, len(f.keys))
	for i, k := range f.keys {
		vs[i] = f.vars[k]
	}
	return vs
}
