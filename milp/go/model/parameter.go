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

func checkFinite(what string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%s = %v: %w", what, v, ErrInvalidCoefficient)
	}
	return nil
}

// Scalar is a named numeric parameter without keys, such as a big-M constant.
type Scalar struct {
	name  string
	value float64
}

// NewScalar declares the scalar parameter `name` with the finite value `v`.
func NewScalar(b *Builder, name string, v float64) (Scalar, error) {
	if err := checkFinite(name, v); err != nil {
		b.setErr(err)
		return Scalar{}, err
	}
	if err := b.declareName("parameter", b.params, name, ErrDuplicateParameter); err != nil {
		return Scalar{}, err
	}
	return Scalar{name: name, value: v}, nil
}

// Name returns the name of the parameter.
func (s Scalar) Name() string { return s.name }

// Value returns the value of the parameter.
func (s Scalar) Value() float64 { return s.value }

// Param1 is a parameter table keyed by the members of one index set.
type Param1[K comparable] struct {
	name   string
	set    IndexSet[K]
	values map[K]float64
	cpb    *Builder
}

// NewParam1 declares the parameter table `name` over `set`. Every key of `values` must be a
// member of `set` and every value must be finite. Keys of `set` absent from `values` are
// allowed; looking them up fails with ErrMissingParameter.
func NewParam1[K comparable](b *Builder, name string, set IndexSet[K], values map[K]float64) (Param1[K], error) {
	vs := make(map[K]float64, len(values))
	for k, v := range values {
		if !set.Contains(k) {
			err := fmt.Errorf("parameter %q key %v not in %q: %w", name, k, set.name, ErrKeyOutOfDomain)
			b.setErr(err)
			return Param1[K]{}, err
		}
		if err := checkFinite(indexedName(name, k), v); err != nil {
			b.setErr(err)
			return Param1[K]{}, err
		}
		vs[k] = v
	}
	if err := b.declareName("parameter", b.params, name, ErrDuplicateParameter); err != nil {
		return Param1[K]{}, err
	}
	return Param1[K]{name: name, set: set, values: vs, cpb: b}, nil
}

// Name returns the name of the table.
func (p Param1[K]) Name() string { return p.name }

// Len returns the number of entries in the table.
func (p Param1[K]) Len() int { return len(p.values) }

// Lookup returns the value for key `k`, or ErrMissingParameter if the table has no entry.
func (p Param1[K]) Lookup(k K) (float64, error) {
	v, ok := p.values[k]
	if !ok {
		return 0, fmt.Errorf("%s: %w", indexedName(p.name, k), ErrMissingParameter)
	}
	return v, nil
}

// At returns the value for key `k`. A missing entry is recorded on the builder, which then
// refuses to build the model, and NaN is returned.
func (p Param1[K]) At(k K) float64 {
	v, err := p.Lookup(k)
	if err != nil {
		if p.cpb != nil {
			p.cpb.setErr(err)
		}
		return math.NaN()
	}
	return v
}

// ScalarAt returns the entry for `k` as a Scalar, to be used as a per-key big-M constant.
func (p Param1[K]) ScalarAt(k K) Scalar {
	return Scalar{name: indexedName(p.name, k), value: p.At(k)}
}

// Param2 is a parameter table keyed by pairs of members of two index sets.
type Param2[A, B comparable] struct {
	name   string
	first  IndexSet[A]
	second IndexSet[B]
	values map[Pair[A, B]]float64
	cpb    *Builder
}

// NewParam2 declares the parameter table `name` over `a × b`, with the same validation as
// NewParam1.
func NewParam2[A, B comparable](b *Builder, name string, a IndexSet[A], bs IndexSet[B], values map[Pair[A, B]]float64) (Param2[A, B], error) {
	vs := make(map[Pair[A, B]]float64, len(values))
	for k, v := range values {
		if !a.Contains(k.First) || !bs.Contains(k.Second) {
			err := fmt.Errorf("parameter %q key %v not in %q × %q: %w", name, k, a.name, bs.name, ErrKeyOutOfDomain)
			b.setErr(err)
			return Param2[A, B]{}, err
		}
		if err := checkFinite(indexedName(name, k.First, k.Second), v); err != nil {
			b.setErr(err)
			return Param2[A, B]{}, err
		}
		vs[k] = v
	}
	if err := b.declareName("parameter", b.params, name, ErrDuplicateParameter); err != nil {
		return Param2[A, B]{}, err
	}
	return Param2[A, B]{name: name, first: a, second: bs, values: vs, cpb: b}, nil
}

// Name returns the name of the table.
func (p Param2[A, B]) Name() string { return p.name }

// Len returns the number of entries in the table.
func (p Param2[A, B]) Len() int { return len(p.values) }

// Lookup returns the value for `(a,b)`, or ErrMissingParameter if the table has no entry.
func (p Param2[A, B]) Lookup(a A, b B) (float64, error) {
	v, ok := p.values[Pair[A, B]{a, b}]
	if !ok {
		return 0, fmt.Errorf("%s: %w", indexedName(p.name, a, b), ErrMissingParameter)
	}
	return v, nil
}

// At returns the value for `(a,b)`. A missing entry is recorded on the builder, which then
// refuses to build the model, and NaN is returned.
func (p Param2[A, B]) At(a A, b B) float64 {
	v, err := p.Lookup(a, b)
	if err != nil {
		if p.cpb != nil {
			p.cpb.setErr(err)
		}
		return math.NaN()
	}
	return v
}

// SafeBigM returns the sum of the table's values over its index set, a valid big-M for
// disjunctive ordering of tasks whose durations are the table's values. It is offered as a
// default to pass explicitly; the builder never substitutes it on its own.
func SafeBigM[K comparable](p Param1[K]) float64 {
	var sum float64
	for _, k := range p.set.keys {
		sum += math.Abs(p.values[k])
	}
	return sum
}
