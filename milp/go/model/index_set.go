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
	"strings"
)

// IndexSet is a named, finite collection of unique keys over which parameters and variables
// are declared. Keys keep their declaration order, which is used for naming and reporting
// only.
type IndexSet[K comparable] struct {
	name string
	keys []K
	pos  map[K]int
}

// NewIndexSet declares the index set `name` on the builder. It fails with ErrDuplicateSet
// if the name is already declared and with ErrDuplicateKey if a key repeats.
func NewIndexSet[K comparable](b *Builder, name string, keys ...K) (IndexSet[K], error) {
	pos := make(map[K]int, len(keys))
	for i, k := range keys {
		if _, ok := pos[k]; ok {
			err := fmt.Errorf("index set %q key %v: %w", name, k, ErrDuplicateKey)
			b.setErr(err)
			return IndexSet[K]{}, err
		}
		pos[k] = i
	}
	if err := b.declareName("index set", b.sets, name, ErrDuplicateSet); err != nil {
		return IndexSet[K]{}, err
	}
	ks := make([]K, len(keys))
	copy(ks, keys)
	return IndexSet[K]{name: name, keys: ks, pos: pos}, nil
}

// Name returns the name of the index set.
func (s IndexSet[K]) Name() string { return s.name }

// Len returns the number of keys in the set.
func (s IndexSet[K]) Len() int { return len(s.keys) }

// Keys returns a copy of the keys in declaration order.
func (s IndexSet[K]) Keys() []K {
	ks := make([]K, len(s.keys))
	copy(ks, s.keys)
	return ks
}

// Contains returns true if `k` is a member of the set.
func (s IndexSet[K]) Contains(k K) bool {
	_, ok := s.pos[k]
	return ok
}

// Position returns the declaration position of `k`, and false if `k` is not a member.
func (s IndexSet[K]) Position(k K) (int, bool) {
	i, ok := s.pos[k]
	return i, ok
}

// Pair is a key of the Cartesian product of two index sets.
type Pair[A, B comparable] struct {
	First  A
	Second B
}

// PairOf returns the pair `(a,b)`.
func PairOf[A, B comparable](a A, b B) Pair[A, B] {
	return Pair[A, B]{First: a, Second: b}
}

func (p Pair[A, B]) String() string {
	return fmt.Sprintf("(%v,%v)", p.First, p.Second)
}

// Pairs returns the Cartesian product `a × b`.
func Pairs[A, B comparable](a IndexSet[A], b IndexSet[B]) []Pair[A, B] {
	ps := make([]Pair[A, B], 0, len(a.keys)*len(b.keys))
	for _, i := range a.keys {
		for _, j := range b.keys {
			ps = append(ps, Pair[A, B]{i, j})
		}
	}
	return ps
}

// DistinctPairs returns the ordered pairs `(i,j)` of `s × s` with `i != j`.
func DistinctPairs[K comparable](s IndexSet[K]) []Pair[K, K] {
	var ps []Pair[K, K]
	for _, i := range s.keys {
		for _, j := range s.keys {
			if i != j {
				ps = append(ps, Pair[K, K]{i, j})
			}
		}
	}
	return ps
}

// UnorderedPairs returns one pair `(i,j)` per two-element subset `{i,j}` of `s`, with `i`
// declared before `j`.
func UnorderedPairs[K comparable](s IndexSet[K]) []Pair[K, K] {
	var ps []Pair[K, K]
	for x := 0; x < len(s.keys); x++ {
		for y := x + 1; y < len(s.keys); y++ {
			ps = append(ps, Pair[K, K]{s.keys[x], s.keys[y]})
		}
	}
	return ps
}

// indexedName returns `name[k1,k2,...]`, or `name` when there are no keys.
func indexedName(name string, keys ...any) string {
	if len(keys) == 0 {
		return name
	}
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprint(k)
	}
	return name + "[" + strings.Join(parts, ",") + "]"
}
