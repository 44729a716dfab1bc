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
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestConstraintFamily(t *testing.T) {
	b := NewBuilder("constraints")
	orders, _ := NewIndexSet(b, "orders", 1, 2)
	trucks, _ := NewIndexSet(b, "trucks", 1, 2)
	x, _ := NewVarFamily2(b, "x", orders, trucks, BinaryDomain())
	z, _ := NewVarFamily1(b, "z", orders, BinaryDomain())

	assign := b.NewConstraintFamily("order_assign")
	for _, i := range orders.Keys() {
		lhs := NewLinearExpr()
		for _, h := range trucks.Keys() {
			lhs.Add(x.At(i, h))
		}
		lhs.Add(z.At(i))
		assign.AddEquality(lhs, NewConstant(1), i)
	}
	ordinal := b.NewConstraintFamily("misc")
	c0 := ordinal.AddLessOrEqual(NewLinearExpr().Add(z.At(1)).AddConstant(2), NewLinearExpr().Add(z.At(2)).AddConstant(5))
	c1 := ordinal.AddGreaterOrEqual(z.At(1), NewConstant(0))
	b.Minimize(z.Sum())
	m := mustModel(t, b)

	var names []string
	for _, c := range assign.Constraints() {
		names = append(names, c.Name())
	}
	if diff := cmp.Diff([]string{"order_assign[1]", "order_assign[2]"}, names); diff != "" {
		t.Errorf("order_assign names returned with unexpected diff (-want+got):\n%s", diff)
	}
	if got, want := c1.Name(), "misc[1]"; got != want {
		t.Errorf("Name() = %v, want %v", got, want)
	}

	wantRow := Row{
		Name:   "misc[0]",
		Family: "misc",
		Terms:  []LinearTerm{{Var: z.At(1).Index(), Coeff: 1}, {Var: z.At(2).Index(), Coeff: -1}},
		Op:     LessOrEqual,
		RHS:    3,
	}
	if diff := cmp.Diff(wantRow, m.Row(c0.Index())); diff != "" {
		t.Errorf("Row() returned with unexpected diff (-want+got):\n%s", diff)
	}
	if got, want := m.FamilySize("order_assign"), 2; got != want {
		t.Errorf("FamilySize() = %v, want %v", got, want)
	}
	if diff := cmp.Diff([]string{"order_assign", "misc"}, m.Families()); diff != "" {
		t.Errorf("Families() returned with unexpected diff (-want+got):\n%s", diff)
	}
}

func TestConstraintFamily_ExpressionIsCopied(t *testing.T) {
	b := NewBuilder("copy")
	x, _ := b.NewVar("x", IntegerRange(0, 4))
	y, _ := b.NewVar("y", IntegerRange(0, 4))
	lhs := NewLinearExpr().AddTerm(x, 2)
	c := b.NewConstraintFamily("c").AddLessOrEqual(lhs, NewConstant(3))
	lhs.AddTerm(y, 7).AddConstant(1)

	if got := c.Coefficient(y); got != 0 {
		t.Errorf("Coefficient(y) = %v, want 0", got)
	}
	if got, want := c.RHS(), 3.0; got != want {
		t.Errorf("RHS() = %v, want %v", got, want)
	}
	if got, want := c.NumTerms(), 1; got != want {
		t.Errorf("NumTerms() = %v, want %v", got, want)
	}
}

func TestConstraintFamily_ConstantRow(t *testing.T) {
	b := NewBuilder("constant")
	x, _ := b.NewVar("x", IntegerRange(0, 4))
	c := b.NewConstraintFamily("c").AddGreaterOrEqual(NewLinearExpr().Add(x).AddConstant(1), NewLinearExpr().Add(x).AddConstant(2))
	b.Minimize(x)
	m := mustModel(t, b)
	row := m.Row(c.Index())
	if len(row.Terms) != 0 || row.RHS != 1 || row.Op != GreaterOrEqual {
		t.Errorf("Row() = %+v, want no terms with >= 1", row)
	}
}

func TestConstraintFamily_Errors(t *testing.T) {
	testCases := []struct {
		name  string
		build func(b *Builder)
		want  error
	}{
		{
			name: "DuplicateFamily",
			build: func(b *Builder) {
				b.NewConstraintFamily("c")
				b.NewConstraintFamily("c")
			},
			want: ErrDuplicateFamily,
		},
		{
			name: "InvalidExpression",
			build: func(b *Builder) {
				x, _ := b.NewVar("x", BinaryDomain())
				b.NewConstraintFamily("c").AddEquality(NewLinearExpr().AddTerm(x, 1).AddConstant(1/zero()), NewConstant(1))
			},
			want: ErrInvalidCoefficient,
		},
		{
			name: "NonBinaryIndicator",
			build: func(b *Builder) {
				x, _ := b.NewVar("x", IntegerRange(0, 1))
				q, _ := b.NewVar("q", IntegerRange(0, 5))
				m, _ := NewScalar(b, "M", 5)
				b.NewConstraintFamily("link").AddBigMLink(x, q, m)
			},
			want: ErrNotBinary,
		},
		{
			name: "NonPositiveBigM",
			build: func(b *Builder) {
				y, _ := b.NewVar("y", BinaryDomain())
				q, _ := b.NewVar("q", IntegerRange(0, 5))
				m, _ := NewScalar(b, "M", 0)
				b.NewConstraintFamily("link").AddBigMLink(y, q, m)
			},
			want: ErrInvalidCoefficient,
		},
		{
			name: "DisjunctiveNonBinary",
			build: func(b *Builder) {
				s, _ := b.NewVar("s", IntegerRange(0, 10))
				m, _ := NewScalar(b, "M", 10)
				task := Task{Start: s, End: NewLinearExpr().Add(s).AddConstant(2)}
				b.NewConstraintFamily("disjunctive").AddDisjunctivePair(task, task, s, m)
			},
			want: ErrNotBinary,
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			b := NewBuilder(test.name)
			test.build(b)
			b.Minimize(NewConstant(0))
			if _, err := b.Model(); !errors.Is(err, test.want) {
				t.Errorf("Model() returned with unexpected error %v; want %v", err, test.want)
			}
		})
	}
}

func zero() float64 { return 0 }

func TestAddDisjunctivePair(t *testing.T) {
	b := NewBuilder("disjunctive")
	jobs, _ := NewIndexSet(b, "jobs", 1, 2)
	s, _ := NewVarFamily1(b, "s", jobs, IntegerRange(0, 20))
	y, _ := NewVarFamily2Over(b, "y", DistinctPairs(jobs), BinaryDomain())
	bigM, _ := NewScalar(b, "big_m", 20)
	p := map[int]float64{1: 4, 2: 3}
	task := func(j int) Task {
		return Task{Start: s.At(j), End: NewLinearExpr().Add(s.At(j)).AddConstant(p[j])}
	}
	precedes, follows := b.NewConstraintFamily("disjunctive").AddDisjunctivePair(task(1), task(2), y.At(1, 2), bigM, 1, 2)
	b.Minimize(NewConstant(0))
	m := mustModel(t, b)

	testCases := []struct {
		c    Constraint
		want Row
	}{
		{
			// s2 >= s1 + 4 - 20 + 20 y12  <=>  s2 - s1 - 20 y12 >= -16
			c: precedes,
			want: Row{
				Name:   "disjunctive[1,2,precedes]",
				Family: "disjunctive",
				Terms: []LinearTerm{
					{Var: s.At(2).Index(), Coeff: 1},
					{Var: s.At(1).Index(), Coeff: -1},
					{Var: y.At(1, 2).Index(), Coeff: -20},
				},
				Op:  GreaterOrEqual,
				RHS: -16,
			},
		},
		{
			// s1 >= s2 + 3 - 20 y12  <=>  s1 - s2 + 20 y12 >= 3
			c: follows,
			want: Row{
				Name:   "disjunctive[1,2,follows]",
				Family: "disjunctive",
				Terms: []LinearTerm{
					{Var: s.At(1).Index(), Coeff: 1},
					{Var: s.At(2).Index(), Coeff: -1},
					{Var: y.At(1, 2).Index(), Coeff: 20},
				},
				Op:  GreaterOrEqual,
				RHS: 3,
			},
		},
	}
	for _, test := range testCases {
		t.Run(test.want.Name, func(t *testing.T) {
			if diff := cmp.Diff(test.want, m.Row(test.c.Index())); diff != "" {
				t.Errorf("Row() returned with unexpected diff (-want+got):\n%s", diff)
			}
		})
	}
}

func TestAddBigMLink(t *testing.T) {
	b := NewBuilder("link")
	y, _ := b.NewVar("y", BinaryDomain())
	q, _ := b.NewVar("q", IntegerRange(0, 40))
	bigM, _ := NewScalar(b, "M", 40)
	c := b.NewConstraintFamily("open_link").AddBigMLink(y, q, bigM, 1, 3)
	b.Minimize(q)
	m := mustModel(t, b)
	want := Row{
		Name:   "open_link[1,3]",
		Family: "open_link",
		Terms:  []LinearTerm{{Var: y.Index(), Coeff: 40}, {Var: q.Index(), Coeff: -1}},
		Op:     GreaterOrEqual,
		RHS:    0,
	}
	if diff := cmp.Diff(want, m.Row(c.Index())); diff != "" {
		t.Errorf("Row() returned with unexpected diff (-want+got):\n%s", diff)
	}
}
