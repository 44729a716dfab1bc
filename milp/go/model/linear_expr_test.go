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
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLinearExpr(t *testing.T) {
	b := NewBuilder("expr")
	x, _ := b.NewVar("x", IntegerRange(0, 10))
	y, _ := b.NewVar("y", BinaryDomain())
	z, _ := b.NewVar("z", ContinuousRange(0, math.Inf(1)))

	testCases := []struct {
		name       string
		expr       func() *LinearExpr
		wantTerms  []LinearTerm
		wantOffset float64
		wantString string
	}{
		{
			name:       "Constant",
			expr:       func() *LinearExpr { return NewConstant(5) },
			wantOffset: 5,
			wantString: "5",
		},
		{
			name: "AddSum",
			expr: func() *LinearExpr {
				return NewLinearExpr().AddSum(x, y, z)
			},
			wantTerms:  []LinearTerm{{0, 1}, {1, 1}, {2, 1}},
			wantString: "x + y + z",
		},
		{
			name: "Accumulate",
			expr: func() *LinearExpr {
				return NewLinearExpr().AddTerm(x, 2).AddTerm(y, 3).AddTerm(x, 4)
			},
			wantTerms:  []LinearTerm{{0, 6}, {1, 3}},
			wantString: "6 x + 3 y",
		},
		{
			name: "Cancel",
			expr: func() *LinearExpr {
				return NewLinearExpr().AddTerm(x, 2).AddTerm(y, -1).AddTerm(x, -2).AddConstant(-3)
			},
			wantTerms:  []LinearTerm{{1, -1}},
			wantOffset: -3,
			wantString: "-y - 3",
		},
		{
			name: "NestedExpression",
			expr: func() *LinearExpr {
				inner := NewLinearExpr().AddTerm(x, 2).AddConstant(1)
				return NewLinearExpr().AddTerm(inner, -3).Add(z)
			},
			wantTerms:  []LinearTerm{{0, -6}, {2, 1}},
			wantOffset: -3,
			wantString: "-6 x + z - 3",
		},
		{
			name: "WeightedSum",
			expr: func() *LinearExpr {
				return NewLinearExpr().AddWeightedSum([]LinearArgument{x, y, NewConstant(2)}, []float64{1.5, -2, 3})
			},
			wantTerms:  []LinearTerm{{0, 1.5}, {1, -2}},
			wantOffset: 6,
			wantString: "1.5 x - 2 y + 6",
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			e := test.expr()
			if err := e.Err(); err != nil {
				t.Fatalf("Err() = %v, want nil", err)
			}
			var got []LinearTerm
			for _, term := range e.Terms() {
				got = append(got, LinearTerm{Var: term.Var.Index(), Coeff: term.Coeff})
			}
			if diff := cmp.Diff(test.wantTerms, got); diff != "" {
				t.Errorf("Terms() returned with unexpected diff (-want+got):\n%s", diff)
			}
			if e.Offset() != test.wantOffset {
				t.Errorf("Offset() = %v, want %v", e.Offset(), test.wantOffset)
			}
			if e.String() != test.wantString {
				t.Errorf("String() = %q, want %q", e.String(), test.wantString)
			}
		})
	}
}

func TestLinearExpr_IncrementalEqualsOnePass(t *testing.T) {
	b := NewBuilder("expr")
	s, _ := NewIndexSet(b, "s", 1, 2, 3, 4)
	x, _ := NewVarFamily1(b, "x", s, IntegerRange(0, 9))
	coeffs := []float64{3, -1, 0.5, 2}

	onePass := NewLinearExpr().AddWeightedSum([]LinearArgument{x.At(1), x.At(2), x.At(3), x.At(4)}, coeffs)
	incremental := NewLinearExpr()
	for i, v := range x.All() {
		incremental.AddTerm(v, coeffs[i]/2)
	}
	for i := len(coeffs) - 1; i >= 0; i-- {
		incremental.AddTerm(x.All()[i], coeffs[i]/2)
	}

	values := []float64{1, 2, 3, 4}
	if got, want := incremental.Evaluate(values), onePass.Evaluate(values); got != want {
		t.Errorf("incremental Evaluate() = %v, want %v", got, want)
	}
	for _, v := range x.All() {
		if got, want := incremental.Coefficient(v), onePass.Coefficient(v); got != want {
			t.Errorf("Coefficient(%v) = %v, want %v", v, got, want)
		}
	}
}

func TestLinearExpr_Errors(t *testing.T) {
	b := NewBuilder("expr")
	x, _ := b.NewVar("x", BinaryDomain())
	other := NewBuilder("other")
	y, _ := other.NewVar("y", BinaryDomain())

	testCases := []struct {
		name string
		expr *LinearExpr
		want error
	}{
		{"NaNCoefficient", NewLinearExpr().AddTerm(x, math.NaN()), ErrInvalidCoefficient},
		{"InfiniteConstant", NewLinearExpr().AddConstant(math.Inf(1)), ErrInvalidCoefficient},
		{"MixedModels", NewLinearExpr().AddSum(x, y), ErrMixedModels},
		{"ZeroVar", NewLinearExpr().Add(Var{}), ErrKeyOutOfDomain},
		{"LengthMismatch", NewLinearExpr().AddWeightedSum([]LinearArgument{x}, []float64{1, 2}), ErrInvalidCoefficient},
		{"Propagated", NewLinearExpr().Add(NewLinearExpr().AddTerm(x, math.Inf(-1))), ErrInvalidCoefficient},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			if err := test.expr.Err(); !errors.Is(err, test.want) {
				t.Errorf("Err() = %v, want %v", err, test.want)
			}
		})
	}
}
