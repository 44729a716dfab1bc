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
	"encoding/json"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"google.golang.org/protobuf/testing/protocmp"
	"google.golang.org/protobuf/types/known/structpb"
)

func TestModel_Proto(t *testing.T) {
	b := NewBuilder("export")
	z, _ := b.NewVar("z", ContinuousRange(0, math.Inf(1)))
	b.NewConstraintFamily("cap").AddLessOrEqual(NewLinearExpr().AddTerm(z, 2), NewConstant(4))
	b.Minimize(NewLinearExpr().AddTerm(z, -1))
	m := mustModel(t, b)

	want, err := structpb.NewStruct(map[string]any{
		"name": "export",
		"variables": []any{
			map[string]any{"name": "z", "family": "z", "kind": "CONTINUOUS", "lb": 0.0, "ub": "inf"},
		},
		"constraints": []any{
			map[string]any{
				"name":   "cap[0]",
				"family": "cap",
				"op":     "<=",
				"rhs":    4.0,
				"terms":  []any{map[string]any{"var": "z", "coeff": 2.0}},
			},
		},
		"objective": map[string]any{
			"sense":  "MINIMIZE",
			"offset": 0.0,
			"terms":  []any{map[string]any{"var": "z", "coeff": -1.0}},
			"parts":  []any{map[string]any{"name": "objective", "weight": 1.0}},
		},
	})
	if err != nil {
		t.Fatalf("NewStruct() returned with unexpected err %v", err)
	}
	if diff := cmp.Diff(want, m.Proto(), protocmp.Transform()); diff != "" {
		t.Errorf("Proto() returned with unexpected diff (-want+got):\n%s", diff)
	}

	data, err := m.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() returned with unexpected err %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("json.Unmarshal() returned with unexpected err %v", err)
	}
	if got := decoded["name"]; got != "export" {
		t.Errorf("decoded name = %v, want export", got)
	}
}

func TestSolution_Proto(t *testing.T) {
	m, _, _, _ := smallModel(t)
	sol, err := Decode(m, &Response{Termination: TerminationOptimal, RawStatus: "OPTIMAL", Values: []float64{3, 0}, Nodes: 4})
	if err != nil {
		t.Fatalf("Decode() returned with unexpected err %v", err)
	}
	want, err := structpb.NewStruct(map[string]any{
		"model":      "small",
		"status":     "OPTIMAL",
		"raw_status": "OPTIMAL",
		"nodes":      4.0,
		"wall_time":  0.0,
		"objective":  7.0,
		"parts":      map[string]any{"fixed": 0.0, "flow": 7.0},
		"values":     map[string]any{"x": 3.0, "y": 0.0},
	})
	if err != nil {
		t.Fatalf("NewStruct() returned with unexpected err %v", err)
	}
	if diff := cmp.Diff(want, sol.Proto(), protocmp.Transform()); diff != "" {
		t.Errorf("Proto() returned with unexpected diff (-want+got):\n%s", diff)
	}
}

func TestExportModelAsLpFormat(t *testing.T) {
	m, _, _, _ := smallModel(t)
	want := `\ Model small
\ Objective offset 1
Minimize
 obj: 5 y + 2 x
Subject To
 cover(0): x + 4 y >= 3
Bounds
 0 <= x <= 10
General
 x
Binary
 y
End
`
	if diff := cmp.Diff(want, ExportModelAsLpFormat(m)); diff != "" {
		t.Errorf("ExportModelAsLpFormat() returned with unexpected diff (-want+got):\n%s", diff)
	}
}
