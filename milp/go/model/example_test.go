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

package model_test

import (
	"fmt"
	"time"

	log "github.com/golang/glog"
	"github.com/orlab/milp-formulations/milp/go/branchbound"
	"github.com/orlab/milp-formulations/milp/go/model"
)

func Example() {
	b := model.NewBuilder("example")

	x, err := b.NewVar("x", model.IntegerRange(0, 10))
	if err != nil {
		log.Fatalf("NewVar() returned with error %v", err)
	}
	y, err := b.NewVar("y", model.IntegerRange(0, 10))
	if err != nil {
		log.Fatalf("NewVar() returned with error %v", err)
	}

	c := b.NewConstraintFamily("c")
	c.AddGreaterOrEqual(model.NewLinearExpr().AddTerm(x, -2).AddTerm(y, 2), model.NewConstant(1))
	c.AddLessOrEqual(model.NewLinearExpr().AddTerm(x, -8).AddTerm(y, 10), model.NewConstant(13))
	b.Minimize(model.NewLinearExpr().AddTerm(x, -1).AddTerm(y, -1))

	m, err := b.Model()
	if err != nil {
		log.Fatalf("Building model returned with error %v", err)
	}
	sol, err := model.Solve(m, branchbound.New(), model.Parameters{TimeLimit: time.Minute})
	if err != nil {
		log.Fatalf("Solve() returned with error %v", err)
	}
	if !sol.IsOptimal() {
		log.Fatalf("Solve() returned with status %v", sol.Status())
	}

	obj, _ := sol.ObjectiveValue()
	xv, _ := sol.IntValue(x)
	yv, _ := sol.IntValue(y)
	fmt.Println("Objective:", obj)
	fmt.Println("x:", xv)
	fmt.Println("y:", yv)
	// Output:
	// Objective: -3
	// x: 1
	// y: 2
}
