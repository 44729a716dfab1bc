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

// Package branchbound is a reference model.Solver: LP-based depth-first branch and bound
// over gonum's simplex method.
//
// It is meant for small models such as tests and examples. Every node solves a dense LP
// from scratch, so large models are better served by an adapter to an industrial solver
// behind the same interface.
package branchbound

import (
	"math"
	"time"

	log "github.com/golang/glog"
	"github.com/orlab/milp-formulations/milp/go/model"
)

// Raw status codes reported in model.Response.RawStatus.
const (
	StatusOptimal    = "OPTIMAL"
	StatusInfeasible = "INFEASIBLE"
	StatusUnbounded  = "UNBOUNDED"
	StatusTimeLimit  = "TIME_LIMIT"
	StatusLPError    = "LP_ERROR"
)

// DefaultLPTolerance is the simplex tolerance used when Solver.LPTolerance is zero.
const DefaultLPTolerance = 1e-9

// Solver implements model.Solver.
type Solver struct {
	// LPTolerance is passed to the simplex method.
	LPTolerance float64
}

// New returns a Solver with default settings.
func New() *Solver {
	return &Solver{}
}

type node struct {
	lb    []float64
	ub    []float64
	depth int
}

func (nd node) withBound(j int, lb, ub float64) node {
	child := node{
		lb:    make([]float64, len(nd.lb)),
		ub:    make([]float64, len(nd.ub)),
		depth: nd.depth + 1,
	}
	copy(child.lb, nd.lb)
	copy(child.ub, nd.ub)
	child.lb[j] = lb
	child.ub[j] = ub
	return child
}

type search struct {
	pr       *problem
	intTol   float64
	lpTol    float64
	deadline time.Time

	nodes     int64
	incumbent []float64
	incObj    float64
}

// Solve runs branch and bound on `m`. Outcomes of the search, including LP failures, are
// reported in the response; the error is always nil.
func (s *Solver) Solve(m *model.Model, p model.Parameters) (*model.Response, error) {
	start := time.Now()
	se := &search{
		pr:     newProblem(m),
		intTol: p.Tolerance(),
		lpTol:  s.LPTolerance,
		incObj: math.Inf(1),
	}
	if se.lpTol == 0 {
		se.lpTol = DefaultLPTolerance
	}
	if p.TimeLimit > 0 {
		se.deadline = start.Add(p.TimeLimit)
	}
	resp := se.run()
	resp.Nodes = se.nodes
	resp.WallTime = time.Since(start)
	log.Infof("branchbound: model %q %s after %d nodes in %v", m.Name(), resp.RawStatus, resp.Nodes, resp.WallTime)
	return resp, nil
}

func (se *search) timedOut() bool {
	return !se.deadline.IsZero() && time.Now().After(se.deadline)
}

func (se *search) run() *model.Response {
	stack := []node{{lb: se.pr.lb, ub: se.pr.ub}}
	for len(stack) > 0 {
		if se.timedOut() {
			resp := &model.Response{Termination: model.TerminationTimeLimit, RawStatus: StatusTimeLimit}
			if se.incumbent != nil {
				resp.Values = se.incumbent
			}
			return resp
		}
		nd := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		se.nodes++

		r := se.pr.relax(nd.lb, nd.ub, se.lpTol)
		switch r.status {
		case relaxInfeasible:
			log.V(2).Infof("branchbound: node %d at depth %d infeasible", se.nodes, nd.depth)
			continue
		case relaxUnbounded:
			return &model.Response{Termination: model.TerminationUnbounded, RawStatus: StatusUnbounded}
		case relaxError:
			return &model.Response{Termination: model.TerminationError, RawStatus: StatusLPError + ": " + r.err.Error()}
		}
		if se.prune(r.bound) {
			log.V(2).Infof("branchbound: node %d at depth %d pruned with bound %g", se.nodes, nd.depth, r.bound)
			continue
		}

		j := se.branchVariable(r.x)
		if j < 0 {
			se.improve(r.x)
			continue
		}
		v := r.x[j]
		down := nd.withBound(j, nd.lb[j], math.Floor(v))
		up := nd.withBound(j, math.Ceil(v), nd.ub[j])
		// The child nearer to the relaxation value is explored first.
		if v-math.Floor(v) > 0.5 {
			stack = append(stack, down, up)
		} else {
			stack = append(stack, up, down)
		}
	}
	if se.incumbent == nil {
		return &model.Response{Termination: model.TerminationInfeasible, RawStatus: StatusInfeasible}
	}
	return &model.Response{Termination: model.TerminationOptimal, RawStatus: StatusOptimal, Values: se.incumbent}
}

// prune returns true if no solution under a node with LP bound `bound` can improve on the
// incumbent.
func (se *search) prune(bound float64) bool {
	if se.incumbent == nil {
		return false
	}
	if se.pr.intObject {
		return math.Ceil(bound-1e-6) >= se.incObj-1e-9
	}
	return bound >= se.incObj-1e-9*math.Max(1, math.Abs(se.incObj))
}

// branchVariable returns the integral variable whose value is the most fractional, or -1
// if all integral variables are within tolerance of an integer.
func (se *search) branchVariable(x []float64) int {
	best, bestScore := -1, se.intTol
	for j, v := range x {
		if !se.pr.integral[j] {
			continue
		}
		f := v - math.Floor(v)
		if score := math.Min(f, 1-f); score > bestScore {
			best, bestScore = j, score
		}
	}
	return best
}

func (se *search) improve(x []float64) {
	vals := make([]float64, len(x))
	for j, v := range x {
		if se.pr.integral[j] {
			v = math.Round(v)
		}
		vals[j] = v
	}
	obj := se.pr.objective(vals)
	if obj >= se.incObj {
		return
	}
	se.incumbent, se.incObj = vals, obj
	log.V(1).Infof("branchbound: incumbent %g at node %d", obj, se.nodes)
}
