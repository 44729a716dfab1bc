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
	"strconv"
	"time"

	log "github.com/golang/glog"
)

// Parameters are the options passed to a solver adapter.
type Parameters struct {
	// TimeLimit bounds the wall time of the solve. Zero means no limit.
	TimeLimit time.Duration
	// IntegralityTolerance is the distance to the nearest integer under which a value is
	// considered integral. Zero selects DefaultIntegralityTolerance.
	IntegralityTolerance float64
}

// DefaultIntegralityTolerance is used when Parameters.IntegralityTolerance is zero.
const DefaultIntegralityTolerance = 1e-6

// Validate returns ErrInvalidParameters for negative limits and for tolerances that are
// negative, NaN or at least 0.5.
func (p Parameters) Validate() error {
	if p.TimeLimit < 0 {
		return fmt.Errorf("time limit %v is negative: %w", p.TimeLimit, ErrInvalidParameters)
	}
	if !(p.IntegralityTolerance >= 0 && p.IntegralityTolerance < 0.5) {
		return fmt.Errorf("integrality tolerance %v not in [0,0.5): %w", p.IntegralityTolerance, ErrInvalidParameters)
	}
	return nil
}

// Tolerance returns the integrality tolerance, or DefaultIntegralityTolerance when unset.
func (p Parameters) Tolerance() float64 {
	if p.IntegralityTolerance == 0 {
		return DefaultIntegralityTolerance
	}
	return p.IntegralityTolerance
}

// Termination is the reason a solver adapter stopped.
type Termination int

const (
	// TerminationOptimal means the values are proven optimal.
	TerminationOptimal Termination = iota
	// TerminationInfeasible means the model has no feasible point.
	TerminationInfeasible
	// TerminationUnbounded means the objective can decrease without bound.
	TerminationUnbounded
	// TerminationTimeLimit means the time limit was reached. Values hold the incumbent, if
	// any.
	TerminationTimeLimit
	// TerminationError means the adapter failed for any other reason.
	TerminationError
)

func (t Termination) String() string {
	switch t {
	case TerminationOptimal:
		return "OPTIMAL"
	case TerminationInfeasible:
		return "INFEASIBLE"
	case TerminationUnbounded:
		return "UNBOUNDED"
	case TerminationTimeLimit:
		return "TIME_LIMIT"
	case TerminationError:
		return "ERROR"
	}
	return "Termination(" + strconv.Itoa(int(t)) + ")"
}

// Response is what a solver adapter returns.
type Response struct {
	Termination Termination
	// RawStatus is the adapter's own status code, kept for reporting.
	RawStatus string
	// Values holds one value per variable, indexed by VarIndex, or nil when the adapter
	// has no solution.
	Values []float64
	// Nodes is the number of search nodes explored, when the adapter counts them.
	Nodes int64
	// WallTime is the duration of the solve.
	WallTime time.Duration
}

// Solver is implemented by solver adapters. Solve must not modify the model.
type Solver interface {
	Solve(m *Model, p Parameters) (*Response, error)
}

// Solve validates `p`, runs `s` on `m` and decodes the response. The error is non-nil only
// for invalid parameters, an adapter failure or a malformed response; infeasibility and
// the other solver outcomes are reported through the Solution status.
func Solve(m *Model, s Solver, p Parameters) (*Solution, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	start := time.Now()
	resp, err := s.Solve(m, p)
	if err != nil {
		return nil, fmt.Errorf("solving model %q: %w", m.name, err)
	}
	if resp.WallTime == 0 {
		resp.WallTime = time.Since(start)
	}
	sol, err := Decode(m, resp)
	if err != nil {
		return nil, err
	}
	log.V(1).Infof("model %q: %v (%s) in %v", m.name, sol.Status(), sol.RawStatus(), resp.WallTime)
	return sol, nil
}
