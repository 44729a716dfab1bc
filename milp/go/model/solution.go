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
	"fmt"
	"math"
	"strconv"
	"time"
)

// Status is the decoded outcome of a solve.
type Status int

const (
	// Pending is the status of a solution that was never decoded.
	Pending Status = iota
	// Optimal means every variable has a value and the objective is proven optimal.
	Optimal
	// Infeasible means the model has no feasible point.
	Infeasible
	// Unbounded means the objective can decrease without bound.
	Unbounded
	// TimeLimited means the time limit was reached. Values are available only when the
	// solver had found an incumbent.
	TimeLimited
	// SolverError means the solver stopped for any other reason; see RawStatus.
	SolverError
)

func (s Status) String() string {
	switch s {
	case Pending:
		return "PENDING"
	case Optimal:
		return "OPTIMAL"
	case Infeasible:
		return "INFEASIBLE"
	case Unbounded:
		return "UNBOUNDED"
	case TimeLimited:
		return "TIME_LIMITED"
	case SolverError:
		return "SOLVER_ERROR"
	}
	return "Status(" + strconv.Itoa(int(s)) + ")"
}

// Solution is the read-only result of a solve. Values of variables and expressions can
// only be read from a Solution that has values; otherwise reads fail with
// ErrVariableNotSolved.
type Solution struct {
	model     *Model
	status    Status
	rawStatus string
	values    []float64
	objective float64
	parts     map[string]float64
	nodes     int64
	wallTime  time.Duration
}

// Decode turns a solver response into a Solution. Integral variables are rounded to the
// nearest integer and the objective is recomputed from the values. Decode fails only on a
// malformed response, such as an optimal response without values.
func Decode(m *Model, resp *Response) (*Solution, error) {
	if resp == nil {
		return nil, errors.New("nil solver response")
	}
	sol := &Solution{model: m, rawStatus: resp.RawStatus, nodes: resp.Nodes, wallTime: resp.WallTime}
	keepValues := false
	switch resp.Termination {
	case TerminationOptimal:
		sol.status = Optimal
		if len(resp.Values) != len(m.vars) {
			return nil, fmt.Errorf("optimal response for model %q has %d values, want %d", m.name, len(resp.Values), len(m.vars))
		}
		keepValues = true
	case TerminationInfeasible:
		sol.status = Infeasible
	case TerminationUnbounded:
		sol.status = Unbounded
	case TerminationTimeLimit:
		sol.status = TimeLimited
		switch len(resp.Values) {
		case 0:
		case len(m.vars):
			keepValues = true
		default:
			return nil, fmt.Errorf("time-limited response for model %q has %d values, want 0 or %d", m.name, len(resp.Values), len(m.vars))
		}
	default:
		sol.status = SolverError
	}
	if !keepValues {
		return sol, nil
	}
	sol.values = make([]float64, len(resp.Values))
	for i, v := range resp.Values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("value of %s is %v: %w", m.vars[i].name, v, ErrInvalidCoefficient)
		}
		if m.vars[i].domain.IsIntegral() {
			v = math.Round(v)
		}
		sol.values[i] = v
	}
	sol.objective = m.objective.expr.evaluate(sol.values)
	sol.parts = make(map[string]float64, len(m.objective.parts))
	for _, p := range m.objective.parts {
		sol.parts[p.name] = p.weight * p.expr.evaluate(sol.values)
	}
	return sol, nil
}

// Status returns the decoded status.
func (s *Solution) Status() Status {
	return s.status
}

// RawStatus returns the status code reported by the solver adapter.
func (s *Solution) RawStatus() string {
	return s.rawStatus
}

// HasValues returns true if variable values are available.
func (s *Solution) HasValues() bool {
	return s.values != nil
}

// IsOptimal returns true if the solution is proven optimal.
func (s *Solution) IsOptimal() bool {
	return s.status == Optimal
}

// Nodes returns the number of search nodes reported by the adapter.
func (s *Solution) Nodes() int64 {
	return s.nodes
}

// WallTime returns the duration of the solve.
func (s *Solution) WallTime() time.Duration {
	return s.wallTime
}

// Model returns the solved model.
func (s *Solution) Model() *Model {
	return s.model
}

func (s *Solution) checkValues() error {
	if s.values == nil {
		return fmt.Errorf("model %q has status %v: %w", s.model.name, s.status, ErrVariableNotSolved)
	}
	return nil
}

// Value returns the value of `v`.
func (s *Solution) Value(v Var) (float64, error) {
	if err := s.checkValues(); err != nil {
		return 0, err
	}
	if !s.model.Belongs(v) {
		return 0, fmt.Errorf("variable %q: %w", v.Name(), ErrMixedModels)
	}
	return s.values[v.ind], nil
}

// BoolValue returns true if the value of `v` is above one half.
func (s *Solution) BoolValue(v Var) (bool, error) {
	x, err := s.Value(v)
	if err != nil {
		return false, err
	}
	return x > 0.5, nil
}

// IntValue returns the value of `v` rounded to the nearest integer.
func (s *Solution) IntValue(v Var) (int64, error) {
	x, err := s.Value(v)
	if err != nil {
		return 0, err
	}
	return int64(math.Round(x)), nil
}

// Evaluate returns the value of the linear argument `la` for the solution values.
func (s *Solution) Evaluate(la LinearArgument) (float64, error) {
	if err := s.checkValues(); err != nil {
		return 0, err
	}
	e := NewLinearExpr().Add(la)
	if e.err != nil {
		return 0, e.err
	}
	if e.cpb != nil && e.cpb != s.model.cpb {
		return 0, fmt.Errorf("expression %v: %w", e, ErrMixedModels)
	}
	return e.evaluate(s.values), nil
}

// ObjectiveValue returns the objective, recomputed from the values.
func (s *Solution) ObjectiveValue() (float64, error) {
	if err := s.checkValues(); err != nil {
		return 0, err
	}
	return s.objective, nil
}

// ObjectivePart returns the weighted contribution of the objective part `name`. The
// contributions of all parts sum to ObjectiveValue.
func (s *Solution) ObjectivePart(name string) (float64, error) {
	if err := s.checkValues(); err != nil {
		return 0, err
	}
	v, ok := s.parts[name]
	if !ok {
		return 0, fmt.Errorf("objective part %q: %w", name, ErrKeyOutOfDomain)
	}
	return v, nil
}

// Activity returns the value of the left-hand side of constraint `c`.
func (s *Solution) Activity(c Constraint) (float64, error) {
	if err := s.checkValues(); err != nil {
		return 0, err
	}
	if !c.IsValid() || c.cpb != s.model.cpb {
		return 0, fmt.Errorf("constraint %q: %w", c.Name(), ErrMixedModels)
	}
	return s.activity(s.model.constraints[c.ind]), nil
}

func (s *Solution) activity(c constraintRecord) float64 {
	var lhs float64
	for _, t := range c.terms {
		lhs += t.Coeff * s.values[t.Var]
	}
	return lhs
}

// Violated returns the names of the constraints not satisfied within `tol` by the
// solution values, in registration order.
func (s *Solution) Violated(tol float64) ([]string, error) {
	if err := s.checkValues(); err != nil {
		return nil, err
	}
	var names []string
	for _, c := range s.model.constraints {
		if !c.op.Holds(s.activity(c), c.rhs, tol) {
			names = append(names, c.name)
		}
	}
	return names, nil
}
