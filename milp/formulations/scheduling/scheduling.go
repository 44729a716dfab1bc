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

// Package scheduling sequences jobs on a single machine to minimise the total weighted
// tardiness. The order of every pair of jobs is chosen by a binary variable through a
// big-M disjunctive pair.
package scheduling

import (
	"fmt"
	"math"
	"sort"

	"github.com/orlab/milp-formulations/milp/go/model"
)

// JobID identifies a job.
type JobID int

// Config is the input of the formulation.
type Config struct {
	Jobs       []JobID
	Processing map[JobID]float64
	Due        map[JobID]float64
	Weight     map[JobID]float64
	// BigM relaxes the disjunctive rows and bounds start, completion and tardiness times. It
	// must be at least the latest completion time of an optimal schedule; SafeBigM is such a
	// value.
	BigM float64
}

// SafeBigM returns the total processing time, the makespan of any schedule without idle
// time.
func (c Config) SafeBigM() float64 {
	var sum float64
	for _, j := range c.Jobs {
		sum += math.Abs(c.Processing[j])
	}
	return sum
}

// Formulation is a built scheduling model.
type Formulation struct {
	cfg   Config
	model *model.Model
	s     model.VarFamily1[JobID]
	c     model.VarFamily1[JobID]
	t     model.VarFamily1[JobID]
	y     model.VarFamily2[JobID, JobID]
}

// Build declares the model for `cfg`.
func Build(cfg Config) (*Formulation, error) {
	b := model.NewBuilder("single_machine_scheduling")
	jobs, err := model.NewIndexSet(b, "jobs", cfg.Jobs...)
	if err != nil {
		return nil, err
	}
	p, err := model.NewParam1(b, "processing", jobs, cfg.Processing)
	if err != nil {
		return nil, err
	}
	d, err := model.NewParam1(b, "due", jobs, cfg.Due)
	if err != nil {
		return nil, err
	}
	w, err := model.NewParam1(b, "weight", jobs, cfg.Weight)
	if err != nil {
		return nil, err
	}
	bigM, err := model.NewScalar(b, "big_m", cfg.BigM)
	if err != nil {
		return nil, err
	}

	// The horizon bounds integer variables, so it must fit in an int64.
	if cfg.BigM >= math.MaxInt64 {
		return nil, fmt.Errorf("building schedule: big_m %v exceeds the integer horizon: %w", cfg.BigM, model.ErrInvalidCoefficient)
	}
	horizon := model.NonNegativeInteger(int64(math.Floor(cfg.BigM)))
	f := &Formulation{cfg: cfg}
	if f.s, err = model.NewVarFamily1(b, "s", jobs, horizon); err != nil {
		return nil, err
	}
	if f.c, err = model.NewVarFamily1(b, "c", jobs, horizon); err != nil {
		return nil, err
	}
	if f.t, err = model.NewVarFamily1(b, "t", jobs, horizon); err != nil {
		return nil, err
	}
	if f.y, err = model.NewVarFamily2Over(b, "y", model.DistinctPairs(jobs), model.BinaryDomain()); err != nil {
		return nil, err
	}

	tardiness := model.NewLinearExpr()
	for _, j := range jobs.Keys() {
		tardiness.AddTerm(f.t.At(j), w.At(j))
	}
	b.MinimizeParts(model.ObjectivePart{Name: "weighted_tardiness", Weight: 1, Expr: tardiness})

	completion := b.NewConstraintFamily("completion")
	for _, j := range jobs.Keys() {
		completion.AddEquality(f.c.At(j), model.NewLinearExpr().Add(f.s.At(j)).AddConstant(p.At(j)), j)
	}
	late := b.NewConstraintFamily("tardiness")
	for _, j := range jobs.Keys() {
		late.AddGreaterOrEqual(f.t.At(j), model.NewLinearExpr().Add(f.c.At(j)).AddConstant(-d.At(j)), j)
	}
	disjunctive := b.NewConstraintFamily("disjunctive")
	for _, k := range model.DistinctPairs(jobs) {
		i, j := k.First, k.Second
		first := model.Task{Start: f.s.At(i), End: f.c.At(i)}
		second := model.Task{Start: f.s.At(j), End: f.c.At(j)}
		disjunctive.AddDisjunctivePair(first, second, f.y.At(i, j), bigM, i, j)
	}
	order := b.NewConstraintFamily("order")
	for _, k := range model.UnorderedPairs(jobs) {
		i, j := k.First, k.Second
		order.AddEquality(model.NewLinearExpr().AddSum(f.y.At(i, j), f.y.At(j, i)), model.NewConstant(1), i, j)
	}

	if f.model, err = b.Model(); err != nil {
		return nil, fmt.Errorf("building schedule: %w", err)
	}
	return f, nil
}

// Model returns the built model.
func (f *Formulation) Model() *model.Model {
	return f.model
}

// Solve solves the model with `s`.
func (f *Formulation) Solve(s model.Solver, p model.Parameters) (*model.Solution, error) {
	return model.Solve(f.model, s, p)
}

// ScheduledJob is the timing of one job.
type ScheduledJob struct {
	Job        JobID
	Start      int64
	Completion int64
	Tardiness  int64
}

// Precedence states that job Before precedes job After.
type Precedence struct {
	Before JobID
	After  JobID
}

// Schedule is the decoded solution.
type Schedule struct {
	Status    model.Status
	RawStatus string
	HasValues bool
	// The fields below are set only when HasValues is true.
	WeightedTardiness float64
	// Jobs are sorted by start time.
	Jobs        []ScheduledJob
	Precedences []Precedence
}

// Decode reads the schedule from `sol`.
func (f *Formulation) Decode(sol *model.Solution) (*Schedule, error) {
	sc := &Schedule{Status: sol.Status(), RawStatus: sol.RawStatus()}
	if !sol.HasValues() {
		return sc, nil
	}
	var err error
	if sc.WeightedTardiness, err = sol.ObjectiveValue(); err != nil {
		return nil, err
	}
	sc.HasValues = true
	for _, j := range f.cfg.Jobs {
		var sj ScheduledJob
		sj.Job = j
		if sj.Start, err = sol.IntValue(f.s.At(j)); err != nil {
			return nil, err
		}
		if sj.Completion, err = sol.IntValue(f.c.At(j)); err != nil {
			return nil, err
		}
		if sj.Tardiness, err = sol.IntValue(f.t.At(j)); err != nil {
			return nil, err
		}
		sc.Jobs = append(sc.Jobs, sj)
	}
	sort.SliceStable(sc.Jobs, func(a, b int) bool { return sc.Jobs[a].Start < sc.Jobs[b].Start })
	for _, k := range f.y.Keys() {
		before, err := sol.BoolValue(f.y.At(k.First, k.Second))
		if err != nil {
			return nil, err
		}
		if before {
			sc.Precedences = append(sc.Precedences, Precedence{Before: k.First, After: k.Second})
		}
	}
	return sc, nil
}

// Facts renders the schedule as one sentence per job, in start order.
func (sc *Schedule) Facts() []string {
	if !sc.HasValues {
		return []string{fmt.Sprintf("status %v (%s): no schedule", sc.Status, sc.RawStatus)}
	}
	facts := []string{fmt.Sprintf("status %v: weighted tardiness %g", sc.Status, sc.WeightedTardiness)}
	for _, j := range sc.Jobs {
		facts = append(facts, fmt.Sprintf("job %d starts at %d and completes at %d, tardiness %d", j.Job, j.Start, j.Completion, j.Tardiness))
	}
	return facts
}
