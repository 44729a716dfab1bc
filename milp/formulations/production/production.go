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

// Package production plans shifts along a line of stages. Each stage feeds the next one,
// so the work in progress between consecutive stages is kept inside fixed ratios, and the
// last stage must reach the total demand over the horizon.
package production

import (
	"fmt"
	"math"

	"github.com/orlab/milp-formulations/milp/go/model"
)

// StageID identifies a stage of the line.
type StageID int

// PeriodID identifies a period of the horizon.
type PeriodID int

// Slot is a (stage, period) pair.
type Slot = model.Pair[StageID, PeriodID]

// Config is the input of the formulation.
type Config struct {
	// Stages are listed in line order; the last one delivers the output.
	Stages   []StageID
	Periods  []PeriodID
	Capacity map[StageID]float64
	// TotalDemand is the output the last stage must reach over all periods.
	TotalDemand float64
	// ShiftLimit is the largest number of shifts of a stage in one period.
	ShiftLimit int64
}

// Formulation is a built production plan model.
type Formulation struct {
	cfg   Config
	model *model.Model
	y     model.VarFamily2[StageID, PeriodID]
	x     model.VarFamily2[StageID, PeriodID]
	q     model.VarFamily2[StageID, PeriodID]
}

// Build declares the model for `cfg`.
func Build(cfg Config) (*Formulation, error) {
	b := model.NewBuilder("production_plan")
	stages, err := model.NewIndexSet(b, "stages", cfg.Stages...)
	if err != nil {
		return nil, err
	}
	periods, err := model.NewIndexSet(b, "periods", cfg.Periods...)
	if err != nil {
		return nil, err
	}
	capacity, err := model.NewParam1(b, "capacity", stages, cfg.Capacity)
	if err != nil {
		return nil, err
	}
	demand, err := model.NewScalar(b, "total_demand", cfg.TotalDemand)
	if err != nil {
		return nil, err
	}
	shiftLimit, err := model.NewScalar(b, "shift_limit", float64(cfg.ShiftLimit))
	if err != nil {
		return nil, err
	}

	slots := model.Pairs(stages, periods)
	f := &Formulation{cfg: cfg}
	if f.y, err = model.NewVarFamily2Over(b, "y", slots, model.BinaryDomain()); err != nil {
		return nil, err
	}
	if f.x, err = model.NewVarFamily2Over(b, "x", slots, model.NonNegativeInteger(cfg.ShiftLimit)); err != nil {
		return nil, err
	}
	f.q, err = model.NewVarFamily2Func(b, "q", slots, func(k Slot) model.Domain {
		return model.NonNegativeInteger(int64(math.Floor(capacity.At(k.First) * float64(cfg.ShiftLimit))))
	})
	if err != nil {
		return nil, err
	}

	shifts := model.NewLinearExpr()
	for _, k := range slots {
		shifts.Add(f.x.At(k.First, k.Second))
	}
	b.MinimizeParts(model.ObjectivePart{Name: "shifts", Weight: 1, Expr: shifts})

	open := b.NewConstraintFamily("shift_open")
	for _, k := range slots {
		open.AddBigMLink(f.y.At(k.First, k.Second), f.x.At(k.First, k.Second), shiftLimit, k.First, k.Second)
	}
	line := stages.Keys()
	upper := b.NewConstraintFamily("wip_upper")
	lower := b.NewConstraintFamily("wip_lower")
	for s := 0; s+1 < len(line); s++ {
		p, next := line[s], line[s+1]
		for _, t := range periods.Keys() {
			// The output of the next stage grows by at most twice the feeding stage output.
			grow := model.NewLinearExpr().Add(f.q.At(next, t)).AddTerm(f.q.At(p, t), -1)
			upper.AddLessOrEqual(grow, model.NewLinearExpr().AddTerm(f.q.At(p, t), 2), p, t)
			lower.AddGreaterOrEqual(f.q.At(next, t), model.NewLinearExpr().AddTerm(f.q.At(p, t), 1.5), p, t)
		}
	}
	limit := b.NewConstraintFamily("capacity")
	for _, k := range slots {
		worked := model.NewLinearExpr().AddTerm(f.x.At(k.First, k.Second), capacity.At(k.First))
		limit.AddGreaterOrEqual(worked, f.q.At(k.First, k.Second), k.First, k.Second)
	}
	if len(line) > 0 {
		last := line[len(line)-1]
		output := model.NewLinearExpr()
		for _, t := range periods.Keys() {
			output.Add(f.q.At(last, t))
		}
		b.NewConstraintFamily("total_output").AddGreaterOrEqual(output, model.NewConstant(demand.Value()))
	}

	if f.model, err = b.Model(); err != nil {
		return nil, fmt.Errorf("building production plan: %w", err)
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

// Run is a stage worked in a period.
type Run struct {
	Stage    StageID
	Period   PeriodID
	Shifts   int64
	Quantity int64
}

// ShiftPlan is the decoded solution.
type ShiftPlan struct {
	Status    model.Status
	RawStatus string
	HasValues bool
	// The fields below are set only when HasValues is true.
	Shifts int64
	// Runs are ordered by stage, then period.
	Runs   []Run
	Output int64
}

// Decode reads the shift plan from `sol`.
func (f *Formulation) Decode(sol *model.Solution) (*ShiftPlan, error) {
	sp := &ShiftPlan{Status: sol.Status(), RawStatus: sol.RawStatus()}
	if !sol.HasValues() {
		return sp, nil
	}
	total, err := sol.ObjectiveValue()
	if err != nil {
		return nil, err
	}
	sp.HasValues = true
	sp.Shifts = int64(math.Round(total))
	last := StageID(0)
	if n := len(f.cfg.Stages); n > 0 {
		last = f.cfg.Stages[n-1]
	}
	for _, k := range f.x.Keys() {
		r := Run{Stage: k.First, Period: k.Second}
		if r.Shifts, err = sol.IntValue(f.x.At(k.First, k.Second)); err != nil {
			return nil, err
		}
		if r.Quantity, err = sol.IntValue(f.q.At(k.First, k.Second)); err != nil {
			return nil, err
		}
		if k.First == last {
			sp.Output += r.Quantity
		}
		if r.Shifts > 0 {
			sp.Runs = append(sp.Runs, r)
		}
	}
	return sp, nil
}

// Facts renders the plan as one sentence per run.
func (sp *ShiftPlan) Facts() []string {
	if !sp.HasValues {
		return []string{fmt.Sprintf("status %v (%s): no plan", sp.Status, sp.RawStatus)}
	}
	facts := []string{fmt.Sprintf("status %v: %d shifts for an output of %d", sp.Status, sp.Shifts, sp.Output)}
	for _, r := range sp.Runs {
		facts = append(facts, fmt.Sprintf("stage %d is open in period %d for %d shifts, with quantity %d", r.Stage, r.Period, r.Shifts, r.Quantity))
	}
	return facts
}
