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

// Package orderassign assigns orders to trucks. Every order is carried by exactly one
// truck or dropped against a penalty; a truck that carries an order pays its fixed cost.
package orderassign

import (
	"fmt"

	"github.com/orlab/milp-formulations/milp/go/model"
)

// OrderID identifies an order.
type OrderID int

// TruckID identifies a truck.
type TruckID int

// Lane is an (order, truck) pair, the key of per-assignment costs.
type Lane = model.Pair[OrderID, TruckID]

// Config is the input of the formulation.
type Config struct {
	Orders    []OrderID
	Trucks    []TruckID
	Demand    map[OrderID]float64
	Capacity  map[TruckID]float64
	FixedCost map[TruckID]float64
	Cost      map[Lane]float64
	Penalty   map[OrderID]float64
	// DisallowDrops forces every order onto a truck. The penalty is then never paid.
	DisallowDrops bool
}

// Formulation is a built order assignment model.
type Formulation struct {
	cfg   Config
	model *model.Model
	x     model.VarFamily2[OrderID, TruckID]
	y     model.VarFamily1[TruckID]
	z     model.VarFamily1[OrderID]
}

// Build declares the model for `cfg`. It fails if a parameter is missing for a declared
// key or if a key is not declared.
func Build(cfg Config) (*Formulation, error) {
	b := model.NewBuilder("order_assignment")
	orders, err := model.NewIndexSet(b, "orders", cfg.Orders...)
	if err != nil {
		return nil, err
	}
	trucks, err := model.NewIndexSet(b, "trucks", cfg.Trucks...)
	if err != nil {
		return nil, err
	}
	demand, err := model.NewParam1(b, "demand", orders, cfg.Demand)
	if err != nil {
		return nil, err
	}
	capacity, err := model.NewParam1(b, "capacity", trucks, cfg.Capacity)
	if err != nil {
		return nil, err
	}
	fixedCost, err := model.NewParam1(b, "fixed_cost", trucks, cfg.FixedCost)
	if err != nil {
		return nil, err
	}
	cost, err := model.NewParam2(b, "cost", orders, trucks, cfg.Cost)
	if err != nil {
		return nil, err
	}
	penalty, err := model.NewParam1(b, "penalty", orders, cfg.Penalty)
	if err != nil {
		return nil, err
	}
	// Linking a carried order to its truck needs M = 1 since x is binary.
	one, err := model.NewScalar(b, "truck_used_m", 1)
	if err != nil {
		return nil, err
	}

	f := &Formulation{cfg: cfg}
	if f.x, err = model.NewVarFamily2(b, "x", orders, trucks, model.BinaryDomain()); err != nil {
		return nil, err
	}
	if f.y, err = model.NewVarFamily1(b, "y", trucks, model.BinaryDomain()); err != nil {
		return nil, err
	}
	if f.z, err = model.NewVarFamily1(b, "z", orders, model.BinaryDomain()); err != nil {
		return nil, err
	}

	fixed := model.NewLinearExpr()
	for _, h := range trucks.Keys() {
		fixed.AddTerm(f.y.At(h), fixedCost.At(h))
	}
	transport := model.NewLinearExpr()
	for _, h := range trucks.Keys() {
		for _, i := range orders.Keys() {
			transport.AddTerm(f.x.At(i, h), cost.At(i, h))
		}
	}
	dropped := model.NewLinearExpr()
	for _, i := range orders.Keys() {
		dropped.AddTerm(f.z.At(i), penalty.At(i))
	}
	b.MinimizeParts(
		model.ObjectivePart{Name: "fixed_cost", Weight: 1, Expr: fixed},
		model.ObjectivePart{Name: "transport", Weight: 1, Expr: transport},
		model.ObjectivePart{Name: "penalty", Weight: 1, Expr: dropped},
	)

	assign := b.NewConstraintFamily("order_assign")
	for _, i := range orders.Keys() {
		lhs := model.NewLinearExpr()
		for _, h := range trucks.Keys() {
			lhs.Add(f.x.At(i, h))
		}
		assign.AddEquality(lhs.Add(f.z.At(i)), model.NewConstant(1), i)
	}
	truckCapacity := b.NewConstraintFamily("truck_capacity")
	for _, h := range trucks.Keys() {
		load := model.NewLinearExpr()
		for _, i := range orders.Keys() {
			load.AddTerm(f.x.At(i, h), demand.At(i))
		}
		truckCapacity.AddLessOrEqual(load, model.NewConstant(capacity.At(h)), h)
	}
	used := b.NewConstraintFamily("truck_used")
	for _, i := range orders.Keys() {
		for _, h := range trucks.Keys() {
			used.AddBigMLink(f.y.At(h), f.x.At(i, h), one, i, h)
		}
	}
	if cfg.DisallowDrops {
		noDrop := b.NewConstraintFamily("no_drop")
		for _, i := range orders.Keys() {
			noDrop.AddLessOrEqual(f.z.At(i), model.NewConstant(0), i)
		}
	}

	if f.model, err = b.Model(); err != nil {
		return nil, fmt.Errorf("building order assignment: %w", err)
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

// Assignment is an order carried by a truck.
type Assignment struct {
	Order OrderID
	Truck TruckID
}

// Plan is the decoded solution.
type Plan struct {
	Status    model.Status
	RawStatus string
	HasValues bool
	// The fields below are set only when HasValues is true.
	Objective   float64
	FixedCost   float64
	Transport   float64
	Penalty     float64
	Assignments []Assignment
	Loads       map[TruckID]float64
	UsedTrucks  []TruckID
	Dropped     []OrderID
}

// Decode reads the plan from `sol`. A solution without values decodes to a plan with a
// status only.
func (f *Formulation) Decode(sol *model.Solution) (*Plan, error) {
	p := &Plan{Status: sol.Status(), RawStatus: sol.RawStatus()}
	if !sol.HasValues() {
		return p, nil
	}
	var err error
	if p.Objective, err = sol.ObjectiveValue(); err != nil {
		return nil, err
	}
	p.HasValues = true
	if p.FixedCost, err = sol.ObjectivePart("fixed_cost"); err != nil {
		return nil, err
	}
	if p.Transport, err = sol.ObjectivePart("transport"); err != nil {
		return nil, err
	}
	if p.Penalty, err = sol.ObjectivePart("penalty"); err != nil {
		return nil, err
	}

	p.Loads = make(map[TruckID]float64)
	for _, i := range f.cfg.Orders {
		for _, h := range f.cfg.Trucks {
			on, err := sol.BoolValue(f.x.At(i, h))
			if err != nil {
				return nil, err
			}
			if on {
				p.Assignments = append(p.Assignments, Assignment{Order: i, Truck: h})
				p.Loads[h] += f.cfg.Demand[i]
			}
		}
		dropped, err := sol.BoolValue(f.z.At(i))
		if err != nil {
			return nil, err
		}
		if dropped {
			p.Dropped = append(p.Dropped, i)
		}
	}
	for _, h := range f.cfg.Trucks {
		on, err := sol.BoolValue(f.y.At(h))
		if err != nil {
			return nil, err
		}
		if on {
			p.UsedTrucks = append(p.UsedTrucks, h)
		}
	}
	return p, nil
}

// Facts renders the plan as one sentence per decision.
func (p *Plan) Facts() []string {
	if !p.HasValues {
		return []string{fmt.Sprintf("status %v (%s): no plan", p.Status, p.RawStatus)}
	}
	facts := []string{fmt.Sprintf("status %v: objective %g (fixed cost %g, transport %g, penalty %g)", p.Status, p.Objective, p.FixedCost, p.Transport, p.Penalty)}
	for _, a := range p.Assignments {
		facts = append(facts, fmt.Sprintf("truck %d carries order %d", a.Truck, a.Order))
	}
	for _, h := range p.UsedTrucks {
		facts = append(facts, fmt.Sprintf("truck %d is used with load %g", h, p.Loads[h]))
	}
	for _, i := range p.Dropped {
		facts = append(facts, fmt.Sprintf("order %d is dropped, so the penalty occurs", i))
	}
	return facts
}
