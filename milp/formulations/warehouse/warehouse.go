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

// Package warehouse sources every location from exactly one warehouse. Shipments are
// limited by warehouse supply and only flow on the chosen warehouse-location links.
package warehouse

import (
	"fmt"
	"math"

	"github.com/orlab/milp-formulations/milp/go/model"
)

// WarehouseID identifies a warehouse.
type WarehouseID int

// LocationID identifies a demand location.
type LocationID int

// Link is a (warehouse, location) pair.
type Link = model.Pair[WarehouseID, LocationID]

// Config is the input of the formulation.
type Config struct {
	Warehouses []WarehouseID
	Locations  []LocationID
	Supply     map[WarehouseID]float64
	Demand     map[LocationID]float64
	Cost       map[Link]float64
	// BigM bounds the quantity on an open link. A value below the largest demand cuts off
	// every allocation that serves that location.
	BigM float64
}

// Formulation is a built warehouse allocation model.
type Formulation struct {
	cfg   Config
	model *model.Model
	x     model.VarFamily2[WarehouseID, LocationID]
	q     model.VarFamily2[WarehouseID, LocationID]
}

// Build declares the model for `cfg`.
func Build(cfg Config) (*Formulation, error) {
	b := model.NewBuilder("warehouse_allocation")
	warehouses, err := model.NewIndexSet(b, "warehouses", cfg.Warehouses...)
	if err != nil {
		return nil, err
	}
	locations, err := model.NewIndexSet(b, "locations", cfg.Locations...)
	if err != nil {
		return nil, err
	}
	supply, err := model.NewParam1(b, "supply", warehouses, cfg.Supply)
	if err != nil {
		return nil, err
	}
	demand, err := model.NewParam1(b, "demand", locations, cfg.Demand)
	if err != nil {
		return nil, err
	}
	cost, err := model.NewParam2(b, "cost", warehouses, locations, cfg.Cost)
	if err != nil {
		return nil, err
	}
	bigM, err := model.NewScalar(b, "big_m", cfg.BigM)
	if err != nil {
		return nil, err
	}

	links := model.Pairs(warehouses, locations)
	f := &Formulation{cfg: cfg}
	if f.x, err = model.NewVarFamily2Over(b, "x", links, model.BinaryDomain()); err != nil {
		return nil, err
	}
	f.q, err = model.NewVarFamily2Func(b, "q", links, func(k Link) model.Domain {
		return model.NonNegativeInteger(int64(math.Ceil(demand.At(k.Second))))
	})
	if err != nil {
		return nil, err
	}

	transport := model.NewLinearExpr()
	for _, k := range links {
		transport.AddTerm(f.q.At(k.First, k.Second), cost.At(k.First, k.Second))
	}
	b.MinimizeParts(model.ObjectivePart{Name: "transport", Weight: 1, Expr: transport})

	single := b.NewConstraintFamily("single_source")
	for _, j := range locations.Keys() {
		lhs := model.NewLinearExpr()
		for _, i := range warehouses.Keys() {
			lhs.Add(f.x.At(i, j))
		}
		single.AddEquality(lhs, model.NewConstant(1), j)
	}
	open := b.NewConstraintFamily("open_link")
	for _, k := range links {
		open.AddBigMLink(f.x.At(k.First, k.Second), f.q.At(k.First, k.Second), bigM, k.First, k.Second)
	}
	shipped := b.NewConstraintFamily("supply")
	for _, i := range warehouses.Keys() {
		lhs := model.NewLinearExpr()
		for _, j := range locations.Keys() {
			lhs.Add(f.q.At(i, j))
		}
		shipped.AddLessOrEqual(lhs, model.NewConstant(supply.At(i)), i)
	}
	received := b.NewConstraintFamily("demand")
	for _, j := range locations.Keys() {
		lhs := model.NewLinearExpr()
		for _, i := range warehouses.Keys() {
			lhs.Add(f.q.At(i, j))
		}
		received.AddEquality(lhs, model.NewConstant(demand.At(j)), j)
	}

	if f.model, err = b.Model(); err != nil {
		return nil, fmt.Errorf("building warehouse allocation: %w", err)
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

// Sourcing states that a location is served by a warehouse.
type Sourcing struct {
	Location  LocationID
	Warehouse WarehouseID
}

// Shipment is a positive quantity sent over a link.
type Shipment struct {
	Warehouse WarehouseID
	Location  LocationID
	Quantity  int64
}

// Allocation is the decoded solution.
type Allocation struct {
	Status    model.Status
	RawStatus string
	HasValues bool
	// The fields below are set only when HasValues is true.
	Transport float64
	// Sources are in location order and Shipments in warehouse order.
	Sources   []Sourcing
	Shipments []Shipment
}

// Decode reads the allocation from `sol`.
func (f *Formulation) Decode(sol *model.Solution) (*Allocation, error) {
	a := &Allocation{Status: sol.Status(), RawStatus: sol.RawStatus()}
	if !sol.HasValues() {
		return a, nil
	}
	var err error
	if a.Transport, err = sol.ObjectiveValue(); err != nil {
		return nil, err
	}
	a.HasValues = true
	for _, j := range f.cfg.Locations {
		for _, i := range f.cfg.Warehouses {
			open, err := sol.BoolValue(f.x.At(i, j))
			if err != nil {
				return nil, err
			}
			if open {
				a.Sources = append(a.Sources, Sourcing{Location: j, Warehouse: i})
			}
		}
	}
	for _, k := range f.q.Keys() {
		qty, err := sol.IntValue(f.q.At(k.First, k.Second))
		if err != nil {
			return nil, err
		}
		if qty > 0 {
			a.Shipments = append(a.Shipments, Shipment{Warehouse: k.First, Location: k.Second, Quantity: qty})
		}
	}
	return a, nil
}

// Facts renders the allocation as one sentence per location, then one per shipment.
func (a *Allocation) Facts() []string {
	if !a.HasValues {
		return []string{fmt.Sprintf("status %v (%s): no allocation", a.Status, a.RawStatus)}
	}
	facts := []string{fmt.Sprintf("status %v: transport cost %g", a.Status, a.Transport)}
	for _, s := range a.Sources {
		facts = append(facts, fmt.Sprintf("location %d is assigned to warehouse %d", s.Location, s.Warehouse))
	}
	for _, s := range a.Shipments {
		facts = append(facts, fmt.Sprintf("quantity %d is sent from warehouse %d to location %d", s.Quantity, s.Warehouse, s.Location))
	}
	return facts
}
