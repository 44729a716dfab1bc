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

package config

import (
	"fmt"
	"math"

	"github.com/orlab/milp-formulations/milp/formulations/orderassign"
	"github.com/orlab/milp-formulations/milp/formulations/production"
	"github.com/orlab/milp-formulations/milp/formulations/scheduling"
	"github.com/orlab/milp-formulations/milp/formulations/warehouse"
	"github.com/orlab/milp-formulations/milp/go/model"
)

// OrderRecord is one order. Costs lists the cost of carrying the order on each truck, in
// the order of OrdersConfig.Trucks.
type OrderRecord struct {
	ID      int       `json:"id"`
	Demand  float64   `json:"demand"`
	Penalty float64   `json:"penalty"`
	Costs   []float64 `json:"costs"`
}

// TruckRecord is one truck.
type TruckRecord struct {
	ID        int     `json:"id"`
	Capacity  float64 `json:"capacity"`
	FixedCost float64 `json:"fixed_cost"`
}

// OrdersConfig is the order assignment section.
type OrdersConfig struct {
	Orders        []OrderRecord `json:"orders"`
	Trucks        []TruckRecord `json:"trucks"`
	DisallowDrops bool          `json:"disallow_drops"`
}

// Validate checks that every order has one cost per truck.
func (c OrdersConfig) Validate() error {
	for _, o := range c.Orders {
		if len(o.Costs) != len(c.Trucks) {
			return fmt.Errorf("orders: order %d has %d costs for %d trucks: %w", o.ID, len(o.Costs), len(c.Trucks), ErrInvalidConfig)
		}
	}
	return nil
}

// Formulation converts the section into the formulation input.
func (c OrdersConfig) Formulation() orderassign.Config {
	cfg := orderassign.Config{
		Demand:        map[orderassign.OrderID]float64{},
		Capacity:      map[orderassign.TruckID]float64{},
		FixedCost:     map[orderassign.TruckID]float64{},
		Cost:          map[orderassign.Lane]float64{},
		Penalty:       map[orderassign.OrderID]float64{},
		DisallowDrops: c.DisallowDrops,
	}
	for _, h := range c.Trucks {
		id := orderassign.TruckID(h.ID)
		cfg.Trucks = append(cfg.Trucks, id)
		cfg.Capacity[id] = h.Capacity
		cfg.FixedCost[id] = h.FixedCost
	}
	for _, o := range c.Orders {
		id := orderassign.OrderID(o.ID)
		cfg.Orders = append(cfg.Orders, id)
		cfg.Demand[id] = o.Demand
		cfg.Penalty[id] = o.Penalty
		for n, h := range cfg.Trucks {
			if n < len(o.Costs) {
				cfg.Cost[model.PairOf(id, h)] = o.Costs[n]
			}
		}
	}
	return cfg
}

// JobRecord is one job.
type JobRecord struct {
	ID         int     `json:"id"`
	Processing float64 `json:"processing"`
	Due        float64 `json:"due"`
	Weight     float64 `json:"weight"`
}

// ScheduleConfig is the single machine scheduling section.
type ScheduleConfig struct {
	Jobs []JobRecord `json:"jobs"`
	// BigM is the scheduling horizon. It must be set; scheduling.Config.SafeBigM offers the
	// total processing time.
	BigM float64 `json:"big_m"`
}

// Validate checks that the section has jobs and an explicit positive BigM.
func (c ScheduleConfig) Validate() error {
	if len(c.Jobs) == 0 {
		return fmt.Errorf("schedule: no jobs: %w", ErrInvalidConfig)
	}
	if !(c.BigM > 0) || math.IsInf(c.BigM, 0) {
		return fmt.Errorf("schedule: big_m %v must be positive and finite; SafeBigM, the total processing time, is %v: %w", c.BigM, c.Formulation().SafeBigM(), ErrInvalidConfig)
	}
	return nil
}

// Formulation converts the section into the formulation input.
func (c ScheduleConfig) Formulation() scheduling.Config {
	cfg := scheduling.Config{
		Processing: map[scheduling.JobID]float64{},
		Due:        map[scheduling.JobID]float64{},
		Weight:     map[scheduling.JobID]float64{},
		BigM:       c.BigM,
	}
	for _, j := range c.Jobs {
		id := scheduling.JobID(j.ID)
		cfg.Jobs = append(cfg.Jobs, id)
		cfg.Processing[id] = j.Processing
		cfg.Due[id] = j.Due
		cfg.Weight[id] = j.Weight
	}
	return cfg
}

// WarehouseRecord is one warehouse. Costs lists the unit cost to each location, in the
// order of WarehouseConfig.Locations.
type WarehouseRecord struct {
	ID     int       `json:"id"`
	Supply float64   `json:"supply"`
	Costs  []float64 `json:"costs"`
}

// LocationRecord is one demand location.
type LocationRecord struct {
	ID     int     `json:"id"`
	Demand float64 `json:"demand"`
}

// WarehouseConfig is the warehouse allocation section.
type WarehouseConfig struct {
	Warehouses []WarehouseRecord `json:"warehouses"`
	Locations  []LocationRecord  `json:"locations"`
	BigM       float64           `json:"big_m"`
}

// Validate checks that every warehouse has one cost per location and that BigM covers
// the largest demand.
func (c WarehouseConfig) Validate() error {
	for _, w := range c.Warehouses {
		if len(w.Costs) != len(c.Locations) {
			return fmt.Errorf("warehouse: warehouse %d has %d costs for %d locations: %w", w.ID, len(w.Costs), len(c.Locations), ErrInvalidConfig)
		}
	}
	for _, l := range c.Locations {
		if l.Demand > c.BigM {
			return fmt.Errorf("warehouse: big_m %v below the demand %v of location %d: %w", c.BigM, l.Demand, l.ID, ErrInvalidConfig)
		}
	}
	return nil
}

// Formulation converts the section into the formulation input.
func (c WarehouseConfig) Formulation() warehouse.Config {
	cfg := warehouse.Config{
		Supply: map[warehouse.WarehouseID]float64{},
		Demand: map[warehouse.LocationID]float64{},
		Cost:   map[warehouse.Link]float64{},
		BigM:   c.BigM,
	}
	for _, l := range c.Locations {
		id := warehouse.LocationID(l.ID)
		cfg.Locations = append(cfg.Locations, id)
		cfg.Demand[id] = l.Demand
	}
	for _, w := range c.Warehouses {
		id := warehouse.WarehouseID(w.ID)
		cfg.Warehouses = append(cfg.Warehouses, id)
		cfg.Supply[id] = w.Supply
		for n, j := range cfg.Locations {
			if n < len(w.Costs) {
				cfg.Cost[model.PairOf(id, j)] = w.Costs[n]
			}
		}
	}
	return cfg
}

// StageRecord is one stage of the line.
type StageRecord struct {
	ID       int     `json:"id"`
	Capacity float64 `json:"capacity"`
}

// ProductionConfig is the production plan section. Periods are numbered from 1.
type ProductionConfig struct {
	Stages      []StageRecord `json:"stages"`
	Periods     int           `json:"periods"`
	TotalDemand float64       `json:"total_demand"`
	ShiftLimit  int64         `json:"shift_limit"`
}

// SetDefaults sets one shift per period when ShiftLimit is unset.
func (c *ProductionConfig) SetDefaults() {
	if c.ShiftLimit == 0 {
		c.ShiftLimit = 1
	}
}

// Validate checks the horizon and the stages.
func (c ProductionConfig) Validate() error {
	if c.Periods <= 0 {
		return fmt.Errorf("production: periods %d must be positive: %w", c.Periods, ErrInvalidConfig)
	}
	if len(c.Stages) == 0 {
		return fmt.Errorf("production: no stages: %w", ErrInvalidConfig)
	}
	return nil
}

// Formulation converts the section into the formulation input.
func (c ProductionConfig) Formulation() production.Config {
	cfg := production.Config{
		Capacity:    map[production.StageID]float64{},
		TotalDemand: c.TotalDemand,
		ShiftLimit:  c.ShiftLimit,
	}
	for _, s := range c.Stages {
		id := production.StageID(s.ID)
		cfg.Stages = append(cfg.Stages, id)
		cfg.Capacity[id] = s.Capacity
	}
	for t := 1; t <= c.Periods; t++ {
		cfg.Periods = append(cfg.Periods, production.PeriodID(t))
	}
	return cfg
}
