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
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/orlab/milp-formulations/milp/formulations/orderassign"
	"github.com/orlab/milp-formulations/milp/formulations/production"
	"github.com/orlab/milp-formulations/milp/formulations/scheduling"
	"github.com/orlab/milp-formulations/milp/formulations/warehouse"
	"github.com/orlab/milp-formulations/milp/go/model"
)

func writeConfig(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_Orders(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "data", "orders.yaml"))
	if err != nil {
		t.Fatalf("Load() returned with unexpected err %v", err)
	}
	if got, want := cfg.Solver.Parameters().TimeLimit, 2*time.Minute; got != want {
		t.Errorf("TimeLimit = %v, want %v", got, want)
	}
	if cfg.Orders == nil {
		t.Fatalf("Orders section missing")
	}
	got := cfg.Orders.Formulation()
	if diff := cmp.Diff([]orderassign.TruckID{1, 2, 3, 4}, got.Trucks); diff != "" {
		t.Errorf("Trucks returned with unexpected diff (-want+got):\n%s", diff)
	}
	wantDemand := map[orderassign.OrderID]float64{1: 4, 2: 6, 3: 3, 4: 7, 5: 2, 6: 5, 7: 4, 8: 8}
	if diff := cmp.Diff(wantDemand, got.Demand); diff != "" {
		t.Errorf("Demand returned with unexpected diff (-want+got):\n%s", diff)
	}
	checks := []struct {
		name string
		got  float64
		want float64
	}{
		{"cost[4,3]", got.Cost[model.PairOf(orderassign.OrderID(4), orderassign.TruckID(3))], 36},
		{"cost[8,1]", got.Cost[model.PairOf(orderassign.OrderID(8), orderassign.TruckID(1))], 60},
		{"capacity[4]", got.Capacity[4], 8},
		{"fixed_cost[3]", got.FixedCost[3], 130},
		{"penalty[8]", got.Penalty[8], 150},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
	if got, want := len(got.Cost), 32; got != want {
		t.Errorf("len(Cost) = %v, want %v", got, want)
	}
	if _, err := orderassign.Build(got); err != nil {
		t.Errorf("orderassign.Build() returned with unexpected err %v", err)
	}
}

func TestLoad_Schedule(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "data", "schedule.yaml"))
	if err != nil {
		t.Fatalf("Load() returned with unexpected err %v", err)
	}
	got := cfg.Schedule.Formulation()
	want := scheduling.Config{
		Jobs:       []scheduling.JobID{1, 2, 3, 4, 5, 6},
		Processing: map[scheduling.JobID]float64{1: 4, 2: 3, 3: 6, 4: 2, 5: 5, 6: 3},
		Due:        map[scheduling.JobID]float64{1: 10, 2: 8, 3: 15, 4: 9, 5: 20, 6: 12},
		Weight:     map[scheduling.JobID]float64{1: 3, 2: 2, 3: 4, 4: 1, 5: 5, 6: 2},
		BigM:       23,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Formulation() returned with unexpected diff (-want+got):\n%s", diff)
	}
}

func TestLoad_Warehouse(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "data", "warehouse.yaml"))
	if err != nil {
		t.Fatalf("Load() returned with unexpected err %v", err)
	}
	got := cfg.Warehouse.Formulation()
	if got, want := got.BigM, 40.0; got != want {
		t.Errorf("BigM = %v, want %v", got, want)
	}
	if got, want := got.Cost[model.PairOf(warehouse.WarehouseID(2), warehouse.LocationID(4))], 2.0; got != want {
		t.Errorf("cost[2,4] = %v, want %v", got, want)
	}
	if diff := cmp.Diff(map[warehouse.WarehouseID]float64{1: 80, 2: 60, 3: 50}, got.Supply); diff != "" {
		t.Errorf("Supply returned with unexpected diff (-want+got):\n%s", diff)
	}
}

func TestLoad_ProductionJSON(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "data", "production.json"))
	if err != nil {
		t.Fatalf("Load() returned with unexpected err %v", err)
	}
	got := cfg.Production.Formulation()
	if got, want := len(got.Periods), 30; got != want {
		t.Errorf("len(Periods) = %v, want %v", got, want)
	}
	wantCapacity := map[production.StageID]float64{1: 10800, 2: 10400, 3: 5000, 4: 12000}
	if diff := cmp.Diff(wantCapacity, got.Capacity); diff != "" {
		t.Errorf("Capacity returned with unexpected diff (-want+got):\n%s", diff)
	}
	if got, want := got.TotalDemand, 200000.0; got != want {
		t.Errorf("TotalDemand = %v, want %v", got, want)
	}
	if cfg.Orders != nil || cfg.Schedule != nil || cfg.Warehouse != nil {
		t.Errorf("Load() set sections absent from the file: %+v", cfg)
	}
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, "config.yaml", `schedule:
  big_m: 6.5
  jobs:
    - {id: 1, processing: 4, due: 4, weight: 1}
    - {id: 2, processing: 2.5, due: 9, weight: 1}
production:
  periods: 2
  total_demand: 20
  stages:
    - {id: 1, capacity: 10}
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() returned with unexpected err %v", err)
	}
	want := SolverConfig{TimeLimitSeconds: DefaultTimeLimitSeconds, LPTolerance: 1e-9}
	if diff := cmp.Diff(want, cfg.Solver); diff != "" {
		t.Errorf("Solver returned with unexpected diff (-want+got):\n%s", diff)
	}
	if got, want := cfg.Schedule.Formulation().BigM, 6.5; got != want {
		t.Errorf("Schedule.BigM = %v, want %v", got, want)
	}
	if got, want := cfg.Production.ShiftLimit, int64(1); got != want {
		t.Errorf("Production.ShiftLimit = %v, want %v", got, want)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	path := writeConfig(t, "config.yaml", `solver:
  time_limit_seconds: 10
`)
	t.Setenv("MILP_SOLVER__TIME_LIMIT_SECONDS", "2.5")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() returned with unexpected err %v", err)
	}
	if got, want := cfg.Solver.Parameters().TimeLimit, 2500*time.Millisecond; got != want {
		t.Errorf("TimeLimit = %v, want %v", got, want)
	}
}

func TestLoad_Errors(t *testing.T) {
	testCases := []struct {
		name string
		file string
		data string
	}{
		{
			name: "UnsupportedFormat",
			file: "config.toml",
			data: "",
		},
		{
			name: "NegativeTimeLimit",
			file: "config.yaml",
			data: "solver:\n  time_limit_seconds: -1\n",
		},
		{
			name: "IntegralityToleranceTooLarge",
			file: "config.json",
			data: `{"solver": {"integrality_tolerance": 0.5}}`,
		},
		{
			name: "MissingBigM",
			file: "config.yaml",
			data: "schedule:\n  jobs:\n    - {id: 1, processing: 4, due: 4, weight: 1}\n",
		},
		{
			name: "NaNIntegralityTolerance",
			file: "config.yaml",
			data: "solver:\n  integrality_tolerance: .nan\n",
		},
		{
			name: "MissingTruckCost",
			file: "config.yaml",
			data: `orders:
  trucks:
    - {id: 1, capacity: 10, fixed_cost: 100}
    - {id: 2, capacity: 12, fixed_cost: 120}
  orders:
    - {id: 1, demand: 4, penalty: 80, costs: [30]}
`,
		},
		{
			name: "BigMBelowDemand",
			file: "config.yaml",
			data: `warehouse:
  big_m: 10
  locations:
    - {id: 1, demand: 30}
  warehouses:
    - {id: 1, supply: 80, costs: [4]}
`,
		},
		{
			name: "NoPeriods",
			file: "config.yaml",
			data: "production:\n  stages:\n    - {id: 1, capacity: 10}\n",
		},
	}
	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			path := writeConfig(t, test.file, test.data)
			if _, err := Load(path); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Load() returned with unexpected error %v; want ErrInvalidConfig", err)
			}
		})
	}
}

func TestLoad_MissingBigMNamesSafeBigM(t *testing.T) {
	path := writeConfig(t, "config.yaml", `schedule:
  jobs:
    - {id: 1, processing: 4, due: 4, weight: 1}
    - {id: 2, processing: 2.5, due: 9, weight: 1}
`)
	_, err := Load(path)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("Load() returned with unexpected error %v; want ErrInvalidConfig", err)
	}
	if want := "SafeBigM, the total processing time, is 6.5"; !strings.Contains(err.Error(), want) {
		t.Errorf("Load() error %q does not contain %q", err, want)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Errorf("Load() returned no error for a missing file")
	}
}
