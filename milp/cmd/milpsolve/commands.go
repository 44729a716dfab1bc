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

package main

import (
	"fmt"

	log "github.com/golang/glog"
	"github.com/spf13/cobra"

	"github.com/orlab/milp-formulations/milp/config"
	"github.com/orlab/milp-formulations/milp/formulations/orderassign"
	"github.com/orlab/milp-formulations/milp/formulations/production"
	"github.com/orlab/milp-formulations/milp/formulations/scheduling"
	"github.com/orlab/milp-formulations/milp/formulations/warehouse"
	"github.com/orlab/milp-formulations/milp/go/model"
)

// problem is a built formulation.
type problem interface {
	Model() *model.Model
	Solve(s model.Solver, p model.Parameters) (*model.Solution, error)
}

// result is a decoded solution.
type result interface {
	Facts() []string
}

func loadConfig(opts *options, section string, present func(*config.Config) bool) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if !present(cfg) {
		return nil, fmt.Errorf("%s has no %s section", opts.configPath, section)
	}
	return cfg, nil
}

// run exports or solves `p` and prints the outcome.
func run(cmd *cobra.Command, opts *options, sc config.SolverConfig, p problem, decode func(*model.Solution) (result, error)) error {
	out := cmd.OutOrStdout()
	m := p.Model()
	switch opts.export {
	case "lp":
		fmt.Fprint(out, model.ExportModelAsLpFormat(m))
		return nil
	case "json":
		b, err := m.MarshalJSON()
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(b))
		return nil
	}

	params := sc.Parameters()
	if opts.timeLimit > 0 {
		params.TimeLimit = opts.timeLimit
	}
	log.V(1).Infof("solving %q: %d variables, %d constraints, time limit %v", m.Name(), m.NumVariables(), m.NumConstraints(), params.TimeLimit)
	sol, err := p.Solve(sc.Solver(), params)
	if err != nil {
		return err
	}
	log.Infof("%s: %v after %d nodes in %v", m.Name(), sol.Status(), sol.Nodes(), sol.WallTime())
	if opts.format == "json" {
		b, err := sol.MarshalJSON()
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(b))
		return nil
	}
	r, err := decode(sol)
	if err != nil {
		return err
	}
	for _, fact := range r.Facts() {
		fmt.Fprintln(out, fact)
	}
	return nil
}

func newOrdersCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "orders",
		Short: "Assign orders to trucks at least cost",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts, "orders", func(c *config.Config) bool { return c.Orders != nil })
			if err != nil {
				return err
			}
			f, err := orderassign.Build(cfg.Orders.Formulation())
			if err != nil {
				return err
			}
			return run(cmd, opts, cfg.Solver, f, func(sol *model.Solution) (result, error) {
				return f.Decode(sol)
			})
		},
	}
}

func newScheduleCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "schedule",
		Short: "Sequence jobs on one machine to minimise weighted tardiness",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts, "schedule", func(c *config.Config) bool { return c.Schedule != nil })
			if err != nil {
				return err
			}
			f, err := scheduling.Build(cfg.Schedule.Formulation())
			if err != nil {
				return err
			}
			return run(cmd, opts, cfg.Solver, f, func(sol *model.Solution) (result, error) {
				return f.Decode(sol)
			})
		},
	}
}

func newWarehouseCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "warehouse",
		Short: "Source every location from one warehouse",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts, "warehouse", func(c *config.Config) bool { return c.Warehouse != nil })
			if err != nil {
				return err
			}
			f, err := warehouse.Build(cfg.Warehouse.Formulation())
			if err != nil {
				return err
			}
			return run(cmd, opts, cfg.Solver, f, func(sol *model.Solution) (result, error) {
				return f.Decode(sol)
			})
		},
	}
}

func newProductionCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "production",
		Short: "Plan the shifts of a production line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts, "production", func(c *config.Config) bool { return c.Production != nil })
			if err != nil {
				return err
			}
			f, err := production.Build(cfg.Production.Formulation())
			if err != nil {
				return err
			}
			return run(cmd, opts, cfg.Solver, f, func(sol *model.Solution) (result, error) {
				return f.Decode(sol)
			})
		},
	}
}
