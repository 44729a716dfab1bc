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
	"flag"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// options holds the flags shared by every subcommand.
type options struct {
	configPath string
	timeLimit  time.Duration
	export     string
	format     string
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "milpsolve",
		Short:         "Build and solve mixed-integer linear programs",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags := root.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "configuration file (.yaml, .yml or .json)")
	flags.DurationVar(&opts.timeLimit, "time_limit", 0, "solve time limit; overrides solver.time_limit_seconds")
	flags.StringVar(&opts.export, "export", "", "print the model as \"lp\" or \"json\" instead of solving it")
	flags.StringVar(&opts.format, "format", "text", "print the result as \"text\" facts or as the \"json\" solution")
	flags.AddGoFlagSet(flag.CommandLine)

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if opts.configPath == "" {
			return fmt.Errorf("--config is required")
		}
		switch opts.export {
		case "", "lp", "json":
		default:
			return fmt.Errorf("unknown --export %q, want lp or json", opts.export)
		}
		switch opts.format {
		case "text", "json":
		default:
			return fmt.Errorf("unknown --format %q, want text or json", opts.format)
		}
		return nil
	}

	root.AddCommand(
		newOrdersCmd(opts),
		newScheduleCmd(opts),
		newWarehouseCmd(opts),
		newProductionCmd(opts),
	)
	return root
}
