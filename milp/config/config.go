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

// Package config loads the input of the milpsolve command from YAML or JSON files, with
// overrides from MILP_ environment variables.
package config

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/orlab/milp-formulations/milp/go/branchbound"
	"github.com/orlab/milp-formulations/milp/go/model"
)

// ErrInvalidConfig is returned when a loaded configuration fails validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// EnvPrefix is the prefix of environment overrides. A double underscore separates nested
// keys, so MILP_SOLVER__TIME_LIMIT_SECONDS sets solver.time_limit_seconds.
const EnvPrefix = "MILP_"

// DefaultTimeLimitSeconds is the solve time limit used when none is configured.
const DefaultTimeLimitSeconds = 60

// Config is the content of a configuration file. Each formulation section is optional.
type Config struct {
	Solver     SolverConfig      `json:"solver"`
	Orders     *OrdersConfig     `json:"orders"`
	Schedule   *ScheduleConfig   `json:"schedule"`
	Warehouse  *WarehouseConfig  `json:"warehouse"`
	Production *ProductionConfig `json:"production"`
}

// SolverConfig holds the settings of the branch-and-bound solver.
type SolverConfig struct {
	// TimeLimitSeconds bounds the wall time of a solve. Zero means the default.
	TimeLimitSeconds float64 `json:"time_limit_seconds"`
	// IntegralityTolerance is the distance to an integer below which a value counts as
	// integral. Zero means model.DefaultIntegralityTolerance.
	IntegralityTolerance float64 `json:"integrality_tolerance"`
	// LPTolerance is the tolerance of the simplex method. Zero means
	// branchbound.DefaultLPTolerance.
	LPTolerance float64 `json:"lp_tolerance"`
}

// SetDefaults fills unset fields.
func (c *SolverConfig) SetDefaults() {
	if c.TimeLimitSeconds == 0 {
		c.TimeLimitSeconds = DefaultTimeLimitSeconds
	}
	if c.LPTolerance == 0 {
		c.LPTolerance = branchbound.DefaultLPTolerance
	}
}

// Validate checks the ranges of the settings.
func (c SolverConfig) Validate() error {
	if c.TimeLimitSeconds < 0 || math.IsNaN(c.TimeLimitSeconds) {
		return fmt.Errorf("solver.time_limit_seconds %v must not be negative: %w", c.TimeLimitSeconds, ErrInvalidConfig)
	}
	if c.LPTolerance < 0 || math.IsNaN(c.LPTolerance) {
		return fmt.Errorf("solver.lp_tolerance %v must not be negative: %w", c.LPTolerance, ErrInvalidConfig)
	}
	if err := c.Parameters().Validate(); err != nil {
		return fmt.Errorf("solver: %w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Parameters returns the solve parameters of the configuration.
func (c SolverConfig) Parameters() model.Parameters {
	return model.Parameters{
		TimeLimit:            time.Duration(c.TimeLimitSeconds * float64(time.Second)),
		IntegralityTolerance: c.IntegralityTolerance,
	}
}

// Solver returns a branch-and-bound solver with the configured LP tolerance.
func (c SolverConfig) Solver() *branchbound.Solver {
	s := branchbound.New()
	if c.LPTolerance > 0 {
		s.LPTolerance = c.LPTolerance
	}
	return s
}

// Load reads the configuration file at `path`, YAML or JSON by extension, then applies the
// environment overrides.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format %q: %w", ext, ErrInvalidConfig)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func envKey(s string) string {
	s = strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// SetDefaults fills unset fields of every section.
func (c *Config) SetDefaults() {
	c.Solver.SetDefaults()
	if c.Production != nil {
		c.Production.SetDefaults()
	}
}

// Validate checks every present section.
func (c Config) Validate() error {
	if err := c.Solver.Validate(); err != nil {
		return err
	}
	if c.Orders != nil {
		if err := c.Orders.Validate(); err != nil {
			return err
		}
	}
	if c.Schedule != nil {
		if err := c.Schedule.Validate(); err != nil {
			return err
		}
	}
	if c.Warehouse != nil {
		if err := c.Warehouse.Validate(); err != nil {
			return err
		}
	}
	if c.Production != nil {
		if err := c.Production.Validate(); err != nil {
			return err
		}
	}
	return nil
}
