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
	"math"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// numberValue encodes infinite bounds as the strings "inf" and "-inf", which JSON cannot
// represent as numbers.
func numberValue(v float64) *structpb.Value {
	switch {
	case math.IsInf(v, 1):
		return structpb.NewStringValue("inf")
	case math.IsInf(v, -1):
		return structpb.NewStringValue("-inf")
	}
	return structpb.NewNumberValue(v)
}

func object(fields map[string]*structpb.Value) *structpb.Value {
	return structpb.NewStructValue(&structpb.Struct{Fields: fields})
}

func (m *Model) termsValue(terms []LinearTerm) *structpb.Value {
	vs := make([]*structpb.Value, len(terms))
	for i, t := range terms {
		vs[i] = object(map[string]*structpb.Value{
			"var":   structpb.NewStringValue(m.vars[t.Var].name),
			"coeff": numberValue(t.Coeff),
		})
	}
	return structpb.NewListValue(&structpb.ListValue{Values: vs})
}

// Proto returns the model as a structpb.Struct with the fields `name`, `variables`,
// `constraints` and `objective`.
func (m *Model) Proto() *structpb.Struct {
	vars := make([]*structpb.Value, len(m.vars))
	for i, v := range m.vars {
		vars[i] = object(map[string]*structpb.Value{
			"name":   structpb.NewStringValue(v.name),
			"family": structpb.NewStringValue(v.family),
			"kind":   structpb.NewStringValue(v.domain.kind.String()),
			"lb":     numberValue(v.domain.lb),
			"ub":     numberValue(v.domain.ub),
		})
	}
	cons := make([]*structpb.Value, len(m.constraints))
	for i, c := range m.constraints {
		cons[i] = object(map[string]*structpb.Value{
			"name":   structpb.NewStringValue(c.name),
			"family": structpb.NewStringValue(c.family),
			"op":     structpb.NewStringValue(c.op.String()),
			"rhs":    numberValue(c.rhs),
			"terms":  m.termsValue(c.terms),
		})
	}
	parts := make([]*structpb.Value, len(m.objective.parts))
	for i, p := range m.objective.parts {
		parts[i] = object(map[string]*structpb.Value{
			"name":   structpb.NewStringValue(p.name),
			"weight": numberValue(p.weight),
		})
	}
	terms, offset := m.Objective()
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"name":        structpb.NewStringValue(m.name),
		"variables":   structpb.NewListValue(&structpb.ListValue{Values: vars}),
		"constraints": structpb.NewListValue(&structpb.ListValue{Values: cons}),
		"objective": object(map[string]*structpb.Value{
			"sense":  structpb.NewStringValue("MINIMIZE"),
			"offset": numberValue(offset),
			"terms":  m.termsValue(terms),
			"parts":  structpb.NewListValue(&structpb.ListValue{Values: parts}),
		}),
	}}
}

// MarshalJSON encodes Proto as JSON.
func (m *Model) MarshalJSON() ([]byte, error) {
	return protojson.Marshal(m.Proto())
}

// Proto returns the solution as a structpb.Struct. The fields `objective`, `parts` and
// `values` are present only when the solution has values.
func (s *Solution) Proto() *structpb.Struct {
	fields := map[string]*structpb.Value{
		"model":      structpb.NewStringValue(s.model.name),
		"status":     structpb.NewStringValue(s.status.String()),
		"raw_status": structpb.NewStringValue(s.rawStatus),
		"nodes":      structpb.NewNumberValue(float64(s.nodes)),
		"wall_time":  structpb.NewNumberValue(s.wallTime.Seconds()),
	}
	if s.values != nil {
		fields["objective"] = numberValue(s.objective)
		parts := make(map[string]*structpb.Value, len(s.parts))
		for name, v := range s.parts {
			parts[name] = numberValue(v)
		}
		fields["parts"] = object(parts)
		values := make(map[string]*structpb.Value, len(s.values))
		for i, v := range s.values {
			values[s.model.vars[i].name] = numberValue(v)
		}
		fields["values"] = object(values)
	}
	return &structpb.Struct{Fields: fields}
}

// MarshalJSON encodes Proto as JSON.
func (s *Solution) MarshalJSON() ([]byte, error) {
	return protojson.Marshal(s.Proto())
}
