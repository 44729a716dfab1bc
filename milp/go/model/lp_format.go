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
	"strconv"
	"strings"
)

var lpNameReplacer = strings.NewReplacer("[", "(", "]", ")", " ", "_", ":", "_")

func lpName(name string) string {
	return lpNameReplacer.Replace(name)
}

func lpNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func (m *Model) writeLpTerms(sb *strings.Builder, terms []LinearTerm) {
	for i, t := range terms {
		c := t.Coeff
		switch {
		case c < 0 && i == 0:
			sb.WriteString("-")
		case c < 0:
			sb.WriteString(" - ")
		case i > 0:
			sb.WriteString(" + ")
		}
		if a := math.Abs(c); a != 1 {
			sb.WriteString(lpNumber(a))
			sb.WriteString(" ")
		}
		sb.WriteString(lpName(m.vars[t.Var].name))
	}
}

// ExportModelAsLpFormat returns the model in the CPLEX LP text format. Brackets in names
// are written as parentheses. The objective offset and constraints without variables are
// written as comments.
func ExportModelAsLpFormat(m *Model) string {
	var sb strings.Builder
	sb.WriteString("\\ Model " + m.name + "\n")
	terms, offset := m.Objective()
	if offset != 0 {
		sb.WriteString("\\ Objective offset " + lpNumber(offset) + "\n")
	}
	sb.WriteString("Minimize\n obj:")
	if len(terms) > 0 {
		sb.WriteString(" ")
		m.writeLpTerms(&sb, terms)
	}
	sb.WriteString("\nSubject To\n")
	for _, c := range m.constraints {
		if len(c.terms) == 0 {
			sb.WriteString("\\ " + lpName(c.name) + ": 0 " + c.op.String() + " " + lpNumber(c.rhs) + "\n")
			continue
		}
		sb.WriteString(" " + lpName(c.name) + ": ")
		m.writeLpTerms(&sb, c.terms)
		sb.WriteString(" " + c.op.String() + " " + lpNumber(c.rhs) + "\n")
	}
	var general, binary []string
	sb.WriteString("Bounds\n")
	for _, v := range m.vars {
		name := lpName(v.name)
		switch v.domain.kind {
		case Binary:
			binary = append(binary, name)
			continue
		case Integer:
			general = append(general, name)
		}
		if math.IsInf(v.domain.ub, 1) {
			sb.WriteString(" " + name + " >= " + lpNumber(v.domain.lb) + "\n")
			continue
		}
		sb.WriteString(" " + lpNumber(v.domain.lb) + " <= " + name + " <= " + lpNumber(v.domain.ub) + "\n")
	}
	if len(general) > 0 {
		sb.WriteString("General\n " + strings.Join(general, " ") + "\n")
	}
	if len(binary) > 0 {
		sb.WriteString("Binary\n " + strings.Join(binary, " ") + "\n")
	}
	sb.WriteString("End\n")
	return sb.String()
}
