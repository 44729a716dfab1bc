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
	"fmt"
	"math"
)

// DomainKind is the type tag of a variable domain.
type DomainKind int

const (
	// Continuous variables take any real value within their bounds.
	Continuous DomainKind = iota
	// Integer variables take integral values within their bounds.
	Integer
	// Binary variables take the values 0 or 1.
	Binary
)

func (k DomainKind) String() string {
	switch k {
	case Continuous:
		return "CONTINUOUS"
	case Integer:
		return "INTEGER"
	case Binary:
		return "BINARY"
	}
	return fmt.Sprintf("DomainKind(%d)", int(k))
}

// Domain stores the type tag and the closed interval `[lb,ub]` of a decision variable.
//
// Integer domains are always bounded on both sides. A continuous domain must have a finite
// lower bound and may have an infinite upper bound.
type Domain struct {
	kind DomainKind
	lb   float64
	ub   float64
}

// BinaryDomain returns the domain `{0,1}`.
func BinaryDomain() Domain {
	return Domain{kind: Binary, lb: 0, ub: 1}
}

// IntegerRange returns the integer domain `[lb,ub]`. If `lb > ub`, declaring a variable
// with this domain fails with ErrInvalidDomain.
func IntegerRange(lb, ub int64) Domain {
	return Domain{kind: Integer, lb: float64(lb), ub: float64(ub)}
}

// NonNegativeInteger returns the integer domain `[0,ub]`.
func NonNegativeInteger(ub int64) Domain {
	return IntegerRange(0, ub)
}

// ContinuousRange returns the continuous domain `[lb,ub]`. `ub` may be math.Inf(1).
func ContinuousRange(lb, ub float64) Domain {
	return Domain{kind: Continuous, lb: lb, ub: ub}
}

// Kind returns the type tag of the domain.
func (d Domain) Kind() DomainKind { return d.kind }

// Lower returns the lower bound of the domain.
func (d Domain) Lower() float64 { return d.lb }

// Upper returns the upper bound of the domain.
func (d Domain) Upper() float64 { return d.ub }

// IsIntegral returns true for integer and binary domains.
func (d Domain) IsIntegral() bool { return d.kind != Continuous }

func (d Domain) String() string {
	switch d.kind {
	case Binary:
		return "{0,1}"
	case Integer:
		return fmt.Sprintf("[%d,%d]∩Z", int64(d.lb), int64(d.ub))
	}
	return fmt.Sprintf("[%g,%g]", d.lb, d.ub)
}

func (d Domain) validate() error {
	if math.IsNaN(d.lb) || math.IsNaN(d.ub) {
		return fmt.Errorf("%v: %w", d, ErrInvalidDomain)
	}
	if math.IsInf(d.lb, 0) {
		return fmt.Errorf("lower bound of %v must be finite: %w", d, ErrInvalidDomain)
	}
	if d.kind != Continuous && math.IsInf(d.ub, 0) {
		return fmt.Errorf("upper bound of %v must be finite: %w", d, ErrInvalidDomain)
	}
	if d.lb > d.ub {
		return fmt.Errorf("lower bound %g greater than upper bound %g: %w", d.lb, d.ub, ErrInvalidDomain)
	}
	return nil
}
