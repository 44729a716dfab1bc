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

import "errors"

// Errors reported while building a model. They are returned wrapped with context; use
// errors.Is to test for them.
var (
	// ErrDuplicateSet is returned when an index set name is declared twice on a builder.
	ErrDuplicateSet = errors.New("index set already declared")
	// ErrDuplicateKey is returned when a key appears twice in one index set.
	ErrDuplicateKey = errors.New("duplicate key in index set")
	// ErrDuplicateParameter is returned when a parameter table name is declared twice.
	ErrDuplicateParameter = errors.New("parameter table already declared")
	// ErrDuplicateVariable is returned when a variable family or variable name is declared twice.
	ErrDuplicateVariable = errors.New("variable already declared")
	// ErrDuplicateFamily is returned when a constraint family name is declared twice.
	ErrDuplicateFamily = errors.New("constraint family already declared")
	// ErrObjectiveAlreadySet is returned when a second objective is set on a builder.
	ErrObjectiveAlreadySet = errors.New("objective already set")
	// ErrObjectiveNotSet is returned by Model when no objective was set.
	ErrObjectiveNotSet = errors.New("objective not set")
	// ErrMissingParameter is returned when a parameter table has no entry for a key.
	ErrMissingParameter = errors.New("missing parameter")
	// ErrKeyOutOfDomain is returned when a key is not a member of the index set it is used with.
	ErrKeyOutOfDomain = errors.New("key not in index set")
	// ErrInvalidCoefficient is returned for NaN or infinite numeric input.
	ErrInvalidCoefficient = errors.New("invalid coefficient")
	// ErrInvalidDomain is returned for a variable domain with inconsistent bounds.
	ErrInvalidDomain = errors.New("invalid variable domain")
	// ErrNotBinary is returned when a big-M indicator is not a binary variable.
	ErrNotBinary = errors.New("variable is not binary")
	// ErrVariableNotSolved is returned when a value is read from a solution that has none.
	ErrVariableNotSolved = errors.New("variable not solved")
	// ErrModelFrozen is returned when a builder is modified after Model was called.
	ErrModelFrozen = errors.New("model is frozen")
	// ErrMixedModels holds the error when elements added to a model are different.
	ErrMixedModels = errors.New("elements are not part of the same model")
	// ErrInvalidParameters is returned for unusable solve parameters.
	ErrInvalidParameters = errors.New("invalid solve parameters")
)
