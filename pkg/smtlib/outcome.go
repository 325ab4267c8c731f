// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package smtlib

import (
	"context"
)

// Outcome classifies the result of a check.
type Outcome uint8

const (
	// Valid indicates the goal was proved.
	Valid Outcome = iota
	// Invalid indicates the solver found a counterexample.
	Invalid
	// Undetermined indicates the solver could not decide the goal.
	Undetermined
	// TimeOut indicates the solver ran out of time.
	TimeOut
)

func (o Outcome) String() string {
	switch o {
	case Valid:
		return "valid"
	case Invalid:
		return "invalid"
	case TimeOut:
		return "timeout"
	}
	//
	return "undetermined"
}

// ErrorHandler receives findings reported by the solver about a check.
type ErrorHandler interface {
	// OnCounterexample is called with the solver's details when a goal is
	// refuted.
	OnCounterexample(name string, details string)
	// OnProverWarning is called with diagnostic output from the solver.
	OnProverWarning(name string, msg string)
}

// OutcomeReader determines the outcome of a completed script.
type OutcomeReader interface {
	ReadOutcome(ctx context.Context, name string, script string, handler ErrorHandler) (Outcome, error)
}

// UndeterminedReader is the outcome reader used when no solver is available.
// It reports every check as undetermined.
type UndeterminedReader struct{}

// ReadOutcome implementation for OutcomeReader interface.
func (UndeterminedReader) ReadOutcome(context.Context, string, string, ErrorHandler) (Outcome, error) {
	return Undetermined, nil
}

// NullHandler is an ErrorHandler which ignores everything.
type NullHandler struct{}

// OnCounterexample implementation for ErrorHandler interface.
func (NullHandler) OnCounterexample(string, string) {}

// OnProverWarning implementation for ErrorHandler interface.
func (NullHandler) OnProverWarning(string, string) {}
