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
	"fmt"

	"github.com/consensys/go-smtbridge/pkg/vc"
)

// Mode selects how the polymorphic type system of expressions is encoded for
// the solver.
type Mode uint8

const (
	// Premises erases types, guarding quantified variables with type
	// membership premises and passing only those type arguments which cannot
	// be inferred from term arguments.
	Premises Mode = iota
	// Arguments erases types, passing every type argument explicitly.
	Arguments
	// Monomorphic performs no erasure.  Polymorphic functions are declared
	// once for each instantiation used.
	Monomorphic
)

var modeNames = [...]string{Premises: "premises", Arguments: "arguments", Monomorphic: "monomorphic"}

// ParseMode parses the name of an encoding mode.
func ParseMode(name string) (Mode, error) {
	for i, n := range modeNames {
		if n == name {
			return Mode(i), nil
		}
	}
	//
	return 0, configErrorf("ENCODING", "unknown encoding %q", name)
}

func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	//
	return fmt.Sprintf("mode(%d)", uint8(m))
}

// Polarity is the sign of the context in which a formula occurs.
type Polarity int8

const (
	// Negative polarity for hypotheses, such as axioms.
	Negative Polarity = -1
	// Neutral polarity, e.g. either side of an equivalence.
	Neutral Polarity = 0
	// Positive polarity for goals.
	Positive Polarity = 1
)

// Flip returns the opposite polarity.
func (p Polarity) Flip() Polarity {
	return -p
}

func (p Polarity) String() string {
	switch p {
	case Negative:
		return "negative"
	case Positive:
		return "positive"
	}
	//
	return "neutral"
}

// Encoding pairs a type eraser with its matching axiom builder.  This is a
// closed union over the encoding modes: the only implementations are those
// returned by NewEncoding, so an eraser can never be combined with the axioms
// of another mode.
type Encoding interface {
	// Mode identifies this encoding.
	Mode() Mode
	// Erase rewrites an expression at a given polarity into one using only
	// sorts the solver supports.  This may register new axioms.
	Erase(e vc.Expr, polarity Polarity) vc.Expr
	// DrainAxioms returns the axioms registered since the last call.
	DrainAxioms() []vc.Expr
	// Restrict implementations to this package.
	sealed()
}

// NewEncoding constructs the encoding for a given mode.
func NewEncoding(mode Mode) (Encoding, error) {
	switch mode {
	case Monomorphic:
		return monomorphic{}, nil
	case Arguments:
		return arguments{newErasure(false)}, nil
	case Premises:
		return premises{newErasure(true)}, nil
	}
	//
	return nil, configErrorf("ENCODING", "unknown encoding %s", mode)
}

type monomorphic struct{}

func (monomorphic) Mode() Mode { return Monomorphic }

// Erase is the identity.
func (monomorphic) Erase(e vc.Expr, _ Polarity) vc.Expr { return e }

func (monomorphic) DrainAxioms() []vc.Expr { return nil }

func (monomorphic) sealed() {}

type arguments struct{ *erasure }

func (arguments) Mode() Mode { return Arguments }

func (arguments) sealed() {}

type premises struct{ *erasure }

func (premises) Mode() Mode { return Premises }

func (premises) sealed() {}
