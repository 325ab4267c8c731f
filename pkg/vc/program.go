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
package vc

// Goal is a named verification obligation.
type Goal struct {
	Name string
	Expr Expr
}

// Program is the content of an input file: declarations of sorts, constants
// and functions, background axioms, solver preamble commands and goals.  A
// Program serves as the logical context of a prover session.
type Program struct {
	Sorts     []*TypeCtor
	Constants []*Var
	Functions []*Function
	Goals     []Goal
	axioms    []Expr
	preamble  []string
}

// AddAxiom appends a background axiom.
func (p *Program) AddAxiom(axiom Expr) {
	p.axioms = append(p.axioms, axiom)
}

// AddPreamble appends a solver command issued before every check.
func (p *Program) AddPreamble(command string) {
	p.preamble = append(p.preamble, command)
}

// Axioms returns the background axioms as a single conjunction, in order of
// declaration.
func (p *Program) Axioms() Expr {
	return And(p.axioms...)
}

// Preamble returns the solver commands to be issued before every check.
func (p *Program) Preamble() []string {
	return p.preamble
}

// Goal looks up a goal by name.
func (p *Program) Goal(name string) (Goal, bool) {
	for _, g := range p.Goals {
		if g.Name == name {
			return g, true
		}
	}
	//
	return Goal{}, false
}
