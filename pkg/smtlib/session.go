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

import "slices"

// Session accumulates the declarations and axioms emitted by the checks of a
// single prover run.  Both sequences only ever grow: they can be appended to
// and read, but never reordered or truncated.  A Session must not be shared
// between concurrently running checks.
type Session struct {
	declarations []string
	axioms       []string
	// Set once the background axioms have been lowered.
	backgroundDone bool
}

// NewSession constructs an empty session.
func NewSession() *Session {
	return &Session{}
}

// AddDeclarations appends declarations to this session.
func (s *Session) AddDeclarations(decls ...string) {
	s.declarations = append(s.declarations, decls...)
}

// AddAxioms appends axioms to this session.
func (s *Session) AddAxioms(axioms ...string) {
	s.axioms = append(s.axioms, axioms...)
}

// Declarations returns a copy of the declarations accumulated so far, in order.
func (s *Session) Declarations() []string {
	return slices.Clone(s.declarations)
}

// Axioms returns a copy of the axioms accumulated so far, in order.
func (s *Session) Axioms() []string {
	return slices.Clone(s.axioms)
}

// BackgroundDone checks whether the background axioms have been lowered.
func (s *Session) BackgroundDone() bool {
	return s.backgroundDone
}

// MarkBackgroundDone records that the background axioms have been lowered.
func (s *Session) MarkBackgroundDone() {
	s.backgroundDone = true
}
