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

import (
	"fmt"
)

// Walk traverses an expression in pre-order, calling visit on every node.
// Children of a node are visited only when visit returns true.  Triggers and
// binding values are visited as children of their binder.
func Walk(e Expr, visit func(Expr) bool) {
	if !visit(e) {
		return
	}
	//
	switch e := e.(type) {
	case *OpApp:
		for _, arg := range e.Args {
			Walk(arg, visit)
		}
	case *FunApp:
		for _, arg := range e.Args {
			Walk(arg, visit)
		}
	case *Quantifier:
		for _, trigger := range e.Triggers {
			for _, t := range trigger {
				Walk(t, visit)
			}
		}
		//
		Walk(e.Body, visit)
	case *Let:
		for _, b := range e.Bindings {
			Walk(b.Value, visit)
		}
		//
		Walk(e.Body, visit)
	case BoolLit, *IntLit, *RealLit, *BvLit, *StringLit, *Var:
		// leaves
	default:
		panic(fmt.Sprintf("unknown expression %T", e))
	}
}

// FreeVars returns the variables occurring free in an expression, in order of
// first occurrence.
func FreeVars(e Expr) []*Var {
	var (
		bound = make(map[*Var]bool)
		seen  = make(map[*Var]bool)
		free  []*Var
	)
	// Binders are unique objects, so marking them bound up front is sound.
	Walk(e, func(e Expr) bool {
		switch e := e.(type) {
		case *Quantifier:
			for _, v := range e.Vars {
				bound[v] = true
			}
		case *Let:
			for _, b := range e.Bindings {
				bound[b.Var] = true
			}
		}
		//
		return true
	})
	//
	Walk(e, func(e Expr) bool {
		if v, ok := e.(*Var); ok && !bound[v] && !seen[v] {
			seen[v] = true
			free = append(free, v)
		}
		//
		return true
	})
	//
	return free
}

// References checks which variables from a given set occur in an expression,
// returning them in order of first occurrence.
func References(e Expr, vars map[*Var]bool) []*Var {
	var (
		seen = make(map[*Var]bool)
		refs []*Var
	)
	//
	Walk(e, func(e Expr) bool {
		if v, ok := e.(*Var); ok && vars[v] && !seen[v] {
			seen[v] = true
			refs = append(refs, v)
		}
		//
		return true
	})
	//
	return refs
}
