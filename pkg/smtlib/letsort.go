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

	"github.com/bits-and-blooms/bitset"
	"github.com/consensys/go-smtbridge/pkg/vc"
)

// SortLets rewrites every let group within an expression into a sequence of
// strictly nested lets, such that each binding's value refers only to
// bindings of enclosing lets.  Within a group, a binding is placed at a depth
// one greater than the deepest binding it refers to.  Bindings at the same
// depth retain their original order.  No binding is duplicated or dropped, so
// sharing of subterms is preserved.
//
// A cyclic group is a malformed expression, and causes a panic.
func SortLets(e vc.Expr) vc.Expr {
	switch e := e.(type) {
	case vc.BoolLit, *vc.IntLit, *vc.RealLit, *vc.BvLit, *vc.StringLit, *vc.Var:
		return e
	case *vc.OpApp:
		return &vc.OpApp{Op: e.Op, Args: sortAll(e.Args)}
	case *vc.FunApp:
		return &vc.FunApp{Fn: e.Fn, TypeArgs: e.TypeArgs, Args: sortAll(e.Args)}
	case *vc.Quantifier:
		triggers := make([][]vc.Expr, len(e.Triggers))
		for i, trigger := range e.Triggers {
			triggers[i] = sortAll(trigger)
		}
		//
		return &vc.Quantifier{Kind: e.Kind, TypeParams: e.TypeParams, Vars: e.Vars, Triggers: triggers,
			Weight: e.Weight, QID: e.QID, Body: SortLets(e.Body)}
	case *vc.Let:
		return sortGroup(e)
	}
	//
	panic(fmt.Sprintf("unknown expression %T", e))
}

func sortAll(exprs []vc.Expr) []vc.Expr {
	sorted := make([]vc.Expr, len(exprs))
	for i, e := range exprs {
		sorted[i] = SortLets(e)
	}
	//
	return sorted
}

func sortGroup(let *vc.Let) vc.Expr {
	var (
		n        = uint(len(let.Bindings))
		index    = make(map[*vc.Var]uint, n)
		members  = make(map[*vc.Var]bool, n)
		deps     = make([][]uint, n)
		depths   = make([]uint, n)
		bindings = make([]*vc.Binding, n)
	)
	//
	for i, b := range let.Bindings {
		index[b.Var] = uint(i)
		members[b.Var] = true
	}
	//
	for i, b := range let.Bindings {
		for _, v := range vc.References(b.Value, members) {
			deps[i] = append(deps[i], index[v])
		}
		//
		bindings[i] = &vc.Binding{Var: b.Var, Value: SortLets(b.Value)}
	}
	//
	var (
		visited  = bitset.New(n)
		onStack  = bitset.New(n)
		maxDepth uint
	)
	//
	var visit func(i uint)
	visit = func(i uint) {
		if visited.Test(i) {
			return
		} else if onStack.Test(i) {
			panic(fmt.Sprintf("cyclic let binding %s", let.Bindings[i].Var.Name))
		}
		//
		onStack.Set(i)
		//
		for _, j := range deps[i] {
			visit(j)
			depths[i] = max(depths[i], depths[j]+1)
		}
		//
		onStack.Clear(i)
		visited.Set(i)
		maxDepth = max(maxDepth, depths[i])
	}
	//
	for i := uint(0); i < n; i++ {
		visit(i)
	}
	//
	body := SortLets(let.Body)
	//
	if n == 0 {
		return body
	}
	// Build from the innermost layer outwards
	for depth := int(maxDepth); depth >= 0; depth-- {
		var layer []*vc.Binding
		//
		for i, b := range bindings {
			if depths[i] == uint(depth) {
				layer = append(layer, b)
			}
		}
		//
		body = &vc.Let{Bindings: layer, Body: body}
	}
	//
	return body
}
