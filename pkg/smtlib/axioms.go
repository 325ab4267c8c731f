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
	"strings"

	"github.com/consensys/go-smtbridge/pkg/vc"
)

// The symbols relating a native type to the erased world are introduced on
// first use, and so are the axioms which give them meaning.

// Determine the type constant of a native type.
func (p *erasure) native(t vc.Type) *nativeSymbols {
	tag := t.String()
	//
	if ns, ok := p.natives[tag]; ok {
		return ns
	} else if t == vc.Universe || t == vc.TypeSort {
		panic(fmt.Sprintf("sort %s has no type", t))
	}
	//
	name := strings.ToLower(tag[:1]) + tag[1:] + "Type"
	ns := &nativeSymbols{typ: vc.NewFunction(name, nil, nil, vc.TypeSort)}
	p.natives[tag] = ns
	//
	return ns
}

// Determine the boxing functions of a native type.  On first use, these are
// axiomatised as a bijection between the native type and those values of U
// whose type is the native type:
//
//	(forall ((x N)) (! (= (U2N (N2U x)) x) :pattern ((N2U x))))
//	(forall ((x N)) (! (= (type (N2U x)) nType) :pattern ((N2U x))))
//	(forall ((u U)) (! (=> (= (type u) nType) (= (N2U (U2N u)) u)) :pattern ((U2N u))))
func (p *erasure) boxing(t vc.Type) *nativeSymbols {
	ns := p.native(t)
	//
	if ns.box != nil {
		return ns
	}
	//
	tag := t.String()
	ns.box = vc.NewFunction(tag+"2U", nil, []vc.Type{t}, vc.Universe)
	ns.unbox = vc.NewFunction("U2"+tag, nil, []vc.Type{vc.Universe}, t)
	//
	var (
		x     = vc.NewVar("x", t)
		u     = vc.NewVar("u", vc.Universe)
		boxed = call(ns.box, x)
		typ   = call(ns.typ)
	)
	//
	p.register(forall([]*vc.Var{x}, boxed, vc.Eq(call(ns.unbox, boxed), x)))
	p.register(forall([]*vc.Var{x}, boxed, vc.Eq(p.typeOf(boxed), typ)))
	//
	unboxed := call(ns.unbox, u)
	p.register(forall([]*vc.Var{u}, unboxed,
		vc.Implies(vc.Eq(p.typeOf(u), typ), vc.Eq(call(ns.box, unboxed), u))))
	//
	return ns
}

// Determine the symbols of a type constructor C of arity n.  On first use, its
// inverses C_0 ... C_n-1 are axiomatised:
//
//	(forall ((t0 T) ... (tn-1 T)) (! (= (C_i (C t0 ... tn-1)) ti) :pattern ((C t0 ... tn-1))))
func (p *erasure) ctor(ctor *vc.TypeCtor) *ctorSymbols {
	if cs, ok := p.ctors[ctor]; ok {
		return cs
	}
	//
	var (
		params = make([]vc.Type, ctor.Arity)
		vars   = make([]*vc.Var, ctor.Arity)
		args   = make([]vc.Expr, ctor.Arity)
	)
	//
	for i := range params {
		params[i] = vc.TypeSort
		vars[i] = vc.NewVar(fmt.Sprintf("t%d", i), vc.TypeSort)
		args[i] = vars[i]
	}
	//
	cs := &ctorSymbols{fn: vc.NewFunction(ctor.Name, nil, params, vc.TypeSort)}
	p.ctors[ctor] = cs
	//
	app := call(cs.fn, args...)
	//
	for i := range params {
		inverse := vc.NewFunction(fmt.Sprintf("%s_%d", ctor.Name, i), nil, []vc.Type{vc.TypeSort}, vc.TypeSort)
		cs.inverses = append(cs.inverses, inverse)
		p.register(forall(vars, app, vc.Eq(call(inverse, app), vars[i])))
	}
	//
	return cs
}

func forall(vars []*vc.Var, trigger vc.Expr, body vc.Expr) *vc.Quantifier {
	return &vc.Quantifier{Kind: vc.Forall, Vars: vars, Triggers: [][]vc.Expr{{trigger}}, Body: body}
}
