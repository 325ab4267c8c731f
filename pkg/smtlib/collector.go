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

// DeclarationCollector records the declarations of sorts, constants and
// functions required by expressions.  Each symbol is declared at most once per
// collector, and a sort is always declared before any symbol using it.
type DeclarationCollector struct {
	namer *Namer
	// Keys of symbols already declared
	declared map[any]bool
	// Declarations not yet drained
	pending []string
}

// NewDeclarationCollector constructs a collector naming symbols with a given
// namer.
func NewDeclarationCollector(namer *Namer) *DeclarationCollector {
	return &DeclarationCollector{namer, make(map[any]bool), nil}
}

// Collect records the declarations required by a given expression which have
// not already been recorded.
func (p *DeclarationCollector) Collect(e vc.Expr) {
	bound := make(map[*vc.Var]bool)
	//
	vc.Walk(e, func(e vc.Expr) bool {
		switch e := e.(type) {
		case *vc.Var:
			if !bound[e] {
				p.constant(e)
			}
		case *vc.FunApp:
			p.function(e.Fn, e.TypeArgs)
		case *vc.Quantifier:
			for _, v := range e.Vars {
				bound[v] = true
				p.sort(v.T)
			}
		case *vc.Let:
			for _, b := range e.Bindings {
				bound[b.Var] = true
			}
		}
		//
		return true
	})
}

// DrainNew returns the declarations recorded since the last call.
func (p *DeclarationCollector) DrainNew() []string {
	decls := p.pending
	p.pending = nil
	//
	return decls
}

func (p *DeclarationCollector) constant(v *vc.Var) {
	if p.declared[v] {
		return
	}
	//
	p.declared[v] = true
	p.sort(v.T)
	//
	p.declare("(declare-fun %s () %s)", p.namer.ConstantName(v), p.sortName(v.T))
}

func (p *DeclarationCollector) function(fn *vc.Function, typeArgs []vc.Type) {
	var key any = fn
	//
	if len(typeArgs) != 0 {
		key = instanceKey{fn, typeList(typeArgs)}
	}
	//
	if p.declared[key] {
		return
	}
	//
	p.declared[key] = true
	//
	var (
		subst  = fn.Instantiate(typeArgs)
		params = make([]string, len(fn.Params))
		result = vc.Subst(fn.Result, subst)
	)
	//
	for i, t := range fn.Params {
		t = vc.Subst(t, subst)
		p.sort(t)
		params[i] = p.sortName(t)
	}
	//
	p.sort(result)
	p.declare("(declare-fun %s (%s) %s)", p.namer.FunctionName(fn, typeArgs), strings.Join(params, " "),
		p.sortName(result))
}

// Declare any uninterpreted sorts within a given type.
func (p *DeclarationCollector) sort(t vc.Type) {
	switch t := t.(type) {
	case vc.BasicType:
		if (t == vc.Universe || t == vc.TypeSort) && !p.declared[builtinSortKey(t)] {
			p.declared[builtinSortKey(t)] = true
			p.declare("(declare-sort %s 0)", p.namer.BuiltinSortName(t))
		}
	case *vc.CtorType:
		for _, arg := range t.Args {
			p.sort(arg)
		}
		//
		if !p.declared[t.Ctor] {
			p.declared[t.Ctor] = true
			p.declare("(declare-sort %s %d)", p.namer.SortName(t.Ctor), t.Ctor.Arity)
		}
	}
}

func (p *DeclarationCollector) sortName(t vc.Type) string {
	return renderSort(t, p.namer).String(false)
}

func (p *DeclarationCollector) declare(format string, args ...any) {
	p.pending = append(p.pending, fmt.Sprintf(format, args...))
}
