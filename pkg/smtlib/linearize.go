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
	"math/big"

	"github.com/consensys/go-smtbridge/pkg/util/source/sexp"
	"github.com/consensys/go-smtbridge/pkg/vc"
)

// LinearizerOptions control optional syntax emitted by the linearizer.
type LinearizerOptions struct {
	// Weights enables :weight annotations on quantifiers.
	Weights bool
	// Extensions enables prover-specific attributes, such as :qid.
	Extensions bool
}

// Linearize renders an erased and sorted expression as SMT-LIB text.  Global
// symbols are named by the given namer, whilst bound variables are named
// <name>@<n> in order of appearance.  The result depends only on the
// expression, the namer's assignments and the options.
func Linearize(e vc.Expr, namer *Namer, options LinearizerOptions) string {
	return ToSExp(e, namer, options).String(false)
}

// ToSExp renders an erased and sorted expression as an S-expression whose
// symbols are already quoted as necessary.
func ToSExp(e vc.Expr, namer *Namer, options LinearizerOptions) sexp.SExp {
	l := &linearizer{
		namer:   namer,
		options: options,
		locals:  make(map[*vc.Var]string),
		binders: make(map[*vc.Var]bool),
	}
	//
	vc.Walk(e, func(e vc.Expr) bool {
		switch e := e.(type) {
		case *vc.Quantifier:
			for _, v := range e.Vars {
				l.binders[v] = true
			}
		case *vc.Let:
			for _, b := range e.Bindings {
				l.binders[b.Var] = true
			}
		}
		//
		return true
	})
	//
	return l.render(e)
}

type linearizer struct {
	namer   *Namer
	options LinearizerOptions
	// Names of variables currently in scope
	locals map[*vc.Var]string
	// Variables bound somewhere within the expression
	binders map[*vc.Var]bool
	// Number of local names issued
	count uint
}

var smtOps = [...]string{
	vc.OpAnd: "and", vc.OpOr: "or", vc.OpNot: "not", vc.OpImplies: "=>", vc.OpIff: "=", vc.OpEq: "=",
	vc.OpDistinct: "distinct", vc.OpIte: "ite", vc.OpLt: "<", vc.OpLe: "<=", vc.OpGt: ">", vc.OpGe: ">=",
	vc.OpAdd: "+", vc.OpSub: "-", vc.OpMul: "*", vc.OpNeg: "-", vc.OpDiv: "div", vc.OpMod: "mod", vc.OpRealDiv: "/",
}

func (l *linearizer) render(e vc.Expr) sexp.SExp {
	switch e := e.(type) {
	case vc.BoolLit:
		return symbol(fmt.Sprint(bool(e)))
	case *vc.IntLit:
		if e.Value.Sign() < 0 {
			return list(symbol("-"), symbol(new(big.Int).Neg(e.Value).String()))
		}
		//
		return symbol(e.Value.String())
	case *vc.RealLit:
		return renderReal(e.Value)
	case *vc.BvLit:
		return list(symbol("_"), symbol("bv"+e.Value.String()), symbol(fmt.Sprint(e.Width)))
	case *vc.StringLit:
		return sexp.NewString(e.Value)
	case *vc.Var:
		if name, ok := l.locals[e]; ok {
			return symbol(name)
		} else if l.binders[e] {
			panic(fmt.Sprintf("variable %s used outside its binder", e.Name))
		}
		//
		return symbol(l.namer.ConstantName(e))
	case *vc.OpApp:
		return list(append([]sexp.SExp{symbol(smtOps[e.Op])}, l.renderAll(e.Args)...)...)
	case *vc.FunApp:
		name := symbol(l.namer.FunctionName(e.Fn, e.TypeArgs))
		//
		if len(e.Args) == 0 {
			return name
		}
		//
		return list(append([]sexp.SExp{name}, l.renderAll(e.Args)...)...)
	case *vc.Quantifier:
		return l.renderQuantifier(e)
	case *vc.Let:
		return l.renderLet(e)
	}
	//
	panic(fmt.Sprintf("unknown expression %T", e))
}

func (l *linearizer) renderAll(exprs []vc.Expr) []sexp.SExp {
	elements := make([]sexp.SExp, len(exprs))
	for i, e := range exprs {
		elements[i] = l.render(e)
	}
	//
	return elements
}

func (l *linearizer) renderQuantifier(e *vc.Quantifier) sexp.SExp {
	if len(e.TypeParams) != 0 {
		panic(fmt.Sprintf("type variable %s reached the linearizer", e.TypeParams[0].Name))
	} else if len(e.Vars) == 0 {
		return l.render(e.Body)
	}
	//
	var (
		vars     = make([]sexp.SExp, len(e.Vars))
		restore  = l.enter(e.Vars)
		attrs    []sexp.SExp
		body     sexp.SExp
		kind     = symbol(e.Kind.String())
		declared = sexp.NewList(vars)
	)
	//
	defer restore()
	//
	for i, v := range e.Vars {
		vars[i] = list(symbol(l.locals[v]), renderSort(v.T, l.namer))
	}
	//
	body = l.render(e.Body)
	//
	for _, trigger := range e.Triggers {
		attrs = append(attrs, symbol(":pattern"), list(l.renderAll(trigger)...))
	}
	//
	if l.options.Weights && e.Weight > 0 {
		attrs = append(attrs, symbol(":weight"), symbol(fmt.Sprint(e.Weight)))
	}
	//
	if l.options.Extensions && e.QID != "" {
		attrs = append(attrs, symbol(":qid"), symbol(sexp.QuoteSymbol(e.QID)))
	}
	//
	if len(attrs) != 0 {
		body = list(append([]sexp.SExp{symbol("!"), body}, attrs...)...)
	}
	//
	return list(kind, declared, body)
}

func (l *linearizer) renderLet(e *vc.Let) sexp.SExp {
	if len(e.Bindings) == 0 {
		return l.render(e.Body)
	}
	// Values are in the scope enclosing the let.
	values := make([]sexp.SExp, len(e.Bindings))
	vars := make([]*vc.Var, len(e.Bindings))
	//
	for i, b := range e.Bindings {
		values[i] = l.render(b.Value)
		vars[i] = b.Var
	}
	//
	restore := l.enter(vars)
	defer restore()
	//
	bindings := make([]sexp.SExp, len(e.Bindings))
	for i, b := range e.Bindings {
		bindings[i] = list(symbol(l.locals[b.Var]), values[i])
	}
	//
	return list(symbol("let"), sexp.NewList(bindings), l.render(e.Body))
}

// Bring variables into scope, returning a function which restores the
// enclosing scope.
func (l *linearizer) enter(vars []*vc.Var) func() {
	saved := make(map[*vc.Var]string)
	//
	for _, v := range vars {
		if name, ok := l.locals[v]; ok {
			saved[v] = name
		}
		//
		l.locals[v] = sexp.QuoteSymbol(fmt.Sprintf("%s@%d", v.Name, l.count))
		l.count++
	}
	//
	return func() {
		for _, v := range vars {
			if name, ok := saved[v]; ok {
				l.locals[v] = name
			} else {
				delete(l.locals, v)
			}
		}
	}
}

func renderReal(r *big.Rat) sexp.SExp {
	if r.Sign() < 0 {
		return list(symbol("-"), renderReal(new(big.Rat).Neg(r)))
	} else if r.IsInt() {
		return symbol(r.Num().String() + ".0")
	}
	//
	return list(symbol("/"), symbol(r.Num().String()+".0"), symbol(r.Denom().String()+".0"))
}

// Render the SMT-LIB sort of a given type.
func renderSort(t vc.Type, namer *Namer) sexp.SExp {
	switch t := t.(type) {
	case vc.BasicType:
		if t == vc.Universe || t == vc.TypeSort {
			return symbol(namer.BuiltinSortName(t))
		}
		//
		return symbol(t.String())
	case *vc.BitVecType:
		return list(symbol("_"), symbol("BitVec"), symbol(fmt.Sprint(t.Width)))
	case *vc.CtorType:
		name := symbol(namer.SortName(t.Ctor))
		//
		if len(t.Args) == 0 {
			return name
		}
		//
		args := make([]sexp.SExp, len(t.Args))
		for i, arg := range t.Args {
			args[i] = renderSort(arg, namer)
		}
		//
		return list(append([]sexp.SExp{name}, args...)...)
	case *vc.TypeVar:
		panic(fmt.Sprintf("type variable %s reached the linearizer", t.Name))
	}
	//
	panic(fmt.Sprintf("unknown type %T", t))
}

func symbol(name string) *sexp.Symbol {
	return sexp.NewSymbol(name)
}

func list(elements ...sexp.SExp) *sexp.List {
	return sexp.NewList(elements)
}
