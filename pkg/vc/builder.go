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
	"math/big"
)

// NewInt constructs an integer literal.
func NewInt(value int64) *IntLit {
	return &IntLit{big.NewInt(value)}
}

// NewReal constructs a real literal num/den.
func NewReal(num, den int64) *RealLit {
	return &RealLit{big.NewRat(num, den)}
}

// NewBv constructs a bitvector literal, reducing the value modulo 2^width.
func NewBv(value *big.Int, width uint) *BvLit {
	modulus := new(big.Int).Lsh(big.NewInt(1), width)
	return &BvLit{new(big.Int).Mod(value, modulus), width}
}

// NewString constructs a string literal.
func NewString(value string) *StringLit {
	return &StringLit{value}
}

// And constructs a conjunction.  The empty conjunction is True and a
// singleton conjunction is its only element.
func And(args ...Expr) Expr {
	switch len(args) {
	case 0:
		return True
	case 1:
		return args[0]
	}
	//
	return &OpApp{OpAnd, args}
}

// Or constructs a disjunction.  The empty disjunction is False and a singleton
// disjunction is its only element.
func Or(args ...Expr) Expr {
	switch len(args) {
	case 0:
		return False
	case 1:
		return args[0]
	}
	//
	return &OpApp{OpOr, args}
}

// Not constructs a negation.
func Not(arg Expr) Expr {
	return &OpApp{OpNot, []Expr{arg}}
}

// Implies constructs an implication.
func Implies(lhs, rhs Expr) Expr {
	return &OpApp{OpImplies, []Expr{lhs, rhs}}
}

// Iff constructs an equivalence.
func Iff(lhs, rhs Expr) Expr {
	return &OpApp{OpIff, []Expr{lhs, rhs}}
}

// Eq constructs an equality.
func Eq(lhs, rhs Expr) Expr {
	return &OpApp{OpEq, []Expr{lhs, rhs}}
}

// Ite constructs a conditional term.
func Ite(cond, then, otherwise Expr) Expr {
	return &OpApp{OpIte, []Expr{cond, then, otherwise}}
}

// Apply constructs an operator application, checking the number of arguments.
func Apply(op Op, args ...Expr) *OpApp {
	if n, ok := opArity(op); ok && n != len(args) {
		panic(fmt.Sprintf("operator %s expects %d arguments, got %d", op, n, len(args)))
	} else if len(args) == 0 {
		panic(fmt.Sprintf("operator %s applied to no arguments", op))
	}
	//
	return &OpApp{op, args}
}

// Call constructs the application of a user function.
func Call(fn *Function, typeArgs []Type, args ...Expr) *FunApp {
	if len(args) != len(fn.Params) {
		panic(fmt.Sprintf("function %s expects %d arguments, got %d", fn.Name, len(fn.Params), len(args)))
	} else if len(typeArgs) != len(fn.TypeParams) {
		panic(fmt.Sprintf("function %s expects %d type arguments, got %d", fn.Name, len(fn.TypeParams), len(typeArgs)))
	}
	//
	return &FunApp{fn, typeArgs, args}
}

// NewForall constructs a universal quantifier without triggers.
func NewForall(vars []*Var, body Expr) *Quantifier {
	return &Quantifier{Kind: Forall, Vars: vars, Body: body}
}

// NewExists constructs an existential quantifier without triggers.
func NewExists(vars []*Var, body Expr) *Quantifier {
	return &Quantifier{Kind: Exists, Vars: vars, Body: body}
}

// NewLet constructs a let binding group.
func NewLet(bindings []*Binding, body Expr) *Let {
	return &Let{bindings, body}
}

// Bind constructs a binding of a fresh variable, named as given, to a value.
func Bind(name string, value Expr) *Binding {
	return &Binding{NewVar(name, value.Type()), value}
}

// Conjuncts splits a formula into its top-level conjuncts, flattening nested
// conjunctions.  A formula which is not a conjunction is its own only conjunct.
func Conjuncts(e Expr) []Expr {
	if app, ok := e.(*OpApp); ok && app.Op == OpAnd {
		var conjuncts []Expr
		//
		for _, arg := range app.Args {
			conjuncts = append(conjuncts, Conjuncts(arg)...)
		}
		//
		return conjuncts
	}
	//
	return []Expr{e}
}

func opArity(op Op) (int, bool) {
	switch op {
	case OpNot, OpNeg:
		return 1, true
	case OpImplies, OpIff, OpLt, OpLe, OpGt, OpGe, OpDiv, OpMod, OpRealDiv:
		return 2, true
	case OpIte:
		return 3, true
	}
	//
	return 0, false
}
