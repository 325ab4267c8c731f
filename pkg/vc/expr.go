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

// Expr is a node of a verification condition.  Expressions are immutable once
// constructed, and subtrees may be shared between several parents.  Sharing
// which must survive lowering is expressed through Let bindings.
type Expr interface {
	// Type returns the type of this expression.
	Type() Type
	isExpr()
}

// ============================================================================
// Literals
// ============================================================================

// BoolLit is a boolean constant.
type BoolLit bool

// True and False are the boolean constants.
const (
	True  BoolLit = true
	False BoolLit = false
)

func (BoolLit) isExpr() {}

// Type implementation for Expr interface.
func (BoolLit) Type() Type { return Bool }

// IntLit is an integer constant.
type IntLit struct {
	Value *big.Int
}

func (*IntLit) isExpr() {}

// Type implementation for Expr interface.
func (*IntLit) Type() Type { return Int }

// RealLit is a rational constant of real type.
type RealLit struct {
	Value *big.Rat
}

func (*RealLit) isExpr() {}

// Type implementation for Expr interface.
func (*RealLit) Type() Type { return Real }

// BvLit is a bitvector constant.  The value is held unsigned, within
// [0, 2^Width).
type BvLit struct {
	Value *big.Int
	Width uint
}

func (*BvLit) isExpr() {}

// Type implementation for Expr interface.
func (p *BvLit) Type() Type { return &BitVecType{p.Width} }

// StringLit is a string constant.
type StringLit struct {
	Value string
}

func (*StringLit) isExpr() {}

// Type implementation for Expr interface.
func (*StringLit) Type() Type { return Str }

// ============================================================================
// Variables
// ============================================================================

// Var is a named variable.  A variable is either bound (by a quantifier or a
// let binding) or free, in which case it denotes an uninterpreted constant
// which must be declared.  Variables are compared by identity.
type Var struct {
	Name string
	T    Type
}

func (*Var) isExpr() {}

// Type implementation for Expr interface.
func (p *Var) Type() Type { return p.T }

// NewVar constructs a fresh variable.
func NewVar(name string, t Type) *Var {
	return &Var{name, t}
}

// ============================================================================
// Applications
// ============================================================================

// Op identifies a builtin operator.
type Op uint8

const (
	// OpAnd is n-ary conjunction.
	OpAnd Op = iota
	// OpOr is n-ary disjunction.
	OpOr
	// OpNot is logical negation.
	OpNot
	// OpImplies is implication.
	OpImplies
	// OpIff is equivalence of formulas.
	OpIff
	// OpEq is equality of terms.
	OpEq
	// OpDistinct is pairwise disequality.
	OpDistinct
	// OpIte is if-then-else.
	OpIte
	// OpLt is less-than.
	OpLt
	// OpLe is less-than-or-equals.
	OpLe
	// OpGt is greater-than.
	OpGt
	// OpGe is greater-than-or-equals.
	OpGe
	// OpAdd is n-ary addition.
	OpAdd
	// OpSub is subtraction.
	OpSub
	// OpMul is n-ary multiplication.
	OpMul
	// OpNeg is arithmetic negation.
	OpNeg
	// OpDiv is integer division.
	OpDiv
	// OpMod is integer modulus.
	OpMod
	// OpRealDiv is real division.
	OpRealDiv
)

var opNames = [...]string{
	OpAnd: "and", OpOr: "or", OpNot: "not", OpImplies: "=>", OpIff: "iff", OpEq: "=",
	OpDistinct: "distinct", OpIte: "ite", OpLt: "<", OpLe: "<=", OpGt: ">", OpGe: ">=",
	OpAdd: "+", OpSub: "-", OpMul: "*", OpNeg: "neg", OpDiv: "div", OpMod: "mod", OpRealDiv: "/",
}

func (p Op) String() string {
	if int(p) < len(opNames) {
		return opNames[p]
	}
	//
	panic(fmt.Sprintf("unknown operator %d", uint8(p)))
}

// IsLogical checks whether an operator yields a formula.
func (p Op) IsLogical() bool {
	switch p {
	case OpIte, OpAdd, OpSub, OpMul, OpNeg, OpDiv, OpMod, OpRealDiv:
		return false
	}
	//
	return true
}

// OpApp is the application of a builtin operator.
type OpApp struct {
	Op   Op
	Args []Expr
}

func (*OpApp) isExpr() {}

// Type implementation for Expr interface.
func (p *OpApp) Type() Type {
	switch {
	case p.Op.IsLogical():
		return Bool
	case p.Op == OpIte:
		return p.Args[1].Type()
	case p.Op == OpRealDiv:
		return Real
	}
	//
	return p.Args[0].Type()
}

// Function is an uninterpreted, possibly polymorphic, function symbol.
// Functions are compared by identity.
type Function struct {
	Name       string
	TypeParams []*TypeVar
	Params     []Type
	Result     Type
}

// NewFunction constructs a new function symbol.
func NewFunction(name string, typeParams []*TypeVar, params []Type, result Type) *Function {
	return &Function{name, typeParams, params, result}
}

// IsPolymorphic checks whether this function has type parameters.
func (p *Function) IsPolymorphic() bool {
	return len(p.TypeParams) != 0
}

// Instantiate returns the substitution mapping this function's type parameters
// onto the given type arguments.
func (p *Function) Instantiate(typeArgs []Type) map[*TypeVar]Type {
	if len(typeArgs) != len(p.TypeParams) {
		panic(fmt.Sprintf("function %s expects %d type arguments, got %d", p.Name, len(p.TypeParams), len(typeArgs)))
	}
	//
	subst := make(map[*TypeVar]Type, len(typeArgs))
	for i, v := range p.TypeParams {
		subst[v] = typeArgs[i]
	}
	//
	return subst
}

// FunApp is the application of a user function to explicit type arguments and
// term arguments.
type FunApp struct {
	Fn       *Function
	TypeArgs []Type
	Args     []Expr
}

func (*FunApp) isExpr() {}

// Type implementation for Expr interface.
func (p *FunApp) Type() Type {
	if len(p.TypeArgs) == 0 {
		return p.Fn.Result
	}
	//
	return Subst(p.Fn.Result, p.Fn.Instantiate(p.TypeArgs))
}

// ============================================================================
// Binders
// ============================================================================

// QuantKind distinguishes universal from existential quantification.
type QuantKind uint8

const (
	// Forall is universal quantification.
	Forall QuantKind = iota
	// Exists is existential quantification.
	Exists
)

func (p QuantKind) String() string {
	if p == Forall {
		return "forall"
	}
	//
	return "exists"
}

// Dual returns the opposite quantifier.
func (p QuantKind) Dual() QuantKind {
	return 1 - p
}

// Quantifier binds type variables and term variables over a formula.  Triggers
// are sets of terms (multi-patterns) which guide instantiation, the weight
// biases instantiation (zero means unspecified), and QID is an optional
// identifier used in solver statistics.
type Quantifier struct {
	Kind       QuantKind
	TypeParams []*TypeVar
	Vars       []*Var
	Triggers   [][]Expr
	Weight     uint
	QID        string
	Body       Expr
}

func (*Quantifier) isExpr() {}

// Type implementation for Expr interface.
func (*Quantifier) Type() Type { return Bool }

// Binding binds a variable to a value within a Let.
type Binding struct {
	Var   *Var
	Value Expr
}

// Let introduces a group of bindings over a body.  A binding's value may refer
// to other bindings of the same group, in any order, provided no binding
// depends upon itself.  This represents a directed acyclic graph of shared
// subterms which must be ordered before it can be rendered with strictly
// nested scopes.
type Let struct {
	Bindings []*Binding
	Body     Expr
}

func (*Let) isExpr() {}

// Type implementation for Expr interface.
func (p *Let) Type() Type { return p.Body.Type() }
