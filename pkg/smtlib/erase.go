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

// erasure implements the erasing encodings.  Values of user types are mapped
// into a single sort U, and types themselves become terms of sort T related
// to values by the function "type".  Symbols introduced here persist for the
// life of the encoding, so that repeated erasure names the same symbols.
type erasure struct {
	// Pass only those type arguments which cannot be inferred.
	infer bool
	// The function type : U -> T
	typeFn *vc.Function
	// Erased user-typed constants
	constants map[*vc.Var]*vc.Var
	// Erased user functions
	functions map[*vc.Function]*erasedFunction
	// Type constructor symbols
	ctors map[*vc.TypeCtor]*ctorSymbols
	// Type constants and boxing functions of native types
	natives map[string]*nativeSymbols
	// Axioms registered but not yet drained
	pending []vc.Expr
}

type erasedFunction struct {
	fn *vc.Function
	// Indices of type parameters passed as arguments.
	explicit []int
}

type ctorSymbols struct {
	fn       *vc.Function
	inverses []*vc.Function
}

type nativeSymbols struct {
	typ   *vc.Function
	box   *vc.Function
	unbox *vc.Function
}

// Bindings of variables and type variables in scope.
type environment struct {
	vars  map[*vc.Var]vc.Expr
	types map[*vc.TypeVar]vc.Expr
}

// Bind a variable for the extent of a scope, returning a function which
// restores the enclosing binding (if any).
func (env environment) bindVar(x *vc.Var, v vc.Expr) func() {
	prev, ok := env.vars[x]
	env.vars[x] = v
	//
	return func() {
		if ok {
			env.vars[x] = prev
		} else {
			delete(env.vars, x)
		}
	}
}

// Bind a type variable for the extent of a scope, returning a function which
// restores the enclosing binding (if any).
func (env environment) bindType(a *vc.TypeVar, t vc.Expr) func() {
	prev, ok := env.types[a]
	env.types[a] = t
	//
	return func() {
		if ok {
			env.types[a] = prev
		} else {
			delete(env.types, a)
		}
	}
}

// Undo a sequence of bindings, innermost first.
func unbind(undo []func()) {
	for i := len(undo) - 1; i >= 0; i-- {
		undo[i]()
	}
}

func newErasure(infer bool) *erasure {
	return &erasure{
		infer:     infer,
		typeFn:    vc.NewFunction("type", nil, []vc.Type{vc.Universe}, vc.TypeSort),
		constants: make(map[*vc.Var]*vc.Var),
		functions: make(map[*vc.Function]*erasedFunction),
		ctors:     make(map[*vc.TypeCtor]*ctorSymbols),
		natives:   make(map[string]*nativeSymbols),
	}
}

// Erase implementation for Encoding interface.
func (p *erasure) Erase(e vc.Expr, polarity Polarity) vc.Expr {
	env := environment{make(map[*vc.Var]vc.Expr), make(map[*vc.TypeVar]vc.Expr)}
	//
	return p.erase(e, polarity, env)
}

// DrainAxioms implementation for Encoding interface.
func (p *erasure) DrainAxioms() []vc.Expr {
	axioms := p.pending
	p.pending = nil
	//
	return axioms
}

func (p *erasure) erase(e vc.Expr, polarity Polarity, env environment) vc.Expr {
	switch e := e.(type) {
	case vc.BoolLit, *vc.IntLit, *vc.RealLit, *vc.BvLit, *vc.StringLit:
		return e
	case *vc.Var:
		if v, ok := env.vars[e]; ok {
			return v
		}
		//
		return p.constant(e)
	case *vc.OpApp:
		args := make([]vc.Expr, len(e.Args))
		//
		for i, arg := range e.Args {
			args[i] = p.erase(arg, argPolarity(e.Op, i, polarity), env)
		}
		//
		return &vc.OpApp{Op: e.Op, Args: args}
	case *vc.FunApp:
		return p.eraseFunApp(e, env)
	case *vc.Quantifier:
		return p.eraseQuantifier(e, polarity, env)
	case *vc.Let:
		var (
			bindings = make([]*vc.Binding, len(e.Bindings))
			undo     = make([]func(), len(e.Bindings))
		)
		// Siblings may refer to each other, so allocate all variables first.
		for i, b := range e.Bindings {
			v := vc.NewVar(b.Var.Name, sortOf(b.Var.T))
			undo[i] = env.bindVar(b.Var, v)
			bindings[i] = &vc.Binding{Var: v}
		}
		//
		defer unbind(undo)
		//
		for i, b := range e.Bindings {
			bindings[i].Value = p.erase(b.Value, Neutral, env)
		}
		//
		return &vc.Let{Bindings: bindings, Body: p.erase(e.Body, polarity, env)}
	}
	//
	panic(fmt.Sprintf("unknown expression %T", e))
}

// Polarity of the ith argument of an operator application.
func argPolarity(op vc.Op, i int, polarity Polarity) Polarity {
	switch op {
	case vc.OpAnd, vc.OpOr:
		return polarity
	case vc.OpNot:
		return polarity.Flip()
	case vc.OpImplies:
		if i == 0 {
			return polarity.Flip()
		}
		//
		return polarity
	case vc.OpIte:
		if i == 0 {
			return Neutral
		}
		//
		return polarity
	}
	//
	return Neutral
}

func (p *erasure) eraseFunApp(e *vc.FunApp, env environment) vc.Expr {
	var (
		ef    = p.function(e.Fn)
		args  []vc.Expr
		subst = e.Fn.Instantiate(e.TypeArgs)
	)
	//
	for _, i := range ef.explicit {
		args = append(args, p.typeTerm(e.TypeArgs[i], env.types))
	}
	//
	for i, arg := range e.Args {
		erased := p.erase(arg, Neutral, env)
		// Native values in polymorphic positions are boxed.
		if actual := vc.Subst(e.Fn.Params[i], subst); !vc.IsNative(e.Fn.Params[i]) && vc.IsNative(actual) {
			erased = call(p.boxing(actual).box, erased)
		}
		//
		args = append(args, erased)
	}
	//
	var result vc.Expr = &vc.FunApp{Fn: ef.fn, Args: args}
	//
	if actual := vc.Subst(e.Fn.Result, subst); !vc.IsNative(e.Fn.Result) && vc.IsNative(actual) {
		result = call(p.boxing(actual).unbox, result)
	}
	//
	return result
}

// Erase a quantifier, guarding variables of user types with their types.  The
// guard is an antecedent under a universal quantifier at positive or neutral
// polarity, and a conjunct under an existential quantifier at negative
// polarity.  Quantifiers of the other kind are dualised to fit.
func (p *erasure) eraseQuantifier(e *vc.Quantifier, polarity Polarity, env environment) vc.Expr {
	var (
		vars   []*vc.Var
		guards []vc.Expr
		undo   []func()
	)
	//
	defer func() { unbind(undo) }()
	//
	for _, a := range e.TypeParams {
		t := vc.NewVar(a.Name, vc.TypeSort)
		undo = append(undo, env.bindType(a, t))
		vars = append(vars, t)
	}
	//
	for _, x := range e.Vars {
		if vc.IsNative(x.T) {
			undo = append(undo, env.bindVar(x, x))
			vars = append(vars, x)
			//
			continue
		}
		//
		v := vc.NewVar(x.Name, vc.Universe)
		undo = append(undo, env.bindVar(x, v))
		vars = append(vars, v)
		guards = append(guards, vc.Eq(p.typeOf(v), p.typeTerm(x.T, env.types)))
	}
	//
	triggers := make([][]vc.Expr, len(e.Triggers))
	//
	for i, trigger := range e.Triggers {
		triggers[i] = make([]vc.Expr, len(trigger))
		for j, t := range trigger {
			triggers[i][j] = p.erase(t, Neutral, env)
		}
	}
	//
	var (
		body   = p.erase(e.Body, polarity, env)
		kind   = e.Kind
		negate = false
	)
	//
	if len(guards) != 0 {
		guard := vc.And(guards...)
		// Universal at positive or neutral polarity, existential otherwise.
		target := vc.Forall
		if polarity == Negative {
			target = vc.Exists
		}
		//
		if kind != target {
			kind, negate, body = target, true, vc.Not(body)
		}
		//
		if kind == vc.Forall {
			body = vc.Implies(guard, body)
		} else {
			body = vc.And(guard, body)
		}
	}
	//
	var q vc.Expr = &vc.Quantifier{Kind: kind, Vars: vars, Triggers: triggers, Weight: e.Weight, QID: e.QID, Body: body}
	//
	if negate {
		return vc.Not(q)
	}
	//
	return q
}

// Map a constant into the erased world.  Constants of user types become
// constants of sort U, related to their type by an axiom.
func (p *erasure) constant(v *vc.Var) vc.Expr {
	if vc.IsNative(v.T) {
		return v
	} else if c, ok := p.constants[v]; ok {
		return c
	}
	//
	c := vc.NewVar(v.Name, vc.Universe)
	p.constants[v] = c
	p.register(vc.Eq(p.typeOf(c), p.typeTerm(v.T, nil)))
	//
	return c
}

// Determine the erased symbol for a given function, registering its typing
// axiom on first use.
func (p *erasure) function(fn *vc.Function) *erasedFunction {
	if ef, ok := p.functions[fn]; ok {
		return ef
	}
	//
	var (
		ef       = &erasedFunction{}
		inferred []inference
		params   []vc.Type
	)
	//
	for i, a := range fn.TypeParams {
		if p.infer {
			if inf, ok := inferFrom(fn, a); ok {
				inferred = append(inferred, inf)
				continue
			}
		}
		//
		ef.explicit = append(ef.explicit, i)
		params = append(params, vc.TypeSort)
	}
	//
	for _, t := range fn.Params {
		params = append(params, sortOf(t))
	}
	//
	ef.fn = vc.NewFunction(fn.Name, nil, params, sortOf(fn.Result))
	p.functions[fn] = ef
	//
	if !vc.IsNative(fn.Result) {
		p.register(p.functionAxiom(fn, ef, inferred))
	}
	//
	return ef
}

// Construct the axiom giving the type of a function's result, in terms of its
// type arguments.
func (p *erasure) functionAxiom(fn *vc.Function, ef *erasedFunction, inferred []inference) vc.Expr {
	var (
		vars   []*vc.Var
		args   []vc.Expr
		params = make([]*vc.Var, len(fn.Params))
		types  = make(map[*vc.TypeVar]vc.Expr)
		guards []vc.Expr
	)
	//
	for _, i := range ef.explicit {
		t := vc.NewVar(fn.TypeParams[i].Name, vc.TypeSort)
		types[fn.TypeParams[i]] = t
		vars = append(vars, t)
		args = append(args, t)
	}
	//
	for i, t := range fn.Params {
		params[i] = vc.NewVar(fmt.Sprintf("x%d", i), sortOf(t))
		vars = append(vars, params[i])
		args = append(args, params[i])
	}
	//
	for _, inf := range inferred {
		types[inf.param] = p.extract(inf, params[inf.arg])
	}
	//
	app := &vc.FunApp{Fn: ef.fn, Args: args}
	body := vc.Eq(p.typeOf(app), p.typeTerm(fn.Result, types))
	// Inference assumes arguments have their declared types.
	if p.infer {
		for i, t := range fn.Params {
			if _, ok := t.(*vc.TypeVar); !ok && !vc.IsNative(t) {
				guards = append(guards, vc.Eq(p.typeOf(params[i]), p.typeTerm(t, types)))
			}
		}
		//
		if len(guards) != 0 {
			body = vc.Implies(vc.And(guards...), body)
		}
	}
	//
	if len(vars) == 0 {
		return body
	}
	//
	return &vc.Quantifier{Kind: vc.Forall, Vars: vars, Triggers: [][]vc.Expr{{app}}, Body: body}
}

// Construct the term representing a given type.
func (p *erasure) typeTerm(t vc.Type, types map[*vc.TypeVar]vc.Expr) vc.Expr {
	switch t := t.(type) {
	case vc.BasicType, *vc.BitVecType:
		return call(p.native(t).typ)
	case *vc.CtorType:
		args := make([]vc.Expr, len(t.Args))
		for i, arg := range t.Args {
			args[i] = p.typeTerm(arg, types)
		}
		//
		return call(p.ctor(t.Ctor).fn, args...)
	case *vc.TypeVar:
		if e, ok := types[t]; ok {
			return e
		}
		//
		panic(fmt.Sprintf("unknown type variable %s", t.Name))
	}
	//
	panic(fmt.Sprintf("unknown type %T", t))
}

func (p *erasure) typeOf(e vc.Expr) vc.Expr {
	return call(p.typeFn, e)
}

func (p *erasure) register(axiom vc.Expr) {
	p.pending = append(p.pending, axiom)
}

// sortOf determines the sort representing values of a given type after
// erasure.
func sortOf(t vc.Type) vc.Type {
	if vc.IsNative(t) {
		return t
	}
	//
	return vc.Universe
}

func call(fn *vc.Function, args ...vc.Expr) *vc.FunApp {
	return &vc.FunApp{Fn: fn, Args: args}
}

// ============================================================================
// Type inference
// ============================================================================

// inference identifies a type parameter which can be recovered from the type
// of an argument, by applying constructor inverses along a path.
type inference struct {
	param *vc.TypeVar
	arg   int
	path  []step
}

type step struct {
	ctor  *vc.TypeCtor
	index int
}

func inferFrom(fn *vc.Function, a *vc.TypeVar) (inference, bool) {
	for i, t := range fn.Params {
		if path, ok := pathTo(t, a); ok {
			return inference{a, i, path}, true
		}
	}
	//
	return inference{}, false
}

func pathTo(t vc.Type, a *vc.TypeVar) ([]step, bool) {
	switch t := t.(type) {
	case *vc.TypeVar:
		return nil, t == a
	case *vc.CtorType:
		for i, arg := range t.Args {
			if path, ok := pathTo(arg, a); ok {
				return append([]step{{t.Ctor, i}}, path...), true
			}
		}
	}
	//
	return nil, false
}

func (p *erasure) extract(inf inference, x *vc.Var) vc.Expr {
	e := p.typeOf(x)
	//
	for _, s := range inf.path {
		e = call(p.ctor(s.ctor).inverses[s.index], e)
	}
	//
	return e
}
