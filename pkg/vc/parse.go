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
	"strconv"
	"strings"

	"github.com/consensys/go-smtbridge/pkg/util/source"
	"github.com/consensys/go-smtbridge/pkg/util/source/sexp"
)

// ParseString parses a program held in a string.
func ParseString(filename string, text string) (*Program, []source.SyntaxError) {
	return Parse(source.NewSourceFile(filename, []byte(text)))
}

// Parse a program from a given source file.  The file consists of the
// following top-level forms, where declarations may appear in any order
// relative to their uses:
//
//	(sort List 1)
//	(const x Int)
//	(function f [a] (a (List a)) a)
//	(axiom (forall ((x Int)) (> (g x) 0)))
//	(preamble "(set-option :timeout 1000)")
//	(goal name (=> (> x 0) (> (g x) 0)))
func Parse(srcfile *source.File) (*Program, []source.SyntaxError) {
	terms, srcmap, err := sexp.ParseAll(srcfile)
	if err != nil {
		return nil, []source.SyntaxError{*err}
	}
	//
	p := &parser{
		srcmap:  srcmap,
		sorts:   make(map[string]*TypeCtor),
		consts:  make(map[string]*Var),
		funcs:   make(map[string]*Function),
		program: &Program{},
	}
	// Declarations first, so that uses may precede them.
	errors := p.declarations(terms)
	//
	if len(errors) == 0 {
		errors = p.definitions(terms)
	}
	//
	if len(errors) != 0 {
		return nil, errors
	}
	//
	return p.program, nil
}

type parser struct {
	srcmap  *source.Map[sexp.SExp]
	sorts   map[string]*TypeCtor
	consts  map[string]*Var
	funcs   map[string]*Function
	program *Program
}

// ============================================================================
// Top-level forms
// ============================================================================

func (p *parser) declarations(terms []sexp.SExp) []source.SyntaxError {
	var errors []source.SyntaxError
	//
	for _, term := range terms {
		var err *source.SyntaxError
		//
		list := term.AsList()
		if list == nil {
			errors = append(errors, *p.error(term, "expected declaration"))
			continue
		}
		//
		switch list.Head() {
		case "sort":
			err = p.parseSort(list)
		case "const", "function":
			// Signatures may refer to sorts declared later.
		case "axiom", "preamble", "goal":
		default:
			err = p.error(term, "unknown declaration")
		}
		//
		if err != nil {
			errors = append(errors, *err)
		}
	}
	//
	for _, term := range terms {
		var err *source.SyntaxError
		//
		if list := term.AsList(); list != nil {
			switch list.Head() {
			case "const":
				err = p.parseConst(list)
			case "function":
				err = p.parseFunction(list)
			}
		}
		//
		if err != nil {
			errors = append(errors, *err)
		}
	}
	//
	return errors
}

func (p *parser) definitions(terms []sexp.SExp) []source.SyntaxError {
	var errors []source.SyntaxError
	//
	for _, term := range terms {
		var err *source.SyntaxError
		//
		list := term.AsList()
		//
		switch list.Head() {
		case "axiom":
			err = p.parseAxiom(list)
		case "preamble":
			err = p.parsePreamble(list)
		case "goal":
			err = p.parseGoal(list)
		}
		//
		if err != nil {
			errors = append(errors, *err)
		}
	}
	//
	return errors
}

// (sort Name arity)
func (p *parser) parseSort(list *sexp.List) *source.SyntaxError {
	if list.Len() != 3 || list.Get(1).AsSymbol() == nil || list.Get(2).AsSymbol() == nil {
		return p.error(list, "expected (sort name arity)")
	}
	//
	name := list.Get(1).AsSymbol().Value
	arity, err := strconv.ParseUint(list.Get(2).AsSymbol().Value, 10, 32)
	//
	if err != nil {
		return p.error(list.Get(2), "invalid arity")
	} else if _, ok := p.sorts[name]; ok || isBuiltinType(name) {
		return p.error(list.Get(1), "duplicate sort")
	}
	//
	ctor := &TypeCtor{name, uint(arity)}
	p.sorts[name] = ctor
	p.program.Sorts = append(p.program.Sorts, ctor)
	//
	return nil
}

// (const name Type)
func (p *parser) parseConst(list *sexp.List) *source.SyntaxError {
	if list.Len() != 3 || list.Get(1).AsSymbol() == nil {
		return p.error(list, "expected (const name type)")
	}
	//
	name := list.Get(1).AsSymbol().Value
	if err := p.checkFresh(list.Get(1), name); err != nil {
		return err
	}
	//
	t, err := p.parseType(list.Get(2), nil)
	if err != nil {
		return err
	} else if !IsGround(t) {
		return p.error(list.Get(2), "constant type must be ground")
	}
	//
	v := NewVar(name, t)
	p.consts[name] = v
	p.program.Constants = append(p.program.Constants, v)
	//
	return nil
}

// (function name [a...]? (Params...) Result)
func (p *parser) parseFunction(list *sexp.List) *source.SyntaxError {
	var (
		elements = list.Elements[1:]
		tparams  []*TypeVar
		tvars    = make(map[string]*TypeVar)
	)
	//
	if len(elements) == 0 || elements[0].AsSymbol() == nil {
		return p.error(list, "expected (function name [params] (types) type)")
	}
	//
	name := elements[0].AsSymbol().Value
	if err := p.checkFresh(elements[0], name); err != nil {
		return err
	}
	//
	elements = elements[1:]
	//
	if len(elements) > 0 && elements[0].AsArray() != nil {
		var err *source.SyntaxError
		//
		if tparams, err = p.parseTypeParams(elements[0].AsArray(), tvars); err != nil {
			return err
		}
		//
		elements = elements[1:]
	}
	//
	if len(elements) != 2 || elements[0].AsList() == nil {
		return p.error(list, "expected (function name [params] (types) type)")
	}
	//
	params := make([]Type, elements[0].AsList().Len())
	//
	for i, e := range elements[0].AsList().Elements {
		t, err := p.parseType(e, tvars)
		if err != nil {
			return err
		}
		//
		params[i] = t
	}
	//
	result, err := p.parseType(elements[1], tvars)
	if err != nil {
		return err
	}
	//
	fn := NewFunction(name, tparams, params, result)
	p.funcs[name] = fn
	p.program.Functions = append(p.program.Functions, fn)
	//
	return nil
}

// (axiom e)
func (p *parser) parseAxiom(list *sexp.List) *source.SyntaxError {
	if list.Len() != 2 {
		return p.error(list, "expected (axiom expr)")
	}
	//
	e, err := p.parseFormula(list.Get(1), nil)
	if err != nil {
		return err
	}
	//
	p.program.AddAxiom(e)
	//
	return nil
}

// (preamble "command")
func (p *parser) parsePreamble(list *sexp.List) *source.SyntaxError {
	if list.Len() != 2 || list.Get(1).AsString() == nil {
		return p.error(list, "expected (preamble \"command\")")
	}
	//
	p.program.AddPreamble(list.Get(1).AsString().Value)
	//
	return nil
}

// (goal name e)
func (p *parser) parseGoal(list *sexp.List) *source.SyntaxError {
	if list.Len() != 3 || list.Get(1).AsSymbol() == nil {
		return p.error(list, "expected (goal name expr)")
	}
	//
	name := list.Get(1).AsSymbol().Value
	if _, ok := p.program.Goal(name); ok {
		return p.error(list.Get(1), "duplicate goal")
	}
	//
	e, err := p.parseFormula(list.Get(2), nil)
	if err != nil {
		return err
	}
	//
	p.program.Goals = append(p.program.Goals, Goal{name, e})
	//
	return nil
}

func (p *parser) checkFresh(node sexp.SExp, name string) *source.SyntaxError {
	if _, ok := p.consts[name]; ok {
		return p.error(node, "duplicate constant")
	} else if _, ok := p.funcs[name]; ok {
		return p.error(node, "duplicate function")
	} else if _, ok := builtinOps[name]; ok || isKeyword(name) {
		return p.error(node, "reserved name")
	}
	//
	return nil
}

// ============================================================================
// Types
// ============================================================================

func (p *parser) parseTypeParams(array *sexp.Array, tvars map[string]*TypeVar) ([]*TypeVar, *source.SyntaxError) {
	params := make([]*TypeVar, array.Len())
	//
	for i, e := range array.Elements {
		sym := e.AsSymbol()
		if sym == nil {
			return nil, p.error(e, "expected type parameter")
		} else if _, ok := tvars[sym.Value]; ok {
			return nil, p.error(e, "duplicate type parameter")
		}
		//
		params[i] = &TypeVar{sym.Value}
		tvars[sym.Value] = params[i]
	}
	//
	return params, nil
}

func (p *parser) parseType(e sexp.SExp, tvars map[string]*TypeVar) (Type, *source.SyntaxError) {
	if sym := e.AsSymbol(); sym != nil {
		switch sym.Value {
		case "Bool":
			return Bool, nil
		case "Int":
			return Int, nil
		case "Real":
			return Real, nil
		case "String":
			return Str, nil
		}
		//
		if v, ok := tvars[sym.Value]; ok {
			return v, nil
		} else if ctor, ok := p.sorts[sym.Value]; !ok {
			return nil, p.error(e, "unknown type")
		} else if ctor.Arity != 0 {
			return nil, p.error(e, fmt.Sprintf("type %s expects %d arguments", ctor.Name, ctor.Arity))
		} else {
			return &CtorType{ctor, nil}, nil
		}
	}
	//
	list := e.AsList()
	if list == nil || list.Len() == 0 || list.Get(0).AsSymbol() == nil {
		return nil, p.error(e, "invalid type")
	}
	// (_ BitVec n)
	if list.MatchSymbols(3, "_", "BitVec") {
		width, err := parseWidth(list.Get(2))
		if err != nil {
			return nil, p.error(list.Get(2), err.Error())
		}
		//
		return &BitVecType{width}, nil
	}
	//
	ctor, ok := p.sorts[list.Head()]
	if !ok {
		return nil, p.error(list.Get(0), "unknown type")
	} else if uint(list.Len()-1) != ctor.Arity {
		return nil, p.error(e, fmt.Sprintf("type %s expects %d arguments", ctor.Name, ctor.Arity))
	}
	//
	args := make([]Type, list.Len()-1)
	//
	for i, arg := range list.Elements[1:] {
		t, err := p.parseType(arg, tvars)
		if err != nil {
			return nil, err
		}
		//
		args[i] = t
	}
	//
	return &CtorType{ctor, args}, nil
}

func isBuiltinType(name string) bool {
	switch name {
	case "Bool", "Int", "Real", "String", "BitVec", "U", "T":
		return true
	}
	//
	return false
}

// ============================================================================
// Expressions
// ============================================================================

var builtinOps = map[string]Op{
	"and": OpAnd, "or": OpOr, "not": OpNot, "=>": OpImplies, "=": OpEq, "distinct": OpDistinct,
	"ite": OpIte, "<": OpLt, "<=": OpLe, ">": OpGt, ">=": OpGe, "+": OpAdd, "-": OpSub, "*": OpMul,
	"div": OpDiv, "mod": OpMod, "/": OpRealDiv,
}

func isKeyword(name string) bool {
	switch name {
	case "forall", "exists", "let", "!", "_", "bv", "true", "false":
		return true
	}
	//
	return false
}

// scope maps names onto variables.  A let scope additionally holds the
// bindings of its group, which are parsed on first reference so that siblings
// may refer to each other in any order.
type scope struct {
	parent  *scope
	vars    map[string]*Var
	pending map[string]*pendingBinding
	tvars   map[string]*TypeVar
}

type pendingBinding struct {
	value   sexp.SExp
	binding *Binding
	active  bool
}

func (s *scope) typeVars() map[string]*TypeVar {
	tvars := make(map[string]*TypeVar)
	//
	for ; s != nil; s = s.parent {
		for n, v := range s.tvars {
			if _, ok := tvars[n]; !ok {
				tvars[n] = v
			}
		}
	}
	//
	return tvars
}

func (p *parser) parseFormula(e sexp.SExp, env *scope) (Expr, *source.SyntaxError) {
	expr, err := p.parseExpr(e, env)
	if err != nil {
		return nil, err
	} else if expr.Type() != Bool {
		return nil, p.error(e, "expected formula")
	}
	//
	return expr, nil
}

func (p *parser) parseExpr(e sexp.SExp, env *scope) (Expr, *source.SyntaxError) {
	switch {
	case e.AsSymbol() != nil:
		return p.parseSymbol(e.AsSymbol(), env)
	case e.AsString() != nil:
		return NewString(e.AsString().Value), nil
	case e.AsList() != nil:
		return p.parseList(e.AsList(), env)
	}
	//
	return nil, p.error(e, "unexpected type arguments")
}

func (p *parser) parseSymbol(sym *sexp.Symbol, env *scope) (Expr, *source.SyntaxError) {
	name := sym.Value
	//
	switch {
	case name == "true":
		return True, nil
	case name == "false":
		return False, nil
	case strings.HasPrefix(name, "#b"), strings.HasPrefix(name, "#x"):
		return p.parseBvLiteral(sym)
	case isNumeric(name):
		return p.parseNumber(sym)
	}
	// Innermost binding first
	for s := env; s != nil; s = s.parent {
		if v, ok := s.vars[name]; ok {
			return v, nil
		} else if pb, ok := s.pending[name]; ok {
			return p.resolvePending(sym, pb, s)
		}
	}
	//
	if v, ok := p.consts[name]; ok {
		return v, nil
	} else if fn, ok := p.funcs[name]; ok && len(fn.Params) == 0 && len(fn.TypeParams) == 0 {
		return Call(fn, nil), nil
	}
	//
	return nil, p.error(sym, "unknown variable")
}

// Parse the value of a let binding on demand.  The value is parsed within the
// scope of its group, hence references to siblings resolve recursively.
func (p *parser) resolvePending(sym *sexp.Symbol, pb *pendingBinding, s *scope) (Expr, *source.SyntaxError) {
	if pb.binding != nil {
		return pb.binding.Var, nil
	} else if pb.active {
		return nil, p.error(sym, "cyclic let binding")
	}
	//
	pb.active = true
	value, err := p.parseExpr(pb.value, s)
	pb.active = false
	//
	if err != nil {
		return nil, err
	}
	//
	pb.binding = &Binding{NewVar(sym.Value, value.Type()), value}
	//
	return pb.binding.Var, nil
}

func (p *parser) parseNumber(sym *sexp.Symbol) (Expr, *source.SyntaxError) {
	if strings.Contains(sym.Value, ".") {
		r, ok := new(big.Rat).SetString(sym.Value)
		if !ok {
			return nil, p.error(sym, "invalid decimal")
		}
		//
		return &RealLit{r}, nil
	}
	//
	i, ok := new(big.Int).SetString(sym.Value, 10)
	if !ok {
		return nil, p.error(sym, "invalid numeral")
	}
	//
	return &IntLit{i}, nil
}

func (p *parser) parseBvLiteral(sym *sexp.Symbol) (Expr, *source.SyntaxError) {
	var (
		digits = sym.Value[2:]
		base   = 2
		bits   = uint(1)
	)
	//
	if sym.Value[1] == 'x' {
		base, bits = 16, 4
	}
	//
	value, ok := new(big.Int).SetString(digits, base)
	if !ok || digits == "" {
		return nil, p.error(sym, "invalid bitvector literal")
	}
	//
	return &BvLit{value, uint(len(digits)) * bits}, nil
}

func (p *parser) parseList(list *sexp.List, env *scope) (Expr, *source.SyntaxError) {
	if list.Len() == 0 || list.Get(0).AsSymbol() == nil {
		return nil, p.error(list, "invalid expression")
	}
	//
	head := list.Head()
	//
	switch head {
	case "forall", "exists":
		return p.parseQuantifier(list, env)
	case "let":
		return p.parseLet(list, env)
	case "bv", "_":
		return p.parseBvApp(list)
	case "!":
		return nil, p.error(list, "attributes only permitted on quantifier bodies")
	}
	//
	if op, ok := builtinOps[head]; ok {
		return p.parseOpApp(list, op, env)
	} else if fn, ok := p.funcs[head]; ok {
		return p.parseFunApp(list, fn, env)
	}
	//
	return nil, p.error(list.Get(0), "unknown function")
}

func (p *parser) parseArgs(elements []sexp.SExp, env *scope) ([]Expr, *source.SyntaxError) {
	args := make([]Expr, len(elements))
	//
	for i, e := range elements {
		arg, err := p.parseExpr(e, env)
		if err != nil {
			return nil, err
		}
		//
		args[i] = arg
	}
	//
	return args, nil
}

func (p *parser) parseOpApp(list *sexp.List, op Op, env *scope) (Expr, *source.SyntaxError) {
	args, err := p.parseArgs(list.Elements[1:], env)
	if err != nil {
		return nil, err
	}
	// Unary minus is negation
	if op == OpSub && len(args) == 1 {
		op = OpNeg
	}
	//
	if n, ok := opArity(op); (ok && n != len(args)) || len(args) == 0 || (op == OpEq && len(args) < 2) {
		return nil, p.error(list, fmt.Sprintf("incorrect number of arguments for %s", op))
	}
	//
	switch op {
	case OpAnd, OpOr, OpNot, OpImplies:
		for i, arg := range args {
			if arg.Type() != Bool {
				return nil, p.error(list.Get(i+1), "expected formula")
			}
		}
	case OpIte:
		if args[0].Type() != Bool {
			return nil, p.error(list.Get(1), "expected formula")
		} else if !TypeEquals(args[1].Type(), args[2].Type()) {
			return nil, p.error(list, "type mismatch")
		}
	case OpLt, OpLe, OpGt, OpGe, OpAdd, OpSub, OpMul, OpNeg, OpDiv, OpMod, OpRealDiv:
		if t := args[0].Type(); t != Int && t != Real {
			return nil, p.error(list.Get(1), "expected arithmetic operand")
		}
		//
		fallthrough
	default:
		for i := 1; i < len(args); i++ {
			if !TypeEquals(args[0].Type(), args[i].Type()) {
				return nil, p.error(list.Get(i+1), "type mismatch")
			}
		}
	}
	// Equality between formulas is equivalence
	if op == OpEq && len(args) == 2 && args[0].Type() == Bool {
		op = OpIff
	}
	//
	return &OpApp{op, args}, nil
}

// (f [T...]? args...)
func (p *parser) parseFunApp(list *sexp.List, fn *Function, env *scope) (Expr, *source.SyntaxError) {
	var (
		elements = list.Elements[1:]
		typeArgs []Type
	)
	//
	if len(elements) > 0 && elements[0].AsArray() != nil {
		for _, e := range elements[0].AsArray().Elements {
			t, err := p.parseType(e, env.typeVars())
			if err != nil {
				return nil, err
			}
			//
			typeArgs = append(typeArgs, t)
		}
		//
		elements = elements[1:]
	}
	//
	if len(typeArgs) != len(fn.TypeParams) {
		return nil, p.error(list, fmt.Sprintf("%s expects %d type arguments", fn.Name, len(fn.TypeParams)))
	} else if len(elements) != len(fn.Params) {
		return nil, p.error(list, fmt.Sprintf("%s expects %d arguments", fn.Name, len(fn.Params)))
	}
	//
	args, err := p.parseArgs(elements, env)
	if err != nil {
		return nil, err
	}
	//
	subst := fn.Instantiate(typeArgs)
	//
	for i, arg := range args {
		if !TypeEquals(Subst(fn.Params[i], subst), arg.Type()) {
			return nil, p.error(elements[i], "type mismatch")
		}
	}
	//
	return &FunApp{fn, typeArgs, args}, nil
}

// (bv value width) or (_ bvN width)
func (p *parser) parseBvApp(list *sexp.List) (Expr, *source.SyntaxError) {
	if list.Len() != 3 || list.Get(1).AsSymbol() == nil {
		return nil, p.error(list, "invalid bitvector literal")
	}
	//
	digits := list.Get(1).AsSymbol().Value
	//
	if list.Head() == "_" {
		if !strings.HasPrefix(digits, "bv") {
			return nil, p.error(list, "invalid bitvector literal")
		}
		//
		digits = digits[2:]
	}
	//
	value, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return nil, p.error(list.Get(1), "invalid bitvector value")
	}
	//
	width, err := parseWidth(list.Get(2))
	if err != nil {
		return nil, p.error(list.Get(2), err.Error())
	}
	//
	return NewBv(value, width), nil
}

// (forall [a...]? ((x T)...) body) where body may be (! body attributes...)
func (p *parser) parseQuantifier(list *sexp.List, env *scope) (Expr, *source.SyntaxError) {
	var (
		elements = list.Elements[1:]
		q        = &Quantifier{Kind: Forall}
		inner    = &scope{parent: env, vars: make(map[string]*Var), tvars: make(map[string]*TypeVar)}
		err      *source.SyntaxError
	)
	//
	if list.Head() == "exists" {
		q.Kind = Exists
	}
	//
	if len(elements) > 0 && elements[0].AsArray() != nil {
		if q.TypeParams, err = p.parseTypeParams(elements[0].AsArray(), inner.tvars); err != nil {
			return nil, err
		}
		//
		elements = elements[1:]
	}
	//
	if len(elements) != 2 || elements[0].AsList() == nil {
		return nil, p.error(list, "expected (forall ((var type)...) body)")
	}
	//
	tvars := inner.typeVars()
	//
	for _, e := range elements[0].AsList().Elements {
		decl := e.AsList()
		if decl == nil || decl.Len() != 2 || decl.Get(0).AsSymbol() == nil {
			return nil, p.error(e, "expected (var type)")
		}
		//
		t, err := p.parseType(decl.Get(1), tvars)
		if err != nil {
			return nil, err
		}
		//
		v := NewVar(decl.Get(0).AsSymbol().Value, t)
		inner.vars[v.Name] = v
		q.Vars = append(q.Vars, v)
	}
	//
	body := elements[1]
	//
	if attrs := body.AsList(); attrs != nil && attrs.Head() == "!" {
		if attrs.Len() < 2 {
			return nil, p.error(attrs, "missing body")
		} else if err = p.parseAttributes(q, attrs.Elements[2:], inner); err != nil {
			return nil, err
		}
		//
		body = attrs.Get(1)
	}
	//
	if q.Body, err = p.parseFormula(body, inner); err != nil {
		return nil, err
	}
	//
	return q, nil
}

func (p *parser) parseAttributes(q *Quantifier, attrs []sexp.SExp, env *scope) *source.SyntaxError {
	for i := 0; i < len(attrs); i += 2 {
		key := attrs[i].AsSymbol()
		if key == nil || i+1 == len(attrs) {
			return p.error(attrs[i], "expected attribute")
		}
		//
		value := attrs[i+1]
		//
		switch key.Value {
		case ":pattern":
			terms := value.AsList()
			if terms == nil || terms.Len() == 0 {
				return p.error(value, "expected (term...)")
			}
			//
			trigger, err := p.parseArgs(terms.Elements, env)
			if err != nil {
				return err
			}
			//
			q.Triggers = append(q.Triggers, trigger)
		case ":weight":
			sym := value.AsSymbol()
			if sym == nil {
				return p.error(value, "invalid weight")
			}
			//
			w, err := strconv.ParseUint(sym.Value, 10, 32)
			if err != nil {
				return p.error(value, "invalid weight")
			}
			//
			q.Weight = uint(w)
		case ":qid":
			if value.AsSymbol() == nil {
				return p.error(value, "invalid qid")
			}
			//
			q.QID = value.AsSymbol().Value
		default:
			return p.error(key, "unknown attribute")
		}
	}
	//
	return nil
}

// (let ((x e)...) body)
func (p *parser) parseLet(list *sexp.List, env *scope) (Expr, *source.SyntaxError) {
	if list.Len() != 3 || list.Get(1).AsList() == nil {
		return nil, p.error(list, "expected (let ((var expr)...) body)")
	}
	//
	var (
		inner = &scope{parent: env, pending: make(map[string]*pendingBinding)}
		order []*pendingBinding
		names []*sexp.Symbol
	)
	//
	for _, e := range list.Get(1).AsList().Elements {
		decl := e.AsList()
		if decl == nil || decl.Len() != 2 || decl.Get(0).AsSymbol() == nil {
			return nil, p.error(e, "expected (var expr)")
		}
		//
		name := decl.Get(0).AsSymbol()
		if _, ok := inner.pending[name.Value]; ok {
			return nil, p.error(name, "duplicate let binding")
		}
		//
		pb := &pendingBinding{value: decl.Get(1)}
		inner.pending[name.Value] = pb
		order = append(order, pb)
		names = append(names, name)
	}
	//
	bindings := make([]*Binding, len(order))
	// Force every binding, including those the body never uses.
	for i, pb := range order {
		if _, err := p.resolvePending(names[i], pb, inner); err != nil {
			return nil, err
		}
		//
		bindings[i] = pb.binding
	}
	//
	body, err := p.parseExpr(list.Get(2), inner)
	if err != nil {
		return nil, err
	}
	//
	return &Let{bindings, body}, nil
}

// ============================================================================
// Helpers
// ============================================================================

func isNumeric(s string) bool {
	if strings.HasPrefix(s, "-") {
		s = s[1:]
	}
	//
	return s != "" && s[0] >= '0' && s[0] <= '9'
}

func parseWidth(e sexp.SExp) (uint, error) {
	if sym := e.AsSymbol(); sym != nil {
		if w, err := strconv.ParseUint(sym.Value, 10, 16); err == nil && w > 0 {
			return uint(w), nil
		}
	}
	//
	return 0, fmt.Errorf("invalid bitvector width")
}

func (p *parser) error(node sexp.SExp, msg string) *source.SyntaxError {
	return p.srcmap.SyntaxError(node, msg)
}
