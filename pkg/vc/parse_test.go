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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// Positive Tests
// ============================================================================

func Test_Parse_Declarations(t *testing.T) {
	program := CheckParseOk(t, `
		(sort List 1)
		(const xs (List Int))
		(function len [a] ((List a)) Int)
		(goal g (>= (len [Int] xs) 0))`)
	//
	require.Len(t, program.Sorts, 1)
	require.Len(t, program.Constants, 1)
	require.Len(t, program.Functions, 1)
	assert.Equal(t, "List", program.Sorts[0].Name)
	assert.Equal(t, uint(1), program.Sorts[0].Arity)
	assert.Equal(t, "List<Int>", program.Constants[0].T.String())
	assert.True(t, program.Functions[0].IsPolymorphic())
}

func Test_Parse_ForwardReference(t *testing.T) {
	// Uses may precede declarations
	program := CheckParseOk(t, `
		(goal g (p x))
		(function p (Int) Bool)
		(const x Int)`)
	//
	g, ok := program.Goal("g")
	require.True(t, ok)
	assert.Equal(t, "(p x)", String(g.Expr))
}

func Test_Parse_Literals(t *testing.T) {
	CheckExpr(t, "(= -5 (- 5))", "(= -5 (neg 5))")
	CheckExpr(t, "(= 1.5 (/ 3.0 2.0))", "(= 3/2 (/ 3 2))")
	CheckExpr(t, "(= #b0101 (_ bv5 4))", "(= (bv 5 4) (bv 5 4))")
	CheckExpr(t, "(= #x0f (bv 15 8))", "(= (bv 15 8) (bv 15 8))")
	CheckExpr(t, `(= "a""b" "c")`, `(= "a""b" "c")`)
}

func Test_Parse_Iff(t *testing.T) {
	CheckExpr(t, "(= true false)", "(iff true false)")
	CheckExpr(t, "(= 1 2 3)", "(= 1 2 3)")
}

func Test_Parse_Quantifier(t *testing.T) {
	program := CheckParseOk(t, `
		(function f (Int) Int)
		(axiom (forall ((x Int)) (! (> (f x) x) :pattern ((f x)) :weight 3 :qid fx)))`)
	//
	q, ok := program.Axioms().(*Quantifier)
	require.True(t, ok)
	assert.Equal(t, Forall, q.Kind)
	assert.Equal(t, uint(3), q.Weight)
	assert.Equal(t, "fx", q.QID)
	require.Len(t, q.Triggers, 1)
	assert.Equal(t, "(f x)", String(q.Triggers[0][0]))
	// Trigger and body share the bound variable
	assert.Same(t, q.Vars[0], q.Triggers[0][0].(*FunApp).Args[0])
}

func Test_Parse_TypeQuantifier(t *testing.T) {
	program := CheckParseOk(t, `
		(sort Box 1)
		(function unbox [a] ((Box a)) a)
		(function box [a] (a) (Box a))
		(axiom (forall [a] ((x a)) (= (unbox [a] (box [a] x)) x)))`)
	//
	q := program.Axioms().(*Quantifier)
	require.Len(t, q.TypeParams, 1)
	assert.Same(t, q.TypeParams[0], q.Vars[0].T)
}

func Test_Parse_Let(t *testing.T) {
	program := CheckParseOk(t, `
		(const x Int)
		(goal g (let ((b (+ a 1)) (a (* x 2))) (> b a)))`)
	//
	g, _ := program.Goal("g")
	let := g.Expr.(*Let)
	require.Len(t, let.Bindings, 2)
	// Original order is retained
	assert.Equal(t, "b", let.Bindings[0].Var.Name)
	assert.Equal(t, "a", let.Bindings[1].Var.Name)
	assert.Same(t, let.Bindings[1].Var, let.Bindings[0].Value.(*OpApp).Args[0])
}

func Test_Parse_Preamble(t *testing.T) {
	program := CheckParseOk(t, `(preamble "(set-option :timeout 10)") (preamble "(push)")`)
	assert.Equal(t, []string{"(set-option :timeout 10)", "(push)"}, program.Preamble())
	assert.Equal(t, True, program.Axioms())
}

// ============================================================================
// Negative Tests
// ============================================================================

func Test_ParseErr_1(t *testing.T) {
	CheckParseErr(t, "(const x Foo)", "unknown type")
}

func Test_ParseErr_2(t *testing.T) {
	CheckParseErr(t, "(const x Int) (const x Int)", "duplicate constant")
}

func Test_ParseErr_3(t *testing.T) {
	CheckParseErr(t, "(const x Int) (goal g (+ x 1))", "expected formula")
}

func Test_ParseErr_4(t *testing.T) {
	CheckParseErr(t, "(const x Int) (goal g (let ((a b) (b a)) (= a x)))", "cyclic let binding")
}

func Test_ParseErr_5(t *testing.T) {
	CheckParseErr(t, "(const x Int) (const b Bool) (goal g (= x b))", "type mismatch")
}

func Test_ParseErr_6(t *testing.T) {
	CheckParseErr(t, "(sort List 1) (const x List)", "type List expects 1 arguments")
}

func Test_ParseErr_7(t *testing.T) {
	CheckParseErr(t, "(function f (Int) Bool) (goal g (f 1 2))", "f expects 1 arguments")
}

func Test_ParseErr_8(t *testing.T) {
	CheckParseErr(t, "(goal g y)", "unknown variable")
}

func Test_ParseErr_9(t *testing.T) {
	CheckParseErr(t, "(goal g true) (goal g false)", "duplicate goal")
}

func Test_ParseErr_10(t *testing.T) {
	CheckParseErr(t, "(goal g (forall ((x Int)) (! (> x 0) :foo 1)))", "unknown attribute")
}

func Test_ParseErr_11(t *testing.T) {
	CheckParseErr(t, "(widget)", "unknown declaration")
}

// ============================================================================
// Helpers
// ============================================================================

func CheckParseOk(t *testing.T, input string) *Program {
	program, errs := ParseString("test.vc", input)
	//
	for _, err := range errs {
		t.Errorf("%s", err.Error())
	}
	//
	require.NotNil(t, program)
	//
	return program
}

func CheckExpr(t *testing.T, input string, expected string) {
	program := CheckParseOk(t, "(goal g "+input+")")
	g, ok := program.Goal("g")
	//
	require.True(t, ok)
	assert.Equal(t, expected, String(g.Expr))
}

func CheckParseErr(t *testing.T, input string, msg string) {
	_, errs := ParseString("test.vc", input)
	//
	require.NotEmpty(t, errs)
	assert.True(t, strings.Contains(errs[0].Message(), msg), "expected %q, got %q", msg, errs[0].Message())
}
