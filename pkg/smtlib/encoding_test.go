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
	"errors"
	"testing"

	"github.com/consensys/go-smtbridge/pkg/vc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A polymorphic box, with box : a -> Box a and unbox : Box a -> a.
type boxTheory struct {
	ctor  *vc.TypeCtor
	box   *vc.Function
	unbox *vc.Function
}

func newBoxTheory() boxTheory {
	var (
		ctor = &vc.TypeCtor{Name: "Box", Arity: 1}
		a    = &vc.TypeVar{Name: "a"}
		b    = &vc.TypeVar{Name: "a"}
	)
	//
	return boxTheory{
		ctor:  ctor,
		box:   vc.NewFunction("box", []*vc.TypeVar{a}, []vc.Type{a}, vc.NewCtorType(ctor, a)),
		unbox: vc.NewFunction("unbox", []*vc.TypeVar{b}, []vc.Type{vc.NewCtorType(ctor, b)}, b),
	}
}

// forall [a] ((x a)) (= (unbox [a] (box [a] x)) x)
func (p boxTheory) roundTrip() vc.Expr {
	a := &vc.TypeVar{Name: "a"}
	x := vc.NewVar("x", a)
	boxed := vc.Call(p.box, []vc.Type{a}, x)
	//
	return &vc.Quantifier{Kind: vc.Forall, TypeParams: []*vc.TypeVar{a}, Vars: []*vc.Var{x},
		Body: vc.Eq(vc.Call(p.unbox, []vc.Type{a}, boxed), x)}
}

func Test_Encoding_Modes(t *testing.T) {
	for _, mode := range []Mode{Premises, Arguments, Monomorphic} {
		enc, err := NewEncoding(mode)
		//
		require.NoError(t, err)
		assert.Equal(t, mode, enc.Mode())
		//
		parsed, err := ParseMode(mode.String())
		require.NoError(t, err)
		assert.Equal(t, mode, parsed)
	}
	//
	_, err := NewEncoding(Mode(7))
	//
	var cerr *ConfigError
	assert.True(t, errors.As(err, &cerr))
	//
	_, err = ParseMode("polymorphic")
	assert.True(t, errors.As(err, &cerr))
}

func Test_Encoding_MonomorphicIdentity(t *testing.T) {
	enc, _ := NewEncoding(Monomorphic)
	e := newBoxTheory().roundTrip()
	//
	for _, polarity := range []Polarity{Negative, Neutral, Positive} {
		assert.Same(t, e, enc.Erase(e, polarity))
	}
	//
	assert.Empty(t, enc.DrainAxioms())
}

func Test_Encoding_PremisesPolarity(t *testing.T) {
	var (
		enc, _ = NewEncoding(Premises)
		e      = newBoxTheory().roundTrip()
	)
	//
	assert.Equal(t, "(forall ((a@0 T) (x@1 U)) (=> (= (type x@1) a@0) (= (unbox (box x@1)) x@1)))",
		erase(enc, e, Positive))
	assert.Equal(t, "(forall ((a@0 T) (x@1 U)) (=> (= (type x@1) a@0) (= (unbox (box x@1)) x@1)))",
		erase(enc, e, Neutral))
	// Universal hypotheses are dualised into existentials
	negative := "(not (exists ((a@0 T) (x@1 U)) (and (= (type x@1) a@0) (not (= (unbox (box x@1)) x@1)))))"
	//
	assert.Equal(t, negative, erase(enc, e, Negative))
	// Each negation flips polarity
	assert.Equal(t, "(not (not "+negative+"))", erase(enc, vc.Not(vc.Not(e)), Negative))
	assert.Equal(t, "(=> "+negative+" false)", erase(enc, vc.Implies(e, vc.False), Positive))
}

func Test_Encoding_Existential(t *testing.T) {
	var (
		enc, _ = NewEncoding(Premises)
		box    = &vc.TypeCtor{Name: "Box", Arity: 0}
		x      = vc.NewVar("x", vc.NewCtorType(box))
		c      = vc.NewVar("c", vc.NewCtorType(box))
		e      = vc.NewExists([]*vc.Var{x}, vc.Not(vc.Eq(x, c)))
	)
	//
	assert.Equal(t, "(exists ((x@0 U)) (and (= (type x@0) Box) (not (= x@0 c))))", erase(enc, e, Negative))
	assert.Equal(t, "(not (forall ((x@0 U)) (=> (= (type x@0) Box) (not (not (= x@0 c))))))", erase(enc, e, Positive))
	// The constant is typed once
	assert.Equal(t, []string{"(= (type c) Box)"}, render(enc.DrainAxioms()))
}

func Test_Encoding_ReusedBinder(t *testing.T) {
	var (
		enc, _ = NewEncoding(Premises)
		box    = &vc.TypeCtor{Name: "Box", Arity: 0}
		x      = vc.NewVar("x", vc.NewCtorType(box))
		p      = vc.NewFunction("p", nil, []vc.Type{x.T}, vc.Bool)
		// forall x. (and (exists x. (p x)) (p x))
		e = vc.NewForall([]*vc.Var{x}, vc.And(vc.NewExists([]*vc.Var{x}, vc.Call(p, nil, x)), vc.Call(p, nil, x)))
	)
	//
	var text string
	//
	require.NotPanics(t, func() { text = erase(enc, e, Positive) })
	// The trailing occurrence refers to the outer binder
	assert.Equal(t, "(forall ((x@0 U)) (=> (= (type x@0) Box) (and (not (forall ((x@1 U)) "+
		"(=> (= (type x@1) Box) (not (p x@1))))) (p x@0))))", text)
}

func Test_Encoding_Unguarded(t *testing.T) {
	var (
		enc, _ = NewEncoding(Premises)
		x      = vc.NewVar("x", vc.Int)
		e      = vc.NewForall([]*vc.Var{x}, vc.Apply(vc.OpGt, x, vc.NewInt(0)))
	)
	// Quantifiers over native types are unchanged
	assert.Equal(t, "(forall ((x@0 Int)) (> x@0 0))", erase(enc, e, Negative))
	assert.Equal(t, "(forall ((x@0 Int)) (> x@0 0))", erase(enc, e, Positive))
	assert.Empty(t, enc.DrainAxioms())
}

func Test_Encoding_Arguments(t *testing.T) {
	enc, _ := NewEncoding(Arguments)
	e := newBoxTheory().roundTrip()
	//
	assert.Equal(t, "(forall ((a@0 T) (x@1 U)) (=> (= (type x@1) a@0) (= (unbox a@0 (box a@0 x@1)) x@1)))",
		erase(enc, e, Positive))
	//
	expected := []string{
		"(forall ((a@0 T) (x0@1 U)) (! (= (type (unbox a@0 x0@1)) a@0) :pattern ((unbox a@0 x0@1))))",
		"(forall ((t0@0 T)) (! (= (Box_0 (Box t0@0)) t0@0) :pattern ((Box t0@0))))",
		"(forall ((a@0 T) (x0@1 U)) (! (= (type (box a@0 x0@1)) (Box a@0)) :pattern ((box a@0 x0@1))))",
	}
	//
	assert.Equal(t, expected, render(enc.DrainAxioms()))
	// Registered once only
	erase(enc, e, Positive)
	assert.Empty(t, enc.DrainAxioms())
}

func Test_Encoding_PremisesAxioms(t *testing.T) {
	enc, _ := NewEncoding(Premises)
	e := newBoxTheory().roundTrip()
	//
	erase(enc, e, Positive)
	//
	expected := []string{
		"(forall ((t0@0 T)) (! (= (Box_0 (Box t0@0)) t0@0) :pattern ((Box t0@0))))",
		"(forall ((x0@0 U)) (! (=> (= (type x0@0) (Box (Box_0 (type x0@0)))) (= (type (unbox x0@0)) (Box_0 (type x0@0)))) :pattern ((unbox x0@0))))",
		"(forall ((x0@0 U)) (! (= (type (box x0@0)) (Box (type x0@0))) :pattern ((box x0@0))))",
	}
	//
	assert.Equal(t, expected, render(enc.DrainAxioms()))
}

func Test_Encoding_Boxing(t *testing.T) {
	var (
		enc, _ = NewEncoding(Premises)
		theory = newBoxTheory()
		five   = vc.NewInt(5)
		boxed  = vc.Call(theory.box, []vc.Type{vc.Int}, five)
		e      = vc.Eq(vc.Call(theory.unbox, []vc.Type{vc.Int}, boxed), five)
	)
	//
	assert.Equal(t, "(= (U2Int (unbox (box (Int2U 5)))) 5)", erase(enc, e, Positive))
	//
	axioms := render(enc.DrainAxioms())
	//
	require.Len(t, axioms, 6)
	assert.Equal(t, []string{
		"(forall ((x@0 Int)) (! (= (U2Int (Int2U x@0)) x@0) :pattern ((Int2U x@0))))",
		"(forall ((x@0 Int)) (! (= (type (Int2U x@0)) intType) :pattern ((Int2U x@0))))",
		"(forall ((u@0 U)) (! (=> (= (type u@0) intType) (= (Int2U (U2Int u@0)) u@0)) :pattern ((U2Int u@0))))",
	}, axioms[3:])
}

func erase(enc Encoding, e vc.Expr, polarity Polarity) string {
	return Linearize(SortLets(enc.Erase(e, polarity)), NewNamer(), allSyntax)
}

func render(axioms []vc.Expr) []string {
	var texts []string
	//
	namer := NewNamer()
	//
	for _, axiom := range axioms {
		texts = append(texts, Linearize(axiom, namer, allSyntax))
	}
	//
	return texts
}
