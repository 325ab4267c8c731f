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
	"testing"

	"github.com/consensys/go-smtbridge/pkg/vc"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func Test_Collector_Monomorphic(t *testing.T) {
	var (
		list = &vc.TypeCtor{Name: "List", Arity: 1}
		a    = &vc.TypeVar{Name: "a"}
		xs   = vc.NewVar("xs", vc.NewCtorType(list, vc.Int))
		size = vc.NewFunction("len", []*vc.TypeVar{a}, []vc.Type{vc.NewCtorType(list, a)}, vc.Int)
		e    = vc.Apply(vc.OpGe, vc.Call(size, []vc.Type{vc.Int}, xs), vc.NewInt(0))
		c    = NewDeclarationCollector(NewNamer())
	)
	//
	c.Collect(e)
	//
	expected := []string{
		"(declare-sort List 1)",
		"(declare-fun len<Int> ((List Int)) Int)",
		"(declare-fun xs () (List Int))",
	}
	//
	if diff := cmp.Diff(expected, c.DrainNew()); diff != "" {
		t.Errorf("declarations mismatch (-want +got):\n%s", diff)
	}
	// Nothing new the second time
	c.Collect(e)
	c.Collect(vc.Not(e))
	assert.Empty(t, c.DrainNew())
}

func Test_Collector_Bound(t *testing.T) {
	var (
		x = vc.NewVar("x", vc.Int)
		y = vc.NewVar("y", vc.Int)
		b = vc.Bind("b", vc.Apply(vc.OpAdd, x, y))
		e = vc.NewForall([]*vc.Var{x}, vc.NewLet([]*vc.Binding{b}, vc.Apply(vc.OpGt, b.Var, x)))
		c = NewDeclarationCollector(NewNamer())
	)
	//
	c.Collect(e)
	// Only the free constant is declared
	assert.Equal(t, []string{"(declare-fun y () Int)"}, c.DrainNew())
}

func Test_Collector_Overlapping(t *testing.T) {
	var (
		namer = NewNamer()
		c     = NewDeclarationCollector(namer)
		x     = vc.NewVar("x", vc.Int)
		y     = vc.NewVar("y", vc.Int)
		z     = vc.NewVar("z", vc.Int)
		f     = vc.NewFunction("f", nil, []vc.Type{vc.Int, vc.Int}, vc.Bool)
		all   []string
	)
	//
	for _, e := range []vc.Expr{vc.Call(f, nil, x, y), vc.Call(f, nil, y, z), vc.Call(f, nil, z, x)} {
		c.Collect(e)
		all = append(all, c.DrainNew()...)
	}
	//
	expected := []string{
		"(declare-fun f (Int Int) Bool)",
		"(declare-fun x () Int)",
		"(declare-fun y () Int)",
		"(declare-fun z () Int)",
	}
	//
	assert.Equal(t, expected, all)
	// The same names are used when rendering
	assert.Equal(t, "(f z x)", Linearize(vc.Call(f, nil, z, x), namer, allSyntax))
}
