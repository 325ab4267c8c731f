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

	"github.com/consensys/go-smtbridge/pkg/util/source/sexp"
)

// Lisp converts an expression into an S-Expression using the raw names of its
// symbols.  This is intended for debugging and error reporting; rendering for
// a solver is the job of the linearizer.
func Lisp(e Expr) sexp.SExp {
	switch e := e.(type) {
	case BoolLit:
		return sexp.NewSymbol(fmt.Sprint(bool(e)))
	case *IntLit:
		return sexp.NewSymbol(e.Value.String())
	case *RealLit:
		return sexp.NewSymbol(e.Value.RatString())
	case *BvLit:
		return list(sexp.NewSymbol("bv"), sexp.NewSymbol(e.Value.String()), sexp.NewSymbol(fmt.Sprint(e.Width)))
	case *StringLit:
		return sexp.NewString(e.Value)
	case *Var:
		return sexp.NewSymbol(e.Name)
	case *OpApp:
		elements := []sexp.SExp{sexp.NewSymbol(e.Op.String())}
		for _, arg := range e.Args {
			elements = append(elements, Lisp(arg))
		}
		//
		return sexp.NewList(elements)
	case *FunApp:
		elements := []sexp.SExp{sexp.NewSymbol(e.Fn.Name)}
		//
		if len(e.TypeArgs) != 0 {
			types := make([]sexp.SExp, len(e.TypeArgs))
			for i, t := range e.TypeArgs {
				types[i] = sexp.NewSymbol(t.String())
			}
			//
			elements = append(elements, sexp.NewArray(types))
		}
		//
		for _, arg := range e.Args {
			elements = append(elements, Lisp(arg))
		}
		//
		return sexp.NewList(elements)
	case *Quantifier:
		vars := make([]sexp.SExp, len(e.Vars))
		for i, v := range e.Vars {
			vars[i] = list(sexp.NewSymbol(v.Name), sexp.NewSymbol(v.T.String()))
		}
		//
		elements := []sexp.SExp{sexp.NewSymbol(e.Kind.String())}
		//
		if len(e.TypeParams) != 0 {
			params := make([]sexp.SExp, len(e.TypeParams))
			for i, p := range e.TypeParams {
				params[i] = sexp.NewSymbol(p.Name)
			}
			//
			elements = append(elements, sexp.NewArray(params))
		}
		//
		return sexp.NewList(append(elements, sexp.NewList(vars), Lisp(e.Body)))
	case *Let:
		bindings := make([]sexp.SExp, len(e.Bindings))
		for i, b := range e.Bindings {
			bindings[i] = list(sexp.NewSymbol(b.Var.Name), Lisp(b.Value))
		}
		//
		return list(sexp.NewSymbol("let"), sexp.NewList(bindings), Lisp(e.Body))
	}
	//
	panic(fmt.Sprintf("unknown expression %T", e))
}

// String renders an expression for debugging.
func String(e Expr) string {
	return Lisp(e).String(false)
}

func list(elements ...sexp.SExp) *sexp.List {
	return sexp.NewList(elements)
}
