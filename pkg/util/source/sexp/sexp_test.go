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
package sexp

import (
	"reflect"
	"strings"
	"testing"

	"github.com/consensys/go-smtbridge/pkg/util/source"
	"github.com/stretchr/testify/assert"
)

// ============================================================================
// Positive Tests
// ============================================================================

func TestSexp_0(t *testing.T) {
	CheckOk(t, nil, "")
}

func TestSexp_1(t *testing.T) {
	e1 := List{nil}
	CheckOk(t, &e1, "()")
}

func TestSexp_2(t *testing.T) {
	e1 := List{nil}
	e2 := List{[]SExp{&e1}}
	CheckOk(t, &e2, "(())")
}

func TestSexp_3(t *testing.T) {
	e1 := Array{nil}
	CheckOk(t, &e1, "[]")
}

func TestSexp_4(t *testing.T) {
	e1 := Symbol{"a"}
	e2 := Array{[]SExp{&e1}}
	e3 := Symbol{"f"}
	e4 := List{[]SExp{&e3, &e2}}
	CheckOk(t, &e4, "(f [a])")
}

func TestSexp_5(t *testing.T) {
	e1 := Symbol{"+12345"}
	CheckOk(t, &e1, "+12345")
}

func TestSexp_6(t *testing.T) {
	e1 := Symbol{"hello world"}
	e2 := Symbol{"f"}
	e3 := List{[]SExp{&e2, &e1}}
	CheckOk(t, &e3, "(f |hello world|)")
}

func TestSexp_7(t *testing.T) {
	e1 := String{"say \"hi\""}
	CheckOk(t, &e1, "\"say \"\"hi\"\"\"")
}

func TestSexp_8(t *testing.T) {
	e1 := Symbol{"x"}
	e2 := Symbol{"y"}
	e3 := List{[]SExp{&e1, &e2}}
	CheckOk(t, &e3, "; leading comment\n(x ; inner\n y)")
}

func TestSexp_9(t *testing.T) {
	e1 := Symbol{"hello"}
	e2 := Symbol{"world"}
	e3 := List{[]SExp{&e2}}
	e4 := List{[]SExp{&e1, &e3}}
	CheckOk(t, &e4, "(hello (world))")
}

func TestSexp_ParseAll(t *testing.T) {
	terms, _, err := ParseAll(source.NewSourceFile("test", []byte("(a) b \"c\" [d]")))
	//
	assert.Nil(t, err)
	assert.Len(t, terms, 4)
	assert.Equal(t, "(a)", terms[0].String(true))
	assert.Equal(t, "b", terms[1].String(true))
	assert.Equal(t, "\"c\"", terms[2].String(true))
	assert.Equal(t, "[d]", terms[3].String(true))
}

// ============================================================================
// Quoting
// ============================================================================

func TestSexp_Quote(t *testing.T) {
	tests := []struct {
		value    string
		expected string
	}{
		{"x", "x"},
		{"x@0", "x@0"},
		{"a.b", "a.b"},
		{"1x", "|1x|"},
		{"a b", "|a b|"},
		{"a|b", "|a_b|"},
		{"a\\b", "|a_b|"},
		{"", "||"},
		{"Map<int>", "Map<int>"},
		{"pair(a,b)", "|pair(a,b)|"},
	}
	//
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.expected, NewSymbol(tt.value).String(true))
		})
	}
}

func TestSexp_Format(t *testing.T) {
	src := "(forall ((x Int) (y Int)) (=> (and (> x 0) (> y 0)) (> (+ x y) 0)))"
	sexp := CheckParse(t, src)
	// A wide formatter leaves the term on one line
	wide := NewFormatter(200, SMTLibRules()...)
	assert.Equal(t, src+"\n", wide.Format(sexp))
	// A narrow formatter splits, but loses no tokens
	narrow := NewFormatter(30, SMTLibRules()...)
	text := narrow.Format(sexp)
	//
	assert.Greater(t, strings.Count(text, "\n"), 1)
	assert.Equal(t, strings.Fields(strings.NewReplacer("(", " ( ", ")", " ) ").Replace(src)),
		strings.Fields(strings.NewReplacer("(", " ( ", ")", " ) ").Replace(text)))
}

// ============================================================================
// Negative Tests
// ============================================================================

// unexpected end of list
func TestSexp_Err1(t *testing.T) {
	CheckErr(t, ")")
}

// unexpected end of list
func TestSexp_Err2(t *testing.T) {
	CheckErr(t, "())")
}

// unexpected end of file
func TestSexp_Err3(t *testing.T) {
	CheckErr(t, "(string")
}

// unterminated quoted symbol
func TestSexp_Err4(t *testing.T) {
	CheckErr(t, "(f |abc)")
}

// unterminated string
func TestSexp_Err5(t *testing.T) {
	CheckErr(t, "(f \"abc)")
}

// mismatched brackets
func TestSexp_Err6(t *testing.T) {
	CheckErr(t, "(f [a)]")
}

// ============================================================================
// Helpers
// ============================================================================

func CheckParse(t *testing.T, input string) SExp {
	sexp, _, err := Parse(source.NewSourceFile("test", []byte(input)))
	if err != nil {
		t.Fatal(err)
	}
	//
	return sexp
}

func CheckOk(t *testing.T, sexp1 SExp, input string) {
	sexp2, _, err := Parse(source.NewSourceFile("test", []byte(input)))
	//
	if err != nil {
		t.Error(err)
	} else if !reflect.DeepEqual(sexp1, sexp2) {
		t.Errorf("%v != %v", sexp1, sexp2)
	}
}

func CheckErr(t *testing.T, input string) {
	_, _, err := Parse(source.NewSourceFile("test", []byte(input)))
	//
	if err == nil {
		t.Errorf("input should not have parsed!")
	}
}
