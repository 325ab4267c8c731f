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
	"strings"
)

// SExp is an S-Expression, which is either a List or an Array of zero or more
// S-Expressions, a Symbol or a String literal.
type SExp interface {
	// AsList checks whether this S-Expression is a list and, if
	// so, returns it.  Otherwise, it returns nil.
	AsList() *List
	// AsArray checks whether this S-Expression is an array and, if so, returns
	// it.  Otherwise, it returns nil.
	AsArray() *Array
	// AsSymbol checks whether this S-Expression is a symbol and,
	// if so, returns it.  Otherwise, it returns nil.
	AsSymbol() *Symbol
	// AsString checks whether this S-Expression is a string literal and, if so,
	// returns it.  Otherwise, it returns nil.
	AsString() *String
	// String generates a string representation which may (may not) be quoted.
	// Quoting is used to manage symbol names which are not legal SMT-LIB simple
	// symbols.
	String(quote bool) string
}

// ===================================================================
// List
// ===================================================================

// List represents a list of zero or more S-Expressions.
type List struct {
	Elements []SExp
}

// NOTE: This is used for compile time type checking if the given type
// satisfies the given interface.
var _ SExp = (*List)(nil)

// EmptyList creates an empty list.
func EmptyList() *List {
	return &List{}
}

// NewList creates a new list from a given array of S-Expressions.
func NewList(elements []SExp) *List {
	return &List{elements}
}

// AsArray returns nil for a list.
func (l *List) AsArray() *Array { return nil }

// AsList returns the given list.
func (l *List) AsList() *List { return l }

// AsSymbol returns nil for a list.
func (l *List) AsSymbol() *Symbol { return nil }

// AsString returns nil for a list.
func (l *List) AsString() *String { return nil }

// Len gets the number of elements in this list.
func (l *List) Len() int { return len(l.Elements) }

// Get the ith element of this list
func (l *List) Get(i int) SExp { return l.Elements[i] }

// Append a new element onto this list.
func (l *List) Append(element SExp) {
	l.Elements = append(l.Elements, element)
}

func (l *List) String(quote bool) string {
	var builder strings.Builder
	//
	writeTo(&builder, l, quote)
	//
	return builder.String()
}

// Head returns the value of the leading symbol of this list, or "" when the
// list is empty or does not start with a symbol.
func (l *List) Head() string {
	if len(l.Elements) == 0 {
		return ""
	} else if sym := l.Elements[0].AsSymbol(); sym != nil {
		return sym.Value
	}
	//
	return ""
}

// MatchSymbols matches a list which starts with at least n elements, of which
// the first m are symbols matching the given strings.
func (l *List) MatchSymbols(n int, symbols ...string) bool {
	if len(l.Elements) < n || len(symbols) > n {
		return false
	}

	for i := 0; i < len(symbols); i++ {
		switch ith := l.Elements[i].(type) {
		case *Symbol:
			if ith.Value != symbols[i] {
				return false
			}
		default:
			return false
		}
	}

	return true
}

// ===================================================================
// Array
// ===================================================================

// Array represents a bracketed sequence of zero or more S-Expressions.  These
// carry type parameters and type arguments in the input language.
type Array struct {
	Elements []SExp
}

// NOTE: This is used for compile time type checking if the given type
// satisfies the given interface.
var _ SExp = (*Array)(nil)

// NewArray creates a new Array from a given array of S-Expressions.
func NewArray(elements []SExp) *Array {
	return &Array{elements}
}

// AsArray returns the given array.
func (a *Array) AsArray() *Array { return a }

// AsList returns nil for an Array.
func (a *Array) AsList() *List { return nil }

// AsSymbol returns nil for an Array.
func (a *Array) AsSymbol() *Symbol { return nil }

// AsString returns nil for an Array.
func (a *Array) AsString() *String { return nil }

// Len gets the number of elements in this Array.
func (a *Array) Len() int { return len(a.Elements) }

// Get the ith element of this Array
func (a *Array) Get(i int) SExp { return a.Elements[i] }

func (a *Array) String(quote bool) string {
	var builder strings.Builder
	//
	writeTo(&builder, a, quote)
	//
	return builder.String()
}

// ===================================================================
// Symbol
// ===================================================================

// Symbol represents a terminating symbol.  The value is held unquoted.
type Symbol struct {
	Value string
}

// NOTE: This is used for compile time type checking if the given type
// satisfies the given interface.
var _ SExp = (*Symbol)(nil)

// NewSymbol creates a new symbol from a given string.
func NewSymbol(value string) *Symbol {
	return &Symbol{value}
}

// AsArray returns nil for a symbol.
func (s *Symbol) AsArray() *Array { return nil }

// AsList returns nil for a symbol.
func (s *Symbol) AsList() *List { return nil }

// AsSymbol returns the given symbol
func (s *Symbol) AsSymbol() *Symbol { return s }

// AsString returns nil for a symbol.
func (s *Symbol) AsString() *String { return nil }

func (s *Symbol) String(quote bool) string {
	if quote {
		return QuoteSymbol(s.Value)
	}
	// No quote required
	return s.Value
}

// QuoteSymbol returns the SMT-LIB representation of a symbol value: values
// which are legal simple symbols are returned unchanged, others are enclosed in
// vertical bars.  Characters which cannot appear in a quoted symbol ('|' and
// '\') are replaced by underscores, which is deterministic but not injective.
func QuoteSymbol(value string) string {
	if IsSimpleSymbol(value) {
		return value
	}
	//
	var builder strings.Builder
	//
	builder.WriteByte('|')
	//
	for _, r := range value {
		if r == '|' || r == '\\' {
			builder.WriteByte('_')
		} else {
			builder.WriteRune(r)
		}
	}
	//
	builder.WriteByte('|')
	//
	return builder.String()
}

// IsSimpleSymbol checks whether a given value is a legal SMT-LIB simple
// symbol, i.e. a non-empty sequence of letters, digits and the characters
// ~!@$%^&*_-+=<>.?/ which does not start with a digit.
func IsSimpleSymbol(value string) bool {
	if value == "" || (value[0] >= '0' && value[0] <= '9') {
		return false
	}
	//
	for _, r := range value {
		if !isSymbolLetter(r) {
			return false
		}
	}
	//
	return true
}

func isSymbolLetter(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	}
	//
	return strings.ContainsRune("~!@$%^&*_-+=<>.?/", r)
}

// ===================================================================
// String
// ===================================================================

// String represents a string literal.  The value is held unescaped.
type String struct {
	Value string
}

// NOTE: This is used for compile time type checking if the given type
// satisfies the given interface.
var _ SExp = (*String)(nil)

// NewString creates a new string literal.
func NewString(value string) *String {
	return &String{value}
}

// AsArray returns nil for a string.
func (s *String) AsArray() *Array { return nil }

// AsList returns nil for a string.
func (s *String) AsList() *List { return nil }

// AsSymbol returns nil for a string.
func (s *String) AsSymbol() *Symbol { return nil }

// AsString returns the given string.
func (s *String) AsString() *String { return s }

// String renders this literal in SMT-LIB form, where a double quote inside the
// literal is written twice.  String literals are always quoted.
func (s *String) String(bool) string {
	return "\"" + strings.ReplaceAll(s.Value, "\"", "\"\"") + "\""
}

// ===================================================================
// Helpers
// ===================================================================

func writeTo(builder *strings.Builder, sexp SExp, quote bool) {
	var (
		elements    []SExp
		open, close byte
	)
	//
	switch e := sexp.(type) {
	case *List:
		elements, open, close = e.Elements, '(', ')'
	case *Array:
		elements, open, close = e.Elements, '[', ']'
	default:
		builder.WriteString(sexp.String(quote))
		return
	}
	//
	builder.WriteByte(open)
	//
	for i, element := range elements {
		if i != 0 {
			builder.WriteByte(' ')
		}

		writeTo(builder, element, quote)
	}
	//
	builder.WriteByte(close)
}
