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
	"regexp"
	"strings"

	"github.com/consensys/go-smtbridge/pkg/util/source/sexp"
	"github.com/consensys/go-smtbridge/pkg/vc"
)

// Namer assigns identifiers to the global symbols of a session, namely sorts,
// constants and functions.  Identifiers are stable (once assigned they never
// change), injective and legal SMT-LIB symbols.  Symbols are keyed by identity,
// so two distinct symbols with the same source name receive distinct
// identifiers.
//
// Assigned identifiers never end in "@" followed by digits.  Such names are
// reserved for variables bound within a single formula (see Linearize).
type Namer struct {
	// Maps symbol keys to their emitted identifiers.
	names map[any]string
	// Set of assigned identifiers (in unquoted form).
	used map[string]bool
}

// Keys for the builtin sorts introduced by type erasure.
type builtinSortKey vc.BasicType

// Key for a function instantiated at given type arguments.
type instanceKey struct {
	fn   *vc.Function
	args string
}

var localSuffix = regexp.MustCompile(`@[0-9]+$`)

// Words which cannot be used as user identifiers.
var reservedWords = map[string]bool{
	// Reserved words
	"!": true, "_": true, "as": true, "BINARY": true, "DECIMAL": true, "exists": true, "forall": true,
	"HEXADECIMAL": true, "let": true, "match": true, "NUMERAL": true, "par": true, "STRING": true,
	// Core and arithmetic theories
	"true": true, "false": true, "not": true, "and": true, "or": true, "xor": true, "=>": true, "=": true,
	"distinct": true, "ite": true, "Bool": true, "Int": true, "Real": true, "String": true, "BitVec": true,
	"Array": true, "select": true, "store": true, "+": true, "-": true, "*": true, "/": true, "div": true,
	"mod": true, "abs": true, "<": true, "<=": true, ">": true, ">=": true, "to_real": true, "to_int": true,
	"is_int": true, "divisible": true, "const": true,
	// Fixed-size bitvectors
	"concat": true, "extract": true, "repeat": true, "zero_extend": true, "sign_extend": true,
	"rotate_left": true, "rotate_right": true, "bvnot": true, "bvand": true, "bvor": true, "bvxor": true,
	"bvnand": true, "bvnor": true, "bvxnor": true, "bvcomp": true, "bvneg": true, "bvadd": true, "bvsub": true,
	"bvmul": true, "bvudiv": true, "bvurem": true, "bvsdiv": true, "bvsrem": true, "bvsmod": true, "bvshl": true,
	"bvlshr": true, "bvashr": true, "bvult": true, "bvule": true, "bvugt": true, "bvuge": true, "bvslt": true,
	"bvsle": true, "bvsgt": true, "bvsge": true, "bv2nat": true, "nat2bv": true, "int2bv": true, "bv2int": true,
	// Strings and regular expressions
	"str.++": true, "str.len": true, "str.<": true, "str.<=": true, "str.at": true, "str.substr": true,
	"str.prefixof": true, "str.suffixof": true, "str.contains": true, "str.indexof": true, "str.replace": true,
	"str.replace_all": true, "str.replace_re": true, "str.replace_re_all": true, "str.is_digit": true,
	"str.to_code": true, "str.from_code": true, "str.to_int": true, "str.from_int": true, "str.to.re": true,
	"str.to_re": true, "str.in_re": true, "str.in.re": true, "RegLan": true, "re.none": true, "re.all": true,
	"re.allchar": true, "re.++": true, "re.union": true, "re.inter": true, "re.*": true, "re.+": true,
	"re.opt": true, "re.range": true, "re.comp": true, "re.diff": true, "re.loop": true, "re.^": true,
}

// NewNamer constructs an empty namer.
func NewNamer() *Namer {
	return &Namer{make(map[any]string), make(map[string]bool)}
}

// SortName returns the identifier of a user sort constructor.
func (p *Namer) SortName(ctor *vc.TypeCtor) string {
	return p.nameOf(ctor, ctor.Name)
}

// BuiltinSortName returns the identifier of a sort introduced by erasure (i.e.
// U or T).
func (p *Namer) BuiltinSortName(t vc.BasicType) string {
	if t != vc.Universe && t != vc.TypeSort {
		panic(fmt.Sprintf("%s is not a declared sort", t))
	}
	//
	return p.nameOf(builtinSortKey(t), t.String())
}

// ConstantName returns the identifier of a free constant.
func (p *Namer) ConstantName(v *vc.Var) string {
	return p.nameOf(v, v.Name)
}

// FunctionName returns the identifier of a function at given type arguments.
// Distinct instantiations of a polymorphic function are distinct symbols.
func (p *Namer) FunctionName(fn *vc.Function, typeArgs []vc.Type) string {
	if len(typeArgs) == 0 {
		return p.nameOf(fn, fn.Name)
	}
	//
	args := typeList(typeArgs)
	//
	return p.nameOf(instanceKey{fn, args}, fmt.Sprintf("%s<%s>", fn.Name, args))
}

// Size returns the number of symbols named so far.
func (p *Namer) Size() int {
	return len(p.names)
}

func (p *Namer) nameOf(key any, base string) string {
	if name, ok := p.names[key]; ok {
		return name
	}
	// Characters not permitted in quoted symbols.
	base = strings.NewReplacer("|", "_", "\\", "_").Replace(base)
	//
	if base == "" {
		base = "anon"
	}
	//
	name := base
	//
	for i := 1; p.used[name] || reservedWords[name] || localSuffix.MatchString(name); i++ {
		name = fmt.Sprintf("%s_%d", base, i)
	}
	//
	p.used[name] = true
	quoted := sexp.QuoteSymbol(name)
	p.names[key] = quoted
	//
	return quoted
}

func typeList(types []vc.Type) string {
	args := make([]string, len(types))
	for i, t := range types {
		args[i] = t.String()
	}
	//
	return strings.Join(args, ",")
}
