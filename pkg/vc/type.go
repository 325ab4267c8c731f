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
	"strings"
)

// Type represents the type of a verification condition expression.
type Type interface {
	// String returns a human readable representation of this type.
	String() string
	isType()
}

// BasicType represents one of the types which every solver supports natively,
// along with the two sorts introduced by type erasure.
type BasicType uint8

const (
	// Bool is the type of formulas.
	Bool BasicType = iota
	// Int is the type of mathematical integers.
	Int
	// Real is the type of mathematical reals.
	Real
	// Str is the type of character strings.
	Str
	// Universe is the single sort into which erased values are mapped.
	Universe
	// TypeSort is the sort of terms representing types after erasure.
	TypeSort
)

func (BasicType) isType() {}

func (p BasicType) String() string {
	switch p {
	case Bool:
		return "Bool"
	case Int:
		return "Int"
	case Real:
		return "Real"
	case Str:
		return "String"
	case Universe:
		return "U"
	case TypeSort:
		return "T"
	}
	//
	panic(fmt.Sprintf("unknown basic type %d", uint8(p)))
}

// BitVecType represents a fixed-width bitvector type.
type BitVecType struct {
	Width uint
}

func (*BitVecType) isType() {}

func (p *BitVecType) String() string {
	return fmt.Sprintf("bv%d", p.Width)
}

// TypeCtor is a user-declared type constructor of a given arity, such as
// "List" with arity 1.  Constructors are compared by identity.
type TypeCtor struct {
	Name  string
	Arity uint
}

// CtorType is the application of a type constructor to type arguments.
type CtorType struct {
	Ctor *TypeCtor
	Args []Type
}

func (*CtorType) isType() {}

func (p *CtorType) String() string {
	if len(p.Args) == 0 {
		return p.Ctor.Name
	}
	//
	args := make([]string, len(p.Args))
	for i, arg := range p.Args {
		args[i] = arg.String()
	}
	//
	return fmt.Sprintf("%s<%s>", p.Ctor.Name, strings.Join(args, ","))
}

// TypeVar is a type variable bound by a polymorphic function or a quantifier.
// Type variables are compared by identity.
type TypeVar struct {
	Name string
}

func (*TypeVar) isType() {}

func (p *TypeVar) String() string {
	return p.Name
}

// NewCtorType constructs the application of a given constructor, checking the
// number of arguments matches its arity.
func NewCtorType(ctor *TypeCtor, args ...Type) *CtorType {
	if uint(len(args)) != ctor.Arity {
		panic(fmt.Sprintf("type %s expects %d arguments, got %d", ctor.Name, ctor.Arity, len(args)))
	}
	//
	return &CtorType{ctor, args}
}

// IsNative checks whether a type is supported natively by the solver, i.e. it
// is neither a constructor application nor a type variable.
func IsNative(t Type) bool {
	switch t.(type) {
	case BasicType, *BitVecType:
		return true
	}
	//
	return false
}

// TypeEquals checks whether two types are structurally identical.
func TypeEquals(a, b Type) bool {
	switch a := a.(type) {
	case BasicType:
		return a == b
	case *BitVecType:
		if b, ok := b.(*BitVecType); ok {
			return a.Width == b.Width
		}
	case *TypeVar:
		return Type(a) == b
	case *CtorType:
		if b, ok := b.(*CtorType); ok && a.Ctor == b.Ctor {
			for i := range a.Args {
				if !TypeEquals(a.Args[i], b.Args[i]) {
					return false
				}
			}
			//
			return true
		}
	}
	//
	return false
}

// Subst applies a substitution of type variables to a given type.
func Subst(t Type, subst map[*TypeVar]Type) Type {
	switch t := t.(type) {
	case *TypeVar:
		if r, ok := subst[t]; ok {
			return r
		}
	case *CtorType:
		if len(t.Args) == 0 {
			return t
		}
		//
		args := make([]Type, len(t.Args))
		for i, arg := range t.Args {
			args[i] = Subst(arg, subst)
		}
		//
		return &CtorType{t.Ctor, args}
	}
	//
	return t
}

// IsGround checks whether a type contains no type variables.
func IsGround(t Type) bool {
	switch t := t.(type) {
	case *TypeVar:
		return false
	case *CtorType:
		for _, arg := range t.Args {
			if !IsGround(arg) {
				return false
			}
		}
	}
	//
	return true
}

// Occurs checks whether a given type variable occurs within a type.
func Occurs(v *TypeVar, t Type) bool {
	switch t := t.(type) {
	case *TypeVar:
		return t == v
	case *CtorType:
		for _, arg := range t.Args {
			if Occurs(v, arg) {
				return true
			}
		}
	}
	//
	return false
}
