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
package source

import "fmt"

// Span represents a contiguous slice of the original text.  Retaining the
// physical indices (rather than a string slice) allows us to determine the
// enclosing line, etc.
type Span struct {
	// The first character of this span in the original text.
	start int
	// One past the final character of this span in the original text.
	end int
}

// NewSpan constructs a new span whilst checking the internal invariants are
// maintained.
func NewSpan(start int, end int) Span {
	if start > end {
		panic(fmt.Sprintf("invalid span [%d,%d)", start, end))
	}

	return Span{start, end}
}

// Start returns the starting index of this span in the original text.
func (p *Span) Start() int {
	return p.start
}

// End returns one past the last index of this span in the original text.
func (p *Span) End() int {
	return p.end
}

// Length returns the number of characters covered by this span.
func (p *Span) Length() int {
	return p.end - p.start
}

// Map maps nodes of a parsed tree to the spans of text they came from, so
// errors can be reported against the original input.
type Map[T comparable] struct {
	mapping map[T]Span
	srcfile *File
}

// NewSourceMap constructs an initially empty source map for a given file.
func NewSourceMap[T comparable](srcfile *File) *Map[T] {
	return &Map[T]{make(map[T]Span), srcfile}
}

// Source returns the underlying source file on which this map operates.
func (p *Map[T]) Source() *File {
	return p.srcfile
}

// Put registers a node with a given span.  Registering the same node twice is
// a parser defect.
func (p *Map[T]) Put(item T, span Span) {
	if _, ok := p.mapping[item]; ok {
		panic(fmt.Sprintf("source map key already exists: %v", item))
	}
	//
	p.mapping[item] = span
}

// Has checks whether a given node is mapped.
func (p *Map[T]) Has(item T) bool {
	_, ok := p.mapping[item]
	return ok
}

// Get determines the span associated with a given node.  If the node is not
// mapped, the span of the whole file is returned.
func (p *Map[T]) Get(item T) Span {
	if s, ok := p.mapping[item]; ok {
		return s
	}
	//
	return Span{0, len(p.srcfile.contents)}
}

// SyntaxError constructs a syntax error for a given node.
func (p *Map[T]) SyntaxError(node T, msg string) *SyntaxError {
	return p.srcfile.SyntaxError(p.Get(node), msg)
}

// SyntaxErrors constructs a syntax error and places it into an array of size
// one, which is convenient where sets of errors are passed around.
func (p *Map[T]) SyntaxErrors(node T, msg string) []SyntaxError {
	return []SyntaxError{*p.SyntaxError(node, msg)}
}
