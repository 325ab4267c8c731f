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

import "math"

// FormattingRule provides a generic mechanism for writing custom formatting
// rules.  Whenever a list is encountered during formatting, the rules are given
// the opportunity to direct formatting of the list.  That is, whether to start
// a new line and indent the list as whole and/or any of its children.  A rule
// returns nil chunks when it doesn't handle the given list.
type FormattingRule interface {
	Split(*List) ([]FormattingChunk, uint)
}

// SMTLibRules returns the formatting rules used for pretty printing SMT-LIB
// terms: binders keep their bound variables on the head line, connectives
// place each operand on its own line.
func SMTLibRules() []FormattingRule {
	return []FormattingRule{
		&SFormatter{Head: "let", Priority: 1},
		&SFormatter{Head: "forall", Priority: 1},
		&SFormatter{Head: "exists", Priority: 1},
		&SFormatter{Head: "!", Priority: 2},
		&LFormatter{Head: "=>", Priority: 2},
		&LFormatter{Head: "and", Priority: 3},
		&LFormatter{Head: "or", Priority: 3},
		&LFormatter{Head: "ite", Priority: 4},
	}
}

// LFormatter indents a list like so:
//
//	(head
//	  child1
//	  ...
//	  childn)
type LFormatter struct {
	// Head symbol to match
	Head string
	// Priority to give for matching.
	Priority uint
}

// Split a list using the LFormatter where the list matches.
func (p *LFormatter) Split(list *List) ([]FormattingChunk, uint) {
	return splitAfter(list, p.Head, p.Priority, 1)
}

// SFormatter is a variation on the LFormatter which keeps the first child on
// the head line, thusly:
//
//	(head child1
//	  child2
//	  ...
//	  childn)
type SFormatter struct {
	// Head symbol to match
	Head string
	// Priority to give for matching.
	Priority uint
}

// Split a list using the SFormatter where the list matches.
func (p *SFormatter) Split(list *List) ([]FormattingChunk, uint) {
	return splitAfter(list, p.Head, p.Priority, 2)
}

// Split every element of a list whose head matches, from position n onwards,
// at the given priority.
func splitAfter(list *List, head string, priority uint, n int) ([]FormattingChunk, uint) {
	if list.Len() == 0 || list.Head() != head {
		return nil, 0
	}
	//
	chunks := make([]FormattingChunk, list.Len())
	//
	for i := range chunks {
		chunks[i].Contents = list.Get(i)
		//
		if i < n {
			chunks[i].Priority = math.MaxUint
		} else {
			chunks[i].Priority = priority
			chunks[i].Indent = 1
		}
	}
	//
	return chunks, math.MaxUint
}
