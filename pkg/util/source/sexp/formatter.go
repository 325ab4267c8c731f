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
	"math"
)

// FormattingChunk represents a chunk of a list which is to be indented at a
// given priority level.
type FormattingChunk struct {
	Priority uint
	Indent   uint
	Contents SExp
}

// Formatter encapsulates and applies a given set of rules.
type Formatter struct {
	// Maximum desired width
	maxWidth uint
	// Rules to be used for formatting
	rules []FormattingRule
}

// NewFormatter constructs a new formatter which aims to fit its output within a
// given width.
func NewFormatter(width uint, rules ...FormattingRule) *Formatter {
	return &Formatter{width, rules}
}

// Add a new formatting rule to this formatter.
func (p *Formatter) Add(rule FormattingRule) {
	p.rules = append(p.rules, rule)
}

// Format a given S-Expression using the rules embedded within this formatter.
// The priority threshold is raised until the text fits, or no further splits
// are possible.
func (p *Formatter) Format(sexp SExp) string {
	var (
		priority uint
		text     FormattedText
	)
	//
	for {
		text = format(priority, p.maxWidth, sexp, p.rules)
		//
		if w := text.MaxWidth(); w <= p.maxWidth || priority >= maxPriority {
			return text.String()
		}
		//
		priority++
	}
}

const maxPriority = 10

func format(priority, maxWidth uint, sexp SExp, rules []FormattingRule) FormattedText {
	var text FormattedText
	//
	formatInner(priority, maxWidth, false, sexp, rules, &text)
	//
	return text
}

func formatInner(priority, maxWidth uint, newline bool, sexp SExp, rules []FormattingRule, text *FormattedText) {
	list := sexp.AsList()
	//
	if list == nil {
		text.WriteString(sexp.String(false))
		return
	}
	// Short lists are never split.
	if text.LineWidth()+uint(len(list.String(false))) <= maxWidth {
		text.WriteString(list.String(false))
		return
	}
	//
	for _, rule := range rules {
		if chunks, indent := rule.Split(list); chunks != nil {
			formatWith(priority, maxWidth, newline, chunks, indent, rules, text)
			return
		}
	}
	// default rule
	formatDefault(priority, maxWidth, list, rules, text)
}

func formatWith(priority, maxWidth uint, newline bool, chunks []FormattingChunk, indent uint,
	rules []FormattingRule, text *FormattedText) {
	//
	if indent != math.MaxUint && !newline {
		text.Indent(int(indent))
		text.NewLine()
	}
	//
	text.WriteString("(")
	//
	for i, chunk := range chunks {
		var nl bool
		//
		if chunk.Priority <= priority {
			text.Indent(int(chunk.Indent))
			text.NewLine()
			//
			nl = true
		} else if i != 0 {
			text.WriteString(" ")
		}
		//
		formatInner(priority, maxWidth, nl, chunk.Contents, rules, text)
		//
		if chunk.Priority <= priority {
			text.Indent(-int(chunk.Indent))
		}
	}
	//
	text.WriteString(")")
	//
	if indent != math.MaxUint && !newline {
		text.Indent(-int(indent))
	}
}

func formatDefault(priority, maxWidth uint, sexp *List, rules []FormattingRule, text *FormattedText) {
	text.WriteString("(")
	//
	for i := 0; i < sexp.Len(); i++ {
		if i != 0 {
			text.WriteString(" ")
		}

		formatInner(priority, maxWidth, false, sexp.Get(i), rules, text)
	}
	//
	text.WriteString(")")
}
