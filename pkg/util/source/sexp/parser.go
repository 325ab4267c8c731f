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
	"unicode"

	"github.com/consensys/go-smtbridge/pkg/util/source"
)

// Parse a given file into exactly one S-expression, or return an error if the
// text is malformed.  A source map is also returned for reporting errors
// against the original text.
func Parse(s *source.File) (SExp, *source.Map[SExp], *source.SyntaxError) {
	p := NewParser(s)
	// Parse the input
	sExp, err := p.Parse()
	// Sanity check everything was parsed
	if err == nil {
		p.SkipWhiteSpace()
		//
		if p.index != len(p.text) {
			return nil, nil, p.error("unexpected remainder")
		}
	}
	// Done
	return sExp, p.SourceMap(), err
}

// ParseAll converts a given file into zero or more S-expressions, or returns
// an error if the text is malformed.  Unlike Parse, this continues after the
// first S-expression is encountered.
func ParseAll(s *source.File) ([]SExp, *source.Map[SExp], *source.SyntaxError) {
	p := NewParser(s)
	//
	terms := make([]SExp, 0)
	//
	for {
		term, err := p.Parse()
		// Sanity check everything was parsed
		if err != nil {
			return terms, p.srcmap, err
		} else if term == nil {
			// EOF reached
			return terms, p.srcmap, nil
		}

		terms = append(terms, term)
	}
}

// Parser represents a parser in the process of parsing a given text into one
// or more S-expressions.
type Parser struct {
	// Source file being parsed
	srcfile *source.File
	// Cache (for simplicity)
	text []rune
	// Determine current position within text
	index int
	// Mapping from constructed S-Expressions to their spans in the original text.
	srcmap *source.Map[SExp]
}

// NewParser constructs a new instance of Parser
func NewParser(srcfile *source.File) *Parser {
	return &Parser{
		srcfile: srcfile,
		text:    srcfile.Contents(),
		index:   0,
		srcmap:  source.NewSourceMap[SExp](srcfile),
	}
}

// SourceMap returns the source map constructed during parsing.
func (p *Parser) SourceMap() *source.Map[SExp] {
	return p.srcmap
}

// Parse the next S-Expression, returning nil at the end of the input.
func (p *Parser) Parse() (SExp, *source.SyntaxError) {
	var term SExp
	// Skip over any whitespace, so the recorded span starts at the term.
	p.SkipWhiteSpace()
	//
	start := p.index
	//
	if p.index == len(p.text) {
		return nil, nil
	}
	//
	switch c := p.text[p.index]; c {
	case ')':
		return nil, p.error("unexpected end-of-list")
	case ']':
		return nil, p.error("unexpected end-of-array")
	case '(', '[':
		p.index++
		//
		terminator := ')'
		if c == '[' {
			terminator = ']'
		}
		//
		elements, err := p.parseSequence(terminator)
		if err != nil {
			return nil, err
		} else if c == '(' {
			term = &List{elements}
		} else {
			term = &Array{elements}
		}
	case '"':
		value, err := p.parseString()
		if err != nil {
			return nil, err
		}
		//
		term = &String{value}
	case '|':
		value, err := p.parseQuotedSymbol()
		if err != nil {
			return nil, err
		}
		//
		term = &Symbol{value}
	default:
		term = &Symbol{p.parseSymbol()}
	}
	// Register item in source map
	p.srcmap.Put(term, source.NewSpan(start, p.index))
	// Done
	return term, nil
}

// SkipWhiteSpace skips over any whitespace, including comments.
func (p *Parser) SkipWhiteSpace() {
	for p.index < len(p.text) && (unicode.IsSpace(p.text[p.index]) || p.text[p.index] == ';') {
		if p.text[p.index] != ';' {
			p.index++
			continue
		}
		// Skip comment
		for p.index < len(p.text) && p.text[p.index] != '\n' {
			p.index++
		}
	}
}

func (p *Parser) parseSymbol() string {
	start := p.index
	//
	for p.index < len(p.text) && !isDelimiter(p.text[p.index]) {
		p.index++
	}
	//
	return string(p.text[start:p.index])
}

// Parse a symbol enclosed in vertical bars.  The bars are not retained.
func (p *Parser) parseQuotedSymbol() (string, *source.SyntaxError) {
	start := p.index
	p.index++
	//
	for p.index < len(p.text) {
		switch p.text[p.index] {
		case '|':
			p.index++
			return string(p.text[start+1 : p.index-1]), nil
		case '\\':
			return "", p.error("backslash not permitted in quoted symbol")
		}
		//
		p.index++
	}
	//
	p.index = start

	return "", p.error("unterminated quoted symbol")
}

// Parse a string literal, where two consecutive double quotes denote a single
// double quote.
func (p *Parser) parseString() (string, *source.SyntaxError) {
	var (
		start = p.index
		value []rune
	)
	//
	p.index++
	//
	for p.index < len(p.text) {
		c := p.text[p.index]
		p.index++
		//
		if c != '"' {
			value = append(value, c)
		} else if p.index < len(p.text) && p.text[p.index] == '"' {
			value = append(value, '"')
			p.index++
		} else {
			return string(value), nil
		}
	}
	//
	p.index = start

	return "", p.error("unterminated string literal")
}

func (p *Parser) parseSequence(terminator rune) ([]SExp, *source.SyntaxError) {
	var elements []SExp
	//
	for {
		p.SkipWhiteSpace()
		//
		if p.index == len(p.text) {
			return nil, p.error("unexpected end-of-file")
		} else if p.text[p.index] == terminator {
			p.index++
			return elements, nil
		}
		// Parse next element
		element, err := p.Parse()
		if err != nil {
			return nil, err
		}
		//
		elements = append(elements, element)
	}
}

func isDelimiter(c rune) bool {
	return c == '(' || c == ')' || c == '[' || c == ']' || c == '"' || c == '|' || c == ';' || unicode.IsSpace(c)
}

// Construct a parser error at the current position in the input stream.
func (p *Parser) error(msg string) *source.SyntaxError {
	end := min(p.index+1, len(p.text))
	span := source.NewSpan(min(p.index, end), end)
	//
	return p.srcfile.SyntaxError(span, msg)
}
