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

import "strings"

// FormattedText is a chunk of text being laid out line by line.
type FormattedText struct {
	// Current indent level
	indent int
	// Lines being written
	lines []string
}

func (p *FormattedText) String() string {
	return strings.Join(p.lines, "\n") + "\n"
}

// Indent increases or decreases the current indent level.
func (p *FormattedText) Indent(delta int) {
	p.indent += delta
}

// NewLine starts a new line at the current indent level.
func (p *FormattedText) NewLine() {
	p.lines = append(p.lines, strings.Repeat("  ", max(p.indent, 0)))
}

// LineWidth returns the width of the current line.
func (p *FormattedText) LineWidth() uint {
	if n := len(p.lines); n != 0 {
		return uint(len(p.lines[n-1]))
	}
	//
	return 0
}

// MaxWidth returns the maximum width of any line in this block.
func (p *FormattedText) MaxWidth() uint {
	width := 0
	//
	for _, l := range p.lines {
		width = max(width, len(l))
	}
	//
	return uint(width)
}

// WriteString appends a string onto the current line.
func (p *FormattedText) WriteString(str string) {
	if n := len(p.lines); n == 0 {
		p.lines = append(p.lines, str)
	} else {
		p.lines[n-1] += str
	}
}
