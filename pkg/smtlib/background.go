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
	_ "embed"
	"os"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"
)

//go:embed background.smt2
var builtinText string

// Background supplies the theory text written at the start of every script.
// The text is loaded at most once, on first use.
type Background interface {
	Text() (string, error)
}

type lazyBackground struct {
	once sync.Once
	load func() (string, error)
	text string
	err  error
}

func (p *lazyBackground) Text() (string, error) {
	p.once.Do(func() {
		var text string
		//
		text, p.err = p.load()
		p.text = normaliseLines(text)
	})
	//
	return p.text, p.err
}

var builtin = &lazyBackground{load: func() (string, error) { return builtinText, nil }}

// BuiltinBackground returns the process-wide built-in background theory.
func BuiltinBackground() Background {
	return builtin
}

// FileBackground returns a background theory read from a given file on first
// use.  A missing file is reported as a ResourceError carrying its path.
func FileBackground(filename string) Background {
	return &lazyBackground{load: func() (string, error) {
		log.Debugf("loading background theory from %s", filename)
		//
		bytes, err := os.ReadFile(filename)
		if err != nil {
			return "", &ResourceError{"background theory", filename, err}
		}
		//
		return string(bytes), nil
	}}
}

// StaticBackground returns a background theory with fixed text.
func StaticBackground(text string) Background {
	return &lazyBackground{load: func() (string, error) { return text, nil }}
}

// Convert all line endings to "\n".
func normaliseLines(text string) string {
	return strings.ReplaceAll(strings.ReplaceAll(text, "\r\n", "\n"), "\r", "\n")
}
