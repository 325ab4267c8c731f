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
package solver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/consensys/go-smtbridge/pkg/smtlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Locate_Missing(t *testing.T) {
	var (
		dir     = t.TempDir()
		locator = NewLocator(func() (string, error) { return dir, nil })
	)
	//
	_, err := locator.Locate("")
	//
	var rerr *smtlib.ResourceError
	//
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, filepath.Join(dir, executableName()), rerr.Path)
	assert.Contains(t, err.Error(), filepath.Join(dir, executableName()))
}

func Test_Locate_ExplicitMissing(t *testing.T) {
	var (
		dir      = t.TempDir()
		explicit = filepath.Join(dir, "solver")
		locator  = NewLocator(func() (string, error) { return dir, nil })
	)
	// An explicit path must exist, even if the default does.
	require.NoError(t, os.WriteFile(filepath.Join(dir, executableName()), nil, 0o700))
	//
	_, err := locator.Locate(explicit)
	//
	var rerr *smtlib.ResourceError
	//
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, explicit, rerr.Path)
}

func Test_Locate_Cached(t *testing.T) {
	var (
		dir     = t.TempDir()
		calls   = 0
		locator = NewLocator(func() (string, error) { calls++; return dir, nil })
		path    = filepath.Join(dir, executableName())
	)
	//
	require.NoError(t, os.WriteFile(path, nil, 0o700))
	//
	first, err := locator.Locate("")
	require.NoError(t, err)
	assert.Equal(t, path, first)
	// Resolution happens once only
	require.NoError(t, os.Remove(path))
	second, err := locator.Locate("")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)
}

func Test_Locate_Directory(t *testing.T) {
	dir := t.TempDir()
	//
	_, err := NewLocator(func() (string, error) { return dir, nil }).Locate(dir)
	assert.Error(t, err)
}

func Test_ParseResponse(t *testing.T) {
	tests := []struct {
		name     string
		output   string
		outcome  smtlib.Outcome
		details  string
		warnings int
	}{
		{"unsat", "unsat\n", smtlib.Valid, "", 0},
		{"sat", "sat\n(model (define-fun x () Int 1))\n", smtlib.Invalid, "(model (define-fun x () Int 1))", 0},
		{"unknown", "unknown\n", smtlib.Undetermined, "", 0},
		{"timeout", "timeout\n", smtlib.TimeOut, "", 0},
		{"error", "(error \"line 3 column 1: unknown constant\")\nunsat\n", smtlib.Valid, "", 1},
		{"empty", "", smtlib.Undetermined, "", 0},
		{"malformed", "(((\n", smtlib.Undetermined, "", 1},
		{"unexpected", "unsupported\nunknown\n", smtlib.Undetermined, "", 1},
	}
	//
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			response := ParseResponse(test.output)
			//
			assert.Equal(t, test.outcome, response.Outcome)
			assert.Equal(t, test.details, response.Details)
			assert.Len(t, response.Warnings, test.warnings)
		})
	}
}

func Test_ParseResponse_ErrorMessage(t *testing.T) {
	response := ParseResponse("(error \"line 3 column 1: unknown constant\")\n")
	//
	assert.Equal(t, []string{"line 3 column 1: unknown constant"}, response.Warnings)
}

func Test_Reader_Missing(t *testing.T) {
	reader := NewReader(filepath.Join(t.TempDir(), "z3"), 0)
	//
	outcome, err := reader.ReadOutcome(context.Background(), "g", "(check-sat)\n", smtlib.NullHandler{})
	//
	assert.Error(t, err)
	assert.Equal(t, smtlib.Undetermined, outcome)
}

func Test_Reader_Script(t *testing.T) {
	skipUnlessPosix(t)
	//
	var (
		handler = &recordingHandler{}
		reader  = NewReader(fakeSolver(t, modelSolver), 0)
	)
	//
	outcome, err := reader.ReadOutcome(context.Background(), "g", "(check-sat)\n(get-model)\n", handler)
	//
	require.NoError(t, err)
	assert.Equal(t, smtlib.Invalid, outcome)
	assert.Equal(t, []string{"(model)"}, handler.counterexamples)
	assert.Equal(t, []string{"oops"}, handler.warnings)
}

func Test_Reader_NoModelRequested(t *testing.T) {
	skipUnlessPosix(t)
	//
	var (
		handler = &recordingHandler{}
		reader  = NewReader(fakeSolver(t, modelSolver), 0)
	)
	//
	outcome, err := reader.ReadOutcome(context.Background(), "g", "(check-sat)\n", handler)
	//
	require.NoError(t, err)
	assert.Equal(t, smtlib.Invalid, outcome)
	assert.Equal(t, []string{""}, handler.counterexamples)
}

func Test_Reader_Timeout(t *testing.T) {
	skipUnlessPosix(t)
	//
	reader := NewReader(fakeSolver(t, "exec sleep 10"), 50*time.Millisecond)
	//
	outcome, err := reader.ReadOutcome(context.Background(), "g", "(check-sat)\n", smtlib.NullHandler{})
	//
	require.NoError(t, err)
	assert.Equal(t, smtlib.TimeOut, outcome)
}

// ============================================================================
// Helpers
// ============================================================================

type recordingHandler struct {
	counterexamples []string
	warnings        []string
}

func (p *recordingHandler) OnCounterexample(_ string, details string) {
	p.counterexamples = append(p.counterexamples, details)
}

func (p *recordingHandler) OnProverWarning(_ string, msg string) {
	p.warnings = append(p.warnings, msg)
}

func skipUnlessPosix(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
}

// Write a shell script standing in for the solver.
// Answers sat, with a model only when one is requested.
const modelSolver = `if grep -F '(get-model)' > /dev/null; then
  echo sat
  echo '(model)'
else
  echo sat
fi
echo oops >&2`

func fakeSolver(t *testing.T, body string) string {
	path := filepath.Join(t.TempDir(), "z3")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o700))
	//
	return path
}
