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
package test

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/consensys/go-smtbridge/pkg/smtlib"
	"github.com/consensys/go-smtbridge/pkg/util/source"
	"github.com/consensys/go-smtbridge/pkg/vc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDir determines the (relative) location of the test directory.  That is
// where the verification condition files (vc) are found.
const TestDir = "../../testdata"

// ===================================================================
// Valid Tests
// ===================================================================

func Test_Valid_Arith(t *testing.T) {
	Check(t, "arith", smtlib.Premises, smtlib.Arguments, smtlib.Monomorphic)
}

func Test_Valid_Sorts(t *testing.T) {
	Check(t, "sorts", smtlib.Premises, smtlib.Arguments, smtlib.Monomorphic)
}

// Type quantifiers cannot be expressed without erasure.
func Test_Valid_Poly(t *testing.T) {
	Check(t, "poly", smtlib.Premises, smtlib.Arguments)
}

// Without erasure, the quantified axioms are rejected up front.
func Test_Valid_PolyMonomorphic(t *testing.T) {
	program := readProgram(t, fmt.Sprintf("%s/valid/poly.vc", TestDir))
	options := smtlib.DefaultOptions()
	options.Encoding = smtlib.Monomorphic
	//
	_, err := smtlib.NewChecker(program, options, smtlib.WithSinks(smtlib.NewMemorySinks()))
	//
	var cerr *smtlib.ConfigError
	require.True(t, errors.As(err, &cerr), "expected configuration error, got %v", err)
	assert.Equal(t, "ENCODING", cerr.Option)
	assert.Contains(t, err.Error(), "type variable a")
}

// ===================================================================
// Invalid Tests
// ===================================================================

func Test_Invalid_UnknownType(t *testing.T) {
	CheckInvalid(t, "unknown_type")
}

func Test_Invalid_CyclicLet(t *testing.T) {
	CheckInvalid(t, "cyclic_let")
}

func Test_Invalid_DuplicateGoal(t *testing.T) {
	CheckInvalid(t, "duplicate_goal")
}

func Test_Invalid_NotFormula(t *testing.T) {
	CheckInvalid(t, "not_formula")
}

func Test_Invalid_TypeArgs(t *testing.T) {
	CheckInvalid(t, "type_args")
}

func Test_Invalid_UnknownAttribute(t *testing.T) {
	CheckInvalid(t, "unknown_attribute")
}

// ===================================================================
// Test Helpers
// ===================================================================

// Check lowers every goal of a given valid test file under each of the given
// encodings, and checks the resulting scripts are well formed.
func Check(t *testing.T, test string, modes ...smtlib.Mode) {
	filename := fmt.Sprintf("%s/valid/%s.vc", TestDir, test)
	// Enable testing each file in parallel
	t.Parallel()
	//
	program := readProgram(t, filename)
	require.NotEmpty(t, program.Goals)
	//
	for _, mode := range modes {
		t.Run(mode.String(), func(t *testing.T) {
			checkMode(t, program, mode)
		})
	}
}

func checkMode(t *testing.T, program *vc.Program, mode smtlib.Mode) {
	var (
		sinks   = smtlib.NewMemorySinks()
		options = smtlib.DefaultOptions()
	)
	//
	options.Encoding = mode
	//
	checker, err := smtlib.NewChecker(program, options, smtlib.WithSinks(sinks),
		smtlib.WithBackground(smtlib.StaticBackground("(set-option :print-success false)\n")))
	require.NoError(t, err)
	//
	var previous []string
	//
	for _, goal := range program.Goals {
		require.NoError(t, checker.BeginCheck(goal.Name, goal.Expr, smtlib.NullHandler{}))
		//
		script, ok := sinks.Script(options.ScriptName(goal.Name))
		require.True(t, ok, goal.Name)
		//
		checkScript(t, goal.Name, script, program.Preamble())
		// Scripts only ever grow
		for _, line := range previous {
			if strings.HasPrefix(line, "(declare-") || strings.HasPrefix(line, "(assert ") &&
				!strings.HasPrefix(line, "(assert (not ") {
				assert.Contains(t, script, line)
			}
		}
		//
		previous = strings.Split(script, "\n")
	}
	//
	assert.Len(t, sinks.Names(), len(program.Goals))
	assert.Equal(t, mode, checker.Encoding().Mode())
}

// Check the overall shape of a given script.
func checkScript(t *testing.T, name string, script string, preamble []string) {
	var (
		lines = strings.Split(strings.TrimSuffix(script, "\n"), "\n")
		seen  = make(map[string]bool)
		n     = len(lines)
	)
	//
	require.GreaterOrEqual(t, n, 4, name)
	assert.Equal(t, "(set-option :print-success false)", lines[0])
	assert.Equal(t, "(check-sat)", lines[n-1])
	assert.True(t, strings.HasPrefix(lines[n-2], "(assert (not "), lines[n-2])
	assert.NotContains(t, script, "(assert true)")
	assert.NotContains(t, script, "\r")
	//
	for _, cmd := range preamble {
		assert.Contains(t, lines, cmd)
	}
	// No declaration is repeated
	for _, line := range lines {
		if strings.HasPrefix(line, "(declare-") {
			assert.False(t, seen[line], "duplicate %s", line)
			seen[line] = true
		}
	}
}

// CheckInvalid checks a given invalid test file fails to parse, with the error
// given on its first line (";;error:message").
func CheckInvalid(t *testing.T, test string) {
	filename := fmt.Sprintf("%s/invalid/%s.vc", TestDir, test)
	// Enable testing each file in parallel
	t.Parallel()
	//
	bytes, err := os.ReadFile(filename)
	require.NoError(t, err)
	//
	first, _, _ := strings.Cut(string(bytes), "\n")
	expected, ok := strings.CutPrefix(first, ";;error:")
	require.True(t, ok, "missing expected error in %s", filename)
	//
	_, errs := vc.Parse(source.NewSourceFile(filepath.Base(filename), bytes))
	//
	require.NotEmpty(t, errs, "%s should not have parsed", filename)
	assert.Equal(t, expected, errs[0].Message())
}

func readProgram(t *testing.T, filename string) *vc.Program {
	bytes, err := os.ReadFile(filename)
	require.NoError(t, err)
	//
	program, errs := vc.Parse(source.NewSourceFile(filename, bytes))
	for _, err := range errs {
		t.Errorf("%s: %s", filename, err.Error())
	}
	//
	require.Empty(t, errs)
	//
	return program
}
