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
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Options_Defaults(t *testing.T) {
	options := DefaultOptions()
	//
	assert.Equal(t, "vc-proc.smt2", options.ScriptName("proc"))
	assert.True(t, options.Weights)
	assert.True(t, options.Extensions)
	assert.Equal(t, Premises, options.Encoding)
	assert.False(t, options.Models)
	assert.NoError(t, options.Validate())
}

func Test_Options_ScriptNameSanitised(t *testing.T) {
	options := DefaultOptions()
	//
	assert.Equal(t, "vc-Impl__a_b.smt2", options.ScriptName("Impl$$a/b"))
	assert.Equal(t, "vc-x_.._.._escaped.smt2", options.ScriptName("x/../../escaped"))
	assert.Equal(t, "vc-a_b.smt2", options.ScriptName("a\nb"))
	assert.Equal(t, "vc-ok.name-1_2.smt2", options.ScriptName("ok.name-1_2"))
	// The template's own directory is kept
	options.ScriptFile = "out/" + ProcPlaceholder
	assert.Equal(t, "out/__", options.ScriptName(".."))
	assert.Equal(t, "out/_", options.ScriptName(""))
	assert.NotContains(t, options.ScriptName("../../etc/passwd"), "../")
}

func Test_Options_Parse(t *testing.T) {
	options := DefaultOptions()
	//
	err := options.ParseAll([]string{
		"LOG_FILE=out/@PROC@.smt2", "USE_WEIGHTS=false", "USE_EXTENSIONS=0", "ENCODING=arguments",
		"SOLVER=/opt/z3", "BACKGROUND=bg.smt2", "TIMEOUT=5s", "PRODUCE_MODELS=true",
	})
	//
	require.NoError(t, err)
	assert.Equal(t, "out/p.smt2", options.ScriptName("p"))
	assert.False(t, options.Weights)
	assert.False(t, options.Extensions)
	assert.Equal(t, Arguments, options.Encoding)
	assert.Equal(t, "/opt/z3", options.Solver)
	assert.Equal(t, "bg.smt2", options.Background)
	assert.Equal(t, 5*time.Second, options.Timeout)
	assert.True(t, options.Models)
}

func Test_Options_Errors(t *testing.T) {
	tests := []struct {
		option string
		key    string
	}{
		{"FOO=1", "FOO"},
		{"USE_WEIGHTS=maybe", "USE_WEIGHTS"},
		{"ENCODING=polymorphic", "ENCODING"},
		{"TIMEOUT=soon", "TIMEOUT"},
		{"LOG_FILE=out.smt2", "LOG_FILE"},
		{"TIMEOUT", "TIMEOUT"},
		{"PRODUCE_MODELS=often", "PRODUCE_MODELS"},
	}
	//
	for _, test := range tests {
		t.Run(test.option, func(t *testing.T) {
			options := DefaultOptions()
			err := options.ParseAll([]string{test.option})
			//
			var cerr *ConfigError
			require.True(t, errors.As(err, &cerr))
			assert.Equal(t, test.key, cerr.Option)
		})
	}
}

func Test_Options_Yaml(t *testing.T) {
	options := DefaultOptions()
	//
	err := options.ApplyYAML([]byte("script_file: proofs/@PROC@.smt2\nweights: false\nencoding: monomorphic\ntimeout: 2s\nmodels: true\n"))
	//
	require.NoError(t, err)
	assert.Equal(t, "proofs/g.smt2", options.ScriptName("g"))
	assert.False(t, options.Weights)
	assert.True(t, options.Extensions)
	assert.Equal(t, Monomorphic, options.Encoding)
	assert.Equal(t, 2*time.Second, options.Timeout)
	assert.True(t, options.Models)
}

func Test_Options_YamlErrors(t *testing.T) {
	for _, text := range []string{"colour: red\n", "encoding: fancy\n", "timeout: never\n", "script_file: out.smt2\n"} {
		options := DefaultOptions()
		//
		var cerr *ConfigError
		assert.True(t, errors.As(options.ApplyYAML([]byte(text)), &cerr), text)
	}
}

func Test_Options_LoadConfig(t *testing.T) {
	var (
		dir      = t.TempDir()
		filename = filepath.Join(dir, "smtbridge.yaml")
		options  = DefaultOptions()
	)
	//
	require.NoError(t, os.WriteFile(filename, []byte("extensions: false\n"), 0o600))
	require.NoError(t, options.LoadConfig(filename))
	assert.False(t, options.Extensions)
	//
	var rerr *ResourceError
	//
	err := options.LoadConfig(filepath.Join(dir, "missing.yaml"))
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, filepath.Join(dir, "missing.yaml"), rerr.Path)
}

func Test_Session_AppendOnly(t *testing.T) {
	session := NewSession()
	//
	session.AddDeclarations("(declare-sort U 0)")
	session.AddAxioms("a", "b")
	//
	decls := session.Declarations()
	// Appending to a view does not affect the session
	_ = append(decls, "(declare-sort T 0)")
	session.AddDeclarations("(declare-fun x () U)")
	// Nor does overwriting one
	decls[0] = "(declare-sort V 0)"
	axioms := session.Axioms()
	axioms[1] = "c"
	//
	assert.Equal(t, []string{"(declare-sort U 0)", "(declare-fun x () U)"}, session.Declarations())
	assert.Equal(t, []string{"a", "b"}, session.Axioms())
	assert.False(t, session.BackgroundDone())
	session.MarkBackgroundDone()
	assert.True(t, session.BackgroundDone())
}

func Test_Background_Builtin(t *testing.T) {
	text, err := BuiltinBackground().Text()
	//
	require.NoError(t, err)
	assert.Contains(t, text, "(set-option :print-success false)")
	assert.NotContains(t, text, "\r")
	assert.Same(t, BuiltinBackground(), BuiltinBackground())
}

func Test_Background_File(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "bg.smt2")
	require.NoError(t, os.WriteFile(filename, []byte("(a)\r\n(b)\r\n"), 0o600))
	//
	background := FileBackground(filename)
	text, err := background.Text()
	require.NoError(t, err)
	assert.Equal(t, "(a)\n(b)\n", text)
	// Loaded once only
	require.NoError(t, os.Remove(filename))
	text, err = background.Text()
	require.NoError(t, err)
	assert.Equal(t, "(a)\n(b)\n", text)
}
