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
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
)

// ProcPlaceholder is substituted with the descriptive name of a check when
// forming the name of its script file.
const ProcPlaceholder = "@PROC@"

// Options configures the lowering pipeline and the solver it feeds.
type Options struct {
	// ScriptFile is the filename template for emitted scripts.
	ScriptFile string
	// Weights enables :weight annotations on quantifiers.
	Weights bool
	// Extensions enables prover-specific syntax (:qid and set-info headers).
	Extensions bool
	// Encoding selects how polymorphic types are erased.
	Encoding Mode
	// Solver is an explicit path to the solver executable ("" to discover).
	Solver string
	// Background is a file holding the background theory ("" for the built-in
	// one).
	Background string
	// Timeout bounds each solver run (0 for none).
	Timeout time.Duration
	// Models requests a model after each check-sat, so counterexamples can be
	// reported for invalid goals.
	Models bool
}

// DefaultOptions returns the default configuration.
func DefaultOptions() Options {
	return Options{
		ScriptFile: "vc-" + ProcPlaceholder + ".smt2",
		Weights:    true,
		Extensions: true,
		Encoding:   Premises,
	}
}

// ScriptName determines the script filename for a check with the given
// descriptive name.  Characters of the name outside [A-Za-z0-9._-] are replaced
// with '_', so the result never leaves the template's directory.
func (o *Options) ScriptName(name string) string {
	return strings.ReplaceAll(o.ScriptFile, ProcPlaceholder, safeFileName(name))
}

func safeFileName(name string) string {
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '_', r == '-':
			return r
		}
		//
		return '_'
	}, name)
	// A name made only of dots would still denote a directory
	if name == "" {
		return "_"
	} else if strings.Trim(name, ".") == "" {
		return strings.Repeat("_", len(name))
	}
	//
	return name
}

// Validate checks this configuration is usable.
func (o *Options) Validate() error {
	if !strings.Contains(o.ScriptFile, ProcPlaceholder) {
		return configErrorf("LOG_FILE", "template %q lacks placeholder %s", o.ScriptFile, ProcPlaceholder)
	} else if o.Timeout < 0 {
		return configErrorf("TIMEOUT", "negative timeout")
	}
	//
	return nil
}

// Parse applies a single prover option string of the form KEY=VALUE.
func (o *Options) Parse(option string) error {
	key, value, ok := strings.Cut(option, "=")
	if !ok {
		return configErrorf(option, "expected KEY=VALUE")
	}
	//
	var err error
	//
	switch key {
	case "LOG_FILE":
		o.ScriptFile = value
	case "USE_WEIGHTS":
		o.Weights, err = parseBool(key, value)
	case "USE_EXTENSIONS":
		o.Extensions, err = parseBool(key, value)
	case "ENCODING":
		o.Encoding, err = ParseMode(value)
	case "SOLVER":
		o.Solver = value
	case "BACKGROUND":
		o.Background = value
	case "TIMEOUT":
		o.Timeout, err = parseDuration(key, value)
	case "PRODUCE_MODELS":
		o.Models, err = parseBool(key, value)
	default:
		return configErrorf(key, "unrecognised option")
	}
	//
	return err
}

// ParseAll applies a sequence of prover option strings in order, then
// validates the result.
func (o *Options) ParseAll(options []string) error {
	for _, option := range options {
		if err := o.Parse(option); err != nil {
			return err
		}
	}
	//
	return o.Validate()
}

// config is the YAML representation of Options.  Absent keys leave the
// corresponding option unchanged.
type config struct {
	ScriptFile *string `yaml:"script_file"`
	Weights    *bool   `yaml:"weights"`
	Extensions *bool   `yaml:"extensions"`
	Encoding   *string `yaml:"encoding"`
	Solver     *string `yaml:"solver"`
	Background *string `yaml:"background"`
	Timeout    *string `yaml:"timeout"`
	Models     *bool   `yaml:"models"`
}

// LoadConfig reads a YAML configuration file over the given options.
func (o *Options) LoadConfig(filename string) error {
	bytes, err := os.ReadFile(filename)
	if err != nil {
		return &ResourceError{"configuration file", filename, err}
	}
	//
	return o.ApplyYAML(bytes)
}

// ApplyYAML applies a YAML configuration document over these options.
// Unknown keys are rejected.
func (o *Options) ApplyYAML(bytes []byte) error {
	var cfg config
	//
	if err := yaml.UnmarshalWithOptions(bytes, &cfg, yaml.DisallowUnknownField()); err != nil {
		return &ConfigError{"", err.Error()}
	}
	//
	if cfg.ScriptFile != nil {
		o.ScriptFile = *cfg.ScriptFile
	}
	//
	if cfg.Weights != nil {
		o.Weights = *cfg.Weights
	}
	//
	if cfg.Extensions != nil {
		o.Extensions = *cfg.Extensions
	}
	//
	if cfg.Models != nil {
		o.Models = *cfg.Models
	}
	//
	if cfg.Solver != nil {
		o.Solver = *cfg.Solver
	}
	//
	if cfg.Background != nil {
		o.Background = *cfg.Background
	}
	//
	if cfg.Encoding != nil {
		mode, err := ParseMode(*cfg.Encoding)
		if err != nil {
			return err
		}
		//
		o.Encoding = mode
	}
	//
	if cfg.Timeout != nil {
		timeout, err := parseDuration("timeout", *cfg.Timeout)
		if err != nil {
			return err
		}
		//
		o.Timeout = timeout
	}
	//
	return o.Validate()
}

func parseBool(key string, value string) (bool, error) {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, configErrorf(key, "expected boolean, found %q", value)
	}
	//
	return b, nil
}

func parseDuration(key string, value string) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, configErrorf(key, "expected duration, found %q", value)
	}
	//
	return d, nil
}

// String renders these options as prover option strings.
func (o *Options) String() string {
	return fmt.Sprintf("LOG_FILE=%s USE_WEIGHTS=%t USE_EXTENSIONS=%t ENCODING=%s SOLVER=%s BACKGROUND=%s TIMEOUT=%s PRODUCE_MODELS=%t",
		o.ScriptFile, o.Weights, o.Extensions, o.Encoding, o.Solver, o.Background, o.Timeout, o.Models)
}
