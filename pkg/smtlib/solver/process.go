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
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/consensys/go-smtbridge/pkg/smtlib"
	log "github.com/sirupsen/logrus"
)

// Reader determines check outcomes by running the solver on their scripts.
type Reader struct {
	// Path of the solver executable
	path string
	// Bound on each run (0 for none)
	timeout time.Duration
}

// NewReader constructs a reader running the solver at a given path.
func NewReader(path string, timeout time.Duration) *Reader {
	return &Reader{path, timeout}
}

// ReadOutcome implementation for smtlib.OutcomeReader interface.  The script is
// piped to the solver, whose response determines the outcome.
func (p *Reader) ReadOutcome(ctx context.Context, name string, script string,
	handler smtlib.ErrorHandler) (smtlib.Outcome, error) {
	var stdout, stderr bytes.Buffer
	//
	if p.timeout > 0 {
		var cancel context.CancelFunc
		//
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}
	//
	cmd := exec.CommandContext(ctx, p.path, "-smt2", "-in")
	cmd.Stdin = strings.NewReader(script)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = time.Second
	//
	err := cmd.Run()
	//
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return smtlib.TimeOut, nil
	} else if ctx.Err() != nil {
		return smtlib.Undetermined, ctx.Err()
	}
	//
	var exitErr *exec.ExitError
	//
	if err != nil && !errors.As(err, &exitErr) {
		return smtlib.Undetermined, fmt.Errorf("running solver %s: %w", p.path, err)
	} else if err != nil {
		log.Debugf("solver exited with status %d on %s", exitErr.ExitCode(), name)
	}
	//
	if msg := strings.TrimSpace(stderr.String()); msg != "" {
		handler.OnProverWarning(name, msg)
	}
	//
	response := ParseResponse(stdout.String())
	//
	for _, warning := range response.Warnings {
		log.Warnf("%s: %s", name, warning)
		handler.OnProverWarning(name, warning)
	}
	//
	if response.Outcome == smtlib.Invalid {
		handler.OnCounterexample(name, response.Details)
	}
	//
	return response.Outcome, nil
}
