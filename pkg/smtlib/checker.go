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
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/consensys/go-smtbridge/pkg/util"
	"github.com/consensys/go-smtbridge/pkg/vc"
	log "github.com/sirupsen/logrus"
)

// Context is the logical context against which goals are checked.
type Context interface {
	// Axioms returns the background axioms as a single formula.
	Axioms() vc.Expr
	// Preamble returns solver commands to issue before every check.  This is
	// consulted afresh for each check.
	Preamble() []string
}

// Checker lowers goals into self-contained solver scripts.  Declarations and
// axioms accumulate over the life of a checker, such that every script
// contains everything emitted for earlier scripts.  A Checker is not safe for
// concurrent use; concurrent checks require independent checkers.
type Checker struct {
	context    Context
	options    Options
	encoding   Encoding
	namer      *Namer
	collector  *DeclarationCollector
	session    *Session
	background Background
	sinks      Sinks
	reader     OutcomeReader
	// Check awaiting its outcome, if any.
	pending *pendingCheck
}

type pendingCheck struct {
	name    string
	script  string
	handler ErrorHandler
}

// CheckerOption customises the collaborators of a Checker.
type CheckerOption func(*Checker)

// WithSinks sets where scripts are written (by default, to files).
func WithSinks(sinks Sinks) CheckerOption {
	return func(c *Checker) { c.sinks = sinks }
}

// WithBackground sets the background theory.
func WithBackground(background Background) CheckerOption {
	return func(c *Checker) { c.background = background }
}

// WithReader sets how outcomes are determined (by default, undetermined).
func WithReader(reader OutcomeReader) CheckerOption {
	return func(c *Checker) { c.reader = reader }
}

// NewChecker constructs a checker for a given logical context.  Invalid
// options are reported here, before any check runs.
func NewChecker(context Context, options Options, opts ...CheckerOption) (*Checker, error) {
	if err := options.Validate(); err != nil {
		return nil, err
	}
	//
	encoding, err := NewEncoding(options.Encoding)
	if err != nil {
		return nil, err
	} else if err := checkEncodable(encoding, context.Axioms()); err != nil {
		return nil, err
	}
	//
	namer := NewNamer()
	c := &Checker{
		context:    context,
		options:    options,
		encoding:   encoding,
		namer:      namer,
		collector:  NewDeclarationCollector(namer),
		session:    NewSession(),
		background: BuiltinBackground(),
		sinks:      FileSinks{},
		reader:     UndeterminedReader{},
	}
	//
	if options.Background != "" {
		c.background = FileBackground(options.Background)
	}
	//
	for _, opt := range opts {
		opt(c)
	}
	//
	return c, nil
}

// Session returns the accumulated state of this checker.
func (c *Checker) Session() *Session {
	return c.session
}

// Namer returns the namer of this checker.
func (c *Checker) Namer() *Namer {
	return c.namer
}

// Encoding returns the encoding of this checker.
func (c *Checker) Encoding() Encoding {
	return c.encoding
}

// BeginCheck writes the script for a given goal, under a name derived from the
// check's descriptive name.  The goal is proved by showing its negation is
// unsatisfiable.  On success, the check's outcome can then be obtained with
// CheckOutcome, which reports findings to the given handler.  On failure, no
// script is written.
func (c *Checker) BeginCheck(name string, goal vc.Expr, handler ErrorHandler) (err error) {
	var (
		stats   = util.NewPerfStats()
		decls   = len(c.session.Declarations())
		axioms  = len(c.session.Axioms())
		builder strings.Builder
	)
	//
	c.pending = nil
	//
	if err := checkEncodable(c.encoding, goal); err != nil {
		return err
	}
	//
	sink, err := c.sinks.Open(c.options.ScriptName(name))
	if err != nil {
		return err
	}
	//
	defer func() { err = errors.Join(err, sink.Close()) }()
	//
	log.Debugf("beginning check %s (%s)", name, sink.Name())
	//
	background, err := c.background.Text()
	if err != nil {
		return err
	}
	//
	builder.WriteString(background)
	//
	if background != "" && !strings.HasSuffix(background, "\n") {
		builder.WriteString("\n")
	}
	//
	if c.options.Extensions {
		fmt.Fprintf(&builder, "(set-info :vc-id %s)\n", quoteName(name))
	} else {
		fmt.Fprintf(&builder, "; vc-id %s\n", singleLine(name))
	}
	//
	c.setupBackground()
	//
	goalText := c.lower(goal, Positive)
	//
	for _, command := range c.context.Preamble() {
		builder.WriteString(normaliseLines(command))
		builder.WriteString("\n")
	}
	//
	for _, decl := range c.session.Declarations() {
		builder.WriteString(decl)
		builder.WriteString("\n")
	}
	//
	for _, axiom := range c.session.Axioms() {
		if axiom != "true" {
			fmt.Fprintf(&builder, "(assert %s)\n", axiom)
		}
	}
	//
	fmt.Fprintf(&builder, "(assert (not %s))\n(check-sat)\n", goalText)
	//
	if c.options.Models {
		builder.WriteString("(get-model)\n")
	}
	//
	script := builder.String()
	//
	if _, err = sink.Write([]byte(script)); err != nil {
		return fmt.Errorf("writing script %s: %w", sink.Name(), err)
	} else if err = sink.Commit(); err != nil {
		return err
	}
	//
	log.Debugf("check %s added %d declarations and %d axioms", name,
		len(c.session.Declarations())-decls, len(c.session.Axioms())-axioms)
	stats.Log(fmt.Sprintf("check %s", name))
	//
	c.pending = &pendingCheck{name, script, handler}
	//
	return nil
}

// CheckOutcome determines the outcome of the most recently begun check.
func (c *Checker) CheckOutcome(ctx context.Context) (Outcome, error) {
	if c.pending == nil {
		return Undetermined, errors.New("no check in progress")
	}
	//
	check := c.pending
	c.pending = nil
	//
	return c.reader.ReadOutcome(ctx, check.name, check.script, check.handler)
}

// Quantification over types survives only an erasing encoding.
func checkEncodable(encoding Encoding, e vc.Expr) error {
	if encoding.Mode() != Monomorphic {
		return nil
	}
	//
	var quantified *vc.TypeVar
	//
	vc.Walk(e, func(e vc.Expr) bool {
		if q, ok := e.(*vc.Quantifier); ok && len(q.TypeParams) != 0 && quantified == nil {
			quantified = q.TypeParams[0]
		}
		//
		return quantified == nil
	})
	//
	if quantified != nil {
		return configErrorf("ENCODING", "type variable %s is quantified, which the %s encoding cannot express",
			quantified.Name, encoding.Mode())
	}
	//
	return nil
}

// Lower the background axioms, one conjunct at a time, on the first check
// only.
func (c *Checker) setupBackground() {
	if c.session.BackgroundDone() {
		return
	}
	//
	conjuncts := vc.Conjuncts(c.context.Axioms())
	//
	for _, axiom := range conjuncts {
		if text := c.lower(axiom, Negative); text != "true" {
			c.session.AddAxioms(text)
		}
	}
	//
	c.session.MarkBackgroundDone()
	log.Debugf("background setup lowered %d axioms", len(conjuncts))
}

// Lower a formula at a given polarity, recording any declarations and axioms
// it requires.
func (c *Checker) lower(e vc.Expr, polarity Polarity) string {
	sorted := SortLets(c.encoding.Erase(e, polarity))
	c.collector.Collect(sorted)
	// Axioms required by the encoding
	for _, axiom := range c.encoding.DrainAxioms() {
		axiom = SortLets(axiom)
		c.collector.Collect(axiom)
		//
		if text := c.render(axiom); text != "true" {
			c.session.AddAxioms(text)
		}
	}
	//
	c.session.AddDeclarations(c.collector.DrainNew()...)
	//
	return c.render(sorted)
}

func (c *Checker) render(e vc.Expr) string {
	return Linearize(e, c.namer, c.LinearizerOptions())
}

// LinearizerOptions returns the linearizer options implied by this checker's
// options.
func (c *Checker) LinearizerOptions() LinearizerOptions {
	return LinearizerOptions{Weights: c.options.Weights, Extensions: c.options.Extensions}
}

// Quote a descriptive name as an SMT-LIB symbol on a single line.
func quoteName(name string) string {
	return "|" + strings.NewReplacer("|", "_", "\\", "_").Replace(singleLine(name)) + "|"
}

func singleLine(text string) string {
	return strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ").Replace(text)
}
