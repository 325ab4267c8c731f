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
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/consensys/go-smtbridge/pkg/smtlib"
	"github.com/consensys/go-smtbridge/pkg/smtlib/solver"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] vc_file(s)",
	Short: "Check verification conditions using an SMT solver.",
	Long: `Lower every goal of the given verification condition files into an
	SMT-LIB2 script, and run the solver on it.  The exit status is non-zero
	unless every goal is valid.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) < 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		configureLogging(cmd)
		//
		options := getOptions(cmd)
		models := GetFlag(cmd, "models")
		// Counterexamples need the solver to be asked for a model
		options.Models = options.Models || models
		//
		if GetFlag(cmd, "no-color") || !isatty.IsTerminal(os.Stdout.Fd()) {
			color.NoColor = true
		}
		// Locate solver
		path, err := solver.Locate(options.Solver)
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		//
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		//
		reader := solver.NewReader(path, options.Timeout)
		handler := &consoleHandler{models: models}
		//
		if !checkPrograms(ctx, args, options, reader, handler) {
			stop()
			os.Exit(1)
		}
	},
}

// Check every goal of the given files, returning true if all are valid.
func checkPrograms(ctx context.Context, filenames []string, options smtlib.Options, reader smtlib.OutcomeReader,
	handler smtlib.ErrorHandler) bool {
	valid := true
	//
	for _, program := range readPrograms(filenames) {
		checker := newChecker(program, options, smtlib.WithReader(reader))
		//
		for _, goal := range program.Goals {
			if err := checker.BeginCheck(goal.Name, goal.Expr, handler); err != nil {
				log.Errorf("goal %s: %v", goal.Name, err)
				os.Exit(2)
			}
			//
			outcome, err := checker.CheckOutcome(ctx)
			if err != nil {
				log.Errorf("goal %s: %v", goal.Name, err)
				os.Exit(2)
			}
			//
			printOutcome(goal.Name, outcome)
			//
			valid = valid && outcome == smtlib.Valid
		}
	}
	//
	return valid
}

func printOutcome(name string, outcome smtlib.Outcome) {
	var paint func(format string, a ...any) string
	//
	switch outcome {
	case smtlib.Valid:
		paint = color.GreenString
	case smtlib.Invalid:
		paint = color.RedString
	default:
		paint = color.YellowString
	}
	//
	fmt.Printf("%s: %s\n", name, paint("%s", outcome))
}

// consoleHandler reports solver findings on the terminal.
type consoleHandler struct {
	// Print counterexample details
	models bool
}

func (p *consoleHandler) OnCounterexample(name string, details string) {
	if p.models && details != "" {
		fmt.Printf("counterexample for %s:\n", name)
		//
		for _, line := range strings.Split(details, "\n") {
			fmt.Printf("\t%s\n", line)
		}
	}
}

func (p *consoleHandler) OnProverWarning(name string, msg string) {
	fmt.Printf("%s: %s\n", name, color.MagentaString("%s", msg))
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().Bool("models", false, "print counterexamples for invalid goals")
	checkCmd.Flags().Bool("no-color", false, "disable coloured output")
}
