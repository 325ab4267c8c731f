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
	"fmt"
	"os"

	"github.com/consensys/go-smtbridge/pkg/smtlib"
	"github.com/consensys/go-smtbridge/pkg/util/source/sexp"
	"github.com/consensys/go-smtbridge/pkg/vc"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var printCmd = &cobra.Command{
	Use:   "print [flags] vc_file(s)",
	Short: "Print goals after type erasure.",
	Long: `Print every goal of the given verification condition files after type
	erasure and let sorting, as it would be asserted to the solver.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) < 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		configureLogging(cmd)
		//
		var (
			options   = getOptions(cmd)
			axioms    = GetFlag(cmd, "axioms")
			formatter = sexp.NewFormatter(textWidth(cmd), sexp.SMTLibRules()...)
		)
		//
		for _, program := range readPrograms(args) {
			printProgram(program, options, axioms, formatter)
		}
	},
}

func printProgram(program *vc.Program, options smtlib.Options, axioms bool, formatter *sexp.Formatter) {
	encoding, err := smtlib.NewEncoding(options.Encoding)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	var (
		namer   = smtlib.NewNamer()
		linOpts = smtlib.LinearizerOptions{Weights: options.Weights, Extensions: options.Extensions}
	)
	//
	for _, goal := range program.Goals {
		erased := smtlib.SortLets(encoding.Erase(goal.Expr, smtlib.Positive))
		//
		fmt.Printf(";; %s\n", goal.Name)
		fmt.Println(formatter.Format(smtlib.ToSExp(erased, namer, linOpts)))
		// Print axioms arising from this goal
		for _, axiom := range encoding.DrainAxioms() {
			if axioms {
				fmt.Println(formatter.Format(smtlib.ToSExp(axiom, namer, linOpts)))
			}
		}
	}
}

// Determine the width to format for, which is that of the terminal unless
// overridden.
func textWidth(cmd *cobra.Command) uint {
	width, err := cmd.Flags().GetUint("textwidth")
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	} else if width != 0 {
		return width
	}
	//
	if fd := os.Stdout.Fd(); isatty.IsTerminal(fd) {
		if w, _, err := term.GetSize(int(fd)); err == nil && w > 0 {
			return uint(w)
		}
	}
	//
	return 80
}

func init() {
	rootCmd.AddCommand(printCmd)
	printCmd.Flags().Bool("axioms", false, "also print axioms arising from each goal")
	printCmd.Flags().Uint("textwidth", 0, "set maximum text width (default: terminal width)")
}
