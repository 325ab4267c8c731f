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
	"github.com/consensys/go-smtbridge/pkg/vc"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var lowerCmd = &cobra.Command{
	Use:   "lower [flags] vc_file(s)",
	Short: "Lower verification conditions into SMT-LIB2 scripts.",
	Long: `Lower every goal of the given verification condition files into a
	self-contained SMT-LIB2 script, named according to the script filename
	template.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) < 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		configureLogging(cmd)
		//
		options := getOptions(cmd)
		//
		for _, program := range readPrograms(args) {
			checker := newChecker(program, options)
			//
			for _, goal := range program.Goals {
				if err := checker.BeginCheck(goal.Name, goal.Expr, smtlib.NullHandler{}); err != nil {
					log.Errorf("goal %s: %v", goal.Name, err)
					os.Exit(2)
				}
				//
				fmt.Println(options.ScriptName(goal.Name))
			}
		}
	},
}

// Construct a checker for a given program, exiting on failure.
func newChecker(program *vc.Program, options smtlib.Options, opts ...smtlib.CheckerOption) *smtlib.Checker {
	checker, err := smtlib.NewChecker(program, options, opts...)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return checker
}

func init() {
	rootCmd.AddCommand(lowerCmd)
}
