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
	"strings"

	"github.com/consensys/go-smtbridge/pkg/util/source"
	"github.com/consensys/go-smtbridge/pkg/vc"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// GetFlag gets an expected flag, or exits if an error arises.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetString gets an expected string, or exits if an error arises.
func GetString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetStringArray gets an expected string array, or exits if an error arises.
func GetStringArray(cmd *cobra.Command, flag string) []string {
	r, err := cmd.Flags().GetStringArray(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Configure log level from the verbose flag.
func configureLogging(cmd *cobra.Command) {
	if GetFlag(cmd, "verbose") {
		log.SetLevel(log.DebugLevel)
	}
}

// Read and parse the given input files, exiting if any cannot be read or
// contains syntax errors.
func readPrograms(filenames []string) []*vc.Program {
	files, err := source.ReadFiles(filenames...)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	var (
		programs = make([]*vc.Program, len(files))
		failed   = false
	)
	//
	for i := range files {
		program, errs := vc.Parse(&files[i])
		//
		for _, err := range errs {
			printSyntaxError(&err)
		}
		//
		failed = failed || len(errs) > 0
		programs[i] = program
	}
	//
	if failed {
		os.Exit(2)
	}
	//
	return programs
}

// Print a syntax error with appropriate highlighting.
func printSyntaxError(err *source.SyntaxError) {
	span := err.Span()
	line := err.FirstEnclosingLine()
	lineOffset := span.Start() - line.Start()
	// Calculate length (ensures don't overflow line)
	length := max(1, min(line.Length()-lineOffset, span.Length()))
	// Print error + line number
	fmt.Printf("%s:%d:%d-%d %s\n", err.SourceFile().Filename(),
		line.Number(), 1+lineOffset, 1+lineOffset+length, err.Message())
	// Print separator line
	fmt.Println()
	// Print line
	fmt.Println(line.String())
	// Print indent (todo: account for tabs)
	fmt.Print(strings.Repeat(" ", lineOffset))
	// Print highlight
	fmt.Println(strings.Repeat("^", length))
}
