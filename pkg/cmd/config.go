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
	"github.com/spf13/cobra"
)

// Determine the options in effect for a command.  These start from the
// defaults, are updated from the configuration file (if given), then from
// prover option strings and, finally, from dedicated flags.  Exits on any
// configuration error.
func getOptions(cmd *cobra.Command) smtlib.Options {
	options, err := loadOptions(GetString(cmd, "config"), GetStringArray(cmd, "prover-opt"),
		GetString(cmd, "encoding"), GetString(cmd, "output"))
	//
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return options
}

func loadOptions(config string, proverOpts []string, encoding string, output string) (smtlib.Options, error) {
	options := smtlib.DefaultOptions()
	//
	if config != "" {
		if err := options.LoadConfig(config); err != nil {
			return options, err
		}
	}
	//
	if err := options.ParseAll(proverOpts); err != nil {
		return options, err
	}
	//
	if encoding != "" {
		mode, err := smtlib.ParseMode(encoding)
		if err != nil {
			return options, err
		}
		//
		options.Encoding = mode
	}
	//
	if output != "" {
		options.ScriptFile = output
	}
	//
	return options, options.Validate()
}
