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
	"strings"

	"github.com/consensys/go-smtbridge/pkg/smtlib"
	"github.com/consensys/go-smtbridge/pkg/util/source"
	"github.com/consensys/go-smtbridge/pkg/util/source/sexp"
)

// Response is the classified output of a solver run.
type Response struct {
	Outcome smtlib.Outcome
	// Output following a sat verdict, such as a model.
	Details string
	// Errors and unexpected output.
	Warnings []string
}

// ParseResponse classifies the output of a solver run.  Output without a
// verdict is undetermined.
func ParseResponse(output string) Response {
	var (
		response = Response{Outcome: smtlib.Undetermined}
		verdict  = false
		details  []string
	)
	//
	terms, srcmap, err := sexp.ParseAll(source.NewSourceFile("response", []byte(output)))
	if err != nil {
		response.Warnings = append(response.Warnings, "malformed response: "+strings.TrimSpace(output))
		return response
	}
	//
	for _, term := range terms {
		switch {
		case verdict:
			details = append(details, textOf(srcmap, term))
		case term.AsSymbol() != nil:
			switch value := term.AsSymbol().Value; value {
			case "sat":
				response.Outcome, verdict = smtlib.Invalid, true
			case "unsat":
				response.Outcome, verdict = smtlib.Valid, true
			case "unknown":
				response.Outcome, verdict = smtlib.Undetermined, true
			case "timeout":
				response.Outcome, verdict = smtlib.TimeOut, true
			case "success":
			default:
				response.Warnings = append(response.Warnings, "unexpected response: "+value)
			}
		case term.AsList() != nil && term.AsList().Head() == "error":
			response.Warnings = append(response.Warnings, errorMessage(term.AsList()))
		default:
			response.Warnings = append(response.Warnings, "unexpected response: "+term.String(true))
		}
	}
	//
	response.Details = strings.Join(details, "\n")
	//
	return response
}

func errorMessage(list *sexp.List) string {
	if list.Len() == 2 && list.Get(1).AsString() != nil {
		return list.Get(1).AsString().Value
	}
	//
	return list.String(true)
}

// Recover the text of a term as the solver wrote it.
func textOf(srcmap *source.Map[sexp.SExp], term sexp.SExp) string {
	span := srcmap.Get(term)
	//
	return string(srcmap.Source().Contents()[span.Start():span.End()])
}
