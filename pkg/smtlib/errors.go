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
)

// ConfigError reports an invalid or unrecognised configuration setting.  Such
// errors are detected before any check runs.
type ConfigError struct {
	// Option is the offending option key, or "" if not attributable to one.
	Option string
	// Msg describes the problem.
	Msg string
}

func (e *ConfigError) Error() string {
	if e.Option == "" {
		return fmt.Sprintf("invalid configuration: %s", e.Msg)
	}
	//
	return fmt.Sprintf("invalid configuration option %s: %s", e.Option, e.Msg)
}

// ResourceError reports that a required resource (e.g. the background theory or
// the solver executable) could not be found or loaded.  It carries the
// attempted path.
type ResourceError struct {
	Resource string
	Path     string
	Err      error
}

func (e *ResourceError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s not found at %s", e.Resource, e.Path)
	}
	//
	return fmt.Sprintf("%s not found at %s: %v", e.Resource, e.Path, e.Err)
}

// Unwrap returns the underlying cause, if any.
func (e *ResourceError) Unwrap() error {
	return e.Err
}

func configErrorf(option string, format string, args ...any) *ConfigError {
	return &ConfigError{option, fmt.Sprintf(format, args...)}
}
