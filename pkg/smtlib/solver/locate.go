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
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/consensys/go-smtbridge/pkg/smtlib"
	log "github.com/sirupsen/logrus"
)

// DefaultName is the conventional name of the solver executable.
const DefaultName = "z3"

// Locator resolves the path of the solver executable.  An explicitly
// configured path takes priority, and must exist.  Otherwise, the executable
// must exist under its conventional name in the installation directory.  The
// first successful resolution is retained, so later calls return the same
// path.
type Locator struct {
	mutex      sync.Mutex
	installDir func() (string, error)
	path       string
}

// NewLocator constructs a locator using a given installation directory.
func NewLocator(installDir func() (string, error)) *Locator {
	return &Locator{installDir: installDir}
}

var defaultLocator = NewLocator(executableDir)

// Locate resolves the solver executable using the process-wide locator, whose
// installation directory is that of the running program.
func Locate(explicit string) (string, error) {
	return defaultLocator.Locate(explicit)
}

// Locate resolves the solver executable, given an explicit path or "".
func (p *Locator) Locate(explicit string) (string, error) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	//
	if p.path != "" {
		return p.path, nil
	}
	//
	path := explicit
	//
	if path == "" {
		dir, err := p.installDir()
		if err != nil {
			return "", &smtlib.ResourceError{Resource: "solver", Path: executableName(), Err: err}
		}
		//
		path = filepath.Join(dir, executableName())
	}
	//
	if info, err := os.Stat(path); err != nil {
		return "", &smtlib.ResourceError{Resource: "solver", Path: path, Err: err}
	} else if info.IsDir() {
		return "", &smtlib.ResourceError{Resource: "solver", Path: path, Err: fmt.Errorf("is a directory")}
	}
	//
	log.Debugf("using solver %s", path)
	p.path = path
	//
	return path, nil
}

func executableName() string {
	if runtime.GOOS == "windows" {
		return DefaultName + ".exe"
	}
	//
	return DefaultName
}

func executableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	//
	return filepath.Dir(exe), nil
}
