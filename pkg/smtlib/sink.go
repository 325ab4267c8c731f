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
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
)

// Sink receives the script of a single check.  Written content becomes visible
// under the sink's name only once committed.  Close releases the sink and must
// be called on every path, after Commit or in its place.
type Sink interface {
	io.Writer
	// Name of the script.
	Name() string
	// Commit publishes the written content.
	Commit() error
	// Close releases the sink, discarding the content if not committed.
	Close() error
}

// Sinks opens a sink for a given script name.
type Sinks interface {
	Open(name string) (Sink, error)
}

// FileSinks writes scripts to files.  Each script is written to a temporary
// file in the target directory, which is renamed on commit and removed
// otherwise.  Hence, a partially written script never appears under its final
// name.
type FileSinks struct{}

// Open implementation for Sinks interface.
func (FileSinks) Open(name string) (Sink, error) {
	dir, base := filepath.Split(name)
	//
	if dir == "" {
		dir = "."
	}
	//
	file, err := os.CreateTemp(dir, "."+base+".*")
	if err != nil {
		return nil, fmt.Errorf("opening script %s: %w", name, err)
	}
	//
	return &fileSink{file: file, name: name}, nil
}

type fileSink struct {
	file      *os.File
	name      string
	committed bool
	closed    bool
}

func (p *fileSink) Write(bytes []byte) (int, error) {
	return p.file.Write(bytes)
}

func (p *fileSink) Name() string {
	return p.name
}

func (p *fileSink) Commit() error {
	p.closed = true
	//
	if err := p.file.Close(); err != nil {
		os.Remove(p.file.Name())
		return fmt.Errorf("writing script %s: %w", p.name, err)
	} else if err := os.Rename(p.file.Name(), p.name); err != nil {
		os.Remove(p.file.Name())
		return fmt.Errorf("writing script %s: %w", p.name, err)
	}
	//
	p.committed = true
	//
	return nil
}

func (p *fileSink) Close() error {
	if p.closed {
		return nil
	}
	//
	p.closed = true
	//
	return errors.Join(p.file.Close(), os.Remove(p.file.Name()))
}

// MemorySinks retains committed scripts in memory, keyed by name.
type MemorySinks struct {
	scripts map[string]string
}

// NewMemorySinks constructs an empty set of in-memory sinks.
func NewMemorySinks() *MemorySinks {
	return &MemorySinks{make(map[string]string)}
}

// Open implementation for Sinks interface.
func (p *MemorySinks) Open(name string) (Sink, error) {
	return &memorySink{owner: p, name: name}, nil
}

// Script returns the committed script of a given name.
func (p *MemorySinks) Script(name string) (string, bool) {
	script, ok := p.scripts[name]
	return script, ok
}

// Names returns the names of all committed scripts, sorted.
func (p *MemorySinks) Names() []string {
	names := make([]string, 0, len(p.scripts))
	for name := range p.scripts {
		names = append(names, name)
	}
	//
	sort.Strings(names)
	//
	return names
}

type memorySink struct {
	owner   *MemorySinks
	name    string
	content []byte
}

func (p *memorySink) Write(bytes []byte) (int, error) {
	p.content = append(p.content, bytes...)
	return len(bytes), nil
}

func (p *memorySink) Name() string {
	return p.name
}

func (p *memorySink) Commit() error {
	p.owner.scripts[p.name] = string(p.content)
	return nil
}

func (p *memorySink) Close() error {
	return nil
}
