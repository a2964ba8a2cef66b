// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package generator

import (
	"fmt"
	"path"
	"path/filepath"
	"slices"

	"github.com/spf13/afero"
)

// Output contains generated files.
type Output struct {
	// Files maps slash-separated relative paths to content.
	Files map[string][]byte
}

// NewOutput creates a new Output.
func NewOutput() *Output {
	return &Output{Files: make(map[string][]byte)}
}

// Add adds a file to the output.
func (o *Output) Add(name string, content []byte) {
	o.Files[path.Clean(name)] = content
}

// Single returns an Output with a single file.
func Single(name string, content []byte) *Output {
	o := NewOutput()
	o.Add(name, content)
	return o
}

// Names returns the file names, sorted.
func (o *Output) Names() []string {
	names := make([]string, 0, len(o.Files))
	for name := range o.Files {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// WriteTo writes every file under dir, creating directories as needed.
// When clean is set, dir is removed first so files of classes that no
// longer exist do not linger.
func (o *Output) WriteTo(fsys afero.Fs, dir string, clean bool) error {
	if clean {
		if err := fsys.RemoveAll(dir); err != nil {
			return fmt.Errorf("clean %s: %w", dir, err)
		}
	}
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	for _, name := range o.Names() {
		dst := filepath.Join(dir, filepath.FromSlash(name))
		if err := fsys.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return fmt.Errorf("create %s: %w", filepath.Dir(dst), err)
		}
		if err := afero.WriteFile(fsys, dst, o.Files[name], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", dst, err)
		}
	}
	return nil
}
