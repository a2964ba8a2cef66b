// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package callbacks infers, persists, and merges the parameter lists of
// Callable callbacks accepted by plugin methods.
//
// The engine documentation only types a callback as "Callable". Its actual
// arguments are described in prose, e.g. "The callback receives a
// [code]Array[GKLeaderboard][/code] and a [code]String[/code] error". The
// extractor turns such prose into an ordered parameter list; anything it
// cannot understand becomes a placeholder a human completes in the
// signatures file, which later runs never overwrite.
package callbacks

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/afero"
)

// DefaultSchema is the $schema value written to new signature files.
const DefaultSchema = "./callback-signatures.schema.json"

// PlaceholderPrefix starts the description of signatures awaiting manual
// completion.
const PlaceholderPrefix = "TODO: Extract from description: "

// Parameter is one argument a callback receives.
type Parameter struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Signature is the parameter list of one Callable callback.
type Signature struct {
	Parameters  []Parameter `json:"parameters"`
	Description string      `json:"description,omitempty"`
}

// IsPlaceholder reports whether the signature still awaits manual work.
func (s *Signature) IsPlaceholder() bool {
	return s != nil && strings.HasPrefix(s.Description, PlaceholderPrefix)
}

// File maps "Class.method" keys to callback signatures.
type File struct {
	Schema    string                `json:"$schema"`
	Callbacks map[string]*Signature `json:"callbacks"`
}

// NewFile returns an empty signatures file.
func NewFile() *File {
	return &File{
		Schema:    DefaultSchema,
		Callbacks: make(map[string]*Signature),
	}
}

// Key builds the lookup key for a class method.
func Key(class, method string) string {
	return class + "." + method
}

// Lookup returns the signature for a class method, or nil.
func (f *File) Lookup(class, method string) *Signature {
	if f == nil {
		return nil
	}
	return f.Callbacks[Key(class, method)]
}

// Keys returns all callback keys, sorted.
func (f *File) Keys() []string {
	keys := make([]string, 0, len(f.Callbacks))
	for k := range f.Callbacks {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Pending returns the sorted keys of placeholder signatures.
func (f *File) Pending() []string {
	var keys []string
	for _, k := range f.Keys() {
		if f.Callbacks[k].IsPlaceholder() {
			keys = append(keys, k)
		}
	}
	return keys
}

// Load reads a signatures file. A missing file yields an empty one.
func Load(fsys afero.Fs, path string) (*File, error) {
	data, err := afero.ReadFile(fsys, path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewFile(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read signatures: %w", err)
	}

	f := NewFile()
	if len(strings.TrimSpace(string(data))) == 0 {
		return f, nil
	}
	if err := json.Unmarshal(data, f); err != nil {
		return nil, fmt.Errorf("decode signatures %s: %w", path, err)
	}
	if f.Callbacks == nil {
		f.Callbacks = make(map[string]*Signature)
	}
	for k, s := range f.Callbacks {
		if s == nil {
			delete(f.Callbacks, k)
		}
	}
	return f, nil
}

// Save writes f as indented JSON. Map keys are emitted sorted, so the file
// diffs cleanly between runs.
func Save(fsys afero.Fs, path string, f *File) error {
	data, err := Marshal(f)
	if err != nil {
		return err
	}
	if err := fsys.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create signatures directory: %w", err)
	}
	if err := afero.WriteFile(fsys, path, data, 0o644); err != nil {
		return fmt.Errorf("write signatures: %w", err)
	}
	return nil
}

// Marshal encodes f the way Save writes it.
func Marshal(f *File) ([]byte, error) {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode signatures: %w", err)
	}
	return append(data, '\n'), nil
}

// Merge combines a previously saved file with freshly extracted signatures.
// Every existing entry is kept verbatim, including hand edits and entries for
// methods that no longer exist; extracted entries are only added for keys
// the existing file lacks.
func Merge(existing, extracted *File) *File {
	result := NewFile()
	if existing != nil {
		if existing.Schema != "" {
			result.Schema = existing.Schema
		}
		for k, s := range existing.Callbacks {
			result.Callbacks[k] = s
		}
	}
	if extracted != nil {
		for k, s := range extracted.Callbacks {
			if _, ok := result.Callbacks[k]; !ok {
				result.Callbacks[k] = s
			}
		}
	}
	return result
}
