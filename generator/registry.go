// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package generator

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
)

// ErrUnknownTarget is returned by Lookup for a name no generator registered.
var ErrUnknownTarget = errors.New("unknown target")

var (
	mu       sync.RWMutex
	registry = make(map[string]Generator)
)

// Register adds a generator to the registry. Targets register themselves
// from the cmd package's embedded_*.go files.
func Register(g Generator) {
	mu.Lock()
	defer mu.Unlock()
	meta := g.Metadata()
	if _, exists := registry[meta.Name]; exists {
		panic(fmt.Sprintf("generator %q already registered", meta.Name))
	}
	registry[meta.Name] = g
}

// Get returns a generator by name.
func Get(name string) (Generator, bool) {
	mu.RLock()
	defer mu.RUnlock()
	g, ok := registry[name]
	return g, ok
}

// List returns all registered generator names, sorted.
func List() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Lookup returns the generators for names, in the order given. Repeated
// names are returned once.
func Lookup(names []string) ([]Generator, error) {
	mu.RLock()
	defer mu.RUnlock()
	var gens []Generator
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		g, ok := registry[name]
		if !ok {
			available := make([]string, 0, len(registry))
			for n := range registry {
				available = append(available, n)
			}
			slices.Sort(available)
			return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknownTarget, name, strings.Join(available, ", "))
		}
		gens = append(gens, g)
	}
	return gens, nil
}

// Reset clears the registry (for testing).
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	registry = make(map[string]Generator)
}
