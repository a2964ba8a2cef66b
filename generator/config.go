// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package generator

import (
	"github.com/albertocavalcante/gdbind/internal/callbacks"
	"github.com/albertocavalcante/gdbind/internal/typemap"
	"github.com/albertocavalcante/gdbind/model"
)

// Config contains generator configuration.
type Config struct {
	// OutputDir is the output directory.
	OutputDir string

	// Classes filters to specific class names (empty = all).
	Classes []string

	// ResolveDeps includes parents and referenced classes when filtering.
	ResolveDeps bool

	// Signatures holds the merged callback signatures (optional).
	Signatures *callbacks.File

	// RootNamespace is the namespace generated code lives under.
	RootNamespace string

	// Namespaces assigns sub-namespaces to classes. Nil uses the defaults.
	Namespaces []typemap.Rule

	// WrappedClasses names extra classes that have wrappers even though
	// they are not documented.
	WrappedClasses []string

	// Source is the documentation source (for headers).
	Source string

	// Ref is the git ref used.
	Ref string

	// CommitHash is the git commit.
	CommitHash string

	// Options contains target-specific options.
	Options map[string]string
}

// Option returns a target-specific option with default.
func (c Config) Option(key, defaultValue string) string {
	if v, ok := c.Options[key]; ok {
		return v
	}
	return defaultValue
}

// Mapper builds the type mapper for api under this configuration.
func (c Config) Mapper(api *model.API) *typemap.Mapper {
	return typemap.New(typemap.Options{
		Root:    c.RootNamespace,
		Rules:   c.Namespaces,
		Wrapped: c.WrappedClasses,
		API:     api,
	})
}

// Filter returns the set of classes to generate, or nil for all of them.
func (c Config) Filter(api *model.API) map[string]bool {
	if len(c.Classes) == 0 {
		return nil
	}
	filter := make(map[string]bool, len(c.Classes))
	for _, name := range c.Classes {
		filter[name] = true
	}
	if c.ResolveDeps {
		return ResolveDeps(api, filter, c.Signatures)
	}
	return filter
}
