// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package csharp

import "github.com/albertocavalcante/gdbind/internal/callbacks"

// Option keys understood by the C# generator.
const (
	OptionStringNamesClass = "string_names_class"
	OptionFactoryClass     = "factory_class"
	OptionSharedNamespace  = "shared_namespace"
)

// Defaults for the generated support files.
const (
	DefaultStringNamesClass = "ApplePluginStringNames"
	DefaultFactoryClass     = "ApplePlugins"
	DefaultSharedNamespace  = "Shared"
)

// Config holds configuration for C# generation.
type Config struct {
	// StringNamesClass names the static class holding StringName constants.
	StringNamesClass string

	// FactoryClass names the static factory class in the root namespace.
	FactoryClass string

	// SharedNamespace is the sub-namespace of the StringNames and Enums
	// files, relative to the root namespace.
	SharedNamespace string

	// Signatures supplies callback parameter lists (optional).
	Signatures *callbacks.File

	// Filter restricts generation to these classes (nil means all).
	Filter map[string]bool

	// Source metadata for header comments.
	Source     string
	Ref        string
	CommitHash string
}
