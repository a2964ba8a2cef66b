// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package generator

import (
	"github.com/albertocavalcante/gdbind/internal/callbacks"
	"github.com/albertocavalcante/gdbind/internal/gdtype"
	"github.com/albertocavalcante/gdbind/model"
)

// ResolveDeps expands a class filter to include every documented class it
// transitively depends on: parents and the types of methods, properties,
// signals, and callback signatures. Returns nil if filter is nil
// (meaning "generate all classes").
func ResolveDeps(api *model.API, filter map[string]bool, sigs *callbacks.File) map[string]bool {
	if filter == nil {
		return nil
	}

	expanded := make(map[string]bool)
	for name := range filter {
		expanded[name] = true
		collectDeps(api, sigs, name, expanded)
	}
	return expanded
}

// collectDeps walks the references of className. Names that are not
// documented classes are never added, so built-in types stay out.
func collectDeps(api *model.API, sigs *callbacks.File, className string, visited map[string]bool) {
	c := api.Class(className)
	if c == nil {
		return
	}

	visit := func(typ string) {
		for _, ref := range gdtype.ReferencedTypes(typ) {
			if visited[ref] || api.Class(ref) == nil {
				continue
			}
			visited[ref] = true
			collectDeps(api, sigs, ref, visited)
		}
	}

	visit(c.Inherits)
	for _, p := range c.Properties {
		visit(p.Type)
	}
	for _, m := range c.Methods {
		visit(m.ReturnType)
		for _, p := range m.Parameters {
			visit(p.Type)
		}
		if sig := sigs.Lookup(c.Name, m.Name); sig != nil {
			for _, p := range sig.Parameters {
				visit(p.Type)
			}
		}
	}
	for _, s := range c.Signals {
		for _, p := range s.Parameters {
			visit(p.Type)
		}
	}
}
