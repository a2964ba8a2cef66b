// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package csharp

import (
	"fmt"
	"strconv"

	"github.com/albertocavalcante/gdbind/internal/gdtype"
)

// Kinds of StringName entries.
const (
	kindMethod   = "Method"
	kindProperty = "Property"
	kindSignal   = "Signal"
)

// stringName is one constant of the StringNames class.
type stringName struct {
	ident string
	godot string
	doc   string
}

// stringNames assigns unique C# identifiers to engine names. Methods and
// properties sharing an engine name share a constant; signals get their own
// constant with a "Signal" suffix.
type stringNames struct {
	byKey   map[string]string
	byIdent map[string]string
	regions *orderedMap[[]stringName]
}

func newStringNames() *stringNames {
	return &stringNames{
		byKey:   make(map[string]string),
		byIdent: make(map[string]string),
		regions: newOrderedMap[[]stringName](),
	}
}

// add registers godot for class and returns its identifier.
func (s *stringNames) add(class, godot, kind, doc string) string {
	key := "member:" + godot
	base := gdtype.PascalCase(godot)
	if kind == kindSignal {
		key = "signal:" + godot
		base += "Signal"
	}
	if ident, ok := s.byKey[key]; ok {
		return ident
	}
	if base == "" || startsWithDigit(base) {
		base = "Name" + base
	}

	ident := base
	for i := 2; s.byIdent[ident] != ""; i++ {
		ident = base + strconv.Itoa(i)
	}
	s.byKey[key] = ident
	s.byIdent[ident] = godot
	s.regions.set(class, append(s.regions.get(class), stringName{
		ident: ident,
		godot: godot,
		doc:   fmt.Sprintf("%s: %s", kind, doc),
	}))
	return ident
}

// memberNames hands out C#-safe member names within one class.
type memberNames struct {
	class string
	used  map[string]bool
}

func newMemberNames(class string, reserved ...string) *memberNames {
	m := &memberNames{class: class, used: make(map[string]bool)}
	for _, r := range reserved {
		m.used[r] = true
	}
	return m
}

// name returns base, or base+suffix (numbered if needed) when base is taken
// or equals the enclosing class name.
func (m *memberNames) name(base, suffix string) string {
	if base == "" || startsWithDigit(base) {
		base = "_" + base
	}
	name := base
	if m.taken(name) {
		name = base + suffix
		for i := 2; m.taken(name); i++ {
			name = base + suffix + strconv.Itoa(i)
		}
	}
	m.used[name] = true
	return name
}

func (m *memberNames) taken(name string) bool {
	return m.used[name] || name == m.class
}

func startsWithDigit(s string) bool {
	return s != "" && s[0] >= '0' && s[0] <= '9'
}
