// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package typemap

import (
	"strings"
)

// DefaultRoot is the root namespace of generated wrappers.
const DefaultRoot = "GodotApplePlugins.NET"

// Rule places matching classes in a sub-namespace of the root.
// A class matches when its name equals one of Names, starts with one of
// Prefixes, or contains one of Contains. Rules are tried in order.
type Rule struct {
	Namespace string   `yaml:"namespace" json:"namespace"`
	Prefixes  []string `yaml:"prefixes,omitempty" json:"prefixes,omitempty"`
	Names     []string `yaml:"names,omitempty" json:"names,omitempty"`
	Contains  []string `yaml:"contains,omitempty" json:"contains,omitempty"`
}

// Match reports whether class falls under the rule.
func (r Rule) Match(class string) bool {
	for _, n := range r.Names {
		if class == n {
			return true
		}
	}
	for _, p := range r.Prefixes {
		if strings.HasPrefix(class, p) {
			return true
		}
	}
	for _, s := range r.Contains {
		if strings.Contains(class, s) {
			return true
		}
	}
	return false
}

// DefaultRules groups the Apple plugin classes by framework.
func DefaultRules() []Rule {
	return []Rule{
		{Namespace: "GameCenter", Prefixes: []string{"GK"}, Names: []string{"GameCenterManager"}},
		{Namespace: "StoreKit", Prefixes: []string{"Store"}, Names: []string{"ProductView"}, Contains: []string{"Subscription"}},
		{Namespace: "Authentication", Prefixes: []string{"AS"}},
		{Namespace: "AVFoundation", Prefixes: []string{"AV"}},
		{Namespace: "Foundation", Names: []string{"Foundation", "AppleURL"}},
		{Namespace: "UI", Names: []string{"AppleFilePicker"}},
	}
}

// Subnamespace returns the namespace of class relative to the root,
// or "" when no rule matches.
func (m *Mapper) Subnamespace(class string) string {
	for _, r := range m.rules {
		if r.Match(class) {
			return r.Namespace
		}
	}
	return ""
}

// Namespace returns the fully qualified namespace of a wrapped class.
func (m *Mapper) Namespace(class string) string {
	return m.Qualify(m.Subnamespace(class))
}

// Qualify joins a relative namespace onto the root.
func (m *Mapper) Qualify(sub string) string {
	switch {
	case sub == "":
		return m.root
	case m.root == "":
		return sub
	}
	return m.root + "." + sub
}

// Dir returns the output directory of a class relative to the output root,
// mirroring its sub-namespace ("GameCenter", "StoreKit/Offers", or "").
func (m *Mapper) Dir(class string) string {
	return strings.ReplaceAll(m.Subnamespace(class), ".", "/")
}

// Root returns the root namespace.
func (m *Mapper) Root() string {
	return m.root
}
