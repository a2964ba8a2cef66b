// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package model defines the in-memory class model built from a GDExtension
// plugin's XML class reference (doc_classes/*.xml).
//
// Each documentation file describes a single class with its methods,
// members (properties), signals, and constants. The model is independent of
// both the XML schema and any target language, so generators can consume it
// without knowing where it came from.
package model

import (
	"cmp"
	"slices"
)

// DefaultInherits is the parent class assumed when a class omits "inherits".
const DefaultInherits = "RefCounted"

// API is the complete set of classes parsed from a documentation tree.
type API struct {
	// Classes lists every parsed class, sorted by name after Sort.
	Classes []*Class `json:"classes"`
}

// Sort orders classes by name for deterministic output.
func (a *API) Sort() {
	slices.SortStableFunc(a.Classes, func(x, y *Class) int {
		return cmp.Compare(x.Name, y.Name)
	})
}

// Class returns the class with the given name, or nil.
func (a *API) Class(name string) *Class {
	for _, c := range a.Classes {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ClassNames returns the names of all classes in model order.
func (a *API) ClassNames() []string {
	names := make([]string, 0, len(a.Classes))
	for _, c := range a.Classes {
		names = append(names, c.Name)
	}
	return names
}

// Class represents a documented GDExtension class.
type Class struct {
	// Name is the engine class name (e.g., "GKLeaderboard").
	Name string `json:"name"`

	// Inherits is the parent class name. Defaults to DefaultInherits.
	Inherits string `json:"inherits"`

	// Description is the cleaned brief description, falling back to the
	// full description.
	Description string `json:"description,omitempty"`

	Methods    []*Method   `json:"methods,omitempty"`
	Properties []*Property `json:"properties,omitempty"`
	Signals    []*Signal   `json:"signals,omitempty"`
	Constants  []*Constant `json:"constants,omitempty"`
}

// Method represents a method of a class.
type Method struct {
	Name string `json:"name"`

	// Description is the cleaned, single-line description.
	Description string `json:"description,omitempty"`

	// RawDescription keeps the BBCode markup ([code], [param], ...) so that
	// heuristics can look for inline type references.
	RawDescription string `json:"-"`

	// ReturnType is the Godot return type. Defaults to "void".
	ReturnType string `json:"returnType"`

	// ReturnEnum is the qualified enum name of an integer return, if any.
	ReturnEnum string `json:"returnEnum,omitempty"`

	Parameters []*Parameter `json:"parameters,omitempty"`

	IsStatic bool `json:"static,omitempty"`
	IsVararg bool `json:"vararg,omitempty"`
	IsConst  bool `json:"const,omitempty"`
}

// CallableParam returns the first parameter typed Callable, or nil.
func (m *Method) CallableParam() *Parameter {
	for _, p := range m.Parameters {
		if p.Type == "Callable" {
			return p
		}
	}
	return nil
}

// Returns reports whether the method produces a value.
func (m *Method) Returns() bool {
	return m.ReturnType != "" && m.ReturnType != "void"
}

// Property represents a class member exposed as a property.
type Property struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	Enum         string `json:"enum,omitempty"`
	Description  string `json:"description,omitempty"`
	DefaultValue string `json:"default,omitempty"`
	Getter       string `json:"getter,omitempty"`
	Setter       string `json:"setter,omitempty"`

	// HasSetter is true when the member declares a setter attribute,
	// even an empty one.
	HasSetter bool `json:"hasSetter"`
}

// Signal represents a signal emitted by a class.
type Signal struct {
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Parameters  []*Parameter `json:"parameters,omitempty"`
}

// Parameter represents a method or signal parameter.
type Parameter struct {
	Index        int    `json:"index"`
	Name         string `json:"name"`
	Type         string `json:"type"`
	Enum         string `json:"enum,omitempty"`
	DefaultValue string `json:"default,omitempty"`

	// HasDefault distinguishes an empty default from no default.
	HasDefault bool `json:"hasDefault,omitempty"`
}

// SortParameters orders parameters by their declared index.
func SortParameters(params []*Parameter) {
	slices.SortStableFunc(params, func(a, b *Parameter) int {
		return cmp.Compare(a.Index, b.Index)
	})
}

// Constant represents a constant or an enum value.
type Constant struct {
	Name        string `json:"name"`
	Value       string `json:"value"`
	Description string `json:"description,omitempty"`

	// Enum is the enum this constant belongs to, empty for plain constants.
	Enum string `json:"enum,omitempty"`

	IsBitfield bool `json:"bitfield,omitempty"`
}

// Enum groups the constants sharing an enum attribute.
type Enum struct {
	Name       string
	IsBitfield bool
	Values     []*Constant
}

// Enums returns the class enums in first-seen order.
func (c *Class) Enums() []*Enum {
	var enums []*Enum
	index := make(map[string]*Enum)
	for _, k := range c.Constants {
		if k.Enum == "" {
			continue
		}
		e, ok := index[k.Enum]
		if !ok {
			e = &Enum{Name: k.Enum}
			index[k.Enum] = e
			enums = append(enums, e)
		}
		e.Values = append(e.Values, k)
		if k.IsBitfield {
			e.IsBitfield = true
		}
	}
	return enums
}

// PlainConstants returns constants that do not belong to an enum.
func (c *Class) PlainConstants() []*Constant {
	var out []*Constant
	for _, k := range c.Constants {
		if k.Enum == "" {
			out = append(out, k)
		}
	}
	return out
}

// IsAccessor reports whether a method name is the getter or setter of one
// of the class's documented properties.
func (c *Class) IsAccessor(method string) bool {
	for _, p := range c.Properties {
		if p.Getter != "" && p.Getter == method {
			return true
		}
		if p.Setter != "" && p.Setter == method {
			return true
		}
	}
	return false
}

// OnlyStatic reports whether every method of the class is static and the
// class exposes no instance state.
func (c *Class) OnlyStatic() bool {
	if len(c.Methods) == 0 || len(c.Properties) > 0 || len(c.Signals) > 0 {
		return false
	}
	for _, m := range c.Methods {
		if !m.IsStatic {
			return false
		}
	}
	return true
}
