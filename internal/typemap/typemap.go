// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package typemap translates engine types to C# types and builds the
// expressions that marshal values across the Variant boundary.
package typemap

import (
	"fmt"
	"strings"

	"github.com/albertocavalcante/gdbind/internal/gdtype"
	"github.com/albertocavalcante/gdbind/model"
)

// CSharp type names that the conversion builders special-case.
const (
	GodotObject = "GodotObject"
	GodotArray  = "Godot.Collections.Array"
	GodotDict   = "Godot.Collections.Dictionary"
)

// DefaultWrapped lists the plugin classes that have generated or
// hand-written wrappers, even when their documentation is absent.
var DefaultWrapped = []string{
	// GameCenter
	"GameCenterManager", "GKLocalPlayer", "GKPlayer", "GKAccessPoint",
	"GKAchievement", "GKAchievementDescription", "GKLeaderboard", "GKLeaderboardEntry",
	"GKLeaderboardSet", "GKSavedGame", "GKMatch", "GKMatchRequest",
	"GKMatchmakerViewController", "GKGameCenterViewController",

	// StoreKit
	"StoreKitManager", "StoreProduct", "StoreTransaction",
	"StoreSubscriptionInfo", "StoreSubscriptionInfoStatus", "StoreSubscriptionInfoRenewalInfo",
	"StoreProductPurchaseOption", "StoreProductSubscriptionOffer", "StoreProductSubscriptionPeriod",

	// Authentication
	"ASAuthorizationController", "ASAuthorizationAppleIDCredential", "ASPasswordCredential",
	"ASWebAuthenticationSession",

	"AVAudioSession",
	"AppleURL",
	"AppleFilePicker",
	"SignalProxy",
}

// builtins maps engine types with a direct C# counterpart.
var builtins = map[string]string{
	gdtype.TypeVoid:               "void",
	gdtype.TypeBool:               "bool",
	gdtype.TypeInt:                "int",
	gdtype.TypeFloat:              "double",
	gdtype.TypeString:             "string",
	gdtype.TypeStringName:         "StringName",
	gdtype.TypeVariant:            "Variant",
	gdtype.TypeObject:             GodotObject,
	gdtype.TypeCallable:           "Callable",
	gdtype.TypeDictionary:         GodotDict,
	gdtype.TypeArray:              GodotArray,
	gdtype.TypeRect2:              "Rect2",
	gdtype.TypeVector2:            "Vector2",
	gdtype.TypeVector3:            "Vector3",
	gdtype.TypeColor:              "Color",
	gdtype.TypeImage:              "Image",
	gdtype.TypeTexture2D:          "Texture2D",
	gdtype.TypePackedStringArray:  "string[]",
	gdtype.TypePackedByteArray:    "byte[]",
	gdtype.TypePackedInt32Array:   "int[]",
	gdtype.TypePackedInt64Array:   "long[]",
	gdtype.TypePackedFloat32Array: "float[]",
	gdtype.TypePackedFloat64Array: "double[]",
	gdtype.TypePackedVector2Array: "Vector2[]",
	gdtype.TypePackedVector3Array: "Vector3[]",
}

// fromVariant maps engine types to the Variant accessor that reads them.
var fromVariant = map[string]string{
	gdtype.TypeBool:               "AsBool()",
	gdtype.TypeInt:                "AsInt32()",
	gdtype.TypeFloat:              "AsDouble()",
	gdtype.TypeString:             "AsString()",
	gdtype.TypeStringName:         "AsStringName()",
	gdtype.TypeObject:             "AsGodotObject()",
	gdtype.TypeCallable:           "AsCallable()",
	gdtype.TypeDictionary:         "AsGodotDictionary()",
	gdtype.TypeArray:              "AsGodotArray()",
	gdtype.TypeRect2:              "AsRect2()",
	gdtype.TypeVector2:            "AsVector2()",
	gdtype.TypeVector3:            "AsVector3()",
	gdtype.TypeColor:              "AsColor()",
	gdtype.TypeImage:              "As<Image>()",
	gdtype.TypeTexture2D:          "As<Texture2D>()",
	gdtype.TypePackedStringArray:  "AsStringArray()",
	gdtype.TypePackedByteArray:    "AsByteArray()",
	gdtype.TypePackedInt32Array:   "AsInt32Array()",
	gdtype.TypePackedInt64Array:   "AsInt64Array()",
	gdtype.TypePackedFloat32Array: "AsFloat32Array()",
	gdtype.TypePackedFloat64Array: "AsFloat64Array()",
	gdtype.TypePackedVector2Array: "AsVector2Array()",
	gdtype.TypePackedVector3Array: "AsVector3Array()",
}

// Options configures a Mapper.
type Options struct {
	// Root is the root namespace. Defaults to DefaultRoot.
	Root string

	// Rules assign sub-namespaces. Defaults to DefaultRules.
	Rules []Rule

	// Wrapped adds class names to DefaultWrapped and the parsed classes.
	Wrapped []string

	// API supplies the parsed classes and their enums.
	API *model.API
}

// Mapper resolves engine types against a fixed set of wrapped classes and
// known enums.
type Mapper struct {
	root    string
	rules   []Rule
	wrapped map[string]bool

	// enums maps "Class.Enum" to its generated C# type name.
	enums map[string]string
	// bareEnums maps "Enum" to its generated name when unambiguous.
	bareEnums map[string]string
}

// New returns a Mapper for opts.
func New(opts Options) *Mapper {
	m := &Mapper{
		root:      opts.Root,
		rules:     opts.Rules,
		wrapped:   make(map[string]bool),
		enums:     make(map[string]string),
		bareEnums: make(map[string]string),
	}
	if m.root == "" {
		m.root = DefaultRoot
	}
	if m.rules == nil {
		m.rules = DefaultRules()
	}
	for _, name := range DefaultWrapped {
		m.wrapped[name] = true
	}
	for _, name := range opts.Wrapped {
		m.wrapped[name] = true
	}

	if opts.API == nil {
		return m
	}
	ambiguous := make(map[string]bool)
	for _, c := range opts.API.Classes {
		m.wrapped[c.Name] = true
		for _, e := range c.Enums() {
			typ := EnumTypeName(c.Name, e.Name)
			m.enums[c.Name+"."+e.Name] = typ
			if _, dup := m.bareEnums[e.Name]; dup {
				ambiguous[e.Name] = true
			}
			m.bareEnums[e.Name] = typ
		}
	}
	for name := range ambiguous {
		delete(m.bareEnums, name)
	}
	return m
}

// EnumTypeName returns the C# name of the enum declared by class.
func EnumTypeName(class, enum string) string {
	return class + enum
}

// IsWrapped reports whether name has a wrapper class.
func (m *Mapper) IsWrapped(name string) bool {
	return m.wrapped[name]
}

// EnumType returns the generated C# type of an enum reference. The
// reference may be qualified ("GKAccessPoint.Location") or bare when the
// name is unique among parsed classes.
func (m *Mapper) EnumType(enum string) (string, bool) {
	if enum == "" {
		return "", false
	}
	if t, ok := m.enums[enum]; ok {
		return t, true
	}
	if strings.Contains(enum, ".") {
		return "", false
	}
	t, ok := m.bareEnums[enum]
	return t, ok
}

// CSharpType returns the C# type used for an engine type. An int that
// carries a known enum maps to the generated enum.
func (m *Mapper) CSharpType(typ, enum string) string {
	typ = strings.TrimSpace(typ)
	if typ == gdtype.TypeInt {
		if t, ok := m.EnumType(enum); ok {
			return t
		}
	}
	if elem, ok := gdtype.ArrayElement(typ); ok {
		return m.CSharpType(elem, "") + "[]"
	}
	if strings.HasPrefix(typ, gdtype.TypeArray) {
		return GodotArray
	}
	if t, ok := builtins[typ]; ok {
		return t
	}
	if m.wrapped[typ] {
		return typ
	}
	return GodotObject
}

// ToVariant returns the expression that passes expr, a C# value of the
// engine type typ, to a Variant-taking call.
func (m *Mapper) ToVariant(expr, typ, enum string) string {
	typ = strings.TrimSpace(typ)
	if typ == gdtype.TypeInt {
		if _, ok := m.EnumType(enum); ok {
			return "(int)" + expr
		}
	}
	if elem, ok := gdtype.ArrayElement(typ); ok {
		if m.wrapped[elem] {
			return fmt.Sprintf("new %s(%s.Select(x => Variant.From(x.Instance)))", GodotArray, expr)
		}
		return fmt.Sprintf("new %s(%s.Select(x => Variant.From(x)))", GodotArray, expr)
	}
	if m.wrapped[typ] {
		return expr + ".Instance"
	}
	return expr
}

// FromVariant returns the expression that converts expr, a Variant, to the
// C# type of typ. It returns "" for void.
func (m *Mapper) FromVariant(expr, typ, enum string) string {
	typ = strings.TrimSpace(typ)
	switch typ {
	case gdtype.TypeVoid, "":
		return ""
	case gdtype.TypeVariant:
		return expr
	case gdtype.TypeInt:
		if t, ok := m.EnumType(enum); ok {
			return fmt.Sprintf("(%s)%s.AsInt32()", t, expr)
		}
	}
	if elem, ok := gdtype.ArrayElement(typ); ok {
		if m.wrapped[elem] {
			return fmt.Sprintf("%s.AsGodotArray().Select(x => new %s((GodotObject)x.Obj!)).ToArray()", expr, elem)
		}
		return fmt.Sprintf("%s.AsGodotArray().Select(x => x.As<%s>()).ToArray()", expr, m.CSharpType(elem, ""))
	}
	if m.wrapped[typ] {
		return fmt.Sprintf("new %s((GodotObject)%s.Obj!)", typ, expr)
	}
	if acc, ok := fromVariant[typ]; ok {
		return expr + "." + acc
	}
	return expr + ".AsGodotObject()"
}

// NullableFromVariant is FromVariant for arguments the engine may pass as
// Nil, such as the result of a callback that failed. It reports whether the
// C# type must be declared nullable. Value types convert as FromVariant does.
func (m *Mapper) NullableFromVariant(expr, typ, enum string) (string, bool) {
	typ = strings.TrimSpace(typ)
	switch {
	case typ == gdtype.TypeString:
		return fmt.Sprintf("%s.VariantType == Variant.Type.Nil ? null : %s.AsString()", expr, expr), true
	case m.wrapped[typ]:
		return fmt.Sprintf("%s.Obj is GodotObject %sObj ? new %s(%sObj) : null", expr, expr, typ, expr), true
	case typ == gdtype.TypeImage, typ == gdtype.TypeTexture2D, m.CSharpType(typ, enum) == GodotObject:
		return m.FromVariant(expr, typ, enum), true
	}
	return m.FromVariant(expr, typ, enum), false
}
