// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package gdtype provides the Godot type vocabulary and the identifier
// transformations shared by all code generators.
package gdtype

import (
	"regexp"
	"strings"
)

// Godot type name constants as they appear in doc_classes XML.
const (
	TypeVoid       = "void"
	TypeBool       = "bool"
	TypeInt        = "int"
	TypeFloat      = "float"
	TypeString     = "String"
	TypeStringName = "StringName"
	TypeVariant    = "Variant"
	TypeObject     = "Object"
	TypeCallable   = "Callable"
	TypeDictionary = "Dictionary"
	TypeArray      = "Array"
	TypeRect2      = "Rect2"
	TypeVector2    = "Vector2"
	TypeVector3    = "Vector3"
	TypeColor      = "Color"
	TypeImage      = "Image"
	TypeTexture2D  = "Texture2D"

	TypePackedStringArray  = "PackedStringArray"
	TypePackedByteArray    = "PackedByteArray"
	TypePackedInt32Array   = "PackedInt32Array"
	TypePackedInt64Array   = "PackedInt64Array"
	TypePackedFloat32Array = "PackedFloat32Array"
	TypePackedFloat64Array = "PackedFloat64Array"
	TypePackedVector2Array = "PackedVector2Array"
	TypePackedVector3Array = "PackedVector3Array"
)

var builtinTypes = map[string]bool{
	TypeVoid:               true,
	TypeBool:               true,
	TypeInt:                true,
	TypeFloat:              true,
	TypeString:             true,
	TypeStringName:         true,
	TypeVariant:            true,
	TypeObject:             true,
	TypeCallable:           true,
	TypeDictionary:         true,
	TypeArray:              true,
	TypeRect2:              true,
	TypeVector2:            true,
	TypeVector3:            true,
	TypeColor:              true,
	TypeImage:              true,
	TypeTexture2D:          true,
	TypePackedStringArray:  true,
	TypePackedByteArray:    true,
	TypePackedInt32Array:   true,
	TypePackedInt64Array:   true,
	TypePackedFloat32Array: true,
	TypePackedFloat64Array: true,
	TypePackedVector2Array: true,
	TypePackedVector3Array: true,
}

// IsBuiltin reports whether name is an engine type known to the mapper.
func IsBuiltin(name string) bool {
	return builtinTypes[name]
}

var typedArrayRe = regexp.MustCompile(`^Array\[(\w+)\]$`)

// ArrayElement returns the element type of a typed array ("Array[GKPlayer]").
func ArrayElement(name string) (string, bool) {
	m := typedArrayRe.FindStringSubmatch(strings.TrimSpace(name))
	if m == nil {
		return "", false
	}
	return m[1], true
}

// ReferencedTypes returns the class-like names a type expression mentions:
// the element of a typed array or the type itself.
func ReferencedTypes(name string) []string {
	if name == "" {
		return nil
	}
	if elem, ok := ArrayElement(name); ok {
		return []string{elem}
	}
	return []string{name}
}
