// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package callbacks

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/albertocavalcante/gdbind/internal/docxml"
	"github.com/albertocavalcante/gdbind/internal/gdtype"
	"github.com/albertocavalcante/gdbind/model"
)

// maxTypeLen bounds the length of a code span still considered a type.
const maxTypeLen = 50

var (
	codeSpanRe  = regexp.MustCompile(`(?is)\[code(?:\s+skip-lint)?\](.*?)\[/code\]`)
	receivesRe  = regexp.MustCompile(`(?i)callback\s+receives\s+(?:a\s+)?`)
	typeShapeRe = regexp.MustCompile(`^[A-Za-z_]\w*(?:\[\w+\])?$`)
)

// literals are code spans that look like identifiers but are values.
var literals = map[string]bool{"null": true, "true": true, "false": true}

// KnownTypes returns a predicate accepting engine built-ins, classes
// documented in api, and typed arrays of either.
func KnownTypes(api *model.API) func(string) bool {
	return func(typ string) bool {
		if elem, ok := gdtype.ArrayElement(typ); ok {
			typ = elem
		}
		if typ == gdtype.TypeVoid {
			return false
		}
		return gdtype.IsBuiltin(typ) || (api != nil && api.Class(typ) != nil)
	}
}

// Extract builds a signature for every method that takes a Callable.
// Methods whose description cannot be understood get a placeholder.
func Extract(api *model.API) *File {
	result := NewFile()
	known := KnownTypes(api)
	for _, c := range api.Classes {
		for _, m := range c.Methods {
			if m.CallableParam() == nil {
				continue
			}
			raw := m.RawDescription
			if raw == "" {
				raw = m.Description
			}
			sig := ExtractSignature(raw, known)
			if sig == nil {
				sig = Placeholder(docxml.CleanDescription(raw))
			}
			result.Callbacks[Key(c.Name, m.Name)] = sig
		}
	}
	return result
}

// Placeholder returns the signature stored when extraction fails.
func Placeholder(description string) *Signature {
	return &Signature{
		Description: PlaceholderPrefix + description,
		Parameters:  []Parameter{{Name: "result", Type: "Variant"}},
	}
}

// ExtractSignature reads callback parameter types from a method description
// that still carries BBCode markup. It looks for a "callback receives"
// phrase and turns every [code] span naming a type accepted by known into a
// parameter, in order. A nil known accepts built-ins only. It returns nil
// when no parameter can be recovered.
func ExtractSignature(description string, known func(string) bool) *Signature {
	if known == nil {
		known = KnownTypes(nil)
	}
	if strings.TrimSpace(description) == "" {
		return nil
	}
	matches := codeSpanRe.FindAllStringSubmatch(description, -1)
	if len(matches) == 0 || !receivesRe.MatchString(description) {
		return nil
	}

	var params []Parameter
	seen := make(map[string]int)
	for _, m := range matches {
		typ := strings.TrimSpace(m[1])
		if !isTypeSpan(typ) || !known(typ) {
			continue
		}
		name := InferParameterName(typ, len(params))
		seen[name]++
		if n := seen[name]; n > 1 {
			name += strconv.Itoa(n)
		}
		params = append(params, Parameter{Name: name, Type: typ})
	}
	if len(params) == 0 {
		return nil
	}
	return &Signature{Parameters: params}
}

func isTypeSpan(s string) bool {
	if strings.ContainsAny(s, "(=") || len(s) > maxTypeLen {
		return false
	}
	return typeShapeRe.MatchString(s) && !literals[s]
}

// InferParameterName picks a readable parameter name for a callback
// argument of the given engine type at position index.
func InferParameterName(typ string, index int) string {
	if elem, ok := gdtype.ArrayElement(typ); ok {
		return gdtype.SafeIdent(gdtype.LowerCamel(elem) + "s")
	}
	switch typ {
	case gdtype.TypeString:
		if index > 0 {
			return "error"
		}
		return "result"
	case gdtype.TypeInt:
		return "status"
	case gdtype.TypeBool:
		return "success"
	case gdtype.TypeImage:
		return "image"
	case gdtype.TypePackedByteArray:
		return "data"
	}
	return gdtype.SafeIdent(gdtype.LowerCamel(typ))
}
