// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package gdtype

import (
	"strings"
	"unicode"

	"github.com/golang-cz/textcase"
)

// Uncapitalize returns name with the first letter lowercased.
func Uncapitalize(name string) string {
	if name == "" {
		return ""
	}
	runes := []rune(name)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}

// PascalCase converts a snake_case engine name to PascalCase.
// Every word is capitalized and the rest of it lowered, so
// "get_local_player" becomes "GetLocalPlayer" and "TOP_LEADING"
// becomes "TopLeading". Empty words from repeated underscores are dropped.
func PascalCase(snake string) string {
	var b strings.Builder
	for word := range strings.SplitSeq(snake, "_") {
		if word == "" {
			continue
		}
		b.WriteString(textcase.PascalCase(strings.ToLower(word)))
	}
	return b.String()
}

// CamelCase converts a snake_case engine name to camelCase.
func CamelCase(snake string) string {
	return Uncapitalize(PascalCase(snake))
}

// CamelToScreamingSnake converts a CamelCase name to SCREAMING_SNAKE_CASE.
// Fully uppercase names (like "URL") are returned as-is.
func CamelToScreamingSnake(name string) string {
	allUpper := true
	for _, r := range name {
		if !unicode.IsUpper(r) && unicode.IsLetter(r) {
			allUpper = false
			break
		}
	}
	if allUpper {
		return strings.ToUpper(name)
	}

	var result strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) && i > 0 {
			result.WriteRune('_')
		}
		result.WriteRune(unicode.ToUpper(r))
	}
	return result.String()
}

// EnumValueName converts an engine enum constant to a C# enum member name.
// The enum's own SCREAMING_SNAKE prefix is stripped when what remains is a
// valid identifier: ("LOCATION_TOP_LEADING", "Location") -> "TopLeading".
func EnumValueName(constant, enumName string) string {
	prefix := CamelToScreamingSnake(enumName) + "_"
	if rest, ok := strings.CutPrefix(constant, prefix); ok && rest != "" && !startsWithDigit(rest) {
		return PascalCase(rest)
	}
	name := PascalCase(constant)
	if startsWithDigit(name) {
		return "Value" + name
	}
	return name
}

func startsWithDigit(s string) bool {
	return s != "" && s[0] >= '0' && s[0] <= '9'
}

// csharpKeywords lists reserved words that cannot be used as identifiers
// without the verbatim "@" prefix.
var csharpKeywords = map[string]bool{
	"abstract": true, "as": true, "base": true, "bool": true, "break": true,
	"byte": true, "case": true, "catch": true, "char": true, "checked": true,
	"class": true, "const": true, "continue": true, "decimal": true, "default": true,
	"delegate": true, "do": true, "double": true, "else": true, "enum": true,
	"event": true, "explicit": true, "extern": true, "false": true, "finally": true,
	"fixed": true, "float": true, "for": true, "foreach": true, "goto": true,
	"if": true, "implicit": true, "in": true, "int": true, "interface": true,
	"internal": true, "is": true, "lock": true, "long": true, "namespace": true,
	"new": true, "null": true, "object": true, "operator": true, "out": true,
	"override": true, "params": true, "private": true, "protected": true, "public": true,
	"readonly": true, "ref": true, "return": true, "sbyte": true, "sealed": true,
	"short": true, "sizeof": true, "stackalloc": true, "static": true, "string": true,
	"struct": true, "switch": true, "this": true, "throw": true, "true": true,
	"try": true, "typeof": true, "uint": true, "ulong": true, "unchecked": true,
	"unsafe": true, "ushort": true, "using": true, "virtual": true, "void": true,
	"volatile": true, "while": true,
}

// SafeIdent returns name escaped with "@" when it is a C# keyword.
func SafeIdent(name string) string {
	if csharpKeywords[name] {
		return "@" + name
	}
	return name
}

// ParamName converts a snake_case parameter name to a C#-safe camelCase name.
func ParamName(snake string) string {
	name := CamelCase(snake)
	if name == "" {
		name = "arg"
	}
	return SafeIdent(name)
}

// LowerCamel lowercases the leading capital run of a PascalCase type name,
// keeping the last capital when it starts the next word:
// "GKLeaderboard" -> "gkLeaderboard", "URL" -> "url", "Image" -> "image".
func LowerCamel(name string) string {
	runes := []rune(name)
	n := 0
	for n < len(runes) && unicode.IsUpper(runes[n]) {
		n++
	}
	if n > 1 && n < len(runes) && unicode.IsLower(runes[n]) {
		n--
	}
	for i := range n {
		runes[i] = unicode.ToLower(runes[i])
	}
	return string(runes)
}
