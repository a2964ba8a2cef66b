// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package csharp

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/albertocavalcante/gdbind/internal/gdtype"
	"github.com/albertocavalcante/gdbind/model"
)

// csType returns the C# type of an engine type and records the usings
// needed to reference it from the class being generated.
func (cg *classGen) csType(typ, enum string) string {
	for _, ref := range gdtype.ReferencedTypes(typ) {
		if cg.g.types.IsWrapped(ref) {
			cg.use(cg.g.types.Namespace(ref))
		}
	}
	return cg.g.types.CSharpType(typ, enum)
}

// defaultLiteral returns the C# literal for a parameter default, or false
// when the engine default has no constant C# form.
func (g *Codegen) defaultLiteral(p *model.Parameter) (string, bool) {
	if !p.HasDefault {
		return "", false
	}
	v := strings.TrimSpace(p.DefaultValue)
	switch p.Type {
	case gdtype.TypeBool:
		if v == "true" || v == "false" {
			return v, true
		}
	case gdtype.TypeInt:
		n, err := strconv.ParseInt(v, 0, 32)
		if err != nil {
			return "", false
		}
		if enumType, ok := g.types.EnumType(p.Enum); ok {
			if n < 0 {
				return fmt.Sprintf("(%s)(%d)", enumType, n), true
			}
			return fmt.Sprintf("(%s)%d", enumType, n), true
		}
		return strconv.FormatInt(n, 10), true
	case gdtype.TypeFloat:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
			return "", false
		}
		s := strconv.FormatFloat(f, 'g', -1, 64)
		if !strings.ContainsAny(s, ".e") {
			s += ".0"
		}
		return s, true
	case gdtype.TypeString:
		if len(v) >= 2 && strings.HasPrefix(v, `"`) && strings.HasSuffix(v, `"`) {
			return v, true
		}
	case gdtype.TypeVariant:
		if v == "null" {
			return "default", true
		}
	case gdtype.TypeCallable:
		return "default", true
	}
	return "", false
}

// intConstant parses an engine constant value and reports the C# type
// wide enough to hold it.
func intConstant(value string) (string, string, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(value), 0, 64)
	if err != nil {
		return "", "", false
	}
	typ := "int"
	if n < math.MinInt32 || n > math.MaxInt32 {
		typ = "long"
	}
	return typ, strconv.FormatInt(n, 10), true
}

// ── Text helpers ────────────────────────────────────────────────────

var xmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func xmlEscape(s string) string {
	return xmlEscaper.Replace(s)
}

// writeSummary writes a /// <summary> block. Empty docs write nothing.
func writeSummary(buf *bytes.Buffer, doc, indent string) {
	doc = strings.TrimSpace(doc)
	if doc == "" {
		return
	}
	fmt.Fprintf(buf, "%s/// <summary>\n", indent)
	for line := range strings.SplitSeq(doc, "\n") {
		fmt.Fprintf(buf, "%s/// %s\n", indent, xmlEscape(strings.TrimSpace(line)))
	}
	fmt.Fprintf(buf, "%s/// </summary>\n", indent)
}

func (g *Codegen) fileHeader() string {
	var lines []string
	lines = append(lines, "// <auto-generated/>")
	lines = append(lines, "// Code generated by gdbind. DO NOT EDIT.")
	if g.config.Source != "" {
		lines = append(lines, fmt.Sprintf("// Source: %s", g.config.Source))
	}
	if g.config.Ref != "" {
		lines = append(lines, fmt.Sprintf("// Ref: %s", g.config.Ref))
	}
	if g.config.CommitHash != "" {
		lines = append(lines, fmt.Sprintf("// Commit: %s", g.config.CommitHash))
	}
	lines = append(lines, "", "")
	return strings.Join(lines, "\n")
}

// lambdaArgs returns "Variant arg0, Variant arg1, ..." and the matching
// argument names.
func lambdaArgs(n int) (string, []string) {
	decls := make([]string, n)
	names := make([]string, n)
	for i := range n {
		names[i] = "arg" + strconv.Itoa(i)
		decls[i] = "Variant " + names[i]
	}
	return strings.Join(decls, ", "), names
}

// actionType returns Action or Action<T...>.
func actionType(types []string) string {
	if len(types) == 0 {
		return "Action"
	}
	return "Action<" + strings.Join(types, ", ") + ">"
}
