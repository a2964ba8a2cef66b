// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package csharp

import (
	"bytes"
	"fmt"
	"slices"
	"strconv"

	"github.com/albertocavalcante/gdbind/internal/gdtype"
	"github.com/albertocavalcante/gdbind/internal/typemap"
)

// ── StringName constants ────────────────────────────────────────────

func (g *Codegen) generateStringNames() []byte {
	var buf bytes.Buffer
	buf.WriteString(g.fileHeader())
	buf.WriteString("using Godot;\n\n")
	fmt.Fprintf(&buf, "namespace %s;\n\n", g.sharedNamespace())
	writeSummary(&buf, "StringName constants for the methods, properties, and signals of the GDExtension classes.", "")
	fmt.Fprintf(&buf, "public static class %s\n{\n", g.config.StringNamesClass)

	for i, class := range g.names.regions.sortedKeys() {
		if i > 0 {
			buf.WriteString("\n")
		}
		fmt.Fprintf(&buf, "    #region %s\n\n", class)
		for _, n := range g.names.regions.get(class) {
			fmt.Fprintf(&buf, "    /// <summary>%s</summary>\n", xmlEscape(n.doc))
			fmt.Fprintf(&buf, "    public static readonly StringName %s = new(%q);\n\n", n.ident, n.godot)
		}
		buf.WriteString("    #endregion\n")
	}

	buf.WriteString("}\n")
	return buf.Bytes()
}

// ── Enums ───────────────────────────────────────────────────────────

func (g *Codegen) generateEnums() []byte {
	var buf bytes.Buffer
	buf.WriteString(g.fileHeader())
	buf.WriteString("using System;\n\n")
	fmt.Fprintf(&buf, "namespace %s;\n", g.sharedNamespace())

	for _, c := range g.api.Classes {
		if !g.shouldInclude(c.Name) {
			continue
		}
		for _, e := range c.Enums() {
			buf.WriteString("\n")
			writeSummary(&buf, fmt.Sprintf("%s.%s", c.Name, e.Name), "")
			name := typemap.EnumTypeName(c.Name, e.Name)
			if e.IsBitfield {
				fmt.Fprintf(&buf, "[Flags]\npublic enum %s : long\n{\n", name)
			} else {
				fmt.Fprintf(&buf, "public enum %s\n{\n", name)
			}

			seen := make(map[string]bool)
			for _, k := range e.Values {
				_, value, ok := intConstant(k.Value)
				if !ok {
					continue
				}
				base := gdtype.EnumValueName(k.Name, e.Name)
				member := base
				for n := 2; seen[member]; n++ {
					member = base + strconv.Itoa(n)
				}
				seen[member] = true
				writeSummary(&buf, k.Description, "    ")
				fmt.Fprintf(&buf, "    %s = %s,\n", member, value)
			}
			buf.WriteString("}\n")
		}
	}
	return buf.Bytes()
}

// ── Factory ─────────────────────────────────────────────────────────

func (g *Codegen) generateFactory() []byte {
	root := g.types.Root()

	var classes []string
	usings := make(map[string]bool)
	for _, c := range g.api.Classes {
		if !g.shouldInclude(c.Name) || c.OnlyStatic() {
			continue
		}
		classes = append(classes, c.Name)
		if ns := g.types.Namespace(c.Name); ns != root {
			usings[ns] = true
		}
	}
	sortedUsings := make([]string, 0, len(usings))
	for ns := range usings {
		sortedUsings = append(sortedUsings, ns)
	}
	slices.Sort(sortedUsings)

	var buf bytes.Buffer
	buf.WriteString(g.fileHeader())
	buf.WriteString("#nullable enable\n\n")
	buf.WriteString("using Godot;\n")
	for _, ns := range sortedUsings {
		fmt.Fprintf(&buf, "using %s;\n", ns)
	}
	fmt.Fprintf(&buf, "\nnamespace %s;\n\n", root)

	writeSummary(&buf, "Factory methods for the GDExtension classes.", "")
	fmt.Fprintf(&buf, "public static partial class %s\n{\n", g.config.FactoryClass)
	buf.WriteString("    /// <summary>\n")
	buf.WriteString("    /// Instantiates a GDExtension class by name, or returns null when it is not registered.\n")
	buf.WriteString("    /// </summary>\n")
	buf.WriteString("    public static GodotObject? TryCreateInstance(string className)\n    {\n")
	buf.WriteString("        if (!ClassDB.ClassExists(className))\n")
	buf.WriteString("            return null;\n\n")
	buf.WriteString("        return ClassDB.Instantiate(className).AsGodotObject();\n")
	buf.WriteString("    }\n")

	for _, name := range classes {
		buf.WriteString("\n")
		fmt.Fprintf(&buf, "    /// <summary>\n    /// Creates a %s wrapper, or returns null when the class is unavailable.\n    /// </summary>\n", name)
		fmt.Fprintf(&buf, "    public static %s? TryCreate%s()\n    {\n", name, name)
		fmt.Fprintf(&buf, "        var instance = TryCreateInstance(%q);\n", name)
		fmt.Fprintf(&buf, "        return instance == null ? null : new %s(instance);\n", name)
		buf.WriteString("    }\n")
	}

	buf.WriteString("}\n")
	return buf.Bytes()
}
