// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package csharp generates C# wrapper classes for GDExtension classes.
//
// Each wrapper holds the engine object as a GodotObject and forwards to it
// dynamically:
//   - properties through Get/Set
//   - methods through Call (or ClassDB.ClassCallStatic for static methods)
//   - signals as C# events connected in the constructor
//   - Callable parameters as typed Action delegates when the callback
//     signature is known
//
// Engine names are referenced through StringName constants in a shared
// static class, and enums are emitted into a shared Enums file.
package csharp

import (
	"bytes"
	"fmt"
	"path"
	"regexp"
	"slices"
	"strings"

	"github.com/albertocavalcante/gdbind/internal/gdtype"
	"github.com/albertocavalcante/gdbind/internal/typemap"
	"github.com/albertocavalcante/gdbind/model"
)

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Codegen generates C# sources from the class model.
type Codegen struct {
	api    *model.API
	config Config
	types  *typemap.Mapper

	names *stringNames
	files *orderedMap[[]byte]
}

// Output contains the generated C# files keyed by relative path.
type Output struct {
	Files   *orderedMap[[]byte]
	Classes int
}

// New creates a new C# Codegen.
func New(api *model.API, types *typemap.Mapper, cfg Config) *Codegen {
	if cfg.StringNamesClass == "" {
		cfg.StringNamesClass = DefaultStringNamesClass
	}
	if cfg.FactoryClass == "" {
		cfg.FactoryClass = DefaultFactoryClass
	}
	if cfg.SharedNamespace == "" {
		cfg.SharedNamespace = DefaultSharedNamespace
	}
	return &Codegen{
		api:    api,
		config: cfg,
		types:  types,
		names:  newStringNames(),
		files:  newOrderedMap[[]byte](),
	}
}

// Generate produces the class files, then the shared files that collect
// what the classes referenced.
func (g *Codegen) Generate() (*Output, error) {
	if err := g.validate(); err != nil {
		return nil, err
	}

	classes := 0
	for _, c := range g.api.Classes {
		if !g.shouldInclude(c.Name) {
			continue
		}
		g.files.set(g.classPath(c.Name), g.generateClass(c))
		classes++
	}

	sharedDir := strings.ReplaceAll(g.config.SharedNamespace, ".", "/")
	g.files.set(path.Join(sharedDir, g.config.StringNamesClass+".cs"), g.generateStringNames())
	g.files.set(path.Join(sharedDir, "Enums.cs"), g.generateEnums())
	g.files.set(g.config.FactoryClass+".cs", g.generateFactory())

	return &Output{Files: g.files, Classes: classes}, nil
}

func (g *Codegen) validate() error {
	for _, ident := range []string{g.config.StringNamesClass, g.config.FactoryClass} {
		if !identRe.MatchString(ident) {
			return fmt.Errorf("csharp: invalid class name %q", ident)
		}
	}
	for _, ns := range []string{g.types.Root(), g.config.SharedNamespace} {
		for part := range strings.SplitSeq(ns, ".") {
			if !identRe.MatchString(part) {
				return fmt.Errorf("csharp: invalid namespace %q", ns)
			}
		}
	}
	return nil
}

func (g *Codegen) shouldInclude(name string) bool {
	return g.config.Filter == nil || g.config.Filter[name]
}

func (g *Codegen) classPath(name string) string {
	return path.Join(g.types.Dir(name), name+".cs")
}

func (g *Codegen) sharedNamespace() string {
	return g.types.Qualify(g.config.SharedNamespace)
}

// wrappedParent returns the parent class when it is generated too.
func (g *Codegen) wrappedParent(c *model.Class) string {
	if c.Inherits == "" || g.api.Class(c.Inherits) == nil || !g.shouldInclude(c.Inherits) {
		return ""
	}
	return c.Inherits
}

// ── Class → partial class ───────────────────────────────────────────

// classGen carries the per-class state of one generated file.
type classGen struct {
	g       *Codegen
	class   *model.Class
	ns      string
	parent  string
	members *memberNames
	usings  map[string]bool

	// Constructor and DisconnectSignals statements for signals.
	connect    []string
	disconnect []string
}

func (cg *classGen) use(ns string) {
	if ns != "" && ns != cg.ns {
		cg.usings[ns] = true
	}
}

func (cg *classGen) stringName(godot, kind, doc string) string {
	return cg.g.config.StringNamesClass + "." + cg.g.names.add(cg.class.Name, godot, kind, doc)
}

func (g *Codegen) generateClass(c *model.Class) []byte {
	cg := &classGen{
		g:       g,
		class:   c,
		ns:      g.types.Namespace(c.Name),
		parent:  g.wrappedParent(c),
		members: newMemberNames(c.Name, "Instance", "ClassName", "DisconnectSignals"),
		usings:  make(map[string]bool),
	}
	cg.use(g.sharedNamespace())
	if cg.parent != "" {
		cg.use(g.types.Namespace(cg.parent))
	}

	// Members are rendered first so the header knows every using.
	var constants, properties, methods, events bytes.Buffer
	cg.writeConstants(&constants)
	for _, p := range c.Properties {
		cg.writeProperty(&properties, p)
	}
	for _, m := range c.Methods {
		if c.IsAccessor(m.Name) {
			continue
		}
		cg.writeMethod(&methods, m)
	}
	for _, s := range c.Signals {
		cg.writeSignal(&events, s)
	}

	var buf bytes.Buffer
	buf.WriteString(g.fileHeader())
	buf.WriteString("#nullable enable\n\n")
	buf.WriteString("using System;\n")
	buf.WriteString("using System.Linq;\n")
	buf.WriteString("using Godot;\n")
	usings := make([]string, 0, len(cg.usings))
	for ns := range cg.usings {
		usings = append(usings, ns)
	}
	slices.Sort(usings)
	for _, ns := range usings {
		fmt.Fprintf(&buf, "using %s;\n", ns)
	}
	fmt.Fprintf(&buf, "\nnamespace %s;\n\n", cg.ns)

	doc := c.Description
	if doc == "" {
		doc = fmt.Sprintf("Wrapper for the %s GDExtension class.", c.Name)
	}
	writeSummary(&buf, doc, "")
	if cg.parent != "" {
		fmt.Fprintf(&buf, "public partial class %s : %s\n{\n", c.Name, cg.parent)
	} else {
		fmt.Fprintf(&buf, "public partial class %s\n{\n", c.Name)
	}
	fmt.Fprintf(&buf, "    private static readonly StringName ClassName = new(%q);\n\n", c.Name)
	if cg.parent == "" {
		buf.WriteString("    protected readonly GodotObject _instance;\n\n")
	}
	if constants.Len() > 0 {
		buf.Write(constants.Bytes())
		buf.WriteString("\n")
	}

	cg.writeConstructor(&buf)

	if cg.parent == "" {
		buf.WriteString("    /// <summary>\n    /// Gets the underlying GDExtension object.\n    /// </summary>\n")
		buf.WriteString("    public GodotObject Instance => _instance;\n\n")
	}

	for _, section := range []*bytes.Buffer{&properties, &methods, &events} {
		buf.Write(section.Bytes())
	}
	cg.writeDisconnect(&buf)

	buf.WriteString("}\n")
	return buf.Bytes()
}

func (cg *classGen) writeConstructor(buf *bytes.Buffer) {
	c := cg.class
	fmt.Fprintf(buf, "    /// <summary>\n    /// Wraps an existing %s instance.\n    /// </summary>\n", c.Name)
	if cg.parent != "" {
		fmt.Fprintf(buf, "    public %s(GodotObject instance) : base(instance)\n    {\n", c.Name)
	} else {
		fmt.Fprintf(buf, "    public %s(GodotObject instance)\n    {\n", c.Name)
		buf.WriteString("        _instance = instance ?? throw new ArgumentNullException(nameof(instance));\n")
	}
	for _, line := range cg.connect {
		fmt.Fprintf(buf, "        %s\n", line)
	}
	buf.WriteString("    }\n\n")
}

func (cg *classGen) writeDisconnect(buf *bytes.Buffer) {
	buf.WriteString("    /// <summary>\n    /// Disconnects the signal handlers installed by the constructor.\n    /// </summary>\n")
	if cg.parent != "" {
		buf.WriteString("    public override void DisconnectSignals()\n    {\n")
	} else {
		buf.WriteString("    public virtual void DisconnectSignals()\n    {\n")
	}
	for _, line := range cg.disconnect {
		fmt.Fprintf(buf, "        %s\n", line)
	}
	if cg.parent != "" {
		buf.WriteString("        base.DisconnectSignals();\n")
	}
	buf.WriteString("    }\n")
}

// ── Constants ───────────────────────────────────────────────────────

func (cg *classGen) writeConstants(buf *bytes.Buffer) {
	for _, k := range cg.class.PlainConstants() {
		typ, value, ok := intConstant(k.Value)
		if !ok {
			continue
		}
		writeSummary(buf, k.Description, "    ")
		name := cg.members.name(gdtype.PascalCase(k.Name), "Value")
		fmt.Fprintf(buf, "    public const %s %s = %s;\n", typ, name, value)
	}
}

// ── Properties ──────────────────────────────────────────────────────

func (cg *classGen) writeProperty(buf *bytes.Buffer, p *model.Property) {
	types := cg.g.types
	name := cg.members.name(gdtype.PascalCase(p.Name), "Value")
	typ := cg.csType(p.Type, p.Enum)
	sn := cg.stringName(p.Name, kindProperty, p.Name)
	get := types.FromVariant(fmt.Sprintf("_instance.Get(%s)", sn), p.Type, p.Enum)

	writeSummary(buf, p.Description, "    ")
	if !p.HasSetter {
		fmt.Fprintf(buf, "    public %s %s => %s;\n\n", typ, name, get)
		return
	}
	fmt.Fprintf(buf, "    public %s %s\n    {\n", typ, name)
	fmt.Fprintf(buf, "        get => %s;\n", get)
	fmt.Fprintf(buf, "        set => _instance.Set(%s, %s);\n", sn, types.ToVariant("value", p.Type, p.Enum))
	buf.WriteString("    }\n\n")
}

// ── Methods ─────────────────────────────────────────────────────────

func (cg *classGen) writeMethod(buf *bytes.Buffer, m *model.Method) {
	types := cg.g.types
	name := cg.members.name(gdtype.PascalCase(m.Name), "Value")

	var (
		decls []string
		args  []string
		pre   []string
		used  = make(map[string]bool)
	)
	optional := cg.g.optionalFrom(m.Parameters)
	callback := m.CallableParam()
	var sigParams []string
	for i, p := range m.Parameters {
		pname := gdtype.ParamName(p.Name)
		for n := 2; used[pname]; n++ {
			pname = fmt.Sprintf("%s%d", gdtype.ParamName(p.Name), n)
		}
		used[pname] = true
		sigParams = append(sigParams, p.Name)

		if p == callback {
			decl, arg, stmt := cg.callbackParam(m, p, pname, i >= optional)
			decls = append(decls, decl)
			args = append(args, arg)
			pre = append(pre, stmt...)
			continue
		}

		decl := cg.csType(p.Type, p.Enum) + " " + pname
		if i >= optional {
			lit, _ := cg.g.defaultLiteral(p)
			decl += " = " + lit
		}
		decls = append(decls, decl)
		args = append(args, types.ToVariant(pname, p.Type, p.Enum))
	}
	if m.IsVararg {
		decls = append(decls, "params Variant[] extraArgs")
		sigParams = append(sigParams, "...")
		if len(args) == 0 {
			args = []string{"extraArgs"}
		} else {
			args = []string{fmt.Sprintf("new Variant[] { %s }.Concat(extraArgs).ToArray()", strings.Join(args, ", "))}
		}
	}

	sn := cg.stringName(m.Name, kindMethod, fmt.Sprintf("%s(%s)", m.Name, strings.Join(sigParams, ", ")))
	var call string
	if m.IsStatic {
		call = fmt.Sprintf("ClassDB.ClassCallStatic(%s)", strings.Join(append([]string{"ClassName", sn}, args...), ", "))
	} else {
		call = fmt.Sprintf("_instance.Call(%s)", strings.Join(append([]string{sn}, args...), ", "))
	}

	ret := "void"
	if m.Returns() {
		ret = cg.csType(m.ReturnType, m.ReturnEnum)
	}
	modifier := "public"
	if m.IsStatic {
		modifier = "public static"
	}

	writeSummary(buf, m.Description, "    ")
	fmt.Fprintf(buf, "    %s %s %s(%s)\n    {\n", modifier, ret, name, strings.Join(decls, ", "))
	for _, stmt := range pre {
		fmt.Fprintf(buf, "        %s\n", stmt)
	}
	if m.Returns() {
		fmt.Fprintf(buf, "        return %s;\n", types.FromVariant(call, m.ReturnType, m.ReturnEnum))
	} else {
		fmt.Fprintf(buf, "        %s;\n", call)
	}
	buf.WriteString("    }\n\n")
}

// optionalFrom returns the index of the first parameter of the trailing run
// whose defaults are all representable in C#.
func (g *Codegen) optionalFrom(params []*model.Parameter) int {
	i := len(params)
	for i > 0 {
		if _, ok := g.defaultLiteral(params[i-1]); !ok {
			break
		}
		i--
	}
	return i
}

// callbackParam renders a Callable parameter. With a known signature it
// becomes a typed Action that is adapted through Callable.From; without one
// the raw Callable is passed through.
func (cg *classGen) callbackParam(m *model.Method, p *model.Parameter, pname string, optional bool) (string, string, []string) {
	sig := cg.g.config.Signatures.Lookup(cg.class.Name, m.Name)
	if sig == nil {
		decl := "Callable " + pname
		if optional {
			decl += " = default"
		}
		return decl, pname, nil
	}

	var actionTypes, conv []string
	var lambda string
	if sig.IsPlaceholder() {
		actionTypes = []string{"Variant"}
		lambda, conv = lambdaArgs(1)
	} else {
		var names []string
		lambda, names = lambdaArgs(len(sig.Parameters))
		for i, sp := range sig.Parameters {
			c, t := cg.nullableArg(names[i], sp.Type, "")
			actionTypes = append(actionTypes, t)
			conv = append(conv, c)
		}
	}

	local := strings.TrimPrefix(pname, "@") + "Callable"
	from := fmt.Sprintf("Callable.From((%s) => %s(%s))", lambda, pname, strings.Join(conv, ", "))
	action := actionType(actionTypes)
	if optional {
		return action + "? " + pname + " = null", local,
			[]string{fmt.Sprintf("var %s = %s == null ? default : %s;", local, pname, from)}
	}
	return action + " " + pname, local, []string{fmt.Sprintf("var %s = %s;", local, from)}
}

// nullableArg converts a Variant lambda argument for a callback or event
// handler. Reference types may arrive as Nil and are declared nullable.
func (cg *classGen) nullableArg(arg, typ, enum string) (string, string) {
	csType := cg.csType(typ, enum)
	conv, nullable := cg.g.types.NullableFromVariant(arg, typ, enum)
	if nullable {
		csType += "?"
	}
	return conv, csType
}

// ── Signals → events ────────────────────────────────────────────────

func (cg *classGen) writeSignal(buf *bytes.Buffer, s *model.Signal) {
	name := cg.members.name(gdtype.PascalCase(s.Name), "Event")
	field := "_" + gdtype.Uncapitalize(name) + "Callable"

	var paramNames, actionTypes, conv []string
	lambda, args := lambdaArgs(len(s.Parameters))
	for i, p := range s.Parameters {
		paramNames = append(paramNames, p.Name+": "+p.Type)
		c, t := cg.nullableArg(args[i], p.Type, p.Enum)
		actionTypes = append(actionTypes, t)
		conv = append(conv, c)
	}
	sn := cg.stringName(s.Name, kindSignal, fmt.Sprintf("%s(%s)", s.Name, strings.Join(paramNames, ", ")))

	writeSummary(buf, s.Description, "    ")
	fmt.Fprintf(buf, "    public event %s? %s;\n\n", actionType(actionTypes), name)
	fmt.Fprintf(buf, "    private readonly Callable %s;\n\n", field)

	cg.connect = append(cg.connect,
		fmt.Sprintf("%s = Callable.From((%s) => %s?.Invoke(%s));", field, lambda, name, strings.Join(conv, ", ")),
		fmt.Sprintf("_instance.Connect(%s, %s);", sn, field),
	)
	cg.disconnect = append(cg.disconnect,
		fmt.Sprintf("if (_instance.IsConnected(%s, %s))", sn, field),
		fmt.Sprintf("    _instance.Disconnect(%s, %s);", sn, field),
	)
}
