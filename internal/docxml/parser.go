// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package docxml parses Godot XML class documentation into the class model.
package docxml

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"

	"github.com/albertocavalcante/gdbind/internal/logging"
	"github.com/albertocavalcante/gdbind/model"
)

// ErrNotClass is returned when a document's root element is not <class>.
var ErrNotClass = errors.New("root element is not <class>")

// DefaultInclude matches every XML file below the documentation directory.
const DefaultInclude = "**/*.xml"

// Options controls directory parsing.
type Options struct {
	// Include lists doublestar patterns, relative to the directory, of files
	// to parse. Empty means DefaultInclude.
	Include []string

	// Exclude lists doublestar patterns of files to skip.
	Exclude []string

	// Strict turns per-file parse failures into an error instead of a
	// logged warning.
	Strict bool
}

// Parse decodes a single documentation document.
func Parse(r io.Reader) (*model.Class, error) {
	var doc xmlClass
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode xml: %w", err)
	}
	if doc.XMLName.Local != "class" {
		return nil, fmt.Errorf("%w: got <%s>", ErrNotClass, doc.XMLName.Local)
	}
	return convertClass(&doc), nil
}

// ParseFile parses the documentation file at path.
func ParseFile(fsys afero.Fs, path string) (*model.Class, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	c, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return c, nil
}

// ParseDir parses every matching documentation file below dir.
//
// A file that fails to parse is logged and skipped unless opts.Strict is set,
// in which case all failures are joined into the returned error.
func ParseDir(ctx context.Context, fsys afero.Fs, dir string, opts Options) (*model.API, error) {
	log := logging.FromContext(ctx)

	include := opts.Include
	if len(include) == 0 {
		include = []string{DefaultInclude}
	}

	info, err := fsys.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("stat input directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("input %s is not a directory", dir)
	}

	var files []string
	err = afero.Walk(fsys, dir, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if matchAny(include, rel) && !matchAny(opts.Exclude, rel) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}

	api := &model.API{}
	var errs []error
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		c, err := ParseFile(fsys, file)
		if err != nil {
			if opts.Strict {
				errs = append(errs, err)
				continue
			}
			log.Warn("skipping documentation file", "file", file, "err", err)
			continue
		}
		log.Debug("parsed class", "class", c.Name, "file", file)
		api.Classes = append(api.Classes, c)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	api.Sort()
	return api, nil
}

func matchAny(patterns []string, path string) bool {
	for _, p := range patterns {
		if ok, err := doublestar.Match(p, path); err == nil && ok {
			return true
		}
	}
	return false
}

// ── Conversion ──────────────────────────────────────────────────────

func convertClass(doc *xmlClass) *model.Class {
	c := &model.Class{
		Name:     strings.TrimSpace(doc.Name),
		Inherits: model.DefaultInherits,
	}
	if doc.Inherits != nil {
		c.Inherits = *doc.Inherits
	}

	if d := CleanDescription(doc.BriefDescription); d != "" {
		c.Description = d
	} else {
		c.Description = CleanDescription(doc.Description)
	}

	for i := range doc.Methods {
		c.Methods = append(c.Methods, convertMethod(&doc.Methods[i]))
	}
	for i := range doc.Members {
		c.Properties = append(c.Properties, convertMember(&doc.Members[i]))
	}
	for i := range doc.Signals {
		c.Signals = append(c.Signals, convertSignal(&doc.Signals[i]))
	}
	for i := range doc.Constants {
		c.Constants = append(c.Constants, convertConstant(&doc.Constants[i]))
	}
	return c
}

func convertMethod(x *xmlMethod) *model.Method {
	m := &model.Method{
		Name:           x.Name,
		Description:    CleanDescription(x.Description),
		RawDescription: strings.TrimSpace(x.Description),
		ReturnType:     "void",
	}

	for q := range strings.FieldsSeq(x.Qualifiers) {
		switch q {
		case "static":
			m.IsStatic = true
		case "vararg":
			m.IsVararg = true
		case "const":
			m.IsConst = true
		}
	}

	if x.Return != nil {
		if x.Return.Type != nil {
			m.ReturnType = *x.Return.Type
		}
		m.ReturnEnum = x.Return.Enum
	}

	m.Parameters = convertParams(x.Params)
	return m
}

func convertParams(params []xmlParam) []*model.Parameter {
	var out []*model.Parameter
	for _, x := range params {
		p := &model.Parameter{
			Index: parseIndex(x.Index),
			Name:  x.Name,
			Type:  "Variant",
			Enum:  x.Enum,
		}
		if x.Type != nil {
			p.Type = *x.Type
		}
		if x.Default != nil {
			p.DefaultValue = *x.Default
			p.HasDefault = true
		}
		out = append(out, p)
	}
	model.SortParameters(out)
	return out
}

// parseIndex returns 0 for a missing or malformed index.
func parseIndex(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

func convertMember(x *xmlMember) *model.Property {
	p := &model.Property{
		Name:        x.Name,
		Type:        "Variant",
		Enum:        x.Enum,
		Description: CleanDescription(x.Description),
		HasSetter:   x.Setter != nil,
	}
	if x.Type != nil {
		p.Type = *x.Type
	}
	if x.Default != nil {
		p.DefaultValue = *x.Default
	}
	if x.Getter != nil {
		p.Getter = *x.Getter
	}
	if x.Setter != nil {
		p.Setter = *x.Setter
	}
	return p
}

func convertSignal(x *xmlSignal) *model.Signal {
	return &model.Signal{
		Name:        x.Name,
		Description: CleanDescription(x.Description),
		Parameters:  convertParams(x.Params),
	}
}

func convertConstant(x *xmlConstant) *model.Constant {
	k := &model.Constant{
		Name:        x.Name,
		Value:       "0",
		Description: CleanDescription(x.Description),
		Enum:        x.Enum,
		IsBitfield:  x.IsBitfield == "true",
	}
	if x.Value != nil {
		k.Value = *x.Value
	}
	return k
}

// ── Description cleaning ────────────────────────────────────────────

var (
	codeSpanRe = regexp.MustCompile(`(?is)\[code(?:\s+skip-lint)?\](.*?)\[/code\]`)
	styleTags  = strings.NewReplacer(
		"[b]", "",
		"[/b]", "",
		"[i]", "",
		"[/i]", "",
	)
	refTagRe     = regexp.MustCompile(`\[(signal|method|enum|param|member|constant)\s+(\w+)\]`)
	classTagRe   = regexp.MustCompile(`\[(\w+)\]`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// CleanDescription strips Godot BBCode markup from documentation text and
// collapses it to a single line. Code spans become single-quoted and keep
// their content verbatim; cross-reference tags keep their target name, so
// "[method load_friends]" becomes "load_friends".
func CleanDescription(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	var b strings.Builder
	last := 0
	for _, loc := range codeSpanRe.FindAllStringSubmatchIndex(s, -1) {
		b.WriteString(cleanMarkup(s[last:loc[0]]))
		b.WriteString("'")
		b.WriteString(s[loc[2]:loc[3]])
		b.WriteString("'")
		last = loc[1]
	}
	b.WriteString(cleanMarkup(s[last:]))

	return strings.TrimSpace(whitespaceRe.ReplaceAllString(b.String(), " "))
}

func cleanMarkup(s string) string {
	s = styleTags.Replace(s)
	s = refTagRe.ReplaceAllString(s, "$2")
	return classTagRe.ReplaceAllString(s, "$1")
}
