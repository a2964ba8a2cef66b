// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package csharp

import (
	"context"

	"github.com/albertocavalcante/gdbind/generator"
	"github.com/albertocavalcante/gdbind/internal/logging"
	"github.com/albertocavalcante/gdbind/model"
)

// Generator implements [generator.Generator] for C# wrapper generation.
type Generator struct{}

// NewGenerator creates a new C# generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// Metadata returns information about this generator.
func (g *Generator) Metadata() generator.Metadata {
	return generator.Metadata{
		Name:           "csharp",
		Version:        "1.0.0",
		Description:    "Generate C# wrappers for GDExtension classes",
		FileExtensions: []string{".cs"},
		URL:            "https://github.com/albertocavalcante/gdbind",
	}
}

// Generate produces one C# file per class plus the shared support files.
func (g *Generator) Generate(ctx context.Context, api *model.API, cfg generator.Config) (*generator.Output, error) {
	internalCfg := Config{
		StringNamesClass: cfg.Option(OptionStringNamesClass, DefaultStringNamesClass),
		FactoryClass:     cfg.Option(OptionFactoryClass, DefaultFactoryClass),
		SharedNamespace:  cfg.Option(OptionSharedNamespace, DefaultSharedNamespace),
		Signatures:       cfg.Signatures,
		Filter:           cfg.Filter(api),
		Source:           cfg.Source,
		Ref:              cfg.Ref,
		CommitHash:       cfg.CommitHash,
	}

	gen := New(api, cfg.Mapper(api), internalCfg)
	out, err := gen.Generate()
	if err != nil {
		return nil, err
	}

	result := generator.NewOutput()
	for _, name := range out.Files.keys() {
		result.Add(name, out.Files.get(name))
	}
	logging.FromContext(ctx).Debug("generated C# wrappers", "files", len(result.Files), "classes", out.Classes)
	return result, nil
}
