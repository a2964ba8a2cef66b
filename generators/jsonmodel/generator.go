// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package jsonmodel dumps the parsed class model as JSON.
//
// The output is meant for debugging the parser and the signature
// heuristic: it shows exactly what the other generators see.
package jsonmodel

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/albertocavalcante/gdbind/generator"
	"github.com/albertocavalcante/gdbind/internal/callbacks"
	"github.com/albertocavalcante/gdbind/internal/logging"
	"github.com/albertocavalcante/gdbind/model"
)

// Option keys.
const (
	OptionFilename = "json_filename"
	OptionIndent   = "json_indent"
)

// DefaultFilename is the name of the generated file.
const DefaultFilename = "api.json"

// Generator implements [generator.Generator] for the JSON model dump.
type Generator struct{}

// NewGenerator creates a new JSON model generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// Metadata returns information about this generator.
func (g *Generator) Metadata() generator.Metadata {
	return generator.Metadata{
		Name:           "json",
		Version:        "1.0.0",
		Description:    "Dump the parsed class model and callback signatures as JSON",
		FileExtensions: []string{".json"},
		URL:            "https://github.com/albertocavalcante/gdbind",
	}
}

// Document is the top-level JSON object.
type Document struct {
	Source     string                          `json:"source,omitempty"`
	Ref        string                          `json:"ref,omitempty"`
	CommitHash string                          `json:"commit,omitempty"`
	Classes    []*model.Class                  `json:"classes"`
	Callbacks  map[string]*callbacks.Signature `json:"callbacks,omitempty"`
	Pending    []string                        `json:"pending,omitempty"`
}

// Generate writes a single JSON file describing the (filtered) model.
func (g *Generator) Generate(ctx context.Context, api *model.API, cfg generator.Config) (*generator.Output, error) {
	filter := cfg.Filter(api)

	doc := Document{
		Source:     cfg.Source,
		Ref:        cfg.Ref,
		CommitHash: cfg.CommitHash,
		Classes:    []*model.Class{},
	}
	for _, c := range api.Classes {
		if filter != nil && !filter[c.Name] {
			continue
		}
		doc.Classes = append(doc.Classes, c)
	}

	if cfg.Signatures != nil {
		doc.Callbacks = make(map[string]*callbacks.Signature)
		for _, c := range doc.Classes {
			for _, m := range c.Methods {
				if sig := cfg.Signatures.Lookup(c.Name, m.Name); sig != nil {
					key := callbacks.Key(c.Name, m.Name)
					doc.Callbacks[key] = sig
					if sig.IsPlaceholder() {
						doc.Pending = append(doc.Pending, key)
					}
				}
			}
		}
	}

	var (
		data []byte
		err  error
	)
	if cfg.Option(OptionIndent, "true") == "false" {
		data, err = json.Marshal(doc)
	} else {
		data, err = json.MarshalIndent(doc, "", "  ")
	}
	if err != nil {
		return nil, fmt.Errorf("jsonmodel: marshal: %w", err)
	}
	data = append(data, '\n')

	name := cfg.Option(OptionFilename, DefaultFilename)
	logging.FromContext(ctx).Debug("generated JSON model", "file", name, "classes", len(doc.Classes))
	return generator.Single(name, data), nil
}
