// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/afero"

	"github.com/albertocavalcante/gdbind/generator"
	"github.com/albertocavalcante/gdbind/internal/callbacks"
	"github.com/albertocavalcante/gdbind/internal/config"
	"github.com/albertocavalcante/gdbind/internal/docxml"
	"github.com/albertocavalcante/gdbind/internal/fetch"
	"github.com/albertocavalcante/gdbind/internal/logging"
)

// pipeline runs load → extract → merge → generate → write for one
// configuration.
type pipeline struct {
	fs     afero.Fs
	cfg    *config.Config
	out    io.Writer
	dryRun bool
}

// loaded is the parsed documentation plus the merged signatures.
type loaded struct {
	*fetch.Result
	Signatures *callbacks.File
}

func (p *pipeline) checkTargets() error {
	if _, err := generator.Lookup(p.cfg.Targets); err != nil {
		return fmt.Errorf("%w: %w", config.ErrInvalid, err)
	}
	return nil
}

// load parses the documentation and brings the signature file up to date.
// The file is rewritten only when the merge added entries.
func (p *pipeline) load(ctx context.Context) (*loaded, error) {
	log := logging.FromContext(ctx)
	cfg := p.cfg

	res, err := fetch.Fetch(ctx, fetch.Options{
		Dir:     cfg.Input,
		RepoDir: cfg.RepoDir,
		Repo:    cfg.Repo,
		Ref:     cfg.Ref,
		DocPath: cfg.DocPath,
		Parse: docxml.Options{
			Include: cfg.Include,
			Exclude: cfg.Exclude,
			Strict:  cfg.Strict,
		},
		Timeout: cfg.GetTimeout(),
		Fs:      p.fs,
	})
	if err != nil {
		return nil, fmt.Errorf("load documentation: %w", err)
	}
	log.Info("parsed documentation", "source", res.Source, "classes", len(res.API.Classes))
	if res.CommitHash != "" {
		log.Debug("documentation commit", "commit", res.CommitHash)
	}

	existing := callbacks.NewFile()
	if cfg.Signatures != "" {
		if existing, err = callbacks.Load(p.fs, cfg.Signatures); err != nil {
			return nil, err
		}
	}
	extracted := callbacks.Extract(res.API)
	merged := callbacks.Merge(existing, extracted)

	if added := len(merged.Callbacks) - len(existing.Callbacks); added > 0 && cfg.Signatures != "" && !p.dryRun {
		if err := callbacks.Save(p.fs, cfg.Signatures, merged); err != nil {
			return nil, err
		}
		log.Info("updated callback signatures", "path", cfg.Signatures, "added", added)
	}
	if pending := merged.Pending(); len(pending) > 0 {
		log.Warn("callback signatures need manual completion", "count", len(pending), "file", cfg.Signatures)
		for _, key := range pending {
			log.Debug("pending callback signature", "callback", key)
		}
	}

	return &loaded{Result: res, Signatures: merged}, nil
}

// generate runs every target and writes the combined output.
func (p *pipeline) generate(ctx context.Context) (*loaded, error) {
	log := logging.FromContext(ctx)
	cfg := p.cfg

	l, err := p.load(ctx)
	if err != nil {
		return nil, err
	}

	genCfg := generator.Config{
		OutputDir:      cfg.Output,
		Classes:        cfg.Classes,
		ResolveDeps:    cfg.ResolveDeps,
		Signatures:     l.Signatures,
		RootNamespace:  cfg.RootNamespace,
		Namespaces:     cfg.Namespaces,
		WrappedClasses: cfg.WrappedClasses,
		Source:         l.Source,
		Ref:            l.Ref,
		CommitHash:     l.CommitHash,
		Options:        cfg.Options,
	}

	gens, err := generator.Lookup(cfg.Targets)
	if err != nil {
		return nil, err
	}

	combined := generator.NewOutput()
	for _, gen := range gens {
		name := gen.Metadata().Name
		out, err := gen.Generate(ctx, l.API, genCfg)
		if err != nil {
			return nil, fmt.Errorf("generate %s: %w", name, err)
		}
		for file, content := range out.Files {
			if _, dup := combined.Files[file]; dup {
				return nil, fmt.Errorf("generate %s: %s is also produced by another target", name, file)
			}
			combined.Add(file, content)
		}
		log.Debug("target finished", "target", name, "files", len(out.Files))
	}

	if p.dryRun {
		for _, file := range combined.Names() {
			fmt.Fprintf(p.out, "// ── %s ──\n%s\n", file, combined.Files[file])
		}
		return l, nil
	}

	if err := combined.WriteTo(p.fs, cfg.Output, cfg.Clean); err != nil {
		return nil, fmt.Errorf("write output: %w", err)
	}
	log.Info("generated wrappers", "output", cfg.Output, "files", len(combined.Files))
	return l, nil
}
